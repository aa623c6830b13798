package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validDraft() SquadDraft {
	return SquadDraft{
		Title:      "Saturday clays",
		LeaderName: "Ray Holt",
		Date:       "2026-09-05",
		Time:       "09:30",
		Location:   "Cedar Creek Gun Club",
		Discipline: DisciplineSportingClays,
		Capacity:   4,
		Contact:    Contact{Type: ContactEmail, Value: "ray@example.com"},
		LeaderPIN:  "482913",
	}
}

func TestSquadDraftValidate(t *testing.T) {
	t.Run("valid draft passes", func(t *testing.T) {
		assert.Empty(t, validDraft().Validate())
	})

	t.Run("empty title keyed on title", func(t *testing.T) {
		d := validDraft()
		d.Title = "  "
		errs := d.Validate()
		assert.Contains(t, errs, "title")
	})

	t.Run("bad contact email keyed on contact", func(t *testing.T) {
		d := validDraft()
		d.Contact = Contact{Type: ContactEmail, Value: "not-an-email"}
		errs := d.Validate()
		assert.Contains(t, errs, "contact")
	})

	t.Run("bad phone keyed on contact", func(t *testing.T) {
		d := validDraft()
		d.Contact = Contact{Type: ContactPhone, Value: "abc"}
		errs := d.Validate()
		assert.Contains(t, errs, "contact")
	})

	t.Run("non-numeric PIN keyed on leaderPin", func(t *testing.T) {
		d := validDraft()
		d.LeaderPIN = "12a456"
		errs := d.Validate()
		assert.Contains(t, errs, "leaderPin")
	})

	t.Run("short PIN rejected", func(t *testing.T) {
		d := validDraft()
		d.LeaderPIN = "12345"
		assert.Contains(t, d.Validate(), "leaderPin")
	})

	t.Run("capacity below one rejected", func(t *testing.T) {
		d := validDraft()
		d.Capacity = 0
		assert.Contains(t, d.Validate(), "capacity")
	})

	t.Run("unknown discipline rejected", func(t *testing.T) {
		d := validDraft()
		d.Discipline = "Archery"
		assert.Contains(t, d.Validate(), "discipline")
	})

	t.Run("every required field reported at once", func(t *testing.T) {
		errs := SquadDraft{}.Validate()
		for _, key := range []string{"title", "leaderName", "date", "time", "location", "discipline", "capacity", "contact", "leaderPin"} {
			assert.Contains(t, errs, key)
		}
	})

	t.Run("update skips the PIN check", func(t *testing.T) {
		d := validDraft()
		d.LeaderPIN = ""
		assert.Empty(t, d.ValidateUpdate())
	})
}

func TestMemberJoinValidate(t *testing.T) {
	assert.Empty(t, MemberJoin{Name: "Bob"}.Validate())
	assert.Contains(t, MemberJoin{Name: " "}.Validate(), "name")
}
