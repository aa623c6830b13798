package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowDomainRoundTrip(t *testing.T) {
	message := "Bring your own shells"
	by := "ray@example.com"

	original := Squad{
		ID:         "4b1c2a9e-9f5a-4d2b-8c3d-1e2f3a4b5c6d",
		Title:      "Saturday clays",
		LeaderName: "Ray Holt",
		Date:       "2026-09-05",
		Time:       "09:30",
		Location:   "Cedar Creek Gun Club",
		Discipline: DisciplineSportingClays,
		Capacity:   4,
		Message:    &message,
		Contact:    Contact{Type: ContactPhone, Value: "555-201-3344"},
		LeaderPIN:  "482913",
		CreatedAt:  time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC).UnixMilli(),
		CreatedBy:  &by,
		Members:    []Member{},
	}

	got := ToDomain(ToRow(original))
	assert.Equal(t, original, got)
}

func TestRoundTripAbsentOptionals(t *testing.T) {
	original := Squad{
		ID:         "a",
		Title:      "Trap night",
		LeaderName: "Dana",
		Date:       "2026-09-12",
		Time:       "17:00",
		Location:   "Northside",
		Discipline: DisciplineTrap,
		Capacity:   5,
		Contact:    Contact{Type: ContactEmail, Value: "dana@example.com"},
		LeaderPIN:  "719204",
		CreatedAt:  time.Now().UnixMilli(),
		Members:    []Member{},
	}

	row := ToRow(original)
	require.False(t, row.Message.Valid, "absent message must map to stored null")
	require.False(t, row.CreatedBy.Valid)

	got := ToDomain(row)
	assert.Nil(t, got.Message, "stored null must map back to absent message")
	assert.Nil(t, got.CreatedBy)
	assert.Equal(t, original, got)
}

func TestOccupancy(t *testing.T) {
	s := Squad{
		Capacity: 4,
		Members:  []Member{{Name: "a"}, {Name: "b"}, {Name: "c"}},
	}

	assert.Equal(t, 4, s.Used())
	assert.Equal(t, 0, s.Left())
	assert.True(t, s.Full())

	s.Members = s.Members[:1]
	assert.Equal(t, 2, s.Used())
	assert.Equal(t, 2, s.Left())
	assert.False(t, s.Full())
}

func TestStartAt(t *testing.T) {
	s := Squad{Date: "2026-09-05", Time: "09:30"}
	got, err := s.StartAt(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 5, 9, 30, 0, 0, time.UTC), got)

	s.Time = "09:30:15"
	got, err = s.StartAt(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 5, 9, 30, 15, 0, time.UTC), got)
}
