package models

import (
	"regexp"
	"strings"
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^\+?[0-9()\-.\s]{7,20}$`)
	pinRe   = regexp.MustCompile(`^[0-9]{6}$`)
)

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool {
	return emailRe.MatchString(s)
}

// SquadDraft is the submitted shape for create and edit.
type SquadDraft struct {
	Title      string  `json:"title"`
	LeaderName string  `json:"leaderName"`
	Date       string  `json:"date"`
	Time       string  `json:"time"`
	Location   string  `json:"location"`
	Discipline string  `json:"discipline"`
	Capacity   int     `json:"capacity"`
	Message    *string `json:"message,omitempty"`
	Contact    Contact `json:"contact"`
	LeaderPIN  string  `json:"leaderPin"`
}

// MemberJoin is the submitted shape for joining a squad.
type MemberJoin struct {
	Name string  `json:"name"`
	Note *string `json:"note,omitempty"`
}

// Validate checks a draft for creation. The returned map is keyed by field
// name and empty when the draft is acceptable.
func (d SquadDraft) Validate() map[string]string {
	errs := d.validateCommon()
	if !pinRe.MatchString(d.LeaderPIN) {
		errs["leaderPin"] = "PIN must be exactly 6 digits"
	}
	return errs
}

// ValidateUpdate checks a draft for editing, where the PIN is not part of the
// submitted fields.
func (d SquadDraft) ValidateUpdate() map[string]string {
	return d.validateCommon()
}

func (d SquadDraft) validateCommon() map[string]string {
	errs := map[string]string{}

	if strings.TrimSpace(d.Title) == "" {
		errs["title"] = "Title is required"
	}
	if strings.TrimSpace(d.LeaderName) == "" {
		errs["leaderName"] = "Leader name is required"
	}
	if strings.TrimSpace(d.Date) == "" {
		errs["date"] = "Date is required"
	}
	if strings.TrimSpace(d.Time) == "" {
		errs["time"] = "Time is required"
	}
	if strings.TrimSpace(d.Location) == "" {
		errs["location"] = "Location is required"
	}
	if !contains(Disciplines, d.Discipline) {
		errs["discipline"] = "Pick a discipline"
	}
	if d.Capacity < 1 {
		errs["capacity"] = "Capacity must be at least 1"
	}

	switch {
	case !contains(ContactTypes, d.Contact.Type):
		errs["contact"] = "Pick a contact method"
	case strings.TrimSpace(d.Contact.Value) == "":
		errs["contact"] = "Contact info is required"
	case d.Contact.Type == ContactEmail && !emailRe.MatchString(d.Contact.Value):
		errs["contact"] = "Enter a valid email address"
	case (d.Contact.Type == ContactPhone || d.Contact.Type == ContactText) && !phoneRe.MatchString(d.Contact.Value):
		errs["contact"] = "Enter a valid phone number"
	}

	return errs
}

// Validate checks a join submission.
func (m MemberJoin) Validate() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(m.Name) == "" {
		errs["name"] = "Name is required"
	}
	return errs
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
