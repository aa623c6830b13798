package models

import (
	"database/sql"
	"time"
)

// Discipline values accepted for a squad.
const (
	DisciplineSportingClays = "Sporting Clays"
	DisciplineTrap          = "Trap"
	DisciplineSkeet         = "Skeet"
	DisciplineFiveStand     = "Five Stand"
	DisciplineOther         = "Other"
)

var Disciplines = []string{
	DisciplineSportingClays,
	DisciplineTrap,
	DisciplineSkeet,
	DisciplineFiveStand,
	DisciplineOther,
}

// Contact method types.
const (
	ContactEmail = "Email"
	ContactPhone = "Phone"
	ContactText  = "Text"
	ContactLink  = "Link"
)

var ContactTypes = []string{ContactEmail, ContactPhone, ContactText, ContactLink}

type Contact struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type Member struct {
	Name     string  `json:"name"`
	Note     *string `json:"note,omitempty"`
	JoinedAt int64   `json:"joinedAt"`
}

// Squad is the in-memory domain shape: nested, camelCase, members embedded.
// The leader PIN never leaves the service in JSON responses.
type Squad struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	LeaderName string   `json:"leaderName"`
	Date       string   `json:"date"` // YYYY-MM-DD
	Time       string   `json:"time"` // HH:MM
	Location   string   `json:"location"`
	Discipline string   `json:"discipline"`
	Capacity   int      `json:"capacity"`
	Message    *string  `json:"message,omitempty"`
	Contact    Contact  `json:"contact"`
	LeaderPIN  string   `json:"-"`
	CreatedAt  int64    `json:"createdAt"`
	CreatedBy  *string  `json:"createdBy,omitempty"`
	Members    []Member `json:"members"`
}

// Used counts the leader plus joined members.
func (s Squad) Used() int {
	return 1 + len(s.Members)
}

func (s Squad) Left() int {
	if left := s.Capacity - s.Used(); left > 0 {
		return left
	}
	return 0
}

func (s Squad) Full() bool {
	return s.Used() >= s.Capacity
}

// StartAt combines the date and time columns into a local instant.
func (s Squad) StartAt(loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02 15:04", s.Date+" "+s.Time, loc)
	if err != nil {
		return time.ParseInLocation("2006-01-02 15:04:05", s.Date+" "+s.Time, loc)
	}
	return t, nil
}

// SquadRow is the flat storage shape of the squads table.
type SquadRow struct {
	ID           string
	Title        string
	LeaderName   string
	Date         string
	Time         string
	Location     string
	Discipline   string
	Capacity     int
	Message      sql.NullString
	ContactType  string
	ContactValue string
	LeaderPIN    string
	CreatedAt    time.Time
	CreatedBy    sql.NullString
}

// ToDomain maps a storage row to the domain shape, members excluded. Total:
// rows are trusted to match the schema, nulls become absent optionals.
func ToDomain(r SquadRow) Squad {
	s := Squad{
		ID:         r.ID,
		Title:      r.Title,
		LeaderName: r.LeaderName,
		Date:       r.Date,
		Time:       r.Time,
		Location:   r.Location,
		Discipline: r.Discipline,
		Capacity:   r.Capacity,
		Contact:    Contact{Type: r.ContactType, Value: r.ContactValue},
		LeaderPIN:  r.LeaderPIN,
		CreatedAt:  r.CreatedAt.UnixMilli(),
		Members:    []Member{},
	}
	if r.Message.Valid {
		msg := r.Message.String
		s.Message = &msg
	}
	if r.CreatedBy.Valid {
		by := r.CreatedBy.String
		s.CreatedBy = &by
	}
	return s
}

// ToRow is the inverse mapping, used when writing a full squad back.
func ToRow(s Squad) SquadRow {
	r := SquadRow{
		ID:           s.ID,
		Title:        s.Title,
		LeaderName:   s.LeaderName,
		Date:         s.Date,
		Time:         s.Time,
		Location:     s.Location,
		Discipline:   s.Discipline,
		Capacity:     s.Capacity,
		ContactType:  s.Contact.Type,
		ContactValue: s.Contact.Value,
		LeaderPIN:    s.LeaderPIN,
		CreatedAt:    time.UnixMilli(s.CreatedAt).UTC(),
	}
	if s.Message != nil {
		r.Message = sql.NullString{String: *s.Message, Valid: true}
	}
	if s.CreatedBy != nil {
		r.CreatedBy = sql.NullString{String: *s.CreatedBy, Valid: true}
	}
	return r
}
