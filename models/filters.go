package models

// DisciplineAll is the sentinel meaning "no discipline filter".
const DisciplineAll = "All"

// Filters is the ephemeral browse state; it is never persisted.
type Filters struct {
	Query        string `form:"query"`
	Discipline   string `form:"discipline"`
	OnlyUpcoming bool   `form:"upcoming"`
}
