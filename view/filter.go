// Package view derives the displayed squad list from the full in-memory set
// plus the browse filters. Pure: same inputs and clock, same output.
package view

import (
	"sort"
	"strings"
	"time"

	"squadfinder_backend/models"
)

// UpcomingWindow is how far in the past a squad may start and still count as
// "upcoming" (exactly 24 hours).
const UpcomingWindow = 24 * time.Hour

// Apply filters and sorts squads for display. The input slice is not
// modified.
func Apply(squads []models.Squad, f models.Filters, now time.Time) []models.Squad {
	out := make([]models.Squad, 0, len(squads))
	query := strings.ToLower(strings.TrimSpace(f.Query))

	for _, s := range squads {
		if f.OnlyUpcoming && !isUpcoming(s, now) {
			continue
		}
		if f.Discipline != "" && f.Discipline != models.DisciplineAll && s.Discipline != f.Discipline {
			continue
		}
		if query != "" && !matchesQuery(s, query) {
			continue
		}
		out = append(out, s)
	}

	SortSquads(out)
	return out
}

// SortSquads orders squads by (date, time) ascending. Squads sharing a start
// instant tie-break on created_at then id, so the displayed order is stable
// across reloads.
func SortSquads(squads []models.Squad) {
	sort.SliceStable(squads, func(i, j int) bool {
		a, b := squads[i], squads[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.Time != b.Time {
			return a.Time < b.Time
		}
		if a.CreatedAt != b.CreatedAt {
			return a.CreatedAt < b.CreatedAt
		}
		return a.ID < b.ID
	})
}

func isUpcoming(s models.Squad, now time.Time) bool {
	start, err := s.StartAt(now.Location())
	if err != nil {
		// Unparseable rows are kept rather than silently hidden.
		return true
	}
	return now.Sub(start) <= UpcomingWindow
}

func matchesQuery(s models.Squad, query string) bool {
	message := ""
	if s.Message != nil {
		message = *s.Message
	}
	haystack := strings.ToLower(s.Title + " " + s.Location + " " + message + " " + s.LeaderName)
	return strings.Contains(haystack, query)
}
