package reminder

import (
	"slices"
	"time"

	"lexdesk.app/deedwatch/internal/model"
)

// Candidate is a reminder a deed is due today: Days is exactly one of the type's
// thresholds.
type Candidate struct {
	Type     model.ReminderType
	Days     int
	Deadline time.Time
}

// Match returns the deed's candidates for today in type order. today must be a civil
// date (see model.DateOf).
func Match(deed model.Deed, today time.Time) []Candidate {
	var out []Candidate
	for _, t := range model.ReminderTypes {
		deadline := deed.Deadline(t)
		if deadline == nil {
			continue
		}
		days := model.DaysUntil(today, *deadline)
		if !slices.Contains(t.Thresholds(), days) {
			continue
		}
		out = append(out, Candidate{
			Type:     t,
			Days:     days,
			Deadline: model.DateOf(*deadline),
		})
	}
	return out
}
