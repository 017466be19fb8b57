package reminder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lexdesk.app/deedwatch/internal/model"
	"lexdesk.app/deedwatch/internal/store"
)

var ErrLookaheadTooShort = errors.New("lookahead shorter than the largest reminder threshold")

// Scanner selects the deeds that may owe a reminder.
type Scanner struct {
	deeds    store.DeedStore
	location *time.Location
}

func NewScanner(deeds store.DeedStore, location *time.Location) *Scanner {
	if location == nil {
		location = time.UTC
	}
	return &Scanner{deeds: deeds, location: location}
}

// Today is the calendar date of now in the scanner's time zone, at UTC midnight.
func (s *Scanner) Today(now time.Time) time.Time {
	return model.DateOf(now.In(s.location))
}

// Scan returns deeds with at least one deadline in [today, today+lookaheadDays],
// optionally limited to one organization. A lookahead shorter than the largest
// threshold would hide reminders and is rejected.
func (s *Scanner) Scan(ctx context.Context, now time.Time, lookaheadDays int, orgID *int64) ([]model.Deed, error) {
	if lookaheadDays < model.MaxThreshold() {
		return nil, fmt.Errorf("%w: %d < %d", ErrLookaheadTooShort, lookaheadDays, model.MaxThreshold())
	}

	from := s.Today(now)
	to := from.AddDate(0, 0, lookaheadDays)

	deeds, err := s.deeds.ListWithDeadlinesBetween(ctx, from, to, orgID)
	if err != nil {
		return nil, fmt.Errorf("listing deeds with deadlines: %w", err)
	}
	return deeds, nil
}
