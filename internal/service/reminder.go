package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lexdesk.app/deedwatch/internal/model"
	"lexdesk.app/deedwatch/internal/reminder"
	"lexdesk.app/deedwatch/internal/store"
)

type RunRequest struct {
	OrgID         *int64
	DryRun        bool
	LookaheadDays int
}

type ReminderService interface {
	Run(ctx context.Context, req RunRequest) (reminder.RunResult, error)
	// History lists the ledger entries of a deed, newest first.
	History(ctx context.Context, deedID int64, orgID *int64) ([]model.ReminderLog, error)
}

// Runner is the part of reminder.Engine the service needs.
type Runner interface {
	Run(ctx context.Context, params reminder.RunParams) (reminder.RunResult, error)
}

type reminderService struct {
	runner Runner
	deeds  store.DeedStore
	logs   store.ReminderLogStore
	now    func() time.Time
}

// NewReminderService wires the engine to a clock; now defaults to time.Now.
func NewReminderService(runner Runner, deeds store.DeedStore, logs store.ReminderLogStore, now func() time.Time) ReminderService {
	if now == nil {
		now = time.Now
	}
	return &reminderService{runner: runner, deeds: deeds, logs: logs, now: now}
}

func (s *reminderService) Run(ctx context.Context, req RunRequest) (reminder.RunResult, error) {
	return s.runner.Run(ctx, reminder.RunParams{
		Now:           s.now(),
		OrgID:         req.OrgID,
		DryRun:        req.DryRun,
		LookaheadDays: req.LookaheadDays,
	})
}

func (s *reminderService) History(ctx context.Context, deedID int64, orgID *int64) ([]model.ReminderLog, error) {
	deed, err := s.deeds.GetByID(ctx, deedID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrDeedNotFound
		}
		return nil, fmt.Errorf("loading deed: %w", err)
	}
	if orgID != nil && deed.OrganizationID != *orgID {
		return nil, ErrDeedNotFound
	}

	logs, err := s.logs.ListByDeed(ctx, deedID)
	if err != nil {
		return nil, fmt.Errorf("listing reminder logs: %w", err)
	}
	return logs, nil
}
