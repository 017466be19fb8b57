package store

import (
	"context"
	"errors"
	"time"

	"lexdesk.app/deedwatch/internal/model"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert hits the reminder ledger's dedup key.
var ErrDuplicate = errors.New("duplicate")

// DeedStore defines the contract for deed data access
type DeedStore interface {
	GetByID(ctx context.Context, id int64) (*model.Deed, error)
	// ListWithDeadlinesBetween returns deeds with any deadline in [from, to], ordered by id.
	ListWithDeadlinesBetween(ctx context.Context, from, to time.Time, orgID *int64) ([]model.Deed, error)
	UpdateFields(ctx context.Context, id int64, fields model.DeedFields) (*model.Deed, error)
}

// ReminderLogStore is the append-only reminder ledger.
type ReminderLogStore interface {
	// Create inserts the entry, returning ErrDuplicate when the (org, deed, type, days)
	// tuple already exists.
	Create(ctx context.Context, entry *model.ReminderLog) error
	ListByDeed(ctx context.Context, deedID int64) ([]model.ReminderLog, error)
}

// RecipientStore answers the lookups behind the reminder recipient chain.
type RecipientStore interface {
	FirstAssigneeEmail(ctx context.Context, deedID int64) (string, error)
	FirstMemberEmailWithRoles(ctx context.Context, orgID int64, roles []model.MemberRole) (string, error)
}

// TaskStore defines the contract for task creation
type TaskStore interface {
	Create(ctx context.Context, task *model.Task) error
}
