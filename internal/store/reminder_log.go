package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"lexdesk.app/deedwatch/common/id"
	"lexdesk.app/deedwatch/core/db/sqlc"
	"lexdesk.app/deedwatch/internal/model"
)

const (
	pgUniqueViolation          = "23505"
	reminderLogDedupConstraint = "deed_reminder_logs_dedup_key"
)

type reminderLogStore struct {
	queries *sqlc.Queries
}

func newReminderLogStore(queries *sqlc.Queries) ReminderLogStore {
	return &reminderLogStore{queries: queries}
}

func (s *reminderLogStore) Create(ctx context.Context, entry *model.ReminderLog) error {
	if entry.ID == 0 {
		entry.ID = id.New()
	}

	row, err := s.queries.CreateReminderLog(ctx, sqlc.CreateReminderLogParams{
		ID:             entry.ID,
		OrganizationID: entry.OrganizationID,
		DeedID:         entry.DeedID,
		ReminderType:   string(entry.ReminderType),
		DaysBefore:     int32(entry.DaysBefore),
		DeadlineDate:   toPgDate(&entry.DeadlineDate),
		DryRun:         entry.DryRun,
	})
	if err != nil {
		if isDedupViolation(err) {
			return ErrDuplicate
		}
		return err
	}

	*entry = toReminderLogModel(row)
	return nil
}

func (s *reminderLogStore) ListByDeed(ctx context.Context, deedID int64) ([]model.ReminderLog, error) {
	rows, err := s.queries.ListReminderLogsByDeed(ctx, deedID)
	if err != nil {
		return nil, err
	}
	result := make([]model.ReminderLog, 0, len(rows))
	for _, row := range rows {
		result = append(result, toReminderLogModel(row))
	}
	return result, nil
}

// isDedupViolation only matches the ledger's own key. Other unique or check
// violations stay errors so the caller does not mistake them for "already sent".
func isDedupViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == reminderLogDedupConstraint
}

func toReminderLogModel(row sqlc.DeedReminderLog) model.ReminderLog {
	entry := model.ReminderLog{
		ID:             row.ID,
		OrganizationID: row.OrganizationID,
		DeedID:         row.DeedID,
		ReminderType:   model.ReminderType(row.ReminderType),
		DaysBefore:     int(row.DaysBefore),
		DryRun:         row.DryRun,
		CreatedAt:      row.CreatedAt.Time,
	}
	if d := fromPgDate(row.DeadlineDate); d != nil {
		entry.DeadlineDate = *d
	}
	return entry
}
