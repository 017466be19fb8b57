package reminder

import (
	"context"
	"errors"
	"fmt"

	"lexdesk.app/deedwatch/internal/model"
	"lexdesk.app/deedwatch/internal/store"
)

// Ledger claims reminder slots. A slot is claimed at most once per
// (organization, deed, type, days) and the claim happens before any side effect.
type Ledger struct {
	logs store.ReminderLogStore
}

func NewLedger(logs store.ReminderLogStore) *Ledger {
	return &Ledger{logs: logs}
}

// TryRecord inserts entry. recorded is false when the slot was already claimed,
// by this run or any other. Other failures are returned and the caller must not
// dispatch.
func (l *Ledger) TryRecord(ctx context.Context, entry *model.ReminderLog) (recorded bool, err error) {
	if err := l.logs.Create(ctx, entry); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return false, nil
		}
		return false, fmt.Errorf("recording reminder: %w", err)
	}
	return true, nil
}
