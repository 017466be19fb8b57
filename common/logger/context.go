package logger

import (
	"context"
	"log/slog"
	"unicode/utf8"
)

type fieldsKey struct{}

// LogFields are attached to a context once and added to every record logged with
// it, so a deed id set at the top of processing reaches the dispatcher's logs.
type LogFields struct {
	RunID          *int64
	OrganizationID *int64
	DeedID         *int64
	ReminderType   *string
	ReminderLogID  *int64  // ledger entry that authorised a side effect
	MessageID      *string // mail stream entry id
	Component      string
}

// WithLogFields merges fields into those already on ctx; set values win.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	merged := fieldsFrom(ctx)
	merged.RunID = pick(fields.RunID, merged.RunID)
	merged.OrganizationID = pick(fields.OrganizationID, merged.OrganizationID)
	merged.DeedID = pick(fields.DeedID, merged.DeedID)
	merged.ReminderType = pick(fields.ReminderType, merged.ReminderType)
	merged.ReminderLogID = pick(fields.ReminderLogID, merged.ReminderLogID)
	merged.MessageID = pick(fields.MessageID, merged.MessageID)
	if fields.Component != "" {
		merged.Component = fields.Component
	}
	return context.WithValue(ctx, fieldsKey{}, merged)
}

func fieldsFrom(ctx context.Context) LogFields {
	fields, _ := ctx.Value(fieldsKey{}).(LogFields)
	return fields
}

func pick[T any](next, prev *T) *T {
	if next != nil {
		return next
	}
	return prev
}

func (f LogFields) attrs() []slog.Attr {
	var out []slog.Attr
	if f.RunID != nil {
		out = append(out, slog.Int64("run_id", *f.RunID))
	}
	if f.OrganizationID != nil {
		out = append(out, slog.Int64("organization_id", *f.OrganizationID))
	}
	if f.DeedID != nil {
		out = append(out, slog.Int64("deed_id", *f.DeedID))
	}
	if f.ReminderType != nil {
		out = append(out, slog.String("reminder_type", *f.ReminderType))
	}
	if f.ReminderLogID != nil {
		out = append(out, slog.Int64("reminder_log_id", *f.ReminderLogID))
	}
	if f.MessageID != nil {
		out = append(out, slog.String("message_id", *f.MessageID))
	}
	if f.Component != "" {
		out = append(out, slog.String("component", f.Component))
	}
	return out
}

// Truncate shortens s to at most maxLen bytes without splitting a rune.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
