package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"lexdesk.app/deedwatch/internal/mailer"
	"lexdesk.app/deedwatch/internal/model"
	"lexdesk.app/deedwatch/internal/store"
)

// DispatchOutcome reports each side effect separately; one failing never stops the
// other.
type DispatchOutcome struct {
	EmailSent bool
	EmailErr  error
	Task      *model.Task
	TaskErr   error
}

// Dispatcher performs the side effects of a recorded reminder.
type Dispatcher struct {
	sender  mailer.Sender
	tasks   store.TaskStore
	timeout time.Duration
}

func NewDispatcher(sender mailer.Sender, tasks store.TaskStore, timeout time.Duration) *Dispatcher {
	return &Dispatcher{sender: sender, tasks: tasks, timeout: timeout}
}

// Dispatch emails recipient (when known) and creates the follow-up task. entry is
// the ledger claim that authorised the dispatch.
func (d *Dispatcher) Dispatch(ctx context.Context, deed model.Deed, c Candidate, entry *model.ReminderLog, recipient *string) DispatchOutcome {
	var out DispatchOutcome
	subject := Subject(deed, c)

	if recipient != nil && *recipient != "" {
		out.EmailErr = d.sendEmail(ctx, deed, c, entry, subject, *recipient)
		out.EmailSent = out.EmailErr == nil
		if out.EmailErr != nil {
			slog.ErrorContext(ctx, "reminder email failed", "error", out.EmailErr, "to", *recipient)
		}
	} else {
		slog.WarnContext(ctx, "no recipient for reminder, creating task only")
	}

	out.Task, out.TaskErr = d.createTask(ctx, deed, c, subject)
	if out.TaskErr != nil {
		slog.ErrorContext(ctx, "reminder task creation failed", "error", out.TaskErr)
	}

	return out
}

func (d *Dispatcher) sendEmail(ctx context.Context, deed model.Deed, c Candidate, entry *model.ReminderLog, subject, to string) error {
	body, err := RenderBody(deed, c)
	if err != nil {
		return err
	}

	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	email := mailer.Email{
		To:             to,
		Subject:        subject,
		HTML:           body,
		OrganizationID: deed.OrganizationID,
		DeedID:         deed.ID,
	}
	if entry != nil {
		email.ReminderLogID = entry.ID
	}

	if err := d.sender.Send(ctx, email); err != nil {
		return fmt.Errorf("sending reminder email: %w", err)
	}
	return nil
}

func (d *Dispatcher) createTask(ctx context.Context, deed model.Deed, c Candidate, subject string) (*model.Task, error) {
	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	deedID := deed.ID
	due := c.Deadline
	task := &model.Task{
		OrganizationID: deed.OrganizationID,
		DeedID:         &deedID,
		Title:          subject,
		Description:    TaskDescription(deed, c),
		DueDate:        &due,
		Priority:       Priority(c.Days),
		Status:         model.TaskStatusPending,
	}
	if err := d.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("creating reminder task: %w", err)
	}
	return task, nil
}

func (d *Dispatcher) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if d.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d.timeout)
}
