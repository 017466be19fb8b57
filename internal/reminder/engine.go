// Package reminder fires deed deadline reminders.
//
// A run scans deeds with deadlines in the lookahead window, matches each deadline
// against its type's day thresholds, claims every match in the reminder ledger and
// only then emails the responsible person and opens a task. The ledger's unique
// key makes each (organization, deed, type, days) reminder fire at most once no
// matter how often or how concurrently runs are triggered.
package reminder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"lexdesk.app/deedwatch/common/id"
	"lexdesk.app/deedwatch/common/logger"
	"lexdesk.app/deedwatch/internal/model"
)

type Status string

const (
	StatusProcessed        Status = "processed"
	StatusSkippedDuplicate Status = "skipped_duplicate"
	StatusFailed           Status = "failed"
)

// RunParams configures one engine pass. Now is required; zero LookaheadDays uses
// the engine default.
type RunParams struct {
	Now           time.Time
	OrgID         *int64
	DryRun        bool
	LookaheadDays int
}

// Result is the outcome of one candidate reminder.
type Result struct {
	DeedID      int64
	Type        model.ReminderType
	Days        int
	Status      Status
	Recipient   *string
	EmailSent   bool
	TaskCreated bool
	Error       string
}

type RunResult struct {
	RunID   int64
	DryRun  bool
	Results []Result
}

type Config struct {
	LookaheadDays int
	Concurrency   int
	IOTimeout     time.Duration
}

type Engine struct {
	scanner    *Scanner
	ledger     *Ledger
	resolver   Resolver
	dispatcher *Dispatcher
	cfg        Config
}

func NewEngine(scanner *Scanner, ledger *Ledger, resolver Resolver, dispatcher *Dispatcher, cfg Config) *Engine {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if cfg.LookaheadDays <= 0 {
		cfg.LookaheadDays = model.MaxThreshold()
	}
	return &Engine{
		scanner:    scanner,
		ledger:     ledger,
		resolver:   resolver,
		dispatcher: dispatcher,
		cfg:        cfg,
	}
}

// Run performs one pass. Per-reminder failures are reported in the results; an
// error is returned only when the scan fails or ctx is cancelled, in which case the
// results gathered so far are still returned.
func (e *Engine) Run(ctx context.Context, params RunParams) (RunResult, error) {
	runID := id.New()
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		RunID:          &runID,
		OrganizationID: params.OrgID,
		Component:      "deedwatch.reminder.engine",
	})

	span := logger.StartSpan(ctx, "reminder.run",
		attribute.Int64("deedwatch.run_id", runID),
		attribute.Bool("deedwatch.dry_run", params.DryRun))
	defer span.End()
	ctx = span.Context()

	lookahead := params.LookaheadDays
	if lookahead == 0 {
		lookahead = e.cfg.LookaheadDays
	}

	result := RunResult{RunID: runID, DryRun: params.DryRun, Results: []Result{}}

	scanCtx, cancel := e.withTimeout(ctx)
	deeds, err := e.scanner.Scan(scanCtx, params.Now, lookahead, params.OrgID)
	cancel()
	if err != nil {
		span.Fail(err)
		return result, fmt.Errorf("scanning deeds: %w", err)
	}

	today := e.scanner.Today(params.Now)
	slog.InfoContext(ctx, "reminder run started",
		"today", today.Format(dateLayout),
		"lookahead_days", lookahead,
		"deeds", len(deeds),
		"dry_run", params.DryRun)

	perDeed := make([][]Result, len(deeds))
	g := new(errgroup.Group)
	g.SetLimit(e.cfg.Concurrency)

	for i, deed := range deeds {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			perDeed[i] = e.processDeed(ctx, deed, today, params.DryRun)
			return nil
		})
	}
	_ = g.Wait()

	for _, rs := range perDeed {
		result.Results = append(result.Results, rs...)
	}

	if err := ctx.Err(); err != nil {
		slog.WarnContext(ctx, "reminder run cancelled", "results", len(result.Results))
		return result, fmt.Errorf("reminder run interrupted: %w", err)
	}

	slog.InfoContext(ctx, "reminder run finished",
		"results", len(result.Results),
		"processed", countStatus(result.Results, StatusProcessed),
		"skipped", countStatus(result.Results, StatusSkippedDuplicate),
		"failed", countStatus(result.Results, StatusFailed))

	return result, nil
}

func (e *Engine) processDeed(ctx context.Context, deed model.Deed, today time.Time, dryRun bool) []Result {
	deedID, orgID := deed.ID, deed.OrganizationID
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		DeedID:         &deedID,
		OrganizationID: &orgID,
	})

	span := logger.StartSpan(ctx, "reminder.process_deed", attribute.Int64("deedwatch.deed_id", deedID))
	defer span.End()
	ctx = span.Context()

	candidates := Match(deed, today)
	results := make([]Result, 0, len(candidates))
	for _, c := range candidates {
		results = append(results, e.processCandidate(ctx, deed, c, dryRun))
	}
	return results
}

func (e *Engine) processCandidate(ctx context.Context, deed model.Deed, c Candidate, dryRun bool) Result {
	reminderType := string(c.Type)
	ctx = logger.WithLogFields(ctx, logger.LogFields{ReminderType: &reminderType})

	res := Result{DeedID: deed.ID, Type: c.Type, Days: c.Days}

	entry := &model.ReminderLog{
		OrganizationID: deed.OrganizationID,
		DeedID:         deed.ID,
		ReminderType:   c.Type,
		DaysBefore:     c.Days,
		DeadlineDate:   c.Deadline,
		DryRun:         dryRun,
	}

	ledgerCtx, cancel := e.withTimeout(ctx)
	recorded, err := e.ledger.TryRecord(ledgerCtx, entry)
	cancel()
	if err != nil {
		slog.ErrorContext(ctx, "reminder ledger write failed", "error", err, "days", c.Days)
		res.Status = StatusFailed
		res.Error = err.Error()
		return res
	}
	if !recorded {
		slog.DebugContext(ctx, "reminder already recorded", "days", c.Days)
		res.Status = StatusSkippedDuplicate
		return res
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{ReminderLogID: &entry.ID})
	res.Status = StatusProcessed

	email, ok, err := e.resolver.Resolve(ctx, deed)
	if err != nil {
		slog.WarnContext(ctx, "recipient resolution failed", "error", err)
	}
	if ok {
		res.Recipient = &email
	}

	if dryRun {
		slog.InfoContext(ctx, "dry run: reminder recorded without side effects", "days", c.Days)
		return res
	}

	outcome := e.dispatcher.Dispatch(ctx, deed, c, entry, res.Recipient)
	res.EmailSent = outcome.EmailSent
	res.TaskCreated = outcome.TaskErr == nil
	if err := errors.Join(outcome.EmailErr, outcome.TaskErr); err != nil {
		res.Error = err.Error()
	}

	slog.InfoContext(ctx, "reminder dispatched",
		"days", c.Days,
		"email_sent", outcome.EmailSent,
		"task_created", res.TaskCreated)
	return res
}

func (e *Engine) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.cfg.IOTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, e.cfg.IOTimeout)
}

func countStatus(results []Result, status Status) int {
	n := 0
	for _, r := range results {
		if r.Status == status {
			n++
		}
	}
	return n
}
