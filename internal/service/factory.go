package service

import (
	"time"

	"lexdesk.app/deedwatch/core/config"
	"lexdesk.app/deedwatch/internal/mailer"
	"lexdesk.app/deedwatch/internal/reminder"
	"lexdesk.app/deedwatch/internal/storage"
	"lexdesk.app/deedwatch/internal/store"
)

type Services struct {
	stores      *store.Stores
	files       storage.FileStore
	sender      mailer.Sender
	reminderCfg config.ReminderConfig
	now         func() time.Time
}

func NewServices(stores *store.Stores, files storage.FileStore, sender mailer.Sender, reminderCfg config.ReminderConfig, now func() time.Time) *Services {
	return &Services{
		stores:      stores,
		files:       files,
		sender:      sender,
		reminderCfg: reminderCfg,
		now:         now,
	}
}

// Engine assembles the reminder pipeline from the stores and mail sender.
func (s *Services) Engine() *reminder.Engine {
	timeout := s.reminderCfg.IOTimeout
	return reminder.NewEngine(
		reminder.NewScanner(s.stores.Deeds(), s.reminderCfg.Location()),
		reminder.NewLedger(s.stores.ReminderLogs()),
		reminder.NewChain(timeout,
			reminder.NewAssigneeResolver(s.stores.Recipients()),
			reminder.NewSeniorStaffResolver(s.stores.Recipients()),
		),
		reminder.NewDispatcher(s.sender, s.stores.Tasks(), timeout),
		reminder.Config{
			LookaheadDays: s.reminderCfg.LookaheadDays,
			Concurrency:   s.reminderCfg.Concurrency,
			IOTimeout:     timeout,
		},
	)
}

func (s *Services) Reminders() ReminderService {
	return NewReminderService(s.Engine(), s.stores.Deeds(), s.stores.ReminderLogs(), s.now)
}

func (s *Services) Extraction() ExtractionService {
	return NewExtractionService(s.stores.Deeds(), s.files, s.reminderCfg.DeadlineDerivation)
}
