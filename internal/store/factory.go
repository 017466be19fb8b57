package store

import (
	"lexdesk.app/deedwatch/core/db/sqlc"
)

type Stores struct {
	queries *sqlc.Queries
}

func NewStores(queries *sqlc.Queries) *Stores {
	return &Stores{queries: queries}
}

func (s *Stores) Deeds() DeedStore {
	return newDeedStore(s.queries)
}

func (s *Stores) ReminderLogs() ReminderLogStore {
	return newReminderLogStore(s.queries)
}

func (s *Stores) Recipients() RecipientStore {
	return newRecipientStore(s.queries)
}

func (s *Stores) Tasks() TaskStore {
	return newTaskStore(s.queries)
}
