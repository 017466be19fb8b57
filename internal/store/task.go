package store

import (
	"context"

	"lexdesk.app/deedwatch/common/id"
	"lexdesk.app/deedwatch/core/db/sqlc"
	"lexdesk.app/deedwatch/internal/model"
)

type taskStore struct {
	queries *sqlc.Queries
}

func newTaskStore(queries *sqlc.Queries) TaskStore {
	return &taskStore{queries: queries}
}

func (s *taskStore) Create(ctx context.Context, task *model.Task) error {
	if task.ID == 0 {
		task.ID = id.New()
	}

	var description *string
	if task.Description != "" {
		description = &task.Description
	}

	row, err := s.queries.CreateTask(ctx, sqlc.CreateTaskParams{
		ID:             task.ID,
		OrganizationID: task.OrganizationID,
		DeedID:         task.DeedID,
		Title:          task.Title,
		Description:    description,
		DueDate:        toPgDate(task.DueDate),
		Priority:       string(task.Priority),
	})
	if err != nil {
		return err
	}

	*task = toTaskModel(row)
	return nil
}

func toTaskModel(row sqlc.Task) model.Task {
	task := model.Task{
		ID:             row.ID,
		OrganizationID: row.OrganizationID,
		DeedID:         row.DeedID,
		Title:          row.Title,
		DueDate:        fromPgDate(row.DueDate),
		Priority:       model.TaskPriority(row.Priority),
		Status:         model.TaskStatus(row.Status),
		CreatedAt:      row.CreatedAt.Time,
	}
	if row.Description != nil {
		task.Description = *row.Description
	}
	return task
}
