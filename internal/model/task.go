package model

import "time"

type TaskPriority string

const (
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityLow    TaskPriority = "low"
)

type TaskStatus string

const (
	TaskStatusPending TaskStatus = "pending"
	TaskStatusDone    TaskStatus = "done"
)

type Task struct {
	ID             int64        `json:"id"`
	OrganizationID int64        `json:"organization_id"`
	DeedID         *int64       `json:"deed_id,omitempty"`
	Title          string       `json:"title"`
	Description    string       `json:"description,omitempty"`
	DueDate        *time.Time   `json:"due_date,omitempty"`
	Priority       TaskPriority `json:"priority"`
	Status         TaskStatus   `json:"status"`
	CreatedAt      time.Time    `json:"created_at"`
}
