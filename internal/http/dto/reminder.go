package dto

import (
	"time"

	"lexdesk.app/deedwatch/internal/model"
	"lexdesk.app/deedwatch/internal/reminder"
)

type RunRemindersRequest struct {
	OrgID  *ID  `json:"org_id,omitempty"`
	DryRun bool `json:"dryRun"`
}

type RunRemindersResponse struct {
	OK      bool                     `json:"ok"`
	RunID   int64                    `json:"run_id,string"`
	DryRun  bool                     `json:"dryRun"`
	Count   int                      `json:"count"`
	Results []ReminderResultResponse `json:"results"`
	Error   string                   `json:"error,omitempty"`
}

type ReminderResultResponse struct {
	DeedID      int64   `json:"deed_id,string"`
	Type        string  `json:"type"`
	Days        int     `json:"days"`
	Status      string  `json:"status"`
	Recipient   *string `json:"recipient"`
	EmailSent   bool    `json:"email_sent"`
	TaskCreated bool    `json:"task_created"`
	Error       string  `json:"error,omitempty"`
}

func ToRunRemindersResponse(res reminder.RunResult) RunRemindersResponse {
	out := RunRemindersResponse{
		OK:      true,
		RunID:   res.RunID,
		DryRun:  res.DryRun,
		Count:   len(res.Results),
		Results: make([]ReminderResultResponse, len(res.Results)),
	}
	for i, r := range res.Results {
		out.Results[i] = ReminderResultResponse{
			DeedID:      r.DeedID,
			Type:        string(r.Type),
			Days:        r.Days,
			Status:      string(r.Status),
			Recipient:   r.Recipient,
			EmailSent:   r.EmailSent,
			TaskCreated: r.TaskCreated,
			Error:       r.Error,
		}
	}
	return out
}

// ToPartialRunResponse renders the results a failed or interrupted run produced
// before it stopped, flagged ok=false with the run error.
func ToPartialRunResponse(res reminder.RunResult, err error) RunRemindersResponse {
	out := ToRunRemindersResponse(res)
	if err != nil {
		out.OK = false
		out.Error = err.Error()
	}
	return out
}

type ReminderLogResponse struct {
	ID           int64     `json:"id,string"`
	Type         string    `json:"type"`
	DaysBefore   int       `json:"days_before"`
	DeadlineDate string    `json:"deadline_date"`
	DryRun       bool      `json:"dry_run"`
	CreatedAt    time.Time `json:"created_at"`
}

type ReminderHistoryResponse struct {
	OK        bool                  `json:"ok"`
	DeedID    int64                 `json:"deed_id,string"`
	Reminders []ReminderLogResponse `json:"reminders"`
}

func ToReminderHistoryResponse(deedID int64, logs []model.ReminderLog) ReminderHistoryResponse {
	out := ReminderHistoryResponse{
		OK:        true,
		DeedID:    deedID,
		Reminders: make([]ReminderLogResponse, len(logs)),
	}
	for i, l := range logs {
		out.Reminders[i] = ReminderLogResponse{
			ID:           l.ID,
			Type:         string(l.ReminderType),
			DaysBefore:   l.DaysBefore,
			DeadlineDate: l.DeadlineDate.Format(dateLayout),
			DryRun:       l.DryRun,
			CreatedAt:    l.CreatedAt,
		}
	}
	return out
}
