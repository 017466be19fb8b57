package model

import "time"

type ReminderType string

const (
	ReminderTypeModel600      ReminderType = "model600"
	ReminderTypeAsiento       ReminderType = "asiento"
	ReminderTypeQualification ReminderType = "qualification"
)

// ReminderTypes lists every deadline type in evaluation order.
var ReminderTypes = []ReminderType{
	ReminderTypeModel600,
	ReminderTypeAsiento,
	ReminderTypeQualification,
}

var reminderThresholds = map[ReminderType][]int{
	ReminderTypeModel600:      {1, 5, 10},
	ReminderTypeAsiento:       {3, 7, 15},
	ReminderTypeQualification: {1, 5, 10},
}

var reminderLabels = map[ReminderType]string{
	ReminderTypeModel600:      "Modelo 600",
	ReminderTypeAsiento:       "Caducidad del asiento",
	ReminderTypeQualification: "Plazo de calificación",
}

// Thresholds returns the ascending day offsets at which a reminder fires.
func (t ReminderType) Thresholds() []int {
	src := reminderThresholds[t]
	out := make([]int, len(src))
	copy(out, src)
	return out
}

// Label is the human name used in subjects and task titles.
func (t ReminderType) Label() string {
	if label, ok := reminderLabels[t]; ok {
		return label
	}
	return string(t)
}

func (t ReminderType) Valid() bool {
	_, ok := reminderThresholds[t]
	return ok
}

// MaxThreshold is the largest offset across all types; a scan window shorter than
// this would silently skip reminders.
func MaxThreshold() int {
	highest := 0
	for _, ts := range reminderThresholds {
		for _, v := range ts {
			highest = max(highest, v)
		}
	}
	return highest
}

// ReminderLog is an immutable ledger entry: a reminder for (org, deed, type, days)
// has been claimed and its side effects may run.
type ReminderLog struct {
	ID             int64        `json:"id"`
	OrganizationID int64        `json:"organization_id"`
	DeedID         int64        `json:"deed_id"`
	ReminderType   ReminderType `json:"reminder_type"`
	DaysBefore     int          `json:"days_before"`
	DeadlineDate   time.Time    `json:"deadline_date"`
	DryRun         bool         `json:"dry_run"`
	CreatedAt      time.Time    `json:"created_at"`
}
