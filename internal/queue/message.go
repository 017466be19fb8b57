package queue

import (
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// MailMessage is a reminder email waiting for delivery. ReminderLogID is the ledger
// entry that authorised it and doubles as the delivery idempotency key.
type MailMessage struct {
	ReminderLogID  int64
	OrganizationID int64
	DeedID         int64
	To             string
	Subject        string
	HTML           string
	Traceparent    string // W3C traceparent of the run that queued it
	Attempt        int
}

// Message is a MailMessage read back from the stream.
type Message struct {
	ID string
	MailMessage
	LastError string
	Raw       redis.XMessage
}

func ParseMessage(msg redis.XMessage) (Message, error) {
	reminderLogID, err := parseInt64(msg.Values, "reminder_log_id")
	if err != nil {
		return Message{}, err
	}
	organizationID, err := parseInt64(msg.Values, "organization_id")
	if err != nil {
		return Message{}, err
	}
	deedID, err := parseInt64(msg.Values, "deed_id")
	if err != nil {
		return Message{}, err
	}
	to, err := parseString(msg.Values, "to")
	if err != nil {
		return Message{}, err
	}
	if to == "" {
		return Message{}, fmt.Errorf("empty recipient")
	}
	subject, err := parseString(msg.Values, "subject")
	if err != nil {
		return Message{}, err
	}
	html := parseOptionalString(msg.Values, "html")

	attempt, err := parseOptionalInt(msg.Values, "attempt")
	if err != nil {
		return Message{}, err
	}
	if attempt == 0 {
		attempt = 1
	}

	return Message{
		ID: msg.ID,
		MailMessage: MailMessage{
			ReminderLogID:  reminderLogID,
			OrganizationID: organizationID,
			DeedID:         deedID,
			To:             to,
			Subject:        subject,
			HTML:           html,
			Traceparent:    parseOptionalString(msg.Values, "traceparent"),
			Attempt:        attempt,
		},
		LastError: parseOptionalString(msg.Values, "last_error"),
		Raw:       msg,
	}, nil
}

func messageValues(msg MailMessage, attempt int) map[string]any {
	if attempt <= 0 {
		attempt = 1
	}
	values := map[string]any{
		"reminder_log_id": msg.ReminderLogID,
		"organization_id": msg.OrganizationID,
		"deed_id":         msg.DeedID,
		"to":              msg.To,
		"subject":         msg.Subject,
		"html":            msg.HTML,
		"attempt":         attempt,
	}
	if msg.Traceparent != "" {
		values["traceparent"] = msg.Traceparent
	}
	return values
}

func parseInt64(values map[string]any, key string) (int64, error) {
	raw, ok := values[key]
	if !ok {
		return 0, fmt.Errorf("missing %s", key)
	}
	num, err := strconv.ParseInt(fmt.Sprint(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", key, err)
	}
	return num, nil
}

func parseString(values map[string]any, key string) (string, error) {
	raw, ok := values[key]
	if !ok {
		return "", fmt.Errorf("missing %s", key)
	}
	return fmt.Sprint(raw), nil
}

func parseOptionalInt(values map[string]any, key string) (int, error) {
	raw, ok := values[key]
	if !ok {
		return 0, nil
	}
	num, err := strconv.Atoi(fmt.Sprint(raw))
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", key, err)
	}
	return num, nil
}

func parseOptionalString(values map[string]any, key string) string {
	raw, ok := values[key]
	if !ok {
		return ""
	}
	return fmt.Sprint(raw)
}
