package reminder

import (
	"bytes"
	"fmt"
	htmltmpl "html/template"

	"lexdesk.app/deedwatch/internal/model"
)

const dateLayout = "2006-01-02"

var bodyTemplate = htmltmpl.Must(htmltmpl.New("reminder").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #1f2933;">
  <h2 style="margin-bottom: 4px;">{{.Label}}</h2>
  <p style="margin-top: 0;">Escritura: <strong>{{.Title}}</strong></p>
  <table cellpadding="4" style="border-collapse: collapse;">
    <tr><td>Vencimiento</td><td><strong>{{.Deadline}}</strong></td></tr>
    <tr><td>Días restantes</td><td><strong>{{.Days}}</strong></td></tr>
  </table>
  <p style="font-size: 12px; color: #52606d;">Se ha creado una tarea asociada en el expediente.</p>
</body>
</html>
`))

// Subject is shared by the email and the task title.
func Subject(deed model.Deed, c Candidate) string {
	return fmt.Sprintf("Recordatorio T-%d %s — %s", c.Days, c.Type.Label(), deed.Title)
}

// RenderBody renders the HTML email body. Deed titles are user input and get escaped.
func RenderBody(deed model.Deed, c Candidate) (string, error) {
	var buf bytes.Buffer
	err := bodyTemplate.Execute(&buf, struct {
		Label    string
		Title    string
		Deadline string
		Days     int
	}{
		Label:    c.Type.Label(),
		Title:    deed.Title,
		Deadline: c.Deadline.Format(dateLayout),
		Days:     c.Days,
	})
	if err != nil {
		return "", fmt.Errorf("rendering reminder body: %w", err)
	}
	return buf.String(), nil
}

// TaskDescription is the plain-text counterpart of the email body.
func TaskDescription(deed model.Deed, c Candidate) string {
	return fmt.Sprintf("%s de \"%s\" vence el %s (quedan %d días).",
		c.Type.Label(), deed.Title, c.Deadline.Format(dateLayout), c.Days)
}

// Priority is high when three days or fewer remain.
func Priority(days int) model.TaskPriority {
	if days <= 3 {
		return model.TaskPriorityHigh
	}
	return model.TaskPriorityMedium
}
