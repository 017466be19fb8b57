package dto

import (
	"time"

	"lexdesk.app/deedwatch/internal/model"
)

const dateLayout = "2006-01-02"

type ExtractDeedRequest struct {
	DeedID ID     `json:"deed_id" binding:"required"`
	Type   string `json:"type" binding:"required,extract_mode"`
	Path   string `json:"path" binding:"required,notblank"`
	OrgID  *ID    `json:"org_id,omitempty"`
}

type ExtractDeedResponse struct {
	OK     bool           `json:"ok"`
	DeedID int64          `json:"deed_id,string"`
	Fields map[string]any `json:"fields"`
}

// ToExtractDeedResponse renders the applied fields with dates as YYYY-MM-DD and the
// presentation timestamp as RFC 3339.
func ToExtractDeedResponse(deedID int64, f model.DeedFields) ExtractDeedResponse {
	fields := make(map[string]any)
	if f.ProtocolNumber != nil {
		fields["protocol_number"] = *f.ProtocolNumber
	}
	if f.NotaryName != nil {
		fields["notary_name"] = *f.NotaryName
	}
	putDate(fields, "signing_date", f.SigningDate)
	if f.AsientoNumber != nil {
		fields["asiento_number"] = *f.AsientoNumber
	}
	if f.PresentationAt != nil {
		fields["presentation_at"] = f.PresentationAt.Format(time.RFC3339)
	}
	putDate(fields, "model600_deadline", f.Model600Deadline)
	putDate(fields, "asiento_expiration_date", f.AsientoExpirationDate)
	putDate(fields, "qualification_deadline", f.QualificationDeadline)

	return ExtractDeedResponse{OK: true, DeedID: deedID, Fields: fields}
}

func putDate(fields map[string]any, key string, t *time.Time) {
	if t != nil {
		fields[key] = t.Format(dateLayout)
	}
}
