package model

import "time"

// Deed is a notarial instrument tracked through registry filing. Deadline fields are
// civil dates stored at UTC midnight; nil means "not known yet".
type Deed struct {
	ID                    int64      `json:"id"`
	OrganizationID        int64      `json:"organization_id"`
	Title                 string     `json:"title"`
	ProtocolNumber        *string    `json:"protocol_number,omitempty"`
	NotaryName            *string    `json:"notary_name,omitempty"`
	SigningDate           *time.Time `json:"signing_date,omitempty"`
	AsientoNumber         *int64     `json:"asiento_number,omitempty"`
	PresentationAt        *time.Time `json:"presentation_at,omitempty"`
	Model600Deadline      *time.Time `json:"model600_deadline,omitempty"`
	AsientoExpirationDate *time.Time `json:"asiento_expiration_date,omitempty"`
	QualificationDeadline *time.Time `json:"qualification_deadline,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

// Deadline returns the deadline tracked for the given reminder type.
func (d Deed) Deadline(t ReminderType) *time.Time {
	switch t {
	case ReminderTypeModel600:
		return d.Model600Deadline
	case ReminderTypeAsiento:
		return d.AsientoExpirationDate
	case ReminderTypeQualification:
		return d.QualificationDeadline
	default:
		return nil
	}
}

// HasAnyDeadline reports whether at least one of the three deadlines is set.
func (d Deed) HasAnyDeadline() bool {
	return d.Model600Deadline != nil || d.AsientoExpirationDate != nil || d.QualificationDeadline != nil
}
