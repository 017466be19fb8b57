package model

import "time"

// DeedFields is a partial deed update. Nil members are left untouched.
type DeedFields struct {
	ProtocolNumber        *string    `json:"protocol_number,omitempty"`
	NotaryName            *string    `json:"notary_name,omitempty"`
	SigningDate           *time.Time `json:"signing_date,omitempty"`
	AsientoNumber         *int64     `json:"asiento_number,omitempty"`
	PresentationAt        *time.Time `json:"presentation_at,omitempty"`
	Model600Deadline      *time.Time `json:"model600_deadline,omitempty"`
	AsientoExpirationDate *time.Time `json:"asiento_expiration_date,omitempty"`
	QualificationDeadline *time.Time `json:"qualification_deadline,omitempty"`
}

// Names lists the populated fields using their column names.
func (f DeedFields) Names() []string {
	var names []string
	if f.ProtocolNumber != nil {
		names = append(names, "protocol_number")
	}
	if f.NotaryName != nil {
		names = append(names, "notary_name")
	}
	if f.SigningDate != nil {
		names = append(names, "signing_date")
	}
	if f.AsientoNumber != nil {
		names = append(names, "asiento_number")
	}
	if f.PresentationAt != nil {
		names = append(names, "presentation_at")
	}
	if f.Model600Deadline != nil {
		names = append(names, "model600_deadline")
	}
	if f.AsientoExpirationDate != nil {
		names = append(names, "asiento_expiration_date")
	}
	if f.QualificationDeadline != nil {
		names = append(names, "qualification_deadline")
	}
	return names
}

func (f DeedFields) IsEmpty() bool {
	return len(f.Names()) == 0
}
