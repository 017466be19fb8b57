package service

import (
	"time"

	"lexdesk.app/deedwatch/internal/model"
)

// Statutory periods counted in business days (Monday to Friday).
const (
	model600BusinessDays      = 30
	asientoBusinessDays       = 60
	qualificationBusinessDays = 15
)

// AddBusinessDays returns the civil date n weekdays after t's date. Weekends are
// skipped; public holidays are not known here.
func AddBusinessDays(t time.Time, n int) time.Time {
	d := model.DateOf(t)
	for n > 0 {
		d = d.AddDate(0, 0, 1)
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			n--
		}
	}
	return d
}

// DeriveDeadlines adds to fields the deadlines that follow from the extracted
// signing and presentation dates. A deadline the deed already has, or that fields
// already sets, is left alone.
func DeriveDeadlines(deed model.Deed, fields model.DeedFields) model.DeedFields {
	if fields.SigningDate != nil && deed.Model600Deadline == nil && fields.Model600Deadline == nil {
		d := AddBusinessDays(*fields.SigningDate, model600BusinessDays)
		fields.Model600Deadline = &d
	}

	if fields.PresentationAt != nil {
		if deed.AsientoExpirationDate == nil && fields.AsientoExpirationDate == nil {
			d := AddBusinessDays(*fields.PresentationAt, asientoBusinessDays)
			fields.AsientoExpirationDate = &d
		}
		if deed.QualificationDeadline == nil && fields.QualificationDeadline == nil {
			d := AddBusinessDays(*fields.PresentationAt, qualificationBusinessDays)
			fields.QualificationDeadline = &d
		}
	}

	return fields
}
