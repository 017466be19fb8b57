package reminder_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"lexdesk.app/deedwatch/internal/model"
	"lexdesk.app/deedwatch/internal/reminder"
)

var _ = Describe("Match", func() {
	today := date(2025, time.March, 10)

	It("fires only on exact thresholds", func() {
		for _, offset := range []int{6, 7, 8} {
			deed := model.Deed{ID: 1, AsientoExpirationDate: ptr(today.AddDate(0, 0, offset))}
			candidates := reminder.Match(deed, today)

			if offset == 7 {
				Expect(candidates).To(HaveLen(1))
				Expect(candidates[0].Type).To(Equal(model.ReminderTypeAsiento))
				Expect(candidates[0].Days).To(Equal(7))
			} else {
				Expect(candidates).To(BeEmpty(), "offset %d", offset)
			}
		}
	})

	It("evaluates each deadline type independently", func() {
		deed := model.Deed{
			ID:                    1,
			Model600Deadline:      ptr(today.AddDate(0, 0, 5)),
			QualificationDeadline: ptr(today.AddDate(0, 0, 5)),
		}

		candidates := reminder.Match(deed, today)
		Expect(candidates).To(HaveLen(2))
		Expect(candidates[0].Type).To(Equal(model.ReminderTypeModel600))
		Expect(candidates[1].Type).To(Equal(model.ReminderTypeQualification))
		Expect(candidates[0].Days).To(Equal(5))
		Expect(candidates[1].Days).To(Equal(5))
	})

	It("ignores deeds without deadlines", func() {
		Expect(reminder.Match(model.Deed{ID: 1}, today)).To(BeEmpty())
	})

	It("does not fire for past deadlines or the deadline day itself", func() {
		deed := model.Deed{
			Model600Deadline:      ptr(today),
			AsientoExpirationDate: ptr(today.AddDate(0, 0, -3)),
		}
		Expect(reminder.Match(deed, today)).To(BeEmpty())
	})

	It("uses type-specific thresholds", func() {
		deed := model.Deed{
			Model600Deadline:      ptr(today.AddDate(0, 0, 15)),
			AsientoExpirationDate: ptr(today.AddDate(0, 0, 15)),
		}
		candidates := reminder.Match(deed, today)
		Expect(candidates).To(HaveLen(1))
		Expect(candidates[0].Type).To(Equal(model.ReminderTypeAsiento))
	})

	It("ignores the time of day stored on a deadline", func() {
		deadline := time.Date(2025, time.March, 20, 18, 45, 0, 0, time.UTC)
		candidates := reminder.Match(model.Deed{Model600Deadline: &deadline}, today)
		Expect(candidates).To(HaveLen(1))
		Expect(candidates[0].Days).To(Equal(10))
		Expect(candidates[0].Deadline).To(Equal(date(2025, time.March, 20)))
	})
})

var _ = Describe("Priority", func() {
	It("is high at three days or fewer", func() {
		Expect(reminder.Priority(1)).To(Equal(model.TaskPriorityHigh))
		Expect(reminder.Priority(3)).To(Equal(model.TaskPriorityHigh))
		Expect(reminder.Priority(5)).To(Equal(model.TaskPriorityMedium))
		Expect(reminder.Priority(15)).To(Equal(model.TaskPriorityMedium))
	})
})

var _ = Describe("message rendering", func() {
	deed := model.Deed{ID: 9, Title: "Herencia <Gómez>"}
	c := reminder.Candidate{Type: model.ReminderTypeQualification, Days: 1, Deadline: date(2025, time.April, 2)}

	It("builds the subject from days, label and title", func() {
		Expect(reminder.Subject(deed, c)).To(Equal("Recordatorio T-1 Plazo de calificación — Herencia <Gómez>"))
	})

	It("renders the deadline literally and escapes the title", func() {
		body, err := reminder.RenderBody(deed, c)
		Expect(err).NotTo(HaveOccurred())
		Expect(body).To(ContainSubstring("2025-04-02"))
		Expect(body).To(ContainSubstring("Plazo de calificación"))
		Expect(body).To(ContainSubstring("Herencia &lt;Gómez&gt;"))
		Expect(body).NotTo(ContainSubstring("<Gómez>"))
	})
})
