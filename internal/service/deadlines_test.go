package service_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"lexdesk.app/deedwatch/internal/model"
	"lexdesk.app/deedwatch/internal/service"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var _ = Describe("AddBusinessDays", func() {
	DescribeTable("skips weekends",
		func(from time.Time, n int, want time.Time) {
			Expect(service.AddBusinessDays(from, n)).To(Equal(want))
		},
		Entry("within a week", date(2025, time.March, 10), 4, date(2025, time.March, 14)),
		Entry("across a weekend", date(2025, time.March, 14), 1, date(2025, time.March, 17)),
		Entry("starting on a Saturday", date(2025, time.March, 15), 1, date(2025, time.March, 17)),
		Entry("six weeks", date(2025, time.March, 10), 30, date(2025, time.April, 21)),
		Entry("zero days", date(2025, time.March, 10), 0, date(2025, time.March, 10)),
	)

	It("drops the time of day", func() {
		got := service.AddBusinessDays(time.Date(2025, time.March, 10, 17, 30, 0, 0, time.UTC), 1)
		Expect(got).To(Equal(date(2025, time.March, 11)))
	})
})

var _ = Describe("DeriveDeadlines", func() {
	It("derives the model 600 deadline from the signing date", func() {
		signing := date(2025, time.March, 10)
		fields := service.DeriveDeadlines(model.Deed{}, model.DeedFields{SigningDate: &signing})

		Expect(fields.Model600Deadline).To(HaveValue(Equal(date(2025, time.April, 21))))
		Expect(fields.AsientoExpirationDate).To(BeNil())
		Expect(fields.QualificationDeadline).To(BeNil())
	})

	It("derives registry deadlines from the presentation timestamp", func() {
		presented := time.Date(2025, time.March, 10, 10, 42, 0, 0, time.UTC)
		fields := service.DeriveDeadlines(model.Deed{}, model.DeedFields{PresentationAt: &presented})

		Expect(fields.QualificationDeadline).To(HaveValue(Equal(date(2025, time.March, 31))))
		Expect(fields.AsientoExpirationDate).To(HaveValue(Equal(date(2025, time.June, 2))))
		Expect(fields.Model600Deadline).To(BeNil())
	})

	It("never overwrites a deadline the deed already has", func() {
		existing := date(2025, time.May, 5)
		presented := date(2025, time.March, 10)
		deed := model.Deed{QualificationDeadline: &existing}

		fields := service.DeriveDeadlines(deed, model.DeedFields{PresentationAt: &presented})

		Expect(fields.QualificationDeadline).To(BeNil())
		Expect(fields.AsientoExpirationDate).NotTo(BeNil())
	})
})
