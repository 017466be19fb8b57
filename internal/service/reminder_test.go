package service_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"lexdesk.app/deedwatch/internal/model"
	"lexdesk.app/deedwatch/internal/reminder"
	"lexdesk.app/deedwatch/internal/service"
	"lexdesk.app/deedwatch/internal/store"
)

var _ = Describe("ReminderService", func() {
	var (
		ctx    context.Context
		runner *mockRunner
		deeds  *mockDeedStore
		logs   *mockReminderLogStore
		clock  time.Time
		svc    service.ReminderService
	)

	BeforeEach(func() {
		ctx = context.Background()
		runner = &mockRunner{}
		deeds = &mockDeedStore{
			getByIDFn: func(_ context.Context, id int64) (*model.Deed, error) {
				if id == 10 {
					return &model.Deed{ID: 10, OrganizationID: 1}, nil
				}
				return nil, store.ErrNotFound
			},
		}
		logs = &mockReminderLogStore{}
		clock = time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC)
		svc = service.NewReminderService(runner, deeds, logs, func() time.Time { return clock })
	})

	Describe("Run", func() {
		It("passes the injected clock and request through to the engine", func() {
			var got reminder.RunParams
			runner.runFn = func(_ context.Context, params reminder.RunParams) (reminder.RunResult, error) {
				got = params
				return reminder.RunResult{DryRun: params.DryRun}, nil
			}
			org := int64(1)

			res, err := svc.Run(ctx, service.RunRequest{OrgID: &org, DryRun: true})

			Expect(err).NotTo(HaveOccurred())
			Expect(res.DryRun).To(BeTrue())
			Expect(got.Now).To(Equal(clock))
			Expect(got.OrgID).To(HaveValue(Equal(int64(1))))
			Expect(got.DryRun).To(BeTrue())
		})
	})

	Describe("History", func() {
		It("lists the deed's ledger entries", func() {
			logs.listByDeedFn = func(_ context.Context, deedID int64) ([]model.ReminderLog, error) {
				return []model.ReminderLog{{ID: 1, DeedID: deedID, ReminderType: model.ReminderTypeAsiento, DaysBefore: 7}}, nil
			}

			entries, err := svc.History(ctx, 10, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(HaveLen(1))
			Expect(entries[0].DaysBefore).To(Equal(7))
		})

		It("returns ErrDeedNotFound for missing deeds", func() {
			_, err := svc.History(ctx, 11, nil)
			Expect(err).To(MatchError(service.ErrDeedNotFound))
		})

		It("hides deeds of other organizations", func() {
			other := int64(2)
			_, err := svc.History(ctx, 10, &other)
			Expect(err).To(MatchError(service.ErrDeedNotFound))
		})
	})
})
