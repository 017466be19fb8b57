package mailer_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"lexdesk.app/deedwatch/core/config"
	"lexdesk.app/deedwatch/internal/mailer"
	"lexdesk.app/deedwatch/internal/queue"
)

type mockProducer struct {
	enqueueFn func(ctx context.Context, msg queue.MailMessage) error
}

func (m *mockProducer) Enqueue(ctx context.Context, msg queue.MailMessage) error {
	if m.enqueueFn != nil {
		return m.enqueueFn(ctx, msg)
	}
	return nil
}

func (m *mockProducer) Close() error { return nil }

var _ = Describe("QueuedSender", func() {
	var (
		ctx      context.Context
		producer *mockProducer
		sender   *mailer.QueuedSender
	)

	BeforeEach(func() {
		ctx = context.Background()
		producer = &mockProducer{}
		sender = mailer.NewQueuedSender(producer)
	})

	It("enqueues the email with its ledger reference", func() {
		var captured queue.MailMessage
		producer.enqueueFn = func(_ context.Context, msg queue.MailMessage) error {
			captured = msg
			return nil
		}

		err := sender.Send(ctx, mailer.Email{
			To:             "ana@despacho.es",
			Subject:        "Recordatorio",
			HTML:           "<p>x</p>",
			ReminderLogID:  11,
			OrganizationID: 1,
			DeedID:         2,
		})

		Expect(err).NotTo(HaveOccurred())
		Expect(captured.ReminderLogID).To(Equal(int64(11)))
		Expect(captured.To).To(Equal("ana@despacho.es"))
		Expect(captured.Attempt).To(Equal(1))
	})

	It("refuses emails without a ledger reference", func() {
		err := sender.Send(ctx, mailer.Email{To: "ana@despacho.es"})
		Expect(err).To(HaveOccurred())
	})

	It("refuses emails without a recipient", func() {
		err := sender.Send(ctx, mailer.Email{ReminderLogID: 1})
		Expect(err).To(MatchError(mailer.ErrNoRecipient))
	})

	It("surfaces producer failures", func() {
		producer.enqueueFn = func(_ context.Context, _ queue.MailMessage) error {
			return errors.New("redis down")
		}
		err := sender.Send(ctx, mailer.Email{To: "a@b.es", ReminderLogID: 1})
		Expect(err).To(MatchError("redis down"))
	})
})

var _ = Describe("New", func() {
	It("builds a sender per delivery mode", func() {
		s, err := mailer.New(config.MailDeliveryLog, config.MailConfig{}, nil, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(s).To(BeAssignableToTypeOf(&mailer.LogSender{}))

		s, err = mailer.New(config.MailDeliveryQueue, config.MailConfig{}, &mockProducer{}, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(s).To(BeAssignableToTypeOf(&mailer.QueuedSender{}))

		s, err = mailer.New(config.MailDeliverySendGrid, config.MailConfig{SendGridKey: "SG.x"}, nil, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(s).To(BeAssignableToTypeOf(&mailer.SendGridSender{}))
	})

	It("requires a producer for queue delivery", func() {
		_, err := mailer.New(config.MailDeliveryQueue, config.MailConfig{}, nil, nil)
		Expect(err).To(HaveOccurred())
	})

	It("rejects unknown modes", func() {
		_, err := mailer.New("carrier-pigeon", config.MailConfig{}, nil, nil)
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("LogSender", func() {
	It("accepts an addressed email", func() {
		Expect(mailer.NewLogSender(nil).Send(context.Background(), mailer.Email{To: "a@b.es"})).To(Succeed())
	})

	It("rejects an email without a recipient", func() {
		Expect(mailer.NewLogSender(nil).Send(context.Background(), mailer.Email{})).To(MatchError(mailer.ErrNoRecipient))
	})
})
