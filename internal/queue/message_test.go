package queue_test

import (
	"github.com/redis/go-redis/v9"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"lexdesk.app/deedwatch/internal/queue"
)

var _ = Describe("ParseMessage", func() {
	var values map[string]any

	BeforeEach(func() {
		// Redis hands every field back as a string.
		values = map[string]any{
			"reminder_log_id": "1900000000000000001",
			"organization_id": "7",
			"deed_id":         "42",
			"to":              "ana@despacho.es",
			"subject":         "Recordatorio T-5 Modelo 600 — Compraventa",
			"html":            "<p>hola</p>",
			"attempt":         "2",
			"traceparent":     "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01",
		}
	})

	It("parses a complete mail message", func() {
		msg, err := queue.ParseMessage(redis.XMessage{ID: "1-0", Values: values})

		Expect(err).NotTo(HaveOccurred())
		Expect(msg.ID).To(Equal("1-0"))
		Expect(msg.ReminderLogID).To(Equal(int64(1900000000000000001)))
		Expect(msg.OrganizationID).To(Equal(int64(7)))
		Expect(msg.DeedID).To(Equal(int64(42)))
		Expect(msg.To).To(Equal("ana@despacho.es"))
		Expect(msg.Attempt).To(Equal(2))
		Expect(msg.Traceparent).To(Equal("00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01"))
	})

	It("defaults the attempt counter to 1", func() {
		delete(values, "attempt")
		msg, err := queue.ParseMessage(redis.XMessage{ID: "1-0", Values: values})

		Expect(err).NotTo(HaveOccurred())
		Expect(msg.Attempt).To(Equal(1))
	})

	It("rejects a message without a ledger id", func() {
		delete(values, "reminder_log_id")
		_, err := queue.ParseMessage(redis.XMessage{ID: "1-0", Values: values})

		Expect(err).To(MatchError(ContainSubstring("missing reminder_log_id")))
	})

	It("rejects an empty recipient", func() {
		values["to"] = ""
		_, err := queue.ParseMessage(redis.XMessage{ID: "1-0", Values: values})

		Expect(err).To(HaveOccurred())
	})

	It("rejects a non-numeric deed id", func() {
		values["deed_id"] = "abc"
		_, err := queue.ParseMessage(redis.XMessage{ID: "1-0", Values: values})

		Expect(err).To(MatchError(ContainSubstring("parsing deed_id")))
	})
})
