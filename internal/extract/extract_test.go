package extract_test

import (
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"lexdesk.app/deedwatch/internal/extract"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var _ = Describe("HeaderKey", func() {
	DescribeTable("maps header variants to semantic keys",
		func(raw, want string) {
			Expect(extract.HeaderKey(raw)).To(Equal(want))
		},
		Entry("accented with ordinal sign", "Nº de Protocolo", "protocol_number"),
		Entry("snake case", "numero_protocolo", "protocol_number"),
		Entry("degree sign", "N° Protocolo", "protocol_number"),
		Entry("upper case", "PROTOCOLO", "protocol_number"),
		Entry("notary", "Notario", "notary_name"),
		Entry("notary with filler", "Nombre del Notario", "notary_name"),
		Entry("signing date", "Fecha de firma", "signing_date"),
		Entry("signing date accented", "Fecha de Otorgamiento", "signing_date"),
		Entry("unknown", "Cliente", ""),
	)
})

var _ = Describe("NormalizeHeader", func() {
	It("strips diacritics and collapses punctuation", func() {
		Expect(extract.NormalizeHeader("  Fecha   de  FIRMA (dd/mm) ")).To(Equal("fecha de firma dd mm"))
		Expect(extract.NormalizeHeader("Número_Protocolo")).To(Equal("numero protocolo"))
	})
})

var _ = Describe("ParseDate", func() {
	It("parses day/month/year", func() {
		t, ok := extract.ParseDate("05/03/2025")
		Expect(ok).To(BeTrue())
		Expect(t).To(Equal(date(2025, time.March, 5)))
	})

	It("treats two-digit years as 20YY", func() {
		t, ok := extract.ParseDate("5-3-25")
		Expect(ok).To(BeTrue())
		Expect(t).To(Equal(date(2025, time.March, 5)))
	})

	It("keeps the time of day when present", func() {
		t, ok := extract.ParseDate("14/02/2025 09:30")
		Expect(ok).To(BeTrue())
		Expect(t).To(Equal(time.Date(2025, time.February, 14, 9, 30, 0, 0, time.UTC)))
	})

	It("accepts ISO dates", func() {
		t, ok := extract.ParseDate("2025-03-05")
		Expect(ok).To(BeTrue())
		Expect(t).To(Equal(date(2025, time.March, 5)))
	})

	DescribeTable("rejects invalid input",
		func(raw string) {
			_, ok := extract.ParseDate(raw)
			Expect(ok).To(BeFalse())
		},
		Entry("empty", ""),
		Entry("impossible day", "31/02/2025"),
		Entry("month out of range", "01/13/2025"),
		Entry("free text", "pendiente"),
		Entry("hour out of range", "01/02/2025 25:00"),
	)
})

var _ = Describe("Extract", func() {
	Describe("tabular mode", func() {
		It("reads fields by header regardless of header spelling", func() {
			data := []byte("Nº de Protocolo;Notario;Fecha de firma\n1234/2025;María López;05/03/2025\n")

			fields, err := extract.Extract(data, extract.ModeTabular)
			Expect(err).NotTo(HaveOccurred())
			Expect(*fields.ProtocolNumber).To(Equal("1234/2025"))
			Expect(*fields.NotaryName).To(Equal("María López"))
			Expect(*fields.SigningDate).To(Equal(date(2025, time.March, 5)))
		})

		It("treats differently spelled headers as the same columns", func() {
			a, err := extract.Extract([]byte("Nº de Protocolo,Notario\n77,Ruiz\n"), extract.ModeTabular)
			Expect(err).NotTo(HaveOccurred())
			b, err := extract.Extract([]byte("numero_protocolo,notaria\n77,Ruiz\n"), extract.ModeTabular)
			Expect(err).NotTo(HaveOccurred())
			Expect(a).To(Equal(b))
		})

		It("falls back to positional columns without a header", func() {
			fields, err := extract.Extract([]byte("88,Pérez,01/04/2025\n"), extract.ModeTabular)
			Expect(err).NotTo(HaveOccurred())
			Expect(*fields.ProtocolNumber).To(Equal("88"))
			Expect(*fields.NotaryName).To(Equal("Pérez"))
			Expect(*fields.SigningDate).To(Equal(date(2025, time.April, 1)))
		})

		It("leaves unparseable dates unset", func() {
			fields, err := extract.Extract([]byte("protocolo,fecha firma\n12,sin fecha\n"), extract.ModeTabular)
			Expect(err).NotTo(HaveOccurred())
			Expect(*fields.ProtocolNumber).To(Equal("12"))
			Expect(fields.SigningDate).To(BeNil())
		})

		It("handles a UTF-8 BOM and blank lines", func() {
			data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("\nProtocolo\tNotario\n\n99\tGil\n")...)
			fields, err := extract.Extract(data, extract.ModeTabular)
			Expect(err).NotTo(HaveOccurred())
			Expect(*fields.ProtocolNumber).To(Equal("99"))
			Expect(*fields.NotaryName).To(Equal("Gil"))
		})

		It("decodes Windows-1252 exports", func() {
			// "Notario;Fecha de firma\nIbáñez;02/01/2025" with á=0xE1 and ñ=0xF1.
			data := []byte("Notario;Fecha de firma\nIb\xe1\xf1ez;02/01/2025\n")
			fields, err := extract.Extract(data, extract.ModeTabular)
			Expect(err).NotTo(HaveOccurred())
			Expect(*fields.NotaryName).To(Equal("Ibáñez"))
		})

		It("returns no fields for a header-only document", func() {
			fields, err := extract.Extract([]byte("protocolo,notario\n"), extract.ModeTabular)
			Expect(err).NotTo(HaveOccurred())
			Expect(fields.IsEmpty()).To(BeTrue())
		})

		It("never populates filing fields", func() {
			fields, err := extract.Extract([]byte("asiento,presentacion\n12,01/01/2025\n"), extract.ModeTabular)
			Expect(err).NotTo(HaveOccurred())
			Expect(fields.AsientoNumber).To(BeNil())
			Expect(fields.PresentationAt).To(BeNil())
		})
	})

	Describe("scanned filing mode", func() {
		readFixture := func(name string) []byte {
			data, err := os.ReadFile(filepath.Join("testdata", name))
			Expect(err).NotTo(HaveOccurred())
			return data
		}

		It("reads the receipt text across every page", func() {
			fields, err := extract.Extract(readFixture("filing_receipt.pdf"), extract.ModeScannedFiling)

			Expect(err).NotTo(HaveOccurred())
			Expect(fields.AsientoNumber).To(HaveValue(Equal(int64(1523))))
			Expect(fields.PresentationAt).To(HaveValue(Equal(time.Date(2025, time.February, 14, 10, 42, 0, 0, time.UTC))))
			Expect(fields.ProtocolNumber).To(BeNil())
			Expect(fields.SigningDate).To(BeNil())
		})

		It("skips a page it cannot read and keeps the rest", func() {
			fields, err := extract.Extract(readFixture("filing_receipt_bad_page.pdf"), extract.ModeScannedFiling)

			Expect(err).NotTo(HaveOccurred())
			Expect(fields.AsientoNumber).To(HaveValue(Equal(int64(904))))
			Expect(fields.PresentationAt).To(HaveValue(Equal(time.Date(2025, time.March, 3, 9, 15, 0, 0, time.UTC))))
		})

		It("reports unreadable documents", func() {
			_, err := extract.Extract([]byte("definitely not a pdf"), extract.ModeScannedFiling)
			Expect(err).To(MatchError(extract.ErrUnreadable))
		})
	})

	It("rejects unknown modes", func() {
		_, err := extract.Extract([]byte("x"), extract.Mode("xlsx"))
		Expect(err).To(MatchError(extract.ErrUnsupportedMode))
	})
})

var _ = Describe("ParseMode", func() {
	It("accepts wire and descriptive names", func() {
		Expect(extract.ParseMode("csv")).To(Equal(extract.ModeTabular))
		Expect(extract.ParseMode("asiento_pdf")).To(Equal(extract.ModeScannedFiling))
		Expect(extract.ParseMode("scanned-filing")).To(Equal(extract.ModeScannedFiling))
	})

	It("rejects anything else", func() {
		_, err := extract.ParseMode("docx")
		Expect(err).To(MatchError(extract.ErrUnsupportedMode))
	})
})

var _ = Describe("ParseFilingText", func() {
	It("finds the asiento number and presentation timestamp", func() {
		text := "REGISTRO DE LA PROPIEDAD\nAsiento Nº: 1523 del Diario 88\nFecha de presentación: 14/02/2025 a las 10:42\n"

		fields := extract.ParseFilingText(text)
		Expect(fields.AsientoNumber).NotTo(BeNil())
		Expect(*fields.AsientoNumber).To(Equal(int64(1523)))
		Expect(fields.PresentationAt).NotTo(BeNil())
		Expect(*fields.PresentationAt).To(Equal(time.Date(2025, time.February, 14, 10, 42, 0, 0, time.UTC)))
	})

	It("does not read a date after the word asiento as the number", func() {
		text := "Caducidad del asiento: 14/04/2025\nAsiento Nº 1523\nFecha de presentación: 14/02/2025 10:42"

		fields := extract.ParseFilingText(text)
		Expect(fields.AsientoNumber).To(HaveValue(Equal(int64(1523))))
		Expect(fields.PresentationAt).To(HaveValue(Equal(time.Date(2025, time.February, 14, 10, 42, 0, 0, time.UTC))))
	})

	It("skips dotted and dashed dates too", func() {
		Expect(extract.ParseFilingText("asiento 14.04.2025 y asiento 02-05-2025, asiento n. 77").AsientoNumber).
			To(HaveValue(Equal(int64(77))))
	})

	It("leaves the number unset when only dates follow the label", func() {
		Expect(extract.ParseFilingText("Caducidad del asiento: 14/04/2025").AsientoNumber).To(BeNil())
	})

	It("accepts the number-first wording", func() {
		fields := extract.ParseFilingText("Número de asiento 904")
		Expect(*fields.AsientoNumber).To(Equal(int64(904)))
	})

	It("reads a presentation date without a time", func() {
		fields := extract.ParseFilingText("PRESENTACIÓN 03/03/25")
		Expect(*fields.PresentationAt).To(Equal(date(2025, time.March, 3)))
	})

	It("returns nothing when the markers are missing", func() {
		fields := extract.ParseFilingText("Documento sin datos registrales")
		Expect(fields.IsEmpty()).To(BeTrue())
	})
})
