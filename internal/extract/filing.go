package extract

import (
	"bytes"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"

	"lexdesk.app/deedwatch/internal/model"
)

// Patterns run against lowercased text with diacritics stripped, so "Núm."
// arrives as "num." and "Nº" as "no".
var (
	asientoPatterns = []*regexp.Regexp{
		regexp.MustCompile(`asiento\s*(?:de\s+presentacion\s*)?(?:numero|num\.?|n\.?\s*[o°]\.?|n\.)?\s*[:.]?\s*(\d{1,12})`),
		regexp.MustCompile(`(?:numero|num\.?|n\.?\s*[o°]\.?)\s*(?:de\s+)?asiento\s*[:.]?\s*(\d{1,12})`),
	}
	presentationPattern = regexp.MustCompile(
		`presentacion[^\d]{0,60}?(\d{1,2}/\d{1,2}/(?:\d{4}|\d{2}))(?:\s*(?:,|a\s+las|hora:?)?\s*(\d{1,2}:\d{2}(?::\d{2})?))?`,
	)
)

func extractScannedFiling(data []byte) (model.DeedFields, error) {
	text, err := pdfText(data)
	if err != nil {
		return model.DeedFields{}, err
	}
	return ParseFilingText(text), nil
}

// ParseFilingText pulls the asiento number and presentation timestamp out of the
// plain text of a filing receipt. The first match of each wins.
func ParseFilingText(text string) model.DeedFields {
	text = strings.ToLower(stripDiacritics(text))

	var fields model.DeedFields
	for _, re := range asientoPatterns {
		if n, ok := labeledNumber(re, text); ok {
			fields.AsientoNumber = &n
			break
		}
	}

	if m := presentationPattern.FindStringSubmatch(text); m != nil {
		raw := m[1]
		if m[2] != "" {
			raw += " " + m[2]
		}
		if t, ok := ParseDate(raw); ok {
			fields.PresentationAt = &t
		}
	}
	return fields
}

// labeledNumber returns the first match of re whose number is not the start of a
// date such as "14/04/2025" or "14.04.2025".
func labeledNumber(re *regexp.Regexp, text string) (int64, bool) {
	for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
		end := loc[3]
		if startsDate(text[end:]) {
			continue
		}
		if n, err := strconv.ParseInt(text[loc[2]:end], 10, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}

func startsDate(rest string) bool {
	if len(rest) < 2 {
		return false
	}
	switch rest[0] {
	case '/', '.', '-':
		return rest[1] >= '0' && rest[1] <= '9'
	}
	return false
}

// pdfText concatenates the plain text of every readable page. A page that fails is
// logged and skipped; the document is unreadable only when every page fails. The pdf
// reader panics on some malformed inputs, so panics are turned into errors.
func pdfText(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("%w: malformed pdf: %v", ErrUnreadable, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: opening pdf: %v", ErrUnreadable, err)
	}

	var (
		b       strings.Builder
		read    int
		lastErr error
	)
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := pagePlainText(page)
		if err != nil {
			slog.Warn("skipping unreadable pdf page", "page", i, "error", err)
			lastErr = fmt.Errorf("reading page %d: %w", i, err)
			continue
		}
		read++
		b.WriteString(pageText)
		b.WriteByte('\n')
	}
	if read == 0 && lastErr != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadable, lastErr)
	}
	return b.String(), nil
}

func pagePlainText(page pdf.Page) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("malformed page: %v", r)
		}
	}()
	return page.GetPlainText(nil)
}
