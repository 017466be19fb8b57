// Package extract turns registry documents into partial deed updates.
//
// Extraction is best-effort: values that cannot be recognised are left unset rather
// than reported, so callers get whatever the document yields. Only a document that
// cannot be read at all is an error.
package extract

import (
	"errors"
	"fmt"
	"strings"

	"lexdesk.app/deedwatch/internal/model"
)

type Mode string

const (
	// ModeTabular reads a CSV export from the notary's protocol book.
	ModeTabular Mode = "csv"
	// ModeScannedFiling reads the text layer of a registry filing receipt (PDF).
	ModeScannedFiling Mode = "asiento_pdf"
)

var (
	ErrUnreadable      = errors.New("document is unreadable")
	ErrUnsupportedMode = errors.New("unsupported extraction mode")
)

// ParseMode accepts both the wire names ("csv", "asiento_pdf") and the descriptive
// names ("tabular", "scanned-filing").
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv", "tabular":
		return ModeTabular, nil
	case "asiento_pdf", "scanned-filing", "scanned_filing", "pdf":
		return ModeScannedFiling, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedMode, s)
	}
}

// Extract returns the fields found in data. Only fields belonging to mode are ever
// populated: tabular yields protocol number, notary name and signing date; scanned
// filings yield asiento number and presentation timestamp.
func Extract(data []byte, mode Mode) (model.DeedFields, error) {
	switch mode {
	case ModeTabular:
		return extractTabular(data)
	case ModeScannedFiling:
		return extractScannedFiling(data)
	default:
		return model.DeedFields{}, fmt.Errorf("%w: %q", ErrUnsupportedMode, mode)
	}
}
