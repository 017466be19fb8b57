package extract

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"lexdesk.app/deedwatch/internal/model"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Without a recognisable header the first row is read positionally.
var positionalKeys = []string{keyProtocolNumber, keyNotaryName, keySigningDate}

func extractTabular(data []byte) (model.DeedFields, error) {
	text, err := decodeText(data)
	if err != nil {
		return model.DeedFields{}, err
	}

	rows, err := readRows(text)
	if err != nil {
		return model.DeedFields{}, err
	}
	if len(rows) == 0 {
		return model.DeedFields{}, nil
	}

	columns, isHeader := headerColumns(rows[0])
	if !isHeader {
		return fieldsFromRow(rows[0], positionalColumns(len(rows[0]))), nil
	}
	if len(rows) < 2 {
		return model.DeedFields{}, nil
	}
	return fieldsFromRow(rows[1], columns), nil
}

// decodeText accepts UTF-8 (with or without BOM) and falls back to Windows-1252,
// which is what spreadsheet software on Spanish Windows installs tends to export.
func decodeText(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data), nil
	}
	out, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("%w: decoding text: %v", ErrUnreadable, err)
	}
	return string(out), nil
}

// readRows parses text with the delimiter detected from its first line and drops
// rows whose cells are all blank.
func readRows(text string) ([][]string, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = detectDelimiter(text)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	var rows [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: parsing csv: %v", ErrUnreadable, err)
		}
		if isBlankRow(rec) {
			continue
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

// detectDelimiter picks the most frequent candidate on the first non-blank line.
func detectDelimiter(text string) rune {
	var line string
	for _, l := range strings.Split(text, "\n") {
		if strings.TrimSpace(l) != "" {
			line = l
			break
		}
	}
	best, bestCount := ',', 0
	for _, d := range []rune{',', ';', '\t'} {
		if n := strings.Count(line, string(d)); n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}

func isBlankRow(rec []string) bool {
	for _, cell := range rec {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// headerColumns maps semantic keys to column indexes. The row counts as a header
// when at least one cell resolves to a known key; the first column wins on repeats.
func headerColumns(row []string) (map[string]int, bool) {
	columns := make(map[string]int)
	for i, cell := range row {
		key := HeaderKey(cell)
		if key == "" {
			continue
		}
		if _, seen := columns[key]; !seen {
			columns[key] = i
		}
	}
	return columns, len(columns) > 0
}

func positionalColumns(width int) map[string]int {
	columns := make(map[string]int, len(positionalKeys))
	for i, key := range positionalKeys {
		if i < width {
			columns[key] = i
		}
	}
	return columns
}

func fieldsFromRow(row []string, columns map[string]int) model.DeedFields {
	cell := func(key string) string {
		i, ok := columns[key]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var fields model.DeedFields
	if v := cell(keyProtocolNumber); v != "" {
		fields.ProtocolNumber = &v
	}
	if v := cell(keyNotaryName); v != "" {
		fields.NotaryName = &v
	}
	if t, ok := ParseDate(cell(keySigningDate)); ok {
		d := model.DateOf(t)
		fields.SigningDate = &d
	}
	return fields
}
