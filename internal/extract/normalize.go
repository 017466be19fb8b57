package extract

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripDiacritics decomposes s (compatibility form, so "º" becomes "o") and drops the
// combining marks. A fresh transformer per call keeps it safe for concurrent use.
func stripDiacritics(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// NormalizeHeader lowercases, strips diacritics and collapses every run of
// non-alphanumerics into one space: "Nº de Protocolo" -> "no de protocolo".
func NormalizeHeader(s string) string {
	s = strings.ToLower(stripDiacritics(s))

	var b strings.Builder
	b.Grow(len(s))
	pendingSpace := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
			continue
		}
		pendingSpace = true
	}
	return b.String()
}

const (
	keyProtocolNumber = "protocol_number"
	keyNotaryName     = "notary_name"
	keySigningDate    = "signing_date"
)

// Words that decorate a header without changing what it means.
var fillerTokens = map[string]bool{
	"de":     true,
	"del":    true,
	"el":     true,
	"la":     true,
	"n":      true,
	"no":     true,
	"nro":    true,
	"num":    true,
	"numero": true,
	"nombre": true,
}

var headerAliases = map[string]string{
	"protocolo":           keyProtocolNumber,
	"protocol":            keyProtocolNumber,
	"notario":             keyNotaryName,
	"notaria":             keyNotaryName,
	"notario autorizante": keyNotaryName,
	"notary":              keyNotaryName,
	"fecha firma":         keySigningDate,
	"firma":               keySigningDate,
	"fecha otorgamiento":  keySigningDate,
	"otorgamiento":        keySigningDate,
	"fecha escritura":     keySigningDate,
	"fecha autorizacion":  keySigningDate,
	"signing date":        keySigningDate,
}

// HeaderKey maps a raw column header to its semantic key, or "" when unknown.
func HeaderKey(raw string) string {
	tokens := strings.Fields(NormalizeHeader(raw))
	kept := tokens[:0]
	for _, t := range tokens {
		if !fillerTokens[t] {
			kept = append(kept, t)
		}
	}
	return headerAliases[strings.Join(kept, " ")]
}
