package dataprocessing

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"
)

// maxRepairPasses bounds how many layers of mis-decoding RepairText peels off.
const maxRepairPasses = 8

// misdecodings are the single-byte charsets UTF-8 text is commonly read as.
var misdecodings = []*charmap.Charmap{
	charmap.Windows1252,
	charmap.ISO8859_1,
}

// RepairText undoes UTF-8 text that was decoded as Windows-1252 or Latin-1,
// possibly more than once, and returns it in NFC. Correct text is returned
// unchanged apart from normalization, so RepairText is idempotent.
func RepairText(s string) string {
	if s == "" {
		return s
	}
	out := norm.NFC.String(s)
	for i := 0; i < maxRepairPasses; i++ {
		fixed, ok := undoMisdecode(out)
		if !ok {
			break
		}
		out = norm.NFC.String(fixed)
	}
	return out
}

// RepairCell applies RepairText to string values; anything else, nil
// included, is returned untouched.
func RepairCell(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	return RepairText(s)
}

// undoMisdecode re-encodes s in each candidate charset and accepts the first
// result whose bytes form valid UTF-8 different from s.
func undoMisdecode(s string) (string, bool) {
	if isASCII(s) {
		return s, false
	}
	for _, cm := range misdecodings {
		raw, err := cm.NewEncoder().String(s)
		if err != nil {
			continue
		}
		if raw == s || !utf8.ValidString(raw) {
			continue
		}
		return raw, true
	}
	return s, false
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
