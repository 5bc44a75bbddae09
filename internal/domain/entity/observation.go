package entity

import "unicode/utf8"

// MaxObservationLen caps a tool observation handed back to the model, in bytes.
const MaxObservationLen = 20000

const truncatedMarker = "\n... (truncated)"

// TruncateObservation cuts s to MaxObservationLen bytes on a rune boundary.
func TruncateObservation(s string) string {
	if len(s) <= MaxObservationLen {
		return s
	}
	return CutRunes(s, MaxObservationLen) + truncatedMarker
}

// CutRunes returns the longest prefix of s that is at most n bytes and does
// not split a UTF-8 sequence.
func CutRunes(s string, n int) string {
	if n >= len(s) {
		return s
	}
	if n <= 0 {
		return ""
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
