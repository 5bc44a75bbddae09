package entity

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestCutRunes(t *testing.T) {
	tests := []struct {
		name string
		s    string
		n    int
		want string
	}{
		{"short", "abc", 10, "abc"},
		{"ascii", "abcdef", 3, "abc"},
		{"inside two-byte rune", "aé", 2, "a"},
		{"after two-byte rune", "aéb", 3, "aé"},
		{"inside four-byte rune", "x😀", 3, "x"},
		{"zero", "abc", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CutRunes(tt.s, tt.n))
		})
	}
}

func TestTruncateObservation(t *testing.T) {
	assert.Equal(t, "15", TruncateObservation("15"))

	long := strings.Repeat("a", MaxObservationLen-1) + "é" + "tail"
	got := TruncateObservation(long)

	assert.True(t, utf8.ValidString(got))
	assert.True(t, strings.HasSuffix(got, "\n... (truncated)"))
	assert.Equal(t, strings.Repeat("a", MaxObservationLen-1), strings.TrimSuffix(got, "\n... (truncated)"))
}
