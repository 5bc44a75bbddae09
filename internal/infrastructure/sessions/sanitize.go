package sessions

import "regexp"

var (
	leadingNoise  = regexp.MustCompile("^(\\s|`)*(?i:python)?\\s*")
	trailingNoise = regexp.MustCompile("(\\s|`)*$")
)

// SanitizeInput strips markdown fences, an optional "python" language tag and
// surrounding whitespace that models tend to wrap code in.
func SanitizeInput(code string) string {
	code = leadingNoise.ReplaceAllString(code, "")
	return trailingNoise.ReplaceAllString(code, "")
}
