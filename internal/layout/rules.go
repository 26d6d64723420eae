package layout

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ApplyRule cases text according to a placeholder's content description.
// "all caps" wins over "title case", which wins over "sentence case".
func ApplyRule(text, description string) string {
	d := strings.ToLower(description)
	switch {
	case strings.Contains(d, "all-caps") || strings.Contains(d, "all caps"):
		return strings.ToUpper(text)
	case strings.Contains(d, "title case"):
		return TitleCase(text)
	case strings.Contains(d, "sentence case"):
		return SentenceCase(text)
	default:
		return text
	}
}

// Clip truncates text to maxChars runes. A non-positive maxChars disables clipping.
func Clip(text string, maxChars int) string {
	if maxChars <= 0 || utf8.RuneCountInString(text) <= maxChars {
		return text
	}
	return string([]rune(text)[:maxChars])
}

// SentenceCase trims s and upper-cases its first rune. The rest is left as is.
func SentenceCase(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// TitleCase upper-cases the first letter of every run of letters and
// lower-cases the rest.
func TitleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		isLetter := unicode.IsLetter(r)
		switch {
		case isLetter && !prevLetter:
			b.WriteRune(unicode.ToTitle(r))
		case isLetter:
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
		prevLetter = isLetter
	}
	return b.String()
}
