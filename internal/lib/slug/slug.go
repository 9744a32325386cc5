package slug

import (
	"strconv"
	"strings"
	"unicode"
)

const maxBaseLen = 100

// Make derives a unique URL slug from a title. The millisecond timestamp
// suffix keeps repeated titles distinct.
func Make(title string, unixMilli int64) string {
	return Base(title) + "-" + strconv.FormatInt(unixMilli, 10)
}

// Base lower-cases the title, keeps latin letters, digits and Hangul
// syllables, collapses whitespace runs into single hyphens and truncates
// to 100 characters. Never returns an empty string.
func Base(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z',
			r >= '0' && r <= '9',
			r >= 0xAC00 && r <= 0xD7A3:
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}

	s := strings.Join(strings.Fields(b.String()), "-")

	if runes := []rune(s); len(runes) > maxBaseLen {
		s = strings.Trim(string(runes[:maxBaseLen]), "-")
	}

	if s == "" {
		return "post"
	}

	return s
}
