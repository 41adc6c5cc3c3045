package export

import (
	"strings"
	"unicode"
)

// EscapeXML escapes text for use inside a WordprocessingML text run.
// Control characters other than tab are dropped since XML 1.0 cannot carry them.
func EscapeXML(text string) string {
	if text == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(text) + len(text)/8)

	for _, r := range text {
		switch r {
		case '&':
			result.WriteString("&amp;")
		case '<':
			result.WriteString("&lt;")
		case '>':
			result.WriteString("&gt;")
		case '"':
			result.WriteString("&quot;")
		case '\'':
			result.WriteString("&apos;")
		case '\t':
			result.WriteRune(r)
		default:
			if unicode.IsControl(r) {
				continue
			}
			result.WriteRune(r)
		}
	}

	return result.String()
}
