package segmentation

import (
	"regexp"
	"strings"
	"unicode"
)

// bulletPattern matches symbol and numeric list markers at the start of a line
var bulletPattern = regexp.MustCompile(`^\s*(?:[•·▪◦‣●]\s*|[-*–]\s+|\d{1,2}[.)]\s+)`)

// IsBullet reports whether line starts with a list marker
func IsBullet(line string) bool {
	return bulletPattern.MatchString(line)
}

// StripBullet removes a leading list marker, returning the remaining text
func StripBullet(line string) string {
	return strings.TrimSpace(bulletPattern.ReplaceAllString(line, ""))
}

// isRule reports lines made only of separators such as "-----" or "====="
func isRule(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	for _, r := range trimmed {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// collectBullets turns section lines into ordered bullet entries. Marker lines start a
// new entry, a lowercase line right after a bullet continues it, and any other
// non-empty line (a role or employer header) is kept as its own entry.
func collectBullets(lines []string) []string {
	bullets := make([]string, 0, len(lines))
	lastWasBullet := false

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || isRule(trimmed) {
			lastWasBullet = false
			continue
		}

		if IsBullet(trimmed) {
			text := StripBullet(trimmed)
			if text == "" {
				continue
			}
			bullets = append(bullets, text)
			lastWasBullet = true
			continue
		}

		if lastWasBullet && startsLower(trimmed) {
			bullets[len(bullets)-1] += " " + trimmed
			continue
		}

		bullets = append(bullets, trimmed)
		lastWasBullet = false
	}
	return bullets
}

// collectText joins section lines into free text, trimming outer blank lines
func collectText(lines []string) string {
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		if isRule(line) {
			continue
		}
		cleaned = append(cleaned, strings.TrimSpace(line))
	}

	start, end := 0, len(cleaned)
	for start < end && cleaned[start] == "" {
		start++
	}
	for end > start && cleaned[end-1] == "" {
		end--
	}
	return strings.Join(cleaned[start:end], "\n")
}

func startsLower(s string) bool {
	for _, r := range s {
		return unicode.IsLower(r)
	}
	return false
}
