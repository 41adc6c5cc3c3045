package segmentation

import (
	"regexp"
	"strings"

	"github.com/Cordxll/Resume-Builder/internal/types"
)

var (
	emailPattern   = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phonePattern   = regexp.MustCompile(`\+?\(?\d{1,3}\)?[-\s.]?\(?\d{3}\)?[-\s.]?\d{3,4}(?:[-\s.]?\d{4})?`)
	profilePattern = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?(?:linkedin\.com/in|github\.com)/[\w-]+/?`)
)

// extractContact pulls contact details, preferring the preamble over the full text
func extractContact(preamble []string, raw string) types.Contact {
	head := strings.Join(preamble, "\n")

	var c types.Contact
	c.Email = firstMatch(emailPattern, head, raw)
	c.ProfileLink = firstMatch(profilePattern, head, raw)
	c.Phone = strings.TrimSpace(firstMatch(phonePattern, head, ""))
	if c.Phone == "" {
		c.Phone = strings.TrimSpace(firstMatch(phonePattern, firstLines(raw, 5), ""))
	}

	c.Name = guessName(preamble)
	if c.Name == "" {
		c.Name = guessName(strings.Split(raw, "\n"))
	}
	return c
}

// guessName returns the first non-empty line that is not itself a contact detail
func guessName(lines []string) string {
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if emailPattern.MatchString(trimmed) || profilePattern.MatchString(trimmed) {
			return ""
		}
		if phonePattern.FindString(trimmed) == trimmed {
			return ""
		}
		return trimmed
	}
	return ""
}

func firstMatch(re *regexp.Regexp, primary, fallback string) string {
	if m := re.FindString(primary); m != "" {
		return m
	}
	if fallback == "" {
		return ""
	}
	return re.FindString(fallback)
}

func firstLines(s string, n int) string {
	lines := strings.SplitN(s, "\n", n+1)
	if len(lines) > n {
		lines = lines[:n]
	}
	return strings.Join(lines, "\n")
}
