package parsing

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Cordxll/Resume-Builder/internal/types"
)

var (
	seniorPattern = regexp.MustCompile(`\b(senior|sr\.?|staff|principal)\b|\b(7|8|9|10|12|15)\+\s*years?\b`)
	midPattern    = regexp.MustCompile(`\bmid(-|\s)?level\b|\bintermediate\b|\b3\s*-\s*5\s*years?\b|\b4\s*-\s*6\s*years?\b`)
	juniorPattern = regexp.MustCompile(`\b(junior|jr\.?|entry(-|\s)?level|graduate|intern)\b|\b0\s*-\s*2\s*years?\b`)
	yearsPattern  = regexp.MustCompile(`(\d+)\+?\s*(?:-\s*\d+\s*)?years?`)
)

// DetectSeniority infers the experience level a job description asks for. Explicit
// level words win; otherwise the first "N years" figure decides.
func DetectSeniority(jobText string) string {
	lower := strings.ToLower(jobText)

	switch {
	case seniorPattern.MatchString(lower):
		return types.SenioritySenior
	case midPattern.MatchString(lower):
		return types.SeniorityMid
	case juniorPattern.MatchString(lower):
		return types.SeniorityJunior
	}

	m := yearsPattern.FindStringSubmatch(lower)
	if m == nil {
		return types.SeniorityNotSpecified
	}
	years, err := strconv.Atoi(m[1])
	if err != nil {
		return types.SeniorityNotSpecified
	}
	switch {
	case years >= 7:
		return types.SenioritySenior
	case years >= 3:
		return types.SeniorityMid
	default:
		return types.SeniorityJunior
	}
}
