// Package segmentation splits unstructured resume text into named sections.
package segmentation

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/Cordxll/Resume-Builder/internal/types"
)

// maxHeadingChars and maxHeadingWords bound what can be treated as a heading line
const (
	maxHeadingChars = 50
	maxHeadingWords = 6
	maxExtraWords   = 2
)

// Aliases maps a heading key to the phrases that introduce it.
// It is static data so callers can substitute their own tables.
type Aliases[K comparable] map[K][]string

// DefaultAliases is the heading table used for resumes
var DefaultAliases = Aliases[types.SectionKind]{
	types.SectionSummary: {
		"summary", "professional summary", "career summary", "objective",
		"career objective", "profile", "professional profile", "about me",
	},
	types.SectionExperience: {
		"experience", "work experience", "professional experience", "employment",
		"employment history", "work history", "career history",
	},
	types.SectionEducation: {
		"education", "academic background", "education and training",
	},
	types.SectionSkills: {
		"skills", "technical skills", "core skills", "key skills", "competencies",
		"core competencies", "technologies",
	},
	types.SectionCertifications: {
		"certifications", "certification", "certificates", "licenses",
		"licenses and certifications",
	},
	types.SectionProjects: {
		"projects", "personal projects", "selected projects", "side projects",
	},
}

// DefaultStopHeadings end the current section without starting a tracked one
var DefaultStopHeadings = []string{
	"awards", "honors", "publications", "interests", "hobbies", "references",
	"languages", "volunteer", "volunteering", "volunteer experience", "activities",
}

// Match reports the key whose alias best matches line as a heading.
// When several aliases match, the longest one wins.
func (a Aliases[K]) Match(line string) (K, bool) {
	k, n := a.match(line)
	return k, n > 0
}

// MatchHeading is Match for lines that may carry content after a "Heading:" prefix.
// It returns the matched key and the trimmed inline remainder.
func (a Aliases[K]) MatchHeading(line string) (K, string, bool) {
	head, rest := SplitHeading(line)
	k, ok := a.Match(head)
	if !ok {
		var zero K
		return zero, "", false
	}
	return k, rest, true
}

// SplitHeading splits "Skills: Go, SQL" into the heading candidate and its inline content
func SplitHeading(line string) (string, string) {
	head, tail, found := strings.Cut(line, ":")
	if !found {
		return line, ""
	}
	return head, strings.TrimSpace(tail)
}

// match returns the winning key and the length of the winning alias (0 if none)
func (a Aliases[K]) match(line string) (K, int) {
	var best K
	bestLen := 0
	bestAlias := ""

	words, caps, ok := headingWords(line)
	if !ok {
		return best, 0
	}
	vocab := a.headingVocabulary()

	// Iterate in a fixed order so equal-length ties resolve the same way every run
	keys := make([]K, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return fmt.Sprint(keys[i]) < fmt.Sprint(keys[j])
	})

	for _, k := range keys {
		for _, alias := range a[k] {
			aliasWords := strings.Fields(normalizeHeading(alias))
			if len(aliasWords) == 0 || !containsPhrase(words, caps, aliasWords, vocab) {
				continue
			}
			n := len(strings.Join(aliasWords, " "))
			if n > bestLen || (n == bestLen && alias < bestAlias) {
				best, bestLen, bestAlias = k, n, alias
			}
		}
	}
	return best, bestLen
}

// headingWords normalizes a candidate heading line. caps marks words that began
// with an uppercase letter (or the whole line is uppercase).
func headingWords(line string) ([]string, []bool, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || len([]rune(trimmed)) > maxHeadingChars || IsBullet(trimmed) {
		return nil, nil, false
	}
	if strings.HasSuffix(trimmed, ".") || strings.HasSuffix(trimmed, ",") || strings.HasSuffix(trimmed, ";") {
		return nil, nil, false
	}

	allUpper := strings.ToUpper(trimmed) == trimmed
	raw := strings.Fields(strings.Map(headingRune, trimmed))
	if len(raw) == 0 || len(raw) > maxHeadingWords {
		return nil, nil, false
	}

	words := make([]string, len(raw))
	caps := make([]bool, len(raw))
	for i, w := range raw {
		words[i] = strings.ToLower(w)
		caps[i] = allUpper || unicode.IsUpper([]rune(w)[0])
	}
	return words, caps, true
}

// headingQualifiers may decorate an alias in a heading ("Relevant Experience")
var headingQualifiers = map[string]bool{
	"professional": true, "work": true, "technical": true, "relevant": true,
	"key": true, "core": true, "additional": true, "selected": true, "recent": true,
	"career": true, "academic": true, "other": true, "related": true, "notable": true,
	"industry": true, "our": true, "your": true, "the": true, "my": true,
}

// headingVocabulary returns every word used by the table's aliases
func (a Aliases[K]) headingVocabulary() map[string]bool {
	vocab := make(map[string]bool)
	for _, aliases := range a {
		for _, alias := range aliases {
			for _, w := range strings.Fields(normalizeHeading(alias)) {
				vocab[w] = true
			}
		}
	}
	return vocab
}

// containsPhrase checks that alias appears as a whole-word run in words, with at most
// maxExtraWords other words around it. Extra words must be capitalized like a title and
// be connectors, heading qualifiers or words of other aliases, so role lines such as
// "Education Coordinator" are not headings.
func containsPhrase(words []string, caps []bool, alias []string, vocab map[string]bool) bool {
	extra := len(words) - len(alias)
	if extra < 0 || extra > maxExtraWords {
		return false
	}
	for start := 0; start+len(alias) <= len(words); start++ {
		matched := true
		for j := range alias {
			if words[start+j] != alias[j] {
				matched = false
				break
			}
		}
		if !matched {
			continue
		}
		titled := true
		for i := range words {
			if i >= start && i < start+len(alias) {
				continue
			}
			if isConnector(words[i]) {
				continue
			}
			if !caps[i] || !(headingQualifiers[words[i]] || vocab[words[i]]) {
				titled = false
				break
			}
		}
		if titled {
			return true
		}
	}
	return false
}

func isConnector(w string) bool {
	switch w {
	case "and", "of", "&":
		return true
	}
	return false
}

// normalizeHeading lowercases and strips decoration so aliases and lines compare equal
func normalizeHeading(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(strings.Map(headingRune, s)), " "))
}

func headingRune(r rune) rune {
	if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '&' {
		return r
	}
	return ' '
}
