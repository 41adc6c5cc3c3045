package rewriting

import (
	"regexp"
	"strings"

	"github.com/Cordxll/Resume-Builder/internal/parsing"
	"github.com/Cordxll/Resume-Builder/internal/types"
)

// skillItemSeparator splits a skills paragraph into individual items
var skillItemSeparator = regexp.MustCompile(`[,;\n|•]+`)

// Violation records a tailored unit that introduced unsupported terms
type Violation struct {
	Index int      `json:"index"`
	Unit  string   `json:"unit"`
	Terms []string `json:"terms"`
}

// Guard checks that tailored content only uses words traceable to the original
// section or to the requirement vocabulary. Function words and common action verbs
// are always allowed so rewording is possible.
type Guard struct {
	allowed map[string]bool
}

// NewGuard creates a guard with the default allow-list
func NewGuard() *Guard {
	allowed := make(map[string]bool, len(stopWords)+len(actionVerbs))
	for w := range stopWords {
		allowed[w] = true
	}
	for w := range actionVerbs {
		allowed[stem(w)] = true
	}
	return &Guard{allowed: allowed}
}

// Check returns one Violation per tailored unit that uses a content word found
// neither in original nor in reqs. Units are bullets for bullet content and
// comma or line separated items for text.
func (g *Guard) Check(original, tailored types.Content, reqs []types.Requirement) []Violation {
	supported := g.vocabulary(original, reqs)

	var violations []Violation
	for i, unit := range units(tailored) {
		var unsupported []string
		seen := make(map[string]bool)
		for _, word := range parsing.Tokenize(unit) {
			s := stem(word)
			if g.allowed[word] || g.allowed[s] || supported[s] || seen[s] {
				continue
			}
			if strings.Contains(word, "/") && allPartsSupported(word, supported) {
				continue
			}
			seen[s] = true
			unsupported = append(unsupported, word)
		}
		if len(unsupported) > 0 {
			violations = append(violations, Violation{Index: i, Unit: unit, Terms: unsupported})
		}
	}
	return violations
}

// Apply neutralizes violations. A violating bullet is replaced by the original bullet
// at the same position, or the first original bullet not already used, or dropped.
// Text content with any violation reverts to the original text.
func (g *Guard) Apply(original, tailored types.Content, reqs []types.Requirement) (types.Content, []Violation) {
	violations := g.Check(original, tailored, reqs)
	if len(violations) == 0 {
		return tailored.Clone(), nil
	}
	if tailored.Shape != types.ShapeBullets || original.Shape != types.ShapeBullets {
		return original.Clone(), violations
	}

	bad := make(map[int]bool, len(violations))
	for _, v := range violations {
		bad[v.Index] = true
	}

	used := make(map[string]bool)
	for i, b := range tailored.Bullets {
		if !bad[i] {
			used[b] = true
		}
	}

	out := make([]string, 0, len(tailored.Bullets))
	for i, b := range tailored.Bullets {
		if !bad[i] {
			out = append(out, b)
			continue
		}
		if replacement, ok := pickOriginal(original.Bullets, i, used); ok {
			used[replacement] = true
			out = append(out, replacement)
		}
	}
	return types.BulletContent(out...), violations
}

// DropUnsupportedChanges removes every rationale that mentions a term flagged in
// violations, so explanations of reverted edits are not shown.
func DropUnsupportedChanges(changes []string, violations []Violation) []string {
	flagged := make(map[string]bool)
	for _, v := range violations {
		for _, t := range v.Terms {
			flagged[stem(t)] = true
		}
	}
	if len(flagged) == 0 {
		return changes
	}

	var out []string
	for _, c := range changes {
		if !mentionsAny(c, flagged) {
			out = append(out, c)
		}
	}
	return out
}

func mentionsAny(text string, stems map[string]bool) bool {
	for _, word := range parsing.Tokenize(text) {
		if stems[stem(word)] {
			return true
		}
		for _, part := range strings.Split(word, "/") {
			if stems[stem(part)] {
				return true
			}
		}
	}
	return false
}

func pickOriginal(originals []string, index int, used map[string]bool) (string, bool) {
	if index < len(originals) && !used[originals[index]] {
		return originals[index], true
	}
	for _, o := range originals {
		if !used[o] {
			return o, true
		}
	}
	return "", false
}

// vocabulary returns stems of every word in the original section and in the requirement terms
func (g *Guard) vocabulary(original types.Content, reqs []types.Requirement) map[string]bool {
	supported := make(map[string]bool)
	add := func(text string) {
		for _, word := range parsing.Tokenize(text) {
			supported[stem(word)] = true
			if strings.Contains(word, "/") {
				for _, part := range strings.Split(word, "/") {
					supported[stem(part)] = true
				}
			}
		}
	}
	add(original.String())
	for _, r := range reqs {
		add(r.Term)
	}
	return supported
}

func allPartsSupported(word string, supported map[string]bool) bool {
	for _, part := range strings.Split(word, "/") {
		if part != "" && !supported[stem(part)] {
			return false
		}
	}
	return true
}

// units splits content into the pieces the guard judges individually
func units(c types.Content) []string {
	if c.Shape == types.ShapeBullets {
		return c.Bullets
	}
	var out []string
	for _, item := range skillItemSeparator.Split(c.Text, -1) {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// stem reduces a word to a rough common root so inflections compare equal
func stem(word string) string {
	w := strings.TrimSuffix(strings.ToLower(word), "'s")
	if len(w) <= 3 {
		return w
	}

	switch {
	case strings.HasSuffix(w, "ies") && len(w) > 4:
		w = w[:len(w)-3] + "y"
	case strings.HasSuffix(w, "sses"), strings.HasSuffix(w, "ches"), strings.HasSuffix(w, "shes"), strings.HasSuffix(w, "xes"):
		w = w[:len(w)-2]
	case strings.HasSuffix(w, "s") && !strings.HasSuffix(w, "ss") && !strings.HasSuffix(w, "us"):
		w = w[:len(w)-1]
	}

	for _, suffix := range []string{"ing", "ion", "ed", "e"} {
		if strings.HasSuffix(w, suffix) && len(w)-len(suffix) >= 3 {
			return w[:len(w)-len(suffix)]
		}
	}
	return w
}

// stopWords carry no factual content
var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true, "but": true, "nor": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true, "with": true,
	"by": true, "from": true, "as": true, "into": true, "onto": true, "via": true, "per": true,
	"is": true, "are": true, "was": true, "were": true, "be": true, "been": true, "being": true,
	"have": true, "has": true, "had": true, "do": true, "does": true, "did": true,
	"this": true, "that": true, "these": true, "those": true, "it": true, "its": true,
	"their": true, "our": true, "my": true, "i": true, "we": true, "they": true,
	"while": true, "which": true, "who": true, "whose": true, "where": true, "when": true,
	"across": true, "through": true, "within": true, "over": true, "under": true,
	"both": true, "each": true, "also": true, "then": true, "than": true, "so": true,
	"using": true, "including": true, "resulting": true, "ensuring": true, "enabling": true,
	"other": true, "various": true, "multiple": true, "key": true, "new": true, "end": true,
}

// actionVerbs are rewording choices, not facts
var actionVerbs = map[string]bool{
	"achieved": true, "architected": true, "built": true, "created": true,
	"delivered": true, "designed": true, "developed": true, "engineered": true,
	"implemented": true, "improved": true, "increased": true, "launched": true,
	"led": true, "optimized": true, "reduced": true, "scaled": true,
	"shipped": true, "transformed": true, "drove": true, "owned": true,
	"spearheaded": true, "managed": true, "coordinated": true, "streamlined": true,
	"executed": true, "oversaw": true, "directed": true, "authored": true,
	"wrote": true, "produced": true, "established": true, "maintained": true,
	"supported": true, "collaborated": true, "partnered": true, "contributed": true,
	"championed": true, "facilitated": true, "enhanced": true, "modernized": true,
	"automated": true, "accelerated": true, "ran": true, "operated": true,
}
