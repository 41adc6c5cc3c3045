package parsing

import (
	"strings"
	"unicode"

	"github.com/Cordxll/Resume-Builder/internal/segmentation"
	"github.com/Cordxll/Resume-Builder/internal/skills"
	"github.com/Cordxll/Resume-Builder/internal/types"
)

// maxResponsibilities caps the responsibilities returned by AnalyzeJob
const maxResponsibilities = 10

// isTokenRune keeps letters and digits of any script plus the symbols that belong
// inside technical terms (c++, c#, node.js, ci/cd)
func isTokenRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune("+#./'-", r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Extractor turns job description text into weighted requirements using a vocabulary
type Extractor struct {
	vocab   *skills.Vocabulary
	aliases segmentation.Aliases[Block]
}

// NewExtractor creates an extractor over vocab. A nil vocab uses skills.Default().
func NewExtractor(vocab *skills.Vocabulary) *Extractor {
	if vocab == nil {
		vocab = skills.Default()
	}
	return &Extractor{vocab: vocab, aliases: JobBlockAliases}
}

// Vocabulary returns the vocabulary the extractor matches against
func (e *Extractor) Vocabulary() *skills.Vocabulary {
	return e.vocab
}

var defaultExtractor = NewExtractor(nil)

// ExtractRequirements runs the default extractor over jobText
func ExtractRequirements(jobText string) []types.Requirement {
	return defaultExtractor.ExtractRequirements(jobText)
}

// AnalyzeJob runs the default extractor's full analysis over jobText
func AnalyzeJob(jobText string) *types.JobAnalysis {
	return defaultExtractor.AnalyzeJob(jobText)
}

// ExtractRequirements returns deduplicated requirements sorted by descending weight.
// Empty text yields an empty slice.
func (e *Extractor) ExtractRequirements(jobText string) []types.Requirement {
	if strings.TrimSpace(jobText) == "" {
		return []types.Requirement{}
	}

	tally := skills.NewTally()
	for _, line := range splitBlocks(splitLines(jobText), e.aliases) {
		if line.block == BlockOther {
			continue
		}
		for _, term := range e.matchTerms(line.text) {
			_, category, _ := e.vocab.Lookup(term)
			tally.Observe(term, category, line.block == BlockRequired, line.block == BlockPreferred)
		}
	}
	return skills.BuildRequirements(tally.Stats())
}

// AnalyzeJob returns requirements together with seniority and responsibilities
func (e *Extractor) AnalyzeJob(jobText string) *types.JobAnalysis {
	return &types.JobAnalysis{
		Requirements:     e.ExtractRequirements(jobText),
		Seniority:        DetectSeniority(jobText),
		Responsibilities: e.extractResponsibilities(jobText),
	}
}

// matchTerms finds vocabulary terms in one line, preferring the longest phrase at
// each position
func (e *Extractor) matchTerms(line string) []string {
	tokens := Tokenize(line)
	maxWords := e.vocab.MaxWords()

	var found []string
	for i := 0; i < len(tokens); {
		matched := 0
		for n := min(maxWords, len(tokens)-i); n >= 1; n-- {
			if term, _, ok := e.vocab.Lookup(strings.Join(tokens[i:i+n], " ")); ok {
				found = append(found, term)
				matched = n
				break
			}
		}
		if matched == 0 {
			matched = 1
			// "aws/gcp" style pairs name two terms
			if strings.Contains(tokens[i], "/") {
				for _, part := range strings.Split(tokens[i], "/") {
					if term, _, ok := e.vocab.Lookup(part); ok {
						found = append(found, term)
					}
				}
			}
		}
		i += matched
	}
	return found
}

// Tokenize lowercases text and splits it into word tokens in any script, trimming
// leading symbols and trailing punctuation such as a sentence-final period
func Tokenize(text string) []string {
	raw := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool { return !isTokenRune(r) })
	tokens := make([]string, 0, len(raw))
	for _, t := range raw {
		t = strings.TrimRight(strings.TrimLeftFunc(t, func(r rune) bool { return !isWordRune(r) }), "./'-")
		if t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// extractResponsibilities returns bullet lines from responsibilities blocks, or the
// block's plain lines when it has no bullets
func (e *Extractor) extractResponsibilities(jobText string) []string {
	var bullets, plain []string
	for _, line := range splitBlocks(splitLines(jobText), e.aliases) {
		if line.block != BlockResponsibilities {
			continue
		}
		trimmed := strings.TrimSpace(line.text)
		if trimmed == "" {
			continue
		}
		if segmentation.IsBullet(trimmed) {
			if text := segmentation.StripBullet(trimmed); text != "" {
				bullets = append(bullets, text)
			}
			continue
		}
		plain = append(plain, trimmed)
	}

	out := bullets
	if len(out) == 0 {
		out = plain
	}
	if len(out) > maxResponsibilities {
		out = out[:maxResponsibilities]
	}
	if out == nil {
		out = []string{}
	}
	return out
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(strings.ReplaceAll(text, "\r", "\n"), "\n")
}
