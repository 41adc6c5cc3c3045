package rewriting

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/Cordxll/Resume-Builder/internal/llm"
	"github.com/Cordxll/Resume-Builder/internal/prompts"
	"github.com/Cordxll/Resume-Builder/internal/schemas"
	"github.com/Cordxll/Resume-Builder/internal/types"
)

const (
	promptFile = "tailoring.json"
	// maxPromptRequirements bounds how many requirement terms are listed in a prompt
	maxPromptRequirements = 25
)

// JSONGenerator is the slice of llm.Client the rewriter needs
type JSONGenerator interface {
	GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error)
}

// LLMRewriter asks a language model for a rewrite of one section
type LLMRewriter struct {
	gen  JSONGenerator
	tier llm.ModelTier
}

// NewLLMRewriter creates a rewriter that calls gen at the advanced tier
func NewLLMRewriter(gen JSONGenerator) *LLMRewriter {
	return &LLMRewriter{gen: gen, tier: llm.TierAdvanced}
}

// SystemPrompt returns the instruction that should be installed on the model client
func SystemPrompt() string {
	return prompts.MustGet(promptFile, "system")
}

// Rewrite builds the prompt, calls the model and decodes its answer. The returned
// content has whatever shape the model chose; shape checks happen in the caller.
func (r *LLMRewriter) Rewrite(ctx context.Context, kind types.SectionKind, original types.Content, reqs []types.Requirement) (types.Content, []string, error) {
	if r.gen == nil {
		return types.Content{}, nil, &APICallError{Message: "no model client configured"}
	}

	prompt := BuildPrompt(kind, original, reqs)

	resp, err := r.gen.GenerateJSON(ctx, prompt, r.tier)
	if err != nil {
		return types.Content{}, nil, &APICallError{
			Message: fmt.Sprintf("failed to rewrite %s section", kind),
			Cause:   err,
		}
	}

	return ParseResponse(resp)
}

// BuildPrompt renders the rewrite prompt for one section
func BuildPrompt(kind types.SectionKind, original types.Content, reqs []types.Requirement) string {
	shapeRule := prompts.MustGet(promptFile, "shape-text")
	example := `"the tailored section"`
	originalText := original.Text
	if original.Shape == types.ShapeBullets {
		shapeRule = prompts.Format(prompts.MustGet(promptFile, "shape-bullets"), map[string]string{
			"MaxBullets": strconv.Itoa(len(original.Bullets)),
		})
		example = `["tailored bullet"]`
		lines := make([]string, len(original.Bullets))
		for i, b := range original.Bullets {
			lines[i] = "- " + b
		}
		originalText = strings.Join(lines, "\n")
	}

	return prompts.Format(prompts.MustGet(promptFile, "rewrite-section"), map[string]string{
		"Section":         string(kind),
		"SectionUpper":    strings.ToUpper(string(kind)),
		"ShapeRule":       shapeRule,
		"Requirements":    formatRequirements(reqs),
		"Original":        originalText,
		"TailoredExample": example,
	})
}

func formatRequirements(reqs []types.Requirement) string {
	if len(reqs) == 0 {
		return "(none extracted)"
	}
	var sb strings.Builder
	for i, r := range reqs {
		if i == maxPromptRequirements {
			break
		}
		marker := ""
		if r.Required {
			marker = ", required"
		}
		fmt.Fprintf(&sb, "- %s (%s%s)\n", r.Term, r.Category, marker)
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// rewriteResponse is the JSON shape requested from the model
type rewriteResponse struct {
	Tailored json.RawMessage `json:"tailored"`
	Changes  []string        `json:"changes"`
}

// ParseResponse validates and decodes a model answer
func ParseResponse(resp string) (types.Content, []string, error) {
	cleaned := llm.CleanJSONBlock(resp)
	if err := schemas.Validate(schemas.RewriteResponse, []byte(cleaned)); err != nil {
		return types.Content{}, nil, &ParseError{Message: "response does not match schema", Cause: err}
	}

	var parsed rewriteResponse
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return types.Content{}, nil, &ParseError{Message: "failed to decode response", Cause: err}
	}

	var content types.Content
	var text string
	if err := json.Unmarshal(parsed.Tailored, &text); err == nil {
		content = types.TextContent(strings.TrimSpace(text))
	} else {
		var bullets []string
		if err := json.Unmarshal(parsed.Tailored, &bullets); err != nil {
			return types.Content{}, nil, &ParseError{Message: "tailored is neither text nor bullets", Cause: err}
		}
		for i := range bullets {
			bullets[i] = strings.TrimSpace(bullets[i])
		}
		content = types.BulletContent(bullets...)
	}

	return content, parsed.Changes, nil
}
