// Package llm wraps the generative model used to suggest section rewrites.
package llm

// ModelTier selects a model by capability
type ModelTier string

const (
	// TierLite is for cheap, short completions
	TierLite ModelTier = "lite"
	// TierStandard is for structured output
	TierStandard ModelTier = "standard"
	// TierAdvanced is for rewriting where wording quality matters
	TierAdvanced ModelTier = "advanced"
)

const defaultTemperature float32 = 0.2

// Config holds model names per tier and sampling settings
type Config struct {
	Models      map[ModelTier]string
	Temperature float32
}

// DefaultConfig returns the Gemini model lineup
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		Temperature: defaultTemperature,
	}
}

// GetModel returns the model for tier, falling back to standard then lite
func (c *Config) GetModel(tier ModelTier) string {
	for _, t := range []ModelTier{tier, TierStandard, TierLite} {
		if m := c.Models[t]; m != "" {
			return m
		}
	}
	return ""
}

// WithModel returns a copy of c with model set for tier. An empty model leaves c unchanged.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	out := &Config{
		Models:      make(map[ModelTier]string, len(c.Models)+1),
		Temperature: c.Temperature,
	}
	for k, v := range c.Models {
		out.Models[k] = v
	}
	if model != "" {
		out.Models[tier] = model
	}
	return out
}
