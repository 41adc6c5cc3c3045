// Package types provides type definitions for structured data used throughout the resume builder.
//
//nolint:revive // types is a standard Go package name pattern
package types

// RequirementCategory classifies a requirement term
type RequirementCategory string

const (
	CategorySkill         RequirementCategory = "skill"
	CategoryTool          RequirementCategory = "tool"
	CategoryQualification RequirementCategory = "qualification"
	CategorySoftSkill     RequirementCategory = "softSkill"
)

// Requirement is a normalized term extracted from a job description
type Requirement struct {
	Term     string              `json:"term"`
	Category RequirementCategory `json:"category"`
	Weight   float64             `json:"weight"`
	Required bool                `json:"required,omitempty"` // appeared inside a requirements block
}

// Seniority levels inferred from a job description
const (
	SenioritySenior       = "Senior"
	SeniorityMid          = "Mid-level"
	SeniorityJunior       = "Junior"
	SeniorityNotSpecified = "Not specified"
)

// JobAnalysis is the full output of job description analysis
type JobAnalysis struct {
	Requirements     []Requirement `json:"requirements"`
	Seniority        string        `json:"seniority"`
	Responsibilities []string      `json:"responsibilities"`
}

// Terms returns the requirement terms in order
func Terms(reqs []Requirement) []string {
	out := make([]string, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, r.Term)
	}
	return out
}
