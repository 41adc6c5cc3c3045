package skills

import (
	"math"
	"sort"

	"github.com/Cordxll/Resume-Builder/internal/types"
)

const (
	// Bonuses for terms appearing inside a dedicated heading block
	bonusRequiredBlock  = 0.5
	bonusPreferredBlock = 0.25
)

// categoryFactors scale the normalized occurrence count by requirement category
var categoryFactors = map[types.RequirementCategory]float64{
	types.CategorySkill:         1.0,
	types.CategoryTool:          1.0,
	types.CategoryQualification: 0.8,
	types.CategorySoftSkill:     0.6,
}

// TermStats accumulates occurrences of one canonical term in a job description
type TermStats struct {
	Term        string
	Category    types.RequirementCategory
	Count       int
	InRequired  bool
	InPreferred bool
}

// Tally collects TermStats in first-seen order
type Tally struct {
	stats []*TermStats
	index map[string]int
}

// NewTally creates an empty tally
func NewTally() *Tally {
	return &Tally{index: make(map[string]int)}
}

// Observe records one occurrence of term. required and preferred mark the heading
// block the occurrence was found in.
func (t *Tally) Observe(term string, category types.RequirementCategory, required, preferred bool) {
	key := NormalizeTerm(term)
	if key == "" {
		return
	}
	idx, ok := t.index[key]
	if !ok {
		t.stats = append(t.stats, &TermStats{Term: key, Category: category})
		idx = len(t.stats) - 1
		t.index[key] = idx
	}
	s := t.stats[idx]
	s.Count++
	s.InRequired = s.InRequired || required
	s.InPreferred = s.InPreferred || preferred
}

// Stats returns the collected stats in first-seen order
func (t *Tally) Stats() []TermStats {
	out := make([]TermStats, len(t.stats))
	for i, s := range t.stats {
		out[i] = *s
	}
	return out
}

// BuildRequirements converts term stats into weighted requirements. Weight is the
// occurrence count normalized by the most frequent term, scaled by category, plus a
// bonus for appearing in a requirements or preferred block. The result is sorted by
// descending weight, stable on ties by first-seen position.
func BuildRequirements(stats []TermStats) []types.Requirement {
	reqs := make([]types.Requirement, 0, len(stats))
	if len(stats) == 0 {
		return reqs
	}

	maxCount := 0
	for _, s := range stats {
		if s.Count > maxCount {
			maxCount = s.Count
		}
	}
	if maxCount == 0 {
		return reqs
	}

	for _, s := range stats {
		if s.Count == 0 {
			continue
		}
		factor, ok := categoryFactors[s.Category]
		if !ok {
			factor = categoryFactors[types.CategorySkill]
		}

		weight := float64(s.Count) / float64(maxCount) * factor
		switch {
		case s.InRequired:
			weight += bonusRequiredBlock
		case s.InPreferred:
			weight += bonusPreferredBlock
		}

		reqs = append(reqs, types.Requirement{
			Term:     s.Term,
			Category: s.Category,
			Weight:   math.Round(weight*1000) / 1000,
			Required: s.InRequired,
		})
	}

	sort.SliceStable(reqs, func(i, j int) bool {
		return reqs[i].Weight > reqs[j].Weight
	})
	return reqs
}
