package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Cordxll/Resume-Builder/internal/types"
)

func TestVocabulary_Lookup(t *testing.T) {
	v := Default()

	tests := []struct {
		phrase   string
		term     string
		category types.RequirementCategory
		ok       bool
	}{
		{"Golang", "go", types.CategorySkill, true},
		{"K8s", "kubernetes", types.CategoryTool, true},
		{"Machine   Learning", "machine learning", types.CategorySkill, true},
		{"node.js", "node.js", types.CategoryTool, true},
		{"leader", "leader", types.CategorySoftSkill, true},
		{"bachelors", "bachelor", types.CategoryQualification, true},
		{"basket weaving", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.phrase, func(t *testing.T) {
			term, cat, ok := v.Lookup(tt.phrase)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.term, term)
			assert.Equal(t, tt.category, cat)
		})
	}
}

func TestVocabulary_AddAndMerge(t *testing.T) {
	v := NewVocabulary()
	assert.Equal(t, 1, v.MaxWords())

	v.Add("Clinical Trial Design", types.CategorySkill)
	v.AddSynonym("CTD", "clinical trial design")
	v.AddSynonym("orphan", "missing canonical")

	assert.Equal(t, 3, v.MaxWords())
	term, _, ok := v.Lookup("ctd")
	assert.True(t, ok)
	assert.Equal(t, "clinical trial design", term)
	_, _, ok = v.Lookup("orphan")
	assert.False(t, ok)

	base := Default()
	n := base.Len()
	base.Merge(v)
	assert.Equal(t, n+1, base.Len())
	term, _, ok = base.Lookup("CTD")
	assert.True(t, ok)
	assert.Equal(t, "clinical trial design", term)
}

func TestDefault_IsFreshCopy(t *testing.T) {
	a := Default()
	a.Add("cobol", types.CategorySkill)

	_, _, ok := Default().Lookup("cobol")
	assert.False(t, ok)
}
