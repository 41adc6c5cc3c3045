package segmentation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Cordxll/Resume-Builder/internal/types"
)

func TestAliases_Match(t *testing.T) {
	tests := []struct {
		line   string
		want   types.SectionKind
		wantOK bool
	}{
		{"Experience", types.SectionExperience, true},
		{"WORK HISTORY", types.SectionExperience, true},
		{"## Professional Experience", types.SectionExperience, true},
		{"=== SKILLS ===", types.SectionSkills, true},
		{"Licenses & Certifications", types.SectionCertifications, true},
		{"Education and Training", types.SectionEducation, true},
		{"Relevant Experience", types.SectionExperience, true},
		{"Skills & Certifications", types.SectionCertifications, true},
		{"Experience leading distributed teams", "", false},
		{"Education Coordinator", "", false},
		{"Certification Specialist", "", false},
		{"Senior Experience Designer", "", false},
		{"- Experience", "", false},
		{"Built internal tools.", "", false},
		{"A very long line that mentions experience but is clearly a sentence in a paragraph", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, ok := DefaultAliases.Match(tt.line)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestAliases_LongestAliasWins(t *testing.T) {
	a := Aliases[string]{
		"generic":  {"skills"},
		"specific": {"technical skills"},
	}

	got, ok := a.Match("Technical Skills")
	assert.True(t, ok)
	assert.Equal(t, "specific", got)

	got, ok = a.Match("Skills")
	assert.True(t, ok)
	assert.Equal(t, "generic", got)
}

func TestAliases_TieIsDeterministic(t *testing.T) {
	a := Aliases[string]{
		"b": {"projects"},
		"a": {"projects"},
	}
	for i := 0; i < 10; i++ {
		got, ok := a.Match("Projects")
		assert.True(t, ok)
		assert.Equal(t, "a", got)
	}
}

func TestCollectBullets(t *testing.T) {
	lines := []string{
		"Engineer, Acme",
		"- Built service",
		"  handling payments",
		"",
		"* Wrote docs",
		"-----",
		"3. Ran on-call",
	}
	assert.Equal(t, []string{
		"Engineer, Acme",
		"Built service handling payments",
		"Wrote docs",
		"Ran on-call",
	}, collectBullets(lines))
}

func TestCollectText(t *testing.T) {
	assert.Equal(t, "a\n\nb", collectText([]string{"", "  a  ", "", "b", "", ""}))
	assert.Equal(t, "", collectText(nil))
}
