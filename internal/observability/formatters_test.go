package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Cordxll/Resume-Builder/internal/types"
)

func TestPrintDocument(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	doc := &types.ResumeDocument{
		Contact: types.Contact{Name: "Jane Doe", Email: "jane@example.com"},
		Sections: map[types.SectionKind]types.Content{
			types.SectionSummary:    types.TextContent("Backend engineer."),
			types.SectionExperience: types.BulletContent("Led migration", "Cut latency"),
		},
	}

	p.PrintDocument(doc)
	output := buf.String()

	assert.Contains(t, output, "SEGMENTED RESUME")
	assert.Contains(t, output, "Jane Doe")
	assert.Contains(t, output, "jane@example.com")
	assert.Contains(t, output, "experience")
	assert.Contains(t, output, "2 bullets")
	assert.NotContains(t, output, "Phone:")
}

func TestPrintDocument_Degraded(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintDocument(&types.ResumeDocument{
		Sections: map[types.SectionKind]types.Content{types.SectionSummary: types.TextContent("text")},
		Degraded: true,
	})
	assert.Contains(t, buf.String(), "no headings found")
}

func TestPrintAnalysis(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	analysis := &types.JobAnalysis{
		Seniority: types.SenioritySenior,
		Requirements: []types.Requirement{
			{Term: "docker", Category: types.CategoryTool, Weight: 0.4},
			{Term: "go", Category: types.CategorySkill, Weight: 0.9, Required: true},
		},
		Responsibilities: []string{"Build services"},
	}

	p.PrintAnalysis(analysis)
	output := buf.String()

	assert.Contains(t, output, "JOB ANALYSIS")
	assert.Contains(t, output, "Senior")
	assert.Contains(t, output, "Build services")
	assert.Less(t, strings.Index(output, "go (skill"), strings.Index(output, "docker (tool"), "sorted by weight")
}

func TestPrintAnalysis_ManyRequirements(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	reqs := make([]types.Requirement, 8)
	for i := range reqs {
		reqs[i] = types.Requirement{Term: string(rune('a' + i)), Category: types.CategorySkill}
	}
	p.PrintAnalysis(&types.JobAnalysis{Requirements: reqs})

	assert.Contains(t, buf.String(), "... and 3 more")
}

func TestPrintTailoring(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	results := map[types.SectionKind]types.TailoringResult{
		types.SectionSummary: {
			Kind:     types.SectionSummary,
			Original: types.TextContent("Engineer."),
			Tailored: types.TextContent("Go engineer."),
			Changes:  []string{"Emphasized Go"},
		},
		types.SectionSkills: {
			Kind:     types.SectionSkills,
			Original: types.TextContent("Go"),
			Tailored: types.TextContent("Go"),
		},
	}

	p.PrintTailoring(results)
	output := buf.String()

	assert.Contains(t, output, "SUMMARY: tailored")
	assert.Contains(t, output, "Emphasized Go")
	assert.Contains(t, output, "SKILLS: unchanged")
	assert.Less(t, strings.Index(output, "SUMMARY"), strings.Index(output, "SKILLS"))
}

func TestPrintNotices(t *testing.T) {
	t.Run("none", func(t *testing.T) {
		var buf bytes.Buffer
		NewPrinter(&buf).PrintNotices(nil)
		assert.Contains(t, buf.String(), "NO NOTICES")
	})

	t.Run("some", func(t *testing.T) {
		var buf bytes.Buffer
		NewPrinter(&buf).PrintNotices([]types.Notice{
			{Kind: types.NoticeShapeMismatch, Section: types.SectionExperience, Message: "expected bullets content, got text"},
		})
		output := buf.String()
		assert.Contains(t, output, "shape_mismatch [experience]")
		assert.Contains(t, output, "expected bullets content")
	})
}

func TestNilInputsPrintNothing(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintDocument(nil)
	p.PrintAnalysis(nil)
	p.PrintTailoring(nil)

	assert.Empty(t, buf.String())
}

func TestPrintBox_ClipsLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("é", 100))

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth)
	}
	assert.Contains(t, buf.String(), "...")
}
