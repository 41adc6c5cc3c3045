package segmentation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cordxll/Resume-Builder/internal/types"
)

func TestSegment_ExampleResume(t *testing.T) {
	raw := "John Doe\nSummary\nBuilt internal tools.\nExperience\n- Led migration project\n- Wrote documentation"

	doc, err := Segment(raw)
	require.NoError(t, err)

	assert.False(t, doc.Degraded)
	assert.Equal(t, raw, doc.RawText)
	assert.Equal(t, "John Doe", doc.Contact.Name)
	assert.Equal(t, types.TextContent("Built internal tools."), doc.Sections[types.SectionSummary])
	assert.Equal(t,
		types.BulletContent("Led migration project", "Wrote documentation"),
		doc.Sections[types.SectionExperience])
	assert.Equal(t, []types.SectionKind{types.SectionSummary, types.SectionExperience}, doc.Kinds())
}

func TestSegment_NoHeadingsIsVerbatimSummary(t *testing.T) {
	inputs := []string{
		"Just a paragraph about me.\nAnother line.",
		"  leading spaces and trailing  \n\n",
		"- a bullet\n- another bullet",
	}

	for _, raw := range inputs {
		doc, err := Segment(raw)
		require.NoError(t, err)
		assert.True(t, doc.Degraded)
		assert.Len(t, doc.Sections, 1)
		assert.Equal(t, raw, doc.Sections[types.SectionSummary].Text)
		assert.Equal(t, raw, doc.RawText)
	}
}

func TestSegment_EmptyInput(t *testing.T) {
	for _, raw := range []string{"", "   ", "\n\t\n"} {
		doc, err := Segment(raw)
		assert.Nil(t, doc)
		var inputErr *InputError
		assert.ErrorAs(t, err, &inputErr)
	}
}

func TestSegment_FullResume(t *testing.T) {
	raw := `Jane Smith
jane.smith@example.com | (555) 123-4567 | linkedin.com/in/janesmith

PROFESSIONAL SUMMARY
Backend engineer with eight years of experience.

Work Experience
Senior Engineer, Acme Corp
• Led migration of billing to Go
  and reduced latency by 40%
• Mentored four engineers

Technical Skills: Go, PostgreSQL, Docker

Education
B.S. Computer Science, State University

Projects
1. Built a CLI for log search
2) Maintained an open source parser

Awards
Employee of the year

Certifications
AWS Certified Developer`

	doc, err := Segment(raw)
	require.NoError(t, err)

	assert.Equal(t, types.Contact{
		Name:        "Jane Smith",
		Email:       "jane.smith@example.com",
		Phone:       "(555) 123-4567",
		ProfileLink: "linkedin.com/in/janesmith",
	}, doc.Contact)

	assert.Equal(t, "Backend engineer with eight years of experience.", doc.Sections[types.SectionSummary].Text)
	assert.Equal(t, []string{
		"Senior Engineer, Acme Corp",
		"Led migration of billing to Go and reduced latency by 40%",
		"Mentored four engineers",
	}, doc.Sections[types.SectionExperience].Bullets)
	assert.Equal(t, "Go, PostgreSQL, Docker", doc.Sections[types.SectionSkills].Text)
	assert.Equal(t, "B.S. Computer Science, State University", doc.Sections[types.SectionEducation].Text)
	assert.Equal(t, []string{
		"Built a CLI for log search",
		"Maintained an open source parser",
	}, doc.Sections[types.SectionProjects].Bullets)
	assert.Equal(t, "AWS Certified Developer", doc.Sections[types.SectionCertifications].Text)

	// Lines under a stop heading are not attributed to any section
	for _, c := range doc.Sections {
		assert.NotContains(t, c.String(), "Employee of the year")
	}
}

func TestSegment_SentencesAreNotHeadings(t *testing.T) {
	raw := "Summary\nExperience leading teams\nSkills in Go.\nExperience\n- Did things"

	doc, err := Segment(raw)
	require.NoError(t, err)

	assert.Equal(t, "Experience leading teams\nSkills in Go.", doc.Sections[types.SectionSummary].Text)
	assert.Equal(t, []string{"Did things"}, doc.Sections[types.SectionExperience].Bullets)
}

func TestSegment_RoleTitlesAreNotHeadings(t *testing.T) {
	raw := "Jane Roe\nExperience\nEducation Coordinator\n- Ran district onboarding program\n- Managed budgets\n" +
		"Certification Specialist\n- Audited vendor licenses\nSkills\nExcel"

	doc, err := Segment(raw)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Education Coordinator",
		"Ran district onboarding program",
		"Managed budgets",
		"Certification Specialist",
		"Audited vendor licenses",
	}, doc.Sections[types.SectionExperience].Bullets)
	assert.True(t, doc.Section(types.SectionEducation).IsEmpty())
	assert.True(t, doc.Section(types.SectionCertifications).IsEmpty())
	assert.Equal(t, "Excel", doc.Sections[types.SectionSkills].Text)
}

func TestSegment_VolunteerExperienceIsStopHeading(t *testing.T) {
	doc, err := Segment("Experience\n- Built tools\nVolunteer Experience\n- Coached soccer")
	require.NoError(t, err)
	assert.Equal(t, []string{"Built tools"}, doc.Sections[types.SectionExperience].Bullets)
}

func TestSegment_RepeatedHeadingMerges(t *testing.T) {
	raw := "Experience\n- First\nSkills\nGo\nExperience\n- Second"

	doc, err := Segment(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"First", "Second"}, doc.Sections[types.SectionExperience].Bullets)
}

func TestSegment_CustomAliases(t *testing.T) {
	seg := New(Aliases[types.SectionKind]{
		types.SectionExperience: {"career"},
	})

	doc, err := seg.Segment("Career\n- Shipped things\nExperience\n- not a heading here")
	require.NoError(t, err)
	assert.Equal(t, []string{"Shipped things", "Experience", "not a heading here"}, doc.Sections[types.SectionExperience].Bullets)
}

func TestSegment_CRLF(t *testing.T) {
	doc, err := Segment("Summary\r\nHello there\r\nSkills\r\nGo")
	require.NoError(t, err)
	assert.Equal(t, "Hello there", doc.Sections[types.SectionSummary].Text)
	assert.Equal(t, "Go", doc.Sections[types.SectionSkills].Text)
}
