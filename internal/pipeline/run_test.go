package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cordxll/Resume-Builder/internal/rewriting"
	"github.com/Cordxll/Resume-Builder/internal/segmentation"
	"github.com/Cordxll/Resume-Builder/internal/tailoring"
	"github.com/Cordxll/Resume-Builder/internal/types"
)

const resumeText = `Jane Doe
jane@example.com

SUMMARY
Backend engineer building internal tools.

EXPERIENCE
- Led migration project
- Wrote documentation

SKILLS
Go, PostgreSQL, Docker

EDUCATION
BSc Computer Science`

const jobText = `Senior Backend Engineer

Requirements:
- 5+ years of Go experience
- Experience leading a database migration
- Docker and Kubernetes

Nice to have:
- Terraform`

func noticeKinds(notices []types.Notice) []types.NoticeKind {
	var out []types.NoticeKind
	for _, n := range notices {
		out = append(out, n.Kind)
	}
	return out
}

func TestRun_WithRewriter(t *testing.T) {
	rewriter := rewriting.RewriterFunc(func(_ context.Context, kind types.SectionKind, original types.Content, _ []types.Requirement) (types.Content, []string, error) {
		if kind == types.SectionExperience {
			return types.BulletContent("Spearheaded migration project", "Wrote documentation"), []string{"Emphasized migration"}, nil
		}
		return original, nil, nil
	})

	var steps []string
	result, err := Run(context.Background(), resumeText, jobText, Options{
		Orchestrator: tailoring.New(rewriter),
		OnProgress:   func(e ProgressEvent) { steps = append(steps, e.Step) },
	})
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", result.Document.Contact.Name)
	assert.False(t, result.Document.Degraded)
	assert.NotEmpty(t, result.Analysis.Requirements)
	assert.Equal(t, types.SenioritySenior, result.Analysis.Seniority)
	assert.Empty(t, result.Notices)

	require.Len(t, result.Results, 3)
	exp := result.Results[types.SectionExperience]
	assert.Equal(t, []string{"Emphasized migration"}, exp.Changes)

	resolved, err := result.Store.Resolve(types.SectionExperience)
	require.NoError(t, err)
	assert.Equal(t, "Spearheaded migration project", resolved.Bullets[0])

	assert.ElementsMatch(t, []string{StepSegmentResume, StepExtractRequirements, StepTailorSections}, steps)
	assert.Equal(t, StepTailorSections, steps[len(steps)-1])
}

func TestRun_DefaultsFallBackToOriginal(t *testing.T) {
	result, err := Run(context.Background(), resumeText, jobText, Options{})
	require.NoError(t, err)

	assert.Equal(t, []types.NoticeKind{types.NoticeTailoringUnavailable}, noticeKinds(result.Notices))
	for kind, r := range result.Results {
		assert.Equal(t, r.Original, r.Tailored, kind)
	}
}

func TestRun_DegradedResume(t *testing.T) {
	result, err := Run(context.Background(), "just some text about me", jobText, Options{
		Orchestrator: tailoring.New(rewriting.Stub{}),
	})
	require.NoError(t, err)

	assert.True(t, result.Document.Degraded)
	assert.Equal(t, []types.NoticeKind{types.NoticeParseDegraded}, noticeKinds(result.Notices))
	assert.Equal(t, types.TextContent("just some text about me"), result.Results[types.SectionSummary].Original)
}

func TestRun_EmptyResume(t *testing.T) {
	_, err := Run(context.Background(), "   ", jobText, Options{})
	var inputErr *segmentation.InputError
	require.ErrorAs(t, err, &inputErr)
}

func TestRun_EmptyJobDescription(t *testing.T) {
	result, err := Run(context.Background(), resumeText, "", Options{Orchestrator: tailoring.New(rewriting.Stub{})})
	require.NoError(t, err)
	assert.Empty(t, result.Analysis.Requirements)
	assert.NotNil(t, result.Analysis.Requirements)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, resumeText, jobText, Options{Orchestrator: tailoring.New(rewriting.Stub{})})
	require.ErrorIs(t, err, context.Canceled)
}

func TestRun_RejectSummaryKeepsExperience(t *testing.T) {
	const resume = "John Doe\nSummary\nBuilt internal tools.\nExperience\n- Led migration project\n- Wrote documentation"
	const job = "Looking for a leader with migration experience."

	rewriter := rewriting.RewriterFunc(func(_ context.Context, kind types.SectionKind, original types.Content, _ []types.Requirement) (types.Content, []string, error) {
		switch kind {
		case types.SectionSummary:
			return types.TextContent("Built internal migration tools."), nil, nil
		case types.SectionExperience:
			return types.BulletContent("Led Kubernetes migration project", "Wrote migration documentation"), nil, nil
		}
		return original, nil, nil
	})

	tests := []struct {
		name           string
		orchestrator   *tailoring.Orchestrator
		wantExperience []string
	}{
		{
			name:           "stub",
			orchestrator:   tailoring.New(rewriting.Stub{}),
			wantExperience: []string{"Led migration project", "Wrote documentation"},
		},
		{
			name:           "rewriter",
			orchestrator:   tailoring.New(rewriter),
			wantExperience: []string{"Led migration project", "Wrote migration documentation"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Run(context.Background(), resume, job, Options{Orchestrator: tt.orchestrator})
			require.NoError(t, err)

			assert.Equal(t, types.TextContent("Built internal tools."), result.Document.Section(types.SectionSummary))
			assert.Equal(t, types.BulletContent("Led migration project", "Wrote documentation"),
				result.Document.Section(types.SectionExperience))

			reqs := result.Analysis.Requirements
			require.Len(t, reqs, 2)
			assert.Equal(t, "migration", reqs[0].Term)
			assert.Equal(t, "leader", reqs[1].Term)
			assert.Greater(t, reqs[0].Weight, reqs[1].Weight)

			accepted, err := result.Store.ToggleAccept(types.SectionSummary)
			require.NoError(t, err)
			assert.False(t, accepted)

			summary, err := result.Store.Resolve(types.SectionSummary)
			require.NoError(t, err)
			assert.Equal(t, types.TextContent("Built internal tools."), summary)

			experience, err := result.Store.Resolve(types.SectionExperience)
			require.NoError(t, err)
			assert.Equal(t, types.BulletContent(tt.wantExperience...), experience)
			assert.Contains(t, experience.String(), "migration")
			assert.NotContains(t, experience.String(), "Kubernetes")
		})
	}
}
