// Package tailoring runs the rewriter over the tailorable sections of a resume and
// normalizes its output into per-section results.
package tailoring

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Cordxll/Resume-Builder/internal/rewriting"
	"github.com/Cordxll/Resume-Builder/internal/types"
)

// DefaultTimeout bounds each rewriter call
const DefaultTimeout = 30 * time.Second

// Orchestrator tailors sections through a Rewriter, falling back to the original
// content whenever the rewriter is missing, fails, or returns unusable output.
type Orchestrator struct {
	rewriter   rewriting.Rewriter
	guard      *rewriting.Guard
	timeout    time.Duration
	guardKinds map[types.SectionKind]bool
	logger     *zap.Logger
}

// Option configures an Orchestrator
type Option func(*Orchestrator)

// WithTimeout overrides the per-call timeout
func WithTimeout(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithLogger sets the logger used for fallbacks and guard violations
func WithLogger(l *zap.Logger) Option {
	return func(o *Orchestrator) {
		if l != nil {
			o.logger = l
		}
	}
}

// New creates an Orchestrator. A nil rewriter makes every section fall back to the stub.
func New(rewriter rewriting.Rewriter, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		rewriter: rewriter,
		guard:    rewriting.NewGuard(),
		timeout:  DefaultTimeout,
		guardKinds: map[types.SectionKind]bool{
			types.SectionExperience: true,
			types.SectionSkills:     true,
		},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Outcome holds one result per tailorable section and the notices raised while tailoring
type Outcome struct {
	Results map[types.SectionKind]types.TailoringResult `json:"results"`
	Notices []types.Notice                              `json:"notices"`
}

// Tailor rewrites summary, experience and skills. It never fails because of the
// rewriter; only a nil document is an error.
func (o *Orchestrator) Tailor(ctx context.Context, doc *types.ResumeDocument, reqs []types.Requirement) (*Outcome, error) {
	if doc == nil {
		return nil, errors.New("resume document is required")
	}

	out := &Outcome{
		Results: make(map[types.SectionKind]types.TailoringResult, 3),
		Notices: []types.Notice{},
	}
	if o.rewriter == nil {
		out.Notices = append(out.Notices, types.Notice{
			Kind:    types.NoticeTailoringUnavailable,
			Message: "no rewriter configured; sections are returned unchanged",
		})
	}

	for _, kind := range types.TailorableKinds() {
		result, notices := o.tailorSection(ctx, kind, doc.Section(kind), reqs)
		out.Results[kind] = result
		out.Notices = append(out.Notices, notices...)
	}
	return out, nil
}

func (o *Orchestrator) tailorSection(ctx context.Context, kind types.SectionKind, original types.Content, reqs []types.Requirement) (types.TailoringResult, []types.Notice) {
	stub := types.TailoringResult{Kind: kind, Original: original.Clone(), Tailored: original.Clone()}

	if o.rewriter == nil || original.IsEmpty() {
		return stub, nil
	}

	callCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	tailored, changes, err := o.rewriter.Rewrite(callCtx, kind, original.Clone(), reqs)
	if err == nil && callCtx.Err() != nil {
		err = callCtx.Err()
	}
	if err != nil {
		o.logger.Warn("rewriter unavailable, using original content",
			zap.String("section", string(kind)),
			zap.Error(err))
		return stub, []types.Notice{{
			Kind:    types.NoticeTailoringUnavailable,
			Section: kind,
			Message: unavailableMessage(err),
		}}
	}

	if msg := shapeProblem(original, tailored); msg != "" {
		o.logger.Warn("rewriter returned mismatched shape",
			zap.String("section", string(kind)),
			zap.String("problem", msg))
		return stub, []types.Notice{{
			Kind:    types.NoticeShapeMismatch,
			Section: kind,
			Message: msg,
		}}
	}

	changes = cleanChanges(changes)
	var notices []types.Notice
	if o.guardKinds[kind] {
		guarded, violations := o.guard.Apply(original, tailored, reqs)
		if len(violations) > 0 {
			changes = rewriting.DropUnsupportedChanges(changes, violations)
			for _, v := range violations {
				o.logger.Info("reverted unsupported rewrite",
					zap.String("section", string(kind)),
					zap.Int("unit", v.Index),
					zap.Strings("terms", v.Terms))
			}
			notices = append(notices, types.Notice{
				Kind:    types.NoticeAntiFabricationViolation,
				Section: kind,
				Message: violationMessage(violations),
			})
		}
		tailored = guarded
	}

	result := types.TailoringResult{
		Kind:     kind,
		Original: original.Clone(),
		Tailored: tailored,
		Changes:  changes,
	}
	if result.Tailored.Equal(result.Original) {
		result.Changes = nil
	}
	return result, notices
}

// shapeProblem describes why tailored cannot stand in for original, or returns ""
func shapeProblem(original, tailored types.Content) string {
	if err := tailored.Validate(); err != nil {
		return err.Error()
	}
	if tailored.Shape != original.Shape {
		return fmt.Sprintf("expected %s content, got %s", original.Shape, tailored.Shape)
	}
	if original.Shape == types.ShapeBullets && len(tailored.Bullets) > len(original.Bullets) {
		return fmt.Sprintf("tailored has %d bullets, original has %d", len(tailored.Bullets), len(original.Bullets))
	}
	if tailored.IsEmpty() {
		return "tailored content is empty"
	}
	return ""
}

func cleanChanges(changes []string) []string {
	var out []string
	for _, c := range changes {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

func unavailableMessage(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "rewriter timed out; original content kept"
	}
	return "rewriter failed; original content kept"
}

func violationMessage(violations []rewriting.Violation) string {
	var terms []string
	seen := make(map[string]bool)
	for _, v := range violations {
		for _, t := range v.Terms {
			if !seen[t] {
				seen[t] = true
				terms = append(terms, t)
			}
		}
	}
	return fmt.Sprintf("%d suggestion(s) reverted for unsupported terms: %s", len(violations), strings.Join(terms, ", "))
}
