// Package pipeline runs one tailoring request end to end: segmentation and requirement
// extraction in parallel, then tailoring, then a fresh edit store.
package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Cordxll/Resume-Builder/internal/parsing"
	"github.com/Cordxll/Resume-Builder/internal/reconcile"
	"github.com/Cordxll/Resume-Builder/internal/segmentation"
	"github.com/Cordxll/Resume-Builder/internal/tailoring"
	"github.com/Cordxll/Resume-Builder/internal/types"
)

// Step names reported in progress events
const (
	StepSegmentResume       = "segment_resume"
	StepExtractRequirements = "extract_requirements"
	StepTailorSections      = "tailor_sections"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Message  string `json:"message"`
	Duration int64  `json:"duration_ms"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs. Calls are serialized.
type ProgressCallback func(event ProgressEvent)

// Options holds the collaborators for a run. Nil fields fall back to defaults;
// a nil Orchestrator tailors with no rewriter, so every section keeps its original.
type Options struct {
	Segmenter    *segmentation.Segmenter
	Extractor    *parsing.Extractor
	Orchestrator *tailoring.Orchestrator
	Logger       *zap.Logger
	OnProgress   ProgressCallback
}

// Result is everything a run produces
type Result struct {
	Document *types.ResumeDocument
	Analysis *types.JobAnalysis
	Results  map[types.SectionKind]types.TailoringResult
	Notices  []types.Notice
	Store    *reconcile.Store
}

func (o *Options) defaults() {
	if o.Segmenter == nil {
		o.Segmenter = segmentation.New(segmentation.DefaultAliases)
	}
	if o.Extractor == nil {
		o.Extractor = parsing.NewExtractor(nil)
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Orchestrator == nil {
		o.Orchestrator = tailoring.New(nil, tailoring.WithLogger(o.Logger))
	}
}

func emitProgress(opts *Options, step, message string, started time.Time, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			Step:     step,
			Message:  message,
			Duration: time.Since(started).Milliseconds(),
			Content:  content,
		})
	}
}

// SegmentNotices returns the notices owed to the user for a segmented document
func SegmentNotices(doc *types.ResumeDocument) []types.Notice {
	if doc == nil || !doc.Degraded {
		return nil
	}
	return []types.Notice{{
		Kind:    types.NoticeParseDegraded,
		Section: types.SectionSummary,
		Message: "no section headings were recognized; the whole resume was placed in the summary",
	}}
}

// Run tailors resumeText to jobDescription. The only errors are unusable resume
// input and context cancellation; rewriter failures surface as notices.
func Run(ctx context.Context, resumeText, jobDescription string, opts Options) (*Result, error) {
	opts.defaults()
	log := opts.Logger

	if cb := opts.OnProgress; cb != nil {
		var mu sync.Mutex
		opts.OnProgress = func(event ProgressEvent) {
			mu.Lock()
			defer mu.Unlock()
			cb(event)
		}
	}

	g, gCtx := errgroup.WithContext(ctx)

	var doc *types.ResumeDocument
	var analysis *types.JobAnalysis

	g.Go(func() error {
		started := time.Now()
		d, err := opts.Segmenter.Segment(resumeText)
		if err != nil {
			return fmt.Errorf("resume segmentation failed: %w", err)
		}
		doc = d
		emitProgress(&opts, StepSegmentResume,
			fmt.Sprintf("Segmented resume into %d sections", len(d.Sections)), started, d)
		return nil
	})

	g.Go(func() error {
		started := time.Now()
		if err := gCtx.Err(); err != nil {
			return err
		}
		analysis = opts.Extractor.AnalyzeJob(jobDescription)
		emitProgress(&opts, StepExtractRequirements,
			fmt.Sprintf("Extracted %d requirements", len(analysis.Requirements)), started, analysis)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	notices := SegmentNotices(doc)
	if doc.Degraded {
		log.Info("no section headings recognized, resume kept as summary")
	}

	started := time.Now()
	outcome, err := opts.Orchestrator.Tailor(ctx, doc, analysis.Requirements)
	if err != nil {
		return nil, fmt.Errorf("tailoring failed: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	notices = append(notices, outcome.Notices...)
	emitProgress(&opts, StepTailorSections,
		fmt.Sprintf("Tailored %d sections with %d notices", len(outcome.Results), len(outcome.Notices)), started, nil)

	log.Debug("pipeline finished",
		zap.Int("sections", len(doc.Sections)),
		zap.Int("requirements", len(analysis.Requirements)),
		zap.Int("notices", len(notices)))

	return &Result{
		Document: doc,
		Analysis: analysis,
		Results:  outcome.Results,
		Notices:  notices,
		Store:    reconcile.NewStore(outcome.Results),
	}, nil
}
