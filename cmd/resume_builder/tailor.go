package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Cordxll/Resume-Builder/internal/observability"
	"github.com/Cordxll/Resume-Builder/internal/pipeline"
	"github.com/Cordxll/Resume-Builder/internal/session"
	"github.com/Cordxll/Resume-Builder/internal/tailoring"
)

func newTailorCmd(a *app) *cobra.Command {
	var resumePath, outPath, apiKey string
	var jobSrc jobSource

	cmd := &cobra.Command{
		Use:   "tailor",
		Short: "Suggest tailored rewrites of a resume for a job description",
		Long: `Segment the resume, extract the job's requirements and ask the model to rewrite the
summary, experience and skills sections. The output is a session file holding the
original document, every suggestion and its accept state; edit it with "export --reject"
or "export --override" to produce the final resume.

Without GEMINI_API_KEY (or --api-key) every section keeps its original content.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if resumePath == "-" && jobSrc.path == "-" {
				return errors.New("--resume and --job cannot both read stdin")
			}
			resume, _, err := loadDocument(cmd, resumePath)
			if err != nil {
				return err
			}
			job, err := jobSrc.load(cmd, a.log)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			rewriter, err := a.rewriter(ctx, apiKey)
			if err != nil {
				return err
			}

			log := a.log
			result, err := pipeline.Run(ctx, resume, job, pipeline.Options{
				Orchestrator: tailoring.New(rewriter,
					tailoring.WithTimeout(a.cfg.RewriteTimeout),
					tailoring.WithLogger(log)),
				Logger: log,
				OnProgress: func(event pipeline.ProgressEvent) {
					log.Info(event.Message,
						zap.String("step", event.Step),
						zap.Int64("duration_ms", event.Duration))
				},
			})
			if err != nil {
				return fmt.Errorf("tailoring failed: %w", err)
			}

			if a.cfg.Debug {
				printer := observability.NewPrinter(cmd.ErrOrStderr())
				printer.PrintAnalysis(result.Analysis)
				printer.PrintTailoring(result.Results)
				printer.PrintNotices(result.Notices)
			}

			snap := &session.Snapshot{
				Document:     result.Document,
				Requirements: result.Analysis.Requirements,
				Edits:        result.Store.Snapshot(),
				Notices:      result.Notices,
			}
			data, err := snap.Encode()
			if err != nil {
				return err
			}
			return writeOutput(cmd, outPath, append(data, '\n'))
		},
	}

	cmd.Flags().StringVarP(&resumePath, "resume", "r", "", "Path to the resume file, or - for stdin")
	jobSrc.addFlags(cmd)
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Path to the session JSON file (default stdout)")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	_ = cmd.MarkFlagRequired("resume")
	return cmd
}
