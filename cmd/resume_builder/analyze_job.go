package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Cordxll/Resume-Builder/internal/observability"
	"github.com/Cordxll/Resume-Builder/internal/parsing"
)

func newAnalyzeJobCmd(a *app) *cobra.Command {
	var job jobSource
	var outPath string

	cmd := &cobra.Command{
		Use:   "analyze-job",
		Short: "Extract weighted requirements from a job description",
		Long: `Read a job description (plain text, a saved HTML posting, or a posting URL) and
write its weighted requirements, detected seniority and responsibilities as JSON.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			text, err := job.load(cmd, a.log)
			if err != nil {
				return err
			}
			analysis := parsing.NewExtractor(nil).AnalyzeJob(text)
			a.log.Debug("job analyzed",
				zap.Int("requirements", len(analysis.Requirements)),
				zap.String("seniority", analysis.Seniority))

			if a.cfg.Debug {
				observability.NewPrinter(cmd.ErrOrStderr()).PrintAnalysis(analysis)
			}
			return writeJSON(cmd, outPath, analysis)
		},
	}

	job.addFlags(cmd)
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Path to the output JSON file (default stdout)")
	return cmd
}
