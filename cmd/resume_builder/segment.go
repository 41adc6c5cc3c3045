package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Cordxll/Resume-Builder/internal/ingestion"
	"github.com/Cordxll/Resume-Builder/internal/observability"
	"github.com/Cordxll/Resume-Builder/internal/pipeline"
	"github.com/Cordxll/Resume-Builder/internal/segmentation"
	"github.com/Cordxll/Resume-Builder/internal/types"
)

// segmentOutput is what the segment command writes
type segmentOutput struct {
	Document *types.ResumeDocument `json:"document"`
	Metadata *ingestion.Metadata   `json:"metadata"`
	Notices  []types.Notice        `json:"notices"`
}

func newSegmentCmd(a *app) *cobra.Command {
	var resumePath, outPath string

	cmd := &cobra.Command{
		Use:   "segment",
		Short: "Split a resume into contact details and sections",
		Long: `Extract the text of a resume (plain text, Markdown, HTML, PDF or DOCX) and split it
into contact details and the summary, experience, skills, education and projects sections.
Pass "-" as --resume to read plain text from stdin.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			text, meta, err := loadDocument(cmd, resumePath)
			if err != nil {
				return err
			}
			doc, err := segmentation.Segment(text)
			if err != nil {
				return fmt.Errorf("failed to segment resume: %w", err)
			}
			a.log.Debug("resume segmented",
				zap.String("format", string(meta.Format)),
				zap.Int("sections", len(doc.Sections)),
				zap.Bool("degraded", doc.Degraded))

			notices := pipeline.SegmentNotices(doc)
			if a.cfg.Debug {
				printer := observability.NewPrinter(cmd.ErrOrStderr())
				printer.PrintDocument(doc)
				printer.PrintNotices(notices)
			}
			if notices == nil {
				notices = []types.Notice{}
			}
			return writeJSON(cmd, outPath, segmentOutput{Document: doc, Metadata: meta, Notices: notices})
		},
	}

	cmd.Flags().StringVarP(&resumePath, "resume", "r", "", "Path to the resume file, or - for stdin")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Path to the output JSON file (default stdout)")
	_ = cmd.MarkFlagRequired("resume")
	return cmd
}

// loadDocument reads path and extracts its plain text
func loadDocument(cmd *cobra.Command, path string) (string, *ingestion.Metadata, error) {
	data, err := readInput(cmd, path)
	if err != nil {
		return "", nil, err
	}
	name := ""
	if path != "-" {
		name = filepath.Base(path)
	}
	text, meta, err := ingestion.Ingest(name, "", data)
	if err != nil {
		return "", nil, fmt.Errorf("failed to extract text from %s: %w", path, err)
	}
	if strings.TrimSpace(text) == "" {
		return "", nil, fmt.Errorf("%s contains no text", path)
	}
	return text, meta, nil
}
