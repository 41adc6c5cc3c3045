package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Cordxll/Resume-Builder/internal/export"
	"github.com/Cordxll/Resume-Builder/internal/reconcile"
	"github.com/Cordxll/Resume-Builder/internal/segmentation"
	"github.com/Cordxll/Resume-Builder/internal/session"
	"github.com/Cordxll/Resume-Builder/internal/types"
)

// Export formats
const (
	formatDOCX = "docx"
	formatText = "txt"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		sessionPath string
		outPath     string
		format      string
		rejects     []string
		accepts     []string
		overrides   map[string]string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render a tailored session as a Word document or plain text",
		Long: `Resolve every section of a session file written by "tailor" and render the result.
A section shows its override when one is given, the tailored suggestion when it is
accepted, and the original text otherwise. Suggestions are accepted by default.

An override file holds plain text for the summary and skills, and one line per bullet
for experience.`,
		Example: `  resume_builder export --session session.json --out resume.docx
  resume_builder export --session session.json --reject skills --override summary=summary.txt --out resume.docx`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != formatDOCX && format != formatText {
				return fmt.Errorf("unsupported format %q (want %s or %s)", format, formatDOCX, formatText)
			}

			data, err := readInput(cmd, sessionPath)
			if err != nil {
				return err
			}
			snap, err := session.DecodeSnapshot(data)
			if err != nil {
				return fmt.Errorf("invalid session file: %w", err)
			}
			st, err := snap.State()
			if err != nil {
				return fmt.Errorf("invalid session file: %w", err)
			}

			for _, name := range accepts {
				if err := setAccepted(st, name, true); err != nil {
					return err
				}
			}
			for _, name := range rejects {
				if err := setAccepted(st, name, false); err != nil {
					return err
				}
			}
			for _, name := range sortedKeys(overrides) {
				if err := applyOverride(st, name, overrides[name]); err != nil {
					return err
				}
			}

			final := export.Merge(st.Document, st.Store)
			var buf bytes.Buffer
			if format == formatText {
				err = export.WriteText(&buf, final)
			} else {
				err = export.WriteDOCX(&buf, final)
			}
			if err != nil {
				return fmt.Errorf("failed to render resume: %w", err)
			}
			a.log.Debug("resume exported", zap.String("format", format), zap.Int("bytes", buf.Len()))
			return writeOutput(cmd, outPath, buf.Bytes())
		},
	}

	cmd.Flags().StringVarP(&sessionPath, "session", "s", "", "Path to the session JSON file written by tailor, or - for stdin")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Path to the output file (default stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", formatDOCX, "Output format: docx or txt")
	cmd.Flags().StringSliceVar(&rejects, "reject", nil, "Sections whose suggestion is rejected (repeatable)")
	cmd.Flags().StringSliceVar(&accepts, "accept", nil, "Sections whose suggestion is accepted (repeatable)")
	cmd.Flags().StringToStringVar(&overrides, "override", nil, "Replace a section with the contents of a file, as kind=path")
	_ = cmd.MarkFlagRequired("session")
	return cmd
}

func setAccepted(st *session.State, name string, accepted bool) error {
	kind, err := types.ParseSectionKind(name)
	if err != nil {
		return err
	}
	if err := st.Store.SetAccepted(kind, accepted); err != nil {
		return fmt.Errorf("cannot change %s: %w", kind, err)
	}
	return nil
}

func applyOverride(st *session.State, name, path string) error {
	kind, err := types.ParseSectionKind(name)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read override for %s: %w", kind, err)
	}
	if err := st.Store.SetOverride(kind, overrideContent(kind, string(data))); err != nil {
		var empty *reconcile.EmptyOverrideError
		if errors.As(err, &empty) {
			return err
		}
		return fmt.Errorf("cannot override %s: %w", kind, err)
	}
	return nil
}

// overrideContent shapes file text for kind: one bullet per non-empty line, or trimmed text
func overrideContent(kind types.SectionKind, text string) types.Content {
	if kind.Shape() != types.ShapeBullets {
		return types.TextContent(strings.TrimSpace(text))
	}
	var bullets []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if segmentation.IsBullet(line) {
			line = segmentation.StripBullet(line)
		}
		if line != "" {
			bullets = append(bullets, line)
		}
	}
	return types.BulletContent(bullets...)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
