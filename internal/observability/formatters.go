// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/Cordxll/Resume-Builder/internal/logger"
	"github.com/Cordxll/Resume-Builder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// clip shortens s so that it fits in width columns
func clip(s string, width int) string {
	if len([]rune(s)) <= width {
		return s
	}
	return logger.TruncateForLog(s, width-3)
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, clip(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintDocument outputs the segmented resume: contact fields and each section's size.
func (p *Printer) PrintDocument(doc *types.ResumeDocument) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Name:     %s\n", doc.Contact.Name)
	if doc.Contact.Email != "" {
		fmt.Fprintf(&sb, "Email:    %s\n", doc.Contact.Email)
	}
	if doc.Contact.Phone != "" {
		fmt.Fprintf(&sb, "Phone:    %s\n", doc.Contact.Phone)
	}
	if doc.Contact.ProfileLink != "" {
		fmt.Fprintf(&sb, "Link:     %s\n", doc.Contact.ProfileLink)
	}
	sb.WriteString("\n")

	kinds := doc.Kinds()
	if len(kinds) == 0 {
		sb.WriteString("No sections detected\n")
	}
	for _, kind := range kinds {
		content := doc.Section(kind)
		if content.Shape == types.ShapeBullets {
			fmt.Fprintf(&sb, "  • %-16s %d bullets\n", kind, len(content.Bullets))
		} else {
			fmt.Fprintf(&sb, "  • %-16s %d chars\n", kind, len([]rune(content.Text)))
		}
	}
	if doc.Degraded {
		sb.WriteString("\n⚠ no headings found; text kept as summary\n")
	}

	p.printBox("SEGMENTED RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAnalysis outputs the job's seniority and its highest weighted requirements.
func (p *Printer) PrintAnalysis(analysis *types.JobAnalysis) {
	if analysis == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Seniority: %s\n\n", analysis.Seniority)

	if len(analysis.Requirements) > 0 {
		reqs := make([]types.Requirement, len(analysis.Requirements))
		copy(reqs, analysis.Requirements)
		sort.SliceStable(reqs, func(i, j int) bool { return reqs[i].Weight > reqs[j].Weight })

		sb.WriteString("Requirements:\n")
		count := min(len(reqs), maxItemsToShow)
		for i := 0; i < count; i++ {
			fmt.Fprintf(&sb, "  • %s (%s, %.2f)", reqs[i].Term, reqs[i].Category, reqs[i].Weight)
			if reqs[i].Required {
				sb.WriteString(" *")
			}
			sb.WriteString("\n")
		}
		if len(reqs) > maxItemsToShow {
			fmt.Fprintf(&sb, "  ... and %d more\n", len(reqs)-maxItemsToShow)
		}
		sb.WriteString("\n")
	}

	if len(analysis.Responsibilities) > 0 {
		sb.WriteString("Responsibilities:\n")
		count := min(len(analysis.Responsibilities), 3)
		for i := 0; i < count; i++ {
			fmt.Fprintf(&sb, "  • %s\n", analysis.Responsibilities[i])
		}
		if len(analysis.Responsibilities) > 3 {
			fmt.Fprintf(&sb, "  ... and %d more\n", len(analysis.Responsibilities)-3)
		}
	}

	p.printBox("JOB ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintTailoring outputs which sections changed and the first few suggested changes.
func (p *Printer) PrintTailoring(results map[types.SectionKind]types.TailoringResult) {
	if len(results) == 0 {
		return
	}

	var sb strings.Builder
	first := true
	for _, kind := range types.TailorableKinds() {
		r, ok := results[kind]
		if !ok {
			continue
		}
		if !first {
			sb.WriteString("\n")
		}
		first = false

		status := "unchanged"
		if !r.Tailored.Equal(r.Original) {
			status = "tailored"
		}
		fmt.Fprintf(&sb, "%s: %s\n", strings.ToUpper(string(kind)), status)
		count := min(len(r.Changes), 3)
		for i := 0; i < count; i++ {
			fmt.Fprintf(&sb, "  • %s\n", r.Changes[i])
		}
		if len(r.Changes) > 3 {
			fmt.Fprintf(&sb, "  ... and %d more\n", len(r.Changes)-3)
		}
	}

	p.printBox("TAILORED SECTIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintNotices outputs degradation notices.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintNotices(notices []types.Notice) {
	if len(notices) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ NO NOTICES")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d notices:\n\n", len(notices))
	for i, n := range notices {
		label := string(n.Kind)
		if n.Section != "" {
			label += " [" + string(n.Section) + "]"
		}
		fmt.Fprintf(&sb, "⚠ %s\n", label)
		fmt.Fprintf(&sb, "  %s\n", n.Message)
		if i < len(notices)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("NOTICES", strings.TrimSuffix(sb.String(), "\n"))
}
