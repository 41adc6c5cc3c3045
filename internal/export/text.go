package export

import (
	"bufio"
	"io"
	"strings"
)

// WriteText renders final as plain text with the same layout as WriteDOCX
func WriteText(w io.Writer, final *FinalSectionMap) error {
	data := BuildTemplateData(final)
	bw := bufio.NewWriter(w)

	if data.Name != "" {
		bw.WriteString(data.Name + "\n")
	}
	if data.ContactLine != "" {
		bw.WriteString(data.ContactLine + "\n")
	}

	for _, s := range data.Sections {
		bw.WriteString("\n" + s.Title + "\n")
		bw.WriteString(strings.Repeat("-", len(s.Title)) + "\n")
		for _, p := range s.Paragraphs {
			bw.WriteString(p + "\n")
		}
		for _, b := range s.Bullets {
			bw.WriteString("• " + b + "\n")
		}
	}

	if err := bw.Flush(); err != nil {
		return &RenderError{Message: "failed to write text export", Cause: err}
	}
	return nil
}
