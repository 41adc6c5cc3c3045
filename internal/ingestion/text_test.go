package ingestion

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cordxll/Resume-Builder/internal/export"
	"github.com/Cordxll/Resume-Builder/internal/types"
)

func TestCleanText_PreserveBulletLists(t *testing.T) {
	input := "- Item 1\n- Item 2\n* Item 3\n• Item 4"
	result := CleanText(input)

	assert.Equal(t, input, result)
}

func TestCleanText_NormalizeWhitespace(t *testing.T) {
	input := "Line    with \t multiple  spaces   "
	assert.Equal(t, "Line with multiple spaces", CleanText(input))
}

func TestCleanText_RemoveExcessiveBlankLines(t *testing.T) {
	input := "Line 1\n\n\n\n\nLine 2"
	assert.Equal(t, "Line 1\n\nLine 2", CleanText(input))
}

func TestCleanText_NormalizeLineEndings(t *testing.T) {
	input := "Line 1\r\nLine 2\rLine 3\fLine 4"
	assert.Equal(t, "Line 1\nLine 2\nLine 3\nLine 4", CleanText(input))
}

func TestCleanText_EmptyInput(t *testing.T) {
	assert.Empty(t, CleanText(""))
	assert.Empty(t, CleanText("   \n  \n  "))
}

func TestCleanText_SpecialCharacters(t *testing.T) {
	input := "Test with émojis 🚀 and spéciàl chàracters"
	assert.Equal(t, input, CleanText(input))
}

func TestCleanText_IndentedBulletsKeepIndent(t *testing.T) {
	input := "    Indented line\n  - Nested bullet"
	assert.Equal(t, "Indented line\n  - Nested bullet", CleanText(input))
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		mimeType string
		data     []byte
		want     Format
	}{
		{name: "pdf extension", filename: "Resume.PDF", want: FormatPDF},
		{name: "docx extension", filename: "cv.docx", want: FormatDOCX},
		{name: "text extension", filename: "job.txt", want: FormatText},
		{name: "legacy doc", filename: "cv.doc", want: FormatUnknown},
		{name: "mime type", mimeType: "application/pdf; name=x", want: FormatPDF},
		{name: "html mime", mimeType: "text/html; charset=utf-8", want: FormatHTML},
		{name: "pdf magic", data: []byte("%PDF-1.7\n"), want: FormatPDF},
		{name: "zip magic", data: []byte("PK\x03\x04rest"), want: FormatDOCX},
		{name: "html sniff", data: []byte("  <!DOCTYPE html><html></html>"), want: FormatHTML},
		{name: "plain text", data: []byte("SUMMARY\nEngineer"), want: FormatText},
		{name: "binary", data: []byte{0xff, 0xfe, 0x00, 0x81}, want: FormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectFormat(tt.filename, tt.mimeType, tt.data))
		})
	}
}

func TestExtractText_Unsupported(t *testing.T) {
	_, err := ExtractText(FormatUnknown, []byte("x"))
	var unsupported *UnsupportedFormatError
	require.ErrorAs(t, err, &unsupported)
	assert.Contains(t, err.Error(), "unknown")
}

func TestExtractText_InvalidDocuments(t *testing.T) {
	var extractErr *ExtractionError

	_, err := ExtractText(FormatPDF, []byte("%PDF-garbage"))
	require.ErrorAs(t, err, &extractErr)
	assert.Equal(t, FormatPDF, extractErr.Format)

	_, err = ExtractText(FormatDOCX, []byte("PK\x03\x04garbage"))
	require.ErrorAs(t, err, &extractErr)
	assert.Equal(t, FormatDOCX, extractErr.Format)

	_, err = ExtractText(FormatText, []byte{0xff, 0xfe})
	require.ErrorAs(t, err, &extractErr)
}

func TestExtractText_DOCX(t *testing.T) {
	final := &export.FinalSectionMap{
		Contact: types.Contact{Name: "Jane Doe", Email: "jane@example.com"},
		Sections: map[types.SectionKind]types.Content{
			types.SectionSummary:    types.TextContent("Backend engineer & mentor."),
			types.SectionExperience: types.BulletContent("Led migration project", "Wrote documentation"),
		},
	}
	var buf bytes.Buffer
	require.NoError(t, export.WriteDOCX(&buf, final))

	text, meta, err := Ingest("resume.docx", "", buf.Bytes())
	require.NoError(t, err)

	assert.Equal(t, FormatDOCX, meta.Format)
	assert.Equal(t, buf.Len(), meta.Bytes)
	assert.True(t, strings.HasPrefix(text, "Jane Doe\njane@example.com\n"), text)
	assert.Contains(t, text, "PROFESSIONAL SUMMARY\nBackend engineer & mentor.\n")
	assert.Contains(t, text, "• Led migration project\n• Wrote documentation")
}

func TestStripHTML(t *testing.T) {
	html := `<html><head><style>p{}</style><script>var x=1</script></head>
<body><nav>Home | Jobs</nav>
<h2>Requirements</h2>
<ul><li>Experience with <b>Go</b></li><li>Kubernetes</li></ul>
<p>Nice to have:<br>Terraform</p>
<footer>Apply now</footer></body></html>`

	text, err := StripHTML(html)
	require.NoError(t, err)
	cleaned := CleanText(text)

	assert.Contains(t, cleaned, "Requirements\n")
	assert.Contains(t, cleaned, "• Experience with Go\n")
	assert.Contains(t, cleaned, "• Kubernetes")
	assert.Contains(t, cleaned, "Nice to have:\nTerraform")
	assert.NotContains(t, cleaned, "var x")
	assert.NotContains(t, cleaned, "Home | Jobs")
	assert.NotContains(t, cleaned, "Apply now")
}

func TestIngestFromFile_Success(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "resume.txt")
	require.NoError(t, os.WriteFile(testFile, []byte("SUMMARY\r\nBackend   engineer\n"), 0644))

	cleanedText, metadata, err := IngestFromFile(testFile)
	require.NoError(t, err)

	assert.Equal(t, "SUMMARY\nBackend engineer", cleanedText)
	assert.Equal(t, "resume.txt", metadata.Filename)
	assert.Equal(t, FormatText, metadata.Format)
	assert.Len(t, metadata.Hash, 64)
	assert.False(t, metadata.ExtractedAt.IsZero())
}

func TestIngestFromFile_FileNotFound(t *testing.T) {
	cleanedText, metadata, err := IngestFromFile("/nonexistent/file.txt")

	assert.Error(t, err)
	assert.Empty(t, cleanedText)
	assert.Nil(t, metadata)
	assert.Contains(t, err.Error(), "file not found")
}

func TestMetadata_HashFollowsContent(t *testing.T) {
	m1 := NewMetadata("Content 1", "a.txt", FormatText, 9)
	m2 := NewMetadata("Content 1", "b.txt", FormatText, 9)
	m3 := NewMetadata("Content 2", "a.txt", FormatText, 9)

	assert.Equal(t, m1.Hash, m2.Hash)
	assert.NotEqual(t, m1.Hash, m3.Hash)
}

func TestMetadata_Counts(t *testing.T) {
	tests := []struct {
		text  string
		chars int
		lines int
	}{
		{text: "", chars: 0, lines: 0},
		{text: "one line", chars: 8, lines: 1},
		{text: "Résumé\n- Go", chars: 11, lines: 2},
	}

	for _, tt := range tests {
		m := NewMetadata(tt.text, "", FormatText, len(tt.text))
		assert.Equal(t, tt.chars, m.Chars, tt.text)
		assert.Equal(t, tt.lines, m.Lines, tt.text)
	}
}
