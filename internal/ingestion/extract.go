package ingestion

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Format is a supported upload format
type Format string

const (
	FormatText    Format = "text"
	FormatPDF     Format = "pdf"
	FormatDOCX    Format = "docx"
	FormatHTML    Format = "html"
	FormatUnknown Format = "unknown"
)

const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// DetectFormat picks a format from the file extension, then the declared MIME type,
// then the leading bytes of data.
func DetectFormat(filename, mimeType string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return FormatPDF
	case ".docx":
		return FormatDOCX
	case ".html", ".htm":
		return FormatHTML
	case ".txt", ".text", ".md":
		return FormatText
	case "":
	default:
		return FormatUnknown
	}

	if mt, _, err := mime.ParseMediaType(mimeType); err == nil {
		switch mt {
		case mimePDF:
			return FormatPDF
		case mimeDOCX:
			return FormatDOCX
		case "text/html":
			return FormatHTML
		case "text/plain", "text/markdown":
			return FormatText
		}
	}

	return sniff(data)
}

func sniff(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, []byte("%PDF-")):
		return FormatPDF
	case bytes.HasPrefix(data, []byte("PK\x03\x04")):
		return FormatDOCX
	}
	head := strings.ToLower(strings.TrimSpace(string(data[:min(len(data), 512)])))
	if strings.HasPrefix(head, "<!doctype html") || strings.HasPrefix(head, "<html") {
		return FormatHTML
	}
	if utf8.Valid(data) {
		return FormatText
	}
	return FormatUnknown
}

// ExtractText returns the raw text content of data in the given format
func ExtractText(format Format, data []byte) (string, error) {
	switch format {
	case FormatText:
		if !utf8.Valid(data) {
			return "", &ExtractionError{Format: format, Message: "text is not valid UTF-8"}
		}
		return string(data), nil
	case FormatPDF:
		return extractPDF(data)
	case FormatDOCX:
		return extractDOCX(data)
	case FormatHTML:
		return StripHTML(string(data))
	default:
		return "", &UnsupportedFormatError{Format: string(format)}
	}
}

// extractPDF reads text row by row. The reader panics on some malformed
// streams, so panics are reported as extraction errors.
func extractPDF(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = &ExtractionError{Format: FormatPDF, Message: fmt.Sprintf("malformed document: %v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Format: FormatPDF, Message: "failed to open document", Cause: err}
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return "", &ExtractionError{Format: FormatPDF, Message: "failed to read page text", Cause: err}
		}
		for _, row := range rows {
			for j, word := range row.Content {
				if j > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(word.S)
			}
			sb.WriteByte('\n')
		}
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Format: FormatDOCX, Message: "failed to open document", Cause: err}
	}
	defer func() { _ = doc.Close() }()

	return stripDocxXML(doc.Editable().GetContent())
}

// stripDocxXML keeps the character data of a WordprocessingML body, one paragraph per line
func stripDocxXML(raw string) (string, error) {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var sb strings.Builder
	bulleted, inText := false, false
	markBullet := func() {
		if !bulleted {
			sb.WriteString("• ")
			bulleted = true
		}
	}
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", &ExtractionError{Format: FormatDOCX, Message: "malformed document body", Cause: err}
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				sb.WriteByte('\t')
			case "br":
				sb.WriteByte('\n')
			case "numPr":
				markBullet()
			case "pStyle":
				for _, a := range t.Attr {
					if a.Name.Local == "val" && strings.HasPrefix(a.Value, "ListBullet") {
						markBullet()
					}
				}
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteByte('\n')
				bulleted = false
			}
		}
	}
	return sb.String(), nil
}

// StripHTML returns the visible text of an HTML document with block elements on their own lines
func StripHTML(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", &ExtractionError{Format: FormatHTML, Message: "failed to parse HTML", Cause: err}
	}

	doc.Find("script, style, noscript, nav, footer, header").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("li").PrependHtml("• ")
	doc.Find("p, div, li, h1, h2, h3, h4, h5, h6, tr, ul, ol, section, article").AppendHtml("\n")

	var lines []string
	for _, line := range strings.Split(doc.Find("body").Text(), "\n") {
		lines = append(lines, strings.TrimSpace(line))
	}
	return strings.Join(lines, "\n"), nil
}
