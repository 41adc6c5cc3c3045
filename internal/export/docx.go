package export

import (
	"archive/zip"
	"bytes"
	"embed"
	"io"
	"strings"
	"text/template"

	"github.com/Cordxll/Resume-Builder/internal/types"
)

// DOCXContentType is the media type of the exported document
const DOCXContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

//go:embed templates/*
var templateFiles embed.FS

// packageParts maps each static part of the package to its embedded source
var packageParts = []struct {
	Name   string
	Source string
}{
	{Name: "[Content_Types].xml", Source: "templates/content_types.xml"},
	{Name: "_rels/.rels", Source: "templates/rels.xml"},
	{Name: "word/_rels/document.xml.rels", Source: "templates/document_rels.xml"},
	{Name: "word/styles.xml", Source: "templates/styles.xml"},
	{Name: "word/numbering.xml", Source: "templates/numbering.xml"},
}

// TemplateData is the data passed to the document template
type TemplateData struct {
	Name        string
	ContactLine string
	Sections    []SectionData
}

// SectionData is one titled section; only one of Paragraphs or Bullets is set
type SectionData struct {
	Title      string
	Paragraphs []string
	Bullets    []string
}

// BuildTemplateData lays out final in export order, skipping empty sections
func BuildTemplateData(final *FinalSectionMap) TemplateData {
	data := TemplateData{}
	if final == nil {
		return data
	}
	data.Name = strings.TrimSpace(final.Contact.Name)
	data.ContactLine = contactLine(final.Contact)

	for _, l := range layout {
		content := final.Section(l.Kind)
		section := SectionData{Title: l.Title}
		if content.Shape == types.ShapeBullets {
			section.Bullets = nonBlank(content.Bullets)
		} else {
			section.Paragraphs = nonBlank(strings.Split(content.Text, "\n"))
		}
		if len(section.Bullets) == 0 && len(section.Paragraphs) == 0 {
			continue
		}
		data.Sections = append(data.Sections, section)
	}
	return data
}

func contactLine(c types.Contact) string {
	var parts []string
	for _, p := range []string{c.Email, c.Phone, c.ProfileLink} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " | ")
}

func nonBlank(lines []string) []string {
	var out []string
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// WriteDOCX writes final as a Word document
func WriteDOCX(w io.Writer, final *FinalSectionMap) error {
	tmpl, err := template.New("document.xml.tmpl").
		Funcs(template.FuncMap{"esc": EscapeXML}).
		ParseFS(templateFiles, "templates/document.xml.tmpl")
	if err != nil {
		return &TemplateError{Message: "failed to parse document template", Cause: err}
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, BuildTemplateData(final)); err != nil {
		return &TemplateError{Message: "failed to execute document template", Cause: err}
	}

	zw := zip.NewWriter(w)
	for _, part := range packageParts {
		content, err := templateFiles.ReadFile(part.Source)
		if err != nil {
			return &RenderError{Message: "missing package part " + part.Name, Cause: err}
		}
		if err := writePart(zw, part.Name, content); err != nil {
			return err
		}
	}
	if err := writePart(zw, "word/document.xml", body.Bytes()); err != nil {
		return err
	}
	if err := zw.Close(); err != nil {
		return &RenderError{Message: "failed to finish document", Cause: err}
	}
	return nil
}

func writePart(zw *zip.Writer, name string, content []byte) error {
	f, err := zw.Create(name)
	if err != nil {
		return &RenderError{Message: "failed to create " + name, Cause: err}
	}
	if _, err := f.Write(content); err != nil {
		return &RenderError{Message: "failed to write " + name, Cause: err}
	}
	return nil
}
