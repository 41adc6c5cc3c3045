// Package ingestion turns uploaded resumes and job postings into clean plain text.
package ingestion

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	innerSpace     = regexp.MustCompile(`[ \t\x{00A0}]+`)
	excessiveBlank = regexp.MustCompile(`\n\n\n+`)
)

// CleanText normalizes line endings and spacing while keeping the line structure
// that section and bullet detection rely on.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.ReplaceAll(content, "\f", "\n")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, cleanLine(line))
	}

	result := strings.Join(cleaned, "\n")
	result = excessiveBlank.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine collapses runs of spaces and drops trailing whitespace.
// Leading indentation is kept so nested bullets stay distinguishable.
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t\u00a0")
	trimmed := strings.TrimLeft(line, " \t\u00a0")
	if trimmed == "" {
		return ""
	}

	indent := len(line) - len(trimmed)
	content := innerSpace.ReplaceAllString(trimmed, " ")
	if indent > 0 && isBulletLine(trimmed) {
		return strings.Repeat(" ", indent) + content
	}
	return content
}

// isBulletLine checks if a line is a bullet list item
func isBulletLine(line string) bool {
	return strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") ||
		strings.HasPrefix(line, "•") || strings.HasPrefix(line, "·")
}

// IngestFromFile reads a resume or job posting file of any supported format and
// returns its cleaned text with metadata
func IngestFromFile(path string) (string, *Metadata, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("file not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to read file: %w", err)
	}

	return Ingest(filepath.Base(path), "", content)
}

// Ingest extracts and cleans text from an in-memory upload
func Ingest(filename, mimeType string, data []byte) (string, *Metadata, error) {
	format := DetectFormat(filename, mimeType, data)
	text, err := ExtractText(format, data)
	if err != nil {
		return "", nil, err
	}

	cleaned := CleanText(text)
	return cleaned, NewMetadata(cleaned, filename, format, len(data)), nil
}
