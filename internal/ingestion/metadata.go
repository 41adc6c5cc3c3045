package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
	"unicode/utf8"
)

// Metadata describes an ingested document. Bytes counts the upload; Chars and
// Lines count the cleaned text the hash is taken over.
type Metadata struct {
	Filename    string    `json:"filename,omitempty"`
	Format      Format    `json:"format"`
	Bytes       int       `json:"bytes"`
	Chars       int       `json:"chars"`
	Lines       int       `json:"lines"`
	ExtractedAt time.Time `json:"extracted_at"`
	Hash        string    `json:"hash"`
}

// NewMetadata describes cleaned text extracted from size bytes of filename
func NewMetadata(cleaned, filename string, format Format, size int) *Metadata {
	sum := sha256.Sum256([]byte(cleaned))
	lines := 0
	if cleaned != "" {
		lines = strings.Count(cleaned, "\n") + 1
	}
	return &Metadata{
		Filename:    filename,
		Format:      format,
		Bytes:       size,
		Chars:       utf8.RuneCountInString(cleaned),
		Lines:       lines,
		ExtractedAt: time.Now().UTC().Truncate(time.Second),
		Hash:        hex.EncodeToString(sum[:]),
	}
}
