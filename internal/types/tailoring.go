// Package types provides type definitions for structured data used throughout the resume builder.
//
//nolint:revive // types is a standard Go package name pattern
package types

// TailoringResult pairs a section's original content with its rewritten suggestion
type TailoringResult struct {
	Kind     SectionKind `json:"kind"`
	Original Content     `json:"original"`
	Tailored Content     `json:"tailored"`
	Changes  []string    `json:"changes"`
}

// Clone returns a deep copy of r
func (r TailoringResult) Clone() TailoringResult {
	out := TailoringResult{
		Kind:     r.Kind,
		Original: r.Original.Clone(),
		Tailored: r.Tailored.Clone(),
	}
	if r.Changes != nil {
		out.Changes = append([]string{}, r.Changes...)
	}
	return out
}

// NoticeKind names a non-fatal condition raised while processing a resume
type NoticeKind string

const (
	NoticeParseDegraded            NoticeKind = "parse_degraded"
	NoticeTailoringUnavailable     NoticeKind = "tailoring_unavailable"
	NoticeShapeMismatch            NoticeKind = "shape_mismatch"
	NoticeAntiFabricationViolation NoticeKind = "anti_fabrication_violation"
)

// Notice is a warning or informational note surfaced to the caller
type Notice struct {
	Kind    NoticeKind  `json:"kind"`
	Section SectionKind `json:"section,omitempty"`
	Message string      `json:"message"`
}
