// Package types provides type definitions for structured data used throughout the resume builder.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Contact holds the contact block of a resume; every field is optional
type Contact struct {
	Name        string `json:"name,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	ProfileLink string `json:"profile_link,omitempty"`
}

// ResumeDocument is a segmented resume
type ResumeDocument struct {
	Contact  Contact                 `json:"contact"`
	Sections map[SectionKind]Content `json:"sections"`
	RawText  string                  `json:"raw_text"`
	// Degraded is set when no heading was recognised and the whole text landed in the summary
	Degraded bool `json:"degraded,omitempty"`
}

// Section returns the stored content for kind, or empty content of the right shape
func (d *ResumeDocument) Section(kind SectionKind) Content {
	if d == nil || d.Sections == nil {
		return EmptyContent(kind)
	}
	c, ok := d.Sections[kind]
	if !ok {
		return EmptyContent(kind)
	}
	return c.Clone()
}

// Has reports whether the document contains a section of the given kind
func (d *ResumeDocument) Has(kind SectionKind) bool {
	if d == nil || d.Sections == nil {
		return false
	}
	_, ok := d.Sections[kind]
	return ok
}

// Kinds returns the section kinds present in the document, in document order
func (d *ResumeDocument) Kinds() []SectionKind {
	var kinds []SectionKind
	for _, k := range allSectionKinds {
		if d.Has(k) {
			kinds = append(kinds, k)
		}
	}
	return kinds
}
