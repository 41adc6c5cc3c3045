// Package export merges resolved section edits with the segmented document and
// renders the final resume.
package export

import (
	"github.com/Cordxll/Resume-Builder/internal/types"
)

// Resolver supplies the effective content of the tailorable sections
type Resolver interface {
	ResolveAll() map[types.SectionKind]types.Content
}

// FinalSectionMap is the resume as it will be exported: every section kind is present
type FinalSectionMap struct {
	Contact  types.Contact                       `json:"contact"`
	Sections map[types.SectionKind]types.Content `json:"sections"`
}

// Section returns the content for kind, or empty content of the right shape
func (m *FinalSectionMap) Section(kind types.SectionKind) types.Content {
	if m == nil || m.Sections == nil {
		return types.EmptyContent(kind)
	}
	if c, ok := m.Sections[kind]; ok {
		return c.Clone()
	}
	return types.EmptyContent(kind)
}

// Merge builds the final section map. Tailorable sections come from resolver when it
// has them; every other section passes through from doc unchanged.
func Merge(doc *types.ResumeDocument, resolver Resolver) *FinalSectionMap {
	var resolved map[types.SectionKind]types.Content
	if resolver != nil {
		resolved = resolver.ResolveAll()
	}

	out := &FinalSectionMap{Sections: make(map[types.SectionKind]types.Content, len(types.AllSectionKinds()))}
	if doc != nil {
		out.Contact = doc.Contact
	}

	for _, kind := range types.AllSectionKinds() {
		if kind.Tailorable() {
			if c, ok := resolved[kind]; ok {
				out.Sections[kind] = c.Clone()
				continue
			}
		}
		out.Sections[kind] = doc.Section(kind)
	}
	return out
}

// layoutSection is one titled block of the exported document
type layoutSection struct {
	Kind  types.SectionKind
	Title string
}

// layout is the order and titles of the exported sections
var layout = []layoutSection{
	{Kind: types.SectionSummary, Title: "PROFESSIONAL SUMMARY"},
	{Kind: types.SectionExperience, Title: "PROFESSIONAL EXPERIENCE"},
	{Kind: types.SectionSkills, Title: "SKILLS"},
	{Kind: types.SectionProjects, Title: "PROJECTS"},
	{Kind: types.SectionEducation, Title: "EDUCATION"},
	{Kind: types.SectionCertifications, Title: "CERTIFICATIONS"},
}
