// Package types provides type definitions for structured data used throughout the resume builder.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"strings"
)

// SectionKind identifies a named block of resume content
type SectionKind string

const (
	SectionSummary        SectionKind = "summary"
	SectionExperience     SectionKind = "experience"
	SectionEducation      SectionKind = "education"
	SectionSkills         SectionKind = "skills"
	SectionCertifications SectionKind = "certifications"
	SectionProjects       SectionKind = "projects"
)

var allSectionKinds = []SectionKind{
	SectionSummary,
	SectionExperience,
	SectionEducation,
	SectionSkills,
	SectionCertifications,
	SectionProjects,
}

// AllSectionKinds returns every section kind in document order
func AllSectionKinds() []SectionKind {
	out := make([]SectionKind, len(allSectionKinds))
	copy(out, allSectionKinds)
	return out
}

// TailorableKinds returns the section kinds eligible for rewriting
func TailorableKinds() []SectionKind {
	return []SectionKind{SectionSummary, SectionExperience, SectionSkills}
}

// ParseSectionKind converts a string into a known SectionKind
func ParseSectionKind(s string) (SectionKind, error) {
	k := SectionKind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", fmt.Errorf("unknown section kind %q", s)
	}
	return k, nil
}

// Valid reports whether k is one of the known section kinds
func (k SectionKind) Valid() bool {
	for _, known := range allSectionKinds {
		if k == known {
			return true
		}
	}
	return false
}

// Tailorable reports whether k may be rewritten
func (k SectionKind) Tailorable() bool {
	return k == SectionSummary || k == SectionExperience || k == SectionSkills
}

// Shape returns the content representation used by sections of this kind
func (k SectionKind) Shape() Shape {
	switch k {
	case SectionExperience, SectionProjects:
		return ShapeBullets
	default:
		return ShapeText
	}
}

// Shape discriminates the two section content representations
type Shape string

const (
	ShapeText    Shape = "text"
	ShapeBullets Shape = "bullets"
)

// Content is section content: free text or an ordered list of bullets, never both
type Content struct {
	Shape   Shape    `json:"shape"`
	Text    string   `json:"text,omitempty"`
	Bullets []string `json:"bullets,omitempty"`
}

// TextContent builds free-text content
func TextContent(text string) Content {
	return Content{Shape: ShapeText, Text: text}
}

// BulletContent builds bullet content, copying the input slice
func BulletContent(bullets ...string) Content {
	out := make([]string, len(bullets))
	copy(out, bullets)
	return Content{Shape: ShapeBullets, Bullets: out}
}

// EmptyContent returns empty content with the shape expected for kind
func EmptyContent(kind SectionKind) Content {
	if kind.Shape() == ShapeBullets {
		return BulletContent()
	}
	return TextContent("")
}

// Clone returns a deep copy of c
func (c Content) Clone() Content {
	out := Content{Shape: c.Shape, Text: c.Text}
	if c.Bullets != nil {
		out.Bullets = make([]string, len(c.Bullets))
		copy(out.Bullets, c.Bullets)
	}
	return out
}

// Equal reports whether two contents have the same shape and value
func (c Content) Equal(other Content) bool {
	if c.Shape != other.Shape {
		return false
	}
	if c.Shape == ShapeText {
		return c.Text == other.Text
	}
	if len(c.Bullets) != len(other.Bullets) {
		return false
	}
	for i := range c.Bullets {
		if c.Bullets[i] != other.Bullets[i] {
			return false
		}
	}
	return true
}

// IsEmpty reports whether c carries no text
func (c Content) IsEmpty() bool {
	if c.Shape == ShapeBullets {
		for _, b := range c.Bullets {
			if strings.TrimSpace(b) != "" {
				return false
			}
		}
		return true
	}
	return strings.TrimSpace(c.Text) == ""
}

// Validate checks that c holds exactly the representation its shape names
func (c Content) Validate() error {
	switch c.Shape {
	case ShapeText:
		if len(c.Bullets) > 0 {
			return fmt.Errorf("text content must not carry bullets")
		}
	case ShapeBullets:
		if c.Text != "" {
			return fmt.Errorf("bullet content must not carry text")
		}
	default:
		return fmt.Errorf("unknown content shape %q", c.Shape)
	}
	return nil
}

// Len returns the number of bullets, or 1 for non-empty text
func (c Content) Len() int {
	if c.Shape == ShapeBullets {
		return len(c.Bullets)
	}
	if c.Text == "" {
		return 0
	}
	return 1
}

// String renders the content as plain text, one bullet per line
func (c Content) String() string {
	if c.Shape == ShapeBullets {
		return strings.Join(c.Bullets, "\n")
	}
	return c.Text
}
