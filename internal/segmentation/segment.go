package segmentation

import (
	"strings"

	"github.com/Cordxll/Resume-Builder/internal/types"
)

// Segmenter splits resume text into sections using a heading alias table
type Segmenter struct {
	aliases Aliases[types.SectionKind]
	stops   Aliases[bool]
}

// New creates a Segmenter with the given heading aliases and the default stop headings
func New(aliases Aliases[types.SectionKind]) *Segmenter {
	return NewWithStops(aliases, DefaultStopHeadings)
}

// NewWithStops creates a Segmenter with custom aliases and stop headings
func NewWithStops(aliases Aliases[types.SectionKind], stops []string) *Segmenter {
	return &Segmenter{
		aliases: aliases,
		stops:   Aliases[bool]{true: stops},
	}
}

var defaultSegmenter = New(DefaultAliases)

// Segment splits rawText using the default alias table
func Segment(rawText string) (*types.ResumeDocument, error) {
	return defaultSegmenter.Segment(rawText)
}

// heading classifies a line. It returns the matched kind, whether the line is a stop
// heading, any inline content after a "Heading:" prefix, and whether it is a heading at all.
func (s *Segmenter) heading(line string) (types.SectionKind, bool, string, bool) {
	candidate, rest := SplitHeading(line)

	kind, kindLen := s.aliases.match(candidate)
	_, stopLen := s.stops.match(candidate)
	if kindLen == 0 && stopLen == 0 {
		return "", false, "", false
	}
	if stopLen > kindLen {
		return "", true, rest, true
	}
	return kind, false, rest, true
}

// Segment splits rawText into a ResumeDocument. It only fails on empty input; text
// without any recognisable heading lands verbatim in the summary section.
func (s *Segmenter) Segment(rawText string) (*types.ResumeDocument, error) {
	if strings.TrimSpace(rawText) == "" {
		return nil, &InputError{Message: "resume text is empty"}
	}

	normalized := strings.ReplaceAll(rawText, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	lines := strings.Split(normalized, "\n")

	var (
		preamble []string
		current  types.SectionKind
		inStop   bool
		order    []types.SectionKind
	)
	buckets := make(map[types.SectionKind][]string)

	for _, line := range lines {
		kind, stop, rest, ok := s.heading(line)
		if ok {
			if stop {
				current, inStop = "", true
				continue
			}
			current, inStop = kind, false
			if _, seen := buckets[kind]; !seen {
				buckets[kind] = []string{}
				order = append(order, kind)
			}
			if rest != "" {
				buckets[kind] = append(buckets[kind], rest)
			}
			continue
		}

		switch {
		case current != "":
			buckets[current] = append(buckets[current], line)
		case !inStop:
			preamble = append(preamble, line)
		}
	}

	doc := &types.ResumeDocument{
		Contact:  extractContact(preamble, normalized),
		Sections: make(map[types.SectionKind]types.Content, len(order)),
		RawText:  rawText,
	}

	if len(order) == 0 {
		doc.Sections[types.SectionSummary] = types.TextContent(rawText)
		doc.Degraded = true
		return doc, nil
	}

	for _, kind := range order {
		if kind.Shape() == types.ShapeBullets {
			doc.Sections[kind] = types.BulletContent(collectBullets(buckets[kind])...)
		} else {
			doc.Sections[kind] = types.TextContent(collectText(buckets[kind]))
		}
	}
	return doc, nil
}
