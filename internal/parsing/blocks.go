// Package parsing analyzes job description text into weighted requirements.
package parsing

import "github.com/Cordxll/Resume-Builder/internal/segmentation"

// Block names a heading block within a job description
type Block string

const (
	BlockNone             Block = ""
	BlockRequired         Block = "required"
	BlockPreferred        Block = "preferred"
	BlockResponsibilities Block = "responsibilities"
	BlockOther            Block = "other"
)

// JobBlockAliases is the heading table for job descriptions. It uses the same
// matcher as resume segmentation.
var JobBlockAliases = segmentation.Aliases[Block]{
	BlockRequired: {
		"requirements", "qualifications", "required", "required skills",
		"required qualifications", "minimum qualifications", "basic qualifications",
		"must have", "must haves", "what you'll need", "what you need",
		"what we're looking for", "what we are looking for", "who you are", "you have",
	},
	BlockPreferred: {
		"preferred", "preferred qualifications", "preferred skills", "nice to have",
		"nice to haves", "bonus", "bonus points", "plus", "pluses",
	},
	BlockResponsibilities: {
		"responsibilities", "key responsibilities", "duties", "what you'll do",
		"what you will do", "you will", "the role", "job description", "role overview",
	},
	BlockOther: {
		"about us", "about the company", "company overview", "benefits", "perks",
		"compensation", "salary", "equal opportunity", "how to apply",
	},
}

// jobLine is one line of a job description tagged with the block it appears in
type jobLine struct {
	text  string
	block Block
}

// splitBlocks tags each line with its enclosing heading block. Heading lines themselves
// are dropped, but inline content after "Heading:" is kept in the new block.
func splitBlocks(lines []string, aliases segmentation.Aliases[Block]) []jobLine {
	out := make([]jobLine, 0, len(lines))
	current := BlockNone
	for _, line := range lines {
		if block, rest, ok := aliases.MatchHeading(line); ok {
			current = block
			if rest != "" {
				out = append(out, jobLine{text: rest, block: current})
			}
			continue
		}
		out = append(out, jobLine{text: line, block: current})
	}
	return out
}
