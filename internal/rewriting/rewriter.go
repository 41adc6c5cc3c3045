// Package rewriting suggests reworded section content and guards it against fabrication.
package rewriting

import (
	"context"

	"github.com/Cordxll/Resume-Builder/internal/types"
)

// Rewriter produces a tailored version of one section together with short rationales
type Rewriter interface {
	Rewrite(ctx context.Context, kind types.SectionKind, original types.Content, reqs []types.Requirement) (types.Content, []string, error)
}

// RewriterFunc adapts a function to the Rewriter interface
type RewriterFunc func(ctx context.Context, kind types.SectionKind, original types.Content, reqs []types.Requirement) (types.Content, []string, error)

// Rewrite calls f
func (f RewriterFunc) Rewrite(ctx context.Context, kind types.SectionKind, original types.Content, reqs []types.Requirement) (types.Content, []string, error) {
	return f(ctx, kind, original, reqs)
}

// Stub returns the original content unchanged with no rationales. It is used when
// no model is configured and in tests.
type Stub struct{}

// Rewrite returns a copy of original
func (Stub) Rewrite(_ context.Context, _ types.SectionKind, original types.Content, _ []types.Requirement) (types.Content, []string, error) {
	return original.Clone(), nil, nil
}
