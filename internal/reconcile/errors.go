package reconcile

import (
	"fmt"

	"github.com/Cordxll/Resume-Builder/internal/types"
)

// UnknownSectionError is returned for a section the store does not track
type UnknownSectionError struct {
	Kind types.SectionKind
}

func (e *UnknownSectionError) Error() string {
	return fmt.Sprintf("unknown section: %q", e.Kind)
}

// ShapeMismatchError is returned when an override does not have the section's shape
type ShapeMismatchError struct {
	Kind     types.SectionKind
	Expected types.Shape
	Got      types.Shape
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("section %s expects %s content, got %s", e.Kind, e.Expected, e.Got)
}

// EmptyOverrideError is returned for an override with no text or no non-blank bullet
type EmptyOverrideError struct {
	Kind types.SectionKind
}

func (e *EmptyOverrideError) Error() string {
	return fmt.Sprintf("override for %s is empty", e.Kind)
}

// SnapshotError reports a snapshot that cannot be restored
type SnapshotError struct {
	Message string
	Cause   error
}

func (e *SnapshotError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid snapshot: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid snapshot: %s", e.Message)
}

func (e *SnapshotError) Unwrap() error {
	return e.Cause
}
