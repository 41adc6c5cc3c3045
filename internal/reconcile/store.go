// Package reconcile tracks the user's per-section decisions over tailoring results
// and resolves the content each section finally shows.
package reconcile

import (
	"github.com/Cordxll/Resume-Builder/internal/types"
)

// SectionState is the edit state of one tailorable section
type SectionState struct {
	Accepted bool           `json:"accepted"`
	Original types.Content  `json:"original"`
	Tailored types.Content  `json:"tailored"`
	Override *types.Content `json:"override"`
	Changes  []string       `json:"changes"`
}

func (s SectionState) clone() SectionState {
	out := SectionState{
		Accepted: s.Accepted,
		Original: s.Original.Clone(),
		Tailored: s.Tailored.Clone(),
	}
	if s.Override != nil {
		o := s.Override.Clone()
		out.Override = &o
	}
	if s.Changes != nil {
		out.Changes = append([]string{}, s.Changes...)
	}
	return out
}

// resolve picks override, then tailored when accepted, then original
func (s SectionState) resolve() types.Content {
	switch {
	case s.Override != nil:
		return s.Override.Clone()
	case s.Accepted:
		return s.Tailored.Clone()
	default:
		return s.Original.Clone()
	}
}

// Snapshot is the serializable form of a Store
type Snapshot map[types.SectionKind]SectionState

// Store holds edit state for the sections of one tailoring run. It is not safe for
// concurrent use; callers serialize access per session.
type Store struct {
	sections map[types.SectionKind]*SectionState
}

// NewStore initializes one accepted section per result, with no override
func NewStore(results map[types.SectionKind]types.TailoringResult) *Store {
	s := &Store{sections: make(map[types.SectionKind]*SectionState, len(results))}
	for kind, r := range results {
		s.sections[kind] = &SectionState{
			Accepted: true,
			Original: r.Original.Clone(),
			Tailored: r.Tailored.Clone(),
			Changes:  append([]string(nil), r.Changes...),
		}
	}
	return s
}

func (s *Store) get(kind types.SectionKind) (*SectionState, error) {
	st, ok := s.sections[kind]
	if !ok {
		return nil, &UnknownSectionError{Kind: kind}
	}
	return st, nil
}

// ToggleAccept flips the accepted flag and returns the new value
func (s *Store) ToggleAccept(kind types.SectionKind) (bool, error) {
	st, err := s.get(kind)
	if err != nil {
		return false, err
	}
	st.Accepted = !st.Accepted
	return st.Accepted, nil
}

// SetAccepted records an explicit accept or reject decision
func (s *Store) SetAccepted(kind types.SectionKind, accepted bool) error {
	st, err := s.get(kind)
	if err != nil {
		return err
	}
	st.Accepted = accepted
	return nil
}

// SetOverride stores user-supplied content that wins over both original and tailored.
// The content must have the section's shape and must not be empty; ClearOverride is
// the way back to the original or tailored content.
func (s *Store) SetOverride(kind types.SectionKind, content types.Content) error {
	st, err := s.get(kind)
	if err != nil {
		return err
	}
	if content.Shape != st.Original.Shape {
		return &ShapeMismatchError{Kind: kind, Expected: st.Original.Shape, Got: content.Shape}
	}
	if err := content.Validate(); err != nil {
		return &ShapeMismatchError{Kind: kind, Expected: st.Original.Shape, Got: content.Shape}
	}
	if content.IsEmpty() {
		return &EmptyOverrideError{Kind: kind}
	}
	o := content.Clone()
	st.Override = &o
	return nil
}

// ClearOverride removes any override; the accept decision applies again
func (s *Store) ClearOverride(kind types.SectionKind) error {
	st, err := s.get(kind)
	if err != nil {
		return err
	}
	st.Override = nil
	return nil
}

// Resolve returns the effective content of one section
func (s *Store) Resolve(kind types.SectionKind) (types.Content, error) {
	st, err := s.get(kind)
	if err != nil {
		return types.Content{}, err
	}
	return st.resolve(), nil
}

// ResolveAll returns the effective content of every tracked section
func (s *Store) ResolveAll() map[types.SectionKind]types.Content {
	out := make(map[types.SectionKind]types.Content, len(s.sections))
	for kind, st := range s.sections {
		out[kind] = st.resolve()
	}
	return out
}

// State returns a copy of one section's state
func (s *Store) State(kind types.SectionKind) (SectionState, error) {
	st, err := s.get(kind)
	if err != nil {
		return SectionState{}, err
	}
	return st.clone(), nil
}

// Kinds returns the tracked sections in document order
func (s *Store) Kinds() []types.SectionKind {
	var kinds []types.SectionKind
	for _, k := range types.AllSectionKinds() {
		if _, ok := s.sections[k]; ok {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// Snapshot returns a deep copy of the full state
func (s *Store) Snapshot() Snapshot {
	out := make(Snapshot, len(s.sections))
	for kind, st := range s.sections {
		out[kind] = st.clone()
	}
	return out
}

// Restore rebuilds a store from a snapshot, rejecting unknown kinds and overrides
// whose shape disagrees with the original.
func Restore(snap Snapshot) (*Store, error) {
	s := &Store{sections: make(map[types.SectionKind]*SectionState, len(snap))}
	for kind, st := range snap {
		if !kind.Valid() {
			return nil, &SnapshotError{Message: "unknown section", Cause: &UnknownSectionError{Kind: kind}}
		}
		if err := st.Original.Validate(); err != nil {
			return nil, &SnapshotError{Message: string(kind) + " original", Cause: err}
		}
		if err := st.Tailored.Validate(); err != nil {
			return nil, &SnapshotError{Message: string(kind) + " tailored", Cause: err}
		}
		if st.Override != nil && st.Override.Shape != st.Original.Shape {
			return nil, &SnapshotError{
				Message: "override shape",
				Cause:   &ShapeMismatchError{Kind: kind, Expected: st.Original.Shape, Got: st.Override.Shape},
			}
		}
		if st.Override != nil && st.Override.IsEmpty() {
			return nil, &SnapshotError{Message: "override", Cause: &EmptyOverrideError{Kind: kind}}
		}
		c := st.clone()
		s.sections[kind] = &c
	}
	return s, nil
}
