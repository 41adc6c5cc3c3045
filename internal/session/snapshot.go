package session

import (
	"encoding/json"
	"fmt"

	"github.com/Cordxll/Resume-Builder/internal/reconcile"
	"github.com/Cordxll/Resume-Builder/internal/schemas"
	"github.com/Cordxll/Resume-Builder/internal/types"
)

// Snapshot is the serialized form of a session, used for persistence and by the CLI
type Snapshot struct {
	ID           string                `json:"id,omitempty"`
	Document     *types.ResumeDocument `json:"document"`
	Requirements []types.Requirement   `json:"requirements"`
	Edits        reconcile.Snapshot    `json:"edits"`
	Notices      []types.Notice        `json:"notices"`
}

// Encode marshals s as indented JSON
func (s *Snapshot) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode session snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot validates data against the session schema and decodes it
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	if err := schemas.Validate(schemas.Session, data); err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode session snapshot: %w", err)
	}
	return &snap, nil
}

// State rebuilds live session state from the snapshot
func (s *Snapshot) State() (*State, error) {
	store, err := reconcile.Restore(s.Edits)
	if err != nil {
		return nil, err
	}
	doc := s.Document
	if doc == nil {
		doc = &types.ResumeDocument{}
	}
	return &State{
		Document:     doc,
		Requirements: s.Requirements,
		Store:        store,
		Notices:      s.Notices,
	}, nil
}
