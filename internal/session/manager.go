// Package session keeps the edit state of in-progress tailoring sessions.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Cordxll/Resume-Builder/internal/pipeline"
	"github.com/Cordxll/Resume-Builder/internal/reconcile"
	"github.com/Cordxll/Resume-Builder/internal/types"
)

// DefaultTTL is how long an idle session is kept
const DefaultTTL = 2 * time.Hour

// ErrNotFound is returned for unknown or expired sessions
var ErrNotFound = errors.New("session not found")

// Persister stores encoded snapshots outside the process. Load returns nil data
// without error when the id is unknown.
type Persister interface {
	SaveSession(ctx context.Context, id string, snapshot []byte) error
	LoadSession(ctx context.Context, id string) ([]byte, error)
	DeleteSession(ctx context.Context, id string) error
}

// Expirer is implemented by persisters that drop old snapshots in bulk
type Expirer interface {
	DeleteSessionsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// State is the data of one session. It is only accessed under the session's lock.
type State struct {
	Document     *types.ResumeDocument
	Requirements []types.Requirement
	Store        *reconcile.Store
	Notices      []types.Notice
}

// Snapshot serializes the state
func (st *State) Snapshot(id string) *Snapshot {
	return &Snapshot{
		ID:           id,
		Document:     st.Document,
		Requirements: st.Requirements,
		Edits:        st.Store.Snapshot(),
		Notices:      st.Notices,
	}
}

type entry struct {
	mu       sync.Mutex
	state    *State
	lastUsed time.Time
}

// Manager is a registry of sessions. The map is guarded by the manager; each session
// has its own lock so sessions never block each other.
type Manager struct {
	mu        sync.RWMutex
	sessions  map[string]*entry
	ttl       time.Duration
	persister Persister
	logger    *zap.Logger
	now       func() time.Time
}

// Option configures a Manager
type Option func(*Manager)

// WithTTL sets the idle expiry of sessions
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// WithPersister mirrors every change to p
func WithPersister(p Persister) Option {
	return func(m *Manager) { m.persister = p }
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewManager creates an empty registry
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		sessions: make(map[string]*entry),
		ttl:      DefaultTTL,
		logger:   zap.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func stateFromResult(result *pipeline.Result) *State {
	return &State{
		Document:     result.Document,
		Requirements: result.Analysis.Requirements,
		Store:        result.Store,
		Notices:      result.Notices,
	}
}

// Create registers a new session for a pipeline result and returns its id
func (m *Manager) Create(ctx context.Context, result *pipeline.Result) (string, *Snapshot, error) {
	if result == nil {
		return "", nil, errors.New("pipeline result is required")
	}
	id := uuid.NewString()
	e := &entry{state: stateFromResult(result), lastUsed: m.now()}

	m.mu.Lock()
	m.sessions[id] = e
	m.mu.Unlock()

	e.mu.Lock()
	defer e.mu.Unlock()
	snap := e.state.Snapshot(id)
	m.persist(ctx, snap)
	m.logger.Info("session created", zap.String("session_id", id))
	return id, snap, nil
}

// View runs fn with read access to a session's state
func (m *Manager) View(ctx context.Context, id string, fn func(*State) error) error {
	e, err := m.lookup(ctx, id)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lastUsed = m.now()
	return fn(e.state)
}

// Update runs fn with write access to a session's state and persists the result.
// When fn fails nothing is persisted and its error is returned.
func (m *Manager) Update(ctx context.Context, id string, fn func(*State) error) (*Snapshot, error) {
	e, err := m.lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lastUsed = m.now()
	if err := fn(e.state); err != nil {
		return nil, err
	}
	snap := e.state.Snapshot(id)
	m.persist(ctx, snap)
	return snap, nil
}

// Replace swaps the session's state for a new pipeline result, discarding prior edits
func (m *Manager) Replace(ctx context.Context, id string, result *pipeline.Result) (*Snapshot, error) {
	if result == nil {
		return nil, errors.New("pipeline result is required")
	}
	return m.Update(ctx, id, func(st *State) error {
		*st = *stateFromResult(result)
		return nil
	})
}

// Delete ends a session
func (m *Manager) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	_, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if m.persister != nil {
		if err := m.persister.DeleteSession(ctx, id); err != nil {
			m.logger.Warn("failed to delete persisted session", zap.String("session_id", id), zap.Error(err))
		} else {
			ok = true
		}
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// Len returns the number of live sessions
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep drops sessions idle longer than the TTL and returns how many were removed
func (m *Manager) Sweep() int {
	cutoff := m.now().Add(-m.ttl)

	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, e := range m.sessions {
		e.mu.Lock()
		expired := e.lastUsed.Before(cutoff)
		e.mu.Unlock()
		if expired {
			delete(m.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		m.logger.Info("expired sessions removed", zap.Int("count", removed))
	}
	return removed
}

// RunJanitor sweeps expired sessions every interval until ctx is done
func (m *Manager) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep()
			m.ExpirePersisted(ctx)
		}
	}
}

// ExpirePersisted removes stored snapshots idle longer than the TTL when the
// persister supports it
func (m *Manager) ExpirePersisted(ctx context.Context) {
	expirer, ok := m.persister.(Expirer)
	if !ok {
		return
	}
	removed, err := expirer.DeleteSessionsBefore(ctx, m.now().Add(-m.ttl))
	if err != nil {
		m.logger.Warn("failed to expire persisted sessions", zap.Error(err))
		return
	}
	if removed > 0 {
		m.logger.Info("expired persisted sessions removed", zap.Int64("count", removed))
	}
}

// lookup finds a live session, falling back to the persister
func (m *Manager) lookup(ctx context.Context, id string) (*entry, error) {
	m.mu.RLock()
	e, ok := m.sessions[id]
	m.mu.RUnlock()
	if ok {
		return e, nil
	}
	if m.persister == nil {
		return nil, ErrNotFound
	}

	data, err := m.persister.LoadSession(ctx, id)
	if err != nil {
		m.logger.Warn("failed to load persisted session", zap.String("session_id", id), zap.Error(err))
		return nil, ErrNotFound
	}
	if data == nil {
		return nil, ErrNotFound
	}
	snap, err := DecodeSnapshot(data)
	if err != nil {
		m.logger.Warn("discarding invalid persisted session", zap.String("session_id", id), zap.Error(err))
		return nil, ErrNotFound
	}
	state, err := snap.State()
	if err != nil {
		m.logger.Warn("discarding invalid persisted session", zap.String("session_id", id), zap.Error(err))
		return nil, ErrNotFound
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.sessions[id]; ok {
		return existing, nil
	}
	e = &entry{state: state, lastUsed: m.now()}
	m.sessions[id] = e
	m.logger.Debug("session restored from store", zap.String("session_id", id))
	return e, nil
}

func (m *Manager) persist(ctx context.Context, snap *Snapshot) {
	if m.persister == nil {
		return
	}
	data, err := snap.Encode()
	if err == nil {
		err = m.persister.SaveSession(ctx, snap.ID, data)
	}
	if err != nil {
		m.logger.Warn("failed to persist session", zap.String("session_id", snap.ID), zap.Error(err))
	}
}
