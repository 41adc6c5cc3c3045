package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cordxll/Resume-Builder/internal/pipeline"
	"github.com/Cordxll/Resume-Builder/internal/rewriting"
	"github.com/Cordxll/Resume-Builder/internal/tailoring"
	"github.com/Cordxll/Resume-Builder/internal/types"
)

const resumeText = `Jane Doe
SUMMARY
Backend engineer.
EXPERIENCE
- Led migration project
SKILLS
Go, Docker`

func runPipeline(t *testing.T) *pipeline.Result {
	t.Helper()
	result, err := pipeline.Run(context.Background(), resumeText, "Requirements:\n- Go\n- Docker", pipeline.Options{
		Orchestrator: tailoring.New(rewriting.Stub{}),
	})
	require.NoError(t, err)
	return result
}

type memoryPersister struct {
	mu   sync.Mutex
	data map[string][]byte
	err  error
}

func newMemoryPersister() *memoryPersister {
	return &memoryPersister{data: make(map[string][]byte)}
}

func (p *memoryPersister) SaveSession(_ context.Context, id string, snapshot []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.data[id] = snapshot
	return nil
}

func (p *memoryPersister) LoadSession(_ context.Context, id string) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.data[id], p.err
}

func (p *memoryPersister) DeleteSession(_ context.Context, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.data, id)
	return p.err
}

func TestManager_CreateAndUpdate(t *testing.T) {
	ctx := context.Background()
	m := NewManager()

	id, snap, err := m.Create(ctx, runPipeline(t))
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, snap.ID)
	assert.Len(t, snap.Edits, 3)
	assert.Equal(t, 1, m.Len())

	snap, err = m.Update(ctx, id, func(st *State) error {
		_, err := st.Store.ToggleAccept(types.SectionSkills)
		return err
	})
	require.NoError(t, err)
	assert.False(t, snap.Edits[types.SectionSkills].Accepted)

	err = m.View(ctx, id, func(st *State) error {
		assert.Equal(t, "Jane Doe", st.Document.Contact.Name)
		return nil
	})
	require.NoError(t, err)
}

func TestManager_UpdateErrorIsReturned(t *testing.T) {
	ctx := context.Background()
	p := newMemoryPersister()
	m := NewManager(WithPersister(p))
	id, _, err := m.Create(ctx, runPipeline(t))
	require.NoError(t, err)
	before := p.data[id]

	_, err = m.Update(ctx, id, func(st *State) error {
		return st.Store.SetAccepted(types.SectionEducation, false)
	})
	require.Error(t, err)
	assert.Equal(t, before, p.data[id])
}

func TestManager_NotFound(t *testing.T) {
	ctx := context.Background()
	m := NewManager()

	err := m.View(ctx, "missing", func(*State) error { return nil })
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = m.Update(ctx, "missing", func(*State) error { return nil })
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, m.Delete(ctx, "missing"), ErrNotFound)
}

func TestManager_Delete(t *testing.T) {
	ctx := context.Background()
	m := NewManager()
	id, _, err := m.Create(ctx, runPipeline(t))
	require.NoError(t, err)

	require.NoError(t, m.Delete(ctx, id))
	assert.Equal(t, 0, m.Len())
	assert.ErrorIs(t, m.View(ctx, id, func(*State) error { return nil }), ErrNotFound)
}

func TestManager_ReplaceDiscardsEdits(t *testing.T) {
	ctx := context.Background()
	m := NewManager()
	id, _, err := m.Create(ctx, runPipeline(t))
	require.NoError(t, err)

	_, err = m.Update(ctx, id, func(st *State) error {
		return st.Store.SetOverride(types.SectionSummary, types.TextContent("Mine."))
	})
	require.NoError(t, err)

	snap, err := m.Replace(ctx, id, runPipeline(t))
	require.NoError(t, err)
	assert.Nil(t, snap.Edits[types.SectionSummary].Override)
	assert.True(t, snap.Edits[types.SectionSummary].Accepted)
}

func TestManager_Sweep(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewManager(WithTTL(time.Hour))
	m.now = func() time.Time { return now }

	stale, _, err := m.Create(ctx, runPipeline(t))
	require.NoError(t, err)

	now = now.Add(50 * time.Minute)
	fresh, _, err := m.Create(ctx, runPipeline(t))
	require.NoError(t, err)

	now = now.Add(20 * time.Minute)
	assert.Equal(t, 1, m.Sweep())
	assert.ErrorIs(t, m.View(ctx, stale, func(*State) error { return nil }), ErrNotFound)
	assert.NoError(t, m.View(ctx, fresh, func(*State) error { return nil }))
}

func TestManager_RestoresFromPersister(t *testing.T) {
	ctx := context.Background()
	p := newMemoryPersister()

	first := NewManager(WithPersister(p))
	id, _, err := first.Create(ctx, runPipeline(t))
	require.NoError(t, err)
	_, err = first.Update(ctx, id, func(st *State) error {
		return st.Store.SetAccepted(types.SectionExperience, false)
	})
	require.NoError(t, err)

	second := NewManager(WithPersister(p))
	err = second.View(ctx, id, func(st *State) error {
		state, err := st.Store.State(types.SectionExperience)
		require.NoError(t, err)
		assert.False(t, state.Accepted)
		assert.Equal(t, "Jane Doe", st.Document.Contact.Name)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, second.Len())
}

func TestManager_PersisterFailuresAreNotFatal(t *testing.T) {
	ctx := context.Background()
	p := newMemoryPersister()
	p.err = errors.New("connection refused")

	m := NewManager(WithPersister(p))
	id, _, err := m.Create(ctx, runPipeline(t))
	require.NoError(t, err)
	assert.NoError(t, m.View(ctx, id, func(*State) error { return nil }))
	assert.ErrorIs(t, m.View(ctx, "other", func(*State) error { return nil }), ErrNotFound)
}

func TestManager_ConcurrentUpdates(t *testing.T) {
	ctx := context.Background()
	m := NewManager()
	id, _, err := m.Create(ctx, runPipeline(t))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = m.Update(ctx, id, func(st *State) error {
				_, err := st.Store.ToggleAccept(types.SectionSkills)
				return err
			})
		}()
	}
	wg.Wait()

	err = m.View(ctx, id, func(st *State) error {
		state, err := st.Store.State(types.SectionSkills)
		require.NoError(t, err)
		assert.True(t, state.Accepted)
		return nil
	})
	require.NoError(t, err)
}

func TestSnapshot_RoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewManager()
	_, snap, err := m.Create(ctx, runPipeline(t))
	require.NoError(t, err)

	data, err := snap.Encode()
	require.NoError(t, err)

	decoded, err := DecodeSnapshot(data)
	require.NoError(t, err)
	state, err := decoded.State()
	require.NoError(t, err)
	assert.Equal(t, snap.Edits, state.Store.Snapshot())

	_, err = DecodeSnapshot([]byte(`{"document": {}}`))
	assert.Error(t, err)
}

type expiringPersister struct {
	*memoryPersister
	cutoff time.Time
}

func (p *expiringPersister) DeleteSessionsBefore(_ context.Context, cutoff time.Time) (int64, error) {
	p.cutoff = cutoff
	return 0, nil
}

func TestManager_ExpirePersisted(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	p := &expiringPersister{memoryPersister: newMemoryPersister()}
	m := NewManager(WithPersister(p), WithTTL(time.Hour))
	m.now = func() time.Time { return now }

	m.ExpirePersisted(context.Background())
	assert.Equal(t, now.Add(-time.Hour), p.cutoff)

	// persisters without bulk expiry are left alone
	NewManager(WithPersister(newMemoryPersister())).ExpirePersisted(context.Background())
}
