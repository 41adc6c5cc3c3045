package reconcile

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cordxll/Resume-Builder/internal/types"
)

func testResults() map[types.SectionKind]types.TailoringResult {
	return map[types.SectionKind]types.TailoringResult{
		types.SectionSummary: {
			Kind:     types.SectionSummary,
			Original: types.TextContent("Engineer."),
			Tailored: types.TextContent("Migration-focused engineer."),
			Changes:  []string{"Emphasized migration"},
		},
		types.SectionExperience: {
			Kind:     types.SectionExperience,
			Original: types.BulletContent("A", "B"),
			Tailored: types.BulletContent("A'", "B'"),
		},
		types.SectionSkills: {
			Kind:     types.SectionSkills,
			Original: types.TextContent("Go, SQL"),
			Tailored: types.TextContent("SQL, Go"),
		},
	}
}

func TestNewStore_AcceptsByDefault(t *testing.T) {
	s := NewStore(testResults())

	assert.Equal(t, []types.SectionKind{types.SectionSummary, types.SectionExperience, types.SectionSkills}, s.Kinds())
	for _, kind := range s.Kinds() {
		st, err := s.State(kind)
		require.NoError(t, err)
		assert.True(t, st.Accepted)
		assert.Nil(t, st.Override)
	}

	got, err := s.Resolve(types.SectionExperience)
	require.NoError(t, err)
	assert.Equal(t, types.BulletContent("A'", "B'"), got)
}

func TestResolve_Precedence(t *testing.T) {
	tests := []struct {
		name     string
		accepted bool
		override *types.Content
		want     types.Content
	}{
		{name: "accepted", accepted: true, want: types.BulletContent("A'", "B'")},
		{name: "rejected", accepted: false, want: types.BulletContent("A", "B")},
		{name: "override wins when accepted", accepted: true, override: ptr(types.BulletContent("C")), want: types.BulletContent("C")},
		{name: "override wins when rejected", accepted: false, override: ptr(types.BulletContent("C")), want: types.BulletContent("C")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore(testResults())
			require.NoError(t, s.SetAccepted(types.SectionExperience, tt.accepted))
			if tt.override != nil {
				require.NoError(t, s.SetOverride(types.SectionExperience, *tt.override))
			}
			got, err := s.Resolve(types.SectionExperience)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToggleAccept(t *testing.T) {
	s := NewStore(testResults())

	accepted, err := s.ToggleAccept(types.SectionExperience)
	require.NoError(t, err)
	assert.False(t, accepted)

	got, _ := s.Resolve(types.SectionExperience)
	assert.Equal(t, types.BulletContent("A", "B"), got)

	accepted, err = s.ToggleAccept(types.SectionExperience)
	require.NoError(t, err)
	assert.True(t, accepted)

	summary, _ := s.Resolve(types.SectionSummary)
	assert.Equal(t, types.TextContent("Migration-focused engineer."), summary)
}

func TestClearOverride(t *testing.T) {
	s := NewStore(testResults())
	require.NoError(t, s.SetAccepted(types.SectionSummary, false))
	require.NoError(t, s.SetOverride(types.SectionSummary, types.TextContent("Mine.")))

	got, _ := s.Resolve(types.SectionSummary)
	assert.Equal(t, types.TextContent("Mine."), got)

	require.NoError(t, s.ClearOverride(types.SectionSummary))
	got, _ = s.Resolve(types.SectionSummary)
	assert.Equal(t, types.TextContent("Engineer."), got)
}

func TestErrorsKeepPriorState(t *testing.T) {
	s := NewStore(testResults())
	before := s.Snapshot()

	_, err := s.ToggleAccept(types.SectionEducation)
	var unknown *UnknownSectionError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, types.SectionEducation, unknown.Kind)

	err = s.SetOverride(types.SectionExperience, types.TextContent("not bullets"))
	var mismatch *ShapeMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, types.ShapeBullets, mismatch.Expected)

	err = s.SetOverride(types.SectionSummary, types.Content{Shape: types.ShapeText, Text: "x", Bullets: []string{"y"}})
	require.ErrorAs(t, err, &mismatch)

	err = s.SetOverride(types.SectionSummary, types.TextContent("   "))
	var empty *EmptyOverrideError
	require.ErrorAs(t, err, &empty)
	assert.Equal(t, types.SectionSummary, empty.Kind)

	err = s.SetOverride(types.SectionExperience, types.BulletContent())
	require.ErrorAs(t, err, &empty)

	err = s.SetOverride(types.SectionExperience, types.BulletContent("", " "))
	require.ErrorAs(t, err, &empty)

	_, err = s.Resolve("hobbies")
	require.ErrorAs(t, err, &unknown)

	assert.Equal(t, before, s.Snapshot())
}

func TestResolve_ReturnsCopies(t *testing.T) {
	s := NewStore(testResults())

	first, _ := s.Resolve(types.SectionExperience)
	first.Bullets[0] = "mutated"

	second, _ := s.Resolve(types.SectionExperience)
	assert.Equal(t, "A'", second.Bullets[0])

	all := s.ResolveAll()
	all[types.SectionExperience].Bullets[1] = "mutated"
	assert.Equal(t, s.ResolveAll(), s.ResolveAll())
	third, _ := s.Resolve(types.SectionExperience)
	assert.Equal(t, "B'", third.Bullets[1])
}

func TestSectionsAreIndependent(t *testing.T) {
	s := NewStore(testResults())
	require.NoError(t, s.SetAccepted(types.SectionSkills, false))

	all := s.ResolveAll()
	assert.Equal(t, types.TextContent("Go, SQL"), all[types.SectionSkills])
	assert.Equal(t, types.TextContent("Migration-focused engineer."), all[types.SectionSummary])
	assert.Equal(t, types.BulletContent("A'", "B'"), all[types.SectionExperience])
}

func TestSnapshotRestore(t *testing.T) {
	s := NewStore(testResults())
	require.NoError(t, s.SetAccepted(types.SectionSkills, false))
	require.NoError(t, s.SetOverride(types.SectionSummary, types.TextContent("Mine.")))

	data, err := json.Marshal(s.Snapshot())
	require.NoError(t, err)

	var snap Snapshot
	require.NoError(t, json.Unmarshal(data, &snap))
	restored, err := Restore(snap)
	require.NoError(t, err)

	assert.Equal(t, s.ResolveAll(), restored.ResolveAll())
	st, _ := restored.State(types.SectionSummary)
	assert.Equal(t, []string{"Emphasized migration"}, st.Changes)
}

func TestRestore_Rejects(t *testing.T) {
	_, err := Restore(Snapshot{"hobbies": {Original: types.TextContent("x"), Tailored: types.TextContent("x")}})
	var snapErr *SnapshotError
	require.ErrorAs(t, err, &snapErr)

	_, err = Restore(Snapshot{types.SectionExperience: {
		Original: types.BulletContent("a"),
		Tailored: types.BulletContent("a"),
		Override: ptr(types.TextContent("a")),
	}})
	var mismatch *ShapeMismatchError
	require.ErrorAs(t, err, &mismatch)
}

func ptr(c types.Content) *types.Content {
	return &c
}
