package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeStats(t *testing.T) {
	store := storeWith(t, map[string]ExerciseAction{
		"e1": ExerciseActionReuse,
		"e2": ExerciseActionReuse,
		"e3": ExerciseActionCreate,
		"e4": ExerciseActionSkip,
		"e5": ExerciseActionSkip,
	})

	stats := ComputeStats(store)
	assert.Equal(t, Stats{ReuseCount: 2, CreateCount: 1, SkipCount: 2}, stats)
	assert.Equal(t, 3, stats.TotalToImport())
	assert.Equal(t, 5, stats.Total())
	assert.True(t, stats.CanProceed())
}

func TestComputeStats_AllSkippedBlocksProceed(t *testing.T) {
	s := NewSession(reviewFixture())
	_, err := s.Dispatch(SetAllSkip)
	require.NoError(t, err)

	stats := s.Stats()
	assert.Equal(t, 0, stats.TotalToImport())
	assert.False(t, stats.CanProceed())
}

func TestComputeStats_PartitionHoldsAcrossEdits(t *testing.T) {
	s := NewSession(reviewFixture())
	total := len(s.Exercises())

	commands := []Command{
		UseAllMatched,
		SetExerciseDecision{TempID: "walk", Patch: ExercisePatch{Action: ptr(ExerciseActionSkip)}},
		SetAllCreate,
		ApproveAllConfident,
		SetExerciseDecision{TempID: "bridge", Patch: ExercisePatch{Action: ptr(ExerciseActionReuse), ReuseExerciseID: ptr("cat-bridge")}},
		SetAllSkip,
	}
	for _, cmd := range commands {
		_, err := s.Dispatch(cmd)
		require.NoError(t, err)
		assert.Equal(t, total, s.Stats().Total())
	}
}

func TestSummary(t *testing.T) {
	s := NewSession(reviewFixture())
	_, err := s.Dispatch(SetNoteDecision{TempID: "note-1", Patch: NotePatch{Action: ptr(NoteActionSkip)}})
	require.NoError(t, err)

	sum := s.Summary()
	assert.Equal(t, Stats{ReuseCount: 2, CreateCount: 2}, sum.Exercises)
	assert.Equal(t, 4, sum.TotalToImport)
	assert.True(t, sum.CanProceed)
	assert.Equal(t, Progress{Approved: 2, Total: 2}, sum.ConfidentProgress)
	assert.Equal(t, 1, sum.SetsToCreate)
	assert.Equal(t, 1, sum.SetsSkipped)
	assert.Equal(t, 1, sum.IneligibleSets)
	assert.Equal(t, 0, sum.NotesToCreate)
	assert.Equal(t, 1, sum.NotesSkipped)
}
