package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestExerciseStore_Merge(t *testing.T) {
	t.Run("reuse requires a target in the same patch", func(t *testing.T) {
		store := NewExerciseStore()
		require.NoError(t, store.Merge("e1", ExercisePatch{Action: ptr(ExerciseActionCreate)}))

		err := store.Merge("e1", ExercisePatch{Action: ptr(ExerciseActionReuse)})
		assert.ErrorIs(t, err, ErrReuseWithoutTarget)

		d, _ := store.Get("e1")
		assert.Equal(t, CreateDecision(), d)
	})

	t.Run("create and skip clear the reuse target", func(t *testing.T) {
		for _, action := range []ExerciseAction{ExerciseActionCreate, ExerciseActionSkip} {
			store := NewExerciseStore()
			require.NoError(t, store.Merge("e1", ExercisePatch{Action: ptr(ExerciseActionReuse), ReuseExerciseID: ptr("cat-1")}))
			require.NoError(t, store.Merge("e1", ExercisePatch{Action: ptr(action)}))

			d, _ := store.Get("e1")
			assert.Equal(t, action, d.Action)
			assert.Empty(t, d.ReuseExerciseID)
		}
	})

	t.Run("target alone retargets an existing reuse", func(t *testing.T) {
		store := NewExerciseStore()
		require.NoError(t, store.Merge("e1", ExercisePatch{Action: ptr(ExerciseActionReuse), ReuseExerciseID: ptr("cat-1")}))
		require.NoError(t, store.Merge("e1", ExercisePatch{ReuseExerciseID: ptr("cat-2")}))

		d, _ := store.Get("e1")
		assert.Equal(t, ReuseDecision("cat-2"), d)
	})

	t.Run("target on a non-reuse decision is rejected", func(t *testing.T) {
		store := NewExerciseStore()
		require.NoError(t, store.Merge("e1", ExercisePatch{Action: ptr(ExerciseActionSkip)}))

		err := store.Merge("e1", ExercisePatch{ReuseExerciseID: ptr("cat-1")})
		assert.ErrorIs(t, err, ErrTargetWithoutReuse)
	})

	t.Run("invalid action is rejected", func(t *testing.T) {
		store := NewExerciseStore()
		err := store.Merge("e1", ExercisePatch{Action: ptr(ExerciseAction("merge"))})
		assert.ErrorIs(t, err, ErrInvalidAction)
		assert.Equal(t, 0, store.Len())
	})

	t.Run("edits merge field by field", func(t *testing.T) {
		store := NewExerciseStore()
		require.NoError(t, store.Merge("e1", ExercisePatch{
			Action:     ptr(ExerciseActionCreate),
			EditedData: &ExerciseEdits{Name: ptr("Wall squat"), Reps: ptr(10)},
		}))
		require.NoError(t, store.Merge("e1", ExercisePatch{EditedData: &ExerciseEdits{Reps: ptr(12)}}))

		d, _ := store.Get("e1")
		require.NotNil(t, d.EditedData)
		assert.Equal(t, "Wall squat", *d.EditedData.Name)
		assert.Equal(t, 12, *d.EditedData.Reps)
		assert.Equal(t, ExerciseActionCreate, d.Action)
	})
}

func TestExerciseStore_NonReuseNeverKeepsTarget(t *testing.T) {
	store := NewExerciseStore()
	patches := []ExercisePatch{
		{Action: ptr(ExerciseActionReuse), ReuseExerciseID: ptr("cat-1")},
		{Action: ptr(ExerciseActionSkip)},
		{Action: ptr(ExerciseActionReuse), ReuseExerciseID: ptr("cat-2")},
		{Action: ptr(ExerciseActionReuse)},
		{Action: ptr(ExerciseActionCreate), ReuseExerciseID: ptr("")},
		{EditedData: &ExerciseEdits{Name: ptr("x")}},
	}
	for _, p := range patches {
		_ = store.Merge("e1", p)
		d, ok := store.Get("e1")
		require.True(t, ok)
		if d.Action != ExerciseActionReuse {
			assert.Empty(t, d.ReuseExerciseID)
		} else {
			assert.NotEmpty(t, d.ReuseExerciseID)
		}
	}
}

func TestStore_CloneIsIndependent(t *testing.T) {
	store := NewExerciseStore()
	require.NoError(t, store.Merge("e1", ExercisePatch{Action: ptr(ExerciseActionCreate)}))
	require.NoError(t, store.Merge("e2", ExercisePatch{Action: ptr(ExerciseActionSkip)}))

	clone := store.Clone()
	require.NoError(t, clone.Merge("e1", ExercisePatch{Action: ptr(ExerciseActionSkip)}))

	d, _ := store.Get("e1")
	assert.Equal(t, ExerciseActionCreate, d.Action)
	assert.Equal(t, []string{"e1", "e2"}, clone.IDs())
}

func TestSetAndNoteStore_Merge(t *testing.T) {
	sets := NewSetStore()
	require.NoError(t, sets.Merge("s1", SetPatch{Action: ptr(SetActionCreate)}))
	require.NoError(t, sets.Merge("s1", SetPatch{EditedName: ptr("Morning routine")}))
	d, _ := sets.Get("s1")
	assert.Equal(t, SetActionCreate, d.Action)
	assert.Equal(t, "Morning routine", *d.EditedName)

	// a brand new record needs an action
	assert.ErrorIs(t, sets.Merge("s2", SetPatch{EditedName: ptr("x")}), ErrInvalidAction)

	notes := NewNoteStore()
	require.NoError(t, notes.Merge("n1", NotePatch{Action: ptr(NoteActionSkip)}))
	assert.ErrorIs(t, notes.Merge("n1", NotePatch{Action: ptr(NoteAction("archive"))}), ErrInvalidAction)
	n, _ := notes.Get("n1")
	assert.Equal(t, NoteActionSkip, n.Action)
}
