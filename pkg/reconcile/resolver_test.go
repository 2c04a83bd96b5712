package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storeWith(t *testing.T, decisions map[string]ExerciseAction) *ExerciseStore {
	t.Helper()
	store := NewExerciseStore()
	for id, action := range decisions {
		patch := ExercisePatch{Action: ptr(action)}
		if action == ExerciseActionReuse {
			patch.ReuseExerciseID = ptr("cat-" + id)
		}
		require.NoError(t, store.Merge(id, patch))
	}
	return store
}

func TestIsEligible(t *testing.T) {
	set := ExtractedExerciseSet{TempID: "s", ExerciseTempIDs: []string{"a", "b", "c"}}

	tests := []struct {
		name      string
		decisions map[string]ExerciseAction
		want      bool
		active    []string
	}{
		{
			name:      "one active member",
			decisions: map[string]ExerciseAction{"a": ExerciseActionSkip, "b": ExerciseActionSkip, "c": ExerciseActionCreate},
			want:      true,
			active:    []string{"c"},
		},
		{
			name:      "reuse counts as active",
			decisions: map[string]ExerciseAction{"a": ExerciseActionReuse, "b": ExerciseActionSkip, "c": ExerciseActionSkip},
			want:      true,
			active:    []string{"a"},
		},
		{
			name:      "all skipped",
			decisions: map[string]ExerciseAction{"a": ExerciseActionSkip, "b": ExerciseActionSkip, "c": ExerciseActionSkip},
			want:      false,
			active:    []string{},
		},
		{
			name:      "missing decisions are not active",
			decisions: map[string]ExerciseAction{},
			want:      false,
			active:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storeWith(t, tt.decisions)
			assert.Equal(t, tt.want, IsEligible(set, store))
			assert.Equal(t, tt.active, ActiveMembers(set, store))
		})
	}
}

func TestIsEligible_FollowsLiveDecisions(t *testing.T) {
	s := NewSession(Input{
		Exercises: []ExtractedExercise{{TempID: "A"}, {TempID: "B"}},
		Sets:      []ExtractedExerciseSet{{TempID: "set", ExerciseTempIDs: []string{"A", "B"}}},
	})

	_, err := s.Dispatch(SetAllSkip)
	require.NoError(t, err)
	assert.False(t, s.IsSetEligible("set"))

	_, err = s.Dispatch(SetExerciseDecision{TempID: "A", Patch: ExercisePatch{Action: ptr(ExerciseActionCreate)}})
	require.NoError(t, err)
	assert.True(t, s.IsSetEligible("set"))
}

func TestSetSetDecision_Eligibility(t *testing.T) {
	s := NewSession(reviewFixture())

	_, err := s.Dispatch(SetSetDecision{TempID: "set-empty", Patch: SetPatch{Action: ptr(SetActionCreate)}})
	assert.ErrorIs(t, err, ErrSetIneligible)

	_, err = s.Dispatch(SetAllSkip)
	require.NoError(t, err)

	// a create made while eligible is not reverted by later skips
	d, _ := s.SetDecision("set-1")
	assert.Equal(t, SetActionCreate, d.Action)
	assert.False(t, s.IsSetEligible("set-1"))

	_, err = s.Dispatch(SetSetDecision{TempID: "set-1", Patch: SetPatch{Action: ptr(SetActionSkip)}})
	require.NoError(t, err)
	_, err = s.Dispatch(SetSetDecision{TempID: "set-1", Patch: SetPatch{Action: ptr(SetActionCreate)}})
	assert.ErrorIs(t, err, ErrSetIneligible)

	// renaming is allowed whatever the eligibility
	_, err = s.Dispatch(SetSetDecision{TempID: "set-1", Patch: SetPatch{EditedName: ptr("Wieczorny")}})
	require.NoError(t, err)

	assert.False(t, s.IsSetEligible("unknown"))
}
