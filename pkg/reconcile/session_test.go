package reconcile

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession_Defaults(t *testing.T) {
	s := NewSession(reviewFixture())

	assert.Equal(t, BucketConfident, s.Bucket("squat"))
	assert.Equal(t, BucketConfident, s.Bucket("plank"))
	assert.Equal(t, BucketUncertain, s.Bucket("bridge"))
	assert.Equal(t, BucketNew, s.Bucket("walk"))
	assert.Equal(t, []string{"squat", "plank"}, s.BucketMembers(BucketConfident))

	d, _ := s.ExerciseDecision("squat")
	assert.Equal(t, ReuseDecision("cat-squat"), d)
	d, _ = s.ExerciseDecision("bridge")
	assert.Equal(t, CreateDecision(), d)
	d, _ = s.ExerciseDecision("walk")
	assert.Equal(t, CreateDecision(), d)

	set, _ := s.SetDecision("set-1")
	assert.Equal(t, SetActionCreate, set.Action)
	empty, _ := s.SetDecision("set-empty")
	assert.Equal(t, SetActionSkip, empty.Action)
	note, _ := s.NoteDecision("note-1")
	assert.Equal(t, NoteActionCreate, note.Action)
}

func TestNewSession_OneDecisionPerExercise(t *testing.T) {
	in := reviewFixture()
	in.Exercises = append(in.Exercises, ExtractedExercise{TempID: "squat", Name: "duplicate"})
	s := NewSession(in)

	assert.Len(t, s.Exercises(), 4)
	assert.Equal(t, 4, len(s.AllExerciseDecisions()))
	e, _ := s.Exercise("squat")
	assert.Equal(t, "Przysiady", e.Name)
}

func TestNewSession_Empty(t *testing.T) {
	s := NewSession(Input{})

	assert.Equal(t, Stats{}, s.Stats())
	assert.False(t, s.Stats().CanProceed())
	assert.Equal(t, Progress{}, s.ConfidentProgress())

	res, err := s.Dispatch(ApproveAllConfident)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Changed)

	_, err = s.BuildCommitPlan()
	assert.ErrorIs(t, err, ErrNothingToImport)
}

func TestDispatch_UnknownItems(t *testing.T) {
	s := NewSession(reviewFixture())

	_, err := s.Dispatch(SetExerciseDecision{TempID: "nope", Patch: ExercisePatch{Action: ptr(ExerciseActionSkip)}})
	assert.ErrorIs(t, err, ErrUnknownItem)
	_, err = s.Dispatch(SetSetDecision{TempID: "nope", Patch: SetPatch{Action: ptr(SetActionSkip)}})
	assert.ErrorIs(t, err, ErrUnknownItem)
	_, err = s.Dispatch(SetNoteDecision{TempID: "nope", Patch: NotePatch{Action: ptr(NoteActionSkip)}})
	assert.ErrorIs(t, err, ErrUnknownItem)
	_, err = s.Dispatch(nil)
	assert.ErrorIs(t, err, ErrUnknownCommand)
	_, err = s.Dispatch(ApplyBulk{Action: "approve-everything"})
	assert.ErrorIs(t, err, ErrUnknownCommand)
}

func TestDispatch_ReplaceSuggestions(t *testing.T) {
	s := NewSession(reviewFixture())

	_, err := s.Dispatch(ReplaceSuggestions{TempID: "walk", Suggestions: []MatchSuggestion{suggestion("cat-march", 0.75)}})
	require.NoError(t, err)

	assert.Equal(t, BucketConfident, s.Bucket("walk"))
	d, _ := s.ExerciseDecision("walk")
	assert.Equal(t, CreateDecision(), d, "decision is not re-derived on refresh")

	_, err = s.Dispatch(ReplaceSuggestions{TempID: "squat", Suggestions: nil})
	require.NoError(t, err)
	assert.Equal(t, BucketNew, s.Bucket("squat"))
	assert.Equal(t, []string{"squat"}, s.StaleReuseDecisions())

	d, _ = s.ExerciseDecision("squat")
	assert.Equal(t, ReuseDecision("cat-squat"), d, "stale reuse target is reported, not corrected")
}

func TestDispatch_PatientAndOptions(t *testing.T) {
	s := NewSession(reviewFixture())

	res, err := s.Dispatch(BindPatient{PatientID: "p-1"})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Changed)
	assert.Equal(t, "p-1", s.PatientID())

	res, err = s.Dispatch(SetImportOptions{AssignSetsToPatient: ptr(true)})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Changed)
	assert.Equal(t, Options{AssignSetsToPatient: true}, s.Options())

	res, err = s.Dispatch(SetImportOptions{AssignSetsToPatient: ptr(true)})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Changed)
}

func TestSession_SuggestPatient(t *testing.T) {
	roster := []PatientOption{
		{ID: "p-1", FullName: "Anna Nowak"},
		{ID: "p-2", FullName: "Jan Kowalski"},
	}
	s := NewSession(reviewFixture())
	match := s.SuggestPatient(roster)
	require.NotNil(t, match)
	assert.Equal(t, "p-2", match.ID)

	assert.Nil(t, NewSession(Input{}).SuggestPatient(roster))
}

func TestSession_JSONRoundTrip(t *testing.T) {
	s := NewSession(reviewFixture())
	_, err := s.Dispatch(SetExerciseDecision{TempID: "bridge", Patch: ExercisePatch{
		Action:          ptr(ExerciseActionReuse),
		ReuseExerciseID: ptr("cat-bridge"),
	}})
	require.NoError(t, err)
	_, err = s.Dispatch(SetNoteDecision{TempID: "note-1", Patch: NotePatch{EditedContent: ptr("Ból lędźwiowy, ostry")}})
	require.NoError(t, err)
	_, err = s.Dispatch(BindPatient{PatientID: "p-2"})
	require.NoError(t, err)

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var restored Session
	require.NoError(t, json.Unmarshal(data, &restored))

	assert.Equal(t, s.AllExerciseDecisions(), restored.AllExerciseDecisions())
	assert.Equal(t, s.AllSetDecisions(), restored.AllSetDecisions())
	assert.Equal(t, s.AllNoteDecisions(), restored.AllNoteDecisions())
	assert.Equal(t, "p-2", restored.PatientID())
	assert.Equal(t, s.Summary(), restored.Summary())
}
