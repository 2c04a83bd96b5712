package reconcile

// reviewFixture is a small import: two confident matches, one uncertain, one
// new exercise, a set spanning all four, one clinical note.
func reviewFixture() Input {
	return Input{
		Exercises: []ExtractedExercise{
			{TempID: "squat", Name: "Przysiady", Type: ExerciseTypeReps, Reps: ptr(10)},
			{TempID: "plank", Name: "Deska", Type: ExerciseTypeHold, HoldTime: ptr(30)},
			{TempID: "bridge", Name: "Mostek", Type: ExerciseTypeReps},
			{TempID: "walk", Name: "Marsz w miejscu", Type: ExerciseTypeTime, Duration: ptr(120)},
		},
		Sets: []ExtractedExerciseSet{
			{TempID: "set-1", Name: "Zestaw poranny", SuggestedFrequency: "daily", ExerciseTempIDs: []string{"squat", "plank", "bridge", "walk"}},
			{TempID: "set-empty", Name: "Pusty", ExerciseTempIDs: nil},
		},
		Notes: []ExtractedClinicalNote{
			{TempID: "note-1", NoteType: NoteTypeDiagnosis, Content: "Ból lędźwiowy"},
		},
		DetectedPatientName: "Jan Kowalski",
		Suggestions: map[string][]MatchSuggestion{
			"squat":  {suggestion("cat-squat", 0.82), suggestion("cat-lunge", 0.4)},
			"plank":  {suggestion("cat-plank", 0.9)},
			"bridge": {suggestion("cat-bridge", 0.55)},
		},
	}
}
