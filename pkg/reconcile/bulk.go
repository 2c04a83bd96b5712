package reconcile

type BulkAction string

const (
	BulkApproveAllConfident BulkAction = "approve-all-confident"
	BulkUseAllMatched       BulkAction = "use-all-matched"
	BulkSetAllCreate        BulkAction = "set-all-create"
	BulkSetAllSkip          BulkAction = "set-all-skip"
)

func (a BulkAction) Valid() bool {
	switch a {
	case BulkApproveAllConfident, BulkUseAllMatched, BulkSetAllCreate, BulkSetAllSkip:
		return true
	}
	return false
}

// applyBulk runs a bulk action against a copy of the exercise store and swaps
// it in only when every merge succeeded. It returns how many decisions changed.
// Set and note decisions are never touched.
func (s *Session) applyBulk(action BulkAction) (int, error) {
	if !action.Valid() {
		return 0, ErrUnknownCommand
	}

	next := s.exerciseDecisions.Clone()
	changed := 0
	for _, e := range s.input.Exercises {
		patch, ok := s.bulkPatch(action, e.TempID, next)
		if !ok {
			continue
		}
		before, _ := next.Get(e.TempID)
		if err := next.Merge(e.TempID, patch); err != nil {
			return 0, err
		}
		if after, _ := next.Get(e.TempID); !sameDecision(before, after) {
			changed++
		}
	}

	s.exerciseDecisions = next
	return changed, nil
}

func (s *Session) bulkPatch(action BulkAction, tempID string, decisions *ExerciseStore) (ExercisePatch, bool) {
	suggestions := s.input.Suggestions[tempID]

	switch action {
	case BulkApproveAllConfident:
		if Classify(suggestions) != BucketConfident || suggestions[0].ExistingExerciseID == "" {
			return ExercisePatch{}, false
		}
		// an explicit skip on a confident match is the user's call
		if d, ok := decisions.Get(tempID); ok && d.Action == ExerciseActionSkip {
			return ExercisePatch{}, false
		}
		return reusePatch(suggestions[0].ExistingExerciseID), true
	case BulkUseAllMatched:
		if len(suggestions) == 0 || suggestions[0].ExistingExerciseID == "" {
			return ExercisePatch{}, false
		}
		return reusePatch(suggestions[0].ExistingExerciseID), true
	case BulkSetAllCreate:
		a := ExerciseActionCreate
		return ExercisePatch{Action: &a}, true
	case BulkSetAllSkip:
		a := ExerciseActionSkip
		return ExercisePatch{Action: &a}, true
	}
	return ExercisePatch{}, false
}

func reusePatch(exerciseID string) ExercisePatch {
	a := ExerciseActionReuse
	return ExercisePatch{Action: &a, ReuseExerciseID: &exerciseID}
}

func sameDecision(a, b ExerciseDecision) bool {
	return a.Action == b.Action && a.ReuseExerciseID == b.ReuseExerciseID
}
