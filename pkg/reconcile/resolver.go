package reconcile

// ActiveMembers returns the set's member temp ids whose decision exists and is
// not skip, in set order.
func ActiveMembers(set ExtractedExerciseSet, exercises *ExerciseStore) []string {
	active := make([]string, 0, len(set.ExerciseTempIDs))
	for _, id := range set.ExerciseTempIDs {
		if d, ok := exercises.Get(id); ok && d.Active() {
			active = append(active, id)
		}
	}
	return active
}

// IsEligible reports whether the set may be created. It is derived from the
// live exercise decisions on every call.
func IsEligible(set ExtractedExerciseSet, exercises *ExerciseStore) bool {
	for _, id := range set.ExerciseTempIDs {
		if d, ok := exercises.Get(id); ok && d.Active() {
			return true
		}
	}
	return false
}
