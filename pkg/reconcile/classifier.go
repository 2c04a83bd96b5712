package reconcile

// ConfidentThreshold is the top-suggestion confidence at or above which an
// exercise is treated as a confident match.
const ConfidentThreshold = 0.7

type Bucket string

const (
	BucketNew       Bucket = "new"
	BucketConfident Bucket = "confident"
	BucketUncertain Bucket = "uncertain"
)

// Classify buckets an exercise by its first suggestion. The list is expected
// to be sorted already and is not re-ranked here.
func Classify(suggestions []MatchSuggestion) Bucket {
	if len(suggestions) == 0 {
		return BucketNew
	}
	if suggestions[0].Confidence >= ConfidentThreshold {
		return BucketConfident
	}
	return BucketUncertain
}

// DefaultDecision is the decision an exercise starts with. Uncertain items
// default to create, same as new ones.
func DefaultDecision(bucket Bucket, suggestions []MatchSuggestion) ExerciseDecision {
	if bucket == BucketConfident && len(suggestions) > 0 && suggestions[0].ExistingExerciseID != "" {
		return ReuseDecision(suggestions[0].ExistingExerciseID)
	}
	return CreateDecision()
}
