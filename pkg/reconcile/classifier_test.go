package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func suggestion(id string, confidence float64) MatchSuggestion {
	return MatchSuggestion{
		ExistingExerciseID:   id,
		ExistingExerciseName: "catalog " + id,
		Confidence:           confidence,
		MatchReason:          "name similarity",
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		suggestions []MatchSuggestion
		want        Bucket
	}{
		{"no suggestions", nil, BucketNew},
		{"empty list", []MatchSuggestion{}, BucketNew},
		{"at threshold", []MatchSuggestion{suggestion("a", 0.7)}, BucketConfident},
		{"above threshold", []MatchSuggestion{suggestion("a", 0.82)}, BucketConfident},
		{"below threshold", []MatchSuggestion{suggestion("a", 0.69)}, BucketUncertain},
		{"only first entry counts", []MatchSuggestion{suggestion("a", 0.4), suggestion("b", 0.95)}, BucketUncertain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.suggestions))
		})
	}
}

func TestDefaultDecision(t *testing.T) {
	t.Run("confident reuses top suggestion", func(t *testing.T) {
		sugg := []MatchSuggestion{
			{ExistingExerciseID: "ex-wall-squat", ExistingExerciseName: "Przysiad przy ścianie", Confidence: 0.82},
		}
		bucket := Classify(sugg)
		assert.Equal(t, BucketConfident, bucket)
		assert.Equal(t, ReuseDecision("ex-wall-squat"), DefaultDecision(bucket, sugg))
	})

	t.Run("uncertain defaults to create", func(t *testing.T) {
		sugg := []MatchSuggestion{
			{ExistingExerciseID: "ex-wall-squat", ExistingExerciseName: "Przysiad przy ścianie", Confidence: 0.55},
		}
		bucket := Classify(sugg)
		assert.Equal(t, BucketUncertain, bucket)
		// indistinguishable from an explicit create; kept as observed
		assert.Equal(t, CreateDecision(), DefaultDecision(bucket, sugg))
	})

	t.Run("new defaults to create", func(t *testing.T) {
		assert.Equal(t, CreateDecision(), DefaultDecision(BucketNew, nil))
	})
}
