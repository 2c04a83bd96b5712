// Package reconcile matches extracted import items against catalog candidates
// and tracks the per-item create/reuse/skip decisions of an import review.
package reconcile

// ExerciseType describes how an extracted exercise is dosed.
type ExerciseType string

const (
	ExerciseTypeReps ExerciseType = "reps"
	ExerciseTypeTime ExerciseType = "time"
	ExerciseTypeHold ExerciseType = "hold"
)

// NoteType is open-ended; the constants cover the kinds the extractor emits today.
type NoteType string

const (
	NoteTypeInterview   NoteType = "interview"
	NoteTypeExamination NoteType = "examination"
	NoteTypeDiagnosis   NoteType = "diagnosis"
	NoteTypeProcedure   NoteType = "procedure"
)

// ExtractedExercise is produced by the extraction pipeline and never mutated here.
type ExtractedExercise struct {
	TempID        string       `json:"tempId"`
	Name          string       `json:"name"`
	Type          ExerciseType `json:"type"`
	Sets          *int         `json:"sets,omitempty"`
	Reps          *int         `json:"reps,omitempty"`
	Duration      *int         `json:"duration,omitempty"`
	HoldTime      *int         `json:"holdTime,omitempty"`
	Description   string       `json:"description,omitempty"`
	OriginalText  string       `json:"originalText"`
	SuggestedTags []string     `json:"suggestedTags"`
}

type ExtractedExerciseSet struct {
	TempID             string   `json:"tempId"`
	Name               string   `json:"name"`
	Description        string   `json:"description,omitempty"`
	SuggestedFrequency string   `json:"suggestedFrequency"`
	ExerciseTempIDs    []string `json:"exerciseTempIds"`
}

type ExtractedClinicalNote struct {
	TempID   string   `json:"tempId"`
	NoteType NoteType `json:"noteType"`
	Title    string   `json:"title,omitempty"`
	Content  string   `json:"content"`
	Points   []string `json:"points,omitempty"`
}

// MatchSuggestion is a catalog candidate. Lists arrive sorted by descending Confidence.
type MatchSuggestion struct {
	ExistingExerciseID   string  `json:"existingExerciseId"`
	ExistingExerciseName string  `json:"existingExerciseName"`
	Confidence           float64 `json:"confidence"`
	MatchReason          string  `json:"matchReason"`
	ImageURL             string  `json:"imageUrl,omitempty"`
}

// PatientOption is one roster entry from the patient directory.
type PatientOption struct {
	ID       string `json:"id"`
	FullName string `json:"fullname"`
	Email    string `json:"email,omitempty"`
}
