package dto

import (
	"time"

	"ai-import-be/pkg/reconcile"

	"github.com/google/uuid"
)

// Requests

type ExtractedExerciseRequest struct {
	TempId        string   `json:"temp_id" validate:"required"`
	Name          string   `json:"name" validate:"required"`
	Type          string   `json:"type" validate:"required,oneof=reps time hold"`
	Sets          *int     `json:"sets" validate:"omitempty,min=0"`
	Reps          *int     `json:"reps" validate:"omitempty,min=0"`
	Duration      *int     `json:"duration" validate:"omitempty,min=0"`
	HoldTime      *int     `json:"hold_time" validate:"omitempty,min=0"`
	Description   string   `json:"description"`
	OriginalText  string   `json:"original_text"`
	SuggestedTags []string `json:"suggested_tags"`
}

type ExtractedExerciseSetRequest struct {
	TempId             string   `json:"temp_id" validate:"required"`
	Name               string   `json:"name" validate:"required"`
	Description        string   `json:"description"`
	SuggestedFrequency string   `json:"suggested_frequency"`
	ExerciseTempIds    []string `json:"exercise_temp_ids" validate:"dive,required"`
}

type ExtractedClinicalNoteRequest struct {
	TempId   string   `json:"temp_id" validate:"required"`
	NoteType string   `json:"note_type" validate:"required"`
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Points   []string `json:"points"`
}

type MatchSuggestionRequest struct {
	ExistingExerciseId   string  `json:"existing_exercise_id" validate:"required"`
	ExistingExerciseName string  `json:"existing_exercise_name"`
	Confidence           float64 `json:"confidence" validate:"gte=0,lte=1"`
	MatchReason          string  `json:"match_reason"`
	ImageUrl             string  `json:"image_url"`
}

type PatientOptionRequest struct {
	Id       string `json:"id" validate:"required"`
	FullName string `json:"fullname" validate:"required"`
	Email    string `json:"email"`
}

// StartImportRequest carries the extraction output, the ranked catalog
// suggestions per exercise temp id and the practitioner's patient roster.
type StartImportRequest struct {
	Exercises           []ExtractedExerciseRequest          `json:"exercises" validate:"dive"`
	Sets                []ExtractedExerciseSetRequest       `json:"sets" validate:"dive"`
	Notes               []ExtractedClinicalNoteRequest      `json:"notes" validate:"dive"`
	DetectedPatientName string                              `json:"detected_patient_name"`
	Suggestions         map[string][]MatchSuggestionRequest `json:"suggestions" validate:"dive,dive"`
	Roster              []PatientOptionRequest              `json:"roster" validate:"dive"`
}

type ExerciseEditsRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Type        *string  `json:"type" validate:"omitempty,oneof=reps time hold"`
	Sets        *int     `json:"sets" validate:"omitempty,min=0"`
	Reps        *int     `json:"reps" validate:"omitempty,min=0"`
	Duration    *int     `json:"duration" validate:"omitempty,min=0"`
	HoldTime    *int     `json:"hold_time" validate:"omitempty,min=0"`
	Tags        []string `json:"tags"`
}

type ExerciseDecisionRequest struct {
	SessionId       uuid.UUID             `json:"-"`
	TempId          string                `json:"-"`
	Action          *string               `json:"action" validate:"omitempty,oneof=create reuse skip"`
	ReuseExerciseId *string               `json:"reuse_exercise_id"`
	EditedData      *ExerciseEditsRequest `json:"edited_data"`
}

type SetDecisionRequest struct {
	SessionId         uuid.UUID `json:"-"`
	TempId            string    `json:"-"`
	Action            *string   `json:"action" validate:"omitempty,oneof=create skip"`
	EditedName        *string   `json:"edited_name"`
	EditedDescription *string   `json:"edited_description"`
}

type NoteDecisionRequest struct {
	SessionId     uuid.UUID `json:"-"`
	TempId        string    `json:"-"`
	Action        *string   `json:"action" validate:"omitempty,oneof=create skip"`
	EditedContent *string   `json:"edited_content"`
}

type BulkActionRequest struct {
	SessionId uuid.UUID `json:"-"`
	Action    string    `json:"action" validate:"required,oneof=approve-all-confident use-all-matched set-all-create set-all-skip"`
}

type ReplaceSuggestionsRequest struct {
	SessionId   uuid.UUID                `json:"-"`
	TempId      string                   `json:"-"`
	Suggestions []MatchSuggestionRequest `json:"suggestions" validate:"dive"`
}

// BindPatientRequest binds the import to a roster patient. An empty id unbinds.
type BindPatientRequest struct {
	SessionId uuid.UUID `json:"-"`
	PatientId string    `json:"patient_id"`
}

type ImportOptionsRequest struct {
	SessionId            uuid.UUID `json:"-"`
	AssignSetsToPatient  *bool     `json:"assign_sets_to_patient"`
	CreateSetAfterImport *bool     `json:"create_set_after_import"`
}

// Responses

type MatchSuggestionResponse struct {
	ExistingExerciseId   string  `json:"existing_exercise_id"`
	ExistingExerciseName string  `json:"existing_exercise_name"`
	Confidence           float64 `json:"confidence"`
	MatchReason          string  `json:"match_reason"`
	ImageUrl             string  `json:"image_url,omitempty"`
}

type ExerciseDecisionResponse struct {
	Action          string                   `json:"action"`
	ReuseExerciseId string                   `json:"reuse_exercise_id,omitempty"`
	EditedData      *reconcile.ExerciseEdits `json:"edited_data,omitempty"`
}

type ExerciseReviewItem struct {
	TempId        string                    `json:"temp_id"`
	Name          string                    `json:"name"`
	Type          string                    `json:"type"`
	Sets          *int                      `json:"sets,omitempty"`
	Reps          *int                      `json:"reps,omitempty"`
	Duration      *int                      `json:"duration,omitempty"`
	HoldTime      *int                      `json:"hold_time,omitempty"`
	Description   string                    `json:"description,omitempty"`
	OriginalText  string                    `json:"original_text"`
	SuggestedTags []string                  `json:"suggested_tags"`
	Bucket        string                    `json:"bucket"`
	Suggestions   []MatchSuggestionResponse `json:"suggestions"`
	Decision      ExerciseDecisionResponse  `json:"decision"`
	StaleReuse    bool                      `json:"stale_reuse"`
}

type SetDecisionResponse struct {
	Action            string  `json:"action"`
	EditedName        *string `json:"edited_name,omitempty"`
	EditedDescription *string `json:"edited_description,omitempty"`
}

type SetReviewItem struct {
	TempId              string              `json:"temp_id"`
	Name                string              `json:"name"`
	Description         string              `json:"description,omitempty"`
	SuggestedFrequency  string              `json:"suggested_frequency"`
	ExerciseTempIds     []string            `json:"exercise_temp_ids"`
	Decision            SetDecisionResponse `json:"decision"`
	IsEligible          bool                `json:"is_eligible"`
	ActiveExerciseCount int                 `json:"active_exercise_count"`
}

type NoteDecisionResponse struct {
	Action        string  `json:"action"`
	EditedContent *string `json:"edited_content,omitempty"`
}

type NoteReviewItem struct {
	TempId   string               `json:"temp_id"`
	NoteType string               `json:"note_type"`
	Title    string               `json:"title,omitempty"`
	Content  string               `json:"content"`
	Points   []string             `json:"points,omitempty"`
	Decision NoteDecisionResponse `json:"decision"`
}

type PatientOptionResponse struct {
	Id       string  `json:"id"`
	FullName string  `json:"fullname"`
	Email    string  `json:"email,omitempty"`
	Score    float64 `json:"score,omitempty"`
}

type ImportOptionsResponse struct {
	AssignSetsToPatient  bool `json:"assign_sets_to_patient"`
	CreateSetAfterImport bool `json:"create_set_after_import"`
}

type ImportSummaryResponse struct {
	ReuseCount        int  `json:"reuse_count"`
	CreateCount       int  `json:"create_count"`
	SkipCount         int  `json:"skip_count"`
	TotalToImport     int  `json:"total_to_import"`
	CanProceed        bool `json:"can_proceed"`
	ConfidentApproved int  `json:"confident_approved"`
	ConfidentTotal    int  `json:"confident_total"`
	SetsToCreate      int  `json:"sets_to_create"`
	SetsSkipped       int  `json:"sets_skipped"`
	IneligibleSets    int  `json:"ineligible_sets"`
	NotesToCreate     int  `json:"notes_to_create"`
	NotesSkipped      int  `json:"notes_skipped"`
}

type ImportSessionResponse struct {
	Id                  uuid.UUID              `json:"id"`
	DetectedPatientName string                 `json:"detected_patient_name,omitempty"`
	SuggestedPatient    *PatientOptionResponse `json:"suggested_patient"`
	PatientId           string                 `json:"patient_id,omitempty"`
	Options             ImportOptionsResponse  `json:"options"`
	Exercises           []ExerciseReviewItem   `json:"exercises"`
	Sets                []SetReviewItem        `json:"sets"`
	Notes               []NoteReviewItem       `json:"notes"`
	Summary             ImportSummaryResponse  `json:"summary"`
	CreatedAt           time.Time              `json:"created_at"`
	ExpiresAt           time.Time              `json:"expires_at"`
}

type ImportMutationResponse struct {
	Changed int                   `json:"changed"`
	Session ImportSessionResponse `json:"session"`
}

type CommitImportResponse struct {
	AuditId   uuid.UUID             `json:"audit_id"`
	SessionId uuid.UUID             `json:"session_id"`
	Plan      *reconcile.CommitPlan `json:"plan"`
}

// Messages

// PublishImportCommittedMessage is the in-process hand-off consumed by the
// commit consumer.
type PublishImportCommittedMessage struct {
	AuditId        uuid.UUID            `json:"audit_id"`
	SessionId      uuid.UUID            `json:"session_id"`
	PractitionerId string               `json:"practitioner_id"`
	Plan           reconcile.CommitPlan `json:"plan"`
	CommittedAt    time.Time            `json:"committed_at"`
}
