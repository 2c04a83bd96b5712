package reconcile

import "errors"

var (
	ErrReuseWithoutTarget = errors.New("reuse decision requires a reuse exercise id")
	ErrTargetWithoutReuse = errors.New("reuse exercise id is only valid on a reuse decision")
	ErrInvalidAction      = errors.New("invalid decision action")
)

type ExerciseAction string

const (
	ExerciseActionCreate ExerciseAction = "create"
	ExerciseActionReuse  ExerciseAction = "reuse"
	ExerciseActionSkip   ExerciseAction = "skip"
)

func (a ExerciseAction) Valid() bool {
	switch a {
	case ExerciseActionCreate, ExerciseActionReuse, ExerciseActionSkip:
		return true
	}
	return false
}

type SetAction string

const (
	SetActionCreate SetAction = "create"
	SetActionSkip   SetAction = "skip"
)

func (a SetAction) Valid() bool {
	return a == SetActionCreate || a == SetActionSkip
}

type NoteAction string

const (
	NoteActionCreate NoteAction = "create"
	NoteActionSkip   NoteAction = "skip"
)

func (a NoteAction) Valid() bool {
	return a == NoteActionCreate || a == NoteActionSkip
}

// ExerciseEdits holds user overrides for a newly created exercise.
type ExerciseEdits struct {
	Name        *string       `json:"name,omitempty"`
	Description *string       `json:"description,omitempty"`
	Type        *ExerciseType `json:"type,omitempty"`
	Sets        *int          `json:"sets,omitempty"`
	Reps        *int          `json:"reps,omitempty"`
	Duration    *int          `json:"duration,omitempty"`
	HoldTime    *int          `json:"holdTime,omitempty"`
	Tags        []string      `json:"tags,omitempty"`
}

// merge overlays every field set on patch.
func (e ExerciseEdits) merge(patch ExerciseEdits) ExerciseEdits {
	if patch.Name != nil {
		e.Name = patch.Name
	}
	if patch.Description != nil {
		e.Description = patch.Description
	}
	if patch.Type != nil {
		e.Type = patch.Type
	}
	if patch.Sets != nil {
		e.Sets = patch.Sets
	}
	if patch.Reps != nil {
		e.Reps = patch.Reps
	}
	if patch.Duration != nil {
		e.Duration = patch.Duration
	}
	if patch.HoldTime != nil {
		e.HoldTime = patch.HoldTime
	}
	if patch.Tags != nil {
		e.Tags = append([]string(nil), patch.Tags...)
	}
	return e
}

// ExerciseDecision resolves one extracted exercise. ReuseExerciseID is set
// exactly when Action is reuse; the store rejects any merge that breaks this.
type ExerciseDecision struct {
	Action          ExerciseAction `json:"action"`
	ReuseExerciseID string         `json:"reuseExerciseId,omitempty"`
	EditedData      *ExerciseEdits `json:"editedData,omitempty"`
}

func CreateDecision() ExerciseDecision { return ExerciseDecision{Action: ExerciseActionCreate} }

func SkipDecision() ExerciseDecision { return ExerciseDecision{Action: ExerciseActionSkip} }

func ReuseDecision(exerciseID string) ExerciseDecision {
	return ExerciseDecision{Action: ExerciseActionReuse, ReuseExerciseID: exerciseID}
}

// Active reports whether the exercise will be imported in some form.
func (d ExerciseDecision) Active() bool {
	return d.Action != ExerciseActionSkip
}

// ExercisePatch is a partial update. Nil fields leave the record unchanged.
type ExercisePatch struct {
	Action          *ExerciseAction
	ReuseExerciseID *string
	EditedData      *ExerciseEdits
}

func mergeExercise(current ExerciseDecision, patch ExercisePatch) (ExerciseDecision, error) {
	next := current
	if next.EditedData != nil {
		edits := *next.EditedData
		next.EditedData = &edits
	}

	if patch.Action != nil {
		if !patch.Action.Valid() {
			return current, ErrInvalidAction
		}
		next.Action = *patch.Action
		if next.Action == ExerciseActionReuse && (patch.ReuseExerciseID == nil || *patch.ReuseExerciseID == "") {
			return current, ErrReuseWithoutTarget
		}
	}

	if next.Action == "" {
		return current, ErrInvalidAction
	}

	if patch.ReuseExerciseID != nil && *patch.ReuseExerciseID != "" {
		if next.Action != ExerciseActionReuse {
			return current, ErrTargetWithoutReuse
		}
		next.ReuseExerciseID = *patch.ReuseExerciseID
	}

	if next.Action != ExerciseActionReuse {
		next.ReuseExerciseID = ""
	} else if next.ReuseExerciseID == "" {
		return current, ErrReuseWithoutTarget
	}

	if patch.EditedData != nil {
		base := ExerciseEdits{}
		if next.EditedData != nil {
			base = *next.EditedData
		}
		merged := base.merge(*patch.EditedData)
		next.EditedData = &merged
	}
	return next, nil
}

type ExerciseSetDecision struct {
	Action            SetAction `json:"action"`
	EditedName        *string   `json:"editedName,omitempty"`
	EditedDescription *string   `json:"editedDescription,omitempty"`
}

type SetPatch struct {
	Action            *SetAction
	EditedName        *string
	EditedDescription *string
}

func mergeSet(current ExerciseSetDecision, patch SetPatch) (ExerciseSetDecision, error) {
	next := current
	if patch.Action != nil {
		if !patch.Action.Valid() {
			return current, ErrInvalidAction
		}
		next.Action = *patch.Action
	}
	if patch.EditedName != nil {
		next.EditedName = patch.EditedName
	}
	if patch.EditedDescription != nil {
		next.EditedDescription = patch.EditedDescription
	}
	if next.Action == "" {
		return current, ErrInvalidAction
	}
	return next, nil
}

type ClinicalNoteDecision struct {
	Action        NoteAction `json:"action"`
	EditedContent *string    `json:"editedContent,omitempty"`
}

type NotePatch struct {
	Action        *NoteAction
	EditedContent *string
}

func mergeNote(current ClinicalNoteDecision, patch NotePatch) (ClinicalNoteDecision, error) {
	next := current
	if patch.Action != nil {
		if !patch.Action.Valid() {
			return current, ErrInvalidAction
		}
		next.Action = *patch.Action
	}
	if patch.EditedContent != nil {
		next.EditedContent = patch.EditedContent
	}
	if next.Action == "" {
		return current, ErrInvalidAction
	}
	return next, nil
}
