package reconcile

import "errors"

var ErrNothingToImport = errors.New("nothing to import")

type ExerciseToCreate struct {
	TempID      string       `json:"tempId"`
	Name        string       `json:"name"`
	Type        ExerciseType `json:"type"`
	Sets        *int         `json:"sets,omitempty"`
	Reps        *int         `json:"reps,omitempty"`
	Duration    *int         `json:"duration,omitempty"`
	HoldTime    *int         `json:"holdTime,omitempty"`
	Description string       `json:"description,omitempty"`
	Tags        []string     `json:"tags,omitempty"`
}

type ExerciseReuse struct {
	TempID             string `json:"tempId"`
	ExistingExerciseID string `json:"existingExerciseId"`
}

type SetToCreate struct {
	TempID             string   `json:"tempId"`
	Name               string   `json:"name"`
	Description        string   `json:"description,omitempty"`
	SuggestedFrequency string   `json:"suggestedFrequency,omitempty"`
	ExerciseTempIDs    []string `json:"exerciseTempIds"`
}

type NoteToCreate struct {
	TempID   string   `json:"tempId"`
	NoteType NoteType `json:"noteType"`
	Title    string   `json:"title,omitempty"`
	Content  string   `json:"content"`
	Points   []string `json:"points,omitempty"`
}

// CommitPlan is the final decision snapshot handed to the persistence side.
type CommitPlan struct {
	PatientID       string             `json:"patientId,omitempty"`
	Options         Options            `json:"options"`
	CreateExercises []ExerciseToCreate `json:"createExercises"`
	ReuseExercises  []ExerciseReuse    `json:"reuseExercises"`
	Sets            []SetToCreate      `json:"sets"`
	Notes           []NoteToCreate     `json:"notes"`
	Summary         Summary            `json:"summary"`
}

// BuildCommitPlan resolves every decision into the commit payload. Sets that
// are marked create but have lost all active members are left out, and
// created sets only list their active members.
func (s *Session) BuildCommitPlan() (*CommitPlan, error) {
	summary := s.Summary()
	if !summary.CanProceed {
		return nil, ErrNothingToImport
	}

	plan := &CommitPlan{
		PatientID:       s.patientID,
		Options:         s.options,
		CreateExercises: make([]ExerciseToCreate, 0),
		ReuseExercises:  make([]ExerciseReuse, 0),
		Sets:            make([]SetToCreate, 0),
		Notes:           make([]NoteToCreate, 0),
		Summary:         summary,
	}
	if plan.PatientID == "" {
		plan.Options.AssignSetsToPatient = false
	}

	for _, e := range s.input.Exercises {
		d, ok := s.exerciseDecisions.Get(e.TempID)
		if !ok {
			continue
		}
		switch d.Action {
		case ExerciseActionCreate:
			plan.CreateExercises = append(plan.CreateExercises, applyEdits(e, d.EditedData))
		case ExerciseActionReuse:
			plan.ReuseExercises = append(plan.ReuseExercises, ExerciseReuse{
				TempID:             e.TempID,
				ExistingExerciseID: d.ReuseExerciseID,
			})
		}
	}

	for _, set := range s.input.Sets {
		d, ok := s.setDecisions.Get(set.TempID)
		if !ok || d.Action != SetActionCreate {
			continue
		}
		members := ActiveMembers(set, s.exerciseDecisions)
		if len(members) == 0 {
			continue
		}
		out := SetToCreate{
			TempID:             set.TempID,
			Name:               set.Name,
			Description:        set.Description,
			SuggestedFrequency: set.SuggestedFrequency,
			ExerciseTempIDs:    members,
		}
		if d.EditedName != nil {
			out.Name = *d.EditedName
		}
		if d.EditedDescription != nil {
			out.Description = *d.EditedDescription
		}
		plan.Sets = append(plan.Sets, out)
	}

	for _, n := range s.input.Notes {
		d, ok := s.noteDecisions.Get(n.TempID)
		if !ok || d.Action != NoteActionCreate {
			continue
		}
		out := NoteToCreate{
			TempID:   n.TempID,
			NoteType: n.NoteType,
			Title:    n.Title,
			Content:  n.Content,
			Points:   n.Points,
		}
		if d.EditedContent != nil {
			out.Content = *d.EditedContent
		}
		plan.Notes = append(plan.Notes, out)
	}

	return plan, nil
}

func applyEdits(e ExtractedExercise, edits *ExerciseEdits) ExerciseToCreate {
	out := ExerciseToCreate{
		TempID:      e.TempID,
		Name:        e.Name,
		Type:        e.Type,
		Sets:        e.Sets,
		Reps:        e.Reps,
		Duration:    e.Duration,
		HoldTime:    e.HoldTime,
		Description: e.Description,
		Tags:        e.SuggestedTags,
	}
	if edits == nil {
		return out
	}
	if edits.Name != nil {
		out.Name = *edits.Name
	}
	if edits.Description != nil {
		out.Description = *edits.Description
	}
	if edits.Type != nil {
		out.Type = *edits.Type
	}
	if edits.Sets != nil {
		out.Sets = edits.Sets
	}
	if edits.Reps != nil {
		out.Reps = edits.Reps
	}
	if edits.Duration != nil {
		out.Duration = edits.Duration
	}
	if edits.HoldTime != nil {
		out.HoldTime = edits.HoldTime
	}
	if edits.Tags != nil {
		out.Tags = edits.Tags
	}
	return out
}
