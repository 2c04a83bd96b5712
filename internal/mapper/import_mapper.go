package mapper

import (
	"ai-import-be/internal/dto"
	"ai-import-be/internal/entity"
	"ai-import-be/pkg/reconcile"
)

// ImportMapper converts between the HTTP shapes and the reconcile engine.
type ImportMapper struct{}

func NewImportMapper() *ImportMapper {
	return &ImportMapper{}
}

func (m *ImportMapper) ToInput(req *dto.StartImportRequest) reconcile.Input {
	in := reconcile.Input{
		Exercises:           make([]reconcile.ExtractedExercise, 0, len(req.Exercises)),
		Sets:                make([]reconcile.ExtractedExerciseSet, 0, len(req.Sets)),
		Notes:               make([]reconcile.ExtractedClinicalNote, 0, len(req.Notes)),
		DetectedPatientName: req.DetectedPatientName,
		Suggestions:         make(map[string][]reconcile.MatchSuggestion, len(req.Suggestions)),
	}

	for _, e := range req.Exercises {
		in.Exercises = append(in.Exercises, reconcile.ExtractedExercise{
			TempID:        e.TempId,
			Name:          e.Name,
			Type:          reconcile.ExerciseType(e.Type),
			Sets:          e.Sets,
			Reps:          e.Reps,
			Duration:      e.Duration,
			HoldTime:      e.HoldTime,
			Description:   e.Description,
			OriginalText:  e.OriginalText,
			SuggestedTags: e.SuggestedTags,
		})
	}
	for _, s := range req.Sets {
		in.Sets = append(in.Sets, reconcile.ExtractedExerciseSet{
			TempID:             s.TempId,
			Name:               s.Name,
			Description:        s.Description,
			SuggestedFrequency: s.SuggestedFrequency,
			ExerciseTempIDs:    s.ExerciseTempIds,
		})
	}
	for _, n := range req.Notes {
		in.Notes = append(in.Notes, reconcile.ExtractedClinicalNote{
			TempID:   n.TempId,
			NoteType: reconcile.NoteType(n.NoteType),
			Title:    n.Title,
			Content:  n.Content,
			Points:   n.Points,
		})
	}
	for tempId, list := range req.Suggestions {
		in.Suggestions[tempId] = m.ToSuggestions(list)
	}
	return in
}

func (m *ImportMapper) ToSuggestions(list []dto.MatchSuggestionRequest) []reconcile.MatchSuggestion {
	out := make([]reconcile.MatchSuggestion, 0, len(list))
	for _, s := range list {
		out = append(out, reconcile.MatchSuggestion{
			ExistingExerciseID:   s.ExistingExerciseId,
			ExistingExerciseName: s.ExistingExerciseName,
			Confidence:           s.Confidence,
			MatchReason:          s.MatchReason,
			ImageURL:             s.ImageUrl,
		})
	}
	return out
}

func (m *ImportMapper) ToRoster(list []dto.PatientOptionRequest) []reconcile.PatientOption {
	out := make([]reconcile.PatientOption, 0, len(list))
	for _, p := range list {
		out = append(out, reconcile.PatientOption{ID: p.Id, FullName: p.FullName, Email: p.Email})
	}
	return out
}

func (m *ImportMapper) ToExercisePatch(req *dto.ExerciseDecisionRequest) reconcile.ExercisePatch {
	patch := reconcile.ExercisePatch{ReuseExerciseID: req.ReuseExerciseId}
	if req.Action != nil {
		a := reconcile.ExerciseAction(*req.Action)
		patch.Action = &a
	}
	if req.EditedData != nil {
		edits := reconcile.ExerciseEdits{
			Name:        req.EditedData.Name,
			Description: req.EditedData.Description,
			Sets:        req.EditedData.Sets,
			Reps:        req.EditedData.Reps,
			Duration:    req.EditedData.Duration,
			HoldTime:    req.EditedData.HoldTime,
			Tags:        req.EditedData.Tags,
		}
		if req.EditedData.Type != nil {
			t := reconcile.ExerciseType(*req.EditedData.Type)
			edits.Type = &t
		}
		patch.EditedData = &edits
	}
	return patch
}

func (m *ImportMapper) ToSetPatch(req *dto.SetDecisionRequest) reconcile.SetPatch {
	patch := reconcile.SetPatch{
		EditedName:        req.EditedName,
		EditedDescription: req.EditedDescription,
	}
	if req.Action != nil {
		a := reconcile.SetAction(*req.Action)
		patch.Action = &a
	}
	return patch
}

func (m *ImportMapper) ToNotePatch(req *dto.NoteDecisionRequest) reconcile.NotePatch {
	patch := reconcile.NotePatch{EditedContent: req.EditedContent}
	if req.Action != nil {
		a := reconcile.NoteAction(*req.Action)
		patch.Action = &a
	}
	return patch
}

func (m *ImportMapper) ToSummaryResponse(sum reconcile.Summary) dto.ImportSummaryResponse {
	return dto.ImportSummaryResponse{
		ReuseCount:        sum.Exercises.ReuseCount,
		CreateCount:       sum.Exercises.CreateCount,
		SkipCount:         sum.Exercises.SkipCount,
		TotalToImport:     sum.TotalToImport,
		CanProceed:        sum.CanProceed,
		ConfidentApproved: sum.ConfidentProgress.Approved,
		ConfidentTotal:    sum.ConfidentProgress.Total,
		SetsToCreate:      sum.SetsToCreate,
		SetsSkipped:       sum.SetsSkipped,
		IneligibleSets:    sum.IneligibleSets,
		NotesToCreate:     sum.NotesToCreate,
		NotesSkipped:      sum.NotesSkipped,
	}
}

func (m *ImportMapper) ToPatientResponse(p *reconcile.PatientOption) *dto.PatientOptionResponse {
	if p == nil {
		return nil
	}
	return &dto.PatientOptionResponse{Id: p.ID, FullName: p.FullName, Email: p.Email}
}

func (m *ImportMapper) ToRankedPatientResponses(ranked []reconcile.RankedPatient) []*dto.PatientOptionResponse {
	out := make([]*dto.PatientOptionResponse, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, &dto.PatientOptionResponse{
			Id:       r.ID,
			FullName: r.FullName,
			Email:    r.Email,
			Score:    r.Score,
		})
	}
	return out
}

func (m *ImportMapper) ToSessionResponse(draft *entity.ImportDraft) *dto.ImportSessionResponse {
	s := draft.Session
	stale := make(map[string]bool)
	for _, id := range s.StaleReuseDecisions() {
		stale[id] = true
	}

	res := &dto.ImportSessionResponse{
		Id:                  draft.Id,
		DetectedPatientName: s.DetectedPatientName(),
		SuggestedPatient:    m.ToPatientResponse(s.SuggestPatient(draft.Roster)),
		PatientId:           s.PatientID(),
		Options: dto.ImportOptionsResponse{
			AssignSetsToPatient:  s.Options().AssignSetsToPatient,
			CreateSetAfterImport: s.Options().CreateSetAfterImport,
		},
		Exercises: make([]dto.ExerciseReviewItem, 0, len(s.Exercises())),
		Sets:      make([]dto.SetReviewItem, 0, len(s.Sets())),
		Notes:     make([]dto.NoteReviewItem, 0, len(s.Notes())),
		Summary:   m.ToSummaryResponse(s.Summary()),
		CreatedAt: draft.CreatedAt,
		ExpiresAt: draft.ExpiresAt,
	}

	for _, e := range s.Exercises() {
		d, _ := s.ExerciseDecision(e.TempID)
		suggestions := make([]dto.MatchSuggestionResponse, 0)
		for _, sg := range s.Suggestions(e.TempID) {
			suggestions = append(suggestions, dto.MatchSuggestionResponse{
				ExistingExerciseId:   sg.ExistingExerciseID,
				ExistingExerciseName: sg.ExistingExerciseName,
				Confidence:           sg.Confidence,
				MatchReason:          sg.MatchReason,
				ImageUrl:             sg.ImageURL,
			})
		}
		res.Exercises = append(res.Exercises, dto.ExerciseReviewItem{
			TempId:        e.TempID,
			Name:          e.Name,
			Type:          string(e.Type),
			Sets:          e.Sets,
			Reps:          e.Reps,
			Duration:      e.Duration,
			HoldTime:      e.HoldTime,
			Description:   e.Description,
			OriginalText:  e.OriginalText,
			SuggestedTags: e.SuggestedTags,
			Bucket:        string(s.Bucket(e.TempID)),
			Suggestions:   suggestions,
			Decision: dto.ExerciseDecisionResponse{
				Action:          string(d.Action),
				ReuseExerciseId: d.ReuseExerciseID,
				EditedData:      d.EditedData,
			},
			StaleReuse: stale[e.TempID],
		})
	}

	exercises := s.ExerciseDecisions()
	for _, set := range s.Sets() {
		d, _ := s.SetDecision(set.TempID)
		res.Sets = append(res.Sets, dto.SetReviewItem{
			TempId:             set.TempID,
			Name:               set.Name,
			Description:        set.Description,
			SuggestedFrequency: set.SuggestedFrequency,
			ExerciseTempIds:    set.ExerciseTempIDs,
			Decision: dto.SetDecisionResponse{
				Action:            string(d.Action),
				EditedName:        d.EditedName,
				EditedDescription: d.EditedDescription,
			},
			IsEligible:          reconcile.IsEligible(set, exercises),
			ActiveExerciseCount: len(reconcile.ActiveMembers(set, exercises)),
		})
	}

	for _, n := range s.Notes() {
		d, _ := s.NoteDecision(n.TempID)
		res.Notes = append(res.Notes, dto.NoteReviewItem{
			TempId:   n.TempID,
			NoteType: string(n.NoteType),
			Title:    n.Title,
			Content:  n.Content,
			Points:   n.Points,
			Decision: dto.NoteDecisionResponse{
				Action:        string(d.Action),
				EditedContent: d.EditedContent,
			},
		})
	}

	return res
}
