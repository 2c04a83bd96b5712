// FILE: internal/service/import_service.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ai-import-be/internal/dto"
	"ai-import-be/internal/entity"
	"ai-import-be/internal/mapper"
	"ai-import-be/internal/pkg/logger"
	"ai-import-be/internal/repository/contract"
	"ai-import-be/pkg/reconcile"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound    = errors.New("import session not found")
	ErrPatientNotInRoster = errors.New("patient is not in the practitioner's roster")
)

const importModule = "IMPORT"

type IImportService interface {
	Start(ctx context.Context, practitionerId string, req *dto.StartImportRequest) (*dto.ImportSessionResponse, error)
	Get(ctx context.Context, practitionerId string, id uuid.UUID) (*dto.ImportSessionResponse, error)
	Delete(ctx context.Context, practitionerId string, id uuid.UUID) error
	SetExerciseDecision(ctx context.Context, practitionerId string, req *dto.ExerciseDecisionRequest) (*dto.ImportMutationResponse, error)
	SetSetDecision(ctx context.Context, practitionerId string, req *dto.SetDecisionRequest) (*dto.ImportMutationResponse, error)
	SetNoteDecision(ctx context.Context, practitionerId string, req *dto.NoteDecisionRequest) (*dto.ImportMutationResponse, error)
	ApplyBulk(ctx context.Context, practitionerId string, req *dto.BulkActionRequest) (*dto.ImportMutationResponse, error)
	ReplaceSuggestions(ctx context.Context, practitionerId string, req *dto.ReplaceSuggestionsRequest) (*dto.ImportMutationResponse, error)
	BindPatient(ctx context.Context, practitionerId string, req *dto.BindPatientRequest) (*dto.ImportMutationResponse, error)
	SetOptions(ctx context.Context, practitionerId string, req *dto.ImportOptionsRequest) (*dto.ImportMutationResponse, error)
	Stats(ctx context.Context, practitionerId string, id uuid.UUID) (*dto.ImportSummaryResponse, error)
	SearchPatients(ctx context.Context, practitionerId string, id uuid.UUID, query string) ([]*dto.PatientOptionResponse, error)
	Commit(ctx context.Context, practitionerId string, id uuid.UUID) (*dto.CommitImportResponse, error)
}

type importService struct {
	drafts           contract.ImportDraftRepository
	publisherService IPublisherService
	mapper           *mapper.ImportMapper
	logger           logger.ILogger
	ttl              time.Duration
	locks            *sessionLocks
	now              func() time.Time
}

func NewImportService(
	drafts contract.ImportDraftRepository,
	publisherService IPublisherService,
	log logger.ILogger,
	ttl time.Duration,
) IImportService {
	return &importService{
		drafts:           drafts,
		publisherService: publisherService,
		mapper:           mapper.NewImportMapper(),
		logger:           log,
		ttl:              ttl,
		locks:            newSessionLocks(),
		now:              time.Now,
	}
}

func (s *importService) Start(ctx context.Context, practitionerId string, req *dto.StartImportRequest) (*dto.ImportSessionResponse, error) {
	now := s.now()
	draft := &entity.ImportDraft{
		Id:             uuid.New(),
		PractitionerId: practitionerId,
		Session:        reconcile.NewSession(s.mapper.ToInput(req)),
		Roster:         s.mapper.ToRoster(req.Roster),
		CreatedAt:      now,
		ExpiresAt:      now.Add(s.ttl),
	}

	if err := s.drafts.Save(ctx, draft); err != nil {
		return nil, fmt.Errorf("save import draft: %w", err)
	}

	s.logger.Info(importModule, "Import session started", map[string]interface{}{
		"session_id":      draft.Id,
		"practitioner_id": practitionerId,
		"exercises":       len(draft.Session.Exercises()),
		"sets":            len(draft.Session.Sets()),
		"notes":           len(draft.Session.Notes()),
		"confident":       len(draft.Session.BucketMembers(reconcile.BucketConfident)),
		"uncertain":       len(draft.Session.BucketMembers(reconcile.BucketUncertain)),
	})

	return s.mapper.ToSessionResponse(draft), nil
}

func (s *importService) Get(ctx context.Context, practitionerId string, id uuid.UUID) (*dto.ImportSessionResponse, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	draft, err := s.load(ctx, practitionerId, id)
	if err != nil {
		return nil, err
	}
	return s.mapper.ToSessionResponse(draft), nil
}

func (s *importService) Delete(ctx context.Context, practitionerId string, id uuid.UUID) error {
	unlock := s.locks.lock(id)
	defer unlock()

	if _, err := s.load(ctx, practitionerId, id); err != nil {
		return err
	}
	if err := s.drafts.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete import draft: %w", err)
	}

	s.logger.Info(importModule, "Import session discarded", map[string]interface{}{
		"session_id":      id,
		"practitioner_id": practitionerId,
	})
	return nil
}

func (s *importService) SetExerciseDecision(ctx context.Context, practitionerId string, req *dto.ExerciseDecisionRequest) (*dto.ImportMutationResponse, error) {
	return s.dispatch(ctx, practitionerId, req.SessionId, reconcile.SetExerciseDecision{
		TempID: req.TempId,
		Patch:  s.mapper.ToExercisePatch(req),
	})
}

func (s *importService) SetSetDecision(ctx context.Context, practitionerId string, req *dto.SetDecisionRequest) (*dto.ImportMutationResponse, error) {
	return s.dispatch(ctx, practitionerId, req.SessionId, reconcile.SetSetDecision{
		TempID: req.TempId,
		Patch:  s.mapper.ToSetPatch(req),
	})
}

func (s *importService) SetNoteDecision(ctx context.Context, practitionerId string, req *dto.NoteDecisionRequest) (*dto.ImportMutationResponse, error) {
	return s.dispatch(ctx, practitionerId, req.SessionId, reconcile.SetNoteDecision{
		TempID: req.TempId,
		Patch:  s.mapper.ToNotePatch(req),
	})
}

func (s *importService) ApplyBulk(ctx context.Context, practitionerId string, req *dto.BulkActionRequest) (*dto.ImportMutationResponse, error) {
	res, err := s.dispatch(ctx, practitionerId, req.SessionId, reconcile.ApplyBulk{
		Action: reconcile.BulkAction(req.Action),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(importModule, "Bulk action applied", map[string]interface{}{
		"session_id": req.SessionId,
		"action":     req.Action,
		"changed":    res.Changed,
	})
	return res, nil
}

func (s *importService) ReplaceSuggestions(ctx context.Context, practitionerId string, req *dto.ReplaceSuggestionsRequest) (*dto.ImportMutationResponse, error) {
	return s.dispatch(ctx, practitionerId, req.SessionId, reconcile.ReplaceSuggestions{
		TempID:      req.TempId,
		Suggestions: s.mapper.ToSuggestions(req.Suggestions),
	})
}

func (s *importService) BindPatient(ctx context.Context, practitionerId string, req *dto.BindPatientRequest) (*dto.ImportMutationResponse, error) {
	unlock := s.locks.lock(req.SessionId)
	defer unlock()

	draft, err := s.load(ctx, practitionerId, req.SessionId)
	if err != nil {
		return nil, err
	}
	if req.PatientId != "" && len(draft.Roster) > 0 && !inRoster(draft.Roster, req.PatientId) {
		return nil, ErrPatientNotInRoster
	}
	return s.apply(ctx, draft, reconcile.BindPatient{PatientID: req.PatientId})
}

func (s *importService) SetOptions(ctx context.Context, practitionerId string, req *dto.ImportOptionsRequest) (*dto.ImportMutationResponse, error) {
	return s.dispatch(ctx, practitionerId, req.SessionId, reconcile.SetImportOptions{
		AssignSetsToPatient:  req.AssignSetsToPatient,
		CreateSetAfterImport: req.CreateSetAfterImport,
	})
}

func (s *importService) Stats(ctx context.Context, practitionerId string, id uuid.UUID) (*dto.ImportSummaryResponse, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	draft, err := s.load(ctx, practitionerId, id)
	if err != nil {
		return nil, err
	}
	summary := s.mapper.ToSummaryResponse(draft.Session.Summary())
	return &summary, nil
}

func (s *importService) SearchPatients(ctx context.Context, practitionerId string, id uuid.UUID, query string) ([]*dto.PatientOptionResponse, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	draft, err := s.load(ctx, practitionerId, id)
	if err != nil {
		return nil, err
	}
	return s.mapper.ToRankedPatientResponses(reconcile.FilterPatients(query, draft.Roster)), nil
}

func (s *importService) Commit(ctx context.Context, practitionerId string, id uuid.UUID) (*dto.CommitImportResponse, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	draft, err := s.load(ctx, practitionerId, id)
	if err != nil {
		return nil, err
	}

	plan, err := draft.Session.BuildCommitPlan()
	if err != nil {
		return nil, err
	}
	s.warnStaleReuse(draft)

	msg := dto.PublishImportCommittedMessage{
		AuditId:        uuid.New(),
		SessionId:      draft.Id,
		PractitionerId: practitionerId,
		Plan:           *plan,
		CommittedAt:    s.now(),
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("encode commit message: %w", err)
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		return nil, fmt.Errorf("publish commit: %w", err)
	}

	// The hand-off is done; a draft left behind only lingers until its TTL.
	if err := s.drafts.Delete(ctx, draft.Id); err != nil {
		s.logger.Warn(importModule, "Failed to drop committed draft", map[string]interface{}{
			"session_id": draft.Id,
			"error":      err.Error(),
		})
	}

	s.logger.Info(importModule, "Import committed", map[string]interface{}{
		"session_id":      draft.Id,
		"audit_id":        msg.AuditId,
		"practitioner_id": practitionerId,
		"reuse":           len(plan.ReuseExercises),
		"create":          len(plan.CreateExercises),
		"sets":            len(plan.Sets),
		"notes":           len(plan.Notes),
	})

	return &dto.CommitImportResponse{
		AuditId:   msg.AuditId,
		SessionId: draft.Id,
		Plan:      plan,
	}, nil
}

// load fetches a draft owned by practitionerId. Drafts of other practitioners
// are reported as missing.
func (s *importService) load(ctx context.Context, practitionerId string, id uuid.UUID) (*entity.ImportDraft, error) {
	draft, err := s.drafts.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load import draft: %w", err)
	}
	if draft == nil || draft.PractitionerId != practitionerId {
		return nil, ErrSessionNotFound
	}
	return draft, nil
}

func (s *importService) dispatch(ctx context.Context, practitionerId string, id uuid.UUID, cmd reconcile.Command) (*dto.ImportMutationResponse, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	draft, err := s.load(ctx, practitionerId, id)
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, draft, cmd)
}

// apply runs cmd against a loaded draft and persists it when anything changed.
// The caller holds the session lock.
func (s *importService) apply(ctx context.Context, draft *entity.ImportDraft, cmd reconcile.Command) (*dto.ImportMutationResponse, error) {
	res, err := draft.Session.Dispatch(cmd)
	if err != nil {
		s.logger.Debug(importModule, "Import command rejected", map[string]interface{}{
			"session_id": draft.Id,
			"command":    fmt.Sprintf("%T", cmd),
			"error":      err.Error(),
		})
		return nil, err
	}

	if res.Changed > 0 {
		draft.ExpiresAt = s.now().Add(s.ttl)
		if err := s.drafts.Save(ctx, draft); err != nil {
			return nil, fmt.Errorf("save import draft: %w", err)
		}
	}
	if _, ok := cmd.(reconcile.ReplaceSuggestions); ok {
		s.warnStaleReuse(draft)
	}

	return &dto.ImportMutationResponse{
		Changed: res.Changed,
		Session: *s.mapper.ToSessionResponse(draft),
	}, nil
}

func (s *importService) warnStaleReuse(draft *entity.ImportDraft) {
	stale := draft.Session.StaleReuseDecisions()
	if len(stale) == 0 {
		return
	}
	s.logger.Warn(importModule, "Reuse decisions point outside current suggestions", map[string]interface{}{
		"session_id": draft.Id,
		"temp_ids":   stale,
	})
}

func inRoster(roster []reconcile.PatientOption, patientId string) bool {
	for _, p := range roster {
		if p.ID == patientId {
			return true
		}
	}
	return false
}
