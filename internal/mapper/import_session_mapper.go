package mapper

import (
	"encoding/json"

	"ai-import-be/internal/entity"
	"ai-import-be/internal/model"
)

type ImportSessionMapper struct{}

func NewImportSessionMapper() *ImportSessionMapper {
	return &ImportSessionMapper{}
}

func (m *ImportSessionMapper) ToEntity(s *model.ImportSession) (*entity.ImportSession, error) {
	if s == nil {
		return nil, nil
	}

	e := &entity.ImportSession{
		Id:             s.Id,
		SessionId:      s.SessionId,
		PractitionerId: s.PractitionerId,
		PatientId:      s.PatientId,
		Status:         entity.ImportSessionStatus(s.Status),
		ReuseCount:     s.ReuseCount,
		CreateCount:    s.CreateCount,
		SkipCount:      s.SkipCount,
		SetCount:       s.SetCount,
		NoteCount:      s.NoteCount,
		CommittedAt:    s.CommittedAt,
		CreatedAt:      s.CreatedAt,
	}
	if len(s.Plan) > 0 {
		if err := json.Unmarshal(s.Plan, &e.Plan); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func (m *ImportSessionMapper) ToModel(e *entity.ImportSession) (*model.ImportSession, error) {
	if e == nil {
		return nil, nil
	}

	plan, err := json.Marshal(e.Plan)
	if err != nil {
		return nil, err
	}

	return &model.ImportSession{
		Id:             e.Id,
		SessionId:      e.SessionId,
		PractitionerId: e.PractitionerId,
		PatientId:      e.PatientId,
		Status:         string(e.Status),
		ReuseCount:     e.ReuseCount,
		CreateCount:    e.CreateCount,
		SkipCount:      e.SkipCount,
		SetCount:       e.SetCount,
		NoteCount:      e.NoteCount,
		Plan:           plan,
		CommittedAt:    e.CommittedAt,
		CreatedAt:      e.CreatedAt,
	}, nil
}

func (m *ImportSessionMapper) ToEntities(sessions []*model.ImportSession) ([]*entity.ImportSession, error) {
	entities := make([]*entity.ImportSession, len(sessions))
	for i, s := range sessions {
		e, err := m.ToEntity(s)
		if err != nil {
			return nil, err
		}
		entities[i] = e
	}
	return entities, nil
}
