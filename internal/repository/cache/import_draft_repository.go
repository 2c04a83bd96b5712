package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ai-import-be/internal/entity"
	"ai-import-be/internal/repository/contract"
	"ai-import-be/pkg/reconcile"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const draftKeyPrefix = "import:draft:"

// draftRecord is the Redis payload of a draft.
type draftRecord struct {
	Id             uuid.UUID                 `json:"id"`
	PractitionerId string                    `json:"practitioner_id"`
	Session        *reconcile.Session        `json:"session"`
	Roster         []reconcile.PatientOption `json:"roster"`
	CreatedAt      time.Time                 `json:"created_at"`
	ExpiresAt      time.Time                 `json:"expires_at"`
}

// ImportDraftRepository keeps drafts in Redis so every API instance sees the
// same review. Concurrent writers on different instances are last-write-wins.
type ImportDraftRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewImportDraftRepository(rdb *redis.Client, ttl time.Duration) contract.ImportDraftRepository {
	return &ImportDraftRepository{
		rdb: rdb,
		ttl: ttl,
	}
}

func draftKey(id uuid.UUID) string {
	return draftKeyPrefix + id.String()
}

func (r *ImportDraftRepository) Save(ctx context.Context, draft *entity.ImportDraft) error {
	ttl := r.ttl
	if !draft.ExpiresAt.IsZero() {
		ttl = time.Until(draft.ExpiresAt)
		if ttl <= 0 {
			return r.Delete(ctx, draft.Id)
		}
	}

	payload, err := json.Marshal(draftRecord{
		Id:             draft.Id,
		PractitionerId: draft.PractitionerId,
		Session:        draft.Session,
		Roster:         draft.Roster,
		CreatedAt:      draft.CreatedAt,
		ExpiresAt:      draft.ExpiresAt,
	})
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	return r.rdb.Set(ctx, draftKey(draft.Id), payload, ttl).Err()
}

func (r *ImportDraftRepository) Get(ctx context.Context, id uuid.UUID) (*entity.ImportDraft, error) {
	payload, err := r.rdb.Get(ctx, draftKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var rec draftRecord
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, fmt.Errorf("decode draft: %w", err)
	}
	if rec.Session == nil {
		rec.Session = reconcile.NewSession(reconcile.Input{})
	}
	return &entity.ImportDraft{
		Id:             rec.Id,
		PractitionerId: rec.PractitionerId,
		Session:        rec.Session,
		Roster:         rec.Roster,
		CreatedAt:      rec.CreatedAt,
		ExpiresAt:      rec.ExpiresAt,
	}, nil
}

func (r *ImportDraftRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.rdb.Del(ctx, draftKey(id)).Err()
}
