package memory

import (
	"context"
	"time"

	"ai-import-be/internal/entity"
	"ai-import-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// ImportDraftRepository keeps drafts in process memory. Drafts are lost on
// restart and are not shared between instances.
type ImportDraftRepository struct {
	cache *cache.Cache
}

func NewImportDraftRepository(ttl time.Duration) contract.ImportDraftRepository {
	// Expired drafts are purged every 10 minutes
	c := cache.New(ttl, 10*time.Minute)
	return &ImportDraftRepository{
		cache: c,
	}
}

func (r *ImportDraftRepository) Save(ctx context.Context, draft *entity.ImportDraft) error {
	ttl := cache.DefaultExpiration
	if !draft.ExpiresAt.IsZero() {
		ttl = time.Until(draft.ExpiresAt)
		if ttl <= 0 {
			r.cache.Delete(draft.Id.String())
			return nil
		}
	}
	r.cache.Set(draft.Id.String(), draft, ttl)
	return nil
}

func (r *ImportDraftRepository) Get(ctx context.Context, id uuid.UUID) (*entity.ImportDraft, error) {
	if x, found := r.cache.Get(id.String()); found {
		return x.(*entity.ImportDraft), nil
	}
	return nil, nil
}

func (r *ImportDraftRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.cache.Delete(id.String())
	return nil
}
