package contract

import (
	"context"

	"ai-import-be/internal/entity"

	"github.com/google/uuid"
)

// ImportDraftRepository holds review sessions until they are committed or
// expire. Get returns nil, nil for unknown or expired drafts.
type ImportDraftRepository interface {
	Save(ctx context.Context, draft *entity.ImportDraft) error
	Get(ctx context.Context, id uuid.UUID) (*entity.ImportDraft, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
