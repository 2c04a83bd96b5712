package contract

import (
	"context"

	"ai-import-be/internal/entity"
	"ai-import-be/internal/repository/specification"
)

// ImportSessionRepository stores audit records of committed imports.
type ImportSessionRepository interface {
	Create(ctx context.Context, session *entity.ImportSession) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ImportSession, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ImportSession, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
