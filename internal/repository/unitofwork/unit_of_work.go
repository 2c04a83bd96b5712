package unitofwork

import (
	"context"

	"ai-import-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ImportSessionRepository() contract.ImportSessionRepository
}
