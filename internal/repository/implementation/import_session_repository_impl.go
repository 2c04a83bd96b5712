package implementation

import (
	"context"
	"errors"

	"ai-import-be/internal/entity"
	"ai-import-be/internal/mapper"
	"ai-import-be/internal/model"
	"ai-import-be/internal/repository/contract"
	"ai-import-be/internal/repository/specification"

	"gorm.io/gorm"
)

type ImportSessionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ImportSessionMapper
}

func NewImportSessionRepository(db *gorm.DB) contract.ImportSessionRepository {
	return &ImportSessionRepositoryImpl{
		db:     db,
		mapper: mapper.NewImportSessionMapper(),
	}
}

func (r *ImportSessionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ImportSessionRepositoryImpl) Create(ctx context.Context, session *entity.ImportSession) error {
	m, err := r.mapper.ToModel(session)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	e, err := r.mapper.ToEntity(m)
	if err != nil {
		return err
	}
	*session = *e
	return nil
}

func (r *ImportSessionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ImportSession, error) {
	var m model.ImportSession
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m)
}

func (r *ImportSessionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ImportSession, error) {
	var models []*model.ImportSession
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models)
}

func (r *ImportSessionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ImportSession{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
