package implementation

import (
	"context"

	"communal-canon-be/internal/entity"
	"communal-canon-be/internal/mapper"
	"communal-canon-be/internal/model"
	"communal-canon-be/internal/repository/contract"
	"communal-canon-be/internal/repository/specification"

	"gorm.io/gorm"
)

type AuditEventRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AuditMapper
}

func NewAuditEventRepository(db *gorm.DB) contract.AuditEventRepository {
	return &AuditEventRepositoryImpl{
		db:     db,
		mapper: mapper.NewAuditMapper(),
	}
}

func (r *AuditEventRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *AuditEventRepositoryImpl) Create(ctx context.Context, event *entity.AuditEvent) error {
	m, err := r.mapper.ToModel(event)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*event = *r.mapper.ToEntity(m)
	return nil
}

func (r *AuditEventRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AuditEvent, error) {
	var models []*model.AuditEvent
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *AuditEventRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.AuditEvent{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
