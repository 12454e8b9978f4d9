package implementation

import (
	"context"
	"errors"

	"communal-canon-be/internal/entity"
	"communal-canon-be/internal/mapper"
	"communal-canon-be/internal/model"
	"communal-canon-be/internal/repository/contract"
	"communal-canon-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RefinementRecordRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RefinementMapper
}

func NewRefinementRecordRepository(db *gorm.DB) contract.RefinementRecordRepository {
	return &RefinementRecordRepositoryImpl{
		db:     db,
		mapper: mapper.NewRefinementMapper(),
	}
}

func (r *RefinementRecordRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *RefinementRecordRepositoryImpl) Create(ctx context.Context, record *entity.RefinementRecord) error {
	m := r.mapper.ToModel(record)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*record = *r.mapper.ToEntity(m)
	return nil
}

func (r *RefinementRecordRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RefinementRecord, error) {
	var models []*model.RefinementRecord
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

// FindLatest relies on records being append-only in stage order: the most
// recently written row is the most advanced stage.
func (r *RefinementRecordRepositoryImpl) FindLatest(ctx context.Context, submissionId uuid.UUID) (*entity.RefinementRecord, error) {
	var m model.RefinementRecord
	err := r.db.WithContext(ctx).
		Where("submission_id = ?", submissionId).
		Order("created_at DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}
