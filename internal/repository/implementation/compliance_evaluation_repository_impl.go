package implementation

import (
	"context"
	"errors"

	"communal-canon-be/internal/entity"
	"communal-canon-be/internal/mapper"
	"communal-canon-be/internal/model"
	"communal-canon-be/internal/repository/contract"
	"communal-canon-be/internal/repository/specification"

	"gorm.io/gorm"
)

type ComplianceEvaluationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ComplianceMapper
}

func NewComplianceEvaluationRepository(db *gorm.DB) contract.ComplianceEvaluationRepository {
	return &ComplianceEvaluationRepositoryImpl{
		db:     db,
		mapper: mapper.NewComplianceMapper(),
	}
}

func (r *ComplianceEvaluationRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ComplianceEvaluationRepositoryImpl) Create(ctx context.Context, evaluation *entity.ComplianceEvaluation) error {
	m, err := r.mapper.ToModel(evaluation)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*evaluation = *r.mapper.ToEntity(m)
	return nil
}

func (r *ComplianceEvaluationRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ComplianceEvaluation, error) {
	var m model.ComplianceEvaluation
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ComplianceEvaluationRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ComplianceEvaluation, error) {
	var models []*model.ComplianceEvaluation
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
