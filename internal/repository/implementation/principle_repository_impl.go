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

type PrincipleRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PrincipleMapper
}

func NewPrincipleRepository(db *gorm.DB) contract.PrincipleRepository {
	return &PrincipleRepositoryImpl{
		db:     db,
		mapper: mapper.NewPrincipleMapper(),
	}
}

func (r *PrincipleRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *PrincipleRepositoryImpl) Create(ctx context.Context, principle *entity.Principle) error {
	m := r.mapper.ToModel(principle)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*principle = *r.mapper.ToEntity(m)
	return nil
}

func (r *PrincipleRepositoryImpl) Update(ctx context.Context, principle *entity.Principle) error {
	m := r.mapper.ToModel(principle)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*principle = *r.mapper.ToEntity(m)
	return nil
}

func (r *PrincipleRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Principle, error) {
	var m model.Principle
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *PrincipleRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Principle, error) {
	var models []*model.Principle
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
