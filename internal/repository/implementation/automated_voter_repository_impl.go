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

type AutomatedVoterRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.VotingMapper
}

func NewAutomatedVoterRepository(db *gorm.DB) contract.AutomatedVoterRepository {
	return &AutomatedVoterRepositoryImpl{
		db:     db,
		mapper: mapper.NewVotingMapper(),
	}
}

func (r *AutomatedVoterRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *AutomatedVoterRepositoryImpl) Create(ctx context.Context, voter *entity.AutomatedVoter) error {
	m := r.mapper.VoterToModel(voter)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*voter = *r.mapper.VoterToEntity(m)
	return nil
}

func (r *AutomatedVoterRepositoryImpl) Update(ctx context.Context, voter *entity.AutomatedVoter) error {
	m := r.mapper.VoterToModel(voter)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*voter = *r.mapper.VoterToEntity(m)
	return nil
}

func (r *AutomatedVoterRepositoryImpl) CreateBatch(ctx context.Context, voters []*entity.AutomatedVoter) error {
	if len(voters) == 0 {
		return nil
	}
	models := make([]*model.AutomatedVoter, len(voters))
	for i, v := range voters {
		models[i] = r.mapper.VoterToModel(v)
	}
	if err := r.db.WithContext(ctx).Create(&models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*voters[i] = *r.mapper.VoterToEntity(m)
	}
	return nil
}

func (r *AutomatedVoterRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AutomatedVoter, error) {
	var models []*model.AutomatedVoter
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.VotersToEntities(models), nil
}
