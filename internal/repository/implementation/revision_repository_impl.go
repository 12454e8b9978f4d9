package implementation

import (
	"context"
	"errors"

	"communal-canon-be/internal/entity"
	"communal-canon-be/internal/mapper"
	"communal-canon-be/internal/model"
	"communal-canon-be/internal/pkg/apperror"
	"communal-canon-be/internal/repository/contract"
	"communal-canon-be/internal/repository/specification"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type RevisionProposalRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RevisionMapper
}

func NewRevisionProposalRepository(db *gorm.DB) contract.RevisionProposalRepository {
	return &RevisionProposalRepositoryImpl{
		db:     db,
		mapper: mapper.NewRevisionMapper(),
	}
}

func (r *RevisionProposalRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *RevisionProposalRepositoryImpl) Create(ctx context.Context, proposal *entity.RevisionProposal) error {
	m := r.mapper.ProposalToModel(proposal)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		// The partial unique index on open proposals guards the race two
		// proposers lose to each other; surface it as a conflict.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperror.Conflict(apperror.CodeProposalExists,
				"an open revision proposal already exists for this entry")
		}
		return err
	}
	*proposal = *r.mapper.ProposalToEntity(m)
	return nil
}

func (r *RevisionProposalRepositoryImpl) Update(ctx context.Context, proposal *entity.RevisionProposal) error {
	m := r.mapper.ProposalToModel(proposal)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*proposal = *r.mapper.ProposalToEntity(m)
	return nil
}

func (r *RevisionProposalRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.RevisionProposal, error) {
	var m model.RevisionProposal
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ProposalToEntity(&m), nil
}

func (r *RevisionProposalRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RevisionProposal, error) {
	var models []*model.RevisionProposal
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ProposalsToEntities(models), nil
}

type DiscussionEntryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RevisionMapper
}

func NewDiscussionEntryRepository(db *gorm.DB) contract.DiscussionEntryRepository {
	return &DiscussionEntryRepositoryImpl{
		db:     db,
		mapper: mapper.NewRevisionMapper(),
	}
}

func (r *DiscussionEntryRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *DiscussionEntryRepositoryImpl) Create(ctx context.Context, entry *entity.DiscussionEntry) error {
	m := r.mapper.DiscussionToModel(entry)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*entry = *r.mapper.DiscussionToEntity(m)
	return nil
}

func (r *DiscussionEntryRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DiscussionEntry, error) {
	var models []*model.DiscussionEntry
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.DiscussionsToEntities(models), nil
}
