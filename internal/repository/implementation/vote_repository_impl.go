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

const pgUniqueViolation = "23505"

type VoteRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.VotingMapper
}

func NewVoteRepository(db *gorm.DB) contract.VoteRepository {
	return &VoteRepositoryImpl{
		db:     db,
		mapper: mapper.NewVotingMapper(),
	}
}

func (r *VoteRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *VoteRepositoryImpl) Create(ctx context.Context, vote *entity.Vote) error {
	m := r.mapper.VoteToModel(vote)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperror.Conflict(apperror.CodeAlreadyVoted,
				"voter already cast a ballot in this session")
		}
		return err
	}
	*vote = *r.mapper.VoteToEntity(m)
	return nil
}

func (r *VoteRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Vote, error) {
	var models []*model.Vote
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	votes := make([]*entity.Vote, len(models))
	for i, m := range models {
		votes[i] = r.mapper.VoteToEntity(m)
	}
	return votes, nil
}

func (r *VoteRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Vote{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
