package implementation

import (
	"context"
	"errors"
	"fmt"

	"communal-canon-be/internal/entity"
	"communal-canon-be/internal/mapper"
	"communal-canon-be/internal/model"
	"communal-canon-be/internal/repository/contract"
	"communal-canon-be/internal/repository/specification"
	"communal-canon-be/pkg/consensus"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VotingSessionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.VotingMapper
}

func NewVotingSessionRepository(db *gorm.DB) contract.VotingSessionRepository {
	return &VotingSessionRepositoryImpl{
		db:     db,
		mapper: mapper.NewVotingMapper(),
	}
}

func (r *VotingSessionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *VotingSessionRepositoryImpl) Create(ctx context.Context, session *entity.VotingSession) error {
	m := r.mapper.SessionToModel(session)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*session = *r.mapper.SessionToEntity(m)
	return nil
}

// UpdateOutcome writes only the columns the tally owns. A whole-row save
// here could clobber counter columns bumped by a concurrent IncrementCounter.
func (r *VotingSessionRepositoryImpl) UpdateOutcome(ctx context.Context, session *entity.VotingSession) error {
	m := r.mapper.SessionToModel(session)
	return r.db.WithContext(ctx).
		Model(&model.VotingSession{}).
		Where("id = ?", session.Id).
		Select("status", "approval_rate", "closed_at").
		Updates(m).Error
}

func (r *VotingSessionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.VotingSession, error) {
	var m model.VotingSession
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.SessionToEntity(&m), nil
}

func (r *VotingSessionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.VotingSession, error) {
	var models []*model.VotingSession
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.SessionsToEntities(models), nil
}

var counterColumns = map[consensus.VoterKind]map[consensus.VoteChoice]string{
	consensus.VoterHuman: {
		consensus.ChoiceFor:     "human_for",
		consensus.ChoiceAgainst: "human_against",
		consensus.ChoiceAbstain: "human_abstain",
	},
	consensus.VoterAutomated: {
		consensus.ChoiceFor:     "auto_for",
		consensus.ChoiceAgainst: "auto_against",
		consensus.ChoiceAbstain: "auto_abstain",
	},
}

func (r *VotingSessionRepositoryImpl) IncrementCounter(ctx context.Context, sessionId uuid.UUID, kind consensus.VoterKind, choice consensus.VoteChoice) error {
	column, ok := counterColumns[kind][choice]
	if !ok {
		return fmt.Errorf("no counter column for voter kind %q choice %q", kind, choice)
	}
	return r.db.WithContext(ctx).
		Model(&model.VotingSession{}).
		Where("id = ?", sessionId).
		UpdateColumn(column, gorm.Expr(column+" + 1")).Error
}
