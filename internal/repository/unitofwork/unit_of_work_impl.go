package unitofwork

import (
	"context"
	"fmt"

	"communal-canon-be/internal/repository/contract"
	"communal-canon-be/internal/repository/implementation"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB // active transaction, nil outside Begin/Commit
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.tx = u.db.WithContext(ctx).Begin()
	return u.tx.Error
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// Repository Accessors

func (u *UnitOfWorkImpl) SubmissionRepository() contract.SubmissionRepository {
	return implementation.NewSubmissionRepository(u.getDB())
}

func (u *UnitOfWorkImpl) PrincipleRepository() contract.PrincipleRepository {
	return implementation.NewPrincipleRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ComplianceEvaluationRepository() contract.ComplianceEvaluationRepository {
	return implementation.NewComplianceEvaluationRepository(u.getDB())
}

func (u *UnitOfWorkImpl) RefinementRecordRepository() contract.RefinementRecordRepository {
	return implementation.NewRefinementRecordRepository(u.getDB())
}

func (u *UnitOfWorkImpl) VotingSessionRepository() contract.VotingSessionRepository {
	return implementation.NewVotingSessionRepository(u.getDB())
}

func (u *UnitOfWorkImpl) VoteRepository() contract.VoteRepository {
	return implementation.NewVoteRepository(u.getDB())
}

func (u *UnitOfWorkImpl) AutomatedVoterRepository() contract.AutomatedVoterRepository {
	return implementation.NewAutomatedVoterRepository(u.getDB())
}

func (u *UnitOfWorkImpl) RevisionProposalRepository() contract.RevisionProposalRepository {
	return implementation.NewRevisionProposalRepository(u.getDB())
}

func (u *UnitOfWorkImpl) DiscussionEntryRepository() contract.DiscussionEntryRepository {
	return implementation.NewDiscussionEntryRepository(u.getDB())
}

func (u *UnitOfWorkImpl) PublishedEntryRepository() contract.PublishedEntryRepository {
	return implementation.NewPublishedEntryRepository(u.getDB())
}

func (u *UnitOfWorkImpl) EntryVersionRepository() contract.EntryVersionRepository {
	return implementation.NewEntryVersionRepository(u.getDB())
}

func (u *UnitOfWorkImpl) AuditEventRepository() contract.AuditEventRepository {
	return implementation.NewAuditEventRepository(u.getDB())
}
