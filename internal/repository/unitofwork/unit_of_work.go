package unitofwork

import (
	"context"

	"communal-canon-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	SubmissionRepository() contract.SubmissionRepository
	PrincipleRepository() contract.PrincipleRepository
	ComplianceEvaluationRepository() contract.ComplianceEvaluationRepository
	RefinementRecordRepository() contract.RefinementRecordRepository

	VotingSessionRepository() contract.VotingSessionRepository
	VoteRepository() contract.VoteRepository
	AutomatedVoterRepository() contract.AutomatedVoterRepository

	RevisionProposalRepository() contract.RevisionProposalRepository
	DiscussionEntryRepository() contract.DiscussionEntryRepository

	PublishedEntryRepository() contract.PublishedEntryRepository
	EntryVersionRepository() contract.EntryVersionRepository

	AuditEventRepository() contract.AuditEventRepository
}
