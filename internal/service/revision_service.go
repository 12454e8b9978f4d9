package service

import (
	"context"
	"fmt"
	"time"

	"communal-canon-be/internal/config"
	"communal-canon-be/internal/dto"
	"communal-canon-be/internal/entity"
	"communal-canon-be/internal/pkg/apperror"
	"communal-canon-be/internal/pkg/logger"
	"communal-canon-be/internal/repository/specification"
	"communal-canon-be/internal/repository/unitofwork"
	"communal-canon-be/pkg/audit"
	"communal-canon-be/pkg/compliance"
	"communal-canon-be/pkg/consensus"
	"communal-canon-be/pkg/evaluator"
	"communal-canon-be/pkg/revision"

	"github.com/google/uuid"
)

// analysisPanelSize is the number of panel perspectives asked to open the
// discussion on a screened revision proposal.
const analysisPanelSize = 5

type IRevisionService interface {
	Propose(ctx context.Context, userId uuid.UUID, req *dto.ProposeRevisionRequest) (*dto.ProposeRevisionResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.RevisionProposalResponse, error)
	RecordDiscussion(ctx context.Context, userId uuid.UUID, proposalId uuid.UUID, content string) error
	// StartVote opens the consensus session once the discussion window has
	// elapsed; the synthesis pass runs first.
	StartVote(ctx context.Context, proposalId uuid.UUID) (*entity.RevisionProposal, error)
	// Resolve applies or rejects a proposal from its closed voting session.
	Resolve(ctx context.Context, proposalId uuid.UUID) (*entity.RevisionProposal, error)
	Withdraw(ctx context.Context, userId uuid.UUID, proposalId uuid.UUID) (*dto.WithdrawRevisionResponse, error)
}

type revisionService struct {
	uowFactory unitofwork.RepositoryFactory
	scorer     *compliance.Scorer
	analysis   evaluator.AnalysisService
	voting     IVotingService
	policy     revision.CooldownPolicy
	govCfg     config.GovernanceConfig
	trail      *audit.Trail
	logger     logger.ILogger
}

func NewRevisionService(
	uowFactory unitofwork.RepositoryFactory,
	scorer *compliance.Scorer,
	analysis evaluator.AnalysisService,
	voting IVotingService,
	govCfg config.GovernanceConfig,
	trail *audit.Trail,
	log logger.ILogger,
) IRevisionService {
	return &revisionService{
		uowFactory: uowFactory,
		scorer:     scorer,
		analysis:   analysis,
		voting:     voting,
		policy: revision.CooldownPolicy{
			Standard:   time.Duration(govCfg.CooldownDays) * 24 * time.Hour,
			Escalated:  time.Duration(govCfg.EscalatedCooldownDays) * 24 * time.Hour,
			EscalateAt: govCfg.CooldownEscalationAt,
		},
		govCfg: govCfg,
		trail:  trail,
		logger: log,
	}
}

func (s *revisionService) Propose(ctx context.Context, userId uuid.UUID, req *dto.ProposeRevisionRequest) (*dto.ProposeRevisionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	entry, err := uow.PublishedEntryRepository().FindOne(ctx,
		specification.Filter("ref", req.EntryRef))
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, apperror.NotFound(apperror.CodeEntryNotFound,
			fmt.Sprintf("entry %s not found", req.EntryRef))
	}

	// One open proposal per entry: a second proposer has to wait for the
	// current one to resolve. The partial unique index backs this under race.
	open, err := uow.RevisionProposalRepository().FindOne(ctx,
		specification.OpenProposalForEntry{Ref: req.EntryRef})
	if err != nil {
		return nil, err
	}
	if open != nil {
		return nil, apperror.Conflict(apperror.CodeProposalExists,
			fmt.Sprintf("proposal %s is already open for entry %s", open.Id, entry.Ref))
	}

	// Cooldown is tracked per (entry, proposer) on their latest proposal.
	previous, err := uow.RevisionProposalRepository().FindOne(ctx,
		specification.ByEntryRef{Ref: req.EntryRef},
		specification.Filter("proposer_id", userId),
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if previous != nil && revision.Active(previous.CooldownUntil, now) {
		return nil, apperror.Conflict(apperror.CodeCooldownActive,
			fmt.Sprintf("cooldown active until %s", previous.CooldownUntil.Format(time.RFC3339)))
	}

	proposal := entity.RevisionProposal{
		Id:           uuid.New(),
		EntryRef:     entry.Ref,
		ProposerId:   userId,
		OriginalText: entry.TextPrimary,
		ProposedText: req.ProposedText,
		Rationale:    req.Rationale,
		Status:       revision.StatusProposed,
		CreatedAt:    now,
	}
	if previous != nil {
		// Escalation counts rejections across the pair's history.
		proposal.RejectionCount = previous.RejectionCount
	}

	if err := uow.RevisionProposalRepository().Create(ctx, &proposal); err != nil {
		return nil, err
	}

	s.trail.Emit(audit.Record{
		EventType:   audit.EventRevisionProposed,
		ActorKind:   "human",
		ActorID:     userId.String(),
		SubjectType: "proposal",
		SubjectID:   proposal.Id.String(),
		Details: map[string]interface{}{
			"entry_ref": entry.Ref,
		},
	})

	if err := s.screen(ctx, &proposal); err != nil {
		return nil, err
	}

	return &dto.ProposeRevisionResponse{
		Id:     proposal.Id,
		Status: string(proposal.Status),
	}, nil
}

// screen runs the compliance check on the proposed text at the revision
// threshold. Passing opens the discussion window; failing rejects with a
// cooldown.
func (s *revisionService) screen(ctx context.Context, proposal *entity.RevisionProposal) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	proposal.Status = revision.StatusScreening
	if err := uow.RevisionProposalRepository().Update(ctx, proposal); err != nil {
		return err
	}

	evaluation, err := s.scorer.Score(ctx, proposal.ProposedText, compliance.CheckRevision)
	if err != nil {
		return err
	}

	record := entity.ComplianceEvaluation{
		Id:             uuid.New(),
		ProposalId:     &proposal.Id,
		CheckType:      evaluation.CheckType,
		Overall:        evaluation.Overall,
		Threshold:      evaluation.Threshold,
		Compliant:      evaluation.Compliant,
		Recommendation: evaluation.Recommendation,
		Scores:         evaluation.Scores,
		SafetyFlags:    evaluation.SafetyFlags,
		CreatedAt:      time.Now(),
	}
	if err := uow.ComplianceEvaluationRepository().Create(ctx, &record); err != nil {
		return err
	}

	s.trail.Emit(audit.Record{
		EventType:   audit.EventRevisionScreened,
		ActorKind:   "system",
		SubjectType: "proposal",
		SubjectID:   proposal.Id.String(),
		Details: map[string]interface{}{
			"overall":   evaluation.Overall,
			"compliant": evaluation.Compliant,
		},
	})

	if !evaluation.Compliant {
		return s.reject(ctx, proposal, evaluation.Recommendation)
	}

	endsAt := time.Now().Add(s.govCfg.DiscussionWindow)
	proposal.Status = revision.StatusDiscussion
	proposal.DiscussionEndsAt = &endsAt
	if err := uow.RevisionProposalRepository().Update(ctx, proposal); err != nil {
		return err
	}

	s.openDiscussion(ctx, proposal)
	return nil
}

// openDiscussion seeds the discussion with panel analyses. A failed analysis
// is skipped; the discussion still opens.
func (s *revisionService) openDiscussion(ctx context.Context, proposal *entity.RevisionProposal) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	for _, member := range consensus.BuildPanel(analysisPanelSize) {
		text, err := s.analysis.Analyze(ctx, member.Perspective,
			proposal.OriginalText, proposal.ProposedText, proposal.Rationale)
		if err != nil {
			s.logger.Warn("RevisionService", "panel analysis failed", map[string]interface{}{
				"proposal_id": proposal.Id.String(),
				"perspective": member.Perspective,
				"error":       err.Error(),
			})
			continue
		}

		discussionEntry := entity.DiscussionEntry{
			Id:          uuid.New(),
			ProposalId:  proposal.Id,
			AuthorKind:  "panel",
			AuthorLabel: member.Perspective,
			Content:     text,
			CreatedAt:   time.Now(),
		}
		if err := uow.DiscussionEntryRepository().Create(ctx, &discussionEntry); err != nil {
			s.logger.Error("RevisionService", "failed to record panel analysis", map[string]interface{}{
				"proposal_id": proposal.Id.String(),
				"error":       err.Error(),
			})
			continue
		}

		s.trail.Emit(audit.Record{
			EventType:   audit.EventRevisionDiscussion,
			ActorKind:   "automated",
			ActorID:     member.Perspective,
			SubjectType: "proposal",
			SubjectID:   proposal.Id.String(),
		})
	}
}

func (s *revisionService) Show(ctx context.Context, id uuid.UUID) (*dto.RevisionProposalResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	proposal, err := uow.RevisionProposalRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if proposal == nil {
		return nil, apperror.NotFound(apperror.CodeProposalNotFound, "revision proposal not found")
	}

	entries, err := uow.DiscussionEntryRepository().FindAll(ctx,
		specification.ByProposal{ProposalId: id},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	discussion := make([]dto.DiscussionEntryResponse, len(entries))
	for i, e := range entries {
		discussion[i] = dto.DiscussionEntryResponse{
			AuthorKind:  e.AuthorKind,
			AuthorLabel: e.AuthorLabel,
			Content:     e.Content,
			CreatedAt:   e.CreatedAt,
		}
	}

	return &dto.RevisionProposalResponse{
		Id:               proposal.Id,
		EntryRef:         proposal.EntryRef,
		Status:           string(proposal.Status),
		ProposedText:     proposal.ProposedText,
		Rationale:        proposal.Rationale,
		DiscussionEndsAt: proposal.DiscussionEndsAt,
		SessionId:        proposal.SessionId,
		RejectionCount:   proposal.RejectionCount,
		CooldownUntil:    proposal.CooldownUntil,
		Discussion:       discussion,
		CreatedAt:        proposal.CreatedAt,
	}, nil
}

func (s *revisionService) RecordDiscussion(ctx context.Context, userId uuid.UUID, proposalId uuid.UUID, content string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	proposal, err := uow.RevisionProposalRepository().FindOne(ctx, specification.ByID{ID: proposalId})
	if err != nil {
		return err
	}
	if proposal == nil {
		return apperror.NotFound(apperror.CodeProposalNotFound, "revision proposal not found")
	}
	if proposal.Status != revision.StatusDiscussion {
		return apperror.Validation(apperror.CodeInvalidTransition, "proposal is not in discussion")
	}
	if proposal.DiscussionEndsAt != nil && time.Now().After(*proposal.DiscussionEndsAt) {
		return apperror.Conflict(apperror.CodeDiscussionOpen, "discussion window has closed")
	}

	discussionEntry := entity.DiscussionEntry{
		Id:          uuid.New(),
		ProposalId:  proposalId,
		AuthorKind:  "human",
		AuthorLabel: userId.String(),
		Content:     content,
		CreatedAt:   time.Now(),
	}
	if err := uow.DiscussionEntryRepository().Create(ctx, &discussionEntry); err != nil {
		return err
	}

	s.trail.Emit(audit.Record{
		EventType:   audit.EventRevisionDiscussion,
		ActorKind:   "human",
		ActorID:     userId.String(),
		SubjectType: "proposal",
		SubjectID:   proposalId.String(),
	})
	return nil
}

func (s *revisionService) StartVote(ctx context.Context, proposalId uuid.UUID) (*entity.RevisionProposal, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	proposal, err := uow.RevisionProposalRepository().FindOne(ctx, specification.ByID{ID: proposalId})
	if err != nil {
		return nil, err
	}
	if proposal == nil {
		return nil, apperror.NotFound(apperror.CodeProposalNotFound, "revision proposal not found")
	}
	if proposal.Status != revision.StatusDiscussion {
		return nil, apperror.Validation(apperror.CodeInvalidTransition, "proposal is not in discussion")
	}
	if proposal.DiscussionEndsAt == nil || time.Now().Before(*proposal.DiscussionEndsAt) {
		return nil, apperror.Conflict(apperror.CodeDiscussionOpen,
			"discussion window must elapse before voting starts")
	}

	if err := s.synthesize(ctx, proposal); err != nil {
		s.logger.Warn("RevisionService", "synthesis pass failed", map[string]interface{}{
			"proposal_id": proposalId.String(),
			"error":       err.Error(),
		})
	}

	session, err := s.voting.CreateSession(ctx, proposal.Id, consensus.SubjectRevision)
	if err != nil {
		return nil, err
	}
	if err := s.voting.RunPanel(ctx, session.Id, proposal.ProposedText); err != nil {
		return nil, err
	}

	proposal.Status = revision.StatusVoting
	proposal.SessionId = &session.Id
	if err := uow.RevisionProposalRepository().Update(ctx, proposal); err != nil {
		return nil, err
	}

	s.trail.Emit(audit.Record{
		EventType:   audit.EventRevisionVoteStarted,
		ActorKind:   "system",
		SubjectType: "proposal",
		SubjectID:   proposal.Id.String(),
		Details: map[string]interface{}{
			"session_id": session.Id.String(),
		},
	})

	return proposal, nil
}

// synthesize condenses the full discussion into one closing entry.
func (s *revisionService) synthesize(ctx context.Context, proposal *entity.RevisionProposal) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	entries, err := uow.DiscussionEntryRepository().FindAll(ctx,
		specification.ByProposal{ProposalId: proposal.Id},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return err
	}

	contributions := make([]string, len(entries))
	for i, e := range entries {
		contributions[i] = e.Content
	}

	summary, err := s.analysis.Synthesize(ctx, proposal.OriginalText, proposal.ProposedText, contributions)
	if err != nil {
		return err
	}

	synthesisEntry := entity.DiscussionEntry{
		Id:         uuid.New(),
		ProposalId: proposal.Id,
		AuthorKind: "synthesis",
		Content:    summary,
		CreatedAt:  time.Now(),
	}
	if err := uow.DiscussionEntryRepository().Create(ctx, &synthesisEntry); err != nil {
		return err
	}

	s.trail.Emit(audit.Record{
		EventType:   audit.EventRevisionSynthesis,
		ActorKind:   "system",
		SubjectType: "proposal",
		SubjectID:   proposal.Id.String(),
	})
	return nil
}

func (s *revisionService) Resolve(ctx context.Context, proposalId uuid.UUID) (*entity.RevisionProposal, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	proposal, err := uow.RevisionProposalRepository().FindOne(ctx, specification.ByID{ID: proposalId})
	if err != nil {
		return nil, err
	}
	if proposal == nil {
		return nil, apperror.NotFound(apperror.CodeProposalNotFound, "revision proposal not found")
	}
	if proposal.Status != revision.StatusVoting || proposal.SessionId == nil {
		return nil, apperror.Validation(apperror.CodeInvalidTransition, "proposal has no resolving vote")
	}

	session, err := uow.VotingSessionRepository().FindOne(ctx, specification.ByID{ID: *proposal.SessionId})
	if err != nil {
		return nil, err
	}
	if session == nil || !session.Status.Terminal() {
		return nil, apperror.Conflict(apperror.CodeNotApproved, "voting session has not resolved")
	}

	if session.Status == consensus.StatusApproved {
		if err := s.apply(ctx, proposal); err != nil {
			return nil, err
		}
		return proposal, nil
	}

	reason := fmt.Sprintf("voting session resolved %s", session.Status)
	if err := s.reject(ctx, proposal, reason); err != nil {
		return nil, err
	}
	return proposal, nil
}

// apply snapshots the current entry text and swaps in the proposed text in
// one transaction. The entry keeps its ref; only version and text move.
func (s *revisionService) apply(ctx context.Context, proposal *entity.RevisionProposal) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	entry, err := uow.PublishedEntryRepository().FindOne(ctx,
		specification.Filter("ref", proposal.EntryRef))
	if err != nil {
		return err
	}
	if entry == nil {
		return apperror.NotFound(apperror.CodeEntryNotFound,
			fmt.Sprintf("entry %s not found", proposal.EntryRef))
	}

	snapshot := entity.EntryVersion{
		Id:            uuid.New(),
		EntryRef:      entry.Ref,
		Version:       entry.Version,
		TextPrimary:   entry.TextPrimary,
		TextSecondary: entry.TextSecondary,
		ChangeNote:    fmt.Sprintf("superseded by revision %s", proposal.Id),
		CreatedAt:     time.Now(),
	}
	if err := uow.EntryVersionRepository().Create(ctx, &snapshot); err != nil {
		return err
	}

	entry.TextPrimary = proposal.ProposedText
	entry.Version++
	if err := uow.PublishedEntryRepository().Update(ctx, entry); err != nil {
		return err
	}

	proposal.Status = revision.StatusApproved
	if err := uow.RevisionProposalRepository().Update(ctx, proposal); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	s.trail.Emit(audit.Record{
		EventType:   audit.EventRevisionApplied,
		ActorKind:   "system",
		SubjectType: "proposal",
		SubjectID:   proposal.Id.String(),
		Details: map[string]interface{}{
			"entry_ref":   entry.Ref,
			"new_version": entry.Version,
		},
	})
	return nil
}

func (s *revisionService) reject(ctx context.Context, proposal *entity.RevisionProposal, reason string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	proposal.RejectionCount++
	cooldownUntil := time.Now().Add(s.policy.After(proposal.RejectionCount))
	proposal.CooldownUntil = &cooldownUntil
	proposal.Status = revision.StatusRejected
	if err := uow.RevisionProposalRepository().Update(ctx, proposal); err != nil {
		return err
	}

	s.trail.Emit(audit.Record{
		EventType:   audit.EventRevisionRejected,
		ActorKind:   "system",
		SubjectType: "proposal",
		SubjectID:   proposal.Id.String(),
		Details: map[string]interface{}{
			"reason":          reason,
			"rejection_count": proposal.RejectionCount,
			"cooldown_until":  cooldownUntil,
		},
	})
	return nil
}

func (s *revisionService) Withdraw(ctx context.Context, userId uuid.UUID, proposalId uuid.UUID) (*dto.WithdrawRevisionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	proposal, err := uow.RevisionProposalRepository().FindOne(ctx, specification.ByID{ID: proposalId})
	if err != nil {
		return nil, err
	}
	if proposal == nil {
		return nil, apperror.NotFound(apperror.CodeProposalNotFound, "revision proposal not found")
	}
	if proposal.ProposerId != userId {
		return nil, apperror.NotFound(apperror.CodeProposalNotFound, "revision proposal not found")
	}
	if proposal.Status.Terminal() {
		return nil, apperror.Validation(apperror.CodeInvalidTransition,
			"proposal has already resolved")
	}

	proposal.Status = revision.StatusWithdrawn
	if err := uow.RevisionProposalRepository().Update(ctx, proposal); err != nil {
		return nil, err
	}

	s.trail.Emit(audit.Record{
		EventType:   audit.EventRevisionWithdrawn,
		ActorKind:   "human",
		ActorID:     userId.String(),
		SubjectType: "proposal",
		SubjectID:   proposal.Id.String(),
	})

	return &dto.WithdrawRevisionResponse{
		Id:     proposal.Id,
		Status: string(proposal.Status),
	}, nil
}
