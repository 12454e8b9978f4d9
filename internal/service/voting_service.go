package service

import (
	"context"
	"time"

	"communal-canon-be/internal/config"
	"communal-canon-be/internal/dto"
	"communal-canon-be/internal/entity"
	"communal-canon-be/internal/pkg/apperror"
	"communal-canon-be/internal/pkg/logger"
	"communal-canon-be/internal/repository/specification"
	"communal-canon-be/internal/repository/unitofwork"
	"communal-canon-be/pkg/audit"
	"communal-canon-be/pkg/consensus"

	"github.com/google/uuid"
)

type IVotingService interface {
	// CreateSession opens a voting session for a subject and generates its
	// automated panel. Used by the pipeline and the revision workflow.
	CreateSession(ctx context.Context, subjectId uuid.UUID, subjectType consensus.SubjectType) (*entity.VotingSession, error)
	// RunPanel evaluates every panel member against the subject text and
	// casts their ballots.
	RunPanel(ctx context.Context, sessionId uuid.UUID, subjectText string) error
	CastVote(ctx context.Context, userId uuid.UUID, req *dto.CastVoteRequest) (*dto.CastVoteResponse, error)
	TallySession(ctx context.Context, sessionId uuid.UUID) (*entity.VotingSession, error)
	CloseSession(ctx context.Context, sessionId uuid.UUID) (*dto.CloseSessionResponse, error)
	ListActiveSessions(ctx context.Context) ([]*dto.SessionResponse, error)
}

type votingService struct {
	uowFactory unitofwork.RepositoryFactory
	panel      *consensus.PanelEvaluator
	govCfg     config.GovernanceConfig
	trail      *audit.Trail
	logger     logger.ILogger
}

func NewVotingService(
	uowFactory unitofwork.RepositoryFactory,
	panel *consensus.PanelEvaluator,
	govCfg config.GovernanceConfig,
	trail *audit.Trail,
	log logger.ILogger,
) IVotingService {
	return &votingService{
		uowFactory: uowFactory,
		panel:      panel,
		govCfg:     govCfg,
		trail:      trail,
		logger:     log,
	}
}

func (s *votingService) CreateSession(ctx context.Context, subjectId uuid.UUID, subjectType consensus.SubjectType) (*entity.VotingSession, error) {
	if !subjectType.Valid() {
		return nil, apperror.Validation("INVALID_SUBJECT_TYPE", "unknown voting subject type")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.VotingSessionRepository().FindOne(ctx,
		specification.NonTerminalForSubject{SubjectId: subjectId})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Conflict(apperror.CodeSessionExists,
			"subject already has an open voting session")
	}

	now := time.Now()
	session := entity.VotingSession{
		Id:                 uuid.New(),
		SubjectId:          subjectId,
		SubjectType:        subjectType,
		ApprovalThreshold:  consensus.ThresholdForSubject(subjectType),
		QuorumFraction:     s.govCfg.QuorumFraction,
		EligibleHumanCount: s.govCfg.EligibleHumanCount,
		Status:             consensus.StatusActive,
		StartsAt:           now,
		EndsAt:             now.Add(s.govCfg.VotingWindow),
		CreatedAt:          now,
	}

	if err := uow.VotingSessionRepository().Create(ctx, &session); err != nil {
		return nil, err
	}

	members := consensus.BuildPanel(consensus.PanelSize(session.EligibleHumanCount))
	voters := make([]*entity.AutomatedVoter, len(members))
	for i, m := range members {
		voters[i] = &entity.AutomatedVoter{
			Id:          uuid.New(),
			SessionId:   session.Id,
			Category:    m.Category,
			Perspective: m.Perspective,
			CreatedAt:   now,
		}
	}
	if err := uow.AutomatedVoterRepository().CreateBatch(ctx, voters); err != nil {
		return nil, err
	}

	s.trail.Emit(audit.Record{
		EventType:   audit.EventSessionCreated,
		ActorKind:   "system",
		SubjectType: "session",
		SubjectID:   session.Id.String(),
		Details: map[string]interface{}{
			"subject_id":   subjectId.String(),
			"subject_type": string(subjectType),
			"threshold":    session.ApprovalThreshold,
			"ends_at":      session.EndsAt,
		},
	})
	s.trail.Emit(audit.Record{
		EventType:   audit.EventPanelGenerated,
		ActorKind:   "system",
		SubjectType: "session",
		SubjectID:   session.Id.String(),
		Details: map[string]interface{}{
			"panel_size": len(members),
		},
	})

	return &session, nil
}

func (s *votingService) RunPanel(ctx context.Context, sessionId uuid.UUID, subjectText string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.VotingSessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return err
	}
	if session == nil {
		return apperror.NotFound(apperror.CodeSessionNotFound, "voting session not found")
	}
	if session.Status.Terminal() {
		return apperror.Conflict(apperror.CodeSessionClosed, "session already resolved")
	}

	recorded, err := uow.AutomatedVoterRepository().FindAll(ctx,
		specification.BySession{SessionId: sessionId})
	if err != nil {
		return err
	}

	members := make([]consensus.PanelMember, len(recorded))
	for i, v := range recorded {
		members[i] = consensus.PanelMember{
			Category:    v.Category,
			Perspective: v.Perspective,
			VoterID:     v.Id.String(),
		}
	}

	ballots := s.panel.Evaluate(ctx, members, subjectText)

	for i, b := range ballots {
		voter := recorded[i]
		voter.Evaluation = b.Rationale
		voter.Choice = b.Choice
		if err := uow.AutomatedVoterRepository().Update(ctx, voter); err != nil {
			return err
		}

		vote := entity.Vote{
			Id:        uuid.New(),
			SessionId: sessionId,
			VoterKind: consensus.VoterAutomated,
			VoterId:   b.Member.VoterID,
			Choice:    b.Choice,
			Rationale: b.Rationale,
			CreatedAt: time.Now(),
		}
		if err := uow.VoteRepository().Create(ctx, &vote); err != nil {
			if apperror.CodeOf(err) == apperror.CodeAlreadyVoted {
				continue // panel re-run, ballot already recorded
			}
			return err
		}
		if err := uow.VotingSessionRepository().IncrementCounter(ctx, sessionId, consensus.VoterAutomated, b.Choice); err != nil {
			return err
		}

		s.trail.Emit(audit.Record{
			EventType:   audit.EventVoteCast,
			ActorKind:   "automated",
			ActorID:     b.Member.VoterID,
			SubjectType: "session",
			SubjectID:   sessionId.String(),
			Details: map[string]interface{}{
				"choice":      string(b.Choice),
				"category":    string(b.Member.Category),
				"perspective": b.Member.Perspective,
			},
		})
	}

	return nil
}

func (s *votingService) CastVote(ctx context.Context, userId uuid.UUID, req *dto.CastVoteRequest) (*dto.CastVoteResponse, error) {
	choice := consensus.VoteChoice(req.Choice)
	if !choice.Valid() {
		return nil, apperror.Validation("INVALID_CHOICE", "choice must be for, against or abstain")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.VotingSessionRepository().FindOne(ctx, specification.ByID{ID: req.SessionId})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NotFound(apperror.CodeSessionNotFound, "voting session not found")
	}
	if session.Status != consensus.StatusActive {
		return nil, apperror.Conflict(apperror.CodeSessionClosed, "session is not accepting votes")
	}
	if time.Now().After(session.EndsAt) {
		return nil, apperror.Conflict(apperror.CodeSessionClosed, "voting window has ended")
	}

	vote := entity.Vote{
		Id:        uuid.New(),
		SessionId: session.Id,
		VoterKind: consensus.VoterHuman,
		VoterId:   userId.String(),
		Choice:    choice,
		Rationale: req.Rationale,
		CreatedAt: time.Now(),
	}
	if err := uow.VoteRepository().Create(ctx, &vote); err != nil {
		return nil, err
	}
	if err := uow.VotingSessionRepository().IncrementCounter(ctx, session.Id, consensus.VoterHuman, choice); err != nil {
		return nil, err
	}

	s.trail.Emit(audit.Record{
		EventType:   audit.EventVoteCast,
		ActorKind:   "human",
		ActorID:     userId.String(),
		SubjectType: "session",
		SubjectID:   session.Id.String(),
		Details: map[string]interface{}{
			"choice": string(choice),
		},
	})

	return &dto.CastVoteResponse{
		SessionId: session.Id,
		Choice:    string(choice),
	}, nil
}

// TallySession resolves a session from its counters. Idempotent: tallying a
// resolved session returns it unchanged.
func (s *votingService) TallySession(ctx context.Context, sessionId uuid.UUID) (*entity.VotingSession, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.VotingSessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NotFound(apperror.CodeSessionNotFound, "voting session not found")
	}
	if session.Status.Terminal() {
		return session, nil
	}

	session.Status = consensus.StatusTallying

	outcome := consensus.Tally(session.Counters, session.EligibleHumanCount,
		session.QuorumFraction, session.ApprovalThreshold)

	status := outcome.Status
	if status == consensus.StatusApproved {
		flagged, err := s.subjectSafetyFlagged(ctx, uow, session)
		if err != nil {
			return nil, err
		}
		if flagged {
			status = consensus.StatusFlagged
		}
	}

	rate := outcome.ApprovalRate
	session.ApprovalRate = &rate
	session.Status = status
	if err := uow.VotingSessionRepository().UpdateOutcome(ctx, session); err != nil {
		return nil, err
	}

	s.trail.Emit(audit.Record{
		EventType:   audit.EventSessionTallied,
		ActorKind:   "system",
		SubjectType: "session",
		SubjectID:   session.Id.String(),
		Details: map[string]interface{}{
			"status":        string(session.Status),
			"approval_rate": rate,
			"quorum_met":    outcome.QuorumMet,
		},
	})

	return session, nil
}

// subjectSafetyFlagged checks whether the screening run that admitted this
// subject carried safety flags; an approved session for flagged content
// resolves to flagged instead so an operator has to look at it.
func (s *votingService) subjectSafetyFlagged(ctx context.Context, uow unitofwork.UnitOfWork, session *entity.VotingSession) (bool, error) {
	var spec specification.Specification
	switch session.SubjectType {
	case consensus.SubjectRevision:
		spec = specification.ByProposal{ProposalId: session.SubjectId}
	default:
		spec = specification.BySubmission{SubmissionId: session.SubjectId}
	}

	evaluation, err := uow.ComplianceEvaluationRepository().FindOne(ctx, spec,
		specification.OrderBy{Field: "created_at", Desc: true})
	if err != nil {
		return false, err
	}
	return evaluation != nil && len(evaluation.SafetyFlags) > 0, nil
}

func (s *votingService) CloseSession(ctx context.Context, sessionId uuid.UUID) (*dto.CloseSessionResponse, error) {
	session, err := s.TallySession(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	if session.ClosedAt == nil {
		now := time.Now()
		session.ClosedAt = &now
		uow := s.uowFactory.NewUnitOfWork(ctx)
		if err := uow.VotingSessionRepository().UpdateOutcome(ctx, session); err != nil {
			return nil, err
		}

		s.trail.Emit(audit.Record{
			EventType:   audit.EventSessionClosed,
			ActorKind:   "system",
			SubjectType: "session",
			SubjectID:   session.Id.String(),
			Details: map[string]interface{}{
				"status": string(session.Status),
			},
		})
	}

	var rate float64
	if session.ApprovalRate != nil {
		rate = *session.ApprovalRate
	}
	return &dto.CloseSessionResponse{
		Id:           session.Id,
		Status:       string(session.Status),
		ApprovalRate: rate,
		QuorumMet:    session.Status != consensus.StatusQuorumFailed,
	}, nil
}

func (s *votingService) ListActiveSessions(ctx context.Context) ([]*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sessions, err := uow.VotingSessionRepository().FindAll(ctx,
		specification.ByStatus{Status: string(consensus.StatusActive)},
		specification.OrderBy{Field: "ends_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.SessionResponse, len(sessions))
	for i, session := range sessions {
		res[i] = sessionToResponse(session)
	}
	return res, nil
}

func sessionToResponse(session *entity.VotingSession) *dto.SessionResponse {
	return &dto.SessionResponse{
		Id:                 session.Id,
		SubjectId:          session.SubjectId,
		SubjectType:        string(session.SubjectType),
		ApprovalThreshold:  session.ApprovalThreshold,
		QuorumFraction:     session.QuorumFraction,
		EligibleHumanCount: session.EligibleHumanCount,
		Counters: dto.SessionCountersResponse{
			HumanFor:     session.Counters.HumanFor,
			HumanAgainst: session.Counters.HumanAgainst,
			HumanAbstain: session.Counters.HumanAbstain,
			AutoFor:      session.Counters.AutoFor,
			AutoAgainst:  session.Counters.AutoAgainst,
			AutoAbstain:  session.Counters.AutoAbstain,
		},
		ApprovalRate: session.ApprovalRate,
		Status:       string(session.Status),
		StartsAt:     session.StartsAt,
		EndsAt:       session.EndsAt,
		ClosedAt:     session.ClosedAt,
	}
}
