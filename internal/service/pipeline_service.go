package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"communal-canon-be/internal/dto"
	"communal-canon-be/internal/entity"
	"communal-canon-be/internal/pkg/apperror"
	"communal-canon-be/internal/pkg/logger"
	"communal-canon-be/internal/repository/specification"
	"communal-canon-be/internal/repository/unitofwork"
	"communal-canon-be/pkg/audit"
	"communal-canon-be/pkg/compliance"
	"communal-canon-be/pkg/consensus"
	"communal-canon-be/pkg/refinement"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// IPipelineService drives a submission through screening, refinement and
// into voting, and resolves closed sessions into registrations.
type IPipelineService interface {
	Consume(ctx context.Context) error
	ResolveSession(ctx context.Context, sessionId uuid.UUID) (*dto.CloseSessionResponse, error)
}

type pipelineService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	scorer     *compliance.Scorer
	refiner    *refinement.Refiner
	voting     IVotingService
	revisions  IRevisionService
	placement  IPlacementService
	trail      *audit.Trail
	logger     logger.ILogger
}

func NewPipelineService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	scorer *compliance.Scorer,
	refiner *refinement.Refiner,
	voting IVotingService,
	revisions IRevisionService,
	placementService IPlacementService,
	trail *audit.Trail,
	log logger.ILogger,
) IPipelineService {
	return &pipelineService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		scorer:     scorer,
		refiner:    refiner,
		voting:     voting,
		revisions:  revisions,
		placement:  placementService,
		trail:      trail,
		logger:     log,
	}
}

func (s *pipelineService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (s *pipelineService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.GovernSubmissionMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		s.logger.Error("Pipeline", "failed to unmarshal message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // malformed, retrying cannot help
		return
	}

	if err := s.govern(ctx, payload.SubmissionId); err != nil {
		if apperror.IsKind(err, apperror.KindExternal) {
			s.logger.Warn("Pipeline", "external service failed, message requeued", map[string]interface{}{
				"submission_id": payload.SubmissionId.String(),
				"error":         err.Error(),
			})
			msg.Nack()
			return
		}
		s.logger.Error("Pipeline", "governance run failed", map[string]interface{}{
			"submission_id": payload.SubmissionId.String(),
			"error":         err.Error(),
		})
	}
	msg.Ack()
}

func (s *pipelineService) govern(ctx context.Context, submissionId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	submission, err := uow.SubmissionRepository().FindOne(ctx, specification.ByID{ID: submissionId})
	if err != nil {
		return err
	}
	if submission == nil {
		s.logger.Warn("Pipeline", "submission vanished before processing", map[string]interface{}{
			"submission_id": submissionId.String(),
		})
		return nil
	}
	if submission.Status != entity.SubmissionSubmitted {
		// Duplicate delivery or a concurrent run already owns it.
		return nil
	}

	compliant, err := s.screen(ctx, submission)
	if err != nil || !compliant {
		return err
	}

	if err := s.refine(ctx, submission); err != nil {
		return err
	}

	return s.openVoting(ctx, submission)
}

func (s *pipelineService) screen(ctx context.Context, submission *entity.Submission) (bool, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	submission.Status = entity.SubmissionScreening
	if err := uow.SubmissionRepository().Update(ctx, submission); err != nil {
		return false, err
	}

	checkType := compliance.CheckSubmission
	if submission.Type == entity.SubmissionTypeAmendment {
		checkType = compliance.CheckAmendment
	}

	evaluation, err := s.scorer.Score(ctx, submission.RawText, checkType)
	if err != nil {
		return false, err
	}

	record := entity.ComplianceEvaluation{
		Id:             uuid.New(),
		SubmissionId:   &submission.Id,
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
		return false, err
	}

	submission.ComplianceScore = &evaluation.Overall
	s.trail.Emit(audit.Record{
		EventType:   audit.EventSubmissionScreened,
		ActorKind:   "system",
		SubjectType: "submission",
		SubjectID:   submission.Id.String(),
		Details: map[string]interface{}{
			"overall":      evaluation.Overall,
			"threshold":    evaluation.Threshold,
			"compliant":    evaluation.Compliant,
			"safety_flags": evaluation.SafetyFlags,
		},
	})

	if !evaluation.Compliant {
		reason := evaluation.Recommendation
		submission.Status = entity.SubmissionRejected
		submission.RejectionReason = &reason
		if err := uow.SubmissionRepository().Update(ctx, submission); err != nil {
			return false, err
		}
		s.trail.Emit(audit.Record{
			EventType:   audit.EventSubmissionRejected,
			ActorKind:   "system",
			SubjectType: "submission",
			SubjectID:   submission.Id.String(),
			Details: map[string]interface{}{
				"reason": reason,
			},
		})
		return false, nil
	}

	submission.Status = entity.SubmissionScreened
	return true, uow.SubmissionRepository().Update(ctx, submission)
}

// refine walks the full ladder raw -> draft -> refined -> canonical, writing
// one append-only record per completed advance.
func (s *pipelineService) refine(ctx context.Context, submission *entity.Submission) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	current := refinement.StageRaw
	textPrimary := submission.RawText
	textSecondary := ""

	for {
		target, ok := current.Next()
		if !ok {
			break
		}
		if err := refinement.ValidateAdvance(current, target); err != nil {
			return err
		}

		result, err := s.refiner.Refine(ctx, target, textPrimary, textSecondary)
		if err != nil {
			return err // stage unchanged, nothing written
		}

		record := entity.RefinementRecord{
			Id:            uuid.New(),
			SubmissionId:  submission.Id,
			Stage:         result.Stage,
			TextPrimary:   result.TextPrimary,
			TextSecondary: result.TextSecondary,
			Similarity:    result.Similarity,
			ChangeSummary: result.ChangeSummary,
			CreatedAt:     time.Now(),
		}
		if err := uow.RefinementRecordRepository().Create(ctx, &record); err != nil {
			return err
		}

		submission.Status = entity.SubmissionRefining
		if target == refinement.StageCanonical {
			submission.Status = entity.SubmissionRefined
		}
		if err := uow.SubmissionRepository().Update(ctx, submission); err != nil {
			return err
		}

		s.trail.Emit(audit.Record{
			EventType:   audit.EventRefinementAdvanced,
			ActorKind:   "system",
			SubjectType: "submission",
			SubjectID:   submission.Id.String(),
			Details: map[string]interface{}{
				"stage":      string(result.Stage),
				"similarity": result.Similarity,
			},
		})
		if result.DriftWarning {
			s.trail.Emit(audit.Record{
				EventType:   audit.EventRefinementDriftWarning,
				ActorKind:   "system",
				SubjectType: "submission",
				SubjectID:   submission.Id.String(),
				Details: map[string]interface{}{
					"stage":      string(result.Stage),
					"similarity": result.Similarity,
				},
			})
		}

		current = target
		textPrimary = result.TextPrimary
		textSecondary = result.TextSecondary
	}

	return nil
}

func (s *pipelineService) openVoting(ctx context.Context, submission *entity.Submission) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	subjectType := consensus.SubjectNewSubmission
	if submission.Type == entity.SubmissionTypeAmendment {
		subjectType = consensus.SubjectAmendment
	}

	session, err := s.voting.CreateSession(ctx, submission.Id, subjectType)
	if err != nil {
		return err
	}

	record, err := uow.RefinementRecordRepository().FindLatest(ctx, submission.Id)
	if err != nil {
		return err
	}
	subjectText := submission.RawText
	if record != nil {
		subjectText = record.TextPrimary
	}

	if err := s.voting.RunPanel(ctx, session.Id, subjectText); err != nil {
		return err
	}

	submission.Status = entity.SubmissionVoting
	return uow.SubmissionRepository().Update(ctx, submission)
}

// ResolveSession closes a session and carries its verdict back to the
// subject: registration for approved submissions, cooldown for rejected
// revisions, and so on.
func (s *pipelineService) ResolveSession(ctx context.Context, sessionId uuid.UUID) (*dto.CloseSessionResponse, error) {
	res, err := s.voting.CloseSession(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := uow.VotingSessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NotFound(apperror.CodeSessionNotFound, "voting session not found")
	}

	switch session.SubjectType {
	case consensus.SubjectRevision:
		if _, err := s.revisions.Resolve(ctx, session.SubjectId); err != nil {
			return nil, err
		}
	default:
		if err := s.resolveSubmission(ctx, session); err != nil {
			return nil, err
		}
	}

	return res, nil
}

func (s *pipelineService) resolveSubmission(ctx context.Context, session *entity.VotingSession) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	submission, err := uow.SubmissionRepository().FindOne(ctx, specification.ByID{ID: session.SubjectId})
	if err != nil {
		return err
	}
	if submission == nil {
		return apperror.NotFound(apperror.CodeSubmissionNotFound, "submission not found")
	}
	if submission.Status != entity.SubmissionVoting {
		return nil // already resolved by a previous close
	}

	switch session.Status {
	case consensus.StatusApproved:
		submission.Status = entity.SubmissionApproved
		if err := uow.SubmissionRepository().Update(ctx, submission); err != nil {
			return err
		}
		_, err := s.placement.Register(ctx, submission.Id, nil)
		return err
	case consensus.StatusFlagged:
		// Approved on the numbers but carrying safety flags; a steward has
		// to clear it manually, so the submission stays put.
		return nil
	}

	reason := fmt.Sprintf("voting session resolved %s", session.Status)
	submission.Status = entity.SubmissionRejected
	submission.RejectionReason = &reason
	if err := uow.SubmissionRepository().Update(ctx, submission); err != nil {
		return err
	}

	s.trail.Emit(audit.Record{
		EventType:   audit.EventSubmissionRejected,
		ActorKind:   "system",
		SubjectType: "submission",
		SubjectID:   submission.Id.String(),
		Details: map[string]interface{}{
			"reason": reason,
		},
	})
	return nil
}
