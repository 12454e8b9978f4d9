package service

import (
	"context"
	"encoding/json"
	"time"

	"communal-canon-be/internal/dto"
	"communal-canon-be/internal/entity"
	"communal-canon-be/internal/pkg/apperror"
	"communal-canon-be/internal/repository/specification"
	"communal-canon-be/internal/repository/unitofwork"
	"communal-canon-be/pkg/audit"

	"github.com/google/uuid"
)

type ISubmissionService interface {
	Submit(ctx context.Context, userId uuid.UUID, req *dto.SubmitRequest) (*dto.SubmitResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.SubmissionStatusResponse, error)
	Rescreen(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.SubmitResponse, error)
}

type submissionService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	trail            *audit.Trail
}

func NewSubmissionService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	trail *audit.Trail,
) ISubmissionService {
	return &submissionService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		trail:            trail,
	}
}

func (s *submissionService) Submit(ctx context.Context, userId uuid.UUID, req *dto.SubmitRequest) (*dto.SubmitResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	submission := entity.Submission{
		Id:        uuid.New(),
		Title:     req.Title,
		Type:      entity.SubmissionType(req.Type),
		RawText:   req.Text,
		OwnerId:   userId,
		Status:    entity.SubmissionSubmitted,
		CreatedAt: time.Now(),
	}

	if err := uow.SubmissionRepository().Create(ctx, &submission); err != nil {
		return nil, err
	}

	s.trail.Emit(audit.Record{
		EventType:   audit.EventSubmissionCreated,
		ActorKind:   "human",
		ActorID:     userId.String(),
		SubjectType: "submission",
		SubjectID:   submission.Id.String(),
		Details: map[string]interface{}{
			"type":  req.Type,
			"title": req.Title,
		},
	})

	if err := s.publishPipeline(ctx, submission.Id); err != nil {
		return nil, err
	}

	return &dto.SubmitResponse{
		Id:     submission.Id,
		Status: string(submission.Status),
	}, nil
}

func (s *submissionService) publishPipeline(ctx context.Context, submissionId uuid.UUID) error {
	payload, err := json.Marshal(dto.GovernSubmissionMessage{SubmissionId: submissionId})
	if err != nil {
		return err
	}
	return s.publisherService.Publish(ctx, payload)
}

func (s *submissionService) Show(ctx context.Context, id uuid.UUID) (*dto.SubmissionStatusResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	submission, err := uow.SubmissionRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if submission == nil {
		return nil, apperror.NotFound(apperror.CodeSubmissionNotFound, "submission not found")
	}

	res := &dto.SubmissionStatusResponse{
		Id:              submission.Id,
		Title:           submission.Title,
		Type:            string(submission.Type),
		Status:          string(submission.Status),
		ComplianceScore: submission.ComplianceScore,
		RejectionReason: submission.RejectionReason,
		EntryRef:        submission.EntryRef,
		CreatedAt:       submission.CreatedAt,
	}

	evaluation, err := uow.ComplianceEvaluationRepository().FindOne(ctx,
		specification.BySubmission{SubmissionId: id},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	if evaluation != nil {
		res.Compliance = complianceToResponse(evaluation)
	}

	records, err := uow.RefinementRecordRepository().FindAll(ctx,
		specification.BySubmission{SubmissionId: id},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}
	res.Refinements = make([]dto.RefinementRecordResponse, len(records))
	for i, r := range records {
		res.Refinements[i] = dto.RefinementRecordResponse{
			Stage:         string(r.Stage),
			TextPrimary:   r.TextPrimary,
			TextSecondary: r.TextSecondary,
			Similarity:    r.Similarity,
			ChangeSummary: r.ChangeSummary,
			CreatedAt:     r.CreatedAt,
		}
	}

	return res, nil
}

// Rescreen requeues a rejected submission for a fresh screening run.
func (s *submissionService) Rescreen(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.SubmitResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	submission, err := uow.SubmissionRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if submission == nil {
		return nil, apperror.NotFound(apperror.CodeSubmissionNotFound, "submission not found")
	}
	if submission.OwnerId != userId {
		return nil, apperror.NotFound(apperror.CodeSubmissionNotFound, "submission not found")
	}
	if submission.Status != entity.SubmissionRejected {
		return nil, apperror.Validation(apperror.CodeInvalidTransition,
			"only rejected submissions can be rescreened")
	}

	submission.Status = entity.SubmissionSubmitted
	submission.RejectionReason = nil
	if err := uow.SubmissionRepository().Update(ctx, submission); err != nil {
		return nil, err
	}

	if err := s.publishPipeline(ctx, submission.Id); err != nil {
		return nil, err
	}

	return &dto.SubmitResponse{
		Id:     submission.Id,
		Status: string(submission.Status),
	}, nil
}

func complianceToResponse(e *entity.ComplianceEvaluation) *dto.ComplianceResponse {
	scores := make([]dto.PrincipleScoreResponse, len(e.Scores))
	for i, s := range e.Scores {
		scores[i] = dto.PrincipleScoreResponse{
			PrincipleCode: s.Code,
			Weight:        s.Weight,
			Score:         s.Score,
			Rationale:     s.Rationale,
			Degraded:      s.Degraded,
		}
	}
	return &dto.ComplianceResponse{
		CheckType:      string(e.CheckType),
		Overall:        e.Overall,
		Threshold:      e.Threshold,
		Compliant:      e.Compliant,
		Recommendation: e.Recommendation,
		Scores:         scores,
		SafetyFlags:    e.SafetyFlags,
		EvaluatedAt:    e.CreatedAt,
	}
}
