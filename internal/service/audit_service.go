package service

import (
	"context"
	"time"

	"communal-canon-be/internal/dto"
	"communal-canon-be/internal/entity"
	"communal-canon-be/internal/pkg/apperror"
	"communal-canon-be/internal/repository/contract"
	"communal-canon-be/internal/repository/specification"
	"communal-canon-be/internal/repository/unitofwork"
	"communal-canon-be/pkg/audit"

	"github.com/google/uuid"
)

type IAuditService interface {
	GetAuditTrail(ctx context.Context, req *dto.AuditTrailRequest) (*dto.AuditTrailResponse, error)
}

type auditService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewAuditService(uowFactory unitofwork.RepositoryFactory) IAuditService {
	return &auditService{uowFactory: uowFactory}
}

func (s *auditService) GetAuditTrail(ctx context.Context, req *dto.AuditTrailRequest) (*dto.AuditTrailResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.AuditEventRepository()

	page := req.Page
	if page < 1 {
		page = 1
	}
	perPage := req.PerPage
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	filters := []specification.Specification{}
	if req.EventType != "" {
		filters = append(filters, specification.Filter("event_type", req.EventType))
	}
	if req.SubjectType != "" {
		filters = append(filters, specification.Filter("subject_type", req.SubjectType))
	}
	if req.SubjectId != "" {
		filters = append(filters, specification.Filter("subject_id", req.SubjectId))
	}
	if req.Since != "" {
		since, err := time.Parse(time.RFC3339, req.Since)
		if err != nil {
			return nil, apperror.Validation("INVALID_REQUEST", "since must be an RFC3339 timestamp")
		}
		filters = append(filters, specification.CreatedSince{T: since})
	}

	total, err := repo.Count(ctx, filters...)
	if err != nil {
		return nil, err
	}

	listSpecs := append(filters,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: perPage, Offset: (page - 1) * perPage},
	)
	events, err := repo.FindAll(ctx, listSpecs...)
	if err != nil {
		return nil, err
	}

	res := &dto.AuditTrailResponse{
		Events:  make([]dto.AuditEventResponse, 0, len(events)),
		Total:   total,
		Page:    page,
		PerPage: perPage,
	}
	for _, ev := range events {
		res.Events = append(res.Events, dto.AuditEventResponse{
			Id:          ev.Id,
			EventType:   ev.EventType,
			ActorKind:   ev.ActorKind,
			ActorId:     ev.ActorId,
			SubjectType: ev.SubjectType,
			SubjectId:   ev.SubjectId,
			Details:     ev.Details,
			CreatedAt:   ev.CreatedAt,
		})
	}
	return res, nil
}

// AuditRepositorySink adapts the audit event repository to the trail's
// Sink so records land in Postgres.
type AuditRepositorySink struct {
	repo contract.AuditEventRepository
}

func NewAuditRepositorySink(repo contract.AuditEventRepository) *AuditRepositorySink {
	return &AuditRepositorySink{repo: repo}
}

func (s *AuditRepositorySink) Persist(ctx context.Context, rec audit.Record) error {
	event := entity.AuditEvent{
		Id:          uuid.New(),
		EventType:   rec.EventType,
		ActorKind:   rec.ActorKind,
		ActorId:     rec.ActorID,
		SubjectType: rec.SubjectType,
		SubjectId:   rec.SubjectID,
		Details:     rec.Details,
		CreatedAt:   rec.OccurredAt,
	}
	return s.repo.Create(ctx, &event)
}
