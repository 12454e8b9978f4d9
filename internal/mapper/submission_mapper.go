package mapper

import (
	"time"

	"communal-canon-be/internal/entity"
	"communal-canon-be/internal/model"
)

type SubmissionMapper struct{}

func NewSubmissionMapper() *SubmissionMapper {
	return &SubmissionMapper{}
}

func (m *SubmissionMapper) ToEntity(s *model.Submission) *entity.Submission {
	if s == nil {
		return nil
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.Submission{
		Id:              s.Id,
		Title:           s.Title,
		Type:            entity.SubmissionType(s.Type),
		RawText:         s.RawText,
		OwnerId:         s.OwnerId,
		Status:          entity.SubmissionStatus(s.Status),
		ComplianceScore: s.ComplianceScore,
		RejectionReason: s.RejectionReason,
		EntryRef:        s.EntryRef,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       updatedAt,
	}
}

func (m *SubmissionMapper) ToModel(s *entity.Submission) *model.Submission {
	if s == nil {
		return nil
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.Submission{
		Id:              s.Id,
		Title:           s.Title,
		Type:            string(s.Type),
		RawText:         s.RawText,
		OwnerId:         s.OwnerId,
		Status:          string(s.Status),
		ComplianceScore: s.ComplianceScore,
		RejectionReason: s.RejectionReason,
		EntryRef:        s.EntryRef,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       updatedAt,
	}
}

func (m *SubmissionMapper) ToEntities(submissions []*model.Submission) []*entity.Submission {
	entities := make([]*entity.Submission, len(submissions))
	for i, s := range submissions {
		entities[i] = m.ToEntity(s)
	}
	return entities
}
