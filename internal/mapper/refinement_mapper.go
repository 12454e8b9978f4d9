package mapper

import (
	"communal-canon-be/internal/entity"
	"communal-canon-be/internal/model"
	"communal-canon-be/pkg/refinement"
)

type RefinementMapper struct{}

func NewRefinementMapper() *RefinementMapper {
	return &RefinementMapper{}
}

func (m *RefinementMapper) ToEntity(r *model.RefinementRecord) *entity.RefinementRecord {
	if r == nil {
		return nil
	}

	return &entity.RefinementRecord{
		Id:            r.Id,
		SubmissionId:  r.SubmissionId,
		Stage:         refinement.Stage(r.Stage),
		TextPrimary:   r.TextPrimary,
		TextSecondary: r.TextSecondary,
		Similarity:    r.Similarity,
		ChangeSummary: r.ChangeSummary,
		CreatedAt:     r.CreatedAt,
	}
}

func (m *RefinementMapper) ToModel(r *entity.RefinementRecord) *model.RefinementRecord {
	if r == nil {
		return nil
	}

	return &model.RefinementRecord{
		Id:            r.Id,
		SubmissionId:  r.SubmissionId,
		Stage:         string(r.Stage),
		TextPrimary:   r.TextPrimary,
		TextSecondary: r.TextSecondary,
		Similarity:    r.Similarity,
		ChangeSummary: r.ChangeSummary,
		CreatedAt:     r.CreatedAt,
	}
}

func (m *RefinementMapper) ToEntities(records []*model.RefinementRecord) []*entity.RefinementRecord {
	entities := make([]*entity.RefinementRecord, len(records))
	for i, r := range records {
		entities[i] = m.ToEntity(r)
	}
	return entities
}
