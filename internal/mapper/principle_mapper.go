package mapper

import (
	"time"

	"communal-canon-be/internal/entity"
	"communal-canon-be/internal/model"
)

type PrincipleMapper struct{}

func NewPrincipleMapper() *PrincipleMapper {
	return &PrincipleMapper{}
}

func (m *PrincipleMapper) ToEntity(p *model.Principle) *entity.Principle {
	if p == nil {
		return nil
	}

	var updatedAt *time.Time
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		updatedAt = &t
	}

	return &entity.Principle{
		Id:          p.Id,
		Code:        p.Code,
		Name:        p.Name,
		Description: p.Description,
		Weight:      p.Weight,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}

func (m *PrincipleMapper) ToModel(p *entity.Principle) *model.Principle {
	if p == nil {
		return nil
	}

	var updatedAt time.Time
	if p.UpdatedAt != nil {
		updatedAt = *p.UpdatedAt
	}

	return &model.Principle{
		Id:          p.Id,
		Code:        p.Code,
		Name:        p.Name,
		Description: p.Description,
		Weight:      p.Weight,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}

func (m *PrincipleMapper) ToEntities(principles []*model.Principle) []*entity.Principle {
	entities := make([]*entity.Principle, len(principles))
	for i, p := range principles {
		entities[i] = m.ToEntity(p)
	}
	return entities
}
