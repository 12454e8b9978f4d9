package mapper

import (
	"encoding/json"

	"communal-canon-be/internal/entity"
	"communal-canon-be/internal/model"
)

type AuditMapper struct{}

func NewAuditMapper() *AuditMapper {
	return &AuditMapper{}
}

func (m *AuditMapper) ToEntity(e *model.AuditEvent) *entity.AuditEvent {
	if e == nil {
		return nil
	}

	var details map[string]interface{}
	if len(e.Details) > 0 {
		_ = json.Unmarshal(e.Details, &details)
	}

	return &entity.AuditEvent{
		Id:          e.Id,
		EventType:   e.EventType,
		ActorKind:   e.ActorKind,
		ActorId:     e.ActorId,
		SubjectType: e.SubjectType,
		SubjectId:   e.SubjectId,
		Details:     details,
		CreatedAt:   e.CreatedAt,
	}
}

func (m *AuditMapper) ToModel(e *entity.AuditEvent) (*model.AuditEvent, error) {
	if e == nil {
		return nil, nil
	}

	var details []byte
	if e.Details != nil {
		b, err := json.Marshal(e.Details)
		if err != nil {
			return nil, err
		}
		details = b
	}

	return &model.AuditEvent{
		Id:          e.Id,
		EventType:   e.EventType,
		ActorKind:   e.ActorKind,
		ActorId:     e.ActorId,
		SubjectType: e.SubjectType,
		SubjectId:   e.SubjectId,
		Details:     details,
		CreatedAt:   e.CreatedAt,
	}, nil
}

func (m *AuditMapper) ToEntities(events []*model.AuditEvent) []*entity.AuditEvent {
	entities := make([]*entity.AuditEvent, len(events))
	for i, e := range events {
		entities[i] = m.ToEntity(e)
	}
	return entities
}
