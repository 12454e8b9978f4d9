package mapper

import (
	"time"

	"communal-canon-be/internal/entity"
	"communal-canon-be/internal/model"
)

type EntryMapper struct{}

func NewEntryMapper() *EntryMapper {
	return &EntryMapper{}
}

func (m *EntryMapper) ToEntity(e *model.PublishedEntry) *entity.PublishedEntry {
	if e == nil {
		return nil
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	return &entity.PublishedEntry{
		Ref:           e.Ref,
		Chapter:       e.Chapter,
		Verse:         e.Verse,
		TextPrimary:   e.TextPrimary,
		TextSecondary: e.TextSecondary,
		Theme:         e.Theme,
		Version:       e.Version,
		SubmissionId:  e.SubmissionId,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     updatedAt,
	}
}

func (m *EntryMapper) ToModel(e *entity.PublishedEntry) *model.PublishedEntry {
	if e == nil {
		return nil
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	return &model.PublishedEntry{
		Ref:           e.Ref,
		Chapter:       e.Chapter,
		Verse:         e.Verse,
		TextPrimary:   e.TextPrimary,
		TextSecondary: e.TextSecondary,
		Theme:         e.Theme,
		Version:       e.Version,
		SubmissionId:  e.SubmissionId,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     updatedAt,
	}
}

func (m *EntryMapper) ToEntities(entries []*model.PublishedEntry) []*entity.PublishedEntry {
	entities := make([]*entity.PublishedEntry, len(entries))
	for i, e := range entries {
		entities[i] = m.ToEntity(e)
	}
	return entities
}

func (m *EntryMapper) VersionToEntity(v *model.EntryVersion) *entity.EntryVersion {
	if v == nil {
		return nil
	}

	return &entity.EntryVersion{
		Id:            v.Id,
		EntryRef:      v.EntryRef,
		Version:       v.Version,
		TextPrimary:   v.TextPrimary,
		TextSecondary: v.TextSecondary,
		ChangeNote:    v.ChangeNote,
		CreatedAt:     v.CreatedAt,
	}
}

func (m *EntryMapper) VersionToModel(v *entity.EntryVersion) *model.EntryVersion {
	if v == nil {
		return nil
	}

	return &model.EntryVersion{
		Id:            v.Id,
		EntryRef:      v.EntryRef,
		Version:       v.Version,
		TextPrimary:   v.TextPrimary,
		TextSecondary: v.TextSecondary,
		ChangeNote:    v.ChangeNote,
		CreatedAt:     v.CreatedAt,
	}
}

func (m *EntryMapper) VersionsToEntities(versions []*model.EntryVersion) []*entity.EntryVersion {
	entities := make([]*entity.EntryVersion, len(versions))
	for i, v := range versions {
		entities[i] = m.VersionToEntity(v)
	}
	return entities
}
