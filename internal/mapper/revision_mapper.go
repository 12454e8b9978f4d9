package mapper

import (
	"time"

	"communal-canon-be/internal/entity"
	"communal-canon-be/internal/model"
	"communal-canon-be/pkg/revision"
)

type RevisionMapper struct{}

func NewRevisionMapper() *RevisionMapper {
	return &RevisionMapper{}
}

func (m *RevisionMapper) ProposalToEntity(p *model.RevisionProposal) *entity.RevisionProposal {
	if p == nil {
		return nil
	}

	var updatedAt *time.Time
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		updatedAt = &t
	}

	return &entity.RevisionProposal{
		Id:               p.Id,
		EntryRef:         p.EntryRef,
		ProposerId:       p.ProposerId,
		OriginalText:     p.OriginalText,
		ProposedText:     p.ProposedText,
		Rationale:        p.Rationale,
		Status:           revision.Status(p.Status),
		DiscussionEndsAt: p.DiscussionEndsAt,
		SessionId:        p.SessionId,
		RejectionCount:   p.RejectionCount,
		CooldownUntil:    p.CooldownUntil,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        updatedAt,
	}
}

func (m *RevisionMapper) ProposalToModel(p *entity.RevisionProposal) *model.RevisionProposal {
	if p == nil {
		return nil
	}

	var updatedAt time.Time
	if p.UpdatedAt != nil {
		updatedAt = *p.UpdatedAt
	}

	return &model.RevisionProposal{
		Id:               p.Id,
		EntryRef:         p.EntryRef,
		ProposerId:       p.ProposerId,
		OriginalText:     p.OriginalText,
		ProposedText:     p.ProposedText,
		Rationale:        p.Rationale,
		Status:           string(p.Status),
		DiscussionEndsAt: p.DiscussionEndsAt,
		SessionId:        p.SessionId,
		RejectionCount:   p.RejectionCount,
		CooldownUntil:    p.CooldownUntil,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        updatedAt,
	}
}

func (m *RevisionMapper) ProposalsToEntities(proposals []*model.RevisionProposal) []*entity.RevisionProposal {
	entities := make([]*entity.RevisionProposal, len(proposals))
	for i, p := range proposals {
		entities[i] = m.ProposalToEntity(p)
	}
	return entities
}

func (m *RevisionMapper) DiscussionToEntity(d *model.DiscussionEntry) *entity.DiscussionEntry {
	if d == nil {
		return nil
	}

	return &entity.DiscussionEntry{
		Id:          d.Id,
		ProposalId:  d.ProposalId,
		AuthorKind:  d.AuthorKind,
		AuthorLabel: d.AuthorLabel,
		Content:     d.Content,
		CreatedAt:   d.CreatedAt,
	}
}

func (m *RevisionMapper) DiscussionToModel(d *entity.DiscussionEntry) *model.DiscussionEntry {
	if d == nil {
		return nil
	}

	return &model.DiscussionEntry{
		Id:          d.Id,
		ProposalId:  d.ProposalId,
		AuthorKind:  d.AuthorKind,
		AuthorLabel: d.AuthorLabel,
		Content:     d.Content,
		CreatedAt:   d.CreatedAt,
	}
}

func (m *RevisionMapper) DiscussionsToEntities(entries []*model.DiscussionEntry) []*entity.DiscussionEntry {
	entities := make([]*entity.DiscussionEntry, len(entries))
	for i, d := range entries {
		entities[i] = m.DiscussionToEntity(d)
	}
	return entities
}
