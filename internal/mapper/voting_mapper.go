package mapper

import (
	"time"

	"communal-canon-be/internal/entity"
	"communal-canon-be/internal/model"
	"communal-canon-be/pkg/consensus"
)

type VotingMapper struct{}

func NewVotingMapper() *VotingMapper {
	return &VotingMapper{}
}

func (m *VotingMapper) SessionToEntity(s *model.VotingSession) *entity.VotingSession {
	if s == nil {
		return nil
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.VotingSession{
		Id:                 s.Id,
		SubjectId:          s.SubjectId,
		SubjectType:        consensus.SubjectType(s.SubjectType),
		ApprovalThreshold:  s.ApprovalThreshold,
		QuorumFraction:     s.QuorumFraction,
		EligibleHumanCount: s.EligibleHumanCount,
		Counters: consensus.Counters{
			HumanFor:     s.HumanFor,
			HumanAgainst: s.HumanAgainst,
			HumanAbstain: s.HumanAbstain,
			AutoFor:      s.AutoFor,
			AutoAgainst:  s.AutoAgainst,
			AutoAbstain:  s.AutoAbstain,
		},
		ApprovalRate: s.ApprovalRate,
		Status:       consensus.SessionStatus(s.Status),
		StartsAt:     s.StartsAt,
		EndsAt:       s.EndsAt,
		ClosedAt:     s.ClosedAt,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}

func (m *VotingMapper) SessionToModel(s *entity.VotingSession) *model.VotingSession {
	if s == nil {
		return nil
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.VotingSession{
		Id:                 s.Id,
		SubjectId:          s.SubjectId,
		SubjectType:        string(s.SubjectType),
		ApprovalThreshold:  s.ApprovalThreshold,
		QuorumFraction:     s.QuorumFraction,
		EligibleHumanCount: s.EligibleHumanCount,
		HumanFor:           s.Counters.HumanFor,
		HumanAgainst:       s.Counters.HumanAgainst,
		HumanAbstain:       s.Counters.HumanAbstain,
		AutoFor:            s.Counters.AutoFor,
		AutoAgainst:        s.Counters.AutoAgainst,
		AutoAbstain:        s.Counters.AutoAbstain,
		ApprovalRate:       s.ApprovalRate,
		Status:             string(s.Status),
		StartsAt:           s.StartsAt,
		EndsAt:             s.EndsAt,
		ClosedAt:           s.ClosedAt,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          updatedAt,
	}
}

func (m *VotingMapper) SessionsToEntities(sessions []*model.VotingSession) []*entity.VotingSession {
	entities := make([]*entity.VotingSession, len(sessions))
	for i, s := range sessions {
		entities[i] = m.SessionToEntity(s)
	}
	return entities
}

func (m *VotingMapper) VoteToEntity(v *model.Vote) *entity.Vote {
	if v == nil {
		return nil
	}

	return &entity.Vote{
		Id:        v.Id,
		SessionId: v.SessionId,
		VoterKind: consensus.VoterKind(v.VoterKind),
		VoterId:   v.VoterId,
		Choice:    consensus.VoteChoice(v.Choice),
		Rationale: v.Rationale,
		CreatedAt: v.CreatedAt,
	}
}

func (m *VotingMapper) VoteToModel(v *entity.Vote) *model.Vote {
	if v == nil {
		return nil
	}

	return &model.Vote{
		Id:        v.Id,
		SessionId: v.SessionId,
		VoterKind: string(v.VoterKind),
		VoterId:   v.VoterId,
		Choice:    string(v.Choice),
		Rationale: v.Rationale,
		CreatedAt: v.CreatedAt,
	}
}

func (m *VotingMapper) VoterToEntity(v *model.AutomatedVoter) *entity.AutomatedVoter {
	if v == nil {
		return nil
	}

	return &entity.AutomatedVoter{
		Id:          v.Id,
		SessionId:   v.SessionId,
		Category:    consensus.PanelCategory(v.Category),
		Perspective: v.Perspective,
		Evaluation:  v.Evaluation,
		Choice:      consensus.VoteChoice(v.Choice),
		CreatedAt:   v.CreatedAt,
	}
}

func (m *VotingMapper) VoterToModel(v *entity.AutomatedVoter) *model.AutomatedVoter {
	if v == nil {
		return nil
	}

	return &model.AutomatedVoter{
		Id:          v.Id,
		SessionId:   v.SessionId,
		Category:    string(v.Category),
		Perspective: v.Perspective,
		Evaluation:  v.Evaluation,
		Choice:      string(v.Choice),
		CreatedAt:   v.CreatedAt,
	}
}

func (m *VotingMapper) VotersToEntities(voters []*model.AutomatedVoter) []*entity.AutomatedVoter {
	entities := make([]*entity.AutomatedVoter, len(voters))
	for i, v := range voters {
		entities[i] = m.VoterToEntity(v)
	}
	return entities
}
