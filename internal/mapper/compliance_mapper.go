package mapper

import (
	"encoding/json"

	"communal-canon-be/internal/entity"
	"communal-canon-be/internal/model"
	"communal-canon-be/pkg/compliance"
)

type ComplianceMapper struct{}

func NewComplianceMapper() *ComplianceMapper {
	return &ComplianceMapper{}
}

func (m *ComplianceMapper) ToEntity(e *model.ComplianceEvaluation) *entity.ComplianceEvaluation {
	if e == nil {
		return nil
	}

	var scores []compliance.PrincipleScore
	if len(e.Details) > 0 {
		_ = json.Unmarshal(e.Details, &scores)
	}

	var flags []string
	if len(e.SafetyFlags) > 0 {
		_ = json.Unmarshal(e.SafetyFlags, &flags)
	}

	return &entity.ComplianceEvaluation{
		Id:             e.Id,
		SubmissionId:   e.SubmissionId,
		ProposalId:     e.ProposalId,
		CheckType:      compliance.CheckType(e.CheckType),
		Overall:        e.Overall,
		Threshold:      e.Threshold,
		Compliant:      e.Compliant,
		Recommendation: e.Recommendation,
		Scores:         scores,
		SafetyFlags:    flags,
		CreatedAt:      e.CreatedAt,
	}
}

func (m *ComplianceMapper) ToModel(e *entity.ComplianceEvaluation) (*model.ComplianceEvaluation, error) {
	if e == nil {
		return nil, nil
	}

	details, err := json.Marshal(e.Scores)
	if err != nil {
		return nil, err
	}

	flags, err := json.Marshal(e.SafetyFlags)
	if err != nil {
		return nil, err
	}

	return &model.ComplianceEvaluation{
		Id:             e.Id,
		SubmissionId:   e.SubmissionId,
		ProposalId:     e.ProposalId,
		CheckType:      string(e.CheckType),
		Overall:        e.Overall,
		Threshold:      e.Threshold,
		Compliant:      e.Compliant,
		Recommendation: e.Recommendation,
		Details:        details,
		SafetyFlags:    flags,
		CreatedAt:      e.CreatedAt,
	}, nil
}

func (m *ComplianceMapper) ToEntities(evals []*model.ComplianceEvaluation) []*entity.ComplianceEvaluation {
	entities := make([]*entity.ComplianceEvaluation, len(evals))
	for i, e := range evals {
		entities[i] = m.ToEntity(e)
	}
	return entities
}
