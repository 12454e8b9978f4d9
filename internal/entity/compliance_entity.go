package entity

import (
	"time"

	"communal-canon-be/pkg/compliance"

	"github.com/google/uuid"
)

type ComplianceEvaluation struct {
	Id             uuid.UUID
	SubmissionId   *uuid.UUID
	ProposalId     *uuid.UUID
	CheckType      compliance.CheckType
	Overall        float64
	Threshold      float64
	Compliant      bool
	Recommendation string
	Scores         []compliance.PrincipleScore
	SafetyFlags    []string
	CreatedAt      time.Time
}
