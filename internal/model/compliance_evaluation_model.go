package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ComplianceEvaluation struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SubmissionId   *uuid.UUID     `gorm:"type:uuid;index"`
	ProposalId     *uuid.UUID     `gorm:"type:uuid;index"`
	CheckType      string         `gorm:"type:varchar(20);not null"`
	Overall        float64        `gorm:"type:double precision;not null"`
	Threshold      float64        `gorm:"type:double precision;not null"`
	Compliant      bool           `gorm:"not null"`
	Recommendation string         `gorm:"type:text"`
	Details        datatypes.JSON `gorm:"type:jsonb"`
	SafetyFlags    datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
}

func (ComplianceEvaluation) TableName() string {
	return "compliance_evaluations"
}
