package model

import (
	"time"

	"github.com/google/uuid"
)

type RefinementRecord struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SubmissionId  uuid.UUID `gorm:"type:uuid;not null;index"`
	Stage         string    `gorm:"type:varchar(20);not null"`
	TextPrimary   string    `gorm:"type:text;not null"`
	TextSecondary string    `gorm:"type:text"`
	Similarity    float64   `gorm:"type:double precision"`
	ChangeSummary string    `gorm:"type:text"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

func (RefinementRecord) TableName() string {
	return "refinement_records"
}
