package model

import (
	"time"

	"github.com/google/uuid"
)

type VotingSession struct {
	Id                 uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SubjectId          uuid.UUID `gorm:"type:uuid;not null;index"`
	SubjectType        string    `gorm:"type:varchar(30);not null"`
	ApprovalThreshold  float64   `gorm:"type:double precision;not null"`
	QuorumFraction     float64   `gorm:"type:double precision;not null"`
	EligibleHumanCount int       `gorm:"not null"`
	HumanFor           int       `gorm:"not null;default:0"`
	HumanAgainst       int       `gorm:"not null;default:0"`
	HumanAbstain       int       `gorm:"not null;default:0"`
	AutoFor            int       `gorm:"not null;default:0"`
	AutoAgainst        int       `gorm:"not null;default:0"`
	AutoAbstain        int       `gorm:"not null;default:0"`
	ApprovalRate       *float64  `gorm:"type:double precision"`
	Status             string    `gorm:"type:varchar(20);not null;index;default:'pending'"`
	StartsAt           time.Time `gorm:"not null"`
	EndsAt             time.Time `gorm:"not null"`
	ClosedAt           *time.Time
	CreatedAt          time.Time `gorm:"autoCreateTime"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime"`
}

func (VotingSession) TableName() string {
	return "voting_sessions"
}
