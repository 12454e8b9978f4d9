package model

import (
	"time"

	"github.com/google/uuid"
)

type RevisionProposal struct {
	Id               uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EntryRef         string     `gorm:"type:varchar(20);not null;index"`
	ProposerId       uuid.UUID  `gorm:"type:uuid;not null;index"`
	OriginalText     string     `gorm:"type:text;not null"`
	ProposedText     string     `gorm:"type:text;not null"`
	Rationale        string     `gorm:"type:text"`
	Status           string     `gorm:"type:varchar(20);not null;index;default:'proposed'"`
	DiscussionEndsAt *time.Time
	SessionId        *uuid.UUID `gorm:"type:uuid"`
	RejectionCount   int        `gorm:"not null;default:0"`
	CooldownUntil    *time.Time
	CreatedAt        time.Time  `gorm:"autoCreateTime"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime"`
}

func (RevisionProposal) TableName() string {
	return "revision_proposals"
}
