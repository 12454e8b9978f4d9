package model

import (
	"time"

	"github.com/google/uuid"
)

type DiscussionEntry struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProposalId  uuid.UUID `gorm:"type:uuid;not null;index"`
	AuthorKind  string    `gorm:"type:varchar(20);not null"`
	AuthorLabel string    `gorm:"type:varchar(100)"`
	Content     string    `gorm:"type:text;not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (DiscussionEntry) TableName() string {
	return "discussion_entries"
}
