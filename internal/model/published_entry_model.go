package model

import (
	"time"

	"github.com/google/uuid"
)

type PublishedEntry struct {
	Ref           string    `gorm:"type:varchar(20);primaryKey"`
	Chapter       int       `gorm:"not null;index"`
	Verse         int       `gorm:"not null"`
	TextPrimary   string    `gorm:"type:text;not null"`
	TextSecondary string    `gorm:"type:text"`
	Theme         string    `gorm:"type:varchar(255)"`
	Version       int       `gorm:"not null;default:1"`
	SubmissionId  uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (PublishedEntry) TableName() string {
	return "published_entries"
}
