package model

import (
	"time"

	"github.com/google/uuid"
)

type EntryVersion struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EntryRef      string    `gorm:"type:varchar(20);not null;index"`
	Version       int       `gorm:"not null"`
	TextPrimary   string    `gorm:"type:text;not null"`
	TextSecondary string    `gorm:"type:text"`
	ChangeNote    string    `gorm:"type:text"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

func (EntryVersion) TableName() string {
	return "entry_versions"
}
