package model

import (
	"time"

	"github.com/google/uuid"
)

type AutomatedVoter struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId   uuid.UUID `gorm:"type:uuid;not null;index"`
	Category    string    `gorm:"type:varchar(20);not null"`
	Perspective string    `gorm:"type:varchar(100);not null"`
	Evaluation  string    `gorm:"type:text"`
	Choice      string    `gorm:"type:varchar(10);not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (AutomatedVoter) TableName() string {
	return "automated_voters"
}
