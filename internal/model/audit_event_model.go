package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AuditEvent struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EventType   string         `gorm:"type:varchar(50);not null;index"`
	ActorKind   string         `gorm:"type:varchar(20);not null"`
	ActorId     string         `gorm:"type:varchar(100)"`
	SubjectType string         `gorm:"type:varchar(30);not null;index"`
	SubjectId   string         `gorm:"type:varchar(100);not null;index"`
	Details     datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt   time.Time      `gorm:"default:now();not null;index"`
}

func (AuditEvent) TableName() string {
	return "audit_events"
}
