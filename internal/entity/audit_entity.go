package entity

import (
	"time"

	"github.com/google/uuid"
)

type AuditEvent struct {
	Id          uuid.UUID
	EventType   string
	ActorKind   string
	ActorId     string
	SubjectType string
	SubjectId   string
	Details     map[string]interface{}
	CreatedAt   time.Time
}
