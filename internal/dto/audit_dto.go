package dto

import (
	"time"

	"github.com/google/uuid"
)

type AuditTrailRequest struct {
	EventType   string `query:"event_type"`
	SubjectType string `query:"subject_type"`
	SubjectId   string `query:"subject_id"`
	Since       string `query:"since"` // RFC3339
	Page        int    `query:"page"`
	PerPage     int    `query:"per_page"`
}

type AuditEventResponse struct {
	Id          uuid.UUID              `json:"id"`
	EventType   string                 `json:"event_type"`
	ActorKind   string                 `json:"actor_kind"`
	ActorId     string                 `json:"actor_id,omitempty"`
	SubjectType string                 `json:"subject_type"`
	SubjectId   string                 `json:"subject_id"`
	Details     map[string]interface{} `json:"details,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
}

type AuditTrailResponse struct {
	Events  []AuditEventResponse `json:"events"`
	Total   int64                `json:"total"`
	Page    int                  `json:"page"`
	PerPage int                  `json:"per_page"`
}
