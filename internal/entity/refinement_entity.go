package entity

import (
	"time"

	"communal-canon-be/pkg/refinement"

	"github.com/google/uuid"
)

// RefinementRecord rows are append-only: one row per completed stage advance.
type RefinementRecord struct {
	Id            uuid.UUID
	SubmissionId  uuid.UUID
	Stage         refinement.Stage
	TextPrimary   string
	TextSecondary string
	Similarity    float64
	ChangeSummary string
	CreatedAt     time.Time
}
