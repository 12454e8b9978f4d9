package dto

import (
	"time"

	"github.com/google/uuid"
)

type SubmitRequest struct {
	Type  string `json:"type" validate:"required,oneof=verse teaching amendment"`
	Title string `json:"title" validate:"required,max=255"`
	Text  string `json:"text" validate:"required"`
}

type SubmitResponse struct {
	Id     uuid.UUID `json:"id"`
	Status string    `json:"status"`
}

type PrincipleScoreResponse struct {
	PrincipleCode string  `json:"principle_code"`
	Weight        float64 `json:"weight"`
	Score         float64 `json:"score"`
	Rationale     string  `json:"rationale"`
	Degraded      bool    `json:"degraded,omitempty"`
}

type ComplianceResponse struct {
	CheckType      string                   `json:"check_type"`
	Overall        float64                  `json:"overall"`
	Threshold      float64                  `json:"threshold"`
	Compliant      bool                     `json:"compliant"`
	Recommendation string                   `json:"recommendation"`
	Scores         []PrincipleScoreResponse `json:"scores"`
	SafetyFlags    []string                 `json:"safety_flags,omitempty"`
	EvaluatedAt    time.Time                `json:"evaluated_at"`
}

type RefinementRecordResponse struct {
	Stage         string    `json:"stage"`
	TextPrimary   string    `json:"text_primary"`
	TextSecondary string    `json:"text_secondary,omitempty"`
	Similarity    float64   `json:"similarity"`
	ChangeSummary string    `json:"change_summary,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type SubmissionStatusResponse struct {
	Id              uuid.UUID                  `json:"id"`
	Title           string                     `json:"title"`
	Type            string                     `json:"type"`
	Status          string                     `json:"status"`
	ComplianceScore *float64                   `json:"compliance_score,omitempty"`
	RejectionReason *string                    `json:"rejection_reason,omitempty"`
	EntryRef        *string                    `json:"entry_ref,omitempty"`
	Compliance      *ComplianceResponse        `json:"compliance,omitempty"`
	Refinements     []RefinementRecordResponse `json:"refinements"`
	CreatedAt       time.Time                  `json:"created_at"`
}
