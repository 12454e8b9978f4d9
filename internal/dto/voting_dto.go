package dto

import (
	"time"

	"github.com/google/uuid"
)

type CastVoteRequest struct {
	SessionId uuid.UUID
	Choice    string `json:"choice" validate:"required,oneof=for against abstain"`
	Rationale string `json:"rationale" validate:"max=2000"`
}

type CastVoteResponse struct {
	SessionId uuid.UUID `json:"session_id"`
	Choice    string    `json:"choice"`
}

type SessionCountersResponse struct {
	HumanFor     int `json:"human_for"`
	HumanAgainst int `json:"human_against"`
	HumanAbstain int `json:"human_abstain"`
	AutoFor      int `json:"auto_for"`
	AutoAgainst  int `json:"auto_against"`
	AutoAbstain  int `json:"auto_abstain"`
}

type SessionResponse struct {
	Id                 uuid.UUID               `json:"id"`
	SubjectId          uuid.UUID               `json:"subject_id"`
	SubjectType        string                  `json:"subject_type"`
	ApprovalThreshold  float64                 `json:"approval_threshold"`
	QuorumFraction     float64                 `json:"quorum_fraction"`
	EligibleHumanCount int                     `json:"eligible_human_count"`
	Counters           SessionCountersResponse `json:"counters"`
	ApprovalRate       *float64                `json:"approval_rate,omitempty"`
	Status             string                  `json:"status"`
	StartsAt           time.Time               `json:"starts_at"`
	EndsAt             time.Time               `json:"ends_at"`
	ClosedAt           *time.Time              `json:"closed_at,omitempty"`
}

type CloseSessionResponse struct {
	Id           uuid.UUID `json:"id"`
	Status       string    `json:"status"`
	ApprovalRate float64   `json:"approval_rate"`
	QuorumMet    bool      `json:"quorum_met"`
}
