package entity

import (
	"time"

	"communal-canon-be/pkg/consensus"

	"github.com/google/uuid"
)

type VotingSession struct {
	Id                 uuid.UUID
	SubjectId          uuid.UUID
	SubjectType        consensus.SubjectType
	ApprovalThreshold  float64
	QuorumFraction     float64
	EligibleHumanCount int
	Counters           consensus.Counters
	ApprovalRate       *float64
	Status             consensus.SessionStatus
	StartsAt           time.Time
	EndsAt             time.Time
	ClosedAt           *time.Time
	CreatedAt          time.Time
	UpdatedAt          *time.Time
}

type Vote struct {
	Id        uuid.UUID
	SessionId uuid.UUID
	VoterKind consensus.VoterKind
	VoterId   string
	Choice    consensus.VoteChoice
	Rationale string
	CreatedAt time.Time
}

type AutomatedVoter struct {
	Id          uuid.UUID
	SessionId   uuid.UUID
	Category    consensus.PanelCategory
	Perspective string
	Evaluation  string
	Choice      consensus.VoteChoice
	CreatedAt   time.Time
}
