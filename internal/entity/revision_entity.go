package entity

import (
	"time"

	"communal-canon-be/pkg/revision"

	"github.com/google/uuid"
)

type RevisionProposal struct {
	Id               uuid.UUID
	EntryRef         string
	ProposerId       uuid.UUID
	OriginalText     string
	ProposedText     string
	Rationale        string
	Status           revision.Status
	DiscussionEndsAt *time.Time
	SessionId        *uuid.UUID
	RejectionCount   int
	CooldownUntil    *time.Time
	CreatedAt        time.Time
	UpdatedAt        *time.Time
}

type DiscussionEntry struct {
	Id          uuid.UUID
	ProposalId  uuid.UUID
	AuthorKind  string // "human", "panel", "synthesis"
	AuthorLabel string
	Content     string
	CreatedAt   time.Time
}
