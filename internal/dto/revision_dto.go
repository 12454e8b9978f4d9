package dto

import (
	"time"

	"github.com/google/uuid"
)

type ProposeRevisionRequest struct {
	EntryRef     string `json:"entry_ref" validate:"required"`
	ProposedText string `json:"proposed_text" validate:"required"`
	Rationale    string `json:"rationale" validate:"required,max=5000"`
}

type ProposeRevisionResponse struct {
	Id     uuid.UUID `json:"id"`
	Status string    `json:"status"`
}

type RecordDiscussionRequest struct {
	Content string `json:"content" validate:"required,max=5000"`
}

type DiscussionEntryResponse struct {
	AuthorKind  string    `json:"author_kind"`
	AuthorLabel string    `json:"author_label,omitempty"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
}

type RevisionProposalResponse struct {
	Id               uuid.UUID                 `json:"id"`
	EntryRef         string                    `json:"entry_ref"`
	Status           string                    `json:"status"`
	ProposedText     string                    `json:"proposed_text"`
	Rationale        string                    `json:"rationale"`
	DiscussionEndsAt *time.Time                `json:"discussion_ends_at,omitempty"`
	SessionId        *uuid.UUID                `json:"session_id,omitempty"`
	RejectionCount   int                       `json:"rejection_count"`
	CooldownUntil    *time.Time                `json:"cooldown_until,omitempty"`
	Discussion       []DiscussionEntryResponse `json:"discussion,omitempty"`
	CreatedAt        time.Time                 `json:"created_at"`
}

type WithdrawRevisionResponse struct {
	Id     uuid.UUID `json:"id"`
	Status string    `json:"status"`
}
