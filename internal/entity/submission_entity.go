package entity

import (
	"time"

	"github.com/google/uuid"
)

type SubmissionStatus string

const (
	SubmissionSubmitted  SubmissionStatus = "submitted"
	SubmissionScreening  SubmissionStatus = "screening"
	SubmissionScreened   SubmissionStatus = "screened"
	SubmissionRefining   SubmissionStatus = "refining"
	SubmissionRefined    SubmissionStatus = "refined"
	SubmissionVoting     SubmissionStatus = "voting"
	SubmissionApproved   SubmissionStatus = "approved"
	SubmissionRejected   SubmissionStatus = "rejected"
	SubmissionRegistered SubmissionStatus = "registered"
)

type SubmissionType string

const (
	SubmissionTypeVerse     SubmissionType = "verse"
	SubmissionTypeTeaching  SubmissionType = "teaching"
	SubmissionTypeAmendment SubmissionType = "amendment"
)

type Submission struct {
	Id              uuid.UUID
	Title           string
	Type            SubmissionType
	RawText         string
	OwnerId         uuid.UUID
	Status          SubmissionStatus
	ComplianceScore *float64
	RejectionReason *string
	EntryRef        *string
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}
