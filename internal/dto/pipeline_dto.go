package dto

import "github.com/google/uuid"

// GovernSubmissionMessage is the pipeline trigger published on submit.
type GovernSubmissionMessage struct {
	SubmissionId uuid.UUID `json:"submission_id"`
}
