package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies an error for transport mapping and retry decisions.
type Kind int

const (
	KindValidation Kind = iota // caller sent something unacceptable
	KindNotFound
	KindConflict // state disagrees with the request (duplicates, collisions)
	KindExternal // an upstream service failed
	KindFatal    // a precondition of the system itself is broken
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindExternal:
		return "external"
	case KindFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Well-known error codes surfaced to clients and matched by callers.
const (
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeAlreadyVoted      = "ALREADY_VOTED"
	CodeRefCollision      = "REF_COLLISION"
	CodeCooldownActive    = "COOLDOWN_ACTIVE"
	CodeNoPrinciples      = "NO_ACTIVE_PRINCIPLES"
	CodeRewriteFailed     = "REWRITE_FAILED"
	CodeEvaluatorFailed   = "EVALUATOR_FAILED"
	CodeSessionClosed     = "SESSION_CLOSED"
	CodeSessionExists     = "SESSION_EXISTS"
	CodeProposalExists    = "PROPOSAL_EXISTS"
	CodeDiscussionOpen    = "DISCUSSION_OPEN"
	CodeNotApproved       = "NOT_APPROVED"

	CodeSubmissionNotFound = "SUBMISSION_NOT_FOUND"
	CodeSessionNotFound    = "SESSION_NOT_FOUND"
	CodeProposalNotFound   = "PROPOSAL_NOT_FOUND"
	CodeEntryNotFound      = "ENTRY_NOT_FOUND"
)

type AppError struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s [%s]: %s: %v", e.Kind, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %s", e.Kind, e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func Validation(code, message string) *AppError {
	return &AppError{Kind: KindValidation, Code: code, Message: message}
}

func NotFound(code, message string) *AppError {
	return &AppError{Kind: KindNotFound, Code: code, Message: message}
}

func Conflict(code, message string) *AppError {
	return &AppError{Kind: KindConflict, Code: code, Message: message}
}

func External(code, message string, err error) *AppError {
	return &AppError{Kind: KindExternal, Code: code, Message: message, Err: err}
}

func Fatal(code, message string) *AppError {
	return &AppError{Kind: KindFatal, Code: code, Message: message}
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	var ae *AppError
	if !errors.As(err, &ae) {
		return false
	}
	return ae.Kind == kind
}

// CodeOf extracts the code of an AppError, or "" for foreign errors.
func CodeOf(err error) string {
	var ae *AppError
	if !errors.As(err, &ae) {
		return ""
	}
	return ae.Code
}
