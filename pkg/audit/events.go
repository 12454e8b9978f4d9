package audit

import "time"

// Event type codes, one per pipeline state transition.
const (
	EventSubmissionCreated      = "SUBMISSION_CREATED"
	EventSubmissionScreened     = "SUBMISSION_SCREENED"
	EventSubmissionRejected     = "SUBMISSION_REJECTED"
	EventRefinementAdvanced     = "REFINEMENT_ADVANCED"
	EventRefinementDriftWarning = "REFINEMENT_DRIFT_WARNING"
	EventSessionCreated         = "VOTING_SESSION_CREATED"
	EventPanelGenerated         = "PANEL_GENERATED"
	EventVoteCast               = "VOTE_CAST"
	EventSessionTallied         = "VOTING_SESSION_TALLIED"
	EventSessionClosed          = "VOTING_SESSION_CLOSED"
	EventRevisionProposed       = "REVISION_PROPOSED"
	EventRevisionScreened       = "REVISION_SCREENED"
	EventRevisionDiscussion     = "REVISION_DISCUSSION_RECORDED"
	EventRevisionSynthesis      = "REVISION_SYNTHESIS_RECORDED"
	EventRevisionVoteStarted    = "REVISION_VOTE_STARTED"
	EventRevisionApplied        = "REVISION_APPLIED"
	EventRevisionRejected       = "REVISION_REJECTED"
	EventRevisionWithdrawn      = "REVISION_WITHDRAWN"
	EventEntryRegistered        = "ENTRY_REGISTERED"
)

// Record is one structured audit event.
type Record struct {
	EventType   string
	ActorKind   string // "human", "automated", "system"
	ActorID     string
	SubjectType string // "submission", "session", "proposal", "entry"
	SubjectID   string
	Details     map[string]interface{}
	OccurredAt  time.Time
}
