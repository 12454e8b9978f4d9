package consensus

// SubjectType determines the approval threshold of a voting session.
type SubjectType string

const (
	SubjectNewSubmission  SubjectType = "new_submission"
	SubjectRevision       SubjectType = "revision"
	SubjectAmendment      SubjectType = "amendment"
	SubjectArchiveRestore SubjectType = "archive_restore"
)

func (s SubjectType) Valid() bool {
	switch s {
	case SubjectNewSubmission, SubjectRevision, SubjectAmendment, SubjectArchiveRestore:
		return true
	}
	return false
}

// ThresholdForSubject returns the approval threshold frozen into a session at
// creation. Amendments to the charter demand the widest agreement.
func ThresholdForSubject(s SubjectType) float64 {
	switch s {
	case SubjectRevision:
		return 0.67
	case SubjectAmendment:
		return 0.75
	default:
		return 0.60
	}
}

// SessionStatus is the voting session state machine:
// pending -> active -> tallying -> {approved | rejected | quorum_failed | flagged}.
type SessionStatus string

const (
	StatusPending      SessionStatus = "pending"
	StatusActive       SessionStatus = "active"
	StatusTallying     SessionStatus = "tallying"
	StatusApproved     SessionStatus = "approved"
	StatusRejected     SessionStatus = "rejected"
	StatusQuorumFailed SessionStatus = "quorum_failed"
	StatusFlagged      SessionStatus = "flagged"
)

// Terminal reports whether a session has resolved.
func (s SessionStatus) Terminal() bool {
	switch s {
	case StatusApproved, StatusRejected, StatusQuorumFailed, StatusFlagged:
		return true
	}
	return false
}

type VoterKind string

const (
	VoterHuman     VoterKind = "human"
	VoterAutomated VoterKind = "automated"
)

type VoteChoice string

const (
	ChoiceFor     VoteChoice = "for"
	ChoiceAgainst VoteChoice = "against"
	ChoiceAbstain VoteChoice = "abstain"
)

func (c VoteChoice) Valid() bool {
	switch c {
	case ChoiceFor, ChoiceAgainst, ChoiceAbstain:
		return true
	}
	return false
}

// PanelCategory is one of the four automated-voter perspective pools.
type PanelCategory string

const (
	CategoryTradition  PanelCategory = "tradition"
	CategoryFunction   PanelCategory = "function"
	CategoryContrarian PanelCategory = "contrarian"
	CategoryMeta       PanelCategory = "meta"
)
