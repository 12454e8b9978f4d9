package revision

import (
	"time"
)

// Status is the revision proposal lifecycle.
type Status string

const (
	StatusProposed   Status = "proposed"
	StatusScreening  Status = "screening"
	StatusDiscussion Status = "discussion"
	StatusRefining   Status = "refining"
	StatusVoting     Status = "voting"
	StatusApproved   Status = "approved"
	StatusRejected   Status = "rejected"
	StatusWithdrawn  Status = "withdrawn"
)

func (s Status) Terminal() bool {
	switch s {
	case StatusApproved, StatusRejected, StatusWithdrawn:
		return true
	}
	return false
}

// OpenStatuses lists every non-terminal status. The one-open-proposal-per-entry
// rule (service check and partial unique index) is defined over this set.
func OpenStatuses() []Status {
	return []Status{StatusProposed, StatusScreening, StatusDiscussion,
		StatusRefining, StatusVoting}
}

// CooldownPolicy governs how long a (entry, proposer) pair must wait after a
// rejection before proposing again. Repeat rejections escalate.
type CooldownPolicy struct {
	Standard   time.Duration
	Escalated  time.Duration
	EscalateAt int // rejection count at which the escalated cooldown applies
}

// After returns the cooldown to apply given the proposal's rejection count
// after the current rejection has been recorded.
func (p CooldownPolicy) After(rejectionCount int) time.Duration {
	if rejectionCount >= p.EscalateAt {
		return p.Escalated
	}
	return p.Standard
}

// Active reports whether a cooldown recorded on a previous proposal still
// blocks a new one at time now.
func Active(cooldownUntil *time.Time, now time.Time) bool {
	return cooldownUntil != nil && now.Before(*cooldownUntil)
}
