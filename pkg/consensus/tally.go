package consensus

// Counters are the per-channel vote counts of one session.
type Counters struct {
	HumanFor     int
	HumanAgainst int
	HumanAbstain int
	AutoFor      int
	AutoAgainst  int
	AutoAbstain  int
}

func (c Counters) TotalFor() int     { return c.HumanFor + c.AutoFor }
func (c Counters) TotalAgainst() int { return c.HumanAgainst + c.AutoAgainst }

// HumanCast counts every human ballot, abstains included: an abstain still
// contributes to quorum.
func (c Counters) HumanCast() int { return c.HumanFor + c.HumanAgainst + c.HumanAbstain }

// Outcome is the result of tallying a session.
type Outcome struct {
	ApprovalRate float64
	QuorumMet    bool
	Status       SessionStatus
}

// Tally resolves a session from its counters. Pure and idempotent: the same
// counters always produce the same outcome.
//
// approval_rate excludes abstains from the denominator. Quorum failure
// overrides the approval calculation: a session clearing its threshold with
// a failed quorum resolves to quorum_failed, never approved.
func Tally(c Counters, eligibleHumanCount int, quorumFraction, threshold float64) Outcome {
	quorumMet := eligibleHumanCount == 0 ||
		float64(c.HumanCast())/float64(eligibleHumanCount) >= quorumFraction

	decisive := c.TotalFor() + c.TotalAgainst()
	var rate float64
	if decisive > 0 {
		rate = float64(c.TotalFor()) / float64(decisive)
	}

	out := Outcome{ApprovalRate: rate, QuorumMet: quorumMet}
	switch {
	case !quorumMet:
		out.Status = StatusQuorumFailed
	case decisive == 0:
		// Nobody expressed a preference; nothing to approve.
		out.Status = StatusRejected
	case rate >= threshold:
		out.Status = StatusApproved
	default:
		out.Status = StatusRejected
	}
	return out
}
