package consensus

import (
	"math"
	"testing"
)

func TestTallyQuorumPrecedence(t *testing.T) {
	// 50 eligible humans, 10% quorum, only 4 votes cast: quorum fails no
	// matter how lopsided the split is.
	c := Counters{HumanFor: 4}
	out := Tally(c, 50, 0.10, 0.60)

	if out.QuorumMet {
		t.Error("quorum should not be met at 4/50 with 0.10 fraction")
	}
	if out.Status != StatusQuorumFailed {
		t.Errorf("Status = %s, want %s", out.Status, StatusQuorumFailed)
	}
	if out.ApprovalRate != 1.0 {
		t.Errorf("ApprovalRate = %v, want 1.0 (still computed)", out.ApprovalRate)
	}
}

func TestTallyAbstainsExcluded(t *testing.T) {
	// 6 for, 2 against, 12 abstain: rate = 6/8 = 0.75.
	c := Counters{HumanFor: 4, HumanAgainst: 1, HumanAbstain: 7, AutoFor: 2, AutoAgainst: 1, AutoAbstain: 5}
	out := Tally(c, 10, 0.10, 0.60)

	if math.Abs(out.ApprovalRate-0.75) > 1e-9 {
		t.Errorf("ApprovalRate = %v, want 0.75", out.ApprovalRate)
	}
	if out.Status != StatusApproved {
		t.Errorf("Status = %s, want %s", out.Status, StatusApproved)
	}
}

func TestTallyAbstainsCountTowardQuorum(t *testing.T) {
	c := Counters{HumanAbstain: 5, AutoFor: 3}
	out := Tally(c, 50, 0.10, 0.60)
	if !out.QuorumMet {
		t.Error("5 human abstains out of 50 should satisfy a 0.10 quorum")
	}
}

func TestTallyZeroEligibleHumans(t *testing.T) {
	// An empty electorate cannot fail quorum; the automated panel decides.
	c := Counters{AutoFor: 4, AutoAgainst: 1}
	out := Tally(c, 0, 0.10, 0.60)
	if !out.QuorumMet {
		t.Error("quorum must be met when eligible_human_count == 0")
	}
	if out.Status != StatusApproved {
		t.Errorf("Status = %s, want %s", out.Status, StatusApproved)
	}
}

func TestTallyBelowThreshold(t *testing.T) {
	c := Counters{HumanFor: 3, HumanAgainst: 3, AutoFor: 0, AutoAgainst: 0}
	out := Tally(c, 10, 0.10, 0.60)
	if out.Status != StatusRejected {
		t.Errorf("Status = %s, want %s at rate 0.5 vs threshold 0.6", out.Status, StatusRejected)
	}
}

func TestTallyNoDecisiveVotes(t *testing.T) {
	c := Counters{HumanAbstain: 3, AutoAbstain: 5}
	out := Tally(c, 10, 0.10, 0.60)
	if out.Status != StatusRejected {
		t.Errorf("Status = %s, want %s when nobody voted for or against", out.Status, StatusRejected)
	}
	if out.ApprovalRate != 0 {
		t.Errorf("ApprovalRate = %v, want 0", out.ApprovalRate)
	}
}

func TestTallyIdempotent(t *testing.T) {
	c := Counters{HumanFor: 6, HumanAgainst: 2, HumanAbstain: 1, AutoFor: 3, AutoAgainst: 2}
	first := Tally(c, 20, 0.10, 0.60)
	second := Tally(c, 20, 0.10, 0.60)
	if first != second {
		t.Errorf("Tally is not idempotent: %+v vs %+v", first, second)
	}
}

func TestThresholdForSubject(t *testing.T) {
	tests := []struct {
		subject SubjectType
		want    float64
	}{
		{SubjectNewSubmission, 0.60},
		{SubjectRevision, 0.67},
		{SubjectAmendment, 0.75},
		{SubjectArchiveRestore, 0.60},
	}
	for _, tt := range tests {
		if got := ThresholdForSubject(tt.subject); got != tt.want {
			t.Errorf("ThresholdForSubject(%s) = %v, want %v", tt.subject, got, tt.want)
		}
	}
}
