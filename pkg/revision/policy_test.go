package revision

import (
	"testing"
	"time"
)

func TestCooldownEscalation(t *testing.T) {
	policy := CooldownPolicy{
		Standard:   30 * 24 * time.Hour,
		Escalated:  180 * 24 * time.Hour,
		EscalateAt: 3,
	}

	tests := []struct {
		rejectionCount int
		want           time.Duration
	}{
		{1, 30 * 24 * time.Hour},
		{2, 30 * 24 * time.Hour},
		{3, 180 * 24 * time.Hour},
		{4, 180 * 24 * time.Hour},
	}

	for _, tt := range tests {
		if got := policy.After(tt.rejectionCount); got != tt.want {
			t.Errorf("After(%d) = %v, want %v", tt.rejectionCount, got, tt.want)
		}
	}
}

func TestCooldownActive(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	if Active(nil, now) {
		t.Error("nil cooldown must not be active")
	}
	if Active(&past, now) {
		t.Error("expired cooldown must not be active")
	}
	if !Active(&future, now) {
		t.Error("future cooldown must be active")
	}
}

func TestStatusTerminal(t *testing.T) {
	terminal := []Status{StatusApproved, StatusRejected, StatusWithdrawn}
	open := []Status{StatusProposed, StatusScreening, StatusDiscussion, StatusRefining, StatusVoting}

	for _, s := range terminal {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
	for _, s := range open {
		if s.Terminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}

func TestOpenStatusesCoverNonTerminal(t *testing.T) {
	all := []Status{StatusProposed, StatusScreening, StatusDiscussion,
		StatusRefining, StatusVoting, StatusApproved, StatusRejected, StatusWithdrawn}

	open := make(map[Status]bool)
	for _, s := range OpenStatuses() {
		open[s] = true
	}

	// Every status is either terminal or open, never both. The partial
	// unique index on open proposals is built from this set, so a status
	// missing here would let a second open proposal slip past it.
	for _, s := range all {
		if s.Terminal() == open[s] {
			t.Errorf("%s: terminal=%v open=%v, want exactly one", s, s.Terminal(), open[s])
		}
	}
	if len(OpenStatuses()) != len(open) {
		t.Error("OpenStatuses contains duplicates")
	}
}
