package consensus

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"communal-canon-be/pkg/evaluator"
)

type fakeVoterService struct {
	mu         sync.Mutex
	inFlight   int32
	maxSeen    int32
	failFor    map[string]bool
	choiceFor  map[string]string
	totalCalls int
}

func (f *fakeVoterService) CastBallot(_ context.Context, perspective, _, _ string) (*evaluator.PanelBallot, error) {
	cur := atomic.AddInt32(&f.inFlight, 1)
	defer atomic.AddInt32(&f.inFlight, -1)
	for {
		max := atomic.LoadInt32(&f.maxSeen)
		if cur <= max || atomic.CompareAndSwapInt32(&f.maxSeen, max, cur) {
			break
		}
	}

	f.mu.Lock()
	f.totalCalls++
	f.mu.Unlock()

	if f.failFor[perspective] {
		return nil, errors.New("evaluation service unavailable")
	}
	choice := "for"
	if c, ok := f.choiceFor[perspective]; ok {
		choice = c
	}
	return &evaluator.PanelBallot{Choice: choice, Rationale: "reasoned"}, nil
}

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

func TestPanelEvaluatorOneBallotPerMember(t *testing.T) {
	svc := &fakeVoterService{}
	e := NewPanelEvaluator(svc, 5, nopLogger{})

	members := BuildPanel(12)
	ballots := e.Evaluate(context.Background(), members, "subject text")

	if len(ballots) != len(members) {
		t.Fatalf("got %d ballots for %d members", len(ballots), len(members))
	}
	if svc.totalCalls != len(members) {
		t.Errorf("service called %d times, want exactly %d", svc.totalCalls, len(members))
	}
	if svc.maxSeen > 5 {
		t.Errorf("observed %d concurrent evaluations, batch cap is 5", svc.maxSeen)
	}
	for i, b := range ballots {
		if b.Member.VoterID != members[i].VoterID {
			t.Errorf("ballot %d belongs to %s, want %s", i, b.Member.VoterID, members[i].VoterID)
		}
		if !b.Choice.Valid() {
			t.Errorf("ballot %d has invalid choice %q", i, b.Choice)
		}
	}
}

func TestPanelEvaluatorFailureAbstains(t *testing.T) {
	members := BuildPanel(5)
	svc := &fakeVoterService{failFor: map[string]bool{members[0].Perspective: true}}
	e := NewPanelEvaluator(svc, 5, nopLogger{})

	ballots := e.Evaluate(context.Background(), members, "subject text")

	if ballots[0].Choice != ChoiceAbstain {
		t.Errorf("failed member choice = %s, want abstain", ballots[0].Choice)
	}
	if ballots[0].Rationale == "" {
		t.Error("abstaining ballot must carry a rationale")
	}
	for _, b := range ballots[1:] {
		if b.Choice == ChoiceAbstain && b.Member.Perspective != members[0].Perspective {
			t.Errorf("member %s abstained unexpectedly", b.Member.VoterID)
		}
	}
}
