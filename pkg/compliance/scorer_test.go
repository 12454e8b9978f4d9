package compliance

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"communal-canon-be/internal/pkg/apperror"
	"communal-canon-be/pkg/evaluator"
)

type staticSource struct {
	principles []Principle
	err        error
	calls      int
}

func (s *staticSource) ActivePrinciples(_ context.Context) ([]Principle, error) {
	s.calls++
	return s.principles, s.err
}

// fakeJudge maps principle name -> score; names in failOn error out.
type fakeJudge struct {
	scores map[string]float64
	failOn map[string]bool
}

func (f *fakeJudge) Judge(_ context.Context, name, _, _ string) (*evaluator.Judgment, error) {
	if f.failOn[name] {
		return nil, errors.New("judgment service unavailable")
	}
	score, ok := f.scores[name]
	if !ok {
		return nil, fmt.Errorf("unexpected principle %s", name)
	}
	return &evaluator.Judgment{Score: score, Rationale: "test rationale"}, nil
}

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

var testThresholds = Thresholds{Submission: 0.70, Revision: 0.75, Amendment: 0.80}

func threePrinciples() []Principle {
	return []Principle{
		{Code: "compassion", Name: "Compassion", Weight: 0.5},
		{Code: "clarity", Name: "Clarity", Weight: 0.3},
		{Code: "humility", Name: "Humility", Weight: 0.2},
	}
}

func TestScoreWeightedAverage(t *testing.T) {
	// Weights [0.5 0.3 0.2], scores [0.9 0.6 0.4] -> overall 0.71:
	// compliant at the submission threshold, not at the revision one.
	judge := &fakeJudge{scores: map[string]float64{
		"Compassion": 0.9,
		"Clarity":    0.6,
		"Humility":   0.4,
	}}
	scorer := NewScorer(&staticSource{principles: threePrinciples()}, judge, testThresholds, 5, nopLogger{})

	eval, err := scorer.Score(context.Background(), "text", CheckSubmission)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if math.Abs(eval.Overall-0.71) > 1e-9 {
		t.Errorf("Overall = %v, want 0.71", eval.Overall)
	}
	if !eval.Compliant {
		t.Error("expected compliant at submission threshold 0.70")
	}
	if eval.Recommendation != "approve" {
		t.Errorf("Recommendation = %q, want approve", eval.Recommendation)
	}

	eval, err = scorer.Score(context.Background(), "text", CheckRevision)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if eval.Compliant {
		t.Error("expected non-compliant at revision threshold 0.75")
	}
	if !strings.Contains(eval.Recommendation, "humility") {
		t.Errorf("Recommendation should name the weakest principle, got %q", eval.Recommendation)
	}
}

func TestScoreDegradesFailedPrinciple(t *testing.T) {
	judge := &fakeJudge{
		scores: map[string]float64{"Compassion": 0.9, "Humility": 0.8},
		failOn: map[string]bool{"Clarity": true},
	}
	scorer := NewScorer(&staticSource{principles: threePrinciples()}, judge, testThresholds, 5, nopLogger{})

	eval, err := scorer.Score(context.Background(), "text", CheckSubmission)
	if err != nil {
		t.Fatalf("Score must not abort on partial failure: %v", err)
	}
	if len(eval.Scores) != 3 {
		t.Fatalf("got %d scores, want 3", len(eval.Scores))
	}

	var degraded *PrincipleScore
	for i := range eval.Scores {
		if eval.Scores[i].Code == "clarity" {
			degraded = &eval.Scores[i]
		}
	}
	if degraded == nil {
		t.Fatal("missing score for failed principle")
	}
	if degraded.Score != neutralScore || !degraded.Degraded {
		t.Errorf("failed principle score = %+v, want neutral 0.5 degraded", degraded)
	}

	// 0.5*0.9 + 0.3*0.5 + 0.2*0.8 = 0.76
	if math.Abs(eval.Overall-0.76) > 1e-9 {
		t.Errorf("Overall = %v, want 0.76", eval.Overall)
	}
}

func TestScoreNoActivePrinciples(t *testing.T) {
	scorer := NewScorer(&staticSource{}, &fakeJudge{}, testThresholds, 5, nopLogger{})

	_, err := scorer.Score(context.Background(), "text", CheckSubmission)
	if err == nil {
		t.Fatal("expected fatal error with no active principles")
	}
	if !apperror.IsKind(err, apperror.KindFatal) {
		t.Errorf("expected fatal kind, got %v", err)
	}
}

func TestScoreInvalidCheckType(t *testing.T) {
	scorer := NewScorer(&staticSource{principles: threePrinciples()}, &fakeJudge{}, testThresholds, 5, nopLogger{})

	_, err := scorer.Score(context.Background(), "text", CheckType("audit"))
	if !apperror.IsKind(err, apperror.KindValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestScoreSafetyFlags(t *testing.T) {
	judge := &fakeJudge{scores: map[string]float64{
		"Compassion": 0.1,
		"Clarity":    0.9,
		"Humility":   0.9,
	}}
	scorer := NewScorer(&staticSource{principles: threePrinciples()}, judge, testThresholds, 5, nopLogger{})

	eval, err := scorer.Score(context.Background(), "text", CheckSubmission)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if len(eval.SafetyFlags) != 1 || eval.SafetyFlags[0] != "critical:compassion" {
		t.Errorf("SafetyFlags = %v, want [critical:compassion]", eval.SafetyFlags)
	}
}

func TestCachedPrincipleSource(t *testing.T) {
	calls := 0
	load := func(_ context.Context) ([]Principle, error) {
		calls++
		return threePrinciples(), nil
	}
	source := NewCachedPrincipleSource(load, time.Minute)

	for i := 0; i < 3; i++ {
		if _, err := source.ActivePrinciples(context.Background()); err != nil {
			t.Fatalf("ActivePrinciples: %v", err)
		}
	}
	if calls != 1 {
		t.Errorf("loader called %d times, want 1 (cached)", calls)
	}

	source.Invalidate()
	if _, err := source.ActivePrinciples(context.Background()); err != nil {
		t.Fatalf("ActivePrinciples: %v", err)
	}
	if calls != 2 {
		t.Errorf("loader called %d times after invalidate, want 2", calls)
	}
}
