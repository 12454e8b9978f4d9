package placement

import (
	"context"
	"errors"
	"testing"

	"communal-canon-be/internal/pkg/apperror"
	"communal-canon-be/pkg/evaluator"
)

type fakeAnalyst struct {
	decision *evaluator.PlacementDecision
	err      error
}

func (f *fakeAnalyst) Analyze(_ context.Context, _ string, _ []evaluator.ChapterInfo) (*evaluator.PlacementDecision, error) {
	return f.decision, f.err
}

type fakeCatalog struct {
	stats    []ChapterStat
	existing map[string]bool
}

func (f *fakeCatalog) ChapterStats(_ context.Context) ([]ChapterStat, error) {
	return f.stats, nil
}

func (f *fakeCatalog) RefExists(_ context.Context, ref string) (bool, error) {
	return f.existing[ref], nil
}

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

func testCatalog() *fakeCatalog {
	return &fakeCatalog{
		stats: []ChapterStat{
			{Chapter: 1, Theme: "origins", VerseCount: 10, MaxVerse: 10},
			{Chapter: 2, Theme: "mercy", VerseCount: 25, MaxVerse: 25},
			{Chapter: 3, Theme: "practice", VerseCount: 4, MaxVerse: 4},
		},
		existing: map[string]bool{},
	}
}

func TestPlaceIntoChosenChapter(t *testing.T) {
	analyst := &fakeAnalyst{decision: &evaluator.PlacementDecision{Chapter: 3, Theme: "practice"}}
	p := NewPlacer(analyst, nopLogger{})

	spot, err := p.Place(context.Background(), "text", testCatalog(), nil)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if spot.Ref != "3:5" {
		t.Errorf("Ref = %s, want 3:5", spot.Ref)
	}
	if spot.NewChapter || spot.Fallback {
		t.Errorf("unexpected flags: %+v", spot)
	}
}

func TestPlaceNewChapter(t *testing.T) {
	analyst := &fakeAnalyst{decision: &evaluator.PlacementDecision{NewChapter: true, Theme: "stillness"}}
	p := NewPlacer(analyst, nopLogger{})

	spot, err := p.Place(context.Background(), "text", testCatalog(), nil)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if spot.Ref != "4:1" {
		t.Errorf("Ref = %s, want 4:1", spot.Ref)
	}
	if !spot.NewChapter || spot.Theme != "stillness" {
		t.Errorf("spot = %+v", spot)
	}
}

func TestPlaceAnalystFailureFallsBack(t *testing.T) {
	analyst := &fakeAnalyst{err: errors.New("analyst down")}
	p := NewPlacer(analyst, nopLogger{})

	spot, err := p.Place(context.Background(), "text", testCatalog(), nil)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	// Largest chapter is 2 with 25 verses.
	if spot.Ref != "2:26" || !spot.Fallback {
		t.Errorf("spot = %+v, want fallback into 2:26", spot)
	}
}

func TestPlaceEmptyCanonFallback(t *testing.T) {
	analyst := &fakeAnalyst{err: errors.New("analyst down")}
	p := NewPlacer(analyst, nopLogger{})

	catalog := &fakeCatalog{existing: map[string]bool{}}
	spot, err := p.Place(context.Background(), "text", catalog, nil)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if spot.Ref != "1:1" || !spot.NewChapter {
		t.Errorf("spot = %+v, want new chapter 1:1", spot)
	}
}

func TestPlaceCollisionIsHardError(t *testing.T) {
	analyst := &fakeAnalyst{decision: &evaluator.PlacementDecision{Chapter: 3}}
	p := NewPlacer(analyst, nopLogger{})

	catalog := testCatalog()
	catalog.existing["3:5"] = true

	_, err := p.Place(context.Background(), "text", catalog, nil)
	if err == nil {
		t.Fatal("expected collision error")
	}
	if apperror.CodeOf(err) != apperror.CodeRefCollision {
		t.Errorf("error code = %q, want %q", apperror.CodeOf(err), apperror.CodeRefCollision)
	}
}

func TestPlaceManualVerseOverride(t *testing.T) {
	analyst := &fakeAnalyst{decision: &evaluator.PlacementDecision{Chapter: 1}}
	p := NewPlacer(analyst, nopLogger{})

	override := 99
	spot, err := p.Place(context.Background(), "text", testCatalog(), &override)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if spot.Ref != "1:99" {
		t.Errorf("Ref = %s, want 1:99", spot.Ref)
	}

	bad := 0
	if _, err := p.Place(context.Background(), "text", testCatalog(), &bad); err == nil {
		t.Error("expected validation error for verse override 0")
	}
}
