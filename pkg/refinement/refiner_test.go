package refinement

import (
	"context"
	"errors"
	"testing"

	"communal-canon-be/internal/pkg/apperror"
	"communal-canon-be/pkg/evaluator"
)

type fakeRewriter struct {
	result *evaluator.RewriteResult
	err    error
}

func (f *fakeRewriter) Rewrite(_ context.Context, _ evaluator.RewriteRequest) (*evaluator.RewriteResult, error) {
	return f.result, f.err
}

type fakeSimilarity struct {
	score float64
	err   error
}

func (f *fakeSimilarity) Compare(_ context.Context, _, _ string) (float64, error) {
	return f.score, f.err
}

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

func TestRefine(t *testing.T) {
	rewritten := &evaluator.RewriteResult{
		TextPrimary:   "Tightened primary",
		TextSecondary: "Tightened secondary",
		ChangeSummary: "compressed",
	}

	tests := []struct {
		name         string
		rewriter     *fakeRewriter
		similarity   *fakeSimilarity
		wantErr      bool
		wantErrCode  string
		wantWarning  bool
		wantSimScore float64
	}{
		{
			name:         "clean advance",
			rewriter:     &fakeRewriter{result: rewritten},
			similarity:   &fakeSimilarity{score: 0.95},
			wantSimScore: 0.95,
		},
		{
			name:         "drift warns but does not block",
			rewriter:     &fakeRewriter{result: rewritten},
			similarity:   &fakeSimilarity{score: 0.80},
			wantWarning:  true,
			wantSimScore: 0.80,
		},
		{
			name:        "rewrite failure fails the advance",
			rewriter:    &fakeRewriter{err: errors.New("model down")},
			similarity:  &fakeSimilarity{score: 0.95},
			wantErr:     true,
			wantErrCode: apperror.CodeRewriteFailed,
		},
		{
			name:        "similarity failure fails the advance",
			rewriter:    &fakeRewriter{result: rewritten},
			similarity:  &fakeSimilarity{err: errors.New("model down")},
			wantErr:     true,
			wantErrCode: apperror.CodeEvaluatorFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRefiner(tt.rewriter, tt.similarity, 0.90, nopLogger{})
			res, err := r.Refine(context.Background(), StageDraft, "original primary", "original secondary")

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if apperror.CodeOf(err) != tt.wantErrCode {
					t.Errorf("error code = %q, want %q", apperror.CodeOf(err), tt.wantErrCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.DriftWarning != tt.wantWarning {
				t.Errorf("DriftWarning = %v, want %v", res.DriftWarning, tt.wantWarning)
			}
			if res.Similarity != tt.wantSimScore {
				t.Errorf("Similarity = %v, want %v", res.Similarity, tt.wantSimScore)
			}
			if res.TextPrimary != rewritten.TextPrimary {
				t.Errorf("TextPrimary = %q, want %q", res.TextPrimary, rewritten.TextPrimary)
			}
		})
	}
}
