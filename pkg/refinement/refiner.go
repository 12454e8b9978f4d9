package refinement

import (
	"context"

	"communal-canon-be/internal/pkg/apperror"
	"communal-canon-be/internal/pkg/logger"
	"communal-canon-be/pkg/evaluator"
)

// Result is one completed refinement pass, ready to be written as a record.
type Result struct {
	Stage         Stage
	TextPrimary   string
	TextSecondary string
	ChangeSummary string
	Similarity    float64
	DriftWarning  bool
}

// Refiner performs a single stage advance: rewrite with stage instructions,
// then measure semantic drift against the input text. Drift below the
// threshold warns but does not block; a failed rewrite or similarity call
// fails the advance cleanly so the submission stays at its prior stage.
type Refiner struct {
	rewriter   evaluator.RewriteService
	similarity evaluator.SimilarityService
	warnBelow  float64
	logger     logger.ILogger
}

func NewRefiner(
	rewriter evaluator.RewriteService,
	similarity evaluator.SimilarityService,
	warnBelow float64,
	logger logger.ILogger,
) *Refiner {
	return &Refiner{
		rewriter:   rewriter,
		similarity: similarity,
		warnBelow:  warnBelow,
		logger:     logger,
	}
}

func (r *Refiner) Refine(ctx context.Context, target Stage, textPrimary, textSecondary string) (*Result, error) {
	rewritten, err := r.rewriter.Rewrite(ctx, evaluator.RewriteRequest{
		Instructions:  Instructions(target),
		TextPrimary:   textPrimary,
		TextSecondary: textSecondary,
	})
	if err != nil {
		return nil, apperror.External(apperror.CodeRewriteFailed, "rewriting service failed", err)
	}

	score, err := r.similarity.Compare(ctx, textPrimary, rewritten.TextPrimary)
	if err != nil {
		return nil, apperror.External(apperror.CodeEvaluatorFailed, "similarity service failed", err)
	}

	result := &Result{
		Stage:         target,
		TextPrimary:   rewritten.TextPrimary,
		TextSecondary: rewritten.TextSecondary,
		ChangeSummary: rewritten.ChangeSummary,
		Similarity:    score,
		DriftWarning:  score < r.warnBelow,
	}

	if result.DriftWarning {
		// Warn-only: the record is still written. See DESIGN.md, this mirrors
		// the standing policy and is surfaced to stakeholders via audit.
		r.logger.Warn("REFINEMENT", "Semantic drift below threshold", map[string]interface{}{
			"stage":      string(target),
			"similarity": score,
			"threshold":  r.warnBelow,
		})
	}

	return result, nil
}
