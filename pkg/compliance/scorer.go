package compliance

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"communal-canon-be/internal/pkg/apperror"
	"communal-canon-be/internal/pkg/logger"
	"communal-canon-be/pkg/evaluator"

	"github.com/alitto/pond/v2"
)

// neutralScore is assigned when a single principle evaluation fails.
// Partial failure must never block the pipeline.
const neutralScore = 0.5

// safetyFloor: a principle scored at or below this raises a safety flag.
const safetyFloor = 0.2

// PrincipleSource supplies the active weighted principle set.
type PrincipleSource interface {
	ActivePrinciples(ctx context.Context) ([]Principle, error)
}

// Scorer evaluates a text against the active principle set, each principle
// independently and in parallel, and reduces to a single weighted score.
type Scorer struct {
	source     PrincipleSource
	judge      evaluator.JudgmentService
	thresholds Thresholds
	pool       pond.Pool
	logger     logger.ILogger
}

func NewScorer(
	source PrincipleSource,
	judge evaluator.JudgmentService,
	thresholds Thresholds,
	maxParallel int,
	logger logger.ILogger,
) *Scorer {
	if maxParallel < 1 {
		maxParallel = 5
	}
	return &Scorer{
		source:     source,
		judge:      judge,
		thresholds: thresholds,
		pool:       pond.NewPool(maxParallel),
		logger:     logger,
	}
}

func (s *Scorer) Score(ctx context.Context, text string, checkType CheckType) (*Evaluation, error) {
	if !checkType.Valid() {
		return nil, apperror.Validation("INVALID_CHECK_TYPE", fmt.Sprintf("unknown check type %q", checkType))
	}

	principles, err := s.source.ActivePrinciples(ctx)
	if err != nil {
		return nil, fmt.Errorf("load principles: %w", err)
	}
	if len(principles) == 0 {
		// Misconfiguration, not a judgment outcome. Abort, nothing persisted.
		return nil, apperror.Fatal(apperror.CodeNoPrinciples, "no active principle set configured")
	}

	scores := make([]PrincipleScore, len(principles))

	group := s.pool.NewGroupContext(ctx)
	for i, p := range principles {
		i, p := i, p
		group.Submit(func() {
			judgment, err := s.judge.Judge(ctx, p.Name, p.Description, text)
			if err != nil {
				// Degrade this principle instead of aborting the run.
				s.logger.Warn("COMPLIANCE", "Principle evaluation failed, assigning neutral score", map[string]interface{}{
					"principle": p.Code,
					"error":     err.Error(),
				})
				scores[i] = PrincipleScore{
					Code:      p.Code,
					Weight:    p.Weight,
					Score:     neutralScore,
					Rationale: fmt.Sprintf("evaluation unavailable (%v); neutral score assigned", err),
					Degraded:  true,
				}
				return
			}
			scores[i] = PrincipleScore{
				Code:      p.Code,
				Weight:    p.Weight,
				Score:     judgment.Score,
				Rationale: judgment.Rationale,
			}
		})
	}
	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("principle evaluation group: %w", err)
	}

	var weightedSum, weightTotal float64
	var flags []string
	for _, ps := range scores {
		weightedSum += ps.Weight * ps.Score
		weightTotal += ps.Weight
		if ps.Score <= safetyFloor && !ps.Degraded {
			flags = append(flags, "critical:"+ps.Code)
		}
	}
	if weightTotal == 0 {
		return nil, apperror.Fatal(apperror.CodeNoPrinciples, "active principle set has zero total weight")
	}

	threshold := s.thresholds.For(checkType)
	overall := weightedSum / weightTotal
	compliant := overall >= threshold

	return &Evaluation{
		CheckType:      checkType,
		Threshold:      threshold,
		Overall:        overall,
		Compliant:      compliant,
		Recommendation: recommend(overall, threshold, scores),
		Scores:         scores,
		SafetyFlags:    flags,
	}, nil
}

// recommend builds the human-readable verdict. Non-compliant runs name the
// weakest-scoring principles so the submitter knows what to fix.
func recommend(overall, threshold float64, scores []PrincipleScore) string {
	if overall >= threshold {
		return "approve"
	}

	weakest := make([]PrincipleScore, len(scores))
	copy(weakest, scores)
	sort.Slice(weakest, func(i, j int) bool { return weakest[i].Score < weakest[j].Score })
	if len(weakest) > 3 {
		weakest = weakest[:3]
	}

	parts := make([]string, len(weakest))
	for i, ps := range weakest {
		parts[i] = fmt.Sprintf("%s (%.2f)", ps.Code, ps.Score)
	}

	verdict := "reject"
	if threshold-overall <= 0.05 {
		verdict = "review"
	}
	return fmt.Sprintf("%s: overall %.2f below threshold %.2f, weakest principles: %s",
		verdict, overall, threshold, strings.Join(parts, ", "))
}
