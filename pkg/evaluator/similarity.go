package evaluator

import (
	"context"
	"fmt"
	"time"

	"communal-canon-be/pkg/llm"
)

// SimilarityService scores semantic closeness of two texts in [0, 1].
type SimilarityService interface {
	Compare(ctx context.Context, original, rewritten string) (float64, error)
}

type llmSimilarityService struct {
	provider llm.LLMProvider
	timeout  time.Duration
}

func NewSimilarityService(provider llm.LLMProvider, timeout time.Duration) SimilarityService {
	return &llmSimilarityService{provider: provider, timeout: timeout}
}

type similarityResponse struct {
	Score     float64 `json:"score"`
	Rationale string  `json:"rationale"`
}

func (s *llmSimilarityService) Compare(ctx context.Context, original, rewritten string) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	prompt := fmt.Sprintf(`Rate how closely the rewritten text preserves the meaning of the original.
1.0 = identical meaning, 0.0 = unrelated.

Original:
%s

Rewritten:
%s

Respond with ONLY a JSON object: {"score": <float 0.0-1.0>, "rationale": "<one sentence>"}`,
		original, rewritten)

	raw, err := s.provider.Generate(ctx, prompt, llm.WithTemperature(0.0))
	if err != nil {
		return 0, fmt.Errorf("similarity call: %w", err)
	}

	var resp similarityResponse
	if err := decodeStrict(raw, &resp); err != nil {
		return 0, err
	}

	return clampScore(resp.Score), nil
}
