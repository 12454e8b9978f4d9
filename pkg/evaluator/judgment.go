package evaluator

import (
	"context"
	"fmt"
	"time"

	"communal-canon-be/pkg/llm"
)

// Judgment is the result of scoring a text against a single principle.
type Judgment struct {
	Score     float64
	Rationale string
}

// JudgmentService scores a text against a named principle. Failure is
// signalled with an error and must be kept distinct from a low score.
type JudgmentService interface {
	Judge(ctx context.Context, principleName, principleGuidance, text string) (*Judgment, error)
}

type llmJudgmentService struct {
	provider llm.LLMProvider
	timeout  time.Duration
}

func NewJudgmentService(provider llm.LLMProvider, timeout time.Duration) JudgmentService {
	return &llmJudgmentService{provider: provider, timeout: timeout}
}

type judgmentResponse struct {
	Score     float64 `json:"score"`
	Rationale string  `json:"rationale"`
}

func (s *llmJudgmentService) Judge(ctx context.Context, principleName, principleGuidance, text string) (*Judgment, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	prompt := fmt.Sprintf(`You are a compliance judge for a community canon.
Principle: %s
Guidance: %s

Evaluate how well the following text honors this principle.

Text:
%s

Respond with ONLY a JSON object: {"score": <float 0.0-1.0>, "rationale": "<one or two sentences>"}`,
		principleName, principleGuidance, text)

	raw, err := s.provider.Generate(ctx, prompt, llm.WithTemperature(0.1))
	if err != nil {
		return nil, fmt.Errorf("judgment call: %w", err)
	}

	var resp judgmentResponse
	if err := decodeStrict(raw, &resp); err != nil {
		return nil, err
	}

	return &Judgment{
		Score:     clampScore(resp.Score),
		Rationale: resp.Rationale,
	}, nil
}
