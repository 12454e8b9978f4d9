package evaluator

import (
	"context"
	"fmt"
	"time"

	"communal-canon-be/pkg/llm"
)

// RewriteRequest carries a bilingual text pair plus the stage-specific
// instructions for the rewriting pass.
type RewriteRequest struct {
	Instructions  string
	TextPrimary   string
	TextSecondary string
}

type RewriteResult struct {
	TextPrimary   string
	TextSecondary string
	ChangeSummary string
}

// RewriteService rewrites a bilingual text pair. There is no fallback for a
// failed rewrite; callers fail the advance cleanly.
type RewriteService interface {
	Rewrite(ctx context.Context, req RewriteRequest) (*RewriteResult, error)
}

type llmRewriteService struct {
	provider llm.LLMProvider
	timeout  time.Duration
}

func NewRewriteService(provider llm.LLMProvider, timeout time.Duration) RewriteService {
	return &llmRewriteService{provider: provider, timeout: timeout}
}

type rewriteResponse struct {
	TextPrimary   string `json:"text_primary"`
	TextSecondary string `json:"text_secondary"`
	ChangeSummary string `json:"change_summary"`
}

func (s *llmRewriteService) Rewrite(ctx context.Context, req RewriteRequest) (*RewriteResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	prompt := fmt.Sprintf(`You refine passages for a community canon. The text exists as a bilingual pair
that must stay aligned in meaning.

Instructions for this pass: %s

Primary text:
%s

Secondary text:
%s

Respond with ONLY a JSON object:
{"text_primary": "<rewritten primary>", "text_secondary": "<rewritten secondary>", "change_summary": "<what changed and why>"}`,
		req.Instructions, req.TextPrimary, req.TextSecondary)

	raw, err := s.provider.Generate(ctx, prompt, llm.WithTemperature(0.4))
	if err != nil {
		return nil, fmt.Errorf("rewrite call: %w", err)
	}

	var resp rewriteResponse
	if err := decodeStrict(raw, &resp); err != nil {
		return nil, err
	}
	if resp.TextPrimary == "" {
		return nil, fmt.Errorf("rewrite returned empty primary text")
	}

	return &RewriteResult{
		TextPrimary:   resp.TextPrimary,
		TextSecondary: resp.TextSecondary,
		ChangeSummary: resp.ChangeSummary,
	}, nil
}
