package evaluator

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"communal-canon-be/pkg/llm"
)

// ChapterInfo summarizes one published chapter for the placement analyst.
type ChapterInfo struct {
	Chapter    int    `json:"chapter"`
	Theme      string `json:"theme"`
	VerseCount int    `json:"verse_count"`
}

// PlacementDecision is where the analyst wants the new entry to live.
// NewChapter means Chapter is one past the current highest.
type PlacementDecision struct {
	Chapter    int
	NewChapter bool
	Theme      string
	Reasoning  string
}

// PlacementAnalyst chooses a chapter for newly approved content. Callers fall
// back deterministically when it errors.
type PlacementAnalyst interface {
	Analyze(ctx context.Context, text string, chapters []ChapterInfo) (*PlacementDecision, error)
}

type llmPlacementAnalyst struct {
	provider llm.LLMProvider
	timeout  time.Duration
}

func NewPlacementAnalyst(provider llm.LLMProvider, timeout time.Duration) PlacementAnalyst {
	return &llmPlacementAnalyst{provider: provider, timeout: timeout}
}

type placementResponse struct {
	Chapter    int    `json:"chapter"`
	NewChapter bool   `json:"new_chapter"`
	Theme      string `json:"theme"`
	Reasoning  string `json:"reasoning"`
}

func (s *llmPlacementAnalyst) Analyze(ctx context.Context, text string, chapters []ChapterInfo) (*PlacementDecision, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	chaptersJSON, err := json.Marshal(chapters)
	if err != nil {
		return nil, fmt.Errorf("marshal chapters: %w", err)
	}

	prompt := fmt.Sprintf(`You place approved passages into a canon organized by themed chapters.

Existing chapters (JSON): %s

Passage:
%s

Choose the best-fitting existing chapter, or propose a new one if none fits.
Respond with ONLY a JSON object:
{"chapter": <int>, "new_chapter": <bool>, "theme": "<chapter theme>", "reasoning": "<one sentence>"}`,
		string(chaptersJSON), text)

	raw, err := s.provider.Generate(ctx, prompt, llm.WithTemperature(0.2))
	if err != nil {
		return nil, fmt.Errorf("placement call: %w", err)
	}

	var resp placementResponse
	if err := decodeStrict(raw, &resp); err != nil {
		return nil, err
	}
	if resp.Chapter < 1 && !resp.NewChapter {
		return nil, fmt.Errorf("placement returned invalid chapter %d", resp.Chapter)
	}

	return &PlacementDecision{
		Chapter:    resp.Chapter,
		NewChapter: resp.NewChapter,
		Theme:      resp.Theme,
		Reasoning:  resp.Reasoning,
	}, nil
}
