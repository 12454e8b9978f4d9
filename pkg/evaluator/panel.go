package evaluator

import (
	"context"
	"fmt"
	"time"

	"communal-canon-be/pkg/llm"
)

// PanelBallot is one automated voter's decision on a subject.
type PanelBallot struct {
	Choice    string // "for", "against", "abstain"
	Rationale string
}

// PanelVoterService casts a single automated vote from a given perspective.
type PanelVoterService interface {
	CastBallot(ctx context.Context, perspective, category, subjectText string) (*PanelBallot, error)
}

// AnalysisService produces written discussion analyses for revision proposals
// and a synthesis pass over a closed discussion.
type AnalysisService interface {
	Analyze(ctx context.Context, perspective, originalText, proposedText, rationale string) (string, error)
	Synthesize(ctx context.Context, originalText, proposedText string, discussion []string) (string, error)
}

type llmPanelService struct {
	provider llm.LLMProvider
	timeout  time.Duration
}

func NewPanelService(provider llm.LLMProvider, timeout time.Duration) *llmPanelService {
	return &llmPanelService{provider: provider, timeout: timeout}
}

var _ PanelVoterService = (*llmPanelService)(nil)
var _ AnalysisService = (*llmPanelService)(nil)

type ballotResponse struct {
	Vote      string `json:"vote"`
	Rationale string `json:"rationale"`
}

func (s *llmPanelService) CastBallot(ctx context.Context, perspective, category, subjectText string) (*PanelBallot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	prompt := fmt.Sprintf(`You sit on a review panel for a community canon. Your assigned perspective is
"%s" (%s category). Judge the subject strictly from that perspective.

Subject:
%s

Respond with ONLY a JSON object: {"vote": "for" | "against" | "abstain", "rationale": "<one or two sentences>"}`,
		perspective, category, subjectText)

	raw, err := s.provider.Generate(ctx, prompt, llm.WithTemperature(0.6))
	if err != nil {
		return nil, fmt.Errorf("panel ballot call: %w", err)
	}

	var resp ballotResponse
	if err := decodeStrict(raw, &resp); err != nil {
		return nil, err
	}
	switch resp.Vote {
	case "for", "against", "abstain":
	default:
		return nil, fmt.Errorf("panel returned invalid vote %q", resp.Vote)
	}

	return &PanelBallot{Choice: resp.Vote, Rationale: resp.Rationale}, nil
}

type analysisResponse struct {
	Analysis string `json:"analysis"`
}

func (s *llmPanelService) Analyze(ctx context.Context, perspective, originalText, proposedText, rationale string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	prompt := fmt.Sprintf(`You sit on a review panel for a community canon. From the perspective "%s",
write a short written analysis of this proposed revision.

Current text:
%s

Proposed text:
%s

Proposer's rationale: %s

Respond with ONLY a JSON object: {"analysis": "<3-5 sentences>"}`,
		perspective, originalText, proposedText, rationale)

	raw, err := s.provider.Generate(ctx, prompt, llm.WithTemperature(0.5))
	if err != nil {
		return "", fmt.Errorf("analysis call: %w", err)
	}

	var resp analysisResponse
	if err := decodeStrict(raw, &resp); err != nil {
		return "", err
	}
	return resp.Analysis, nil
}

func (s *llmPanelService) Synthesize(ctx context.Context, originalText, proposedText string, discussion []string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	joined := ""
	for i, d := range discussion {
		joined += fmt.Sprintf("--- Entry %d ---\n%s\n", i+1, d)
	}

	prompt := fmt.Sprintf(`Synthesize the discussion about a proposed revision to a canon entry.
Summarize the strongest points for and against, and note unresolved concerns.

Current text:
%s

Proposed text:
%s

Discussion entries:
%s

Respond with ONLY a JSON object: {"analysis": "<one paragraph>"}`,
		originalText, proposedText, joined)

	raw, err := s.provider.Generate(ctx, prompt, llm.WithTemperature(0.3))
	if err != nil {
		return "", fmt.Errorf("synthesis call: %w", err)
	}

	var resp analysisResponse
	if err := decodeStrict(raw, &resp); err != nil {
		return "", err
	}
	return resp.Analysis, nil
}
