package consensus

import (
	"context"

	"communal-canon-be/internal/pkg/logger"
	"communal-canon-be/pkg/evaluator"

	"github.com/alitto/pond/v2"
)

// Ballot is one panel member's completed evaluation.
type Ballot struct {
	Member    PanelMember
	Choice    VoteChoice
	Rationale string
}

// PanelEvaluator runs a session's panel against the evaluation service.
// Members are processed in sequential batches (rate limits on the service),
// with evaluations inside a batch running in parallel. A failed member
// evaluation abstains with a rationale instead of failing the panel.
type PanelEvaluator struct {
	voter     evaluator.PanelVoterService
	batchSize int
	logger    logger.ILogger
}

func NewPanelEvaluator(voter evaluator.PanelVoterService, batchSize int, logger logger.ILogger) *PanelEvaluator {
	if batchSize < 1 {
		batchSize = 5
	}
	return &PanelEvaluator{
		voter:     voter,
		batchSize: batchSize,
		logger:    logger,
	}
}

func (e *PanelEvaluator) Evaluate(ctx context.Context, members []PanelMember, subjectText string) []Ballot {
	ballots := make([]Ballot, len(members))

	for start := 0; start < len(members); start += e.batchSize {
		end := start + e.batchSize
		if end > len(members) {
			end = len(members)
		}

		pool := pond.NewPool(end - start)
		group := pool.NewGroupContext(ctx)
		for i := start; i < end; i++ {
			i := i
			group.Submit(func() {
				ballots[i] = e.evaluateMember(ctx, members[i], subjectText)
			})
		}
		if err := group.Wait(); err != nil {
			e.logger.Warn("CONSENSUS", "Panel batch interrupted", map[string]interface{}{
				"error": err.Error(),
			})
		}
		pool.StopAndWait()
	}

	return ballots
}

func (e *PanelEvaluator) evaluateMember(ctx context.Context, member PanelMember, subjectText string) Ballot {
	result, err := e.voter.CastBallot(ctx, member.Perspective, string(member.Category), subjectText)
	if err != nil {
		e.logger.Warn("CONSENSUS", "Panel member evaluation failed, abstaining", map[string]interface{}{
			"voter_id": member.VoterID,
			"error":    err.Error(),
		})
		return Ballot{
			Member:    member,
			Choice:    ChoiceAbstain,
			Rationale: "evaluation unavailable; abstained",
		}
	}
	return Ballot{
		Member:    member,
		Choice:    VoteChoice(result.Choice),
		Rationale: result.Rationale,
	}
}
