package contract

import (
	"context"

	"communal-canon-be/internal/entity"
	"communal-canon-be/internal/repository/specification"
	"communal-canon-be/pkg/consensus"

	"github.com/google/uuid"
)

type VotingSessionRepository interface {
	Create(ctx context.Context, session *entity.VotingSession) error
	// UpdateOutcome persists the resolution columns (status, approval rate,
	// closed at) and nothing else; counter columns belong to IncrementCounter.
	UpdateOutcome(ctx context.Context, session *entity.VotingSession) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.VotingSession, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.VotingSession, error)
	// IncrementCounter bumps the per-channel tally column for one vote
	// in a single UPDATE, safe under concurrent casting.
	IncrementCounter(ctx context.Context, sessionId uuid.UUID, kind consensus.VoterKind, choice consensus.VoteChoice) error
}
