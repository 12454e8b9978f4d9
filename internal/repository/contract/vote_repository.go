package contract

import (
	"context"

	"communal-canon-be/internal/entity"
	"communal-canon-be/internal/repository/specification"
)

type VoteRepository interface {
	// Create returns a conflict error with code ALREADY_VOTED when the
	// (session, voter) pair already cast a vote.
	Create(ctx context.Context, vote *entity.Vote) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Vote, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
