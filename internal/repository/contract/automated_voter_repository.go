package contract

import (
	"context"

	"communal-canon-be/internal/entity"
	"communal-canon-be/internal/repository/specification"
)

type AutomatedVoterRepository interface {
	Create(ctx context.Context, voter *entity.AutomatedVoter) error
	CreateBatch(ctx context.Context, voters []*entity.AutomatedVoter) error
	Update(ctx context.Context, voter *entity.AutomatedVoter) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AutomatedVoter, error)
}
