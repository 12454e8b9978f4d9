package contract

import (
	"context"

	"communal-canon-be/internal/entity"
	"communal-canon-be/internal/repository/specification"

	"github.com/google/uuid"
)

type RefinementRecordRepository interface {
	Create(ctx context.Context, record *entity.RefinementRecord) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RefinementRecord, error)
	// FindLatest returns the most advanced record for a submission,
	// or nil when no refinement has run yet.
	FindLatest(ctx context.Context, submissionId uuid.UUID) (*entity.RefinementRecord, error)
}
