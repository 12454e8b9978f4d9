package contract

import (
	"context"

	"communal-canon-be/internal/entity"
	"communal-canon-be/internal/repository/specification"
)

type SubmissionRepository interface {
	Create(ctx context.Context, submission *entity.Submission) error
	Update(ctx context.Context, submission *entity.Submission) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Submission, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Submission, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
