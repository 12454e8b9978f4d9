package contract

import (
	"context"

	"communal-canon-be/internal/entity"
	"communal-canon-be/internal/repository/specification"
)

type ComplianceEvaluationRepository interface {
	Create(ctx context.Context, evaluation *entity.ComplianceEvaluation) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ComplianceEvaluation, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ComplianceEvaluation, error)
}
