package contract

import (
	"context"

	"communal-canon-be/internal/entity"
	"communal-canon-be/internal/repository/specification"
)

type PrincipleRepository interface {
	Create(ctx context.Context, principle *entity.Principle) error
	Update(ctx context.Context, principle *entity.Principle) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Principle, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Principle, error)
}
