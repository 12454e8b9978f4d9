package contract

import (
	"context"

	"communal-canon-be/internal/entity"
	"communal-canon-be/internal/repository/specification"
)

type RevisionProposalRepository interface {
	Create(ctx context.Context, proposal *entity.RevisionProposal) error
	Update(ctx context.Context, proposal *entity.RevisionProposal) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.RevisionProposal, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RevisionProposal, error)
}

type DiscussionEntryRepository interface {
	Create(ctx context.Context, entry *entity.DiscussionEntry) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DiscussionEntry, error)
}
