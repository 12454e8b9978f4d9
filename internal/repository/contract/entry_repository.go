package contract

import (
	"context"

	"communal-canon-be/internal/entity"
	"communal-canon-be/internal/repository/specification"
	"communal-canon-be/pkg/placement"
)

type PublishedEntryRepository interface {
	// Create returns a conflict error with code REF_COLLISION when the
	// ref is already taken.
	Create(ctx context.Context, entry *entity.PublishedEntry) error
	Update(ctx context.Context, entry *entity.PublishedEntry) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PublishedEntry, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PublishedEntry, error)
	// ChapterStats aggregates verse counts per chapter for placement.
	ChapterStats(ctx context.Context) ([]placement.ChapterStat, error)
	RefExists(ctx context.Context, ref string) (bool, error)
}

type EntryVersionRepository interface {
	Create(ctx context.Context, version *entity.EntryVersion) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.EntryVersion, error)
}
