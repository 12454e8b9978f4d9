package implementation

import (
	"context"
	"errors"
	"fmt"

	"communal-canon-be/internal/entity"
	"communal-canon-be/internal/mapper"
	"communal-canon-be/internal/model"
	"communal-canon-be/internal/pkg/apperror"
	"communal-canon-be/internal/repository/contract"
	"communal-canon-be/internal/repository/specification"
	"communal-canon-be/pkg/placement"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type PublishedEntryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.EntryMapper
}

func NewPublishedEntryRepository(db *gorm.DB) contract.PublishedEntryRepository {
	return &PublishedEntryRepositoryImpl{
		db:     db,
		mapper: mapper.NewEntryMapper(),
	}
}

func (r *PublishedEntryRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *PublishedEntryRepositoryImpl) Create(ctx context.Context, entry *entity.PublishedEntry) error {
	m := r.mapper.ToModel(entry)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperror.Conflict(apperror.CodeRefCollision,
				fmt.Sprintf("entry %s already exists", entry.Ref))
		}
		return err
	}
	*entry = *r.mapper.ToEntity(m)
	return nil
}

func (r *PublishedEntryRepositoryImpl) Update(ctx context.Context, entry *entity.PublishedEntry) error {
	m := r.mapper.ToModel(entry)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*entry = *r.mapper.ToEntity(m)
	return nil
}

func (r *PublishedEntryRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PublishedEntry, error) {
	var m model.PublishedEntry
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *PublishedEntryRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PublishedEntry, error) {
	var models []*model.PublishedEntry
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *PublishedEntryRepositoryImpl) ChapterStats(ctx context.Context) ([]placement.ChapterStat, error) {
	var stats []placement.ChapterStat
	err := r.db.WithContext(ctx).
		Model(&model.PublishedEntry{}).
		Select("chapter, MAX(theme) AS theme, COUNT(*) AS verse_count, MAX(verse) AS max_verse").
		Group("chapter").
		Order("chapter ASC").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *PublishedEntryRepositoryImpl) RefExists(ctx context.Context, ref string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.PublishedEntry{}).
		Where("ref = ?", ref).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

type EntryVersionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.EntryMapper
}

func NewEntryVersionRepository(db *gorm.DB) contract.EntryVersionRepository {
	return &EntryVersionRepositoryImpl{
		db:     db,
		mapper: mapper.NewEntryMapper(),
	}
}

func (r *EntryVersionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *EntryVersionRepositoryImpl) Create(ctx context.Context, version *entity.EntryVersion) error {
	m := r.mapper.VersionToModel(version)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*version = *r.mapper.VersionToEntity(m)
	return nil
}

func (r *EntryVersionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.EntryVersion, error) {
	var models []*model.EntryVersion
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.VersionsToEntities(models), nil
}
