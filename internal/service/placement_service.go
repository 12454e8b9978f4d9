package service

import (
	"context"
	"fmt"
	"time"

	"communal-canon-be/internal/entity"
	"communal-canon-be/internal/pkg/apperror"
	"communal-canon-be/internal/pkg/logger"
	"communal-canon-be/internal/repository/contract"
	"communal-canon-be/internal/repository/specification"
	"communal-canon-be/internal/repository/unitofwork"
	"communal-canon-be/pkg/audit"
	"communal-canon-be/pkg/placement"
	"communal-canon-be/pkg/refinement"

	"github.com/google/uuid"
)

type IPlacementService interface {
	// Register places an approved submission into the canon: entry plus
	// initial version plus submission transition, atomically.
	Register(ctx context.Context, submissionId uuid.UUID, verseOverride *int) (*entity.PublishedEntry, error)
}

type placementService struct {
	uowFactory unitofwork.RepositoryFactory
	placer     *placement.Placer
	trail      *audit.Trail
	logger     logger.ILogger
}

func NewPlacementService(
	uowFactory unitofwork.RepositoryFactory,
	placer *placement.Placer,
	trail *audit.Trail,
	log logger.ILogger,
) IPlacementService {
	return &placementService{
		uowFactory: uowFactory,
		placer:     placer,
		trail:      trail,
		logger:     log,
	}
}

// repoCatalog adapts the published entry repository to the placer's read view.
type repoCatalog struct {
	repo contract.PublishedEntryRepository
}

func (c *repoCatalog) ChapterStats(ctx context.Context) ([]placement.ChapterStat, error) {
	return c.repo.ChapterStats(ctx)
}

func (c *repoCatalog) RefExists(ctx context.Context, ref string) (bool, error) {
	return c.repo.RefExists(ctx, ref)
}

func (s *placementService) Register(ctx context.Context, submissionId uuid.UUID, verseOverride *int) (*entity.PublishedEntry, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	submission, err := uow.SubmissionRepository().FindOne(ctx, specification.ByID{ID: submissionId})
	if err != nil {
		return nil, err
	}
	if submission == nil {
		return nil, apperror.NotFound(apperror.CodeSubmissionNotFound, "submission not found")
	}
	if submission.Status != entity.SubmissionApproved {
		return nil, apperror.Validation(apperror.CodeNotApproved,
			fmt.Sprintf("submission is %s, only approved submissions register", submission.Status))
	}

	textPrimary := submission.RawText
	textSecondary := ""
	record, err := uow.RefinementRecordRepository().FindLatest(ctx, submissionId)
	if err != nil {
		return nil, err
	}
	if record != nil {
		textPrimary = record.TextPrimary
		textSecondary = record.TextSecondary
		if record.Stage != refinement.StageCanonical {
			s.logger.Warn("PlacementService", "registering below canonical stage", map[string]interface{}{
				"submission_id": submissionId.String(),
				"stage":         string(record.Stage),
			})
		}
	} else {
		s.logger.Warn("PlacementService", "no refinement record, registering raw text", map[string]interface{}{
			"submission_id": submissionId.String(),
		})
	}

	catalog := &repoCatalog{repo: uow.PublishedEntryRepository()}
	spot, err := s.placer.Place(ctx, textPrimary, catalog, verseOverride)
	if err != nil {
		return nil, err
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	now := time.Now()
	publishedEntry := entity.PublishedEntry{
		Ref:           spot.Ref,
		Chapter:       spot.Chapter,
		Verse:         spot.Verse,
		TextPrimary:   textPrimary,
		TextSecondary: textSecondary,
		Theme:         spot.Theme,
		Version:       1,
		SubmissionId:  submission.Id,
		CreatedAt:     now,
	}
	if err := uow.PublishedEntryRepository().Create(ctx, &publishedEntry); err != nil {
		return nil, err
	}

	initialVersion := entity.EntryVersion{
		Id:            uuid.New(),
		EntryRef:      publishedEntry.Ref,
		Version:       1,
		TextPrimary:   textPrimary,
		TextSecondary: textSecondary,
		ChangeNote:    "initial registration",
		CreatedAt:     now,
	}
	if err := uow.EntryVersionRepository().Create(ctx, &initialVersion); err != nil {
		return nil, err
	}

	submission.Status = entity.SubmissionRegistered
	submission.EntryRef = &publishedEntry.Ref
	if err := uow.SubmissionRepository().Update(ctx, submission); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.trail.Emit(audit.Record{
		EventType:   audit.EventEntryRegistered,
		ActorKind:   "system",
		SubjectType: "entry",
		SubjectID:   publishedEntry.Ref,
		Details: map[string]interface{}{
			"submission_id": submission.Id.String(),
			"chapter":       spot.Chapter,
			"verse":         spot.Verse,
			"new_chapter":   spot.NewChapter,
			"fallback":      spot.Fallback,
		},
	})

	return &publishedEntry, nil
}
