package integration

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"communal-canon-be/internal/entity"
	"communal-canon-be/internal/pkg/apperror"
	"communal-canon-be/internal/repository/specification"
	"communal-canon-be/internal/repository/unitofwork"
	"communal-canon-be/pkg/consensus"
	"communal-canon-be/pkg/database"
	"communal-canon-be/pkg/revision"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.SubmissionRepository())
	assert.NotNil(t, uow.VotingSessionRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	// Verify Data Access (implies columns exist)
	t.Run("Check Principle Repository", func(t *testing.T) {
		count, err := uow.PrincipleRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Principle count: %d", count)
	})

	t.Run("Check Audit Event Repository", func(t *testing.T) {
		count, err := uow.AuditEventRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("AuditEvent count: %d", count)
	})

	t.Run("Check Transactional Session Setup", func(t *testing.T) {
		// A session and its panel must land in one transaction.
		submissionId := uuid.New()
		submission := &entity.Submission{
			Id:      submissionId,
			Title:   "Integration Submission " + uuid.New().String(),
			Type:    entity.SubmissionTypeVerse,
			RawText: "On the keeping of shared records.",
			OwnerId: uuid.New(),
			Status:  entity.SubmissionVoting,
		}
		err := uow.SubmissionRepository().Create(context.Background(), submission)
		assert.NoError(t, err)

		ctx := context.Background()
		err = uow.Begin(ctx)
		assert.NoError(t, err)
		defer uow.Rollback()

		sessionId := uuid.New()
		session := &entity.VotingSession{
			Id:                 sessionId,
			SubjectId:          submissionId,
			SubjectType:        consensus.SubjectNewSubmission,
			ApprovalThreshold:  0.60,
			QuorumFraction:     0.10,
			EligibleHumanCount: 25,
			Status:             consensus.StatusActive,
			StartsAt:           time.Now(),
			EndsAt:             time.Now().Add(7 * 24 * time.Hour),
		}
		err = uow.VotingSessionRepository().Create(ctx, session)
		assert.NoError(t, err)

		voter := &entity.AutomatedVoter{
			Id:          uuid.New(),
			SessionId:   sessionId,
			Category:    consensus.CategoryTradition,
			Perspective: "doctrinal consistency",
		}
		err = uow.AutomatedVoterRepository().Create(ctx, voter)
		assert.NoError(t, err)

		err = uow.Commit()
		assert.NoError(t, err)

		t.Log("Successfully created Session with Panel Voter in Transaction")
	})

	t.Run("Check Open Proposal Unique Per Entry", func(t *testing.T) {
		// The partial unique index on open proposals must surface as a
		// conflict, not a raw driver error, and must also catch proposals
		// sitting in the refining stage.
		ctx := context.Background()
		ref := fmt.Sprintf("997:%d", time.Now().UnixNano()%1_000_000)

		first := &entity.RevisionProposal{
			Id:           uuid.New(),
			EntryRef:     ref,
			ProposerId:   uuid.New(),
			OriginalText: "As it stands.",
			ProposedText: "As it could stand.",
			Status:       revision.StatusRefining,
		}
		err := uow.RevisionProposalRepository().Create(ctx, first)
		assert.NoError(t, err)

		second := &entity.RevisionProposal{
			Id:           uuid.New(),
			EntryRef:     ref,
			ProposerId:   uuid.New(),
			OriginalText: "As it stands.",
			ProposedText: "As it could stand, otherwise.",
			Status:       revision.StatusProposed,
		}
		err = uow.RevisionProposalRepository().Create(ctx, second)
		if assert.Error(t, err) {
			assert.True(t, apperror.IsKind(err, apperror.KindConflict))
			assert.Equal(t, apperror.CodeProposalExists, apperror.CodeOf(err))
		}

		open, err := uow.RevisionProposalRepository().FindOne(ctx,
			specification.OpenProposalForEntry{Ref: ref})
		assert.NoError(t, err)
		if assert.NotNil(t, open) {
			assert.Equal(t, first.Id, open.Id)
		}
	})

	t.Run("Check Outcome Update Preserves Counters", func(t *testing.T) {
		// A tally resolves from a snapshot read before the last votes land;
		// writing the outcome must not reset counters bumped in between.
		ctx := context.Background()
		submission := &entity.Submission{
			Id:      uuid.New(),
			Title:   "Integration Submission " + uuid.New().String(),
			Type:    entity.SubmissionTypeVerse,
			RawText: "On the counting of voices.",
			OwnerId: uuid.New(),
			Status:  entity.SubmissionVoting,
		}
		err := uow.SubmissionRepository().Create(ctx, submission)
		assert.NoError(t, err)

		session := &entity.VotingSession{
			Id:                 uuid.New(),
			SubjectId:          submission.Id,
			SubjectType:        consensus.SubjectNewSubmission,
			ApprovalThreshold:  0.60,
			QuorumFraction:     0.10,
			EligibleHumanCount: 25,
			Status:             consensus.StatusActive,
			StartsAt:           time.Now(),
			EndsAt:             time.Now().Add(7 * 24 * time.Hour),
		}
		err = uow.VotingSessionRepository().Create(ctx, session)
		assert.NoError(t, err)

		// Vote lands after the tally read its snapshot.
		err = uow.VotingSessionRepository().IncrementCounter(ctx, session.Id,
			consensus.VoterHuman, consensus.ChoiceFor)
		assert.NoError(t, err)

		rate := 1.0
		now := time.Now()
		session.Status = consensus.StatusApproved
		session.ApprovalRate = &rate
		session.ClosedAt = &now
		err = uow.VotingSessionRepository().UpdateOutcome(ctx, session)
		assert.NoError(t, err)

		stored, err := uow.VotingSessionRepository().FindOne(ctx,
			specification.ByID{ID: session.Id})
		assert.NoError(t, err)
		if assert.NotNil(t, stored) {
			assert.Equal(t, consensus.StatusApproved, stored.Status)
			assert.NotNil(t, stored.ClosedAt)
			assert.Equal(t, 1, stored.Counters.HumanFor)
		}
	})
}
