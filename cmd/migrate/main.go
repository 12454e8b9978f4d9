package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"communal-canon-be/internal/model"
	"communal-canon-be/pkg/database"
	"communal-canon-be/pkg/revision"

	"github.com/joho/godotenv"
)

func openProposalStatusList() string {
	statuses := revision.OpenStatuses()
	quoted := make([]string, len(statuses))
	for i, s := range statuses {
		quoted[i] = fmt.Sprintf("'%s'", s)
	}
	return strings.Join(quoted, ", ")
}

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting Authoritative GORM Migration...")

	// 3. Pre-Migration: Extensions (Things GORM AutoMigrate doesn't do)
	log.Println("Step 1: Setting up Extensions...")

	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	}

	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	// 4. AutoMigrate All Models (The Core Task)
	log.Println("Step 2: Running AutoMigrate for 12 Tables...")

	models := []interface{}{
		&model.Principle{},
		&model.Submission{},
		&model.ComplianceEvaluation{},
		&model.RefinementRecord{},
		&model.VotingSession{},
		&model.Vote{},
		&model.AutomatedVoter{},
		&model.RevisionProposal{},
		&model.DiscussionEntry{},
		&model.PublishedEntry{},
		&model.EntryVersion{},
		&model.AuditEvent{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 5. Post-Migration: Indexes GORM tags cannot express
	log.Println("Step 3: Creating Partial Indexes...")

	postMigrationSQL := []string{
		// One open voting session per subject at a time.
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_sessions_open_subject
		 ON voting_sessions (subject_id)
		 WHERE status IN ('pending', 'active', 'tallying');`,

		// One open revision proposal per entry at a time. The status list
		// comes from revision.OpenStatuses so the index cannot drift from
		// the lifecycle.
		fmt.Sprintf(`CREATE UNIQUE INDEX IF NOT EXISTS idx_proposals_open_entry
		 ON revision_proposals (entry_ref)
		 WHERE status IN (%s);`, openProposalStatusList()),
	}

	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}
