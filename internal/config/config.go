package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Ai         AIConfig
	Governance GovernanceConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	PipelineTopic      string
	AuditQueueSize     int
}

type DatabaseConfig struct {
	Connection string
}

type AIConfig struct {
	LLMProvider   string // "ollama", etc
	LLMModel      string // e.g. "llama3", "qwen2.5"
	OllamaBaseURL string
	CallTimeout   time.Duration // per external evaluator call
}

// GovernanceConfig holds the quantitative rules of the pipeline. Defaults
// follow the charter; every knob is overridable via environment.
type GovernanceConfig struct {
	SubmissionThreshold float64 // compliance pass for first-time submissions
	RevisionThreshold   float64 // compliance pass for revisions
	AmendmentThreshold  float64 // compliance pass for amendments

	QuorumFraction     float64
	VotingWindow       time.Duration
	DiscussionWindow   time.Duration
	EligibleHumanCount int // size of the human electorate (roster is external)

	SimilarityWarnBelow float64 // refinement drift warning, not a gate
	PanelBatchSize      int     // concurrent panel evaluations per batch

	CooldownDays          int
	EscalatedCooldownDays int
	CooldownEscalationAt  int // rejection count that triggers escalation

	PrincipleCacheTTL time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			PipelineTopic:      getEnv("GOVERN_SUBMISSION_TOPIC_NAME", "GOVERN_SUBMISSION"),
			AuditQueueSize:     getEnvAsInt("AUDIT_QUEUE_SIZE", 256),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Ai: AIConfig{
			LLMProvider:   getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:      getEnv("LLM_MODEL", "llama3"),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			CallTimeout:   time.Duration(getEnvAsInt("AI_CALL_TIMEOUT_SECONDS", 60)) * time.Second,
		},
		Governance: GovernanceConfig{
			SubmissionThreshold: getEnvAsFloat("COMPLIANCE_SUBMISSION_THRESHOLD", 0.70),
			RevisionThreshold:   getEnvAsFloat("COMPLIANCE_REVISION_THRESHOLD", 0.75),
			AmendmentThreshold:  getEnvAsFloat("COMPLIANCE_AMENDMENT_THRESHOLD", 0.80),

			QuorumFraction:     getEnvAsFloat("VOTING_QUORUM_FRACTION", 0.10),
			VotingWindow:       time.Duration(getEnvAsInt("VOTING_WINDOW_DAYS", 7)) * 24 * time.Hour,
			DiscussionWindow:   time.Duration(getEnvAsInt("DISCUSSION_WINDOW_DAYS", 7)) * 24 * time.Hour,
			EligibleHumanCount: getEnvAsInt("VOTING_ELIGIBLE_HUMANS", 25),

			SimilarityWarnBelow: getEnvAsFloat("REFINEMENT_SIMILARITY_WARN", 0.90),
			PanelBatchSize:      getEnvAsInt("PANEL_BATCH_SIZE", 5),

			CooldownDays:          getEnvAsInt("REVISION_COOLDOWN_DAYS", 30),
			EscalatedCooldownDays: getEnvAsInt("REVISION_COOLDOWN_ESCALATED_DAYS", 180),
			CooldownEscalationAt:  getEnvAsInt("REVISION_COOLDOWN_ESCALATION_AT", 3),

			PrincipleCacheTTL: time.Duration(getEnvAsInt("PRINCIPLE_CACHE_TTL_MINUTES", 5)) * time.Minute,
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
