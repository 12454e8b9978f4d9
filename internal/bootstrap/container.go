package bootstrap

import (
	"context"
	"log"

	"communal-canon-be/internal/config"
	"communal-canon-be/internal/controller"
	"communal-canon-be/internal/pkg/logger"
	"communal-canon-be/internal/repository/implementation"
	"communal-canon-be/internal/repository/specification"
	"communal-canon-be/internal/repository/unitofwork"
	"communal-canon-be/internal/service"
	"communal-canon-be/pkg/audit"
	"communal-canon-be/pkg/compliance"
	"communal-canon-be/pkg/consensus"
	"communal-canon-be/pkg/evaluator"
	"communal-canon-be/pkg/llm/factory"
	"communal-canon-be/pkg/placement"
	"communal-canon-be/pkg/refinement"

	pktNats "communal-canon-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	SubmissionController controller.ISubmissionController
	VotingController     controller.IVotingController
	RevisionController   controller.IRevisionController
	AuditController      controller.IAuditController

	// Background Services (Exposed for main.go to run)
	PipelineService service.IPipelineService
	AuditTrail      *audit.Trail

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS (best-effort: governance runs without the broadcast feed)
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// 3. Evaluator panel
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	judgmentService := evaluator.NewJudgmentService(llmProvider, cfg.Ai.CallTimeout)
	rewriteService := evaluator.NewRewriteService(llmProvider, cfg.Ai.CallTimeout)
	similarityService := evaluator.NewSimilarityService(llmProvider, cfg.Ai.CallTimeout)
	panelService := evaluator.NewPanelService(llmProvider, cfg.Ai.CallTimeout)
	placementAnalyst := evaluator.NewPlacementAnalyst(llmProvider, cfg.Ai.CallTimeout)

	// 4. Governance engines
	principleSource := compliance.NewCachedPrincipleSource(func(ctx context.Context) ([]compliance.Principle, error) {
		uow := uowFactory.NewUnitOfWork(ctx)
		rows, err := uow.PrincipleRepository().FindAll(ctx, specification.ActivePrinciples{})
		if err != nil {
			return nil, err
		}
		principles := make([]compliance.Principle, 0, len(rows))
		for _, row := range rows {
			principles = append(principles, compliance.Principle{
				Code:        row.Code,
				Name:        row.Name,
				Description: row.Description,
				Weight:      row.Weight,
			})
		}
		return principles, nil
	}, cfg.Governance.PrincipleCacheTTL)

	scorer := compliance.NewScorer(
		principleSource,
		judgmentService,
		compliance.Thresholds{
			Submission: cfg.Governance.SubmissionThreshold,
			Revision:   cfg.Governance.RevisionThreshold,
			Amendment:  cfg.Governance.AmendmentThreshold,
		},
		cfg.Governance.PanelBatchSize,
		sysLogger,
	)
	refiner := refinement.NewRefiner(rewriteService, similarityService, cfg.Governance.SimilarityWarnBelow, sysLogger)
	panelEvaluator := consensus.NewPanelEvaluator(panelService, cfg.Governance.PanelBatchSize, sysLogger)
	placer := placement.NewPlacer(placementAnalyst, sysLogger)

	// 5. Audit trail (Postgres sink, NATS fan-out)
	auditSink := service.NewAuditRepositorySink(implementation.NewAuditEventRepository(db))
	auditTrail := audit.NewTrail(auditSink, natsPub, sysLogger, cfg.App.AuditQueueSize)
	auditTrail.Start()

	// 6. Services
	publisherService := service.NewPublisherService(cfg.App.PipelineTopic, pubSub)
	submissionService := service.NewSubmissionService(uowFactory, publisherService, auditTrail)
	votingService := service.NewVotingService(uowFactory, panelEvaluator, cfg.Governance, auditTrail, sysLogger)
	revisionService := service.NewRevisionService(uowFactory, scorer, panelService, votingService, cfg.Governance, auditTrail, sysLogger)
	placementService := service.NewPlacementService(uowFactory, placer, auditTrail, sysLogger)
	auditService := service.NewAuditService(uowFactory)

	pipelineService := service.NewPipelineService(
		pubSub,
		cfg.App.PipelineTopic,
		uowFactory,
		scorer,
		refiner,
		votingService,
		revisionService,
		placementService,
		auditTrail,
		sysLogger,
	)

	// 7. Controllers
	return &Container{
		SubmissionController: controller.NewSubmissionController(submissionService),
		VotingController:     controller.NewVotingController(votingService, pipelineService),
		RevisionController:   controller.NewRevisionController(revisionService),
		AuditController:      controller.NewAuditController(auditService),

		PipelineService: pipelineService,
		AuditTrail:      auditTrail,

		Logger: sysLogger,
	}
}
