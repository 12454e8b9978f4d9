package main

import (
	"context"
	"log"

	"communal-canon-be/internal/bootstrap"
	"communal-canon-be/internal/config"
	"communal-canon-be/internal/server"
	"communal-canon-be/internal/tracer"
	"communal-canon-be/pkg/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	// 3. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 4. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.AuditTrail.Close()

	// 5. Start Background Services
	go func() {
		log.Println("Background: Starting Governance Pipeline...")
		if err := container.PipelineService.Consume(context.Background()); err != nil {
			log.Printf("Background Pipeline Error: %v", err)
		}
	}()

	// 6. Initialize Server
	srv := server.New(cfg, container)

	// 7. Run Server
	log.Fatal(srv.Run())
}
