package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ecomovex-service/internal/infrastructure/config"
	"ecomovex-service/internal/infrastructure/persistence"
	intentRouter "ecomovex-service/internal/infrastructure/router"
	"ecomovex-service/internal/interface/api"
	"ecomovex-service/internal/interface/repository"
	"ecomovex-service/internal/usecase"
	"ecomovex-service/pkg/logger"
	"ecomovex-service/pkg/metrics"
	"ecomovex-service/pkg/utils"
	"ecomovex-service/templates"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	defer log.Sync()
	log.Info("Starting EcomoveX Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up MongoDB connection for the conversation store
	log.Info("Connecting to MongoDB")
	mongoClient, mongoDB, err := persistence.ConnectConversationStore(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoUser, cfg.MongoPassword)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	// Set up PostgreSQL connection for the plan store
	gormDB, err := gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}
	if err := repository.Migrate(gormDB); err != nil {
		log.Fatal("Failed to migrate plan tables", "error", err)
	}

	appMetrics := metrics.NewMetrics("ecomovex")

	// Set up repositories
	planRepo := repository.NewGormPlanRepository(gormDB)
	convRepo := repository.NewMongoConversationRepository(mongoDB, log)
	mapsRepo := repository.NewHTTPMapsRepository(cfg.MapsBaseURL, cfg.MapsAPIKey, cfg.MapsRateLimit, cfg.MapsCacheTTL, log, appMetrics)
	llmRepo := repository.NewHTTPLLMRepository(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, log)

	// Set up the pipeline
	classifier := utils.NewIntentClassifier(log)
	editParser := usecase.NewEditParser(llmRepo, log)
	mutator := usecase.NewPlanMutator(mapsRepo, log)
	validators := []usecase.Validator{
		usecase.NewStructuralValidator(log),
		usecase.NewScheduleValidator(log),
		usecase.NewBudgetValidator(mapsRepo, log),
		usecase.NewHoursValidator(mapsRepo, log),
	}
	merger := usecase.NewResultMerger()
	composer := usecase.NewPromptComposer(llmRepo, log, cfg.LLMTemperature, cfg.LLMMaxTokens)

	router := intentRouter.NewIntentRouter(log)
	router.Register(templates.NewEditTurnHandler(editParser, mutator, validators, log, appMetrics))
	router.Register(templates.NewQueryTurnHandler(validators, log))
	router.Register(templates.NewChitChatTurnHandler(log))

	orchestrator := usecase.NewChatOrchestrator(
		planRepo, convRepo, llmRepo,
		classifier, router, merger, composer,
		log, appMetrics,
		cfg.TurnTimeout, cfg.HistoryTurns,
	)

	// Set up HTTP server
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	api.SetupRoutes(engine, api.NewChatHandler(orchestrator, log))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      engine,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel()

	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("EcomoveX Service stopped")
}
