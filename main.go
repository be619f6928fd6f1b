package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"github.com/arpitariyan/website-builder-backend/pkg/config"
	"github.com/arpitariyan/website-builder-backend/pkg/credentials"
	"github.com/arpitariyan/website-builder-backend/pkg/crypto"
	"github.com/arpitariyan/website-builder-backend/pkg/database"
	"github.com/arpitariyan/website-builder-backend/pkg/handlers"
	"github.com/arpitariyan/website-builder-backend/pkg/llm"
	"github.com/arpitariyan/website-builder-backend/pkg/repositories"
	"github.com/arpitariyan/website-builder-backend/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("environment", cfg.Env),
		zap.String("database", cfg.Database.Host),
		zap.Strings("fallback_order", cfg.Generation.FallbackOrder))

	ctx := context.Background()

	// Migrations run through database/sql; the serving path uses pgxpool.
	migrationDB, err := sql.Open("pgx", cfg.Database.ConnectionString())
	if err != nil {
		logger.Fatal("Failed to open migration connection", zap.Error(err))
	}
	if err := database.RunMigrations(migrationDB, "migrations", logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	if err := migrationDB.Close(); err != nil {
		logger.Warn("Failed to close migration connection", zap.Error(err))
	}

	db, err := database.NewConnection(ctx, &database.Config{
		URL:            cfg.Database.ConnectionString(),
		MaxConnections: cfg.Database.MaxConnections,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	encryptor, err := crypto.NewCredentialEncryptor(cfg.CredentialsKey)
	if err != nil {
		logger.Fatal("Failed to create credential encryptor", zap.Error(err))
	}

	knowledgeRepo := repositories.NewKnowledgeRepository(db)
	credentialRepo := repositories.NewCredentialRepository(db)

	credentialProvider := credentials.NewProvider(credentialRepo, encryptor, &cfg.Providers, logger)
	backendFactory := llm.NewBackendFactory(&cfg.Providers, logger)
	knowledgeService := services.NewKnowledgeService(knowledgeRepo, &cfg.Generation, logger)
	generationService := services.NewGenerationService(knowledgeService, credentialProvider, backendFactory, &cfg.Generation, logger)

	mux := http.NewServeMux()
	handlers.NewHealthHandler(cfg, logger).RegisterRoutes(mux)
	handlers.NewGenerateHandler(generationService, logger).RegisterRoutes(mux)
	handlers.NewKnowledgeHandler(knowledgeService, logger).RegisterRoutes(mux)
	handlers.NewCredentialsHandler(credentialProvider, logger).RegisterRoutes(mux)

	addr := cfg.BindAddr + ":" + cfg.Port
	logger.Info("Starting website-builder-backend",
		zap.String("addr", addr),
		zap.String("version", cfg.Version))
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

// newLogger builds a production logger, or a development one for local runs.
func newLogger(env string) (*zap.Logger, error) {
	if env == "local" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
