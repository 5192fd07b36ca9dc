package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/agenthands/providers/internal/config"
	"github.com/agenthands/providers/internal/driver"
	"github.com/agenthands/providers/internal/logging"
	"github.com/agenthands/providers/internal/server"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	gin.SetMode(cfg.Server.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d, err := driver.NewNeo4jDriver(ctx, driver.Options{
		URI:          cfg.Neo4j.URI,
		Username:     cfg.Neo4j.User,
		Password:     cfg.Neo4j.Password,
		Database:     cfg.Neo4j.Database,
		QueryTimeout: cfg.Neo4j.QueryTimeout(),
	}, logger)
	if err != nil {
		logger.Fatal("Failed to connect to Neo4j", zap.Error(err))
	}

	srv := server.NewServer(cfg, d, logger)
	httpServer := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: srv.SetupRouter(),
	}

	go func() {
		logger.Info("Starting server",
			zap.String("port", cfg.Server.Port),
			zap.String("neo4j_uri", cfg.Neo4j.URI),
			zap.String("database", cfg.Neo4j.Database),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shut down HTTP server", zap.Error(err))
	}
	if err := d.Close(shutdownCtx); err != nil {
		logger.Error("Failed to close Neo4j driver", zap.Error(err))
	}
}
