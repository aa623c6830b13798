package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"squadfinder_backend/config"
	"squadfinder_backend/db"
	"squadfinder_backend/engine"
	"squadfinder_backend/middleware"
	"squadfinder_backend/relay"
	"squadfinder_backend/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found") // Non-fatal in production
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	var logger *zap.Logger
	if cfg.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Connect to database
	database, err := db.Initialize(cfg.ConnString())
	if err != nil {
		logger.Fatal("error connecting to database", zap.Error(err))
	}
	defer database.Close()

	// Initialize database schema
	if err := db.InitSchema(database); err != nil {
		logger.Fatal("error initializing database schema", zap.Error(err))
	}

	if cfg.SeedData {
		if err := db.SeedData(database); err != nil {
			logger.Warn("error seeding initial data", zap.Error(err))
		}
	}

	store := db.NewSquadStore(database)

	// The listener holds its own connection; NOTIFY events from the squads
	// and members triggers land here.
	listener, err := db.NewChangeListener(cfg.ConnString(), logger)
	if err != nil {
		logger.Fatal("error starting change listener", zap.Error(err))
	}

	eng := engine.New(store, listener, logger)

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 10*time.Second)
	if err := eng.Load(loadCtx); err != nil {
		cancelLoad()
		logger.Fatal("initial load failed", zap.Error(err))
	}
	cancelLoad()

	runCtx, cancelRun := context.WithCancel(context.Background())
	defer cancelRun()
	go eng.Run(runCtx)

	tokens := middleware.NewTokenService([]byte(cfg.JWTSecret))
	mailer := relay.NewClient(cfg.RelayURL)

	// Initialize router
	r := gin.Default()

	// Setup CORS - the browse UI is served from a different origin
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{
		"Origin",
		"Content-Length",
		"Content-Type",
		"Authorization",
	}
	corsConfig.AllowMethods = []string{
		"GET",
		"POST",
		"PUT",
		"DELETE",
		"PATCH",
	}
	r.Use(cors.New(corsConfig))

	// Setup routes
	routes.SetupRoutes(r, database, store, eng, tokens, mailer, cfg.BaseURL, logger)

	// Run server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Stop reloads before the HTTP server so an in-flight load can't touch
	// torn-down state.
	cancelRun()
	if err := eng.Close(); err != nil {
		logger.Warn("error closing change listener", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}
}
