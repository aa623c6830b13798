package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"squadfinder_backend/relay"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	port := os.Getenv("RELAY_PORT")
	if port == "" {
		port = "8090"
	}
	apiKey := os.Getenv("RESEND_API_KEY")
	if apiKey == "" {
		logger.Fatal("RESEND_API_KEY environment variable is required")
	}
	sender := os.Getenv("MAIL_SENDER")
	if sender == "" {
		sender = "Squad Finder <noreply@squadfinder.app>"
	}

	handler := relay.NewHandler(apiKey, sender, nil, logger)

	r := gin.Default()
	r.Any("/", handler.Handle)

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down relay...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("relay forced to shutdown", zap.Error(err))
	}
}
