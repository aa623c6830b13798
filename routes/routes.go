package routes

import (
	"database/sql"

	"squadfinder_backend/db"
	"squadfinder_backend/engine"
	"squadfinder_backend/handlers"
	"squadfinder_backend/middleware"
	"squadfinder_backend/relay"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(r *gin.Engine, database *sql.DB, store db.Store, eng *engine.Engine,
	tokens *middleware.TokenService, mailer *relay.Client, baseURL string, log *zap.Logger) {

	squadHandler := handlers.NewSquadHandler(store, eng, log)
	authHandler := handlers.NewAuthHandler(tokens, mailer, baseURL, log)
	healthHandler := handlers.NewHealthHandler(database)

	// Every route allows anonymous access; the session, when present, only
	// attributes created squads.
	r.Use(middleware.OptionalSession(tokens))

	r.GET("/health", healthHandler.HealthCheck)

	// Squad routes
	r.GET("/squads", squadHandler.GetSquads)
	r.POST("/squads", squadHandler.CreateSquad)
	r.POST("/squads/:id/join", squadHandler.JoinSquad)
	r.POST("/squads/:id/unlock", squadHandler.UnlockSquad)
	r.PUT("/squads/:id", squadHandler.UpdateSquad)
	r.DELETE("/squads/:id", squadHandler.DeleteSquad)

	// Auth routes
	r.POST("/auth/link", authHandler.RequestLink)
	r.GET("/auth/verify", authHandler.Verify)
	r.GET("/auth/session", authHandler.Session)
}
