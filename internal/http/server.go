// Package http provides the HTTP server, router setup, and shared middleware.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/credvault/internal/config"
	credentialsHTTP "github.com/allisson/credvault/internal/credentials/http"
	"github.com/allisson/credvault/internal/metrics"
	oauthHTTP "github.com/allisson/credvault/internal/oauth/http"
)

// Server represents the main HTTP server.
type Server struct {
	db     *sql.DB
	router *gin.Engine
	server *http.Server
	logger *slog.Logger
}

// NewServer creates a new HTTP server. The router is assembled separately by
// SetupRouter so tests can exercise handlers without the full dependency set.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter assembles the gin router with middleware and all API routes.
func (s *Server) SetupRouter(
	cfg *config.Config,
	credentialHandler *credentialsHTTP.CredentialHandler,
	oauthHandler *oauthHTTP.OAuthHandler,
	metricsProvider *metrics.Provider,
) {
	gin.SetMode(cfg.GetGinMode())

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if cfg.MetricsEnabled && metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")
	if cfg.RateLimitEnabled {
		v1.Use(RateLimitMiddleware(cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger))
	}

	v1.GET("/credentials", credentialHandler.ListHandler)
	v1.PUT("/credentials/:provider/:type", credentialHandler.StoreHandler)
	v1.GET("/credentials/:provider/:type/reveal", credentialHandler.RevealHandler)
	v1.DELETE("/credentials/:provider/:type", credentialHandler.DeleteHandler)

	v1.GET("/oauth/:provider/start", oauthHandler.StartHandler)
	v1.GET("/oauth/:provider/callback", oauthHandler.CallbackHandler)

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server can serve traffic, checking the
// database connection.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{"database": "ok"}
	status := http.StatusOK
	ready := "ready"

	if s.db == nil || s.db.PingContext(c.Request.Context()) != nil {
		components["database"] = "error"
		status = http.StatusServiceUnavailable
		ready = "not_ready"
	}

	c.JSON(status, gin.H{
		"status":     ready,
		"components": components,
	})
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
