package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/matthieukhl/telcodata/internal/database"
	"github.com/matthieukhl/telcodata/internal/report"
)

const version = "0.1.0"

type Server struct {
	router *gin.Engine
	db     *database.DB
	log    *slog.Logger
}

// NewServer creates a new server instance
func NewServer(db *database.DB, log *slog.Logger) *Server {
	router := gin.New()
	router.Use(gin.Recovery())

	server := &Server{
		router: router,
		db:     db,
		log:    log,
	}

	server.setupRoutes()
	return server
}

// Handler exposes the router for tests and custom listeners.
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.GET("/health", s.healthCheck)
		api.GET("/report", s.summary)
		api.GET("/verify", s.verify)
	}
}

// healthCheck endpoint for monitoring
func (s *Server) healthCheck(c *gin.Context) {
	if err := s.db.HealthCheck(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "error",
			"error":  "database connection failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "telcodata",
		"version": version,
	})
}

func (s *Server) summary(c *gin.Context) {
	summary, err := report.Build(c.Request.Context(), s.db)
	if err != nil {
		s.log.Error("server: report failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build report"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (s *Server) verify(c *gin.Context) {
	violations, err := report.Verify(c.Request.Context(), s.db)
	if err != nil {
		s.log.Error("server: verify failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to verify dataset"})
		return
	}
	if violations == nil {
		violations = []report.Violation{}
	}
	c.JSON(http.StatusOK, gin.H{
		"ok":         len(violations) == 0,
		"violations": violations,
	})
}

// Start starts the HTTP server
func (s *Server) Start(addr string) error {
	s.log.Info("server: listening", "addr", addr)
	return s.router.Run(addr)
}
