package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	s.echo.GET("/version", s.handleVersion)

	api := s.echo.Group("/api")
	api.POST("/sessions", s.handleCreateSession)
	api.GET("/sessions", s.handleListSessions)
	api.GET("/sessions/:id", s.handleSessionStats)
	api.DELETE("/sessions/:id", s.handleCloseSession)
	api.POST("/sessions/:id/reset", s.handleResetSession)

	utteranceLimiter := newRateLimiter(s.config.UtteranceRatePerSec, s.config.UtteranceRateBurst)
	api.POST("/sessions/:id/utterances", s.handleIngestUtterance, utteranceLimiter)

	api.GET("/sessions/:id/mood", s.handleMood)
	api.GET("/sessions/:id/mood/arc", s.handleMoodArc)

	api.POST("/sessions/:id/effects", s.handleApplyEffect)
	api.POST("/sessions/:id/layout", s.handleApplyLayout)
	api.DELETE("/sessions/:id/layers", s.handleClearLayers)
	api.DELETE("/sessions/:id/layers/:layerID", s.handleRemoveLayer)

	// Frame delivery for renderers (OBS browser sources etc.)
	s.echo.GET("/ws/frames/:id", s.handleFrameSocket)
}
