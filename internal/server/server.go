package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"

	"github.com/councilstream/moodcanvas/internal/app"
	"github.com/councilstream/moodcanvas/internal/broadcast"
	apperrors "github.com/councilstream/moodcanvas/internal/errors"
	"github.com/councilstream/moodcanvas/internal/platform/config"
	"github.com/councilstream/moodcanvas/internal/platform/logging"
)

type Server struct {
	echo        *echo.Echo
	config      *config.Config
	service     *app.Service
	broadcaster *broadcast.Broadcaster
	redisClient *goredis.Client // nil when Pub/Sub ingestion is disabled
	limits      *ConnectionLimits
	startTime   time.Time
}

func NewServer(cfg *config.Config, service *app.Service, broadcaster *broadcast.Broadcaster, redisClient *goredis.Client) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestID())
	e.Use(requestIDIntoContext)
	e.Use(middleware.Recover())
	e.Use(apperrors.Middleware())

	srv := &Server{
		echo:        e,
		config:      cfg,
		service:     service,
		broadcaster: broadcaster,
		redisClient: redisClient,
		limits: NewConnectionLimits(
			cfg.MaxWebSocketConnections,
			cfg.MaxConnectionsPerIP,
			cfg.ConnectionRatePerSec,
			cfg.ConnectionRateBurst,
		),
		startTime: time.Now(),
	}

	srv.registerRoutes()
	return srv
}

func (s *Server) Start() error {
	slog.Info("Starting server", "port", s.config.Port)
	return s.echo.Start(fmt.Sprintf(":%s", s.config.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// requestIDIntoContext copies echo's request ID into the request context so
// slog lines carry it.
func requestIDIntoContext(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Response().Header().Get(echo.HeaderXRequestID)
		if id != "" {
			ctx := logging.WithRequestID(c.Request().Context(), id)
			c.SetRequest(c.Request().WithContext(ctx))
		}
		return next(c)
	}
}
