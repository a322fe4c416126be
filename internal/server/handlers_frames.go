package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	apperrors "github.com/councilstream/moodcanvas/internal/errors"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // renderers embed the socket from OBS browser sources
	},
}

func (s *Server) handleFrameSocket(c echo.Context) error {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperrors.ValidationError("invalid session ID").WithContext("id", c.Param("id"))
	}

	ip := c.RealIP()
	if ok, reason := s.limits.Acquire(ip); !ok {
		slog.Warn("Renderer connection rejected", "ip", ip, "reason", string(reason))
		return echo.NewHTTPError(http.StatusTooManyRequests, string(reason))
	}
	defer s.limits.Release(ip)

	// Renderers may connect before the first utterance arrives.
	if _, err := s.service.EnsureSession(sessionID); err != nil {
		return apperrors.InternalError("failed to ensure render session", err)
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return fmt.Errorf("failed to upgrade WebSocket: %w", err)
	}

	if err := s.broadcaster.Register(sessionID, conn); err != nil {
		// The broadcaster closed the connection already.
		slog.Warn("Failed to register renderer", "session_id", sessionID.String(), "error", err)
		return nil
	}

	// Read pump. Renderers never send application data; this just surfaces
	// disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	s.broadcaster.Unregister(sessionID, conn)
	return nil
}
