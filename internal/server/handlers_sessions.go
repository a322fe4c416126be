package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/councilstream/moodcanvas/internal/app"
	"github.com/councilstream/moodcanvas/internal/domain"
	apperrors "github.com/councilstream/moodcanvas/internal/errors"
)

type createSessionRequest struct {
	Style *string `json:"style"`
}

type sessionInfo struct {
	SessionID uuid.UUID   `json:"session_id"`
	CreatedAt time.Time   `json:"created_at"`
	Style     string      `json:"style"`
	Mood      domain.Mood `json:"mood"`
}

func summarize(session *app.RenderSession) sessionInfo {
	stats := session.Stats()
	return sessionInfo{
		SessionID: session.ID,
		CreatedAt: session.CreatedAt,
		Style:     stats.Background.Style,
		Mood:      stats.Mood.Mood,
	}
}

func (s *Server) handleCreateSession(c echo.Context) error {
	var req createSessionRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	var style *domain.Style
	if req.Style != nil {
		parsed, err := domain.ParseStyle(*req.Style)
		if err != nil {
			return apperrors.ValidationError(err.Error()).WithContext("style", *req.Style)
		}
		style = &parsed
	}

	session, err := s.service.CreateSession(style)
	if err != nil {
		return apperrors.InternalError("failed to create session", err)
	}

	return c.JSON(http.StatusCreated, summarize(session))
}

func (s *Server) handleListSessions(c echo.Context) error {
	sessions := s.service.Sessions()
	infos := make([]sessionInfo, 0, len(sessions))
	for _, session := range sessions {
		infos = append(infos, summarize(session))
	}
	return c.JSON(http.StatusOK, infos)
}

func (s *Server) handleSessionStats(c echo.Context) error {
	session, err := s.sessionFromPath(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, session.Stats())
}

func (s *Server) handleCloseSession(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperrors.ValidationError("invalid session ID").WithContext("id", c.Param("id"))
	}
	if err := s.service.CloseSession(id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleResetSession(c echo.Context) error {
	session, err := s.sessionFromPath(c)
	if err != nil {
		return err
	}
	session.Reset()
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleIngestUtterance(c echo.Context) error {
	session, err := s.sessionFromPath(c)
	if err != nil {
		return err
	}

	var u domain.Utterance
	if err := c.Bind(&u); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	reading, err := session.AddUtterance(u)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reading)
}

func (s *Server) handleMood(c echo.Context) error {
	session, err := s.sessionFromPath(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, session.CurrentMood())
}

const defaultArcWindow = 60 * time.Second

func (s *Server) handleMoodArc(c echo.Context) error {
	session, err := s.sessionFromPath(c)
	if err != nil {
		return err
	}

	window := defaultArcWindow
	if raw := c.QueryParam("window"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil || parsed <= 0 {
			return apperrors.ValidationError("window must be a positive duration").WithContext("window", raw)
		}
		window = parsed
	}

	return c.JSON(http.StatusOK, map[string]any{
		"window": window.String(),
		"moods":  session.MoodArc(window),
	})
}

func (s *Server) sessionFromPath(c echo.Context) (*app.RenderSession, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return nil, apperrors.ValidationError("invalid session ID").WithContext("id", c.Param("id"))
	}
	return s.service.GetSession(id)
}
