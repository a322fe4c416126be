package app

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"

	"github.com/councilstream/moodcanvas/internal/background"
	"github.com/councilstream/moodcanvas/internal/compositor"
	"github.com/councilstream/moodcanvas/internal/domain"
	"github.com/councilstream/moodcanvas/internal/metrics"
	"github.com/councilstream/moodcanvas/internal/sentiment"
)

// Defaults is the component configuration every new session starts from. The
// generator style can be overridden per session at creation.
type Defaults struct {
	Sentiment  sentiment.Config
	Generator  background.Config
	Compositor compositor.Config
}

// Service owns the render-session registry and orchestrates all use cases.
// It is the only component that references multiple domain components.
type Service struct {
	defaults Defaults
	clock    clockwork.Clock

	mu       sync.RWMutex
	sessions map[uuid.UUID]*RenderSession

	// ensureGroup collapses concurrent creations of the same session, e.g.
	// a WebSocket connect racing the first Pub/Sub utterance.
	ensureGroup singleflight.Group
}

// NewService creates the application layer service.
func NewService(defaults Defaults, clock clockwork.Clock) *Service {
	return &Service{
		defaults: defaults,
		clock:    clock,
		sessions: make(map[uuid.UUID]*RenderSession),
	}
}

// CreateSession registers a new render session with a fresh ID. style, when
// non-nil, overrides the default background style.
func (s *Service) CreateSession(style *domain.Style) (*RenderSession, error) {
	return s.createSession(uuid.New(), style)
}

func (s *Service) createSession(id uuid.UUID, style *domain.Style) (*RenderSession, error) {
	resolved := s.defaults.Generator.Style
	if style != nil {
		resolved = *style
	}

	session, err := newRenderSession(id, s.defaults, resolved, s.clock)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.sessions[id] = session
	s.mu.Unlock()

	metrics.ActiveRenderSessions.Inc()
	slog.Info("Render session created", "session_id", id.String(), "style", resolved.String())
	return session, nil
}

// EnsureSession returns the session with the given ID, creating it with the
// default configuration if it does not exist yet. Concurrent calls for the
// same ID collapse to one creation.
func (s *Service) EnsureSession(id uuid.UUID) (*RenderSession, error) {
	if session, err := s.GetSession(id); err == nil {
		return session, nil
	}

	v, err, _ := s.ensureGroup.Do(id.String(), func() (any, error) {
		if session, err := s.GetSession(id); err == nil {
			return session, nil
		}
		return s.createSession(id, nil)
	})
	if err != nil {
		return nil, err
	}
	return v.(*RenderSession), nil
}

// GetSession returns the session with the given ID.
func (s *Service) GetSession(id uuid.UUID) (*RenderSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

// Sessions returns a snapshot of all live sessions.
func (s *Service) Sessions() []*RenderSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*RenderSession, 0, len(s.sessions))
	for _, session := range s.sessions {
		out = append(out, session)
	}
	return out
}

// CloseSession removes a session from the registry.
func (s *Service) CloseSession(id uuid.UUID) error {
	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if !ok {
		return domain.ErrSessionNotFound
	}

	metrics.ActiveRenderSessions.Dec()
	metrics.CompositorLayers.DeleteLabelValues(id.String())
	slog.Info("Render session closed", "session_id", id.String())
	return nil
}

// IngestUtterance routes one utterance to its session's analyzer. Implements
// domain.UtteranceSink.
func (s *Service) IngestUtterance(ctx context.Context, sessionID uuid.UUID, u domain.Utterance) (domain.SentimentReading, error) {
	session, err := s.GetSession(sessionID)
	if err != nil {
		metrics.UtterancesRejectedTotal.WithLabelValues("no_session").Inc()
		return domain.SentimentReading{}, err
	}
	return session.AddUtterance(u)
}
