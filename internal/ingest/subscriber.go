package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/councilstream/moodcanvas/internal/app"
	"github.com/councilstream/moodcanvas/internal/domain"
	"github.com/councilstream/moodcanvas/internal/metrics"
)

const (
	channelPrefix  = "utterances:"
	channelPattern = channelPrefix + "*"
)

// UtteranceService is the slice of the application service the subscriber
// needs: session auto-creation plus ingestion.
type UtteranceService interface {
	EnsureSession(id uuid.UUID) (*app.RenderSession, error)
	IngestUtterance(ctx context.Context, sessionID uuid.UUID, u domain.Utterance) (domain.SentimentReading, error)
}

// Subscriber consumes utterance messages from Redis Pub/Sub.
type Subscriber struct {
	rdb     *goredis.Client
	service UtteranceService
}

// NewSubscriber wires a subscriber to a Redis client and the app service.
func NewSubscriber(rdb *goredis.Client, service UtteranceService) *Subscriber {
	return &Subscriber{rdb: rdb, service: service}
}

// Run subscribes to all utterance channels and processes messages until ctx
// is cancelled. A message for an unknown session creates the session with
// the default configuration.
func (s *Subscriber) Run(ctx context.Context) error {
	sub := s.rdb.PSubscribe(ctx, channelPattern)
	defer sub.Close()

	// Fail fast if Redis is unreachable rather than looping on a dead
	// subscription.
	if _, err := sub.Receive(ctx); err != nil {
		return err
	}

	slog.Info("Utterance subscriber started", "pattern", channelPattern)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			slog.Info("Utterance subscriber stopped")
			return nil
		case msg, ok := <-ch:
			if !ok {
				return errors.New("utterance subscription channel closed")
			}
			s.handle(ctx, msg.Channel, []byte(msg.Payload))
		}
	}
}

func (s *Subscriber) handle(ctx context.Context, channel string, payload []byte) {
	sessionID, err := uuid.Parse(strings.TrimPrefix(channel, channelPrefix))
	if err != nil {
		metrics.IngestMessagesTotal.WithLabelValues("bad_channel").Inc()
		slog.Warn("Utterance on malformed channel", "channel", channel, "error", err)
		return
	}

	var u domain.Utterance
	if err := json.Unmarshal(payload, &u); err != nil {
		metrics.IngestMessagesTotal.WithLabelValues("bad_payload").Inc()
		slog.Warn("Malformed utterance payload", "session_id", sessionID.String(), "error", err)
		return
	}

	if _, err := s.service.EnsureSession(sessionID); err != nil {
		metrics.IngestMessagesTotal.WithLabelValues("no_session").Inc()
		slog.Error("Failed to ensure render session", "session_id", sessionID.String(), "error", err)
		return
	}

	if _, err := s.service.IngestUtterance(ctx, sessionID, u); err != nil {
		metrics.IngestMessagesTotal.WithLabelValues("rejected").Inc()
		slog.Warn("Utterance rejected", "session_id", sessionID.String(), "error", err)
		return
	}

	metrics.IngestMessagesTotal.WithLabelValues("ok").Inc()
}
