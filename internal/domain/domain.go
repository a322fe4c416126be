package domain

import (
	"context"

	"github.com/google/uuid"
)

// Utterance is the per-utterance input tuple from the debate-execution
// subsystem. Emotion and SentimentOverride are optional; when
// SentimentOverride is set it is used verbatim instead of the keyword
// heuristic.
type Utterance struct {
	Speaker           string   `json:"speaker"`
	Text              string   `json:"text"`
	Confidence        float64  `json:"confidence"`
	Emotion           string   `json:"emotion,omitempty"`
	SentimentOverride *float64 `json:"sentiment_override,omitempty"`
}

// UtteranceSink ingests debate utterances for a render session. Implemented
// by the app service; consumed by the HTTP handlers and the Redis subscriber.
type UtteranceSink interface {
	IngestUtterance(ctx context.Context, sessionID uuid.UUID, u Utterance) (SentimentReading, error)
}

// FramePublisher delivers composited frame descriptors to every renderer
// connected to a session. Implementations must not block the render loop.
type FramePublisher interface {
	PublishFrame(sessionID uuid.UUID, frame FrameDescriptor)
}
