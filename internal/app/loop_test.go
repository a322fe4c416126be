package app

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/councilstream/moodcanvas/internal/domain"
)

type capturingPublisher struct {
	mu     sync.Mutex
	frames map[uuid.UUID][]domain.FrameDescriptor
}

func newCapturingPublisher() *capturingPublisher {
	return &capturingPublisher{frames: make(map[uuid.UUID][]domain.FrameDescriptor)}
}

func (p *capturingPublisher) PublishFrame(sessionID uuid.UUID, frame domain.FrameDescriptor) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.frames[sessionID] = append(p.frames[sessionID], frame)
}

func (p *capturingPublisher) count(sessionID uuid.UUID) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.frames[sessionID])
}

func (p *capturingPublisher) last(sessionID uuid.UUID) domain.FrameDescriptor {
	p.mu.Lock()
	defer p.mu.Unlock()
	frames := p.frames[sessionID]
	return frames[len(frames)-1]
}

func TestRenderLoop_PublishesFramesPerTick(t *testing.T) {
	svc, clock := newTestService(t)
	session, err := svc.CreateSession(nil)
	require.NoError(t, err)

	pub := newCapturingPublisher()
	loop := NewRenderLoop(svc, pub, clock, 30)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		loop.Run(ctx)
		close(done)
	}()

	// Wait until the loop is parked on the fake ticker before advancing.
	clock.BlockUntil(1)

	interval := time.Second / 30
	for i := 0; i < 3; i++ {
		clock.Advance(interval)
		want := i + 1
		require.Eventually(t, func() bool {
			return pub.count(session.ID) >= want
		}, time.Second, time.Millisecond)
	}

	frame := pub.last(session.ID)
	assert.Equal(t, 1920, frame.Width)
	require.NotEmpty(t, frame.Layers)
	assert.Equal(t, "background", frame.Layers[0].Type)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("render loop did not stop on context cancel")
	}
}

func TestRenderLoop_RefreshesMoodOncePerSecond(t *testing.T) {
	svc, clock := newTestService(t)
	session, err := svc.CreateSession(nil)
	require.NoError(t, err)

	// Load the analyzer so mood snapshots land in the history.
	_, err = session.AddUtterance(domain.Utterance{Speaker: "a", Text: "statement", Confidence: 0.5})
	require.NoError(t, err)

	pub := newCapturingPublisher()
	loop := NewRenderLoop(svc, pub, clock, 30)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go loop.Run(ctx)
	clock.BlockUntil(1)

	interval := time.Second / 30
	// Two seconds of ticks: expect roughly two mood refreshes, not sixty.
	for i := 0; i < 60; i++ {
		clock.Advance(interval)
		want := i + 1
		require.Eventually(t, func() bool {
			return pub.count(session.ID) >= want
		}, time.Second, time.Millisecond)
	}

	arc := session.MoodArc(time.Minute)
	assert.GreaterOrEqual(t, len(arc), 1)
	assert.LessOrEqual(t, len(arc), 3)
}
