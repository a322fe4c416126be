package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/councilstream/moodcanvas/internal/domain"
	"github.com/councilstream/moodcanvas/internal/metrics"
)

// moodRefreshInterval is how often each session's mood is recomputed. Frames
// render every tick; the mood only needs to move at human-conversation speed.
const moodRefreshInterval = time.Second

// RenderLoop drives every live session at the configured frame rate and
// publishes the composited descriptors.
type RenderLoop struct {
	service   *Service
	publisher domain.FramePublisher
	clock     clockwork.Clock
	fps       int
}

// NewRenderLoop wires the loop. fps must match the compositor config so blur
// pulses and transitions advance at the advertised rate.
func NewRenderLoop(service *Service, publisher domain.FramePublisher, clock clockwork.Clock, fps int) *RenderLoop {
	return &RenderLoop{
		service:   service,
		publisher: publisher,
		clock:     clock,
		fps:       fps,
	}
}

// Run blocks until ctx is cancelled, ticking at the frame rate. Transition
// progress advances by the measured wall-clock delta, not the nominal tick
// interval, so a slow tick does not stretch cross-fades.
func (l *RenderLoop) Run(ctx context.Context) {
	interval := time.Second / time.Duration(l.fps)
	ticker := l.clock.NewTicker(interval)
	defer ticker.Stop()

	last := l.clock.Now()
	lastMoodRefresh := last

	slog.Info("Render loop started", "fps", l.fps)
	for {
		select {
		case <-ctx.Done():
			slog.Info("Render loop stopped")
			return
		case <-ticker.Chan():
			now := l.clock.Now()
			delta := now.Sub(last)
			last = now

			refreshMood := now.Sub(lastMoodRefresh) >= moodRefreshInterval
			if refreshMood {
				lastMoodRefresh = now
			}

			l.tick(delta, refreshMood)
		}
	}
}

func (l *RenderLoop) tick(delta time.Duration, refreshMood bool) {
	start := l.clock.Now()

	for _, session := range l.service.Sessions() {
		if refreshMood {
			session.RefreshMood()
		}
		frame := session.RenderFrame(delta)
		l.publisher.PublishFrame(session.ID, frame)
	}

	metrics.RenderTickDuration.Observe(l.clock.Since(start).Seconds())
}
