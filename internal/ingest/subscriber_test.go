package ingest

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/councilstream/moodcanvas/internal/app"
	"github.com/councilstream/moodcanvas/internal/background"
	"github.com/councilstream/moodcanvas/internal/compositor"
	"github.com/councilstream/moodcanvas/internal/domain"
	"github.com/councilstream/moodcanvas/internal/sentiment"
)

func testDefaults() app.Defaults {
	return app.Defaults{
		Sentiment: sentiment.Config{},
		Generator: background.Config{
			Style:         domain.StyleGradient,
			Width:         1920,
			Height:        1080,
			FPS:           30,
			ParticleCount: 50,
		},
		Compositor: compositor.Config{
			Width:              1920,
			Height:             1080,
			FPS:                30,
			BackgroundOpacity:  0.8,
			EnableTransitions:  true,
			TransitionDuration: 2 * time.Second,
		},
	}
}

func testSubscriber(t *testing.T) (*app.Service, *goredis.Client, context.CancelFunc) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	service := app.NewService(testDefaults(), clockwork.NewRealClock())
	sub := NewSubscriber(rdb, service)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() {
		_ = sub.Run(ctx)
	}()

	// Give the PSubscribe a moment to establish before tests publish.
	time.Sleep(50 * time.Millisecond)
	return service, rdb, cancel
}

func publish(t *testing.T, rdb *goredis.Client, sessionID uuid.UUID, u domain.Utterance) {
	t.Helper()
	payload, err := json.Marshal(u)
	require.NoError(t, err)
	require.NoError(t, rdb.Publish(context.Background(), channelPrefix+sessionID.String(), payload).Err())
}

func TestSubscriber_IngestsUtterance(t *testing.T) {
	service, rdb, _ := testSubscriber(t)
	sessionID := uuid.New()

	publish(t, rdb, sessionID, domain.Utterance{
		Speaker:    "alpha",
		Text:       "this is an excellent proposal",
		Confidence: 0.9,
	})

	require.Eventually(t, func() bool {
		session, err := service.GetSession(sessionID)
		if err != nil {
			return false
		}
		return session.Stats().Sentiment.TotalReadings == 1
	}, time.Second, 5*time.Millisecond)
}

func TestSubscriber_CreatesSessionOnDemand(t *testing.T) {
	service, rdb, _ := testSubscriber(t)
	sessionID := uuid.New()

	_, err := service.GetSession(sessionID)
	require.ErrorIs(t, err, domain.ErrSessionNotFound)

	publish(t, rdb, sessionID, domain.Utterance{Speaker: "alpha", Text: "hi", Confidence: 0.5})

	require.Eventually(t, func() bool {
		_, err := service.GetSession(sessionID)
		return err == nil
	}, time.Second, 5*time.Millisecond)
}

func TestSubscriber_MalformedChannelIgnored(t *testing.T) {
	service, rdb, _ := testSubscriber(t)

	require.NoError(t, rdb.Publish(context.Background(), channelPrefix+"not-a-uuid", `{"speaker":"a"}`).Err())

	time.Sleep(100 * time.Millisecond)
	assert.Empty(t, service.Sessions())
}

func TestSubscriber_MalformedPayloadIgnored(t *testing.T) {
	service, rdb, _ := testSubscriber(t)
	sessionID := uuid.New()

	require.NoError(t, rdb.Publish(context.Background(), channelPrefix+sessionID.String(), "{not json").Err())

	time.Sleep(100 * time.Millisecond)
	assert.Empty(t, service.Sessions())
}

func TestSubscriber_InvalidUtteranceRejected(t *testing.T) {
	service, rdb, _ := testSubscriber(t)
	sessionID := uuid.New()

	// Missing speaker: the session is created, but nothing is ingested.
	publish(t, rdb, sessionID, domain.Utterance{Text: "anonymous", Confidence: 0.5})

	require.Eventually(t, func() bool {
		_, err := service.GetSession(sessionID)
		return err == nil
	}, time.Second, 5*time.Millisecond)

	session, err := service.GetSession(sessionID)
	require.NoError(t, err)
	assert.Equal(t, 0, session.Stats().Sentiment.TotalReadings)
}

func TestSubscriber_StopsOnContextCancel(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	service := app.NewService(testDefaults(), clockwork.NewRealClock())
	sub := NewSubscriber(rdb, service)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- sub.Run(ctx)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("subscriber did not stop on context cancel")
	}
}
