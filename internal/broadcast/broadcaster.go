package broadcast

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"

	"github.com/councilstream/moodcanvas/internal/domain"
	"github.com/councilstream/moodcanvas/internal/metrics"
)

const (
	commandTimeout = 5 * time.Second
	stopTimeout    = 10 * time.Second
	cmdBufferSize  = 256
)

type sessionClients map[*websocket.Conn]*clientWriter

// broadcasterCmd is the command interface for the Broadcaster actor.
type broadcasterCmd interface{ isBroadcasterCmd() }

type baseBroadcasterCmd struct{}

func (baseBroadcasterCmd) isBroadcasterCmd() {}

type registerCmd struct {
	baseBroadcasterCmd
	sessionID    uuid.UUID
	connection   *websocket.Conn
	errorChannel chan error
}

type unregisterCmd struct {
	baseBroadcasterCmd
	sessionID  uuid.UUID
	connection *websocket.Conn
}

type publishCmd struct {
	baseBroadcasterCmd
	sessionID uuid.UUID
	payload   []byte
}

type getClientCountCmd struct {
	baseBroadcasterCmd
	sessionID    uuid.UUID
	replyChannel chan int
}

type stopCmd struct {
	baseBroadcasterCmd
}

// Broadcaster manages WebSocket renderer connections and distributes frame
// descriptors pushed by the render loop. Implements domain.FramePublisher.
type Broadcaster struct {
	cmdCh                chan broadcasterCmd
	clock                clockwork.Clock
	activeClients        map[uuid.UUID]sessionClients
	onSessionEmpty       func(sessionID uuid.UUID)
	done                 chan struct{}
	maxClientsPerSession int
}

// NewBroadcaster starts the broadcaster actor.
// onSessionEmpty is called when the last client disconnects from a session;
// it may be nil. maxClientsPerSession bounds connections per session.
func NewBroadcaster(onSessionEmpty func(uuid.UUID), clock clockwork.Clock, maxClientsPerSession int) *Broadcaster {
	b := &Broadcaster{
		cmdCh:                make(chan broadcasterCmd, cmdBufferSize),
		clock:                clock,
		activeClients:        make(map[uuid.UUID]sessionClients),
		onSessionEmpty:       onSessionEmpty,
		done:                 make(chan struct{}),
		maxClientsPerSession: maxClientsPerSession,
	}
	go b.run()
	return b
}

// Register adds a renderer client to a session. Returns an error only when
// the per-session client limit is reached or the command times out.
func (b *Broadcaster) Register(sessionID uuid.UUID, conn *websocket.Conn) error {
	errCh := make(chan error, 1)
	b.cmdCh <- registerCmd{sessionID: sessionID, connection: conn, errorChannel: errCh}

	timer := b.clock.NewTimer(commandTimeout)
	defer timer.Stop()

	select {
	case err := <-errCh:
		return err
	case <-timer.Chan():
		return fmt.Errorf("register command timed out after %v", commandTimeout)
	}
}

// Unregister removes a renderer client from a session.
func (b *Broadcaster) Unregister(sessionID uuid.UUID, conn *websocket.Conn) {
	b.cmdCh <- unregisterCmd{sessionID: sessionID, connection: conn}
}

// PublishFrame serializes the frame and hands it to the actor. It never
// blocks the render loop: when the command channel is full the frame is
// dropped; the next one arrives a tick later.
func (b *Broadcaster) PublishFrame(sessionID uuid.UUID, frame domain.FrameDescriptor) {
	data, err := json.Marshal(frame)
	if err != nil {
		slog.Error("Failed to marshal frame descriptor", "session_id", sessionID.String(), "error", err)
		return
	}

	select {
	case b.cmdCh <- publishCmd{sessionID: sessionID, payload: data}:
	default:
		slog.Warn("Broadcast command channel full, dropping frame", "session_id", sessionID.String())
	}
}

// GetClientCount returns the number of connected clients for a session, or
// -1 if the command times out.
func (b *Broadcaster) GetClientCount(sessionID uuid.UUID) int {
	replyCh := make(chan int, 1)
	b.cmdCh <- getClientCountCmd{sessionID: sessionID, replyChannel: replyCh}

	timer := b.clock.NewTimer(commandTimeout)
	defer timer.Stop()

	select {
	case count := <-replyCh:
		return count
	case <-timer.Chan():
		slog.Warn("GetClientCount timed out", "timeout", commandTimeout)
		return -1
	}
}

// Stop shuts down the broadcaster, closing all client connections. Blocks
// until the actor goroutine has exited or the timeout is reached.
func (b *Broadcaster) Stop() {
	b.cmdCh <- stopCmd{}

	timer := b.clock.NewTimer(stopTimeout)
	defer timer.Stop()

	select {
	case <-b.done:
		slog.Info("Broadcaster stopped gracefully")
	case <-timer.Chan():
		slog.Warn("Broadcaster stop timeout exceeded", "timeout", stopTimeout)
	}
}

func (b *Broadcaster) run() {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Broadcaster panic recovered", "panic", r)
			b.closeAllClients("broadcaster panic")
		}
	}()
	defer close(b.done)

	for cmd := range b.cmdCh {
		switch c := cmd.(type) {
		case registerCmd:
			b.handleRegister(c)
		case unregisterCmd:
			b.handleUnregister(c)
		case publishCmd:
			b.handlePublish(c)
		case getClientCountCmd:
			c.replyChannel <- len(b.activeClients[c.sessionID])
		case stopCmd:
			b.handleStop()
			return
		default:
			slog.Warn("Broadcaster received unknown command type", "command_type", fmt.Sprintf("%T", cmd))
		}
	}
}

func (b *Broadcaster) handleRegister(c registerCmd) {
	clients, exists := b.activeClients[c.sessionID]
	if !exists {
		clients = make(sessionClients)
		b.activeClients[c.sessionID] = clients
	}

	if len(clients) >= b.maxClientsPerSession {
		slog.Warn("Rejecting client: max clients reached", "session_id", c.sessionID.String(), "max_clients", b.maxClientsPerSession)
		c.connection.Close()
		c.errorChannel <- fmt.Errorf("max clients per session (%d) reached", b.maxClientsPerSession)
		return
	}

	clients[c.connection] = newClientWriter(c.connection, b.clock)

	metrics.BroadcastActiveSessions.Set(float64(len(b.activeClients)))
	metrics.BroadcastConnectedClients.Inc()

	slog.Debug("Renderer client registered", "session_id", c.sessionID.String(), "total_clients", len(clients))
	c.errorChannel <- nil
}

func (b *Broadcaster) handleUnregister(c unregisterCmd) {
	clients, exists := b.activeClients[c.sessionID]
	if !exists {
		return
	}

	cw, exists := clients[c.connection]
	if !exists {
		return
	}

	cw.stop()
	delete(clients, c.connection)

	metrics.BroadcastConnectedClients.Dec()

	if len(clients) == 0 {
		delete(b.activeClients, c.sessionID)
		metrics.BroadcastActiveSessions.Set(float64(len(b.activeClients)))
		if b.onSessionEmpty != nil {
			b.onSessionEmpty(c.sessionID)
		}
		slog.Info("Last renderer disconnected", "session_id", c.sessionID.String())
	} else {
		slog.Debug("Renderer client unregistered", "session_id", c.sessionID.String(), "remaining_clients", len(clients))
	}
}

func (b *Broadcaster) handlePublish(c publishCmd) {
	clients, exists := b.activeClients[c.sessionID]
	if !exists {
		return
	}

	var slow []*websocket.Conn
	for conn, writer := range clients {
		select {
		case writer.sendChannel <- c.payload:
		default:
			slow = append(slow, conn)
		}
	}

	// A full send buffer means the client cannot keep up with the frame
	// rate; it is evicted rather than allowed to back-pressure the actor.
	for _, conn := range slow {
		slog.Warn("Disconnecting slow renderer client", "session_id", c.sessionID.String())
		metrics.BroadcastSlowClientsEvicted.Inc()
		b.handleUnregister(unregisterCmd{sessionID: c.sessionID, connection: conn})
	}
}

func (b *Broadcaster) handleStop() {
	totalClients := 0
	for _, clients := range b.activeClients {
		totalClients += len(clients)
	}

	slog.Info("Broadcaster shutting down", "sessions", len(b.activeClients), "total_clients", totalClients)
	b.closeAllClients("Server shutting down")
	slog.Info("Broadcaster shutdown complete", "disconnected_clients", totalClients)
}

// closeAllClients closes all client connections with the given reason. Used
// during panic recovery and graceful shutdown.
func (b *Broadcaster) closeAllClients(reason string) {
	for sessionID, clients := range b.activeClients {
		for _, cw := range clients {
			cw.stopGraceful(reason)
		}
		delete(b.activeClients, sessionID)
		if b.onSessionEmpty != nil {
			b.onSessionEmpty(sessionID)
		}
	}
	metrics.BroadcastActiveSessions.Set(0)
}
