// Package broadcast fans composited frame descriptors out to the WebSocket
// renderer clients of each session using the actor pattern.
//
// A single goroutine owns the client registry (no mutexes); the render loop
// pushes frames through a non-blocking command channel. Per-connection write
// goroutines handle ping/pong keepalive and let the actor evict clients that
// cannot keep up with the frame rate.
package broadcast
