// Package server exposes the HTTP and WebSocket surface: session management,
// utterance ingestion, mood queries, effect and layout control, frame
// delivery to renderers, and the observability endpoints.
package server
