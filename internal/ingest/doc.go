// Package ingest receives debate utterances over Redis Pub/Sub. The debate
// execution subsystem publishes one JSON utterance per message on
// utterances:<session-id>; the subscriber ensures the render session exists
// and feeds the analyzer. Redis is transport only, never storage.
package ingest
