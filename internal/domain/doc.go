// Package domain holds the shared model types of moodcanvas: the closed
// mood, style, layer-type, and blend-mode enumerations, sentiment readings
// and mood snapshots, the frame descriptor contract consumed by external
// renderers, and the ports between the core and its boundaries.
package domain
