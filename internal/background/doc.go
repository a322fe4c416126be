// Package background generates mood-reactive background frames. A Generator
// owns a persistent particle simulation and palette-transition state and
// produces one style-specific frame payload per call, driven by the mood
// snapshots of the sentiment analyzer.
package background
