// Package compositor assembles renderable frame descriptors from a generated
// background, an optional foreground video frame, and a managed list of
// auxiliary layers (effects, split screens, picture-in-picture). It owns the
// cross-fade timing between successive backgrounds; the caller drives it with
// wall-clock deltas.
package compositor
