// Package sentiment derives a visual debate mood from a stream of utterance
// readings. The analyzer keeps a bounded rolling history, scores each
// utterance with keyword heuristics, and classifies the smoothed aggregate
// into one of the eight mood categories via a fixed decision ladder.
package sentiment
