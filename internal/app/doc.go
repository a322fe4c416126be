// Package app is the application layer: it owns the render-session registry
// and the frame clock. Each debate gets one analyzer/generator/compositor
// triple; the render loop drives every live session at the configured frame
// rate and hands the composited descriptors to the frame publisher.
package app
