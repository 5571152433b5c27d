// Package ar drives hit-test based placement during an AR session.
package ar

import (
	"context"

	"github.com/go-gl/mathgl/mgl32"
)

type SpaceKind string

const (
	SpaceViewer SpaceKind = "viewer"
	SpaceLocal  SpaceKind = "local"
)

// ReferenceSpace is an opaque coordinate frame handed out by the device.
type ReferenceSpace interface{}

// HitTestSource produces per-frame hit results along the viewer ray.
type HitTestSource interface {
	Cancel()
}

type HitResult interface {
	// Pose returns the hit transform relative to space. ok is false when
	// the device cannot express the hit in that space.
	Pose(space ReferenceSpace) (pose mgl32.Mat4, ok bool)
}

// Frame is the device frame passed to every tick while presenting.
type Frame interface {
	HitTestResults(src HitTestSource) []HitResult
}

// Session is the device AR session. The request methods may block and are
// only called off the frame thread.
type Session interface {
	RequestReferenceSpace(ctx context.Context, kind SpaceKind) (ReferenceSpace, error)
	RequestHitTestSource(ctx context.Context, space ReferenceSpace) (HitTestSource, error)
	// LocalSpace is the space poses are rendered in.
	LocalSpace() ReferenceSpace
}
