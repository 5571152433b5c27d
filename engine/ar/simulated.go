package ar

import (
	"context"
	"sync/atomic"

	"github.com/gekko3d/roomxr/engine/core"
	"github.com/go-gl/mathgl/mgl32"
)

// SimulatedSession stands in for a device AR runtime on desktop hosts: the
// viewer ray is the camera's center ray and the only detected plane is the
// floor.
type SimulatedSession struct {
	Camera *core.Camera
	FloorY float32

	// FailReferenceSpace and FailHitTest make the matching request fail.
	FailReferenceSpace error
	FailHitTest        error
}

type simSpace struct {
	kind SpaceKind
}

type SimulatedSource struct {
	cancelled atomic.Bool
}

func (s *SimulatedSource) Cancel() {
	s.cancelled.Store(true)
}

func (s *SimulatedSource) Cancelled() bool {
	return s.cancelled.Load()
}

type simHit struct {
	pose mgl32.Mat4
}

func (h simHit) Pose(space ReferenceSpace) (mgl32.Mat4, bool) {
	if sp, ok := space.(simSpace); !ok || sp.kind != SpaceLocal {
		return mgl32.Mat4{}, false
	}
	return h.pose, true
}

func (s *SimulatedSession) RequestReferenceSpace(ctx context.Context, kind SpaceKind) (ReferenceSpace, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.FailReferenceSpace != nil {
		return nil, s.FailReferenceSpace
	}
	return simSpace{kind: kind}, nil
}

func (s *SimulatedSession) RequestHitTestSource(ctx context.Context, space ReferenceSpace) (HitTestSource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.FailHitTest != nil {
		return nil, s.FailHitTest
	}
	return &SimulatedSource{}, nil
}

func (s *SimulatedSession) LocalSpace() ReferenceSpace {
	return simSpace{kind: SpaceLocal}
}

// Frame captures the current camera pose.
func (s *SimulatedSession) Frame() Frame {
	return simFrame{ray: s.Camera.RayFromNDC(0, 0), floorY: s.FloorY}
}

type simFrame struct {
	ray    core.Ray
	floorY float32
}

func (f simFrame) HitTestResults(src HitTestSource) []HitResult {
	if s, ok := src.(*SimulatedSource); !ok || s.Cancelled() {
		return nil
	}
	t, ok := f.ray.IntersectPlane(mgl32.Vec3{0, f.floorY, 0}, mgl32.Vec3{0, 1, 0})
	if !ok {
		return nil
	}
	p := f.ray.At(t)
	return []HitResult{simHit{pose: mgl32.Translate3D(p.X(), p.Y(), p.Z())}}
}
