package ar

import (
	"context"
	"errors"
	"fmt"

	"github.com/gekko3d/roomxr/engine/core"
	"github.com/go-gl/mathgl/mgl32"
)

var ErrSessionEnded = errors.New("ar: session ended")

type State int

const (
	Inactive State = iota
	RequestingHitTestSource
	Tracking
)

func (s State) String() string {
	switch s {
	case Inactive:
		return "inactive"
	case RequestingHitTestSource:
		return "requesting-hit-test-source"
	case Tracking:
		return "tracking"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

type Logger interface {
	Debugf(format string, args ...any)
	Warnf(format string, args ...any)
}

// PostFunc hands a closure to the frame thread. It returns false when the
// receiver is gone.
type PostFunc func(fn func()) bool

// Placement is the per-session hit-test state machine. All methods must be
// called from the frame thread; negotiation runs on a goroutine and reports
// back through Post.
type Placement struct {
	Reticle *core.Node
	FloorY  float32
	Post    PostFunc
	Log     Logger

	// OnPresentingChanged fires on Begin and End so the host can suspend
	// orbit input for the whole session.
	OnPresentingChanged func(presenting bool)

	session        Session
	state          State
	presenting     bool
	requested      bool
	source         HitTestSource
	generation     uint64
	cancel         context.CancelFunc
	negotiationCtx context.Context
}

func NewPlacement(reticle *core.Node, floorY float32, post PostFunc, log Logger) *Placement {
	return &Placement{
		Reticle: reticle,
		FloorY:  floorY,
		Post:    post,
		Log:     log,
	}
}

func (p *Placement) State() State {
	return p.state
}

func (p *Placement) Presenting() bool {
	return p.presenting
}

func (p *Placement) ReticleVisible() bool {
	return p.Reticle.Visible
}

func (p *Placement) ReticlePose() mgl32.Mat4 {
	return p.Reticle.LocalMatrix()
}

// Begin starts presenting s. The hit-test source is requested lazily on the
// first Step.
func (p *Placement) Begin(ctx context.Context, s Session) {
	if p.presenting {
		p.End()
	}
	ctx, p.cancel = context.WithCancel(ctx)
	p.session = s
	p.presenting = true
	p.state = Inactive
	p.generation++
	p.negotiationCtx = ctx
	if p.OnPresentingChanged != nil {
		p.OnPresentingChanged(true)
	}
}

// Step runs once per presented frame. Ticks without a device frame do
// nothing, so the hit-test source is requested on the first real frame.
func (p *Placement) Step(frame Frame) {
	if !p.presenting || frame == nil {
		return
	}
	if !p.requested {
		p.requested = true
		p.state = RequestingHitTestSource
		p.negotiate(p.negotiationCtx, p.session, p.generation)
		return
	}
	if p.state != Tracking {
		return
	}

	results := frame.HitTestResults(p.source)
	if len(results) == 0 {
		p.Reticle.Visible = false
		return
	}
	pose, ok := results[0].Pose(p.session.LocalSpace())
	if !ok {
		p.Reticle.Visible = false
		return
	}
	p.Reticle.SetMatrix(pose)
	p.Reticle.Visible = true
}

func (p *Placement) negotiate(ctx context.Context, s Session, gen uint64) {
	go func() {
		src, err := requestHitTestSource(ctx, s)
		accepted := p.Post(func() {
			if gen != p.generation || !p.presenting {
				if src != nil {
					src.Cancel()
				}
				p.debugf("discarding hit-test negotiation: %v", ErrSessionEnded)
				return
			}
			if err != nil {
				p.warnf("AR hit-test unavailable, placement disabled for this session: %v", err)
				return
			}
			p.source = src
			p.state = Tracking
		})
		if !accepted && src != nil {
			src.Cancel()
		}
	}()
}

func requestHitTestSource(ctx context.Context, s Session) (HitTestSource, error) {
	space, err := s.RequestReferenceSpace(ctx, SpaceViewer)
	if err != nil {
		return nil, fmt.Errorf("viewer reference space: %w", err)
	}
	src, err := s.RequestHitTestSource(ctx, space)
	if err != nil {
		return nil, fmt.Errorf("hit-test source: %w", err)
	}
	if ctx.Err() != nil {
		src.Cancel()
		return nil, ErrSessionEnded
	}
	return src, nil
}

// End leaves the session: the source is cancelled, the one-shot request flag
// is reset and the reticle hidden.
func (p *Placement) End() {
	if !p.presenting {
		return
	}
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	if p.source != nil {
		p.source.Cancel()
		p.source = nil
	}
	p.generation++
	p.session = nil
	p.negotiationCtx = nil
	p.presenting = false
	p.requested = false
	p.state = Inactive
	p.Reticle.Visible = false
	p.Reticle.ClearMatrix()
	if p.OnPresentingChanged != nil {
		p.OnPresentingChanged(false)
	}
}

// Commit moves target onto the reticle, upright and resting on the floor. It
// does nothing unless the reticle is showing.
func (p *Placement) Commit(target *core.Node) bool {
	if !p.presenting || !p.Reticle.Visible || target == nil || target.Disposed() {
		return false
	}
	pos := p.ReticlePose().Col(3).Vec3()
	target.Position = mgl32.Vec3{pos.X(), p.FloorY, pos.Z()}
	target.ResetRotation()
	return true
}

func (p *Placement) debugf(format string, args ...any) {
	if p.Log != nil {
		p.Log.Debugf(format, args...)
	}
}

func (p *Placement) warnf(format string, args ...any) {
	if p.Log != nil {
		p.Log.Warnf(format, args...)
	}
}
