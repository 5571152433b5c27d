package assets

import (
	"context"
	"sync"

	"github.com/gekko3d/roomxr/engine/core"
)

// Completion receives the outcome of a queued load on the frame thread.
type Completion func(node *core.Node, err error)

// PostFunc hands a closure to the frame thread. It returns false once the
// receiver is gone, in which case the closure will never run.
type PostFunc func(fn func()) bool

type request struct {
	id      string
	offsetX float32
	offsetZ float32
	done    Completion
}

// Queue serializes loads through a single worker so completions are
// delivered in request order: when two loads are in flight, the one
// requested last completes last.
type Queue struct {
	loader *Loader
	post   PostFunc

	mu      sync.Mutex
	pending []request
	wake    chan struct{}

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

func NewQueue(ctx context.Context, loader *Loader, post PostFunc) *Queue {
	ctx, cancel := context.WithCancel(ctx)
	q := &Queue{
		loader: loader,
		post:   post,
		wake:   make(chan struct{}, 1),
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go q.run()
	return q
}

// Enqueue schedules a load. It never blocks.
func (q *Queue) Enqueue(id string, offsetX, offsetZ float32, done Completion) {
	q.mu.Lock()
	q.pending = append(q.pending, request{id: id, offsetX: offsetX, offsetZ: offsetZ, done: done})
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// Len returns the number of loads not yet started.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Close abandons pending loads and waits for the worker to exit.
func (q *Queue) Close() {
	q.cancel()
	<-q.done
}

func (q *Queue) next() (request, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 {
		return request{}, false
	}
	r := q.pending[0]
	q.pending = q.pending[1:]
	return r, true
}

func (q *Queue) run() {
	defer close(q.done)
	for {
		r, ok := q.next()
		if !ok {
			select {
			case <-q.ctx.Done():
				return
			case <-q.wake:
				continue
			}
		}
		if q.ctx.Err() != nil {
			return
		}

		node, err := q.loader.Load(q.ctx, r.id, r.offsetX, r.offsetZ)
		if q.ctx.Err() != nil {
			if node != nil {
				node.Dispose()
			}
			return
		}
		accepted := q.post(func() { r.done(node, err) })
		if !accepted && node != nil {
			node.Dispose()
		}
	}
}
