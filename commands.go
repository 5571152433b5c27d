package roomxr

import "sync"

// Commands is the FIFO of closures that asynchronous work hands back to the
// frame thread. It is drained at the start of every tick.
type Commands struct {
	app *App

	mu      sync.Mutex
	pending []func()
	closed  bool
}

func newCommands(app *App) *Commands {
	return &Commands{app: app}
}

// Post queues fn for the next frame. It returns false once the app has been
// unmounted; the caller then owns whatever fn would have consumed.
func (cmd *Commands) Post(fn func()) bool {
	cmd.mu.Lock()
	defer cmd.mu.Unlock()
	if cmd.closed {
		return false
	}
	cmd.pending = append(cmd.pending, fn)
	return true
}

// Defer ties a release to the current mount.
func (cmd *Commands) Defer(name string, fn func()) {
	cmd.app.scope.Defer(name, fn)
}

// AddResources makes values available to systems by pointer type for the
// current mount.
func (cmd *Commands) AddResources(resources ...any) *Commands {
	cmd.app.addResources(resources...)
	return cmd
}

func (cmd *Commands) Logger() Logger {
	return cmd.app.Logger()
}

// UseSystem schedules a per-frame system for the current mount.
func (cmd *Commands) UseSystem(system systemScheduleBuilder) *Commands {
	cmd.app.UseSystem(system)
	return cmd
}

// Flush runs every queued closure, including ones queued while flushing.
func (cmd *Commands) Flush() int {
	n := 0
	for {
		cmd.mu.Lock()
		batch := cmd.pending
		cmd.pending = nil
		cmd.mu.Unlock()
		if len(batch) == 0 {
			return n
		}
		for _, fn := range batch {
			fn()
		}
		n += len(batch)
	}
}

// Len is the number of closures waiting for the next frame.
func (cmd *Commands) Len() int {
	cmd.mu.Lock()
	defer cmd.mu.Unlock()
	return len(cmd.pending)
}

func (cmd *Commands) close() {
	cmd.mu.Lock()
	cmd.closed = true
	cmd.mu.Unlock()
}
