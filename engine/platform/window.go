// Package platform hosts the app in a GLFW window and forwards window
// events to the app's input router.
package platform

import (
	"fmt"
	"runtime"

	"github.com/gekko3d/roomxr"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// KeyFunc receives key presses the input router did not handle.
type KeyFunc func(key roomxr.Key, mods roomxr.Modifier)

type Window struct {
	win *glfw.Window
}

// NewWindow initializes GLFW and opens a resizable window without a client
// API; the surface is created by the GPU renderer. It must be called from
// the main goroutine.
func NewWindow(cfg roomxr.WindowConfig) (*Window, error) {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	return &Window{win: win}, nil
}

func (w *Window) GLFW() *glfw.Window {
	return w.win
}

func (w *Window) ShouldClose() bool {
	return w.win.ShouldClose()
}

func (w *Window) PollEvents() {
	glfw.PollEvents()
}

func (w *Window) FramebufferSize() (int, int) {
	return w.win.GetFramebufferSize()
}

func (w *Window) SetTitle(title string) {
	w.win.SetTitle(title)
}

// Bind routes window events to app. It is meant to be handed to
// AppBuilder.UseInput, which binds on mount and calls the returned func,
// removing every callback, on unmount.
func (w *Window) Bind(app *roomxr.App, unhandled KeyFunc) func() {
	w.win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		if in := app.Input(); in != nil {
			in.PointerMove(x, y)
		}
	})
	w.win.SetMouseButtonCallback(func(_ *glfw.Window, b glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		in := app.Input()
		btn, ok := mouseButtons[b]
		if in == nil || !ok {
			return
		}
		x, y := w.win.GetCursorPos()
		switch action {
		case glfw.Press:
			in.PointerDown(x, y, btn)
		case glfw.Release:
			in.PointerUp(x, y, btn)
		}
	})
	w.win.SetScrollCallback(func(_ *glfw.Window, _, dy float64) {
		if in := app.Input(); in != nil {
			in.Scroll(dy)
		}
	})
	w.win.SetKeyCallback(func(_ *glfw.Window, k glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		if action == glfw.Release {
			return
		}
		key, m := TranslateKey(k), TranslateMods(mods)
		if in := app.Input(); in != nil && in.HandleKey(key, m) {
			return
		}
		if unhandled != nil && action == glfw.Press {
			unhandled(key, m)
		}
	})
	w.win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		app.Resize(width, height)
	})

	return func() {
		w.win.SetCursorPosCallback(nil)
		w.win.SetMouseButtonCallback(nil)
		w.win.SetScrollCallback(nil)
		w.win.SetKeyCallback(nil)
		w.win.SetFramebufferSizeCallback(nil)
	}
}

// Destroy closes the window and terminates GLFW.
func (w *Window) Destroy() {
	w.win.Destroy()
	glfw.Terminate()
}
