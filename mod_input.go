package roomxr

// InputBinder attaches host event listeners to app and returns the func
// that detaches them.
type InputBinder func(app *App) (unbind func())

// InputModule creates the input router and, when the builder was given a
// binder, attaches the host listeners for the length of the mount.
type InputModule struct{}

func (InputModule) Install(app *App, cmd *Commands) error {
	app.input = newInputRouter(app)
	cmd.Defer("input", func() {
		app.input = nil
	})

	if app.binder == nil {
		return nil
	}
	unbind := app.binder(app)
	cmd.Defer("listeners", unbind)
	return nil
}
