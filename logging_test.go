package roomxr

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultLoggerRoutesLevels(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewLoggerTo(&out, &errOut, "roomxr", false)

	l.Debugf("hidden %d", 1)
	l.Infof("loaded %s", "chair")
	l.Warnf("fallback for %s", "table")
	l.Errorf("boom")

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "[roomxr] INFO: loaded chair")
	assert.Contains(t, errOut.String(), "[roomxr] WARN: fallback for table")
	assert.Contains(t, errOut.String(), "[roomxr] ERROR: boom")
}

func TestDefaultLoggerDebugToggle(t *testing.T) {
	var out bytes.Buffer
	l := NewLoggerTo(&out, &out, "", false)
	assert.False(t, l.DebugEnabled())

	l.SetDebug(true)
	l.Debugf("visible")

	assert.True(t, l.DebugEnabled())
	assert.Contains(t, out.String(), "DEBUG: visible")
	assert.NotContains(t, out.String(), "[")
}

func TestLoggingModuleReplacesLogger(t *testing.T) {
	ta := newTestApp(t, func(b *AppBuilder) {
		b.UseModule(LoggingModule{Prefix: "test", Debug: true})
	})
	ta.mount(t)

	l, ok := ta.Logger().(*DefaultLogger)
	if assert.True(t, ok) {
		assert.True(t, l.DebugEnabled())
	}
}

func TestNilAppLogger(t *testing.T) {
	var app *App
	assert.NotNil(t, app.Logger())
	app.Logger().Errorf("ignored")
}
