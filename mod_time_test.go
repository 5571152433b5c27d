package roomxr

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeModuleReportsFramePacing(t *testing.T) {
	var reports []FrameStats
	ta := newTestApp(t, func(b *AppBuilder) {
		b.UseModule(TimeModule{
			Report:   100 * time.Millisecond,
			OnReport: func(s FrameStats) { reports = append(reports, s) },
		})
	})
	ta.mount(t)

	now := time.Unix(0, 0)
	ta.Tick(now, nil)
	for _, dt := range []time.Duration{20, 20, 40, 20} {
		now = now.Add(dt * time.Millisecond)
		ta.Tick(now, nil)
	}

	require.Len(t, reports, 1)
	assert.Equal(t, 4, reports[0].Frames)
	assert.Equal(t, 100*time.Millisecond, reports[0].Elapsed)
	assert.Equal(t, 40*time.Millisecond, reports[0].Worst)
	assert.InDelta(t, 40, reports[0].FPS(), 1e-9)
}
