package roomxr

import (
	"time"
)

// FrameStats accumulates frame timing between two reports.
type FrameStats struct {
	Frames  int
	Elapsed time.Duration
	Worst   time.Duration
}

func (s FrameStats) FPS() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Frames) / s.Elapsed.Seconds()
}

// TimeModule reports frame pacing every Report interval, at debug level
// unless OnReport is set.
type TimeModule struct {
	Report   time.Duration
	OnReport func(FrameStats)
}

func (mod TimeModule) Install(app *App, cmd *Commands) error {
	if mod.Report <= 0 {
		mod.Report = 5 * time.Second
	}
	stats := &FrameStats{}
	cmd.UseSystem(System(func(cmd *Commands, frame *Frame) {
		if frame.Dt <= 0 {
			return
		}
		stats.Frames++
		stats.Elapsed += frame.Dt
		stats.Worst = max(stats.Worst, frame.Dt)
		if stats.Elapsed < mod.Report {
			return
		}
		if mod.OnReport != nil {
			mod.OnReport(*stats)
		} else {
			cmd.Logger().Debugf("%.1f fps, worst frame %v", stats.FPS(), stats.Worst)
		}
		*stats = FrameStats{}
	}).Named("frameStats").InStage(Finale))
	return nil
}
