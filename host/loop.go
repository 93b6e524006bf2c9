// Package host runs the frame loop around the simulator: it owns pacing,
// sensor polling and rendering, none of which the simulator knows about.
package host

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"mercury-maze/game"
	"mercury-maze/sensor"
	"mercury-maze/ui"
)

// Display is a surface the user can close.
type Display interface {
	ui.Surface
	ShouldClose() bool
}

type Loop struct {
	Game       *game.Game
	Display    Display
	Sensor     sensor.Sensor
	Renderer   *ui.Renderer
	FrameDelay time.Duration
	MaxTicks   int // 0 runs until closed
	Logger     *log.Logger
}

// Run ticks once per frame until ctx is done, the display closes or MaxTicks
// frames have run. It returns the number of frames run.
func (l *Loop) Run(ctx context.Context) int {
	logger := l.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	renderer := l.Renderer
	if renderer == nil {
		renderer = ui.NewRenderer()
	}

	sim := l.Game.Simulator
	logger.Printf("[INFO] session %s started on %dx%d grid", l.Game.UUID, sim.Grid().Rows(), sim.Grid().Cols())

	frames := 0
	for l.MaxTicks == 0 || frames < l.MaxTicks {
		if ctx.Err() != nil || l.Display.ShouldClose() {
			break
		}

		tiltX, tiltY := l.Sensor.ReadTilt()
		l.Game.Update(tiltX, tiltY)
		renderer.DrawFrame(l.Display, sim.Grid(), sim.Blob(), status(l.Game))
		frames++

		if l.FrameDelay > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(l.FrameDelay):
			}
		}
	}

	stats := l.Game.Stats()
	logger.Printf("[INFO] session %s stopped after %d ticks (blocked x=%d y=%d, distance %.1fpx)",
		l.Game.UUID, stats.Ticks, stats.BlockedX, stats.BlockedY, stats.Distance)
	return frames
}

func status(g *game.Game) string {
	stats := g.Stats()
	b := g.Simulator.Blob()
	return fmt.Sprintf("tick %d  pos %.0f,%.0f  speed %.2f  blocked %d/%d",
		stats.Ticks, b.Pos.X, b.Pos.Y, b.Speed(), stats.BlockedX, stats.BlockedY)
}
