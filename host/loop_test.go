package host

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mercury-maze/game"
	"mercury-maze/game/maze"
	"mercury-maze/game/types"
	"mercury-maze/sensor"
	"mercury-maze/ui"
)

type fakeDisplay struct {
	presents   int
	closeAfter int
	lines      []string
}

func (d *fakeDisplay) Clear() {}
func (d *fakeDisplay) FillRect(x, y, w, h int, p ui.Pen) {}
func (d *fakeDisplay) FillCircle(x, y, r int, p ui.Pen) {}
func (d *fakeDisplay) Present() { d.presents++ }
func (d *fakeDisplay) Annotate(line string) { d.lines = append(d.lines, line) }
func (d *fakeDisplay) ShouldClose() bool {
	return d.closeAfter > 0 && d.presents >= d.closeAfter
}

func newTestGame(t *testing.T) *game.Game {
	t.Helper()
	grid, err := maze.FromBits(maze.ClassicLayout(), types.Size{Width: types.DisplayWidth, Height: types.DisplayHeight})
	require.NoError(t, err)
	g, err := game.NewGame(grid, types.Vec2{X: 40, Y: 40}, game.DefaultTuning(), "classic")
	require.NoError(t, err)
	return g
}

func TestLoopStopsWhenDisplayCloses(t *testing.T) {
	g := newTestGame(t)
	display := &fakeDisplay{closeAfter: 5}
	loop := &Loop{
		Game:    g,
		Display: display,
		Sensor:  sensor.Func(func() (float64, float64) { return 0, 1000 }),
	}

	frames := loop.Run(context.Background())

	assert.Equal(t, 5, frames)
	assert.Equal(t, 5, display.presents)
	assert.Equal(t, 5, g.Stats().Ticks)
	assert.Greater(t, g.Simulator.Blob().Vel.X, 0.0)
	require.Len(t, display.lines, 5)
	assert.Contains(t, display.lines[4], "tick 5")
}

func TestLoopHonoursMaxTicks(t *testing.T) {
	g := newTestGame(t)
	display := &fakeDisplay{}
	loop := &Loop{
		Game:     g,
		Display:  display,
		Sensor:   sensor.NewScript(sensor.Sweep(8, sensor.OneG), true),
		MaxTicks: 3,
	}

	assert.Equal(t, 3, loop.Run(context.Background()))
	assert.Equal(t, 3, g.Stats().Ticks)
}

func TestLoopStopsOnCancelledContext(t *testing.T) {
	g := newTestGame(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	loop := &Loop{Game: g, Display: &fakeDisplay{}, Sensor: sensor.Func(func() (float64, float64) { return 0, 0 })}

	assert.Equal(t, 0, loop.Run(ctx))
	assert.Equal(t, 0, g.Stats().Ticks)
}
