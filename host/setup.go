package host

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/exp/rand"

	"mercury-maze/config"
	"mercury-maze/game/maze"
	"mercury-maze/game/types"
	"mercury-maze/sensor"
)

// scriptPeriod is the number of frames one scripted sweep takes.
const scriptPeriod = 400

// BuildGrid lays the configured maze over the configured surface.
func BuildGrid(cfg config.Config, logger *log.Logger) (*maze.Grid, error) {
	switch cfg.Layout {
	case config.LayoutClassic:
		return maze.FromBits(maze.ClassicLayout(), cfg.SurfaceSize())
	case config.LayoutGenerated:
		seed := cfg.Seed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		if logger != nil {
			logger.Printf("[INFO] generating %dx%d maze with seed %d", cfg.GenRows, cfg.GenCols, seed)
		}
		bits, err := maze.Generate(cfg.GenRows, cfg.GenCols, rand.New(rand.NewSource(seed)))
		if err != nil {
			return nil, err
		}
		return maze.FromBits(bits, cfg.SurfaceSize())
	}
	return nil, fmt.Errorf("%w: unknown layout %q", config.ErrInvalidConfig, cfg.Layout)
}

// StartPosition returns the configured start. Generated layouts move it to
// the centre of the first free cell when it would land in a wall, since the
// configured point was chosen without knowing the maze.
func StartPosition(cfg config.Config, grid *maze.Grid) types.Vec2 {
	start := types.Vec2{X: cfg.StartX, Y: cfg.StartY}
	if cfg.Layout != config.LayoutGenerated || startIsFree(grid, start) {
		return start
	}
	if cell, ok := grid.FirstFree(); ok {
		return grid.CellCenter(cell.Row, cell.Col)
	}
	return start
}

func startIsFree(grid *maze.Grid, p types.Vec2) bool {
	if p.X < 0 || p.Y < 0 {
		return false
	}
	row, col := grid.CellIndexForPixel(p.X, p.Y)
	cell, err := grid.CellAt(row, col)
	return err == nil && cell == types.Free
}

// OpenSensor builds the configured tilt source. The websocket sensor serves
// until ctx is done.
func OpenSensor(ctx context.Context, cfg config.Config, keys sensor.KeySource, logger *log.Logger) (sensor.Sensor, error) {
	switch cfg.Sensor {
	case config.SensorKeyboard:
		return sensor.NewKeyboard(keys, 0), nil
	case config.SensorScript:
		return sensor.NewScript(sensor.Sweep(scriptPeriod, sensor.OneG/2), true), nil
	case config.SensorWebsocket:
		ws := sensor.NewWebsocket(sensor.WithLogger(logger))
		go func() {
			if err := ws.ListenAndServe(ctx, cfg.WSAddr); err != nil && logger != nil {
				logger.Printf("[ERROR] tilt server on %s stopped: %v", cfg.WSAddr, err)
			}
		}()
		return ws, nil
	}
	return nil, fmt.Errorf("%w: unknown sensor %q", config.ErrInvalidConfig, cfg.Sensor)
}
