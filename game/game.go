package game

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"

	"mercury-maze/game/entity"
	"mercury-maze/game/manager"
	"mercury-maze/game/maze"
	"mercury-maze/game/types"
)

var (
	ErrInvalidTuning = errors.New("invalid simulator tuning")
	ErrStartInWall   = errors.New("start position is not walkable")
)

// TickResult reports what the collision checks decided during one tick.
type TickResult struct {
	BlockedX bool
	BlockedY bool
	Moved    float64 // distance actually travelled, after clamping
}

// Simulator advances a single blob through a maze. It is synchronous and
// owned by one caller; nothing in it blocks or locks.
type Simulator struct {
	grid      *maze.Grid
	blob      *entity.Blob
	tuning    Tuning
	collision *manager.CollisionManager
}

func NewSimulator(grid *maze.Grid, start types.Vec2, tuning Tuning) (*Simulator, error) {
	if err := tuning.Validate(); err != nil {
		return nil, err
	}

	blob := entity.NewBlob(start, tuning.Radius)
	if !blob.Inside(grid.Surface()) {
		return nil, fmt.Errorf("%w: (%g,%g) with radius %g is off a %dx%d surface",
			ErrStartInWall, start.X, start.Y, tuning.Radius, grid.Surface().Width, grid.Surface().Height)
	}
	row, col := grid.CellIndexForPixel(start.X, start.Y)
	if cell, err := grid.CellAt(row, col); err != nil || cell == types.Wall {
		return nil, fmt.Errorf("%w: (%g,%g) falls in cell (%d,%d)", ErrStartInWall, start.X, start.Y, row, col)
	}

	return &Simulator{
		grid:      grid,
		blob:      blob,
		tuning:    tuning,
		collision: manager.NewCollisionManager(grid, tuning.Radius),
	}, nil
}

// Tick consumes one tilt sample and moves the blob.
//
// The sensor is mounted rotated: its Y axis drives screen X and its X axis
// drives screen Y inverted. Each axis is collision-checked and committed on
// its own, so a blob pressed against a wall still slides along it.
func (s *Simulator) Tick(tiltX, tiltY float64) TickResult {
	b := s.blob
	before := b.Pos

	b.Vel.X += s.tuning.SpeedScale * (tiltY / s.tuning.TiltDivisor)
	b.Vel.Y += s.tuning.SpeedScale * (-tiltX / s.tuning.TiltDivisor)

	b.Vel.X *= s.tuning.Damping
	b.Vel.Y *= s.tuning.Damping

	proposedX := b.Pos.X + b.Vel.X
	proposedY := b.Pos.Y + b.Vel.Y

	var res TickResult
	if res.BlockedX = s.blocked(manager.Horizontal, b.Vel.X); !res.BlockedX {
		b.Pos.X = proposedX
		// The vertical check samples the new column, so it must be on the surface.
		s.Clamp()
	}
	if res.BlockedY = s.blocked(manager.Vertical, b.Vel.Y); !res.BlockedY {
		b.Pos.Y = proposedY
	}

	s.Clamp()

	res.Moved = math.Hypot(b.Pos.X-before.X, b.Pos.Y-before.Y)
	return res
}

// blocked treats a sample outside the grid as wall. A step longer than the
// radius can land the blob in the uncovered strip or against the surface edge,
// and the next sample from there would leave the grid.
func (s *Simulator) blocked(axis manager.Axis, v float64) bool {
	return s.collision.OffGrid(axis, s.blob.Pos, v) || s.collision.Blocked(axis, s.blob.Pos, v)
}

// Clamp keeps the blob within [r, size-r] on both axes. It is idempotent.
func (s *Simulator) Clamp() {
	s.blob.Clamp(s.grid.Surface())
}

func (s *Simulator) Blob() *entity.Blob { return s.blob }
func (s *Simulator) Grid() *maze.Grid { return s.grid }
func (s *Simulator) Tuning() Tuning { return s.tuning }

// Game ties a simulator to a session identity and its stats.
type Game struct {
	UUID      string
	Layout    string
	Simulator *Simulator
	stats     *manager.StatsManager
}

func NewGame(grid *maze.Grid, start types.Vec2, tuning Tuning, layout string) (*Game, error) {
	sim, err := NewSimulator(grid, start, tuning)
	if err != nil {
		return nil, err
	}

	gameUUID := uuid.New().String()
	return &Game{
		UUID:      gameUUID,
		Layout:    layout,
		Simulator: sim,
		stats:     manager.NewStatsManager(gameUUID, layout),
	}, nil
}

// Update runs one tick and records it.
func (g *Game) Update(tiltX, tiltY float64) TickResult {
	res := g.Simulator.Tick(tiltX, tiltY)
	g.stats.Record(res.BlockedX, res.BlockedY, res.Moved, g.Simulator.Blob().Speed())
	return res
}

func (g *Game) Stats() manager.SessionStats {
	return g.stats.Stats()
}

// SaveStats writes the session stats under dataDir and returns the file path.
func (g *Game) SaveStats(dataDir string) (string, error) {
	filename := manager.StatsFile(dataDir, g.UUID)
	if err := g.stats.SaveStats(filename); err != nil {
		return "", fmt.Errorf("save stats for session %s: %w", g.UUID, err)
	}
	return filename, nil
}
