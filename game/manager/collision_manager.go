package manager

import (
	"fmt"
	"math"

	"mercury-maze/game/maze"
	"mercury-maze/game/types"
)

// Axis selects which velocity component a collision check looks at
type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

func (a Axis) String() string {
	if a == Vertical {
		return "vertical"
	}
	return "horizontal"
}

type CollisionManager struct {
	grid   *maze.Grid
	radius float64
}

func NewCollisionManager(grid *maze.Grid, radius float64) *CollisionManager {
	return &CollisionManager{
		grid:   grid,
		radius: radius,
	}
}

// Blocked reports whether moving along axis with velocity v would put the
// blob's leading edge inside a wall. The edge is sampled once, at pos offset by
// the radius in the direction of travel; the orthogonal coordinate is the
// centre of pos. A zero velocity component never collides.
//
// Only one sample is taken per axis, so a blob moving faster than a wall is
// thick can pass through it between ticks.
func (cm *CollisionManager) Blocked(axis Axis, pos types.Vec2, v float64) bool {
	if v == 0 {
		return false
	}
	px, py := cm.sample(axis, pos, v)
	return cm.isWall(cm.floorDiv(py, cm.grid.CellHeight()), cm.floorDiv(px, cm.grid.CellWidth()))
}

// OffGrid reports whether the sample Blocked would take lies outside the
// pixels the grid covers: past the surface edge, or in the strip left over
// when the surface does not divide evenly into cells.
func (cm *CollisionManager) OffGrid(axis Axis, pos types.Vec2, v float64) bool {
	if v == 0 {
		return false
	}
	px, py := cm.sample(axis, pos, v)
	w := float64(cm.grid.Cols() * cm.grid.CellWidth())
	h := float64(cm.grid.Rows() * cm.grid.CellHeight())
	return px < 0 || py < 0 || px >= w || py >= h
}

// sample is the leading edge of a blob at pos moving along axis.
func (cm *CollisionManager) sample(axis Axis, pos types.Vec2, v float64) (px, py float64) {
	edge := cm.radius
	if v < 0 {
		edge = -edge
	}
	if axis == Vertical {
		return pos.X, pos.Y + edge
	}
	return pos.X + edge, pos.Y
}

// BlockedX is the horizontal check for velocity vx at pos.
func (cm *CollisionManager) BlockedX(pos types.Vec2, vx float64) bool {
	return cm.Blocked(Horizontal, pos, vx)
}

// BlockedY is the vertical check for velocity vy at pos.
func (cm *CollisionManager) BlockedY(pos types.Vec2, vy float64) bool {
	return cm.Blocked(Vertical, pos, vy)
}

// isWall panics on an out-of-range index: clamping should make that impossible.
func (cm *CollisionManager) isWall(row, col int) bool {
	cell, err := cm.grid.CellAt(row, col)
	if err != nil {
		panic(fmt.Errorf("collision sample escaped the grid: %w", err))
	}
	return cell == types.Wall
}

func (cm *CollisionManager) floorDiv(p float64, size int) int {
	if p < 0 {
		panic(fmt.Errorf("collision sample at negative coordinate %g: %w", p, maze.ErrOutOfBounds))
	}
	return int(math.Floor(p / float64(size)))
}
