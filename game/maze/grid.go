package maze

import (
	"errors"
	"fmt"
	"strings"

	"mercury-maze/game/types"
)

var (
	// ErrOutOfBounds is returned when a (row, col) lies outside the grid.
	ErrOutOfBounds = errors.New("cell index out of bounds")
	// ErrMalformedGrid is returned when a layout cannot form a grid.
	ErrMalformedGrid = errors.New("malformed maze grid")
)

// Grid is an immutable wall/free map laid over a drawing surface.
// Cell dimensions use truncating integer division of the surface size.
type Grid struct {
	cells      [][]types.Cell
	rows       int
	cols       int
	surface    types.Size
	cellWidth  int
	cellHeight int
}

// New copies layout into a grid covering surface.
func New(layout [][]types.Cell, surface types.Size) (*Grid, error) {
	if len(layout) == 0 || len(layout[0]) == 0 {
		return nil, fmt.Errorf("%w: empty layout", ErrMalformedGrid)
	}

	rows, cols := len(layout), len(layout[0])
	cells := make([][]types.Cell, rows)
	for r, row := range layout {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrMalformedGrid, r, len(row), cols)
		}
		cells[r] = make([]types.Cell, cols)
		for c, cell := range row {
			if cell != types.Free && cell != types.Wall {
				return nil, fmt.Errorf("%w: invalid cell value %d at (%d,%d)", ErrMalformedGrid, cell, r, c)
			}
			cells[r][c] = cell
		}
	}

	if surface.Width < cols || surface.Height < rows {
		return nil, fmt.Errorf("%w: surface %dx%d too small for %dx%d grid",
			ErrMalformedGrid, surface.Width, surface.Height, cols, rows)
	}

	return &Grid{
		cells:      cells,
		rows:       rows,
		cols:       cols,
		surface:    surface,
		cellWidth:  surface.Width / cols,
		cellHeight: surface.Height / rows,
	}, nil
}

// FromBits builds a grid from a 0 = free, 1 = wall literal.
func FromBits(bits [][]int, surface types.Size) (*Grid, error) {
	layout := make([][]types.Cell, len(bits))
	for r, row := range bits {
		layout[r] = make([]types.Cell, len(row))
		for c, v := range row {
			if v != 0 && v != 1 {
				return nil, fmt.Errorf("%w: invalid cell value %d at (%d,%d)", ErrMalformedGrid, v, r, c)
			}
			layout[r][c] = types.Cell(v)
		}
	}
	return New(layout, surface)
}

func (g *Grid) Rows() int { return g.rows }
func (g *Grid) Cols() int { return g.cols }
func (g *Grid) CellWidth() int { return g.cellWidth }
func (g *Grid) CellHeight() int { return g.cellHeight }
func (g *Grid) Surface() types.Size { return g.surface }

func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// CellAt returns the cell at (row, col).
func (g *Grid) CellAt(row, col int) (types.Cell, error) {
	if !g.InBounds(row, col) {
		return types.Wall, fmt.Errorf("%w: (%d,%d) outside %dx%d", ErrOutOfBounds, row, col, g.rows, g.cols)
	}
	return g.cells[row][col], nil
}

// CellIndexForPixel maps a surface coordinate to the cell containing it.
// Coordinates are kept non-negative by clamping upstream; a negative one
// means the clamp was skipped, so it panics instead of rounding toward zero.
func (g *Grid) CellIndexForPixel(px, py float64) (row, col int) {
	if px < 0 || py < 0 {
		panic(fmt.Sprintf("maze: negative pixel coordinate (%g,%g)", px, py))
	}
	return int(py) / g.cellHeight, int(px) / g.cellWidth
}

// CellCenter returns the pixel centre of a cell.
func (g *Grid) CellCenter(row, col int) types.Vec2 {
	return types.Vec2{
		X: float64(col*g.cellWidth) + float64(g.cellWidth)/2,
		Y: float64(row*g.cellHeight) + float64(g.cellHeight)/2,
	}
}

// Walls lists every wall cell in row-major order.
func (g *Grid) Walls() []types.CellPosition {
	var walls []types.CellPosition
	for r, row := range g.cells {
		for c, cell := range row {
			if cell == types.Wall {
				walls = append(walls, types.CellPosition{Row: r, Col: c})
			}
		}
	}
	return walls
}

// FirstFree returns the first free cell in row-major order.
func (g *Grid) FirstFree() (types.CellPosition, bool) {
	for r, row := range g.cells {
		for c, cell := range row {
			if cell == types.Free {
				return types.CellPosition{Row: r, Col: c}, true
			}
		}
	}
	return types.CellPosition{}, false
}

func (g *Grid) String() string {
	var sb strings.Builder
	for _, row := range g.cells {
		for _, cell := range row {
			if cell == types.Wall {
				sb.WriteString("██")
			} else {
				sb.WriteString("  ")
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
