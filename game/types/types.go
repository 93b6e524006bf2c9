package types

// Cell is the content of one maze grid unit
type Cell uint8

const (
	Free Cell = iota // 0
	Wall             // 1
)

func (c Cell) String() string {
	if c == Wall {
		return "wall"
	}
	return "free"
}

// Size represents surface dimensions in pixels
type Size struct {
	Width  int
	Height int
}

// Vec2 is a point or delta in surface pixel space
type Vec2 struct {
	X, Y float64
}

// CellPosition addresses a grid cell, row-major with origin top-left
type CellPosition struct {
	Row int
	Col int
}

// Reference hardware: Pico Display 2 with an LSM6DS3 sampled every ~10ms
const (
	DisplayWidth  = 320
	DisplayHeight = 240
)
