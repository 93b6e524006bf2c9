package ui

import (
	"mercury-maze/game/entity"
	"mercury-maze/game/maze"
)

// Pen selects what a fill represents; each surface maps it to its own colours.
type Pen int

const (
	PenBackground Pen = iota
	PenWall
	PenBlob
	PenHighlight
)

// Surface is a drawing target with integer pixel coordinates.
type Surface interface {
	Clear()
	FillRect(x, y, w, h int, pen Pen)
	FillCircle(x, y, r int, pen Pen)
	Present()
}

// Annotator is implemented by surfaces that can show a status line.
type Annotator interface {
	Annotate(line string)
}

const (
	highlightOffset = 3
	highlightRadius = 3
)

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Draw renders one frame: every wall cell, the blob and its shine.
func (r *Renderer) Draw(s Surface, grid *maze.Grid, blob *entity.Blob) {
	r.DrawFrame(s, grid, blob, "")
}

// DrawFrame is Draw with an optional status line for surfaces that support it.
func (r *Renderer) DrawFrame(s Surface, grid *maze.Grid, blob *entity.Blob, status string) {
	s.Clear()

	cw, ch := grid.CellWidth(), grid.CellHeight()
	for _, wall := range grid.Walls() {
		s.FillRect(wall.Col*cw, wall.Row*ch, cw, ch, PenWall)
	}

	x, y := int(blob.Pos.X), int(blob.Pos.Y)
	s.FillCircle(x, y, int(blob.Radius), PenBlob)
	s.FillCircle(x-highlightOffset, y-highlightOffset, highlightRadius, PenHighlight)

	if a, ok := s.(Annotator); ok && status != "" {
		a.Annotate(status)
	}

	s.Present()
}
