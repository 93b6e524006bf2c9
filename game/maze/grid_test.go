package maze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mercury-maze/game/types"
)

func TestNewGrid(t *testing.T) {
	t.Run("derives cell size with truncating division", func(t *testing.T) {
		g, err := FromBits(ClassicLayout(), types.Size{Width: types.DisplayWidth, Height: types.DisplayHeight})
		require.NoError(t, err)

		assert.Equal(t, 11, g.Rows())
		assert.Equal(t, 16, g.Cols())
		assert.Equal(t, 20, g.CellWidth())
		assert.Equal(t, 21, g.CellHeight()) // 240 / 11
	})

	t.Run("rejects ragged rows", func(t *testing.T) {
		_, err := FromBits([][]int{{1, 1, 1}, {1, 0}}, types.Size{Width: 30, Height: 20})
		assert.ErrorIs(t, err, ErrMalformedGrid)
	})

	t.Run("rejects empty layout", func(t *testing.T) {
		_, err := New(nil, types.Size{Width: 30, Height: 20})
		assert.ErrorIs(t, err, ErrMalformedGrid)

		_, err = New([][]types.Cell{{}}, types.Size{Width: 30, Height: 20})
		assert.ErrorIs(t, err, ErrMalformedGrid)
	})

	t.Run("rejects values other than 0 and 1", func(t *testing.T) {
		_, err := FromBits([][]int{{1, 2}}, types.Size{Width: 20, Height: 10})
		assert.ErrorIs(t, err, ErrMalformedGrid)
	})

	t.Run("rejects surface smaller than the grid", func(t *testing.T) {
		_, err := FromBits([][]int{{1, 0, 1}}, types.Size{Width: 2, Height: 10})
		assert.ErrorIs(t, err, ErrMalformedGrid)
	})

	t.Run("copies the layout", func(t *testing.T) {
		layout := [][]types.Cell{{types.Wall, types.Free}}
		g, err := New(layout, types.Size{Width: 20, Height: 10})
		require.NoError(t, err)

		layout[0][1] = types.Wall
		cell, err := g.CellAt(0, 1)
		require.NoError(t, err)
		assert.Equal(t, types.Free, cell)
	})
}

func TestCellAt(t *testing.T) {
	g, err := FromBits([][]int{{1, 0, 0, 1}, {1, 1, 0, 1}}, types.Size{Width: 40, Height: 20})
	require.NoError(t, err)

	cell, err := g.CellAt(0, 1)
	require.NoError(t, err)
	assert.Equal(t, types.Free, cell)

	cell, err = g.CellAt(1, 1)
	require.NoError(t, err)
	assert.Equal(t, types.Wall, cell)

	for _, idx := range [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 4}} {
		_, err := g.CellAt(idx[0], idx[1])
		assert.ErrorIs(t, err, ErrOutOfBounds, "index %v", idx)
	}
}

func TestCellIndexForPixel(t *testing.T) {
	g, err := FromBits(ClassicLayout(), types.Size{Width: 320, Height: 240})
	require.NoError(t, err)

	tests := []struct {
		px, py   float64
		row, col int
	}{
		{0, 0, 0, 0},
		{19.99, 20.99, 0, 0},
		{20, 21, 1, 1},
		{40, 40, 1, 2},
		{319, 230, 10, 15},
	}
	for _, tt := range tests {
		row, col := g.CellIndexForPixel(tt.px, tt.py)
		assert.Equal(t, tt.row, row, "row for (%g,%g)", tt.px, tt.py)
		assert.Equal(t, tt.col, col, "col for (%g,%g)", tt.px, tt.py)
	}

	assert.Panics(t, func() { g.CellIndexForPixel(-0.5, 10) })
}

func TestCellCenterAndWalls(t *testing.T) {
	g, err := FromBits([][]int{{1, 1, 1}, {1, 0, 1}, {1, 1, 1}}, types.Size{Width: 30, Height: 30})
	require.NoError(t, err)

	assert.Equal(t, types.Vec2{X: 15, Y: 15}, g.CellCenter(1, 1))
	assert.Len(t, g.Walls(), 8)
	assert.NotContains(t, g.Walls(), types.CellPosition{Row: 1, Col: 1})

	free, ok := g.FirstFree()
	assert.True(t, ok)
	assert.Equal(t, types.CellPosition{Row: 1, Col: 1}, free)
}
