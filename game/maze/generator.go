package maze

import (
	"fmt"

	"golang.org/x/exp/rand"

	"mercury-maze/game/types"
)

var directions = []types.CellPosition{
	{Row: -1, Col: 0}, // North
	{Row: 1, Col: 0},  // South
	{Row: 0, Col: 1},  // East
	{Row: 0, Col: -1}, // West
}

// Generate builds a perfect maze of rooms x rooms with Wilson's algorithm and
// returns it as a wall/free bitmap of (2*rows+1) x (2*cols+1) cells.
// Rooms sit on odd indices; the outer border is always wall.
func Generate(rows, cols int, rng *rand.Rand) ([][]int, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("%w: generator needs at least one room, got %dx%d", ErrMalformedGrid, rows, cols)
	}

	bits := make([][]int, 2*rows+1)
	for r := range bits {
		bits[r] = make([]int, 2*cols+1)
		for c := range bits[r] {
			bits[r][c] = 1
		}
	}

	inMaze := make([][]bool, rows)
	for r := range inMaze {
		inMaze[r] = make([]bool, cols)
	}
	remaining := rows*cols - 1

	root := types.CellPosition{Row: rng.Intn(rows), Col: rng.Intn(cols)}
	inMaze[root.Row][root.Col] = true
	bits[2*root.Row+1][2*root.Col+1] = 0

	// exit[r][c] holds the last direction taken out of a room during the
	// current walk, which erases loops implicitly when the path is retraced.
	exit := make([][]int, rows)
	for r := range exit {
		exit[r] = make([]int, cols)
	}

	for remaining > 0 {
		start := randomRoomOutside(inMaze, rng)

		cell := start
		for !inMaze[cell.Row][cell.Col] {
			d := randomStep(cell, rows, cols, rng)
			exit[cell.Row][cell.Col] = d
			cell = types.CellPosition{Row: cell.Row + directions[d].Row, Col: cell.Col + directions[d].Col}
		}

		cell = start
		for !inMaze[cell.Row][cell.Col] {
			d := directions[exit[cell.Row][cell.Col]]
			inMaze[cell.Row][cell.Col] = true
			remaining--

			bits[2*cell.Row+1][2*cell.Col+1] = 0
			bits[2*cell.Row+1+d.Row][2*cell.Col+1+d.Col] = 0
			cell = types.CellPosition{Row: cell.Row + d.Row, Col: cell.Col + d.Col}
		}
	}

	return bits, nil
}

func randomRoomOutside(inMaze [][]bool, rng *rand.Rand) types.CellPosition {
	rows, cols := len(inMaze), len(inMaze[0])
	for {
		pos := types.CellPosition{Row: rng.Intn(rows), Col: rng.Intn(cols)}
		if !inMaze[pos.Row][pos.Col] {
			return pos
		}
	}
}

func randomStep(from types.CellPosition, rows, cols int, rng *rand.Rand) int {
	for {
		d := rng.Intn(len(directions))
		r, c := from.Row+directions[d].Row, from.Col+directions[d].Col
		if r >= 0 && r < rows && c >= 0 && c < cols {
			return d
		}
	}
}
