package i

import (
	"context"

	"github.com/beka-birhanu/vinom-mazeview/maze"
)

// MazeService is the remote collaborator that generates and solves mazes.
type MazeService interface {
	// Generate returns the vertical and horizontal wall rows of a new rows x cols maze.
	Generate(ctx context.Context, rows, cols int) (vertical, horizontal []maze.Bitset, err error)

	// Solve returns the cells from the maze start to its end, start first.
	// An unsolvable maze yields an empty path.
	Solve(ctx context.Context, m *maze.Maze) ([]maze.CellPosition, error)
}
