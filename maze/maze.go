/*
Package maze provides the rectangular maze model shared by the codec, the renderer and the session.

Walls are stored per row as arbitrary-width bitsets. Vertical walls separate horizontally
adjacent cells, horizontal walls separate vertically adjacent cells. The model also keeps
the start and end markers and the last path returned by the solver, which is dropped
whenever an endpoint moves.
*/
package maze

import (
	"errors"
	"fmt"
	"strings"
)

const (
	MinDimension = 1
	MaxDimension = 50
)

var (
	ErrInvalidDimension = errors.New("invalid maze dimensions")
	ErrOutOfRange       = errors.New("cell is out of the maze")
	ErrWallShape        = errors.New("wall rows do not match maze dimensions")
)

// Maze is the single source of truth for a grid maze.
type Maze struct {
	Rows int // Number of rows
	Cols int // Number of columns

	vertical   []Bitset // rows entries, width cols-1
	horizontal []Bitset // rows-1 entries, width cols

	start CellPosition
	end   CellPosition
	path  []CellPosition
}

// New initializes an all-clear maze with the start in the top-left corner
// and the end in the bottom-right one.
func New(rows, cols int) (*Maze, error) {
	m := &Maze{}
	if err := m.Resize(rows, cols); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks dimensions against the bounds accepted from files and the generator.
func Validate(rows, cols int) error {
	if min(rows, cols) < MinDimension || max(rows, cols) > MaxDimension {
		return fmt.Errorf("%w: %dx%d, each must be between %d and %d", ErrInvalidDimension, rows, cols, MinDimension, MaxDimension)
	}
	return nil
}

// Resize replaces all wall data with an empty grid of the new dimensions and resets the endpoints.
func (m *Maze) Resize(rows, cols int) error {
	if rows < 1 || cols < 1 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimension, rows, cols)
	}

	m.Rows = rows
	m.Cols = cols
	m.vertical = make([]Bitset, rows)
	m.horizontal = make([]Bitset, rows-1)
	m.start = CellPosition{Row: 0, Col: 0}
	m.end = CellPosition{Row: rows - 1, Col: cols - 1}
	m.path = nil
	return nil
}

// Contains reports whether the cell lies inside the grid.
func (m *Maze) Contains(row, col int) bool {
	return row >= 0 && row < m.Rows && col >= 0 && col < m.Cols
}

// Start returns the start marker.
func (m *Maze) Start() CellPosition {
	return m.start
}

// End returns the end marker.
func (m *Maze) End() CellPosition {
	return m.end
}

// SetStart moves the start marker. Out of range cells are rejected without mutation.
func (m *Maze) SetStart(row, col int) error {
	if !m.Contains(row, col) {
		return fmt.Errorf("%w: start %v", ErrOutOfRange, CellPosition{Row: row, Col: col})
	}
	m.start = CellPosition{Row: row, Col: col}
	m.path = nil
	return nil
}

// SetEnd moves the end marker. Out of range cells are rejected without mutation.
func (m *Maze) SetEnd(row, col int) error {
	if !m.Contains(row, col) {
		return fmt.Errorf("%w: end %v", ErrOutOfRange, CellPosition{Row: row, Col: col})
	}
	m.end = CellPosition{Row: row, Col: col}
	m.path = nil
	return nil
}

// ReplaceWalls swaps in new wall rows. The slices must have rows and rows-1 entries.
// Bits beyond the logical row widths are cleared.
func (m *Maze) ReplaceWalls(vertical, horizontal []Bitset) error {
	if len(vertical) != m.Rows || len(horizontal) != m.Rows-1 {
		return fmt.Errorf("%w: got %d vertical and %d horizontal rows for %dx%d", ErrWallShape, len(vertical), len(horizontal), m.Rows, m.Cols)
	}

	v := make([]Bitset, len(vertical))
	for i, row := range vertical {
		v[i] = row.Clone()
		v[i].Truncate(m.Cols - 1)
	}
	h := make([]Bitset, len(horizontal))
	for i, row := range horizontal {
		h[i] = row.Clone()
		h[i].Truncate(m.Cols)
	}

	m.vertical = v
	m.horizontal = h
	m.path = nil
	return nil
}

// Vertical returns a copy of the vertical wall rows.
func (m *Maze) Vertical() []Bitset {
	return cloneRows(m.vertical)
}

// Horizontal returns a copy of the horizontal wall rows.
func (m *Maze) Horizontal() []Bitset {
	return cloneRows(m.horizontal)
}

// HasVerticalWall reports the wall between (row, col) and (row, col+1).
func (m *Maze) HasVerticalWall(row, col int) bool {
	if row < 0 || row >= m.Rows || col < 0 || col >= m.Cols-1 {
		return false
	}
	return m.vertical[row].has(col)
}

// HasHorizontalWall reports the wall between (row, col) and (row+1, col).
func (m *Maze) HasHorizontalWall(row, col int) bool {
	if row < 0 || row >= m.Rows-1 || col < 0 || col >= m.Cols {
		return false
	}
	return m.horizontal[row].has(col)
}

// SetPath stores a solver result. Cells outside the grid are rejected.
func (m *Maze) SetPath(path []CellPosition) error {
	for _, c := range path {
		if !m.Contains(c.Row, c.Col) {
			return fmt.Errorf("%w: path cell %v", ErrOutOfRange, c)
		}
	}
	m.path = append([]CellPosition(nil), path...)
	return nil
}

// Path returns the last solver result, nil once invalidated.
func (m *Maze) Path() []CellPosition {
	if m.path == nil {
		return nil
	}
	return append([]CellPosition(nil), m.path...)
}

// Clone returns a deep copy.
func (m *Maze) Clone() *Maze {
	return &Maze{
		Rows:       m.Rows,
		Cols:       m.Cols,
		vertical:   cloneRows(m.vertical),
		horizontal: cloneRows(m.horizontal),
		start:      m.start,
		end:        m.end,
		path:       m.Path(),
	}
}

// String provides a textual representation of the maze.
func (m *Maze) String() string {
	var output strings.Builder

	// Top boundary
	output.WriteString("+" + strings.Repeat("---+", m.Cols) + "\n")

	for row := 0; row < m.Rows; row++ {
		cellRow := "|"
		for col := 0; col < m.Cols; col++ {
			switch (CellPosition{Row: row, Col: col}) {
			case m.start:
				cellRow += " S "
			case m.end:
				cellRow += " E "
			default:
				cellRow += "   "
			}

			// Outer east boundary is always closed
			if col == m.Cols-1 || m.HasVerticalWall(row, col) {
				cellRow += "|"
			} else {
				cellRow += " "
			}
		}
		output.WriteString(cellRow + "\n")

		wallRow := "+"
		for col := 0; col < m.Cols; col++ {
			if row == m.Rows-1 || m.HasHorizontalWall(row, col) {
				wallRow += "---+"
			} else {
				wallRow += "   +"
			}
		}
		output.WriteString(wallRow + "\n")
	}

	return output.String()
}

func cloneRows(rows []Bitset) []Bitset {
	out := make([]Bitset, len(rows))
	for i, r := range rows {
		out[i] = r.Clone()
	}
	return out
}
