package service

import "github.com/beka-birhanu/vinom-mazeview/maze"

// Inputs mirrors the number inputs of the UI. All values are 1-based.
type Inputs struct {
	Rows     int `json:"rows"`
	Cols     int `json:"cols"`
	StartRow int `json:"start_row"`
	StartCol int `json:"start_col"`
	EndRow   int `json:"end_row"`
	EndCol   int `json:"end_col"`
	// Upper bounds of the endpoint inputs, tracking the maze size. Lower bounds are always 1.
	MaxRow int `json:"max_row"`
	MaxCol int `json:"max_col"`
}

// InputsOf converts the maze state to UI input values.
func InputsOf(m *maze.Maze) Inputs {
	start, end := m.Start(), m.End()
	return Inputs{
		Rows:     m.Rows,
		Cols:     m.Cols,
		StartRow: start.Row + 1,
		StartCol: start.Col + 1,
		EndRow:   end.Row + 1,
		EndCol:   end.Col + 1,
		MaxRow:   m.Rows,
		MaxCol:   m.Cols,
	}
}

// FromInput converts a 1-based UI cell to zero-based maze coordinates.
func FromInput(row, col int) (int, int) {
	return row - 1, col - 1
}
