// Package mazeapi exposes the maze viewer controls over HTTP.
package mazeapi

import (
	"github.com/beka-birhanu/vinom-mazeview/maze"
	"github.com/beka-birhanu/vinom-mazeview/render"
	"github.com/beka-birhanu/vinom-mazeview/service"
)

// GenerateRequest asks for a new maze of the given size.
type GenerateRequest struct {
	Rows int `json:"rows" binding:"required"`
	Cols int `json:"cols" binding:"required"`
}

// CellRequest names a 1-based cell, as typed in the UI inputs.
type CellRequest struct {
	Row *int `json:"row" binding:"required"`
	Col *int `json:"col" binding:"required"`
}

// StateResponse is the current maze as the UI shows it.
type StateResponse struct {
	Inputs service.Inputs `json:"inputs"`
	Text   string         `json:"text"`
}

// FrameResponse lists the drawing commands currently on the canvas.
type FrameResponse struct {
	Commands []render.Command `json:"commands"`
}

// SolveResponse carries the solver path as zero-based cells.
type SolveResponse struct {
	Path []Cell `json:"path"`
}

type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func cellsOf(path []maze.CellPosition) []Cell {
	cells := make([]Cell, len(path))
	for k, c := range path {
		cells[k] = Cell{Row: c.Row, Col: c.Col}
	}
	return cells
}
