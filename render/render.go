/*
Package render turns a maze into a list of pixel-space drawing commands.

Cell geometry is kept fractional. Strokes are shifted by half a pixel so that
1px lines land on whole pixel columns and rows.
*/
package render

import (
	"github.com/beka-birhanu/vinom-mazeview/maze"
)

const (
	halfPixel = 0.5
	// markerScale is the marker side relative to the smaller cell dimension.
	markerScale = 0.5
)

// CellSize returns the pixel width and height of one cell.
func CellSize(width, height float64, rows, cols int) (float64, float64) {
	return width / float64(cols), height / float64(rows)
}

// MarkerSize returns the side of an endpoint or path marker.
func MarkerSize(cellWidth, cellHeight float64) float64 {
	return min(cellWidth, cellHeight) * markerScale
}

// Render produces the full frame for m: background, border, walls and both endpoint markers.
// The output depends only on the walls, the endpoints and the canvas size.
func Render(m *maze.Maze, width, height float64) []Command {
	cw, ch := CellSize(width, height, m.Rows, m.Cols)

	cmds := []Command{
		{Op: OpClear, X: 0, Y: 0, W: width, H: height},
		{Op: OpStrokeRect, X: halfPixel, Y: halfPixel, W: width - 1, H: height - 1, Color: ColorWall},
	}

	for i := 0; i < m.Rows; i++ {
		for j := 0; j < m.Cols-1; j++ {
			if !m.HasVerticalWall(i, j) {
				continue
			}
			x := float64(j+1)*cw + halfPixel
			cmds = append(cmds, Command{
				Op: OpLine,
				X:  x, Y: float64(i)*ch + halfPixel,
				X2: x, Y2: float64(i+1)*ch + halfPixel,
				Color: ColorWall,
			})
		}
	}

	for i := 0; i < m.Rows-1; i++ {
		for j := 0; j < m.Cols; j++ {
			if !m.HasHorizontalWall(i, j) {
				continue
			}
			y := float64(i+1)*ch + halfPixel
			cmds = append(cmds, Command{
				Op: OpLine,
				X:  float64(j)*cw + halfPixel, Y: y,
				X2: float64(j+1)*cw + halfPixel, Y2: y,
				Color: ColorWall,
			})
		}
	}

	return append(cmds,
		Marker(m.Start(), cw, ch, ColorStart),
		Marker(m.End(), cw, ch, ColorEnd),
	)
}

// Marker returns a filled square centered on cell.
func Marker(cell maze.CellPosition, cellWidth, cellHeight float64, color Color) Command {
	size := MarkerSize(cellWidth, cellHeight)
	return Command{
		Op:    OpFillRect,
		X:     (float64(cell.Col)+0.5)*cellWidth - size/2,
		Y:     (float64(cell.Row)+0.5)*cellHeight - size/2,
		W:     size,
		H:     size,
		Color: color,
	}
}

// Redraw renders m onto s at the surface's own size.
func Redraw(s Surface, m *maze.Maze) {
	w, h := s.Bounds()
	s.Draw(Render(m, w, h)...)
}
