// Package player replays a solved path on a surface as a paced trail.
package player

import (
	"context"
	"time"

	"github.com/beka-birhanu/vinom-mazeview/maze"
	"github.com/beka-birhanu/vinom-mazeview/render"
)

// DefaultInterval is the delay between two revealed cells.
const DefaultInterval = 10 * time.Millisecond

// PathPlayer draws a path one cell at a time over a freshly rendered maze.
type PathPlayer struct {
	surface  render.Surface
	interval time.Duration
}

// New creates a player drawing on surface. A non-positive interval falls back to DefaultInterval.
func New(surface render.Surface, interval time.Duration) *PathPlayer {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &PathPlayer{
		surface:  surface,
		interval: interval,
	}
}

// Interval returns the pacing between reveal steps.
func (p *PathPlayer) Interval() time.Duration {
	return p.interval
}

// Play renders m, then reveals path[1:] one marker per interval, the first one at once.
// The first cell is the start marker, which the base render already shows.
// Earlier markers stay visible. Play returns ctx.Err() if canceled before the trail completes.
func (p *PathPlayer) Play(ctx context.Context, m *maze.Maze, path []maze.CellPosition) error {
	w, h := p.surface.Bounds()
	p.surface.Draw(render.Render(m, w, h)...)
	if len(path) < 2 {
		return nil
	}

	cw, ch := render.CellSize(w, h, m.Rows, m.Cols)
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for k, cell := range path[1:] {
		if k == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		} else {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
			}
		}
		p.surface.Draw(render.Marker(cell, cw, ch, render.ColorPath))
	}
	return nil
}
