// Package raster rasterizes render commands into an RGBA image.
package raster

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"sync"

	"github.com/beka-birhanu/vinom-mazeview/render"
	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

const strokeWidth = 1.0

var (
	background = color.RGBA{255, 255, 255, 255}

	palette = map[render.Color]color.RGBA{
		"black": {0, 0, 0, 255},
		"green": {0, 128, 0, 255},
		"red":   {255, 0, 0, 255},
		"white": {255, 255, 255, 255},
	}
)

// Raster is a render.Surface backed by an in-memory image.
type Raster struct {
	img *image.RGBA
	z   *vector.Rasterizer
	sync.Mutex
}

var _ render.Surface = &Raster{}

// New creates a blank raster of the given pixel size.
func New(width, height int) *Raster {
	r := &Raster{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
		z:   vector.NewRasterizer(width, height),
	}
	r.clear()
	return r
}

// Bounds implements render.Surface.
func (r *Raster) Bounds() (float64, float64) {
	b := r.img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

// Draw implements render.Surface.
func (r *Raster) Draw(cmds ...render.Command) {
	r.Lock()
	defer r.Unlock()

	for _, c := range cmds {
		switch c.Op {
		case render.OpClear:
			r.clear()
		case render.OpFillRect:
			r.fill(colorOf(c.Color), rect(c.X, c.Y, c.X+c.W, c.Y+c.H))
		case render.OpLine:
			r.fill(colorOf(c.Color), segment(c.X, c.Y, c.X2, c.Y2))
		case render.OpStrokeRect:
			x0, y0, x1, y1 := c.X, c.Y, c.X+c.W, c.Y+c.H
			col := colorOf(c.Color)
			r.fill(col, segment(x0, y0, x1, y0))
			r.fill(col, segment(x1, y0, x1, y1))
			r.fill(col, segment(x1, y1, x0, y1))
			r.fill(col, segment(x0, y1, x0, y0))
		}
	}
}

// Image returns a copy of the current pixels.
func (r *Raster) Image() *image.RGBA {
	r.Lock()
	defer r.Unlock()
	out := image.NewRGBA(r.img.Bounds())
	draw.Draw(out, out.Bounds(), r.img, image.Point{}, draw.Src)
	return out
}

// EncodePNG writes the current pixels as PNG.
func (r *Raster) EncodePNG(w io.Writer) error {
	return png.Encode(w, r.Image())
}

func (r *Raster) clear() {
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)
}

type polygon [4][2]float64

// fill rasterizes a convex quad with anti-aliasing, clipped to the image.
func (r *Raster) fill(c color.RGBA, p polygon) {
	b := r.img.Bounds()
	r.z.Reset(b.Dx(), b.Dy())
	r.z.DrawOp = draw.Over
	w, h := float64(b.Dx()), float64(b.Dy())
	clamp := func(pt [2]float64) (float32, float32) {
		return float32(math.Max(0, math.Min(w, pt[0]))), float32(math.Max(0, math.Min(h, pt[1])))
	}
	r.z.MoveTo(clamp(p[0]))
	for _, pt := range p[1:] {
		r.z.LineTo(clamp(pt))
	}
	r.z.ClosePath()
	r.z.Draw(r.img, b, image.NewUniform(c), image.Point{})
}

func rect(x0, y0, x1, y1 float64) polygon {
	return polygon{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
}

// segment widens a line into a quad strokeWidth pixels thick, centered on the line.
func segment(x0, y0, x1, y1 float64) polygon {
	dx, dy := x1-x0, y1-y0
	length := math.Hypot(dx, dy)
	if length == 0 {
		return rect(x0-strokeWidth/2, y0-strokeWidth/2, x0+strokeWidth/2, y0+strokeWidth/2)
	}
	// Unit normal scaled to half the stroke.
	nx, ny := -dy/length*strokeWidth/2, dx/length*strokeWidth/2
	return polygon{
		{x0 + nx, y0 + ny},
		{x1 + nx, y1 + ny},
		{x1 - nx, y1 - ny},
		{x0 - nx, y0 - ny},
	}
}

func colorOf(c render.Color) color.RGBA {
	if rgba, ok := palette[c]; ok {
		return rgba
	}
	return palette["black"]
}
