package render

import "sync"

// Op identifies a drawing primitive.
type Op string

const (
	OpClear      Op = "clear"       // Clear the whole surface
	OpStrokeRect Op = "stroke_rect" // 1px outline of X, Y, W, H
	OpLine       Op = "line"        // 1px segment from X, Y to X2, Y2
	OpFillRect   Op = "fill_rect"   // Solid rectangle X, Y, W, H
)

// Color is a named CSS color, kept as text so command lists stay portable.
type Color string

const (
	ColorWall  Color = "black"
	ColorStart Color = "green"
	ColorEnd   Color = "red"
	ColorPath  Color = "red"
)

// Command is a single drawing instruction in pixel space.
type Command struct {
	Op    Op      `json:"op"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	W     float64 `json:"w,omitempty"`
	H     float64 `json:"h,omitempty"`
	X2    float64 `json:"x2,omitempty"`
	Y2    float64 `json:"y2,omitempty"`
	Color Color   `json:"color,omitempty"`
}

// Surface is a drawing target of a fixed pixel size.
type Surface interface {
	// Bounds returns the surface width and height in pixels.
	Bounds() (width, height float64)
	// Draw applies the commands in order.
	Draw(cmds ...Command)
}

// Recorder is a Surface that keeps the commands drawn since the last clear.
type Recorder struct {
	width  float64
	height float64
	cmds   []Command
	sync.RWMutex
}

// NewRecorder creates a recording surface of the given size.
func NewRecorder(width, height float64) *Recorder {
	return &Recorder{width: width, height: height}
}

// Bounds implements Surface.
func (r *Recorder) Bounds() (float64, float64) {
	return r.width, r.height
}

// Draw implements Surface. A clear command drops everything recorded before it.
func (r *Recorder) Draw(cmds ...Command) {
	r.Lock()
	defer r.Unlock()
	for _, c := range cmds {
		if c.Op == OpClear {
			r.cmds = r.cmds[:0]
		}
		r.cmds = append(r.cmds, c)
	}
}

// Commands returns a copy of the recorded frame.
func (r *Recorder) Commands() []Command {
	r.RLock()
	defer r.RUnlock()
	return append([]Command(nil), r.cmds...)
}

type fanout []Surface

// Fanout draws to every surface. Bounds are taken from the first one.
func Fanout(surfaces ...Surface) Surface {
	return fanout(surfaces)
}

func (f fanout) Bounds() (float64, float64) {
	if len(f) == 0 {
		return 0, 0
	}
	return f[0].Bounds()
}

func (f fanout) Draw(cmds ...Command) {
	for _, s := range f {
		s.Draw(cmds...)
	}
}
