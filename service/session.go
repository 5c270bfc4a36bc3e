package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/beka-birhanu/vinom-mazeview/codec"
	dmn "github.com/beka-birhanu/vinom-mazeview/domain"
	"github.com/beka-birhanu/vinom-mazeview/maze"
	"github.com/beka-birhanu/vinom-mazeview/player"
	"github.com/beka-birhanu/vinom-mazeview/render"
	"github.com/beka-birhanu/vinom-mazeview/render/raster"
	"github.com/beka-birhanu/vinom-mazeview/service/i"
	"github.com/google/uuid"
)

const (
	defaultRows = 25
	defaultCols = 50

	recentSnapshotsKey = "mazeview:snapshots:recent"
)

var (
	ErrStaleResponse   = errors.New("response is older than the current maze")
	ErrNoSnapshotStore = errors.New("snapshot storage is not configured")
)

// Session owns the single live maze and keeps the canvas in step with it.
//
// The maze is replaced wholesale by Generate, Load and LoadSnapshot, and mutated in
// place by SetStart and SetEnd. Every change redraws the full frame. A wholesale
// replace carries a ticket; a response whose ticket has been superseded is dropped.
type Session struct {
	maze         *maze.Maze
	recorder     *render.Recorder
	raster       *raster.Raster
	surface      render.Surface
	player       *player.PathPlayer
	mazeService  i.MazeService
	snapshots    i.SnapshotRepo
	recent       i.SortedIndex
	logger       i.Logger
	ticket       uint64 // newest wholesale replace issued
	version      uint64 // bumped on every maze mutation
	stopPlayback func()
	sync.Mutex
}

// Config holds the dependencies of a Session.
type Config struct {
	MazeService      i.MazeService
	Snapshots        i.SnapshotRepo // Optional, saves are not persisted when nil
	Recent           i.SortedIndex  // Optional, recent saves are not indexed when nil
	Logger           i.Logger
	CanvasWidth      int
	CanvasHeight     int
	PlaybackInterval time.Duration
	Rows             int // Initial rows, defaults to 25
	Cols             int // Initial columns, defaults to 50
}

// NewSession creates a session holding an empty maze of the configured size, already drawn.
func NewSession(c *Config) (*Session, error) {
	if c.MazeService == nil {
		return nil, errors.New("maze service is required")
	}
	if c.Logger == nil {
		return nil, errors.New("logger is required")
	}
	if c.CanvasWidth <= 0 || c.CanvasHeight <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", c.CanvasWidth, c.CanvasHeight)
	}
	if c.Rows == 0 {
		c.Rows = defaultRows
	}
	if c.Cols == 0 {
		c.Cols = defaultCols
	}

	m, err := maze.New(c.Rows, c.Cols)
	if err != nil {
		return nil, err
	}

	recorder := render.NewRecorder(float64(c.CanvasWidth), float64(c.CanvasHeight))
	rast := raster.New(c.CanvasWidth, c.CanvasHeight)
	surface := render.Fanout(recorder, rast)

	s := &Session{
		maze:        m,
		recorder:    recorder,
		raster:      rast,
		surface:     surface,
		player:      player.New(surface, c.PlaybackInterval),
		mazeService: c.MazeService,
		snapshots:   c.Snapshots,
		recent:      c.Recent,
		logger:      c.Logger,
	}
	render.Redraw(s.surface, s.maze)
	return s, nil
}

// Generate asks the maze service for a new maze and replaces the live one with it.
// If another replace was issued while waiting, the response is dropped with ErrStaleResponse.
func (s *Session) Generate(ctx context.Context, rows, cols int) error {
	if err := maze.Validate(rows, cols); err != nil {
		return err
	}

	s.Lock()
	s.ticket++
	ticket := s.ticket
	s.Unlock()

	vertical, horizontal, err := s.mazeService.Generate(ctx, rows, cols)
	if err != nil {
		s.logger.Error(fmt.Sprintf("generating %dx%d maze: %s", rows, cols, err))
		return err
	}

	m, err := maze.New(rows, cols)
	if err != nil {
		return err
	}
	if err := m.ReplaceWalls(vertical, horizontal); err != nil {
		s.logger.Error(fmt.Sprintf("applying generated walls: %s", err))
		return err
	}

	s.Lock()
	defer s.Unlock()
	if ticket != s.ticket {
		s.logger.Warning(fmt.Sprintf("dropping generated %dx%d maze: superseded", rows, cols))
		return ErrStaleResponse
	}
	s.replace(m)
	s.logger.Info(fmt.Sprintf("generated %dx%d maze", rows, cols))
	return nil
}

// Load replaces the live maze with an uploaded text file.
// Name and size are checked before reading. On any failure the live maze is untouched.
func (s *Session) Load(name string, size int64, r io.Reader) error {
	if err := codec.CheckUpload(name, size); err != nil {
		return err
	}

	content, err := io.ReadAll(io.LimitReader(r, codec.MaxFileSize+1))
	if err != nil {
		return err
	}
	if len(content) > codec.MaxFileSize {
		return fmt.Errorf("%w: more than %d bytes", codec.ErrFileTooLarge, codec.MaxFileSize)
	}

	if err := s.loadText(string(content)); err != nil {
		s.logger.Warning(fmt.Sprintf("loading %s: %s", name, err))
		return err
	}
	s.logger.Info(fmt.Sprintf("loaded maze from %s", name))
	return nil
}

// LoadSnapshot replaces the live maze with a previously saved one.
func (s *Session) LoadSnapshot(ctx context.Context, id uuid.UUID) error {
	if s.snapshots == nil {
		return ErrNoSnapshotStore
	}

	snapshot, err := s.snapshots.ByID(id)
	if err != nil {
		return err
	}
	if err := s.loadText(snapshot.Text); err != nil {
		s.logger.Error(fmt.Sprintf("stored snapshot %s does not decode: %s", id, err))
		return err
	}
	s.logger.Info(fmt.Sprintf("loaded snapshot %s", id))
	return nil
}

func (s *Session) loadText(text string) error {
	m, err := codec.Decode(text)
	if err != nil {
		return err
	}

	s.Lock()
	defer s.Unlock()
	// Any generate still in flight is now stale.
	s.ticket++
	s.replace(m)
	return nil
}

// Save encodes the live maze and, when storage is configured, persists it.
func (s *Session) Save(ctx context.Context) (*dmn.Snapshot, error) {
	s.Lock()
	text := codec.Encode(s.maze)
	s.Unlock()

	snapshot, err := dmn.NewSnapshot(dmn.SnapshotConfig{
		ID:        uuid.New(),
		Text:      text,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return nil, err
	}

	if s.snapshots == nil {
		return snapshot, nil
	}
	if err := s.snapshots.Save(snapshot); err != nil {
		s.logger.Error(fmt.Sprintf("saving snapshot: %s", err))
		return nil, err
	}

	if s.recent != nil {
		score := float64(snapshot.CreatedAt.UnixMilli())
		if err := s.recent.Push(ctx, recentSnapshotsKey, score, snapshot.ID.String()); err != nil {
			s.logger.Warning(fmt.Sprintf("indexing snapshot %s: %s", snapshot.ID, err))
		} else {
			s.logger.Info(fmt.Sprintf("%d snapshots in the recent index", s.recent.Count(ctx, recentSnapshotsKey)))
		}
	}

	s.logger.Info(fmt.Sprintf("saved snapshot %s as %s", snapshot.ID, snapshot.Name))
	return snapshot, nil
}

// RecentSnapshots lists up to n saved mazes, newest first.
func (s *Session) RecentSnapshots(ctx context.Context, n int64) ([]*dmn.Snapshot, error) {
	if s.snapshots == nil || s.recent == nil {
		return nil, ErrNoSnapshotStore
	}

	ids, err := s.recent.Latest(ctx, recentSnapshotsKey, n)
	if err != nil {
		return nil, err
	}

	snapshots := make([]*dmn.Snapshot, 0, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			s.logger.Warning(fmt.Sprintf("non-UUID value in recent snapshots: %s", raw))
			continue
		}
		snapshot, err := s.snapshots.ByID(id)
		if err != nil {
			s.logger.Warning(fmt.Sprintf("recent snapshot %s: %s", id, err))
			continue
		}
		snapshots = append(snapshots, snapshot)
	}
	return snapshots, nil
}

// SetStart moves the start marker to a zero-based cell.
// Cells outside the maze return maze.ErrOutOfRange and change nothing.
func (s *Session) SetStart(row, col int) error {
	s.Lock()
	defer s.Unlock()
	if err := s.maze.SetStart(row, col); err != nil {
		return err
	}
	s.redraw()
	return nil
}

// SetEnd moves the end marker to a zero-based cell.
// Cells outside the maze return maze.ErrOutOfRange and change nothing.
func (s *Session) SetEnd(row, col int) error {
	s.Lock()
	defer s.Unlock()
	if err := s.maze.SetEnd(row, col); err != nil {
		return err
	}
	s.redraw()
	return nil
}

// Solve asks the maze service for a path and starts replaying it on the canvas.
// The path is dropped with ErrStaleResponse if the maze changed while waiting.
func (s *Session) Solve(ctx context.Context) ([]maze.CellPosition, error) {
	s.Lock()
	snapshot := s.maze.Clone()
	version := s.version
	s.Unlock()

	path, err := s.mazeService.Solve(ctx, snapshot)
	if err != nil {
		s.logger.Error(fmt.Sprintf("solving maze: %s", err))
		return nil, err
	}

	s.Lock()
	defer s.Unlock()
	if version != s.version {
		s.logger.Warning("dropping path: maze changed while solving")
		return nil, ErrStaleResponse
	}
	if err := s.maze.SetPath(path); err != nil {
		s.logger.Error(fmt.Sprintf("solver returned an invalid path: %s", err))
		return nil, err
	}

	s.play(s.maze.Clone(), path)
	s.logger.Info(fmt.Sprintf("replaying path of %d cells", len(path)))
	return path, nil
}

// Maze returns a copy of the live maze.
func (s *Session) Maze() *maze.Maze {
	s.Lock()
	defer s.Unlock()
	return s.maze.Clone()
}

// Text returns the live maze in the save file format.
func (s *Session) Text() string {
	s.Lock()
	defer s.Unlock()
	return codec.Encode(s.maze)
}

// Frame returns the drawing commands currently on the canvas.
func (s *Session) Frame() []render.Command {
	return s.recorder.Commands()
}

// WritePNG writes the canvas as a PNG image.
func (s *Session) WritePNG(w io.Writer) error {
	return s.raster.EncodePNG(w)
}

// Inputs returns the values and bounds of the UI number inputs.
func (s *Session) Inputs() Inputs {
	s.Lock()
	defer s.Unlock()
	return InputsOf(s.maze)
}

// State returns the UI inputs and the encoded text of the same maze.
func (s *Session) State() (Inputs, string) {
	s.Lock()
	defer s.Unlock()
	return InputsOf(s.maze), codec.Encode(s.maze)
}

// Close stops any path replay in progress.
func (s *Session) Close() {
	s.Lock()
	defer s.Unlock()
	s.haltPlayback()
}

// replace installs m as the live maze. Callers hold the lock.
func (s *Session) replace(m *maze.Maze) {
	s.maze = m
	s.redraw()
}

// redraw renders the live maze after a mutation. Callers hold the lock.
// A replay in progress is stopped first so its trail cannot land on the new frame.
func (s *Session) redraw() {
	s.haltPlayback()
	s.version++
	render.Redraw(s.surface, s.maze)
}

// play starts a replay in the background. Callers hold the lock.
func (s *Session) play(m *maze.Maze, path []maze.CellPosition) {
	s.haltPlayback()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := s.player.Play(ctx, m, path); err != nil && !errors.Is(err, context.Canceled) {
			s.logger.Error(fmt.Sprintf("replaying path: %s", err))
		}
	}()

	s.stopPlayback = func() {
		cancel()
		<-done
	}
}

func (s *Session) haltPlayback() {
	if s.stopPlayback != nil {
		s.stopPlayback()
		s.stopPlayback = nil
	}
}
