// Package codec converts mazes to and from the line-oriented text format used for save files.
//
// The format is the dimension line "<rows> <cols>", then rows lines of cols-1 vertical
// wall tokens, a blank line, then rows-1 lines of cols horizontal wall tokens. Every
// token is "0" or "1".
package codec

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/beka-birhanu/vinom-mazeview/maze"
)

const (
	// MaxFileSize is the largest upload accepted for decoding.
	MaxFileSize = 12 * 1024
	// FileExtension is the only extension accepted for uploads.
	FileExtension = ".txt"

	Vertical   = "vertical"
	Horizontal = "horizontal"
)

var (
	ErrInvalidDimension    = fmt.Errorf("rows and columns must be integers between %d and %d: %w", maze.MinDimension, maze.MaxDimension, maze.ErrInvalidDimension)
	ErrMalformedWallMatrix = errors.New("malformed wall matrix")
	ErrFileExtension       = errors.New("please select a .txt file")
	ErrFileTooLarge        = errors.New("file is too large, maximum allowed size is 12 KB")
)

// MalformedWallMatrixError names the matrix that failed to parse.
type MalformedWallMatrixError struct {
	Which string // Vertical or Horizontal
	Line  int    // 1-based input line where parsing stopped, 0 when input ran out
}

func (e *MalformedWallMatrixError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("can not load %s walls: not enough rows", e.Which)
	}
	return fmt.Sprintf("can not load %s walls: bad row at line %d", e.Which, e.Line)
}

func (e *MalformedWallMatrixError) Is(target error) bool {
	return target == ErrMalformedWallMatrix
}

// Encode writes the wall data of m. Start, end and path are not persisted.
func Encode(m *maze.Maze) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d %d\n", m.Rows, m.Cols)

	for row := 0; row < m.Rows; row++ {
		writeRow(&b, m.Cols-1, func(col int) bool { return m.HasVerticalWall(row, col) })
	}
	b.WriteString("\n")
	for row := 0; row < m.Rows-1; row++ {
		writeRow(&b, m.Cols, func(col int) bool { return m.HasHorizontalWall(row, col) })
	}

	return b.String()
}

func writeRow(b *strings.Builder, width int, wall func(int) bool) {
	for col := 0; col < width; col++ {
		if col > 0 {
			b.WriteByte(' ')
		}
		if wall(col) {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	b.WriteByte('\n')
}

// Decode parses text into a new maze with default endpoints.
// It never returns a partially filled maze.
func Decode(text string) (*maze.Maze, error) {
	lines := strings.Split(strings.TrimSpace(text), "\n")

	rows, cols, err := parseDimensions(lines[0])
	if err != nil {
		return nil, err
	}

	p := &matrixParser{lines: lines, next: 1}
	vertical, err := p.parse(Vertical, rows, cols-1)
	if err != nil {
		return nil, err
	}
	horizontal, err := p.parse(Horizontal, rows-1, cols)
	if err != nil {
		return nil, err
	}

	m, err := maze.New(rows, cols)
	if err != nil {
		return nil, err
	}
	if err := m.ReplaceWalls(vertical, horizontal); err != nil {
		return nil, err
	}
	return m, nil
}

func parseDimensions(line string) (int, int, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0, 0, ErrInvalidDimension
	}

	rows, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, ErrInvalidDimension
	}
	cols, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, ErrInvalidDimension
	}
	if maze.Validate(rows, cols) != nil {
		return 0, 0, ErrInvalidDimension
	}
	return rows, cols, nil
}

// matrixParser walks the input lines, continuing where the previous matrix stopped.
type matrixParser struct {
	lines []string
	next  int
}

func (p *matrixParser) parse(which string, rows, width int) ([]maze.Bitset, error) {
	matrix := make([]maze.Bitset, 0, rows)
	if width == 0 {
		// Rows without wall slots carry no tokens, so they occupy no lines.
		return make([]maze.Bitset, rows), nil
	}

	for len(matrix) < rows && p.next < len(p.lines) {
		lineNo := p.next + 1
		line := strings.TrimSpace(p.lines[p.next])
		p.next++
		if line == "" {
			continue
		}

		tokens := strings.Fields(line)
		if len(tokens) < width {
			return nil, &MalformedWallMatrixError{Which: which, Line: lineNo}
		}

		var row maze.Bitset
		for j, token := range tokens[:width] {
			switch token {
			case "1":
				_ = row.Set(j)
			case "0":
			default:
				return nil, &MalformedWallMatrixError{Which: which, Line: lineNo}
			}
		}
		matrix = append(matrix, row)
	}

	if len(matrix) < rows {
		return nil, &MalformedWallMatrixError{Which: which}
	}
	return matrix, nil
}

// CheckUpload rejects files by name and size before they are read.
func CheckUpload(name string, size int64) error {
	if !strings.HasSuffix(name, FileExtension) {
		return fmt.Errorf("%w: %s", ErrFileExtension, filepath.Base(name))
	}
	if size > MaxFileSize {
		return fmt.Errorf("%w: %d bytes", ErrFileTooLarge, size)
	}
	return nil
}

// FileName returns the save file name for a maze saved at t.
func FileName(t time.Time) string {
	return fmt.Sprintf("maze_%d.txt", t.UnixMilli())
}
