// Package log provides the prefixed, leveled console logger used across the service.
package log

import (
	"errors"
	"fmt"
	"io"
	stdlog "log"

	"github.com/gookit/color"
)

var (
	infoTag    = color.Style{color.FgGreen}
	warningTag = color.Style{color.FgYellow}
	errorTag   = color.Style{color.FgRed, color.OpBold}
)

// Logger writes "[PREFIX] [LEVEL] message" lines with colored prefix and level.
type Logger struct {
	prefix string
	out    *stdlog.Logger
}

// New creates a logger whose prefix is rendered in c.
func New(prefix string, c color.Color, w io.Writer) (*Logger, error) {
	if w == nil {
		return nil, errors.New("logger writer is required")
	}
	if prefix == "" {
		return nil, errors.New("logger prefix is required")
	}

	return &Logger{
		prefix: c.Sprintf("[%s]", prefix),
		out:    stdlog.New(w, "", stdlog.LstdFlags),
	}, nil
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.print(infoTag, "INFO", msg)
}

// Warning logs a recoverable problem.
func (l *Logger) Warning(msg string) {
	l.print(warningTag, "WARNING", msg)
}

// Error logs a failed operation.
func (l *Logger) Error(msg string) {
	l.print(errorTag, "ERROR", msg)
}

func (l *Logger) print(tag color.Style, level, msg string) {
	l.out.Println(fmt.Sprintf("%s %s %s", l.prefix, tag.Sprintf("[%s]", level), msg))
}
