// Package logging configures the process-wide zerolog logger.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// DefaultLevel is used when no level is configured.
const DefaultLevel = zerolog.WarnLevel

// sink forwards log output to the writer chosen by the latest Init, so
// loggers built before Init still reach the configured destination.
type sink struct {
	mu  sync.RWMutex
	out io.Writer
}

func (s *sink) Write(p []byte) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.out.Write(p)
}

func (s *sink) set(w io.Writer) {
	s.mu.Lock()
	s.out = w
	s.mu.Unlock()
}

var (
	output = &sink{out: console(os.Stderr)}
	base   = zerolog.New(output).With().Timestamp().Logger()
)

func init() {
	zerolog.SetGlobalLevel(DefaultLevel)
}

func console(w io.Writer) io.Writer {
	return zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.Kitchen,
		NoColor:    !colorable(w),
	}
}

func colorable(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// ParseLevel converts a level name into a zerolog level. An empty name
// selects DefaultLevel.
func ParseLevel(name string) (zerolog.Level, error) {
	name = strings.TrimSpace(strings.ToLower(name))
	if name == "" {
		return DefaultLevel, nil
	}
	return zerolog.ParseLevel(name)
}

// Init sets the level and destination of every logger, including component
// loggers created earlier. A nil writer means stderr.
func Init(level zerolog.Level, w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	output.set(console(w))
	zerolog.SetGlobalLevel(level)
}

// Logger returns the base logger.
func Logger() zerolog.Logger {
	return base
}

// Component returns a child logger tagged with the component name.
func Component(name string) zerolog.Logger {
	return base.With().Str("component", name).Logger()
}
