package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

// Log file names inside the log directory
const (
	RunningLogName = "pypisrc-running.log"
	HistoryLogName = "pypisrc-history.log"
)

const timestampLayout = "2006-01-02 15:04:05,000"

// Level is a log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARNING"
	case LevelError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// sink is one append-only destination with its own minimum level.
type sink struct {
	w        io.Writer
	closer   io.Closer
	minLevel Level
}

// Logger writes to two sinks: the operational log (errors and diagnostics)
// and the history log (actions the user performed).
// It is safe for concurrent use.
type Logger struct {
	mu      sync.Mutex
	running sink
	history sink
	pid     int
	now     func() time.Time
}

// Options tunes Open.
type Options struct {
	Debug bool // let DEBUG lines through to the operational log
}

// Open creates dir if needed and opens both log files for appending.
// The caller owns the Logger and must Close it.
func Open(dir string, opts Options) (*Logger, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}

	runningFile, err := os.OpenFile(filepath.Join(dir, RunningLogName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	historyFile, err := os.OpenFile(filepath.Join(dir, HistoryLogName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		runningFile.Close()
		return nil, fmt.Errorf("failed to open history log file: %w", err)
	}

	l := New(runningFile, historyFile, opts)
	l.running.closer = runningFile
	l.history.closer = historyFile
	return l, nil
}

// New builds a Logger over arbitrary writers. Close does not close them.
func New(running, history io.Writer, opts Options) *Logger {
	minRunning := LevelInfo
	if opts.Debug {
		minRunning = LevelDebug
	}
	return &Logger{
		running: sink{w: running, minLevel: minRunning},
		history: sink{w: history, minLevel: LevelInfo},
		pid:     os.Getpid(),
		now:     time.Now,
	}
}

// Discard returns a Logger that drops everything.
func Discard() *Logger {
	return New(io.Discard, io.Discard, Options{})
}

// Close closes both log files. Further writes are dropped.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var firstErr error
	for _, s := range []*sink{&l.running, &l.history} {
		if s.closer != nil {
			if err := s.closer.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
			s.closer = nil
		}
		s.w = io.Discard
	}
	return firstErr
}

func (l *Logger) logf(level Level, format string, args ...interface{}) {
	if level < l.running.minLevel {
		return
	}
	// skip logf and the exported wrapper
	file, line := "???", 0
	if _, f, ln, ok := runtime.Caller(2); ok {
		file, line = f, ln
	}
	msg := strings.TrimRight(fmt.Sprintf(format, args...), "\n")

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.running.w, "%s - %d-main - %s[line:%d] - %s: %s\n",
		l.now().Format(timestampLayout), l.pid, file, line, level, msg)
	syncWriter(l.running.w)
}

// Debugf writes a DEBUG line to the operational log.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.logf(LevelDebug, format, args...)
}

// Infof writes an INFO line to the operational log.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.logf(LevelInfo, format, args...)
}

// Warnf writes a WARNING line to the operational log.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.logf(LevelWarning, format, args...)
}

// Errorf writes an ERROR line to the operational log.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.logf(LevelError, format, args...)
}

// Record appends a line to the history log.
func (l *Logger) Record(format string, args ...interface{}) {
	msg := strings.TrimRight(fmt.Sprintf(format, args...), "\n")

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.history.w, "%s - %s\n", l.now().Format(timestampLayout), msg)
	syncWriter(l.history.w)
}

func syncWriter(w io.Writer) {
	if f, ok := w.(*os.File); ok {
		f.Sync()
	}
}
