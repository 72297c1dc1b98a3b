package cli

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Level is the severity of a log line.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	default:
		return "ERROR"
	}
}

var levelColors = map[Level]lipgloss.Color{
	LevelDebug: lipgloss.Color("#6B7280"), // Gray
	LevelInfo:  lipgloss.Color("#06B6D4"), // Cyan
	LevelWarn:  lipgloss.Color("#F59E0B"), // Amber
	LevelError: lipgloss.Color("#EF4444"), // Red
}

// Logger provides leveled logging for CLI tools. Info lines need Verbose,
// debug lines need DebugMode; warnings and errors are always written.
type Logger struct {
	Verbose   bool
	DebugMode bool

	mu       sync.Mutex
	out      io.Writer
	renderer *lipgloss.Renderer
	color    bool
	now      func() time.Time
}

// NewLogger creates a logger writing to stderr without colour.
func NewLogger(verbose, debug bool) *Logger {
	l := &Logger{Verbose: verbose, DebugMode: debug, now: time.Now}
	l.SetOutput(os.Stderr)
	return l
}

// SetOutput redirects the log.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out = w
	l.renderer = lipgloss.NewRenderer(w)
	l.applyProfile()
}

// SetColor turns styled level tags on or off.
func (l *Logger) SetColor(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.color = enabled
	l.applyProfile()
}

func (l *Logger) applyProfile() {
	if l.color {
		l.renderer.SetColorProfile(termenv.TrueColor)
	} else {
		l.renderer.SetColorProfile(termenv.Ascii)
	}
}

// Writer returns the log destination.
func (l *Logger) Writer() io.Writer {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.out
}

// Renderer returns the lipgloss renderer bound to the log destination.
func (l *Logger) Renderer() *lipgloss.Renderer {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.renderer
}

func (l *Logger) log(level Level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	tag := "[" + level.String() + "]"
	if l.color {
		tag = l.renderer.NewStyle().Bold(true).Foreground(levelColors[level]).Render(tag)
	}
	fmt.Fprintf(l.out, "%s %s: %s\n", tag, l.now().Format("15:04:05"), fmt.Sprintf(format, args...))
}

// Info logs an info message
func (l *Logger) Info(format string, args ...interface{}) {
	if l.Verbose {
		l.log(LevelInfo, format, args...)
	}
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.DebugMode {
		l.log(LevelDebug, format, args...)
	}
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(LevelWarn, format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(LevelError, format, args...)
}
