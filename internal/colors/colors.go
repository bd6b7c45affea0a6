// Package colors provides styled console output.
//
// Styles are rendered through a lipgloss renderer bound to the destination
// writer, so output that is not going to a terminal stays plain text.
package colors

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Mode selects when colour is used.
type Mode string

const (
	// ModeAuto colours terminals unless NO_COLOR is set.
	ModeAuto Mode = "auto"
	// ModeAlways colours every writer.
	ModeAlways Mode = "always"
	// ModeNever disables colour.
	ModeNever Mode = "never"
)

// ANSI colour numbers used by the console helpers.
const (
	Red    = lipgloss.Color("1")
	Green  = lipgloss.Color("2")
	Yellow = lipgloss.Color("3")
	Blue   = lipgloss.Color("4")
	Cyan   = lipgloss.Color("6")
)

const checkmark = "✓"

// Logger defines the interface for structured logging.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

var (
	mu           sync.RWMutex
	mode         = ModeAuto
	stdout       io.Writer = os.Stdout
	stderr       io.Writer = os.Stderr
	logger       Logger
	debugEnabled = false
)

func init() {
	if val := os.Getenv("DECLI_DEBUG"); val == "true" || val == "1" {
		debugEnabled = true
	}
}

// SetMode sets the colour mode. Unknown modes behave like ModeAuto.
func SetMode(m Mode) {
	mu.Lock()
	defer mu.Unlock()
	mode = m
}

// SetOutput redirects the console helpers. Nil keeps the current writer.
func SetOutput(out, errOut io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if out != nil {
		stdout = out
	}
	if errOut != nil {
		stderr = errOut
	}
}

// SetDebug enables or disables debug output.
func SetDebug(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	debugEnabled = enabled
}

// SetLogger sets the structured logger to mirror console output.
func SetLogger(l Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

// Enabled reports whether output written to w should be coloured.
func Enabled(w io.Writer) bool {
	mu.RLock()
	m := mode
	mu.RUnlock()

	switch m {
	case ModeAlways:
		return true
	case ModeNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// NewStyle returns a style whose rendering suits w.
func NewStyle(w io.Writer) lipgloss.Style {
	r := lipgloss.NewRenderer(w)
	if Enabled(w) {
		r.SetColorProfile(termenv.ANSI)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	return r.NewStyle()
}

// Header styles the first line of an error block written to w.
func Header(w io.Writer, s string) string {
	return NewStyle(w).Foreground(Red).Bold(true).Render(s)
}

func writers() (io.Writer, io.Writer, Logger, bool) {
	mu.RLock()
	defer mu.RUnlock()
	return stdout, stderr, logger, debugEnabled
}

func emit(w io.Writer, prefix string, color lipgloss.Color, msg string) {
	label := NewStyle(w).Foreground(color).Render(prefix)
	if _, err := fmt.Fprintf(w, "%s %s\n", label, msg); err != nil {
		// Direct write to stderr, ignore errors
		fmt.Fprintf(os.Stderr, "%s %s\n", prefix, msg)
	}
}

// Error outputs an error message to stderr.
func Error(msgs ...string) {
	msg := strings.Join(msgs, " ")
	_, errOut, l, _ := writers()
	if l != nil {
		l.Error(msg)
	}
	emit(errOut, "Error:", Red, msg)
}

// Warning outputs a warning message to stderr.
func Warning(msgs ...string) {
	msg := strings.Join(msgs, " ")
	_, errOut, l, _ := writers()
	if l != nil {
		l.Warn(msg)
	}
	emit(errOut, "Warning:", Yellow, msg)
}

// Info outputs an informational message to stderr. Stdout is reserved for
// command output.
func Info(msgs ...string) {
	msg := strings.Join(msgs, " ")
	_, errOut, l, _ := writers()
	if l != nil {
		l.Info(msg)
	}
	fmt.Fprintln(errOut, NewStyle(errOut).Foreground(Blue).Render(msg))
}

// Success outputs a success message to stdout.
func Success(msgs ...string) {
	msg := strings.Join(msgs, " ")
	out, _, l, _ := writers()
	if l != nil {
		l.Info(msg, "type", "success")
	}
	emit(out, checkmark, Green, msg)
}

// Debug outputs a debug message to stderr if debug is enabled.
func Debug(msgs ...string) {
	_, errOut, l, enabled := writers()
	if !enabled {
		return
	}
	msg := strings.Join(msgs, " ")
	if l != nil {
		l.Debug(msg)
	}
	emit(errOut, "Debug:", Cyan, msg)
}
