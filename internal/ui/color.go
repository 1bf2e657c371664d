// Package ui provides colored console output for the boxes CLI.
package ui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"golang.org/x/term"
)

var (
	// Colors
	Red    = color.New(color.FgRed)
	Green  = color.New(color.FgGreen)
	Yellow = color.New(color.FgYellow)
	Blue   = color.New(color.FgBlue)
	Cyan   = color.New(color.FgCyan)
	Gray   = color.New(color.FgHiBlack)
	Bold   = color.New(color.Bold)
)

var (
	mu      sync.Mutex
	out     io.Writer = os.Stderr
	verbose bool
)

// SetOutput redirects all messages to w.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
}

// Output returns the current message writer.
func Output() io.Writer {
	mu.Lock()
	defer mu.Unlock()
	return out
}

// SetVerbose enables Debug output.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// Verbose reports whether Debug output is enabled.
func Verbose() bool {
	mu.Lock()
	defer mu.Unlock()
	return verbose
}

// ConfigureColor disables color when noColor is set, when NO_COLOR is
// present in the environment, or when stderr is not a terminal.
func ConfigureColor(noColor bool) {
	_, envNoColor := os.LookupEnv("NO_COLOR")
	color.NoColor = noColor || envNoColor || !IsTerminal(os.Stderr)
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func printf(c *color.Color, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	c.Fprintf(out, format, args...)
}

// Success prints a green success message with checkmark.
func Success(format string, args ...any) {
	printf(Green, "✓ "+format+"\n", args...)
}

// Error prints a red error message with X.
func Error(format string, args ...any) {
	printf(Red, "✗ "+format+"\n", args...)
}

// Warning prints a yellow warning message.
func Warning(format string, args ...any) {
	printf(Yellow, "⚠ "+format+"\n", args...)
}

// Info prints a blue info message.
func Info(format string, args ...any) {
	printf(Blue, format+"\n", args...)
}

// Debug prints a gray message when verbose output is enabled.
func Debug(format string, args ...any) {
	if !Verbose() {
		return
	}
	printf(Gray, "· "+format+"\n", args...)
}

// Step prints a numbered step in cyan.
func Step(n int, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	Cyan.Fprintf(out, "[%d] ", n)
	fmt.Fprintf(out, format+"\n", args...)
}

// Header prints a bold header.
func Header(format string, args ...any) {
	printf(Bold, format+"\n", args...)
}

// Println writes a plain line.
func Println(a ...any) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintln(out, a...)
}

// Themed messages
func Box(format string, args ...any) {
	printf(Green, "📦 "+format+"\n", args...)
}

func Hammer(format string, args ...any) {
	printf(Cyan, "🔨 "+format+"\n", args...)
}

func Inspect(format string, args ...any) {
	printf(Blue, "🔍 "+format+"\n", args...)
}

func Rocket(format string, args ...any) {
	printf(Green, "🚀 "+format+"\n", args...)
}
