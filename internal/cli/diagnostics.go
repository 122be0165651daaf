package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/jwire-dev/jwire/internal/errors"
)

// DiagnosticLevel represents the level of diagnostic output
type DiagnosticLevel int

const (
	DiagnosticError DiagnosticLevel = iota
	DiagnosticInfo
	DiagnosticVerbose
)

// Diagnostics provides structured, user-friendly output for the tool
type Diagnostics struct {
	level    DiagnosticLevel
	output   io.Writer
	errorOut io.Writer
}

// NewDiagnostics creates a diagnostic system at the given level
func NewDiagnostics(level DiagnosticLevel) *Diagnostics {
	return &Diagnostics{
		level:    level,
		output:   os.Stdout,
		errorOut: os.Stderr,
	}
}

// NewQuietDiagnostics creates a diagnostic system that only shows errors
func NewQuietDiagnostics() *Diagnostics {
	return NewDiagnostics(DiagnosticError)
}

// NewVerboseDiagnostics creates a diagnostic system with full output
func NewVerboseDiagnostics() *Diagnostics {
	return NewDiagnostics(DiagnosticVerbose)
}

// Info outputs informational messages
func (d *Diagnostics) Info(format string, args ...interface{}) {
	if d.level >= DiagnosticInfo {
		prefix := color.New(color.FgBlue).Sprint("INFO")
		fmt.Fprintf(d.output, "%s %s\n", prefix, fmt.Sprintf(format, args...))
	}
}

// Success outputs success messages with emphasis
func (d *Diagnostics) Success(format string, args ...interface{}) {
	if d.level >= DiagnosticInfo {
		prefix := color.New(color.FgGreen).Sprint("OK")
		fmt.Fprintf(d.output, "%s %s\n", prefix, fmt.Sprintf(format, args...))
	}
}

// Verbose outputs detailed messages (verbose mode only)
func (d *Diagnostics) Verbose(format string, args ...interface{}) {
	if d.level >= DiagnosticVerbose {
		prefix := color.New(color.FgHiBlack).Sprint("VERBOSE")
		fmt.Fprintf(d.output, "%s %s\n", prefix, fmt.Sprintf(format, args...))
	}
}

// Error outputs an error with location and suggestions when available
func (d *Diagnostics) Error(err error) {
	prefix := color.New(color.FgRed, color.Bold).Sprint("ERROR")

	jerr, ok := err.(errors.JwireError)
	if !ok {
		fmt.Fprintf(d.errorOut, "%s %s\n", prefix, err.Error())
		return
	}

	fmt.Fprintf(d.errorOut, "%s [%s] %s\n", prefix, jerr.ErrorCode(), jerr.Error())
	for _, suggestion := range jerr.Suggestions() {
		hint := color.New(color.FgYellow).Sprint("hint:")
		fmt.Fprintf(d.errorOut, "  %s %s\n", hint, suggestion)
	}
}
