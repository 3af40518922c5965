package logger

import (
	"io"
	"log"
	"os"
)

// Logger defines the webstarter logging contract.
// Implementations should support standard log levels and be safe for concurrent use.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Debug(msg string, args ...any)
}

// StdLogger wraps Go's standard logger to implement the webstarter logging contract.
// With quiet set, Info and Debug are suppressed; Warn and Error always print.
type StdLogger struct {
	logger *log.Logger
	quiet  bool
}

// NewStdLogger creates a new StdLogger writing to stdout.
func NewStdLogger() *StdLogger {
	return New(os.Stdout, false)
}

// New creates a StdLogger writing to w. Tests pass a buffer; the CLI passes
// os.Stdout and the value of --quiet.
func New(w io.Writer, quiet bool) *StdLogger {
	return &StdLogger{
		logger: log.New(w, "", log.LstdFlags),
		quiet:  quiet,
	}
}

// SetQuiet toggles suppression of Info and Debug output.
func (l *StdLogger) SetQuiet(quiet bool) {
	l.quiet = quiet
}

func (l *StdLogger) Info(msg string, args ...any) {
	if l.quiet {
		return
	}
	l.logger.Printf("[INFO] "+msg, args...)
}

func (l *StdLogger) Warn(msg string, args ...any) {
	l.logger.Printf("[WARN] "+msg, args...)
}

func (l *StdLogger) Error(msg string, args ...any) {
	l.logger.Printf("[ERROR] "+msg, args...)
}

func (l *StdLogger) Debug(msg string, args ...any) {
	if l.quiet {
		return
	}
	l.logger.Printf("[DEBUG] "+msg, args...)
}

// Default provides a global default logger instance using Go's standard logger.
var Default Logger = NewStdLogger()
