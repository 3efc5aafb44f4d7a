package logger

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Logger defines the interface for user-facing progress output throughout
// the application. Different implementations can be used for different
// contexts (console, silent for tests and TUI mode).
type Logger interface {
	Info(msg string, args ...interface{})
	Success(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// ConsoleLogger writes human-readable progress to stdout/stderr.
// Used for normal operation.
type ConsoleLogger struct{}

func NewConsoleLogger() *ConsoleLogger {
	return &ConsoleLogger{}
}

func (c *ConsoleLogger) Info(msg string, args ...interface{}) {
	fmt.Printf(msg+"\n", args...)
}

func (c *ConsoleLogger) Success(msg string, args ...interface{}) {
	color.Green(msg, args...)
}

func (c *ConsoleLogger) Error(msg string, args ...interface{}) {
	fmt.Fprintln(os.Stderr, color.RedString(msg, args...))
}

// SilentLogger discards all messages.
// Used when the TUI owns the terminal and in tests.
type SilentLogger struct{}

func NewSilentLogger() *SilentLogger {
	return &SilentLogger{}
}

func (s *SilentLogger) Info(msg string, args ...interface{})    {}
func (s *SilentLogger) Success(msg string, args ...interface{}) {}
func (s *SilentLogger) Error(msg string, args ...interface{})   {}
