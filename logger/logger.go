// Package logger provides leveled logging for the engine and its drivers.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// Level orders log severities.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps a level name to a Level. Unknown names fall back to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger writes prefixed lines, one underlying log.Logger per level.
type Logger struct {
	level       Level
	debugLogger *log.Logger
	infoLogger  *log.Logger
	warnLogger  *log.Logger
	errorLogger *log.Logger
}

// New creates a logger writing every level to out.
func New(out io.Writer, level Level) *Logger {
	flags := log.Ldate | log.Ltime
	return &Logger{
		level:       level,
		debugLogger: log.New(out, "[SNAKE-DEBUG] ", flags),
		infoLogger:  log.New(out, "[SNAKE-INFO] ", flags),
		warnLogger:  log.New(out, "[SNAKE-WARN] ", flags),
		errorLogger: log.New(out, "[SNAKE-ERROR] ", flags),
	}
}

// NewStderr is the default logger used by the command line driver.
// Stdout belongs to the rendered field.
func NewStderr(level Level) *Logger {
	return New(os.Stderr, level)
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return New(io.Discard, LevelError+1)
}

func (l *Logger) Debug(msg string) {
	if l.enabled(LevelDebug) {
		l.debugLogger.Println(msg)
	}
}

func (l *Logger) Info(msg string) {
	if l.enabled(LevelInfo) {
		l.infoLogger.Println(msg)
	}
}

func (l *Logger) Warn(msg string) {
	if l.enabled(LevelWarn) {
		l.warnLogger.Println(msg)
	}
}

func (l *Logger) Error(msg string) {
	if l.enabled(LevelError) {
		l.errorLogger.Println(msg)
	}
}

// Event logs a game event tied to a game id.
func (l *Logger) Event(eventType, gameID, details string) {
	if l.enabled(LevelInfo) {
		l.infoLogger.Printf("[EVENT:%s] Game:%s | %s", eventType, gameID, details)
	}
}

// Errorf is a convenience for wrapping an error into an error line.
func (l *Logger) Errorf(format string, args ...any) {
	l.Error(fmt.Sprintf(format, args...))
}

func (l *Logger) enabled(level Level) bool {
	return l != nil && level >= l.level
}
