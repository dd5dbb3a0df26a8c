// Package logging provides the leveled stderr logger used by cfind.
package logging

import (
	"fmt"
	"io"
	"log"
)

// Logger writes leveled lines prefixed with the program name.
// Errors and warnings are always written; debug lines only when enabled.
type Logger struct {
	*log.Logger
	debug bool
}

// New creates a Logger writing to w.
func New(w io.Writer, program string, debug bool) *Logger {
	return &Logger{
		Logger: log.New(w, program+": ", 0),
		debug:  debug,
	}
}

// Errorf reports a failure the user has to know about.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.logWithLevel("", format, args...)
}

// Warnf reports a problem cfind worked around.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.logWithLevel("[WARN] ", format, args...)
}

// Debugf writes only when debug output is enabled.
func (l *Logger) Debugf(format string, args ...interface{}) {
	if !l.debug {
		return
	}
	l.logWithLevel("[DEBUG] ", format, args...)
}

// DebugEnabled reports whether Debugf writes anything.
func (l *Logger) DebugEnabled() bool {
	return l.debug
}

func (l *Logger) logWithLevel(tag, format string, args ...interface{}) {
	l.Logger.Print(tag + fmt.Sprintf(format, args...))
}
