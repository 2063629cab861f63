// Package logging provides the standard-error logger used across the server.
package logging

import "log"

// Logger writes leveled messages to the process log. Debug output is only
// emitted when verbose mode is on.
type Logger struct {
	verbose bool
}

func New(verbose bool) *Logger {
	return &Logger{verbose: verbose}
}

func (l *Logger) Debug(msg string) {
	if l.verbose {
		log.Printf("DEBUG %s", msg)
	}
}

func (l *Logger) Error(msg string) {
	log.Printf("ERROR %s", msg)
}
