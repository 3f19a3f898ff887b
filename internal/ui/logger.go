package ui

import (
	"io"

	"github.com/charmbracelet/log"
)

var logger = log.New(io.Discard)

// SetLogger injects the application logger into the UI package.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}
