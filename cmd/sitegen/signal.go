package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// notifyContext cancels the build or ends watch mode on Ctrl-C and on
// SIGTERM from a process supervisor. Windows never delivers SIGTERM, so
// only Ctrl-C applies there.
func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
