package main

import (
	"context"
	"os/signal"
)

// notifyContext returns a context canceled by the first shutdown signal.
// Generation checks it only before the first record, so an interrupted
// batch either writes nothing or runs to completion.
func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, shutdownSignals...)
}
