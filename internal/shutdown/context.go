package shutdown

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// New returns a context cancelled on SIGINT or SIGTERM.
func New() (context.Context, func()) {
	return InterruptContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// InterruptContext cancels the returned context when any of sig arrives.
func InterruptContext(ctx context.Context, sig ...os.Signal) (context.Context, func()) {
	return signal.NotifyContext(ctx, sig...)
}
