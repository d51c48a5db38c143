package cli

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// SignalContext is cancelled by SIGINT or SIGTERM and remembers which one
// arrived, so commands can log why they stopped.
type SignalContext struct {
	context.Context
	cancel context.CancelFunc

	mu  sync.Mutex
	sig os.Signal
}

// NewSignalContext works like signal.NotifyContext but keeps the signal.
// Call Cancel to release the signal handler.
func NewSignalContext(parent context.Context) *SignalContext {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	return watchSignals(parent, ch, func() { signal.Stop(ch) })
}

func watchSignals(parent context.Context, ch <-chan os.Signal, release func()) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{Context: ctx, cancel: cancel}
	go func() {
		defer release()
		select {
		case sig := <-ch:
			sc.mu.Lock()
			sc.sig = sig
			sc.mu.Unlock()
			cancel()
		case <-ctx.Done():
		}
	}()
	return sc
}

// Cancel stops the context without a signal.
func (sc *SignalContext) Cancel() {
	sc.cancel()
}

// Signal returns the signal that cancelled the context, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sig
}
