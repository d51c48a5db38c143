package cli

import (
	"context"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignalContext_RecordsSignal(t *testing.T) {
	ch := make(chan os.Signal, 1)
	released := make(chan struct{})
	sc := watchSignals(context.Background(), ch, func() { close(released) })
	defer sc.Cancel()

	assert.Nil(t, sc.Signal())
	ch <- syscall.SIGTERM

	select {
	case <-sc.Done():
	case <-time.After(time.Second):
		t.Fatal("context was not cancelled by the signal")
	}
	assert.Equal(t, syscall.SIGTERM, sc.Signal())

	select {
	case <-released:
	case <-time.After(time.Second):
		t.Fatal("signal handler was not released")
	}
}

func TestSignalContext_CancelWithoutSignal(t *testing.T) {
	parent, cancelParent := context.WithCancel(context.Background())
	released := make(chan struct{})
	sc := watchSignals(parent, make(chan os.Signal), func() { close(released) })

	cancelParent()
	require.Eventually(t, func() bool {
		select {
		case <-released:
			return true
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)
	assert.ErrorIs(t, sc.Err(), context.Canceled)
	assert.Nil(t, sc.Signal())
	sc.Cancel()
}
