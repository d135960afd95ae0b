package shutdown

import (
	"context"
	"syscall"
	"testing"
	"time"
)

func TestSignalCancelsContext(t *testing.T) {
	// SIGUSR1 so the test run itself is never interrupted.
	ctx, cancel := WithSignals(context.Background(), syscall.SIGUSR1)
	defer cancel()

	if err := syscall.Kill(syscall.Getpid(), syscall.SIGUSR1); err != nil {
		t.Fatalf("send signal: %v", err)
	}

	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("context not cancelled after signal")
	}
}

func TestParentCancellationPropagates(t *testing.T) {
	parent, stopParent := context.WithCancel(context.Background())
	ctx, cancel := WithSignals(parent, syscall.SIGUSR2)
	defer cancel()

	stopParent()

	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("context not cancelled with its parent")
	}
}
