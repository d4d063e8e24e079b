package wgpu

import (
	"context"
	"errors"
	"testing"
	"time"
)

// TestAwaitResult tests that await returns the function result.
func TestAwaitResult(t *testing.T) {
	v, err := await(context.Background(), func() (int, error) { return 42, nil }, func(int) {})
	if err != nil || v != 42 {
		t.Errorf("await() = %d, %v, want 42, nil", v, err)
	}

	boom := errors.New("boom")
	_, err = await(context.Background(), func() (int, error) { return 0, boom }, func(int) {})
	if !errors.Is(err, boom) {
		t.Errorf("await() error = %v, want %v", err, boom)
	}
}

// TestAwaitCanceledReleasesLateResult tests cancellation while fn is running.
func TestAwaitCanceledReleasesLateResult(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"success", nil},
		{"failure with value", errors.New("boom")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			started := make(chan struct{})
			unblock := make(chan struct{})
			released := make(chan int, 1)

			done := make(chan error, 1)
			go func() {
				_, err := await(ctx, func() (int, error) {
					close(started)
					<-unblock
					return 7, tt.err
				}, func(v int) { released <- v })
				done <- err
			}()

			<-started
			cancel()
			if err := <-done; !errors.Is(err, context.Canceled) {
				t.Errorf("await() error = %v, want context.Canceled", err)
			}
			close(unblock)

			select {
			case v := <-released:
				if v != 7 {
					t.Errorf("released %d, want 7", v)
				}
			case <-time.After(time.Second):
				t.Fatal("late result was not released")
			}
		})
	}
}

func TestAwaitAlreadyCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	_, err := await(ctx, func() (int, error) { called = true; return 1, nil }, func(int) {})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("await() error = %v, want context.Canceled", err)
	}
	if called {
		t.Error("fn should not run on a canceled context")
	}
}
