package wgpu

import "context"

type result[T any] struct {
	v   T
	err error
}

// await runs fn on its own goroutine and waits for it or for ctx.
// If ctx ends first, await returns ctx.Err() and the late value is passed
// to release even when fn failed, so release must accept zero values.
func await[T any](ctx context.Context, fn func() (T, error), release func(T)) (T, error) {
	if err := ctx.Err(); err != nil {
		var zero T
		return zero, err
	}

	ch := make(chan result[T], 1)
	go func() {
		v, err := fn()
		ch <- result[T]{v: v, err: err}
	}()

	select {
	case r := <-ch:
		return r.v, r.err
	case <-ctx.Done():
		go func() {
			r := <-ch
			release(r.v)
		}()
		var zero T
		return zero, ctx.Err()
	}
}
