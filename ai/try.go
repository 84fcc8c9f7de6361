package ai

import (
	"context"
	"fmt"
	"time"

	"datasentry/internal"
)

// TryOperation runs op with a bounded timeout and resolves to fallback when op
// errors, panics or outlives the timeout. The second return value reports
// whether op succeeded. Failures are logged and never returned.
//
// op runs on its own goroutine so a collaborator that ignores ctx still cannot
// hold the caller past the deadline.
func TryOperation[T any](ctx context.Context, timeout time.Duration, name string, op func(context.Context) (T, error), fallback T) (T, bool) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	type outcome struct {
		value T
		err   error
	}
	done := make(chan outcome, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("panic: %v", r)}
			}
		}()
		v, err := op(ctx)
		done <- outcome{value: v, err: err}
	}()

	select {
	case out := <-done:
		if out.err != nil {
			internal.DefaultLogger.Warn("[AI] %s failed, using fallback: %v", name, out.err)
			return fallback, false
		}
		return out.value, true
	case <-ctx.Done():
		internal.DefaultLogger.Warn("[AI] %s did not finish, using fallback: %v", name, ctx.Err())
		return fallback, false
	}
}
