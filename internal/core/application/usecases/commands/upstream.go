package commands

import (
	"context"
	"errors"
	"time"

	"movers/internal/pkg/errs"
)

const defaultUpstreamTimeout = 10 * time.Second

// callUpstream runs fn with a bounded deadline. A deadline hit, including a
// client-side I/O timeout inside fn, is reported as an upstream timeout for the
// named dependency; other errors are returned as is.
func callUpstream[T any](
	ctx context.Context,
	upstream string,
	timeout time.Duration,
	fn func(ctx context.Context) (T, error),
) (T, error) {
	if timeout <= 0 {
		timeout = defaultUpstreamTimeout
	}

	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	result, err := fn(callCtx)
	if err != nil {
		if errors.Is(err, errs.ErrUpstreamTimeout) {
			var zero T
			return zero, err
		}
		if errs.IsTimeout(err) || errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			var zero T
			return zero, errs.NewUpstreamTimeoutError(upstream, err)
		}
		return result, err
	}

	return result, nil
}
