package retry

import (
	"context"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

const (
	defaultMaxAttempts = 3 // 2 retries
	defaultBaseBackoff = time.Second
)

type config struct {
	maxAttempts int
	backoff     func(attempt int) time.Duration
}

// Option is a functional option for the retry executor
type Option func(*config)

// WithMaxAttempts overrides the total attempt budget (including the first
// attempt)
func WithMaxAttempts(n int) Option {
	return func(c *config) {
		c.maxAttempts = n
	}
}

// WithBackoff overrides the wait computed before retry number attempt
// (1-based)
func WithBackoff(fn func(attempt int) time.Duration) Option {
	return func(c *config) {
		c.backoff = fn
	}
}

func exponentialBackoff(attempt int) time.Duration {
	return defaultBaseBackoff << (attempt - 1)
}

// Do executes fn until it succeeds, fails terminally, or the attempt budget
// runs out. Failures are classified once per attempt: a terminal
// classification stops the loop immediately, a retryable one waits for the
// backoff schedule and tries again. The error surfaced after exhaustion is
// the last attempt's classified error.
func Do[T any](ctx context.Context, name string, fn func(ctx context.Context) (T, error), opts ...Option) (T, error) {
	logger := ctxlog.From(ctx)

	cfg := &config{
		maxAttempts: defaultMaxAttempts,
		backoff:     exponentialBackoff,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	var zero T
	var last *ClassifiedError

	for attempt := 1; attempt <= cfg.maxAttempts; attempt++ {
		v, err := fn(ctx)
		if err == nil {
			return v, nil
		}

		last = Classify(ctx, err)
		if last.Terminal {
			logger.Debug("remote call failed terminally, not retrying",
				"op", name,
				"attempt", attempt,
				"status", last.StatusCode,
				"message", last.Message,
			)
			return zero, last
		}

		if attempt < cfg.maxAttempts {
			wait := cfg.backoff(attempt)
			logger.Debug("remote call failed, retrying after backoff",
				"op", name,
				"attempt", attempt,
				"wait", wait,
				"message", last.Message,
			)

			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return zero, goerr.Wrap(ctx.Err(), "aborted while waiting to retry", goerr.V("op", name))
			}
		}
	}

	logger.Debug("retry budget exhausted",
		"op", name,
		"attempts", cfg.maxAttempts,
		"message", last.Message,
	)
	return zero, last
}
