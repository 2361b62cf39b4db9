package async

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"
)

// All executes fn for every item concurrently and waits for all of them to
// finish. The first error becomes the joined result, but running siblings
// are not cancelled; they complete on their own.
//
// Behavior:
//   - Panics in a task are recovered, logged with a stack trace, and
//     converted into an error
//   - All invocations share the caller's context unchanged
func All[T any](ctx context.Context, items []T, fn func(ctx context.Context, item T) error) error {
	var eg errgroup.Group

	for _, item := range items {
		eg.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					stack := debug.Stack()
					ctxlog.From(ctx).Error("panic in concurrent task",
						"recover", r,
						"stack", string(stack))
					err = goerr.New("panic in concurrent task", goerr.V("recover", fmt.Sprintf("%v", r)))
				}
			}()

			return fn(ctx, item)
		})
	}

	return eg.Wait()
}
