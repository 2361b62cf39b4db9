package async_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/aoi-dev/shiprel/pkg/utils/async"
)

func TestAll_RunsEveryItem(t *testing.T) {
	ctx := context.Background()

	var sum atomic.Int64
	err := async.All(ctx, []int{1, 2, 3, 4}, func(ctx context.Context, n int) error {
		sum.Add(int64(n))
		return nil
	})

	gt.NoError(t, err)
	gt.Number(t, sum.Load()).Equal(int64(10))
}

func TestAll_FirstErrorJoins(t *testing.T) {
	ctx := context.Background()

	boom := errors.New("boom")
	var ran atomic.Int64
	err := async.All(ctx, []string{"a", "b", "c"}, func(ctx context.Context, s string) error {
		ran.Add(1)
		if s == "b" {
			return boom
		}
		return nil
	})

	gt.Error(t, err)
	gt.Value(t, errors.Is(err, boom)).Equal(true)
	// A failing task does not cancel its siblings
	gt.Number(t, ran.Load()).Equal(int64(3))
}

func TestAll_RecoversPanic(t *testing.T) {
	ctx := context.Background()

	err := async.All(ctx, []int{1}, func(ctx context.Context, n int) error {
		panic("unexpected state")
	})

	gt.Error(t, err)
	gt.String(t, err.Error()).Contains("panic in concurrent task")
}

func TestAll_EmptyItems(t *testing.T) {
	ctx := context.Background()

	err := async.All(ctx, []int{}, func(ctx context.Context, n int) error {
		t.Fatal("must not run")
		return nil
	})

	gt.NoError(t, err)
}
