package async_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Hsinha11/AI-Journal/pkg/utils/async"
	"github.com/m-mizutani/gt"
)

func TestDispatch(t *testing.T) {
	t.Run("handler runs after parent context is canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)

		async.Dispatch(ctx, "test", func(ctx context.Context) error {
			time.Sleep(10 * time.Millisecond)
			done <- ctx.Err()
			return nil
		})
		cancel()

		select {
		case err := <-done:
			gt.NoError(t, err)
		case <-time.After(time.Second):
			t.Fatal("handler did not run")
		}
	})

	t.Run("errors and panics are contained", func(t *testing.T) {
		done := make(chan struct{}, 2)
		async.Dispatch(context.Background(), "fail", func(ctx context.Context) error {
			defer func() { done <- struct{}{} }()
			return errors.New("boom")
		})
		async.Dispatch(context.Background(), "panic", func(ctx context.Context) error {
			defer func() { done <- struct{}{} }()
			panic("boom")
		})

		for range 2 {
			select {
			case <-done:
			case <-time.After(time.Second):
				t.Fatal("handler did not run")
			}
		}
	})
}
