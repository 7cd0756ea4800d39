package safe_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Hsinha11/AI-Journal/pkg/utils/safe"
	"github.com/m-mizutani/gt"
)

type closer struct {
	called bool
	err    error
}

func (c *closer) Close() error {
	c.called = true
	return c.err
}

func TestClose(t *testing.T) {
	ctx := context.Background()

	c := &closer{}
	safe.Close(ctx, c)
	gt.Bool(t, c.called).True()

	failing := &closer{err: errors.New("already closed")}
	safe.Close(ctx, failing)
	gt.Bool(t, failing.called).True()

	safe.Close(ctx, nil)
}
