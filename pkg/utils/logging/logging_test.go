package logging_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/Hsinha11/AI-Journal/pkg/utils/logging"
	"github.com/m-mizutani/gt"
)

func TestFrom(t *testing.T) {
	t.Run("falls back to default logger", func(t *testing.T) {
		gt.Value(t, logging.From(context.Background())).Equal(logging.Default())
	})

	t.Run("returns logger stored in context", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewJSONHandler(&buf, nil))
		ctx := logging.With(context.Background(), logger)

		logging.From(ctx).Info("hello", "entry_id", "e-1")
		gt.String(t, buf.String()).Contains(`"entry_id":"e-1"`)
	})
}

func TestSetDefault(t *testing.T) {
	orig := logging.Default()
	t.Cleanup(func() { logging.SetDefault(orig) })

	var buf bytes.Buffer
	logging.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	logging.Default().Warn("switched")
	gt.String(t, buf.String()).Contains("switched")

	logging.SetDefault(nil)
	gt.Value(t, logging.Default()).NotEqual(orig)
}
