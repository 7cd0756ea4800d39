package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/Hsinha11/AI-Journal/pkg/domain/model"
	"github.com/Hsinha11/AI-Journal/pkg/utils/logging"
	"github.com/Hsinha11/AI-Journal/pkg/utils/safe"
	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdBackfill() *cli.Command {
	var stack searchStack

	return &cli.Command{
		Name:    "backfill",
		Aliases: []string{"b"},
		Usage:   "Embed and index every stored entry",
		Flags:   stack.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			if stack.vector.Backend() != "firestore" {
				logging.Default().Warn("Vector index is process local, the backfilled index is discarded on exit",
					"backend", stack.vector.Backend())
			}

			repo, uc, err := stack.configure(ctx)
			if err != nil {
				return err
			}
			defer safe.Close(ctx, repo)

			result, err := uc.Indexer.BackfillAll(ctx)
			if result != nil {
				printBackfillResult(result)
			}
			if err != nil {
				return goerr.Wrap(err, "backfill aborted")
			}
			return nil
		},
	}
}

func printBackfillResult(r *model.BackfillResult) {
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed)

	_, _ = bold.Fprintln(os.Stdout, "Backfill summary")
	_, _ = fmt.Fprintf(os.Stdout, "  total:    %d\n", r.Total)
	_, _ = green.Fprintf(os.Stdout, "  indexed:  %d\n", r.Indexed)
	_, _ = yellow.Fprintf(os.Stdout, "  skipped:  %d\n", r.Skipped)
	if r.Failed > 0 {
		_, _ = red.Fprintf(os.Stdout, "  failed:   %d\n", r.Failed)
	} else {
		_, _ = fmt.Fprintf(os.Stdout, "  failed:   %d\n", r.Failed)
	}
	_, _ = fmt.Fprintf(os.Stdout, "  duration: %s\n", r.Duration.Round(time.Millisecond))
}
