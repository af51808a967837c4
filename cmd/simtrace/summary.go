package main

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/bft-labs/simtrace/internal/app"
	"github.com/bft-labs/simtrace/pkg/log"
	"github.com/bft-labs/simtrace/plugins/tracewatcher"
)

func newSummaryCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary [trace]",
		Short: "Read a whole trace and print its summary",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !c.cfg.Watch {
				return c.summarize(ctx)
			}
			return c.watchSummary(ctx)
		},
	}

	cmd.Flags().IntVar(&c.cfg.MaxFrames, "max-frames", c.cfg.MaxFrames, "stop after this many frames (0 = all)")
	cmd.Flags().BoolVar(&c.cfg.Watch, "watch", c.cfg.Watch, "print a new summary whenever the trace file changes")
	cmd.Flags().DurationVar(&c.cfg.WatchDebounce, "watch-debounce", c.cfg.WatchDebounce, "quiet period after a change before re-reading")
	return cmd
}

func (c *cli) summarize(ctx context.Context) error {
	r, err := c.open()
	if err != nil {
		return err
	}

	player := app.NewPlayer(app.PlayerConfig{MaxFrames: c.cfg.MaxFrames}, r, c.logger, nil)
	summary, err := player.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	// An interrupted run still reports what was read.
	return c.renderer.Render(summary)
}

func (c *cli) watchSummary(ctx context.Context) error {
	if err := c.summarize(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		// The simulator may not have written the trace yet.
		c.logger.Warn("summary failed, waiting for changes", log.Err(err))
	}

	w := tracewatcher.New(tracewatcher.Config{DebounceDelay: c.cfg.WatchDebounce}, c.cfg.TracePath,
		func(ctx context.Context) {
			if err := c.summarize(ctx); err != nil && !errors.Is(err, context.Canceled) {
				c.logger.Warn("summary failed", log.Err(err))
			}
		}, c.logger)

	if err := w.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	c.logger.Info("received signal, stopping...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return w.Shutdown(shutdownCtx)
}
