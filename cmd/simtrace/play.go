package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/bft-labs/simtrace/internal/app"
	"github.com/bft-labs/simtrace/internal/render"
	"github.com/bft-labs/simtrace/pkg/log"
)

func newPlayCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play [trace]",
		Short: "Replay a trace, printing population counts for each frame",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := c.open()
			if err != nil {
				return err
			}

			player := app.NewPlayer(app.PlayerConfig{
				Interval:  c.cfg.Interval,
				MaxFrames: c.cfg.MaxFrames,
			}, r, c.logger, nil, render.NewFrameSink(c.renderer))

			if err := player.Start(cmd.Context()); err != nil {
				r.Close()
				return err
			}

			// Interrupts cancel cmd.Context(), which ends playback.
			summary, err := player.Wait(context.Background())
			if err != nil {
				return err
			}
			c.logger.Info("playback finished",
				log.Int("frames", summary.FramesRead),
				log.Bool("complete", summary.Complete),
			)
			return nil
		},
	}

	cmd.Flags().DurationVar(&c.cfg.Interval, "interval", c.cfg.Interval, "delay between frames (0 plays as fast as possible)")
	cmd.Flags().IntVar(&c.cfg.MaxFrames, "max-frames", c.cfg.MaxFrames, "stop after this many frames (0 = all)")
	return cmd
}
