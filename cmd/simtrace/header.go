package main

import (
	"github.com/spf13/cobra"

	"github.com/bft-labs/simtrace/internal/render"
)

func newHeaderCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "header [trace]",
		Short: "Print the trace header and gathering points",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := c.open()
			if err != nil {
				return err
			}
			defer r.Close()

			return c.renderer.Render(render.HeaderView{
				Header:          r.Header(),
				GatheringPoints: r.GatheringPoints(),
			})
		},
	}
}
