package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/simtrace/internal/cliconfig"
	"github.com/bft-labs/simtrace/internal/render"
	"github.com/bft-labs/simtrace/pkg/log"
	"github.com/bft-labs/simtrace/pkg/trace"
)

const longHelp = `Read trace files written by the epidemic simulator.

simtrace replays a trace frame by frame, printing how many agents are
healthy, carriers, sick or immune, and summarizes whole runs including
the peak of the outbreak.

Configuration is read from $HOME/.simtrace/config.toml, then SIMTRACE_*
environment variables, then flags.`

var exampleUsage = strings.TrimSpace(`
  simtrace header output.sim
  simtrace play output.sim --interval 100ms
  simtrace summary output.sim --format yaml
  simtrace summary output.sim --watch
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return trace.Version
}

// cli carries state shared by all subcommands once configuration is loaded.
type cli struct {
	cfg     cliconfig.Config
	cfgPath string

	logger   *log.ZerologAdapter
	renderer *render.Renderer
}

func main() {
	c := &cli{cfg: cliconfig.DefaultConfig()}
	c.logger = log.NewZerologAdapter(os.Stderr, zerolog.InfoLevel)

	root := &cobra.Command{
		Use:           "simtrace",
		Short:         "Replay and summarize epidemic simulator traces",
		Long:          longHelp,
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.load(cmd, args)
		},
	}

	root.PersistentFlags().StringVar(&c.cfgPath, "config", "", "path to config file (default: $HOME/.simtrace/config.toml)")
	root.PersistentFlags().StringVar(&c.cfg.TracePath, "trace", c.cfg.TracePath, "trace file to read (a positional argument takes precedence)")
	root.PersistentFlags().StringVar(&c.cfg.LogLevel, "log-level", c.cfg.LogLevel, "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&c.cfg.Format, "format", c.cfg.Format, "output format: table, json, yaml (default: table on a terminal, json otherwise)")

	root.AddCommand(
		newHeaderCmd(c),
		newPlayCmd(c),
		newSummaryCmd(c),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := root.ExecuteContext(ctx)
	stop()
	if err != nil {
		c.logger.Error("simtrace", log.Err(err))
		os.Exit(1)
	}
}

// load resolves configuration with precedence flags > env > file > defaults
// and builds the logger and renderer.
func (c *cli) load(cmd *cobra.Command, args []string) error {
	cfgFile := c.cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}

	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })
	if len(args) > 0 {
		c.cfg.TracePath = args[0]
		changed["trace"] = true
	}

	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(&c.cfg, fc, changed); err != nil {
			return err
		}
	} else if c.cfgPath != "" {
		return fmt.Errorf("config file %s not found", c.cfgPath)
	}

	if err := cliconfig.ApplyEnvConfig(&c.cfg, changed); err != nil {
		return err
	}

	if err := c.cfg.Validate(); err != nil {
		return err
	}

	lvl, err := log.ParseLevel(c.cfg.LogLevel)
	if err != nil {
		return err
	}
	c.logger = log.NewZerologAdapter(os.Stderr, lvl)

	format, err := render.ParseFormat(c.cfg.Format)
	if err != nil {
		return err
	}
	c.renderer = render.NewRenderer(format, os.Stdout)

	c.logger.Debug("configuration",
		log.String("trace", c.cfg.TracePath),
		log.String("format", string(c.renderer.Format())),
		log.Duration("interval", c.cfg.Interval),
		log.Int("max_frames", c.cfg.MaxFrames),
	)
	return nil
}

func (c *cli) open() (*trace.Reader, error) {
	return trace.Open(c.cfg.TracePath, trace.WithLogger(c.logger))
}
