package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mcl/internal/app"
	"mcl/internal/config"
	"mcl/internal/logging"
	"mcl/internal/theme"
)

// Version is set during build time via ldflags
var Version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code
func run(args []string, stdout, stderr io.Writer) int {
	c := &cli{stderr: stderr}
	cmd := newRootCmd(c)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := cmd.ExecuteContext(ctx)
	if c.state != nil {
		_ = c.state.Logger.Sync()
	}
	if err != nil {
		fmt.Fprintln(stderr, theme.ErrorMessage(err.Error()))
		return 1
	}
	return 0
}

// cli carries flag values and the lazily built application state
type cli struct {
	configPath string
	logLevel   string
	logFormat  string
	stderr     io.Writer

	cfg   *config.Config
	state *app.State

	// newState is replaced in tests
	newState func(*config.Config, *zap.Logger) (*app.State, error)
}

func newRootCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "mcl",
		Short:         "Java runtime provisioning and version manifest tools for the launcher",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if cmd.Name() != "update" {
				notifyUpdate(c, cmd)
			}
		},
	}

	cmd.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/mcl/mcl.json)")
	cmd.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&c.logFormat, "log-format", "", "log format: console or json")

	cmd.AddCommand(
		newInstallCmd(c),
		newCheckCmd(c),
		newTestCmd(c),
		newDetectCmd(c),
		newMemoryCmd(c),
		newPlatformCmd(c),
		newDoctorCmd(c),
		newMergeCmd(),
		newLoadersCmd(),
		newPathCmd(c),
		newUpdateCmd(c),
		newVersionCmd(),
	)
	return cmd
}

// loadConfig loads the configuration once
func (c *cli) loadConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	if c.logLevel != "" {
		cfg.LogLevel = c.logLevel
	}
	if c.logFormat != "" {
		cfg.LogFormat = c.logFormat
	}
	c.cfg = cfg
	return cfg, nil
}

// load builds the application state once
func (c *cli) load() (*app.State, error) {
	if c.state != nil {
		return c.state, nil
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, c.stderr)
	if err != nil {
		return nil, fmt.Errorf("invalid logging config: %w", err)
	}

	build := c.newState
	if build == nil {
		build = func(cfg *config.Config, logger *zap.Logger) (*app.State, error) {
			return app.New(cfg, logger)
		}
	}
	state, err := build(cfg, logger)
	if err != nil {
		return nil, err
	}
	c.state = state
	return state, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the mcl version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
				theme.Subtitle.Render("mcl"),
				theme.Faint.Render("version"),
				theme.HighlightText(Version))
		},
	}
}
