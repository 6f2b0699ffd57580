package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"mcl/internal/theme"
	"mcl/internal/ui"
	"mcl/internal/updater"
)

// newUpdateSource is replaced in tests
var newUpdateSource = updater.NewGitHubSource

func newUpdateCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Update mcl to the latest release",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			state, err := c.load()
			if err != nil {
				return err
			}
			cfg := state.Config
			out := cmd.OutOrStdout()

			if !cfg.Update.Enabled {
				fmt.Fprintln(out, theme.WarningStyle.Render("Updates are disabled in configuration."))
				fmt.Fprintln(out, theme.Faint.Render("To enable, set update.enabled to true in "+cfg.Path()))
				return nil
			}

			source, err := newUpdateSource(cfg.Update.Repository)
			if err != nil {
				return err
			}
			upd := updater.New(cfg, Version, source, state.Logger)

			ctx, cancel := context.WithTimeout(cmd.Context(), updater.UpdateTimeout)
			defer cancel()

			var release *updater.Release
			err = ui.WithSpinner("Checking for updates...", func() error {
				var err error
				release, err = upd.CheckForUpdate(ctx)
				return err
			})
			if err != nil {
				return fmt.Errorf("update check failed: %w", err)
			}
			if release == nil {
				updater.ShowAlreadyUpToDate(out, upd.CurrentVersion())
				return nil
			}

			if ui.IsInteractive() {
				action, err := upd.PromptForUpdate(release)
				if err != nil {
					fmt.Fprintln(out, theme.WarningStyle.Render("Update cancelled."))
					return nil
				}
				switch action {
				case updater.ActionSkip:
					fmt.Fprintln(out, theme.InfoMessage(fmt.Sprintf("Skipped version %s", release.Version)))
					return nil
				case updater.ActionLater:
					fmt.Fprintln(out, theme.InfoMessage("Update postponed"))
					return nil
				}
			}

			exe, err := os.Executable()
			if err != nil {
				return fmt.Errorf("failed to determine executable path: %w", err)
			}

			err = ui.WithSpinner(fmt.Sprintf("Downloading mcl %s...", release.Version), func() error {
				return upd.PerformUpdate(ctx, release, exe)
			})
			if err != nil {
				return err
			}

			updater.ShowUpdateSuccess(out, release.Version)
			return nil
		},
	}
}

// notifyUpdate prints a one-line notice when a newer release exists.
// It runs at most once per check interval and never fails the command.
func notifyUpdate(c *cli, cmd *cobra.Command) {
	if c.state == nil || !ui.IsInteractive() {
		return
	}
	cfg := c.state.Config

	source, err := newUpdateSource(cfg.Update.Repository)
	if err != nil {
		return
	}
	upd := updater.New(cfg, Version, source, c.state.Logger)
	if !upd.ShouldCheckForUpdate() {
		return
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	defer cancel()

	release, err := upd.CheckForUpdate(ctx)
	if err != nil || release == nil {
		return
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "\n%s Update available: %s → %s %s\n\n",
		theme.InfoStyle.Render("ℹ"),
		theme.Faint.Render(upd.CurrentVersion()),
		theme.CurrentStyle.Render(release.Version),
		theme.Faint.Render("(run 'mcl update')"))
}
