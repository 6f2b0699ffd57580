package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mcl/internal/theme"
)

func newMemoryCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "memory",
		Short: "Show total system memory and the suggested maximum heap",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			state, err := c.load()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "%s %d KB\n", theme.LabelStyle.Render("Total memory:"), state.Memory.TotalKB(ctx))
			fmt.Fprintf(out, "%s -Xmx%dM\n", theme.LabelStyle.Render("Suggested heap:"), state.Memory.RecommendedHeapMB(ctx))
			return nil
		},
	}
}

func newPlatformCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "platform",
		Short: "Print the os/arch pair runtimes are downloaded for",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			state, err := c.load()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), state.Platform)
			return nil
		},
	}
}

func newDoctorCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose the Java setup used by the launcher",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			state, err := c.load()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, theme.Title.Render("mcl - System Diagnostics"))
			fmt.Fprintln(out)

			var warnings []string

			fmt.Fprintln(out, theme.LabelStyle.Render("Host"))
			fmt.Fprintf(out, "  platform  %s\n", state.Platform)
			fmt.Fprintf(out, "  config    %s\n", theme.PathStyle.Render(state.Config.Path()))
			fmt.Fprintf(out, "  java dir  %s\n", theme.PathStyle.Render(state.Config.JavaDir()))
			fmt.Fprintf(out, "  memory    %d KB\n", state.Memory.TotalKB(ctx))
			fmt.Fprintln(out)

			fmt.Fprintln(out, theme.LabelStyle.Render("Checking java on PATH..."))
			if v, ok := state.Probe.CheckSystem(ctx); ok {
				fmt.Fprintf(out, "  %s %s\n", theme.SuccessMessage("found Java "+v.Version), theme.Faint.Render(fmt.Sprintf("(major %d)", v.MajorVersion)))
			} else {
				fmt.Fprintln(out, "  "+theme.WarningMessage("no working java on PATH"))
				warnings = append(warnings, "No system Java; the launcher will rely on managed runtimes.")
			}
			fmt.Fprintln(out)

			fmt.Fprintln(out, theme.LabelStyle.Render("Checking installed runtimes..."))
			found := state.Detector.FindAll(ctx)
			broken := 0
			for _, inst := range found {
				fmt.Fprintln(out, formatInstallation(inst, state.Config.JavaDir()))
				if !inst.Verified {
					broken++
				}
			}
			if len(found) == 0 {
				fmt.Fprintln(out, "  "+theme.WarningMessage("none found"))
				warnings = append(warnings, "No Java installations detected. Run 'mcl install' to install Java.")
			}
			if broken > 0 {
				warnings = append(warnings, fmt.Sprintf("%d runtime(s) failed to run; reinstall them with 'mcl install <major>'.", broken))
			}
			fmt.Fprintln(out)

			if len(warnings) == 0 {
				fmt.Fprintln(out, theme.SuccessMessage("No problems found"))
				return nil
			}
			for _, w := range warnings {
				fmt.Fprintln(out, theme.WarningMessage(w))
			}
			return nil
		},
	}
}
