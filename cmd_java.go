package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"mcl/internal/java"
	"mcl/internal/theme"
)

func newCheckCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "check [java-executable]",
		Short: "Report the version of a Java executable (default: java on PATH)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := c.load()
			if err != nil {
				return err
			}

			path := "java"
			if len(args) == 1 {
				path = args[0]
			}

			v, err := state.Probe.Check(cmd.Context(), path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", theme.LabelStyle.Render("Version:"), theme.ValueStyle.Render(v.Version))
			fmt.Fprintf(out, "%s %d\n", theme.LabelStyle.Render("Major:  "), v.MajorVersion)
			fmt.Fprintf(out, "%s %s\n", theme.LabelStyle.Render("Path:   "), theme.PathStyle.Render(v.Path))
			return nil
		},
	}
}

func newTestCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "test <java-executable> <major>",
		Short: "Exit successfully only if the executable runs the given major version",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := c.load()
			if err != nil {
				return err
			}
			major, err := parseMajor(args[1])
			if err != nil {
				return err
			}

			if !state.Probe.Test(cmd.Context(), args[0], major) {
				return fmt.Errorf("%s is not a working Java %d runtime", args[0], major)
			}
			fmt.Fprintln(cmd.OutOrStdout(), theme.SuccessMessage(fmt.Sprintf("%s is Java %d", args[0], major)))
			return nil
		},
	}
}

func newDetectCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "detect [major]",
		Short: "List Java runtimes under the install directory and search paths",
		Long: "Lists every runtime found under <install_dir>/java and the configured search paths.\n" +
			"With a major version, prints only the newest working runtime of that version.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := c.load()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				major, err := parseMajor(args[0])
				if err != nil {
					return err
				}
				inst, ok := state.Detector.Find(cmd.Context(), major)
				if !ok {
					return fmt.Errorf("no working Java %d runtime found, run 'mcl install %d'", major, major)
				}
				fmt.Fprintln(out, inst.Path)
				return nil
			}

			found := state.Detector.FindAll(cmd.Context())
			if len(found) == 0 {
				fmt.Fprintln(out, theme.WarningStyle.Render("No Java installations found."))
				fmt.Fprintln(out, theme.InfoStyle.Render("Run 'mcl install' to install Java."))
				return nil
			}

			fmt.Fprintln(out, theme.Title.Render("Available Java Versions:"))
			fmt.Fprintln(out)
			for _, inst := range found {
				fmt.Fprintln(out, formatInstallation(inst, state.Config.JavaDir()))
			}
			fmt.Fprintln(out)
			return nil
		},
	}
}

// formatInstallation renders one runtime with an aligned version column and a source tag
func formatInstallation(inst java.Installation, javaDir string) string {
	versionStr := theme.CurrentStyle.Render(inst.Version)
	if !inst.Verified {
		versionStr = theme.Faint.Render(inst.Version)
	}

	// Align version column to width 15 considering visual width
	pad := 0
	if w := lipgloss.Width(versionStr); w < 15 {
		pad = 15 - w
	}

	source, sourceStyle := "search path", theme.InfoStyle
	if rel, err := filepath.Rel(javaDir, inst.Home); err == nil && !strings.HasPrefix(rel, "..") {
		source, sourceStyle = "managed", theme.SuccessStyle
	}
	if !inst.Verified {
		source, sourceStyle = "not runnable", theme.ErrorStyle
	}

	return fmt.Sprintf("  %s%s %s %s", versionStr, strings.Repeat(" ", pad), inst.Path, sourceStyle.Render("("+source+")"))
}
