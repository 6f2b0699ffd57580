package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"mcl/internal/theme"
	"mcl/internal/ui"
)

func newPathCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "path",
		Short: "Manage extra directories scanned for Java runtimes",
	}
	cmd.AddCommand(newPathAddCmd(c), newPathRemoveCmd(c), newPathListCmd(c))
	return cmd
}

func newPathAddCmd(c *cli) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "add <directory>",
		Short: "Add a search path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			path, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			if !isDir(path) {
				return fmt.Errorf("invalid directory path: %s", path)
			}

			if cfg.HasSearchPath(path) {
				fmt.Fprintln(out, theme.WarningStyle.Render("This search path is already configured."))
				return nil
			}

			if !yes && ui.IsInteractive() {
				confirmed, err := confirmAction(
					"Add search path?",
					fmt.Sprintf("Path: %s\n\nJava runtimes in this directory will be offered by 'mcl detect'.", path),
				)
				if err != nil || !confirmed {
					fmt.Fprintln(out, "Operation cancelled.")
					return nil
				}
			}

			cfg.AddSearchPath(path)
			if err := cfg.Save(); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			fmt.Fprintln(out, theme.SuccessMessage("Added search path:"))
			fmt.Fprintln(out, "  "+theme.PathStyle.Render(path))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func newPathRemoveCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <directory>",
		Short: "Remove a search path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			path := args[0]
			if !cfg.HasSearchPath(path) {
				if abs, err := filepath.Abs(path); err == nil && cfg.HasSearchPath(abs) {
					path = abs
				} else {
					return fmt.Errorf("%s is not a configured search path", args[0])
				}
			}

			cfg.RemoveSearchPath(path)
			if err := cfg.Save(); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), theme.SuccessMessage("Removed search path: "+path))
			return nil
		},
	}
}

func newPathListCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the directories scanned for runtimes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			headerStyle := theme.TableHeader
			cellStyle := theme.TableCell
			existsStyle := theme.SuccessStyle.Padding(0, 1)
			notFoundStyle := theme.ErrorStyle.Padding(0, 1)

			rows := []string{lipgloss.JoinHorizontal(lipgloss.Left,
				headerStyle.Width(58).Render("Path"),
				headerStyle.Render("Status"),
			)}

			paths := append([]string{cfg.JavaDir()}, cfg.SearchPaths...)
			for i, p := range paths {
				label := p
				if i == 0 {
					label += " (managed)"
				}
				status := notFoundStyle.Render("✗ Not found")
				if isDir(p) {
					status = existsStyle.Render("✓ Exists")
				}
				rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Left,
					cellStyle.Width(58).Render(label),
					status,
				))
			}

			fmt.Fprintln(out, theme.Title.Render("Java Search Paths"))
			fmt.Fprintln(out)
			fmt.Fprintln(out, theme.TableStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))
			if len(cfg.SearchPaths) == 0 {
				fmt.Fprintln(out, theme.Faint.Render("Use 'mcl path add <directory>' to add one."))
			}
			return nil
		},
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func confirmAction(title, description string) (bool, error) {
	var confirmed bool

	err := huh.NewConfirm().
		Title(theme.Subtitle.Render(title)).
		Description(theme.Faint.Render(description)).
		Affirmative(theme.SuccessStyle.Render("Yes")).
		Negative(theme.ErrorStyle.Render("No")).
		Value(&confirmed).
		Run()

	return confirmed, err
}
