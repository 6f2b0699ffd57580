package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"mcl/internal/app"
	"mcl/internal/catalog"
	"mcl/internal/installer"
	"mcl/internal/java"
	"mcl/internal/theme"
	"mcl/internal/ui"
)

func newInstallCmd(c *cli) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "install [major]",
		Short: "Download and install a Java runtime for this machine",
		Long: "Downloads the newest Azul Zulu JRE of the given major version for this OS and\n" +
			"architecture and installs it as <install_dir>/java/zulu<major>.\n" +
			"Without an argument an interactive version menu is shown.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := c.load()
			if err != nil {
				return err
			}

			var major int
			if len(args) == 1 {
				major, err = parseMajor(args[0])
			} else {
				if !ui.IsInteractive() {
					return errors.New("a major version is required when not running in a terminal")
				}
				major, err = selectRelease(cmd.Context(), state)
			}
			if err != nil {
				return err
			}

			var path string
			install := func(ctx context.Context, sink installer.EventSink) error {
				var err error
				path, err = state.Provisioner.Install(ctx, major, sink)
				return err
			}

			out := cmd.OutOrStdout()
			if plain || !ui.IsInteractive() {
				err = install(cmd.Context(), ui.NewLineSink(out))
			} else {
				title := fmt.Sprintf("Installing Java %d from %s", major, state.Distributor.Name())
				err = ui.RunWithProgress(cmd.Context(), title, install)
			}
			if err != nil {
				return fmt.Errorf("installing Java %d: %w", major, err)
			}

			fmt.Fprintln(out)
			fmt.Fprintln(out, theme.SuccessBox.Render(theme.SuccessStyle.Render(fmt.Sprintf("✓ Java %d installed", major))))
			fmt.Fprintf(out, "%s %s\n", theme.LabelStyle.Render("Executable:"), theme.PathStyle.Render(path))
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print progress as lines instead of a progress bar")
	return cmd
}

func parseMajor(s string) (int, error) {
	major, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || major <= 0 {
		return 0, fmt.Errorf("invalid major version %q", s)
	}
	return major, nil
}

// selectRelease shows the known releases, LTS first, tagging installed majors
func selectRelease(ctx context.Context, state *app.State) (int, error) {
	var found []java.Installation
	if err := ui.WithSpinner("Scanning installed Java runtimes...", func() error {
		found = state.Detector.FindAll(ctx)
		return nil
	}); err != nil {
		return 0, err
	}

	installed := make(map[int]bool)
	for _, inst := range found {
		if inst.Major > 0 {
			installed[inst.Major] = true
		}
	}

	releases := catalog.KnownReleases()

	// determine max width for version column (visual)
	maxW := 0
	for _, r := range releases {
		if w := lipgloss.Width(fmt.Sprintf("Java %d", r.Major)); w > maxW {
			maxW = w
		}
	}

	var ltsOptions, featureOptions []huh.Option[int]
	for _, release := range releases {
		version := strconv.Itoa(release.Major)
		pad := strings.Repeat(" ", maxW-lipgloss.Width("Java "+version))

		// Fixed tag columns: [LTS] and [Installed]
		ltsCol := strings.Repeat(" ", len("[LTS]"))
		if release.IsLTS {
			ltsCol = theme.SuccessStyle.Render("[LTS]")
		}
		instCol := strings.Repeat(" ", len("[Installed]"))
		if installed[release.Major] {
			instCol = theme.InfoStyle.Render("[Installed]")
		}

		label := theme.CurrentStyle.Render("Java") + " " + version + pad + " " + ltsCol + "  " + instCol
		option := huh.NewOption(label, release.Major)
		if release.IsLTS {
			ltsOptions = append(ltsOptions, option)
		} else {
			featureOptions = append(featureOptions, option)
		}
	}

	var selected int
	err := huh.NewSelect[int]().
		Title(theme.Subtitle.Render("Select Java Version")).
		Description(theme.Faint.Render(fmt.Sprintf("%s builds for %s", state.Distributor.Name(), state.Platform))).
		Options(append(ltsOptions, featureOptions...)...).
		Value(&selected).
		Run()
	if err != nil {
		return 0, err
	}
	return selected, nil
}
