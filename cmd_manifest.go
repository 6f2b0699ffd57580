package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"mcl/internal/manifest"
	"mcl/internal/theme"
)

func newMergeCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "merge <partial.json> <base.json>",
		Short: "Merge a mod loader's partial manifest into the vanilla manifest it extends",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			partial, err := decodeFile(args[0], manifest.DecodePartial)
			if err != nil {
				return err
			}
			base, err := decodeFile(args[1], manifest.DecodeVersionInfo)
			if err != nil {
				return err
			}

			merged := manifest.Merge(partial, base)

			if output == "" {
				return manifest.Encode(cmd.OutOrStdout(), merged)
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", output, err)
			}
			if err := manifest.Encode(f, merged); err != nil {
				f.Close()
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			if err := f.Close(); err != nil {
				return err
			}

			fmt.Fprintln(cmd.ErrOrStderr(), theme.SuccessMessage(fmt.Sprintf("Wrote %s (%d libraries)", output, len(merged.Libraries))))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the merged manifest to a file instead of stdout")
	return cmd
}

func newLoadersCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "loaders <index.json> <game-version>",
		Short: "Show loader builds a loader index offers for a game version",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := decodeFile(args[0], manifest.DecodeLoaderManifest)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if !all {
				latest, ok := index.LatestStable(args[1])
				if !ok {
					return fmt.Errorf("no stable loader for game version %s", args[1])
				}
				fmt.Fprintf(out, "%s %s\n", latest.ID, theme.Faint.Render(latest.URL))
				return nil
			}

			loaders, ok := index.Loaders(args[1])
			if !ok {
				return fmt.Errorf("game version %s is not in the index", args[1])
			}
			for _, l := range loaders {
				tag := ""
				if l.Stable {
					tag = " " + theme.SuccessStyle.Render("[stable]")
				}
				fmt.Fprintf(out, "%s%s %s\n", l.ID, tag, theme.Faint.Render(l.URL))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "list every build instead of the latest stable one")
	return cmd
}

func decodeFile[T any](path string, decode func(io.Reader) (T, error)) (T, error) {
	f, err := os.Open(path)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	v, err := decode(f)
	if err != nil {
		return v, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}
