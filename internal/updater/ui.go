package updater

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"

	"mcl/internal/theme"
)

// Choices offered by PromptForUpdate
const (
	ActionUpdate = "update"
	ActionSkip   = "skip"
	ActionLater  = "later"
)

// PromptForUpdate asks whether to install release; choosing skip is persisted
func (u *Updater) PromptForUpdate(release *Release) (string, error) {
	sizeMB := float64(release.AssetSize) / 1024 / 1024

	description := fmt.Sprintf(
		"Download size: %.1f MB\n\n%s",
		sizeMB,
		truncateChangelog(release.Notes, 400),
	)

	var action string
	err := huh.NewSelect[string]().
		Title(theme.Subtitle.Render(fmt.Sprintf("Update available: %s → %s", u.currentVersion, release.Version))).
		Description(theme.Faint.Render(description)).
		Options(
			huh.NewOption(theme.SuccessStyle.Render("Update now"), ActionUpdate),
			huh.NewOption(theme.InfoStyle.Render("Skip this version"), ActionSkip),
			huh.NewOption(theme.WarningStyle.Render("Remind me later"), ActionLater),
		).
		Value(&action).
		Run()
	if err != nil {
		return "", err
	}

	if action == ActionSkip {
		if err := u.SkipVersion(release.Version); err != nil {
			return action, fmt.Errorf("failed to save skip preference: %w", err)
		}
	}

	return action, nil
}

// ShowUpdateSuccess prints the post-update banner
func ShowUpdateSuccess(w io.Writer, version string) {
	title := theme.SuccessStyle.Padding(0, 2).Render("✓ Update Complete!")
	fmt.Fprintf(w, "\n%s\n\n", theme.SuccessBox.Render(title))
	fmt.Fprintf(w, "%s %s\n\n", theme.LabelStyle.Render("Version:"), theme.CurrentStyle.Render(version))
}

// ShowAlreadyUpToDate prints the up-to-date message
func ShowAlreadyUpToDate(w io.Writer, version string) {
	fmt.Fprintln(w, theme.SuccessMessage(fmt.Sprintf("You're already running the latest version (%s)", version)))
}

// truncateChangelog truncates the changelog to a maximum length
func truncateChangelog(changelog string, maxLen int) string {
	changelog = strings.TrimSpace(changelog)
	if changelog == "" {
		return "See release notes on GitHub for details."
	}

	if len(changelog) <= maxLen {
		return changelog
	}

	// Find a good break point (newline or space)
	truncated := changelog[:maxLen]
	if idx := strings.LastIndex(truncated, "\n"); idx > maxLen/2 {
		truncated = truncated[:idx]
	} else if idx := strings.LastIndex(truncated, " "); idx > maxLen/2 {
		truncated = truncated[:idx]
	}

	return truncated + "..."
}
