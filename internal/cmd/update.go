package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cameronsjo/boxes/internal/ui"
	"github.com/cameronsjo/boxes/internal/update"
)

var updateCmd = &cobra.Command{
	Use:     "update",
	Aliases: []string{"upgrade", "selfupdate"},
	Short:   "Update boxes to the latest version",
	Long: `Update boxes to the latest version from GitHub releases.

This command will:
1. Check for a newer version on GitHub
2. Download the appropriate binary for your platform
3. Replace the current binary with the new version

Examples:
  boxes update           # Update to latest version
  boxes update --check   # Check for updates without installing`,
	Args: cobra.NoArgs,
	RunE: runUpdate,
}

var checkOnly bool

const changelogLines = 10

func init() {
	rootCmd.AddCommand(updateCmd)
	updateCmd.Flags().BoolVar(&checkOnly, "check", false, "Only check for updates, don't install")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ui.Info("Current version: %s (%s)", version, update.GetPlatformInfo())
	ui.Info("Checking for updates...")

	if checkOnly {
		release, available, err := update.CheckForUpdate(cmd.Context(), version)
		if err != nil {
			return err
		}
		if !available {
			ui.Success("You're running the latest version!")
			return nil
		}
		ui.Success("New version available: %s (released %s)", release.Version, release.PublishedAt)
		ui.Info("To update, run: boxes update")
		printChangelog(release.Changelog)
		return nil
	}

	release, err := update.Update(cmd.Context(), version)
	if err != nil {
		return err
	}
	if release == nil {
		ui.Success("You're already running the latest version!")
		return nil
	}

	ui.Rocket("Updated to version %s", release.Version)
	printChangelog(release.Changelog)
	return nil
}

func printChangelog(changelog string) {
	lines, rest := update.Summarize(changelog, changelogLines)
	if len(lines) == 0 {
		return
	}
	ui.Println()
	ui.Header("What's new:")
	for _, line := range lines {
		ui.Println(" ", line)
	}
	if rest > 0 {
		ui.Println(" ", "...", rest, "more lines")
	}
}
