package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cameronsjo/boxes/internal/boxfile"
	"github.com/cameronsjo/boxes/internal/lint"
	"github.com/cameronsjo/boxes/internal/ui"
)

// errLintFailed is returned when lint reports at least one error.
var errLintFailed = errors.New("lint failed")

// lintCmd checks rendered artifacts before they are used.
var lintCmd = &cobra.Command{
	Use:     "lint [boxfile]",
	Aliases: []string{"check"},
	Short:   "Check rendered artifacts for problems",
	Long: `Render the Boxfile in memory and check the results the way the
tools that consume them would:

  - build manifests start with FROM, name valid base images, EXPOSE ports
    in range, and use the exec form for CMD
  - the compose document parses, uses version 3 or later, has valid port
    mappings, and loads through the compose loader
  - service dependencies have no cycles

Exits non-zero if any error is found. Warnings are printed but do not fail.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLint,
}

func init() {
	addLoadFlags(lintCmd.Flags())
	rootCmd.AddCommand(lintCmd)
}

func runLint(cmd *cobra.Command, args []string) error {
	cfg, project, err := loadProject(args)
	if err != nil {
		return err
	}

	ui.Inspect("Linting %s...", relPath(cfg.Boxfile))
	return lintProject(cmd.Context(), cfg.Root, project)
}

// lintProject prints findings and returns errLintFailed on any error.
func lintProject(ctx context.Context, root string, project *boxfile.Project) error {
	findings, err := lint.Project(ctx, project, root)
	if err != nil {
		return fmt.Errorf("lint: %w", err)
	}

	errs, warnings := 0, 0
	for _, f := range findings {
		if f.Severity == lint.SeverityError {
			ui.Error("%s", f)
			errs++
		} else {
			ui.Warning("%s", f)
			warnings++
		}
	}

	switch {
	case errs > 0:
		return fmt.Errorf("%w: %d error(s), %d warning(s)", errLintFailed, errs, warnings)
	case warnings > 0:
		ui.Success("No errors (%d warning(s))", warnings)
	default:
		ui.Success("No problems found")
	}
	return nil
}
