// Package cmd provides the CLI commands for boxes.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cameronsjo/boxes/internal/config"
	"github.com/cameronsjo/boxes/internal/ui"
)

const version = "0.1.0"

var (
	verbose bool
	noColor bool

	// settings is populated by setup before any subcommand runs.
	settings = viper.New()
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "boxes",
	Short: "Build manifests and compose files from a Boxfile",
	Long: `boxes - container build manifests and compose files from code

boxes reads a Boxfile (boxes.yml, boxes.yaml or boxes.toml) describing
images and the services that run them, and renders one build manifest
per image plus a compose document wiring the services together.

PROJECT
  init [dir]            Scaffold a starter Boxfile
  images [boxfile]      List images and their base references

RENDER
  render [boxfile]      Print the compose document
    --image, -i <name>  Print one image's build manifest instead
    --all, -a           Print every manifest and the compose document
    --output, -o <dir>  Write all artifacts to a directory
    --write, -w         Write all artifacts to the configured output_dir
    --values, -f <file> Values overlay exposed as .Values
    --secrets, -s <file> SOPS file exposed as .Secrets
    --lint              Lint before printing or writing
  lint [boxfile]        Check rendered artifacts for problems

MAINTENANCE
  update                Update boxes to the latest release

Settings are read from .boxes.yaml in the project root or $HOME, and
from BOXES_* environment variables.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show debug output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.SetVersionTemplate("boxes version {{.Version}}\n")
}

// setup wires output, settings and color before any command runs. Status
// messages go to stderr; stdout carries only rendered artifacts.
func setup(cmd *cobra.Command, args []string) error {
	ui.SetOutput(cmd.ErrOrStderr())
	ui.SetVerbose(verbose)

	root, err := config.FindRoot()
	if err != nil {
		root = ""
	}

	settings = config.NewViper(root)
	if err := settings.BindPFlag(config.KeyNoColor, cmd.Root().PersistentFlags().Lookup("no-color")); err != nil {
		return err
	}
	if err := config.ReadSettings(settings); err != nil {
		return err
	}

	ui.ConfigureColor(settings.GetBool(config.KeyNoColor))

	if used := settings.ConfigFileUsed(); used != "" {
		ui.Debug("settings from %s", used)
	}
	return nil
}
