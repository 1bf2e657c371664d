package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/cameronsjo/boxes/internal/boxfile"
	"github.com/cameronsjo/boxes/internal/fileutil"
	"github.com/cameronsjo/boxes/internal/lock"
	"github.com/cameronsjo/boxes/internal/ui"
)

var (
	renderImage  string
	renderAll    bool
	renderOutput string
	renderWrite  bool
	renderLint   bool
)

// renderCmd represents the render command.
var renderCmd = &cobra.Command{
	Use:   "render [boxfile]",
	Short: "Render build manifests and the compose document",
	Long: `Render a Boxfile into build manifests and a compose document.

The Boxfile is a Go template with sprig functions. It sees:
  - .Values   merged from --values files
  - .Secrets  decrypted from the --secrets SOPS file
  - .Env      the process environment

If no Boxfile is given, boxes searches upward from the current directory
for boxes.yml, boxes.yaml or boxes.toml.

Examples:
  # Print the compose document
  boxes render

  # Print one image's build manifest
  boxes render --image web

  # Print everything
  boxes render --all

  # Write web.Dockerfile, ... and docker-compose.yml to ./build
  boxes render -o build

  # Apply a values overlay and decrypt secrets
  boxes render -f prod.yaml -s secrets.sops.yaml -w`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return boxfileExtensions, cobra.ShellCompDirectiveFilterFileExt
	},
}

func init() {
	renderCmd.Flags().StringVarP(&renderImage, "image", "i", "", "Print the build manifest for one image")
	renderCmd.Flags().BoolVarP(&renderAll, "all", "a", false, "Print every build manifest and the compose document")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Write all artifacts to this directory")
	renderCmd.Flags().BoolVarP(&renderWrite, "write", "w", false, "Write all artifacts to the configured output_dir")
	renderCmd.Flags().BoolVar(&renderLint, "lint", false, "Lint before printing or writing")
	addLoadFlags(renderCmd.Flags())

	renderCmd.MarkFlagsMutuallyExclusive("image", "all")
	renderCmd.MarkFlagsMutuallyExclusive("output", "write")
	renderCmd.MarkFlagsMutuallyExclusive("image", "output")
	renderCmd.MarkFlagsMutuallyExclusive("image", "write")

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, project, err := loadProject(args)
	if err != nil {
		return err
	}

	if renderLint {
		if err := lintProject(ctx, cfg.Root, project); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()

	switch {
	case renderOutput != "" || renderWrite:
		dir := renderOutput
		if dir == "" {
			dir = cfg.OutputDir
		}
		return writeArtifacts(ctx, dir, artifacts(project))

	case renderImage != "":
		m, ok := project.Image(renderImage)
		if !ok {
			return fmt.Errorf("%w: %s", boxfile.ErrUnknownImage, renderImage)
		}
		fmt.Fprintln(out, m.Render())

	case renderAll:
		for _, a := range artifacts(project) {
			fmt.Fprintf(out, "--- %s ---\n", a.name)
			fmt.Fprint(out, a.content)
		}

	default:
		fmt.Fprintln(out, project.Document.Render())
	}

	return nil
}

// writeArtifacts writes every artifact into dir while holding the render
// lock. Files whose content would not change are left alone.
func writeArtifacts(ctx context.Context, dir string, arts []artifact) error {
	return lock.WithLock(dir, "render", func() error {
		written := make([]bool, len(arts))

		g, gctx := errgroup.WithContext(ctx)
		for i, a := range arts {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				path := filepath.Join(dir, a.name)
				data := []byte(a.content)

				changed, err := fileutil.Changed(path, data)
				if err != nil {
					return fmt.Errorf("compare %s: %w", a.name, err)
				}
				if !changed {
					return nil
				}
				if err := fileutil.WriteFile(path, data, 0644); err != nil {
					return fmt.Errorf("write %s: %w", a.name, err)
				}
				written[i] = true
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		count := 0
		for i, a := range arts {
			path := relPath(filepath.Join(dir, a.name))
			if written[i] {
				ui.Box("Wrote %s", path)
				count++
			} else {
				ui.Debug("%s unchanged", path)
			}
		}
		if count == 0 {
			ui.Success("Everything up to date in %s", relPath(dir))
		} else {
			ui.Success("Rendered %d file(s) to %s", count, relPath(dir))
		}
		return nil
	})
}
