package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cameronsjo/boxes/internal/boxfile"
	"github.com/cameronsjo/boxes/internal/fileutil"
	"github.com/cameronsjo/boxes/internal/ui"
)

// initCmd represents the init command.
var initCmd = &cobra.Command{
	Use:   "init [directory]",
	Short: "Scaffold a starter Boxfile",
	Long: `Initialize a new boxes project with a starter Boxfile.

This creates:
  - boxes.yml    Images and services (boxes.toml with --toml)
  - .gitignore   Ignores the build/ output directory

Existing files are never overwritten. If no directory is specified, the
current directory is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

var initTOML bool

func init() {
	initCmd.Flags().BoolVar(&initTOML, "toml", false, "Write boxes.toml instead of boxes.yml")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	targetDir := "."
	if len(args) > 0 {
		targetDir = args[0]
	}

	absDir, err := filepath.Abs(targetDir)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	targetDir = absDir

	if existing, err := boxfile.Find(targetDir); err == nil {
		ui.Warning("%s already exists, skipping", filepath.Base(existing))
		return nil
	}

	ui.Box("Packing a new project...")

	name, content := "boxes.yml", starterYAML
	if initTOML {
		name, content = "boxes.toml", starterTOML
	}

	path := filepath.Join(targetDir, name)
	if err := createFileIfNotExists(path, content); err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	if err := createFileIfNotExists(filepath.Join(targetDir, ".gitignore"), starterGitignore); err != nil {
		return fmt.Errorf("create .gitignore: %w", err)
	}

	ui.Println()
	ui.Info("Next steps:")
	ui.Step(1, "Edit %s to describe your images and services", name)
	ui.Step(2, "Run 'boxes lint' to check the rendered output")
	ui.Step(3, "Run 'boxes render -w' to write build/")
	return nil
}

// createFileIfNotExists creates a file with the given content if it doesn't exist.
func createFileIfNotExists(filename, content string) error {
	created, err := fileutil.CreateIfNotExists(filename, []byte(content), 0644)
	if err != nil {
		return err
	}

	if created {
		ui.Success("Created %s", filepath.Base(filename))
	} else {
		ui.Warning("%s already exists, skipping", filepath.Base(filename))
	}
	return nil
}

// Starter file templates

const starterYAML = `# Boxfile: the images to build and the services that run them.
# This file is a Go template; .Values, .Secrets and .Env are available.
apiVersion: boxes.io/v1
kind: Stack
version: "3.1"

images:
  - name: web
    from: alpine
    tag: "{{ index .Values "alpineTag" | default "3.20" }}"
    steps:
      - run: apk add --no-cache ca-certificates
      - workdir: /app
      - copy: {src: ., dest: /app}
      - env: {PORT: "8080"}
      - expose: 8080
      - cmd: ["./web"]

  - name: cache
    from: redis
    tag: "7"
    steps:
      - expose: 6379

services:
  - name: cache
    image: cache

  - name: web
    image: web
    ports: ["80:8080"]
    environment:
      LOG_LEVEL: "{{ index .Env "LOG_LEVEL" | default "info" }}"
    depends_on: [cache]
`

const starterTOML = `# Boxfile: the images to build and the services that run them.
# This file is a Go template; .Values, .Secrets and .Env are available.
apiVersion = "boxes.io/v1"
kind = "Stack"
version = "3.1"

[[images]]
name = "web"
from = "alpine"
tag = "{{ index .Values "alpineTag" | default "3.20" }}"
steps = [
  { run = "apk add --no-cache ca-certificates" },
  { workdir = "/app" },
  { copy = { src = ".", dest = "/app" } },
  { env = { PORT = "8080" } },
  { expose = 8080 },
  { cmd = ["./web"] },
]

[[images]]
name = "cache"
from = "redis"
tag = "7"
steps = [
  { expose = 6379 },
]

[[services]]
name = "cache"
image = "cache"

[[services]]
name = "web"
image = "web"
ports = ["80:8080"]
depends_on = ["cache"]

[services.environment]
LOG_LEVEL = "{{ index .Env "LOG_LEVEL" | default "info" }}"
`

const starterGitignore = `# Rendered artifacts
build/
`
