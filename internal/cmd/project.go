package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/cameronsjo/boxes/internal/boxfile"
	"github.com/cameronsjo/boxes/internal/config"
	"github.com/cameronsjo/boxes/internal/lint"
	"github.com/cameronsjo/boxes/internal/ui"
)

var (
	valuesFiles []string
	secretsFile string
)

// addLoadFlags registers the flags that feed the Boxfile template.
func addLoadFlags(flags *pflag.FlagSet) {
	flags.StringSliceVarP(&valuesFiles, "values", "f", nil, "Values file exposed as .Values (repeatable, later files win)")
	flags.StringVarP(&secretsFile, "secrets", "s", "", "SOPS-encrypted file exposed as .Secrets (defaults to BOXES_SECRETS_FILE)")
}

// resolveConfig returns the project Config for an explicit Boxfile
// argument, or by searching upward from the working directory.
func resolveConfig(args []string) (*config.Config, error) {
	if len(args) > 0 {
		return config.ForBoxfile(settings, args[0])
	}
	return config.Load(settings)
}

// loadProject resolves, loads and builds the Boxfile.
func loadProject(args []string) (*config.Config, *boxfile.Project, error) {
	cfg, err := resolveConfig(args)
	if err != nil {
		return nil, nil, err
	}

	secrets := secretsFile
	if secrets == "" {
		secrets = os.Getenv("BOXES_SECRETS_FILE")
	}

	ui.Debug("loading %s", cfg.Boxfile)
	bf, err := boxfile.Load(cfg.Boxfile, boxfile.Options{
		ValuesFiles: valuesFiles,
		SecretsFile: secrets,
		Environ:     os.Environ(),
	})
	if err != nil {
		return nil, nil, err
	}

	project, err := boxfile.Build(bf, cfg.ComposeVersion)
	if err != nil {
		return nil, nil, fmt.Errorf("build %s: %w", relPath(cfg.Boxfile), err)
	}
	ui.Debug("built %d image(s), compose version %s", len(project.ImageNames()), project.Document.Version())

	return cfg, project, nil
}

// artifact is one rendered output file.
type artifact struct {
	name    string
	content string
}

// artifacts renders every image manifest, in declaration order, followed
// by the compose document.
func artifacts(project *boxfile.Project) []artifact {
	var out []artifact
	for _, name := range project.ImageNames() {
		m, _ := project.Image(name)
		out = append(out, artifact{name: lint.DockerfileName(name), content: m.Render() + "\n"})
	}
	out = append(out, artifact{name: lint.ComposeFileName, content: project.Document.Render() + "\n"})
	return out
}

// relPath returns path relative to the working directory when possible.
func relPath(path string) string {
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(wd, path)
	if err != nil {
		return path
	}
	return rel
}
