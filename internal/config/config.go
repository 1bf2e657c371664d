// Package config handles project discovery and configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/cameronsjo/boxes/internal/boxfile"
)

// Settings keys.
const (
	KeyOutputDir      = "output_dir"
	KeyComposeVersion = "compose_version"
	KeyNoColor        = "no_color"
)

const (
	// DefaultOutputDir is where rendered artifacts go, relative to the root.
	DefaultOutputDir = "build"

	// EnvPrefix prefixes environment overrides, e.g. BOXES_OUTPUT_DIR.
	EnvPrefix = "BOXES"

	// FileName is the settings file looked up in the project root and $HOME.
	FileName = ".boxes"
)

// ErrNoProject indicates no Boxfile was found walking up from a directory.
var ErrNoProject = errors.New("project root not found")

// Config holds the boxes project configuration.
type Config struct {
	// Root is the project root directory (contains the Boxfile).
	Root string

	// Boxfile is the path to the project's Boxfile.
	Boxfile string

	// OutputDir is the absolute path rendered artifacts are written to.
	OutputDir string

	// ComposeVersion is the document version used when the Boxfile sets none.
	ComposeVersion string

	// NoColor disables colored output.
	NoColor bool
}

// FindRoot searches upward from the current directory to find the project root.
func FindRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return FindRootFrom(dir)
}

// FindRootFrom searches upward from dir for a directory containing one of
// boxfile.DefaultNames.
func FindRootFrom(dir string) (string, error) {
	for {
		if _, err := boxfile.Find(dir); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("%w (no %s)", ErrNoProject, strings.Join(boxfile.DefaultNames, ", "))
}

// NewViper returns a viper instance that reads .boxes.yaml from root and
// then $HOME, with BOXES_ environment overrides and defaults applied.
func NewViper(root string) *viper.Viper {
	v := viper.New()

	v.SetDefault(KeyOutputDir, DefaultOutputDir)
	v.SetDefault(KeyComposeVersion, "")
	v.SetDefault(KeyNoColor, false)

	v.SetConfigName(FileName)
	v.SetConfigType("yaml")
	if root != "" {
		v.AddConfigPath(root)
	}
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	return v
}

// ReadSettings reads the settings file if one exists. A missing file is
// not an error.
func ReadSettings(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read settings: %w", err)
	}
	return nil
}

// Load finds the project root from the current directory and returns a Config.
func Load(v *viper.Viper) (*Config, error) {
	root, err := FindRoot()
	if err != nil {
		return nil, err
	}
	return LoadFrom(v, root)
}

// LoadFrom builds a Config for the project rooted at root. Settings come
// from v, which should already have been read with ReadSettings.
func LoadFrom(v *viper.Viper, root string) (*Config, error) {
	path, err := boxfile.Find(root)
	if err != nil {
		return nil, err
	}
	return newConfig(v, root, path), nil
}

// ForBoxfile builds a Config for an explicit Boxfile path. The project
// root is the directory containing it.
func ForBoxfile(v *viper.Viper, path string) (*Config, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat boxfile: %w", err)
	}
	if info.IsDir() {
		return LoadFrom(v, abs)
	}

	return newConfig(v, filepath.Dir(abs), abs), nil
}

func newConfig(v *viper.Viper, root, path string) *Config {
	outputDir := v.GetString(KeyOutputDir)
	if outputDir == "" {
		outputDir = DefaultOutputDir
	}
	if !filepath.IsAbs(outputDir) {
		outputDir = filepath.Join(root, outputDir)
	}

	return &Config{
		Root:           root,
		Boxfile:        path,
		OutputDir:      outputDir,
		ComposeVersion: v.GetString(KeyComposeVersion),
		NoColor:        v.GetBool(KeyNoColor),
	}
}
