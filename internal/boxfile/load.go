package boxfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a Boxfile.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// DefaultNames are the file names searched for a Boxfile, in order.
var DefaultNames = []string{"boxes.yml", "boxes.yaml", "boxes.toml"}

// FormatFromPath returns the Format implied by the file extension.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// Options control how a Boxfile is loaded.
type Options struct {
	// ValuesFiles are YAML files merged into .Values, later files winning.
	ValuesFiles []string

	// SecretsFile is a SOPS-encrypted file exposed as .Secrets.
	SecretsFile string

	// Environ is exposed as .Env. Nil means os.Environ().
	Environ []string
}

// Load reads, templates, decodes and validates the Boxfile at path.
func Load(path string, opts Options) (*Boxfile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read boxfile: %w", err)
	}

	values, err := LoadValues(opts.ValuesFiles...)
	if err != nil {
		return nil, err
	}

	var secrets map[string]any
	if opts.SecretsFile != "" {
		secrets, err = DecryptSecrets(opts.SecretsFile)
		if err != nil {
			return nil, err
		}
	}

	environ := opts.Environ
	if environ == nil {
		environ = os.Environ()
	}

	rendered, err := Execute(filepath.Base(path), content, NewTemplateData(values, secrets, environ))
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", path, err)
	}

	bf, err := Parse(rendered, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}
	bf.dir = filepath.Dir(absPath)

	return bf, nil
}

// Parse decodes and validates an already-rendered Boxfile.
func Parse(data []byte, format Format) (*Boxfile, error) {
	doc := make(map[string]any)

	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse toml: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	}

	if err := ValidateSchema(doc); err != nil {
		return nil, err
	}

	var bf Boxfile
	switch format {
	case FormatTOML:
		// TOML floats keep no source text.
		if err := checkTOMLVersions(doc); err != nil {
			return nil, err
		}
		normalized, err := yaml.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("normalize boxfile: %w", err)
		}
		if err := yaml.Unmarshal(normalized, &bf); err != nil {
			return nil, fmt.Errorf("decode boxfile: %w", err)
		}
	default:
		// Scalars decode into string fields with their source text.
		if err := yaml.Unmarshal(data, &bf); err != nil {
			return nil, fmt.Errorf("decode boxfile: %w", err)
		}
	}

	if err := ValidateMeta(&bf); err != nil {
		return nil, err
	}

	return &bf, nil
}

// checkTOMLVersions rejects float values for version and image tags.
func checkTOMLVersions(doc map[string]any) error {
	if v, ok := doc["version"].(float64); ok {
		return fmt.Errorf("%w: version %v must be a quoted string", ErrSchema, v)
	}
	images, _ := doc["images"].([]map[string]any)
	if images == nil {
		if list, ok := doc["images"].([]any); ok {
			for _, item := range list {
				if img, ok := item.(map[string]any); ok {
					images = append(images, img)
				}
			}
		}
	}
	for _, img := range images {
		if v, ok := img["tag"].(float64); ok {
			return fmt.Errorf("%w: image %v: tag %v must be a quoted string", ErrSchema, img["name"], v)
		}
	}
	return nil
}

// Find returns the first of DefaultNames present in dir.
func Find(dir string) (string, error) {
	for _, name := range DefaultNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", fmt.Errorf("no boxfile in %s (looked for %s)", dir, strings.Join(DefaultNames, ", "))
}
