package lint

import (
	"context"
	"fmt"
	"strings"

	"github.com/compose-spec/compose-go/v2/loader"
	"github.com/compose-spec/compose-go/v2/types"
	"github.com/distribution/reference"
	"github.com/docker/go-connections/nat"
	"github.com/hashicorp/go-version"
	"gopkg.in/yaml.v3"
)

// ProjectName is the compose project name used when loading documents.
const ProjectName = "boxes"

var minComposeVersion = version.Must(version.NewVersion("3"))

type composeFile struct {
	Version  string                    `yaml:"version"`
	Services map[string]composeService `yaml:"services"`
}

type composeService struct {
	Image     string   `yaml:"image"`
	Ports     []string `yaml:"ports"`
	DependsOn []string `yaml:"depends_on"`
}

// Compose checks a rendered composition document. workingDir is the
// directory relative paths in the document resolve against.
func Compose(ctx context.Context, source, text, workingDir string) []Finding {
	var findings []Finding
	report := func(line int, severity Severity, format string, args ...any) {
		findings = append(findings, Finding{
			Source:   source,
			Line:     line,
			Severity: severity,
			Message:  fmt.Sprintf(format, args...),
		})
	}

	// Rendered documents indent with tabs, which YAML forbids.
	normalized := expandTabs(text)

	var doc composeFile
	if err := yaml.Unmarshal([]byte(normalized), &doc); err != nil {
		report(0, SeverityError, "parse: %v", err)
		return findings
	}

	if doc.Version != "" {
		v, err := version.NewVersion(doc.Version)
		switch {
		case err != nil:
			report(lineOf(text, "version:"), SeverityError, "invalid version %q", doc.Version)
		case v.LessThan(minComposeVersion):
			report(lineOf(text, "version:"), SeverityWarning, "version %s predates the 3.x file format", doc.Version)
		}
	}

	if len(doc.Services) == 0 {
		report(0, SeverityWarning, "no services")
		return findings
	}

	for _, name := range sortedKeys(doc.Services) {
		svc := doc.Services[name]
		if svc.Image == "" {
			report(lineOf(text, name+":"), SeverityError, "service %s has no image", name)
		} else if _, err := reference.ParseNormalizedNamed(svc.Image); err != nil {
			report(lineOf(text, "image: "+svc.Image), SeverityError, "service %s: invalid image %q: %v", name, svc.Image, err)
		}
		for _, p := range svc.Ports {
			if _, err := nat.ParsePortSpec(p); err != nil {
				report(lineOf(text, p), SeverityError, "service %s: invalid port mapping %q: %v", name, p, err)
			}
		}
	}

	if HasErrors(findings) {
		return findings
	}

	content, err := loaderInput([]byte(normalized))
	if err != nil {
		report(0, SeverityError, "parse: %v", err)
		return findings
	}

	_, err = loader.LoadWithContext(ctx, types.ConfigDetails{
		WorkingDir: workingDir,
		ConfigFiles: []types.ConfigFile{
			{Filename: source, Content: content},
		},
		Environment: types.Mapping{},
	}, func(o *loader.Options) {
		o.SetProjectName(ProjectName, true)
	})
	if err != nil {
		report(0, SeverityError, "compose: %v", err)
	}

	return findings
}

// loaderInput prepares a document for the compose loader. Attributes
// Compose and Dependencies already checked are removed: version, which the
// loader only warns about, and depends_on, whose cycles and dangling
// references are warnings here but loader errors. Service keys with null
// values are dropped too. A header with no children, such as "ports:" on
// a service without mappings, renders as null and the loader's schema
// wants a list.
func loaderInput(content []byte) ([]byte, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return nil, err
	}
	delete(raw, "version")
	services, _ := raw["services"].(map[string]any)
	for _, v := range services {
		svc, ok := v.(map[string]any)
		if !ok {
			continue
		}
		delete(svc, "depends_on")
		for key, value := range svc {
			if value == nil {
				delete(svc, key)
			}
		}
	}
	return yaml.Marshal(raw)
}

// expandTabs replaces each leading tab with two spaces.
func expandTabs(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, "\t")
		if n := len(line) - len(trimmed); n > 0 {
			lines[i] = strings.Repeat("  ", n) + trimmed
		}
	}
	return strings.Join(lines, "\n")
}
