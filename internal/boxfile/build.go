package boxfile

import (
	"errors"
	"fmt"
	"maps"
	"path/filepath"
	"slices"

	"github.com/joho/godotenv"

	"github.com/cameronsjo/boxes/internal/compose"
	"github.com/cameronsjo/boxes/internal/manifest"
)

// Build errors.
var (
	// ErrDuplicateName indicates two images or two services share a name.
	ErrDuplicateName = errors.New("duplicate name")

	// ErrUnknownImage indicates a service references an undeclared image.
	ErrUnknownImage = errors.New("unknown image")

	// ErrUnknownService indicates a dependency on an undeclared service.
	ErrUnknownService = errors.New("unknown service")

	// ErrInvalidStep indicates a step with zero or several directives.
	ErrInvalidStep = errors.New("invalid step")
)

// Project is a built Boxfile: named manifests plus the composition.
type Project struct {
	names    []string
	images   map[string]*manifest.Manifest
	Document *compose.Document
}

// ImageNames returns image names in declaration order.
func (p *Project) ImageNames() []string {
	return slices.Clone(p.names)
}

// Image returns the manifest for name.
func (p *Project) Image(name string) (*manifest.Manifest, bool) {
	m, ok := p.images[name]
	return m, ok
}

// Build turns a Boxfile into a Project. defaultVersion is used when the
// Boxfile does not set a version; an empty defaultVersion falls back to
// compose.DefaultVersion.
func Build(bf *Boxfile, defaultVersion string) (*Project, error) {
	project := &Project{images: make(map[string]*manifest.Manifest)}

	for _, img := range bf.Images {
		if _, exists := project.images[img.Name]; exists {
			return nil, fmt.Errorf("%w: image %s", ErrDuplicateName, img.Name)
		}
		m, err := buildImage(img)
		if err != nil {
			return nil, fmt.Errorf("image %s: %w", img.Name, err)
		}
		project.names = append(project.names, img.Name)
		project.images[img.Name] = m
	}

	version := bf.Version
	if version == "" {
		version = defaultVersion
	}
	if version == "" {
		version = compose.DefaultVersion
	}
	project.Document = compose.NewDocumentWithVersion(version)

	services := make(map[string]*compose.Service, len(bf.Services))
	for _, def := range bf.Services {
		if _, exists := services[def.Name]; exists {
			return nil, fmt.Errorf("%w: service %s", ErrDuplicateName, def.Name)
		}
		svc, err := buildService(def, project, bf.dir)
		if err != nil {
			return nil, fmt.Errorf("service %s: %w", def.Name, err)
		}
		services[def.Name] = svc
		project.Document.AddService(svc)
	}

	// Dependencies resolve after every service exists so that forward
	// references and cycles both work.
	for _, def := range bf.Services {
		for _, dep := range def.DependsOn {
			target, ok := services[dep]
			if !ok {
				return nil, fmt.Errorf("service %s: %w: %s", def.Name, ErrUnknownService, dep)
			}
			services[def.Name].DependsOn(target)
		}
	}

	return project, nil
}

func buildImage(img Image) (*manifest.Manifest, error) {
	m := manifest.New(img.From)
	if img.Tag != "" {
		m = manifest.NewWithTag(img.From, img.Tag)
	}

	for i, step := range img.Steps {
		if n := step.count(); n != 1 {
			return nil, fmt.Errorf("%w: step %d sets %d directives", ErrInvalidStep, i+1, n)
		}

		switch {
		case step.Run != nil:
			m.Run(*step.Run)
		case step.Copy != nil:
			m.Copy(step.Copy.Src, step.Copy.Dest)
		case step.Add != nil:
			m.Add(step.Add.Src, step.Add.Dest)
		case step.Workdir != nil:
			m.Workdir(*step.Workdir)
		case step.User != nil:
			m.User(*step.User)
		case step.Env != nil:
			for _, key := range slices.Sorted(maps.Keys(step.Env)) {
				m.SetEnv(key, step.Env[key])
			}
		case step.Expose != nil:
			m.ExposePort(*step.Expose)
		case step.Cmd != nil:
			m.SetEntryCommand(step.Cmd...)
		}
	}

	return m, nil
}

func buildService(def Service, project *Project, dir string) (*compose.Service, error) {
	m, ok := project.images[def.Image]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownImage, def.Image)
	}
	svc := compose.NewService(def.Name, m)

	pairs, err := ParsePorts(def.Ports)
	if err != nil {
		return nil, err
	}
	for _, p := range pairs {
		svc.AddPortPair(p.Host, p.Container)
	}

	if len(def.EnvFile) > 0 {
		paths := make([]string, len(def.EnvFile))
		for i, p := range def.EnvFile {
			if !filepath.IsAbs(p) && dir != "" {
				p = filepath.Join(dir, p)
			}
			paths[i] = p
		}
		env, err := godotenv.Read(paths...)
		if err != nil {
			return nil, fmt.Errorf("read env_file: %w", err)
		}
		svc.SetEnvs(env)
	}
	svc.SetEnvs(def.Environment)

	return svc, nil
}

func (s Step) count() int {
	n := 0
	for _, set := range []bool{
		s.Run != nil,
		s.Copy != nil,
		s.Add != nil,
		s.Workdir != nil,
		s.User != nil,
		s.Env != nil,
		s.Expose != nil,
		s.Cmd != nil,
	} {
		if set {
			n++
		}
	}
	return n
}
