package compose

import (
	"maps"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/cameronsjo/boxes/internal/directive"
	"github.com/cameronsjo/boxes/internal/manifest"
)

// Indent is the indentation unit for one nesting level.
const Indent = "\t"

// PortPair maps a host port to a container port.
type PortPair struct {
	Host      int
	Container int
}

// String returns the pair as host:container.
func (p PortPair) String() string {
	return strconv.Itoa(p.Host) + ":" + strconv.Itoa(p.Container)
}

// EnvPair is one environment override.
type EnvPair struct {
	Key   string
	Value string
}

// Service is a named reference to a manifest plus orchestration settings.
// The manifest is shared, not owned.
type Service struct {
	name     string
	manifest *manifest.Manifest
	ports    []PortPair
	env      *directive.Env
	depends  []*Service

	finalize sync.Once
}

// NewService returns a Service named name that runs m.
func NewService(name string, m *manifest.Manifest) *Service {
	return &Service{
		name:     name,
		manifest: m,
		env:      directive.NewEnv(),
	}
}

// Name returns the service name.
func (s *Service) Name() string {
	return s.name
}

// Manifest returns the referenced manifest.
func (s *Service) Manifest() *manifest.Manifest {
	return s.manifest
}

// Ports returns a copy of the port mappings.
func (s *Service) Ports() []PortPair {
	return slices.Clone(s.ports)
}

// Env returns the environment overrides in insertion order.
func (s *Service) Env() []EnvPair {
	keys := s.env.Keys()
	pairs := make([]EnvPair, len(keys))
	for i, key := range keys {
		value, _ := s.env.Get(key)
		pairs[i] = EnvPair{Key: key, Value: value}
	}
	return pairs
}

// Dependencies returns a copy of the declared dependencies.
func (s *Service) Dependencies() []*Service {
	return slices.Clone(s.depends)
}

// SetEnv sets an environment override. Setting an existing key replaces
// the value and keeps the key's position.
func (s *Service) SetEnv(key, value string) *Service {
	s.env.Add(key, value)
	return s
}

// SetEnvs applies SetEnv for every entry of envs, in sorted key order.
func (s *Service) SetEnvs(envs map[string]string) *Service {
	for _, key := range slices.Sorted(maps.Keys(envs)) {
		s.env.Add(key, envs[key])
	}
	return s
}

// AddPortPair appends a host:container mapping. Duplicates are kept.
func (s *Service) AddPortPair(host, container int) *Service {
	s.ports = append(s.ports, PortPair{Host: host, Container: container})
	return s
}

// AddPort appends a mapping with equal host and container ports.
func (s *Service) AddPort(port int) *Service {
	return s.AddPortPair(port, port)
}

// DependsOn declares that s starts after other. Cycles are not checked.
func (s *Service) DependsOn(other *Service) *Service {
	s.depends = append(s.depends, other)
	return s
}

// Finalize fills an empty port list from the manifest's exposed ports.
// Only the first call has an effect.
func (s *Service) Finalize() {
	s.finalize.Do(func() {
		if len(s.ports) > 0 {
			return
		}
		for _, p := range s.manifest.Ports() {
			s.ports = append(s.ports, PortPair{Host: p.Port, Container: p.Port})
		}
	})
}

// Render finalizes the service and returns its document block.
func (s *Service) Render() string {
	s.Finalize()

	header := indent(1)
	field := indent(2)
	item := indent(3)

	lines := []string{
		header + s.name + ":",
		field + "image: " + s.manifest.Base().Reference(),
		field + "ports:",
	}
	for _, p := range s.ports {
		lines = append(lines, item+`- "`+p.String()+`"`)
	}

	if s.env.Len() > 0 {
		lines = append(lines, field+"environment:")
		for _, kv := range s.Env() {
			lines = append(lines, item+kv.Key+": "+kv.Value)
		}
	}

	if len(s.depends) > 0 {
		lines = append(lines, field+"depends_on:")
		for _, dep := range s.depends {
			lines = append(lines, item+"- "+dep.name)
		}
	}

	return strings.Join(lines, "\n")
}

func indent(level int) string {
	return strings.Repeat(Indent, level)
}
