package manifest

import (
	"strings"

	"github.com/cameronsjo/boxes/internal/directive"
)

// Manifest is an ordered, append-only sequence of directives describing
// one image. The first directive is always the base image.
//
// Ports added with ExposePort are recorded twice: as directives in the
// main sequence and on a side list that compose.Service falls back to
// when it has no explicit port mappings.
type Manifest struct {
	base       directive.BaseImage
	directives []directive.Directive
	ports      []directive.ExposePort
}

// New returns a Manifest based on repository with the default tag.
func New(repository string) *Manifest {
	return FromBase(directive.NewBaseImage(repository))
}

// NewWithTag returns a Manifest based on repository:tag.
func NewWithTag(repository, tag string) *Manifest {
	return FromBase(directive.BaseImage{Repository: repository, Tag: tag})
}

// FromBase returns a Manifest whose first directive is base.
func FromBase(base directive.BaseImage) *Manifest {
	return &Manifest{
		base:       base,
		directives: []directive.Directive{base},
	}
}

// Base returns the base image directive.
func (m *Manifest) Base() directive.BaseImage {
	return m.base
}

// Directives returns a copy of the directive sequence, base image first.
func (m *Manifest) Directives() []directive.Directive {
	return append([]directive.Directive(nil), m.directives...)
}

// Ports returns a copy of the ports recorded by ExposePort, in call order.
func (m *Manifest) Ports() []directive.ExposePort {
	return append([]directive.ExposePort(nil), m.ports...)
}

// SetEnv appends a new single-key ENV directive. Earlier ENV directives
// are never merged into, so setting the same key twice emits two lines.
func (m *Manifest) SetEnv(key, value string) *Manifest {
	return m.append(directive.NewEnv().Add(key, value))
}

// SetEntryCommand appends a CMD directive built from args.
func (m *Manifest) SetEntryCommand(args ...string) *Manifest {
	return m.append(directive.NewEntryCommand(args...))
}

// Run appends a RUN directive.
func (m *Manifest) Run(command string) *Manifest {
	return m.append(directive.RunCommand{Command: command})
}

// Copy appends a COPY directive.
func (m *Manifest) Copy(source, dest string) *Manifest {
	return m.append(directive.CopyFile{Source: source, Dest: dest})
}

// Add appends an ADD directive.
func (m *Manifest) Add(source, dest string) *Manifest {
	return m.append(directive.AddFile{Source: source, Dest: dest})
}

// User appends a USER directive.
func (m *Manifest) User(user string) *Manifest {
	return m.append(directive.SetUser{User: user})
}

// Workdir appends a WORKDIR directive.
func (m *Manifest) Workdir(dir string) *Manifest {
	return m.append(directive.SetWorkdir{Dir: dir})
}

// ExposePort appends an EXPOSE directive and records the port.
func (m *Manifest) ExposePort(port int) *Manifest {
	expose := directive.ExposePort{Port: port}
	m.ports = append(m.ports, expose)
	return m.append(expose)
}

// Render returns every directive rendered in append order, joined by
// newlines.
func (m *Manifest) Render() string {
	lines := make([]string, len(m.directives))
	for i, d := range m.directives {
		lines[i] = d.Render()
	}
	return strings.Join(lines, "\n")
}

func (m *Manifest) append(d directive.Directive) *Manifest {
	m.directives = append(m.directives, d)
	return m
}
