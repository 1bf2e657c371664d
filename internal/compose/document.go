package compose

import "strings"

// DefaultVersion is the format version used by NewDocument.
const DefaultVersion = "3.1"

// Document is an ordered collection of services under a format version.
type Document struct {
	version  string
	services []*Service
}

// NewDocument returns an empty Document with DefaultVersion.
func NewDocument() *Document {
	return NewDocumentWithVersion(DefaultVersion)
}

// NewDocumentWithVersion returns an empty Document with the given version.
func NewDocumentWithVersion(version string) *Document {
	return &Document{version: version}
}

// Version returns the format version.
func (d *Document) Version() string {
	return d.version
}

// Services returns a copy of the services in append order.
func (d *Document) Services() []*Service {
	return append([]*Service(nil), d.services...)
}

// AddService appends s.
func (d *Document) AddService(s *Service) *Document {
	d.services = append(d.services, s)
	return d
}

// Finalize finalizes every service.
func (d *Document) Finalize() {
	for _, s := range d.services {
		s.Finalize()
	}
}

// Render finalizes the document and returns its text.
func (d *Document) Render() string {
	d.Finalize()

	lines := []string{
		`version: "` + d.version + `"`,
		"services:",
	}
	for _, s := range d.services {
		lines = append(lines, s.Render())
	}
	return strings.Join(lines, "\n")
}
