package lint

import (
	"fmt"
	"strings"
)

// Severity ranks a Finding.
type Severity int

const (
	// SeverityWarning marks output a consumer accepts but likely misbehaves on.
	SeverityWarning Severity = iota
	// SeverityError marks output a consumer rejects.
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	default:
		return "warning"
	}
}

// Finding is one problem found in rendered text.
type Finding struct {
	// Source names the artifact, e.g. "web.Dockerfile".
	Source string
	// Line is 1-based; 0 when the problem is not tied to a line.
	Line     int
	Severity Severity
	Message  string
}

func (f Finding) String() string {
	if f.Line > 0 {
		return fmt.Sprintf("%s:%d: %s: %s", f.Source, f.Line, f.Severity, f.Message)
	}
	return fmt.Sprintf("%s: %s: %s", f.Source, f.Severity, f.Message)
}

// HasErrors reports whether any finding has SeverityError.
func HasErrors(findings []Finding) bool {
	for _, f := range findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

// lineOf returns the 1-based line of the first line containing needle, or 0.
func lineOf(text, needle string) int {
	for i, line := range strings.Split(text, "\n") {
		if strings.Contains(line, needle) {
			return i + 1
		}
	}
	return 0
}
