package lint

import (
	"fmt"
	"strings"

	"github.com/distribution/reference"
	"github.com/docker/go-connections/nat"
	"github.com/moby/buildkit/frontend/dockerfile/parser"
)

// Dockerfile checks a rendered build manifest.
func Dockerfile(source, text string) []Finding {
	var findings []Finding
	report := func(line int, severity Severity, format string, args ...any) {
		findings = append(findings, Finding{
			Source:   source,
			Line:     line,
			Severity: severity,
			Message:  fmt.Sprintf(format, args...),
		})
	}

	result, err := parser.Parse(strings.NewReader(text))
	if err != nil {
		report(0, SeverityError, "parse: %v", err)
		return findings
	}

	instructions := result.AST.Children
	if len(instructions) == 0 {
		report(0, SeverityError, "no instructions")
		return findings
	}
	if first := instructions[0]; !strings.EqualFold(first.Value, "from") {
		report(first.StartLine, SeverityError, "first instruction is %s, want FROM", strings.ToUpper(first.Value))
	}

	for _, node := range instructions {
		switch strings.ToLower(node.Value) {
		case "from":
			if node.Next == nil {
				continue
			}
			if _, err := reference.ParseNormalizedNamed(node.Next.Value); err != nil {
				report(node.StartLine, SeverityError, "invalid base image %q: %v", node.Next.Value, err)
			}
		case "expose":
			for arg := node.Next; arg != nil; arg = arg.Next {
				_, port := nat.SplitProtoPort(arg.Value)
				if n, err := nat.ParsePort(port); err != nil || n == 0 {
					report(node.StartLine, SeverityError, "invalid EXPOSE port %q", arg.Value)
				}
			}
		case "cmd":
			if !node.Attributes["json"] {
				report(node.StartLine, SeverityWarning, "CMD is not valid exec form and will run through a shell")
			}
		}
	}

	return findings
}
