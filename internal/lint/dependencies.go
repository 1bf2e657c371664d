package lint

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/cameronsjo/boxes/internal/compose"
)

// Dependencies checks the dependency graph of doc. The model accepts
// self-references and cycles; orchestrators do not.
func Dependencies(source string, doc *compose.Document) []Finding {
	var findings []Finding
	report := func(format string, args ...any) {
		findings = append(findings, Finding{
			Source:   source,
			Severity: SeverityWarning,
			Message:  fmt.Sprintf(format, args...),
		})
	}

	services := doc.Services()
	inDoc := make(map[*compose.Service]bool, len(services))
	for _, s := range services {
		inDoc[s] = true
	}

	for _, s := range services {
		for _, dep := range s.Dependencies() {
			switch {
			case dep == s:
				report("service %s depends on itself", s.Name())
			case !inDoc[dep]:
				report("service %s depends on %s, which is not in the document", s.Name(), dep.Name())
			}
		}
	}

	for _, cycle := range cycles(services, inDoc) {
		names := make([]string, len(cycle))
		for i, s := range cycle {
			names[i] = s.Name()
		}
		report("dependency cycle between %s", strings.Join(names, ", "))
	}

	return findings
}

// cycles returns the strongly connected components with more than one
// service, each listed in document order.
func cycles(services []*compose.Service, inDoc map[*compose.Service]bool) [][]*compose.Service {
	order := make(map[*compose.Service]int, len(services))
	for i, s := range services {
		order[s] = i
	}

	var (
		index   = make(map[*compose.Service]int)
		low     = make(map[*compose.Service]int)
		onStack = make(map[*compose.Service]bool)
		stack   []*compose.Service
		next    int
		result  [][]*compose.Service
	)

	var visit func(s *compose.Service)
	visit = func(s *compose.Service) {
		index[s] = next
		low[s] = next
		next++
		stack = append(stack, s)
		onStack[s] = true

		for _, dep := range s.Dependencies() {
			if !inDoc[dep] {
				continue
			}
			if _, seen := index[dep]; !seen {
				visit(dep)
				low[s] = min(low[s], low[dep])
			} else if onStack[dep] {
				low[s] = min(low[s], index[dep])
			}
		}

		if low[s] != index[s] {
			return
		}
		var component []*compose.Service
		for {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			onStack[top] = false
			component = append(component, top)
			if top == s {
				break
			}
		}
		if len(component) > 1 {
			slices.SortFunc(component, func(a, b *compose.Service) int {
				return order[a] - order[b]
			})
			result = append(result, component)
		}
	}

	for _, s := range services {
		if _, seen := index[s]; !seen {
			visit(s)
		}
	}

	slices.SortFunc(result, func(a, b []*compose.Service) int {
		return order[a[0]] - order[b[0]]
	})
	return result
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
