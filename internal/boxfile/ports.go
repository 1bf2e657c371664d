package boxfile

import (
	"fmt"
	"strconv"

	"github.com/docker/go-connections/nat"

	"github.com/cameronsjo/boxes/internal/compose"
)

// ParsePorts converts port specs into port pairs. A spec without a host
// port maps the container port to itself. Ranges expand to one pair per
// port. Host IPs and protocols are accepted but not kept.
func ParsePorts(specs []string) ([]compose.PortPair, error) {
	var pairs []compose.PortPair

	for _, spec := range specs {
		mappings, err := nat.ParsePortSpec(spec)
		if err != nil {
			return nil, fmt.Errorf("parse port %q: %w", spec, err)
		}

		for _, mapping := range mappings {
			container := mapping.Port.Int()
			host := container
			if mapping.Binding.HostPort != "" {
				host, err = strconv.Atoi(mapping.Binding.HostPort)
				if err != nil {
					return nil, fmt.Errorf("parse host port %q: %w", spec, err)
				}
			}
			pairs = append(pairs, compose.PortPair{Host: host, Container: container})
		}
	}

	return pairs, nil
}
