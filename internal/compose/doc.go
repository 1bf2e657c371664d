// Package compose aggregates build manifests into a multi-service
// orchestration document.
//
// A Service wraps one manifest.Manifest under a name and adds port
// mappings, environment overrides, and declared dependencies. A Document
// collects services under a format version:
//
//	version: "3.1"
//	services:
//		web:
//			image: alpine:latest
//			ports:
//				- "8080:8080"
//			depends_on:
//				- db
//
// Each nesting level is indented by one Indent unit.
//
// # Finalize
//
// A service with no explicit port mappings takes the ports exposed by its
// manifest, host equal to container. That substitution happens once, in
// Finalize, which Render calls first. Finalize is safe to call any number
// of times. Rendering the same Document from several goroutines while it
// is still being built is not supported without external locking.
package compose
