// Package lint checks rendered build manifests and composition documents
// against the tools that consume them.
//
// The builders in manifest and compose render whatever they are given.
// Lint is the separate step that reports what a downstream builder or
// orchestrator would reject: a malformed image reference, an EXPOSE port
// out of range, a port mapping compose cannot parse, a dependency cycle.
// Lint only reads; it never changes or rejects the model.
package lint
