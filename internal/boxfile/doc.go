// Package boxfile loads declarative stack definitions into the build and
// composition model.
//
// A Boxfile lists images and the services that run them:
//
//	apiVersion: boxes.io/v1
//	kind: Stack
//	images:
//	  - name: web
//	    from: alpine
//	    steps:
//	      - run: apk add --no-cache curl
//	      - expose: 8080
//	      - cmd: ["./web"]
//	services:
//	  - name: web
//	    image: web
//	    ports: ["80:8080"]
//
// # Loading
//
// The file is first executed as a Go template with sprig functions. The
// template sees .Values (merged --values files), .Secrets (a SOPS file)
// and .Env (the process environment). The result is decoded as YAML, or
// TOML for .toml files, validated against an embedded JSON schema, and
// finally built into a Project.
//
// Validation here belongs to the loader only. The manifest and compose
// packages accept anything they are given.
package boxfile
