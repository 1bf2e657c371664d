// Package directive models the instructions of a build manifest.
//
// A Directive is one self-rendering instruction. The set of variants is
// closed: only the types in this package implement Directive.
//
//	FROM alpine:latest
//	RUN apk update
//	ENV PORT=8080
//	CMD ["./web"]
//
// Rendering never escapes, validates, or normalizes caller-supplied text.
package directive
