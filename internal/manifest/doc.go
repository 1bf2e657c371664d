// Package manifest builds single-image build manifests.
//
// A Manifest starts with its base image and grows by chained calls:
//
//	m := manifest.New("alpine").
//		Run("apk update").
//		Workdir("/app").
//		Copy(".", "/app").
//		ExposePort(8080).
//		SetEntryCommand("./web")
//
// Render produces Dockerfile text, one directive per line:
//
//	FROM alpine:latest
//	RUN apk update
//	WORKDIR /app
//	COPY . /app
//	EXPOSE 8080
//	CMD ["./web"]
//
// No input is validated; empty strings and out-of-range ports are
// rendered as given.
package manifest
