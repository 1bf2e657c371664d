// Command boxes renders container build manifests and compose documents
// from a Boxfile.
package main

import "github.com/cameronsjo/boxes/internal/cmd"

func main() {
	cmd.Execute()
}
