package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every flag under c to its default so values set by
// one execution never leak into the next.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// executeCmd executes the root command with the given args and returns
// stdout and stderr combined.
func executeCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	err := executeWith(t, buf, buf, args...)
	return buf.String(), err
}

// executeCmdStreams executes the root command with the given args and
// returns stdout and stderr separately.
func executeCmdStreams(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	err := executeWith(t, stdout, stderr, args...)
	return stdout.String(), stderr.String(), err
}

// executeWith resets command state and executes the root command.
func executeWith(t *testing.T, stdout, stderr io.Writer, args ...string) error {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	resetFlags(rootCmd)

	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	return rootCmd.Execute()
}

// writeBoxfile writes content as name in a fresh directory and returns its path.
func writeBoxfile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const testBoxfile = `apiVersion: boxes.io/v1
kind: Stack
images:
  - name: web
    from: alpine
    tag: "{{ index .Values "tag" | default "3.20" }}"
    steps:
      - run: apk add --no-cache ca-certificates
      - expose: 8080
      - cmd: ["./web"]
  - name: db
    from: postgres
    tag: "17"
    steps:
      - expose: 5432
services:
  - name: db
    image: db
  - name: web
    image: web
    ports: ["80:8080"]
    depends_on: [db]
`

const testValues = "tag: \"3.19\"\n"
