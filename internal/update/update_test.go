package update

import (
	"fmt"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetPlatformInfo(t *testing.T) {
	assert.Equal(t, fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH), GetPlatformInfo())
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name      string
		changelog string
		max       int
		want      []string
		rest      int
	}{
		{"empty", "", 10, nil, 0},
		{"short", "a\nb\n", 10, []string{"a", "b"}, 0},
		{"exact", "a\nb", 2, []string{"a", "b"}, 0},
		{"truncated", "a\nb\nc\nd", 2, []string{"a", "b"}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, rest := Summarize(tt.changelog, tt.max)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.rest, rest)
		})
	}
}
