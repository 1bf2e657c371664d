package compose

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cameronsjo/boxes/internal/manifest"
)

var update = flag.Bool("update", false, "update golden files")

func TestDocument_Empty(t *testing.T) {
	doc := NewDocument()

	assert.Equal(t, "version: \"3.1\"\nservices:", doc.Render())
	assert.Equal(t, DefaultVersion, doc.Version())
	assert.Empty(t, doc.Services())
}

func TestDocument_CustomVersion(t *testing.T) {
	doc := NewDocumentWithVersion("3.8")
	assert.True(t, strings.HasPrefix(doc.Render(), "version: \"3.8\"\n"))
}

func TestDocument_EndToEnd(t *testing.T) {
	m := manifest.New("alpine").Run("apk update").ExposePort(8080)
	doc := NewDocument().AddService(NewService("web", m))

	want := strings.Join([]string{
		`version: "3.1"`,
		"services:",
		"\tweb:",
		"\t\timage: alpine:latest",
		"\t\tports:",
		"\t\t\t- \"8080:8080\"",
	}, "\n")
	assert.Equal(t, want, doc.Render())
}

func TestDocument_ServicesInAppendOrder(t *testing.T) {
	doc := NewDocument().
		AddService(NewService("zeta", manifest.New("alpine"))).
		AddService(NewService("alpha", manifest.New("alpine")))

	rendered := doc.Render()
	assert.Less(t, strings.Index(rendered, "\tzeta:"), strings.Index(rendered, "\talpha:"))

	names := make([]string, 0, 2)
	for _, s := range doc.Services() {
		names = append(names, s.Name())
	}
	assert.Equal(t, []string{"zeta", "alpha"}, names)
}

func TestDocument_RenderIdempotent(t *testing.T) {
	db := NewService("db", manifest.New("postgres").ExposePort(5432))
	web := NewService("web", manifest.New("alpine").ExposePort(80)).DependsOn(db)
	doc := NewDocument().AddService(db).AddService(web)

	first := doc.Render()
	second := doc.Render()

	assert.Equal(t, first, second)
	assert.Equal(t, []PortPair{{5432, 5432}}, db.Ports())
}

func TestDocument_Finalize(t *testing.T) {
	svc := NewService("web", manifest.New("alpine").ExposePort(80))
	doc := NewDocument().AddService(svc)

	doc.Finalize()

	assert.Equal(t, []PortPair{{80, 80}}, svc.Ports())
}

func TestGoldenFile_Stack(t *testing.T) {
	db := NewService("db", manifest.NewWithTag("postgres", "17").ExposePort(5432)).
		SetEnv("POSTGRES_DB", "app")
	cache := NewService("cache", manifest.NewWithTag("redis", "7"))
	web := NewService("web", manifest.New("ghcr.io/acme/web").ExposePort(8080)).
		AddPortPair(80, 8080).
		AddPortPair(443, 8443).
		SetEnvs(map[string]string{"DATABASE_URL": "postgres://db/app", "REDIS_URL": "redis://cache"}).
		DependsOn(db).
		DependsOn(cache)

	doc := NewDocument().AddService(db).AddService(cache).AddService(web)

	assertGolden(t, "stack.compose.golden", doc.Render())
}

func assertGolden(t *testing.T, name, got string) {
	t.Helper()
	goldenPath := filepath.Join("testdata", name)

	if *update {
		require.NoError(t, os.MkdirAll(filepath.Dir(goldenPath), 0755))
		require.NoError(t, os.WriteFile(goldenPath, []byte(got+"\n"), 0644))
	}

	want, err := os.ReadFile(goldenPath)
	require.NoError(t, err)
	assert.Equal(t, strings.TrimSuffix(string(want), "\n"), got)
}
