package lint

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cameronsjo/boxes/internal/compose"
	"github.com/cameronsjo/boxes/internal/manifest"
)

func stackDocument(version string) *compose.Document {
	db := compose.NewService("db", manifest.NewWithTag("postgres", "17").ExposePort(5432)).
		SetEnv("POSTGRES_DB", "app")
	cache := compose.NewService("cache", manifest.NewWithTag("redis", "7"))
	web := compose.NewService("web", manifest.New("ghcr.io/acme/web")).
		AddPortPair(80, 8080).
		SetEnv("DATABASE_URL", "postgres://db/app").
		DependsOn(db).
		DependsOn(cache)

	return compose.NewDocumentWithVersion(version).
		AddService(db).
		AddService(cache).
		AddService(web)
}

func TestCompose_Clean(t *testing.T) {
	text := stackDocument("3.1").Render()

	findings := Compose(context.Background(), ComposeFileName, text, t.TempDir())
	assert.False(t, HasErrors(findings), "findings: %v", findings)
}

func TestCompose_Findings(t *testing.T) {
	tests := []struct {
		name     string
		doc      func() *compose.Document
		severity Severity
		contains string
	}{
		{
			name:     "old version",
			doc:      func() *compose.Document { return stackDocument("2") },
			severity: SeverityWarning,
			contains: "predates",
		},
		{
			name:     "invalid version",
			doc:      func() *compose.Document { return stackDocument("three") },
			severity: SeverityError,
			contains: "invalid version",
		},
		{
			name: "invalid image",
			doc: func() *compose.Document {
				return compose.NewDocument().AddService(compose.NewService("app", manifest.New("My_App")))
			},
			severity: SeverityError,
			contains: "invalid image",
		},
		{
			name: "invalid port",
			doc: func() *compose.Document {
				return compose.NewDocument().AddService(
					compose.NewService("app", manifest.New("alpine")).AddPortPair(70000, 80))
			},
			severity: SeverityError,
			contains: "invalid port mapping",
		},
		{
			name:     "no services",
			doc:      compose.NewDocument,
			severity: SeverityWarning,
			contains: "no services",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := Compose(context.Background(), ComposeFileName, tt.doc().Render(), t.TempDir())
			require.NotEmpty(t, findings)

			var matched bool
			for _, f := range findings {
				if f.Severity == tt.severity && f.Source == ComposeFileName && contains(f.Message, tt.contains) {
					matched = true
				}
			}
			assert.True(t, matched, "no %s finding containing %q in %v", tt.severity, tt.contains, findings)
		})
	}
}

func TestCompose_ParseError(t *testing.T) {
	findings := Compose(context.Background(), ComposeFileName, "services: [", t.TempDir())
	require.Len(t, findings, 1)
	assert.Equal(t, SeverityError, findings[0].Severity)
}

func TestExpandTabs(t *testing.T) {
	assert.Equal(t, "a:\n  b:\n    c: d\n", expandTabs("a:\n\tb:\n\t\tc: d\n"))
	assert.Equal(t, "x: \"a\tb\"", expandTabs("x: \"a\tb\""))
}

func TestLoaderInput(t *testing.T) {
	t.Run("empty sections", func(t *testing.T) {
		out, err := loaderInput([]byte("services:\n  cache:\n    image: redis:7\n    ports:\n"))
		require.NoError(t, err)
		assert.NotContains(t, string(out), "ports")
		assert.Contains(t, string(out), "image: redis:7")
	})

	t.Run("checked attributes", func(t *testing.T) {
		in := "version: \"3.1\"\nservices:\n  web:\n    image: nginx\n    depends_on:\n      - web\n"
		out, err := loaderInput([]byte(in))
		require.NoError(t, err)
		assert.NotContains(t, string(out), "version")
		assert.NotContains(t, string(out), "depends_on")
		assert.Contains(t, string(out), "image: nginx")
	})
}

func TestCompose_DependencyProblemsAreNotErrors(t *testing.T) {
	a := compose.NewService("a", manifest.New("alpine"))
	b := compose.NewService("b", manifest.New("alpine"))
	self := compose.NewService("s", manifest.New("alpine"))
	outside := compose.NewService("ext", manifest.New("alpine"))
	a.DependsOn(b)
	b.DependsOn(a)
	self.DependsOn(self)
	self.DependsOn(outside)

	doc := compose.NewDocument().AddService(a).AddService(b).AddService(self)

	findings := Compose(context.Background(), ComposeFileName, doc.Render(), t.TempDir())
	assert.False(t, HasErrors(findings), "findings: %v", findings)
}
