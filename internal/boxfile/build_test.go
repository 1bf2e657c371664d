package boxfile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cameronsjo/boxes/internal/compose"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestBuild_Stack(t *testing.T) {
	bf, err := Parse([]byte(stackYAML), FormatYAML)
	require.NoError(t, err)

	project, err := Build(bf, "")
	require.NoError(t, err)

	assert.Equal(t, []string{"web", "db"}, project.ImageNames())

	web, ok := project.Image("web")
	require.True(t, ok)
	assert.Equal(t, strings.Join([]string{
		"FROM alpine:latest",
		"RUN apk update",
		"WORKDIR /app",
		"COPY . /app",
		"ENV MODE=prod",
		"ENV PORT=8080",
		"EXPOSE 8080",
		`CMD ["./web", "--port", "8080"]`,
	}, "\n"), web.Render())

	assert.Equal(t, strings.Join([]string{
		`version: "3.1"`,
		"services:",
		"\tdb:",
		"\t\timage: postgres:17",
		"\t\tports:",
		"\t\t\t- \"5432:5432\"",
		"\tweb:",
		"\t\timage: alpine:latest",
		"\t\tports:",
		"\t\t\t- \"80:8080\"",
		"\t\tenvironment:",
		"\t\t\tLOG: debug",
		"\t\tdepends_on:",
		"\t\t\t- db",
	}, "\n"), project.Document.Render())
}

func TestBuild_Version(t *testing.T) {
	tests := []struct {
		name           string
		fileVersion    string
		defaultVersion string
		want           string
	}{
		{"fallback", "", "", compose.DefaultVersion},
		{"configured default", "", "3.9", "3.9"},
		{"boxfile wins", "3.8", "3.9", "3.8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			project, err := Build(&Boxfile{Version: tt.fileVersion}, tt.defaultVersion)
			require.NoError(t, err)
			assert.Equal(t, tt.want, project.Document.Version())
		})
	}
}

func TestBuild_Errors(t *testing.T) {
	alpine := Image{Name: "web", From: "alpine"}

	tests := []struct {
		name    string
		bf      *Boxfile
		wantErr error
	}{
		{
			name:    "duplicate image",
			bf:      &Boxfile{Images: []Image{alpine, alpine}},
			wantErr: ErrDuplicateName,
		},
		{
			name: "duplicate service",
			bf: &Boxfile{
				Images:   []Image{alpine},
				Services: []Service{{Name: "web", Image: "web"}, {Name: "web", Image: "web"}},
			},
			wantErr: ErrDuplicateName,
		},
		{
			name:    "unknown image",
			bf:      &Boxfile{Services: []Service{{Name: "web", Image: "missing"}}},
			wantErr: ErrUnknownImage,
		},
		{
			name: "unknown dependency",
			bf: &Boxfile{
				Images:   []Image{alpine},
				Services: []Service{{Name: "web", Image: "web", DependsOn: []string{"db"}}},
			},
			wantErr: ErrUnknownService,
		},
		{
			name: "empty step",
			bf: &Boxfile{Images: []Image{{
				Name: "web", From: "alpine", Steps: []Step{{}},
			}}},
			wantErr: ErrInvalidStep,
		},
		{
			name: "step with two directives",
			bf: &Boxfile{Images: []Image{{
				Name: "web", From: "alpine", Steps: []Step{{Run: strPtr("true"), User: strPtr("app")}},
			}}},
			wantErr: ErrInvalidStep,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.bf, "")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestBuild_InvalidPort(t *testing.T) {
	bf := &Boxfile{
		Images:   []Image{{Name: "web", From: "alpine"}},
		Services: []Service{{Name: "web", Image: "web", Ports: []string{"http"}}},
	}

	_, err := Build(bf, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `parse port "http"`)
}

func TestBuild_DependencyCyclesAllowed(t *testing.T) {
	bf := &Boxfile{
		Images: []Image{{Name: "app", From: "alpine"}},
		Services: []Service{
			{Name: "a", Image: "app", DependsOn: []string{"b", "a"}},
			{Name: "b", Image: "app", DependsOn: []string{"a"}},
		},
	}

	project, err := Build(bf, "")
	require.NoError(t, err)

	rendered := project.Document.Render()
	assert.Contains(t, rendered, "\t\tdepends_on:\n\t\t\t- b\n\t\t\t- a")
}

func TestBuild_SharedImage(t *testing.T) {
	bf := &Boxfile{
		Images: []Image{{Name: "worker", From: "alpine", Steps: []Step{{Expose: intPtr(9000)}}}},
		Services: []Service{
			{Name: "worker-1", Image: "worker"},
			{Name: "worker-2", Image: "worker", Ports: []string{"9001:9000"}},
		},
	}

	project, err := Build(bf, "")
	require.NoError(t, err)

	services := project.Document.Services()
	require.Len(t, services, 2)
	assert.Same(t, services[0].Manifest(), services[1].Manifest())
}

func TestBuild_EnvFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "web.env", "LOG=info\nTOKEN=abc\n")
	writeFile(t, dir, "boxes.yml", `images:
  - name: web
    from: alpine
services:
  - name: web
    image: web
    env_file: [web.env]
    environment:
      LOG: debug
`)

	bf, err := Load(dir+"/boxes.yml", Options{Environ: []string{}})
	require.NoError(t, err)

	project, err := Build(bf, "")
	require.NoError(t, err)

	svc := project.Document.Services()[0]
	assert.Equal(t, []compose.EnvPair{{Key: "LOG", Value: "debug"}, {Key: "TOKEN", Value: "abc"}}, svc.Env())
}

func TestBuild_EnvFileMissing(t *testing.T) {
	bf := &Boxfile{
		Images:   []Image{{Name: "web", From: "alpine"}},
		Services: []Service{{Name: "web", Image: "web", EnvFile: []string{"/nonexistent/web.env"}}},
	}

	_, err := Build(bf, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read env_file")
}
