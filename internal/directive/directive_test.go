package directive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name      string
		directive Directive
		want      string
	}{
		{"base default tag", NewBaseImage("alpine"), "FROM alpine:latest"},
		{"base explicit tag", BaseImage{Repository: "golang", Tag: "1.24-alpine"}, "FROM golang:1.24-alpine"},
		{"base empty tag", BaseImage{Repository: "scratch"}, "FROM scratch:"},
		{"run", RunCommand{Command: "apk update && apk add curl"}, "RUN apk update && apk add curl"},
		{"copy", CopyFile{Source: ".", Dest: "/app"}, "COPY . /app"},
		{"add", AddFile{Source: "rootfs.tar.gz", Dest: "/"}, "ADD rootfs.tar.gz /"},
		{"workdir", SetWorkdir{Dir: "/srv"}, "WORKDIR /srv"},
		{"user", SetUser{User: "nobody"}, "USER nobody"},
		{"expose", ExposePort{Port: 8080}, "EXPOSE 8080"},
		{"expose negative", ExposePort{Port: -1}, "EXPOSE -1"},
		{"cmd", NewEntryCommand("python", "-m", "http.server"), `CMD ["python", "-m", "http.server"]`},
		{"cmd single", NewEntryCommand("./web"), `CMD ["./web"]`},
		{"cmd empty", NewEntryCommand(), "CMD []"},
		{"cmd unescaped", NewEntryCommand(`say "hi"`), `CMD ["say "hi""]`},
		{"env", NewEnv().Add("A", "1").Add("B", "2"), "ENV A=1\nENV B=2"},
		{"env empty", NewEnv(), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.directive.Render())
		})
	}
}

func TestBaseImage_Reference(t *testing.T) {
	assert.Equal(t, "redis:7", BaseImage{Repository: "redis", Tag: "7"}.Reference())
}

func TestEntryCommand_ArgsIsCopy(t *testing.T) {
	args := []string{"a", "b"}
	cmd := NewEntryCommand(args...)

	args[0] = "changed"
	assert.Equal(t, `CMD ["a", "b"]`, cmd.Render())

	got := cmd.Args()
	got[1] = "changed"
	assert.Equal(t, []string{"a", "b"}, cmd.Args())
}

func TestRender_Deterministic(t *testing.T) {
	env := NewEnv().Add("Z", "1").Add("A", "2").Add("M", "3")
	first := env.Render()
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, env.Render())
	}
	assert.Equal(t, "ENV Z=1\nENV A=2\nENV M=3", first)
}
