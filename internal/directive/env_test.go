package directive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnv_AddOverwriteKeepsPosition(t *testing.T) {
	env := NewEnv().Add("A", "1").Add("B", "x").Add("A", "2")

	assert.Equal(t, "ENV A=2\nENV B=x", env.Render())
	assert.Equal(t, []string{"A", "B"}, env.Keys())
	assert.Equal(t, 2, env.Len())
}

func TestEnv_SameKeyTwiceRendersOnce(t *testing.T) {
	env := NewEnv()
	env.Add("A", "1")
	env.Add("A", "2")

	assert.Equal(t, "ENV A=2", env.Render())
}

func TestEnv_Get(t *testing.T) {
	env := NewEnv().Add("HOME", "/root")

	value, ok := env.Get("HOME")
	assert.True(t, ok)
	assert.Equal(t, "/root", value)

	_, ok = env.Get("PATH")
	assert.False(t, ok)
}

func TestEnv_ZeroValue(t *testing.T) {
	var env Env
	assert.Equal(t, "", env.Render())

	env.Add("K", "v")
	assert.Equal(t, "ENV K=v", env.Render())
}

func TestEnv_KeysIsCopy(t *testing.T) {
	env := NewEnv().Add("A", "1")
	keys := env.Keys()
	keys[0] = "B"

	assert.Equal(t, []string{"A"}, env.Keys())
}

func TestEnv_VerbatimValues(t *testing.T) {
	env := NewEnv().Add("PATH", "$PATH:/usr/local/bin").Add("", "")
	assert.Equal(t, "ENV PATH=$PATH:/usr/local/bin\nENV =", env.Render())
}
