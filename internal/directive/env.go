package directive

import "strings"

// Env is the ENV instruction. It holds an insertion-ordered mapping;
// re-adding a key replaces its value but keeps its first position.
//
// Env is the only directive that changes after construction, so it is
// always used by pointer.
type Env struct {
	keys   []string
	values map[string]string
}

// NewEnv returns an empty Env.
func NewEnv() *Env {
	return &Env{values: make(map[string]string)}
}

// Add sets key to value and returns the Env for chaining.
func (e *Env) Add(key, value string) *Env {
	if e.values == nil {
		e.values = make(map[string]string)
	}
	if _, exists := e.values[key]; !exists {
		e.keys = append(e.keys, key)
	}
	e.values[key] = value
	return e
}

// Get returns the value stored for key.
func (e *Env) Get(key string) (string, bool) {
	value, ok := e.values[key]
	return value, ok
}

// Keys returns the keys in first-seen order.
func (e *Env) Keys() []string {
	return append([]string(nil), e.keys...)
}

// Len returns the number of keys.
func (e *Env) Len() int {
	return len(e.keys)
}

// Render returns one ENV line per key. An empty Env renders as "".
func (e *Env) Render() string {
	lines := make([]string, 0, len(e.keys))
	for _, key := range e.keys {
		lines = append(lines, "ENV "+key+"="+e.values[key])
	}
	return strings.Join(lines, "\n")
}
