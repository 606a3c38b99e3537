package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsBuiltin(t *testing.T) {
	for _, name := range Builtins {
		assert.True(t, IsBuiltin(name), name)
	}
	assert.False(t, IsBuiltin("ls"))
	assert.False(t, IsBuiltin(""))
}

func TestBuiltinsMatchDispatch(t *testing.T) {
	// Every listed builtin runs inside the interpreter, never as a process.
	for _, name := range Builtins {
		t.Run(name, func(t *testing.T) {
			env := &fakeEnv{}
			ts := newTestShell("", WithEnv(env))

			res := ts.ex.Run(name)

			require.Len(t, res.Stages, 1)
			assert.Equal(t, StageBuiltin, res.Stages[0].Kind)
		})
	}
}
