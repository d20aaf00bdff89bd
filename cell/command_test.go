package cell

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommand_URLWinsOverBody(t *testing.T) {
	e := NewExpression("1 + 1", "http://host/e", false)
	assert.Empty(t, e.Cmd())
	assert.Equal(t, "http://host/e", e.URL())
	assert.True(t, e.IsURL())

	e = NewExpression("1 + 1", "", false)
	assert.Equal(t, "1 + 1", e.Cmd())
	assert.False(t, e.IsURL())
}

func TestCommand_CompileError(t *testing.T) {
	tpl := NewTemplate("<x/>", "", true)
	assert.Empty(t, tpl.CompileError())
	tpl.SetCompileError("unexpected token")
	assert.Equal(t, "unexpected token", tpl.CompileError())
}

func TestTemplate_CompiledOnce(t *testing.T) {
	tpl := NewTemplate("<x/>", "", true)
	var builds atomic.Int32

	var wg sync.WaitGroup
	results := make([]any, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := tpl.Compiled(func() (any, error) {
				builds.Add(1)
				return "compiled", nil
			})
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), builds.Load())
	for _, r := range results {
		assert.Equal(t, "compiled", r)
	}
}

func TestTemplate_CompiledFailureIsKept(t *testing.T) {
	tpl := NewTemplate("<x", "", true)
	boom := errors.New("boom")
	calls := 0

	_, err := tpl.Compiled(func() (any, error) { calls++; return nil, boom })
	require.ErrorIs(t, err, boom)

	_, err = tpl.Compiled(func() (any, error) { calls++; return "ok", nil })
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestTagOf(t *testing.T) {
	tag, err := TagOf(NewMethod("x", "", false))
	require.NoError(t, err)
	assert.Equal(t, TagMethod, tag)

	_, err = TagOf(complex(1, 2))
	assert.ErrorIs(t, err, ErrUnrecognizedValueType)
}
