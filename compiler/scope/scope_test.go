package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slowlang/hlc/compiler/tp"
)

func TestDeclareLookupShadow(t *testing.T) {
	s := New()
	s.Push()
	s.Declare("x", tp.NewInt(), true)

	s.Push()
	s.Declare("x", tp.NewString(), true)

	got, ok := s.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, tp.String, got.Kind)

	s.Pop()
	got, ok = s.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, tp.Int, got.Kind)
}

func TestInitializationTracking(t *testing.T) {
	s := New()
	s.Push()
	s.Declare("a", tp.NewInt(), false)

	assert.False(t, s.IsInitialized("a"))
	s.MarkInitialized("a")
	assert.True(t, s.IsInitialized("a"))
}

func TestConstIsGlobalForLifetime(t *testing.T) {
	s := New()
	s.Push()
	s.Declare("k", tp.NewInt(), true)
	s.MarkConst("k")

	s.Push()
	assert.True(t, s.IsConst("k"))
}

func TestIsDeclaredInCurrentOnly(t *testing.T) {
	s := New()
	s.Push()
	s.Declare("x", tp.NewInt(), true)
	s.Push()

	assert.False(t, s.IsDeclaredInCurrent("x"))
	assert.True(t, s.IsDeclared("x"))
}
