package compiler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileCleanProgram(t *testing.T) {
	res, err := Compile(context.Background(), "t.hl", []byte(`
int x = 1 + 2;
print(x);
`))
	require.NoError(t, err)
	assert.False(t, res.Failed())
	require.NotNil(t, res.Program)
}

func TestCompileLexError(t *testing.T) {
	res, err := Compile(context.Background(), "t.hl", []byte(`int x = @;`))
	require.Error(t, err)
	assert.True(t, res.Failed())
	assert.NotEmpty(t, res.LexDiagnostics)
}

func TestCompileParseError(t *testing.T) {
	res, err := Compile(context.Background(), "t.hl", []byte(`int x = ;`))
	require.Error(t, err)
	assert.True(t, res.Failed())
	assert.Nil(t, res.Program)
}

func TestCompileAnalyzeError(t *testing.T) {
	res, err := Compile(context.Background(), "t.hl", []byte(`const int k = 1; k = 2;`))
	require.Error(t, err)
	assert.True(t, res.Failed())
	require.NotNil(t, res.Program)
	assert.NotEmpty(t, res.AnalyzeDiagnostics)
}
