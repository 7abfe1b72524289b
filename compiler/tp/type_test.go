package tp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompatibleWidening(t *testing.T) {
	assert.True(t, Compatible(NewFloat(), NewInt()))
	assert.False(t, Compatible(NewInt(), NewFloat()))
	assert.True(t, Compatible(NewInt(), NewInt()))
}

func TestCompatibleLists(t *testing.T) {
	assert.True(t, Compatible(NewList(NewInt()), NewList(NewInt())))
	assert.True(t, Compatible(NewList(nil), NewList(NewInt())))
	assert.True(t, Compatible(NewList(NewFloat()), NewList(NewInt())))
	assert.False(t, Compatible(NewList(NewString()), NewList(NewInt())))
}

func TestStringRendersListElem(t *testing.T) {
	assert.Equal(t, "list<int>", NewList(NewInt()).String())
	assert.Equal(t, "list<unknown>", NewList(nil).String())
}

func TestIsNumeric(t *testing.T) {
	assert.True(t, IsNumeric(NewInt()))
	assert.True(t, IsNumeric(NewFloat()))
	assert.False(t, IsNumeric(NewString()))
	assert.False(t, IsNumeric(nil))
}
