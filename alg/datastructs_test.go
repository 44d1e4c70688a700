package alg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStackArray(t *testing.T) {
	s := NewStackArray(4)
	_, ok := s.Pop()
	assert.False(t, ok, "pop on empty stack")
	_, ok = s.Peek()
	assert.False(t, ok, "peek on empty stack")

	s.Push(0)
	s.Push(3)
	s.Push(5)
	assert.Equal(t, 3, s.Size())

	top, ok := s.Peek()
	assert.True(t, ok)
	assert.Equal(t, 5, top)

	second, ok := s.Index(1)
	assert.True(t, ok)
	assert.Equal(t, 3, second)
	_, ok = s.Index(3)
	assert.False(t, ok)
	_, ok = s.Index(-1)
	assert.False(t, ok)

	assert.True(t, s.Contains(3, 1))
	assert.False(t, s.Contains(5, 1), "top skipped")
	assert.True(t, s.Contains(5, 0))

	popped, ok := s.Pop()
	assert.True(t, ok)
	assert.Equal(t, 5, popped)
	assert.Equal(t, []int{0, 3}, s.Array)
}
