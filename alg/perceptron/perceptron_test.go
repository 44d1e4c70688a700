package perceptron

import (
	"bytes"
	"encoding/gob"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAveragedScores(t *testing.T) {
	m := NewAveraged(3)
	assert.Equal(t, []float64{0, 0, 0}, m.Scores([]string{"a", "b"}))

	m.Update(0, 2, []string{"a", "b"}, 1)
	assert.Equal(t, []float64{2, 0, -2}, m.Scores([]string{"a", "b", "unseen"}))
	assert.Equal(t, []float64{1, 0, -1}, m.Scores([]string{"b"}))

	m.Update(1, 1, []string{"c"}, 1)
	_, exists := m.Features.IndexOf("c")
	assert.False(t, exists, "no-op update must not register features")
}

func TestAveragedFinalize(t *testing.T) {
	m := NewAveraged(2)
	m.Update(0, 1, []string{"a"}, 1)
	for i := 0; i < 4; i++ {
		m.Tick()
	}
	m.Update(0, 1, []string{"a"}, 1)
	for i := 0; i < 4; i++ {
		m.Tick()
	}
	assert.Equal(t, 8, m.Time())
	assert.Equal(t, []float64{2, -2}, m.Scores([]string{"a"}))

	m.Finalize()
	assert.Equal(t, []float64{1.5, -1.5}, m.Scores([]string{"a"}))

	m.Finalize()
	assert.Equal(t, []float64{1.5, -1.5}, m.Scores([]string{"a"}), "second finalize is a no-op")
	assert.Panics(t, func() { m.Update(0, 1, []string{"a"}, 1) })
}

func TestAveragedFinalizeUntrained(t *testing.T) {
	m := NewAveraged(2)
	m.Update(1, 0, []string{"a"}, 0.5)
	m.Finalize()
	assert.Equal(t, []float64{-0.5, 0.5}, m.Scores([]string{"a"}))
}

func TestRegisterClasses(t *testing.T) {
	m := NewAveraged(1)
	m.RegisterClasses(3)
	assert.Equal(t, 3, m.NumClasses())
	m.Update(2, 0, []string{"x"}, 1)
	assert.Equal(t, []float64{-1, 0, 1}, m.Scores([]string{"x"}))
}

func TestArgmax(t *testing.T) {
	assert.Equal(t, 1, Argmax([]float64{3, 5, 5}, []int{1, 2}))
	assert.Equal(t, 2, Argmax([]float64{3, 5, 5}, []int{2, 1}))
	assert.Equal(t, 0, Argmax([]float64{3, 5, 5}, []int{0}))
	assert.Equal(t, 0, Argmax([]float64{0, 0, 0}, []int{0, 1, 2}))
	assert.Panics(t, func() { Argmax([]float64{1}, nil) })
}

func TestAveragedGob(t *testing.T) {
	m := NewAveraged(2)
	m.Update(0, 1, []string{"a", "b"}, 1)
	m.Tick()
	m.Tick()
	m.Update(1, 0, []string{"b"}, 1)
	m.Tick()
	m.Finalize()

	var buf bytes.Buffer
	require.NoError(t, gob.NewEncoder(&buf).Encode(m))
	loaded := &Averaged{}
	require.NoError(t, gob.NewDecoder(&buf).Decode(loaded))

	for _, feats := range [][]string{{"a"}, {"b"}, {"a", "b", "c"}} {
		assert.Equal(t, m.Scores(feats), loaded.Scores(feats))
	}
	assert.True(t, loaded.Finalized)
	assert.Equal(t, m.Time(), loaded.Time())
}

func TestAveragedGobEmpty(t *testing.T) {
	m := NewAveraged(3)
	m.Finalize()

	var buf bytes.Buffer
	require.NoError(t, gob.NewEncoder(&buf).Encode(m))
	loaded := &Averaged{}
	require.NoError(t, gob.NewDecoder(&buf).Decode(loaded))
	loaded.Init()
	assert.Equal(t, []float64{0, 0, 0}, loaded.Scores([]string{"a"}))
}
