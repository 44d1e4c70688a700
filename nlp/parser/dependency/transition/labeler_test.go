package transition

import (
	"testing"

	nlp "headat/nlp/types"

	"github.com/stretchr/testify/assert"
)

func TestMove(t *testing.T) {
	assert.Equal(t, "SHIFT", Shift.String())
	assert.Equal(t, "LEFT", LeftReduce.String())
	assert.Equal(t, "RIGHT", RightReduce.String())
	assert.Equal(t, "Move(7)", Move(7).String())
	assert.False(t, Shift.IsReduce())
	assert.True(t, LeftReduce.IsReduce())
	assert.True(t, RightReduce.IsReduce())
}

func TestArcOf(t *testing.T) {
	c := scratch(t, dogsBark())
	c.ApplyMove(Shift, nlp.NYL)

	head, dep := ArcOf(c, LeftReduce)
	assert.Equal(t, 2, head)
	assert.Equal(t, 1, dep)
	head, dep = ArcOf(c, RightReduce)
	assert.Equal(t, 0, head)
	assert.Equal(t, 1, dep)
	assert.Panics(t, func() { ArcOf(c, Shift) })
}

func TestLabelFeatures(t *testing.T) {
	c := scratch(t, dogsBark())
	c.ApplyMove(Shift, nlp.NYL)

	features := LabelFeatures(c, LeftReduce, CLIP)
	assert.Len(t, features, 13)
	assert.Equal(t, BIAS, features[0])
	assert.Contains(t, features, "m=LEFT")
	assert.Contains(t, features, "h:w='BARK'")
	assert.Contains(t, features, "d:t='NOUN'")
}

func TestLabeler(t *testing.T) {
	l := NewLabeler()
	assert.Equal(t, nlp.NYL, l.Predict([]string{BIAS}))

	l.RegisterLabels([]string{"nsubj", "root", "nsubj"})
	assert.Equal(t, 2, l.Classifier.NumClasses())
	assert.Equal(t, "nsubj", l.Predict([]string{BIAS}), "ties go to the first label")

	l.Learn([]string{BIAS}, "root", "nsubj", 1)
	assert.Equal(t, "root", l.Predict([]string{BIAS}))
	l.Learn([]string{BIAS}, "unknown", "root", 1)
	assert.Equal(t, 2, l.Classifier.Time())

	l.Finalize()
	assert.Equal(t, "root", l.Predict([]string{BIAS}))
}
