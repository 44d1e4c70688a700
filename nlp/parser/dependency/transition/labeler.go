package transition

import (
	"fmt"
	"strconv"

	"headat/alg/perceptron"
	nlp "headat/nlp/types"
	"headat/util"
)

// Labeler chooses a dependency label for the arc created by a reduce move.
type Labeler struct {
	Classifier *perceptron.Averaged
	Labels     *util.EnumSet
}

func NewLabeler() *Labeler {
	return &Labeler{
		Classifier: perceptron.NewAveraged(0),
		Labels:     util.NewEnumSet(64),
	}
}

func (l *Labeler) RegisterLabels(labels []string) {
	for _, label := range labels {
		l.Labels.Add(label)
	}
	l.Classifier.RegisterClasses(l.Labels.Len())
}

// ArcOf returns the arc a reduce move would add to c.
func ArcOf(c *Configuration, move Move) (head, dependent int) {
	dependent = c.S0()
	switch move {
	case LeftReduce:
		head = c.Q0()
	case RightReduce:
		var exists bool
		if head, exists = c.Stack.Index(1); !exists {
			panic("Can't find right reduce head, stack has a single element")
		}
	default:
		panic(fmt.Sprintf("Move %v creates no arc", move))
	}
	return
}

// LabelFeatures describes the arc a reduce move is about to add.
func LabelFeatures(c *Configuration, move Move, clip int) []string {
	head, dep := ArcOf(c, move)
	m := "m=" + move.String()
	hw, ht := "h:w='"+c.utokens[head]+"'", "h:t='"+c.Tags[head]+"'"
	dw, dt := "d:w='"+c.utokens[dep]+"'", "d:t='"+c.Tags[dep]+"'"
	dist := "dist=" + strconv.Itoa(util.Min(util.AbsInt(head-dep), clip))
	return []string{
		BIAS,
		m,
		hw, ht, dw, dt,
		join(ht, dt),
		join(hw, dt),
		join(ht, dw),
		join(hw, dw),
		join(ht, dt, dist),
		join(m, ht, dt),
		join(m, dt),
	}
}

// Predict returns the best label, NYL when no labels are known.
func (l *Labeler) Predict(features []string) string {
	if l.Labels.Len() == 0 {
		return nlp.NYL
	}
	scores := l.Classifier.Scores(features)
	classes := make([]int, len(scores))
	for i := range classes {
		classes[i] = i
	}
	return l.Labels.ValueOf(perceptron.Argmax(scores, classes))
}

// Learn updates the model towards truth if guess differs, and advances its
// time by one decision. Unknown labels are skipped.
func (l *Labeler) Learn(features []string, truth, guess string, alpha float64) {
	if t, known := l.Labels.IndexOf(truth); known {
		if g, known := l.Labels.IndexOf(guess); known {
			l.Classifier.Update(t, g, features, alpha)
		}
	}
	l.Classifier.Tick()
}

func (l *Labeler) Finalize() {
	l.Classifier.Finalize()
}
