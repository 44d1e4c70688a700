package transition

import (
	"bytes"
	"strings"
	"testing"

	nlp "headat/nlp/types"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func corpus() []*nlp.DependencyParsedSentence {
	return []*nlp.DependencyParsedSentence{
		dogsBark(),
		economicNews(),
		chain(2, 3, 0),
		chain(0, 1, 1, 1),
		chain(0, 3, 1),
	}
}

func assertCompleteParse(t *testing.T, c *Configuration) {
	require.True(t, c.IsComplete(), "%v", c)
	for i := 1; i <= c.Len(); i++ {
		assert.True(t, c.HasHead(i), "token %d has no head", i)
	}
	counts := countMoves(c.Sequence)
	assert.Equal(t, c.Len(), counts[Shift])
	assert.Equal(t, c.Len(), counts[LeftReduce]+counts[RightReduce])
}

func TestParseUntrained(t *testing.T) {
	p := NewDependencyParser(Options{})
	sent := economicNews()
	c, err := p.Parse(sent.Tokens, sent.Tags)
	require.NoError(t, err)
	assertCompleteParse(t, c)
	// every tie goes to Shift, the queue is drained and then reduced rightwards
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8}, c.Tree().Heads)
	assert.Equal(t, []string{nlp.NYL, nlp.NYL, nlp.NYL, nlp.NYL, nlp.NYL, nlp.NYL, nlp.NYL, nlp.NYL, nlp.NYL}, c.Tree().Labels)
}

func TestParseShapeMismatch(t *testing.T) {
	p := NewDependencyParser(Options{})
	_, err := p.Parse([]string{"Dogs", "bark"}, []string{"NOUN"})
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestDecodeForcedRightReduce(t *testing.T) {
	p := NewDependencyParser(Options{})
	p.Classifier.Update(int(Shift), int(RightReduce), []string{BIAS}, 5)
	c := scratch(t, dogsBark())
	c.ApplyMove(Shift, "")
	c.ApplyMove(Shift, "")
	p.decode(c)
	assert.Equal(t, []Move{Shift, Shift, RightReduce, RightReduce}, c.Sequence)
	assert.Equal(t, []int{1, 0}, c.Tree().Heads)
}

func TestFitDogsBark(t *testing.T) {
	p := NewDependencyParser(Options{Seed: 1})
	accuracies, err := p.Fit([]*nlp.DependencyParsedSentence{dogsBark()}, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1}, accuracies)
	assert.True(t, p.Classifier.Finalized)
	assert.Equal(t, 5, p.Classifier.Time())

	c, err := p.Parse([]string{"Dogs", "bark"}, []string{"NOUN", "VERB"})
	require.NoError(t, err)
	assert.Equal(t, []Move{Shift, LeftReduce, Shift, RightReduce}, c.Sequence)
	assert.Equal(t, []int{2, 0}, c.Tree().Heads)

	tree, err := p.ParseSentence(dogsBark().TaggedSentence())
	require.NoError(t, err)
	assert.Equal(t, []int{2, 0}, tree.Heads)
	assert.Equal(t, []string{nlp.NYL, nlp.NYL}, tree.Labels)
}

func TestFitLabeled(t *testing.T) {
	p := NewDependencyParser(Options{Seed: 1, Labeled: true})
	_, err := p.Fit([]*nlp.DependencyParsedSentence{dogsBark()}, 5, 1)
	require.NoError(t, err)
	assert.True(t, p.Labeled())
	assert.True(t, p.Labeler.Classifier.Finalized)

	c, err := p.Parse([]string{"Dogs", "bark"}, []string{"NOUN", "VERB"})
	require.NoError(t, err)
	assert.Equal(t, dogsBark().Heads, c.Tree().Heads)
	assert.Equal(t, dogsBark().Labels, c.Tree().Labels)
}

func TestFitOneExhaustion(t *testing.T) {
	p := NewDependencyParser(Options{})
	gold := goldConfiguration(t, chain(0, 4, 1, 1))
	var guess *Configuration
	assert.NotPanics(t, func() { guess = p.FitOne(gold, 1) })
	assert.False(t, guess.IsComplete())
	assert.Equal(t, []Move{Shift, Shift}, guess.Sequence)
	assert.Equal(t, []int{Unassigned, Unassigned, Unassigned, Unassigned}, guess.Tree().Heads)
	assert.Equal(t, 2, p.Classifier.Time())
}

func TestFitOneUpdatesOnMistake(t *testing.T) {
	p := NewDependencyParser(Options{})
	gold := goldConfiguration(t, dogsBark())
	guess := p.FitOne(gold, 1)
	assert.True(t, guess.IsComplete())
	assert.Equal(t, []int{0, 1}, guess.Tree().Heads, "the predicted moves are applied")

	c := scratch(t, dogsBark())
	c.ApplyMove(Shift, "")
	scores := p.Classifier.Scores(c.Features(CLIP))
	assert.Greater(t, scores[LeftReduce], scores[RightReduce])
	assert.Greater(t, scores[RightReduce], scores[Shift])
}

func TestFitErrors(t *testing.T) {
	p := NewDependencyParser(Options{})
	bad := dogsBark()
	bad.Heads[1] = 5
	_, err := p.Fit([]*nlp.DependencyParsedSentence{bad}, 1, 1)
	assert.ErrorIs(t, err, nlp.ErrHeadOutOfRange)
	assert.False(t, p.Classifier.Finalized)

	_, err = p.Fit(corpus(), 1, 1)
	require.NoError(t, err)
	_, err = p.Fit(corpus(), 1, 1)
	assert.ErrorIs(t, err, ErrFinalized)
}

func TestFitParsesAreComplete(t *testing.T) {
	p := NewDependencyParser(Options{Seed: 7})
	accuracies, err := p.Fit(corpus(), 5, 1)
	require.NoError(t, err)
	assert.Len(t, accuracies, 5)
	for _, acc := range accuracies {
		assert.True(t, acc >= 0 && acc <= 1)
	}
	for _, sent := range corpus() {
		c, err := p.Parse(sent.Tokens, sent.Tags)
		require.NoError(t, err)
		assertCompleteParse(t, c)
	}
}

func TestFitDeterministic(t *testing.T) {
	parse := func() []*nlp.DependencyParsedSentence {
		p := NewDependencyParser(Options{Seed: 3})
		_, err := p.Fit(corpus(), 4, 1)
		require.NoError(t, err)
		trees := make([]*nlp.DependencyParsedSentence, 0)
		for _, sent := range corpus() {
			c, err := p.Parse(sent.Tokens, sent.Tags)
			require.NoError(t, err)
			again, err := p.Parse(sent.Tokens, sent.Tags)
			require.NoError(t, err)
			assert.Equal(t, c.Tree(), again.Tree())
			trees = append(trees, c.Tree())
		}
		return trees
	}
	first, second := parse(), parse()
	for i := range first {
		assert.Equal(t, first[i], second[i], "sentence %d", i)
	}
}

func TestFitLogsEpochs(t *testing.T) {
	buf := &bytes.Buffer{}
	prevLogger, prevLevel := log.Logger, zerolog.GlobalLevel()
	log.Logger = zerolog.New(buf)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	defer func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	}()

	p := NewDependencyParser(Options{Seed: 1})
	_, err := p.Fit([]*nlp.DependencyParsedSentence{dogsBark()}, 3, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(buf.String(), `"message":"Memory info"`))
	assert.Equal(t, 3, strings.Count(buf.String(), `"message":"Accuracy: `))
}
