package transition

import (
	"errors"
	"math/rand"
	"time"

	"headat/alg/perceptron"
	"headat/eval"
	"headat/nlp/parser/dependency"
	nlp "headat/nlp/types"
	"headat/util"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const EPOCHS = 10

var ErrFinalized = errors.New("parser model is already finalized")

type Options struct {
	Seed    int64
	Clip    int
	Labeled bool
}

// DependencyParser is a greedy arc-hybrid parser driven by an averaged
// perceptron over configuration features. Once trained (or loaded) it is
// read-only and Parse may be called from several goroutines.
type DependencyParser struct {
	ID         string
	Seed       int64
	Clip       int
	Classifier *perceptron.Averaged
	Labeler    *Labeler

	random *rand.Rand
}

var _ dependency.Parser = &DependencyParser{}

func NewDependencyParser(opts Options) *DependencyParser {
	if opts.Clip <= 0 {
		opts.Clip = CLIP
	}
	p := &DependencyParser{
		ID:         uuid.NewString(),
		Seed:       opts.Seed,
		Clip:       opts.Clip,
		Classifier: perceptron.NewAveraged(len(Moves)),
		random:     rand.New(rand.NewSource(opts.Seed)),
	}
	if opts.Labeled {
		p.Labeler = NewLabeler()
	}
	return p
}

func (p *DependencyParser) Labeled() bool {
	return p.Labeler != nil
}

// forcedMove returns the move the configuration leaves no choice about, if
// any.
func forcedMove(c *Configuration) (Move, bool) {
	if c.Depth() == 0 {
		log.Debug().Msg("Performing mandatory SHIFT")
		return Shift, true
	}
	if c.QueueEmpty() {
		log.Debug().Msg("Performing mandatory RIGHT")
		return RightReduce, true
	}
	return 0, false
}

func (p *DependencyParser) predict(valid []Move, scores []float64) Move {
	return Move(perceptron.Argmax(scores, movesAsClasses(valid)))
}

func (p *DependencyParser) label(c *Configuration, move Move) string {
	if !move.IsReduce() || p.Labeler == nil {
		return nlp.NYL
	}
	return p.Labeler.Predict(LabelFeatures(c, move, p.Clip))
}

func (p *DependencyParser) decode(c *Configuration) {
	for !c.IsComplete() {
		move, forced := forcedMove(c)
		if !forced {
			valid := c.ValidMoves()
			scores := p.Classifier.Scores(c.Features(p.Clip))
			move = p.predict(valid, scores)
		}
		c.ApplyMove(move, p.label(c, move))
	}
}

// Parse predicts a dependency tree for a tagged sentence.
func (p *DependencyParser) Parse(tokens, tags []string) (*Configuration, error) {
	c, err := NewConfiguration(tokens, tags)
	if err != nil {
		return nil, err
	}
	p.decode(c)
	return c, nil
}

func (p *DependencyParser) ParseSentence(sent nlp.TaggedSentence) (*nlp.DependencyParsedSentence, error) {
	c, err := p.Parse(sent.Tokens(), sent.Tags())
	if err != nil {
		return nil, err
	}
	return c.Tree(), nil
}

// learnLabel predicts the label of the arc move is about to add and, when
// that arc is a gold arc, trains the labeler on it.
func (p *DependencyParser) learnLabel(guess, gold *Configuration, move Move, alpha float64) string {
	if !move.IsReduce() || p.Labeler == nil {
		return nlp.NYL
	}
	features := LabelFeatures(guess, move, p.Clip)
	predicted := p.Labeler.Predict(features)
	head, dep := ArcOf(guess, move)
	if gold.Heads[dep] == head {
		p.Labeler.Learn(features, gold.Labels[dep], predicted, alpha)
	}
	return predicted
}

// FitOne parses the sentence of gold with the current model, updating the
// model every time the predicted move is not the best move the dynamic
// oracle allows. The predicted move is always the one applied. Parsing stops
// early when no move is consistent with gold; the partial parse is returned.
func (p *DependencyParser) FitOne(gold *Configuration, alpha float64) *Configuration {
	guess := newConfiguration(gold.Tokens[1:], gold.Tags[1:])
	for !guess.IsComplete() {
		if move, forced := forcedMove(guess); forced {
			guess.ApplyMove(move, p.learnLabel(guess, gold, move, alpha))
			continue
		}
		valid := guess.ValidMoves()
		features := guess.Features(p.Clip)
		scores := p.Classifier.Scores(features)
		predicted := p.predict(valid, scores)
		golds := GoldMoves(valid, guess, gold)
		if len(golds) == 0 {
			log.Debug().Str("parse", guess.String()).Msg("Premature termination (no gold moves)")
			return guess
		}
		truth := Move(perceptron.Argmax(scores, movesAsClasses(golds)))
		if truth != predicted {
			p.Classifier.Update(int(truth), int(predicted), features, alpha)
		}
		guess.ApplyMove(predicted, p.learnLabel(guess, gold, predicted, alpha))
		p.Classifier.Tick()
	}
	log.Debug().Str("parse", guess.String()).Msg("Final parse")
	return guess
}

// Fit trains the parser for the given number of epochs over golds, in a
// fresh seeded shuffle every epoch, then averages the model. It returns the
// head attachment accuracy of every epoch.
func (p *DependencyParser) Fit(golds []*nlp.DependencyParsedSentence, epochs int, alpha float64) ([]float64, error) {
	if p.Classifier.Finalized {
		return nil, ErrFinalized
	}
	configs := make([]*Configuration, len(golds))
	labels := make([]string, 0)
	for i, sent := range golds {
		c, err := NewGoldConfiguration(sent)
		if err != nil {
			return nil, err
		}
		configs[i] = c
		labels = append(labels, sent.Labels...)
	}
	if p.Labeler != nil {
		p.Labeler.RegisterLabels(labels)
	}
	if p.random == nil {
		p.random = rand.New(rand.NewSource(p.Seed))
	}

	accuracies := make([]float64, 0, epochs)
	for i := 1; i <= epochs; i++ {
		log.Info().Int("epoch", i).Msg("Epoch")
		start := time.Now()
		cx := &eval.Accuracy{}
		p.random.Shuffle(len(configs), func(a, b int) {
			configs[a], configs[b] = configs[b], configs[a]
		})
		for _, gold := range configs {
			guess := p.FitOne(gold, alpha)
			cx.BatchUpdate(gold.Heads[1:], guess.Heads[1:])
		}
		accuracies = append(accuracies, cx.Accuracy())
		log.Info().
			Int("epoch", i).
			Float64("accuracy", cx.Accuracy()).
			Dur("elapsed", time.Since(start)).
			Msgf("Accuracy: %.4f.", cx.Accuracy())
		util.LogMemory()
	}
	p.Classifier.Finalize()
	if p.Labeler != nil {
		p.Labeler.Finalize()
	}
	return accuracies, nil
}
