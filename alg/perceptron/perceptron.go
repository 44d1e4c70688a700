package perceptron

import (
	"headat/alg/featurevector"
	"headat/util"

	"github.com/rs/zerolog/log"
)

const APPROX_FEATURES = 1 << 16

// Averaged is a multiclass perceptron whose final weights are the average of
// the weights over every time step of training. The averaging is lazy: each
// weight integrates its running total only when it is touched, and once more
// in Finalize.
//
// Scores never mutates the model, so a finalized model can be shared between
// goroutines.
type Averaged struct {
	Features   *util.EnumSet
	Weights    *featurevector.AvgSparse
	Generation int
	Finalized  bool
}

var _ Model = &Averaged{}

func NewAveraged(classes int) *Averaged {
	return &Averaged{
		Features: util.NewEnumSet(APPROX_FEATURES),
		Weights:  featurevector.NewAvgSparse(classes),
	}
}

// Init allocates whatever a decoded model is missing; gob drops empty maps.
func (m *Averaged) Init() {
	if m.Features == nil {
		m.Features = util.NewEnumSet(0)
	}
	if m.Features.Enum == nil {
		m.Features.Enum = make(map[string]int)
	}
	if m.Weights == nil {
		m.Weights = featurevector.NewAvgSparse(0)
	}
	if m.Weights.Vals == nil {
		m.Weights.Vals = make(map[int][]featurevector.HistoryValue)
	}
}

// RegisterClasses grows the class set to n. Existing classes keep their ids.
func (m *Averaged) RegisterClasses(n int) {
	m.Weights.SetClasses(n)
}

func (m *Averaged) NumClasses() int {
	return m.Weights.Classes
}

func (m *Averaged) Scores(features []string) []float64 {
	scores := make([]float64, m.Weights.Classes)
	for _, feature := range features {
		if id, exists := m.Features.IndexOf(feature); exists {
			m.Weights.AddScores(id, scores)
		}
	}
	return scores
}

// Update moves every feature's weight for truth up by alpha and for guess
// down by alpha. Equal truth and guess leave the model untouched.
func (m *Averaged) Update(truth, guess int, features []string, alpha float64) {
	if m.Finalized {
		panic("Cannot update a finalized model")
	}
	if truth == guess {
		return
	}
	for _, feature := range features {
		id, _ := m.Features.Add(feature)
		m.Weights.Add(m.Generation, id, truth, alpha)
		m.Weights.Add(m.Generation, id, guess, -alpha)
	}
}

func (m *Averaged) Tick() {
	m.Generation++
}

func (m *Averaged) Time() int {
	return m.Generation
}

// Finalize replaces every weight with its average. Only the first call has
// an effect.
func (m *Averaged) Finalize() {
	if m.Finalized {
		return
	}
	m.Finalized = true
	if m.Generation == 0 {
		log.Warn().Msg("Finalizing an untrained model, weights left as is")
		return
	}
	m.Weights.Average(m.Generation)
	m.Features.Frozen = true
	log.Debug().
		Int("features", m.Features.Len()).
		Int("weights", m.Weights.Len()).
		Int("time", m.Generation).
		Msg("Averaged model weights")
}

// Argmax returns the candidate class with the highest score. Ties go to the
// candidate listed first.
func Argmax(scores []float64, candidates []int) int {
	if len(candidates) == 0 {
		panic("No candidates to choose from")
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if scores[c] > scores[best] {
			best = c
		}
	}
	return best
}
