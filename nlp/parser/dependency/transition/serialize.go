package transition

import (
	"encoding/gob"
	"fmt"
	"io"
	"math/rand"

	"headat/alg/perceptron"
	"headat/util"

	"github.com/rs/zerolog/log"
)

func init() {
	gob.Register(&Serialization{})
}

// Serialization is the persisted form of a DependencyParser.
type Serialization struct {
	ID         string
	Seed       int64
	Clip       int
	Classifier *perceptron.Averaged
	Labeler    *Labeler
}

func (p *DependencyParser) Serialize() *Serialization {
	return &Serialization{
		ID:         p.ID,
		Seed:       p.Seed,
		Clip:       p.Clip,
		Classifier: p.Classifier,
		Labeler:    p.Labeler,
	}
}

func (p *DependencyParser) Write(w io.Writer) error {
	if err := gob.NewEncoder(w).Encode(p.Serialize()); err != nil {
		return fmt.Errorf("failed encoding parser %s: %w", p.ID, err)
	}
	log.Debug().Str("id", p.ID).Msg("Wrote parser model")
	return nil
}

func Deserialize(data *Serialization) (*DependencyParser, error) {
	if data.Classifier == nil {
		return nil, fmt.Errorf("model %s has no move classifier", data.ID)
	}
	data.Classifier.Init()
	if data.Classifier.NumClasses() != len(Moves) {
		return nil, fmt.Errorf("model %s scores %d moves, expected %d", data.ID, data.Classifier.NumClasses(), len(Moves))
	}
	if data.Labeler != nil {
		if data.Labeler.Classifier == nil {
			return nil, fmt.Errorf("model %s has an incomplete labeler", data.ID)
		}
		data.Labeler.Classifier.Init()
		if data.Labeler.Labels == nil {
			data.Labeler.Labels = util.NewEnumSet(0)
		}
		if data.Labeler.Labels.Enum == nil {
			data.Labeler.Labels.Enum = make(map[string]int)
		}
	}
	clip := data.Clip
	if clip <= 0 {
		clip = CLIP
	}
	return &DependencyParser{
		ID:         data.ID,
		Seed:       data.Seed,
		Clip:       clip,
		Classifier: data.Classifier,
		Labeler:    data.Labeler,
		random:     rand.New(rand.NewSource(data.Seed)),
	}, nil
}

func Read(r io.Reader) (*DependencyParser, error) {
	data := &Serialization{}
	if err := gob.NewDecoder(r).Decode(data); err != nil {
		return nil, fmt.Errorf("failed decoding parser model: %w", err)
	}
	p, err := Deserialize(data)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("id", p.ID).Bool("labeled", p.Labeled()).Msg("Read parser model")
	return p, nil
}
