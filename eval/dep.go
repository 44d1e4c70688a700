package eval

import (
	"fmt"

	nlp "headat/nlp/types"
)

// DepEval scores a parsed sentence against its gold tree. The returned
// result counts labeled attachments; its Other field counts unlabeled ones.
// A token is a true positive when its head (and label) match gold and a
// false positive otherwise.
func DepEval(test, gold *nlp.DependencyParsedSentence) (*Result, error) {
	if test.Len() != gold.Len() {
		return nil, fmt.Errorf("%w: parsed sentence has %d tokens, gold has %d",
			nlp.ErrShapeMismatch, test.Len(), gold.Len())
	}
	las := &Result{Other: &Result{}}
	for i := range gold.Heads {
		if test.Heads[i] != gold.Heads[i] {
			las.FP++
			las.Other.FP++
			continue
		}
		las.Other.TP++
		if test.Labels[i] == gold.Labels[i] {
			las.TP++
		} else {
			las.FP++
		}
	}
	return las, nil
}

// DepTotal accumulates DepEval results over a corpus.
type DepTotal struct {
	Labeled, Unlabeled Total
}

func (d *DepTotal) Add(r *Result) {
	d.Labeled.Add(r)
	if r.Other != nil {
		d.Unlabeled.Add(r.Other)
	}
}

func (d *DepTotal) LAS() float64 {
	return d.Labeled.Precision()
}

func (d *DepTotal) UAS() float64 {
	return d.Unlabeled.Precision()
}
