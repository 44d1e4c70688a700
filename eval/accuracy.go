package eval

import "math"

// Z95 is the standard normal quantile for a two-sided 95% interval.
const Z95 = 1.959963984540054

// Accuracy counts correct and incorrect predictions.
type Accuracy struct {
	Correct, Incorrect int
}

func (a *Accuracy) Update(correct bool) {
	if correct {
		a.Correct++
	} else {
		a.Incorrect++
	}
}

// BatchUpdate compares gold and guess position by position. Positions
// missing from guess count as incorrect.
func (a *Accuracy) BatchUpdate(gold, guess []int) {
	for i, g := range gold {
		a.Update(i < len(guess) && guess[i] == g)
	}
}

func (a *Accuracy) Total() int {
	return a.Correct + a.Incorrect
}

func (a *Accuracy) Accuracy() float64 {
	if a.Total() == 0 {
		return 0
	}
	return float64(a.Correct) / float64(a.Total())
}

// ConfInt is the 95% Wilson score interval of the accuracy.
func (a *Accuracy) ConfInt() (float64, float64) {
	n := float64(a.Total())
	if n == 0 {
		return 0, 0
	}
	p := a.Accuracy()
	z2 := Z95 * Z95
	center := (p + z2/(2*n)) / (1 + z2/n)
	half := Z95 * math.Sqrt(p*(1-p)/n+z2/(4*n*n)) / (1 + z2/n)
	return math.Max(0, center-half), math.Min(1, center+half)
}
