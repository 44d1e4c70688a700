package perceptron

// Model is a trainable multiclass linear scorer over sparse string features.
// Classes are dense integer ids in [0, NumClasses()).
type Model interface {
	NumClasses() int
	Scores(features []string) []float64
	Update(truth, guess int, features []string, alpha float64)
	Tick()
	Time() int
	Finalize()
}
