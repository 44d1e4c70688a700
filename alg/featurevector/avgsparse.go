package featurevector

// HistoryValue is a weight that keeps the running sum of its past values so
// that the average over all generations can be computed lazily.
type HistoryValue struct {
	Generation   int
	Value, Total float64
}

// IntegratedValue is the sum of the value over every generation up to (but
// excluding) the given one.
func (h *HistoryValue) IntegratedValue(generation int) float64 {
	return h.Total + float64(generation-h.Generation)*h.Value
}

func (h *HistoryValue) Integrate(generation int) {
	h.Total = h.IntegratedValue(generation)
	h.Generation = generation
}

func (h *HistoryValue) Add(generation int, amount float64) {
	h.Integrate(generation)
	h.Value += amount
}

// Average replaces the value with its mean over generations [0, generation).
func (h *HistoryValue) Average(generation int) {
	h.Integrate(generation)
	h.Value = h.Total / float64(generation)
}

// AvgSparse maps a feature id to a dense row of class weights. Rows are
// created on first update; features never updated have no row.
type AvgSparse struct {
	Vals    map[int][]HistoryValue
	Classes int
}

func (v *AvgSparse) row(feature int) []HistoryValue {
	row, exists := v.Vals[feature]
	if !exists || len(row) < v.Classes {
		extended := make([]HistoryValue, v.Classes)
		copy(extended, row)
		v.Vals[feature] = extended
		row = extended
	}
	return row
}

func (v *AvgSparse) SetClasses(classes int) {
	if classes < v.Classes {
		panic("Cannot shrink the number of classes")
	}
	v.Classes = classes
}

func (v *AvgSparse) Add(generation, feature, class int, amount float64) {
	if class < 0 || class >= v.Classes {
		panic("Class out of range")
	}
	v.row(feature)[class].Add(generation, amount)
}

// AddScores adds the current weights of feature to scores, indexed by class.
func (v *AvgSparse) AddScores(feature int, scores []float64) {
	row, exists := v.Vals[feature]
	if !exists {
		return
	}
	for class := range row {
		if class < len(scores) {
			scores[class] += row[class].Value
		}
	}
}

func (v *AvgSparse) Value(feature, class int) float64 {
	row, exists := v.Vals[feature]
	if !exists || class >= len(row) {
		return 0
	}
	return row[class].Value
}

func (v *AvgSparse) Average(generation int) {
	for _, row := range v.Vals {
		for i := range row {
			row[i].Average(generation)
		}
	}
}

func (v *AvgSparse) Len() int {
	return len(v.Vals)
}

func NewAvgSparse(classes int) *AvgSparse {
	return &AvgSparse{Vals: make(map[int][]HistoryValue), Classes: classes}
}
