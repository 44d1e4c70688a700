package transition

import "fmt"

// Move is one of the three arc-hybrid transitions.
type Move int

const (
	Shift Move = iota
	LeftReduce
	RightReduce
)

// Moves lists every move in canonical order. Scoring ties are broken by this
// order.
var Moves = []Move{Shift, LeftReduce, RightReduce}

func (m Move) String() string {
	switch m {
	case Shift:
		return "SHIFT"
	case LeftReduce:
		return "LEFT"
	case RightReduce:
		return "RIGHT"
	default:
		return fmt.Sprintf("Move(%d)", int(m))
	}
}

func (m Move) IsReduce() bool {
	return m == LeftReduce || m == RightReduce
}

func containsMove(moves []Move, m Move) bool {
	for _, cur := range moves {
		if cur == m {
			return true
		}
	}
	return false
}

func movesAsClasses(moves []Move) []int {
	classes := make([]int, len(moves))
	for i, m := range moves {
		classes[i] = int(m)
	}
	return classes
}
