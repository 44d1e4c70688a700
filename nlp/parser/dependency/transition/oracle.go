package transition

// GoldMoves is the arc-hybrid dynamic oracle of Goldberg & Nivre (2013). It
// returns the subset of valid moves, in canonical order, after which the
// best tree still reachable from guess loses no further gold arcs. An empty
// result means no valid move is consistent with gold.
//
// guess must have a non-empty stack and a non-empty queue.
//
//	SH	(S   ,	wi|B,	A) => (S|wi,	   B,	A)
//	LR	(S|wi,	wj|B,	A) => (S   ,	wj|B,	A+{(wj,wi)})
//	RR	(S|wk|wi,  B,	A) => (S|wk,	   B,	A+{(wk,wi)})
func GoldMoves(valid []Move, guess, gold *Configuration) []Move {
	s0, q0 := guess.S0(), guess.Q0()
	s0Head, q0Head := gold.Heads[s0], gold.Heads[q0]
	shift := containsMove(valid, Shift)
	left := containsMove(valid, LeftReduce)
	right := containsMove(valid, RightReduce)

	// s0 is the head of q0, q0 must go on the stack
	if shift && q0Head == s0 {
		return []Move{Shift}
	}
	if left {
		if s0Head == q0 {
			return []Move{LeftReduce}
		}
		// s0 belongs to the same head as the element below it
		if s1, exists := guess.Stack.Index(1); exists && s0Head == gold.Heads[s1] {
			left = false
		}
	}
	if shift {
		// q0 has an arc with something on the stack that a shift would bury
		if guess.Stack.Contains(q0Head, 1) {
			shift = false
		} else {
			for _, i := range guess.Stack.Array {
				if gold.Heads[i] == q0 {
					shift = false
					break
				}
			}
		}
	}
	// popping s0 loses its arcs with the queue
	if s0Head > q0 && s0Head < len(gold.Heads) {
		left, right = false, false
	} else {
		for i := q0; i < len(gold.Heads); i++ {
			if gold.Heads[i] == s0 {
				left, right = false, false
				break
			}
		}
	}

	moves := make([]Move, 0, len(Moves))
	if shift {
		moves = append(moves, Shift)
	}
	if left {
		moves = append(moves, LeftReduce)
	}
	if right {
		moves = append(moves, RightReduce)
	}
	return moves
}
