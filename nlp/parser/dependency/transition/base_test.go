package transition

import (
	"testing"

	nlp "headat/nlp/types"

	"github.com/stretchr/testify/require"
)

func dogsBark() *nlp.DependencyParsedSentence {
	return &nlp.DependencyParsedSentence{
		Tokens: []string{"Dogs", "bark"},
		Tags:   []string{"NOUN", "VERB"},
		Heads:  []int{2, 0},
		Labels: []string{"nsubj", "root"},
	}
}

// Economic news had little effect on financial markets .
func economicNews() *nlp.DependencyParsedSentence {
	return &nlp.DependencyParsedSentence{
		Tokens: []string{"Economic", "news", "had", "little", "effect", "on", "financial", "markets", "."},
		Tags:   []string{"JJ", "NN", "VBD", "JJ", "NN", "IN", "JJ", "NNS", "."},
		Heads:  []int{2, 3, 0, 5, 3, 5, 8, 6, 3},
		Labels: []string{"ATT", "SBJ", "ROOT", "ATT", "OBJ", "ATT", "ATT", "PC", "PU"},
	}
}

func chain(heads ...int) *nlp.DependencyParsedSentence {
	sent := &nlp.DependencyParsedSentence{
		Tokens: make([]string, len(heads)),
		Tags:   make([]string, len(heads)),
		Heads:  heads,
		Labels: make([]string, len(heads)),
	}
	for i := range heads {
		sent.Tokens[i] = string(rune('A' + i))
		sent.Tags[i] = "X"
		sent.Labels[i] = "dep"
	}
	return sent
}

func goldConfiguration(t *testing.T, sent *nlp.DependencyParsedSentence) *Configuration {
	gold, err := NewGoldConfiguration(sent)
	require.NoError(t, err)
	return gold
}

func scratch(t *testing.T, sent *nlp.DependencyParsedSentence) *Configuration {
	c, err := NewConfiguration(sent.Tokens, sent.Tags)
	require.NoError(t, err)
	return c
}

// followOracle parses along the oracle, taking RightReduce whenever it is
// allowed and the first allowed move otherwise. Other choices among gold moves
// can end in a non-gold tree: GoldMoves drops LeftReduce when s0's gold head
// equals s1's gold head, not when it equals s1.
func followOracle(t *testing.T, sent *nlp.DependencyParsedSentence) *Configuration {
	gold := goldConfiguration(t, sent)
	guess := scratch(t, sent)
	for !guess.IsComplete() {
		if move, forced := forcedMove(guess); forced {
			guess.ApplyMove(move, "")
			continue
		}
		moves := GoldMoves(guess.ValidMoves(), guess, gold)
		require.NotEmpty(t, moves, "oracle exhausted at %v", guess)
		move := moves[0]
		if containsMove(moves, RightReduce) {
			move = RightReduce
		}
		guess.ApplyMove(move, "")
	}
	return guess
}

func countMoves(seq []Move) map[Move]int {
	counts := make(map[Move]int)
	for _, m := range seq {
		counts[m]++
	}
	return counts
}
