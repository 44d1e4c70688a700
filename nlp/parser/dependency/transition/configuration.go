package transition

import (
	"fmt"
	"strings"

	"headat/alg"
	nlp "headat/nlp/types"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// NoHead is the permanent head of the root position.
	NoHead = -1
	// Unassigned is the head of a token that has not been attached yet.
	Unassigned = -2
)

var ErrShapeMismatch = nlp.ErrShapeMismatch

// Configuration is the state of an arc-hybrid parse of a single sentence.
// All per-token slices are indexed by position, with the artificial root at
// position 0 and the words at 1..L. The queue is the range [QueueFront, L+1).
type Configuration struct {
	Tokens, Tags []string
	Heads        []int
	Labels       []string
	LeftDeps     [][]int
	RightDeps    [][]int
	Stack        *alg.StackArray
	QueueFront   int
	Sequence     []Move

	utokens []string
}

func newConfiguration(tokens, tags []string) *Configuration {
	n := len(tokens) + 1
	c := &Configuration{
		Tokens:     make([]string, n),
		Tags:       make([]string, n),
		Heads:      make([]int, n),
		Labels:     make([]string, n),
		LeftDeps:   make([][]int, n),
		RightDeps:  make([][]int, n),
		Stack:      alg.NewStackArray(n),
		QueueFront: 1,
		Sequence:   make([]Move, 0, 2*n),
		utokens:    make([]string, n),
	}
	c.Tokens[0], c.Tags[0] = nlp.ROOT_TOKEN, nlp.ROOT_LABEL
	copy(c.Tokens[1:], tokens)
	copy(c.Tags[1:], tags)
	// a Caser is stateful, one per configuration
	upper := cases.Upper(language.Und)
	for i, token := range c.Tokens {
		c.utokens[i] = upper.String(token)
		c.Heads[i] = Unassigned
		c.Labels[i] = nlp.NYL
	}
	c.Heads[0] = NoHead
	c.Stack.Push(0)
	return c
}

// NewConfiguration creates the initial configuration for parsing a tagged
// sentence.
func NewConfiguration(tokens, tags []string) (*Configuration, error) {
	if len(tokens) != len(tags) {
		return nil, fmt.Errorf("%w: %d tokens, %d tags", ErrShapeMismatch, len(tokens), len(tags))
	}
	return newConfiguration(tokens, tags), nil
}

// NewGoldConfiguration creates a configuration holding the gold tree of a
// parsed sentence. Only its heads, labels and dependent lists are meaningful.
func NewGoldConfiguration(sent *nlp.DependencyParsedSentence) (*Configuration, error) {
	if err := sent.Validate(); err != nil {
		return nil, err
	}
	c := newConfiguration(sent.Tokens, sent.Tags)
	for i, head := range sent.Heads {
		c.AddArc(head, i+1, sent.Labels[i])
	}
	return c, nil
}

// Len is the number of words, not counting the root.
func (c *Configuration) Len() int {
	return len(c.Tokens) - 1
}

func (c *Configuration) Depth() int {
	return c.Stack.Size()
}

// S0 is the top of the stack.
func (c *Configuration) S0() int {
	s0, exists := c.Stack.Peek()
	if !exists {
		panic("Can't get s0, stack is empty")
	}
	return s0
}

// Q0 is the front of the queue. It equals L+1 when the queue is empty.
func (c *Configuration) Q0() int {
	return c.QueueFront
}

func (c *Configuration) QueueEmpty() bool {
	return c.QueueFront >= len(c.Tokens)
}

func (c *Configuration) QueueLen() int {
	if c.QueueEmpty() {
		return 0
	}
	return len(c.Tokens) - c.QueueFront
}

func (c *Configuration) Queue() []int {
	queue := make([]int, 0, c.QueueLen())
	for i := c.QueueFront; i < len(c.Tokens); i++ {
		queue = append(queue, i)
	}
	return queue
}

func (c *Configuration) IsComplete() bool {
	return c.Depth() == 1 && c.QueueEmpty()
}

func (c *Configuration) HasHead(i int) bool {
	return c.Heads[i] >= 0
}

func (c *Configuration) AddArc(head, dependent int, label string) {
	if dependent <= 0 || dependent >= len(c.Tokens) || head < 0 || head >= len(c.Tokens) {
		panic(fmt.Sprintf("Can't add arc %d -> %d, index out of range", head, dependent))
	}
	if c.HasHead(dependent) {
		panic(fmt.Sprintf("Can't add arc for %d, it already has a head", dependent))
	}
	if label == "" {
		label = nlp.NYL
	}
	c.Heads[dependent] = head
	c.Labels[dependent] = label
	if dependent < head {
		c.LeftDeps[head] = append(c.LeftDeps[head], dependent)
	} else {
		c.RightDeps[head] = append(c.RightDeps[head], dependent)
	}
}

func (c *Configuration) ApplyMove(move Move, label string) {
	// Transition System:
	// SH	(S   ,	wi|B,	A) => (S|wi,	   B,	A)
	// LR	(S|wi,	wj|B,	A) => (S   ,	wj|B,	A+{(wj,r,wi)})
	// RR	(S|wk|wi,  B,	A) => (S|wk,	   B,	A+{(wk,r,wi)})
	switch move {
	case Shift:
		if c.QueueEmpty() {
			panic("Can't shift, queue is empty")
		}
		c.Stack.Push(c.QueueFront)
		c.QueueFront++
	case LeftReduce:
		if c.QueueEmpty() {
			panic("Can't left reduce, queue is empty")
		}
		wi := c.pop("left reduce")
		c.AddArc(c.QueueFront, wi, label)
	case RightReduce:
		if c.Depth() < 2 {
			panic("Can't right reduce, stack has less than two elements")
		}
		wi := c.pop("right reduce")
		wk, _ := c.Stack.Peek()
		c.AddArc(wk, wi, label)
	default:
		panic(fmt.Sprintf("Unknown move %v", move))
	}
	c.Sequence = append(c.Sequence, move)
}

func (c *Configuration) pop(name string) int {
	wi, exists := c.Stack.Peek()
	if !exists {
		panic(fmt.Sprintf("Can't %s, stack is empty", name))
	}
	if wi == 0 {
		panic(fmt.Sprintf("Can't %s, attempted to pop the root", name))
	}
	c.Stack.Pop()
	return wi
}

// ValidMoves returns the legal moves in canonical order.
func (c *Configuration) ValidMoves() []Move {
	moves := make([]Move, 0, len(Moves))
	qExists := !c.QueueEmpty()
	depth := c.Depth()
	if qExists {
		moves = append(moves, Shift)
	}
	if qExists && depth >= 1 && c.S0() != 0 {
		moves = append(moves, LeftReduce)
	}
	if depth >= 2 {
		moves = append(moves, RightReduce)
	}
	return moves
}

// Tree exports the parse, dropping the root position. Unattached tokens keep
// the Unassigned head.
func (c *Configuration) Tree() *nlp.DependencyParsedSentence {
	n := c.Len()
	tree := &nlp.DependencyParsedSentence{
		Tokens: make([]string, n),
		Tags:   make([]string, n),
		Heads:  make([]int, n),
		Labels: make([]string, n),
	}
	copy(tree.Tokens, c.Tokens[1:])
	copy(tree.Tags, c.Tags[1:])
	copy(tree.Heads, c.Heads[1:])
	copy(tree.Labels, c.Labels[1:])
	return tree
}

func (c *Configuration) String() string {
	arcs := make([]string, 0, c.Len())
	for i := 1; i < len(c.Heads); i++ {
		if c.HasHead(i) {
			arcs = append(arcs, fmt.Sprintf("(%d,%s,%d)", c.Heads[i], c.Labels[i], i))
		}
	}
	return fmt.Sprintf("S=%v\tQ=%v\tA=[%s]", c.Stack.Array, c.Queue(), strings.Join(arcs, " "))
}
