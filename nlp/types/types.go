package types

import (
	"errors"
	"fmt"
)

const (
	ROOT_TOKEN = "*ROOT*"
	ROOT_LABEL = "*ROOT*"
	// NYL marks an arc that has not been labeled yet.
	NYL = "*NYL*"
)

var (
	ErrShapeMismatch  = errors.New("mismatched sentence field lengths")
	ErrHeadOutOfRange = errors.New("head index out of range")
)

type TaggedToken struct {
	Token, POS string
}

type TaggedSentence []TaggedToken

func (s TaggedSentence) Tokens() []string {
	tokens := make([]string, len(s))
	for i, token := range s {
		tokens[i] = token.Token
	}
	return tokens
}

func (s TaggedSentence) Tags() []string {
	tags := make([]string, len(s))
	for i, token := range s {
		tags[i] = token.POS
	}
	return tags
}

// DependencyParsedSentence is a tagged sentence with one head and label per
// token. Heads are 1-based token positions; 0 is the artificial root.
type DependencyParsedSentence struct {
	Tokens, Tags []string
	Heads        []int
	Labels       []string
}

func (d *DependencyParsedSentence) Len() int {
	return len(d.Tokens)
}

func (d *DependencyParsedSentence) TaggedSentence() TaggedSentence {
	sent := make(TaggedSentence, len(d.Tokens))
	for i := range d.Tokens {
		sent[i] = TaggedToken{d.Tokens[i], d.Tags[i]}
	}
	return sent
}

// Validate checks that all fields have the same length and every head points
// at the root or at a token of the sentence.
func (d *DependencyParsedSentence) Validate() error {
	n := len(d.Tokens)
	if len(d.Tags) != n || len(d.Heads) != n || len(d.Labels) != n {
		return fmt.Errorf("%w: %d tokens, %d tags, %d heads, %d labels",
			ErrShapeMismatch, n, len(d.Tags), len(d.Heads), len(d.Labels))
	}
	for i, head := range d.Heads {
		if head < 0 || head > n {
			return fmt.Errorf("%w: token %d has head %d", ErrHeadOutOfRange, i+1, head)
		}
	}
	return nil
}
