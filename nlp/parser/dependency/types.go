package dependency

import (
	nlp "headat/nlp/types"
)

// Parser predicts a dependency tree for a tagged sentence.
type Parser interface {
	ParseSentence(nlp.TaggedSentence) (*nlp.DependencyParsedSentence, error)
}
