package taggedsentence

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	nlp "headat/nlp/types"
)

// Read parses one sentence per line, tokens separated by spaces, each token
// written word/TAG. The tag follows the last slash so words may contain
// slashes. Blank lines are skipped.
func Read(reader io.Reader) ([]nlp.TaggedSentence, error) {
	var sentences []nlp.TaggedSentence
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 {
			continue
		}
		taggedTokenStrings := strings.Fields(line)
		sent := make(nlp.TaggedSentence, len(taggedTokenStrings))
		for j, taggedTokenString := range taggedTokenStrings {
			split := strings.LastIndex(taggedTokenString, "/")
			if split <= 0 || split == len(taggedTokenString)-1 {
				return nil, errors.New("Got untagged token: " + taggedTokenString + " at line " + fmt.Sprintf("%v", lineNum))
			}
			sent[j] = nlp.TaggedToken{
				Token: taggedTokenString[:split],
				POS:   taggedTokenString[split+1:],
			}
		}
		sentences = append(sentences, sent)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return sentences, nil
}

func ReadFile(filename string) ([]nlp.TaggedSentence, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Read(file)
}
