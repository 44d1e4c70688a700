package conll

// Package conll reads and writes CoNLL-X format files
// For a description see http://ilk.uvt.nl/conll/#dataformat

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	nlp "headat/nlp/types"
)

const (
	FIELD_SEPARATOR      = '\t'
	NUM_FIELDS           = 10
	FEATURES_SEPARATOR   = "|"
	FEATURE_SEPARATOR    = "="
	FEATURE_CONCAT_DELIM = ","

	// NO_HEAD marks a row whose HEAD field is "_"
	NO_HEAD = -1
)

type Features map[string]string

func FormatFeatures(feat map[string]string) string {
	if len(feat) == 0 {
		return "_"
	}
	strs := make([]string, 0, len(feat))
	for k, v := range feat {
		strs = append(strs, fmt.Sprintf("%v%v%v", k, FEATURE_SEPARATOR, v))
	}
	sort.Strings(strs)
	return strings.Join(strs, FEATURES_SEPARATOR)
}

// A Row is a single parsed row of a conll data set
// LEMMA, PHEAD and PDEPREL are not kept
type Row struct {
	ID      int
	Form    string
	CPosTag string
	PosTag  string
	Feats   Features
	Head    int
	DepRel  string
}

func (r Row) String() string {
	head := "_"
	if r.Head >= 0 {
		head = strconv.Itoa(r.Head)
	}
	fields := []string{
		strconv.Itoa(r.ID),
		r.Form,
		"_",
		r.CPosTag,
		r.PosTag,
		FormatFeatures(r.Feats),
		head,
		r.DepRel,
		"_",
		"_"}
	return strings.Join(fields, string(FIELD_SEPARATOR))
}

// A Sentence is a map of Rows using their ids
type Sentence map[int]Row

type Sentences []Sentence

func ParseInt(value string) (int, error) {
	if value == "_" {
		return 0, nil
	}
	i, err := strconv.ParseInt(value, 10, 0)
	return int(i), err
}

func ParseString(value string) string {
	if value == "_" {
		return ""
	}
	return value
}

func ParseFeatures(featuresStr string) (Features, error) {
	var featureMap Features
	if featuresStr == "_" {
		return featureMap, nil
	}

	featureList := strings.Split(featuresStr, FEATURES_SEPARATOR)
	featureMap = make(Features, len(featureList))
	for _, featureStr := range featureList {
		featureKV := strings.Split(featureStr, FEATURE_SEPARATOR)
		if len(featureKV) != 2 {
			return nil, errors.New("Wrong number of fields for split of feature " + featureStr)
		}
		featName := featureKV[0]
		featValue := featureKV[1]
		existingFeatValue, featExist := featureMap[featName]
		if featExist {
			featureMap[featName] = existingFeatValue + FEATURE_CONCAT_DELIM + featValue
		} else {
			featureMap[featName] = featValue
		}
	}
	return featureMap, nil
}

func ParseRow(record []string) (Row, error) {
	var row Row
	if len(record) != NUM_FIELDS {
		return row, fmt.Errorf("expected %d fields, got %d", NUM_FIELDS, len(record))
	}
	id, err := ParseInt(record[0])
	if err != nil {
		return row, fmt.Errorf("error parsing ID field (%s): %w", record[0], err)
	}
	row.ID = id

	form := ParseString(record[1])
	if form == "" {
		return row, errors.New("Empty FORM field")
	}
	row.Form = form

	cpostag := ParseString(record[3])
	if cpostag == "" {
		return row, errors.New("Empty CPOSTAG field")
	}
	row.CPosTag = cpostag

	row.PosTag = ParseString(record[4])
	if row.PosTag == "" {
		row.PosTag = cpostag
	}

	if record[6] == "_" {
		row.Head = NO_HEAD
	} else {
		head, err := strconv.Atoi(record[6])
		if err != nil {
			return row, fmt.Errorf("error parsing HEAD field (%s): %w", record[6], err)
		}
		row.Head = head
	}

	row.DepRel = ParseString(record[7])
	if row.DepRel == "" {
		row.DepRel = nlp.NYL
	}

	features, err := ParseFeatures(record[5])
	if err != nil {
		return row, fmt.Errorf("error parsing FEATS field (%s): %w", record[5], err)
	}
	row.Feats = features
	return row, nil
}

// Read parses sentences separated by blank lines. Fields are tab separated;
// quotes have no special meaning.
func Read(reader io.Reader) (Sentences, error) {
	var (
		sentences   Sentences
		currentSent Sentence
	)
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			if currentSent != nil {
				sentences = append(sentences, currentSent)
				currentSent = nil
			}
			continue
		}
		row, err := ParseRow(strings.Split(line, string(FIELD_SEPARATOR)))
		if err != nil {
			return nil, fmt.Errorf("error processing line %d at sentence %d: %w", lineNum, len(sentences), err)
		}
		if currentSent == nil {
			currentSent = make(Sentence)
		}
		if _, exists := currentSent[row.ID]; exists {
			return nil, fmt.Errorf("error processing line %d at sentence %d: duplicate ID %d", lineNum, len(sentences), row.ID)
		}
		currentSent[row.ID] = row
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failure reading conll data: %w", err)
	}
	if currentSent != nil {
		sentences = append(sentences, currentSent)
	}
	return sentences, nil
}

func ReadFile(filename string) (Sentences, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Read(file)
}

func Write(writer io.Writer, sents Sentences) error {
	bw := bufio.NewWriter(writer)
	for _, sent := range sents {
		for i := 1; i <= len(sent); i++ {
			if _, err := bw.WriteString(sent[i].String() + "\n"); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func WriteFile(filename string, sents Sentences) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	return Write(file, sents)
}

// ToDependencyParsed converts a sentence whose rows are numbered 1..n.
func ToDependencyParsed(sent Sentence) (*nlp.DependencyParsedSentence, error) {
	n := len(sent)
	d := &nlp.DependencyParsedSentence{
		Tokens: make([]string, n),
		Tags:   make([]string, n),
		Heads:  make([]int, n),
		Labels: make([]string, n),
	}
	for i := 1; i <= n; i++ {
		row, exists := sent[i]
		if !exists {
			return nil, fmt.Errorf("sentence of %d rows has no row %d", n, i)
		}
		if row.Head == NO_HEAD {
			return nil, fmt.Errorf("%w: row %d (%s) has no HEAD", nlp.ErrHeadOutOfRange, i, row.Form)
		}
		d.Tokens[i-1] = row.Form
		d.Tags[i-1] = row.CPosTag
		d.Heads[i-1] = row.Head
		d.Labels[i-1] = row.DepRel
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

func FromDependencyParsed(d *nlp.DependencyParsedSentence) Sentence {
	sent := make(Sentence, d.Len())
	for i := range d.Tokens {
		sent[i+1] = Row{
			ID:      i + 1,
			Form:    d.Tokens[i],
			CPosTag: d.Tags[i],
			PosTag:  d.Tags[i],
			Head:    d.Heads[i],
			DepRel:  d.Labels[i],
		}
	}
	return sent
}

func ToDependencyParsedCorpus(sents Sentences) ([]*nlp.DependencyParsedSentence, error) {
	corpus := make([]*nlp.DependencyParsedSentence, len(sents))
	for i, sent := range sents {
		d, err := ToDependencyParsed(sent)
		if err != nil {
			return nil, fmt.Errorf("sentence %d: %w", i, err)
		}
		corpus[i] = d
	}
	return corpus, nil
}

func FromDependencyParsedCorpus(corpus []*nlp.DependencyParsedSentence) Sentences {
	sents := make(Sentences, len(corpus))
	for i, d := range corpus {
		sents[i] = FromDependencyParsed(d)
	}
	return sents
}
