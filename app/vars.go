package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"headat/nlp/parser/dependency"
	"headat/nlp/parser/dependency/transition"
	nlp "headat/nlp/types"
	"headat/util"

	"github.com/gonuts/commander"
	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	// Stdout receives command results (parses and scores).
	Stdout io.Writer = os.Stdout

	verbose, debug bool

	// file names
	tConll     string
	input      string
	inputGold  string
	evalConll  string
	outConll   string
	modelFile  string
	outModel   string
	configFile string
)

var ErrConflictingFlags = errors.New("conflicting flags")

// SetupLogging routes the global logger to a console writer on stderr. The
// level is warn unless verbose (info) or debug is set.
func SetupLogging(verbose, debug bool) error {
	if verbose && debug {
		return fmt.Errorf("%w: -v and -V are mutually exclusive", ErrConflictingFlags)
	}
	level := zerolog.WarnLevel
	switch {
	case debug:
		level = zerolog.DebugLevel
	case verbose:
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	return nil
}

func WriteModel(file string, parser *transition.DependencyParser) error {
	fObj, err := os.Create(file)
	if err != nil {
		return fmt.Errorf("failed creating model file %s: %w", file, err)
	}
	if err := parser.Write(fObj); err != nil {
		fObj.Close()
		return err
	}
	if err := fObj.Close(); err != nil {
		return fmt.Errorf("failed writing model file %s: %w", file, err)
	}
	sum, err := util.MD5File(file)
	if err != nil {
		return err
	}
	log.Info().Str("file", file).Str("id", parser.ID).Str("md5", sum).Msg("Wrote model")
	return nil
}

func ReadModel(file string) (*transition.DependencyParser, error) {
	fObj, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("failed reading model from %s: %w", file, err)
	}
	defer fObj.Close()
	parser, err := transition.Read(fObj)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	sum, err := util.MD5File(file)
	if err != nil {
		return nil, err
	}
	log.Info().Str("file", file).Str("id", parser.ID).Str("md5", sum).Msg("Read model")
	return parser, nil
}

// VerifyFlags prints usage and fails when one of the required flags is
// empty.
func VerifyFlags(cmd *commander.Command, required []string) error {
	for _, name := range required {
		f := cmd.Flag.Lookup(name)
		if f == nil || f.Value.String() == "" {
			cmd.Usage()
			return fmt.Errorf("required flag -%s not set", name)
		}
	}
	return nil
}

// exactlyOne fails unless exactly one of the named string flags is set.
func exactlyOne(cmd *commander.Command, names ...string) error {
	set := 0
	for _, name := range names {
		if f := cmd.Flag.Lookup(name); f != nil && f.Value.String() != "" {
			set++
		}
	}
	if set != 1 {
		cmd.Usage()
		return fmt.Errorf("%w: exactly one of %v is required, got %d", ErrConflictingFlags, names, set)
	}
	return nil
}

// Parse parses sentences on a pool of workers. Results keep the order of
// sentences; the first error (in sentence order) is returned.
func Parse(sentences []nlp.TaggedSentence, parser dependency.Parser, workers int) ([]*nlp.DependencyParsedSentence, error) {
	startTime := time.Now()
	parsed := make([]*nlp.DependencyParsedSentence, len(sentences))
	errs := make([]error, len(sentences))

	parseOne := func(i int) {
		tree, err := parser.ParseSentence(sentences[i])
		if err != nil {
			errs[i] = fmt.Errorf("sentence %d: %w", i+1, err)
			return
		}
		parsed[i] = tree
	}

	if workers <= 1 {
		for i := range sentences {
			parseOne(i)
		}
	} else {
		pool, err := ants.NewPool(workers)
		if err != nil {
			return nil, err
		}
		defer pool.Release()
		var wg sync.WaitGroup
		for i := range sentences {
			i := i
			wg.Add(1)
			if err := pool.Submit(func() {
				defer wg.Done()
				parseOne(i)
			}); err != nil {
				wg.Done()
				errs[i] = err
			}
		}
		wg.Wait()
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	log.Info().Int("sentences", len(sentences)).Int("workers", workers).Dur("elapsed", time.Since(startTime)).Msg("Parsed")
	return parsed, nil
}
