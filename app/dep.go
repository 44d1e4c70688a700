package app

import (
	"fmt"
	"time"

	"headat/eval"
	"headat/nlp/format/conll"
	"headat/nlp/format/taggedsentence"
	"headat/nlp/parser/dependency/transition"
	nlp "headat/nlp/types"
	"headat/util"
	"headat/util/conf"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
	"github.com/rs/zerolog/log"
)

var (
	depEpochs  int
	depSeed    int64
	depAlpha   float64
	depClip    int
	depLabeled bool
	depWorkers int
)

// DepConfig merges the configuration file (if any) with the flags given on
// the command line. Flags win.
func DepConfig(cmd *commander.Command) (*conf.Config, error) {
	config := &conf.Config{}
	if configFile != "" {
		var err error
		if config, err = conf.ReadFile(configFile); err != nil {
			return nil, err
		}
	}
	cmd.Flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "E":
			config.Epochs = depEpochs
		case "seed":
			config.Seed = depSeed
		case "alpha":
			config.Alpha = depAlpha
		case "clip":
			config.Clip = depClip
		case "labeled":
			config.Labeled = depLabeled
		case "j":
			config.Workers = depWorkers
		}
	})
	config.ApplyDefaults()
	return config, nil
}

func DepConfigOut(config *conf.Config) {
	log.Info().
		Int("epochs", config.Epochs).
		Int64("seed", config.Seed).
		Float64("alpha", config.Alpha).
		Int("clip", config.Clip).
		Bool("labeled", config.Labeled).
		Int("workers", config.Workers).
		Msg("Configuration")
	log.Info().
		Str("train", tConll).
		Str("model", modelFile).
		Str("out model", outModel).
		Str("input", input).
		Str("eval", evalConll).
		Str("out", outConll).
		Msg("Data")
}

// Train fits a new parser on a CoNLL treebank.
func Train(trainFile string, config *conf.Config) (*transition.DependencyParser, error) {
	if err := util.VerifyExists(trainFile); err != nil {
		return nil, err
	}
	sents, err := conll.ReadFile(trainFile)
	if err != nil {
		return nil, err
	}
	golds, err := conll.ToDependencyParsedCorpus(sents)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", trainFile, err)
	}
	log.Info().Int("sentences", len(golds)).Str("file", trainFile).Msg("Read training treebank")

	parser := transition.NewDependencyParser(transition.Options{
		Seed:    config.Seed,
		Clip:    config.Clip,
		Labeled: config.Labeled,
	})
	startTime := time.Now()
	accuracies, err := parser.Fit(golds, config.Epochs, config.Alpha)
	if err != nil {
		return nil, err
	}
	log.Info().Floats64("accuracies", accuracies).Dur("elapsed", time.Since(startTime)).Str("id", parser.ID).Msg("Trained")
	return parser, nil
}

// ParseFile parses a file of tagged sentences and writes the trees as CoNLL
// to outFile, or to Stdout when outFile is empty.
func ParseFile(parser *transition.DependencyParser, inFile, outFile string, workers int) error {
	if err := util.VerifyExists(inFile); err != nil {
		return err
	}
	sents, err := taggedsentence.ReadFile(inFile)
	if err != nil {
		return err
	}
	log.Info().Int("sentences", len(sents)).Str("file", inFile).Msg("Read tagged sentences")
	parsed, err := Parse(sents, parser, workers)
	if err != nil {
		return err
	}
	out := conll.FromDependencyParsedCorpus(parsed)
	if outFile == "" {
		return conll.Write(Stdout, out)
	}
	if err := conll.WriteFile(outFile, out); err != nil {
		return err
	}
	log.Info().Str("file", outFile).Msg("Wrote parses")
	return nil
}

// Evaluate parses the sentences of a gold treebank and returns the head
// attachment accuracy over all its tokens.
func Evaluate(parser *transition.DependencyParser, goldFile string, workers int) (*eval.Accuracy, *eval.DepTotal, error) {
	if err := util.VerifyExists(goldFile); err != nil {
		return nil, nil, err
	}
	sents, err := conll.ReadFile(goldFile)
	if err != nil {
		return nil, nil, err
	}
	golds, err := conll.ToDependencyParsedCorpus(sents)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", goldFile, err)
	}
	tagged := make([]nlp.TaggedSentence, len(golds))
	for i, gold := range golds {
		tagged[i] = gold.TaggedSentence()
	}
	parsed, err := Parse(tagged, parser, workers)
	if err != nil {
		return nil, nil, err
	}
	acc := &eval.Accuracy{}
	total := &eval.DepTotal{}
	for i, gold := range golds {
		acc.BatchUpdate(gold.Heads, parsed[i].Heads)
		result, err := eval.DepEval(parsed[i], gold)
		if err != nil {
			return nil, nil, err
		}
		total.Add(result)
	}
	return acc, total, nil
}

func DepTrainAndParse(cmd *commander.Command, args []string) error {
	if err := SetupLogging(verbose, debug); err != nil {
		return err
	}
	if err := exactlyOne(cmd, "r", "t"); err != nil {
		return err
	}
	if err := exactlyOne(cmd, "w", "p", "e"); err != nil {
		return err
	}
	if outConll != "" && input == "" {
		cmd.Usage()
		return fmt.Errorf("%w: -o requires -p", ErrConflictingFlags)
	}
	config, err := DepConfig(cmd)
	if err != nil {
		return err
	}
	DepConfigOut(config)

	var parser *transition.DependencyParser
	if tConll != "" {
		parser, err = Train(tConll, config)
	} else {
		parser, err = ReadModel(modelFile)
	}
	if err != nil {
		return err
	}

	switch {
	case outModel != "":
		return WriteModel(outModel, parser)
	case input != "":
		return ParseFile(parser, input, outConll, config.Workers)
	default:
		acc, total, err := Evaluate(parser, evalConll, config.Workers)
		if err != nil {
			return err
		}
		lo, hi := acc.ConfInt()
		fmt.Fprintf(Stdout, "Accuracy: %.4f [%.4f, %.4f].\n", acc.Accuracy(), lo, hi)
		log.Info().
			Float64("uas", total.UAS()).
			Float64("las", total.LAS()).
			Float64("exact", total.Unlabeled.ExactMatch()).
			Msg("Evaluation")
		return nil
	}
}

func DepCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       DepTrainAndParse,
		UsageLine: "dep <file options> [arguments]",
		Short:     "runs the greedy arc-hybrid dependency parser",
		Long: `
runs the greedy arc-hybrid dependency parser

	$ ./headat dep -t <conll> -w <model> [options]
	$ ./headat dep -r <model> -p <tagged sentences> [-o <conll>] [options]
	$ ./headat dep -r <model> -e <conll> [options]

Exactly one of -r and -t, and exactly one of -w, -p and -e are required.
Options given on the command line override the configuration file (-c).
`,
		Flag: *flag.NewFlagSet("dep", flag.ContinueOnError),
	}
	cmd.Flag.StringVar(&modelFile, "r", "", "Read model file")
	cmd.Flag.StringVar(&tConll, "t", "", "Training Conll File")
	cmd.Flag.StringVar(&outModel, "w", "", "Write model file")
	cmd.Flag.StringVar(&input, "p", "", "Input Tagged Sentences File (word/TAG) to parse")
	cmd.Flag.StringVar(&evalConll, "e", "", "Gold Conll File to evaluate on")
	cmd.Flag.StringVar(&outConll, "o", "", "Output Conll File for -p (default stdout)")
	cmd.Flag.StringVar(&configFile, "c", "", "YAML configuration file")
	cmd.Flag.IntVar(&depEpochs, "E", transition.EPOCHS, "Number of training epochs")
	cmd.Flag.Int64Var(&depSeed, "seed", 0, "Seed of the training shuffle")
	cmd.Flag.Float64Var(&depAlpha, "alpha", conf.DefaultAlpha, "Perceptron update step")
	cmd.Flag.IntVar(&depClip, "clip", transition.CLIP, "Cap on depth, gap and valency counts in features")
	cmd.Flag.BoolVar(&depLabeled, "labeled", false, "Train an arc labeler")
	cmd.Flag.IntVar(&depWorkers, "j", 0, "Parsing workers (0 = number of CPUs)")
	cmd.Flag.BoolVar(&verbose, "v", false, "Verbose (info) logging")
	cmd.Flag.BoolVar(&debug, "V", false, "Debug logging")
	return cmd
}
