package app

import (
	"fmt"

	"headat/eval"
	"headat/nlp/format/conll"
	nlp "headat/nlp/types"
	"headat/util"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
	"github.com/rs/zerolog/log"
)

const TOP_ERROR_TAGS = 5

func readTreebank(file string) ([]*nlp.DependencyParsedSentence, error) {
	if err := util.VerifyExists(file); err != nil {
		return nil, err
	}
	sents, err := conll.ReadFile(file)
	if err != nil {
		return nil, err
	}
	log.Info().Int("sentences", len(sents)).Str("file", file).Msg("Read treebank")
	graphs, err := conll.ToDependencyParsedCorpus(sents)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return graphs, nil
}

// DepEvalCorpus scores parsed trees against gold trees sentence by sentence.
// It also counts wrongly attached tokens by gold tag.
func DepEvalCorpus(parsed, gold []*nlp.DependencyParsedSentence) (*eval.DepTotal, map[string]int, error) {
	if len(parsed) != len(gold) {
		return nil, nil, fmt.Errorf("%w: %d parsed sentences, %d gold", nlp.ErrShapeMismatch, len(parsed), len(gold))
	}
	total := &eval.DepTotal{}
	errorTags := make(map[string]int)
	for i, instance := range parsed {
		result, err := eval.DepEval(instance, gold[i])
		if err != nil {
			return nil, nil, fmt.Errorf("sentence %d: %w", i+1, err)
		}
		total.Add(result)
		for j, head := range gold[i].Heads {
			if instance.Heads[j] != head {
				errorTags[gold[i].Tags[j]]++
			}
		}
	}
	return total, errorTags, nil
}

func DepEvalTrainAndParse(cmd *commander.Command, args []string) error {
	if err := SetupLogging(verbose, debug); err != nil {
		return err
	}
	if err := VerifyFlags(cmd, []string{"p", "g"}); err != nil {
		return err
	}
	parsed, err := readTreebank(input)
	if err != nil {
		return err
	}
	gold, err := readTreebank(inputGold)
	if err != nil {
		return err
	}
	total, errorTags, err := DepEvalCorpus(parsed, gold)
	if err != nil {
		return err
	}
	fmt.Fprintf(Stdout, "Result (UAS, LAS, UEM #, UEM %%): %.4f %.4f %d %.4f\n",
		total.UAS(), total.LAS(), total.Unlabeled.Exact, total.Unlabeled.ExactMatch())
	for _, datum := range util.GetTopNStrInt(errorTags, TOP_ERROR_TAGS) {
		log.Info().Str("tag", datum.S).Int("errors", datum.N).Msg("Attachment errors")
	}
	return nil
}

func DepEvalCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       DepEvalTrainAndParse,
		UsageLine: "depeval <file options> [arguments]",
		Short:     "runs dependency eval",
		Long: `
runs dependency eval

	$ ./headat depeval -p <conll> -g <conll> [options]

`,
		Flag: *flag.NewFlagSet("depeval", flag.ContinueOnError),
	}
	cmd.Flag.StringVar(&input, "p", "", "Parse Result Conll File")
	cmd.Flag.StringVar(&inputGold, "g", "", "Gold Conll File")
	cmd.Flag.BoolVar(&verbose, "v", false, "Verbose (info) logging")
	cmd.Flag.BoolVar(&debug, "V", false, "Debug logging")
	return cmd
}
