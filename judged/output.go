package judged

import (
	"fmt"
	"io"

	"github.com/brunokim/judged/probability"
	"github.com/brunokim/judged/resolver"
	"github.com/brunokim/judged/sentence"
)

// OutputSink receives the answers a query produces, and any warning the
// resolver surfaced (e.g. an UnknownPredicate query). The shell supplies
// an implementation; the core never formats for a terminal directly
// (spec.md §1 keeps pretty-printing and colorization an external
// collaborator).
type OutputSink interface {
	Deterministic(result *resolver.Result) error
	Exact(answers []probability.ExactAnswer) error
	MonteCarlo(mc *probability.Result, answers []resolver.Answer) error
	Warning(err error)
}

// WriterSink is a plain-text OutputSink writing to an io.Writer, the
// default the shell uses for -f plain (spec.md §6).
type WriterSink struct {
	W io.Writer
}

func (s WriterSink) Deterministic(result *resolver.Result) error {
	for _, a := range result.Answers {
		if _, err := fmt.Fprintf(s.W, "%s [%s]\n", a.Subst.String(), sentence.Text(a.Sentence)); err != nil {
			return err
		}
	}
	return nil
}

func (s WriterSink) Exact(answers []probability.ExactAnswer) error {
	for _, a := range answers {
		if _, err := fmt.Fprintf(s.W, "%s [%s]\n", a.Subst.String(), a.Text); err != nil {
			return err
		}
	}
	return nil
}

func (s WriterSink) MonteCarlo(mc *probability.Result, answers []resolver.Answer) error {
	for i, e := range mc.Estimates {
		if _, err := fmt.Fprintf(s.W, "%s ~ %.4f (%d/%d hits)\n",
			answers[i].Subst.String(), e.Probability, e.Hits, mc.Samples); err != nil {
			return err
		}
	}
	return nil
}

func (s WriterSink) Warning(err error) {
	fmt.Fprintf(s.W, "warning: %v\n", err)
}
