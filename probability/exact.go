// Package probability implements the two probability back-ends that
// consume a resolver's sentence-annotated answer set: an exact back-end
// returning the simplified sentence text, and a Monte-Carlo back-end
// sampling worlds to estimate a probability.
package probability

import (
	"github.com/brunokim/judged/errors"
	"github.com/brunokim/judged/kb"
	"github.com/brunokim/judged/resolver"
	"github.com/brunokim/judged/sentence"
	"github.com/brunokim/judged/term"
)

// ExactAnswer is one answer's ground substitution and its canonicalized
// descriptive sentence text.
type ExactAnswer struct {
	Subst term.Substitution
	Text  string
}

// Exact implements the exact back-end: it returns each answer's simplified
// sentence, without computing a numeric probability. It refuses a program
// that uses negation anywhere in the knowledge base, since the source
// back-end it mirrors does not handle negation either.
//
// Answers sharing a substitution are collapsed when their sentences are
// logically equivalent (sentence.Equivalent), even if Simplify alone left
// their texts different — e.g. two syntactically distinct but
// partition-exhaustive disjunctions.
func Exact(k *kb.KB, result *resolver.Result) ([]ExactAnswer, error) {
	if hasNegation(k) {
		return nil, errors.Wrap(errors.UnsupportedOperation,
			"exact back-end does not support programs using negation")
	}
	type entry struct {
		key   string
		subst term.Substitution
		sent  sentence.Sentence
	}
	var entries []entry
	for _, a := range result.Answers {
		simplified := sentence.SimplifyWithDomain(a.Sentence, k)
		key := a.Subst.String()
		merged := false
		for i := range entries {
			if entries[i].key == key && sentence.Equivalent(entries[i].sent, simplified, k) {
				merged = true
				break
			}
		}
		if !merged {
			entries = append(entries, entry{key: key, subst: a.Subst, sent: simplified})
		}
	}
	out := make([]ExactAnswer, len(entries))
	for i, e := range entries {
		out[i] = ExactAnswer{Subst: e.subst, Text: sentence.Text(e.sent)}
	}
	return out, nil
}

func hasNegation(k *kb.KB) bool {
	for _, ind := range k.Indicators() {
		for _, c := range k.Clauses(ind) {
			for _, lit := range c.Body {
				if lit.Negated {
					return true
				}
			}
		}
	}
	return false
}
