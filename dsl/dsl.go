// Package dsl collects terse constructors for building terms, literals,
// clauses and sentences in tests, mirroring the builder-function style of
// logic-engine's own dsl package.
package dsl

import (
	"github.com/brunokim/judged/kb"
	"github.com/brunokim/judged/sentence"
	"github.com/brunokim/judged/term"
)

func Atom(name string) term.Atom { return term.Atom{Name: name} }

func Int(i int) term.Int { return term.Int{Value: i} }

func Var(name string) term.Var { return term.NewVar(name) }

func Comp(functor string, args ...term.Term) *term.Compound {
	return term.NewCompound(functor, args...)
}

func Indicator(name string, arity int) term.Indicator {
	return term.Indicator{Name: name, Arity: arity}
}

// Lit builds a positive literal.
func Lit(predicate string, args ...term.Term) term.Literal {
	return term.NewLiteral(predicate, args...)
}

// Not builds a negated literal.
func Not(predicate string, args ...term.Term) term.Literal {
	return term.NewLiteral(predicate, args...).Negate()
}

// Fact builds a sentence-less clause with no body.
func Fact(head term.Literal) *kb.Clause {
	return kb.NewClause(head, nil)
}

// Rule builds a clause with a body and no sentence annotation.
func Rule(head term.Literal, body ...term.Literal) *kb.Clause {
	return kb.NewClause(head, nil, body...)
}

// Annotated builds a clause carrying a sentence annotation.
func Annotated(head term.Literal, sent sentence.Sentence, body ...term.Literal) *kb.Clause {
	return kb.NewClause(head, sent, body...)
}

// ---- sentence algebra

func Label(partition, value string) sentence.Sentence {
	return sentence.Lit{Label: sentence.Label{Partition: partition, Value: value}}
}

func And(left, right sentence.Sentence) sentence.Sentence { return sentence.Conjunct(left, right) }

func Or(left, right sentence.Sentence) sentence.Sentence { return sentence.Disjunct(left, right) }

func Neg(s sentence.Sentence) sentence.Sentence { return sentence.Negate(s) }

func World(assignments ...string) sentence.World {
	w := make(sentence.World, len(assignments))
	for _, a := range assignments {
		partition, value := splitAssignment(a)
		w[partition] = value
	}
	return w
}

func splitAssignment(a string) (string, string) {
	for i := 0; i < len(a); i++ {
		if a[i] == '=' {
			return a[:i], a[i+1:]
		}
	}
	panic("dsl.World: assignment missing '=': " + a)
}
