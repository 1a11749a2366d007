package dsl

import (
	"testing"

	"github.com/brunokim/judged/sentence"
)

func TestFactAndRule(t *testing.T) {
	a := Atom("a")
	c := Fact(Lit("p", a))
	if c.Head.Predicate != "p" || len(c.Body) != 0 {
		t.Errorf("Fact() = %v, want p(a) with empty body", c)
	}

	x := Var("X")
	r := Rule(Lit("q", x), Lit("p", x), Not("r", x))
	if len(r.Body) != 2 || !r.Body[1].Negated {
		t.Errorf("Rule() body = %v, want [p(X), ~r(X)]", r.Body)
	}
}

func TestSentenceAlgebra(t *testing.T) {
	s := And(Label("coin", "heads"), Neg(Label("coin", "tails")))
	if sentence.Text(s) == "" {
		t.Error("sentence text should not be empty")
	}
}

func TestWorldBuildsAssignment(t *testing.T) {
	w := World("coin=heads", "die=six")
	if w["coin"] != "heads" || w["die"] != "six" {
		t.Errorf("World() = %v, want coin=heads die=six", w)
	}
}
