package resolver

import (
	"testing"

	"github.com/brunokim/judged/errors"
	"github.com/brunokim/judged/kb"
	"github.com/brunokim/judged/term"
)

func TestStratifyNegativeDependencyIncreases(t *testing.T) {
	k := kb.New()
	x := term.NewVar("X")
	one := term.Int{Value: 1}
	k.Assert(kb.NewClause(term.NewLiteral("p", one), nil))
	k.Assert(kb.NewClause(term.NewLiteral("q", x), nil, term.NewLiteral("s", x), term.NewLiteral("p", x).Negate()))

	strata, err := Stratify(k)
	if err != nil {
		t.Fatal(err)
	}
	p := term.Indicator{Name: "p", Arity: 1}
	q := term.Indicator{Name: "q", Arity: 1}
	if strata.StratumOf(q) <= strata.StratumOf(p) {
		t.Errorf("stratum(q) = %d, stratum(p) = %d; want q strictly above p", strata.StratumOf(q), strata.StratumOf(p))
	}
}

func TestStratifyCyclicNegationFails(t *testing.T) {
	k := kb.New()
	x := term.NewVar("X")
	k.Assert(kb.NewClause(term.NewLiteral("p", x), nil, term.NewLiteral("s", x), term.NewLiteral("q", x).Negate()))
	k.Assert(kb.NewClause(term.NewLiteral("q", x), nil, term.NewLiteral("s", x), term.NewLiteral("p", x).Negate()))

	_, err := Stratify(k)
	if !errors.Is(err, errors.UnstratifiedNegation) {
		t.Fatalf("Stratify() err = %v, want UnstratifiedNegation", err)
	}
}

func TestStratifyPositiveDependencyNonDecreasing(t *testing.T) {
	k := kb.New()
	x := term.NewVar("X")
	a := term.Atom{Name: "a"}
	k.Assert(kb.NewClause(term.NewLiteral("p", a), nil))
	k.Assert(kb.NewClause(term.NewLiteral("r", x), nil, term.NewLiteral("p", x)))

	strata, err := Stratify(k)
	if err != nil {
		t.Fatal(err)
	}
	p := term.Indicator{Name: "p", Arity: 1}
	r := term.Indicator{Name: "r", Arity: 1}
	if strata.StratumOf(r) < strata.StratumOf(p) {
		t.Errorf("stratum(r) = %d, stratum(p) = %d; want r >= p", strata.StratumOf(r), strata.StratumOf(p))
	}
}
