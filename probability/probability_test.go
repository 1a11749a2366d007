package probability

import (
	"math"
	"testing"

	"github.com/brunokim/judged/errors"
	"github.com/brunokim/judged/kb"
	"github.com/brunokim/judged/resolver"
	"github.com/brunokim/judged/sentence"
	"github.com/brunokim/judged/term"
)

func coinKB(t *testing.T) *kb.KB {
	t.Helper()
	k := kb.New()
	if err := k.DeclareProbability(sentence.Label{Partition: "coin", Value: "heads"}, 0.5); err != nil {
		t.Fatal(err)
	}
	if err := k.DeclareProbability(sentence.Label{Partition: "coin", Value: "tails"}, 0.5); err != nil {
		t.Fatal(err)
	}
	return k
}

func TestExactRejectsNegation(t *testing.T) {
	k := kb.New()
	x := term.NewVar("X")
	k.Assert(kb.NewClause(term.NewLiteral("p", term.Int{Value: 1}), nil))
	k.Assert(kb.NewClause(term.NewLiteral("q", x), nil, term.NewLiteral("p", x), term.NewLiteral("r", x).Negate()))

	_, err := Exact(k, &resolver.Result{})
	if !errors.Is(err, errors.UnsupportedOperation) {
		t.Fatalf("Exact() err = %v, want UnsupportedOperation", err)
	}
}

func TestExactReturnsCanonicalText(t *testing.T) {
	k := kb.New()
	heads := sentence.Lit{Label: sentence.Label{Partition: "coin", Value: "heads"}}
	result := &resolver.Result{
		Answers: []resolver.Answer{{Subst: term.Substitution{}, Sentence: sentence.Disjunct(heads, heads)}},
	}
	answers, err := Exact(k, result)
	if err != nil {
		t.Fatal(err)
	}
	if len(answers) != 1 || answers[0].Text != "coin=heads" {
		t.Errorf("Exact() = %v, want text coin=heads", answers)
	}
}

func TestMonteCarloMissingProbability(t *testing.T) {
	k := kb.New()
	sent := sentence.Lit{Label: sentence.Label{Partition: "coin", Value: "heads"}}
	result := &resolver.Result{Answers: []resolver.Answer{{Subst: term.Substitution{}, Sentence: sent}}}
	_, err := Run(k, result, Config{N: 10})
	if !errors.Is(err, errors.MissingProbability) {
		t.Fatalf("Run() err = %v, want MissingProbability", err)
	}
}

func TestMonteCarloConvergesNearDeclaredProbability(t *testing.T) {
	k := coinKB(t)
	heads := sentence.Lit{Label: sentence.Label{Partition: "coin", Value: "heads"}}
	result := &resolver.Result{Answers: []resolver.Answer{{Subst: term.Substitution{}, Sentence: heads}}}
	seed := int64(42)
	mc, err := Run(k, result, Config{N: 20000, Seed: &seed})
	if err != nil {
		t.Fatal(err)
	}
	if len(mc.Estimates) != 1 {
		t.Fatalf("len(Estimates) = %d, want 1", len(mc.Estimates))
	}
	got := mc.Estimates[0].Probability
	if math.Abs(got-0.5) > 0.02 {
		t.Errorf("Probability = %v, want close to 0.5", got)
	}
}

func TestMonteCarloReproducibleBySeed(t *testing.T) {
	k := coinKB(t)
	heads := sentence.Lit{Label: sentence.Label{Partition: "coin", Value: "heads"}}
	result := &resolver.Result{Answers: []resolver.Answer{{Subst: term.Substitution{}, Sentence: heads}}}
	seed := int64(7)
	mc1, err := Run(k, result, Config{N: 500, Seed: &seed})
	if err != nil {
		t.Fatal(err)
	}
	mc2, err := Run(k, result, Config{N: 500, Seed: &seed})
	if err != nil {
		t.Fatal(err)
	}
	if mc1.Estimates[0].Hits != mc2.Estimates[0].Hits {
		t.Errorf("same seed gave different hit counts: %d vs %d", mc1.Estimates[0].Hits, mc2.Estimates[0].Hits)
	}
}

func TestMonteCarloConvergenceStopsEarly(t *testing.T) {
	k := coinKB(t)
	heads := sentence.Lit{Label: sentence.Label{Partition: "coin", Value: "heads"}}
	result := &resolver.Result{Answers: []resolver.Answer{{Subst: term.Substitution{}, Sentence: heads}}}
	seed := int64(1)
	threshold := 0.2
	mc, err := Run(k, result, Config{N: 1_000_000, Seed: &seed, ConvergenceThreshold: &threshold})
	if err != nil {
		t.Fatal(err)
	}
	if mc.Samples >= 1_000_000 {
		t.Errorf("Samples = %d, expected early stop well below the cap", mc.Samples)
	}
}

func TestWilsonHalfWidthShrinksWithSamples(t *testing.T) {
	small := wilsonHalfWidth(5, 10)
	large := wilsonHalfWidth(500, 1000)
	if large >= small {
		t.Errorf("wilsonHalfWidth(500,1000) = %v, want < wilsonHalfWidth(5,10) = %v", large, small)
	}
}
