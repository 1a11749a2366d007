package resolver

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/brunokim/judged/kb"
	"github.com/brunokim/judged/sentence"
	"github.com/brunokim/judged/term"
)

func lit(predicate string, args ...term.Term) term.Literal {
	return term.NewLiteral(predicate, args...)
}

func query(t *testing.T, k *kb.KB, goal term.Literal) *Result {
	t.Helper()
	r, err := New(k, nil, Limits{})
	if err != nil {
		t.Fatal(err)
	}
	result, err := r.Query(goal)
	if err != nil {
		t.Fatal(err)
	}
	return result
}

func answerArgs(result *Result, vars []term.Var) [][]term.Term {
	var out [][]term.Term
	for _, a := range result.Answers {
		row := make([]term.Term, len(vars))
		for i, v := range vars {
			row[i] = a.Subst[v]
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i][0].String() < out[j][0].String()
	})
	return out
}

func TestFactQuery(t *testing.T) {
	k := kb.New()
	a, b := term.Atom{Name: "a"}, term.Atom{Name: "b"}
	k.Assert(kb.NewClause(lit("p", a), nil))
	k.Assert(kb.NewClause(lit("p", b), nil))

	x := term.NewVar("X")
	result := query(t, k, lit("p", x))
	got := answerArgs(result, []term.Var{x})
	want := [][]term.Term{{a}, {b}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("answers mismatch (-want +got):\n%s", diff)
	}
}

func TestRecursiveAncestor(t *testing.T) {
	k := kb.New()
	x, y, z := term.NewVar("X"), term.NewVar("Y"), term.NewVar("Z")
	a, b, c := term.Atom{Name: "a"}, term.Atom{Name: "b"}, term.Atom{Name: "c"}
	k.Assert(kb.NewClause(lit("parent", a, b), nil))
	k.Assert(kb.NewClause(lit("parent", b, c), nil))
	k.Assert(kb.NewClause(lit("ancestor", x, y), nil, lit("parent", x, y)))
	k.Assert(kb.NewClause(lit("ancestor", x, z), nil, lit("parent", x, y), lit("ancestor", y, z)))

	result := query(t, k, lit("ancestor", a, z))
	got := answerArgs(result, []term.Var{z})
	want := [][]term.Term{{b}, {c}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("answers mismatch (-want +got):\n%s", diff)
	}
}

func TestStratifiedNegation(t *testing.T) {
	// p(1). p(2). q(X) :- p(X), ~r(X). r(1).
	k := kb.New()
	x := term.NewVar("X")
	one, two := term.Int{Value: 1}, term.Int{Value: 2}
	k.Assert(kb.NewClause(lit("p", one), nil))
	k.Assert(kb.NewClause(lit("p", two), nil))
	k.Assert(kb.NewClause(lit("r", one), nil))
	k.Assert(kb.NewClause(lit("q", x), nil, lit("p", x), lit("r", x).Negate()))

	result := query(t, k, lit("q", x))
	got := answerArgs(result, []term.Var{x})
	want := [][]term.Term{{two}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("answers mismatch (-want +got):\n%s", diff)
	}
}

func TestAnswerSubsumptionDisjoinsSentences(t *testing.T) {
	// heads(c1) [coin=heads]. heads(c1) [coin=tails]. -> heads(c1) [coin=heads or coin=tails]
	k := kb.New()
	c1 := term.Atom{Name: "c1"}
	headsSent := sentence.Lit{Label: sentence.Label{Partition: "coin", Value: "heads"}}
	tailsSent := sentence.Lit{Label: sentence.Label{Partition: "coin", Value: "tails"}}
	k.Assert(kb.NewClause(lit("heads", c1), headsSent))
	k.Assert(kb.NewClause(lit("heads", c1), tailsSent))

	result := query(t, k, lit("heads", c1))
	if len(result.Answers) != 1 {
		t.Fatalf("len(Answers) = %d, want 1", len(result.Answers))
	}
	got := sentence.Text(result.Answers[0].Sentence)
	want := sentence.Text(sentence.Disjunct(headsSent, tailsSent))
	if got != want {
		t.Errorf("merged sentence = %q, want %q", got, want)
	}
}

func TestMutualExclusionSimplifiesToFalse(t *testing.T) {
	// p :- [coin=heads], q :- [coin=tails], r :- p, q.
	k := kb.New()
	heads := sentence.Lit{Label: sentence.Label{Partition: "coin", Value: "heads"}}
	tails := sentence.Lit{Label: sentence.Label{Partition: "coin", Value: "tails"}}
	k.Assert(kb.NewClause(lit("p"), heads))
	k.Assert(kb.NewClause(lit("q"), tails))
	k.Assert(kb.NewClause(lit("r"), nil, lit("p"), lit("q")))

	result := query(t, k, lit("r"))
	if len(result.Answers) != 0 {
		t.Errorf("len(Answers) = %d, want 0 (mutually exclusive conjunction is unsatisfiable)", len(result.Answers))
	}
}

func TestNestedContradictionPruned(t *testing.T) {
	// p [x=1]. q :- p, p [x=2]. -> q has no answers: the body resolves the
	// same literal p twice, building a left-nested And(x=1, x=1) that does
	// not collapse to a single Lit, then conjoining the clause's own x=2
	// annotation at the top level. A shallow, single-level exclusivity
	// check misses this; IsContradiction must enumerate worlds to catch it.
	k := kb.New()
	x1 := sentence.Lit{Label: sentence.Label{Partition: "x", Value: "1"}}
	x2 := sentence.Lit{Label: sentence.Label{Partition: "x", Value: "2"}}
	k.DeclareValue(x1.Label)
	k.DeclareValue(x2.Label)
	k.Assert(kb.NewClause(lit("p"), x1))
	k.Assert(kb.NewClause(lit("q"), x2, lit("p"), lit("p")))

	result := query(t, k, lit("q"))
	if len(result.Answers) != 0 {
		t.Errorf("len(Answers) = %d, want 0 (x=1 and x=2 are mutually exclusive)", len(result.Answers))
	}
}

func TestQueryUnknownPredicateWarns(t *testing.T) {
	k := kb.New()
	result := query(t, k, lit("nope", term.Atom{Name: "x"}))
	if len(result.Answers) != 0 {
		t.Errorf("len(Answers) = %d, want 0", len(result.Answers))
	}
	if result.Warning == nil {
		t.Error("Warning = nil, want UnknownPredicate warning")
	}
}

func TestMaxAnswersResourceExhausted(t *testing.T) {
	k := kb.New()
	x := term.NewVar("X")
	for i := 0; i < 5; i++ {
		k.Assert(kb.NewClause(lit("p", term.Int{Value: i}), nil))
	}
	r, err := New(k, nil, Limits{MaxAnswers: 2})
	if err != nil {
		t.Fatal(err)
	}
	_, err = r.Query(lit("p", x))
	if err == nil {
		t.Fatal("Query() err = nil, want ResourceExhausted")
	}
}
