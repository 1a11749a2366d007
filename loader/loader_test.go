package loader

import (
	"testing"

	"github.com/brunokim/judged/judged"
	"github.com/brunokim/judged/sentence"
	"github.com/brunokim/judged/term"
)

func TestParseClauseFact(t *testing.T) {
	c, err := ParseClause("heads(c1).")
	if err != nil {
		t.Fatal(err)
	}
	if c.Head.Predicate != "heads" || len(c.Body) != 0 {
		t.Errorf("ParseClause = %v, want heads(c1) with empty body", c)
	}
}

func TestParseClauseWithSentenceAnnotation(t *testing.T) {
	c, err := ParseClause("heads(c1) [coin=heads].")
	if err != nil {
		t.Fatal(err)
	}
	want := sentence.Lit{Label: sentence.Label{Partition: "coin", Value: "heads"}}
	if sentence.Text(c.Sentence) != sentence.Text(want) {
		t.Errorf("clause sentence = %v, want %v", c.Sentence, want)
	}
}

func TestParseClauseWithBodyAndNegation(t *testing.T) {
	c, err := ParseClause("q(X) :- p(X), ~r(X).")
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Body) != 2 {
		t.Fatalf("len(Body) = %d, want 2", len(c.Body))
	}
	if !c.Body[1].Negated || c.Body[1].Predicate != "r" {
		t.Errorf("second body literal = %v, want negated r(X)", c.Body[1])
	}
}

func TestParseSentenceAlgebra(t *testing.T) {
	c, err := ParseClause("p [not (coin=heads and die=six)].")
	if err != nil {
		t.Fatal(err)
	}
	heads := sentence.Lit{Label: sentence.Label{Partition: "coin", Value: "heads"}}
	six := sentence.Lit{Label: sentence.Label{Partition: "die", Value: "six"}}
	want := sentence.Negate(sentence.Conjunct(heads, six))
	if sentence.Text(c.Sentence) != sentence.Text(want) {
		t.Errorf("sentence = %v, want %v", c.Sentence, want)
	}
}

func TestParseQuery(t *testing.T) {
	lit, err := ParseQuery("heads(c1)?")
	if err != nil {
		t.Fatal(err)
	}
	if lit.Predicate != "heads" || len(lit.Args) != 1 {
		t.Errorf("ParseQuery = %v, want heads(c1)", lit)
	}
}

func TestParseLabelProb(t *testing.T) {
	label, p, err := ParseLabelProb("@P(coin=heads) = 0.5.")
	if err != nil {
		t.Fatal(err)
	}
	if label != (sentence.Label{Partition: "coin", Value: "heads"}) || p != 0.5 {
		t.Errorf("ParseLabelProb = %v, %v, want coin=heads, 0.5", label, p)
	}
}

func TestParseUniform(t *testing.T) {
	partition, err := ParseUniform("@uniform die.")
	if err != nil {
		t.Fatal(err)
	}
	if partition != "die" {
		t.Errorf("ParseUniform = %q, want die", partition)
	}
}

func TestParseStatementDispatch(t *testing.T) {
	tests := []struct {
		text string
		kind judged.StatementKind
	}{
		{"heads(c1).", judged.StatementClause},
		{"heads(c1)?", judged.StatementQuery},
		{"@P(coin=heads) = 0.5.", judged.StatementLabelProb},
		{"@uniform die.", judged.StatementUniformPartition},
	}
	for _, tc := range tests {
		stmt, err := ParseStatement(tc.text)
		if err != nil {
			t.Fatalf("ParseStatement(%q): %v", tc.text, err)
		}
		if stmt.Kind != tc.kind {
			t.Errorf("ParseStatement(%q).Kind = %v, want %v", tc.text, stmt.Kind, tc.kind)
		}
	}
}

func TestParseStatementRejectsMissingTerminator(t *testing.T) {
	if _, err := ParseStatement("heads(c1)"); err == nil {
		t.Error("ParseStatement on unterminated text should fail")
	}
}

func TestParseGeneratorSplitsBodyAndGuard(t *testing.T) {
	gen, err := ParseGenerator("{ heads(C) [coin=heads]; tails(C) [coin=tails] | coin(C) }")
	if err != nil {
		t.Fatal(err)
	}
	if len(gen.Body) != 2 || gen.Guard != "coin(C)" {
		t.Errorf("ParseGenerator = %+v, want 2 body templates and guard coin(C)", gen)
	}
}

func TestExpandGeneratorSubstitutesBindings(t *testing.T) {
	e := judged.New()
	c1, err := ParseStatement("coin(c1).")
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Ingest(c1); err != nil {
		t.Fatal(err)
	}
	gen, err := ParseGenerator("{ heads(C). | coin(C) }")
	if err != nil {
		t.Fatal(err)
	}
	if err := ExpandGenerator(e, gen); err != nil {
		t.Fatal(err)
	}
	result, err := e.Query(judged.NewQueryStatement(term.NewLiteral("heads", term.Atom{Name: "c1"})))
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Answers) != 1 {
		t.Fatalf("len(Answers) = %d, want 1", len(result.Answers))
	}
}
