package judged

import (
	"bytes"
	"strings"
	"testing"

	"github.com/brunokim/judged/kb"
	"github.com/brunokim/judged/probability"
	"github.com/brunokim/judged/resolver"
	"github.com/brunokim/judged/sentence"
	"github.com/brunokim/judged/term"
)

func TestIngestAssertAndQuery(t *testing.T) {
	e := New()
	a := term.Atom{Name: "a"}
	c := kb.NewClause(term.NewLiteral("p", a), nil)
	if err := e.Ingest(NewClauseStatement(c)); err != nil {
		t.Fatal(err)
	}
	result, err := e.Query(NewQueryStatement(term.NewLiteral("p", a)))
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Answers) != 1 {
		t.Fatalf("len(Answers) = %d, want 1", len(result.Answers))
	}
}

func TestIngestRetract(t *testing.T) {
	e := New()
	a := term.Atom{Name: "a"}
	c := kb.NewClause(term.NewLiteral("p", a), nil)
	e.Ingest(NewClauseStatement(c))
	if err := e.Ingest(NewRetractStatement(c)); err != nil {
		t.Fatal(err)
	}
	result, err := e.Query(NewQueryStatement(term.NewLiteral("p", a)))
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Answers) != 0 {
		t.Errorf("len(Answers) after retract = %d, want 0", len(result.Answers))
	}
}

func TestIngestUnknownExtensionFails(t *testing.T) {
	e := New()
	err := e.Ingest(NewUseExtensionStatement("missing", term.Indicator{Name: "q", Arity: 1}))
	if err == nil {
		t.Fatal("Ingest(unregistered extension) should fail")
	}
}

func TestIngestQueryThroughIngestFails(t *testing.T) {
	e := New()
	err := e.Ingest(NewQueryStatement(term.NewLiteral("p", term.Atom{Name: "a"})))
	if err == nil {
		t.Fatal("Ingest(StatementQuery) should fail; must go through Engine.Query")
	}
}

func TestBuiltinEqualsRegistered(t *testing.T) {
	e := New()
	x := term.NewVar("X")
	result, err := e.Query(NewQueryStatement(term.NewLiteral("=", x, term.Atom{Name: "a"})))
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Answers) != 1 {
		t.Fatalf("len(Answers) = %d, want 1", len(result.Answers))
	}
}

func TestWriterSinkDeterministic(t *testing.T) {
	var buf bytes.Buffer
	sink := WriterSink{W: &buf}
	result := &resolver.Result{
		Answers: []resolver.Answer{{Subst: term.Substitution{}, Sentence: sentence.True{}}},
	}
	if err := sink.Deterministic(result); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "true") {
		t.Errorf("output = %q, want it to mention the sentence", buf.String())
	}
}

func TestWriterSinkMonteCarlo(t *testing.T) {
	var buf bytes.Buffer
	sink := WriterSink{W: &buf}
	answers := []resolver.Answer{{Subst: term.Substitution{}, Sentence: sentence.True{}}}
	mc := &probability.Result{
		Samples:   100,
		Estimates: []probability.AnswerEstimate{{Probability: 0.5, Hits: 50}},
	}
	if err := sink.MonteCarlo(mc, answers); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "50/100") {
		t.Errorf("output = %q, want hit count", buf.String())
	}
}
