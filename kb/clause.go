// Package kb implements the JudgeD knowledge base: an indexed store of
// clauses keyed by predicate symbol and arity, a label-partition registry
// with per-label probability assignments, and the extension lookup table.
package kb

import (
	"fmt"
	"strings"

	"github.com/brunokim/judged/sentence"
	"github.com/brunokim/judged/term"
)

// Clause is a Horn-logic fact or rule annotated with a descriptive
// sentence. A clause with an empty Body is a fact.
type Clause struct {
	Head     term.Literal
	Body     []term.Literal
	Sentence sentence.Sentence
}

// NewClause builds a clause. The sentence defaults to sentence.True{} when
// nil is given, matching the surface syntax's "sentence omitted" rule.
func NewClause(head term.Literal, sent sentence.Sentence, body ...term.Literal) *Clause {
	if sent == nil {
		sent = sentence.True{}
	}
	return &Clause{Head: head, Body: body, Sentence: sent}
}

// Vars returns every variable in the clause's head and body, in
// first-occurrence order.
func (c *Clause) Vars() []term.Var {
	seen := make(map[term.Var]struct{})
	var xs []term.Var
	for _, v := range c.Head.Vars() {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			xs = append(xs, v)
		}
	}
	for _, lit := range c.Body {
		for _, v := range lit.Vars() {
			if _, ok := seen[v]; !ok {
				seen[v] = struct{}{}
				xs = append(xs, v)
			}
		}
	}
	return xs
}

// Rename standardizes every variable in the clause apart, using suffix as
// the fresh generation's tag. Each clause activation during resolution
// calls this with a distinct suffix so that no two activations of the same
// clause share a variable.
func (c *Clause) Rename(suffix int) *Clause {
	fresh := make(map[term.Var]term.Var)
	head := c.Head.Rename(fresh, suffix)
	body := make([]term.Literal, len(c.Body))
	for i, lit := range c.Body {
		body[i] = lit.Rename(fresh, suffix)
	}
	return &Clause{Head: head, Body: body, Sentence: c.Sentence}
}

// Eq reports whether two clauses are structurally identical, used by
// Retract to find the first matching clause.
func (c *Clause) Eq(other *Clause) bool {
	if c.Head.Predicate != other.Head.Predicate || c.Head.Negated != other.Head.Negated {
		return false
	}
	if !term.EqArgs(c.Head.Args, other.Head.Args) {
		return false
	}
	if len(c.Body) != len(other.Body) {
		return false
	}
	for i := range c.Body {
		if c.Body[i].Predicate != other.Body[i].Predicate ||
			c.Body[i].Negated != other.Body[i].Negated ||
			!term.EqArgs(c.Body[i].Args, other.Body[i].Args) {
			return false
		}
	}
	return sentence.Text(c.Sentence) == sentence.Text(other.Sentence)
}

func (c *Clause) String() string {
	head := c.Head.String()
	sent := sentence.Text(c.Sentence)
	suffix := ""
	if sent != "true" {
		suffix = " [" + sent + "]"
	}
	if len(c.Body) == 0 {
		return head + suffix + "."
	}
	body := make([]string, len(c.Body))
	for i, lit := range c.Body {
		body[i] = lit.String()
	}
	return fmt.Sprintf("%s :- %s%s.", head, strings.Join(body, ", "), suffix)
}
