package kb

import (
	"github.com/brunokim/judged/errors"
	"github.com/brunokim/judged/term"
)

// checkSafety enforces clause safety (spec.md §3's Clause invariant): every
// head variable must also occur in the body (range restriction), and every
// variable occurring in a negative body literal must also occur in a
// positive body literal that textually precedes it. The latter is stricter
// than "appears positively somewhere", but it is what guarantees that the
// resolver's leftmost-literal resolution (spec.md §4.3) always reaches a
// negative literal with its variables already ground.
func checkSafety(c *Clause) error {
	headVars := make(map[term.Var]struct{})
	for _, v := range c.Head.Vars() {
		headVars[v] = struct{}{}
	}
	bound := make(map[term.Var]struct{})
	bodyVars := make(map[term.Var]struct{})
	for _, lit := range c.Body {
		for _, v := range lit.Vars() {
			bodyVars[v] = struct{}{}
		}
	}
	for v := range headVars {
		if v.Name == "_" {
			continue
		}
		if _, ok := bodyVars[v]; !ok {
			return errors.Wrap(errors.UnsafeClause,
				"variable %v appears in head of %v but not in body", v, c)
		}
	}
	for _, lit := range c.Body {
		if !lit.Negated {
			for _, v := range lit.Vars() {
				bound[v] = struct{}{}
			}
			continue
		}
		for _, v := range lit.Vars() {
			if v.Name == "_" {
				continue
			}
			if _, ok := bound[v]; !ok {
				return errors.Wrap(errors.UnsafeClause,
					"variable %v appears in negative literal %v of %v before being bound positively", v, lit, c)
			}
		}
	}
	return nil
}
