package resolver

import (
	"github.com/brunokim/judged/errors"
	"github.com/brunokim/judged/kb"
	"github.com/brunokim/judged/term"
)

// Strata maps a predicate's indicator to its stratum: the layer in which
// its defining clauses are evaluated. A valid stratification assigns each
// predicate a layer such that positive dependency edges are non-decreasing
// and negative dependency edges are strictly increasing (spec.md §4.3).
type Strata map[term.Indicator]int

// Stratify computes the predicate dependency graph of a knowledge base —
// an edge p → q if p appears in the body of a clause defining q, marked
// negative if p appears negated — and returns a valid layering, or an
// errors.UnstratifiedNegation error if the program has a negative
// dependency cycle.
func Stratify(k *kb.KB) (Strata, error) {
	strata := make(Strata)
	indicators := k.Indicators()
	for _, ind := range indicators {
		strata[ind] = 0
	}
	// A fixpoint is reached in at most len(indicators) rounds for any
	// stratifiable program; one extra round that still finds growth means
	// a negative cycle.
	limit := len(indicators) + 1
	for round := 0; round <= limit; round++ {
		changed := false
		for _, ind := range indicators {
			for _, c := range k.Clauses(ind) {
				q := ind
				for _, lit := range c.Body {
					p := term.Indicator{Name: lit.Predicate, Arity: len(lit.Args)}
					if lit.Negated {
						if strata[q] <= strata[p] {
							strata[q] = strata[p] + 1
							changed = true
						}
					} else {
						if strata[q] < strata[p] {
							strata[q] = strata[p]
							changed = true
						}
					}
				}
			}
		}
		if !changed {
			return strata, nil
		}
		if round == limit {
			return nil, errors.Wrap(errors.UnstratifiedNegation,
				"no valid stratification exists: a predicate depends negatively on itself, directly or transitively")
		}
	}
	return strata, nil
}

// StratumOf returns a predicate's stratum, defaulting to 0 for predicates
// with no asserted clauses (built-ins and extensions: pure, non-recursive,
// always safe to treat as the base layer).
func (s Strata) StratumOf(ind term.Indicator) int {
	if st, ok := s[ind]; ok {
		return st
	}
	return 0
}

// Max returns the highest stratum assigned to any predicate.
func (s Strata) Max() int {
	max := 0
	for _, st := range s {
		if st > max {
			max = st
		}
	}
	return max
}
