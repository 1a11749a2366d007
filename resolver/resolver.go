// Package resolver evaluates queries against a knowledge base: it
// stratifies the predicate dependency graph, saturates each stratum
// bottom-up by repeated clause derivation until a fixpoint, and answers a
// query by looking up (or computing, for extensions) its indicator's
// now-complete fact table.
//
// This is a bottom-up, per-stratum naive evaluator rather than a literal
// top-down SLDNF interpreter with tabling. For safe, stratified,
// function-free programs the two agree on every ground answer and its
// sentence; the bottom-up form is far simpler to get right, and is what
// this package implements.
package resolver

import (
	"github.com/brunokim/judged/errors"
	"github.com/brunokim/judged/kb"
	"github.com/brunokim/judged/sentence"
	"github.com/brunokim/judged/term"
)

// Answer is one ground (or partially ground, for the query's own free
// variables) substitution a query resolves to, paired with the descriptive
// sentence under which it holds.
type Answer struct {
	Subst    term.Substitution
	Sentence sentence.Sentence
}

// Result is the outcome of a query: the answers found, plus any non-fatal
// warning (e.g. the queried predicate has neither clauses nor a registered
// extension, so it trivially has zero answers).
type Result struct {
	Goal     term.Literal
	Answers  []Answer
	Warning  error
}

// Limits bounds the work a single Query performs, so that a runaway or
// buggy program fails with errors.ResourceExhausted instead of looping or
// allocating forever.
type Limits struct {
	// MaxAnswers bounds the number of distinct ground facts a single
	// predicate's table may hold. Zero means the default.
	MaxAnswers int
	// MaxRounds bounds the number of saturation passes a single stratum
	// may take. Zero means the default.
	MaxRounds int
}

const (
	defaultMaxAnswers = 100_000
	defaultMaxRounds  = 10_000
)

func (l Limits) maxAnswers() int {
	if l.MaxAnswers > 0 {
		return l.MaxAnswers
	}
	return defaultMaxAnswers
}

func (l Limits) maxRounds() int {
	if l.MaxRounds > 0 {
		return l.MaxRounds
	}
	return defaultMaxRounds
}

// Resolver evaluates queries against a fixed knowledge base. It caches the
// base's stratification across queries, since a KB is treated as read-only
// for the duration of answering any one query (spec.md §5).
type Resolver struct {
	kb     *kb.KB
	tracer Tracer
	limits Limits

	strata  Strata
	suffix  int
}

// New builds a Resolver over k. tracer may be nil, in which case tracing
// is a no-op.
func New(k *kb.KB, tracer Tracer, limits Limits) (*Resolver, error) {
	strata, err := Stratify(k)
	if err != nil {
		return nil, err
	}
	if tracer == nil {
		tracer = noopTracer{}
	}
	return &Resolver{kb: k, tracer: tracer, limits: limits, strata: strata}, nil
}

// Refresh recomputes stratification, for use after the caller has asserted
// or retracted clauses since this Resolver was built.
func (r *Resolver) Refresh() error {
	strata, err := Stratify(r.kb)
	if err != nil {
		return err
	}
	r.strata = strata
	return nil
}

func (r *Resolver) nextSuffix() int {
	r.suffix++
	return r.suffix
}

// fact is one ground derived tuple for some predicate, with the sentence
// under which it holds. Distinct derivations of the same tuple are
// subsumed by disjoining their sentences (spec.md's duplicate-answer
// collapsing rule, grounded on judged/logic.py's answer_subsumed_by).
type fact struct {
	args     []term.Term
	sentence sentence.Sentence
}

// table holds every derived fact, per indicator, in first-derivation order
// so that answers are emitted deterministically.
type table struct {
	facts map[term.Indicator]map[string]*fact
	order map[term.Indicator][]string
	total int
}

func newTable() *table {
	return &table{
		facts: make(map[term.Indicator]map[string]*fact),
		order: make(map[term.Indicator][]string),
	}
}

func (t *table) list(ind term.Indicator) []*fact {
	keys := t.order[ind]
	out := make([]*fact, len(keys))
	m := t.facts[ind]
	for i, k := range keys {
		out[i] = m[k]
	}
	return out
}

// merge inserts a newly derived ground literal's binding into the table,
// disjoining sentences when the same tuple is re-derived. Reports whether
// the table grew (a brand-new tuple, or a sentence that now holds in more
// worlds of dom), which drives the saturation fixpoint loop.
func (t *table) merge(ind term.Indicator, args []term.Term, sent sentence.Sentence, limits Limits, dom sentence.Domain) (bool, error) {
	m, ok := t.facts[ind]
	if !ok {
		m = make(map[string]*fact)
		t.facts[ind] = m
	}
	key := term.Key(ind.Name, args)
	if existing, ok := m[key]; ok {
		merged := sentence.Disjunct(existing.sentence, sent)
		if sentence.Equivalent(merged, existing.sentence, dom) {
			return false, nil
		}
		existing.sentence = merged
		return true, nil
	}
	if t.total >= limits.maxAnswers() {
		return false, errors.Wrap(errors.ResourceExhausted,
			"more than %d distinct answers derived; aborting", limits.maxAnswers())
	}
	m[key] = &fact{args: args, sentence: sent}
	t.order[ind] = append(t.order[ind], key)
	t.total++
	return true, nil
}

// partial is one in-progress derivation branch while evaluating a clause
// body: the substitution accumulated so far, and the sentence conjoining
// every literal resolved so far.
type partial struct {
	subst    term.Substitution
	sentence sentence.Sentence
}

// evalBody evaluates a clause's body left to right against tbl (the facts
// derived so far) and the KB's registered extensions, returning every
// surviving derivation branch. Clause safety (kb.checkSafety) guarantees
// that by the time a negative literal is reached, its variables are
// already ground under every surviving branch.
func (r *Resolver) evalBody(body []term.Literal, tbl *table) ([]partial, error) {
	branches := []partial{{subst: term.Substitution{}, sentence: sentence.True{}}}
	for _, lit := range body {
		var next []partial
		for _, b := range branches {
			grounded := lit.Apply(b.subst)
			if lit.Negated {
				matched, sent, err := r.lookupGround(grounded, tbl)
				if err != nil {
					return nil, err
				}
				if !matched {
					next = append(next, partial{subst: b.subst, sentence: b.sentence})
					continue
				}
				conj := sentence.Conjunct(b.sentence, sentence.Negate(sent))
				if sentence.IsContradiction(conj, r.kb) {
					continue
				}
				next = append(next, partial{subst: b.subst, sentence: conj})
				continue
			}
			for _, binding := range r.resolvePositive(grounded, tbl) {
				merged, ok := mergeSubst(b.subst, binding.subst)
				if !ok {
					continue
				}
				conj := sentence.Conjunct(b.sentence, binding.sentence)
				if sentence.IsContradiction(conj, r.kb) {
					continue
				}
				next = append(next, partial{subst: merged, sentence: conj})
			}
		}
		branches = next
		if len(branches) == 0 {
			return nil, nil
		}
	}
	return branches, nil
}

// lookupGround resolves a ground (negative-context) literal directly,
// either via a registered extension or against tbl, without standardizing
// apart or branching — negative literals in a safe clause are always fully
// bound by the time they are reached.
func (r *Resolver) lookupGround(lit term.Literal, tbl *table) (bool, sentence.Sentence, error) {
	ind := lit.Indicator()
	if ext, ok := r.kb.Extension(ind); ok {
		bindings, err := ext.Call(term.Literal{Predicate: lit.Predicate, Args: lit.Args}, r.kb)
		if err != nil {
			return false, nil, err
		}
		if len(bindings) == 0 {
			return false, nil, nil
		}
		return true, bindings[0].Sentence, nil
	}
	for _, f := range tbl.list(ind) {
		if term.EqArgs(f.args, lit.Args) {
			return true, f.sentence, nil
		}
	}
	return false, nil, nil
}

// resolvePositive resolves a positive body literal (possibly with
// unbound variables) against the KB's registered extensions or tbl,
// returning one binding per matching tuple.
func (r *Resolver) resolvePositive(lit term.Literal, tbl *table) []partial {
	ind := lit.Indicator()
	if ext, ok := r.kb.Extension(ind); ok {
		bindings, err := ext.Call(term.Literal{Predicate: lit.Predicate, Args: lit.Args}, r.kb)
		if err != nil {
			return nil
		}
		out := make([]partial, len(bindings))
		for i, b := range bindings {
			out[i] = partial{subst: b.Subst, sentence: b.Sentence}
		}
		return out
	}
	var out []partial
	for _, f := range tbl.list(ind) {
		s, ok := term.UnifyArgs(lit.Args, f.args, term.Substitution{})
		if !ok {
			continue
		}
		out = append(out, partial{subst: s, sentence: f.sentence})
	}
	return out
}

// mergeSubst combines two substitutions built from disjoint variable
// scopes (a clause activation's own variables, and whatever an extension's
// binding introduced) by re-unifying every binding of b into a, so that
// any variable shared between the two (a body literal's argument, bound
// both by prior literals and by the extension) is consistently resolved.
func mergeSubst(a, b term.Substitution) (term.Substitution, bool) {
	s := a
	for x, t := range b {
		bound := s.Apply(x)
		val := s.Apply(t)
		next, ok := term.Unify(bound, val, s)
		if !ok {
			return nil, false
		}
		s = next
	}
	return s, true
}

// deriveOnce activates a clause once (standardized apart with a fresh
// suffix), evaluates its body, and merges every resulting ground head
// instance into tbl. Reports whether tbl grew.
func (r *Resolver) deriveOnce(c *kb.Clause, tbl *table) (bool, error) {
	activated := c.Rename(r.nextSuffix())
	branches, err := r.evalBody(activated.Body, tbl)
	if err != nil {
		return false, err
	}
	grew := false
	for _, b := range branches {
		head := activated.Head.Apply(b.subst)
		if !head.IsGround() {
			// A safe clause's named head variables all occur in the body,
			// but checkSafety does not restrict the anonymous variable _
			// (and an extension may leave a variable unbound), so a head
			// can still be non-ground here; such an instance is dropped.
			continue
		}
		sent := sentence.Conjunct(b.sentence, activated.Sentence)
		if sentence.IsContradiction(sent, r.kb) {
			continue
		}
		ok, err := tbl.merge(head.Indicator(), head.Args, sent, r.limits, r.kb)
		if err != nil {
			return grew, err
		}
		if ok {
			grew = true
			r.tracer.Answer(term.Literal{Predicate: head.Predicate, Args: head.Args}, Answer{Subst: b.subst, Sentence: sent})
		}
	}
	return grew, nil
}

// saturateStratum repeatedly derives every clause defining a predicate at
// the given stratum until a full pass adds nothing new.
func (r *Resolver) saturateStratum(stratum int, tbl *table) error {
	var indicators []term.Indicator
	for _, ind := range r.kb.Indicators() {
		if r.strata.StratumOf(ind) == stratum {
			indicators = append(indicators, ind)
		}
	}
	rounds := 0
	for {
		rounds++
		if rounds > r.limits.maxRounds() {
			return errors.Wrap(errors.ResourceExhausted,
				"stratum %d did not converge within %d rounds", stratum, r.limits.maxRounds())
		}
		changed := false
		for _, ind := range indicators {
			for _, c := range r.kb.Clauses(ind) {
				r.tracer.Clause(c.Head, c.String())
				grew, err := r.deriveOnce(c, tbl)
				if err != nil {
					return err
				}
				if grew {
					changed = true
				}
			}
		}
		if !changed {
			return nil
		}
	}
}

// Query evaluates goal against the knowledge base, saturating every
// stratum up through the goal's own, then resolving the goal itself.
// Returned answers are projected onto the goal's free variables and
// ordered by derivation order.
func (r *Resolver) Query(goal term.Literal) (*Result, error) {
	r.tracer.Ask(goal)
	ind := goal.Indicator()

	_, hasExt := r.kb.Extension(ind)
	var warning error
	if len(r.kb.Clauses(ind)) == 0 && !hasExt {
		warning = errors.Wrap(errors.UnknownPredicate,
			"predicate %s has no clauses and no registered extension", ind)
	}

	tbl := newTable()
	top := r.strata.StratumOf(ind)
	for s := 0; s <= top; s++ {
		if err := r.saturateStratum(s, tbl); err != nil {
			return nil, err
		}
	}

	r.tracer.Subgoal(goal)
	var answers []Answer
	if ext, ok := r.kb.Extension(ind); ok {
		bindings, err := ext.Call(goal, r.kb)
		if err != nil {
			return nil, err
		}
		for _, b := range bindings {
			answers = append(answers, projectAnswer(goal, b.Subst, b.Sentence))
		}
	} else {
		for _, f := range tbl.list(ind) {
			s, ok := term.UnifyArgs(goal.Args, f.args, term.Substitution{})
			if !ok {
				continue
			}
			answers = append(answers, projectAnswer(goal, s, f.sentence))
		}
	}
	r.tracer.Complete(ind)

	return &Result{Goal: goal, Answers: answers, Warning: warning}, nil
}

func projectAnswer(goal term.Literal, s term.Substitution, sent sentence.Sentence) Answer {
	proj := term.Substitution{}
	for _, v := range goal.Vars() {
		proj[v] = s.Apply(v)
	}
	return Answer{Subst: proj, Sentence: sentence.Simplify(sent)}
}
