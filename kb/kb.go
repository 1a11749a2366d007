package kb

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/brunokim/judged/errors"
	"github.com/brunokim/judged/sentence"
	"github.com/brunokim/judged/term"
)

// Binding is an answer substitution paired with the descriptive sentence
// under which it holds, the unit an Extension yields.
type Binding struct {
	Subst    term.Substitution
	Sentence sentence.Sentence
}

// Extension is a named provider that exposes one or more predicate symbols
// computed on demand rather than via asserted clauses. Extensions must be
// pure for a given KB snapshot: the same partially-bound literal against
// the same KB must always yield the same bindings.
type Extension interface {
	// Call evaluates a (possibly partially bound) literal and returns the
	// stream of bindings it produces.
	Call(lit term.Literal, kb *KB) ([]Binding, error)
}

// ExtensionFunc adapts a function to the Extension interface.
type ExtensionFunc func(lit term.Literal, kb *KB) ([]Binding, error)

// Call implements Extension.
func (f ExtensionFunc) Call(lit term.Literal, kb *KB) ([]Binding, error) { return f(lit, kb) }

// Partition is a discrete random variable: a set of declared, mutually
// exclusive, collectively exhaustive values, each with an assigned
// probability.
type Partition struct {
	// Values holds the declared values, in declaration order.
	Values []string
	// Prob maps each value that has been assigned a probability to that
	// probability; a value declared without one has no entry.
	Prob map[string]float64
}

func newPartition() *Partition {
	return &Partition{Prob: make(map[string]float64)}
}

func (p *Partition) declare(value string) {
	for _, v := range p.Values {
		if v == value {
			return
		}
	}
	p.Values = append(p.Values, value)
}

// KB is the knowledge base: clauses indexed by (predicate, arity), a
// partition/probability registry, and registered extensions.
type KB struct {
	clauses     map[term.Indicator][]*Clause
	indicators  []term.Indicator
	hasIndictor map[term.Indicator]bool
	extensions  map[term.Indicator]Extension
	partitions  *lru.Cache[string, *Partition]
}

// defaultPartitionCapacity bounds the number of distinct partitions a KB
// will track before evicting the least-recently-touched one. It exists so
// that a runaway program declaring unbounded partitions hits a resource
// ceiling rather than growing the registry forever; ordinary programs never
// approach it.
const defaultPartitionCapacity = 4096

// New creates an empty knowledge base.
func New() *KB {
	cache, err := lru.New[string, *Partition](defaultPartitionCapacity)
	if err != nil {
		// Only returns an error for a non-positive size, which the
		// constant above never is.
		panic(err)
	}
	return &KB{
		clauses:     make(map[term.Indicator][]*Clause),
		hasIndictor: make(map[term.Indicator]bool),
		extensions:  make(map[term.Indicator]Extension),
		partitions:  cache,
	}
}

// Assert appends a clause to the indexed list for its head's
// (symbol, arity), after checking that it is safe. Returns an
// errors.UnsafeClause error and leaves the KB unchanged if it is not.
func (kb *KB) Assert(c *Clause) error {
	if err := checkSafety(c); err != nil {
		return err
	}
	ind := indicatorOf(c.Head)
	if !kb.hasIndictor[ind] {
		kb.hasIndictor[ind] = true
		kb.indicators = append(kb.indicators, ind)
	}
	kb.clauses[ind] = append(kb.clauses[ind], c)
	return nil
}

// Retract removes the first clause structurally matching c. It fails
// silently (returns false) if none is found.
func (kb *KB) Retract(c *Clause) bool {
	ind := indicatorOf(c.Head)
	list := kb.clauses[ind]
	for i, existing := range list {
		if existing.Eq(c) {
			kb.clauses[ind] = append(list[:i], list[i+1:]...)
			if len(kb.clauses[ind]) == 0 {
				delete(kb.clauses, ind)
			}
			return true
		}
	}
	return false
}

// Clauses returns all clauses whose head might unify with a literal of the
// given indicator, in declaration order. This is a coarse filter by
// (symbol, arity) only; the resolver performs the actual unification.
func (kb *KB) Clauses(ind term.Indicator) []*Clause {
	return kb.clauses[ind]
}

// Indicators returns every (symbol, arity) pair that has had a clause
// asserted, in first-assertion order; a pair whose clauses were all
// retracted is still listed. Used to build the predicate dependency
// graph for stratification, and to give the resolver a deterministic
// processing order.
func (kb *KB) Indicators() []term.Indicator {
	out := make([]term.Indicator, len(kb.indicators))
	copy(out, kb.indicators)
	return out
}

// RegisterExtension binds a predicate symbol to an extension. Lookup for
// that indicator consults the extension before the clause store.
func (kb *KB) RegisterExtension(ind term.Indicator, ext Extension) {
	kb.extensions[ind] = ext
}

// Extension returns the extension registered for an indicator, if any.
func (kb *KB) Extension(ind term.Indicator) (Extension, bool) {
	ext, ok := kb.extensions[ind]
	return ext, ok
}

// DeclareProbability assigns a probability to a label. It does not check
// that a partition's probabilities sum to 1, and neither does the loader
// package; a partition whose probabilities do not sum to 1 is accepted
// as declared.
func (kb *KB) DeclareProbability(label sentence.Label, p float64) error {
	if p < 0 || p > 1 {
		return errors.New("probability %v for label %v out of range [0,1]", p, label)
	}
	part, ok := kb.partitions.Get(label.Partition)
	if !ok {
		part = newPartition()
	}
	part.declare(label.Value)
	part.Prob[label.Value] = p
	kb.partitions.Add(label.Partition, part)
	return nil
}

// DeclareUniform assigns probability 1/k to each of the k values *currently*
// declared for a partition (spec.md §3, §9): later additions do not
// retroactively re-normalize. Values can arrive either from a prior
// DeclareProbability, or from appearing in a clause's sentence — callers
// that want @uniform to see label values that never had an explicit
// probability must first call DeclareValue for each one.
func (kb *KB) DeclareUniform(partition string) error {
	part, ok := kb.partitions.Get(partition)
	if !ok || len(part.Values) == 0 {
		return errors.New("cannot declare uniform distribution for partition %q with no declared values", partition)
	}
	p := 1.0 / float64(len(part.Values))
	for _, v := range part.Values {
		part.Prob[v] = p
	}
	kb.partitions.Add(partition, part)
	return nil
}

// DeclareValue registers that a partition has a value, without assigning it
// a probability, so that a later @uniform sees it. Used by the loader when
// scanning clause sentences for label occurrences.
func (kb *KB) DeclareValue(label sentence.Label) {
	part, ok := kb.partitions.Get(label.Partition)
	if !ok {
		part = newPartition()
	}
	part.declare(label.Value)
	kb.partitions.Add(label.Partition, part)
}

// Probability returns the declared probability for a label, and whether one
// has been declared.
func (kb *KB) Probability(label sentence.Label) (float64, bool) {
	part, ok := kb.partitions.Get(label.Partition)
	if !ok {
		return 0, false
	}
	p, ok := part.Prob[label.Value]
	return p, ok
}

// Partition returns the registered partition by name, if any.
func (kb *KB) Partition(name string) (*Partition, bool) {
	return kb.partitions.Get(name)
}

// Values implements sentence.Domain: the declared values of a partition, in
// declaration order.
func (kb *KB) Values(partition string) []string {
	part, ok := kb.partitions.Get(partition)
	if !ok {
		return nil
	}
	return part.Values
}

// Partitions returns the names of every partition with at least one
// declared value.
func (kb *KB) Partitions() []string {
	return kb.partitions.Keys()
}

func indicatorOf(lit term.Literal) term.Indicator {
	return term.Indicator{Name: lit.Predicate, Arity: len(lit.Args)}
}
