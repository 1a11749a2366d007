// Package term implements the first-order term algebra of JudgeD: atomic
// constants, variables, compound terms, substitutions and unification.
//
// A term falls into one of three categories:
//
// * atomic: Atom or Int, an immutable value.
//
// * variable: Var, an unbound, yet-to-be-resolved term.
//
// * compound: Compound, a functor applied to a tuple of argument terms.
package term

import (
	"fmt"
	"sort"
	"strings"
)

// Term is a first-order logic term.
type Term interface {
	fmt.Stringer
	vars(seen map[Var]struct{}, xs []Var) []Var
	hasVar() bool
}

// Atom is an atomic term representing a symbolic constant.
type Atom struct {
	Name string
}

// Int is an atomic term representing an integer constant.
type Int struct {
	Value int
}

// Var is a variable term.
type Var struct {
	Name   string
	suffix int
}

// Compound is a compound term: a functor applied to a tuple of arguments.
type Compound struct {
	Functor string
	Args    []Term
	hasVar_ bool
}

// AnonymousVar represents a variable whose binding is never read.
var AnonymousVar = NewVar("_")

// NewVar creates a var.
//
// It panics if the name doesn't start with an uppercase letter or an underscore.
func NewVar(name string) Var {
	if !IsVarName(name) {
		panic(fmt.Sprintf("term.NewVar: invalid name: %q", name))
	}
	return Var{name, 0}
}

// WithSuffix returns a var with the same name and the given suffix, used to
// generate fresh vars from the same template during standardizing apart.
func (x Var) WithSuffix(suffix int) Var {
	if x.Name == "_" {
		return x
	}
	return Var{x.Name, suffix}
}

// NewCompound creates a compound term.
func NewCompound(functor string, args ...Term) *Compound {
	hasVar := false
	for _, arg := range args {
		if arg.hasVar() {
			hasVar = true
			break
		}
	}
	return &Compound{Functor: functor, Args: args, hasVar_: hasVar}
}

// Indicator is a functor/arity pair identifying a predicate symbol.
type Indicator struct {
	Name  string
	Arity int
}

func (ind Indicator) String() string {
	return fmt.Sprintf("%s/%d", ind.Name, ind.Arity)
}

// Indicator returns the compound's functor/arity pair.
func (c *Compound) Indicator() Indicator {
	return Indicator{c.Functor, len(c.Args)}
}

// Vars returns the set of variables in a term, in first-occurrence order.
func Vars(t Term) []Var {
	if !t.hasVar() {
		return nil
	}
	seen := make(map[Var]struct{})
	return t.vars(seen, nil)
}

func (t Atom) vars(seen map[Var]struct{}, xs []Var) []Var { return xs }
func (t Int) vars(seen map[Var]struct{}, xs []Var) []Var  { return xs }

func (t Var) vars(seen map[Var]struct{}, xs []Var) []Var {
	if _, ok := seen[t]; ok {
		return xs
	}
	seen[t] = struct{}{}
	return append(xs, t)
}

func (t *Compound) vars(seen map[Var]struct{}, xs []Var) []Var {
	if !t.hasVar_ {
		return xs
	}
	for _, arg := range t.Args {
		xs = arg.vars(seen, xs)
	}
	return xs
}

func (t Atom) hasVar() bool      { return false }
func (t Int) hasVar() bool       { return false }
func (t Var) hasVar() bool       { return true }
func (t *Compound) hasVar() bool { return t.hasVar_ }

// IsGround reports whether a term contains no variables.
func IsGround(t Term) bool { return !t.hasVar() }

// ---- Comparisons, in the order Var < Int < Atom < Compound.

func termOrder(t Term) int {
	switch t.(type) {
	case Var:
		return 1
	case Int:
		return 2
	case Atom:
		return 3
	case *Compound:
		return 4
	default:
		panic(fmt.Sprintf("term: unhandled type %T", t))
	}
}

type ordering int

const (
	less ordering = iota
	equal
	more
)

func compareStrings(a, b string) ordering {
	switch {
	case a < b:
		return less
	case a > b:
		return more
	default:
		return equal
	}
}

func compareInts(a, b int) ordering {
	switch {
	case a < b:
		return less
	case a > b:
		return more
	default:
		return equal
	}
}

func compare(t1, t2 Term) ordering {
	switch u := t1.(type) {
	case Atom:
		if v, ok := t2.(Atom); ok {
			return compareStrings(u.Name, v.Name)
		}
	case Int:
		if v, ok := t2.(Int); ok {
			return compareInts(u.Value, v.Value)
		}
	case Var:
		if v, ok := t2.(Var); ok {
			if o := compareStrings(u.Name, v.Name); o != equal {
				return o
			}
			return compareInts(u.suffix, v.suffix)
		}
	case *Compound:
		if v, ok := t2.(*Compound); ok {
			return u.compare(v)
		}
	default:
		panic(fmt.Sprintf("term: unhandled type %T", t1))
	}
	return compareInts(termOrder(t1), termOrder(t2))
}

func (c *Compound) compare(other *Compound) ordering {
	if o := compareInts(len(c.Args), len(other.Args)); o != equal {
		return o
	}
	if o := compareStrings(c.Functor, other.Functor); o != equal {
		return o
	}
	for i := range c.Args {
		if o := compare(c.Args[i], other.Args[i]); o != equal {
			return o
		}
	}
	return equal
}

// Less reports the standard order of terms: Var < Int < Atom < Compound.
func Less(t1, t2 Term) bool { return compare(t1, t2) == less }

// Eq reports whether two terms are structurally identical.
func Eq(t1, t2 Term) bool { return compare(t1, t2) == equal }

// ---- String()

func (t Atom) String() string { return FormatAtom(t.Name) }
func (t Int) String() string  { return fmt.Sprintf("%d", t.Value) }

func (t Var) String() string {
	if t.suffix > 0 {
		return fmt.Sprintf("%s_%d_", t.Name, t.suffix)
	}
	return t.Name
}

func (t *Compound) String() string {
	if len(t.Args) == 0 {
		return t.Functor
	}
	args := make([]string, len(t.Args))
	for i, arg := range t.Args {
		args[i] = arg.String()
	}
	return fmt.Sprintf("%s(%s)", t.Functor, strings.Join(args, ", "))
}

// SortTerms sorts a slice of terms in standard order, in place.
func SortTerms(ts []Term) {
	sort.Slice(ts, func(i, j int) bool { return Less(ts[i], ts[j]) })
}
