package term

import (
	"fmt"
	"strings"
)

// Literal is a predicate application with a polarity: a positive literal
// p(t1,...,tn), or its negation ~p(t1,...,tn).
type Literal struct {
	Predicate string
	Args      []Term
	Negated   bool
}

// NewLiteral builds a positive literal.
func NewLiteral(predicate string, args ...Term) Literal {
	return Literal{Predicate: predicate, Args: args}
}

// Negate returns the literal with the opposite polarity.
func (l Literal) Negate() Literal {
	return Literal{Predicate: l.Predicate, Args: l.Args, Negated: !l.Negated}
}

// Indicator returns the literal's predicate symbol and arity.
func (l Literal) Indicator() Indicator {
	return Indicator{l.Predicate, len(l.Args)}
}

// IsGround reports whether every argument of the literal is ground.
func (l Literal) IsGround() bool {
	for _, arg := range l.Args {
		if !IsGround(arg) {
			return false
		}
	}
	return true
}

// Vars returns the set of variables across the literal's arguments, in
// first-occurrence order.
func (l Literal) Vars() []Var {
	seen := make(map[Var]struct{})
	var xs []Var
	for _, arg := range l.Args {
		xs = arg.vars(seen, xs)
	}
	return xs
}

// Apply resolves every variable in the literal's arguments through s.
func (l Literal) Apply(s Substitution) Literal {
	args := make([]Term, len(l.Args))
	for i, arg := range l.Args {
		args[i] = s.Apply(arg)
	}
	return Literal{Predicate: l.Predicate, Args: args, Negated: l.Negated}
}

// Rename standardizes the literal's variables apart using suffix.
func (l Literal) Rename(fresh map[Var]Var, suffix int) Literal {
	args := make([]Term, len(l.Args))
	for i, arg := range l.Args {
		args[i] = Rename(arg, fresh, suffix)
	}
	return Literal{Predicate: l.Predicate, Args: args, Negated: l.Negated}
}

func (l Literal) String() string {
	args := make([]string, len(l.Args))
	for i, arg := range l.Args {
		args[i] = arg.String()
	}
	s := fmt.Sprintf("%s(%s)", l.Predicate, strings.Join(args, ", "))
	if l.Negated {
		return "~" + s
	}
	return s
}

// EqArgs reports whether two literals' arguments are structurally equal
// (ignoring polarity), used to key ground answers.
func EqArgs(a, b []Term) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Eq(a[i], b[i]) {
			return false
		}
	}
	return true
}

// Key returns a string uniquely identifying a ground literal's argument
// tuple, suitable for use as a map key in tables.
func Key(predicate string, args []Term) string {
	var b strings.Builder
	b.WriteString(predicate)
	b.WriteByte('/')
	for _, arg := range args {
		b.WriteByte('|')
		b.WriteString(arg.String())
	}
	return b.String()
}
