package term

import (
	"sort"
	"strings"
)

// Substitution maps variables to terms. Substitutions are applied
// functionally: Apply never mutates its receiver or the term it walks.
type Substitution map[Var]Term

// String renders a substitution as a comma-separated list of bindings, in
// variable-name order, for deterministic display.
func (s Substitution) String() string {
	if len(s) == 0 {
		return "true"
	}
	vars := make([]Var, 0, len(s))
	for v := range s {
		vars = append(vars, v)
	}
	sort.Slice(vars, func(i, j int) bool {
		if vars[i].Name != vars[j].Name {
			return vars[i].Name < vars[j].Name
		}
		return Less(vars[i], vars[j])
	})
	parts := make([]string, len(vars))
	for i, v := range vars {
		parts[i] = v.String() + "=" + s.Apply(v).String()
	}
	return strings.Join(parts, ", ")
}

// Extend returns a new substitution with x bound to t, leaving the receiver
// untouched.
func (s Substitution) Extend(x Var, t Term) Substitution {
	next := make(Substitution, len(s)+1)
	for k, v := range s {
		next[k] = v
	}
	next[x] = t
	return next
}

// Apply recursively resolves every variable in t through the substitution.
func (s Substitution) Apply(t Term) Term {
	if !t.hasVar() {
		return t
	}
	switch u := t.(type) {
	case Var:
		bound, ok := s[u]
		if !ok {
			return u
		}
		// Chase chains of bound vars; substitutions built by Unify never
		// introduce a cycle because of the occurs check.
		return s.Apply(bound)
	case *Compound:
		args := make([]Term, len(u.Args))
		changed := false
		for i, arg := range u.Args {
			args[i] = s.Apply(arg)
			if args[i] != arg {
				changed = true
			}
		}
		if !changed {
			return u
		}
		return NewCompound(u.Functor, args...)
	default:
		return t
	}
}

func occurs(x Var, t Term, s Substitution) bool {
	t = s.Apply(t)
	if v, ok := t.(Var); ok {
		return v == x
	}
	if c, ok := t.(*Compound); ok {
		for _, arg := range c.Args {
			if occurs(x, arg, s) {
				return true
			}
		}
	}
	return false
}

// Unify attempts to unify two terms under the given substitution, returning
// an extended substitution on success. It performs an occurs check, so it
// never builds a cyclic binding.
func Unify(t1, t2 Term, s Substitution) (Substitution, bool) {
	t1 = s.Apply(t1)
	t2 = s.Apply(t2)
	if v, ok := t1.(Var); ok {
		if v2, ok := t2.(Var); ok && v == v2 {
			return s, true
		}
		if occurs(v, t2, s) {
			return nil, false
		}
		return s.Extend(v, t2), true
	}
	if v, ok := t2.(Var); ok {
		if occurs(v, t1, s) {
			return nil, false
		}
		return s.Extend(v, t1), true
	}
	switch u1 := t1.(type) {
	case Atom:
		u2, ok := t2.(Atom)
		return s, ok && u1 == u2
	case Int:
		u2, ok := t2.(Int)
		return s, ok && u1 == u2
	case *Compound:
		u2, ok := t2.(*Compound)
		if !ok || u1.Functor != u2.Functor || len(u1.Args) != len(u2.Args) {
			return nil, false
		}
		var ok2 bool
		for i := range u1.Args {
			s, ok2 = Unify(u1.Args[i], u2.Args[i], s)
			if !ok2 {
				return nil, false
			}
		}
		return s, true
	default:
		return nil, false
	}
}

// UnifyArgs unifies two equal-length argument tuples under s.
func UnifyArgs(args1, args2 []Term, s Substitution) (Substitution, bool) {
	if len(args1) != len(args2) {
		return nil, false
	}
	ok := true
	for i := range args1 {
		s, ok = Unify(args1[i], args2[i], s)
		if !ok {
			return nil, false
		}
	}
	return s, true
}

// Rename returns a copy of t with every variable renamed by suffixing it,
// using (and updating) the fresh map to keep repeated occurrences of the
// same variable consistent. Used to standardize a clause activation apart
// from every other.
func Rename(t Term, fresh map[Var]Var, suffix int) Term {
	switch u := t.(type) {
	case Var:
		if u.Name == "_" {
			return u
		}
		if r, ok := fresh[u]; ok {
			return r
		}
		r := u.WithSuffix(suffix)
		fresh[u] = r
		return r
	case *Compound:
		args := make([]Term, len(u.Args))
		for i, arg := range u.Args {
			args[i] = Rename(arg, fresh, suffix)
		}
		return NewCompound(u.Functor, args...)
	default:
		return t
	}
}
