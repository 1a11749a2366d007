// Package extension provides the always-registered built-in extensions and
// the registration helpers host shells use to wire in their own (spec.md
// §4.2, §6). User-defined extensions (SQL-backed predicates, loaded Go
// plugins) are external collaborators; this package only ships the one
// extension the core itself depends on: unification equality.
package extension

import (
	"github.com/brunokim/judged/kb"
	"github.com/brunokim/judged/sentence"
	"github.com/brunokim/judged/term"
)

// EqualsIndicator is the predicate symbol of the built-in equality
// extension, mirroring judged/primitives.py's EQUALS_PREDICATE.
var EqualsIndicator = term.Indicator{Name: "=", Arity: 2}

// Equals implements the built-in '='/2 predicate: it succeeds with
// sentence.True{} whenever its two arguments unify, exactly as
// judged/primitives.py's equals_predicate attempts unification and yields
// a fact on success.
var Equals = kb.ExtensionFunc(func(lit term.Literal, _ *kb.KB) ([]kb.Binding, error) {
	if len(lit.Args) != 2 {
		return nil, nil
	}
	s, ok := term.Unify(lit.Args[0], lit.Args[1], term.Substitution{})
	if !ok {
		return nil, nil
	}
	return []kb.Binding{{Subst: s, Sentence: sentence.True{}}}, nil
})

// RegisterBuiltins registers every built-in extension (currently just
// '='/2) on a knowledge base. A host shell calls this once per KB, before
// consulting user programs.
func RegisterBuiltins(k *kb.KB) {
	k.RegisterExtension(EqualsIndicator, Equals)
}
