package test_helpers

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/brunokim/judged/term"
)

// IgnoreUnexported lets go-cmp compare term and clause values that carry
// unexported bookkeeping fields (Compound's cached hasVar_, Var's suffix)
// without tripping cmp's panic-on-unexported-field default.
var IgnoreUnexported = cmp.Options{
	cmpopts.IgnoreUnexported(term.Compound{}),
	cmp.Comparer(func(a, b term.Var) bool {
		return a.String() == b.String()
	}),
}
