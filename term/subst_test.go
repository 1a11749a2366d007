package term

import (
	"testing"
)

func TestUnify(t *testing.T) {
	x, y := NewVar("X"), NewVar("Y")
	tests := []struct {
		name   string
		t1, t2 Term
		want   bool
	}{
		{"atoms equal", Atom{"a"}, Atom{"a"}, true},
		{"atoms differ", Atom{"a"}, Atom{"b"}, false},
		{"ints equal", Int{1}, Int{1}, true},
		{"ints differ", Int{1}, Int{2}, false},
		{"var binds atom", x, Atom{"a"}, true},
		{"var binds var", x, y, true},
		{"compound same shape", NewCompound("f", x, Atom{"a"}), NewCompound("f", Int{1}, Atom{"a"}), true},
		{"compound different arity", NewCompound("f", x), NewCompound("f", x, y), false},
		{"occurs check fails", x, NewCompound("f", x), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := Unify(tc.t1, tc.t2, Substitution{})
			if ok != tc.want {
				t.Errorf("Unify(%v, %v) ok = %v, want %v", tc.t1, tc.t2, ok, tc.want)
			}
		})
	}
}

func TestUnifyBindingPropagates(t *testing.T) {
	x, y := NewVar("X"), NewVar("Y")
	s, ok := Unify(x, y, Substitution{})
	if !ok {
		t.Fatal("unify failed")
	}
	s, ok = Unify(x, Atom{"a"}, s)
	if !ok {
		t.Fatal("unify failed")
	}
	if got := s.Apply(y); got != (Atom{"a"}) {
		t.Errorf("s.Apply(Y) = %v, want a", got)
	}
}

func TestSubstitutionString(t *testing.T) {
	if got := (Substitution{}).String(); got != "true" {
		t.Errorf("empty substitution String() = %q, want true", got)
	}
	s := Substitution{NewVar("X"): Atom{"a"}, NewVar("Y"): Int{1}}
	if got := s.String(); got != "X=a, Y=1" {
		t.Errorf("String() = %q, want X=a, Y=1", got)
	}
}

func TestRenameStandardizesApart(t *testing.T) {
	x := NewVar("X")
	c := NewCompound("f", x, x)
	fresh := make(map[Var]Var)
	renamed := Rename(c, fresh, 1).(*Compound)
	rx, ok := renamed.Args[0].(Var)
	if !ok {
		t.Fatalf("renamed arg is not a Var: %v", renamed.Args[0])
	}
	if rx.Name != "X" || rx == x {
		t.Errorf("Rename did not produce a distinct X variant: %v", rx)
	}
	if renamed.Args[0] != renamed.Args[1] {
		t.Errorf("Rename gave repeated occurrences of X different renamings: %v vs %v", renamed.Args[0], renamed.Args[1])
	}
}

func TestAnonymousVarNeverRenamed(t *testing.T) {
	fresh := make(map[Var]Var)
	r := Rename(AnonymousVar, fresh, 5)
	if r != AnonymousVar {
		t.Errorf("Rename(AnonymousVar) = %v, want unchanged", r)
	}
}

func TestOrdering(t *testing.T) {
	x, y := NewVar("X"), NewVar("Y")
	if !Less(x, Int{0}) {
		t.Error("Var should sort before Int")
	}
	if !Less(Int{0}, Atom{"a"}) {
		t.Error("Int should sort before Atom")
	}
	if !Less(Atom{"a"}, NewCompound("f", x)) {
		t.Error("Atom should sort before Compound")
	}
	if Eq(x, y) {
		t.Error("distinct vars should not be Eq")
	}
}
