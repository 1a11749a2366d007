package extension

import (
	"testing"

	"github.com/brunokim/judged/kb"
	"github.com/brunokim/judged/term"
)

func TestEqualsUnifies(t *testing.T) {
	k := kb.New()
	x := term.NewVar("X")
	a := term.Atom{Name: "a"}
	bindings, err := Equals.Call(term.NewLiteral("=", x, a), k)
	if err != nil {
		t.Fatal(err)
	}
	if len(bindings) != 1 {
		t.Fatalf("len(bindings) = %d, want 1", len(bindings))
	}
	if got := bindings[0].Subst.Apply(x); got != a {
		t.Errorf("X = %v, want a", got)
	}
}

func TestEqualsFailsOnMismatch(t *testing.T) {
	k := kb.New()
	a, b := term.Atom{Name: "a"}, term.Atom{Name: "b"}
	bindings, err := Equals.Call(term.NewLiteral("=", a, b), k)
	if err != nil {
		t.Fatal(err)
	}
	if len(bindings) != 0 {
		t.Errorf("len(bindings) = %d, want 0", len(bindings))
	}
}

func TestRegisterBuiltinsWiresEquals(t *testing.T) {
	k := kb.New()
	RegisterBuiltins(k)
	if _, ok := k.Extension(EqualsIndicator); !ok {
		t.Error("RegisterBuiltins did not register the = extension")
	}
}
