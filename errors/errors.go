// Package errors provides the single error constructor used across JudgeD's
// core, tagged with the error Kind taxonomy the core must surface to a host
// shell rather than swallow.
package errors

import (
	"fmt"
)

// Kind classifies a core error, per the error handling design.
type Kind int

const (
	// Other is the zero Kind, used for errors not classified by the core
	// (e.g. errors wrapped verbatim from an extension).
	Other Kind = iota
	// ParseError marks malformed input. The core never produces this
	// itself; it is reserved for a host loader to report through the same
	// taxonomy.
	ParseError
	// UnsafeClause marks a clause where a variable appears only in a
	// negative body literal, or only in the head.
	UnsafeClause
	// UnstratifiedNegation marks a cyclic negative dependency among
	// predicates.
	UnstratifiedNegation
	// UnknownExtension marks a reference to an extension that was never
	// registered.
	UnknownExtension
	// UnknownPredicate marks a query or body literal whose predicate has
	// no clauses and no extension. Not fatal: it yields an empty answer
	// set, but is still reported as a warning-level error to the shell.
	UnknownPredicate
	// MissingProbability marks a Monte-Carlo run that reached a label
	// whose partition has no declared probability.
	MissingProbability
	// UnsupportedOperation marks the exact back-end being used against a
	// program that contains negation.
	UnsupportedOperation
	// ResourceExhausted marks a table-size or sample-count ceiling being
	// hit.
	ResourceExhausted
	// ExtensionFailure wraps an error returned by extension code.
	ExtensionFailure
)

func (k Kind) String() string {
	switch k {
	case ParseError:
		return "ParseError"
	case UnsafeClause:
		return "UnsafeClause"
	case UnstratifiedNegation:
		return "UnstratifiedNegation"
	case UnknownExtension:
		return "UnknownExtension"
	case UnknownPredicate:
		return "UnknownPredicate"
	case MissingProbability:
		return "MissingProbability"
	case UnsupportedOperation:
		return "UnsupportedOperation"
	case ResourceExhausted:
		return "ResourceExhausted"
	case ExtensionFailure:
		return "ExtensionFailure"
	default:
		return "Error"
	}
}

type err struct {
	kind Kind
	msg  string
	args []interface{}
}

func (e err) Error() string {
	return fmt.Sprintf("%s: %s", e.kind, fmt.Sprintf(e.msg, e.args...))
}

func (e err) Unwrap() error {
	for _, arg := range e.args {
		if wrapped, ok := arg.(error); ok {
			return wrapped
		}
	}
	return nil
}

// Kind returns the error's Kind.
func (e err) Kind() Kind {
	return e.kind
}

// New constructs an error of unspecified Kind, for use where no Kind in the
// taxonomy applies.
func New(msg string, args ...interface{}) error {
	return err{Other, msg, args}
}

// Wrap constructs an error of the given Kind.
func Wrap(kind Kind, msg string, args ...interface{}) error {
	return err{kind, msg, args}
}

// Is reports whether err was constructed with the given Kind.
func Is(e error, kind Kind) bool {
	type kinder interface{ Kind() Kind }
	for e != nil {
		if k, ok := e.(kinder); ok && k.Kind() == kind {
			return true
		}
		u, ok := e.(interface{ Unwrap() error })
		if !ok {
			break
		}
		e = u.Unwrap()
	}
	return false
}
