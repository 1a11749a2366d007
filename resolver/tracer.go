package resolver

import "github.com/brunokim/judged/term"

// Tracer receives notifications as the resolver works, mirroring the
// debugger hooks of judged/logic.py's Prover (ask/subgoal/clause/answer/
// complete). A nil Tracer is a no-op; the host shell's -d or -v flag wires one
// backed by structured logging.
type Tracer interface {
	Ask(goal term.Literal)
	Subgoal(lit term.Literal)
	Clause(lit term.Literal, clauseText string)
	Answer(lit term.Literal, answer Answer)
	Complete(ind term.Indicator)
}

type noopTracer struct{}

func (noopTracer) Ask(term.Literal)               {}
func (noopTracer) Subgoal(term.Literal)           {}
func (noopTracer) Clause(term.Literal, string)     {}
func (noopTracer) Answer(term.Literal, Answer)    {}
func (noopTracer) Complete(term.Indicator)        {}
