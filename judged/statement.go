// Package judged wires the term/sentence algebra, knowledge base, resolver
// and probability engine into the core contract a host shell drives:
// ingest a stream of parsed statements, then answer queries against the
// resulting knowledge base (spec.md §4.5).
package judged

import (
	"github.com/brunokim/judged/kb"
	"github.com/brunokim/judged/sentence"
	"github.com/brunokim/judged/term"
)

// StatementKind tags the variant a Statement carries.
type StatementKind int

const (
	// StatementClause asserts Clause at load time (a fact or rule from
	// program text, as opposed to an interactive .assert).
	StatementClause StatementKind = iota
	// StatementQuery evaluates Query and emits its answers.
	StatementQuery
	// StatementAssert is the interactive-shell equivalent of
	// StatementClause (spec.md §6's ".assert" command).
	StatementAssert
	// StatementRetract removes the first clause structurally matching
	// Clause.
	StatementRetract
	// StatementLabelProb declares Label's probability as Prob.
	StatementLabelProb
	// StatementUniformPartition declares Partition's distribution as
	// uniform over its currently declared values.
	StatementUniformPartition
	// StatementUseExtension binds ExtensionIndicator to the extension
	// named Extension, looked up in a registry the shell supplies.
	StatementUseExtension
)

// Statement is a tagged variant over every form ingest accepts (spec.md
// §4.5, §6). Only the fields relevant to Kind are populated.
type Statement struct {
	Kind StatementKind

	Clause *kb.Clause
	Query  term.Literal

	Label sentence.Label
	Prob  float64

	Partition string

	Extension          string
	ExtensionIndicator term.Indicator
}

// NewClauseStatement builds a StatementClause.
func NewClauseStatement(c *kb.Clause) Statement {
	return Statement{Kind: StatementClause, Clause: c}
}

// NewAssertStatement builds a StatementAssert.
func NewAssertStatement(c *kb.Clause) Statement {
	return Statement{Kind: StatementAssert, Clause: c}
}

// NewRetractStatement builds a StatementRetract.
func NewRetractStatement(c *kb.Clause) Statement {
	return Statement{Kind: StatementRetract, Clause: c}
}

// NewQueryStatement builds a StatementQuery.
func NewQueryStatement(lit term.Literal) Statement {
	return Statement{Kind: StatementQuery, Query: lit}
}

// NewLabelProbStatement builds a StatementLabelProb.
func NewLabelProbStatement(label sentence.Label, p float64) Statement {
	return Statement{Kind: StatementLabelProb, Label: label, Prob: p}
}

// NewUniformPartitionStatement builds a StatementUniformPartition.
func NewUniformPartitionStatement(partition string) Statement {
	return Statement{Kind: StatementUniformPartition, Partition: partition}
}

// NewUseExtensionStatement builds a StatementUseExtension.
func NewUseExtensionStatement(name string, ind term.Indicator) Statement {
	return Statement{Kind: StatementUseExtension, Extension: name, ExtensionIndicator: ind}
}
