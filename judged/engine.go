package judged

import (
	"github.com/brunokim/judged/errors"
	"github.com/brunokim/judged/extension"
	"github.com/brunokim/judged/kb"
	"github.com/brunokim/judged/resolver"
)

// Engine owns a knowledge base and drives ingest/query over it, per
// spec.md §4.5's core contract. It is not safe for concurrent use: the
// resolver treats the KB as read-only for the duration of a query, and
// the KB itself is mutated only between queries (spec.md §5).
type Engine struct {
	KB         *kb.KB
	Tracer     resolver.Tracer
	Limits     resolver.Limits
	extensions map[string]kb.Extension
}

// New builds an engine over a fresh knowledge base with the built-in
// extensions (currently just '='/2) registered.
func New() *Engine {
	k := kb.New()
	extension.RegisterBuiltins(k)
	return &Engine{KB: k, extensions: make(map[string]kb.Extension)}
}

// RegisterExtension makes an extension available to a later
// StatementUseExtension by name — the shell's extension-loading mechanism
// (spec.md §1's "extension-module loading" external collaborator) calls
// this once per loaded module.
func (e *Engine) RegisterExtension(name string, ext kb.Extension) {
	e.extensions[name] = ext
}

// Ingest dispatches a single statement (spec.md §4.5, §9's "exhaustive
// dispatch at the loader/core boundary").
func (e *Engine) Ingest(stmt Statement) error {
	switch stmt.Kind {
	case StatementClause, StatementAssert:
		if err := e.KB.Assert(stmt.Clause); err != nil {
			return err
		}
		for label := range stmt.Clause.Sentence.Labels() {
			e.KB.DeclareValue(label)
		}
		return nil
	case StatementRetract:
		e.KB.Retract(stmt.Clause)
		return nil
	case StatementLabelProb:
		return e.KB.DeclareProbability(stmt.Label, stmt.Prob)
	case StatementUniformPartition:
		return e.KB.DeclareUniform(stmt.Partition)
	case StatementUseExtension:
		ext, ok := e.extensions[stmt.Extension]
		if !ok {
			return errors.Wrap(errors.UnknownExtension, "extension %q was never registered", stmt.Extension)
		}
		e.KB.RegisterExtension(stmt.ExtensionIndicator, ext)
		return nil
	case StatementQuery:
		// Queries are not ingested; callers drive them through Query.
		return errors.New("StatementQuery must be run through Engine.Query, not Ingest")
	default:
		return errors.New("unknown statement kind %d", stmt.Kind)
	}
}

// Query evaluates a literal against the current knowledge base, building a
// fresh resolver (and so a fresh stratification and a fresh per-query
// table, per spec.md §3's table lifecycle) for every call.
func (e *Engine) Query(stmt Statement) (*resolver.Result, error) {
	r, err := resolver.New(e.KB, e.Tracer, e.Limits)
	if err != nil {
		return nil, err
	}
	return r.Query(stmt.Query)
}
