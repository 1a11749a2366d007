package main

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/brunokim/judged/resolver"
	"github.com/brunokim/judged/term"
)

// zapTracer implements resolver.Tracer on top of a zap.SugaredLogger,
// wired in when the shell runs with -d or -v; it logs at debug level, so
// its entries only show with -d. Each top-level Ask gets a
// uuid so a trace log can refer to a frame unambiguously without
// reprinting the full call pattern on every line.
type zapTracer struct {
	log *zap.SugaredLogger
	run uuid.UUID
}

func newZapTracer(log *zap.SugaredLogger) *zapTracer {
	return &zapTracer{log: log, run: uuid.New()}
}

func (t *zapTracer) Ask(goal term.Literal) {
	t.run = uuid.New()
	t.log.Debugw("ask", "run", t.run, "goal", goal.String())
}

func (t *zapTracer) Subgoal(lit term.Literal) {
	t.log.Debugw("subgoal", "run", t.run, "literal", lit.String())
}

func (t *zapTracer) Clause(lit term.Literal, clauseText string) {
	t.log.Debugw("clause", "run", t.run, "head", lit.String(), "clause", clauseText)
}

func (t *zapTracer) Answer(lit term.Literal, answer resolver.Answer) {
	t.log.Debugw("answer", "run", t.run, "literal", lit.String(), "subst", answer.Subst.String())
}

func (t *zapTracer) Complete(ind term.Indicator) {
	t.log.Debugw("complete", "run", t.run, "indicator", ind.String())
}

func newLogger(verbose, debug bool) *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	cfg.Encoding = "console"
	cfg.EncoderConfig.TimeKey = ""
	logger, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return logger.Sugar()
}
