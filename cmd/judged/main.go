// Command judged is the host shell: it loads program files, accepts an
// interactive or one-shot query, and prints answers through one of three
// back-ends (spec.md §6). Parsing, the REPL, and output formatting all
// live here, outside the core the judged/resolver/probability packages
// implement.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/brunokim/judged/judged"
	"github.com/brunokim/judged/loader"
	"github.com/brunokim/judged/probability"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: judged {deterministic|exact|montecarlo} [flags]")
	}
	mode := os.Args[1]
	switch mode {
	case "deterministic", "exact", "montecarlo":
	default:
		log.Fatalf("unknown subcommand %q: want deterministic, exact, or montecarlo", mode)
	}

	fs := flag.NewFlagSet(mode, flag.ExitOnError)
	interactive := fs.Bool("i", false, "drop into an interactive prompt after loading files")
	verbose := fs.Bool("v", false, "verbose trace output")
	debug := fs.Bool("d", false, "debug trace output")
	format := fs.String("f", "plain", "output format: color or plain")
	extPath := fs.String("e", "", "comma-separated extension modules to load")
	modPath := fs.String("m", "", "comma-separated data modules to consult")
	configPath := fs.String("config", "", "YAML shell configuration file")
	query := fs.String("query", "", "initial query to issue")
	fs.Parse(os.Args[2:])

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := newLogger(*verbose, *debug)
	defer logger.Sync()

	engine := judged.New()
	if *debug || *verbose {
		engine.Tracer = newZapTracer(logger)
	}

	for _, name := range splitNonEmpty(*extPath) {
		logger.Infow("extension loading is an external collaborator; wire your own kb.Extension and call engine.RegisterExtension", "name", name)
	}
	for _, file := range splitNonEmpty(*modPath) {
		if err := consultFile(engine, file); err != nil {
			log.Printf("consult %s: %v", file, err)
		}
	}

	sink := judged.WriterSink{W: os.Stdout}
	_ = *format // color/plain encoding selection lives in the sink's writer, not modeled here

	if *query != "" {
		runQuery(engine, mode, *query, sink, cfg)
	}
	if *interactive || *query == "" {
		runREPL(engine, mode, sink, cfg)
	}
}

func splitNonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func consultFile(engine *judged.Engine, filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	for _, stmt := range splitStatements(string(data)) {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if strings.HasPrefix(stmt, "{") {
			gen, err := loader.ParseGenerator(stmt)
			if err != nil {
				return err
			}
			if err := loader.ExpandGenerator(engine, gen); err != nil {
				return err
			}
			continue
		}
		parsed, err := loader.ParseStatement(stmt)
		if err != nil {
			return err
		}
		if parsed.Kind == judged.StatementQuery {
			return fmt.Errorf("queries are not valid inside a consulted file: %q", stmt)
		}
		if err := engine.Ingest(parsed); err != nil {
			return err
		}
	}
	return nil
}

// splitStatements splits program text into one statement per non-empty
// line. It does not look for the '.' or '?' terminators: a statement
// cannot span lines, and a line holding several statements is passed on
// as one.
func splitStatements(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func runQuery(engine *judged.Engine, mode, query string, sink judged.OutputSink, cfg shellConfig) {
	stmt, err := loader.ParseStatement(query)
	if err != nil {
		log.Fatalf("parse query: %v", err)
	}
	if stmt.Kind != judged.StatementQuery {
		log.Fatalf("-query must be a goal ending in '?'")
	}
	answerQuery(engine, mode, stmt, sink, cfg)
}

func answerQuery(engine *judged.Engine, mode string, stmt judged.Statement, sink judged.OutputSink, cfg shellConfig) {
	result, err := engine.Query(stmt)
	if err != nil {
		sink.Warning(err)
		os.Exit(1)
	}
	if result.Warning != nil {
		sink.Warning(result.Warning)
	}
	switch mode {
	case "deterministic":
		if err := sink.Deterministic(result); err != nil {
			log.Fatal(err)
		}
	case "exact":
		answers, err := probability.Exact(engine.KB, result)
		if err != nil {
			sink.Warning(err)
			os.Exit(1)
		}
		if err := sink.Exact(answers); err != nil {
			log.Fatal(err)
		}
	case "montecarlo":
		mcCfg := probability.Config{N: cfg.Samples, Seed: cfg.Seed}
		if cfg.ConvergenceThreshold > 0 {
			mcCfg.ConvergenceThreshold = &cfg.ConvergenceThreshold
		}
		mc, err := probability.Run(engine.KB, result, mcCfg)
		if err != nil {
			sink.Warning(err)
			os.Exit(1)
		}
		if err := sink.MonteCarlo(mc, result.Answers); err != nil {
			log.Fatal(err)
		}
	}
}

func runREPL(engine *judged.Engine, mode string, sink judged.OutputSink, cfg shellConfig) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:                 "?- ",
		HistoryFile:            "/tmp/judged-history",
		DisableAutoSaveHistory: true,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer rl.Close()

	for {
		line, isClose := readStatement(rl)
		if isClose {
			return
		}
		stmt, err := loader.ParseStatement(line)
		if err != nil {
			log.Print(err)
			continue
		}
		if stmt.Kind == judged.StatementQuery {
			answerQuery(engine, mode, stmt, sink, cfg)
			continue
		}
		if err := engine.Ingest(stmt); err != nil {
			log.Print(err)
		}
	}
}

func readStatement(rl *readline.Instance) (string, bool) {
	rl.SetPrompt("?- ")
	var lines []string
	for {
		line, err := rl.Readline()
		if err != nil {
			return "", true
		}
		line = strings.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		lines = append(lines, line)
		if strings.HasSuffix(line, ".") || strings.HasSuffix(line, "?") {
			break
		}
		rl.SetPrompt("|  ")
	}
	text := strings.Join(lines, " ")
	rl.SaveHistory(text)
	return text, false
}
