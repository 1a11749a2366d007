package loader

import (
	"regexp"
	"strings"

	"github.com/brunokim/judged/errors"
	"github.com/brunokim/judged/judged"
)

// Generator holds the parsed pieces of a `{ stmt; stmt; … | guard }` block
// (spec.md §4.3, §6): a guard literal evaluated as a query, and a set of
// statement templates instantiated once per guard answer. Expansion
// reduces to repeated Engine.Ingest calls; the resolver never sees
// generator syntax.
type Generator struct {
	Body  []string
	Guard string
}

// ParseGenerator splits a generator block into its guard and body
// templates. It does not parse the templates themselves, since they must
// first have the guard's variable bindings substituted in.
func ParseGenerator(text string) (*Generator, error) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "{") || !strings.HasSuffix(text, "}") {
		return nil, errors.Wrap(errors.ParseError, "expected a generator block delimited by { }")
	}
	inner := text[1 : len(text)-1]
	bar := strings.LastIndex(inner, "|")
	if bar < 0 {
		return nil, errors.Wrap(errors.ParseError, "generator block missing '| guard'")
	}
	bodyText, guardText := inner[:bar], inner[bar+1:]
	var body []string
	for _, stmt := range strings.Split(bodyText, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt != "" {
			body = append(body, stmt)
		}
	}
	return &Generator{Body: body, Guard: strings.TrimSpace(guardText)}, nil
}

var identRe = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)

// substituteVars replaces every occurrence of a bound variable's name in
// template with the string form of its binding. Unbound identifiers (names
// not present in bindings) are left untouched.
func substituteVars(template string, bindings map[string]string) string {
	return identRe.ReplaceAllStringFunc(template, func(name string) string {
		if v, ok := bindings[name]; ok {
			return v
		}
		return name
	})
}

// ExpandGenerator evaluates a generator's guard against the engine and
// ingests each body template once per answer, with the guard's variable
// bindings substituted in (spec.md §4.3's "reduces to repeated asserts").
func ExpandGenerator(e *judged.Engine, gen *Generator) error {
	guard, err := ParseLiteral(gen.Guard)
	if err != nil {
		return err
	}
	result, err := e.Query(judged.NewQueryStatement(guard))
	if err != nil {
		return err
	}
	for _, answer := range result.Answers {
		bindings := make(map[string]string, len(answer.Subst))
		for v, t := range answer.Subst {
			bindings[v.Name] = t.String()
		}
		for _, template := range gen.Body {
			text := substituteVars(template, bindings)
			stmt, err := ParseStatement(text)
			if err != nil {
				return err
			}
			if err := e.Ingest(stmt); err != nil {
				return err
			}
		}
	}
	return nil
}
