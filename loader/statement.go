package loader

import (
	"strings"

	"github.com/brunokim/judged/errors"
	"github.com/brunokim/judged/judged"
)

// ParseStatement parses one top-level statement and returns the
// judged.Statement it denotes (spec.md §6). Generators are handled
// separately by ParseGenerator, since expanding one requires running a
// guard query against the engine rather than just building a value.
func ParseStatement(text string) (judged.Statement, error) {
	text = strings.TrimSpace(text)
	switch {
	case strings.HasPrefix(text, "@uniform"):
		partition, err := ParseUniform(text)
		if err != nil {
			return judged.Statement{}, err
		}
		return judged.NewUniformPartitionStatement(partition), nil
	case strings.HasPrefix(text, "@P"):
		label, p, err := ParseLabelProb(text)
		if err != nil {
			return judged.Statement{}, err
		}
		return judged.NewLabelProbStatement(label, p), nil
	case strings.HasSuffix(text, "?"):
		lit, err := ParseQuery(text)
		if err != nil {
			return judged.Statement{}, err
		}
		return judged.NewQueryStatement(lit), nil
	case strings.HasSuffix(text, "."):
		c, err := ParseClause(text)
		if err != nil {
			return judged.Statement{}, err
		}
		return judged.NewClauseStatement(c), nil
	default:
		return judged.Statement{}, errors.Wrap(errors.ParseError, "statement %q ends in neither '.' nor '?'", text)
	}
}
