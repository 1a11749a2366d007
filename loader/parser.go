package loader

import (
	"strconv"

	"github.com/brunokim/judged/errors"
	"github.com/brunokim/judged/kb"
	"github.com/brunokim/judged/sentence"
	"github.com/brunokim/judged/term"
)

// parser is a recursive-descent parser over a single statement's tokens,
// with one token of lookahead.
type parser struct {
	lex  *lexer
	cur  token
	vars map[string]term.Var
}

func newParser(text string) (*parser, error) {
	p := &parser{lex: newLexer(text), vars: make(map[string]term.Var)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *parser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

func (p *parser) expectPunct(text string) error {
	if p.cur.kind != tokPunct || p.cur.text != text {
		return errors.Wrap(errors.ParseError, "expected %q, got %v at offset %d", text, p.cur, p.cur.pos)
	}
	return p.advance()
}

// ---- terms

func (p *parser) parseTerm() (term.Term, error) {
	switch p.cur.kind {
	case tokVar:
		name := p.cur.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		if name == "_" {
			return term.AnonymousVar, nil
		}
		v, ok := p.vars[name]
		if !ok {
			v = term.NewVar(name)
			p.vars[name] = v
		}
		return v, nil
	case tokInt:
		n, err := strconv.Atoi(p.cur.text)
		if err != nil {
			return nil, errors.Wrap(errors.ParseError, "invalid integer %q", p.cur.text)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return term.Int{Value: n}, nil
	case tokAtom:
		name := p.cur.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.cur.kind == tokPunct && p.cur.text == "(" {
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			return term.NewCompound(name, args...), nil
		}
		return term.Atom{Name: name}, nil
	default:
		return nil, errors.Wrap(errors.ParseError, "expected a term, got %v at offset %d", p.cur, p.cur.pos)
	}
}

func (p *parser) parseArgs() ([]term.Term, error) {
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	var args []term.Term
	for {
		t, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		args = append(args, t)
		if p.cur.kind == tokPunct && p.cur.text == "," {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	return args, nil
}

// ---- literals

func (p *parser) parseLiteral() (term.Literal, error) {
	negated := false
	if p.cur.kind == tokPunct && p.cur.text == "~" {
		negated = true
		if err := p.advance(); err != nil {
			return term.Literal{}, err
		}
	} else if p.cur.kind == tokKeyword && p.cur.text == "not" {
		negated = true
		if err := p.advance(); err != nil {
			return term.Literal{}, err
		}
	}
	t, err := p.parseTerm()
	if err != nil {
		return term.Literal{}, err
	}
	switch u := t.(type) {
	case term.Atom:
		return term.Literal{Predicate: u.Name, Negated: negated}, nil
	case *term.Compound:
		return term.Literal{Predicate: u.Functor, Args: u.Args, Negated: negated}, nil
	default:
		return term.Literal{}, errors.Wrap(errors.ParseError, "expected a literal, got %v", t)
	}
}

func (p *parser) parseLiterals() ([]term.Literal, error) {
	var lits []term.Literal
	for {
		lit, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		lits = append(lits, lit)
		if p.cur.kind == tokPunct && p.cur.text == "," {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	return lits, nil
}

// ---- sentences: label | (S and S) | (S or S) | not S
// Precedence: not > and > or.

func (p *parser) parseSentence() (sentence.Sentence, error) {
	return p.parseOr()
}

func (p *parser) parseOr() (sentence.Sentence, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokKeyword && p.cur.text == "or" {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = sentence.Disjunct(left, right)
	}
	return left, nil
}

func (p *parser) parseAnd() (sentence.Sentence, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokKeyword && p.cur.text == "and" {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = sentence.Conjunct(left, right)
	}
	return left, nil
}

func (p *parser) parseNot() (sentence.Sentence, error) {
	if p.cur.kind == tokKeyword && p.cur.text == "not" {
		if err := p.advance(); err != nil {
			return nil, err
		}
		sub, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return sentence.Negate(sub), nil
	}
	if p.cur.kind == tokPunct && p.cur.text == "(" {
		if err := p.advance(); err != nil {
			return nil, err
		}
		s, err := p.parseSentence()
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct(")"); err != nil {
			return nil, err
		}
		return s, nil
	}
	return p.parseLabel()
}

func (p *parser) parseLabel() (sentence.Sentence, error) {
	if p.cur.kind != tokAtom {
		return nil, errors.Wrap(errors.ParseError, "expected a label partition=value, got %v at offset %d", p.cur, p.cur.pos)
	}
	partition := p.cur.text
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.expectPunct("="); err != nil {
		return nil, err
	}
	value, err := p.parseAtomOrInt()
	if err != nil {
		return nil, err
	}
	return sentence.Lit{Label: sentence.Label{Partition: partition, Value: value}}, nil
}

func (p *parser) parseAtomOrInt() (string, error) {
	switch p.cur.kind {
	case tokAtom:
		v := p.cur.text
		return v, p.advance()
	case tokInt:
		v := p.cur.text
		return v, p.advance()
	default:
		return "", errors.Wrap(errors.ParseError, "expected a label value, got %v at offset %d", p.cur, p.cur.pos)
	}
}

// optionalSentence parses a trailing "[sentence]" clause annotation,
// defaulting to sentence.True{} when absent.
func (p *parser) optionalSentence() (sentence.Sentence, error) {
	if p.cur.kind == tokPunct && p.cur.text == "[" {
		if err := p.advance(); err != nil {
			return nil, err
		}
		s, err := p.parseSentence()
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct("]"); err != nil {
			return nil, err
		}
		return s, nil
	}
	return sentence.True{}, nil
}

// ---- clauses, queries, probability declarations

// ParseClause parses "head [sentence]." or "head :- body1, body2, … [sentence].".
func ParseClause(text string) (*kb.Clause, error) {
	p, err := newParser(text)
	if err != nil {
		return nil, err
	}
	head, err := p.parseLiteral()
	if err != nil {
		return nil, err
	}
	var body []term.Literal
	if p.cur.kind == tokPunct && p.cur.text == ":-" {
		if err := p.advance(); err != nil {
			return nil, err
		}
		body, err = p.parseLiterals()
		if err != nil {
			return nil, err
		}
	}
	sent, err := p.optionalSentence()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct("."); err != nil {
		return nil, err
	}
	if p.cur.kind != tokEOF {
		return nil, errors.Wrap(errors.ParseError, "unexpected trailing input at offset %d", p.cur.pos)
	}
	return kb.NewClause(head, sent, body...), nil
}

// ParseLiteral parses a bare literal, such as a generator's guard, with no
// trailing '?' or '.'.
func ParseLiteral(text string) (term.Literal, error) {
	p, err := newParser(text)
	if err != nil {
		return term.Literal{}, err
	}
	lit, err := p.parseLiteral()
	if err != nil {
		return term.Literal{}, err
	}
	if p.cur.kind != tokEOF {
		return term.Literal{}, errors.Wrap(errors.ParseError, "unexpected trailing input at offset %d", p.cur.pos)
	}
	return lit, nil
}

// ParseQuery parses "goal(…)?".
func ParseQuery(text string) (term.Literal, error) {
	p, err := newParser(text)
	if err != nil {
		return term.Literal{}, err
	}
	lit, err := p.parseLiteral()
	if err != nil {
		return term.Literal{}, err
	}
	if err := p.expectPunct("?"); err != nil {
		return term.Literal{}, err
	}
	return lit, nil
}

// ParseLabelProb parses "@P(partition=value) = 0.5.".
func ParseLabelProb(text string) (sentence.Label, float64, error) {
	p, err := newParser(text)
	if err != nil {
		return sentence.Label{}, 0, err
	}
	if p.cur.kind != tokKeyword || p.cur.text != "@P" {
		return sentence.Label{}, 0, errors.Wrap(errors.ParseError, "expected @P(...), got %v", p.cur)
	}
	if err := p.advance(); err != nil {
		return sentence.Label{}, 0, err
	}
	if err := p.expectPunct("("); err != nil {
		return sentence.Label{}, 0, err
	}
	partition := p.cur.text
	if p.cur.kind != tokAtom {
		return sentence.Label{}, 0, errors.Wrap(errors.ParseError, "expected partition name, got %v", p.cur)
	}
	if err := p.advance(); err != nil {
		return sentence.Label{}, 0, err
	}
	if err := p.expectPunct("="); err != nil {
		return sentence.Label{}, 0, err
	}
	value, err := p.parseAtomOrInt()
	if err != nil {
		return sentence.Label{}, 0, err
	}
	if err := p.expectPunct(")"); err != nil {
		return sentence.Label{}, 0, err
	}
	if err := p.expectPunct("="); err != nil {
		return sentence.Label{}, 0, err
	}
	if p.cur.kind != tokInt && p.cur.kind != tokFloat && p.cur.kind != tokAtom {
		return sentence.Label{}, 0, errors.Wrap(errors.ParseError, "expected a probability value, got %v", p.cur)
	}
	prob, err := strconv.ParseFloat(p.cur.text, 64)
	if err != nil {
		return sentence.Label{}, 0, errors.Wrap(errors.ParseError, "invalid probability %q", p.cur.text)
	}
	if err := p.advance(); err != nil {
		return sentence.Label{}, 0, err
	}
	if err := p.expectPunct("."); err != nil {
		return sentence.Label{}, 0, err
	}
	if p.cur.kind != tokEOF {
		return sentence.Label{}, 0, errors.Wrap(errors.ParseError, "unexpected trailing input at offset %d", p.cur.pos)
	}
	return sentence.Label{Partition: partition, Value: value}, prob, nil
}

// ParseUniform parses "@uniform partition.".
func ParseUniform(text string) (string, error) {
	p, err := newParser(text)
	if err != nil {
		return "", err
	}
	if p.cur.kind != tokKeyword || p.cur.text != "@uniform" {
		return "", errors.Wrap(errors.ParseError, "expected @uniform, got %v", p.cur)
	}
	if err := p.advance(); err != nil {
		return "", err
	}
	if p.cur.kind != tokAtom {
		return "", errors.Wrap(errors.ParseError, "expected partition name, got %v", p.cur)
	}
	partition := p.cur.text
	if err := p.advance(); err != nil {
		return "", err
	}
	if err := p.expectPunct("."); err != nil {
		return "", err
	}
	return partition, nil
}
