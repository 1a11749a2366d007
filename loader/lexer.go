// Package loader implements the surface syntax for JudgeD programs
// (spec.md §6): terms, literals, descriptive sentences, clauses, queries,
// probability declarations, and uniform-partition declarations. It is the
// program loader named as an external collaborator in spec.md §1 — the
// core (term, kb, resolver) never imports it; cmd/judged is its only
// caller.
package loader

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/brunokim/judged/errors"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokAtom
	tokVar
	tokInt
	tokFloat
	tokPunct
	tokKeyword
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

// lexer splits program text into tokens. It is hand-rolled rather than
// grammar-driven, unlike the teacher's self-parsing WAM grammar: JudgeD's
// resolver has no bytecode representation to bootstrap a parser from, so a
// conventional scanner/recursive-descent pair is the idiomatic fit.
type lexer struct {
	src []rune
	pos int
}

func newLexer(text string) *lexer {
	return &lexer{src: []rune(text)}
}

func (l *lexer) peekRune() (rune, bool) {
	if l.pos >= len(l.src) {
		return 0, false
	}
	return l.src[l.pos], true
}

func (l *lexer) peekRuneAt(pos int) (rune, bool) {
	if pos >= len(l.src) {
		return 0, false
	}
	return l.src[pos], true
}

func (l *lexer) skipSpaceAndComments() {
	for {
		r, ok := l.peekRune()
		if !ok {
			return
		}
		if unicode.IsSpace(r) {
			l.pos++
			continue
		}
		if r == '%' {
			for {
				r, ok := l.peekRune()
				if !ok || r == '\n' {
					break
				}
				l.pos++
			}
			continue
		}
		return
	}
}

const punctChars = "(),.?~{}[]|="

func isIdentRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func (l *lexer) next() (token, error) {
	l.skipSpaceAndComments()
	start := l.pos
	r, ok := l.peekRune()
	if !ok {
		return token{kind: tokEOF, pos: start}, nil
	}
	switch {
	case r == '-' && start+1 < len(l.src) && l.src[start+1] == '>':
		l.pos += 2
		return token{kind: tokPunct, text: "->", pos: start}, nil
	case r == ':' && start+1 < len(l.src) && l.src[start+1] == '-':
		l.pos += 2
		return token{kind: tokPunct, text: ":-", pos: start}, nil
	case strings.ContainsRune(punctChars, r):
		l.pos++
		return token{kind: tokPunct, text: string(r), pos: start}, nil
	case r == '@':
		l.pos++
		var b strings.Builder
		for {
			r, ok := l.peekRune()
			if !ok || !isIdentRune(r) {
				break
			}
			b.WriteRune(r)
			l.pos++
		}
		return token{kind: tokKeyword, text: "@" + b.String(), pos: start}, nil
	case unicode.IsDigit(r):
		var b strings.Builder
		for {
			r, ok := l.peekRune()
			if !ok || !unicode.IsDigit(r) {
				break
			}
			b.WriteRune(r)
			l.pos++
		}
		if r, ok := l.peekRune(); ok && r == '.' {
			if next, ok := l.peekRuneAt(l.pos + 1); ok && unicode.IsDigit(next) {
				b.WriteRune('.')
				l.pos++
				for {
					r, ok := l.peekRune()
					if !ok || !unicode.IsDigit(r) {
						break
					}
					b.WriteRune(r)
					l.pos++
				}
				return token{kind: tokFloat, text: b.String(), pos: start}, nil
			}
		}
		return token{kind: tokInt, text: b.String(), pos: start}, nil
	case unicode.IsUpper(r) || r == '_':
		var b strings.Builder
		for {
			r, ok := l.peekRune()
			if !ok || !isIdentRune(r) {
				break
			}
			b.WriteRune(r)
			l.pos++
		}
		return token{kind: tokVar, text: b.String(), pos: start}, nil
	case unicode.IsLower(r):
		var b strings.Builder
		for {
			r, ok := l.peekRune()
			if !ok || !isIdentRune(r) {
				break
			}
			b.WriteRune(r)
			l.pos++
		}
		switch b.String() {
		case "and", "or", "not":
			return token{kind: tokKeyword, text: b.String(), pos: start}, nil
		}
		return token{kind: tokAtom, text: b.String(), pos: start}, nil
	default:
		return token{}, errors.Wrap(errors.ParseError, "unexpected character %q at offset %d", r, start)
	}
}

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "EOF"
	case tokAtom:
		return "atom"
	case tokVar:
		return "var"
	case tokInt:
		return "int"
	case tokFloat:
		return "float"
	case tokPunct:
		return "punct"
	case tokKeyword:
		return "keyword"
	default:
		return "token"
	}
}

func (t token) String() string {
	if t.kind == tokEOF {
		return "EOF"
	}
	return fmt.Sprintf("%s(%q)", t.kind, t.text)
}
