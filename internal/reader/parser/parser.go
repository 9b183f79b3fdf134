// Released under an MIT license. See LICENSE.

// Package parser provides a recursive descent parser for the kaguya language.
//
// Every term the parser produces is wrapped in an already forced binding
// that records where the term came from.
package parser

import (
	"fmt"
	"strings"

	"github.com/michaelmacinnis/adapted"

	"github.com/kaguya-lang/kaguya/internal/common/interface/cell"
	"github.com/kaguya-lang/kaguya/internal/common/struct/lazy"
	"github.com/kaguya-lang/kaguya/internal/common/struct/loc"
	"github.com/kaguya-lang/kaguya/internal/common/struct/token"
	"github.com/kaguya-lang/kaguya/internal/common/type/boolean"
	"github.com/kaguya-lang/kaguya/internal/common/type/list"
	"github.com/kaguya-lang/kaguya/internal/common/type/num"
	"github.com/kaguya-lang/kaguya/internal/common/type/pair"
	"github.com/kaguya-lang/kaguya/internal/common/type/str"
	"github.com/kaguya-lang/kaguya/internal/common/type/sym"
)

// Error is a parse failure.
type Error struct {
	Message string
	Pos     loc.T

	// Incomplete is true when the text ended before a term was finished.
	// More text may complete it.
	Incomplete bool
}

func (e *Error) Error() string {
	return e.Message
}

// T holds the state of the parser.
type T struct {
	ahead int             // Lookahead count.
	emit  func(*lazy.T)   // Function to call to emit a parsed term.
	item  func() *token.T // Function to call to get another token.
	token *token.T        // Token lookahead.
}

// New creates a new parser.
// It connects a producer of tokens with a consumer of terms.
func New(emit func(*lazy.T), item func() *token.T) *T {
	return &T{emit: emit, item: item}
}

// Parse consumes tokens and emits terms until there are no more tokens.
func (p *T) Parse() (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}

		e, ok := r.(*Error)
		if !ok {
			panic(r)
		}

		err = e
	}()

	for t := p.peek(); t != nil; t = p.peek() {
		p.emit(p.element())
	}

	return nil
}

func (p *T) consume() *token.T {
	if p.ahead == 0 {
		panic("nothing to consume.")
	}

	t := p.token

	p.ahead = 0
	p.token = nil

	return t
}

func (p *T) peek() *token.T {
	if p.ahead > 0 {
		return p.token
	}

	t := p.item()

	p.token = t
	p.ahead = 1

	return t
}

// T state functions.

// <element> ::= <list> | <prefix> <element> | Symbol | String | RawString .
func (p *T) element() *lazy.T {
	t := p.peek()

	switch {
	case t == nil:
		panic(&Error{Message: "Unexpected EOF.", Incomplete: true})
	case t.Is('('):
		return p.list()
	case t.Is(')'):
		fail(t.Source(), "Unexpected ')'.")
	case t.Is(token.Dot):
		fail(t.Source(), "Unexpected dot in this position.")
	case t.Is('\'', '`', ',', token.UnquoteSplicing):
		return p.prefixed()
	case t.Is(token.Error):
		fail(t.Source(), t.Value())
	}

	p.consume()

	return lazy.Value(t.Source(), p.atom(t))
}

// <list> ::= '(' (<element>+ (Dot <element>)?)? ')' .
func (p *T) list() *lazy.T {
	open := p.consume().Source()

	var elements []*lazy.T

	tail := lazy.Builtin(pair.Null)

	for {
		t := p.peek()

		switch {
		case t == nil:
			panic(&Error{
				Message:    "Unexpected EOF. This '(' was never closed.",
				Pos:        open,
				Incomplete: true,
			})
		case t.Is(')'):
			p.consume()

			return lazy.Value(open.Until(t.Source()), list.Improper(tail, elements...))
		case t.Is(token.Dot):
			if len(elements) == 0 {
				fail(t.Source(), "Unexpected dot in this position.")
			}

			p.consume()

			tail = p.dotted(open)
			last := p.consume()

			return lazy.Value(open.Until(last.Source()), list.Improper(tail, elements...))
		}

		elements = append(elements, p.element())
	}
}

// dotted parses the single element after a dot and checks for the ')'.
func (p *T) dotted(open loc.T) *lazy.T {
	t := p.peek()

	switch {
	case t == nil:
		panic(&Error{
			Message:    "Unexpected EOF. This '(' was never closed.",
			Pos:        open,
			Incomplete: true,
		})
	case t.Is(')'):
		fail(t.Source(), "Unexpected ')'. Expecting one element after a dot.")
	}

	tail := p.element()

	t = p.peek()

	switch {
	case t == nil:
		panic(&Error{
			Message:    "Unexpected EOF. This '(' was never closed.",
			Pos:        open,
			Incomplete: true,
		})
	case !t.Is(')'):
		fail(t.Source(), "Expecting ')'. Only one element is allowed after a dot.")
	}

	return tail
}

// <prefix> <element> is read as (name <element>).
func (p *T) prefixed() *lazy.T {
	t := p.consume()

	name := map[token.Class]string{
		'\'':                  "quote",
		'`':                   "quasiquote",
		',':                   "unquote",
		token.UnquoteSplicing: "unquote-splicing",
	}[t.Class()]

	if p.peek() == nil {
		panic(&Error{Message: "Unexpected EOF after '" + t.Value() + "'.", Pos: t.Source(), Incomplete: true})
	}

	e := p.element()

	return lazy.Value(t.Source().Until(e.Pos()), list.New(
		lazy.Value(t.Source(), sym.New(name)),
		e,
	))
}

func (p *T) atom(t *token.T) cell.I {
	v := t.Value()

	switch t.Class() {
	case token.RawString:
		hashes := strings.IndexByte(v, '"') - 1

		return str.New(v[hashes+2 : len(v)-hashes-1])

	case token.String:
		s, err := adapted.ActualBytes(continued.Replace(v[1 : len(v)-1]))
		if err != nil {
			fail(t.Source(), fmt.Sprintf("Invalid string literal: %v.", err))
		}

		return str.New(s)
	}

	switch v {
	case "true":
		return boolean.True
	case "false":
		return boolean.False
	}

	if n, ok := num.Parse(v); ok {
		return n
	}

	return sym.New(v)
}

//nolint:gochecknoglobals
var continued = strings.NewReplacer("\\\r\n", "", "\\\n", "")

func fail(pos loc.T, msg string) {
	panic(&Error{Message: msg, Pos: pos})
}
