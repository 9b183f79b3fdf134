// Released under an MIT license. See LICENSE.

// Package reader turns kaguya source text into terms.
package reader

import (
	"github.com/kaguya-lang/kaguya/internal/common/struct/lazy"
	"github.com/kaguya-lang/kaguya/internal/common/struct/token"
	"github.com/kaguya-lang/kaguya/internal/reader/lexer"
	"github.com/kaguya-lang/kaguya/internal/reader/parser"
)

// Error is a parse failure. See parser.Error.
type Error = parser.Error

// T (reader) encapsulates the kaguya lexer and parser. Text is passed to
// it a line at a time and the terms completed by each line are returned.
type T struct {
	e chan error
	i chan string
	o chan []*lazy.T
	p *parser.T
	s *lexer.T
}

type reader = T

// New creates a new reader for name.
func New(name string) *T {
	r := &T{
		e: make(chan error, 1),
		i: make(chan string),
		o: make(chan []*lazy.T),
		s: lexer.New(name),
	}

	var terms []*lazy.T

	r.p = parser.New(func(t *lazy.T) {
		terms = append(terms, t)
	}, func() *token.T {
		t := r.s.Token()

		for t == nil {
			r.o <- terms

			terms = nil

			if !r.next() {
				return nil
			}

			t = r.s.Token()
		}

		return t
	})

	go r.start()

	return r
}

// Close terminates the reader.
func (r *reader) Close() {
	close(r.i)
}

// Scan reads the line and returns the terms it completes, if any.
// If scan encounters any error it returns the error. A reader that has
// returned an error cannot be used again.
func (r *reader) Scan(line string) ([]*lazy.T, error) {
	r.i <- line

	select {
	case terms := <-r.o:
		return terms, nil
	case err := <-r.e:
		return nil, err
	}
}

func (r *reader) next() bool {
	line, ok := <-r.i
	if ok {
		r.s.Scan(line)
	}

	return ok
}

func (r *reader) start() {
	if !r.next() {
		return
	}

	r.e <- r.p.Parse()
}

// Parse reads every term in text. The name identifies text in locations.
func Parse(name, text string) ([]*lazy.T, error) {
	l := lexer.New(name)

	l.Scan(text)
	l.Scan("\n")

	var terms []*lazy.T

	err := parser.New(func(t *lazy.T) {
		terms = append(terms, t)
	}, l.Token).Parse()
	if err != nil {
		return nil, err
	}

	return terms, nil
}
