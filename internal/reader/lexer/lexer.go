// Released under an MIT license. See LICENSE.

// Package lexer provides a lexical scanner for the kaguya language.
//
// The kaguya lexer adapts the state function approach used by Go's
// text/template lexer and described in detail in Rob Pike's talk "Lexical
// Scanning in Go". See https://talks.golang.org/2011/lex.slide for more
// information.
//
// Text can be passed to the lexer a piece at a time. A token that is cut
// off by the end of the available text is resumed when more text arrives.
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kaguya-lang/kaguya/internal/common/struct/loc"
	"github.com/kaguya-lang/kaguya/internal/common/struct/token"
)

// T holds the state of the scanner.
type T struct {
	base   int      // Offset of the buffer's first byte in the source.
	bytes  string   // Buffer being scanned.
	first  int      // Index of the current token's first byte.
	hashes int      // Hashes delimiting the current raw string.
	index  int      // Index of the current byte.
	name   string   // Source name.
	queue  []string // Buffers waiting to be scanned.
	saved  action   // Escaped action.
	state  action   // Current action.

	tokens chan *token.T
}

// New creates a new T. Label can be a file name or other identifier.
func New(label string) *T {
	return &T{name: label, state: skipWhitespace}
}

// Scan passes a text buffer to the lexer for scanning.
// If a buffer is currently being scanned, the new buffer will
// be appended to the list of buffers waiting to be scanned.
func (l *T) Scan(text string) {
	l.queue = append(l.queue, text)
}

// Text is used to return the text corresponding to the current token.
func (l *T) Text() string {
	return l.bytes[l.first:l.index]
}

// Token returns the next scanned token, or nil if no token is available.
func (l *T) Token() *token.T {
	for {
		l.gather()

		if l.tokens == nil {
			return nil
		}

		select {
		case t := <-l.tokens:
			return t
		default:
			state := l.state(l)
			if state != nil {
				l.state = state
			} else {
				close(l.tokens)
			}
		}
	}
}

type action func(*T) action

const eof = -1

func (l *T) accept(w int) {
	l.index += w
}

func (l *T) emit(c token.Class, v string) {
	l.tokens <- token.New(c, v, loc.T{
		Name:   l.name,
		Offset: l.base + l.first,
		Length: l.index - l.first,
	})

	l.skip()
}

func (l *T) escape(escaped, a action) action {
	l.saved = escaped

	return a
}

func (l *T) gather() {
	if len(l.queue) == 0 {
		return
	}

	bytes := strings.Join(l.queue, "")

	l.base += l.first
	l.bytes = l.bytes[l.first:] + bytes
	l.index -= l.first
	l.first = 0
	l.queue = nil
	l.tokens = make(chan *token.T, 16)
}

func (l *T) next() rune {
	r, w := l.peek()
	l.accept(w)

	return r
}

func (l *T) peek() (rune, int) {
	r, w := rune(eof), 0
	if l.index < len(l.bytes) {
		r, w = utf8.DecodeRuneInString(l.bytes[l.index:])
	}

	return r, w
}

func (l *T) resume() action {
	resumed := l.saved
	l.saved = nil

	return resumed
}

func (l *T) skip() {
	l.first = l.index
}

// T states.

func afterComma(l *T) action {
	r, w := l.peek()

	switch r {
	case eof:
		return nil
	case '@':
		l.accept(w)
		l.emit(token.UnquoteSplicing, l.Text())
	default:
		l.emit(',', l.Text())
	}

	return skipWhitespace
}

func escapeNextCharacter(l *T) action {
	r := l.next()

	if r == eof {
		return nil
	}

	return l.resume()
}

func scanRawString(l *T) action {
	for {
		r := l.next()

		switch r {
		case eof:
			return nil
		case '"':
			closing := strings.Repeat("#", l.hashes)
			rest := l.bytes[l.index:]

			if strings.HasPrefix(rest, closing) {
				l.accept(len(closing))
				l.emit(token.RawString, l.Text())

				return skipWhitespace
			}

			if strings.HasPrefix(closing, rest) {
				// The closing delimiter may be cut off. Wait for more.
				l.index--

				return nil
			}
		}
	}
}

func scanString(l *T) action {
	for {
		r := l.next()

		switch r {
		case eof:
			return nil
		case '"':
			l.emit(token.String, l.Text())

			return skipWhitespace
		case '\n':
			l.emit(token.Error, "Unexpected end of line.")

			return skipWhitespace
		case '\\':
			return l.escape(scanString, escapeNextCharacter)
		}
	}
}

func scanSymbol(l *T) action {
	for {
		r, w := l.peek()

		switch {
		case r == eof:
			return nil
		case r == '"' && raw(l.Text()):
			l.hashes = len(l.Text()) - 1
			l.accept(w)

			return scanRawString
		case delimiter(r):
			s := l.Text()
			if s == "." || s == "->" {
				l.emit(token.Dot, s)
			} else {
				l.emit(token.Symbol, s)
			}

			return skipWhitespace
		default:
			l.accept(w)
		}
	}
}

func skipComment(l *T) action {
	for {
		r := l.next()

		switch r {
		case eof:
			return nil
		case '\n':
			l.skip()

			return skipWhitespace
		}
	}
}

func skipWhitespace(l *T) action {
	for {
		r := l.next()

		if unicode.IsSpace(r) {
			l.skip()

			continue
		}

		switch r {
		case eof:
			return nil
		case '(', ')', '\'', '`':
			l.emit(token.Class(r), l.Text())

			return skipWhitespace
		case ',':
			return afterComma
		case '"':
			return scanString
		case ';':
			return skipComment
		default:
			return scanSymbol
		}
	}
}

// Helper functions.

func delimiter(r rune) bool {
	return unicode.IsSpace(r) || strings.ContainsRune("\"'(),;`", r)
}

// raw returns true if s is the opening of a raw string: an r and zero or
// more hashes.
func raw(s string) bool {
	return len(s) > 0 && s[0] == 'r' && strings.Trim(s[1:], "#") == ""
}
