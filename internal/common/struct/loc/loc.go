// Released under an MIT license. See LICENSE.

// Package loc provides the type used to track where terms came from.
// Locations are byte spans into a named source.
package loc

import (
	"strconv"
	"unicode/utf8"
)

// T (loc) is a span of source text.
type T struct {
	Name   string // Label for the source. Empty for anonymous text.
	Offset int    // Byte offset of the first character. -1 for builtins.
	Length int    // Length of the span in bytes.
}

type loc = T

//nolint:gochecknoglobals
var (
	// Builtin marks synthetic terms. It is never recorded on a stack.
	Builtin = T{Offset: -1, Length: -1}
)

// Anonymous creates a location in text with no source identity.
func Anonymous(offset, length int) T {
	return T{Offset: offset, Length: length}
}

// Anonymous returns true if the location has no source identity.
func (l loc) Anonymous() bool {
	return l.Name == ""
}

// Builtin returns true if the location marks a synthetic term.
func (l loc) Builtin() bool {
	return l.Offset == -1
}

// End returns the offset just past the location.
func (l loc) End() int {
	return l.Offset + l.Length
}

// Span returns the location as "line:char..line:char" resolved against text.
func (l loc) Span(text string) string {
	bl, bc := position(text, l.Offset)

	end := l.End() - 1
	if end < l.Offset {
		end = l.Offset
	}

	el, ec := position(text, end)

	return strconv.Itoa(bl) + ":" + strconv.Itoa(bc) + ".." +
		strconv.Itoa(el) + ":" + strconv.Itoa(ec)
}

func (l loc) String() string {
	if l.Builtin() {
		return "<builtin>"
	}

	return l.Name + "@" + strconv.Itoa(l.Offset) + "+" + strconv.Itoa(l.Length)
}

// Until returns the location covering l through o.
func (l loc) Until(o T) T {
	return T{Name: l.Name, Offset: l.Offset, Length: o.End() - l.Offset}
}

func position(text string, offset int) (line, char int) {
	line, char = 1, 1

	if offset > len(text) {
		offset = len(text)
	}

	for i := 0; i < offset; {
		r, w := utf8.DecodeRuneInString(text[i:])
		if r == '\n' {
			line++
			char = 1
		} else {
			char++
		}

		i += w
	}

	return line, char
}
