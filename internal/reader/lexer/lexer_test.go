// Released under an MIT license. See LICENSE.

package lexer

import (
	"testing"

	"github.com/kaguya-lang/kaguya/internal/common/struct/loc"
	"github.com/kaguya-lang/kaguya/internal/common/struct/token"
)

func TestArrow(t *testing.T) {
	h := setup(t, "Arrow")

	h.scan("(a -> b)\n",
		h.literal("("),
		h.symbol("a"),
		h.space(1),
		h.other(token.Dot, "->"),
		h.space(1),
		h.symbol("b"),
		h.literal(")"),
		nil,
	)
}

func TestComment(t *testing.T) {
	h := setup(t, "Comment")

	h.scan("a ; the rest is ignored (\nb\n",
		h.symbol("a"),
		h.space(len(" ; the rest is ignored (\n")),
		h.symbol("b"),
		nil,
	)
}

func TestDottedPair(t *testing.T) {
	h := setup(t, "DottedPair")

	h.scan("(1 . 2)\n",
		h.literal("("),
		h.symbol("1"),
		h.space(1),
		h.other(token.Dot, "."),
		h.space(1),
		h.symbol("2"),
		h.literal(")"),
		nil,
	)
}

func TestPrefixes(t *testing.T) {
	h := setup(t, "Prefixes")

	h.scan("'a `b ,c ,@d\n",
		h.literal("'"),
		h.symbol("a"),
		h.space(1),
		h.literal("`"),
		h.symbol("b"),
		h.space(1),
		h.literal(","),
		h.symbol("c"),
		h.space(1),
		h.other(token.UnquoteSplicing, ",@"),
		h.symbol("d"),
		nil,
	)
}

func TestRawString(t *testing.T) {
	h := setup(t, "RawString")

	h.scan(`r#"say "hi""# x`+"\n",
		h.other(token.RawString, `r#"say "hi""#`),
		h.space(1),
		h.symbol("x"),
		nil,
	)
}

func TestResumedString(t *testing.T) {
	h := setup(t, "ResumedString")

	h.scan(`(print "hello`,
		h.literal("("),
		h.symbol("print"),
		nil,
	)

	h.space(1)

	h.scan(`, world")`+"\n",
		h.other(token.String, `"hello, world"`),
		h.literal(")"),
		nil,
	)
}

func TestString(t *testing.T) {
	h := setup(t, "String")

	h.scan(`"a \"b\" c"x`+"\n",
		h.other(token.String, `"a \"b\" c"`),
		h.symbol("x"),
		nil,
	)
}

func TestSymbolEndsAtQuote(t *testing.T) {
	h := setup(t, "SymbolEndsAtQuote")

	h.scan("ab'c\n",
		h.symbol("ab"),
		h.literal("'"),
		h.symbol("c"),
		nil,
	)
}

func TestUnterminatedString(t *testing.T) {
	h := setup(t, "UnterminatedString")

	h.scan("\"abc\nd\n",
		h.other(token.Error, "\"abc\n"),
		h.symbol("d"),
		nil,
	)
}

type harness struct {
	index  int
	lexer  *T
	source string
	t      *testing.T
}

var skip = token.New(token.Error, "", loc.T{}) //nolint:gochecknoglobals

func setup(t *testing.T, label string) *harness {
	return &harness{
		lexer:  New(label),
		source: label,
		t:      t,
	}
}

func (h *harness) expect(tokens ...*token.T) {
	for _, e := range tokens {
		if e == skip {
			continue
		}

		a := h.lexer.Token()

		switch {
		case a == e:
			continue
		case a == nil:
			h.t.Fatalf("Expected %v but there are no tokens", e)
		case e == nil:
			h.t.Fatalf("Expected no tokens; got %v", a)
		case a.Class() != e.Class() || a.Source() != e.Source():
			h.t.Fatalf("Expected %v; got %v", e, a)
		case e.Class() != token.Error && a.Value() != e.Value():
			h.t.Fatalf("Expected %v; got %v", e, a)
		}
	}
}

func (h *harness) literal(s string) *token.T {
	return h.other(token.Class(s[0]), s)
}

func (h *harness) other(id token.Class, s string) *token.T {
	t := token.New(id, s, loc.T{
		Name:   h.source,
		Offset: h.index,
		Length: len(s),
	})

	h.index += len(s)

	return t
}

func (h *harness) scan(s string, tokens ...*token.T) {
	h.lexer.Scan(s)
	h.expect(tokens...)
}

// space advances past n bytes that produce no token.
func (h *harness) space(n int) *token.T {
	h.index += n

	return skip
}

func (h *harness) symbol(s string) *token.T {
	return h.other(token.Symbol, s)
}
