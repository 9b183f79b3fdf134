// Released under an MIT license. See LICENSE.

// Package fault provides the panic type raised by kaguya programs.
//
// A fault carries a message and the stack of source locations it passed
// through while unwinding. Faults are values: unwinding returns a new fault
// so that a fault shared by several forcers is never mutated.
package fault

import (
	"context"
	"errors"
	"fmt"

	"github.com/kaguya-lang/kaguya/internal/common/interface/cell"
	"github.com/kaguya-lang/kaguya/internal/common/struct/loc"
)

// Kind classifies a fault.
type Kind int

// Fault kinds.
const (
	Undefined Kind = iota
	Mismatch
	Bind
	Arity
	Redefinition
	User
	Syntax
	Conversion
	Parse
	Host
)

// T (fault) is an unrecoverable error raised while evaluating kaguya code.
// Bind faults are the exception: poly dispatch catches them.
type T struct {
	Kind    Kind
	Message string
	Stack   []loc.T

	// A bind fault is either a leaf or an aggregate of its children.
	Leaf     *Leaf
	Children []*T
}

type fault = T

// Leaf describes a single pattern mismatch.
type Leaf struct {
	Expected   cell.I
	ExpectedAt loc.T
	Found      cell.I
	FoundAt    loc.T
}

// New creates a fault of kind k with a formatted message.
func New(k Kind, format string, args ...interface{}) *T {
	return &T{Kind: k, Message: fmt.Sprintf(format, args...)}
}

// Error returns the fault's message.
func (f *fault) Error() string {
	return f.Message
}

// Unwind returns a copy of f with l pushed onto its stack. Builtin
// locations and immediate repeats are not recorded.
func (f *fault) Unwind(l loc.T) *T {
	if l.Builtin() {
		return f
	}

	if n := len(f.Stack); n > 0 && f.Stack[n-1] == l {
		return f
	}

	c := *f
	c.Stack = make([]loc.T, len(f.Stack), len(f.Stack)+1)
	copy(c.Stack, f.Stack)
	c.Stack = append(c.Stack, l)

	return &c
}

// Functions specific to fault.

// As returns the fault wrapped by err, if any.
func As(err error) (*T, bool) {
	var f *T
	if errors.As(err, &f) {
		return f, true
	}

	return nil, false
}

// Is returns true if err is a fault of kind k.
func Is(err error, k Kind) bool {
	f, ok := As(err)

	return ok && f.Kind == k
}

// IsBind returns true if err is a bind fault.
func IsBind(err error) bool {
	return Is(err, Bind)
}

// Unwind pushes l onto err's stack if err is a fault. Other errors, such
// as context cancellation, pass through untouched.
func Unwind(err error, l loc.T) error {
	if err == nil {
		return nil
	}

	f, ok := As(err)
	if !ok {
		return err
	}

	return f.Unwind(l)
}

// Recovered converts a value recovered from a Go panic into a fault.
func Recovered(r interface{}) error {
	switch r := r.(type) {
	case *T:
		return r
	case error:
		if errors.Is(r, context.Canceled) || errors.Is(r, context.DeadlineExceeded) {
			return r
		}

		return New(User, "%s", r.Error())
	case string:
		return New(User, "%s", r)
	}

	return New(User, "%v", r)
}

// Constructors. Messages are worded the way users see them.

// UndefinedSymbol reports a lookup that reached the root scope.
func UndefinedSymbol(name string) *T {
	return New(Undefined, "Undefined symbol: '%s'.", name)
}

// TypeError reports that a term with tag found was given where expected was required.
func TypeError(expected, found string) *T {
	return New(Mismatch, "Expecting type of %s, found %s.", expected, found)
}

// Mismatched creates a bind fault leaf.
func Mismatched(expected cell.I, ea loc.T, found cell.I, fa loc.T) *T {
	return &T{
		Kind:    Bind,
		Message: "No pattern matches the call.",
		Leaf: &Leaf{
			Expected:   expected,
			ExpectedAt: ea,
			Found:      found,
			FoundAt:    fa,
		},
	}
}

// Unmatched aggregates the bind faults of every poly candidate.
func Unmatched(children []*T) *T {
	return &T{
		Kind:     Bind,
		Message:  "No pattern matches the call.",
		Children: children,
	}
}

// TooFew reports a call with fewer than min arguments.
func TooFew(min, given int) *T {
	return New(Arity, "Expecting at least %d arguments, %d given.", min, given)
}

// TooMany reports a call with more than max arguments.
func TooMany(max int) *T {
	return New(Arity, "Expecting at most %d arguments, too much given.", max)
}

// Redefined reports a name bound twice by one pattern.
func Redefined(name string) *T {
	return New(Redefinition, "Multiple definitions of symbol '%s'.", name)
}

// Panic is a fault raised by the program itself.
func Panic(msg string) *T {
	return New(User, "%s", msg)
}

// SyntaxError reports a malformed form.
func SyntaxError(msg string) *T {
	return New(Syntax, "Syntax error: %s", msg)
}

// NoConversion reports that from cannot be converted to the tag to.
func NoConversion(from, to string) *T {
	return New(Conversion, "Cannot convert %s to %s.", from, to)
}

// ParseError reports malformed source text at l.
func ParseError(msg string, l loc.T) *T {
	return (&T{Kind: Parse, Message: msg}).Unwind(l)
}

// HostError wraps a failure reported by the host.
func HostError(err error) *T {
	return New(Host, "%s", err.Error())
}
