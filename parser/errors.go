package parser

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/sets/treeset"

	"github.com/mayhemheroes/mlatu"
)

// ParseError is the single grammar-mismatch report a parse yields: the
// position of the first unrecoverable failure plus the deduplicated set of
// constructs that would have been legal there.
type ParseError struct {
	Origin   mlatu.Origin
	Found    string
	Expected []string
}

func (e *ParseError) Error() string {
	expected := "something else"
	switch len(e.Expected) {
	case 0:
	case 1:
		expected = e.Expected[0]
	default:
		expected = "one of " + strings.Join(e.Expected, ", ")
	}
	return fmt.Sprintf("%s: expected %s, found %s", e.Origin, expected, e.Found)
}

// InternalError signals a structural-invariant violation: a state the
// grammar's design guarantees to be unreachable. Distinct from ParseError:
// it is a defect in the parser, not in the input.
type InternalError struct {
	Msg string
}

func (e *InternalError) Error() string {
	return "internal parser error: " + e.Msg
}

// internal aborts the whole parse. The entry points recover it and hand it
// back as an error.
func internal(format string, args ...interface{}) {
	panic(&InternalError{Msg: fmt.Sprintf(format, args...)})
}

// failure tracks the furthest position any alternative reached, and what was
// expected there. Ordered choice rewinds freely; only the deepest failure
// surfaces to the user.
type failure struct {
	pos      int
	expected *treeset.Set
}

func newFailure() *failure {
	return &failure{pos: -1, expected: treeset.NewWithStringComparator()}
}

func (f *failure) record(pos int, what string) {
	if pos < f.pos {
		return
	}
	if pos > f.pos {
		f.pos = pos
		f.expected.Clear()
	}
	f.expected.Add(what)
}

func (f *failure) toError(tokens []mlatu.Token) *ParseError {
	pos := f.pos
	if pos < 0 {
		pos = 0
	}
	if pos >= len(tokens) {
		pos = len(tokens) - 1
	}
	tok := tokens[pos]
	found := tok.String()
	if tok.Kind == mlatu.EOF {
		found = "end of input"
	}
	expected := make([]string, 0, f.expected.Size())
	for _, v := range f.expected.Values() {
		expected = append(expected, v.(string))
	}
	return &ParseError{Origin: tok.Origin, Found: found, Expected: expected}
}
