package ast

import (
	"fmt"
	"strings"

	"github.com/mayhemheroes/mlatu"
)

// Terms are the executable-code trees produced by the expression grammar.
// A Term is immutable once built; every node carries its source origin.

// Fixity is whether a word is used as a prefix word or an infix operator.
type Fixity int

const (
	Postfix Fixity = iota
	Infix
)

// MatchHint distinguishes boolean matches synthesized from 'if' chains from
// ordinary pattern matches.
type MatchHint int

const (
	AnyMatch MatchHint = iota
	BooleanMatch
)

// Term is the closed union of executable-code nodes.
type Term interface {
	isTerm()
	TermOrigin() mlatu.Origin
	String() string
}

// Word is a reference to a named definition.
type Word struct {
	Origin   mlatu.Origin
	Fixity   Fixity
	Name     Name
	TypeArgs []Signature
}

// Push places a literal value on the stack.
type Push struct {
	Origin mlatu.Origin
	Value  Value
}

// Compose sequences two terms; the left term executes first.
type Compose struct {
	Origin mlatu.Origin
	Left   Term
	Right  Term
}

// Identity is the empty program, used for empty blocks and as the seed of
// synthesized bodies.
type Identity struct {
	Origin mlatu.Origin
}

// Lambda introduces the top stack value into a name binding over Body.
type Lambda struct {
	Origin mlatu.Origin
	Name   string
	Body   Term
}

// Case is one clause of a Match.
type Case struct {
	Origin mlatu.Origin
	Name   Name
	Body   Term
}

// Match scrutinizes the top stack value. Else is always present: the parser
// synthesizes an abort branch when the source has none.
type Match struct {
	Origin mlatu.Origin
	Hint   MatchHint
	Cases  []Case
	Else   Term
}

// Group is explicit grouping, erased by a later pass.
type Group struct {
	Origin mlatu.Origin
	Inner  Term
}

// NewVector collects the top Size stack values into a vector.
type NewVector struct {
	Origin mlatu.Origin
	Size   int
}

// Coercion asserts a type or permission shape at this program point.
type Coercion struct {
	Origin    mlatu.Origin
	Signature Signature
}

func (Word) isTerm()      {}
func (Push) isTerm()      {}
func (Compose) isTerm()   {}
func (Identity) isTerm()  {}
func (Lambda) isTerm()    {}
func (Match) isTerm()     {}
func (Group) isTerm()     {}
func (NewVector) isTerm() {}
func (Coercion) isTerm()  {}

func (t Word) TermOrigin() mlatu.Origin      { return t.Origin }
func (t Push) TermOrigin() mlatu.Origin      { return t.Origin }
func (t Compose) TermOrigin() mlatu.Origin   { return t.Origin }
func (t Identity) TermOrigin() mlatu.Origin  { return t.Origin }
func (t Lambda) TermOrigin() mlatu.Origin    { return t.Origin }
func (t Match) TermOrigin() mlatu.Origin     { return t.Origin }
func (t Group) TermOrigin() mlatu.Origin     { return t.Origin }
func (t NewVector) TermOrigin() mlatu.Origin { return t.Origin }
func (t Coercion) TermOrigin() mlatu.Origin  { return t.Origin }

func (t Word) String() string {
	if len(t.TypeArgs) == 0 {
		return t.Name.String()
	}
	return t.Name.String() + "<" + sigList(t.TypeArgs) + ">"
}

func (t Push) String() string     { return t.Value.String() }
func (t Compose) String() string  { return t.Left.String() + " " + t.Right.String() }
func (t Identity) String() string { return "" }

func (t Lambda) String() string {
	return "-> " + t.Name + "; " + t.Body.String()
}

func (t Match) String() string {
	var b strings.Builder
	b.WriteString("match {")
	for _, c := range t.Cases {
		fmt.Fprintf(&b, " case %s { %s }", c.Name, c.Body)
	}
	fmt.Fprintf(&b, " else { %s } }", t.Else)
	return b.String()
}

func (t Group) String() string     { return "(" + t.Inner.String() + ")" }
func (t NewVector) String() string { return fmt.Sprintf("new.vec<%d>", t.Size) }
func (t Coercion) String() string  { return "as " + t.Signature.String() }

// ComposeAll right-folds terms into a Compose chain preserving source order:
// the leftmost term executes first. Zero terms yield Identity.
func ComposeAll(origin mlatu.Origin, terms []Term) Term {
	if len(terms) == 0 {
		return Identity{Origin: origin}
	}
	result := terms[len(terms)-1]
	for i := len(terms) - 2; i >= 0; i-- {
		result = Compose{
			Origin: terms[i].TermOrigin().Merge(result.TermOrigin()),
			Left:   terms[i],
			Right:  result,
		}
	}
	return result
}

// Decompose flattens a Compose chain back into source order. Identity
// nodes vanish.
func Decompose(t Term) []Term {
	switch term := t.(type) {
	case Compose:
		return append(Decompose(term.Left), Decompose(term.Right)...)
	case Identity:
		return nil
	}
	return []Term{t}
}

// --- Values -------------------------------------------------------------------

// Value is a literal payload of a Push term.
type Value interface {
	isValue()
	String() string
}

type CharacterValue struct{ Rune rune }
type TextValue struct{ Text string }
type IntegerValue struct{ Value int64 }
type FloatValue struct{ Value float64 }

// QuotationValue is a block pushed as a value, e.g. by 'do'.
type QuotationValue struct{ Body Term }

// NameValue is a word reference pushed as a value, from '\word'.
type NameValue struct{ Name Name }

func (CharacterValue) isValue() {}
func (TextValue) isValue()      {}
func (IntegerValue) isValue()   {}
func (FloatValue) isValue()     {}
func (QuotationValue) isValue() {}
func (NameValue) isValue()      {}

func (v CharacterValue) String() string { return fmt.Sprintf("%q", v.Rune) }
func (v TextValue) String() string      { return fmt.Sprintf("%q", v.Text) }
func (v IntegerValue) String() string   { return fmt.Sprintf("%d", v.Value) }
func (v FloatValue) String() string     { return fmt.Sprintf("%g", v.Value) }
func (v QuotationValue) String() string { return "{ " + v.Body.String() + " }" }
func (v NameValue) String() string      { return "\\" + v.Name.String() }
