package ast

import (
	"strings"

	"github.com/mayhemheroes/mlatu"
)

// Type signatures, as written in source. Nothing here is checked; the
// grammar only records shape.

// ParamKind says what grammar of names is legal for a type parameter.
type ParamKind int

const (
	ValueKind ParamKind = iota
	StackKind
	PermissionKind
)

func (k ParamKind) String() string {
	switch k {
	case ValueKind:
		return "value"
	case StackKind:
		return "stack"
	case PermissionKind:
		return "permission"
	}
	return "unknown"
}

// Parameter is one entry of a quantifier list.
type Parameter struct {
	Origin mlatu.Origin
	Name   string
	Kind   ParamKind
}

// Signature is the closed union of type-level trees.
type Signature interface {
	isSignature()
	SigOrigin() mlatu.Origin
	String() string
}

// Variable is a bare type name or type variable.
type Variable struct {
	Origin mlatu.Origin
	Name   Name
}

// Application applies a type constructor to an argument, left-associatively.
type Application struct {
	Origin   mlatu.Origin
	Function Signature
	Argument Signature
}

// Function is an arrow type with fixed-arity inputs and outputs. Perms is the
// set of named capabilities the call may use; syntactic only.
type Function struct {
	Origin mlatu.Origin
	Ins    []Signature
	Outs   []Signature
	Perms  []Name
}

// StackFunction is the stack-polymorphic arrow form: row variables stand for
// arbitrary-length stack tails on either side.
type StackFunction struct {
	Origin   mlatu.Origin
	LeftVar  Name
	Ins      []Signature
	RightVar Name
	Outs     []Signature
	Perms    []Name
}

// Quantified wraps a parameter list around a function type.
type Quantified struct {
	Origin mlatu.Origin
	Params []Parameter
	Body   Signature
}

func (Variable) isSignature()      {}
func (Application) isSignature()   {}
func (Function) isSignature()      {}
func (StackFunction) isSignature() {}
func (Quantified) isSignature()    {}

func (s Variable) SigOrigin() mlatu.Origin      { return s.Origin }
func (s Application) SigOrigin() mlatu.Origin   { return s.Origin }
func (s Function) SigOrigin() mlatu.Origin      { return s.Origin }
func (s StackFunction) SigOrigin() mlatu.Origin { return s.Origin }
func (s Quantified) SigOrigin() mlatu.Origin    { return s.Origin }

func (s Variable) String() string {
	return s.Name.String()
}

func (s Application) String() string {
	return s.Function.String() + "<" + s.Argument.String() + ">"
}

func (s Function) String() string {
	return "(" + sigList(s.Ins) + " -> " + sigList(s.Outs) + permList(s.Perms) + ")"
}

func (s StackFunction) String() string {
	var b strings.Builder
	b.WriteString("(")
	b.WriteString(s.LeftVar.String())
	b.WriteString("...")
	if len(s.Ins) > 0 {
		b.WriteString(", ")
		b.WriteString(sigList(s.Ins))
	}
	b.WriteString(" -> ")
	b.WriteString(s.RightVar.String())
	b.WriteString("...")
	if len(s.Outs) > 0 {
		b.WriteString(", ")
		b.WriteString(sigList(s.Outs))
	}
	b.WriteString(permList(s.Perms))
	b.WriteString(")")
	return b.String()
}

func (s Quantified) String() string {
	params := make([]string, len(s.Params))
	for i, p := range s.Params {
		switch p.Kind {
		case StackKind:
			params[i] = p.Name + "..."
		case PermissionKind:
			params[i] = "+" + p.Name
		default:
			params[i] = p.Name
		}
	}
	return "for " + strings.Join(params, ", ") + ". " + s.Body.String()
}

func sigList(sigs []Signature) string {
	parts := make([]string, len(sigs))
	for i, s := range sigs {
		parts[i] = s.String()
	}
	return strings.Join(parts, ", ")
}

func permList(perms []Name) string {
	var b strings.Builder
	for _, p := range perms {
		b.WriteString(" +")
		b.WriteString(p.String())
	}
	return b.String()
}
