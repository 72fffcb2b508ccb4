package ast

import (
	"strconv"
	"strings"
)

// Names and namespace qualifiers.
//
// A vocabulary is a namespace scope; a qualifier is the (absolute or
// relative) path of vocabulary segments attached to a name.

// Root anchors a Qualifier either at the program root or at the enclosing
// vocabulary of the use site.
type Root int

const (
	Relative Root = iota
	Absolute
)

// Qualifier is a namespace path.
type Qualifier struct {
	Root  Root
	Parts []string
}

// GlobalVocabulary is the root namespace every absolute path hangs off.
var GlobalVocabulary = Qualifier{Root: Absolute}

// Append returns q extended by the given segments. The receiver is not
// mutated; parsing snapshots and restores qualifiers by value.
func (q Qualifier) Append(parts ...string) Qualifier {
	joined := make([]string, 0, len(q.Parts)+len(parts))
	joined = append(joined, q.Parts...)
	joined = append(joined, parts...)
	return Qualifier{Root: q.Root, Parts: joined}
}

func (q Qualifier) IsGlobal() bool {
	return q.Root == Absolute && len(q.Parts) == 0
}

func (q Qualifier) String() string {
	if q.Root == Absolute {
		return "_::" + strings.Join(q.Parts, "::")
	}
	return strings.Join(q.Parts, "::")
}

// --- General names -----------------------------------------------------------

// Name is the closed union of name shapes the compiler deals in. The parser
// only ever constructs Qualified and Unqualified names; Local names appear
// later, during scope resolution.
type Name interface {
	isName()
	String() string
}

// Qualified is a name with an explicit namespace path.
type Qualified struct {
	Qualifier Qualifier
	Part      string
}

// Unqualified is a bare name, resolved against the scope later.
type Unqualified struct {
	Part string
}

// Local is a de Bruijn-style reference to a lambda binding. Never produced
// by the grammar.
type Local struct {
	Index int
}

func (Qualified) isName()   {}
func (Unqualified) isName() {}
func (Local) isName()       {}

func (n Qualified) String() string {
	if len(n.Qualifier.Parts) == 0 && n.Qualifier.Root == Absolute {
		return "_::" + n.Part
	}
	return n.Qualifier.String() + "::" + n.Part
}

func (n Unqualified) String() string {
	return n.Part
}

func (n Local) String() string {
	return "local." + strconv.Itoa(n.Index)
}

// QualifyIn resolves a name against an ambient qualifier: a Relative
// qualified name is prefixed with the ambient path, an Absolute one passes
// through, an unqualified name is qualified directly. This is the only
// place scope state is read during parsing.
func QualifyIn(ambient Qualifier, n Name) Qualified {
	switch name := n.(type) {
	case Qualified:
		if name.Qualifier.Root == Absolute {
			return name
		}
		return Qualified{
			Qualifier: ambient.Append(name.Qualifier.Parts...),
			Part:      name.Part,
		}
	case Unqualified:
		return Qualified{Qualifier: ambient, Part: name.Part}
	}
	// Local (or a future variant) is illegal here; callers treat this as a
	// structural-invariant violation.
	panic("ast: cannot qualify a local name")
}
