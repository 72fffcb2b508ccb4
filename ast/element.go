package ast

import "github.com/mayhemheroes/mlatu"

// Top-level program elements. One parse step yields one Element (a vocab
// block yields the elements it contains); the fragment assembler partitions
// them into the five Fragment collections.

// Element is the closed union of top-level items.
type Element interface {
	isElement()
}

// DeclarationElement wraps a Declaration.
type DeclarationElement struct{ Declaration Declaration }

// DefinitionElement wraps a Definition.
type DefinitionElement struct{ Definition Definition }

// MetadataElement wraps a Metadata block.
type MetadataElement struct{ Metadata Metadata }

// TypeElement wraps a TypeDefinition.
type TypeElement struct{ Type TypeDefinition }

// SynonymElement wraps a Synonym.
type SynonymElement struct{ Synonym Synonym }

// TermElement is a bare top-level executable statement.
type TermElement struct{ Term Term }

func (DeclarationElement) isElement() {}
func (DefinitionElement) isElement()  {}
func (MetadataElement) isElement()    {}
func (TypeElement) isElement()        {}
func (SynonymElement) isElement()     {}
func (TermElement) isElement()        {}

// --- Declarations --------------------------------------------------------------

// DeclCategory distinguishes intrinsic declarations from trait declarations.
type DeclCategory int

const (
	IntrinsicDecl DeclCategory = iota
	TraitDecl
)

// Declaration declares a name with a signature but no body.
type Declaration struct {
	Origin    mlatu.Origin
	Category  DeclCategory
	Name      Qualified
	Signature Signature
}

// --- Definitions ----------------------------------------------------------------

// DefCategory classifies a definition.
type DefCategory int

const (
	WordDef DefCategory = iota
	InstanceDef
	PermissionDef
	DeconstructorDef
)

// MergePolicy says what happens when two definitions share a name.
type MergePolicy int

const (
	DenyMerge MergePolicy = iota
	ComposeMerge
)

// Parent links a definition to the trait or record it belongs to.
type Parent interface{ isParent() }

type NoParent struct{}
type TraitOf struct{ Name Qualified }
type RecordOf struct{ Name Qualified }

func (NoParent) isParent() {}
func (TraitOf) isParent()  {}
func (RecordOf) isParent() {}

// Definition is a named word with a signature and a body.
type Definition struct {
	Origin    mlatu.Origin
	Name      Qualified
	Signature Signature
	Body      Term
	Category  DefCategory
	Parent    Parent
	Merge     MergePolicy
	// Inferred marks bodies the parser synthesized rather than read from
	// source (the implicit entry point, record accessors).
	Inferred bool
}

// --- Type definitions ------------------------------------------------------------

// Field is one named slot of a record constructor.
type Field struct {
	Origin    mlatu.Origin
	Name      string
	Signature Signature
}

// Constructor is one case of a data type.
type Constructor struct {
	Origin mlatu.Origin
	Name   string
	Fields []Field
}

// TypeDefinition defines a data type or record.
type TypeDefinition struct {
	Origin       mlatu.Origin
	Name         Qualified
	Params       []Parameter
	Constructors []Constructor
	// Record marks single-constructor types declared with 'record', whose
	// fields get accessor definitions synthesized after assembly.
	Record bool
}

// --- Metadata ----------------------------------------------------------------------

// MetadataEntry is one key/body pair of an 'about' block.
type MetadataEntry struct {
	Origin mlatu.Origin
	Key    string
	Body   Term
}

// Metadata attaches key/body annotations to a name.
type Metadata struct {
	Origin  mlatu.Origin
	Name    Name
	Entries []MetadataEntry
}

// --- Synonyms ----------------------------------------------------------------------

// Synonym makes Name an alias for Target.
type Synonym struct {
	Origin mlatu.Origin
	Name   Qualified
	Target Name
}
