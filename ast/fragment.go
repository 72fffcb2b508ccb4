package ast

import (
	"fmt"

	"github.com/cnf/structhash"
)

// Fragment is the aggregate output of one parse: five ordered collections,
// each preserving source order.
type Fragment struct {
	Declarations []Declaration
	Definitions  []Definition
	Metadata     []Metadata
	Types        []TypeDefinition
	Synonyms     []Synonym
}

// IsEmpty reports whether the fragment carries no elements at all.
func (f *Fragment) IsEmpty() bool {
	return len(f.Declarations) == 0 && len(f.Definitions) == 0 &&
		len(f.Metadata) == 0 && len(f.Types) == 0 && len(f.Synonyms) == 0
}

// DefinitionIndex finds a definition by name, or -1.
func (f *Fragment) DefinitionIndex(name Qualified) int {
	for i, d := range f.Definitions {
		if d.Name.Part == name.Part && qualifierEq(d.Name.Qualifier, name.Qualifier) {
			return i
		}
	}
	return -1
}

func qualifierEq(a, b Qualifier) bool {
	if a.Root != b.Root || len(a.Parts) != len(b.Parts) {
		return false
	}
	for i := range a.Parts {
		if a.Parts[i] != b.Parts[i] {
			return false
		}
	}
	return true
}

// Fingerprint returns a stable hash of the fragment's structure, used by the
// CLI to detect unchanged inputs.
func (f *Fragment) Fingerprint() string {
	return fmt.Sprintf("%x", structhash.Md5(f, 1))
}

func (f *Fragment) String() string {
	return fmt.Sprintf("<fragment: %d decls, %d defs, %d types, %d synonyms, %d metadata>",
		len(f.Declarations), len(f.Definitions), len(f.Types), len(f.Synonyms), len(f.Metadata))
}
