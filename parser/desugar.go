package parser

import (
	"github.com/mayhemheroes/mlatu/ast"
)

// Post-assembly expansion of record accessors. Every field of a record type
// gets a deconstructor word: match on the record's constructor, bind all
// fields, return the one asked for.

func expandRecordAccessors(frag *ast.Fragment) {
	for _, td := range frag.Types {
		if !td.Record {
			continue
		}
		for _, ctor := range td.Constructors {
			for i := range ctor.Fields {
				frag.Definitions = append(frag.Definitions,
					accessorDefinition(td, ctor, i))
			}
		}
	}
}

func accessorDefinition(td ast.TypeDefinition, ctor ast.Constructor, idx int) ast.Definition {
	field := ctor.Fields[idx]
	names := make([]lambdaName, len(ctor.Fields))
	for i, f := range ctor.Fields {
		if f.Name == "" {
			internal("record %s has an unnamed field", td.Name)
		}
		names[i] = lambdaName{origin: f.Origin, name: f.Name}
	}
	// { -> f1, …, fn; fi }
	caseBody := makeLambda(field.Origin, names, ast.Word{
		Origin: field.Origin,
		Fixity: ast.Postfix,
		Name:   ast.Unqualified{Part: field.Name},
	})
	body := ast.Match{
		Origin: field.Origin,
		Hint:   ast.AnyMatch,
		Cases: []ast.Case{{
			Origin: field.Origin,
			Name:   ast.Qualified{Qualifier: td.Name.Qualifier, Part: ctor.Name},
			Body:   caseBody,
		}},
		Else: intrinsicWord(field.Origin, "abort"),
	}
	return ast.Definition{
		Origin:    field.Origin,
		Name:      ast.Qualified{Qualifier: td.Name.Qualifier, Part: field.Name},
		Signature: accessorSignature(td, field),
		Body:      body,
		Category:  ast.DeconstructorDef,
		Parent:    ast.RecordOf{Name: td.Name},
		Merge:     ast.DenyMerge,
		Inferred:  true,
	}
}

// accessorSignature builds '(RecordType p1 … pk -> FieldType)', quantified
// over the record's parameters when it has any.
func accessorSignature(td ast.TypeDefinition, field ast.Field) ast.Signature {
	var in ast.Signature = ast.Variable{Origin: td.Origin, Name: td.Name}
	for _, param := range td.Params {
		in = ast.Application{
			Origin:   td.Origin,
			Function: in,
			Argument: ast.Variable{Origin: param.Origin,
				Name: ast.Unqualified{Part: param.Name}},
		}
	}
	var sig ast.Signature = ast.Function{
		Origin: field.Origin,
		Ins:    []ast.Signature{in},
		Outs:   []ast.Signature{field.Signature},
	}
	if len(td.Params) > 0 {
		sig = ast.Quantified{Origin: field.Origin, Params: td.Params, Body: sig}
	}
	return sig
}
