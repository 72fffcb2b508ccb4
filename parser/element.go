package parser

import (
	"github.com/mayhemheroes/mlatu"
	"github.com/mayhemheroes/mlatu/ast"
)

// Top-level element grammar.

// element parses one top-level item. A vocab block yields the elements it
// contains; everything else yields at most one.
func (p *parser) element() ([]ast.Element, bool) {
	switch p.peek().Kind {
	case mlatu.KwVocab:
		return p.vocabElement()
	case mlatu.KwIntrinsic, mlatu.KwTrait:
		decl, ok := p.declaration()
		if !ok {
			return nil, false
		}
		return []ast.Element{ast.DeclarationElement{Declaration: decl}}, true
	case mlatu.KwDefine, mlatu.KwInstance, mlatu.KwPermission:
		def, ok := p.definition()
		if !ok {
			return nil, false
		}
		return []ast.Element{ast.DefinitionElement{Definition: def}}, true
	case mlatu.KwType, mlatu.KwRecord:
		td, ok := p.typeDefinition()
		if !ok {
			return nil, false
		}
		return []ast.Element{ast.TypeElement{Type: td}}, true
	case mlatu.KwAbout:
		md, ok := p.metadata()
		if !ok {
			return nil, false
		}
		return []ast.Element{ast.MetadataElement{Metadata: md}}, true
	case mlatu.KwSynonym:
		syn, ok := p.synonym()
		if !ok {
			return nil, false
		}
		return []ast.Element{ast.SynonymElement{Synonym: syn}}, true
	}
	term, ok := p.topLevelTerm()
	if !ok {
		return nil, false
	}
	return []ast.Element{ast.TermElement{Term: term}}, true
}

// vocabElement parses a vocabulary. The block form saves the qualifier,
// extends it for the block's duration, and restores it exactly when the
// closing delimiter is consumed. The terminator form mutates the qualifier
// for the remainder of the enclosing scope.
func (p *parser) vocabElement() ([]ast.Element, bool) {
	if _, ok := p.accept(mlatu.KwVocab); !ok {
		return nil, false
	}
	parts, _, ok := p.vocabPath()
	if !ok {
		return nil, false
	}
	switch p.peek().Kind {
	case mlatu.Terminator:
		p.next()
		p.vocab = ast.Qualifier{Root: ast.Absolute,
			Parts: append(append([]string{}, p.vocab.Parts...), parts...)}
		return nil, true
	case mlatu.BlockBegin:
		p.next()
		saved := p.vocab
		p.vocab = ast.Qualifier{Root: ast.Absolute,
			Parts: append(append([]string{}, saved.Parts...), parts...)}
		var elements []ast.Element
		for !p.at(mlatu.BlockEnd) && !p.at(mlatu.EOF) {
			els, ok := p.element()
			if !ok {
				p.vocab = saved
				return nil, false
			}
			elements = append(elements, els...)
		}
		if _, ok := p.accept(mlatu.BlockEnd); !ok {
			p.vocab = saved
			return nil, false
		}
		p.vocab = saved
		return elements, true
	}
	p.expected("';' or block")
	return nil, false
}

// declaration parses 'intrinsic name (sig)' or 'trait name<params>? (sig)'.
func (p *parser) declaration() (ast.Declaration, bool) {
	tok := p.next() // intrinsic | trait
	category := ast.IntrinsicDecl
	if tok.Kind == mlatu.KwTrait {
		category = ast.TraitDecl
	}
	name, nameOrigin, ok := p.generalName()
	if !ok {
		return ast.Declaration{}, false
	}
	params, ok := p.angleQuantifier()
	if !ok {
		return ast.Declaration{}, false
	}
	sig, ok := p.groupedSignature()
	if !ok {
		return ast.Declaration{}, false
	}
	if len(params) > 0 {
		sig = ast.Quantified{Origin: sig.SigOrigin(), Params: params, Body: sig}
	}
	return ast.Declaration{
		Origin:    tok.Origin.Merge(nameOrigin),
		Category:  category,
		Name:      p.qualifyInContext(name),
		Signature: sig,
	}, true
}

// groupedSignature parses the mandatory '(' signature ')' of a declaration
// or definition head.
func (p *parser) groupedSignature() (ast.Signature, bool) {
	if _, ok := p.accept(mlatu.GroupBegin); !ok {
		return nil, false
	}
	sig, ok := p.signature()
	if !ok {
		return nil, false
	}
	if _, ok := p.accept(mlatu.GroupEnd); !ok {
		return nil, false
	}
	return sig, true
}

// definition parses 'define|instance|permission name<params>? (sig) {body}'.
func (p *parser) definition() (ast.Definition, bool) {
	tok := p.next() // define | instance | permission
	category := ast.WordDef
	merge := ast.DenyMerge
	switch tok.Kind {
	case mlatu.KwInstance:
		category = ast.InstanceDef
		merge = ast.ComposeMerge
	case mlatu.KwPermission:
		category = ast.PermissionDef
	}
	name, nameOrigin, ok := p.generalName()
	if !ok {
		return ast.Definition{}, false
	}
	params, ok := p.angleQuantifier()
	if !ok {
		return ast.Definition{}, false
	}
	sig, ok := p.groupedSignature()
	if !ok {
		return ast.Definition{}, false
	}
	if len(params) > 0 {
		sig = ast.Quantified{Origin: sig.SigOrigin(), Params: params, Body: sig}
	}
	body, ok := p.block()
	if !ok {
		return ast.Definition{}, false
	}
	return ast.Definition{
		Origin:    tok.Origin.Merge(nameOrigin),
		Name:      p.qualifyInContext(name),
		Signature: sig,
		Body:      body,
		Category:  category,
		Parent:    ast.NoParent{},
		Merge:     merge,
	}, true
}

// typeDefinition parses
//
//	type Name<params>? { case name (sig, …)? … }
//	record Name<params>? { field name (sig) … }
//
// A record gets a single synthesized constructor holding its fields; the
// accessor expansion happens after assembly.
func (p *parser) typeDefinition() (ast.TypeDefinition, bool) {
	tok := p.next() // type | record
	record := tok.Kind == mlatu.KwRecord
	name, nameOrigin, ok := p.generalName()
	if !ok {
		return ast.TypeDefinition{}, false
	}
	params, ok := p.angleQuantifier()
	if !ok {
		return ast.TypeDefinition{}, false
	}
	qualified := p.qualifyInContext(name)
	if _, ok := p.accept(mlatu.BlockBegin); !ok {
		return ast.TypeDefinition{}, false
	}
	var constructors []ast.Constructor
	if record {
		fields, ok := p.recordFields()
		if !ok {
			return ast.TypeDefinition{}, false
		}
		constructors = []ast.Constructor{{
			Origin: nameOrigin,
			Name:   "mk" + qualified.Part,
			Fields: fields,
		}}
	} else {
		for p.at(mlatu.KwCase) {
			ctor, ok := p.constructorCase()
			if !ok {
				return ast.TypeDefinition{}, false
			}
			constructors = append(constructors, ctor)
		}
	}
	if _, ok := p.accept(mlatu.BlockEnd); !ok {
		return ast.TypeDefinition{}, false
	}
	return ast.TypeDefinition{
		Origin:       tok.Origin.Merge(nameOrigin),
		Name:         qualified,
		Params:       params,
		Constructors: constructors,
		Record:       record,
	}, true
}

func (p *parser) constructorCase() (ast.Constructor, bool) {
	caseTok := p.next() // case
	nameTok, ok := p.accept(mlatu.Word)
	if !ok {
		return ast.Constructor{}, false
	}
	var fields []ast.Field
	if p.at(mlatu.GroupBegin) {
		p.next()
		sigs, ok := p.typeList()
		if !ok {
			return ast.Constructor{}, false
		}
		if _, ok := p.accept(mlatu.GroupEnd); !ok {
			return ast.Constructor{}, false
		}
		for _, sig := range sigs {
			fields = append(fields, ast.Field{Origin: sig.SigOrigin(), Signature: sig})
		}
	}
	return ast.Constructor{
		Origin: caseTok.Origin.Merge(nameTok.Origin),
		Name:   nameTok.Lexeme,
		Fields: fields,
	}, true
}

func (p *parser) recordFields() ([]ast.Field, bool) {
	var fields []ast.Field
	for p.at(mlatu.KwField) {
		fieldTok := p.next()
		nameTok, ok := p.accept(mlatu.Word)
		if !ok {
			return nil, false
		}
		if _, ok := p.accept(mlatu.GroupBegin); !ok {
			return nil, false
		}
		sig, ok := p.signature()
		if !ok {
			return nil, false
		}
		if _, ok := p.accept(mlatu.GroupEnd); !ok {
			return nil, false
		}
		fields = append(fields, ast.Field{
			Origin:    fieldTok.Origin.Merge(nameTok.Origin),
			Name:      nameTok.Lexeme,
			Signature: sig,
		})
	}
	if len(fields) == 0 {
		p.expected("'field'")
		return nil, false
	}
	return fields, true
}

// metadata parses 'about name { key {body} … }'.
func (p *parser) metadata() (ast.Metadata, bool) {
	tok := p.next() // about
	name, nameOrigin, ok := p.generalName()
	if !ok {
		return ast.Metadata{}, false
	}
	if _, ok := p.accept(mlatu.BlockBegin); !ok {
		return ast.Metadata{}, false
	}
	var entries []ast.MetadataEntry
	for p.at(mlatu.Word) {
		keyTok := p.next()
		body, ok := p.block()
		if !ok {
			return ast.Metadata{}, false
		}
		entries = append(entries, ast.MetadataEntry{
			Origin: keyTok.Origin,
			Key:    keyTok.Lexeme,
			Body:   body,
		})
	}
	if _, ok := p.accept(mlatu.BlockEnd); !ok {
		return ast.Metadata{}, false
	}
	return ast.Metadata{
		Origin:  tok.Origin.Merge(nameOrigin),
		Name:    name,
		Entries: entries,
	}, true
}

// synonym parses 'synonym name (target)'.
func (p *parser) synonym() (ast.Synonym, bool) {
	tok := p.next() // synonym
	name, nameOrigin, ok := p.generalName()
	if !ok {
		return ast.Synonym{}, false
	}
	if _, ok := p.accept(mlatu.GroupBegin); !ok {
		return ast.Synonym{}, false
	}
	target, _, ok := p.generalName()
	if !ok {
		return ast.Synonym{}, false
	}
	if _, ok := p.accept(mlatu.GroupEnd); !ok {
		return ast.Synonym{}, false
	}
	if p.at(mlatu.Terminator) {
		p.next()
	}
	return ast.Synonym{
		Origin: tok.Origin.Merge(nameOrigin),
		Name:   p.qualifyInContext(name),
		Target: target,
	}, true
}

// topLevelTerm parses one bare top-level statement. A '-> names;' binding
// ends the statement at its terminator with an empty body: the assembler
// splices later statements underneath the binding chain, keeping the bound
// names visible to them.
func (p *parser) topLevelTerm() (ast.Term, bool) {
	origin := p.peek().Origin
	var terms []ast.Term
	for {
		if p.at(mlatu.Arrow) {
			arrow := p.next()
			names, ok := p.lambdaNames()
			if !ok {
				return nil, false
			}
			if _, ok := p.accept(mlatu.Terminator); !ok {
				return nil, false
			}
			terms = append(terms, makeLambda(arrow.Origin, names,
				ast.Identity{Origin: arrow.Origin}))
			break
		}
		m := p.mark()
		t, ok := p.term()
		if !ok {
			p.reset(m)
			break
		}
		terms = append(terms, t)
	}
	if len(terms) == 0 {
		p.expected("element")
		return nil, false
	}
	if p.at(mlatu.Terminator) {
		p.next()
	}
	return ast.ComposeAll(origin, terms), true
}
