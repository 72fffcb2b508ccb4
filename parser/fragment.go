package parser

import (
	"github.com/mayhemheroes/mlatu"
	"github.com/mayhemheroes/mlatu/ast"
	"github.com/mayhemheroes/mlatu/scanner"
)

// DefaultEntryName is the definition bare top-level code is spliced into.
const DefaultEntryName = "main"

// DefaultEntryPermissions are granted to a synthesized entry point.
var DefaultEntryPermissions = []string{"io", "fail"}

// ParseFragment drives the parser over one token stream and returns the
// assembled fragment. Exactly one error surfaces on failure: a *ParseError
// for grammar mismatches, a *InternalError for parser defects. On success
// the fragment always contains an entry-point definition.
func ParseFragment(startLine int, file string, tokens []mlatu.Token, opts Options) (frag *ast.Fragment, err error) {
	defer func() {
		if r := recover(); r != nil {
			if ie, is := r.(*InternalError); is {
				frag, err = nil, ie
				return
			}
			panic(r)
		}
	}()
	p := newParser(file, offsetLines(tokens, startLine), opts)
	tracer().Debugf("parsing fragment %q (%d tokens)", file, len(p.tokens))
	elements, ok := p.fragmentElements()
	if !ok {
		return nil, p.fail.toError(p.tokens)
	}
	frag = assemble(elements, opts)
	expandRecordAccessors(frag)
	ensureEntry(frag, opts)
	tracer().Infof("parsed %s", frag)
	return frag, nil
}

// ParseName tokenizes and parses a single name in isolation, sharing all
// name-resolution logic with the main grammar. Used for command and REPL
// lookups.
func ParseName(startLine int, file, text string) (name ast.Name, err error) {
	defer func() {
		if r := recover(); r != nil {
			if ie, is := r.(*InternalError); is {
				name, err = nil, ie
				return
			}
			panic(r)
		}
	}()
	tokens, err := scanner.Scan(file, text)
	if err != nil {
		return nil, err
	}
	p := newParser(file, offsetLines(tokens, startLine), Options{})
	name, _, ok := p.generalName()
	if ok && !p.at(mlatu.EOF) {
		p.expected("end of input")
		ok = false
	}
	if !ok {
		return nil, p.fail.toError(p.tokens)
	}
	return name, nil
}

// offsetLines shifts token origins for inputs that do not start at line one
// (REPL continuations).
func offsetLines(tokens []mlatu.Token, startLine int) []mlatu.Token {
	if startLine <= 1 {
		return tokens
	}
	delta := startLine - 1
	shifted := make([]mlatu.Token, len(tokens))
	for i, t := range tokens {
		t.Origin.BeginLine += delta
		t.Origin.EndLine += delta
		shifted[i] = t
	}
	return shifted
}

// fragmentElements parses elements until end of input.
func (p *parser) fragmentElements() ([]ast.Element, bool) {
	var elements []ast.Element
	for !p.at(mlatu.EOF) {
		if p.at(mlatu.Terminator) {
			p.next()
			continue
		}
		els, ok := p.element()
		if !ok {
			return nil, false
		}
		elements = append(elements, els...)
	}
	return elements, true
}

// assemble partitions elements into the five fragment collections. Source
// order within each collection is preserved. Bare terms are spliced into the
// entry-point definition.
func assemble(elements []ast.Element, opts Options) *ast.Fragment {
	frag := &ast.Fragment{}
	for _, el := range elements {
		switch e := el.(type) {
		case ast.DeclarationElement:
			frag.Declarations = append(frag.Declarations, e.Declaration)
		case ast.DefinitionElement:
			frag.Definitions = append(frag.Definitions, e.Definition)
		case ast.MetadataElement:
			frag.Metadata = append(frag.Metadata, e.Metadata)
		case ast.TypeElement:
			frag.Types = append(frag.Types, e.Type)
		case ast.SynonymElement:
			frag.Synonyms = append(frag.Synonyms, e.Synonym)
		case ast.TermElement:
			spliceTerm(frag, e.Term, opts)
		default:
			internal("unknown element %T", el)
		}
	}
	return frag
}

func entryName(opts Options) ast.Qualified {
	part := opts.EntryName
	if part == "" {
		part = DefaultEntryName
	}
	return ast.Qualified{Qualifier: ast.GlobalVocabulary, Part: part}
}

func entryPermissions(opts Options) []ast.Name {
	parts := opts.EntryPermissions
	if parts == nil {
		parts = DefaultEntryPermissions
	}
	perms := make([]ast.Name, len(parts))
	for i, part := range parts {
		perms[i] = ast.Qualified{Qualifier: ast.GlobalVocabulary, Part: part}
	}
	return perms
}

// spliceTerm adds a bare top-level term to the entry definition, creating it
// on first use. Later terms land underneath any parameter-binding chain the
// existing body ends in, so names bound by an earlier statement stay visible
// to later ones.
func spliceTerm(frag *ast.Fragment, term ast.Term, opts Options) {
	name := entryName(opts)
	idx := frag.DefinitionIndex(name)
	if idx < 0 {
		frag.Definitions = append(frag.Definitions, newEntryDefinition(name, term, opts))
		return
	}
	frag.Definitions[idx].Body = composeUnder(frag.Definitions[idx].Body, term)
}

// composeUnder appends a term to a body, descending through the outermost
// run of bindings (and the compose spine carrying them) of arbitrary length.
func composeUnder(body, term ast.Term) ast.Term {
	switch b := body.(type) {
	case ast.Lambda:
		b.Body = composeUnder(b.Body, term)
		return b
	case ast.Compose:
		b.Right = composeUnder(b.Right, term)
		return b
	case ast.Identity:
		return term
	}
	return ast.Compose{
		Origin: body.TermOrigin().Merge(term.TermOrigin()),
		Left:   body,
		Right:  term,
	}
}

// newEntryDefinition synthesizes the entry point: stack-polymorphic, with
// the configured permissions.
func newEntryDefinition(name ast.Qualified, body ast.Term, opts Options) ast.Definition {
	origin := body.TermOrigin()
	row := ast.Unqualified{Part: "R"}
	return ast.Definition{
		Origin: origin,
		Name:   name,
		Signature: ast.Quantified{
			Origin: origin,
			Params: []ast.Parameter{{Origin: origin, Name: "R", Kind: ast.StackKind}},
			Body: ast.StackFunction{
				Origin:   origin,
				LeftVar:  row,
				RightVar: row,
				Perms:    entryPermissions(opts),
			},
		},
		Body:     body,
		Category: ast.WordDef,
		Parent:   ast.NoParent{},
		Merge:    ast.ComposeMerge,
		Inferred: true,
	}
}

// ensureEntry guarantees an entry-point definition exists, synthesizing a
// trivial identity body if the fragment had neither top-level code nor an
// explicit entry definition.
func ensureEntry(frag *ast.Fragment, opts Options) {
	name := entryName(opts)
	if frag.DefinitionIndex(name) >= 0 {
		return
	}
	frag.Definitions = append(frag.Definitions,
		newEntryDefinition(name, ast.Identity{}, opts))
}
