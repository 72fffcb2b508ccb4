package parser

import (
	"strings"

	"github.com/mayhemheroes/mlatu"
	"github.com/mayhemheroes/mlatu/ast"
)

// Name grammar. A name is a '::'-separated path of segments; a leading '::'
// anchors it at the global vocabulary. Segments are plain words, capitalized
// words, or operator shapes, where a run of '<'/'>' tokens glues literally
// onto a following operator, so the angles double as grouping punctuation
// and as operator-identifier fragments.

// nameSegment parses one path segment.
func (p *parser) nameSegment() (string, mlatu.Origin, bool) {
	switch t := p.peek(); t.Kind {
	case mlatu.Word, mlatu.UpperWord, mlatu.Operator:
		p.next()
		return t.Lexeme, t.Origin, true
	case mlatu.AngleBegin, mlatu.AngleEnd:
		var b strings.Builder
		origin := t.Origin
		for p.at(mlatu.AngleBegin) || p.at(mlatu.AngleEnd) {
			tok := p.next()
			b.WriteString(tok.Lexeme)
			origin = origin.Merge(tok.Origin)
		}
		if op := p.peek(); op.Kind == mlatu.Operator {
			p.next()
			b.WriteString(op.Lexeme)
			origin = origin.Merge(op.Origin)
		}
		return b.String(), origin, true
	}
	p.expected("name")
	return "", p.peek().Origin, false
}

// operatorSegment parses a segment that must be operator-shaped (used by
// sections and operator definitions).
func (p *parser) operatorSegment() (string, mlatu.Origin, bool) {
	switch p.peek().Kind {
	case mlatu.Operator, mlatu.AngleBegin, mlatu.AngleEnd:
		return p.nameSegment()
	}
	p.expected("operator")
	return "", p.peek().Origin, false
}

// generalName parses a possibly-qualified name and resolves it per the
// current path shape (but not against scope; see qualifyInContext).
func (p *parser) generalName() (ast.Name, mlatu.Origin, bool) {
	global := false
	origin := p.peek().Origin
	if p.at(mlatu.Lookup) {
		global = true
		p.next()
	}
	seg, segOrigin, ok := p.nameSegment()
	if !ok {
		return nil, segOrigin, false
	}
	origin = origin.Merge(segOrigin)
	parts := []string{seg}
	for p.at(mlatu.Lookup) {
		p.next()
		seg, segOrigin, ok = p.nameSegment()
		if !ok {
			return nil, segOrigin, false
		}
		origin = origin.Merge(segOrigin)
		parts = append(parts, seg)
	}
	if len(parts) == 1 {
		if global {
			return ast.Qualified{Qualifier: ast.GlobalVocabulary, Part: parts[0]}, origin, true
		}
		return ast.Unqualified{Part: parts[0]}, origin, true
	}
	root := ast.Relative
	if global {
		root = ast.Absolute
	}
	return ast.Qualified{
		Qualifier: ast.Qualifier{Root: root, Parts: parts[:len(parts)-1]},
		Part:      parts[len(parts)-1],
	}, origin, true
}

// vocabPath parses the segment path of a 'vocab' head (always relative).
func (p *parser) vocabPath() ([]string, mlatu.Origin, bool) {
	seg, origin, ok := p.nameSegment()
	if !ok {
		return nil, origin, false
	}
	parts := []string{seg}
	for p.at(mlatu.Lookup) {
		p.next()
		var segOrigin mlatu.Origin
		seg, segOrigin, ok = p.nameSegment()
		if !ok {
			return nil, segOrigin, false
		}
		origin = origin.Merge(segOrigin)
		parts = append(parts, seg)
	}
	return parts, origin, true
}
