package parser

import (
	"github.com/mayhemheroes/mlatu"
	"github.com/mayhemheroes/mlatu/ast"
)

// Term grammar. Mutually recursive descent over literals, words, groups,
// operator sections, vector literals, parameter bindings, matches,
// conditionals, 'do'/'as'/'with' forms, desugaring to core terms as it
// goes. Composition of adjacent terms is right-folded preserving source
// order.

// Names of intrinsics that desugaring targets. All anchored at the global
// vocabulary.
func intrinsicWord(origin mlatu.Origin, name string) ast.Word {
	return ast.Word{
		Origin: origin,
		Fixity: ast.Postfix,
		Name:   ast.Qualified{Qualifier: ast.GlobalVocabulary, Part: name},
	}
}

// blockContents parses the terms of a block up to (not consuming) its
// closing delimiter. A '-> names;' binding makes the remainder of the block
// its body. An empty block yields Identity.
func (p *parser) blockContents() (ast.Term, bool) {
	origin := p.peek().Origin
	var terms []ast.Term
	for {
		if p.at(mlatu.Arrow) {
			lam, ok := p.lambda()
			if !ok {
				return nil, false
			}
			terms = append(terms, lam)
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
	return ast.ComposeAll(origin, terms), true
}

// block parses '{' blockContents '}'.
func (p *parser) block() (ast.Term, bool) {
	if _, ok := p.accept(mlatu.BlockBegin); !ok {
		return nil, false
	}
	body, ok := p.blockContents()
	if !ok {
		return nil, false
	}
	if _, ok := p.accept(mlatu.BlockEnd); !ok {
		return nil, false
	}
	return body, true
}

// lambda parses '-> names;' and wraps the remainder of the enclosing block
// into the binding. Bindings nest so that the first named binding ends up
// innermost; '_' discards the value with an explicit drop instead of
// binding it.
func (p *parser) lambda() (ast.Term, bool) {
	arrow, ok := p.accept(mlatu.Arrow)
	if !ok {
		return nil, false
	}
	names, ok := p.lambdaNames()
	if !ok {
		return nil, false
	}
	if _, ok := p.accept(mlatu.Terminator); !ok {
		return nil, false
	}
	body, ok := p.blockContents()
	if !ok {
		return nil, false
	}
	return makeLambda(arrow.Origin, names, body), true
}

type lambdaName struct {
	origin mlatu.Origin
	name   string // empty for '_'
}

func (p *parser) lambdaNames() ([]lambdaName, bool) {
	var names []lambdaName
	for {
		switch t := p.peek(); t.Kind {
		case mlatu.Word:
			p.next()
			names = append(names, lambdaName{origin: t.Origin, name: t.Lexeme})
		case mlatu.Ignore:
			p.next()
			names = append(names, lambdaName{origin: t.Origin})
		default:
			p.expected("binding name")
			return nil, false
		}
		if !p.at(mlatu.Comma) {
			return names, true
		}
		p.next()
	}
}

func makeLambda(origin mlatu.Origin, names []lambdaName, body ast.Term) ast.Term {
	result := body
	for _, n := range names {
		if n.name == "" {
			result = ast.Compose{
				Origin: n.origin.Merge(result.TermOrigin()),
				Left:   intrinsicWord(n.origin, "drop"),
				Right:  result,
			}
		} else {
			result = ast.Lambda{
				Origin: origin.Merge(n.origin),
				Name:   n.name,
				Body:   result,
			}
		}
	}
	return result
}

// term parses a single term.
func (p *parser) term() (ast.Term, bool) {
	if !p.enter() {
		return nil, false
	}
	defer p.leave()
	tok := p.peek()
	switch tok.Kind {
	case mlatu.Integer:
		p.next()
		return p.integerTerm(tok), true
	case mlatu.Float:
		p.next()
		return ast.Push{Origin: tok.Origin,
			Value: ast.FloatValue{Value: tok.Val.(float64)}}, true
	case mlatu.Character:
		p.next()
		return ast.Push{Origin: tok.Origin,
			Value: ast.CharacterValue{Rune: tok.Val.(rune)}}, true
	case mlatu.Text:
		p.next()
		return ast.Push{Origin: tok.Origin,
			Value: ast.TextValue{Text: tok.Val.(string)}}, true
	case mlatu.Reference:
		p.next()
		name, origin, ok := p.generalName()
		if !ok {
			return nil, false
		}
		return ast.Push{Origin: tok.Origin.Merge(origin),
			Value: ast.NameValue{Name: name}}, true
	case mlatu.Word, mlatu.UpperWord, mlatu.Lookup, mlatu.Operator,
		mlatu.AngleBegin, mlatu.AngleEnd:
		return p.wordTerm()
	case mlatu.GroupBegin:
		return p.groupOrSection()
	case mlatu.VectorBegin:
		return p.vectorLiteral()
	case mlatu.BlockBegin:
		body, ok := p.block()
		if !ok {
			return nil, false
		}
		return ast.Push{Origin: tok.Origin,
			Value: ast.QuotationValue{Body: body}}, true
	case mlatu.KwIf:
		return p.ifTerm()
	case mlatu.KwMatch:
		return p.matchTerm()
	case mlatu.KwDo:
		return p.doTerm()
	case mlatu.KwAs:
		return p.asTerm()
	case mlatu.KwWith:
		return p.withTerm()
	}
	p.expected("term")
	return nil, false
}

// integerTerm pushes an integer literal. In the zero/succ edition it
// desugars into a chain of successor calls on zero instead.
func (p *parser) integerTerm(tok mlatu.Token) ast.Term {
	value := tok.Val.(int64)
	if !p.opts.DesugarIntegers || value < 0 {
		return ast.Push{Origin: tok.Origin, Value: ast.IntegerValue{Value: value}}
	}
	terms := []ast.Term{intrinsicWord(tok.Origin, "zero")}
	for i := int64(0); i < value; i++ {
		terms = append(terms, intrinsicWord(tok.Origin, "succ"))
	}
	return ast.ComposeAll(tok.Origin, terms)
}

// wordTerm parses a word or operator reference, with optional angle-bracket
// type arguments.
func (p *parser) wordTerm() (ast.Term, bool) {
	tok := p.peek()
	name, origin, ok := p.generalName()
	if !ok {
		return nil, false
	}
	fixity := ast.Postfix
	switch tok.Kind {
	case mlatu.Operator, mlatu.AngleBegin, mlatu.AngleEnd:
		fixity = ast.Infix
	}
	var typeArgs []ast.Signature
	if p.at(mlatu.AngleBegin) && fixity == ast.Postfix {
		m := p.mark()
		p.next()
		args, ok := p.typeList()
		if ok {
			if end, ok := p.accept(mlatu.AngleEnd); ok {
				typeArgs = args
				origin = origin.Merge(end.Origin)
			} else {
				p.reset(m)
			}
		} else {
			p.reset(m)
		}
	}
	return ast.Word{Origin: origin, Fixity: fixity, Name: name, TypeArgs: typeArgs}, true
}

// groupOrSection parses a parenthesized term: an operator section or a
// plain group. Ordered choice:
//
//	( op terms… )   →  terms… op
//	( op )          →  op
//	( terms… op )   →  terms… swap op
//	( terms… )      →  group
func (p *parser) groupOrSection() (ast.Term, bool) {
	begin, ok := p.accept(mlatu.GroupBegin)
	if !ok {
		return nil, false
	}
	m := p.mark()

	// operator-first section
	if opName, opOrigin, ok := p.operatorSegment(); ok {
		call := ast.Word{Origin: opOrigin, Fixity: ast.Infix,
			Name: ast.Unqualified{Part: opName}}
		if end, ok := p.accept(mlatu.GroupEnd); ok {
			return ast.Group{Origin: begin.Origin.Merge(end.Origin), Inner: call}, true
		}
		operands, ok := p.sectionOperands(false)
		if ok {
			if end, ok := p.accept(mlatu.GroupEnd); ok {
				inner := ast.ComposeAll(begin.Origin, append(operands, ast.Term(call)))
				return ast.Group{Origin: begin.Origin.Merge(end.Origin), Inner: inner}, true
			}
		}
	}
	p.reset(m)

	// operand-first section
	if operands, ok := p.sectionOperands(true); ok && len(operands) > 0 {
		if opName, opOrigin, ok := p.operatorSegment(); ok {
			if end, ok := p.accept(mlatu.GroupEnd); ok {
				inner := ast.ComposeAll(begin.Origin, append(operands,
					ast.Term(intrinsicWord(opOrigin, "swap")),
					ast.Term(ast.Word{Origin: opOrigin, Fixity: ast.Infix,
						Name: ast.Unqualified{Part: opName}})))
				return ast.Group{Origin: begin.Origin.Merge(end.Origin), Inner: inner}, true
			}
		}
	}
	p.reset(m)

	// plain group
	inner, ok := p.blockContents()
	if !ok {
		return nil, false
	}
	end, ok := p.accept(mlatu.GroupEnd)
	if !ok {
		return nil, false
	}
	if _, empty := inner.(ast.Identity); empty {
		p.expected("term")
		return nil, false
	}
	return ast.Group{Origin: begin.Origin.Merge(end.Origin), Inner: inner}, true
}

// sectionOperands parses the operand run of a section. When stopAtOperator
// is set, the run ends before a trailing 'operator )' pair, which the caller
// then consumes.
func (p *parser) sectionOperands(stopAtOperator bool) ([]ast.Term, bool) {
	var operands []ast.Term
	for {
		if stopAtOperator && p.atTrailingOperator() {
			break
		}
		m := p.mark()
		t, ok := p.term()
		if !ok {
			p.reset(m)
			break
		}
		operands = append(operands, t)
	}
	if len(operands) == 0 {
		p.expected("term")
		return nil, false
	}
	return operands, true
}

// atTrailingOperator looks ahead for 'operator )' without consuming.
func (p *parser) atTrailingOperator() bool {
	m := p.mark()
	defer p.reset(m)
	if _, _, ok := p.operatorSegment(); !ok {
		return false
	}
	return p.at(mlatu.GroupEnd)
}

// vectorLiteral parses '[e1, e2, …]'. Each element is a full sub-expression
// in a group; the whole literal desugars to the element groups followed by
// one arity-tagged vector construction.
func (p *parser) vectorLiteral() (ast.Term, bool) {
	begin, ok := p.accept(mlatu.VectorBegin)
	if !ok {
		return nil, false
	}
	var elements []ast.Term
	if !p.at(mlatu.VectorEnd) {
		for {
			origin := p.peek().Origin
			element, ok := p.blockContents()
			if !ok {
				return nil, false
			}
			if _, empty := element.(ast.Identity); empty {
				p.expected("vector element")
				return nil, false
			}
			elements = append(elements, ast.Group{
				Origin: origin.Merge(element.TermOrigin()),
				Inner:  element,
			})
			if !p.at(mlatu.Comma) {
				break
			}
			p.next()
		}
	}
	end, ok := p.accept(mlatu.VectorEnd)
	if !ok {
		return nil, false
	}
	origin := begin.Origin.Merge(end.Origin)
	terms := append(elements, ast.Term(ast.NewVector{Origin: origin, Size: len(elements)}))
	return ast.ComposeAll(origin, terms), true
}

// ifTerm parses 'if (c) {a} elif (c') {b} else {d}' and desugars the chain
// into nested two-case boolean matches; each elif becomes the else branch of
// the previous match. The else branch is always present in the output.
func (p *parser) ifTerm() (ast.Term, bool) {
	ifTok, ok := p.accept(mlatu.KwIf)
	if !ok {
		return nil, false
	}
	cond, ok := p.optionalCondition()
	if !ok {
		return nil, false
	}
	body, ok := p.block()
	if !ok {
		return nil, false
	}

	type elif struct {
		origin mlatu.Origin
		cond   ast.Term
		body   ast.Term
	}
	var elifs []elif
	for p.at(mlatu.KwElif) {
		tok := p.next()
		econd, ok := p.groupedExpression()
		if !ok {
			return nil, false
		}
		ebody, ok := p.block()
		if !ok {
			return nil, false
		}
		elifs = append(elifs, elif{origin: tok.Origin, cond: econd, body: ebody})
	}
	elseBranch := ast.Term(ast.Identity{Origin: ifTok.Origin})
	if p.at(mlatu.KwElse) {
		p.next()
		if elseBranch, ok = p.block(); !ok {
			return nil, false
		}
	}
	for i := len(elifs) - 1; i >= 0; i-- {
		e := elifs[i]
		inner := ast.Match{
			Origin: e.origin,
			Hint:   ast.BooleanMatch,
			Cases: []ast.Case{{
				Origin: e.origin,
				Name:   ast.Qualified{Qualifier: ast.GlobalVocabulary, Part: "true"},
				Body:   e.body,
			}},
			Else: elseBranch,
		}
		elseBranch = ast.Compose{Origin: e.origin, Left: e.cond, Right: inner}
	}
	result := ast.Term(ast.Match{
		Origin: ifTok.Origin,
		Hint:   ast.BooleanMatch,
		Cases: []ast.Case{{
			Origin: ifTok.Origin,
			Name:   ast.Qualified{Qualifier: ast.GlobalVocabulary, Part: "true"},
			Body:   body,
		}},
		Else: elseBranch,
	})
	if cond != nil {
		result = ast.Compose{Origin: ifTok.Origin, Left: cond, Right: result}
	}
	return result, true
}

// optionalCondition parses '(expr)' if present; an absent condition means
// the scrutinee is already on the stack.
func (p *parser) optionalCondition() (ast.Term, bool) {
	if !p.at(mlatu.GroupBegin) {
		return nil, true
	}
	return p.groupedExpression()
}

func (p *parser) groupedExpression() (ast.Term, bool) {
	begin, ok := p.accept(mlatu.GroupBegin)
	if !ok {
		return nil, false
	}
	inner, ok := p.blockContents()
	if !ok {
		return nil, false
	}
	end, ok := p.accept(mlatu.GroupEnd)
	if !ok {
		return nil, false
	}
	return ast.Group{Origin: begin.Origin.Merge(end.Origin), Inner: inner}, true
}

// matchTerm parses 'match (scrutinee)? { case name {body} … else {body} }'.
// A missing else becomes an unconditional abort, so downstream stages never
// see an absent branch.
func (p *parser) matchTerm() (ast.Term, bool) {
	matchTok, ok := p.accept(mlatu.KwMatch)
	if !ok {
		return nil, false
	}
	scrutinee, ok := p.optionalCondition()
	if !ok {
		return nil, false
	}
	if _, ok := p.accept(mlatu.BlockBegin); !ok {
		return nil, false
	}
	var cases []ast.Case
	for p.at(mlatu.KwCase) {
		caseTok := p.next()
		name, _, ok := p.generalName()
		if !ok {
			return nil, false
		}
		body, ok := p.block()
		if !ok {
			return nil, false
		}
		cases = append(cases, ast.Case{
			Origin: caseTok.Origin,
			Name:   name,
			Body:   body,
		})
	}
	elseBranch := ast.Term(intrinsicWord(matchTok.Origin, "abort"))
	if p.at(mlatu.KwElse) {
		p.next()
		if elseBranch, ok = p.block(); !ok {
			return nil, false
		}
	}
	end, ok := p.accept(mlatu.BlockEnd)
	if !ok {
		return nil, false
	}
	result := ast.Term(ast.Match{
		Origin: matchTok.Origin.Merge(end.Origin),
		Hint:   ast.AnyMatch,
		Cases:  cases,
		Else:   elseBranch,
	})
	if scrutinee != nil {
		result = ast.Compose{Origin: matchTok.Origin, Left: scrutinee, Right: result}
	}
	return result, true
}

// doTerm parses 'do (f) { body }' or 'do (f) [elements]', desugaring to
// pushing the block (or vector) as a value and then applying f.
func (p *parser) doTerm() (ast.Term, bool) {
	doTok, ok := p.accept(mlatu.KwDo)
	if !ok {
		return nil, false
	}
	function, ok := p.groupedExpression()
	if !ok {
		return nil, false
	}
	var pushed ast.Term
	switch p.peek().Kind {
	case mlatu.BlockBegin:
		blockTok := p.peek()
		body, ok := p.block()
		if !ok {
			return nil, false
		}
		pushed = ast.Push{Origin: blockTok.Origin,
			Value: ast.QuotationValue{Body: body}}
	case mlatu.VectorBegin:
		if pushed, ok = p.vectorLiteral(); !ok {
			return nil, false
		}
	default:
		p.expected("block or vector")
		return nil, false
	}
	return ast.Compose{
		Origin: doTok.Origin.Merge(pushed.TermOrigin()),
		Left:   pushed,
		Right:  function,
	}, true
}

// asTerm parses 'as (type, …)': a type-coercion assertion, desugared to an
// identity function signature over the given types.
func (p *parser) asTerm() (ast.Term, bool) {
	asTok, ok := p.accept(mlatu.KwAs)
	if !ok {
		return nil, false
	}
	if _, ok := p.accept(mlatu.GroupBegin); !ok {
		return nil, false
	}
	types, ok := p.typeList()
	if !ok {
		return nil, false
	}
	end, ok := p.accept(mlatu.GroupEnd)
	if !ok {
		return nil, false
	}
	origin := asTok.Origin.Merge(end.Origin)
	return ast.Coercion{
		Origin: origin,
		Signature: ast.Function{
			Origin: origin,
			Ins:    types,
			Outs:   types,
		},
	}, true
}

// withTerm parses 'with (+perm, …)': a permission coercion followed by an
// explicit call.
func (p *parser) withTerm() (ast.Term, bool) {
	withTok, ok := p.accept(mlatu.KwWith)
	if !ok {
		return nil, false
	}
	if _, ok := p.accept(mlatu.GroupBegin); !ok {
		return nil, false
	}
	perms, ok := p.permissions()
	if !ok {
		return nil, false
	}
	if len(perms) == 0 {
		p.expected("permission")
		return nil, false
	}
	end, ok := p.accept(mlatu.GroupEnd)
	if !ok {
		return nil, false
	}
	origin := withTok.Origin.Merge(end.Origin)
	coercion := ast.Coercion{
		Origin: origin,
		Signature: ast.Function{
			Origin: origin,
			Perms:  perms,
		},
	}
	return ast.Compose{
		Origin: origin,
		Left:   coercion,
		Right:  intrinsicWord(origin, "call"),
	}, true
}
