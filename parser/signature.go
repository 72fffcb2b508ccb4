package parser

import (
	"github.com/mayhemheroes/mlatu"
	"github.com/mayhemheroes/mlatu/ast"
)

// Type-signature grammar. Precedence, loosest first: function types (arrow
// and stack-polymorphic forms), left-associative application, atoms. A
// quantifier may be written as a 'for params .' prefix or as an angle-bracket
// parameter list; both produce the same Quantified shape.

// signature parses a full type signature.
func (p *parser) signature() (ast.Signature, bool) {
	if !p.enter() {
		return nil, false
	}
	defer p.leave()
	m := p.mark()
	if sig, ok := p.functionType(); ok {
		return sig, true
	}
	p.reset(m)
	return p.typeApp()
}

// functionType parses the stack-polymorphic arrow form or the plain arrow
// form.
func (p *parser) functionType() (ast.Signature, bool) {
	m := p.mark()
	if sig, ok := p.stackFunction(); ok {
		return sig, true
	}
	p.reset(m)

	origin := p.peek().Origin
	var ins []ast.Signature
	if !p.at(mlatu.Arrow) {
		var ok bool
		if ins, ok = p.typeList(); !ok {
			p.reset(m)
			return nil, false
		}
	}
	if _, ok := p.accept(mlatu.Arrow); !ok {
		p.reset(m)
		return nil, false
	}
	var outs []ast.Signature
	if p.atTypeStart() {
		var ok bool
		if outs, ok = p.typeList(); !ok {
			p.reset(m)
			return nil, false
		}
	}
	perms, ok := p.permissions()
	if !ok {
		p.reset(m)
		return nil, false
	}
	origin = origin.Merge(p.peekAt(-1).Origin)
	return ast.Function{Origin: origin, Ins: ins, Outs: outs, Perms: perms}, true
}

// stackFunction parses 'R..., ins -> S..., outs +perms': row variables stand
// for arbitrary-length stack tails.
func (p *parser) stackFunction() (ast.Signature, bool) {
	m := p.mark()
	origin := p.peek().Origin
	left, ok := p.accept(mlatu.UpperWord)
	if !ok {
		return nil, false
	}
	if _, ok := p.accept(mlatu.Ellipsis); !ok {
		p.reset(m)
		return nil, false
	}
	var ins []ast.Signature
	if p.at(mlatu.Comma) {
		p.next()
		if ins, ok = p.typeList(); !ok {
			p.reset(m)
			return nil, false
		}
	}
	if _, ok := p.accept(mlatu.Arrow); !ok {
		p.reset(m)
		return nil, false
	}
	right, ok := p.accept(mlatu.UpperWord)
	if !ok {
		p.reset(m)
		return nil, false
	}
	if _, ok = p.accept(mlatu.Ellipsis); !ok {
		p.reset(m)
		return nil, false
	}
	var outs []ast.Signature
	if p.at(mlatu.Comma) {
		p.next()
		if outs, ok = p.typeList(); !ok {
			p.reset(m)
			return nil, false
		}
	}
	perms, ok := p.permissions()
	if !ok {
		p.reset(m)
		return nil, false
	}
	origin = origin.Merge(p.peekAt(-1).Origin)
	return ast.StackFunction{
		Origin:   origin,
		LeftVar:  ast.Unqualified{Part: left.Lexeme},
		Ins:      ins,
		RightVar: ast.Unqualified{Part: right.Lexeme},
		Outs:     outs,
		Perms:    perms,
	}, true
}

// permissions parses a possibly-empty trailing '+name' list.
func (p *parser) permissions() ([]ast.Name, bool) {
	var perms []ast.Name
	for p.peek().Kind == mlatu.Operator && p.peek().Lexeme == "+" {
		p.next()
		name, _, ok := p.generalName()
		if !ok {
			return nil, false
		}
		perms = append(perms, name)
	}
	return perms, true
}

// typeList parses 'type (, type)*'.
func (p *parser) typeList() ([]ast.Signature, bool) {
	first, ok := p.typeApp()
	if !ok {
		return nil, false
	}
	sigs := []ast.Signature{first}
	for p.at(mlatu.Comma) {
		m := p.mark()
		p.next()
		sig, ok := p.typeApp()
		if !ok {
			// the comma belonged to an enclosing production
			p.reset(m)
			break
		}
		sigs = append(sigs, sig)
	}
	return sigs, true
}

// typeApp parses left-associative application: juxtaposed atoms, or the
// 'Ctor<Arg, …>' angle-bracket sugar.
func (p *parser) typeApp() (ast.Signature, bool) {
	fn, ok := p.typeAtom()
	if !ok {
		return nil, false
	}
	for {
		if p.at(mlatu.AngleBegin) {
			m := p.mark()
			p.next()
			args, ok := p.typeList()
			if !ok {
				p.reset(m)
				break
			}
			end, ok := p.accept(mlatu.AngleEnd)
			if !ok {
				p.reset(m)
				break
			}
			for _, arg := range args {
				fn = ast.Application{
					Origin:   fn.SigOrigin().Merge(end.Origin),
					Function: fn,
					Argument: arg,
				}
			}
			continue
		}
		if !p.atTypeStart() {
			break
		}
		m := p.mark()
		arg, ok := p.typeAtom()
		if !ok {
			p.reset(m)
			break
		}
		fn = ast.Application{
			Origin:   fn.SigOrigin().Merge(arg.SigOrigin()),
			Function: fn,
			Argument: arg,
		}
	}
	return fn, true
}

func (p *parser) atTypeStart() bool {
	switch p.peek().Kind {
	case mlatu.Word, mlatu.UpperWord, mlatu.Lookup, mlatu.GroupBegin:
		return true
	}
	return false
}

// typeAtom parses a parenthesized or quantified sub-signature, or a bare
// type name. The permission sigil '+' is an operator token and so never
// reaches here.
func (p *parser) typeAtom() (ast.Signature, bool) {
	if !p.enter() {
		return nil, false
	}
	defer p.leave()
	origin := p.peek().Origin
	switch {
	case p.atWordLexeme("for"):
		p.next()
		params, ok := p.parameters()
		if !ok {
			return nil, false
		}
		if _, ok := p.acceptOperator("."); !ok {
			return nil, false
		}
		body, ok := p.signature()
		if !ok {
			return nil, false
		}
		return ast.Quantified{
			Origin: origin.Merge(body.SigOrigin()),
			Params: params,
			Body:   body,
		}, true
	case p.at(mlatu.AngleBegin):
		p.next()
		params, ok := p.parameters()
		if !ok {
			return nil, false
		}
		if _, ok := p.accept(mlatu.AngleEnd); !ok {
			return nil, false
		}
		body, ok := p.signature()
		if !ok {
			return nil, false
		}
		return ast.Quantified{
			Origin: origin.Merge(body.SigOrigin()),
			Params: params,
			Body:   body,
		}, true
	case p.at(mlatu.GroupBegin):
		p.next()
		inner, ok := p.signature()
		if !ok {
			return nil, false
		}
		if _, ok := p.accept(mlatu.GroupEnd); !ok {
			return nil, false
		}
		return inner, true
	case p.at(mlatu.Word) || p.at(mlatu.UpperWord) || p.at(mlatu.Lookup):
		name, nameOrigin, ok := p.generalName()
		if !ok {
			return nil, false
		}
		return ast.Variable{Origin: nameOrigin, Name: name}, true
	}
	p.expected("type")
	return nil, false
}

// parameters parses a comma-separated quantifier list: 'T' (value), 'S...'
// (stack), '+P' (permission).
func (p *parser) parameters() ([]ast.Parameter, bool) {
	var params []ast.Parameter
	for {
		param, ok := p.parameter()
		if !ok {
			return nil, false
		}
		params = append(params, param)
		if !p.at(mlatu.Comma) {
			break
		}
		p.next()
	}
	return params, true
}

func (p *parser) parameter() (ast.Parameter, bool) {
	origin := p.peek().Origin
	if p.peek().Kind == mlatu.Operator && p.peek().Lexeme == "+" {
		p.next()
		tok, ok := p.parameterName()
		if !ok {
			return ast.Parameter{}, false
		}
		return ast.Parameter{
			Origin: origin.Merge(tok.Origin),
			Name:   tok.Lexeme,
			Kind:   ast.PermissionKind,
		}, true
	}
	tok, ok := p.parameterName()
	if !ok {
		return ast.Parameter{}, false
	}
	kind := ast.ValueKind
	if p.at(mlatu.Ellipsis) {
		origin = origin.Merge(p.next().Origin)
		kind = ast.StackKind
	}
	return ast.Parameter{Origin: origin, Name: tok.Lexeme, Kind: kind}, true
}

func (p *parser) parameterName() (mlatu.Token, bool) {
	switch p.peek().Kind {
	case mlatu.Word, mlatu.UpperWord:
		return p.next(), true
	}
	p.expected("type parameter")
	return mlatu.Token{}, false
}

// angleQuantifier parses the '<params>' list that may follow a definition
// name, declaring its generics.
func (p *parser) angleQuantifier() ([]ast.Parameter, bool) {
	if !p.at(mlatu.AngleBegin) {
		return nil, true
	}
	p.next()
	params, ok := p.parameters()
	if !ok {
		return nil, false
	}
	if _, ok := p.accept(mlatu.AngleEnd); !ok {
		return nil, false
	}
	return params, true
}
