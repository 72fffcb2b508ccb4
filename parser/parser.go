/*
Package parser turns a located-token stream into an unchecked program
fragment.

The parser is a hand-written recursive descent with backtracking: ordered
choice snapshots the token position together with the current vocabulary
qualifier, tries each alternative, and rewinds on failure. Failure is
signalled by (value, ok) returns, never by panics; panics are reserved for
structural-invariant violations (InternalError). Exactly one error surfaces
per parse.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package parser

import (
	"github.com/npillmayer/schuko/tracing"

	"github.com/mayhemheroes/mlatu"
	"github.com/mayhemheroes/mlatu/ast"
)

// tracer traces with key 'mlatu.parser'.
func tracer() tracing.Trace {
	return tracing.Select("mlatu.parser")
}

// Deeply nested groups, vectors and lambdas recurse on the Go stack; bound
// it explicitly for pathological inputs.
const maxDepth = 512

// Options configure edition-specific parser policies.
type Options struct {
	// EntryName overrides the entry-point definition name ("main").
	EntryName string `yaml:"entry-name"`
	// EntryPermissions are granted to a synthesized entry point.
	EntryPermissions []string `yaml:"entry-permissions"`
	// DesugarIntegers makes integer literals desugar into zero/succ chains
	// instead of staying primitive.
	DesugarIntegers bool `yaml:"desugar-integers"`
}

// parser is the mutable parse state. One parser per input; never shared.
type parser struct {
	file   string
	tokens []mlatu.Token
	pos    int
	vocab  ast.Qualifier // current vocabulary qualifier (scope state)
	depth  int
	opts   Options
	fail   *failure
}

func newParser(file string, tokens []mlatu.Token, opts Options) *parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != mlatu.EOF {
		end := mlatu.Point(file, 1, 1)
		if n := len(tokens); n > 0 {
			last := tokens[n-1].Origin
			end = mlatu.Point(file, last.EndLine, last.EndCol+1)
		}
		tokens = append(tokens, mlatu.Token{Kind: mlatu.EOF, Origin: end})
	}
	return &parser{
		file:   file,
		tokens: tokens,
		vocab:  ast.GlobalVocabulary,
		opts:   opts,
		fail:   newFailure(),
	}
}

// --- Backtracking ------------------------------------------------------------

// snapshot captures everything an alternative may mutate: the token position
// and the qualifier state.
type snapshot struct {
	pos   int
	vocab ast.Qualifier
}

func (p *parser) mark() snapshot {
	return snapshot{pos: p.pos, vocab: p.vocab}
}

func (p *parser) reset(s snapshot) {
	p.pos = s.pos
	p.vocab = s.vocab
}

// enter guards recursion depth. Productions that recurse call it and must
// pair it with leave.
func (p *parser) enter() bool {
	p.depth++
	if p.depth > maxDepth {
		p.expected("shallower nesting")
		return false
	}
	return true
}

func (p *parser) leave() {
	p.depth--
}

// --- Token primitives ----------------------------------------------------------

func (p *parser) peek() mlatu.Token {
	return p.tokens[p.pos]
}

func (p *parser) peekAt(offset int) mlatu.Token {
	i := p.pos + offset
	if i >= len(p.tokens) {
		i = len(p.tokens) - 1
	}
	if i < 0 {
		i = 0
	}
	return p.tokens[i]
}

func (p *parser) next() mlatu.Token {
	t := p.tokens[p.pos]
	if t.Kind != mlatu.EOF {
		p.pos++
	}
	return t
}

func (p *parser) at(kind mlatu.TokType) bool {
	return p.peek().Kind == kind
}

// accept consumes a token of the given kind, or records the expectation.
func (p *parser) accept(kind mlatu.TokType) (mlatu.Token, bool) {
	if p.at(kind) {
		return p.next(), true
	}
	p.expected(kind.String())
	return mlatu.Token{}, false
}

// acceptOperator consumes an operator token with the given lexeme.
func (p *parser) acceptOperator(lexeme string) (mlatu.Token, bool) {
	if t := p.peek(); t.Kind == mlatu.Operator && t.Lexeme == lexeme {
		return p.next(), true
	}
	p.expected("'" + lexeme + "'")
	return mlatu.Token{}, false
}

// atWordLexeme tests for a contextual keyword (a plain word used as syntax,
// e.g. 'for' in quantifier prefixes).
func (p *parser) atWordLexeme(lexeme string) bool {
	t := p.peek()
	return t.Kind == mlatu.Word && t.Lexeme == lexeme
}

// expected records a grammar expectation at the current position.
func (p *parser) expected(what string) {
	p.fail.record(p.pos, what)
}

// --- Scope state -----------------------------------------------------------------

// qualifyInContext resolves a parsed name against the current vocabulary.
// Local names cannot come out of the grammar; seeing one here is a defect.
func (p *parser) qualifyInContext(n ast.Name) ast.Qualified {
	if _, bad := n.(ast.Local); bad {
		internal("local name in grammar position at %s", p.peek().Origin)
	}
	return ast.QualifyIn(p.vocab, n)
}
