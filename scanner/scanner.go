/*
Package scanner tokenizes mlatu source text.

The scanner is a lexmachine DFA, compiled once. Its output is the
located-token sequence the parser consumes; the Layout pass (layout.go)
turns indentation into explicit block delimiters first, so the parser never
sees layout.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package scanner

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/npillmayer/schuko/tracing"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"

	"github.com/mayhemheroes/mlatu"
)

// tracer traces with key 'mlatu.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("mlatu.scanner")
}

// The keyword tokens.
var keywords = map[string]mlatu.TokType{
	"about":      mlatu.KwAbout,
	"as":         mlatu.KwAs,
	"case":       mlatu.KwCase,
	"define":     mlatu.KwDefine,
	"do":         mlatu.KwDo,
	"elif":       mlatu.KwElif,
	"else":       mlatu.KwElse,
	"field":      mlatu.KwField,
	"if":         mlatu.KwIf,
	"instance":   mlatu.KwInstance,
	"intrinsic":  mlatu.KwIntrinsic,
	"match":      mlatu.KwMatch,
	"permission": mlatu.KwPermission,
	"record":     mlatu.KwRecord,
	"synonym":    mlatu.KwSynonym,
	"trait":      mlatu.KwTrait,
	"type":       mlatu.KwType,
	"vocab":      mlatu.KwVocab,
	"with":       mlatu.KwWith,
}

// The tokens representing literal one-char lexemes.
var literals = map[string]mlatu.TokType{
	"{":  mlatu.BlockBegin,
	"}":  mlatu.BlockEnd,
	"(":  mlatu.GroupBegin,
	")":  mlatu.GroupEnd,
	"[":  mlatu.VectorBegin,
	"]":  mlatu.VectorEnd,
	"<":  mlatu.AngleBegin,
	">":  mlatu.AngleEnd,
	";":  mlatu.Terminator,
	",":  mlatu.Comma,
	":":  mlatu.Colon,
	"_":  mlatu.Ignore,
	"\\": mlatu.Reference,
}

var lexer *lexmachine.Lexer
var lexerErr error
var initOnce sync.Once // monitors one-time DFA compilation

// Lexer compiles the mlatu DFA once and returns it.
func Lexer() (*lexmachine.Lexer, error) {
	initOnce.Do(func() {
		lexer = lexmachine.NewLexer()
		// Comments and whitespace are skipped.
		lexer.Add([]byte(`//[^\n]*`), skip)
		lexer.Add([]byte(`/\*([^*]|\*[^/])*\*/`), skip)
		lexer.Add([]byte(`( |\t|\r|\n)+`), skip)
		// Multi-char punctuation goes in front of the operator rule: on
		// equal-length matches lexmachine keeps the rule added first.
		lexer.Add([]byte(`\.\.\.`), token(mlatu.Ellipsis))
		lexer.Add([]byte(`::`), token(mlatu.Lookup))
		lexer.Add([]byte(`->`), token(mlatu.Arrow))
		for lit, kind := range literals {
			r := "\\" + strings.Join(strings.Split(lit, ""), "\\")
			lexer.Add([]byte(r), token(kind))
		}
		for kw, kind := range keywords {
			lexer.Add([]byte(kw), token(kind))
		}
		// Literals.
		lexer.Add([]byte(`0x[0-9a-fA-F]+`), token(mlatu.Integer))
		lexer.Add([]byte(`[0-9]+\.[0-9]+([eE][\+\-]?[0-9]+)?`), token(mlatu.Float))
		lexer.Add([]byte(`[0-9]+`), token(mlatu.Integer))
		lexer.Add([]byte(`'([^'\\]|\\.)'`), token(mlatu.Character))
		lexer.Add([]byte(`"([^"\\]|\\.)*"`), token(mlatu.Text))
		// Names.
		lexer.Add([]byte(`[a-z][a-zA-Z0-9_]*`), token(mlatu.Word))
		lexer.Add([]byte(`[A-Z][a-zA-Z0-9_]*`), token(mlatu.UpperWord))
		lexer.Add([]byte(`[\!\#\$\%\&\*\+\-\.\/\:\<\=\>\?\@\^\|\~]+`), token(mlatu.Operator))
		lexerErr = lexer.Compile()
		if lexerErr != nil {
			tracer().Errorf("error compiling DFA: %v", lexerErr)
		}
	})
	return lexer, lexerErr
}

func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

func token(kind mlatu.TokType) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(int(kind), string(m.Bytes), m), nil
	}
}

// Scan tokenizes one source file. The returned sequence is terminated by an
// EOF token; positions are 1-based.
func Scan(file, input string) ([]mlatu.Token, error) {
	lex, err := Lexer()
	if err != nil {
		return nil, err
	}
	s, err := lex.Scanner([]byte(input))
	if err != nil {
		return nil, err
	}
	var tokens []mlatu.Token
	for {
		raw, err, eof := s.Next()
		if eof {
			break
		}
		if err != nil {
			if ui, is := err.(*machines.UnconsumedInput); is {
				line, col := ui.StartLine, ui.StartColumn
				return nil, fmt.Errorf("%s:%d:%d: unrecognized input", file, line, col)
			}
			return nil, err
		}
		tok := raw.(*lexmachine.Token)
		t, err := convert(file, tok)
		if err != nil {
			return nil, err
		}
		tracer().Debugf("scanned %s", t)
		tokens = append(tokens, t)
	}
	end := mlatu.Point(file, 1, 1)
	if n := len(tokens); n > 0 {
		last := tokens[n-1].Origin
		end = mlatu.Point(file, last.EndLine, last.EndCol+1)
	}
	tokens = append(tokens, mlatu.Token{Kind: mlatu.EOF, Origin: end})
	return tokens, nil
}

// convert turns a lexmachine token into a located mlatu token, converting
// literal lexemes to their values.
func convert(file string, tok *lexmachine.Token) (mlatu.Token, error) {
	origin := mlatu.Origin{
		File:      file,
		BeginLine: tok.StartLine, BeginCol: tok.StartColumn,
		EndLine: tok.EndLine, EndCol: tok.EndColumn,
		Span: mlatu.Span{uint64(tok.TC), uint64(tok.TC + len(tok.Lexeme))},
	}
	kind := mlatu.TokType(tok.Type)
	lexeme := string(tok.Lexeme)
	t := mlatu.Token{Kind: kind, Lexeme: lexeme, Origin: origin}
	switch kind {
	case mlatu.Integer:
		v, err := strconv.ParseInt(lexeme, 0, 64)
		if err != nil {
			return t, fmt.Errorf("%s: bad integer literal %q: %v", origin, lexeme, err)
		}
		t.Val = v
	case mlatu.Float:
		v, err := strconv.ParseFloat(lexeme, 64)
		if err != nil {
			return t, fmt.Errorf("%s: bad float literal %q: %v", origin, lexeme, err)
		}
		t.Val = v
	case mlatu.Character:
		r, err := unescapeChar(lexeme[1 : len(lexeme)-1])
		if err != nil {
			return t, fmt.Errorf("%s: bad character literal %q: %v", origin, lexeme, err)
		}
		t.Val = r
	case mlatu.Text:
		s, err := unescapeText(lexeme[1 : len(lexeme)-1])
		if err != nil {
			return t, fmt.Errorf("%s: bad text literal %q: %v", origin, lexeme, err)
		}
		t.Val = s
	}
	return t, nil
}

func unescapeText(body string) (string, error) {
	var b strings.Builder
	runes := []rune(body)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '\\' {
			b.WriteRune(runes[i])
			continue
		}
		i++
		if i >= len(runes) {
			return "", fmt.Errorf("dangling escape")
		}
		r, err := escape(runes[i])
		if err != nil {
			return "", err
		}
		b.WriteRune(r)
	}
	return b.String(), nil
}

func unescapeChar(body string) (rune, error) {
	runes := []rune(body)
	if len(runes) == 1 {
		return runes[0], nil
	}
	if len(runes) == 2 && runes[0] == '\\' {
		return escape(runes[1])
	}
	return 0, fmt.Errorf("not a single character")
}

func escape(r rune) (rune, error) {
	switch r {
	case 'n':
		return '\n', nil
	case 't':
		return '\t', nil
	case 'r':
		return '\r', nil
	case '0':
		return 0, nil
	case '\\', '\'', '"':
		return r, nil
	}
	return 0, fmt.Errorf("unknown escape '\\%c'", r)
}
