package scanner

import (
	"fmt"

	"github.com/emirpasic/gods/stacks/arraystack"

	"github.com/mayhemheroes/mlatu"
)

// Layout is the bracket-insertion pass: a colon at the end of a line opens
// an implicit block, closed when indentation falls back to (or below) the
// level of the opening line. The output is indistinguishable from explicitly
// braced input, so the parser never knows about layout.
//
// Layout is suspended inside explicit bracket pairs, where newlines carry no
// meaning.
func Layout(tokens []mlatu.Token) ([]mlatu.Token, error) {
	out := make([]mlatu.Token, 0, len(tokens)+8)
	indents := arraystack.New() // columns of the lines that opened layout blocks
	brackets := 0               // explicit (), [], {} nesting depth
	prevLine := 0
	lineCol := 0 // column of the first token on the current line
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if tok.Kind == mlatu.EOF {
			for !indents.Empty() {
				indents.Pop()
				out = append(out, synthetic(mlatu.BlockEnd, "}", tok.Origin))
			}
			out = append(out, tok)
			return out, nil
		}
		if tok.Origin.BeginLine > prevLine {
			prevLine = tok.Origin.BeginLine
			lineCol = tok.Origin.BeginCol
			if brackets == 0 {
				for {
					top, ok := indents.Peek()
					if !ok || tok.Origin.BeginCol > top.(int) {
						break
					}
					indents.Pop()
					out = append(out, synthetic(mlatu.BlockEnd, "}", tok.Origin))
				}
			}
		}
		switch tok.Kind {
		case mlatu.GroupBegin, mlatu.VectorBegin, mlatu.BlockBegin:
			brackets++
		case mlatu.GroupEnd, mlatu.VectorEnd, mlatu.BlockEnd:
			if brackets > 0 {
				brackets--
			}
		case mlatu.Colon:
			if brackets == 0 && endsLine(tokens, i) {
				next := tokens[i+1]
				if next.Kind == mlatu.EOF {
					return nil, fmt.Errorf("%s: empty layout block", tok.Origin)
				}
				if next.Origin.BeginCol <= lineCol {
					return nil, fmt.Errorf("%s: layout block must be indented past column %d",
						next.Origin, lineCol)
				}
				indents.Push(lineCol)
				out = append(out, synthetic(mlatu.BlockBegin, "{", tok.Origin))
				continue
			}
		}
		out = append(out, tok)
	}
	return out, nil
}

// endsLine reports whether token i is the last one on its line.
func endsLine(tokens []mlatu.Token, i int) bool {
	if i+1 >= len(tokens) {
		return true
	}
	next := tokens[i+1]
	return next.Kind == mlatu.EOF || next.Origin.BeginLine > tokens[i].Origin.BeginLine
}

func synthetic(kind mlatu.TokType, lexeme string, origin mlatu.Origin) mlatu.Token {
	return mlatu.Token{Kind: kind, Lexeme: lexeme, Origin: origin}
}
