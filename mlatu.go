package mlatu

import "fmt"

// --- Token categories -------------------------------------------------------

// TokType is a category type for a Token.
type TokType int

// Token categories of the mlatu surface syntax. The parser matches on these;
// the scanner produces them.
const (
	EOF TokType = iota
	Word
	UpperWord
	Operator
	Integer
	Float
	Character
	Text
	BlockBegin  // {
	BlockEnd    // }
	GroupBegin  // (
	GroupEnd    // )
	VectorBegin // [
	VectorEnd   // ]
	AngleBegin  // <
	AngleEnd    // >
	Lookup      // ::
	Terminator  // ;
	Arrow       // ->
	Comma       // ,
	Colon       // :
	Ellipsis    // ...
	Ignore      // _
	Reference   // \

	KwAbout
	KwAs
	KwCase
	KwDefine
	KwDo
	KwElif
	KwElse
	KwField
	KwIf
	KwInstance
	KwIntrinsic
	KwMatch
	KwPermission
	KwRecord
	KwSynonym
	KwTrait
	KwType
	KwVocab
	KwWith
)

var tokTypeNames = map[TokType]string{
	EOF:          "end of input",
	Word:         "word",
	UpperWord:    "capitalized word",
	Operator:     "operator",
	Integer:      "integer literal",
	Float:        "float literal",
	Character:    "character literal",
	Text:         "text literal",
	BlockBegin:   "'{'",
	BlockEnd:     "'}'",
	GroupBegin:   "'('",
	GroupEnd:     "')'",
	VectorBegin:  "'['",
	VectorEnd:    "']'",
	AngleBegin:   "'<'",
	AngleEnd:     "'>'",
	Lookup:       "'::'",
	Terminator:   "';'",
	Arrow:        "'->'",
	Comma:        "','",
	Colon:        "':'",
	Ellipsis:     "'...'",
	Ignore:       "'_'",
	Reference:    "'\\'",
	KwAbout:      "'about'",
	KwAs:         "'as'",
	KwCase:       "'case'",
	KwDefine:     "'define'",
	KwDo:         "'do'",
	KwElif:       "'elif'",
	KwElse:       "'else'",
	KwField:      "'field'",
	KwIf:         "'if'",
	KwInstance:   "'instance'",
	KwIntrinsic:  "'intrinsic'",
	KwMatch:      "'match'",
	KwPermission: "'permission'",
	KwRecord:     "'record'",
	KwSynonym:    "'synonym'",
	KwTrait:      "'trait'",
	KwType:       "'type'",
	KwVocab:      "'vocab'",
	KwWith:       "'with'",
}

func (t TokType) String() string {
	if name, ok := tokTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("token(%d)", int(t))
}

// --- Tokens -----------------------------------------------------------------

// Token is a located input token, produced by the scanner and consumed by the
// parser. Val optionally carries a converted literal value (int64, float64,
// rune or string), set by the scanner.
type Token struct {
	Kind   TokType
	Lexeme string
	Val    interface{}
	Origin Origin
}

func (t Token) String() string {
	if t.Kind == EOF {
		return "<EOF>"
	}
	return fmt.Sprintf("%q/%s", t.Lexeme, t.Kind)
}

// --- Spans ------------------------------------------------------------------

// Span is a small type for capturing a length of input run: a start offset
// and the offset just behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

func (s Span) IsNull() bool {
	return s == Span{}
}

func (s Span) Extend(other Span) Span {
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}

// --- Origins ----------------------------------------------------------------

// Origin locates a token or syntax-tree node in its source file, for
// diagnostics. Lines and columns are 1-based; Span holds byte offsets.
type Origin struct {
	File                string
	BeginLine, BeginCol int
	EndLine, EndCol     int
	Span                Span
}

// Point creates a zero-width origin at a position.
func Point(file string, line, col int) Origin {
	return Origin{
		File:      file,
		BeginLine: line, BeginCol: col,
		EndLine: line, EndCol: col,
	}
}

// Merge combines two origins into one covering both.
func (o Origin) Merge(other Origin) Origin {
	if other == (Origin{}) {
		return o
	}
	if o == (Origin{}) {
		return other
	}
	merged := o
	if other.BeginLine < o.BeginLine ||
		(other.BeginLine == o.BeginLine && other.BeginCol < o.BeginCol) {
		merged.BeginLine, merged.BeginCol = other.BeginLine, other.BeginCol
	}
	if other.EndLine > o.EndLine ||
		(other.EndLine == o.EndLine && other.EndCol > o.EndCol) {
		merged.EndLine, merged.EndCol = other.EndLine, other.EndCol
	}
	merged.Span = o.Span.Extend(other.Span)
	return merged
}

func (o Origin) String() string {
	if o.File == "" {
		return fmt.Sprintf("%d:%d", o.BeginLine, o.BeginCol)
	}
	return fmt.Sprintf("%s:%d:%d", o.File, o.BeginLine, o.BeginCol)
}
