package token

import (
	"fmt"
	"strconv"

	"tlog.app/go/tlog/tlwire"
)

type (
	Kind int

	// Token is a single lexical unit.
	// Text is set for Identifier, Char and String, Value for Integer and Double.
	Token struct {
		Kind Kind

		Line int
		Col  int

		Text  string
		Value int64
	}
)

const (
	None Kind = iota
	Eof

	LeftParen
	RightParen
	LeftBrace
	RightBrace
	LeftSquare
	RightSquare
	Comma
	Dot
	Semicolon

	Plus
	Minus
	Star
	Slash
	Percent
	And
	Or
	Cap
	Wave
	Not
	Equal
	Less
	Greater

	PlusEqual
	MinusEqual
	StarEqual
	SlashEqual
	PercentEqual
	AndEqual
	OrEqual
	CapEqual
	WaveEqual
	NotEqual
	EqualEqual
	LessEqual
	GreaterEqual
	LeftArrow  // <<
	RightArrow // >>

	Identifier
	Integer
	Double
	Char
	String

	// keywords
	Break
	Continue
	Return
	If
	Else
	For
	While
	Print

	// type keywords
	TInt
	TDouble
	TFloat
	TString

	numKinds
)

var names = [numKinds]string{
	None: "None",
	Eof:  "Eof",

	LeftParen:   "(",
	RightParen:  ")",
	LeftBrace:   "{",
	RightBrace:  "}",
	LeftSquare:  "[",
	RightSquare: "]",
	Comma:       ",",
	Dot:         ".",
	Semicolon:   ";",

	Plus:    "+",
	Minus:   "-",
	Star:    "*",
	Slash:   "/",
	Percent: "%",
	And:     "&",
	Or:      "|",
	Cap:     "^",
	Wave:    "~",
	Not:     "!",
	Equal:   "=",
	Less:    "<",
	Greater: ">",

	PlusEqual:    "+=",
	MinusEqual:   "-=",
	StarEqual:    "*=",
	SlashEqual:   "/=",
	PercentEqual: "%=",
	AndEqual:     "&=",
	OrEqual:      "|=",
	CapEqual:     "^=",
	WaveEqual:    "~=",
	NotEqual:     "!=",
	EqualEqual:   "==",
	LessEqual:    "<=",
	GreaterEqual: ">=",
	LeftArrow:    "<<",
	RightArrow:   ">>",

	Identifier: "Identifier",
	Integer:    "Integer",
	Double:     "Double",
	Char:       "Char",
	String:     "String",

	Break:    "break",
	Continue: "continue",
	Return:   "return",
	If:       "if",
	Else:     "else",
	For:      "for",
	While:    "while",
	Print:    "print",

	TInt:    "int",
	TDouble: "double",
	TFloat:  "float",
	TString: "string",
}

// split tells how a two-character operator breaks into two single ones.
var split = map[Kind][2]Kind{
	PlusEqual:    {Plus, Equal},
	MinusEqual:   {Minus, Equal},
	StarEqual:    {Star, Equal},
	SlashEqual:   {Slash, Equal},
	PercentEqual: {Percent, Equal},
	AndEqual:     {And, Equal},
	OrEqual:      {Or, Equal},
	CapEqual:     {Cap, Equal},
	WaveEqual:    {Wave, Equal},
	NotEqual:     {Not, Equal},
	EqualEqual:   {Equal, Equal},
	LessEqual:    {Less, Equal},
	GreaterEqual: {Greater, Equal},
	LeftArrow:    {Less, Less},
	RightArrow:   {Greater, Greater},
}

func Single(k Kind, line, col int) Token {
	return Token{Kind: k, Line: line, Col: col}
}

func Ident(text string, line, col int) Token {
	return Token{Kind: Identifier, Line: line, Col: col, Text: text}
}

func Number(k Kind, v int64, line, col int) Token {
	return Token{Kind: k, Line: line, Col: col, Value: v}
}

func Text(k Kind, text string, line, col int) Token {
	return Token{Kind: k, Line: line, Col: col, Text: text}
}

// Split returns the two single-character kinds k is made of.
func Split(k Kind) (first, rest Kind, ok bool) {
	p, ok := split[k]

	return p[0], p[1], ok
}

// IsKeyword reports whether k is a reserved word.
func (k Kind) IsKeyword() bool {
	return k >= Break && k < numKinds
}

func (k Kind) String() string {
	if k >= 0 && k < numKinds {
		return names[k]
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) TlogAppend(b []byte) []byte {
	var e tlwire.LowEncoder

	return e.AppendString(b, k.String())
}

func (t Token) String() string {
	switch t.Kind {
	case Identifier:
		return t.Text
	case Integer, Double:
		return strconv.FormatInt(t.Value, 10)
	case Char:
		return "'" + t.Text + "'"
	case String:
		return `"` + t.Text + `"`
	default:
		return t.Kind.String()
	}
}
