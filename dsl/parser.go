package dsl

import (
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	dslLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "Number", Pattern: `-?(?:\d+\.\d+|\d+)(?:px|pt|mm|cm|in)?`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"|` + "`[^`]*`"},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Symbol", Pattern: `[;,]`},
	})

	scriptParser = participle.MustBuild[Script](
		participle.Lexer(dslLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment", "HashComment"),
	)
)

// Script is the root AST node for a print script.
type Script struct {
	Pos        lexer.Position `parser:"" json:"-"`
	Statements []*Statement   `parser:"Newline* ( @@ ( ';' | Newline )* )*"`
}

// Statement is one top-level instruction (canvas/defaults/print).
type Statement struct {
	Canvas   *CanvasStatement   `parser:"  @@"`
	Defaults *DefaultsStatement `parser:"| @@"`
	Print    *PrintStatement    `parser:"| @@"`
}

// Kind returns the human-readable statement type.
func (s *Statement) Kind() string {
	switch {
	case s == nil:
		return "unknown"
	case s.Canvas != nil:
		return "canvas"
	case s.Defaults != nil:
		return "defaults"
	case s.Print != nil:
		return "print"
	default:
		return "unknown"
	}
}

// CanvasStatement sets the drawing surface size.
type CanvasStatement struct {
	Pos    lexer.Position `parser:"" json:"-"`
	Width  string         `parser:"'canvas' @Number"`
	Height string         `parser:"','? @Number"`
}

// DefaultsStatement sets options inherited by the following prints.
type DefaultsStatement struct {
	Pos     lexer.Position `parser:"" json:"-"`
	Options []*Option      `parser:"'defaults' @@+"`
}

// PrintStatement prints one string. Without an `at` option it continues
// where the previous print stopped.
type PrintStatement struct {
	Pos     lexer.Position `parser:"" json:"-"`
	Text    StringLiteral  `parser:"'print' @String"`
	Options []*Option      `parser:"@@*"`
}

// Option is a single print parameter.
type Option struct {
	At     *Point         `parser:"  'at' @@"`
	Size   *string        `parser:"| 'size' @Ident"`
	Font   *StringLiteral `parser:"| 'font' @String"`
	Margin *string        `parser:"| 'margin' @Number"`
	Wrap   *string        `parser:"| 'wrap' @Number"`
}

// Point is an `x y` or `x, y` coordinate pair.
type Point struct {
	X string `parser:"@Number"`
	Y string `parser:"','? @Number"`
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Parse parses a print script from an io.Reader.
func Parse(r io.Reader) (*Script, error) {
	return scriptParser.Parse("", r)
}

// ParseString parses a print script from a string.
func ParseString(input string) (*Script, error) {
	return scriptParser.ParseString("", input)
}
