// Package escape tokenises print strings, expanding in-string directives.
//
// Directives start with a backslash:
//
//	\n        line break
//	\\        literal backslash
//	\P<ms>;   pause for ms milliseconds
//	\D<ms>;   delay directive, handled exactly like a pause
//
// Any other escape, a directive with a missing or non-numeric argument, or a
// directive cut short by the end of the string is an error.
package escape

import (
	"io"
	"iter"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/ByLCY/printer/printerr"
)

// Kind identifies a token variant.
type Kind int

const (
	Char Kind = iota
	Newline
	Pause
	Delay
)

func (k Kind) String() string {
	switch k {
	case Char:
		return "Char"
	case Newline:
		return "Newline"
	case Pause:
		return "Pause"
	case Delay:
		return "Delay"
	default:
		return "Unknown"
	}
}

// Token is one unit of the expanded string. Rune is set for Char tokens,
// Millis for Pause and Delay tokens.
type Token struct {
	Kind   Kind
	Rune   rune
	Millis int
	Offset int // byte offset of the token's first character in the input
}

// CharToken returns a Char token with no offset, for comparisons via Equal.
func CharToken(r rune) Token { return Token{Kind: Char, Rune: r} }

// NewlineToken returns a Newline token with no offset.
func NewlineToken() Token { return Token{Kind: Newline} }

// PauseToken returns a Pause token of ms milliseconds.
func PauseToken(ms int) Token { return Token{Kind: Pause, Millis: ms} }

// DelayToken returns a Delay token of ms milliseconds.
func DelayToken(ms int) Token { return Token{Kind: Delay, Millis: ms} }

// Equal compares tokens ignoring offsets.
func (t Token) Equal(o Token) bool {
	return t.Kind == o.Kind && t.Rune == o.Rune && t.Millis == o.Millis
}

type state int

const (
	stateNormal state = iota
	stateSawBackslash
	statePauseDigits
	stateDelayDigits
)

// Tokenizer is a single forward pass over one string. It is not restartable:
// once it reports an error or io.EOF it keeps reporting it.
type Tokenizer struct {
	input string
	pos   int

	state      state
	start      int // offset of the backslash opening the current directive
	acc        int
	accDigits  int
	accOverrun bool

	err error
}

// NewTokenizer returns a tokenizer positioned at the start of s.
func NewTokenizer(s string) *Tokenizer {
	return &Tokenizer{input: s}
}

// Next returns the next token, io.EOF once the input is exhausted in the
// normal state, or a *printerr.Error as soon as an offending character is read.
// A byte that is not valid UTF-8 is an UnsupportedCharacter carrying that byte.
func (t *Tokenizer) Next() (Token, error) {
	if t.err != nil {
		return Token{}, t.err
	}
	for t.pos < len(t.input) {
		r, width := utf8.DecodeRuneInString(t.input[t.pos:])
		offset := t.pos
		t.pos += width

		switch t.state {
		case stateNormal:
			if r == utf8.RuneError && width == 1 {
				return t.fail(printerr.New(printerr.UnsupportedCharacter, t.input[offset:t.pos], offset))
			}
			if r == '\\' {
				t.state = stateSawBackslash
				t.start = offset
				continue
			}
			return Token{Kind: Char, Rune: r, Offset: offset}, nil

		case stateSawBackslash:
			switch r {
			case 'n':
				t.state = stateNormal
				return Token{Kind: Newline, Offset: t.start}, nil
			case '\\':
				t.state = stateNormal
				return Token{Kind: Char, Rune: '\\', Offset: t.start}, nil
			case 'P':
				t.beginDigits(statePauseDigits)
			case 'D':
				t.beginDigits(stateDelayDigits)
			default:
				return t.fail(printerr.New(printerr.UnknownEscape, string(r), offset))
			}

		case statePauseDigits, stateDelayDigits:
			switch {
			case r >= '0' && r <= '9':
				t.appendDigit(int(r - '0'))
			case r == ';':
				if t.accDigits == 0 || t.accOverrun {
					return t.fail(printerr.New(printerr.MalformedDirective, t.input[t.start:t.pos], t.start))
				}
				kind := Pause
				if t.state == stateDelayDigits {
					kind = Delay
				}
				t.state = stateNormal
				return Token{Kind: kind, Millis: t.acc, Offset: t.start}, nil
			default:
				return t.fail(printerr.New(printerr.MalformedDirective, t.input[t.start:t.pos], t.start))
			}
		}
	}
	if t.state != stateNormal {
		return t.fail(printerr.New(printerr.UnterminatedDirective, t.input[t.start:], t.start))
	}
	t.err = io.EOF
	return Token{}, io.EOF
}

func (t *Tokenizer) beginDigits(s state) {
	t.state = s
	t.acc = 0
	t.accDigits = 0
	t.accOverrun = false
}

func (t *Tokenizer) appendDigit(d int) {
	t.accDigits++
	if t.accOverrun {
		return
	}
	if t.acc > (math.MaxInt-d)/10 {
		t.accOverrun = true
		return
	}
	t.acc = t.acc*10 + d
}

func (t *Tokenizer) fail(err *printerr.Error) (Token, error) {
	t.err = err
	return Token{}, err
}

// All yields the remaining tokens. On failure it yields the error once and
// stops; a clean end of input is not yielded.
func (t *Tokenizer) All() iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		for {
			tok, err := t.Next()
			if err == io.EOF {
				return
			}
			if !yield(tok, err) || err != nil {
				return
			}
		}
	}
}

// Tokenize materialises every token of s. Tokens read before a failure are
// returned together with the error.
func Tokenize(s string) ([]Token, error) {
	t := NewTokenizer(s)
	var out []Token
	for tok, err := range t.All() {
		if err != nil {
			return out, err
		}
		out = append(out, tok)
	}
	return out, nil
}

// Escape doubles every backslash in s so that it prints verbatim.
func Escape(s string) string {
	return strings.ReplaceAll(s, `\`, `\\`)
}
