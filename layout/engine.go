package layout

import (
	"io"
	"iter"

	"github.com/ByLCY/printer/escape"
	"github.com/ByLCY/printer/glyph"
	"github.com/ByLCY/printer/printerr"
)

// Engine 消费词法单元并维护游标，逐条产出放置/暂停指令。
// 换行策略为按字符的贪心换行：不回看单词边界，也不拆分字形。
// 一个 Engine 只服务一次打印，不可重用，也不能被多个 goroutine 共享。
type Engine struct {
	src    TokenSource
	params Params
	cursor Cursor

	lineHasGlyph bool
	placed       int
	err          error
}

// NewEngine 创建排版引擎，游标从 (p.X, p.Y) 开始。Catalog 为空时使用等宽造型目录。
func NewEngine(src TokenSource, p Params) *Engine {
	if p.Catalog == nil {
		p.Catalog = glyph.NewCostumeCatalog()
	}
	return &Engine{
		src:    src,
		params: p,
		cursor: Cursor{
			X:            p.X,
			Y:            p.Y,
			LineHeight:   p.Size.LineHeight,
			GlyphAdvance: p.Size.GlyphWidth,
		},
	}
}

// Cursor 返回当前游标的副本。
func (e *Engine) Cursor() Cursor {
	return e.cursor
}

// Next 返回下一条指令；输入结束时返回 io.EOF。
// 词法错误与缺字错误原样返回，之后的调用会重复返回同一个错误。
func (e *Engine) Next() (Instruction, error) {
	if e.err != nil {
		return Instruction{}, e.err
	}
	for {
		tok, err := e.src.Next()
		if err != nil {
			e.err = err
			return Instruction{}, err
		}
		switch tok.Kind {
		case escape.Char:
			pl, err := e.place(tok)
			if err != nil {
				e.err = err
				return Instruction{}, err
			}
			return Instruction{Place: &pl}, nil
		case escape.Newline:
			e.breakLine()
		case escape.Pause, escape.Delay:
			return Instruction{Pause: &Pause{Millis: tok.Millis, Delay: tok.Kind == escape.Delay}}, nil
		}
	}
}

// All 以迭代器形式产出剩余指令；出错时产出一次错误后结束，正常结束不产出 io.EOF。
func (e *Engine) All() iter.Seq2[Instruction, error] {
	return func(yield func(Instruction, error) bool) {
		for {
			in, err := e.Next()
			if err == io.EOF {
				return
			}
			if !yield(in, err) || err != nil {
				return
			}
		}
	}
}

func (e *Engine) place(tok escape.Token) (Placement, error) {
	g, ok := e.params.Catalog.Lookup(e.params.Typeface, tok.Rune)
	substituted := false
	if !ok && e.params.Replacement != 0 {
		g, ok = e.params.Catalog.Lookup(e.params.Typeface, e.params.Replacement)
		substituted = ok
	}
	if !ok {
		return Placement{}, printerr.New(printerr.UnsupportedCharacter, string(tok.Rune), tok.Offset)
	}

	width := g.Width * e.params.Size.GlyphWidth
	// 放不下时先换行；游标已在左边距处的超宽字形直接放置，避免无限换行
	if e.params.WrapWidth > 0 && e.atLineTail() && e.cursor.X+width > e.params.Margin+e.params.WrapWidth {
		e.breakLine()
	}

	pl := Placement{
		Rune:        tok.Rune,
		Name:        g.Name,
		Typeface:    e.params.Typeface,
		Size:        e.params.Size,
		X:           e.cursor.X,
		Y:           e.cursor.Y,
		Width:       width,
		Height:      e.params.Size.GlyphHeight,
		Line:        e.cursor.Line,
		Index:       e.placed,
		Substituted: substituted,
	}
	e.cursor.X += width
	e.lineHasGlyph = true
	e.placed++
	return pl, nil
}

// atLineTail 判断换行是否还能腾出空间：行内已有字形，或起点在左边距右侧
// （例如从上一次打印的游标继续）。
func (e *Engine) atLineTail() bool {
	return e.lineHasGlyph || e.cursor.X > e.params.Margin
}

func (e *Engine) breakLine() {
	e.cursor.X = e.params.Margin
	e.cursor.Y += e.cursor.LineHeight
	e.cursor.Line++
	e.lineHasGlyph = false
}

// Layout 一次性排版整个字符串，返回出错前已产生的指令与错误。
func Layout(text string, p Params) ([]Instruction, Cursor, error) {
	e := NewEngine(escape.NewTokenizer(text), p)
	var out []Instruction
	for in, err := range e.All() {
		if err != nil {
			return out, e.Cursor(), err
		}
		out = append(out, in)
	}
	return out, e.Cursor(), nil
}
