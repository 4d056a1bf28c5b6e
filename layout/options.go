package layout

import (
	"github.com/ByLCY/printer/escape"
	"github.com/ByLCY/printer/glyph"
	"github.com/ByLCY/printer/metrics"
)

// Params 配置一次排版所需的全部输入，调用方负责事先校验。
type Params struct {
	Typeface  metrics.Typeface
	Size      metrics.Size
	X, Y      float64 // 起始位置
	Margin    float64 // 换行后回到的 x
	WrapWidth float64 // 从 Margin 起算的最大行宽，<=0 表示不自动换行
	Catalog   glyph.Catalog
	// Replacement 非零时，缺字用该字符的字形代替而不是报错。
	Replacement rune
}

// TokenSource 按顺序提供词法单元，结束时返回 io.EOF。
type TokenSource interface {
	Next() (escape.Token, error)
}
