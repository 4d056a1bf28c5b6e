package glyph

import (
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/ByLCY/printer/metrics"
)

// measurePPEM 是测量字宽时使用的字号，只保留比值。
const measurePPEM = 256

// referenceRune 的字宽定义为 1.0。
const referenceRune = '0'

// FontCatalog 是按字体实际字宽测量的比例目录。
// 只收录字体中存在的 Charset 字符与替换字符。
type FontCatalog struct {
	glyphs map[string]map[rune]Glyph
}

var _ Catalog = (*FontCatalog)(nil)

// NewFontCatalog 按字体名称解析字体程序。未提供的字体在目录中没有任何字形，
// 未知的字体名称返回 InvalidTypeface。
func NewFontCatalog(programs map[string][]byte) (*FontCatalog, error) {
	c := &FontCatalog{glyphs: map[string]map[rune]Glyph{}}
	for _, tf := range metrics.Typefaces() {
		data, ok := programs[tf.Name]
		if !ok {
			continue
		}
		glyphs, err := measureFont(tf, data)
		if err != nil {
			return nil, fmt.Errorf("glyph: 字体 %s: %w", tf.Name, err)
		}
		c.glyphs[tf.Name] = glyphs
	}
	for name := range programs {
		if _, err := metrics.LookupTypeface(name); err != nil {
			return nil, fmt.Errorf("glyph: %w", err)
		}
	}
	return c, nil
}

// Lookup 实现 Catalog。
func (c *FontCatalog) Lookup(tf metrics.Typeface, r rune) (Glyph, bool) {
	g, ok := c.glyphs[tf.Name][r]
	return g, ok
}

func measureFont(tf metrics.Typeface, data []byte) (map[rune]Glyph, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("解析字体失败: %w", err)
	}
	var buf sfnt.Buffer
	ref, ok, err := advance(f, &buf, referenceRune)
	if err != nil {
		return nil, err
	}
	if !ok || ref <= 0 {
		return nil, fmt.Errorf("字体缺少参考字符 %q", referenceRune)
	}

	out := map[rune]Glyph{}
	for _, r := range Charset + string(Replacement) {
		adv, ok, err := advance(f, &buf, r)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		out[r] = Glyph{
			Rune:  r,
			Name:  CostumeName(tf, r),
			Width: float64(adv) / float64(ref),
		}
	}
	return out, nil
}

// advance 在字体缺少 r 的字形时返回 false。
func advance(f *sfnt.Font, buf *sfnt.Buffer, r rune) (fixed.Int26_6, bool, error) {
	idx, err := f.GlyphIndex(buf, r)
	if err != nil {
		return 0, false, fmt.Errorf("查找字形 %q 失败: %w", r, err)
	}
	if idx == 0 {
		return 0, false, nil
	}
	adv, err := f.GlyphAdvance(buf, idx, fixed.I(measurePPEM), font.HintingNone)
	if err != nil {
		return 0, false, fmt.Errorf("测量字形 %q 失败: %w", r, err)
	}
	return adv, true, nil
}
