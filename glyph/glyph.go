// Package glyph 提供 (字体, 字符) → 可放置字形 的查找。
// 字形造型名称沿用资源生成工具的命名规则，宽度以字号的字形格宽为单位。
package glyph

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/runenames"

	"github.com/ByLCY/printer/metrics"
)

// Charset 是每个字体都提供造型的字符集合（不含替换字符）。
const Charset = "abcdefghijklmnopqrstuvwxyz" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"0123456789" +
	"`~!@#$€£%^&*()-_=+[{]}\\|;:'\"<,>.?/ "

// Replacement 在缺字时用作替代的字符。
const Replacement = '\uFFFD'

// Glyph 是一个可以交给放置原语的视觉单元。
// Width 是相对宽度：1.0 表示恰好占据一个字形格。
type Glyph struct {
	Rune  rune    `json:"rune"`
	Name  string  `json:"name"`
	Width float64 `json:"width"`
}

// Catalog 按字体与字符查找字形，找不到时返回 false。
// 实现必须是只读的，可被并发的打印调用共享。
type Catalog interface {
	Lookup(tf metrics.Typeface, r rune) (Glyph, bool)
}

// CostumeName 返回字形造型名称，例如 sans-serif-a、sans-serif-upper-A、
// sans-serif-special-solidus；替换字符为 sans-serif-replaceable。
func CostumeName(tf metrics.Typeface, r rune) string {
	switch {
	case r == Replacement:
		return tf.ID + "-replaceable"
	case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
		return strings.ToLower(tf.ID + "-" + string(r))
	case r >= 'A' && r <= 'Z':
		// 造型名称大小写不敏感，大写字母靠 upper 前缀区分
		return tf.ID + "-upper-" + string(r)
	}
	name := strings.ToLower(runenames.Name(r))
	name = strings.NewReplacer("_", "-", " ", "-").Replace(name)
	return strings.ToLower(tf.ID + "-special-" + name)
}

// InCharset 判断 r 是否属于标准字符集合。
func InCharset(r rune) bool {
	return r != utf8.RuneError && strings.ContainsRune(Charset, r)
}

// CostumeCatalog 是等宽目录：字符集中的每个字符以及替换字符都存在，宽度均为 1。
type CostumeCatalog struct {
	names map[string]map[rune]string
}

var _ Catalog = (*CostumeCatalog)(nil)

// NewCostumeCatalog 为全部受支持的字体生成造型名称表。
func NewCostumeCatalog() *CostumeCatalog {
	c := &CostumeCatalog{names: map[string]map[rune]string{}}
	for _, tf := range metrics.Typefaces() {
		names := make(map[rune]string, utf8.RuneCountInString(Charset)+1)
		for _, r := range Charset {
			names[r] = CostumeName(tf, r)
		}
		names[Replacement] = CostumeName(tf, Replacement)
		c.names[tf.Name] = names
	}
	return c
}

// Lookup 实现 Catalog。
func (c *CostumeCatalog) Lookup(tf metrics.Typeface, r rune) (Glyph, bool) {
	names, ok := c.names[tf.Name]
	if !ok {
		return Glyph{}, false
	}
	name, ok := names[r]
	if !ok {
		return Glyph{}, false
	}
	return Glyph{Rune: r, Name: name, Width: 1}, true
}
