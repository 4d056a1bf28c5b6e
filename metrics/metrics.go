// Package metrics 保存字号与字体的固定查找表。
// 字号标签映射到像素尺寸，字体名称映射到字形集合标识。
package metrics

import "github.com/ByLCY/printer/printerr"

// CostumeHeight 为字形造型的原始高度（px），Scale 以此为基准。
const CostumeHeight = 50

// Size 是一个字号标签解析后的像素尺寸。
type Size struct {
	Tag         string  `json:"tag"`
	GlyphWidth  float64 `json:"glyphWidth"`
	GlyphHeight float64 `json:"glyphHeight"`
	LineHeight  float64 `json:"lineHeight"`
	Scale       float64 `json:"scale"`
}

// Typeface 是受支持的字体之一。ID 用于拼接字形造型名称。
type Typeface struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// 从小到大排列。
var sizeTable = []Size{
	newSize("tiny", 6, 8, 10),
	newSize("small", 8, 10, 12),
	newSize("medium", 10, 13, 16),
	newSize("large", 14, 18, 22),
	newSize("huge", 20, 25, 30),
	newSize("giant", 28, 35, 42),
}

var typefaceTable = []Typeface{
	{Name: "Handwriting", ID: "handwriting"},
	{Name: "Sans Serif", ID: "sans-serif"},
	{Name: "Serif", ID: "serif"},
	{Name: "Curly", ID: "curly"},
	{Name: "Marker", ID: "marker"},
	{Name: "Pixel", ID: "pixel"},
}

var (
	sizesByTag      = indexSizes(sizeTable)
	typefacesByName = indexTypefaces(typefaceTable)
)

func newSize(tag string, width, height, lineHeight float64) Size {
	return Size{
		Tag:         tag,
		GlyphWidth:  width,
		GlyphHeight: height,
		LineHeight:  lineHeight,
		Scale:       height / CostumeHeight,
	}
}

func indexSizes(sizes []Size) map[string]Size {
	out := make(map[string]Size, len(sizes))
	for _, s := range sizes {
		out[s.Tag] = s
	}
	return out
}

func indexTypefaces(faces []Typeface) map[string]Typeface {
	out := make(map[string]Typeface, len(faces))
	for _, tf := range faces {
		out[tf.Name] = tf
	}
	return out
}

// LookupSize 按标签精确匹配字号。
func LookupSize(tag string) (Size, error) {
	if s, ok := sizesByTag[tag]; ok {
		return s, nil
	}
	return Size{}, printerr.New(printerr.InvalidSize, tag, -1)
}

// LookupTypeface 按名称精确匹配字体（区分大小写）。
func LookupTypeface(name string) (Typeface, error) {
	if tf, ok := typefacesByName[name]; ok {
		return tf, nil
	}
	return Typeface{}, printerr.New(printerr.InvalidTypeface, name, -1)
}

// Sizes 返回全部字号，从小到大。
func Sizes() []Size {
	return append([]Size(nil), sizeTable...)
}

// Typefaces 返回全部字体。
func Typefaces() []Typeface {
	return append([]Typeface(nil), typefaceTable...)
}
