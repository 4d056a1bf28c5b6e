package fonts

import (
	"fmt"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"

	"github.com/ByLCY/printer/metrics"
)

// 内置字体以 Go 字体族代替各字体的真实字形，仅保证字符覆盖与大致风格。
var programs = map[string][]byte{
	"Handwriting": goitalic.TTF,
	"Sans Serif":  goregular.TTF,
	"Serif":       gosmallcaps.TTF,
	"Curly":       gobolditalic.TTF,
	"Marker":      gobold.TTF,
	"Pixel":       gomono.TTF,
}

// Load 返回字体名称对应的内置字体数据。
func Load(typeface string) ([]byte, error) {
	if _, err := metrics.LookupTypeface(typeface); err != nil {
		return nil, fmt.Errorf("读取内置字体失败: %w", err)
	}
	data, ok := programs[typeface]
	if !ok {
		return nil, fmt.Errorf("字体 %s 没有内置字体数据", typeface)
	}
	return data, nil
}

// All 返回全部内置字体数据，按字体名称索引。
func All() map[string][]byte {
	out := make(map[string][]byte, len(programs))
	for name, data := range programs {
		out[name] = data
	}
	return out
}
