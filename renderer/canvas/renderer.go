package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"os"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/printer/fonts"
	"github.com/ByLCY/printer/glyph"
	"github.com/ByLCY/printer/layout"
	"github.com/ByLCY/printer/renderer"
)

// Default canvas size in pixels.
const (
	DefaultWidth  = 480
	DefaultHeight = 360
)

// Renderer stamps placed glyphs onto a github.com/tdewolff/canvas canvas.
// Stamps are append-only; Render serialises everything stamped so far.
type Renderer struct {
	width, height float64 // px
	ink           color.Color

	// injected resources, by typeface name
	fontBlobs map[string][]byte

	fontMu       sync.Mutex
	fontFamilies map[string]*canvas.FontFamily

	mu      sync.Mutex
	canvas  *canvas.Canvas
	ctx     *canvas.Context
	stamped int
	err     error
}

var _ renderer.Renderer = (*Renderer)(nil)

// Options configures the canvas renderer.
type Options struct {
	Width, Height float64             // px; zero means the default stage size
	Fonts         map[string]Resource // font program per typeface name, overrides the built-in ones
	Ink           color.Color         // glyph color, black when nil
	Background    color.Color         // nil leaves the page transparent
}

// Resource can be provided either by Bytes or by Path.
type Resource struct {
	Bytes []byte
	Path  string
}

// NewRenderer creates a renderer with the default stage size and built-in fonts.
func NewRenderer() *Renderer { return NewRendererWithOptions(Options{}) }

// NewRendererWithOptions creates a renderer with injected resources.
func NewRendererWithOptions(opts Options) *Renderer {
	width, height := opts.Width, opts.Height
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	ink := opts.Ink
	if ink == nil {
		ink = canvas.Black
	}
	r := &Renderer{
		width:        width,
		height:       height,
		ink:          ink,
		fontBlobs:    map[string][]byte{},
		fontFamilies: map[string]*canvas.FontFamily{},
	}
	for name, res := range opts.Fonts {
		if name == "" {
			continue
		}
		if len(res.Bytes) > 0 {
			r.fontBlobs[name] = res.Bytes
			continue
		}
		if res.Path != "" {
			data, err := os.ReadFile(res.Path)
			if err != nil {
				// 与字体解析失败一样，留给 Render 报告
				if r.err == nil {
					r.err = fmt.Errorf("读取字体 %s 失败: %w", res.Path, err)
				}
				continue
			}
			r.fontBlobs[name] = data
		}
	}

	r.canvas = canvas.New(toMm(width), toMm(height))
	r.ctx = canvas.NewContext(r.canvas)
	r.ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与排版保持左上角为原点
	if opts.Background != nil {
		r.ctx.SetFillColor(opts.Background)
		r.ctx.DrawPath(0, 0, canvas.Rectangle(toMm(width), toMm(height)))
	}
	return r
}

// Size returns the canvas size in pixels.
func (r *Renderer) Size() (width, height float64) {
	return r.width, r.height
}

// Stamped reports how many glyphs have been placed.
func (r *Renderer) Stamped() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stamped
}

// Place 把字形居中印在其字形格内。字体加载失败时记录第一个错误，由 Render 返回。
func (r *Renderer) Place(p layout.Placement) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return
	}
	family, err := r.ensureFontFamily(p.Typeface.Name)
	if err != nil {
		r.err = err
		return
	}
	face := family.Face(toPt(p.Height), r.ink, canvas.FontRegular, canvas.FontNormal)

	ch := p.Rune
	if p.Substituted {
		ch = glyph.Replacement
	}
	// 字形格的水平中心作为锚点，基线为格顶加上字体上升部
	anchorX := toMm(p.X + p.Width/2)
	baseline := toMm(p.Y) + face.Metrics().Ascent
	r.ctx.DrawText(anchorX, baseline, canvas.NewTextLine(face, string(ch), canvas.Center))
	r.stamped++
}

// Render renders everything stamped so far into a PDF byte slice.
func (r *Renderer) Render() ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}

	var buf bytes.Buffer
	writer := pdf.New(&buf, toMm(r.width), toMm(r.height), nil)
	r.canvas.RenderTo(writer)
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) ensureFontFamily(typeface string) (*canvas.FontFamily, error) {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	if family, ok := r.fontFamilies[typeface]; ok {
		return family, nil
	}
	data, err := r.loadFontBytes(typeface)
	if err != nil {
		return nil, err
	}
	family := canvas.NewFontFamily(typeface)
	if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("加载字体 %s 失败: %w", typeface, err)
	}
	r.fontFamilies[typeface] = family
	return family, nil
}

func (r *Renderer) loadFontBytes(typeface string) ([]byte, error) {
	if blob, ok := r.fontBlobs[typeface]; ok {
		return blob, nil
	}
	return fonts.Load(typeface)
}

// toPt 将像素(px)转换为点(pt)。
func toPt(px float64) float64 { return px * layout.PxToPt }

// toMm 将像素(px)转换为毫米(mm)。
func toMm(px float64) float64 { return px * layout.PxToMm }
