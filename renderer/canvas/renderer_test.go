package canvasrenderer

import (
	"bytes"
	"errors"
	"io/fs"
	"math"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/printer/layout"
	"github.com/ByLCY/printer/metrics"
)

func placement(t *testing.T, typeface string, r rune, x, y float64) layout.Placement {
	t.Helper()
	tf, err := metrics.LookupTypeface(typeface)
	if err != nil {
		t.Fatalf("LookupTypeface: %v", err)
	}
	size, err := metrics.LookupSize("large")
	if err != nil {
		t.Fatalf("LookupSize: %v", err)
	}
	return layout.Placement{
		Rune:     r,
		Typeface: tf,
		Size:     size,
		X:        x,
		Y:        y,
		Width:    size.GlyphWidth,
		Height:   size.GlyphHeight,
	}
}

func TestRenderProducesPDF(t *testing.T) {
	r := NewRendererWithOptions(Options{Background: canvas.White})
	for i, ch := range "Hi!" {
		r.Place(placement(t, "Sans Serif", ch, float64(i)*14, 10))
	}
	if got := r.Stamped(); got != 3 {
		t.Fatalf("expected 3 stamps, got %d", got)
	}
	out, err := r.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("output is not a PDF: %q", out[:min(len(out), 8)])
	}
}

func TestEveryTypefaceLoads(t *testing.T) {
	r := NewRenderer()
	for _, tf := range metrics.Typefaces() {
		r.Place(placement(t, tf.Name, 'a', 0, 0))
	}
	if _, err := r.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}
}

func TestSubstitutedPlacementIsStamped(t *testing.T) {
	r := NewRenderer()
	p := placement(t, "Pixel", 'é', 0, 0)
	p.Substituted = true
	r.Place(p)
	if r.Stamped() != 1 {
		t.Fatalf("substituted glyph should be stamped")
	}
}

func TestBrokenFontIsReportedByRender(t *testing.T) {
	r := NewRendererWithOptions(Options{Fonts: map[string]Resource{
		"Serif": {Bytes: []byte("definitely not a font")},
	}})
	r.Place(placement(t, "Serif", 'a', 0, 0))
	r.Place(placement(t, "Serif", 'b', 10, 0))
	if r.Stamped() != 0 {
		t.Fatalf("nothing should be stamped after a font failure")
	}
	if _, err := r.Render(); err == nil {
		t.Fatalf("expected Render to report the font error")
	}
}

func TestUnreadableFontPathIsReportedByRender(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.ttf")
	r := NewRendererWithOptions(Options{Fonts: map[string]Resource{
		"Serif": {Path: missing},
	}})
	r.Place(placement(t, "Serif", 'a', 0, 0))
	_, err := r.Render()
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected Render to report the missing font file, got %v", err)
	}
	if !strings.Contains(err.Error(), missing) {
		t.Fatalf("error should name the font path: %v", err)
	}
}

func TestConcurrentPlace(t *testing.T) {
	r := NewRenderer()
	base := placement(t, "Marker", 'x', 0, 0)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				p := base
				p.X, p.Y = float64(j*14), float64(i*22)
				r.Place(p)
			}
		}(i)
	}
	wg.Wait()
	if got := r.Stamped(); got != 80 {
		t.Fatalf("expected 80 stamps, got %d", got)
	}
}

func TestDefaultsAndUnitConversion(t *testing.T) {
	w, h := NewRenderer().Size()
	if w != DefaultWidth || h != DefaultHeight {
		t.Fatalf("unexpected default size %gx%g", w, h)
	}
	if diff := math.Abs(toMm(96) - 25.4); diff > 1e-9 {
		t.Fatalf("96px should be 25.4mm, got %g", toMm(96))
	}
	if diff := math.Abs(toPt(96) - 72); diff > 1e-9 {
		t.Fatalf("96px should be 72pt, got %g", toPt(96))
	}
}
