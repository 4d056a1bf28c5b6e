package glyph_test

import (
	"testing"

	"github.com/ByLCY/printer/fonts"
	"github.com/ByLCY/printer/glyph"
	"github.com/ByLCY/printer/metrics"
)

func mustTypeface(t *testing.T, name string) metrics.Typeface {
	t.Helper()
	tf, err := metrics.LookupTypeface(name)
	if err != nil {
		t.Fatalf("LookupTypeface(%q): %v", name, err)
	}
	return tf
}

func TestCostumeName(t *testing.T) {
	sans := mustTypeface(t, "Sans Serif")
	cases := map[rune]string{
		'a':               "sans-serif-a",
		'7':               "sans-serif-7",
		'A':               "sans-serif-upper-A",
		'/':               "sans-serif-special-solidus",
		'-':               "sans-serif-special-hyphen-minus",
		' ':               "sans-serif-special-space",
		'€':               "sans-serif-special-euro-sign",
		'\\':              "sans-serif-special-reverse-solidus",
		glyph.Replacement: "sans-serif-replaceable",
	}
	for r, want := range cases {
		if got := glyph.CostumeName(sans, r); got != want {
			t.Fatalf("CostumeName(%q) = %q, want %q", r, got, want)
		}
	}
}

func TestCostumeCatalog(t *testing.T) {
	cat := glyph.NewCostumeCatalog()
	for _, tf := range metrics.Typefaces() {
		for _, r := range glyph.Charset {
			g, ok := cat.Lookup(tf, r)
			if !ok {
				t.Fatalf("%s: missing %q", tf.Name, r)
			}
			if g.Width != 1 || g.Rune != r || g.Name == "" {
				t.Fatalf("%s: unexpected glyph %+v", tf.Name, g)
			}
		}
		if _, ok := cat.Lookup(tf, glyph.Replacement); !ok {
			t.Fatalf("%s: missing replacement glyph", tf.Name)
		}
		if _, ok := cat.Lookup(tf, 'é'); ok {
			t.Fatalf("%s: é must not be in the catalog", tf.Name)
		}
	}
	if _, ok := cat.Lookup(metrics.Typeface{Name: "Comic"}, 'a'); ok {
		t.Fatalf("unknown typeface must not resolve")
	}
}

func TestInCharset(t *testing.T) {
	for _, r := range "aZ9 \\€" {
		if !glyph.InCharset(r) {
			t.Fatalf("%q should be in charset", r)
		}
	}
	for _, r := range []rune{'é', '\n', glyph.Replacement} {
		if glyph.InCharset(r) {
			t.Fatalf("%q should not be in charset", r)
		}
	}
}

func TestFontCatalogMeasuresProportionalWidths(t *testing.T) {
	cat, err := glyph.NewFontCatalog(fonts.All())
	if err != nil {
		t.Fatalf("NewFontCatalog: %v", err)
	}
	sans := mustTypeface(t, "Sans Serif")
	zero, ok := cat.Lookup(sans, '0')
	if !ok || zero.Width != 1 {
		t.Fatalf("reference glyph must have width 1, got %+v (found=%v)", zero, ok)
	}
	i, _ := cat.Lookup(sans, 'i')
	w, _ := cat.Lookup(sans, 'W')
	if !(i.Width < w.Width) {
		t.Fatalf("expected i (%g) narrower than W (%g)", i.Width, w.Width)
	}
	if w.Name != "sans-serif-upper-W" {
		t.Fatalf("unexpected name %q", w.Name)
	}

	pixel := mustTypeface(t, "Pixel")
	pi, _ := cat.Lookup(pixel, 'i')
	pw, _ := cat.Lookup(pixel, 'W')
	if pi.Width != pw.Width {
		t.Fatalf("monospace font should measure equal widths, got %g and %g", pi.Width, pw.Width)
	}
}

func TestFontCatalogRejectsUnknownTypeface(t *testing.T) {
	programs := fonts.All()
	programs["Comic"] = programs["Sans Serif"]
	if _, err := glyph.NewFontCatalog(programs); err == nil {
		t.Fatalf("expected error for unknown typeface")
	}
}

func TestFontCatalogRejectsGarbage(t *testing.T) {
	if _, err := glyph.NewFontCatalog(map[string][]byte{"Serif": []byte("not a font")}); err == nil {
		t.Fatalf("expected parse error")
	}
}
