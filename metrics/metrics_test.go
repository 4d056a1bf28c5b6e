package metrics

import (
	"errors"
	"math"
	"testing"

	"github.com/ByLCY/printer/printerr"
)

func TestSizesAreOrderedAndComplete(t *testing.T) {
	sizes := Sizes()
	if len(sizes) != 6 {
		t.Fatalf("expected 6 size tags, got %d", len(sizes))
	}
	for i := 1; i < len(sizes); i++ {
		prev, cur := sizes[i-1], sizes[i]
		if cur.GlyphWidth <= prev.GlyphWidth || cur.GlyphHeight <= prev.GlyphHeight || cur.LineHeight <= prev.LineHeight {
			t.Fatalf("size %s is not larger than %s", cur.Tag, prev.Tag)
		}
	}
	for _, s := range sizes {
		if s.LineHeight < s.GlyphHeight {
			t.Fatalf("size %s: line height %g below glyph height %g", s.Tag, s.LineHeight, s.GlyphHeight)
		}
		if diff := math.Abs(s.Scale - s.GlyphHeight/CostumeHeight); diff > 1e-9 {
			t.Fatalf("size %s: unexpected scale %g", s.Tag, s.Scale)
		}
	}
}

func TestLookupSize(t *testing.T) {
	s, err := LookupSize("medium")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.GlyphWidth != 10 || s.GlyphHeight != 13 || s.LineHeight != 16 {
		t.Fatalf("unexpected medium metrics: %+v", s)
	}
	for _, bad := range []string{"", "Medium", "enormous", " medium"} {
		_, err := LookupSize(bad)
		if !errors.Is(err, printerr.ErrInvalidSize) {
			t.Fatalf("LookupSize(%q): expected InvalidSize, got %v", bad, err)
		}
	}
}

func TestLookupTypefaceIsCaseSensitive(t *testing.T) {
	tf, err := LookupTypeface("Sans Serif")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tf.ID != "sans-serif" {
		t.Fatalf("unexpected id %q", tf.ID)
	}
	for _, bad := range []string{"sans serif", "SansSerif", "sans-serif", "Comic"} {
		_, err := LookupTypeface(bad)
		if !errors.Is(err, printerr.ErrInvalidTypeface) {
			t.Fatalf("LookupTypeface(%q): expected InvalidTypeface, got %v", bad, err)
		}
	}
	if got := len(Typefaces()); got != 6 {
		t.Fatalf("expected 6 typefaces, got %d", got)
	}
}

func TestTablesAreCopied(t *testing.T) {
	sizes := Sizes()
	sizes[0].GlyphWidth = 999
	if s, _ := LookupSize("tiny"); s.GlyphWidth == 999 {
		t.Fatalf("Sizes must return a copy")
	}
}
