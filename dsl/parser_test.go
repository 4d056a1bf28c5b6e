package dsl_test

import (
	"strings"
	"testing"

	"github.com/ByLCY/printer/dsl"
)

const sampleScript = `
# greeting card
canvas 480 360

defaults size small font "Sans Serif" margin 10 wrap 460

print "Hello,\\n${user.name}!" at 10, 20 size medium
print ` + "`" + `pause\P250;done` + "`" + ` font "Pixel"; print "tail"
/* block
   comment */
print "mm" at 5mm 1in wrap 0
`

func TestParseScript(t *testing.T) {
	doc, err := dsl.ParseString(sampleScript)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	kinds := make([]string, 0, len(doc.Statements))
	for _, st := range doc.Statements {
		kinds = append(kinds, st.Kind())
	}
	if got := strings.Join(kinds, ","); got != "canvas,defaults,print,print,print,print" {
		t.Fatalf("unexpected statements: %s", got)
	}

	canvas := doc.Statements[0].Canvas
	if canvas.Width != "480" || canvas.Height != "360" {
		t.Fatalf("unexpected canvas %+v", canvas)
	}

	defaults := doc.Statements[1].Defaults
	if len(defaults.Options) != 4 {
		t.Fatalf("expected 4 default options, got %d", len(defaults.Options))
	}
	if defaults.Options[1].Font == nil || string(*defaults.Options[1].Font) != "Sans Serif" {
		t.Fatalf("expected font option, got %+v", defaults.Options[1])
	}

	first := doc.Statements[2].Print
	if got := string(first.Text); got != `Hello,\n${user.name}!` {
		t.Fatalf("unexpected text %q", got)
	}
	if len(first.Options) != 2 || first.Options[0].At == nil {
		t.Fatalf("expected at + size options, got %+v", first.Options)
	}
	if first.Options[0].At.X != "10" || first.Options[0].At.Y != "20" {
		t.Fatalf("unexpected point %+v", first.Options[0].At)
	}
	if first.Options[1].Size == nil || *first.Options[1].Size != "medium" {
		t.Fatalf("unexpected size option %+v", first.Options[1])
	}
	if first.Pos.Line != 7 {
		t.Fatalf("expected print on line 7, got %d", first.Pos.Line)
	}

	raw := doc.Statements[3].Print
	if got := string(raw.Text); got != `pause\P250;done` {
		t.Fatalf("raw string should keep backslashes, got %q", got)
	}

	last := doc.Statements[5].Print
	if last.Options[0].At.X != "5mm" || last.Options[0].At.Y != "1in" {
		t.Fatalf("unexpected unit point %+v", last.Options[0].At)
	}
	if last.Options[1].Wrap == nil || *last.Options[1].Wrap != "0" {
		t.Fatalf("unexpected wrap option %+v", last.Options[1])
	}
}

func TestParseRejectsUnknownStatement(t *testing.T) {
	if _, err := dsl.ParseString(`draw "x"`); err == nil {
		t.Fatalf("expected parse error")
	}
	if _, err := dsl.ParseString(`print "x" at 1`); err == nil {
		t.Fatalf("expected parse error for incomplete point")
	}
}

func TestParseEmptyScript(t *testing.T) {
	doc, err := dsl.Parse(strings.NewReader("\n# nothing\n"))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(doc.Statements) != 0 {
		t.Fatalf("expected no statements, got %d", len(doc.Statements))
	}
}
