package token

import (
	"fmt"
	"testing"
)

type span struct{ s, e Pos }

func (sp span) Span() (Pos, Pos) { return sp.s, sp.e }

func TestPosInside(t *testing.T) {
	cases := []struct {
		ref, test span
		want      bool
	}{
		{span{1, 2}, span{3, 4}, false},
		{span{1, 3}, span{3, 4}, false},
		{span{1, 4}, span{3, 4}, true},
		{span{2, 4}, span{3, 4}, true},
		{span{3, 4}, span{3, 4}, true},
		{span{4, 5}, span{3, 4}, false},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("%v-%v", c.ref, c.test), func(t *testing.T) {
			if got := PosInside(c.ref, c.test); got != c.want {
				t.Errorf("want %t, got %t", c.want, got)
			}
		})
	}
}

func TestFileSetPosition(t *testing.T) {
	fs := NewFileSet()
	f0 := fs.AddFile("a.rhai", 10)
	f1 := fs.AddFile("b.rhai", 10)

	// a.rhai: "abc\ndef\ng\n" -- lines start at offsets 0, 4, 8
	f0.AddLine(4)
	f0.AddLine(8)

	cases := []struct {
		pos      Pos
		wantFile string
		wantLine int
		wantCol  int
	}{
		{f0.Pos(0), "a.rhai", 1, 1},
		{f0.Pos(3), "a.rhai", 1, 4},
		{f0.Pos(4), "a.rhai", 2, 1},
		{f0.Pos(7), "a.rhai", 2, 4},
		{f0.Pos(8), "a.rhai", 3, 1},
		{f1.Pos(0), "b.rhai", 1, 1},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("%d", c.pos), func(t *testing.T) {
			got := fs.Position(c.pos)
			if got.Filename != c.wantFile || got.Line != c.wantLine || got.Column != c.wantCol {
				t.Errorf("Position(%d) = %+v, want {%s %d %d}", c.pos, got, c.wantFile, c.wantLine, c.wantCol)
			}
		})
	}
}

func TestFileSetFileLookup(t *testing.T) {
	fs := NewFileSet()
	f0 := fs.AddFile("a.rhai", 5)
	f1 := fs.AddFile("b.rhai", 5)

	if got := fs.File(f0.Pos(2)); got != f0 {
		t.Errorf("File(pos in a) = %v, want f0", got)
	}
	if got := fs.File(f1.Pos(2)); got != f1 {
		t.Errorf("File(pos in b) = %v, want f1", got)
	}
	if got := fs.File(NoPos); got != nil {
		t.Errorf("File(NoPos) = %v, want nil", got)
	}
}

func TestPosValidity(t *testing.T) {
	if NoPos.IsValid() {
		t.Errorf("NoPos.IsValid() = true, want false")
	}
	if !NoPos.Unknown() {
		t.Errorf("NoPos.Unknown() = false, want true")
	}
	p := Pos(1)
	if !p.IsValid() || p.Unknown() {
		t.Errorf("Pos(1) should be valid and known")
	}
}

func TestSpanIsValid(t *testing.T) {
	cases := []struct {
		name string
		span Span
		want bool
	}{
		{"both valid", Span{1, 2}, true},
		{"start unknown", Span{NoPos, 2}, false},
		{"end unknown", Span{1, NoPos}, false},
		{"zero span", Span{}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.span.IsValid(); got != c.want {
				t.Errorf("%v.IsValid() = %t, want %t", c.span, got, c.want)
			}
		})
	}
}
