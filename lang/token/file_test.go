package token

import (
	"fmt"
	"testing"
)

func TestFormatPos(t *testing.T) {
	fs := NewFileSet()
	f0 := fs.AddFile("test", 10)

	cases := []struct {
		pos          Pos
		mode         PosMode
		withFilename bool
		want         string
	}{
		{NoPos, PosLong, true, "test:-:-"},
		{NoPos, PosOffsets, true, "-"},
		{NoPos, PosRaw, true, "0"},
		{NoPos, PosNone, true, ""},
		{f0.Pos(0), PosLong, true, "test:1:1"},
		{f0.Pos(0), PosOffsets, true, "0"},
		{f0.Pos(0), PosRaw, true, fmt.Sprintf("%d", f0.Pos(0))},
		{f0.Pos(0), PosNone, true, ""},
		{f0.Pos(1), PosLong, true, "test:1:2"},
		{f0.Pos(1), PosOffsets, true, "1"},
		{f0.Pos(0), PosLong, false, ":1:1"},
	}

	for _, c := range cases {
		t.Run(fmt.Sprintf("%d:%s:%t", c.pos, c.mode, c.withFilename), func(t *testing.T) {
			got := FormatPos(c.mode, f0, c.pos, c.withFilename)
			if got != c.want {
				t.Errorf("want %q, got %q", c.want, got)
			}
		})
	}
}
