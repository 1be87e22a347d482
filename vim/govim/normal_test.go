package govim

import (
	"errors"
	"testing"
)

func TestBasicMotions(t *testing.T) {
	tests := []struct {
		keys     string
		wantLine int
		wantCol  int
	}{
		{"h", 2, 4},
		{"l", 2, 6},
		{"k", 1, 5},
		{"j", 3, 5},
		{"0", 2, 0},
		{"$", 2, 17},
		{"^", 2, 0},
		{"w", 2, 9},
		{"e", 2, 7},
		{"b", 2, 0},
		{"G", 4, 0},
		{"gg", 1, 0},
		{"3l", 2, 8},
		{"2w", 2, 12},
		{"2j", 4, 5},
		{"3G", 3, 0},
		{"10h", 2, 0},
	}

	for _, tc := range tests {
		t.Run(tc.keys, func(t *testing.T) {
			e := newTestEngine(10, 40, "Line one", "Line two is longer", "Line three", "Line four")
			e.CursorSetPosition(2, 5)
			if err := e.Normal(tc.keys); err != nil {
				t.Fatalf("Normal(%q): %v", tc.keys, err)
			}
			pos := e.CursorGetPosition()
			if pos[0] != tc.wantLine || pos[1] != tc.wantCol {
				t.Errorf("after %q cursor = %v, want [%d %d]", tc.keys, pos, tc.wantLine, tc.wantCol)
			}
		})
	}
}

func TestCurswantKeptOverShortLines(t *testing.T) {
	e := newTestEngine(10, 40, "a long line here", "ab", "another long line")
	e.CursorSetPosition(1, 10)
	e.Normal("j")
	if got := e.CursorGetPosition(); got != [2]int{2, 1} {
		t.Fatalf("after j cursor = %v, want [2 1]", got)
	}
	e.Normal("j")
	if got := e.CursorGetPosition(); got != [2]int{3, 10} {
		t.Errorf("after jj cursor = %v, want [3 10]", got)
	}

	e.Normal("$k")
	if got := e.CursorGetPosition(); got != [2]int{2, 1} {
		t.Errorf("after $k cursor = %v, want [2 1]", got)
	}
	e.Normal("k")
	if got := e.CursorGetPosition(); got != [2]int{1, 15} {
		t.Errorf("$ must stick to the end of line, cursor = %v", got)
	}
}

func TestMatchingBracketMotion(t *testing.T) {
	e := newTestEngine(10, 40,
		"if (a[1] == b) {",
		"    s = \"(\";",
		"}")
	tests := []struct {
		name  string
		start Pos
		want  Pos
	}{
		{"open paren", Pos{Lnum: 1, Col: 3}, Pos{Lnum: 1, Col: 13}},
		{"close paren", Pos{Lnum: 1, Col: 13}, Pos{Lnum: 1, Col: 3}},
		{"before a bracket", Pos{Lnum: 1, Col: 0}, Pos{Lnum: 1, Col: 13}},
		{"square", Pos{Lnum: 1, Col: 5}, Pos{Lnum: 1, Col: 7}},
		{"brace skips string", Pos{Lnum: 1, Col: 15}, Pos{Lnum: 3, Col: 0}},
		{"closing brace", Pos{Lnum: 3, Col: 0}, Pos{Lnum: 1, Col: 15}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e.WindowGetCurrent().SetCursor(tc.start)
			e.Normal("%")
			if got := e.WindowGetCurrent().Cursor(); got != tc.want {
				t.Errorf("%% from %v = %v, want %v", tc.start, got, tc.want)
			}
		})
	}

	// % is a jump
	if e.WindowGetCurrent().pcmark != (Pos{Lnum: 3, Col: 0}) {
		t.Errorf("pcmark = %v, want the start of the last jump", e.WindowGetCurrent().pcmark)
	}
}

func TestUnmatchedBracketCommands(t *testing.T) {
	e := newTestEngine(10, 40,
		"int f(int a) {",
		"    if (x) {",
		"        g(a, (b));",
		"    }",
		"}")
	tests := []struct {
		keys  string
		start Pos
		want  Pos
	}{
		{"[{", Pos{Lnum: 3, Col: 8}, Pos{Lnum: 2, Col: 11}},
		{"]}", Pos{Lnum: 3, Col: 8}, Pos{Lnum: 4, Col: 4}},
		{"[(", Pos{Lnum: 3, Col: 10}, Pos{Lnum: 3, Col: 9}},
		{"[(", Pos{Lnum: 3, Col: 14}, Pos{Lnum: 3, Col: 13}},
		{"])", Pos{Lnum: 3, Col: 11}, Pos{Lnum: 3, Col: 16}},
	}
	for _, tc := range tests {
		t.Run(tc.keys, func(t *testing.T) {
			e.WindowGetCurrent().SetCursor(tc.start)
			e.Normal(tc.keys)
			if got := e.WindowGetCurrent().Cursor(); got != tc.want {
				t.Errorf("%s from %v = %v, want %v", tc.keys, tc.start, got, tc.want)
			}
		})
	}
}

func TestParagraphMotions(t *testing.T) {
	lines := []string{"first para", "line two", "", "second para", "more", "", "last"}
	tests := []struct {
		keys  string
		start Pos
		want  Pos
	}{
		{"}", Pos{Lnum: 1}, Pos{Lnum: 3}},
		{"2}", Pos{Lnum: 1}, Pos{Lnum: 6}},
		{"}", Pos{Lnum: 6}, Pos{Lnum: 7, Col: 3}},
		{"{", Pos{Lnum: 5, Col: 2}, Pos{Lnum: 3}},
		{"{", Pos{Lnum: 2, Col: 2}, Pos{Lnum: 1}},
	}
	for _, tc := range tests {
		t.Run(tc.keys, func(t *testing.T) {
			e := newTestEngine(10, 40, lines...)
			e.WindowGetCurrent().SetCursor(tc.start)
			e.Normal(tc.keys)
			if got := e.WindowGetCurrent().Cursor(); got != tc.want {
				t.Errorf("%s from %v = %v, want %v", tc.keys, tc.start, got, tc.want)
			}
		})
	}
}

func TestInsertMode(t *testing.T) {
	e := newTestEngine(10, 40, "hello")
	e.CursorSetPosition(1, 4)
	e.Normal("a world\x1b")
	if got := e.BufferGetCurrent().GetLine(1); got != "hello world" {
		t.Errorf("line = %q, want %q", got, "hello world")
	}
	if e.GetMode() != ModeNormal {
		t.Error("Esc must leave Insert mode")
	}
	if got := e.CursorGetPosition(); got != [2]int{1, 10} {
		t.Errorf("cursor = %v, want [1 10]", got)
	}
	if got := e.BufferGetCurrent().lastInsert; got != (Pos{Lnum: 1, Col: 11}) {
		t.Errorf("'^ = %v, want 1:11", got)
	}

	e.Normal("0x")
	if got := e.BufferGetCurrent().GetLine(1); got != "ello world" {
		t.Errorf("after x line = %q", got)
	}
}

func TestNormalReportsErrors(t *testing.T) {
	e := newTestEngine(10, 40, "one", "two")
	err := e.Normal("'a")
	if !errors.Is(err, ErrMarkNotSet) {
		t.Errorf("'a without a mark: err = %v, want %v", err, ErrMarkNotSet)
	}
	if err := e.Normal("m\x01"); err == nil {
		t.Error("m with a control character must fail")
	}
	if err := e.Normal("j"); err != nil || e.LastError() != nil {
		t.Errorf("j: err = %v", err)
	}
}
