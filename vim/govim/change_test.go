package govim

import (
	"errors"
	"testing"
)

func checkLines(t *testing.T, b *GoBuffer, want ...string) {
	t.Helper()
	got := b.Lines()
	if len(got) != len(want) {
		t.Fatalf("lines = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i+1, got[i], want[i])
		}
	}
}

func TestInsAndDelBytes(t *testing.T) {
	e := newTestEngine(10, 40, "héllo", "abc", "")
	b := e.BufferGetCurrent()

	e.CursorSetPosition(1, 1)
	if err := e.DelChars(1, true); err != nil {
		t.Fatal(err)
	}
	checkLines(t, b, "hllo", "abc", "")

	e.CursorSetPosition(1, 1)
	e.InsChar('é')
	checkLines(t, b, "héllo", "abc", "")
	if got := e.CursorGetPosition(); got != [2]int{1, 3} {
		t.Errorf("cursor after insert = %v, want [1 3]", got)
	}

	e.CursorSetPosition(2, 2)
	if err := e.DelBytes(5, true); err != nil {
		t.Fatal(err)
	}
	checkLines(t, b, "héllo", "ab", "")
	if got := e.CursorGetPosition(); got != [2]int{2, 1} {
		t.Errorf("deleting the last character must back up the cursor, got %v", got)
	}

	e.CursorSetPosition(3, 0)
	if err := e.DelBytes(1, true); !errors.Is(err, ErrLineOutOfRange) {
		t.Errorf("delete on an empty line: err = %v, want %v", err, ErrLineOutOfRange)
	}
	if r := e.GetMark('.', false); r.Pos != (Pos{Lnum: 2, Col: 2}) {
		t.Errorf("'. = %v, want 2:2", r.Pos)
	}
}

// An edit on a line that does not exist changes nothing.
func TestEditOnMissingLine(t *testing.T) {
	e := newTestEngine(10, 40, "abc")
	b := e.BufferGetCurrent()
	w := e.WindowGetCurrent()

	w.cursor = Pos{Lnum: 5, Col: 0}
	if err := e.InsCharBytes("x"); !errors.Is(err, ErrLineOutOfRange) {
		t.Errorf("insert: err = %v, want %v", err, ErrLineOutOfRange)
	}
	if w.cursor.Col != 0 {
		t.Errorf("insert moved the cursor to column %d", w.cursor.Col)
	}
	if e.SetIndent(4, 0) {
		t.Error("SetIndent reported a change")
	}
	checkLines(t, b, "abc")
	if b.IsModified() {
		t.Error("buffer is modified")
	}
	if r := e.GetMark('.', false); r.Err() == nil {
		t.Errorf("'. = %v, want not set", r.Pos)
	}
}

func TestSetIndent(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		size    int
		et, pi  bool
		want    string
		changed bool
		wantCol int
	}{
		{"spaces to tab", "    foo", 8, false, false, "\tfoo", true, 1},
		{"tab to spaces", "\tfoo", 4, false, false, "    foo", true, 4},
		{"add indent", "foo", 2, false, false, "  foo", true, 2},
		{"remove indent", "  foo", 0, false, false, "foo", true, 0},
		{"expandtab", "\tfoo", 8, true, false, "        foo", true, 8},
		{"mixed", "foo", 10, false, false, "\t  foo", true, 3},
		{"preserveindent", " \tfoo", 12, false, true, " \t    foo", true, 6},
		{"unchanged", "\tfoo", 8, false, false, "\tfoo", false, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEngine(10, 40, tc.line)
			b := e.BufferGetCurrent()
			opts := b.Options()
			opts.Expandtab = tc.et
			opts.PreserveIndent = tc.pi
			b.SetOptions(opts)

			if got := e.SetIndent(tc.size, SinChanged); got != tc.changed {
				t.Errorf("SetIndent returned %v, want %v", got, tc.changed)
			}
			if got := b.GetLine(1); got != tc.want {
				t.Errorf("line = %q, want %q", got, tc.want)
			}
			if got := e.CursorGetPosition()[1]; got != tc.wantCol {
				t.Errorf("cursor col = %d, want %d", got, tc.wantCol)
			}
			if got := e.GetIndent(); got != tc.size {
				t.Errorf("GetIndent = %d, want %d", got, tc.size)
			}
		})
	}
}

func TestShiftLines(t *testing.T) {
	tests := []struct {
		name  string
		sr    bool
		lines []string
		keys  string
		want  []string
	}{
		{"right", false, []string{"foo"}, ">>", []string{"    foo"}},
		{"left", false, []string{"      foo"}, "<<", []string{"  foo"}},
		{"left stops at zero", false, []string{"  foo"}, "<<", []string{"foo"}},
		{"count skips empty lines", false, []string{"a", "", "b", "c"}, "3>>", []string{"    a", "", "    b", "c"}},
		{"shiftround right", true, []string{"      foo"}, ">>", []string{"\tfoo"}},
		{"shiftround left", true, []string{"      foo"}, "<<", []string{"    foo"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEngine(10, 40, tc.lines...)
			e.SetOption("sw=4")
			if tc.sr {
				e.SetOption("sr")
			}
			if err := e.Normal(tc.keys); err != nil {
				t.Fatal(err)
			}
			checkLines(t, e.BufferGetCurrent(), tc.want...)
		})
	}

	e := newTestEngine(10, 40, "a", "b", "c")
	e.SetOption("sw=2")
	e.Normal("j2>>")
	if r := e.GetMark('[', false); r.Pos.Lnum != 2 {
		t.Errorf("'[ on line %d, want 2", r.Pos.Lnum)
	}
	if r := e.GetMark(']', false); r.Pos.Lnum != 3 {
		t.Errorf("'] on line %d, want 3", r.Pos.Lnum)
	}
	if got := e.CursorGetPosition(); got != [2]int{2, 2} {
		t.Errorf("cursor = %v, want [2 2]", got)
	}
}

func TestFixIndentRange(t *testing.T) {
	e := newTestEngine(20, 40,
		"int f(void)",
		"{",
		"if (x)",
		"y();",
		"else {",
		"z();",
		"",
		"}",
		"}")
	e.SetOption("sw=4")
	b := e.BufferGetCurrent()

	if err := e.Normal("=G"); err != nil {
		t.Fatal(err)
	}
	checkLines(t, b,
		"int f(void)",
		"{",
		"    if (x)",
		"\ty();",
		"    else {",
		"\tz();",
		"",
		"    }",
		"}")
	if r := e.GetMark(']', false); r.Pos.Lnum != 9 {
		t.Errorf("'] on line %d, want 9", r.Pos.Lnum)
	}

	e.SetOption("et")
	n, err := e.FixIndentRange(4, 6)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 || b.GetLine(4) != "        y();" {
		t.Errorf("changed %d lines, line 4 = %q", n, b.GetLine(4))
	}
	if _, err := e.FixIndentRange(5, 20); !errors.Is(err, ErrLineOutOfRange) {
		t.Errorf("range past the end: err = %v", err)
	}

	e.CursorSetPosition(3, 0)
	b.ReplaceLine(3, "if (x)")
	e.Normal("==")
	if got := b.GetLine(3); got != "    if (x)" {
		t.Errorf("after == line 3 = %q", got)
	}
}

func TestOpenLineWithCindent(t *testing.T) {
	e := newTestEngine(10, 40, "int main() {")
	e.SetOption("cin")
	e.SetOption("sw=4")
	b := e.BufferGetCurrent()

	if err := e.Normal("oreturn 0;\x1b"); err != nil {
		t.Fatal(err)
	}
	checkLines(t, b, "int main() {", "    return 0;")

	if err := e.Normal("o}\x1b"); err != nil {
		t.Fatal(err)
	}
	checkLines(t, b, "int main() {", "    return 0;", "}")
	if got := e.CursorGetPosition(); got != [2]int{3, 0} {
		t.Errorf("cursor = %v, want [3 0]", got)
	}

	if err := e.Normal("ggOint x;\x1b"); err != nil {
		t.Fatal(err)
	}
	checkLines(t, b, "int x;", "int main() {", "    return 0;", "}")
}

func TestInsertReturnSplitsLine(t *testing.T) {
	e := newTestEngine(10, 40, "if (a) {b;}")
	e.SetOption("cin")
	e.SetOption("sw=4")
	b := e.BufferGetCurrent()

	e.CursorSetPosition(1, 8)
	if err := e.Normal("i\r\x1b"); err != nil {
		t.Fatal(err)
	}
	checkLines(t, b, "if (a) {", "    b;}")

	e.CursorSetPosition(2, 6)
	if err := e.Normal("i\r\x1b"); err != nil {
		t.Fatal(err)
	}
	checkLines(t, b, "if (a) {", "    b;", "}")
}

func TestAutoindent(t *testing.T) {
	e := newTestEngine(10, 40, "  first")
	e.SetOption("ai")
	if err := e.Normal("Asecond\x1b"); err != nil {
		t.Fatal(err)
	}
	e.Normal("A\rthird\x1b")
	checkLines(t, e.BufferGetCurrent(), "  firstsecond", "  third")
}

func TestInsertBackspace(t *testing.T) {
	e := newTestEngine(10, 40, "abc")
	e.Normal("A\x7f\x7fx\x1b")
	checkLines(t, e.BufferGetCurrent(), "ax")
	e.Normal("0i\x08\x1b")
	checkLines(t, e.BufferGetCurrent(), "ax")
}

func TestDeleteLinesCommand(t *testing.T) {
	e := newTestEngine(10, 40, "1", "  2", "3", "4", "5")
	b := e.BufferGetCurrent()
	e.Normal("j3dd")
	checkLines(t, b, "1", "5")
	if got := e.CursorGetPosition(); got != [2]int{2, 0} {
		t.Errorf("cursor = %v, want [2 0]", got)
	}
	e.Normal("dd")
	checkLines(t, b, "1")
	e.Normal("dd")
	checkLines(t, b, "")
	if err := e.DeleteLines(2, 3); !errors.Is(err, ErrLineOutOfRange) {
		t.Errorf("err = %v, want %v", err, ErrLineOutOfRange)
	}
}
