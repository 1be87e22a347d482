package govim

import (
	"strings"
	"testing"
)

func TestScrolloffIsKept(t *testing.T) {
	e := newTestEngine(10, 40, numberedLines(100)...)
	if err := e.SetOption("so=3"); err != nil {
		t.Fatal(err)
	}
	w := e.WindowGetCurrent()
	keys := []string{
		"j", "j", "j", "j", "j", "j", "j", "j", "j", "j",
		"5j", "20j", "k", "k", "k", "10k", "G", "k", "k",
		"gg", "50G", "\x04", "\x04", "\x15", "zt", "zb", "zz",
		"j", "k", "30G", "12j", "7k",
	}
	for _, k := range keys {
		if err := e.Normal(k); err != nil {
			t.Fatalf("Normal(%q): %v", k, err)
		}
		cur := w.Cursor().Lnum
		top, bot := w.Topline(), w.Botline()
		if cur < top || cur >= bot {
			t.Fatalf("after %q cursor %d is outside the window %d-%d", k, cur, top, bot-1)
		}
		if top > 1 && cur-top < 3 {
			t.Errorf("after %q only %d lines above the cursor (topline %d, cursor %d)", k, cur-top, top, cur)
		}
		if bot <= 100 && bot-1-cur < 3 {
			t.Errorf("after %q only %d lines below the cursor (botline %d, cursor %d)", k, bot-1-cur, bot, cur)
		}
	}
}

func TestScrollingToCursor(t *testing.T) {
	tests := []struct {
		name    string
		so      int
		keys    string
		wantTop int
		wantCur int
	}{
		{"j past the bottom scrolls one line", 0, "10j", 2, 11},
		{"j with scrolloff", 3, "7j", 2, 8},
		{"far jump centers", 0, "50G", 46, 50},
		{"G shows the last page", 0, "G", 91, 100},
		{"gg after G", 0, "Ggg", 1, 1},
		{"k above the top scrolls", 0, "30Gztk", 29, 29},
		{"k with scrolloff", 3, "50Gztk", 46, 49},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEngine(10, 40, numberedLines(100)...)
			w := e.WindowGetCurrent()
			w.opts.Scrolloff = tc.so
			if err := e.Normal(tc.keys); err != nil {
				t.Fatal(err)
			}
			if w.Topline() != tc.wantTop || w.Cursor().Lnum != tc.wantCur {
				t.Errorf("topline %d cursor %d, want %d and %d", w.Topline(), w.Cursor().Lnum, tc.wantTop, tc.wantCur)
			}
		})
	}
}

// Scrolling to the cursor moves topline by at least 'scrolljump' lines,
// and not at all while the cursor stays in the window.
func TestScrolljump(t *testing.T) {
	tests := []struct {
		name    string
		sj      string
		keys    string
		wantTop int
		wantCur int
	}{
		{"down by one", "sj=1", "10j", 2, 11},
		{"down by scrolljump", "sj=5", "10j", 6, 11},
		{"down by a percentage", "sj=-50", "10j", 6, 11},
		{"up by scrolljump", "sj=5", "30Gztk", 25, 29},
		{"no scroll inside the window", "sj=5", "5j", 1, 6},
		{"no scroll inside a scrolled window", "sj=5", "30Gzt5j", 30, 35},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEngine(10, 40, numberedLines(100)...)
			if err := e.SetOption(tc.sj); err != nil {
				t.Fatal(err)
			}
			w := e.WindowGetCurrent()
			if err := e.Normal(tc.keys); err != nil {
				t.Fatal(err)
			}
			if w.Topline() != tc.wantTop || w.Cursor().Lnum != tc.wantCur {
				t.Errorf("topline %d cursor %d, want %d and %d", w.Topline(), w.Cursor().Lnum, tc.wantTop, tc.wantCur)
			}
		})
	}
}

func TestScrollCursorCommands(t *testing.T) {
	tests := []struct {
		keys    string
		so      int
		wantTop int
		wantCol int
	}{
		{"zt", 0, 50, 4},
		{"zt", 3, 47, 4},
		{"z\r", 0, 50, 2},
		{"zz", 0, 46, 4},
		{"z.", 0, 46, 2},
		{"zb", 0, 41, 4},
		{"z-", 0, 41, 2},
		{"zb", 2, 43, 4},
	}
	for _, tc := range tests {
		t.Run(tc.keys, func(t *testing.T) {
			lines := numberedLines(100)
			for i := range lines {
				lines[i] = "  " + lines[i]
			}
			e := newTestEngine(10, 40, lines...)
			w := e.WindowGetCurrent()
			w.opts.Scrolloff = tc.so
			w.SetCursor(Pos{Lnum: 50, Col: 4})
			if err := e.Normal(tc.keys); err != nil {
				t.Fatal(err)
			}
			if w.Topline() != tc.wantTop {
				t.Errorf("topline = %d, want %d", w.Topline(), tc.wantTop)
			}
			if got := w.Cursor(); got.Lnum != 50 || got.Col != tc.wantCol {
				t.Errorf("cursor = %v, want 50:%d", got, tc.wantCol)
			}
		})
	}

	t.Run("count", func(t *testing.T) {
		e := newTestEngine(10, 40, numberedLines(100)...)
		e.Normal("20zt")
		w := e.WindowGetCurrent()
		if w.Topline() != 20 || w.Cursor().Lnum != 20 {
			t.Errorf("topline %d cursor %d, want 20 and 20", w.Topline(), w.Cursor().Lnum)
		}
	})
}

func TestHalfpage(t *testing.T) {
	e := newTestEngine(10, 40, numberedLines(100)...)
	w := e.WindowGetCurrent()

	steps := []struct {
		keys    string
		wantTop int
		wantCur int
	}{
		{"\x04", 6, 6},
		{"\x04", 11, 11},
		{"\x15", 6, 6},
		{"\x15", 1, 1},
		{"\x15", 1, 1},
		{"3\x04", 4, 4},
		{"\x04", 7, 7}, // the count is remembered in 'scroll'
	}
	for i, step := range steps {
		e.Normal(step.keys)
		if w.Topline() != step.wantTop || w.Cursor().Lnum != step.wantCur {
			t.Errorf("step %d %q: topline %d cursor %d, want %d and %d",
				i, step.keys, w.Topline(), w.Cursor().Lnum, step.wantTop, step.wantCur)
		}
	}
	if w.Options().Scroll != 3 {
		t.Errorf("scroll = %d, want 3", w.Options().Scroll)
	}
}

func TestOnepage(t *testing.T) {
	e := newTestEngine(10, 40, numberedLines(100)...)
	w := e.WindowGetCurrent()

	if err := e.Normal("\x02"); err == nil {
		t.Error("CTRL-B at the top must fail")
	}
	if err := e.Normal("\x06"); err != nil {
		t.Fatal(err)
	}
	if w.Topline() != 9 || w.Cursor().Lnum != 9 {
		t.Errorf("after CTRL-F topline %d cursor %d, want 9 and 9", w.Topline(), w.Cursor().Lnum)
	}
	if err := e.Normal("\x02"); err != nil {
		t.Fatal(err)
	}
	if w.Topline() != 1 || w.Cursor().Lnum != 10 {
		t.Errorf("after CTRL-B topline %d cursor %d, want 1 and 10", w.Topline(), w.Cursor().Lnum)
	}

	// paging forward ends on the last line
	var err error
	for i := 0; i < 50 && err == nil; i++ {
		err = e.Normal("\x06")
	}
	if err == nil {
		t.Fatal("CTRL-F never reached the end")
	}
	if w.Cursor().Lnum != 100 {
		t.Errorf("cursor = %d, want 100", w.Cursor().Lnum)
	}
}

func TestScrollLines(t *testing.T) {
	e := newTestEngine(10, 40, numberedLines(100)...)
	w := e.WindowGetCurrent()
	w.MustRedraw()
	var redraws []RedrawType
	e.SetRedrawHandler(func(_ *Window, rt RedrawType) { redraws = append(redraws, rt) })

	e.Normal("\x05")
	if w.Topline() != 2 || w.Cursor().Lnum != 2 {
		t.Errorf("after CTRL-E topline %d cursor %d, want 2 and 2", w.Topline(), w.Cursor().Lnum)
	}
	if len(redraws) == 0 {
		t.Error("scrolling must ask for a redraw")
	}
	if got := w.MustRedraw(); got != RedrawValid {
		t.Errorf("MustRedraw = %v, want %v", got, RedrawValid)
	}
	if got := w.MustRedraw(); got != RedrawNone {
		t.Errorf("MustRedraw after reset = %v, want %v", got, RedrawNone)
	}

	e.Normal("\x19")
	if w.Topline() != 1 || w.Cursor().Lnum != 2 {
		t.Errorf("after CTRL-Y topline %d cursor %d, want 1 and 2", w.Topline(), w.Cursor().Lnum)
	}

	e.Normal("9G\x19")
	if w.Topline() != 1 || w.Cursor().Lnum != 9 {
		t.Errorf("CTRL-Y at the top: topline %d cursor %d", w.Topline(), w.Cursor().Lnum)
	}
	e.Normal("3\x05")
	if w.Topline() != 4 || w.Cursor().Lnum != 9 {
		t.Errorf("3 CTRL-E: topline %d cursor %d, want 4 and 9", w.Topline(), w.Cursor().Lnum)
	}
	e.Normal("3\x19")
	if w.Topline() != 1 || w.Cursor().Lnum != 9 {
		t.Errorf("3 CTRL-Y: topline %d cursor %d, want 1 and 9", w.Topline(), w.Cursor().Lnum)
	}
}

func TestWindowLinesHML(t *testing.T) {
	e := newTestEngine(10, 40, numberedLines(100)...)
	w := e.WindowGetCurrent()
	e.Normal("50Gzb")
	if w.Topline() != 41 {
		t.Fatalf("topline = %d, want 41", w.Topline())
	}
	tests := []struct {
		keys string
		want int
	}{
		{"H", 41},
		{"3H", 43},
		{"L", 50},
		{"2L", 49},
		{"M", 45},
	}
	for _, tc := range tests {
		t.Run(tc.keys, func(t *testing.T) {
			e.Normal(tc.keys)
			if got := w.Cursor().Lnum; got != tc.want {
				t.Errorf("%s: cursor = %d, want %d", tc.keys, got, tc.want)
			}
			if w.Topline() != 41 {
				t.Errorf("%s scrolled to %d", tc.keys, w.Topline())
			}
		})
	}
}

func TestCursColumnsWrap(t *testing.T) {
	long := strings.Repeat("abcdefghij", 5) // 50 columns
	e := newTestEngine(10, 20, "short", long, "\tx")
	w := e.WindowGetCurrent()

	tests := []struct {
		name    string
		number  bool
		cursor  Pos
		wantRow int
		wantCol int
	}{
		{"first row", false, Pos{Lnum: 2, Col: 5}, 1, 5},
		{"second row", false, Pos{Lnum: 2, Col: 25}, 2, 5},
		{"third row", false, Pos{Lnum: 2, Col: 45}, 3, 5},
		{"tab shown at its end", false, Pos{Lnum: 3, Col: 0}, 4, 7},
		{"after the tab", false, Pos{Lnum: 3, Col: 1}, 4, 8},
		{"number column", true, Pos{Lnum: 1, Col: 2}, 0, 6},
		{"number column wraps", true, Pos{Lnum: 2, Col: 20}, 2, 8},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w.opts.Number = tc.number
			w.valid.clear(validAll)
			w.SetCursor(tc.cursor)
			row, col := w.ScreenPos()
			if row != tc.wantRow || col != tc.wantCol {
				t.Errorf("screen pos = %d,%d, want %d,%d", row, col, tc.wantRow, tc.wantCol)
			}
		})
	}

	if got := w.Plines(2); got != 4 {
		t.Errorf("Plines(2) with a number column = %d, want 4", got)
	}
	w.opts.Number = false
	if got := w.Plines(2); got != 3 {
		t.Errorf("Plines(2) = %d, want 3", got)
	}
	if got := w.Plines(1); got != 1 {
		t.Errorf("Plines(1) = %d, want 1", got)
	}
}

func TestSidescroll(t *testing.T) {
	long := strings.Repeat("0123456789", 10)
	tests := []struct {
		name     string
		ss       int
		siso     int
		keys     string
		wantLeft int
		wantCol  int
	}{
		{"center when sidescroll is 0", 0, 0, "50l", 40, 10},
		{"one column at a time", 1, 0, "20l", 1, 19},
		{"sidescrolloff", 1, 3, "17l", 1, 16},
		{"back to the start", 0, 0, "50l0", 0, 0},
		{"end of line", 0, 0, "$", 89, 10},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEngine(10, 20, long)
			w := e.WindowGetCurrent()
			w.opts.Wrap = false
			w.opts.Sidescrolloff = tc.siso
			e.opts.Sidescroll = tc.ss
			e.Normal(tc.keys)
			_, col := w.ScreenPos()
			if w.Leftcol() != tc.wantLeft || col != tc.wantCol {
				t.Errorf("leftcol %d col %d, want %d and %d", w.Leftcol(), col, tc.wantLeft, tc.wantCol)
			}
		})
	}
}
