package govim

import (
	"errors"
	"testing"
)

// changeAt makes a one-character change at lnum, col.
func changeAt(e *GoEngine, lnum, col int, begin bool) {
	if begin {
		e.BeginChange()
	}
	e.CursorSetPosition(lnum, col)
	e.InsCharBytes("x")
}

func TestChangelistEntries(t *testing.T) {
	e := newTestEngine(10, 40, numberedLines(10)...)
	changeAt(e, 2, 0, true)
	changeAt(e, 2, 3, true) // same line: replaces the entry
	changeAt(e, 5, 0, true)
	changeAt(e, 5, 2, false) // same change: replaces the entry
	changeAt(e, 8, 1, true)

	cl, idx := e.Changelist()
	want := []Pos{{Lnum: 2, Col: 3}, {Lnum: 5, Col: 2}, {Lnum: 8, Col: 1}}
	if len(cl) != len(want) {
		t.Fatalf("changelist = %v, want %v", cl, want)
	}
	for i := range want {
		if cl[i] != want[i] {
			t.Errorf("entry %d = %v, want %v", i, cl[i], want[i])
		}
	}
	if idx != len(cl) {
		t.Errorf("index = %d, want %d", idx, len(cl))
	}
	if r := e.GetMark('.', false); r.Pos != (Pos{Lnum: 8, Col: 1}) {
		t.Errorf("'. = %v, want 8:1", r.Pos)
	}
}

func TestChangelistTextwidth(t *testing.T) {
	e := newTestEngine(10, 40, "a line that is long enough for this", "b")
	e.SetOption("tw=5")
	changeAt(e, 1, 0, true)
	changeAt(e, 1, 10, true)
	if cl, _ := e.Changelist(); len(cl) != 2 {
		t.Errorf("changelist = %v, want two entries more than 'textwidth' apart", cl)
	}
}

func TestChangelistIsBounded(t *testing.T) {
	e := newTestEngine(10, 40, numberedLines(150)...)
	for lnum := 1; lnum <= 150; lnum++ {
		changeAt(e, lnum, 0, true)
	}
	cl, idx := e.Changelist()
	if len(cl) != JumpListSize || idx != JumpListSize {
		t.Fatalf("len = %d idx = %d, want %d", len(cl), idx, JumpListSize)
	}
	if cl[0].Lnum != 51 || cl[len(cl)-1].Lnum != 150 {
		t.Errorf("entries run from %d to %d, want 51 to 150", cl[0].Lnum, cl[len(cl)-1].Lnum)
	}
}

func TestChangeOlder(t *testing.T) {
	e := newTestEngine(10, 40, numberedLines(10)...)
	changeAt(e, 2, 3, true)
	changeAt(e, 5, 0, true)
	changeAt(e, 8, 1, true)

	steps := []struct {
		keys    string
		want    Pos
		wantErr error
	}{
		{"g;", Pos{Lnum: 8, Col: 1}, nil},
		{"g;", Pos{Lnum: 5, Col: 0}, nil},
		{"5g;", Pos{Lnum: 2, Col: 3}, nil},
		{"g;", Pos{Lnum: 2, Col: 3}, ErrNoChange},
		{"g,", Pos{Lnum: 5, Col: 0}, nil},
		{"9g,", Pos{Lnum: 8, Col: 1}, nil},
		{"g,", Pos{Lnum: 8, Col: 1}, ErrChangelistEnd},
	}
	for i, step := range steps {
		err := e.Normal(step.keys)
		if !errors.Is(err, step.wantErr) {
			t.Errorf("step %d %q: err = %v, want %v", i, step.keys, err, step.wantErr)
		}
		if got := e.WindowGetCurrent().Cursor(); got != step.want {
			t.Errorf("step %d %q: cursor = %v, want %v", i, step.keys, got, step.want)
		}
	}

	empty := newTestEngine(10, 40, "x")
	if _, err := empty.ChangeOlder(1); !errors.Is(err, ErrEmptyChangelist) {
		t.Errorf("empty changelist: err = %v, want %v", err, ErrEmptyChangelist)
	}
}

func TestKeepJumpsSkipsChangelist(t *testing.T) {
	e := newTestEngine(10, 40, numberedLines(5)...)
	e.KeepJumps(func() { changeAt(e, 3, 0, true) })
	if cl, _ := e.Changelist(); len(cl) != 0 {
		t.Errorf("changelist = %v, want empty", cl)
	}
	if r := e.GetMark('.', false); r.Pos.Lnum != 3 {
		t.Errorf("'. = %v, want line 3", r.Pos)
	}
}
