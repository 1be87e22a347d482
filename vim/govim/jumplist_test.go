package govim

import (
	"errors"
	"testing"
)

// jumpLines returns the line numbers of the jumplist of the current window.
func jumpLines(e *GoEngine) []int {
	jl, _ := e.WindowGetCurrent().Jumplist()
	lines := make([]int, len(jl))
	for i, fm := range jl {
		lines[i] = fm.Pos.Lnum
	}
	return lines
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestJumplistIsBounded(t *testing.T) {
	e := newTestEngine(10, 40, numberedLines(150)...)
	for lnum := 1; lnum <= 150; lnum++ {
		e.CursorSetPosition(lnum, 0)
		e.SetPcmark()
	}
	jl, idx := e.WindowGetCurrent().Jumplist()
	if len(jl) != JumpListSize {
		t.Fatalf("len = %d, want %d", len(jl), JumpListSize)
	}
	if idx != len(jl) {
		t.Errorf("index = %d, want %d", idx, len(jl))
	}
	if jl[0].Pos.Lnum != 51 || jl[len(jl)-1].Pos.Lnum != 150 {
		t.Errorf("entries run from %d to %d, want 51 to 150", jl[0].Pos.Lnum, jl[len(jl)-1].Pos.Lnum)
	}
}

func TestJumpOlderAndNewer(t *testing.T) {
	e := newTestEngine(10, 40, numberedLines(20)...)
	e.Normal("G5G10G")
	if got := jumpLines(e); !equalInts(got, []int{1, 20, 5}) {
		t.Fatalf("jumplist = %v, want [1 20 5]", got)
	}

	steps := []struct {
		keys    string
		want    int
		wantErr bool
	}{
		{"\x0f", 5, false},
		{"\x0f", 20, false},
		{"\x0f", 1, false},
		{"\x0f", 1, true},
		{"\t", 20, false},
		{"\t", 5, false},
		{"\t", 10, false},
		{"\t", 10, true},
		{"3\x0f", 1, false},
	}
	for i, step := range steps {
		err := e.Normal(step.keys)
		if step.wantErr != (err != nil) {
			t.Errorf("step %d %q: err = %v, wantErr %v", i, step.keys, err, step.wantErr)
		}
		if err != nil && !errors.Is(err, ErrNoJump) {
			t.Errorf("step %d: err = %v, want %v", i, err, ErrNoJump)
		}
		if got := e.CursorGetPosition()[0]; got != step.want {
			t.Errorf("step %d %q: line = %d, want %d", i, step.keys, got, step.want)
		}
	}
	// going back recorded the starting position once
	if got := jumpLines(e); !equalInts(got, []int{1, 20, 5, 10}) {
		t.Errorf("jumplist = %v, want [1 20 5 10]", got)
	}
}

func TestJumplistRemovesDuplicates(t *testing.T) {
	jumpTo := func(e *GoEngine, lines ...int) {
		for _, lnum := range lines {
			e.CursorSetPosition(lnum, 0)
			e.SetPcmark()
		}
	}

	e := newTestEngine(10, 40, numberedLines(20)...)
	jumpTo(e, 5, 8, 5)
	e.CursorSetPosition(12, 0)
	if _, err := e.JumpOlder(1); err != nil {
		t.Fatal(err)
	}
	if got := e.CursorGetPosition()[0]; got != 5 {
		t.Errorf("line = %d, want 5", got)
	}
	if got := jumpLines(e); !equalInts(got, []int{8, 5, 12}) {
		t.Errorf("jumplist = %v, want [8 5 12]", got)
	}

	t.Run("stack", func(t *testing.T) {
		e := newTestEngine(10, 40, numberedLines(20)...)
		if err := e.SetOption("jumpoptions=stack"); err != nil {
			t.Fatal(err)
		}
		jumpTo(e, 5, 8, 5)
		e.CursorSetPosition(12, 0)
		e.JumpOlder(1)
		if got := jumpLines(e); !equalInts(got, []int{5, 8, 5, 12}) {
			t.Errorf("jumplist = %v, want [5 8 5 12]", got)
		}
	})
}

func TestJumpStackDiscardsNewerEntries(t *testing.T) {
	e := newTestEngine(10, 40, numberedLines(20)...)
	e.SetOption("jop=stack")
	e.CursorSetPosition(1, 0)
	e.SetPcmark()
	e.CursorSetPosition(10, 0)
	e.SetPcmark()
	e.CursorSetPosition(20, 0)

	if _, err := e.JumpOlder(1); err != nil {
		t.Fatal(err)
	}
	if got := e.CursorGetPosition()[0]; got != 10 {
		t.Fatalf("line = %d, want 10", got)
	}
	e.CursorSetPosition(15, 0)
	e.SetPcmark()
	if got := jumpLines(e); !equalInts(got, []int{1, 10, 15}) {
		t.Errorf("jumplist = %v, want [1 10 15]", got)
	}
}

func TestKeepJumps(t *testing.T) {
	e := newTestEngine(10, 40, numberedLines(20)...)
	e.KeepJumps(func() {
		e.Normal("G")
		e.Motion("gg", 0)
	})
	if got := jumpLines(e); len(got) != 0 {
		t.Errorf("jumplist = %v, want empty", got)
	}
	e.Normal("G")
	w := e.WindowGetCurrent()
	w.ClearJumplist()
	if jl, idx := w.Jumplist(); len(jl) != 0 || idx != 0 {
		t.Errorf("after ClearJumplist: %v %d", jl, idx)
	}
	if _, err := e.JumpOlder(1); !errors.Is(err, ErrNoJump) {
		t.Errorf("JumpOlder on an empty list: err = %v", err)
	}
}

func TestJumpToOtherBuffer(t *testing.T) {
	e := newTestEngine(10, 40, numberedLines(10)...)
	first := e.BufferGetCurrent()
	e.CursorSetPosition(7, 0)
	e.SetPcmark()

	second := e.BufferNew()
	second.lines = []string{"a", "b", "c"}
	e.BufferSetCurrent(second)
	e.CursorSetPosition(2, 0)

	r, err := e.JumpOlder(1)
	if err != nil {
		t.Fatal(err)
	}
	if r.Status != MarkJumped || e.BufferGetCurrent() != first {
		t.Fatalf("status = %v, buffer = %d, want a jump to buffer %d", r.Status, e.BufferGetCurrent().GetID(), first.GetID())
	}
	if got := e.CursorGetPosition(); got != [2]int{7, 0} {
		t.Errorf("cursor = %v, want [7 0]", got)
	}

	if _, err := e.JumpNewer(1); err != nil {
		t.Fatal(err)
	}
	if e.BufferGetCurrent() != second || e.CursorGetPosition()[0] != 2 {
		t.Errorf("CTRL-I must return to line 2 of the second buffer")
	}
}
