package govim

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExLineNumber(t *testing.T) {
	e := newTestEngine(10, 40, numberedLines(10)...)
	if err := e.Execute(":5", io.Discard); err != nil {
		t.Fatal(err)
	}
	if got := e.CursorGetPosition(); got != [2]int{5, 0} {
		t.Errorf("cursor = %v, want [5 0]", got)
	}
	if r := e.GetMark('\'', false); r.Pos != (Pos{Lnum: 1}) {
		t.Errorf("'' = %v, want line 1", r.Pos)
	}
	if err := e.Execute("$", io.Discard); err != nil {
		t.Fatal(err)
	}
	if got := e.CursorGetPosition(); got != [2]int{10, 0} {
		t.Errorf("cursor = %v, want [10 0]", got)
	}
	if err := e.Execute("99", io.Discard); !errors.Is(err, ErrLineOutOfRange) {
		t.Errorf("err = %v, want %v", err, ErrLineOutOfRange)
	}
}

func TestExMarkCommands(t *testing.T) {
	e := newTestEngine(10, 40, numberedLines(10)...)
	e.CursorSetPosition(4, 2)
	tests := []struct {
		cmd  string
		mark byte
		lnum int
	}{
		{"ma x", 'x', 4},
		{"mark y", 'y', 4},
		{"kb", 'b', 4},
		{"k c", 'c', 4},
		{"7ma d", 'd', 7},
		{"2kA", 'A', 2},
	}
	for _, tc := range tests {
		t.Run(tc.cmd, func(t *testing.T) {
			if err := e.Execute(tc.cmd, io.Discard); err != nil {
				t.Fatal(err)
			}
			r := e.GetMark(tc.mark, false)
			if r.Err() != nil || r.Pos != (Pos{Lnum: tc.lnum}) {
				t.Errorf("'%c = %v %v, want line %d", tc.mark, r.Pos, r.Err(), tc.lnum)
			}
		})
	}

	if err := e.Execute("ma", io.Discard); !errors.Is(err, ErrArgRequired) {
		t.Errorf("no mark name: err = %v", err)
	}
	if err := e.Execute("delm x-y", io.Discard); err != nil {
		t.Fatal(err)
	}
	for _, c := range []byte("xy") {
		if r := e.GetMark(c, false); r.Status != MarkNotSet {
			t.Errorf("'%c still set after :delm", c)
		}
	}
	if err := e.Execute("delm!", io.Discard); err != nil {
		t.Fatal(err)
	}
	if r := e.GetMark('b', false); r.Status != MarkNotSet {
		t.Error("'b still set after :delm!")
	}
	if r := e.GetMark('A', false); r.Status == MarkNotSet {
		t.Error(":delm! must keep file marks")
	}
}

func TestExListings(t *testing.T) {
	e := newTestEngine(10, 40, numberedLines(10)...)
	e.Normal("5G")

	var out strings.Builder
	if err := e.Execute("ju", &out); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out.String(), " jump line") || !strings.Contains(out.String(), "line 1\n>\n") {
		t.Errorf(":ju output:\n%s", out.String())
	}

	out.Reset()
	if err := e.Execute("marks '", &out); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), " '      1    0 line 1") {
		t.Errorf(":marks output:\n%s", out.String())
	}

	if err := e.Execute("cle", io.Discard); err != nil {
		t.Fatal(err)
	}
	if jl, _ := e.WindowGetCurrent().Jumplist(); len(jl) != 0 {
		t.Errorf("jumplist after :cle = %v", jl)
	}

	out.Reset()
	if err := e.Execute("changes", &out); err != nil {
		t.Fatal(err)
	}
	if out.String() != "change line  col text\n>\n" {
		t.Errorf(":changes output:\n%s", out.String())
	}
}

func TestExKeepjumpsAndLockmarks(t *testing.T) {
	e := newTestEngine(10, 40, numberedLines(5)...)
	if err := e.Execute("keepj normal G", io.Discard); err != nil {
		t.Fatal(err)
	}
	if got := e.CursorGetPosition(); got[0] != 5 {
		t.Errorf("cursor line = %d, want 5", got[0])
	}
	if jl, _ := e.WindowGetCurrent().Jumplist(); len(jl) != 0 {
		t.Errorf(":keepjumps added jumps: %v", jl)
	}

	e.SetMarkPos('a', Pos{Lnum: 3}, e.BufferGetCurrent().GetID())
	if err := e.Execute("lockmarks 1d", io.Discard); err != nil {
		t.Fatal(err)
	}
	if r := e.GetMark('a', false); r.Pos.Lnum != 3 {
		t.Errorf("'a moved to %d under :lockmarks", r.Pos.Lnum)
	}
	if err := e.Execute("1d", io.Discard); err != nil {
		t.Fatal(err)
	}
	if r := e.GetMark('a', false); r.Pos.Lnum != 2 {
		t.Errorf("'a = %d, want 2", r.Pos.Lnum)
	}
}

func TestExEditing(t *testing.T) {
	tests := []struct {
		cmd     string
		want    []string
		wantErr bool
	}{
		{"2,3>", []string{"line 1", "  line 2", "  line 3", "line 4", "line 5", "line 6"}, false},
		{"5,2d", []string{"line 1", "line 6"}, false},
		{"%d", []string{""}, false},
		{"9d", nil, true},
		{"foo", nil, true},
	}
	for _, tc := range tests {
		t.Run(tc.cmd, func(t *testing.T) {
			e := newTestEngine(10, 40, numberedLines(6)...)
			if err := e.Execute("set sw=2 et", io.Discard); err != nil {
				t.Fatal(err)
			}
			err := e.Execute(tc.cmd, io.Discard)
			if tc.wantErr {
				if err == nil {
					t.Error("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			checkLines(t, e.BufferGetCurrent(), tc.want...)
		})
	}

	e := newTestEngine(10, 40, "x")
	if err := e.Execute("foo", io.Discard); err == nil || !strings.HasPrefix(err.Error(), "E492") {
		t.Errorf("unknown command: err = %v", err)
	}
}

func TestExEditAndWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.c")
	if err := os.WriteFile(path, []byte("int a;\r\nint b;\r\nint c;\r\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	e := newTestEngine(10, 40)
	if err := e.Execute("e "+path, io.Discard); err != nil {
		t.Fatal(err)
	}
	b := e.BufferGetCurrent()
	if b.GetName() != path {
		t.Errorf("name = %q, want %q", b.GetName(), path)
	}
	checkLines(t, b, "int a;", "int b;", "int c;")

	if err := e.Execute("2d", io.Discard); err != nil {
		t.Fatal(err)
	}
	if !b.IsModified() {
		t.Error("buffer must be modified after :d")
	}
	if err := e.Execute("w", io.Discard); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "int a;\nint c;\n" {
		t.Errorf("written %q", data)
	}
	if b.IsModified() {
		t.Error("buffer still modified after :w")
	}

	noName := newTestEngine(10, 40, "x")
	if err := noName.Execute("w", io.Discard); err == nil {
		t.Error(":w without a file name must fail")
	}
}
