package govim

import (
	"errors"
	"strings"
	"testing"
)

func TestWriteMarks(t *testing.T) {
	e := newTestEngine(10, 40, "first line", "  second line", "third")
	id := e.BufferGetCurrent().GetID()
	e.SetMarkPos('a', Pos{Lnum: 2, Col: 3}, id)
	e.SetMarkPos('B', Pos{Lnum: 3, Col: 1}, id)

	other := e.BufferNew()
	other.name = "other.c"
	other.lines = []string{"x"}
	e.SetMarkPos('C', Pos{Lnum: 1}, other.GetID())

	var out strings.Builder
	if err := e.WriteMarks(&out, ""); err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"mark line  col file/text",
		" '      1    0 first line",
		" a      2    3 second line",
		" B      3    1 third",
		" C      1    0 other.c",
		" \"      1    0 first line",
		"",
	}, "\n")
	if out.String() != want {
		t.Errorf("marks:\n%s\nwant:\n%s", out.String(), want)
	}

	entries, err := e.Marks("Ca")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 || entries[0].Name != 'a' || entries[1].Name != 'C' || entries[1].Current {
		t.Errorf("Marks(\"Ca\") = %+v", entries)
	}

	if _, err := e.Marks("xyz"); err == nil || !strings.HasPrefix(err.Error(), "E283") {
		t.Errorf("no matching marks: err = %v", err)
	}
}

func TestMarksNoneSet(t *testing.T) {
	e := newTestEngine(10, 40, "x")
	e.WindowGetCurrent().pcmark = Pos{}
	e.DelMarks("\"", false)
	if _, err := e.Marks(""); !errors.Is(err, ErrNoMarks) {
		t.Errorf("err = %v, want %v", err, ErrNoMarks)
	}
}

func TestMarkTextIsTruncated(t *testing.T) {
	e := newTestEngine(10, 20, "first line", "-")
	e.SetMarkPos('a', Pos{Lnum: 1}, e.BufferGetCurrent().GetID())
	e.SetMarkPos('b', Pos{Lnum: 9}, e.BufferGetCurrent().GetID())
	entries, err := e.Marks("ab")
	if err != nil {
		t.Fatal(err)
	}
	if entries[0].Text != "first" {
		t.Errorf("text = %q, want %q", entries[0].Text, "first")
	}
	if entries[1].Text != "-invalid-" {
		t.Errorf("text for a line past the end = %q", entries[1].Text)
	}
}

func TestWriteJumps(t *testing.T) {
	e := newTestEngine(10, 40, numberedLines(20)...)
	e.Normal("G5G")

	var out strings.Builder
	e.WriteJumps(&out)
	want := strings.Join([]string{
		" jump line  col file/text",
		"   2     1    0 line 1",
		"   1    20    0 line 20",
		">",
		"",
	}, "\n")
	if out.String() != want {
		t.Errorf("jumps:\n%s\nwant:\n%s", out.String(), want)
	}

	e.Normal("\x0f")
	out.Reset()
	e.WriteJumps(&out)
	want = strings.Join([]string{
		" jump line  col file/text",
		"   1     1    0 line 1",
		">  0    20    0 line 20",
		"   1     5    0 line 5",
		"",
	}, "\n")
	if out.String() != want {
		t.Errorf("jumps:\n%s\nwant:\n%s", out.String(), want)
	}

	entries, cur := e.Jumps()
	if cur != 1 || !entries[cur].Current || !entries[cur].InBuffer {
		t.Errorf("Jumps() current = %d, entries %+v", cur, entries)
	}
}

func TestWriteChanges(t *testing.T) {
	e := newTestEngine(10, 40, numberedLines(10)...)
	changeAt(e, 2, 0, true)
	changeAt(e, 5, 1, true)

	var out strings.Builder
	e.WriteChanges(&out)
	want := strings.Join([]string{
		"change line  col text",
		"    2     2    0 xline 2",
		"    1     5    1 lxine 5",
		">",
		"",
	}, "\n")
	if out.String() != want {
		t.Errorf("changes:\n%s\nwant:\n%s", out.String(), want)
	}

	e.Normal("g;")
	entries, cur := e.Changes()
	if cur != 1 || !entries[1].Current || entries[0].Distance != 1 {
		t.Errorf("Changes() current = %d, entries %+v", cur, entries)
	}
}
