package shada

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kr/pretty"

	"github.com/slzatz/vimcore/vim/govim"
)

func openTestStore(t *testing.T, path string) *Store {
	t.Helper()
	s, err := Open(Config{Driver: "sqlite", SQLite: path})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	if err := s.Init(context.Background()); err != nil {
		t.Fatal(err)
	}
	return s
}

func writeFile(t *testing.T, dir, name string, lines int) string {
	t.Helper()
	var sb strings.Builder
	for i := 1; i <= lines; i++ {
		sb.WriteString("int x;\n")
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

type jump struct {
	File string
	Pos  govim.Pos
}

func jumpsOf(list []govim.FileMark) []jump {
	out := make([]jump, len(list))
	for i, fm := range list {
		out[i] = jump{fm.FileName, fm.Pos}
	}
	return out
}

func TestInitIsRepeatable(t *testing.T) {
	s := openTestStore(t, "file::memory:")
	if err := s.Init(context.Background()); err != nil {
		t.Errorf("second Init: %v", err)
	}
	if _, _, err := s.LastSession(context.Background()); !errors.Is(err, ErrNoSession) {
		t.Errorf("empty store: err = %v, want %v", err, ErrNoSession)
	}
}

func TestSaveAndRestore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	a := writeFile(t, dir, "a.c", 10)
	b := writeFile(t, dir, "b.c", 5)
	s := openTestStore(t, "file::memory:")

	e1 := govim.NewEngine()
	if _, err := e1.BufferOpen(a, 1); err != nil {
		t.Fatal(err)
	}
	e1.CursorSetPosition(3, 1)
	if err := e1.SetMark('A'); err != nil {
		t.Fatal(err)
	}
	e1.CursorSetPosition(5, 2)
	if err := e1.SetMark('a'); err != nil {
		t.Fatal(err)
	}
	e1.BeginChange()
	e1.CursorSetPosition(2, 0)
	e1.InsCharBytes("x")
	if err := e1.Normal("7G"); err != nil {
		t.Fatal(err)
	}
	if _, err := e1.BufferOpen(b, 4); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(ctx, e1); err != nil {
		t.Fatal(err)
	}

	want := []Mark{{Name: 'A', File: a, Pos: govim.Pos{Lnum: 3, Col: 1}}}
	got, err := s.FileMarks(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if diff := pretty.Diff(got, want); len(diff) > 0 {
		t.Errorf("file marks differ: %v", diff)
	}

	e2 := govim.NewEngine()
	if err := s.Restore(ctx, e2); err != nil {
		t.Fatal(err)
	}
	fm, ok := e2.FileMarks()['A']
	if !ok || fm.FileName != a || fm.Pos != (govim.Pos{Lnum: 3, Col: 1}) {
		t.Errorf("restored 'A = %+v", fm)
	}
	restored, _ := e2.WindowGetCurrent().Jumplist()
	if diff := pretty.Diff(jumpsOf(restored), jumpsOf(e1.JumplistFiles())); len(diff) > 0 {
		t.Errorf("jumplist differs: %v", diff)
	}

	buf, err := e2.BufferOpen(a, 1)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.RestoreBuffer(ctx, e2, buf); err != nil {
		t.Fatal(err)
	}
	if r := e2.GetMark('a', false); r.Err() != nil || r.Pos != (govim.Pos{Lnum: 5, Col: 2}) {
		t.Errorf("restored 'a = %v %v", r.Pos, r.Err())
	}
	if r := e2.GetMark('.', false); r.Pos != (govim.Pos{Lnum: 2, Col: 0}) {
		t.Errorf("restored '. = %v", r.Pos)
	}
	changes, idx := e2.Changelist()
	if len(changes) != 1 || changes[0] != (govim.Pos{Lnum: 2, Col: 0}) || idx != 1 {
		t.Errorf("changelist = %v %d", changes, idx)
	}
	if r := e2.GetMark('A', false); r.Err() != nil || r.Pos.Lnum != 3 {
		t.Errorf("'A in its own file = %v %v", r.Pos, r.Err())
	}
}

func TestSessionsShareFileMarks(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	a := writeFile(t, dir, "a.c", 4)
	db := filepath.Join(dir, "history.db")

	first := openTestStore(t, db)
	e1 := govim.NewEngine()
	if _, err := e1.BufferOpen(a, 2); err != nil {
		t.Fatal(err)
	}
	e1.SetMark('A')
	if err := first.Save(ctx, e1); err != nil {
		t.Fatal(err)
	}

	second := openTestStore(t, db)
	if second.Session() == first.Session() {
		t.Fatal("stores must not share a session id")
	}
	e2 := govim.NewEngine()
	if _, err := e2.BufferOpen(a, 4); err != nil {
		t.Fatal(err)
	}
	e2.SetMark('B')
	if err := second.Save(ctx, e2); err != nil {
		t.Fatal(err)
	}

	want := []Mark{
		{Name: 'A', File: a, Pos: govim.Pos{Lnum: 2}},
		{Name: 'B', File: a, Pos: govim.Pos{Lnum: 4}},
	}
	got, err := second.FileMarks(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if diff := pretty.Diff(got, want); len(diff) > 0 {
		t.Errorf("file marks differ: %v", diff)
	}
	id, _, err := first.LastSession(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if id != second.Session() {
		t.Errorf("last session = %v, want %v", id, second.Session())
	}
}

func TestOpenErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want error
	}{
		{"no sqlite file", Config{Driver: "sqlite"}, ErrNoDatabase},
		{"unknown driver", Config{Driver: "mysql", SQLite: "x.db"}, ErrUnknownDriver},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Open(tc.cfg); !errors.Is(err, tc.want) {
				t.Errorf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestDetermineSQLiteDriver(t *testing.T) {
	cgo := SQLiteDriverModernC
	if IsCGOSQLiteAvailable() {
		cgo = SQLiteDriverMattn
	}
	tests := []struct {
		args []string
		want SQLiteDriver
	}{
		{nil, SQLiteDriverModernC},
		{[]string{"--go-sqlite"}, SQLiteDriverModernC},
		{[]string{"--cgo-sqlite"}, cgo},
		{[]string{"view", "--cgo-sqlite", "a.c"}, cgo},
	}
	for _, tc := range tests {
		if got := DetermineSQLiteDriver(tc.args); got != tc.want {
			t.Errorf("DetermineSQLiteDriver(%q) = %v, want %v", tc.args, got, tc.want)
		}
	}
	if SQLiteDriverModernC.DriverName() != "sqlite" || SQLiteDriverMattn.DriverName() != "sqlite3" {
		t.Error("wrong sql.Open driver names")
	}
}
