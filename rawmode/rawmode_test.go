package rawmode

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestNotTerminal(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "plain"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := Enable(int(f.Fd())); !errors.Is(err, ErrNotTerminal) {
		t.Errorf("Enable on a file: err = %v, want %v", err, ErrNotTerminal)
	}
	if _, err := GetWinsize(int(f.Fd())); err == nil {
		t.Error("GetWinsize on a file must fail")
	}
}
