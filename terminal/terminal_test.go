package terminal

import (
	"io"
	"strings"
	"testing"
)

func TestReadKey(t *testing.T) {
	r := NewReader(strings.NewReader("j\x1b[Aé\x1b[6~\x1b[15~\x1bOP\x1b"))
	want := []Key{
		{'j', KeyNoSpl},
		{0, KeyArrowUp},
		{'é', KeyNoSpl},
		{0, KeyPageDown},
		{0, KeyF5},
		{0, KeyF1},
		{27, KeyNoSpl},
	}
	for i, w := range want {
		got, err := r.ReadKey()
		if err != nil {
			t.Fatalf("key %d: %v", i, err)
		}
		if got != w {
			t.Errorf("key %d = %+v, want %+v", i, got, w)
		}
	}
	if _, err := r.ReadKey(); err != io.EOF {
		t.Errorf("after the input: err = %v, want EOF", err)
	}
}

func TestVimKeys(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{Key{'G', KeyNoSpl}, "G"},
		{Key{0x04, KeyNoSpl}, "\x04"},
		{Key{0, KeyArrowDown}, "j"},
		{Key{0, KeyPageUp}, "\x02"},
		{Key{0, KeyF3}, ""},
	}
	for _, tc := range tests {
		if got := tc.key.Vim(); got != tc.want {
			t.Errorf("%+v.Vim() = %q, want %q", tc.key, got, tc.want)
		}
	}
}
