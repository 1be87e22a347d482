package cindent

import (
	"strings"
	"testing"
	"time"
)

// textLines is a Lines backed by a slice.
type textLines []string

func (t textLines) Line(lnum int) string {
	if lnum < 1 || lnum > len(t) {
		return ""
	}
	return t[lnum-1]
}

func (t textLines) LineCount() int { return len(t) }

func newTestIndenter(lines []string, sw int, cino string) *Indenter {
	opts := DefaultOptions()
	opts.Shiftwidth = sw
	opts.Cinoptions = cino
	return New(textLines(lines), opts)
}

func TestGetCIndentScenarios(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		sw    int
		cino  string
		want  int
	}{
		{"after if", []string{"if (x)", ""}, 4, "", 4},
		{"case body", []string{"switch (x) {", "case 1:", ""}, 4, "", 4},
		{"break aligns with case", []string{"switch (x) {", "case 1:", "    foo();", "break;"}, 4, "b1", 0},
		{"line comment keeps indent", []string{"   // comment", ""}, 4, "", 3},
		{"unclosed paren", []string{"foo(a,", ""}, 4, "", 4},
		{"first line", []string{"    x"}, 4, "", 0},
		{"preprocessor", []string{"int x;", "    #define A 1"}, 4, "", 0},
		{"comment middle", []string{"/*", " * text"}, 4, "", 1},
		{"comment end", []string{"/*", " * text", " */"}, 4, "", 1},
		{"close brace", []string{"void f()", "{", "    x = 1;", "}"}, 4, "", 0},
		{"function brace", []string{"void f()", "{"}, 4, "", 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := newTestIndenter(tc.lines, tc.sw, tc.cino)
			got := in.GetCIndent(Pos{Lnum: len(tc.lines), Col: 0}, false)
			if got != tc.want {
				t.Errorf("GetCIndent(%q) = %d, want %d", tc.lines, got, tc.want)
			}
		})
	}
}

// A correctly indented function must keep every indent.
func TestGetCIndentStable(t *testing.T) {
	lines := []string{
		"int main(void)",
		"{",
		"    if (x) {",
		"        y = 1;",
		"    } else {",
		"        y = 2;",
		"    }",
		"    return 0;",
		"}",
	}
	in := newTestIndenter(lines, 4, "")
	for lnum := 2; lnum <= len(lines); lnum++ {
		want := IndentOf(lines[lnum-1], 8)
		if got := in.GetCIndent(Pos{Lnum: lnum}, false); got != want {
			t.Errorf("line %d %q: got %d, want %d", lnum, lines[lnum-1], got, want)
		}
	}
}

// Re-indenting a line to its computed indent gives the same indent again.
func TestGetCIndentIdempotent(t *testing.T) {
	lines := []string{
		"switch (x) {",
		"case 1:",
		"foo();",
		"}",
	}
	in := newTestIndenter(lines, 4, "")
	first := in.GetCIndent(Pos{Lnum: 3}, false)
	lines[2] = strings.Repeat(" ", first) + strings.TrimLeft(lines[2], " ")
	if second := in.GetCIndent(Pos{Lnum: 3}, false); second != first {
		t.Errorf("indent changed from %d to %d", first, second)
	}
}

func TestInsertModeCloseParen(t *testing.T) {
	lines := []string{"foo(a,", "    )"}
	in := newTestIndenter(lines, 4, "")
	// the ')' under the cursor is ignored while inserting
	if got := in.GetCIndent(Pos{Lnum: 2, Col: 4}, true); got != 4 {
		t.Errorf("insert: got %d, want 4", got)
	}
}

func TestGetCIndentNamespaceAndExternC(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		cino  string
		want  int
	}{
		{"namespace body", []string{"namespace a {", "int q;"}, "", 4},
		{"namespace body N-s", []string{"namespace a {", "int q;"}, "N-s", 0},
		{"namespace body N2", []string{"namespace a {", "int q;"}, "N2", 6},
		{"nested namespace line", []string{"struct S {", "namespace b {"}, "N-s", 4},
		{"extern C body", []string{`extern "C" {`, "int f(void);"}, "", 4},
		{"extern C body E-s", []string{`extern "C" {`, "int f(void);"}, "E-s", 0},
		{"struct body E-s", []string{"struct S {", "int x;"}, "E-s", 4},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := newTestIndenter(tc.lines, 4, tc.cino)
			got := in.GetCIndent(Pos{Lnum: len(tc.lines)}, false)
			if got != tc.want {
				t.Errorf("GetCIndent(%q) with cino %q = %d, want %d", tc.lines, tc.cino, got, tc.want)
			}
		})
	}
}

func TestGetCIndentBaseclass(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		cino  string
		want  int
	}{
		{"base class list", []string{"class A :", "public B"}, "", 4},
		{"base class list i2", []string{"class A :", "public B"}, "i2", 2},
		{"constructor initializer", []string{"A::A() :", "b(1)"}, "", 4},
		{"constructor initializer i2", []string{"A::A() :", "b(1)"}, "i2", 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := newTestIndenter(tc.lines, 4, tc.cino)
			got := in.GetCIndent(Pos{Lnum: len(tc.lines)}, false)
			if got != tc.want {
				t.Errorf("GetCIndent(%q) with cino %q = %d, want %d", tc.lines, tc.cino, got, tc.want)
			}
		})
	}
}

func TestIsCppBaseclass(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  bool
	}{
		{"class", []string{"class A :"}, true},
		{"struct", []string{"struct A : B"}, true},
		{"constructor", []string{"A::A() :"}, true},
		{"constructor on two lines", []string{"A::A(int x)", ": b(x)"}, true},
		{"ternary", []string{"x = a ? f() :"}, false},
		{"scope operator only", []string{"a::b c"}, false},
		{"case label", []string{"case (x):"}, false},
		{"after a statement", []string{"int x;", "y = 1"}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := newTestIndenter(tc.lines, 4, "")
			got := in.isCppBaseclass(newBaseclassCache(), len(tc.lines))
			if got != tc.want {
				t.Errorf("isCppBaseclass(%q) = %v, want %v", tc.lines, got, tc.want)
			}
		})
	}
}

// A block that starts and ends on one line must not stall the scan for
// the start of the statement.
func TestGetCIndentBlockOnOneLine(t *testing.T) {
	tests := [][]string{
		{"{", "x{\\}}", "foo();"},
		{"{", "a{b}}", "foo();"},
		{"void f()", "{", "    x{\\}}", "    foo();", ""},
	}
	for _, lines := range tests {
		in := newTestIndenter(lines, 4, "")
		done := make(chan int, 1)
		go func() {
			done <- in.GetCIndent(Pos{Lnum: len(lines)}, false)
		}()
		select {
		case got := <-done:
			if got < 0 {
				t.Errorf("GetCIndent(%q) = %d", lines, got)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("GetCIndent(%q) did not return", lines)
		}
	}
}
