package cindent

import (
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// Lines is the read-only view of a buffer the indent engine scans.
// Line numbers are 1-based; Line returns "" for numbers outside the buffer.
type Lines interface {
	Line(lnum int) string
	LineCount() int
}

// Pos is a byte position inside a buffer line.
type Pos struct {
	Lnum int
	Col  int
}

// Before reports whether p comes before q in the buffer.
func (p Pos) Before(q Pos) bool {
	if p.Lnum != q.Lnum {
		return p.Lnum < q.Lnum
	}
	return p.Col < q.Col
}

// at returns the byte at i or 0 past the end of s, so scans can treat the
// end of a line like a NUL terminator.
func at(s string, i int) byte {
	if i < 0 || i >= len(s) {
		return 0
	}
	return s[i]
}

func isWhite(c byte) bool {
	return c == ' ' || c == '\t'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// isIDc reports whether c can be part of a C identifier.
func isIDc(c byte) bool {
	return c == '_' || isDigit(c) || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

// isWordc is the 'iskeyword' test; it is the identifier test for C buffers.
func isWordc(c byte) bool {
	return isIDc(c)
}

// skipWhite returns the index of the first non-blank byte at or after i.
func skipWhite(s string, i int) int {
	for i < len(s) && isWhite(s[i]) {
		i++
	}
	return i
}

// skipToWhite returns the index of the first blank byte at or after i.
func skipToWhite(s string, i int) int {
	for i < len(s) && !isWhite(s[i]) {
		i++
	}
	return i
}

func hasPrefixAt(s string, i int, prefix string) bool {
	if i < 0 || i > len(s) {
		return false
	}
	return len(s)-i >= len(prefix) && s[i:i+len(prefix)] == prefix
}

// lastByte returns the final byte of s or 0 for an empty line.
func lastByte(s string) byte {
	if s == "" {
		return 0
	}
	return s[len(s)-1]
}

// VirtCol returns the screen column at which byte col of line starts,
// expanding tabs to ts and measuring multibyte runes by cell width.
func VirtCol(line string, col, ts int) int {
	if ts <= 0 {
		ts = 8
	}
	vcol := 0
	for i := 0; i < len(line) && i < col; {
		c := line[i]
		if c == '\t' {
			vcol += ts - vcol%ts
			i++
			continue
		}
		if c < utf8.RuneSelf {
			vcol++
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(line[i:])
		w := runewidth.RuneWidth(r)
		if r == utf8.RuneError && size == 1 {
			w = 1
		}
		vcol += w
		i += size
	}
	return vcol
}

// IndentOf returns the width in screen columns of the leading white space of line.
func IndentOf(line string, ts int) int {
	return VirtCol(line, skipWhite(line, 0), ts)
}
