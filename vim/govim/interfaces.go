package govim

import (
	"io"

	"github.com/slzatz/vimcore/vim/cindent"
)

// LineStore is the line storage the editing primitives work on. Line
// numbers are 1-based; a store always has at least one line.
type LineStore interface {
	GetLine(lnum int) string
	GetLineCount() int
	ReplaceLine(lnum int, text string) error
	AppendLine(lnum int, text string) error
	DeleteLine(lnum int) error
}

// Editor is what a front end needs from the engine
type Editor interface {
	BufferOpen(filename string, lnum int) (*GoBuffer, error)
	BufferGetCurrent() *GoBuffer
	WindowGetCurrent() *Window

	Input(s string)
	Normal(keys string) error
	Execute(cmd string, out io.Writer) error
	SetOption(arg string) error

	GetMode() int
	CursorGetPosition() [2]int
	CursorSetPosition(row, col int)
}

var (
	_ LineStore     = (*GoBuffer)(nil)
	_ cindent.Lines = (*GoBuffer)(nil)
	_ Editor        = (*GoEngine)(nil)
)
