package govim

import (
	"fmt"
	"os"
	"strings"

	"github.com/slzatz/vimcore/vim/cindent"
)

// Visual holds the last Visual selection of a buffer.
type Visual struct {
	Start    Pos
	End      Pos
	Mode     byte // 'v', 'V' or CTRL-V, 0 when never set
	Curswant int
}

// GoBuffer is a buffer: its lines, its buffer-local marks and its
// changelist. Line numbers are 1-based.
type GoBuffer struct {
	id       int
	lines    []string
	name     string
	loaded   bool
	modified bool
	engine   *GoEngine
	lastTick int
	opts     BufferOptions
	indenter *cindent.Indenter

	namedm     [26]Pos // 'a - 'z
	lastCursor Pos     // '"
	lastInsert Pos     // '^
	lastChange Pos     // '.
	opStart    Pos     // '[
	opEnd      Pos     // ']
	visual     Visual  // '< and '>

	changelist []Pos
	newChange  bool // the next change starts a new changelist entry
}

func newBuffer(e *GoEngine, id int) *GoBuffer {
	return &GoBuffer{
		id:         id,
		engine:     e,
		lines:      []string{""},
		loaded:     true,
		opts:       defaultBufferOptions(),
		lastCursor: Pos{Lnum: 1},
		newChange:  true,
	}
}

// GetID returns the buffer ID
func (b *GoBuffer) GetID() int {
	return b.id
}

// GetName returns the file name of the buffer
func (b *GoBuffer) GetName() string {
	return b.name
}

// GetLine returns the line at the given line number (1-based indexing)
func (b *GoBuffer) GetLine(lnum int) string {
	if lnum < 1 || lnum > len(b.lines) {
		return ""
	}
	return b.lines[lnum-1]
}

// Line is GetLine under the name the indenter expects.
func (b *GoBuffer) Line(lnum int) string { return b.GetLine(lnum) }

// Lines returns a copy of all lines in the buffer
func (b *GoBuffer) Lines() []string {
	lines := make([]string, len(b.lines))
	copy(lines, b.lines)
	return lines
}

// GetLineCount returns the number of lines in the buffer
func (b *GoBuffer) GetLineCount() int {
	return len(b.lines)
}

// LineCount is GetLineCount under the name the indenter expects.
func (b *GoBuffer) LineCount() int { return len(b.lines) }

// IsModified returns whether the buffer has been modified
func (b *GoBuffer) IsModified() bool {
	return b.modified
}

// GetLastChangedTick returns the change tick, incremented on every change
func (b *GoBuffer) GetLastChangedTick() int {
	return b.lastTick
}

// Options returns the buffer-local options.
func (b *GoBuffer) Options() BufferOptions { return b.opts }

// SetOptions replaces the buffer-local options.
func (b *GoBuffer) SetOptions(opts BufferOptions) {
	b.opts = opts
	b.indenter = nil
}

// isEmpty reports whether the buffer has a single empty line.
func (b *GoBuffer) isEmpty() bool {
	return len(b.lines) == 1 && b.lines[0] == ""
}

// ReplaceLine replaces the text of line lnum. Marks are not touched.
func (b *GoBuffer) ReplaceLine(lnum int, text string) error {
	if lnum < 1 || lnum > len(b.lines) {
		return fmt.Errorf("%w: line %d", ErrLineOutOfRange, lnum)
	}
	b.lines[lnum-1] = text
	b.markModified()
	return nil
}

// AppendLine inserts text as a new line after lnum; lnum 0 inserts before
// the first line. Marks are not touched.
func (b *GoBuffer) AppendLine(lnum int, text string) error {
	if lnum < 0 || lnum > len(b.lines) {
		return fmt.Errorf("%w: line %d", ErrLineOutOfRange, lnum)
	}
	b.lines = append(b.lines, "")
	copy(b.lines[lnum+1:], b.lines[lnum:])
	b.lines[lnum] = text
	b.markModified()
	return nil
}

// DeleteLine removes line lnum. The buffer always keeps one line. Marks
// are not touched.
func (b *GoBuffer) DeleteLine(lnum int) error {
	if lnum < 1 || lnum > len(b.lines) {
		return fmt.Errorf("%w: line %d", ErrLineOutOfRange, lnum)
	}
	if len(b.lines) == 1 {
		b.lines[0] = ""
	} else {
		b.lines = append(b.lines[:lnum-1], b.lines[lnum:]...)
	}
	b.markModified()
	return nil
}

// Indenter returns the C indenter for the buffer, created on first use.
func (b *GoBuffer) Indenter() *cindent.Indenter {
	if b.indenter == nil {
		b.indenter = cindent.New(b, b.opts.indentOptions())
		if b.engine != nil {
			b.indenter.SetLogger(b.engine.logger)
		}
	}
	return b.indenter
}

// Mark the buffer as modified and increment the change tick
func (b *GoBuffer) markModified() {
	// Set modified flag to trigger UI updates
	b.modified = true

	// Increment last tick to indicate change
	b.lastTick++
}

// Load a file into the buffer
func (b *GoBuffer) loadFile(filename string) error {
	b.name = filename
	b.loaded = true
	b.modified = false

	content, err := os.ReadFile(filename)
	if err != nil {
		// File couldn't be read: keep an empty buffer with the right name
		b.lines = []string{""}
		return err
	}

	contentStr := string(content)

	// Check if the file contains CR+LF line endings (Windows)
	if strings.Contains(contentStr, "\r\n") {
		contentStr = strings.ReplaceAll(contentStr, "\r\n", "\n")
	}
	contentStr = strings.TrimSuffix(contentStr, "\n")

	b.lines = strings.Split(contentStr, "\n")
	return nil
}

// Write saves the buffer to its file.
func (b *GoBuffer) Write() error {
	if b.name == "" {
		return fmt.Errorf("E32: No file name")
	}
	data := strings.Join(b.lines, "\n") + "\n"
	if err := os.WriteFile(b.name, []byte(data), 0o644); err != nil {
		return err
	}
	b.modified = false
	return nil
}
