package govim

import (
	"fmt"
	"slices"
)

// Buffers returns every buffer in the order they were created.
func (e *GoEngine) Buffers() []*GoBuffer {
	out := make([]*GoBuffer, 0, len(e.buffers))
	for _, b := range e.buffers {
		out = append(out, b)
	}
	slices.SortFunc(out, func(a, b *GoBuffer) int { return a.id - b.id })
	return out
}

// LocalMarks returns the marks of b that are kept in the history: 'a - 'z,
// '" and the '^ and '. marks.
func (b *GoBuffer) LocalMarks() map[byte]Pos {
	marks := make(map[byte]Pos)
	for i, p := range b.namedm {
		if p.Lnum != 0 {
			marks[byte('a'+i)] = p
		}
	}
	for c, p := range map[byte]Pos{'"': b.lastCursor, '^': b.lastInsert, '.': b.lastChange} {
		if p.Lnum != 0 {
			marks[c] = p
		}
	}
	return marks
}

// BufferChangelist returns a copy of the changelist of b.
func (b *GoBuffer) BufferChangelist() []Pos {
	out := make([]Pos, len(b.changelist))
	copy(out, b.changelist)
	return out
}

// RestoreBuffer sets the local marks and the changelist of b read from the
// history. Marks past the end of the buffer are kept; they fail when used.
func (e *GoEngine) RestoreBuffer(b *GoBuffer, marks map[byte]Pos, changes []Pos) error {
	for c, p := range marks {
		if !isLower(c) && c != '"' && c != '^' && c != '.' {
			return fmt.Errorf("%w: %q", ErrInvalidMarkName, c)
		}
		if err := e.SetMarkPos(c, p, b.id); err != nil {
			return err
		}
	}
	if len(changes) > JumpListSize {
		changes = changes[len(changes)-JumpListSize:]
	}
	b.changelist = append(b.changelist[:0], changes...)
	for _, w := range e.windows {
		if w.buf == b {
			w.changelistIdx = len(b.changelist)
		}
	}
	e.logger.Printf("restored %d marks and %d changes for %q", len(marks), len(changes), b.name)
	return nil
}

// JumplistFiles returns the jumplist of the current window with the file
// name of each entry filled in, for saving to the history. Entries in
// buffers without a name are left out.
func (e *GoEngine) JumplistFiles() []FileMark {
	var out []FileMark
	for _, fm := range e.currentWindow.jumplist {
		if fm.Pos.Lnum == 0 {
			continue
		}
		if b, ok := e.buffers[fm.BufID]; ok {
			fm.FileName = b.name
		}
		if fm.FileName == "" {
			continue
		}
		out = append(out, fm)
	}
	return out
}

// RestoreJumplist puts the jumps read from the history in front of the
// jumplist of the current window. Their buffers are found when the
// entries are first used.
func (e *GoEngine) RestoreJumplist(jumps []FileMark) {
	w := e.currentWindow
	list := make([]FileMark, 0, len(jumps)+len(w.jumplist))
	for _, fm := range jumps {
		if fm.Pos.Lnum == 0 || fm.FileName == "" {
			continue
		}
		list = append(list, FileMark{Pos: fm.Pos, FileName: fm.FileName})
	}
	list = append(list, w.jumplist...)
	if len(list) > JumpListSize {
		list = list[len(list)-JumpListSize:]
	}
	w.jumplist = list
	w.jumplistIdx = len(list)
}
