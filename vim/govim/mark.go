package govim

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	nMarks     = 26 // 'a - 'z and 'A - 'Z
	extraMarks = 10 // '0 - '9
)

func isLower(c byte) bool { return c >= 'a' && c <= 'z' }
func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
func isDigitByte(c byte) bool { return c >= '0' && c <= '9' }

// fileMarkIndex maps 'A - 'Z and '0 - '9 to the slot in namedfm.
func fileMarkIndex(c byte) int {
	if isDigitByte(c) {
		return int(c-'0') + nMarks
	}
	return int(c - 'A')
}

// SetMark sets mark c at the cursor of the current window.
func (e *GoEngine) SetMark(c byte) error {
	return e.SetMarkPos(c, e.currentWindow.cursor, e.currentBuffer.id)
}

// SetMarkPos sets mark c at pos in buffer bufID.
func (e *GoEngine) SetMarkPos(c byte, pos Pos, bufID int) error {
	w := e.currentWindow
	if c < ' ' || c > '~' {
		return fmt.Errorf("%w: %q", ErrInvalidMarkName, c)
	}
	if c == '\'' || c == '`' {
		if pos == w.cursor && bufID == w.buf.id {
			e.SetPcmark()
			// w.pcmark is the cursor now, keep it when checking later
			w.prevPcmark = w.pcmark
		} else {
			w.pcmark = pos
		}
		return nil
	}

	buf, err := e.BufferGet(bufID)
	if err != nil {
		return err
	}
	switch {
	case c == '"':
		buf.lastCursor = pos
	case c == '^':
		buf.lastInsert = pos
	case c == '.':
		buf.lastChange = pos
	case c == '[':
		buf.opStart = pos
	case c == ']':
		buf.opEnd = pos
	case c == '<' || c == '>':
		if c == '<' {
			buf.visual.Start = pos
		} else {
			buf.visual.End = pos
		}
		if buf.visual.Mode == 0 {
			buf.visual.Mode = 'v'
		}
	case isLower(c):
		buf.namedm[c-'a'] = pos
	case isUpper(c) || isDigitByte(c):
		i := fileMarkIndex(c)
		e.namedfm[i] = FileMark{Pos: pos, BufID: bufID}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidMarkName, c)
	}
	return nil
}

// SetVisual records the last Visual selection of the current buffer.
func (e *GoEngine) SetVisual(start, end Pos, mode byte) {
	b := e.currentBuffer
	b.visual = Visual{Start: start, End: end, Mode: mode, Curswant: e.currentWindow.curswant}
}

// SetPcmark sets the previous context mark to the cursor and pushes the
// cursor onto the jumplist. Nothing happens under :keepjumps, inside
// :global after the first time or while a mark is resolved.
func (e *GoEngine) SetPcmark() {
	if e.globalBusy || e.listcmdBusy || e.keepJumps {
		return
	}
	w := e.currentWindow
	w.prevPcmark = w.pcmark
	w.pcmark = w.cursor
	w.pushJump(FileMark{Pos: w.pcmark, BufID: w.buf.id}, e.opts.jumpStack())
}

// CheckPcmark restores the previous context mark when the cursor did not
// leave the line the '' mark was set on, or when that mark was deleted.
// Call it after SetPcmark and moving the cursor.
func (e *GoEngine) CheckPcmark() {
	w := e.currentWindow
	if w.prevPcmark.Lnum != 0 && (w.pcmark == w.cursor || w.pcmark.Lnum == 0) {
		w.pcmark = w.prevPcmark
	}
	w.prevPcmark.Lnum = 0
}

// GetMark resolves mark c for the current buffer. When changeFile is set
// and c is a file mark in another buffer, that buffer is made current and
// the result has status MarkJumped with the cursor already on the mark.
func (e *GoEngine) GetMark(c byte, changeFile bool) MarkResult {
	return e.getMarkBuf(e.currentBuffer, c, changeFile, nil)
}

// GetMarkFile resolves mark c and also returns the buffer it is in, without
// switching buffers.
func (e *GoEngine) GetMarkFile(c byte) (MarkResult, int) {
	var id int
	r := e.getMarkBuf(e.currentBuffer, c, false, &id)
	if id == 0 {
		id = e.currentBuffer.id
	}
	return r, id
}

func markResult(p Pos) MarkResult {
	if p.Lnum == 0 {
		return MarkResult{Pos: p, Status: MarkNotSet}
	}
	return MarkResult{Pos: p, Status: MarkOK}
}

func (e *GoEngine) getMarkBuf(buf *GoBuffer, c byte, changeFile bool, bufID *int) MarkResult {
	w := e.currentWindow
	switch {
	case c > '~' || c < ' ':
		return MarkResult{Status: MarkNoSuchMark}
	case c == '\'' || c == '`':
		return markResult(w.pcmark)
	case c == '"':
		return markResult(buf.lastCursor)
	case c == '^':
		return markResult(buf.lastInsert)
	case c == '.':
		return markResult(buf.lastChange)
	case c == '[':
		return markResult(buf.opStart)
	case c == ']':
		return markResult(buf.opEnd)
	case c == '{' || c == '}':
		dir := Backward
		if c == '}' {
			dir = Forward
		}
		if p, ok := e.findParagraph(w.cursor, dir, 1, 0, false); ok {
			return MarkResult{Pos: p, Status: MarkOK}
		}
		return MarkResult{Status: MarkNotSet}
	case c == '(' || c == ')':
		dir := Backward
		if c == ')' {
			dir = Forward
		}
		if p, ok := e.findSentence(w.cursor, dir, 1); ok {
			return MarkResult{Pos: p, Status: MarkOK}
		}
		return MarkResult{Status: MarkNotSet}
	case c == '<' || c == '>':
		p := visualMarkPos(buf, c)
		if buf.visual.Mode == 'V' && p.Lnum != 0 {
			if c == '<' {
				p.Col = 0
			} else {
				p.Col = MaxCol
			}
			p.Coladd = 0
		}
		return markResult(p)
	case isLower(c):
		return markResult(buf.namedm[c-'a'])
	case isUpper(c) || isDigitByte(c):
		fm := &e.namedfm[fileMarkIndex(c)]
		if fm.BufID == 0 && fm.FileName != "" {
			e.resolveFileMark(fm)
		}
		if bufID != nil {
			*bufID = fm.BufID
			return markResult(fm.Pos)
		}
		if fm.BufID == buf.id || fm.Pos.Lnum == 0 {
			return markResult(fm.Pos)
		}
		if fm.Pos.Lnum != 0 && changeFile && fm.BufID != 0 {
			pos := fm.Pos
			if err := e.getFile(fm.BufID, 1, true); err != nil {
				e.logger.Printf("mark %c: %v", c, err)
				return MarkResult{Status: MarkLoadFailed}
			}
			e.currentWindow.cursor = pos
			return MarkResult{Pos: pos, Status: MarkJumped}
		}
		return MarkResult{Status: MarkOtherFile}
	}
	return MarkResult{Status: MarkNoSuchMark}
}

// visualMarkPos returns where '< or '> jumps to: the earlier and the later
// end of the last Visual area.
func visualMarkPos(buf *GoBuffer, c byte) Pos {
	start, end := buf.visual.Start, buf.visual.End
	if ((c == '<') == start.Before(end) || end.Lnum == 0) && start.Lnum != 0 {
		return start
	}
	return end
}

// resolveFileMark turns the file name of a mark read from the history into
// a buffer, adding an unloaded buffer when needed.
func (e *GoEngine) resolveFileMark(fm *FileMark) {
	name := fm.FileName
	if strings.HasPrefix(name, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			name = filepath.Join(home, name[2:])
		}
	}
	fm.BufID = e.bufferForName(name).id
}

// CheckMark reports whether pos can be jumped to in the current buffer.
func (e *GoEngine) CheckMark(pos Pos) error {
	switch {
	case pos.Lnum <= 0:
		if pos.Lnum == 0 {
			return ErrMarkNotSet
		}
		return ErrBufferNotFound
	case pos.Lnum > e.currentBuffer.GetLineCount():
		return ErrMarkInvalidLine
	}
	return nil
}

// JumpToMark moves the cursor to mark c. With linewise the cursor goes to
// the first non-blank of the line, like the ' command; otherwise to the
// exact position, like `.
func (e *GoEngine) JumpToMark(c byte, linewise bool) error {
	w := e.currentWindow
	if c == '\'' || c == '`' {
		// the jump itself sets '' so resolve first
		r := e.GetMark(c, false)
		if err := r.Err(); err != nil {
			return err
		}
		e.SetPcmark()
		w.cursor = r.Pos
	} else {
		r := e.GetMark(c, true)
		if err := r.Err(); err != nil {
			return err
		}
		w = e.currentWindow
		if r.Status != MarkJumped {
			if err := e.CheckMark(r.Pos); err != nil {
				return err
			}
			e.SetPcmark()
			w.cursor = r.Pos
		}
	}
	if linewise {
		w.cursor.Col = 0
		w.beginLine(blWhite | blFix)
	}
	w.checkCursor()
	w.setCurswant = true
	return nil
}

// ClearAllMarks clears the buffer-local marks of buf and its changelist.
func (e *GoEngine) ClearAllMarks(buf *GoBuffer) {
	for i := range buf.namedm {
		buf.namedm[i].Lnum = 0
	}
	buf.opStart.Lnum = 0
	buf.opEnd.Lnum = 0
	buf.lastCursor = Pos{Lnum: 1}
	buf.lastInsert.Lnum = 0
	buf.lastChange.Lnum = 0
	buf.changelist = buf.changelist[:0]
	for _, w := range e.windows {
		if w.buf == buf {
			w.changelistIdx = 0
		}
	}
}

// DelMarks implements ":delmarks {marks}" and ":delmarks!". Ranges like
// "a-d" are accepted for letters and digits.
func (e *GoEngine) DelMarks(arg string, bang bool) error {
	buf := e.currentBuffer
	switch {
	case arg == "" && bang:
		e.ClearAllMarks(buf)
		return nil
	case bang:
		return ErrInvalidArgument
	case arg == "":
		return ErrArgRequired
	}

	for i := 0; i < len(arg); i++ {
		c := arg[i]
		lower, digit := isLower(c), isDigitByte(c)
		if lower || digit || isUpper(c) {
			from, to := c, c
			if i+1 < len(arg) && arg[i+1] == '-' {
				if i+2 >= len(arg) {
					return fmt.Errorf("%w: %s", ErrInvalidArgument, arg[i:])
				}
				to = arg[i+2]
				sameKind := (lower && isLower(to)) || (digit && isDigitByte(to)) ||
					(!lower && !digit && isUpper(to))
				if !sameKind || to < from {
					return fmt.Errorf("%w: %s", ErrInvalidArgument, arg[i:])
				}
				i += 2
			}
			for m := int(from); m <= int(to); m++ {
				if lower {
					buf.namedm[m-'a'].Lnum = 0
				} else {
					e.namedfm[fileMarkIndex(byte(m))] = FileMark{}
				}
			}
			continue
		}
		switch c {
		case '"':
			buf.lastCursor = Pos{}
		case '^':
			buf.lastInsert = Pos{}
		case '.':
			buf.lastChange = Pos{}
		case '[':
			buf.opStart.Lnum = 0
		case ']':
			buf.opEnd.Lnum = 0
		case '<':
			buf.visual.Start.Lnum = 0
		case '>':
			buf.visual.End.Lnum = 0
		case ' ':
		default:
			return fmt.Errorf("%w: %s", ErrInvalidArgument, arg[i:])
		}
	}
	return nil
}

// SetFileMark stores a file mark read from the history. The buffer is
// looked up when the mark is first used.
func (e *GoEngine) SetFileMark(c byte, pos Pos, fileName string) error {
	if !isUpper(c) && !isDigitByte(c) {
		return fmt.Errorf("%w: %q", ErrInvalidMarkName, c)
	}
	e.namedfm[fileMarkIndex(c)] = FileMark{Pos: pos, FileName: fileName}
	return nil
}

// FileMarks returns the file marks 'A - 'Z and '0 - '9 with their file
// names, for saving to the history.
func (e *GoEngine) FileMarks() map[byte]FileMark {
	marks := make(map[byte]FileMark)
	for i, fm := range e.namedfm {
		if fm.Pos.Lnum == 0 {
			continue
		}
		c := byte('A' + i)
		if i >= nMarks {
			c = byte('0' + i - nMarks)
		}
		if fm.BufID != 0 {
			if b, ok := e.buffers[fm.BufID]; ok {
				fm.FileName = b.name
			}
		}
		marks[c] = fm
	}
	return marks
}
