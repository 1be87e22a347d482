package govim

import (
	"strings"

	"github.com/slzatz/vimcore/vim/cindent"
)

// changedCommon records a change of lines lnum..lnume-1 starting at column
// col that added xtra lines, and invalidates the windows showing the
// buffer.
func (e *GoEngine) changedCommon(lnum, col, lnume, xtra int) {
	b := e.currentBuffer
	e.recordChange(lnum, col)

	for _, w := range e.windows {
		if w.buf != b {
			continue
		}
		if w.cursor.Lnum > lnum {
			w.changedLineAboveCursor()
		} else if w.cursor.Lnum == lnum && w.cursor.Col >= col {
			w.changedClineBeforeCursor()
		}
		if w.botline >= lnum {
			if xtra < 0 && w.botline < lnume {
				w.invalidateBotline()
			} else {
				w.approximateBotline()
			}
		}
		w.valid.clear(validTopline)
		if xtra != 0 || lnume > lnum+1 {
			w.redrawLater(RedrawNotValid)
		} else {
			w.redrawLater(RedrawValid)
		}
	}
}

// changedBytes is called after bytes changed in line lnum from col on.
func (e *GoEngine) changedBytes(lnum, col int) {
	e.changedCommon(lnum, col, lnum+1, 0)
}

// changedLines is called after lines lnum..lnume-1 changed and xtra lines
// were added (negative: deleted). Marks must already be adjusted.
func (e *GoEngine) changedLines(lnum, col, lnume, xtra int) {
	e.changedCommon(lnum, col, lnume, xtra)
}

// AppendLines inserts lines after line lnum of the current buffer and
// moves the marks below them.
func (e *GoEngine) AppendLines(lnum int, lines []string) error {
	b := e.currentBuffer
	if lnum < 0 || lnum > b.GetLineCount() {
		return ErrLineOutOfRange
	}
	if len(lines) == 0 {
		return nil
	}
	for i, s := range lines {
		if err := b.AppendLine(lnum+i, s); err != nil {
			return err
		}
	}
	e.MarkAdjust(lnum+1, MaxLnum, len(lines), 0)
	e.changedLines(lnum+1, 0, lnum+1, len(lines))
	return nil
}

// DeleteLines deletes lines line1..line2 of the current buffer. Marks in
// the range are cleared and the ones below move up.
func (e *GoEngine) DeleteLines(line1, line2 int) error {
	b := e.currentBuffer
	if line1 < 1 || line2 < line1 || line2 > b.GetLineCount() {
		return ErrLineOutOfRange
	}
	count := line2 - line1 + 1
	for i := 0; i < count; i++ {
		if err := b.DeleteLine(line1); err != nil {
			return err
		}
	}
	e.MarkAdjust(line1, line2, MaxLnum, -count)
	e.changedLines(line1, 0, line2+1, -count)
	w := e.currentWindow
	if w.cursor.Lnum > line2 {
		w.cursor.Lnum -= count
	} else if w.cursor.Lnum >= line1 {
		w.cursor.Lnum = line1
		w.checkCursorLnum()
		w.beginLine(blWhite | blFix)
	}
	w.checkCursor()
	return nil
}

// ReplaceLine replaces line lnum of the current buffer and records the
// change.
func (e *GoEngine) ReplaceLine(lnum int, text string) error {
	if err := e.currentBuffer.ReplaceLine(lnum, text); err != nil {
		return err
	}
	e.changedBytes(lnum, 0)
	return nil
}

// InsCharBytes inserts s at the cursor of the current window and moves the
// cursor after it. Marks after the cursor on the line move right.
func (e *GoEngine) InsCharBytes(s string) error {
	w := e.currentWindow
	b := w.buf
	lnum, col := w.cursor.Lnum, w.cursor.Col
	old := b.GetLine(lnum)
	if col > len(old) {
		col = len(old)
	}
	if err := b.ReplaceLine(lnum, old[:col]+s+old[col:]); err != nil {
		return err
	}
	e.MarkColAdjust(lnum, col, 0, len(s), 0)
	e.changedBytes(lnum, col)
	w.cursor.Col = col + len(s)
	w.setCurswant = true
	return nil
}

// InsChar inserts one character; see InsCharBytes.
func (e *GoEngine) InsChar(c rune) error {
	return e.InsCharBytes(string(c))
}

// DelBytes deletes count bytes at the cursor. When the deletion reaches
// the end of the line and fixpos is set the cursor backs up onto the new
// last character. It fails when the cursor is past the end of the line.
func (e *GoEngine) DelBytes(count int, fixpos bool) error {
	w := e.currentWindow
	b := w.buf
	lnum, col := w.cursor.Lnum, w.cursor.Col
	old := b.GetLine(lnum)
	if col >= len(old) {
		return ErrLineOutOfRange
	}
	if count == 0 {
		return nil
	}
	if count < 0 {
		return ErrInvalidArgument
	}
	if col+count >= len(old) {
		// took off the last character: back up the cursor
		if col > 0 && fixpos && e.mode != ModeInsert {
			w.cursor.Col--
			w.cursor.Col -= headOff(old, w.cursor.Col)
		}
		count = len(old) - col
	}
	if err := b.ReplaceLine(lnum, old[:col]+old[col+count:]); err != nil {
		return err
	}
	e.MarkColAdjust(lnum, col+count, 0, -count, 0)
	e.changedBytes(lnum, col)
	return nil
}

// DelChars deletes count characters at the cursor.
func (e *GoEngine) DelChars(count int, fixpos bool) error {
	w := e.currentWindow
	line := w.buf.GetLine(w.cursor.Lnum)
	bytes := 0
	for i := 0; i < count && w.cursor.Col+bytes < len(line); i++ {
		bytes += charLen(line, w.cursor.Col+bytes)
	}
	return e.DelBytes(bytes, fixpos)
}

// GetIndent returns the indent of the cursor line in screen columns.
func (e *GoEngine) GetIndent() int {
	return e.GetIndentLnum(e.currentWindow.cursor.Lnum)
}

// GetIndentLnum returns the indent of line lnum in screen columns.
func (e *GoEngine) GetIndentLnum(lnum int) int {
	b := e.currentBuffer
	return cindent.IndentOf(b.GetLine(lnum), b.opts.Tabstop)
}

// flags for SetIndent
const (
	SinChanged = 1 // record the change
	SinInsert  = 2 // insert the indent in front of the line
)

// SetIndent sets the indent of the cursor line to size columns, with tabs
// unless 'expandtab' is set. With 'preserveindent' the existing indent
// characters are kept as far as they reach. The cursor goes to the end of
// the indent. It reports whether the line changed.
func (e *GoEngine) SetIndent(size int, flags int) bool {
	w := e.currentWindow
	b := w.buf
	ts := b.opts.Tabstop
	if ts <= 0 {
		ts = 8
	}
	lnum := w.cursor.Lnum
	old := b.GetLine(lnum)
	size = max(size, 0)

	var ind strings.Builder
	p := 0
	doit := false
	todo := size
	if b.opts.PreserveIndent && flags&SinInsert == 0 {
		// keep the old indent characters that fit
		vcol := 0
		for p < len(old) && isWhiteByte(old[p]) {
			next := vcol + 1
			if old[p] == '\t' {
				next = vcol + ts - vcol%ts
			}
			if next > size {
				break
			}
			ind.WriteByte(old[p])
			vcol = next
			p++
		}
		todo = size - vcol
		if !b.opts.Expandtab {
			for todo > 0 && vcol+ts-vcol%ts <= size {
				ind.WriteByte('\t')
				todo -= ts - vcol%ts
				vcol += ts - vcol%ts
			}
		}
		for ; todo > 0; todo-- {
			ind.WriteByte(' ')
		}
		doit = true
	} else {
		if !b.opts.Expandtab {
			for todo >= ts {
				if at(old, p) != '\t' {
					doit = true
				} else {
					p++
				}
				ind.WriteByte('\t')
				todo -= ts
			}
		}
		for ; todo > 0; todo-- {
			if at(old, p) != ' ' {
				doit = true
			} else {
				p++
			}
			ind.WriteByte(' ')
		}
	}

	indent := ind.String()
	if !doit && !isWhiteByte(at(old, p)) && flags&SinInsert == 0 {
		w.cursor.Col = len(indent)
		return false
	}

	rest := old
	if flags&SinInsert == 0 {
		rest = strings.TrimLeft(old[p:], " \t")
	}
	oldIndentLen := len(old) - len(rest)
	if err := b.ReplaceLine(lnum, indent+rest); err != nil {
		e.logger.Print(err)
		return false
	}
	if flags&SinChanged != 0 {
		e.changedBytes(lnum, 0)
	}
	e.MarkColAdjust(lnum, oldIndentLen, 0, len(indent)-oldIndentLen, 0)
	w.cursor.Col = len(indent)
	return true
}

func at(s string, i int) byte {
	if i < len(s) {
		return s[i]
	}
	return 0
}

// ShiftLine shifts the cursor line amount 'shiftwidth's left or right.
// With 'shiftround' the indent is rounded to a multiple of 'shiftwidth'.
func (e *GoEngine) ShiftLine(left bool, amount int) {
	b := e.currentBuffer
	sw := b.opts.sw()
	count := e.GetIndent()
	if e.opts.Shiftround {
		i := count / sw
		j := count % sw
		if j != 0 && left {
			amount--
		}
		if left {
			i = max(i-amount, 0)
		} else {
			i += amount
		}
		count = i * sw
	} else if left {
		count = max(count-sw*amount, 0)
	} else {
		count += sw * amount
	}
	e.SetIndent(count, SinChanged)
}

// ShiftLines is the > and < operator on lines line1..line2. Empty lines
// are not indented. The cursor ends on the first non-blank of line1.
func (e *GoEngine) ShiftLines(line1, line2 int, left bool, amount int) error {
	b := e.currentBuffer
	if line1 < 1 || line2 < line1 || line2 > b.GetLineCount() {
		return ErrLineOutOfRange
	}
	w := e.currentWindow
	for lnum := line1; lnum <= line2; lnum++ {
		if b.GetLine(lnum) == "" {
			continue
		}
		w.cursor = Pos{Lnum: lnum}
		e.ShiftLine(left, amount)
	}
	b.opStart = Pos{Lnum: line1}
	b.opEnd = Pos{Lnum: line2, Col: max(len(b.GetLine(line2))-1, 0)}
	w.cursor = Pos{Lnum: line1}
	w.beginLine(blWhite | blFix)
	return nil
}

// FixIndentRange re-indents lines line1..line2 with the C indenter, like
// the = operator with 'cindent'. Empty lines get no indent. The '[ and ']
// marks are set to the range and the number of changed lines is returned.
func (e *GoEngine) FixIndentRange(line1, line2 int) (int, error) {
	b := e.currentBuffer
	if line1 < 1 || line2 < line1 || line2 > b.GetLineCount() {
		return 0, ErrLineOutOfRange
	}
	w := e.currentWindow
	in := b.Indenter()
	changed := 0
	first := 0
	for lnum := line1; lnum <= line2; lnum++ {
		w.cursor = Pos{Lnum: lnum}
		amount := 0
		if strings.TrimLeft(b.GetLine(lnum), " \t") != "" {
			amount = in.GetCIndent(cindent.Pos{Lnum: lnum}, false)
		}
		if amount >= 0 && e.SetIndent(amount, 0) {
			changed++
			if first == 0 {
				first = lnum
			}
		}
	}
	if changed > 0 {
		e.changedLines(first, 0, line2+1, 0)
	}
	b.opStart = Pos{Lnum: line1}
	b.opEnd = Pos{Lnum: line2, Col: max(len(b.GetLine(line2))-1, 0)}
	w.cursor = Pos{Lnum: line1}
	w.beginLine(blWhite | blFix)
	e.logger.Printf("reindent %d-%d: %d lines changed", line1, line2, changed)
	return changed, nil
}

// FixThisLine re-indents the cursor line with the C indenter, keeping the
// cursor on the same text.
func (e *GoEngine) FixThisLine() {
	w := e.currentWindow
	b := w.buf
	insert := e.mode == ModeInsert
	amount := b.Indenter().GetCIndent(cindent.Pos{Lnum: w.cursor.Lnum, Col: w.cursor.Col}, insert)
	if amount < 0 {
		return
	}
	e.changeIndentKeepCursor(amount)
}

// changeIndentKeepCursor sets the indent of the cursor line and keeps the
// cursor on the character it was on, or at the end of the indent when it
// was inside it.
func (e *GoEngine) changeIndentKeepCursor(amount int) {
	w := e.currentWindow
	old := w.buf.GetLine(w.cursor.Lnum)
	oldIndent := len(old) - len(strings.TrimLeft(old, " \t"))
	col := w.cursor.Col
	if e.SetIndent(amount, SinChanged) {
		if col > oldIndent {
			w.cursor.Col += col - oldIndent
		}
	} else {
		w.cursor.Col = max(col, w.cursor.Col)
	}
	w.setCurswant = true
}

// flags for OpenLine
const (
	OpenLineDelSpaces = 1 // delete spaces after the cursor
	OpenLineMarkFix   = 2 // move marks after the cursor to the new line
	OpenLineKeepTrail = 4 // keep trailing white space on the old line
)

// OpenLine opens a new line below (Forward) or above (Backward) the cursor
// line, like "o" and "O". In Insert mode a Forward open splits the line at
// the cursor, like <CR>. The new line gets the indent of the old one with
// 'autoindent' and the C indent with 'cindent'. The cursor ends at the end
// of the new indent.
func (e *GoEngine) OpenLine(dir Direction, flags int) error {
	w := e.currentWindow
	b := w.buf
	lnum := w.cursor.Lnum
	saved := b.GetLine(lnum)
	split := e.mode == ModeInsert && dir == Forward

	extra := ""
	col := min(w.cursor.Col, len(saved))
	lessSpace := 0
	if split {
		extra = saved[col:]
		if b.opts.Autoindent || b.opts.Cindent || flags&OpenLineDelSpaces != 0 {
			trimmed := strings.TrimLeft(extra, " \t")
			lessSpace = len(extra) - len(trimmed)
			extra = trimmed
		}
	}

	newIndent := 0
	if b.opts.Autoindent || b.opts.Cindent {
		newIndent = cindent.IndentOf(saved, b.opts.Tabstop)
	}

	newLnum := lnum + 1
	if dir == Backward {
		newLnum = lnum
	}
	if err := b.AppendLine(newLnum-1, extra); err != nil {
		return err
	}
	e.MarkAdjust(newLnum, MaxLnum, 1, 0)

	if split {
		first := saved[:col]
		if (b.opts.Autoindent || b.opts.Cindent) && flags&OpenLineKeepTrail == 0 {
			first = strings.TrimRight(first, " \t")
		}
		if err := b.ReplaceLine(lnum, first); err != nil {
			return err
		}
		e.changedLines(lnum, col, lnum+1, 1)
		if flags&OpenLineMarkFix != 0 {
			e.MarkColAdjust(lnum, col+lessSpace, 1, -(col + lessSpace), 0)
		}
	} else {
		e.changedLines(newLnum, 0, newLnum, 1)
	}

	w.cursor = Pos{Lnum: newLnum}
	if newIndent > 0 {
		e.SetIndent(newIndent, SinInsert)
	}
	key := "o"
	if dir == Backward {
		key = "O"
	}
	if b.opts.Cindent && inList(b.opts.Cinkeys, key) {
		old := e.mode
		e.mode = ModeInsert
		e.FixThisLine()
		e.mode = old
		line := b.GetLine(newLnum)
		w.cursor.Col = len(line) - len(strings.TrimLeft(line, " \t"))
	}
	w.setCurswant = true
	return nil
}
