package govim

import (
	"github.com/slzatz/vimcore/vim/cindent"
)

// motionCommand moves the cursor of the current window count times
type motionCommand func(e *GoEngine, count int) bool

// motionHandlers maps keys to their motion handlers
var motionHandlers = map[string]motionCommand{
	"h":  moveLeft,
	"j":  moveDown,
	"k":  moveUp,
	"l":  moveRight,
	"0":  moveToLineStart,
	"$":  moveToLineEnd,
	"^":  moveToFirstNonBlank,
	"w":  moveWordForward,
	"b":  moveWordBackward,
	"e":  moveWordEnd,
	"G":  jumpMotion(moveToLastLine),
	"gg": jumpMotion(moveToFirstLine),
	"%":  jumpMotion(moveToMatchingBracket),
	"}":  jumpMotion(moveParagraphForward),
	"{":  jumpMotion(moveParagraphBackward),
	")":  jumpMotion(moveSentenceForward),
	"(":  jumpMotion(moveSentenceBackward),
	"H":  jumpMotion(moveToWindowTop),
	"M":  jumpMotion(moveToWindowMiddle),
	"L":  jumpMotion(moveToWindowBottom),
}

// Motion runs the motion bound to key. It reports whether the cursor moved.
func (e *GoEngine) Motion(key string, count int) bool {
	m, ok := motionHandlers[key]
	if !ok {
		return false
	}
	return m(e, count)
}

// jumpMotion wraps a motion that is a jump: the position before it goes on
// the jumplist and the '' mark.
func jumpMotion(m motionCommand) motionCommand {
	return func(e *GoEngine, count int) bool {
		e.SetPcmark()
		moved := m(e, count)
		e.CheckPcmark()
		return moved
	}
}

func toIndentPos(p Pos) cindent.Pos {
	return cindent.Pos{Lnum: p.Lnum, Col: p.Col}
}

// flags for beginLine
const (
	blWhite = 1 // cursor on first non-white in the line
	blSol   = 2 // use 'startofline' option
	blFix   = 4 // don't leave the cursor on a NUL
)

// beginLine puts the cursor at the start of its line: on the first
// non-blank with blWhite, or with blSol when 'startofline' is set;
// otherwise at the wanted column.
func (w *Window) beginLine(flags int) {
	if flags&blSol != 0 && !w.engine.opts.Startofline {
		w.coladvance(w.curswant)
		return
	}
	w.cursor.Col = 0
	w.cursor.Coladd = 0
	if flags&(blWhite|blSol) != 0 {
		line := w.buf.GetLine(w.cursor.Lnum)
		i := 0
		for i < len(line) && isWhiteByte(line[i]) {
			if i+1 == len(line) && flags&blFix != 0 {
				break
			}
			i++
		}
		w.cursor.Col = i
	}
	w.setCurswant = true
}

// coladvance puts the cursor on the character covering screen column
// wantcol, or on the last character when the line is shorter. MaxCol
// always goes to the end of the line.
func (w *Window) coladvance(wantcol int) {
	line := w.buf.GetLine(w.cursor.Lnum)
	ts := w.buf.opts.Tabstop
	insert := w.engine != nil && w.engine.mode == ModeInsert
	if wantcol == MaxCol {
		w.cursor.Col = len(line)
	} else {
		col := 0
		for col < len(line) {
			l := charLen(line, col)
			if cindent.VirtCol(line, col+l, ts) > wantcol {
				break
			}
			col += l
		}
		w.cursor.Col = col
	}
	if !insert && w.cursor.Col >= len(line) && len(line) > 0 {
		w.cursor.Col = len(line) - 1
		w.cursor.Col -= headOff(line, w.cursor.Col)
	}
	w.cursor.Coladd = 0
}

// updateCurswant sets the wanted column from the cursor when a horizontal
// move made it stale.
func (w *Window) updateCurswant() {
	if w.setCurswant {
		w.validateVirtcol()
		w.curswant = w.virtcol
		w.setCurswant = false
	}
}

// moveLeft moves the cursor one or more characters to the left
func moveLeft(e *GoEngine, count int) bool {
	w := e.currentWindow
	count = max(count, 1)
	line := w.buf.GetLine(w.cursor.Lnum)
	moved := false
	for i := 0; i < count && w.cursor.Col > 0; i++ {
		w.cursor.Col--
		w.cursor.Col -= headOff(line, w.cursor.Col)
		moved = true
	}
	w.setCurswant = true
	return moved
}

// moveRight moves the cursor one or more characters to the right
func moveRight(e *GoEngine, count int) bool {
	w := e.currentWindow
	count = max(count, 1)
	line := w.buf.GetLine(w.cursor.Lnum)
	last := len(line)
	if e.mode != ModeInsert {
		// In normal mode we can only go to the last character of the line
		last = len(line) - 1
	}
	moved := false
	for i := 0; i < count && w.cursor.Col < last; i++ {
		w.cursor.Col += charLen(line, w.cursor.Col)
		moved = true
	}
	w.setCurswant = true
	return moved
}

// moveDown moves the cursor one or more lines down, keeping the wanted
// column
func moveDown(e *GoEngine, count int) bool {
	w := e.currentWindow
	count = max(count, 1)
	n := w.buf.GetLineCount()
	if w.cursor.Lnum >= n {
		return false
	}
	w.updateCurswant()
	w.cursor.Lnum = min(w.cursor.Lnum+count, n)
	w.coladvance(w.curswant)
	return true
}

// moveUp moves the cursor one or more lines up, keeping the wanted column
func moveUp(e *GoEngine, count int) bool {
	w := e.currentWindow
	count = max(count, 1)
	if w.cursor.Lnum <= 1 {
		return false
	}
	w.updateCurswant()
	w.cursor.Lnum = max(w.cursor.Lnum-count, 1)
	w.coladvance(w.curswant)
	return true
}

// moveToLineStart moves to column 0
func moveToLineStart(e *GoEngine, count int) bool {
	w := e.currentWindow
	moved := w.cursor.Col != 0
	w.cursor.Col = 0
	w.setCurswant = true
	return moved
}

// moveToLineEnd moves to the last character; a count moves down count-1
// lines first
func moveToLineEnd(e *GoEngine, count int) bool {
	w := e.currentWindow
	if count > 1 {
		w.cursor.Lnum = min(w.cursor.Lnum+count-1, w.buf.GetLineCount())
	}
	old := w.cursor
	w.coladvance(MaxCol)
	w.curswant = MaxCol
	w.setCurswant = false
	return w.cursor != old
}

// moveToFirstNonBlank moves to the first non-blank character of the line
func moveToFirstNonBlank(e *GoEngine, count int) bool {
	w := e.currentWindow
	old := w.cursor
	w.beginLine(blWhite | blFix)
	return w.cursor != old
}

// isWordChar checks if a character is part of a word (alphanumeric or underscore)
func isWordChar(c byte) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') ||
		c == '_' || c >= 0x80
}

// charClass is 0 for blanks, 2 for word characters and 1 for the rest
func charClass(c byte) int {
	switch {
	case c == 0 || isWhiteByte(c):
		return 0
	case isWordChar(c):
		return 2
	}
	return 1
}

// moveWordForward moves to the start of the next word
func moveWordForward(e *GoEngine, count int) bool {
	w := e.currentWindow
	pw := posWalker{w.buf}
	count = max(count, 1)
	pos := w.cursor
	for i := 0; i < count; i++ {
		cls := charClass(pw.char(pos))
		last := i == count-1
		// skip the rest of this word
		r := 0
		if cls != 0 {
			for r != -1 && charClass(pw.char(pos)) == cls {
				if r = pw.inc(&pos); r == 1 || r == 2 {
					break
				}
			}
		}
		// skip blanks; an empty line is a word
		for r != -1 && charClass(pw.char(pos)) == 0 {
			if pos.Col == 0 && w.buf.GetLine(pos.Lnum) == "" {
				break
			}
			r = pw.inc(&pos)
		}
		if r == -1 && !last {
			break
		}
	}
	moved := pos != w.cursor
	w.cursor = pos
	w.checkCursorCol()
	w.setCurswant = true
	return moved
}

// moveWordBackward moves to the start of the previous word
func moveWordBackward(e *GoEngine, count int) bool {
	w := e.currentWindow
	pw := posWalker{w.buf}
	count = max(count, 1)
	pos := w.cursor
	for i := 0; i < count; i++ {
		if pw.dec(&pos) == -1 {
			break
		}
		// skip blanks, stopping on an empty line
		for charClass(pw.char(pos)) == 0 {
			if pos.Col == 0 && w.buf.GetLine(pos.Lnum) == "" {
				break
			}
			if pw.dec(&pos) == -1 {
				break
			}
		}
		cls := charClass(pw.char(pos))
		if cls == 0 {
			continue
		}
		for pos.Col > 0 {
			prev := pos
			pw.dec(&prev)
			if charClass(pw.char(prev)) != cls {
				break
			}
			pos = prev
		}
	}
	moved := pos != w.cursor
	w.cursor = pos
	w.checkCursorCol()
	w.setCurswant = true
	return moved
}

// moveWordEnd moves to the end of the current or next word
func moveWordEnd(e *GoEngine, count int) bool {
	w := e.currentWindow
	pw := posWalker{w.buf}
	count = max(count, 1)
	pos := w.cursor
	for i := 0; i < count; i++ {
		if pw.incl(&pos) == -1 {
			break
		}
		for charClass(pw.char(pos)) == 0 {
			if pw.incl(&pos) == -1 {
				break
			}
		}
		cls := charClass(pw.char(pos))
		for {
			next := pos
			if pw.inc(&next) != 0 || charClass(pw.char(next)) != cls {
				break
			}
			pos = next
		}
	}
	moved := pos != w.cursor
	w.cursor = pos
	w.checkCursorCol()
	w.setCurswant = true
	return moved
}

// moveToLastLine moves to the last line of the buffer, or to line count
func moveToLastLine(e *GoEngine, count int) bool {
	w := e.currentWindow
	target := w.buf.GetLineCount()
	if count > 0 && count < target {
		target = count
	}
	moved := w.cursor.Lnum != target
	w.cursor.Lnum = target
	w.beginLine(blSol | blFix)
	return moved
}

// moveToFirstLine moves to the first line of the buffer or to a specific line if count is provided
func moveToFirstLine(e *GoEngine, count int) bool {
	w := e.currentWindow
	target := 1
	if count > 1 {
		target = min(count, w.buf.GetLineCount())
	}
	moved := w.cursor.Lnum != target
	w.cursor.Lnum = target
	w.beginLine(blSol | blFix)
	return moved
}

// moveToMatchingBracket moves to the bracket matching the one under or
// after the cursor
func moveToMatchingBracket(e *GoEngine, count int) bool {
	w := e.currentWindow
	p, ok := w.buf.Indenter().FindMatch(toIndentPos(w.cursor))
	if !ok {
		return false
	}
	w.cursor = Pos{Lnum: p.Lnum, Col: p.Col}
	w.setCurswant = true
	return true
}

// moveParagraphForward is the } motion
func moveParagraphForward(e *GoEngine, count int) bool {
	return moveTo(e, func(from Pos) (Pos, bool) {
		return e.findParagraph(from, Forward, max(count, 1), 0, false)
	})
}

// moveParagraphBackward is the { motion
func moveParagraphBackward(e *GoEngine, count int) bool {
	return moveTo(e, func(from Pos) (Pos, bool) {
		return e.findParagraph(from, Backward, max(count, 1), 0, false)
	})
}

// moveSentenceForward is the ) motion
func moveSentenceForward(e *GoEngine, count int) bool {
	return moveTo(e, func(from Pos) (Pos, bool) {
		return e.findSentence(from, Forward, max(count, 1))
	})
}

// moveSentenceBackward is the ( motion
func moveSentenceBackward(e *GoEngine, count int) bool {
	return moveTo(e, func(from Pos) (Pos, bool) {
		return e.findSentence(from, Backward, max(count, 1))
	})
}

func moveTo(e *GoEngine, find func(Pos) (Pos, bool)) bool {
	w := e.currentWindow
	p, ok := find(w.cursor)
	if !ok {
		return false
	}
	moved := p != w.cursor
	w.cursor = p
	w.checkCursorCol()
	w.setCurswant = true
	return moved
}

// moveToWindowTop is H: line count from the top of the window, outside
// 'scrolloff'
func moveToWindowTop(e *GoEngine, count int) bool {
	w := e.currentWindow
	w.validateBotline()
	lnum := w.topline + max(count, 1) - 1
	if w.topline > 1 {
		lnum = max(lnum, w.topline+w.opts.Scrolloff)
	}
	return moveToScreenLine(w, min(lnum, w.botline-1))
}

// moveToWindowMiddle is M
func moveToWindowMiddle(e *GoEngine, count int) bool {
	w := e.currentWindow
	w.validateBotline()
	used := 0
	half := (w.height - w.emptyRows + 1) / 2
	lnum := w.topline
	for ; lnum < w.botline-1; lnum++ {
		used += w.plines(lnum)
		if used >= half {
			break
		}
	}
	return moveToScreenLine(w, lnum)
}

// moveToWindowBottom is L: line count from the bottom of the window
func moveToWindowBottom(e *GoEngine, count int) bool {
	w := e.currentWindow
	w.validateBotline()
	lnum := w.botline - max(count, 1)
	if w.botline <= w.buf.GetLineCount() {
		lnum = min(lnum, w.botline-1-w.opts.Scrolloff)
	}
	return moveToScreenLine(w, max(lnum, w.topline))
}

func moveToScreenLine(w *Window, lnum int) bool {
	lnum = max(min(lnum, w.buf.GetLineCount()), 1)
	moved := w.cursor.Lnum != lnum
	w.cursor.Lnum = lnum
	w.beginLine(blSol | blFix)
	return moved
}
