package govim

import (
	"strings"
	"unicode/utf8"
)

// Control keys understood by Input.
const (
	keyEsc   = "\x1b"
	keyCtrlB = "\x02"
	keyCtrlD = "\x04"
	keyCtrlE = "\x05"
	keyCtrlF = "\x06"
	keyTab   = "\t" // CTRL-I
	keyCR    = "\r"
	keyCtrlO = "\x0f"
	keyCtrlU = "\x15"
	keyCtrlY = "\x19"
	keyBS    = "\x7f"
	keyCtrlH = "\x08"
)

// Normal feeds keys to Input one character at a time and returns the first
// error a command reported.
func (e *GoEngine) Normal(keys string) error {
	var first error
	for _, r := range keys {
		e.Input(string(r))
		if first == nil && e.lastErr != nil {
			first = e.lastErr
		}
	}
	return first
}

// LastError returns the error of the last command typed with Input.
func (e *GoEngine) LastError() error { return e.lastErr }

// Pending reports whether a normal mode command or count has been started
// and waits for more keys.
func (e *GoEngine) Pending() bool { return e.pending != "" || e.commandCount > 0 }

// Input handles one key in the current mode.
func (e *GoEngine) Input(s string) {
	e.lastErr = nil
	if e.mode == ModeInsert {
		e.insertKey(s)
	} else {
		e.normalKey(s)
	}
	w := e.currentWindow
	w.checkCursor()
	w.CursColumns(true)
}

func (e *GoEngine) fail(err error) {
	e.lastErr = err
	e.logger.Print(err)
}

// count returns the typed count, or def when there is none.
func (e *GoEngine) count(def int) int {
	if e.commandCount == 0 {
		return def
	}
	return e.commandCount
}

func (e *GoEngine) normalKey(s string) {
	w := e.currentWindow
	if s == keyEsc {
		e.pending = ""
		e.commandCount = 0
		return
	}

	// Handle count prefix (but 0 alone is a motion)
	if e.pending == "" && len(s) == 1 && isDigitByte(s[0]) && (s != "0" || e.commandCount > 0) {
		e.commandCount = e.commandCount*10 + int(s[0]-'0')
		return
	}

	if e.pending != "" {
		cmd := e.pending + s
		e.pending = ""
		e.pendingKey(cmd)
		e.commandCount = 0
		return
	}

	count := e.commandCount
	done := true
	switch s {
	case "g", "z", "m", "'", "`", "d", ">", "<", "=", "[", "]":
		e.pending = s
		return
	case keyCtrlO:
		if _, err := e.JumpOlder(e.count(1)); err != nil {
			e.fail(err)
		}
	case keyTab:
		if _, err := e.JumpNewer(e.count(1)); err != nil {
			e.fail(err)
		}
	case keyCtrlD:
		w.Halfpage(true, count)
	case keyCtrlU:
		w.Halfpage(false, count)
	case keyCtrlF:
		if err := w.Onepage(Forward, count); err != nil {
			e.fail(err)
		}
	case keyCtrlB:
		if err := w.Onepage(Backward, count); err != nil {
			e.fail(err)
		}
	case keyCtrlE:
		w.Scrollup(e.count(1))
		w.CursorCorrect()
	case keyCtrlY:
		w.Scrolldown(e.count(1))
		w.CursorCorrect()
	case "x":
		e.BeginChange()
		if err := e.DelChars(e.count(1), true); err != nil {
			e.fail(err)
		}
	case "o", "O":
		dir := Forward
		if s == "O" {
			dir = Backward
		}
		e.BeginChange()
		if err := e.OpenLine(dir, 0); err != nil {
			e.fail(err)
			break
		}
		e.mode = ModeInsert
	case "i", "a", "A", "I":
		e.BeginChange()
		line := w.buf.GetLine(w.cursor.Lnum)
		switch s {
		case "a":
			if line != "" {
				w.cursor.Col += charLen(line, w.cursor.Col)
			}
		case "A":
			w.cursor.Col = len(line)
		case "I":
			w.beginLine(blWhite)
		}
		e.mode = ModeInsert
	default:
		done = false
	}
	if done {
		e.commandCount = 0
		return
	}

	if m, ok := motionHandlers[s]; ok {
		m(e, count)
	}
	e.commandCount = 0
}

// pendingKey runs a two-key normal command.
func (e *GoEngine) pendingKey(cmd string) {
	w := e.currentWindow
	count := e.commandCount
	switch {
	case cmd == "gg":
		motionHandlers["gg"](e, count)
	case cmd == "g;":
		if _, err := e.ChangeOlder(e.count(1)); err != nil {
			e.fail(err)
		}
	case cmd == "g,":
		if _, err := e.ChangeOlder(-e.count(1)); err != nil {
			e.fail(err)
		}
	case cmd == "zt", cmd == "z"+keyCR:
		e.zCommand(count, 't', cmd != "zt")
	case cmd == "zz", cmd == "z.":
		e.zCommand(count, 'z', cmd != "zz")
	case cmd == "zb", cmd == "z-":
		e.zCommand(count, 'b', cmd != "zb")
	case cmd[0] == 'm':
		if err := e.SetMark(cmd[1]); err != nil {
			e.fail(err)
		}
	case cmd[0] == '\'' || cmd[0] == '`':
		if err := e.JumpToMark(cmd[1], cmd[0] == '\''); err != nil {
			e.fail(err)
		}
	case cmd == "dd":
		e.BeginChange()
		l1 := w.cursor.Lnum
		l2 := min(l1+e.count(1)-1, w.buf.GetLineCount())
		if err := e.DeleteLines(l1, l2); err != nil {
			e.fail(err)
		}
	case cmd == ">>" || cmd == "<<":
		e.BeginChange()
		l1 := w.cursor.Lnum
		l2 := min(l1+e.count(1)-1, w.buf.GetLineCount())
		if err := e.ShiftLines(l1, l2, cmd == "<<", 1); err != nil {
			e.fail(err)
		}
	case cmd == "==":
		e.BeginChange()
		l1 := w.cursor.Lnum
		l2 := min(l1+e.count(1)-1, w.buf.GetLineCount())
		if _, err := e.FixIndentRange(l1, l2); err != nil {
			e.fail(err)
		}
	case cmd == "=G":
		e.BeginChange()
		if _, err := e.FixIndentRange(w.cursor.Lnum, w.buf.GetLineCount()); err != nil {
			e.fail(err)
		}
	case cmd == "[(" || cmd == "[{" || cmd == "])" || cmd == "]}":
		e.unmatchedBracket(cmd[1])
	}
}

// zCommand is zt, zz and zb; with a count the cursor first goes to line
// count. The z<CR>, z. and z- forms also put the cursor on the first
// non-blank.
func (e *GoEngine) zCommand(count int, where byte, firstNonBlank bool) {
	w := e.currentWindow
	if count > 0 {
		w.cursor.Lnum = min(count, w.buf.GetLineCount())
		w.validCursor.Lnum = 0
	}
	w.validateCursor()
	w.ScrollCursor(where)
	if firstNonBlank {
		w.beginLine(blWhite | blFix)
	}
}

// unmatchedBracket is "[(", "[{", "])" and "]}".
func (e *GoEngine) unmatchedBracket(c byte) {
	w := e.currentWindow
	e.SetPcmark()
	p, ok := w.buf.Indenter().FindUnmatched(toIndentPos(w.cursor), c)
	if ok {
		w.cursor = Pos{Lnum: p.Lnum, Col: p.Col}
		w.setCurswant = true
	}
	e.CheckPcmark()
}

// insertKey handles a key in Insert mode.
func (e *GoEngine) insertKey(s string) {
	w := e.currentWindow
	b := w.buf
	switch s {
	case keyEsc:
		b.lastInsert = w.cursor
		e.mode = ModeNormal
		if w.cursor.Col > 0 {
			line := b.GetLine(w.cursor.Lnum)
			w.cursor.Col--
			w.cursor.Col -= headOff(line, w.cursor.Col)
		}
		w.setCurswant = true
	case keyCR:
		if err := e.OpenLine(Forward, OpenLineDelSpaces|OpenLineMarkFix); err != nil {
			e.fail(err)
		}
	case keyBS, keyCtrlH:
		if w.cursor.Col > 0 {
			line := b.GetLine(w.cursor.Lnum)
			w.cursor.Col--
			w.cursor.Col -= headOff(line, w.cursor.Col)
			if err := e.DelChars(1, false); err != nil {
				e.fail(err)
			}
		}
	case keyCtrlF:
		if b.opts.Cindent {
			e.FixThisLine()
		}
	default:
		r, _ := utf8.DecodeRuneInString(s)
		if r < ' ' && s != keyTab {
			return
		}
		if err := e.InsCharBytes(s); err != nil {
			e.fail(err)
			return
		}
		if b.opts.Cindent && e.cinkeyTriggered(s) {
			e.FixThisLine()
		}
	}
}

// cinkeyTriggered reports whether typing s in Insert mode re-indents the
// line according to 'cinkeys'.
func (e *GoEngine) cinkeyTriggered(s string) bool {
	w := e.currentWindow
	line := w.buf.GetLine(w.cursor.Lnum)
	before := line[:min(w.cursor.Col, len(line))]
	for _, key := range strings.Split(w.buf.opts.Cinkeys, ",") {
		switch {
		case key == "":
		case strings.HasPrefix(key, "0") && len(key) > 1:
			// only when typed as the first non-blank
			if key[1:] == s && strings.TrimLeft(before, " \t") == s {
				return true
			}
		case key == ":" && s == ":":
			return true
		case key == "e" && strings.TrimLeft(before, " \t") == "else" && s == "e":
			return true
		case len(key) == 1 && key == s && key != "o" && key != "O" && key != "e":
			return true
		}
	}
	return false
}
