package govim

// valid is the set of cached window values that are up to date.
type valid uint16

const (
	validWrow     valid = 1 << iota // wrow
	validWcol                       // wcol
	validVirtcol                    // virtcol
	validCheight                    // clineHeight
	validCrow                       // clineRow
	validBotline                    // botline and emptyRows
	validBotlineAP                  // botline is approximated
	validTopline                    // topline was checked against the cursor

	validAll = validWrow | validWcol | validVirtcol | validCheight | validCrow |
		validBotline | validBotlineAP | validTopline
)

func (v valid) has(f valid) bool { return v&f == f }
func (v *valid) set(f valid)     { *v |= f }
func (v *valid) clear(f valid)   { *v &^= f }

// RedrawType is how much of a window must be redrawn.
type RedrawType int

const (
	RedrawNone     RedrawType = 0
	RedrawValid    RedrawType = 10 // buffer unchanged, scrolled
	RedrawInverted RedrawType = 20 // redisplay inverted part
	RedrawNotValid RedrawType = 40 // everything must be redrawn
	RedrawClear    RedrawType = 50 // clear the screen first
)

// Window is a view on a buffer: a cursor, a viewport and a jumplist.
type Window struct {
	id     int
	buf    *GoBuffer
	engine *GoEngine
	opts   WindowOptions

	height int // text rows
	width  int // text columns including the number column

	cursor      Pos
	curswant    int  // wanted virtual column for vertical moves
	setCurswant bool // curswant must be recomputed from the cursor

	topline   int
	botline   int // first line below the window
	emptyRows int // "~" rows below the last line
	leftcol   int // first displayed column when not wrapping

	wrow        int // cursor screen row
	wcol        int // cursor screen column
	virtcol     int // cursor virtual column
	clineRow    int // screen row of the cursor line
	clineHeight int // screen rows of the cursor line

	valid        valid
	validCursor  Pos
	validLeftcol int

	pcmark     Pos // '' and ``
	prevPcmark Pos

	jumplist    []FileMark
	jumplistIdx int

	changelistIdx int

	mustRedraw RedrawType
}

// GetID returns the window ID
func (w *Window) GetID() int { return w.id }

// Buffer returns the buffer shown in the window
func (w *Window) Buffer() *GoBuffer { return w.buf }

// Cursor returns the cursor position
func (w *Window) Cursor() Pos { return w.cursor }

// Topline returns the first displayed line
func (w *Window) Topline() int { return w.topline }

// Botline returns the line just below the window, validating it first.
func (w *Window) Botline() int {
	w.validateBotline()
	return w.botline
}

// Leftcol returns the first displayed column when lines don't wrap
func (w *Window) Leftcol() int { return w.leftcol }

// ScreenPos returns the cursor row and column inside the window.
func (w *Window) ScreenPos() (row, col int) {
	w.validateCursor()
	return w.wrow, w.wcol
}

// Size returns the text area of the window.
func (w *Window) Size() (height, width int) { return w.height, w.width }

// SetSize changes the text area of the window.
func (w *Window) SetSize(height, width int) {
	if height < 1 {
		height = 1
	}
	if width < 1 {
		width = 1
	}
	if height == w.height && width == w.width {
		return
	}
	w.height = height
	w.width = width
	w.valid.clear(validAll)
	w.redrawLater(RedrawNotValid)
}

// Options returns the window-local options.
func (w *Window) Options() WindowOptions { return w.opts }

// SetOptions replaces the window-local options.
func (w *Window) SetOptions(opts WindowOptions) {
	w.opts = opts
	w.valid.clear(validAll)
	w.redrawLater(RedrawNotValid)
}

// SetCursor moves the cursor. The viewport follows on the next UpdateTopline.
func (w *Window) SetCursor(p Pos) {
	w.cursor = p
	w.checkCursor()
	w.setCurswant = true
}

// SetTopline scrolls the window so that lnum is the first line.
func (w *Window) SetTopline(lnum int) {
	if lnum < 1 {
		lnum = 1
	}
	if n := w.buf.GetLineCount(); lnum > n {
		lnum = n
	}
	if lnum != w.topline {
		w.topline = lnum
		w.valid.clear(validWrow | validCrow | validBotline | validBotlineAP | validTopline)
		w.redrawLater(RedrawValid)
	}
}

// MustRedraw returns and resets the pending redraw type.
func (w *Window) MustRedraw() RedrawType {
	t := w.mustRedraw
	w.mustRedraw = RedrawNone
	return t
}

// redrawLater records that the window needs a redraw and tells the
// engine's redraw hook.
func (w *Window) redrawLater(t RedrawType) {
	if w.mustRedraw < t {
		w.mustRedraw = t
	}
	if w.engine != nil && w.engine.onRedraw != nil {
		w.engine.onRedraw(w, t)
	}
}

// checkCursor keeps the cursor inside the buffer.
func (w *Window) checkCursor() {
	w.checkCursorLnum()
	w.checkCursorCol()
}

func (w *Window) checkCursorLnum() {
	if n := w.buf.GetLineCount(); w.cursor.Lnum > n {
		w.cursor.Lnum = n
	}
	if w.cursor.Lnum < 1 {
		w.cursor.Lnum = 1
	}
}

// checkCursorCol puts the cursor on a character; in Insert mode it may be
// just after the last one.
func (w *Window) checkCursorCol() {
	line := w.buf.GetLine(w.cursor.Lnum)
	n := len(line)
	w.cursor.Coladd = 0
	switch {
	case n == 0:
		w.cursor.Col = 0
	case w.cursor.Col >= n:
		if w.engine != nil && w.engine.mode == ModeInsert {
			w.cursor.Col = n
		} else {
			w.cursor.Col = n - 1
			w.cursor.Col -= headOff(line, w.cursor.Col)
		}
	case w.cursor.Col < 0:
		w.cursor.Col = 0
	}
}

// checkCursorMoved drops the cached values that depend on the cursor when
// it moved since they were computed.
func (w *Window) checkCursorMoved() {
	if w.cursor == w.validCursor && w.leftcol == w.validLeftcol {
		return
	}
	if w.cursor.Lnum != w.validCursor.Lnum {
		w.valid.clear(validWrow | validWcol | validVirtcol | validCheight | validCrow | validTopline)
	} else {
		w.valid.clear(validWrow | validWcol | validVirtcol)
	}
	w.validCursor = w.cursor
	w.validLeftcol = w.leftcol
}

// changedLineAboveCursor is called when a line above the cursor changed
// in a way that may change its height.
func (w *Window) changedLineAboveCursor() {
	w.valid.clear(validWrow | validCrow | validCheight | validTopline)
}

// changedClineBeforeCursor is called when the cursor line changed before
// the cursor column.
func (w *Window) changedClineBeforeCursor() {
	w.valid.clear(validWrow | validWcol | validVirtcol | validCheight | validTopline)
}

// approximateBotline marks botline as an estimate.
func (w *Window) approximateBotline() {
	w.valid.clear(validBotline)
}

// invalidateBotline forgets botline.
func (w *Window) invalidateBotline() {
	w.valid.clear(validBotline | validBotlineAP)
}

// headOff returns how many bytes col is past the start of its character.
func headOff(line string, col int) int {
	n := 0
	for col-n > 0 && col-n < len(line) && line[col-n]&0xC0 == 0x80 {
		n++
	}
	return n
}
