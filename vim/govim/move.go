package govim

import (
	"strconv"

	"github.com/slzatz/vimcore/vim/cindent"
)

// colOff returns the width of the number column.
func (w *Window) colOff() int {
	if !w.opts.Number {
		return 0
	}
	return max(len(strconv.Itoa(w.buf.GetLineCount())), 3) + 1
}

// plines returns the number of screen rows line lnum takes, at most the
// window height.
func (w *Window) plines(lnum int) int {
	if !w.opts.Wrap {
		return 1
	}
	n := w.plinesNoClamp(lnum)
	if n > w.height {
		return w.height
	}
	return n
}

func (w *Window) plinesNoClamp(lnum int) int {
	if !w.opts.Wrap {
		return 1
	}
	s := w.buf.GetLine(lnum)
	if s == "" {
		return 1
	}
	col := cindent.VirtCol(s, len(s), w.buf.opts.Tabstop)
	width := w.width - w.colOff()
	if width <= 0 {
		return 32000
	}
	if col <= width {
		return 1
	}
	col -= width
	return (col+width-1)/width + 1
}

// Plines is the exported form of plines.
func (w *Window) Plines(lnum int) int { return w.plines(lnum) }

// cursorVcols returns the first and last screen column of the character
// under the cursor and the column the cursor is shown in: the end of a tab
// in Normal mode, the start otherwise.
func (w *Window) cursorVcols() (start, cursor, end int) {
	line := w.buf.GetLine(w.cursor.Lnum)
	ts := w.buf.opts.Tabstop
	col := w.cursor.Col
	start = cindent.VirtCol(line, col, ts)
	if col >= len(line) {
		return start, start, start
	}
	end = cindent.VirtCol(line, col+charLen(line, col), ts) - 1
	cursor = start
	if line[col] == '\t' && w.engine.mode != ModeInsert {
		cursor = end
	}
	return start, cursor, end
}

func (w *Window) validateVirtcol() {
	w.checkCursorMoved()
	if !w.valid.has(validVirtcol) {
		_, w.virtcol, _ = w.cursorVcols()
		w.valid.set(validVirtcol)
	}
}

func (w *Window) validateCheight() {
	w.checkCursorMoved()
	if !w.valid.has(validCheight) {
		w.clineHeight = w.plines(w.cursor.Lnum)
		w.valid.set(validCheight)
	}
}

// validateCursor makes wrow and wcol valid.
func (w *Window) validateCursor() {
	w.checkCursorMoved()
	if !w.valid.has(validWcol | validWrow) {
		w.CursColumns(true)
	}
}

// setEmptyRows sets the number of "~" rows from the rows used by text.
func (w *Window) setEmptyRows(used int) {
	if used == 0 {
		w.emptyRows = 0
	} else {
		w.emptyRows = w.height - used
	}
}

// validateBotline makes botline valid.
func (w *Window) validateBotline() {
	w.checkCursorMoved()
	if !w.valid.has(validBotline) {
		w.compBotline()
	}
}

// compBotline computes botline and emptyRows, and the cursor line row and
// height on the way.
func (w *Window) compBotline() {
	w.checkCursorMoved()
	var lnum, done int
	if w.valid.has(validCrow) {
		lnum = w.cursor.Lnum
		done = w.clineRow
	} else {
		lnum = w.topline
	}
	n := w.buf.GetLineCount()
	for ; lnum <= n; lnum++ {
		h := w.plines(lnum)
		if lnum == w.cursor.Lnum {
			w.clineRow = done
			w.clineHeight = h
			w.valid.set(validCrow | validCheight)
		}
		if done+h > w.height {
			break
		}
		done += h
	}
	w.botline = lnum
	w.valid.set(validBotline | validBotlineAP)
	w.setEmptyRows(done)
}

// cursRows computes clineRow and clineHeight.
func (w *Window) cursRows() {
	w.clineRow = 0
	for lnum := w.topline; lnum < w.cursor.Lnum; lnum++ {
		w.clineRow += w.plines(lnum)
	}
	w.checkCursorMoved()
	if !w.valid.has(validCheight) {
		w.clineHeight = w.plines(w.cursor.Lnum)
	}
	w.valid.set(validCrow | validCheight)
}

// scrolljumpValue returns the minimal number of lines to scroll.
func (w *Window) scrolljumpValue() int {
	sj := w.engine.opts.Scrolljump
	if sj >= 0 {
		return sj
	}
	return w.height * -sj / 100
}

// scrolloff returns 'scrolloff' limited to what fits in the window.
func (w *Window) scrolloff() int {
	return min(w.opts.Scrolloff, (w.height-1)/2)
}

// checkTopOffset reports whether fewer than 'scrolloff' screen rows are
// above the cursor while topline is not the first line.
func (w *Window) checkTopOffset() bool {
	so := w.scrolloff()
	if w.cursor.Lnum < w.topline+so {
		w.validateCheight()
		n := 0
		lnum := w.cursor.Lnum
		for n < so {
			lnum--
			// stop at a line above the window
			if lnum < w.topline {
				break
			}
			n += w.plines(lnum)
		}
		if n < so {
			return true
		}
	}
	return false
}

// UpdateTopline moves topline so that the cursor is visible with
// 'scrolloff' lines of context, scrolling at least 'scrolljump' lines or
// recentering when the cursor moved far away.
func (w *Window) UpdateTopline() {
	if w.height < 1 {
		return
	}
	w.checkCursorMoved()
	if w.valid.has(validTopline) {
		return
	}
	oldTopline := w.topline
	so := w.scrolloff()

	if w.buf.isEmpty() {
		if w.topline != 1 {
			w.redrawLater(RedrawNotValid)
		}
		w.topline = 1
		w.botline = 2
		w.valid.set(validBotline | validBotlineAP)
	} else {
		checkTopline := false
		checkBotline := false
		if w.topline > 1 {
			if w.cursor.Lnum < w.topline {
				checkTopline = true
			} else if w.checkTopOffset() {
				checkTopline = true
			}
		}
		if checkTopline {
			halfheight := max(w.height/2-1, 2)
			n := w.topline + so - w.cursor.Lnum
			if n >= halfheight {
				w.ScrollCursorHalfway(false, false)
			} else {
				w.ScrollCursorTop(w.scrolljumpValue(), false)
				checkBotline = true
			}
		} else {
			checkBotline = true
		}

		if checkBotline {
			if !w.valid.has(validBotlineAP) {
				w.validateBotline()
			}
			if w.botline <= w.buf.GetLineCount() {
				if w.cursor.Lnum < w.botline {
					if w.cursor.Lnum >= w.botline-so {
						// count the rows below the cursor
						n := w.emptyRows
						h := 0
						for lnum := w.cursor.Lnum; lnum < w.botline; {
							n += h
							if n >= so {
								break
							}
							lnum++
							h = w.plines(lnum)
						}
						if n >= so {
							checkBotline = false
						}
					} else {
						checkBotline = false
					}
				}
				if checkBotline {
					lineCount := w.cursor.Lnum - w.botline + 1 + so
					if lineCount <= w.height+1 {
						w.ScrollCursorBot(w.scrolljumpValue(), false)
					} else {
						w.ScrollCursorHalfway(false, false)
					}
				}
			}
		}
	}
	w.valid.set(validTopline)

	if w.topline != oldTopline {
		w.redrawLater(RedrawValid)
		w.engine.logger.Printf("window %d: topline %d -> %d", w.id, oldTopline, w.topline)
	}
}

// ScrollCursorTop puts the cursor line near the top of the window with
// 'scrolloff' lines above it. Unless always is set topline only moves up,
// and by at least minScroll rows.
func (w *Window) ScrollCursorTop(minScroll int, always bool) {
	oldTopline := w.topline
	off := w.scrolloff()
	n := w.buf.GetLineCount()

	w.validateCheight()
	used := w.clineHeight
	scrolled := 0
	if w.cursor.Lnum < w.topline {
		scrolled = used
	}
	extra := 0
	top := w.cursor.Lnum - 1
	bot := w.cursor.Lnum + 1
	newTopline := top + 1

	for top > 0 {
		i := w.plines(top)
		used += i
		if extra+i <= off && bot < n {
			used += w.plines(bot)
		}
		if used > w.height {
			break
		}
		if top < w.topline {
			scrolled += i
		}
		// scroll at least minScroll rows once scrolling is needed
		if (newTopline >= w.topline || scrolled > minScroll) && extra >= off {
			break
		}
		extra += i
		newTopline = top
		top--
		bot++
	}

	if used > w.height {
		w.ScrollCursorHalfway(false, false)
	} else {
		if newTopline < w.topline || always {
			w.topline = newTopline
		}
		if w.topline > w.cursor.Lnum {
			w.topline = w.cursor.Lnum
		}
		if w.topline != oldTopline {
			w.valid.clear(validWrow | validCrow | validBotline | validBotlineAP)
		}
		w.valid.set(validTopline)
	}
}

// ScrollCursorBot puts the cursor line near the bottom of the window with
// 'scrolloff' lines below it, scrolling at least minScroll rows. With
// setTopbot botline is first placed just below the cursor line.
func (w *Window) ScrollCursorBot(minScroll int, setTopbot bool) {
	cln := w.cursor.Lnum
	n := w.buf.GetLineCount()
	oldTopline := w.topline
	oldBotline := w.botline
	oldValid := w.valid
	oldEmptyRows := w.emptyRows
	so := w.scrolloff()

	if setTopbot {
		used := 0
		w.botline = cln + 1
		for w.topline = w.botline; w.topline > 1; {
			lnum := w.topline - 1
			h := w.plines(lnum)
			if used+h > w.height {
				break
			}
			used += h
			w.topline = lnum
		}
		w.setEmptyRows(used)
		w.valid.set(validBotline | validBotlineAP)
		if w.topline != oldTopline {
			w.valid.clear(validWrow | validCrow)
		}
	} else {
		w.validateBotline()
	}

	// the rows of the cursor line are always used
	used := w.plines(cln)
	scrolled := 0
	extra := 0
	if cln >= w.botline {
		scrolled = used
		if cln == w.botline {
			scrolled -= w.emptyRows
		}
	}

	top, bot := cln, cln
	for top > 1 {
		if ((scrolled <= 0 || scrolled >= minScroll) && extra >= so || bot+1 > n) &&
			top <= w.botline {
			break
		}
		top--
		h := w.plines(top)
		used += h
		if used > w.height {
			break
		}
		if top >= w.botline {
			// rows below the window
			scrolled += h
			if top == w.botline {
				scrolled -= w.emptyRows
			}
		}
		if bot < n {
			bot++
			h := w.plines(bot)
			used += h
			if used > w.height {
				break
			}
			if extra < so || scrolled < minScroll {
				extra += h
				if bot >= w.botline {
					scrolled += h
					if bot == w.botline {
						scrolled -= w.emptyRows
					}
				}
			}
		}
	}

	var lineCount int
	switch {
	case scrolled <= 0:
		lineCount = 0
	case used > w.height:
		lineCount = used
	default:
		// scroll the minimal number of lines
		i := 0
		for lnum := w.topline - 1; i < scrolled && lnum < w.botline; {
			lnum++
			if lnum > n {
				break
			}
			i += w.plines(lnum)
			lineCount++
		}
		if i < scrolled {
			lineCount = 9999
		}
	}

	if lineCount >= w.height && lineCount > minScroll {
		w.ScrollCursorHalfway(false, true)
	} else {
		w.Scrollup(lineCount)
	}

	// topline unchanged: the botline computed above is stale
	if w.topline == oldTopline && setTopbot {
		w.botline = oldBotline
		w.emptyRows = oldEmptyRows
		w.valid = oldValid
	}
	w.valid.set(validTopline)
}

// ScrollCursorHalfway puts the cursor line in the middle of the window.
// With atend the "~" rows after the last line count as used. With
// preferAbove a tie adds a line above the cursor first.
func (w *Window) ScrollCursorHalfway(atend, preferAbove bool) {
	n := w.buf.GetLineCount()
	above, below := 0, 0
	lnumAbove := w.cursor.Lnum
	lnumBelow := w.cursor.Lnum
	used := w.plines(lnumAbove)
	topline := lnumAbove

	for topline > 1 {
		addBelow := below < above || (below == above && !preferAbove)
		if addBelow {
			if lnumBelow < n {
				lnumBelow++
				h := w.plines(lnumBelow)
				used += h
				if used > w.height {
					break
				}
				below += h
			} else {
				// a "~" row
				below++
				if atend {
					used++
				}
			}
		}
		if below > above || (below == above && preferAbove) {
			lnumAbove--
			h := w.plines(lnumAbove)
			used += h
			if used > w.height {
				break
			}
			above += h
			topline = lnumAbove
		}
	}
	w.topline = topline
	w.valid.clear(validWrow | validCrow | validBotline | validBotlineAP)
	w.valid.set(validTopline)
}

// CursColumns computes the cursor virtual column and its row and column in
// the window. With mayScroll and 'nowrap', leftcol follows the cursor with
// 'sidescrolloff' columns of context.
func (w *Window) CursColumns(mayScroll bool) {
	w.UpdateTopline()
	if !w.valid.has(validCrow) {
		w.cursRows()
	}

	startcol, virtcol, endcol := w.cursorVcols()
	w.virtcol = virtcol
	extra := w.colOff()
	w.wcol = w.virtcol + extra
	endcol += extra
	w.wrow = w.clineRow

	textwidth := w.width - extra
	switch {
	case textwidth <= 0:
		// no room for text: cursor in the last cell
		w.wcol = w.width - 1
		w.wrow = w.height - 1
	case w.opts.Wrap:
		width := textwidth
		if w.wcol >= w.width {
			n := (w.wcol-w.width)/width + 1
			w.wcol -= n * width
			w.wrow += n
		}
	case mayScroll:
		siso := min(w.opts.Sidescrolloff, (textwidth-1)/2)
		offLeft := startcol - w.leftcol - siso
		offRight := endcol - (w.leftcol + w.width - siso) + 1
		if offLeft < 0 || offRight > 0 {
			diff := offRight
			if offLeft < 0 {
				diff = -offLeft
			}
			ss := w.engine.opts.Sidescroll
			var newLeftcol int
			if ss == 0 || diff >= textwidth/2 || offRight >= offLeft {
				// far off or no room either side: center the cursor
				newLeftcol = w.wcol - extra - textwidth/2
			} else {
				diff = max(diff, ss)
				if offLeft < 0 {
					newLeftcol = w.leftcol - diff
				} else {
					newLeftcol = w.leftcol + diff
				}
			}
			newLeftcol = max(newLeftcol, 0)
			if newLeftcol != w.leftcol {
				w.leftcol = newLeftcol
				w.redrawLater(RedrawNotValid)
			}
		}
		w.wcol -= w.leftcol
	case w.wcol > w.leftcol:
		w.wcol -= w.leftcol
	default:
		w.wcol = 0
	}

	// a line taller than the window: keep the cursor row inside it
	if w.wrow >= w.height && w.height > 0 {
		w.wrow = w.height - 1
	}
	w.validCursor = w.cursor
	w.validLeftcol = w.leftcol
	w.valid.set(validWcol | validWrow | validVirtcol)
}

// Scrollup scrolls the text up n lines; the cursor stays below topline.
func (w *Window) Scrollup(n int) {
	if n <= 0 {
		return
	}
	lines := w.buf.GetLineCount()
	w.updateCurswant()
	w.topline = min(w.topline+n, lines)
	w.botline = min(w.botline+n, lines+1)
	w.valid.clear(validWrow | validCrow | validBotline)
	if w.cursor.Lnum < w.topline {
		w.cursor.Lnum = w.topline
		w.valid.clear(validWrow | validWcol | validCheight | validCrow | validVirtcol)
		w.coladvance(w.curswant)
	}
	w.redrawLater(RedrawValid)
}

// Scrolldown scrolls the text down n lines; the cursor moves up when it
// would fall off the bottom of the window.
func (w *Window) Scrolldown(n int) {
	w.validateCursor()
	w.updateCurswant()
	done := 0
	for ; n > 0; n-- {
		if w.topline == 1 {
			break
		}
		w.topline--
		done += w.plines(w.topline)
		w.botline--
		w.invalidateBotline()
	}
	w.wrow += done
	w.clineRow += done

	wrow := w.wrow
	if w.opts.Wrap && w.width != 0 {
		w.validateVirtcol()
		w.validateCheight()
		wrow += w.clineHeight - 1 - w.virtcol/w.width
	}
	moved := false
	for wrow >= w.height && w.cursor.Lnum > 1 {
		wrow -= w.plines(w.cursor.Lnum)
		w.cursor.Lnum--
		w.valid.clear(validWrow | validWcol | validCheight | validCrow | validVirtcol)
		moved = true
	}
	if moved {
		w.coladvance(w.curswant)
	}
	w.redrawLater(RedrawValid)
}

// CursorCorrect moves the cursor inside the window, respecting
// 'scrolloff' except where the first or last line is shown.
func (w *Window) CursorCorrect() {
	aboveWanted := w.scrolloff()
	belowWanted := w.scrolloff()
	if w.topline == 1 {
		aboveWanted = 0
		belowWanted = min(belowWanted, w.height/2)
	}
	w.validateBotline()
	if w.botline == w.buf.GetLineCount()+1 {
		belowWanted = 0
		aboveWanted = min(aboveWanted, (w.height-1)/2)
	}

	cln := w.cursor.Lnum
	if cln >= w.topline+aboveWanted && cln < w.botline-belowWanted {
		return
	}

	// narrow the area where the cursor can go from both ends
	topline := w.topline
	botline := w.botline - 1
	above, below := 0, 0
	for (above < aboveWanted || below < belowWanted) && topline < botline {
		if below < belowWanted && (below <= above || above >= aboveWanted) {
			below += w.plines(botline)
			botline--
		} else {
			above += w.plines(topline)
			topline++
		}
	}
	switch {
	case topline == botline || botline == 0:
		w.cursor.Lnum = topline
	case topline > botline:
		w.cursor.Lnum = botline
	default:
		if cln < topline && w.topline > 1 {
			w.cursor.Lnum = topline
			w.valid.clear(validWrow | validWcol | validCheight | validCrow)
		}
		if cln > botline && w.botline <= w.buf.GetLineCount() {
			w.cursor.Lnum = botline
			w.valid.clear(validWrow | validWcol | validCheight | validCrow)
		}
	}
	w.valid.set(validTopline)
}

// Halfpage scrolls half a window, or 'scroll' lines, down (CTRL-D) or up
// (CTRL-U) and moves the cursor the same number of lines. A count sets
// 'scroll'.
func (w *Window) Halfpage(down bool, count int) {
	if count > 0 {
		w.opts.Scroll = min(count, w.height)
	}
	n := w.opts.Scroll
	if n <= 0 || n > w.height {
		n = max(w.height/2, 1)
	}
	lines := w.buf.GetLineCount()

	w.UpdateTopline()
	w.validateBotline()
	room := w.emptyRows
	scrolled := 0
	if down {
		for n > 0 && w.botline <= lines {
			i := w.plines(w.topline)
			n -= i
			if n < 0 && scrolled > 0 {
				break
			}
			w.topline++
			if w.cursor.Lnum < lines {
				w.cursor.Lnum++
				w.valid.clear(validVirtcol | validCheight | validWcol)
			}
			w.valid.clear(validCrow | validWrow)
			scrolled += i

			// correct botline for the changed topline
			room += i
			for w.botline <= lines {
				i = w.plines(w.botline)
				if i > room {
					break
				}
				w.botline++
				room -= i
			}
		}
		// hit the end of the file: move the cursor down
		if n > 0 {
			w.cursor.Lnum = min(w.cursor.Lnum+n, lines)
		}
	} else {
		for n > 0 && w.topline > 1 {
			i := w.plines(w.topline - 1)
			n -= i
			if n < 0 && scrolled > 0 {
				break
			}
			w.topline--
			w.valid.clear(validCrow | validWrow | validBotline | validBotlineAP)
			scrolled += i
			if w.cursor.Lnum > 1 {
				w.cursor.Lnum--
				w.valid.clear(validVirtcol | validCheight | validWcol)
			}
		}
		// hit the top of the file: move the cursor up
		if n > 0 {
			w.cursor.Lnum = max(w.cursor.Lnum-n, 1)
		}
	}
	w.CursorCorrect()
	w.beginLine(blSol | blFix)
	w.redrawLater(RedrawValid)
}

// Onepage scrolls count windows forward (CTRL-F) or backward (CTRL-B),
// keeping two lines of overlap. It fails at either end of the buffer.
func (w *Window) Onepage(dir Direction, count int) error {
	lines := w.buf.GetLineCount()
	count = max(count, 1)
	w.validateBotline()
	for ; count > 0; count-- {
		if dir == Forward {
			if w.topline >= lines || (w.botline > lines && w.cursor.Lnum >= lines) {
				return ErrNoJump
			}
			if w.botline > lines {
				w.topline = lines
			} else {
				// keep two lines of overlap when they fit
				w.topline = max(w.botline-2, w.topline+1)
			}
			w.cursor.Lnum = w.topline
		} else {
			if w.topline == 1 {
				return ErrNoJump
			}
			// the old topline and the line above it stay visible
			bottom := min(w.topline+1, lines)
			used := 0
			top := bottom
			for top >= 1 {
				h := w.plines(top)
				if used+h > w.height {
					break
				}
				used += h
				top--
			}
			newTop := max(top+1, 1)
			if newTop >= w.topline {
				newTop = w.topline - 1
			}
			w.topline = max(newTop, 1)
			w.cursor.Lnum = bottom
		}
		w.valid.clear(validAll)
		w.compBotline()
	}
	w.CursorCorrect()
	w.checkCursor()
	w.beginLine(blSol | blFix)
	w.valid.set(validTopline)
	w.redrawLater(RedrawValid)
	return nil
}

// ScrollCursor implements zt, zz and zb: 't' puts the cursor line at the
// top, 'z' in the middle and 'b' at the bottom.
func (w *Window) ScrollCursor(where byte) {
	switch where {
	case 't':
		w.ScrollCursorTop(0, true)
	case 'z':
		w.ScrollCursorHalfway(true, false)
	case 'b':
		w.ScrollCursorBot(0, true)
	}
	w.redrawLater(RedrawValid)
}
