package govim

// lineShift is one MarkAdjust call: lines line1..line2 move by amount
// (MaxLnum deletes them) and lines below line2 move by amountAfter.
type lineShift struct {
	line1, line2        int
	amount, amountAfter int
}

// adjust moves a mark line. Marks in a deleted range are cleared.
func (s lineShift) adjust(lp *int) {
	if *lp >= s.line1 && *lp <= s.line2 {
		if s.amount == MaxLnum {
			*lp = 0
		} else {
			*lp += s.amount
		}
	} else if s.amountAfter != 0 && *lp > s.line2 {
		*lp += s.amountAfter
	}
}

// adjustNoDel is adjust for marks that must survive a deletion: they move
// to the first deleted line instead.
func (s lineShift) adjustNoDel(lp *int) {
	if *lp >= s.line1 && *lp <= s.line2 {
		if s.amount == MaxLnum {
			*lp = s.line1
		} else {
			*lp += s.amount
		}
	} else if s.amountAfter != 0 && *lp > s.line2 {
		*lp += s.amountAfter
	}
}

// MarkAdjust updates every mark of the current buffer after lines
// line1..line2 moved by amount and the lines below line2 moved by
// amountAfter. An amount of MaxLnum means the lines were deleted: buffer
// marks in the range are cleared, while file marks, the changelist, the
// jumplists and the Visual area move to line1. Other windows on the buffer
// get their topline and cursor moved along.
func (e *GoEngine) MarkAdjust(line1, line2, amount, amountAfter int) {
	if line2 < line1 && amountAfter == 0 {
		return
	}
	s := lineShift{line1, line2, amount, amountAfter}
	b := e.currentBuffer
	cw := e.currentWindow

	if !e.lockMarks {
		for i := range b.namedm {
			s.adjust(&b.namedm[i].Lnum)
		}
		for i := range e.namedfm {
			if e.namedfm[i].BufID == b.id {
				s.adjustNoDel(&e.namedfm[i].Pos.Lnum)
			}
		}
		s.adjust(&b.lastInsert.Lnum)
		s.adjust(&b.lastChange.Lnum)
		if b.lastCursor != (Pos{Lnum: 1}) {
			s.adjust(&b.lastCursor.Lnum)
		}
		for i := range b.changelist {
			s.adjustNoDel(&b.changelist[i].Lnum)
		}
		s.adjustNoDel(&b.visual.Start.Lnum)
		s.adjustNoDel(&b.visual.End.Lnum)
		s.adjust(&b.opStart.Lnum)
		s.adjust(&b.opEnd.Lnum)
		s.adjust(&cw.pcmark.Lnum)
		s.adjust(&cw.prevPcmark.Lnum)
	}

	for _, w := range e.windows {
		if !e.lockMarks {
			// deleting lines may create duplicates, cleanupJumplist removes them
			for i := range w.jumplist {
				if w.jumplist[i].BufID == b.id {
					s.adjustNoDel(&w.jumplist[i].Pos.Lnum)
				}
			}
		}
		if w.buf != b || w == cw {
			continue
		}
		if w.topline >= line1 && w.topline <= line2 {
			if amount == MaxLnum {
				w.topline = max(line1-1, 1)
			} else if w.topline > line1 {
				// inserting just above the topline shows the new lines
				w.topline += amount
			}
		} else if amountAfter != 0 && w.topline > line2 {
			w.topline += amountAfter
		}
		if w.cursor.Lnum >= line1 && w.cursor.Lnum <= line2 {
			if amount == MaxLnum {
				w.cursor.Lnum = max(line1-1, 1)
				w.cursor.Col = 0
			} else {
				w.cursor.Lnum += amount
			}
		} else if amountAfter != 0 && w.cursor.Lnum > line2 {
			w.cursor.Lnum += amountAfter
		}
		w.valid.clear(validAll)
	}
}

// MarkColAdjust updates the marks on line lnum at or after column minCol:
// they move lnumAmount lines and colAmount columns. A mark that would move
// before column 0 goes to column 0; one inside the first spacesRemoved
// columns lands just after the removed spaces.
func (e *GoEngine) MarkColAdjust(lnum, minCol, lnumAmount, colAmount, spacesRemoved int) {
	if (colAmount == 0 && lnumAmount == 0) || e.lockMarks {
		return
	}
	b := e.currentBuffer
	cw := e.currentWindow
	adjust := func(p *Pos) {
		if p.Lnum != lnum || p.Col < minCol {
			return
		}
		p.Lnum += lnumAmount
		switch {
		case colAmount < 0 && p.Col <= -colAmount:
			p.Col = 0
		case p.Col < spacesRemoved:
			p.Col = colAmount + spacesRemoved
		default:
			p.Col += colAmount
		}
	}

	for i := range b.namedm {
		adjust(&b.namedm[i])
	}
	for i := range e.namedfm {
		if e.namedfm[i].BufID == b.id {
			adjust(&e.namedfm[i].Pos)
		}
	}
	adjust(&b.lastInsert)
	adjust(&b.lastChange)
	for i := range b.changelist {
		adjust(&b.changelist[i])
	}
	adjust(&b.visual.Start)
	adjust(&b.visual.End)
	adjust(&cw.pcmark)
	adjust(&cw.prevPcmark)

	for _, w := range e.windows {
		for i := range w.jumplist {
			if w.jumplist[i].BufID == b.id {
				adjust(&w.jumplist[i].Pos)
			}
		}
		if w.buf == b && w != cw {
			adjust(&w.cursor)
		}
	}
}
