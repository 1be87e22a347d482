package govim

// BeginChange starts a new undoable change: the next change made to the
// current buffer may add a changelist entry.
func (e *GoEngine) BeginChange() {
	e.currentBuffer.newChange = true
}

// Changelist returns a copy of the changelist of the current buffer and
// the index of the current window in it.
func (e *GoEngine) Changelist() ([]Pos, int) {
	b := e.currentBuffer
	out := make([]Pos, len(b.changelist))
	copy(out, b.changelist)
	return out, e.currentWindow.changelistIdx
}

// recordChange sets the '. mark and updates the changelist for a change at
// lnum, col of the current buffer. A change on the same line as the last
// entry and within 'textwidth' (79 when unset) columns of it replaces that
// entry instead of adding one.
func (e *GoEngine) recordChange(lnum, col int) {
	b := e.currentBuffer
	if e.lockMarks {
		return
	}
	b.lastChange = Pos{Lnum: lnum, Col: col}
	if e.keepJumps {
		return
	}

	if b.newChange || len(b.changelist) == 0 {
		add := true
		if len(b.changelist) > 0 {
			p := b.changelist[len(b.changelist)-1]
			if p.Lnum == lnum {
				cols := b.opts.Textwidth
				if cols == 0 {
					cols = 79
				}
				add = p.Col+cols < col || col+cols < p.Col
			}
		}
		if add {
			b.newChange = false
			if len(b.changelist) == JumpListSize {
				copy(b.changelist, b.changelist[1:])
				b.changelist = b.changelist[:JumpListSize-1]
				for _, w := range e.windows {
					if w.buf == b && w.changelistIdx > 0 {
						w.changelistIdx--
					}
				}
			}
			for _, w := range e.windows {
				if w.buf == b && w.changelistIdx == len(b.changelist) {
					w.changelistIdx++
				}
			}
			b.changelist = append(b.changelist, Pos{})
		}
	}
	b.changelist[len(b.changelist)-1] = b.lastChange
	e.currentWindow.changelistIdx = len(b.changelist)
}

// ChangeOlder moves count entries back in the changelist (forward for a
// negative count), like "g;" and "g,". A count past either end stops at
// the end, unless the window is already there.
func (e *GoEngine) ChangeOlder(count int) (Pos, error) {
	b := e.currentBuffer
	w := e.currentWindow
	if len(b.changelist) == 0 {
		return Pos{}, ErrEmptyChangelist
	}
	count = -count
	n := w.changelistIdx
	switch {
	case n+count < 0:
		if n == 0 {
			return Pos{}, ErrNoChange
		}
		n = 0
	case n+count >= len(b.changelist):
		if n == len(b.changelist)-1 {
			return Pos{}, ErrChangelistEnd
		}
		n = len(b.changelist) - 1
	default:
		n += count
	}
	w.changelistIdx = n
	p := b.changelist[n]
	if err := e.CheckMark(p); err != nil {
		return p, err
	}
	w.cursor = p
	w.checkCursor()
	w.setCurswant = true
	return p, nil
}
