package govim

// JumpListSize is the maximum number of entries in a jumplist and in a
// changelist.
const JumpListSize = 100

// pushJump adds fm as the newest jumplist entry and moves the index past
// it. With stack set, the entries after the current index are dropped
// first.
func (w *Window) pushJump(fm FileMark, stack bool) {
	if stack && w.jumplistIdx < len(w.jumplist)-1 {
		w.jumplist = w.jumplist[:w.jumplistIdx+1]
	}
	if len(w.jumplist) >= JumpListSize {
		copy(w.jumplist, w.jumplist[1:])
		w.jumplist = w.jumplist[:JumpListSize-1]
	}
	w.jumplist = append(w.jumplist, fm)
	w.jumplistIdx = len(w.jumplist)
}

// Jumplist returns a copy of the jumplist and the current index. An index
// equal to the length means the cursor is past the newest entry.
func (w *Window) Jumplist() ([]FileMark, int) {
	out := make([]FileMark, len(w.jumplist))
	copy(out, w.jumplist)
	return out, w.jumplistIdx
}

// ClearJumplist empties the jumplist, like ":clearjumps".
func (w *Window) ClearJumplist() {
	w.jumplist = w.jumplist[:0]
	w.jumplistIdx = 0
}

// cleanupJumplist removes duplicate entries, keeping the newest of each
// (buffer, line) pair. With stack set only adjacent duplicates go. With
// loadFiles the file names of marks read from the history are resolved
// first and an entry for the cursor line just before the index is dropped.
func (e *GoEngine) cleanupJumplist(w *Window, loadFiles bool) {
	if loadFiles {
		for i := range w.jumplist {
			fm := &w.jumplist[i]
			if fm.BufID == 0 && fm.Pos.Lnum != 0 && fm.FileName != "" {
				e.resolveFileMark(fm)
			}
		}
	}

	stack := e.opts.jumpStack()
	n := len(w.jumplist)
	to := 0
	for from := 0; from < n; from++ {
		if w.jumplistIdx == from {
			w.jumplistIdx = to
		}
		cur := w.jumplist[from]
		i := from + 1
		for ; i < n; i++ {
			if w.jumplist[i].BufID == cur.BufID && cur.BufID != 0 &&
				w.jumplist[i].Pos.Lnum == cur.Pos.Lnum {
				break
			}
		}
		var drop bool
		switch {
		case i >= n:
			drop = false
		case i > from+1:
			drop = !stack
		default:
			drop = true
		}
		if !drop {
			w.jumplist[to] = cur
			to++
		}
	}
	if w.jumplistIdx == n {
		w.jumplistIdx = to
	}
	w.jumplist = w.jumplist[:to]

	if loadFiles && len(w.jumplist) > 0 && w.jumplistIdx == len(w.jumplist) {
		last := w.jumplist[len(w.jumplist)-1]
		if last.BufID == w.buf.id && last.Pos.Lnum == w.cursor.Lnum {
			w.jumplist = w.jumplist[:len(w.jumplist)-1]
			w.jumplistIdx--
		}
	}
}

// JumpOlder moves count entries back in the jumplist (forward for a
// negative count), like CTRL-O and CTRL-I. The first move back from past
// the newest entry records the cursor position. Entries whose buffer is
// gone are skipped. When the entry is in another buffer that buffer is
// made current and the status is MarkJumped.
func (e *GoEngine) JumpOlder(count int) (MarkResult, error) {
	w := e.currentWindow
	e.cleanupJumplist(w, true)
	if len(w.jumplist) == 0 {
		return MarkResult{Status: MarkNotSet}, ErrNoJump
	}
	count = -count
	for {
		if w.jumplistIdx+count < 0 || w.jumplistIdx+count >= len(w.jumplist) {
			return MarkResult{Status: MarkNotSet}, ErrNoJump
		}
		if w.jumplistIdx == len(w.jumplist) {
			e.SetPcmark()
			w.jumplistIdx--
			if w.jumplistIdx+count < 0 {
				return MarkResult{Status: MarkNotSet}, ErrNoJump
			}
		}
		w.jumplistIdx += count

		jmp := &w.jumplist[w.jumplistIdx]
		if jmp.BufID == 0 && jmp.FileName != "" {
			e.resolveFileMark(jmp)
		}
		if jmp.BufID == w.buf.id {
			if err := e.CheckMark(jmp.Pos); err != nil {
				return MarkResult{Pos: jmp.Pos, Status: MarkNotSet}, err
			}
			w.cursor = jmp.Pos
			w.checkCursor()
			w.setCurswant = true
			return MarkResult{Pos: jmp.Pos, Status: MarkOK}, nil
		}

		if _, ok := e.buffers[jmp.BufID]; !ok {
			if count < 0 {
				count--
			} else {
				count++
			}
			continue
		}
		pos := jmp.Pos
		if err := e.getFile(jmp.BufID, pos.Lnum, false); err != nil {
			return MarkResult{Status: MarkLoadFailed}, err
		}
		w.cursor = pos
		w.checkCursor()
		return MarkResult{Pos: pos, Status: MarkJumped}, nil
	}
}

// JumpNewer is JumpOlder in the other direction.
func (e *GoEngine) JumpNewer(count int) (MarkResult, error) {
	return e.JumpOlder(-count)
}
