package govim

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// MarkEntry is one line of the ":marks" listing.
type MarkEntry struct {
	Name    byte
	Pos     Pos
	Text    string // the line text, or the file name for a mark in another file
	Current bool   // the mark is in the current buffer
}

// JumpEntry is one line of the ":jumps" listing.
type JumpEntry struct {
	Current  bool // the entry the index points at
	Distance int  // number of entries from the current index
	Pos      Pos
	Text     string
	InBuffer bool // the jump is in the current buffer
}

// ChangeEntry is one line of the ":changes" listing.
type ChangeEntry struct {
	Current  bool
	Distance int
	Pos      Pos
	Text     string
}

// markLine returns the text of the line of p with leading white space
// removed, cut to the window width minus leadLen columns.
func (e *GoEngine) markLine(p Pos, leadLen int) string {
	b := e.currentBuffer
	if p.Lnum == 0 || p.Lnum > b.GetLineCount() {
		return "-invalid-"
	}
	s := strings.TrimLeft(b.GetLine(p.Lnum), " \t")
	width := e.currentWindow.width - leadLen
	if width < 1 {
		width = 1
	}
	return runewidth.Truncate(s, width, "")
}

// fmName returns what the listings show for a file mark: the line text
// when it is in the current buffer, the file name otherwise.
func (e *GoEngine) fmName(fm FileMark, leadLen int) (string, bool) {
	if fm.BufID == e.currentBuffer.id {
		return e.markLine(fm.Pos, leadLen), true
	}
	if b, ok := e.buffers[fm.BufID]; ok {
		return b.name, b.name != ""
	}
	if fm.FileName != "" {
		return fm.FileName, true
	}
	return "", false
}

// Marks returns the entries of ":marks {arg}". An empty arg lists every
// mark that is set; otherwise only the marks named in arg.
func (e *GoEngine) Marks(arg string) ([]MarkEntry, error) {
	b := e.currentBuffer
	w := e.currentWindow
	var out []MarkEntry
	add := func(c byte, p Pos, name string, current bool) {
		if arg != "" && strings.IndexByte(arg, c) < 0 {
			return
		}
		if p.Lnum == 0 {
			return
		}
		if name == "" && current {
			name = e.markLine(p, 15)
		}
		out = append(out, MarkEntry{Name: c, Pos: p, Text: name, Current: current})
	}

	add('\'', w.pcmark, "", true)
	for i, p := range b.namedm {
		add(byte('a'+i), p, "", true)
	}
	for i := range e.namedfm {
		fm := e.namedfm[i]
		c := byte('A' + i)
		if i >= nMarks {
			c = byte('0' + i - nMarks)
		}
		name, ok := e.fmName(fm, 15)
		if !ok || fm.Pos.Lnum == 0 {
			continue
		}
		add(c, fm.Pos, name, fm.BufID == b.id)
	}
	add('"', b.lastCursor, "", true)
	add('[', b.opStart, "", true)
	add(']', b.opEnd, "", true)
	add('^', b.lastInsert, "", true)
	add('.', b.lastChange, "", true)
	lt := visualMarkPos(b, '<')
	gt := b.visual.Start
	if lt == b.visual.Start {
		gt = b.visual.End
	}
	add('<', lt, "", true)
	add('>', gt, "", true)

	if len(out) == 0 {
		if arg == "" {
			return nil, ErrNoMarks
		}
		return nil, fmt.Errorf("E283: No marks matching %q", arg)
	}
	return out, nil
}

// Jumps returns the entries of ":jumps" after removing duplicates. The
// returned index is where the current position is; it equals the number
// of entries when the cursor is past the newest one.
func (e *GoEngine) Jumps() ([]JumpEntry, int) {
	w := e.currentWindow
	e.cleanupJumplist(w, true)
	var out []JumpEntry
	cur := len(w.jumplist)
	for i, fm := range w.jumplist {
		if fm.Pos.Lnum == 0 {
			continue
		}
		name, ok := e.fmName(fm, 16)
		if !ok {
			if i != w.jumplistIdx {
				continue
			}
			name = "-invalid-"
		}
		if i == w.jumplistIdx {
			cur = len(out)
		}
		out = append(out, JumpEntry{
			Current:  i == w.jumplistIdx,
			Distance: abs(i - w.jumplistIdx),
			Pos:      fm.Pos,
			Text:     name,
			InBuffer: fm.BufID == w.buf.id,
		})
	}
	return out, cur
}

// Changes returns the entries of ":changes".
func (e *GoEngine) Changes() ([]ChangeEntry, int) {
	b := e.currentBuffer
	w := e.currentWindow
	var out []ChangeEntry
	cur := len(b.changelist)
	for i, p := range b.changelist {
		if p.Lnum == 0 {
			continue
		}
		if i == w.changelistIdx {
			cur = len(out)
		}
		out = append(out, ChangeEntry{
			Current:  i == w.changelistIdx,
			Distance: abs(i - w.changelistIdx),
			Pos:      p,
			Text:     e.markLine(p, 17),
		})
	}
	return out, cur
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// WriteMarks prints ":marks {arg}" to out.
func (e *GoEngine) WriteMarks(out io.Writer, arg string) error {
	entries, err := e.Marks(arg)
	if err != nil {
		return err
	}
	fmt.Fprint(out, "mark line  col file/text\n")
	for _, m := range entries {
		fmt.Fprintf(out, " %c %6d %4d %s\n", m.Name, m.Pos.Lnum, m.Pos.Col, m.Text)
	}
	return nil
}

// WriteJumps prints ":jumps" to out.
func (e *GoEngine) WriteJumps(out io.Writer) {
	entries, _ := e.Jumps()
	w := e.currentWindow
	fmt.Fprint(out, " jump line  col file/text\n")
	for _, j := range entries {
		mark := ' '
		if j.Current {
			mark = '>'
		}
		fmt.Fprintf(out, "%c %2d %5d %4d %s\n", mark, j.Distance, j.Pos.Lnum, j.Pos.Col, j.Text)
	}
	if w.jumplistIdx == len(w.jumplist) {
		fmt.Fprint(out, ">\n")
	}
}

// WriteChanges prints ":changes" to out.
func (e *GoEngine) WriteChanges(out io.Writer) {
	entries, _ := e.Changes()
	fmt.Fprint(out, "change line  col text\n")
	for _, c := range entries {
		mark := ' '
		if c.Current {
			mark = '>'
		}
		fmt.Fprintf(out, "%c %3d %5d %4d %s\n", mark, c.Distance, c.Pos.Lnum, c.Pos.Col, c.Text)
	}
	if e.currentWindow.changelistIdx == len(e.currentBuffer.changelist) {
		fmt.Fprint(out, ">\n")
	}
}
