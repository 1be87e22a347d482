package govim

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// exRange is the line range in front of an ex command.
type exRange struct {
	line1, line2 int
	given        bool
}

// parseRange reads "N", "N,M", "%", "." and "$" at the start of cmd.
func (e *GoEngine) parseRange(cmd string) (exRange, string, error) {
	cur := e.currentWindow.cursor.Lnum
	last := e.currentBuffer.GetLineCount()
	r := exRange{line1: cur, line2: cur}
	if strings.HasPrefix(cmd, "%") {
		return exRange{1, last, true}, cmd[1:], nil
	}
	addr := func(s string) (int, string, bool) {
		switch {
		case strings.HasPrefix(s, "."):
			return cur, s[1:], true
		case strings.HasPrefix(s, "$"):
			return last, s[1:], true
		}
		i := 0
		for i < len(s) && isDigitByte(s[i]) {
			i++
		}
		if i == 0 {
			return 0, s, false
		}
		n, _ := strconv.Atoi(s[:i])
		return n, s[i:], true
	}
	n, rest, ok := addr(cmd)
	if !ok {
		return r, cmd, nil
	}
	r = exRange{n, n, true}
	if strings.HasPrefix(rest, ",") {
		m, rest2, ok := addr(rest[1:])
		if !ok {
			return r, cmd, fmt.Errorf("%w: %s", ErrLineOutOfRange, cmd)
		}
		r.line2 = m
		rest = rest2
	}
	if r.line1 > r.line2 {
		r.line1, r.line2 = r.line2, r.line1
	}
	if r.line1 < 0 || r.line2 > last {
		return r, rest, fmt.Errorf("%w: %s", ErrLineOutOfRange, cmd)
	}
	return r, rest, nil
}

// Execute runs an ex command line (without the leading ':'). Listings are
// written to out.
func (e *GoEngine) Execute(cmdline string, out io.Writer) error {
	cmdline = strings.TrimSpace(strings.TrimPrefix(cmdline, ":"))
	r, cmdline, err := e.parseRange(cmdline)
	if err != nil {
		return err
	}
	name := cmdline
	arg := ""
	if i := strings.IndexAny(cmdline, " \t"); i >= 0 {
		name, arg = cmdline[:i], strings.TrimSpace(cmdline[i:])
	}
	bang := strings.HasSuffix(name, "!")
	name = strings.TrimSuffix(name, "!")

	switch {
	case name == "" && r.given:
		// ":N" jumps to line N
		e.SetPcmark()
		w := e.currentWindow
		w.cursor.Lnum = max(min(r.line2, e.currentBuffer.GetLineCount()), 1)
		w.beginLine(blSol | blFix)
		e.CheckPcmark()
		return nil
	case abbrev(name, "marks", 5):
		return e.WriteMarks(out, arg)
	case abbrev(name, "delmarks", 4):
		return e.DelMarks(arg, bang)
	case abbrev(name, "jumps", 2):
		e.WriteJumps(out)
		return nil
	case abbrev(name, "changes", 7):
		e.WriteChanges(out)
		return nil
	case abbrev(name, "clearjumps", 3):
		e.currentWindow.ClearJumplist()
		return nil
	case abbrev(name, "mark", 2) || abbrev(name, "k", 1):
		if len(arg) != 1 {
			return ErrArgRequired
		}
		return e.SetMarkPos(arg[0], Pos{Lnum: r.line2}, e.currentBuffer.id)
	case len(name) == 2 && name[0] == 'k' && arg == "":
		// ":ka" needs no space
		return e.SetMarkPos(name[1], Pos{Lnum: r.line2}, e.currentBuffer.id)
	case abbrev(name, "keepjumps", 5):
		var err error
		e.KeepJumps(func() { err = e.Execute(arg, out) })
		return err
	case abbrev(name, "lockmarks", 3):
		var err error
		e.LockMarks(func() { err = e.Execute(arg, out) })
		return err
	case abbrev(name, "set", 2):
		for _, a := range strings.Fields(arg) {
			if err := e.SetOption(a); err != nil {
				return err
			}
		}
		return nil
	case name == ">" || name == "<":
		if !r.given {
			r.line1, r.line2 = e.currentWindow.cursor.Lnum, e.currentWindow.cursor.Lnum
		}
		e.BeginChange()
		return e.ShiftLines(r.line1, r.line2, name == "<", 1)
	case abbrev(name, "delete", 1):
		e.BeginChange()
		return e.DeleteLines(r.line1, r.line2)
	case abbrev(name, "normal", 4):
		return e.Normal(arg)
	case abbrev(name, "write", 1):
		return e.currentBuffer.Write()
	case abbrev(name, "edit", 1):
		_, err := e.BufferOpen(arg, 1)
		return err
	}
	return fmt.Errorf("E492: Not an editor command: %s", cmdline)
}

// abbrev reports whether name is full shortened to at least n letters.
func abbrev(name, full string, n int) bool {
	return len(name) >= n && len(name) <= len(full) && strings.HasPrefix(full, name)
}
