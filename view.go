package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"gopkg.in/tomb.v2"

	"github.com/slzatz/vimcore/rawmode"
	"github.com/slzatz/vimcore/terminal"
	"github.com/slzatz/vimcore/vim/govim"
)

var (
	statusStyle  = lipgloss.NewStyle().Reverse(true)
	messageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	fillerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
)

// viewer shows one file in the whole terminal.
type viewer struct {
	e     *govim.GoEngine
	out   *bufio.Writer
	lexer chroma.Lexer
	style string
	color bool

	rows, cols int
	message    string
	cmdline    []rune
	inCmdline  bool
	quit       bool
	stamp      fileStamp // of the file as last read or written here
}

// expandTabs replaces each tab of s by the spaces up to the next tab stop.
func expandTabs(s string, ts int) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var sb strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			n := ts - col%ts
			sb.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		sb.WriteRune(r)
		col += runewidth.RuneWidth(r)
	}
	return sb.String()
}

// wrapCells cuts s into pieces at most width cells wide. A wide character
// that does not fit at the end of a piece starts the next one.
func wrapCells(s string, width int) []string {
	if width < 1 {
		width = 1
	}
	var parts []string
	start, cells := 0, 0
	for i, r := range s {
		rw := runewidth.RuneWidth(r)
		if cells+rw > width {
			parts = append(parts, s[start:i])
			start, cells = i, 0
		}
		cells += rw
	}
	return append(parts, s[start:])
}

// sliceCells returns the part of s from cell left that fits in width cells.
func sliceCells(s string, left, width int) string {
	cells := 0
	for i, r := range s {
		if cells >= left {
			return runewidth.Truncate(s[i:], width, "")
		}
		cells += runewidth.RuneWidth(r)
	}
	return ""
}

// renderRows returns the text of every row of w, without colors. Rows
// after the last line show "~"; a wrapped line that does not fit at the
// bottom shows "@" rows like vim does.
func renderRows(w *govim.Window) []string {
	b := w.Buffer()
	height, width := w.Size()
	opts := w.Options()
	ts := b.Options().Tabstop
	off := 0
	if opts.Number {
		off = max(len(strconv.Itoa(b.GetLineCount())), 3) + 1
	}

	rows := make([]string, 0, height)
	for lnum := w.Topline(); lnum <= b.GetLineCount() && len(rows) < height; lnum++ {
		text := expandTabs(b.GetLine(lnum), ts)
		var parts []string
		if opts.Wrap {
			parts = wrapCells(text, width-off)
		} else {
			parts = []string{sliceCells(text, w.Leftcol(), width-off)}
		}
		if len(rows)+len(parts) > height && lnum != w.Topline() {
			for len(rows) < height {
				rows = append(rows, "@")
			}
			break
		}
		for i, p := range parts {
			if len(rows) == height {
				break
			}
			prefix := ""
			switch {
			case off > 0 && i == 0:
				prefix = fmt.Sprintf("%*d ", off-1, lnum)
			case off > 0:
				prefix = strings.Repeat(" ", off)
			}
			rows = append(rows, prefix+p)
		}
	}
	for len(rows) < height {
		rows = append(rows, "~")
	}
	return rows
}

// statusLine is the last screen row: the command line while one is typed,
// else the message and the cursor position.
func (v *viewer) statusLine() string {
	if v.inCmdline {
		return ":" + string(v.cmdline)
	}
	w := v.e.WindowGetCurrent()
	b := w.Buffer()
	cur := w.Cursor()
	name := b.GetName()
	if name == "" {
		name = "[No Name]"
	}
	if b.IsModified() {
		name += " [+]"
	}
	mode := ""
	if v.e.GetMode() == govim.ModeInsert {
		mode = "-- INSERT -- "
	}
	pos := fmt.Sprintf("%d,%d  %d%%", cur.Lnum, cur.Col+1, 100*cur.Lnum/max(b.GetLineCount(), 1))
	left := mode + name
	if v.message != "" {
		left = v.message
	}
	pad := v.cols - runewidth.StringWidth(left) - runewidth.StringWidth(pos)
	if pad < 1 {
		left = runewidth.Truncate(left, max(v.cols-runewidth.StringWidth(pos)-1, 0), "")
		pad = 1
	}
	line := left + strings.Repeat(" ", pad) + pos
	if v.message != "" {
		return messageStyle.Render(line)
	}
	return statusStyle.Render(line)
}

func (v *viewer) draw() {
	w := v.e.WindowGetCurrent()
	v.out.WriteString("\x1b[?25l\x1b[H")
	for i, row := range renderRows(w) {
		switch {
		case row == "~" || row == "@":
			row = fillerStyle.Render(row)
		case v.color:
			row = highlightLine(row, v.lexer, v.style)
		}
		v.out.WriteString(row)
		v.out.WriteString("\x1b[K")
		if i < v.rows-1 {
			v.out.WriteString("\r\n")
		}
	}
	v.out.WriteString("\r\n" + v.statusLine() + "\x1b[K")
	if v.inCmdline {
		fmt.Fprintf(v.out, "\x1b[%d;%dH", v.rows, len(v.cmdline)+2)
	} else {
		r, c := w.ScreenPos()
		fmt.Fprintf(v.out, "\x1b[%d;%dH", r+1, c+1)
	}
	v.out.WriteString("\x1b[?25h")
	v.out.Flush()
}

// resize gives the window all of the terminal but the status row.
func (v *viewer) resize() error {
	ws, err := rawmode.GetWinsize(int(os.Stdout.Fd()))
	if err != nil {
		return err
	}
	v.rows, v.cols = int(ws.Row), int(ws.Col)
	v.e.WindowGetCurrent().SetSize(max(v.rows-1, 1), v.cols)
	return nil
}

// showOutput puts the output of an ex command on the screen and waits for
// a key when it is more than one line.
func (v *viewer) showOutput(text string, keys <-chan terminal.Key) {
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	if len(lines) == 1 {
		v.message = lines[0]
		return
	}
	v.out.WriteString("\x1b[2J\x1b[H")
	for _, l := range lines {
		v.out.WriteString(l + "\r\n")
	}
	v.out.WriteString("Press any key to continue")
	v.out.Flush()
	<-keys
}

func (v *viewer) cmdlineKey(k terminal.Key, keys <-chan terminal.Key) {
	switch {
	case k.Regular == '\r' || k.Regular == '\n':
		v.inCmdline = false
		cmd := string(v.cmdline)
		v.cmdline = v.cmdline[:0]
		if cmd == "q" || cmd == "q!" || cmd == "wq" {
			if cmd == "wq" {
				if err := v.e.BufferGetCurrent().Write(); err != nil {
					v.message = err.Error()
					return
				}
			}
			v.quit = true
			return
		}
		var sb strings.Builder
		err := v.e.Execute(cmd, &sb)
		v.stamp = stampOf(v.e.BufferGetCurrent().GetName())
		if err != nil {
			v.message = err.Error()
			return
		}
		if sb.Len() > 0 {
			v.showOutput(sb.String(), keys)
		}
	case k.Regular == 27:
		v.inCmdline = false
		v.cmdline = v.cmdline[:0]
	case k.Regular == 127 || k.Regular == 8:
		if len(v.cmdline) == 0 {
			v.inCmdline = false
			return
		}
		v.cmdline = v.cmdline[:len(v.cmdline)-1]
	case k.Special == terminal.KeyNoSpl && k.Regular >= ' ':
		v.cmdline = append(v.cmdline, k.Regular)
	}
}

func (v *viewer) key(k terminal.Key, keys <-chan terminal.Key) {
	if v.inCmdline {
		v.cmdlineKey(k, keys)
		return
	}
	v.message = ""
	if v.e.GetMode() != govim.ModeInsert && !v.e.Pending() {
		switch k.Regular {
		case ':':
			v.inCmdline = true
			return
		case 'q':
			v.quit = true
			return
		}
	}
	s := k.Vim()
	if s == "" {
		return
	}
	v.e.Input(s)
	if err := v.e.LastError(); err != nil {
		v.message = err.Error()
	}
}

// runView opens the file in an interactive pager built on the editing
// core. The history is restored on start and saved on exit.
func runView(ctx context.Context, cfg *Config, logger *log.Logger, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("view: one file name is needed")
	}
	e := govim.NewEngine()
	e.SetLogger(logger)

	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Printf("history not available: %v", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
		if err := store.Restore(ctx, e); err != nil {
			logger.Print(err)
		}
	}

	b, err := e.BufferOpen(args[0], 1)
	if err != nil && b == nil {
		return err
	}
	if err := applyOptions(e, cfg.Options); err != nil {
		return err
	}
	if store != nil {
		if err := store.RestoreBuffer(ctx, e, b); err != nil {
			logger.Print(err)
		}
		if r := e.GetMark('"', false); r.Err() == nil {
			e.CursorSetPosition(r.Pos.Lnum, r.Pos.Col)
		}
	}

	fd := int(os.Stdin.Fd())
	state, err := rawmode.Enable(fd)
	if err != nil {
		return fmt.Errorf("view: %w", err)
	}
	defer rawmode.Restore(fd, state)

	v := &viewer{
		e:     e,
		out:   bufio.NewWriter(os.Stdout),
		lexer: lexerFor(args[0]),
		style: cfg.Chroma.Style,
		color: isTerminal(os.Stdout),
		stamp: stampOf(args[0]),
	}
	if err := v.resize(); err != nil {
		return err
	}
	e.WindowGetCurrent().UpdateTopline()

	keys := make(chan terminal.Key)
	go readKeys(keys, logger)
	resized := make(chan struct{}, 1)
	stop := notifyResize(resized)
	defer stop()

	var tb tomb.Tomb
	changed := make(chan struct{}, 1)
	if err := watchFile(&tb, args[0], changed, logger); err != nil {
		logger.Printf("not watching %s: %v", args[0], err)
	}
	defer func() {
		tb.Kill(nil)
		tb.Wait()
	}()

	for !v.quit {
		v.draw()
		select {
		case k, ok := <-keys:
			if !ok {
				v.quit = true
				break
			}
			v.key(k, keys)
		case <-resized:
			if err := v.resize(); err != nil {
				logger.Print(err)
			}
		case <-changed:
			if st := stampOf(args[0]); st != v.stamp {
				v.stamp = st
				v.message = fmt.Sprintf("W11: Warning: File %q has changed since editing started", args[0])
			}
		case <-ctx.Done():
			v.quit = true
		}
	}
	v.out.WriteString("\x1b[2J\x1b[H")
	v.out.Flush()

	if store != nil {
		if err := store.Save(context.WithoutCancel(ctx), e); err != nil {
			return err
		}
	}
	return nil
}

func readKeys(keys chan<- terminal.Key, logger *log.Logger) {
	defer close(keys)
	for {
		k, err := terminal.ReadKey()
		if err == terminal.ErrNoInput {
			continue
		}
		if err != nil {
			if err != io.EOF {
				logger.Print(err)
			}
			return
		}
		if k.Special == terminal.KeyNoSpl && !utf8.ValidRune(k.Regular) {
			continue
		}
		keys <- k
	}
}
