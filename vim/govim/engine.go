package govim

import (
	"fmt"
	"io"
	"log"
	"path/filepath"
)

// ModeNormal is the normal mode constant
const ModeNormal = 1

// ModeVisual is the visual mode constant
const ModeVisual = 2

// ModeCommand is the command mode constant (for ex commands)
const ModeCommand = 8

// ModeInsert is the insert mode constant
const ModeInsert = 16

// GoEngine is the editor context: the buffer list, the windows, the file
// marks and the global options. Operations act on the current window and
// its buffer.
type GoEngine struct {
	buffers       map[int]*GoBuffer
	nextBufferId  int
	currentBuffer *GoBuffer
	windows       []*Window
	nextWindowId  int
	currentWindow *Window
	mode          int
	opts          GlobalOptions

	namedfm [36]FileMark // 'A - 'Z then '0 - '9

	keepJumps   bool // :keepjumps, don't touch the jumplist or changelist
	lockMarks   bool // :lockmarks, don't adjust marks
	globalBusy  bool // inside :global, the pcmark is set once
	listcmdBusy bool // resolving a mark, the pcmark must not change

	commandCount int    // count typed before a command, like 5j
	pending      string // keys of an unfinished command, like "g" or "d"
	lastErr      error  // error of the last command typed with Input

	logger   *log.Logger
	onRedraw func(*Window, RedrawType)
}

// NewEngine creates an engine with one empty buffer shown in one window.
func NewEngine() *GoEngine {
	e := &GoEngine{
		buffers:      make(map[int]*GoBuffer),
		nextBufferId: 1,
		nextWindowId: 1000,
		mode:         ModeNormal,
		opts:         defaultGlobalOptions(),
		logger:       log.New(io.Discard, "", 0),
	}
	buf := e.BufferNew()
	e.currentBuffer = buf
	e.currentWindow = e.WindowNew(buf, 24, 80)
	return e
}

// SetLogger sets the logger used for diagnostics.
func (e *GoEngine) SetLogger(logger *log.Logger) {
	e.logger = logger
	for _, b := range e.buffers {
		if b.indenter != nil {
			b.indenter.SetLogger(logger)
		}
	}
}

// SetRedrawHandler installs a function called whenever a window needs to
// be redrawn.
func (e *GoEngine) SetRedrawHandler(fn func(*Window, RedrawType)) {
	e.onRedraw = fn
}

// GetMode returns the current mode
func (e *GoEngine) GetMode() int { return e.mode }

// SetMode changes the current mode
func (e *GoEngine) SetMode(mode int) {
	e.mode = mode
	if mode != ModeInsert {
		e.currentWindow.checkCursorCol()
	}
}

// Options returns the global options.
func (e *GoEngine) Options() GlobalOptions { return e.opts }

// SetOptions replaces the global options.
func (e *GoEngine) SetOptions(opts GlobalOptions) { e.opts = opts }

// BufferNew creates a new empty buffer
func (e *GoEngine) BufferNew() *GoBuffer {
	buf := newBuffer(e, e.nextBufferId)
	e.nextBufferId++
	e.buffers[buf.id] = buf
	return buf
}

// BufferOpen opens a file in the current window and puts the cursor on
// line lnum. A file that is already in the buffer list is not read again.
func (e *GoEngine) BufferOpen(filename string, lnum int) (*GoBuffer, error) {
	buf := e.bufferByName(filename)
	var err error
	if buf == nil {
		buf = e.BufferNew()
		err = buf.loadFile(filename)
		if err != nil {
			e.logger.Printf("open %s: %v", filename, err)
		}
	}
	if lnum < 1 {
		lnum = 1
	}
	if ferr := e.getFile(buf.id, lnum, false); ferr != nil {
		return nil, ferr
	}
	return buf, err
}

// BufferGet returns the buffer with the given ID
func (e *GoEngine) BufferGet(id int) (*GoBuffer, error) {
	buf, ok := e.buffers[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrBufferNotFound, id)
	}
	return buf, nil
}

// BufferGetCurrent returns the current buffer
func (e *GoEngine) BufferGetCurrent() *GoBuffer {
	return e.currentBuffer
}

// BufferSetCurrent shows buf in the current window at its '" mark.
func (e *GoEngine) BufferSetCurrent(buf *GoBuffer) error {
	lnum := buf.lastCursor.Lnum
	if lnum < 1 {
		lnum = 1
	}
	return e.getFile(buf.id, lnum, false)
}

// bufferByName finds a buffer by file name.
func (e *GoEngine) bufferByName(name string) *GoBuffer {
	want := cleanName(name)
	for _, b := range e.buffers {
		if b.name != "" && cleanName(b.name) == want {
			return b
		}
	}
	return nil
}

func cleanName(name string) string {
	if abs, err := filepath.Abs(name); err == nil {
		return abs
	}
	return filepath.Clean(name)
}

// bufferForName returns the buffer for a file name, adding an unloaded
// buffer to the list when there is none.
func (e *GoEngine) bufferForName(name string) *GoBuffer {
	if b := e.bufferByName(name); b != nil {
		return b
	}
	b := e.BufferNew()
	b.name = name
	b.loaded = false
	return b
}

// getFile makes buffer id current in the current window with the cursor on
// lnum. With setmark the previous context mark is set first.
func (e *GoEngine) getFile(id int, lnum int, setmark bool) error {
	buf, err := e.BufferGet(id)
	if err != nil {
		return err
	}
	if !buf.loaded {
		if err := buf.loadFile(buf.name); err != nil {
			return fmt.Errorf("load %s: %w", buf.name, err)
		}
	}
	w := e.currentWindow
	if setmark {
		e.SetPcmark()
	}
	if buf != w.buf {
		w.buf.lastCursor = w.cursor
		w.buf = buf
		e.currentBuffer = buf
		w.changelistIdx = len(buf.changelist)
		w.topline = 1
		w.leftcol = 0
		w.valid.clear(validAll)
		w.redrawLater(RedrawNotValid)
	}
	w.cursor = Pos{Lnum: lnum}
	w.checkCursor()
	w.setCurswant = true
	return nil
}

// WindowNew creates a window on buf. The current window does not change.
func (e *GoEngine) WindowNew(buf *GoBuffer, height, width int) *Window {
	w := &Window{
		id:      e.nextWindowId,
		buf:     buf,
		engine:  e,
		opts:    defaultWindowOptions(),
		height:  height,
		width:   width,
		cursor:  Pos{Lnum: 1},
		pcmark:  Pos{Lnum: 1},
		topline: 1,
		botline: 2,
	}
	e.nextWindowId++
	w.changelistIdx = len(buf.changelist)
	e.windows = append(e.windows, w)
	return w
}

// WindowGetCurrent returns the current window
func (e *GoEngine) WindowGetCurrent() *Window {
	return e.currentWindow
}

// WindowSetCurrent makes w the current window
func (e *GoEngine) WindowSetCurrent(w *Window) {
	e.currentWindow = w
	e.currentBuffer = w.buf
}

// WindowClose removes a window. The last window cannot be closed.
func (e *GoEngine) WindowClose(w *Window) error {
	if len(e.windows) == 1 {
		return fmt.Errorf("E444: Cannot close last window")
	}
	for i, x := range e.windows {
		if x == w {
			e.windows = append(e.windows[:i], e.windows[i+1:]...)
			break
		}
	}
	if e.currentWindow == w {
		e.WindowSetCurrent(e.windows[0])
	}
	return nil
}

// CursorGetPosition returns the cursor as [line, col]
func (e *GoEngine) CursorGetPosition() [2]int {
	c := e.currentWindow.cursor
	return [2]int{c.Lnum, c.Col}
}

// CursorSetPosition sets the cursor position
func (e *GoEngine) CursorSetPosition(row, col int) {
	e.currentWindow.SetCursor(Pos{Lnum: row, Col: col})
}

// KeepJumps runs fn without changing the jumplist, the changelist or the
// '' mark, like ":keepjumps".
func (e *GoEngine) KeepJumps(fn func()) {
	old := e.keepJumps
	e.keepJumps = true
	defer func() { e.keepJumps = old }()
	fn()
}

// LockMarks runs fn without adjusting marks for changed lines, like
// ":lockmarks".
func (e *GoEngine) LockMarks(fn func()) {
	old := e.lockMarks
	e.lockMarks = true
	defer func() { e.lockMarks = old }()
	fn()
}
