// Package terminal decodes keys read from a terminal in raw mode.
package terminal

import (
	"bufio"
	"errors"
	"io"
	"os"
)

// Special keys
const (
	KeyNoSpl = iota
	KeyArrowLeft = iota + 999
	KeyArrowRight
	KeyArrowUp
	KeyArrowDown
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyIns
)

var specialKeys = map[[4]byte]int{
	{91, 65, 0, 0}:    KeyArrowUp, // \x1b[A
	{91, 66, 0, 0}:    KeyArrowDown,
	{91, 68, 0, 0}:    KeyArrowLeft,
	{91, 67, 0, 0}:    KeyArrowRight,
	{91, 53, 126, 0}:  KeyPageUp, // \x1b[5~
	{91, 54, 126, 0}:  KeyPageDown,
	{91, 72, 0, 0}:    KeyHome,
	{91, 70, 0, 0}:    KeyEnd,
	{91, 51, 126, 0}:  KeyDelete,
	{79, 80, 0, 0}:    KeyF1, // \x1bOP
	{79, 81, 0, 0}:    KeyF2,
	{79, 82, 0, 0}:    KeyF3,
	{79, 83, 0, 0}:    KeyF4,
	{91, 49, 53, 126}: KeyF5, // \x1b[15~
	{91, 49, 55, 126}: KeyF6,
	{91, 49, 56, 126}: KeyF7,
	{91, 49, 57, 126}: KeyF8,
	{91, 50, 48, 126}: KeyF9,
	{91, 50, 126, 0}:  KeyIns,
}

// keys the editor understands for the special keys
var vimKeys = map[int]string{
	KeyArrowLeft:  "h",
	KeyArrowRight: "l",
	KeyArrowUp:    "k",
	KeyArrowDown:  "j",
	KeyHome:       "0",
	KeyEnd:        "$",
	KeyPageUp:     "\x02",
	KeyPageDown:   "\x06",
}

// ErrNoInput indicates that there is no input when reading from keyboard
// in raw mode. This happens when timeout is set to a low number
var ErrNoInput = errors.New("no input")

// Key represents the key entered by the user
type Key struct {
	Regular rune
	Special int
}

// Vim returns the normal mode keys for k, or "" for a special key with no
// meaning in the editor.
func (k Key) Vim() string {
	if k.Special != KeyNoSpl {
		return vimKeys[k.Special]
	}
	return string(k.Regular)
}

// Reader reads keys from a terminal.
type Reader struct {
	r *bufio.Reader
}

// NewReader returns a Reader that decodes the VT100 sequences in r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

var stdin = NewReader(os.Stdin)

// ReadKey reads a key from Stdin. Stdin should be put in raw mode first.
func ReadKey() (Key, error) { return stdin.ReadKey() }

// ReadKey reads one key, decoding escape sequences into special keys. A
// lone escape, or a sequence that is not known, is returned as escape.
func (kr *Reader) ReadKey() (Key, error) {
	r, n, err := kr.r.ReadRune()
	if err != nil {
		return Key{}, err
	}
	// a read timeout with no key pressed
	if n == 0 {
		return Key{}, ErrNoInput
	}
	if r != 27 {
		return Key{r, KeyNoSpl}, nil
	}

	// nothing has been buffered, probably plain escape
	if kr.r.Buffered() == 0 {
		return Key{27, KeyNoSpl}, nil
	}

	stack := [4]byte{}
	for j := 0; j < 4 && kr.r.Buffered() > 0; j++ {
		b, err := kr.r.ReadByte()
		if err != nil {
			return Key{}, err
		}
		stack[j] = b
		if key, found := specialKeys[stack]; found {
			return Key{0, key}, nil
		}
	}
	return Key{27, KeyNoSpl}, nil
}
