//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package rawmode

import (
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// State is the terminal setting to go back to.
type State struct {
	termios unix.Termios
}

// Enable puts the terminal fd in raw mode: no echo, no line buffering, no
// signals from keys and no output processing. Reads block until a byte
// is available.
func Enable(fd int) (*State, error) {
	if !term.IsTerminal(fd) {
		return nil, ErrNotTerminal
	}
	termios, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return nil, err
	}
	old := &State{termios: *termios}

	raw := *termios
	raw.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	raw.Oflag &^= unix.OPOST
	raw.Cflag |= unix.CS8
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.ISIG | unix.IEXTEN
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0
	if err := unix.IoctlSetTermios(fd, ioctlSetTermios, &raw); err != nil {
		return nil, err
	}
	return old, nil
}

// Restore puts back the setting saved by Enable.
func Restore(fd int, s *State) error {
	return unix.IoctlSetTermios(fd, ioctlSetTermios, &s.termios)
}

// GetWinsize returns the size of the terminal fd.
func GetWinsize(fd int) (*Winsize, error) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return nil, err
	}
	return &Winsize{Row: ws.Row, Col: ws.Col, Xpixel: ws.Xpixel, Ypixel: ws.Ypixel}, nil
}
