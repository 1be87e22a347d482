package rawmode

import "golang.org/x/term"

// State is the console mode to go back to.
type State struct {
	st *term.State
}

// Enable puts the console fd in raw mode.
func Enable(fd int) (*State, error) {
	if !term.IsTerminal(fd) {
		return nil, ErrNotTerminal
	}
	st, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	return &State{st: st}, nil
}

// Restore puts back the mode saved by Enable.
func Restore(fd int, s *State) error {
	return term.Restore(fd, s.st)
}

// GetWinsize returns the size of the console fd.
func GetWinsize(fd int) (*Winsize, error) {
	w, h, err := term.GetSize(fd)
	if err != nil {
		return nil, err
	}
	return &Winsize{Row: uint16(h), Col: uint16(w)}, nil
}
