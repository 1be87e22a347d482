// Package rawmode switches a terminal to raw mode and reports its size.
package rawmode

import "errors"

// ErrNotTerminal is returned for a file descriptor that is not a terminal.
var ErrNotTerminal = errors.New("not a terminal")

// Winsize represents terminal window dimensions in a platform-agnostic way
type Winsize struct {
	Row    uint16
	Col    uint16
	Xpixel uint16
	Ypixel uint16
}
