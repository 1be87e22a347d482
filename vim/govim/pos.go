package govim

import (
	"fmt"
	"math"
)

// MaxCol stands for "end of line" in a column and for "to the end of the
// buffer" in a line count.
const MaxCol = math.MaxInt32

// MaxLnum is the line amount that marks a deleted line range in MarkAdjust.
const MaxLnum = math.MaxInt32

// Pos is a position in a buffer. Lnum is 1-based, Col is a 0-based byte
// offset and Coladd is the extra screen column used with virtualedit.
// A Lnum of 0 means "not set".
type Pos struct {
	Lnum   int
	Col    int
	Coladd int
}

// Before reports whether p comes before q.
func (p Pos) Before(q Pos) bool {
	if p.Lnum != q.Lnum {
		return p.Lnum < q.Lnum
	}
	if p.Col != q.Col {
		return p.Col < q.Col
	}
	return p.Coladd < q.Coladd
}

// IsSet reports whether the position refers to a line.
func (p Pos) IsSet() bool { return p.Lnum > 0 }

func (p Pos) String() string { return fmt.Sprintf("%d:%d", p.Lnum, p.Col) }

// FileMark is a position tagged with the buffer it belongs to. A zero
// BufID with a non-empty FileName is a mark whose buffer has not been
// resolved yet.
type FileMark struct {
	Pos      Pos
	BufID    int
	FileName string
}

// MarkStatus tells what ResolveMark found.
type MarkStatus int

const (
	MarkOK         MarkStatus = iota // Pos is usable
	MarkNotSet                       // the mark exists but has no position
	MarkOtherFile                    // the mark is in another buffer
	MarkLoadFailed                   // the buffer of the mark could not be loaded
	MarkNoSuchMark                   // the name is not a mark
	MarkJumped                       // the current buffer was switched to the mark's buffer
)

func (s MarkStatus) String() string {
	switch s {
	case MarkOK:
		return "ok"
	case MarkNotSet:
		return "not set"
	case MarkOtherFile:
		return "other file"
	case MarkLoadFailed:
		return "load failed"
	case MarkNoSuchMark:
		return "no such mark"
	case MarkJumped:
		return "jumped"
	}
	return fmt.Sprintf("MarkStatus(%d)", int(s))
}

// MarkResult is the outcome of resolving a mark name.
type MarkResult struct {
	Pos    Pos
	Status MarkStatus
}

// Err converts a failed result into the matching error.
func (r MarkResult) Err() error {
	switch r.Status {
	case MarkOK, MarkJumped:
		return nil
	case MarkNotSet:
		return ErrMarkNotSet
	case MarkOtherFile:
		return ErrMarkOtherFile
	case MarkLoadFailed:
		return ErrBufferNotFound
	}
	return ErrNoSuchMark
}

// Direction of a search or of opening a line.
type Direction int

const (
	Forward  Direction = 1
	Backward Direction = -1
)
