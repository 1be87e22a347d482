package govim

import "errors"

// Errors returned by the mark, jumplist and buffer operations.
var (
	ErrNoSuchMark      = errors.New("E78: Unknown mark")
	ErrMarkNotSet      = errors.New("E20: Mark not set")
	ErrMarkInvalidLine = errors.New("E19: Mark has invalid line number")
	ErrMarkOtherFile   = errors.New("E20: Mark not set in this file")
	ErrInvalidMarkName = errors.New("E191: Argument must be a letter or forward/backward quote")
	ErrNoMarks         = errors.New("No marks set")
	ErrLineOutOfRange  = errors.New("E16: Invalid range")
	ErrBufferNotFound  = errors.New("E86: Buffer does not exist")
	ErrInvalidArgument = errors.New("E474: Invalid argument")
	ErrArgRequired     = errors.New("E471: Argument required")
	ErrNoJump          = errors.New("at end of jump list")
	ErrNoChange        = errors.New("E662: At start of changelist")
	ErrChangelistEnd   = errors.New("E663: At end of changelist")
	ErrEmptyChangelist = errors.New("E664: Changelist is empty")
)
