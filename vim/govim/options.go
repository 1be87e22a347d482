package govim

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/slzatz/vimcore/vim/cindent"
)

// BufferOptions are the options local to a buffer.
type BufferOptions struct {
	Tabstop        int
	Shiftwidth     int
	Expandtab      bool
	Autoindent     bool
	Cindent        bool
	PreserveIndent bool
	Textwidth      int
	Cinoptions     string
	Cinkeys        string
	Comments       string
	Cinwords       string
	Cinscopedecls  string
}

// WindowOptions are the options local to a window.
type WindowOptions struct {
	Scrolloff     int
	Sidescrolloff int
	Wrap          bool
	Number        bool
	Scroll        int // lines for CTRL-D and CTRL-U, 0 means half the window
}

// GlobalOptions are shared by every buffer and window.
type GlobalOptions struct {
	Scrolljump  int // negative is a percentage of the window height
	Sidescroll  int
	Shiftround  bool
	Startofline bool
	Jumpoptions string
	Paragraphs  string
	Sections    string
}

func defaultBufferOptions() BufferOptions {
	return BufferOptions{
		Tabstop:       8,
		Shiftwidth:    8,
		Cinkeys:       "0{,0},0),0],:,0#,!^F,o,O,e",
		Comments:      cindent.DefaultComments,
		Cinwords:      cindent.DefaultCinwords,
		Cinscopedecls: cindent.DefaultCinscopedecls,
	}
}

func defaultWindowOptions() WindowOptions {
	return WindowOptions{Wrap: true}
}

func defaultGlobalOptions() GlobalOptions {
	return GlobalOptions{
		Scrolljump:  1,
		Startofline: true,
		Paragraphs:  "IPLPPPQPP TPHPLIPpLpItpplpipbp",
		Sections:    "SHNHH HUnhsh",
	}
}

// sw returns the effective shiftwidth.
func (o *BufferOptions) sw() int {
	if o.Shiftwidth > 0 {
		return o.Shiftwidth
	}
	return o.Tabstop
}

// indentOptions converts the buffer options for the C indenter.
func (o *BufferOptions) indentOptions() cindent.Options {
	return cindent.Options{
		Tabstop:       o.Tabstop,
		Shiftwidth:    o.sw(),
		Cinoptions:    o.Cinoptions,
		Comments:      o.Comments,
		Cinwords:      o.Cinwords,
		Cinscopedecls: o.Cinscopedecls,
		HashAtLeft:    inList(o.Cinkeys, "0#"),
	}
}

func (g *GlobalOptions) jumpStack() bool {
	return inList(g.Jumpoptions, "stack")
}

func inList(list, item string) bool {
	for _, s := range strings.Split(list, ",") {
		if s == item {
			return true
		}
	}
	return false
}

// SetOption sets an option the way ":set name=value" does. Boolean options
// accept "name", "noname" and "name!". Buffer options apply to the current
// buffer, window options to the current window.
func (e *GoEngine) SetOption(arg string) error {
	name, value, hasValue := strings.Cut(arg, "=")
	neg := false
	toggle := false
	if !hasValue {
		if strings.HasSuffix(name, "!") {
			name = strings.TrimSuffix(name, "!")
			toggle = true
		} else if strings.HasPrefix(name, "no") && isBoolOption(name[2:]) {
			name = name[2:]
			neg = true
		}
	}

	if isBoolOption(name) {
		if hasValue {
			return fmt.Errorf("%w: %s", ErrInvalidArgument, arg)
		}
		p := e.boolOption(name)
		switch {
		case toggle:
			*p = !*p
		default:
			*p = !neg
		}
		e.optionChanged(name)
		return nil
	}

	if !hasValue {
		return fmt.Errorf("%w: %s", ErrInvalidArgument, arg)
	}
	if p := e.numberOption(name); p != nil {
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidArgument, arg)
		}
		if n < 0 && name != "scrolljump" && name != "sj" {
			return fmt.Errorf("%w: %s", ErrInvalidArgument, arg)
		}
		*p = n
		e.optionChanged(name)
		return nil
	}
	if p := e.stringOption(name); p != nil {
		*p = value
		e.optionChanged(name)
		return nil
	}
	return fmt.Errorf("E518: Unknown option: %s", name)
}

func isBoolOption(name string) bool {
	switch name {
	case "expandtab", "et", "autoindent", "ai", "cindent", "cin",
		"preserveindent", "pi", "wrap", "number", "nu",
		"shiftround", "sr", "startofline", "sol":
		return true
	}
	return false
}

func (e *GoEngine) boolOption(name string) *bool {
	b := &e.currentBuffer.opts
	w := &e.currentWindow.opts
	switch name {
	case "expandtab", "et":
		return &b.Expandtab
	case "autoindent", "ai":
		return &b.Autoindent
	case "cindent", "cin":
		return &b.Cindent
	case "preserveindent", "pi":
		return &b.PreserveIndent
	case "wrap":
		return &w.Wrap
	case "number", "nu":
		return &w.Number
	case "shiftround", "sr":
		return &e.opts.Shiftround
	}
	return &e.opts.Startofline
}

func (e *GoEngine) numberOption(name string) *int {
	b := &e.currentBuffer.opts
	w := &e.currentWindow.opts
	switch name {
	case "tabstop", "ts":
		return &b.Tabstop
	case "shiftwidth", "sw":
		return &b.Shiftwidth
	case "textwidth", "tw":
		return &b.Textwidth
	case "scrolloff", "so":
		return &w.Scrolloff
	case "sidescrolloff", "siso":
		return &w.Sidescrolloff
	case "scroll", "scr":
		return &w.Scroll
	case "scrolljump", "sj":
		return &e.opts.Scrolljump
	case "sidescroll", "ss":
		return &e.opts.Sidescroll
	}
	return nil
}

func (e *GoEngine) stringOption(name string) *string {
	b := &e.currentBuffer.opts
	switch name {
	case "cinoptions", "cino":
		return &b.Cinoptions
	case "cinkeys", "cink":
		return &b.Cinkeys
	case "comments", "com":
		return &b.Comments
	case "cinwords", "cinw":
		return &b.Cinwords
	case "cinscopedecls", "cinsd":
		return &b.Cinscopedecls
	case "jumpoptions", "jop":
		return &e.opts.Jumpoptions
	case "paragraphs", "para":
		return &e.opts.Paragraphs
	case "sections", "sect":
		return &e.opts.Sections
	}
	return nil
}

// optionChanged invalidates whatever depends on the option.
func (e *GoEngine) optionChanged(name string) {
	switch name {
	case "tabstop", "ts", "shiftwidth", "sw", "cinoptions", "cino", "cinkeys", "cink",
		"comments", "com", "cinwords", "cinw", "cinscopedecls", "cinsd":
		e.currentBuffer.indenter = nil
	}
	for _, w := range e.windows {
		if w.buf == e.currentBuffer || name == "wrap" || name == "number" || name == "nu" {
			w.valid.clear(validAll)
			w.redrawLater(RedrawNotValid)
		}
	}
	e.logger.Printf("option %s changed", name)
}
