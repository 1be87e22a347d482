package cindent

import (
	"io"
	"log"
	"strconv"
	"strings"
)

// Indenter computes C indents for the lines of one buffer. It holds no
// position state: every query names the line it is about.
type Indenter struct {
	lines      Lines
	opts       Options
	tune       Tuning
	cinwords   []string
	scopedecls []string
	leaders    []commentPart
	logger     *log.Logger
}

// commentPart is one entry of the 'comments' option, e.g. "s1:/*".
type commentPart struct {
	what   byte // 's', 'm', 'e' or 0
	align  byte // 'l', 'r' or 0
	offset int
	text   string
}

// New returns an Indenter reading lines with the given options.
func New(lines Lines, opts Options) *Indenter {
	in := &Indenter{
		lines:  lines,
		logger: log.New(io.Discard, "", 0),
	}
	in.SetOptions(opts)
	return in
}

// SetOptions replaces the options and re-parses 'cinoptions'.
func (in *Indenter) SetOptions(opts Options) {
	if opts.Tabstop <= 0 {
		opts.Tabstop = 8
	}
	in.opts = opts
	in.tune = ParseCino(opts.Cinoptions, opts.sw())
	in.cinwords = splitList(opts.Cinwords)
	in.scopedecls = splitList(opts.Cinscopedecls)
	in.leaders = parseComments(opts.Comments)
}

// SetLogger directs debug output of the indent search to logger.
func (in *Indenter) SetLogger(logger *log.Logger) {
	if logger != nil {
		in.logger = logger
	}
}

// Tuning returns the parsed 'cinoptions'.
func (in *Indenter) Tuning() Tuning { return in.tune }

func (in *Indenter) line(lnum int) string {
	if lnum < 1 || lnum > in.lines.LineCount() {
		return ""
	}
	return in.lines.Line(lnum)
}

func (in *Indenter) vcol(p Pos) int {
	return VirtCol(in.line(p.Lnum), p.Col, in.opts.Tabstop)
}

func (in *Indenter) indentOf(lnum int) int {
	return IndentOf(in.line(lnum), in.opts.Tabstop)
}

func endsInBackslash(s string) bool {
	return lastByte(s) == '\\'
}

func parseComments(s string) []commentPart {
	var parts []commentPart
	for _, item := range splitList(s) {
		var cp commentPart
		flags, text, ok := strings.Cut(item, ":")
		if !ok {
			continue
		}
		for i := 0; i < len(flags); i++ {
			c := flags[i]
			switch {
			case c == 's' || c == 'm' || c == 'e':
				cp.what = c
			case c == 'l' || c == 'r':
				cp.align = c
			case isDigit(c) || c == '-':
				j := i + 1
				for j < len(flags) && isDigit(flags[j]) {
					j++
				}
				cp.offset, _ = strconv.Atoi(flags[i:j])
				i = j - 1
			}
		}
		cp.text = text
		parts = append(parts, cp)
	}
	return parts
}
