package govim

import "strings"

// startPS reports whether line lnum starts a paragraph or a section: an
// empty line (when para is 0), a line starting with para or a form feed,
// a "}" with both set, or an nroff macro from 'sections' or 'paragraphs'.
func (e *GoEngine) startPS(b *GoBuffer, lnum int, para byte, both bool) bool {
	s := b.GetLine(lnum)
	var c byte
	if s != "" {
		c = s[0]
	}
	if c == para || c == '\f' || (both && c == '}') {
		return true
	}
	if c == '.' && (inMacro(e.opts.Sections, s[1:]) || (para == 0 && inMacro(e.opts.Paragraphs, s[1:]))) {
		return true
	}
	return false
}

// inMacro reports whether s starts with one of the two-letter macro names
// in opt. A space in a name matches the end of the line or a space.
func inMacro(opt, s string) bool {
	for i := 0; i < len(opt); i += 2 {
		m0 := opt[i]
		var m1 byte = ' '
		if i+1 < len(opt) {
			m1 = opt[i+1]
		}
		if len(s) == 0 {
			if m0 == ' ' {
				return true
			}
			continue
		}
		if s[0] != m0 {
			continue
		}
		if len(s) == 1 || s[1] == ' ' {
			if m1 == ' ' {
				return true
			}
			continue
		}
		if s[1] == m1 {
			return true
		}
	}
	return false
}

// findParagraph returns where the "}" (Forward) or "{" (Backward) motion
// ends when started at from. A line starting with what counts as a
// boundary too; with both a "}" line also stops. The search fails when it
// runs off the buffer with count left.
func (e *GoEngine) findParagraph(from Pos, dir Direction, count int, what byte, both bool) (Pos, bool) {
	b := e.currentBuffer
	n := b.GetLineCount()
	curr := from.Lnum
	for ; count > 0; count-- {
		didSkip := false
		for first := true; ; first = false {
			if b.GetLine(curr) != "" {
				didSkip = true
			}
			if !first && didSkip && e.startPS(b, curr, what, both) {
				break
			}
			curr += int(dir)
			if curr < 1 || curr > n {
				if count > 1 {
					return Pos{}, false
				}
				curr -= int(dir)
				break
			}
		}
	}
	if both && strings.HasPrefix(b.GetLine(curr), "}") {
		curr++
	}
	p := Pos{Lnum: curr}
	if curr == n && what != '}' && dir == Forward {
		// put the cursor on the last character of the last line
		if line := b.GetLine(curr); line != "" {
			p.Col = len(line) - 1
			p.Col -= headOff(line, p.Col)
		}
	}
	return p, true
}

// posWalker steps a position through the buffer one character at a time,
// stopping on the end of each line.
type posWalker struct {
	b *GoBuffer
}

func (pw posWalker) char(p Pos) byte {
	line := pw.b.GetLine(p.Lnum)
	if p.Col >= len(line) {
		return 0
	}
	return line[p.Col]
}

// inc moves p forward. It returns 1 when it went to the next line, 2 when
// it reached the end of the line, -1 at the end of the buffer and 0
// otherwise.
func (pw posWalker) inc(p *Pos) int {
	line := pw.b.GetLine(p.Lnum)
	if p.Col < len(line) {
		l := charLen(line, p.Col)
		p.Col += l
		if p.Col < len(line) {
			return 0
		}
		return 2
	}
	if p.Lnum != pw.b.GetLineCount() {
		p.Col = 0
		p.Lnum++
		p.Coladd = 0
		return 1
	}
	return -1
}

// incl is inc that skips over the end of a line.
func (pw posWalker) incl(p *Pos) int {
	r := pw.inc(p)
	if r >= 1 && p.Col != 0 {
		r = pw.inc(p)
	}
	return r
}

// dec moves p back. It returns 1 when it went to the previous line, -1 at
// the start of the buffer and 0 otherwise.
func (pw posWalker) dec(p *Pos) int {
	p.Coladd = 0
	if p.Col > 0 {
		line := pw.b.GetLine(p.Lnum)
		p.Col--
		p.Col -= headOff(line, p.Col)
		return 0
	}
	if p.Lnum > 1 {
		p.Lnum--
		p.Col = len(pw.b.GetLine(p.Lnum))
		return 1
	}
	return -1
}

// decl is dec that skips over the end of a line.
func (pw posWalker) decl(p *Pos) int {
	r := pw.dec(p)
	if r == 1 && p.Col != 0 {
		r = pw.dec(p)
	}
	return r
}

func charLen(line string, col int) int {
	n := 1
	for col+n < len(line) && line[col+n]&0xC0 == 0x80 {
		n++
	}
	return n
}

func isWhiteByte(c byte) bool { return c == ' ' || c == '\t' }

// findSentence returns where the ")" (Forward) or "(" (Backward) motion
// ends when started at from.
func (e *GoEngine) findSentence(from Pos, dir Direction, count int) (Pos, bool) {
	b := e.currentBuffer
	pw := posWalker{b}
	pos := from
	step := pw.incl
	if dir == Backward {
		step = pw.decl
	}

	for ; count > 0; count-- {
		noskip := false
		found := false
		if pw.char(pos) == 0 {
			// on an empty line, skip to a non-empty one
			for {
				if step(&pos) == -1 {
					break
				}
				if pw.char(pos) != 0 {
					break
				}
			}
			if dir == Forward {
				found = true
			}
		} else if dir == Forward && pos.Col == 0 && e.startPS(b, pos.Lnum, 0, false) {
			// on the start of a paragraph or a section: go to the next line
			if pos.Lnum == b.GetLineCount() {
				return Pos{}, false
			}
			pos.Lnum++
			found = true
		} else if dir == Backward {
			pw.decl(&pos)
		}

		if !found {
			// go back to the previous non-white non-punctuation character
			foundDot := false
			for {
				c := pw.char(pos)
				if !isWhiteByte(c) && !strings.ContainsRune(".!?)]\"'", rune(c)) || c == 0 {
					break
				}
				tpos := pos
				if pw.decl(&tpos) == -1 || (b.GetLine(tpos.Lnum) == "" && dir == Forward) {
					break
				}
				if foundDot {
					break
				}
				if strings.IndexByte(".!?", c) >= 0 {
					foundDot = true
				}
				if strings.IndexByte(")]\"'", c) >= 0 && strings.IndexByte(".!?)]\"'", pw.char(tpos)) < 0 {
					break
				}
				pw.decl(&pos)
			}

			startLnum := pos.Lnum
			for {
				c := pw.char(pos)
				if c == 0 || (pos.Col == 0 && e.startPS(b, pos.Lnum, 0, false)) {
					if dir == Backward && pos.Lnum != startLnum {
						pos.Lnum++
						pos.Col = 0
					}
					break
				}
				if c == '.' || c == '!' || c == '?' {
					tpos := pos
					r := 0
					for {
						if r = pw.inc(&tpos); r == -1 {
							break
						}
						if strings.IndexByte(")]\"'", pw.char(tpos)) < 0 || pw.char(tpos) == 0 {
							break
						}
					}
					nc := pw.char(tpos)
					if r == -1 || nc == ' ' || nc == '\t' || nc == 0 {
						pos = tpos
						if pw.char(pos) == 0 {
							pw.inc(&pos)
						}
						break
					}
				}
				if step(&pos) == -1 {
					if count > 1 {
						return Pos{}, false
					}
					noskip = true
					break
				}
			}
		}

		// skip white space
		for !noskip && isWhiteByte(pw.char(pos)) {
			if pw.incl(&pos) == -1 {
				break
			}
		}
	}
	return pos, true
}
