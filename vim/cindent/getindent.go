package cindent

// lookfor is what the backward scan inside a block is searching for.
type lookfor int

const (
	lookforInitial     lookfor = iota
	lookforIf                  // the "if" of an "else"
	lookforDo                  // the "do" of a "while"
	lookforCase                // a previous case label
	lookforAny                 // any statement
	lookforTerm                // a terminated statement
	lookforUnterm              // an unterminated statement
	lookforScopeDecl           // a C++ scope declaration
	lookforNoBreak             // a statement that is not "break"
	lookforCppBaseclass        // a base class or constructor initializer
	lookforEnumOrInit          // an enum or initializer
	lookforJSKey               // a JavaScript object key
	lookforComma               // a line ending in ','
)

var lookforNames = [...]string{
	"initial", "if", "do", "case", "any", "term", "unterm",
	"scopedecl", "nobreak", "baseclass", "enum_or_init", "jskey", "comma",
}

func (l lookfor) String() string { return lookforNames[l] }

const (
	braceInCol0 = iota + 1 // '{' in column 0
	braceAtStart           // '{' first on its line
	braceAtEnd             // '{' after other text
)

// namespaceLookback bounds the search for a "namespace" line above a block.
const namespaceLookback = 20

// GetCIndent returns the indent, in screen columns, that C indenting gives
// the line at cursor. In insert mode a ')' under the cursor is ignored so
// the new text does not align with its '('. The result is never negative.
func (in *Indenter) GetCIndent(cursor Pos, insert bool) int {
	amount := in.cIndent(cursor, insert)
	if amount < 0 {
		amount = 0
	}
	return amount
}

func (in *Indenter) cIndent(cur Pos, insert bool) int {
	if cur.Lnum <= 1 {
		return 0
	}
	t := &in.tune
	continuation := t.Continuation

	linecopy := in.line(cur.Lnum)
	if insert && cur.Col < len(linecopy) && linecopy[cur.Col] == ')' {
		linecopy = linecopy[:cur.Col]
	}
	theline := linecopy[skipWhite(linecopy, 0):]
	first := at(theline, 0)

	originalIsLabel := in.isLabel(cur.Lnum)
	commentPos, inComment := in.findStartComment(Pos{cur.Lnum, 0})

	// preprocessor lines go to the left
	if first == '#' && (at(linecopy, 0) == '#' || in.opts.HashAtLeft) {
		directive := theline[skipWhite(theline, 1):]
		if t.Pragma == 0 || !hasPrefixAt(directive, 0, "pragma") {
			return t.HashComment
		}
	}

	// a jump label goes to the left margin
	if originalIsLabel && t.JS == 0 && t.JumpLabel < 0 {
		return 0
	}

	// line up a "//" comment with one in a previous line
	if isLineComment(theline) {
		trypos, ok := in.findLineComment(cur.Lnum)
		if !ok && cur.Lnum > 1 {
			if c := checkLineComment(in.line(cur.Lnum - 1)); c >= 0 {
				trypos, ok = Pos{cur.Lnum - 1, c}, true
			}
		}
		if ok {
			return in.vcol(trypos)
		}
	}

	// inside a comment, not at its start
	if !isComment(theline) && inComment {
		return in.commentIndent(cur, theline, commentPos)
	}

	// a ']' with a match aligns with the line of the '['
	if first == ']' {
		if trypos, ok := in.findMatchChar('[', Pos{cur.Lnum, 0}, t.MaxParen); ok {
			return in.indentOf(trypos.Lnum)
		}
	}

	parenPos, inParen := in.findMatchParen(Pos{cur.Lnum, 0}, t.MaxParen)
	var bracePos Pos
	inBrace := false
	if !inParen || t.Java != 0 {
		bracePos, inBrace = in.findStartBrace(Pos{cur.Lnum, 0})
	}
	if inParen && inBrace {
		// use the one closest to the line
		if parenPos.Before(bracePos) {
			inParen = false
		} else {
			inBrace = false
		}
	}

	var amount int
	switch {
	case inParen:
		amount = in.parenIndent(cur, theline, parenPos)
	case inBrace:
		var final bool
		if amount, final = in.braceIndent(cur, theline, bracePos, continuation); final {
			return amount
		}
	default:
		return in.topLevelIndent(cur, theline, continuation)
	}

	if isComment(theline) {
		amount += t.Comment
	}
	if t.JumpLabel > 0 && originalIsLabel {
		amount -= t.JumpLabel
	}
	return amount
}

// commentIndent indents a line inside a "/*" comment that starts at
// commentPos, using the start, middle and end parts of 'comments'.
func (in *Indenter) commentIndent(cur Pos, theline string, commentPos Pos) int {
	t := &in.tune
	amount := in.vcol(commentPos)
	leadStart, leadMiddle := "", ""
	startLen, middleLen := 2, 1
	startOff := 0
	var startAlign byte
	done := false

	for _, cp := range in.leaders {
		switch cp.what {
		case 's':
			leadStart, startLen = cp.text, len(cp.text)
			startOff, startAlign = cp.offset, cp.align
			continue
		case 'm':
			leadMiddle, middleLen = cp.text, len(cp.text)
			continue
		case 'e':
		default:
			continue
		}
		leadEnd := cp.text
		hasMiddle := strnEq(theline, leadMiddle, middleLen)
		hasEnd := strnEq(theline, leadEnd, len(leadEnd))

		// a middle line lines up with the comment opener
		if hasMiddle && !hasEnd {
			if cur.Lnum > 1 {
				prev := in.line(cur.Lnum - 1)
				look := prev[skipWhite(prev, 0):]
				if strnEq(look, leadStart, startLen) {
					amount = in.indentOf(cur.Lnum - 1)
				} else if strnEq(look, leadMiddle, middleLen) {
					amount = in.indentOf(cur.Lnum - 1)
					done = true
					break
				} else if !strnEq(in.line(commentPos.Lnum)[commentPos.Col:], leadStart, startLen) {
					// this entry does not describe our comment
					continue
				}
			}
			if startOff != 0 {
				amount += startOff
			} else if startAlign == 'r' {
				amount += displayWidth(leadStart) - displayWidth(leadMiddle)
			}
			done = true
			break
		}

		// an end line lines up with the middle ones
		if !hasMiddle && hasEnd {
			amount = in.indentOf(cur.Lnum - 1)
			if cp.offset != 0 {
				amount += cp.offset
			} else if cp.align == 'r' {
				amount += displayWidth(leadStart) - displayWidth(leadMiddle)
			}
			done = true
			break
		}
	}

	switch {
	case done:
	case at(theline, 0) == '*':
		amount++
	default:
		// Use the previous non-blank line inside the comment, or else
		// the text after the opener.
		amount = -1
		for lnum := cur.Lnum - 1; lnum > commentPos.Lnum; lnum-- {
			l := in.line(lnum)
			if skipWhite(l, 0) >= len(l) {
				continue
			}
			amount = in.indentOf(lnum)
			break
		}
		if amount == -1 {
			start := in.line(commentPos.Lnum)
			look := commentPos.Col + 2
			p := commentPos
			if t.InComment2 == 0 && look < len(start) {
				p.Col = skipWhite(start, look)
			}
			amount = in.vcol(p)
			if t.InComment2 != 0 || look >= len(start) {
				amount += t.InComment
			}
		}
	}
	return amount
}

func displayWidth(s string) int {
	return VirtCol(s, len(s), 8)
}

// strnEq compares at most n bytes of s and t, treating the end of a string
// as a terminating zero byte.
func strnEq(s, t string, n int) bool {
	for k := 0; k < n; k++ {
		a, b := at(s, k), at(t, k)
		if a != b {
			return false
		}
		if a == 0 {
			return true
		}
	}
	return true
}
