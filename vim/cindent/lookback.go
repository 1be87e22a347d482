package cindent

import "strings"

// Helpers used while walking backward from the line being indented.

// indentNoLabel returns the column of the code after the label on line
// lnum, or 0 when nothing follows the label.
func (in *Indenter) indentNoLabel(lnum int) int {
	l := in.line(lnum)
	rest, ok := in.afterLabel(l)
	if !ok {
		return 0
	}
	return in.vcol(Pos{lnum, len(l) - len(rest)})
}

// skipLabel returns the indent of line lnum ignoring a leading label or
// case, together with the text after it.
func (in *Indenter) skipLabel(lnum int) (int, string) {
	l := in.line(lnum)
	if in.isCase(l, false) || in.isScopeDecl(l) || in.isLabel(lnum) {
		amount := in.indentNoLabel(lnum)
		if rest, ok := in.afterLabel(l); ok {
			return amount, rest
		}
		return amount, l
	}
	return in.indentOf(lnum), l
}

// firstIDAmount returns the column of the first identifier after the type
// in a declaration like "unsigned int foo,", or 0.
func (in *Indenter) firstIDAmount(lnum int) int {
	line := in.line(lnum)
	p := skipWhite(line, 0)
	word := func() string { return line[p:skipToWhite(line, p)] }

	if word() == "static" {
		p = skipWhite(line, p+6)
	}
	switch w := word(); w {
	case "struct", "enum":
		p = skipWhite(line, p+len(w))
	case "unsigned", "signed":
		s := skipWhite(line, p+len(w))
		for _, t := range []string{"int", "long", "short", "char"} {
			if hasPrefixAt(line, s, t) && isWhite(at(line, s+len(t))) {
				p = s
				break
			}
		}
	}
	n := 0
	for isIDc(at(line, p+n)) {
		n++
	}
	if n == 0 || !isWhite(at(line, p+n)) || in.noCode(line[p:]) {
		return 0
	}
	p = skipWhite(line, p+n)
	return in.vcol(Pos{lnum, p})
}

// equalAmount returns the column just after the '=' of an assignment on
// line lnum, 0 when there is none and -1 when the line is itself a
// backslash continuation.
func (in *Indenter) equalAmount(lnum int) int {
	if lnum > 1 && endsInBackslash(in.line(lnum-1)) {
		return -1
	}
	line := in.line(lnum)
	s := 0
	for s < len(line) && !strings.ContainsRune("=;{}\"'", rune(line[s])) {
		if isComment(line[s:]) {
			s = len(line) - len(in.skipComment(line[s:]))
		} else {
			s++
		}
	}
	if at(line, s) != '=' {
		return 0
	}
	s = skipWhite(line, s+1)
	if in.noCode(line[s:]) {
		return 0
	}
	if at(line, s) == '"' {
		s++
	}
	return in.vcol(Pos{lnum, s})
}

// isPreprocCont reports whether *l on line *lnum is a preprocessor line or
// a backslash continuation of one. On success *lnum and *l are moved to the
// directive and *amount is set to the indent of the continued line.
func (in *Indenter) isPreprocCont(l *string, lnum *int, amount *int) bool {
	line := *l
	n := *lnum
	candidate := *amount
	if endsInBackslash(line) {
		candidate = in.indentOf(n)
	}
	found := false
	for {
		if isPreproc(line) {
			found = true
			*lnum = n
			break
		}
		if n == 1 {
			break
		}
		n--
		line = in.line(n)
		if !endsInBackslash(line) {
			break
		}
	}
	if n != *lnum || found {
		*l = in.line(*lnum)
	}
	if found {
		*amount = candidate
	}
	return found
}

// isWhileOfDo reports whether p, the text of line lnum, is the
// "while (cond);" that ends a do loop.
func (in *Indenter) isWhileOfDo(p string, lnum int) bool {
	p = in.skipComment(p)
	if at(p, 0) == '}' {
		p = in.skipComment(p[1:])
	}
	if !startsWith(p, "while") {
		return false
	}
	line := in.line(lnum)
	col := strings.IndexByte(line, 'w')
	if col < 0 {
		return false
	}
	trypos, ok := in.findMatchLimit(Pos{lnum, col}, 0, 0, in.tune.MaxParen)
	if !ok {
		return false
	}
	rest := in.line(trypos.Lnum)[trypos.Col+1:]
	return at(in.skipComment(rest), 0) == ';'
}

// isWhileOfDoEnd checks whether line lnum, terminated by terminated, ends
// in "while (cond);" and returns the line holding the "while".
func (in *Indenter) isWhileOfDoEnd(terminated byte, lnum int) (int, bool) {
	if terminated != ';' {
		return lnum, false
	}
	line := in.line(lnum)
	for p := 0; p < len(line); p++ {
		p = len(line) - len(in.skipComment(line[p:]))
		if p >= len(line) {
			break
		}
		if line[p] != ')' {
			continue
		}
		s := skipWhite(line, p+1)
		if at(line, s) != ';' || !in.noCode(line[s+1:]) {
			continue
		}
		trypos, ok := in.findMatchParen(Pos{lnum, p}, in.tune.MaxParen)
		if !ok {
			continue
		}
		t := in.skipComment(in.line(trypos.Lnum))
		if at(t, 0) == '}' {
			t = in.skipComment(t[1:])
		}
		if startsWith(t, "while") {
			return trypos.Lnum, true
		}
	}
	return lnum, false
}

// findMatch searches back from lnum, within the block opened on line
// ourscope, for the "if" matching an "else" (lookfor is lookforIf) or the
// "do" matching a "while". It returns the line found.
func (in *Indenter) findMatch(lookfor lookfor, ourscope, lnum int) (int, bool) {
	elselevel, whilelevel := 0, 1
	if lookfor == lookforIf {
		elselevel, whilelevel = 1, 0
	}

	for lnum > ourscope+1 {
		lnum--
		look := in.skipComment(in.line(lnum))
		if !in.isElse(look) && !isIf(look) && !isDo(look) && !in.isWhileOfDo(look, lnum) {
			continue
		}

		// outside the braces entirely: out of scope
		theirscope, ok := in.findStartBrace(Pos{lnum, 0})
		if !ok || theirscope.Lnum < ourscope {
			break
		}
		// a deeper block is a different scope
		if theirscope.Lnum > ourscope {
			continue
		}

		if in.isElse(look) {
			rest := look
			if at(rest, 0) == '}' {
				rest = in.skipComment(rest[1:])
			}
			if !isIf(in.skipComment(rest[4:])) {
				elselevel++
			}
			continue
		}
		if in.isWhileOfDo(look, lnum) {
			whilelevel++
			continue
		}
		if isIf(look) {
			elselevel--
			// when looking for an "if" ignore "while"s in the way
			if elselevel == 0 && lookfor == lookforIf {
				whilelevel = 0
			}
		}
		if isDo(look) {
			whilelevel--
		}
		if elselevel <= 0 && whilelevel <= 0 {
			return lnum, true
		}
	}
	return 0, false
}

// isFuncDecl reports whether the text starting at line first looks like a
// function declaration: "name(args)" with the closing paren at the end,
// possibly spread over lines ending in ','. When sp is not nil it is the
// text to start with. A declaration whose '(' lies above minLnum is
// rejected.
func (in *Indenter) isFuncDecl(sp *string, first, minLnum int) bool {
	lnum := first
	var s string
	if sp == nil {
		s = in.line(lnum)
	} else {
		s = *sp
	}

	if col, ok := in.findLastParen(s, '(', ')'); ok {
		if trypos, found := in.findMatchParen(Pos{lnum, col}, in.tune.MaxParen); found {
			lnum = trypos.Lnum
			if lnum < minLnum {
				return false
			}
			s = in.line(lnum)
		}
	}

	if isPreproc(s) {
		return false
	}

	for s != "" && s[0] != '(' && s[0] != ';' && s[0] != '\'' && s[0] != '"' {
		switch {
		case isComment(s):
			s = in.skipComment(s)
		case s[0] == ':':
			// "A::A(int a)" is fine, "    : a(0)" is an initializer
			if at(s, 1) != ':' {
				return false
			}
			s = s[2:]
		default:
			s = s[1:]
		}
	}
	if at(s, 0) != '(' {
		return false
	}

	justStarted := true
	for s != "" && s[0] != ';' && s[0] != '\'' && s[0] != '"' {
		if s[0] == ')' && in.noCode(s[1:]) {
			// no backslash continuation, as in "#if defined(x) && \"
			return !endsInBackslash(in.line(first - 1))
		}
		if (s[0] == ',' && in.noCode(s[1:])) || at(s, 1) == 0 || in.noCode(s) {
			comma := s[0] == ','
			// continue in the next line, skipping preprocessor lines
			for lnum < in.lines.LineCount() {
				lnum++
				s = in.line(lnum)
				if !isPreproc(s) {
					break
				}
			}
			if lnum >= in.lines.LineCount() {
				break
			}
			// need a comma at the end or a ',' or ')' starting the next line
			s = s[skipWhite(s, 0):]
			if !justStarted && !comma && at(s, 0) != ',' && at(s, 0) != ')' {
				break
			}
			justStarted = false
		} else if isComment(s) {
			s = in.skipComment(s)
		} else {
			s = s[1:]
			justStarted = false
		}
	}
	return false
}

// baseclassCache remembers the result of isCppBaseclass for the statement
// starting at lpos.Lnum. col is the byte column to align with on line
// colLnum, 0 meaning none.
type baseclassCache struct {
	found   bool
	lpos    Pos
	colLnum int
}

func newBaseclassCache() *baseclassCache {
	return &baseclassCache{lpos: Pos{Lnum: maxCol}}
}

// isCppBaseclass recognizes a C++ base class list or constructor
// initializer ("class Foo : public Bar" or "Foo::Foo() : a(1)") ending at
// line lnum.
func (in *Indenter) isCppBaseclass(cache *baseclassCache, lnum int) bool {
	pos := &cache.lpos
	if pos.Lnum <= lnum {
		return cache.found
	}
	pos.Col = 0

	line := in.line(lnum)
	s := line[skipWhite(line, 0):]
	if at(s, 0) == '#' {
		return false
	}
	if in.skipComment(s) == "" {
		return false
	}

	cursor := lnum
	// Start below a line that is blank, a preprocessor line, ends in ';'
	// or holds a brace.
	for lnum > 1 {
		prev := in.line(lnum - 1)
		p := skipWhite(prev, 0)
		if at(prev, p) == '#' || p >= len(prev) {
			break
		}
		stop := false
		for p < len(prev) {
			p = len(prev) - len(in.skipComment(prev[p:]))
			c := at(prev, p)
			if c == '{' || c == '}' || (c == ';' && in.noCode(prev[p+1:])) {
				stop = true
				break
			}
			if p < len(prev) {
				p++
			}
		}
		if stop {
			break
		}
		lnum--
	}

	pos.Lnum = lnum
	line = in.line(lnum)
	classOrStruct, lookforCtorInit, baseClass := false, false, false
	i := 0
	for {
		if i >= len(line) {
			if lnum == cursor {
				break
			}
			lnum++
			line = in.line(lnum)
			i = 0
		}
		if i == 0 {
			// "case (foo):" is not a base class
			if in.isCase(line, false) {
				break
			}
			i = len(line) - len(in.skipComment(line))
			if i >= len(line) {
				continue
			}
		}

		switch {
		case line[i] == '"':
			i += skipString(line[i:]) + 1
		case line[i] == ':':
			if at(line, i+1) == ':' {
				// after "::" it cannot be a constructor initializer
				lookforCtorInit = false
				i = len(line) - len(in.skipComment(line[i+2:]))
			} else {
				if lookforCtorInit || classOrStruct {
					baseClass = true
					lookforCtorInit, classOrStruct = false, false
					pos.Col = 0
				}
				i = len(line) - len(in.skipComment(line[i+1:]))
			}
		case startsWith(line[i:], "class") || startsWith(line[i:], "struct"):
			classOrStruct = true
			lookforCtorInit = false
			if line[i] == 'c' {
				i += 5
			} else {
				i += 6
			}
			i = len(line) - len(in.skipComment(line[i:]))
		default:
			c := line[i]
			switch {
			case c == '{' || c == '}' || c == ';':
				baseClass, lookforCtorInit, classOrStruct = false, false, false
			case c == ')':
				// "):" starts a constructor initializer
				classOrStruct = false
				lookforCtorInit = true
			case c == '?':
				// "() :" after '?' is a conditional
				return false
			case !isIDc(c):
				classOrStruct, lookforCtorInit = false, false
			case pos.Col == 0:
				lookforCtorInit = false
				// line up with the first item
				if baseClass {
					pos.Col = i
					cache.colLnum = lnum
				}
			}
			// a line ending in a comma is not aligned with
			if lnum == cursor && c == ',' && in.noCode(line[i+1:]) {
				pos.Col = 0
			}
			i = len(line) - len(in.skipComment(line[i+1:]))
		}
	}

	cache.found = baseClass
	if baseClass {
		pos.Lnum = lnum
	}
	return baseClass
}

// baseclassAmount returns the indent for a line continuing a base class
// list found on line lnum.
func (in *Indenter) baseclassAmount(cache *baseclassCache, lnum int) int {
	var amount int
	if cache.lpos.Col == 0 {
		amount = in.indentOf(lnum)
		l := in.line(lnum)
		if col, ok := in.findLastParen(l, '(', ')'); ok {
			if trypos, found := in.findMatchParen(Pos{lnum, col}, in.tune.MaxParen); found {
				amount = in.indentOf(trypos.Lnum)
			}
		}
		if !in.endsIn(l, ",", "") {
			amount += in.tune.CppBaseclass
		}
	} else {
		amount = in.vcol(Pos{cache.colLnum, cache.lpos.Col})
	}
	if amount < in.tune.CppBaseclass {
		amount = in.tune.CppBaseclass
	}
	return amount
}

// findLineComment returns the start of a "//" comment on the nearest
// non-blank line above lnum, when that line is only a comment.
func (in *Indenter) findLineComment(lnum int) (Pos, bool) {
	for lnum--; lnum > 0; lnum-- {
		line := in.line(lnum)
		p := skipWhite(line, 0)
		if isLineComment(line[p:]) {
			return Pos{lnum, p}, true
		}
		if p < len(line) {
			break
		}
	}
	return Pos{}, false
}
