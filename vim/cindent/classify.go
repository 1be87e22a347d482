package cindent

import "strings"

// The cin* predicates classify one line of C-like text. They work on
// suffixes of a line: a returned string is the rest of the line after the
// skipped part, and len(line)-len(rest) is the byte column of rest.

// isComment reports whether s starts a "/*" or "//" comment.
func isComment(s string) bool {
	return at(s, 0) == '/' && (at(s, 1) == '*' || at(s, 1) == '/')
}

func isLineComment(s string) bool {
	return at(s, 0) == '/' && at(s, 1) == '/'
}

// skipComment skips white space and any comments that follow it. A "//"
// comment, or a '#' comment when hash comments are enabled, swallows the
// rest of the line.
func (in *Indenter) skipComment(s string) string {
	for s != "" {
		prev := s
		s = s[skipWhite(s, 0):]

		// A '#' comment needs white space before it so that "$#array"
		// is not taken for one.
		if in.tune.HashComment != 0 && len(s) != len(prev) && at(s, 0) == '#' {
			return ""
		}
		if at(s, 0) != '/' {
			break
		}
		s = s[1:]
		if at(s, 0) == '/' {
			return ""
		}
		if at(s, 0) != '*' {
			break
		}
		// "/*/" closes right away, the '*' is shared
		end := strings.Index(s, "*/")
		if end < 0 {
			return ""
		}
		s = s[end+2:]
	}
	return s
}

// noCode reports whether s holds nothing but white space and comments.
func (in *Indenter) noCode(s string) bool {
	return in.skipComment(s) == ""
}

// skipString returns the index in s just past any string or character
// literals at its start, concatenated ones included. When the literals run to
// the end of the line the index of the last byte is returned.
func skipString(s string) int {
	p := 0
	for {
		c := at(s, p)
		if c == '\'' {
			if at(s, p+1) == 0 {
				break
			}
			i := p + 2
			if at(s, p+1) == '\\' && at(s, p+2) != 0 {
				i++
				for isDigit(at(s, i-1)) && isDigit(at(s, i)) {
					i++
				}
			}
			if at(s, i-1) != 0 && at(s, i) == '\'' {
				p = i + 1
				continue
			}
		} else if c == '"' {
			p++
			for ; p < len(s); p++ {
				if s[p] == '\\' && p+1 < len(s) {
					p++
				} else if s[p] == '"' {
					break
				}
			}
			if at(s, p) == '"' {
				p++
				continue
			}
		}
		break
	}
	if p >= len(s) && p > 0 {
		p = len(s) - 1
	}
	return p
}

// isPosInString reports whether byte col of line lies inside a string or
// character literal.
func isPosInString(line string, col int) bool {
	p := 0
	for p < len(line) && p < col {
		p += skipString(line[p:])
		p++
	}
	return p > col
}

// checkLineComment returns the column of a "//" comment in line that is not
// inside a string, or -1 when there is none.
func checkLineComment(line string) int {
	for p := 0; p+1 < len(line); p++ {
		if line[p] != '/' || line[p+1] != '/' {
			continue
		}
		// "*//*" is an end and start of a block comment
		if p > 0 && line[p-1] == '*' && at(line, p+2) == '*' {
			continue
		}
		if !isPosInString(line, p) {
			return p
		}
	}
	return -1
}

// startsWith reports whether s starts with the keyword word.
func startsWith(s, word string) bool {
	return strings.HasPrefix(s, word) && !isIDc(at(s, len(word)))
}

func isIf(s string) bool    { return startsWith(s, "if") }
func isDo(s string) bool    { return startsWith(s, "do") }
func isBreak(s string) bool { return startsWith(s, "break") }

// isElse accepts "else" and "} else".
func (in *Indenter) isElse(s string) bool {
	if at(s, 0) == '}' {
		s = in.skipComment(s[1:])
	}
	return startsWith(s, "else")
}

// isPreproc reports whether s is a preprocessor line.
func isPreproc(s string) bool {
	return at(s, skipWhite(s, 0)) == '#'
}

// isDefault recognizes "default:" but not "default::".
func (in *Indenter) isDefault(s string) bool {
	if !strings.HasPrefix(s, "default") {
		return false
	}
	s = in.skipComment(s[7:])
	return at(s, 0) == ':' && at(s, 1) != ':'
}

// isCase recognizes a "case x:" or "default:" label. When strict is false a
// string after "case" is accepted, for languages that switch on strings.
func (in *Indenter) isCase(s string, strict bool) bool {
	s = in.skipComment(s)
	if startsWith(s, "case") {
		for s = s[4:]; s != ""; s = s[1:] {
			s = in.skipComment(s)
			if s == "" {
				break
			}
			if s[0] == ':' {
				if at(s, 1) == ':' {
					s = s[1:]
				} else {
					return true
				}
			}
			if s[0] == '\'' && at(s, 1) != 0 && at(s, 2) == '\'' {
				s = s[2:]
			} else if isComment(s) {
				return false
			} else if s[0] == '"' {
				return !strict
			}
		}
		return false
	}
	return in.isDefault(s)
}

// isScopeDecl recognizes "public:", "private:" and the other
// 'cinscopedecls' words.
func (in *Indenter) isScopeDecl(s string) bool {
	s = in.skipComment(s)
	for _, word := range in.scopedecls {
		if strings.HasPrefix(s, word) {
			rest := in.skipComment(s[len(word):])
			if at(rest, 0) == ':' && at(rest, 1) != ':' {
				return true
			}
		}
	}
	return false
}

// isCinword reports whether line starts with one of the 'cinwords'.
func (in *Indenter) isCinword(line string) bool {
	line = line[skipWhite(line, 0):]
	for _, word := range in.cinwords {
		n := len(word)
		if strings.HasPrefix(line, word) && (!isWordc(at(line, n)) || !isWordc(line[n-1])) {
			return true
		}
	}
	return false
}

// isLabelSkip checks for "ident:" (not "ident::") and returns the text after
// the colon.
func (in *Indenter) isLabelSkip(s string) (string, bool) {
	if !isIDc(at(s, 0)) {
		return s, false
	}
	for isIDc(at(s, 0)) {
		s = s[1:]
	}
	s = in.skipComment(s)
	if at(s, 0) != ':' {
		return s, false
	}
	s = s[1:]
	return s, at(s, 0) != ':'
}

// isLabel reports whether line lnum is a jump label. A label is only
// accepted when the previous code line is terminated or is itself a label,
// which keeps "a ? b :" out.
func (in *Indenter) isLabel(lnum int) bool {
	s := in.skipComment(in.line(lnum))

	if in.isDefault(s) || in.isScopeDecl(s) {
		return false
	}
	if _, ok := in.isLabelSkip(s); !ok {
		return false
	}

	for l := lnum - 1; l >= 1; l-- {
		// inside a comment: continue from its start
		if cpos, ok := in.findStartComment(Pos{l, 0}); ok {
			l = cpos.Lnum
		}
		line := in.line(l)
		if isPreproc(line) {
			continue
		}
		line = in.skipComment(line)
		if line == "" {
			continue
		}
		if in.isTerminated(line, true, false) != 0 || in.isScopeDecl(line) || in.isCase(line, true) {
			return true
		}
		rest, ok := in.isLabelSkip(line)
		return ok && in.noCode(rest)
	}
	return true
}

// isInit recognizes the start of an enum or an initializer such as
// "static struct foo x = {".
func (in *Indenter) isInit(lnum int) bool {
	s := in.skipComment(in.line(lnum))
	if startsWith(s, "typedef") {
		s = in.skipComment(s[7:])
	}
	for {
		skipped := false
		for _, kw := range []string{"static", "public", "protected", "private"} {
			if startsWith(s, kw) {
				s = in.skipComment(s[len(kw):])
				skipped = true
				break
			}
		}
		if !skipped {
			break
		}
	}
	if startsWith(s, "enum") {
		return true
	}
	return in.endsIn(s, "=", "{")
}

// isCppNamespace recognizes "namespace name {" with optional "inline" and
// "export" in front.
func (in *Indenter) isCppNamespace(s string) bool {
	s = in.skipComment(s)
	for (strings.HasPrefix(s, "inline") || strings.HasPrefix(s, "export")) && !isWordc(at(s, 6)) {
		s = in.skipComment(s[skipWhite(s, 6):])
	}
	if !strings.HasPrefix(s, "namespace") || isWordc(at(s, 9)) {
		return false
	}
	hasName, hasNameStart := false, false
	p := in.skipComment(s[skipWhite(s, 9):])
	for p != "" {
		switch {
		case isWhite(p[0]):
			hasName = true
			p = in.skipComment(p[skipWhite(p, 0):])
		case p[0] == '{':
			return true
		case isWordc(p[0]):
			hasNameStart = true
			if hasName {
				return false
			}
			p = p[1:]
		case p[0] == ':' && at(p, 1) == ':' && isWordc(at(p, 2)):
			// nested namespace a::b
			if !hasNameStart || hasName {
				return false
			}
			p = p[3:]
		default:
			return false
		}
	}
	return true
}

// isCppExternC recognizes `extern "C" {` and `extern "C++" {`.
func (in *Indenter) isCppExternC(s string) bool {
	s = in.skipComment(s)
	if !strings.HasPrefix(s, "extern") || isWordc(at(s, 6)) {
		return false
	}
	hasLiteral := false
	p := in.skipComment(s[skipWhite(s, 6):])
	for p != "" {
		switch {
		case isWhite(p[0]):
			p = in.skipComment(p[skipWhite(p, 0):])
		case p[0] == '{':
			return hasLiteral
		case strings.HasPrefix(p, `"C"`):
			if hasLiteral {
				return false
			}
			hasLiteral = true
			p = p[3:]
		case strings.HasPrefix(p, `"C++"`):
			if hasLiteral {
				return false
			}
			hasLiteral = true
			p = p[5:]
		default:
			return false
		}
	}
	return hasLiteral
}

// afterLabel returns the code following a label or case prefix of l, or
// false when there is none.
func (in *Indenter) afterLabel(l string) (string, bool) {
	for ; l != ""; l = l[1:] {
		if l[0] == ':' {
			if at(l, 1) == ':' {
				l = l[1:]
			} else if !in.isCase(l[1:], false) {
				break
			}
		} else if l[0] == '\'' && at(l, 1) != 0 && at(l, 2) == '\'' {
			l = l[2:]
		}
	}
	if l == "" {
		return "", false
	}
	l = in.skipComment(l[1:])
	if l == "" {
		return "", false
	}
	return l, true
}

// hasJSKey recognizes a JavaScript object key: "key:", 'key': or "key":.
func (in *Indenter) hasJSKey(text string) bool {
	s := text[skipWhite(text, 0):]
	var quote byte
	if at(s, 0) == '\'' || at(s, 0) == '"' {
		quote = s[0]
		s = s[1:]
	}
	if !isIDc(at(s, 0)) {
		return false
	}
	for isIDc(at(s, 0)) {
		s = s[1:]
	}
	if quote != 0 && at(s, 0) == quote {
		s = s[1:]
	}
	s = in.skipComment(s)
	return at(s, 0) == ':' && at(s, 1) != ':'
}

// isTerminated returns the character that terminates s: ';', '}' or, when
// inclComma is set, ','. With inclOpen a trailing '{' also terminates. A
// line starting with '{' or '}' (but not "} else") returns that brace when
// nothing else terminates it. Zero means unterminated.
func (in *Indenter) isTerminated(s string, inclOpen, inclComma bool) byte {
	var foundStart byte
	nOpen := 0
	isElse := false

	s = in.skipComment(s)
	if at(s, 0) == '{' || (at(s, 0) == '}' && !in.isElse(s)) {
		foundStart = s[0]
	}
	if foundStart == 0 {
		isElse = in.isElse(s)
	}

	for i := 0; i < len(s); i++ {
		i = in.skipCode(s, i)
		c := s[i]
		if c == '}' && nOpen > 0 {
			nOpen--
		}
		if (!isElse || nOpen == 0) && (c == ';' || c == '}' || (inclComma && c == ',')) && in.noCode(s[i+1:]) {
			return c
		} else if c == '{' {
			if inclOpen && in.noCode(s[i+1:]) {
				return c
			}
			nOpen++
		}
	}
	return foundStart
}

// skipCode moves index i of a non-empty line past comments and literals.
// When that reaches the end of the line the last byte is returned, so a
// trailing ';' inside a "//" comment still counts.
func (in *Indenter) skipCode(line string, i int) int {
	i = len(line) - len(in.skipComment(line[i:]))
	i += skipString(line[i:])
	if i >= len(line) {
		i = len(line) - 1
	}
	return i
}

// endsIn reports whether s ends in find, optionally followed by ignore,
// with only comments after it.
func (in *Indenter) endsIn(s, find, ignore string) bool {
	for s != "" {
		s = in.skipComment(s)
		if strings.HasPrefix(s, find) {
			r := s[len(find):]
			r = r[skipWhite(r, 0):]
			if ignore != "" && strings.HasPrefix(r, ignore) {
				r = r[len(ignore):]
				r = r[skipWhite(r, 0):]
			}
			if in.noCode(r) {
				return true
			}
		}
		if s != "" {
			s = s[1:]
		}
	}
	return false
}

// isIfForWhileBeforeOffset checks whether the '(' at *col is preceded by
// "if", "for" or "while" and moves *col to the keyword.
func isIfForWhileBeforeOffset(line string, col *int) bool {
	offset := *col
	if offset < 2 {
		return false
	}
	offset--
	for offset > 2 && isWhite(at(line, offset)) {
		offset--
	}

	found := false
	offset--
	if hasPrefixAt(line, offset, "if") {
		found = true
	} else if offset >= 1 {
		offset--
		if hasPrefixAt(line, offset, "for") {
			found = true
		} else if offset >= 2 {
			offset -= 2
			found = hasPrefixAt(line, offset, "while")
		}
	}
	if !found {
		return false
	}
	if offset == 0 || !isIDc(at(line, offset-1)) {
		*col = offset
		return true
	}
	return false
}
