package cindent

import "math"

// Search flags for findMatchLimit.
const (
	fmBackward  = 1 << iota // search backward (only used with '*')
	fmBlockStop             // stop at a '{' or '}' in column 0
)

const maxCol = math.MaxInt32

// literalMask marks the bytes of line that belong to string or character
// literals. When the double quotes of the line do not balance nothing after
// the unbalanced one is trusted and marked.
func literalMask(line string) []bool {
	mask := make([]bool, len(line))
	mark := func(from, to int) {
		for k := from; k <= to && k < len(mask); k++ {
			mask[k] = true
		}
	}
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '\\':
			i++
		case '\'':
			j := i + 1
			if at(line, j) == '\\' && at(line, j+1) != 0 {
				j += 2
				for isDigit(at(line, j-1)) && isDigit(at(line, j)) {
					j++
				}
			} else if at(line, j) != 0 {
				j++
			}
			if j > i+1 && at(line, j) == '\'' {
				mark(i, j)
				i = j
			}
		case '"':
			j := i + 1
			for j < len(line) && line[j] != '"' {
				if line[j] == '\\' {
					j++
				}
				j++
			}
			if j >= len(line) {
				return mask
			}
			mark(i, j)
			i = j
		}
	}
	return mask
}

// escaped reports whether the byte at col is preceded by an odd number of
// backslashes.
func escaped(line string, col int) bool {
	n := 0
	for k := col - 1; k >= 0 && line[k] == '\\'; k-- {
		n++
	}
	return n%2 == 1
}

// findMatchLimit is the generic bracket search the indent code is built
// on. With initc '(', '{' or '[' it searches backward from pos for the
// unmatched opener; with ')', '}' or ']' forward for the unmatched closer;
// with 0 it matches the first bracket at or after pos on its line. With '*'
// it finds the "/*" that starts the comment pos is in. Brackets inside
// string and character literals are ignored, comments are not. maxTravel
// limits the number of lines visited; 0 means no limit.
func (in *Indenter) findMatchLimit(pos Pos, initc byte, flags int, maxTravel int) (Pos, bool) {
	line := in.line(pos.Lnum)
	var findc byte
	backwards := false
	commentDir := false

	switch initc {
	case '(', '{', '[':
		findc = initc
		initc = closerOf(initc)
		backwards = true
	case ')', '}', ']':
		findc = initc
		initc = openerOf(initc)
	case '*':
		commentDir = true
		backwards = flags&fmBackward != 0
	case 0:
		// use the bracket under or after the cursor
		col := pos.Col
		for col < len(line) && !isBracket(line[col]) {
			col++
		}
		if col >= len(line) {
			return Pos{}, false
		}
		pos.Col = col
		initc = line[col]
		if c := closerOf(initc); c != 0 {
			findc = c
		} else {
			findc = openerOf(initc)
			backwards = true
		}
	default:
		return Pos{}, false
	}

	if commentDir && !backwards {
		// only the backward comment search is needed here
		return Pos{}, false
	}

	lineCount := in.lines.LineCount()
	mask := literalMask(line)
	commentCol := maxCol
	if commentDir {
		commentCol = lineCommentCol(line)
	}
	count := 0
	traveled := 0
	var matchPos Pos

	for {
		if backwards {
			if pos.Col == 0 {
				if pos.Lnum <= 1 {
					break
				}
				pos.Lnum--
				if maxTravel > 0 {
					traveled++
					if traveled > maxTravel {
						break
					}
				}
				line = in.line(pos.Lnum)
				pos.Col = len(line)
				mask = literalMask(line)
				if commentDir {
					commentCol = lineCommentCol(line)
				}
			} else {
				pos.Col--
			}
		} else {
			if pos.Col >= len(line) {
				if pos.Lnum >= lineCount {
					break
				}
				pos.Lnum++
				if maxTravel > 0 {
					traveled++
					if traveled > maxTravel {
						break
					}
				}
				line = in.line(pos.Lnum)
				pos.Col = 0
				mask = literalMask(line)
			} else {
				pos.Col++
			}
		}

		if flags&fmBlockStop != 0 && pos.Col == 0 && (at(line, 0) == '{' || at(line, 0) == '}') {
			if line[0] == findc && count == 0 {
				return pos, true
			}
			break
		}

		if commentDir {
			// Comments do not nest. A "/*" after "//" or right after
			// "*" does not start one.
			if pos.Col == 0 || pos.Col >= len(line) {
				continue
			}
			if line[pos.Col-1] == '/' && line[pos.Col] == '*' &&
				(pos.Col == 1 || line[pos.Col-2] != '*') && pos.Col < commentCol {
				count++
				matchPos = Pos{pos.Lnum, pos.Col - 1}
			} else if line[pos.Col-1] == '*' && line[pos.Col] == '/' {
				if count > 0 {
					return matchPos, true
				}
				if pos.Col > 1 && line[pos.Col-2] == '/' && pos.Col <= commentCol {
					return Pos{pos.Lnum, pos.Col - 2}, true
				}
				return Pos{}, false
			}
			continue
		}

		if pos.Col >= len(line) || mask[pos.Col] || escaped(line, pos.Col) {
			continue
		}
		switch line[pos.Col] {
		case initc:
			count++
		case findc:
			if count == 0 {
				return pos, true
			}
			count--
		}
	}

	if commentDir && count > 0 {
		return matchPos, true
	}
	return Pos{}, false
}

func lineCommentCol(line string) int {
	if c := checkLineComment(line); c >= 0 {
		return c
	}
	return maxCol
}

func isBracket(c byte) bool {
	return closerOf(c) != 0 || openerOf(c) != 0
}

func closerOf(c byte) byte {
	switch c {
	case '(':
		return ')'
	case '{':
		return '}'
	case '[':
		return ']'
	}
	return 0
}

func openerOf(c byte) byte {
	switch c {
	case ')':
		return '('
	case '}':
		return '{'
	case ']':
		return '['
	}
	return 0
}

// skip2Pos walks from the start of the line of p over comments and
// literals and returns the column where it stops at or past p.Col. A result
// beyond p.Col means p is inside a comment or literal.
func (in *Indenter) skip2Pos(p Pos) int {
	line := in.line(p.Lnum)
	i := 0
	for i < len(line) && i < p.Col {
		if isComment(line[i:]) {
			i = len(line) - len(in.skipComment(line[i:]))
		} else if n := skipString(line[i:]); n == 0 {
			i++
		} else {
			i += n
		}
	}
	return i
}

// findStartComment returns the start of the "/*" comment that from is in.
// A comment opener found inside a string shrinks the search to the lines
// below it and the search is retried.
func (in *Indenter) findStartComment(from Pos) (Pos, bool) {
	limit := in.tune.MaxComment
	for {
		pos, ok := in.findMatchLimit(from, '*', fmBackward, limit)
		if !ok {
			return Pos{}, false
		}
		if !isPosInString(in.line(pos.Lnum), pos.Col) {
			return pos, true
		}
		limit = from.Lnum - pos.Lnum - 1
		if limit <= 0 {
			return Pos{}, false
		}
	}
}

// findMatchChar finds the unmatched c before from, at most maxParen lines
// back. A match inside a comment is rejected and the search resumes before
// the comment with the line budget reduced by the lines already covered.
func (in *Indenter) findMatchChar(c byte, from Pos, maxParen int) (Pos, bool) {
	cur := from
	budget := maxParen
	for {
		trypos, ok := in.findMatchLimit(cur, c, 0, budget)
		if !ok {
			return Pos{}, false
		}
		if in.skip2Pos(trypos) > trypos.Col {
			// in a "//" comment
			budget = maxParen - (from.Lnum - trypos.Lnum)
			if budget <= 0 {
				return Pos{}, false
			}
			cur = Pos{trypos.Lnum, 0}
			continue
		}
		if cpos, inComment := in.findStartComment(trypos); inComment {
			budget = maxParen - (from.Lnum - cpos.Lnum)
			if budget <= 0 {
				return Pos{}, false
			}
			cur = cpos
			continue
		}
		return trypos, true
	}
}

// findMatchParen finds the unclosed '(' before from.
func (in *Indenter) findMatchParen(from Pos, maxParen int) (Pos, bool) {
	return in.findMatchChar('(', from, maxParen)
}

// findMatchParenAfterBrace is findMatchParen, but drops a '(' that lies
// before the enclosing '{'.
func (in *Indenter) findMatchParenAfterBrace(from Pos, maxParen int) (Pos, bool) {
	trypos, ok := in.findMatchParen(from, maxParen)
	if !ok {
		return Pos{}, false
	}
	if brace, found := in.findStartBrace(from); found && trypos.Before(brace) {
		return Pos{}, false
	}
	return trypos, true
}

// findStartBrace finds the '{' that opens the block from is in. A brace in
// a comment is skipped, continuing before the comment.
func (in *Indenter) findStartBrace(from Pos) (Pos, bool) {
	cur := from
	for {
		trypos, ok := in.findMatchLimit(cur, '{', fmBlockStop, 0)
		if !ok {
			return Pos{}, false
		}
		if in.skip2Pos(trypos) != trypos.Col {
			cur = trypos
			continue
		}
		cpos, inComment := in.findStartComment(trypos)
		if !inComment {
			return trypos, true
		}
		cur = cpos
	}
}

// findLastParen returns the column of the last unmatched closing bracket
// end in l, ignoring comments and literals. The column is 0 when there is
// none.
func (in *Indenter) findLastParen(l string, start, end byte) (int, bool) {
	col := 0
	found := false
	open := 0
	for i := 0; i < len(l); i++ {
		i = in.skipCode(l, i)
		switch l[i] {
		case start:
			open++
		case end:
			if open > 0 {
				open--
			} else {
				col = i
				found = true
			}
		}
	}
	return col, found
}

// corrMaxParen shrinks the paren search budget when the scan has already
// moved up from start to lnum.
func (in *Indenter) corrMaxParen(start Pos, lnum int) int {
	n := start.Lnum - lnum
	if n > 0 && n < in.tune.MaxParen/2 {
		return in.tune.MaxParen - n
	}
	return in.tune.MaxParen
}

// FindMatch returns the bracket matching the one under or after pos on its
// line, ignoring brackets in string and character literals. This is the %
// motion.
func (in *Indenter) FindMatch(pos Pos) (Pos, bool) {
	return in.findMatchLimit(pos, 0, 0, 0)
}

// FindUnmatched returns the unmatched opening (for '(' '{' '[') or closing
// (for ')' '}' ']') bracket around pos, like "[(" and "])".
func (in *Indenter) FindUnmatched(pos Pos, c byte) (Pos, bool) {
	return in.findMatchLimit(pos, c, 0, 0)
}
