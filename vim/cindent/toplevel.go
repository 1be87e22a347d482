package cindent

import "strings"

// topLevelIndent indents a line that is not inside any braces or parens.
// Mostly the previous line's indent is kept, except after a function
// declaration where K&R parameters are indented.
func (in *Indenter) topLevelIndent(cur Pos, theline string, continuation int) int {
	t := &in.tune

	if at(theline, 0) == '{' {
		return t.FirstOpen
	}

	// A line followed by a function declaration is its return type,
	// unless it is a comment, is terminated or holds a brace.
	if cur.Lnum < in.lines.LineCount() &&
		!in.noCode(theline) &&
		!strings.ContainsAny(theline, "{}") &&
		!in.endsIn(theline, ":", "") &&
		!in.endsIn(theline, ",", "") &&
		in.isFuncDecl(nil, cur.Lnum+1, cur.Lnum+1) &&
		in.isTerminated(theline, false, true) == 0 {
		return t.FuncType
	}

	amount := 0
	cache := newBaseclassCache()
	commentAbove := 0
	exhausted := true
	pos := cur
	for pos.Lnum > 1 {
		pos = Pos{pos.Lnum - 1, 0}
		l := in.line(pos.Lnum)

		if cpos, ok := in.findStartComment(pos); ok {
			pos = Pos{cpos.Lnum + 1, 0}
			continue
		}

		if t.CppBaseclass != 0 && at(theline, 0) != '{' && in.isCppBaseclass(cache, pos.Lnum) {
			amount = in.baseclassAmount(cache, pos.Lnum)
			exhausted = false
			break
		}

		lnum := pos.Lnum
		if in.isPreprocCont(&l, &lnum, &amount) {
			pos.Lnum = lnum
			continue
		}
		if in.noCode(l) {
			if commentAbove == 0 && skipWhite(l, 0) < len(l) && pos.Lnum == cur.Lnum-1 {
				commentAbove = pos.Lnum
			}
			continue
		}
		exhausted = false

		// after a line ending in ',' or '\' use one level of indent
		//   int foo,
		//       bar;
		if backslash := endsInBackslash(l); in.endsIn(l, ",", "") || backslash {
			if col, ok := in.findLastParen(l, '(', ')'); ok {
				if trypos, found := in.findMatchParen(Pos{pos.Lnum, col}, t.MaxParen); found {
					pos = trypos
				}
			}
			// a ',' after a continued string: go to its first line
			for !backslash && pos.Lnum > 1 && endsInBackslash(in.line(pos.Lnum-1)) {
				pos = Pos{pos.Lnum - 1, 0}
			}
			amount = in.indentOf(pos.Lnum)
			if amount == 0 {
				amount = in.firstIDAmount(pos.Lnum)
			}
			if amount == 0 {
				amount = continuation
			}
			break
		}

		// a function declaration goes to the left margin
		if in.isFuncDecl(nil, cur.Lnum, 0) {
			break
		}
		l = in.line(pos.Lnum)

		// the closing '}' of a previous function
		if at(l, skipWhite(l, 0)) == '}' {
			break
		}
		// a line ending in "};" closes an initializer
		if in.endsIn(l, "};", "") {
			break
		}
		// an array constant:  something = [
		if in.endsIn(l, "[", "") {
			amount = in.indentOf(pos.Lnum) + continuation
			break
		}

		// a lone ';' belonging to a '}' above, as before an #endif
		if look := l[skipWhite(l, 0):]; at(look, 0) == ';' && in.noCode(look[1:]) {
			p := pos.Lnum
			for p > 1 {
				p--
				look = in.line(p)
				if !in.noCode(look) && !in.isPreprocCont(&look, &p, &amount) {
					break
				}
			}
			if p > 0 && in.endsIn(look, "}", "") {
				break
			}
		}

		// after a function declaration come the K&R parameters
		if in.isFuncDecl(&l, pos.Lnum, 0) {
			amount = t.Param
			break
		}

		// a ';' after a line ending in ',' or '\' goes to column zero
		//   int foo,
		//       bar;
		if in.endsIn(l, ";", "") {
			prev := in.line(pos.Lnum - 1)
			if in.endsIn(prev, ",", "") || endsInBackslash(prev) {
				break
			}
		}

		// use the indent of the line, or of the line with its '('
		col, _ := in.findLastParen(l, '(', ')')
		if trypos, found := in.findMatchParen(Pos{pos.Lnum, col}, t.MaxParen); found {
			pos = trypos
		}
		amount = in.indentOf(pos.Lnum)
		break
	}

	// nothing but comments above: keep the comment's indent
	if exhausted && commentAbove > 0 {
		amount = in.indentOf(commentAbove)
	}

	if isComment(theline) {
		amount += t.Comment
	}

	// after a backslash continuation
	//     char *foo = "asdf\
	//                  here";
	if cur.Lnum > 1 && endsInBackslash(in.line(cur.Lnum-1)) {
		curAmount := in.equalAmount(cur.Lnum - 1)
		if curAmount > 0 {
			amount = curAmount
		} else if curAmount == 0 {
			amount += continuation
		}
	}
	return amount
}
