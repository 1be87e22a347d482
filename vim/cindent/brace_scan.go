package cindent

// unterminatedLine handles a line above that does not end a statement, or
// ends in ','. It returns true when the search is done.
func (s *braceScan) unterminatedLine(l string, terminated byte) bool {
	in := s.in
	t := &in.tune

	if s.lf != lookforEnumOrInit && (at(l, skipWhite(l, 0)) == '[' || lastByte(l) == '[') {
		s.amount += s.continuation
	}

	// Go back to the line that starts a paren expression, but not to a
	// '(' before the block.
	col, _ := in.findLastParen(l, '(', ')')
	trypos, found := in.findMatchParen(Pos{s.pos.Lnum, col}, in.corrMaxParen(s.cur, s.pos.Lnum))
	if found && trypos.Before(s.bracePos) {
		found = false
	}
	if !found && terminated == ',' {
		if bcol, ok := in.findLastParen(l, '{', '}'); ok {
			trypos, found = in.findStartBrace(Pos{s.pos.Lnum, bcol})
		}
	}
	if found {
		s.pos = trypos
		l = in.line(s.pos.Lnum)
		if in.isCase(l, false) || in.isScopeDecl(l) {
			s.pos = Pos{s.pos.Lnum + 1, 0}
			return false
		}
	}

	// skip backslash continued lines
	if terminated == ',' {
		for s.pos.Lnum > 1 && endsInBackslash(in.line(s.pos.Lnum-1)) {
			s.pos = Pos{s.pos.Lnum - 1, 0}
		}
	}

	var curAmount int
	if t.JS != 0 {
		curAmount = in.indentOf(s.pos.Lnum)
	} else {
		curAmount, l = in.skipLabel(s.pos.Lnum)
	}

	// a '{' right below a statement lines up with it
	if terminated != ',' && s.lf != lookforTerm && s.first == '{' {
		s.amount = curAmount
		if at(l, skipWhite(l, 0)) != '{' {
			s.amount += t.OpenExtra
		}
		if t.CppBaseclass != 0 && t.JS == 0 {
			s.lf = lookforCppBaseclass
			return false
		}
		return true
	}

	if in.isCinword(l) || in.isElse(l[skipWhite(l, 0):]) {
		return s.afterCinword(curAmount)
	}

	if s.lf == lookforUnterm {
		if terminated == ',' {
			s.amount += s.continuation
		}
		return true
	}

	if s.lf == lookforEnumOrInit {
		// two lines ending in ',': line up with the lower one
		if terminated == ',' {
			if t.CppBaseclass == 0 {
				return true
			}
			s.lf = lookforCppBaseclass
			return false
		}
		if s.amount > curAmount {
			s.amount = curAmount
		}
		return false
	}

	cl := in.line(s.pos.Lnum)
	s.amount = curAmount
	if terminated == ',' && (at(cl, skipWhite(cl, 0)) == ']' || (len(cl) >= 2 && cl[len(cl)-2] == ']')) {
		return true
	}

	if s.lf == lookforInitial && terminated == ',' {
		if t.JS != 0 {
			// line up below the line that starts the list
			if isComment(cl[skipWhite(cl, 0):]) {
				return true
			}
			s.lf = lookforComma
			if trypos, ok := in.findMatchChar('[', s.pos, t.MaxParen); ok {
				if trypos.Lnum == s.pos.Lnum-1 {
					return true
				}
				s.ourscope = trypos.Lnum
			}
		} else {
			s.lf = lookforEnumOrInit
			s.contAmount = in.firstIDAmount(s.pos.Lnum)
		}
		return false
	}

	if s.lf == lookforInitial && endsInBackslash(cl) {
		s.contAmount = in.equalAmount(s.pos.Lnum)
	}
	if s.lf != lookforTerm && s.lf != lookforJSKey && s.lf != lookforComma {
		s.lf = lookforUnterm
	}
	return false
}

// afterCinword handles an unterminated "if", "while", "else" and the like
// above the line.
func (s *braceScan) afterCinword(curAmount int) bool {
	in := s.in
	t := &in.tune

	if s.lf == lookforUnterm || s.lf == lookforEnumOrInit {
		s.addContinuation()
		return true
	}

	s.amount = curAmount
	if s.first == '{' {
		s.amount += t.OpenExtra
	}
	if s.lf != lookforTerm {
		s.amount += t.Level + t.NoBrace
		return true
	}

	// the "while" after a "do" lines up with the "do"
	line := in.line(s.pos.Lnum)
	l := line[skipWhite(line, 0):]
	if isDo(l) {
		if s.whilelevel == 0 {
			return true
		}
		s.whilelevel--
	}

	// Between an "if" and its "else" the scope of the "else" is used.
	if in.isElse(l) && s.whilelevel == 0 {
		from := s.pos
		if at(l, 0) == '}' {
			from.Col = len(line) - len(l) + 1
		}
		trypos, ok := in.findStartBrace(from)
		if !ok {
			return true
		}
		lnum, ok := in.findMatch(lookforIf, trypos.Lnum, s.pos.Lnum)
		if !ok {
			return true
		}
		s.pos = Pos{lnum, 0}
	}
	return false
}

// whileOfDoEnd handles a "while (cond);" above the line: everything up to
// the matching "do" is skipped.
func (s *braceScan) whileOfDoEnd() bool {
	in := s.in
	if s.lf == lookforUnterm || s.lf == lookforEnumOrInit {
		s.addContinuation()
		return true
	}
	if s.whilelevel == 0 {
		s.lf = lookforTerm
		s.amount = in.indentOf(s.pos.Lnum)
		if s.first == '{' {
			s.amount += in.tune.OpenExtra
		}
	}
	s.whilelevel++
	return false
}

// terminatedLine handles a line above that ends a statement.
func (s *braceScan) terminatedLine() bool {
	in := s.in
	t := &in.tune

	line := in.line(s.pos.Lnum)
	// a single "break" before a case label may line up with the label
	if s.lf == lookforNoBreak && isBreak(line[skipWhite(line, 0):]) {
		s.lf = lookforAny
		return false
	}

	if s.whilelevel > 0 && isDo(in.skipComment(line)) {
		s.amount = in.indentOf(s.pos.Lnum)
		s.whilelevel--
		return false
	}

	if s.lf == lookforUnterm || s.lf == lookforEnumOrInit {
		s.addContinuation()
		return true
	}

	if s.lf == lookforTerm {
		return !s.lookforBreak && s.whilelevel == 0
	}

	// First terminated line above: look further back for the start of
	// its statement.
	for {
		l := in.line(s.pos.Lnum)
		if col, ok := in.findLastParen(l, '(', ')'); ok {
			if trypos, found := in.findMatchParen(Pos{s.pos.Lnum, col}, t.MaxParen); found {
				s.pos = trypos
				l = in.line(s.pos.Lnum)
				if in.isCase(l, false) || in.isScopeDecl(l) {
					s.pos = Pos{s.pos.Lnum + 1, 0}
					return false
				}
			}
		}

		// do not align with a statement after a kept case label
		iscase := t.KeepCaseLabel != 0 && in.isCase(l, false)

		amount, rest := in.skipLabel(s.pos.Lnum)
		s.amount = amount
		if s.first == '{' {
			s.amount += t.OpenExtra
		}
		rest = rest[skipWhite(rest, 0):]
		if at(rest, 0) == '{' {
			s.amount -= t.OpenExtra
		}
		if iscase {
			s.lf = lookforAny
		} else {
			s.lf = lookforTerm
		}

		// a terminated "else" skips to its "if"
		if s.lf == lookforTerm && at(rest, 0) != '}' && in.isElse(rest) && s.whilelevel == 0 {
			trypos, ok := in.findStartBrace(s.pos)
			if !ok {
				return true
			}
			lnum, ok := in.findMatch(lookforIf, trypos.Lnum, s.pos.Lnum)
			if !ok {
				return true
			}
			s.pos = Pos{lnum, 0}
			return false
		}

		// at the end of a block: go to its start
		l = in.line(s.pos.Lnum)
		col, ok := in.findLastParen(l, '{', '}')
		if !ok {
			return false
		}
		trypos, found := in.findStartBrace(Pos{s.pos.Lnum, col})
		// a start on the same line would be checked again forever
		if !found || trypos.Lnum >= s.pos.Lnum {
			return false
		}
		s.pos = trypos
		// "} else {" skips the block, anything else is checked again
		cl := in.skipComment(in.line(s.pos.Lnum))
		if at(cl, 0) == '}' || !in.isElse(cl) {
			continue
		}
		s.pos = Pos{s.pos.Lnum + 1, 0}
		return false
	}
}
