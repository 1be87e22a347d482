package cindent

// braceIndent indents a line inside the block opened by the '{' at
// bracePos. The second result is true when the amount is final and must
// not get comment or label adjustments.
func (in *Indenter) braceIndent(cur Pos, theline string, bracePos Pos, continuation int) (int, bool) {
	t := &in.tune
	first := at(theline, 0)
	ourscope := bracePos.Lnum
	start := in.line(ourscope)

	// How far the line holding the brace is indented.
	var amount, startBrace int
	if at(start, skipWhite(start, 0)) == '{' {
		amount = in.vcol(bracePos)
		if at(start, 0) == '{' {
			startBrace = braceInCol0
		} else {
			startBrace = braceAtStart
		}
	} else {
		// the brace may end a continuation line: find its start
		lnum := ourscope
		if col, ok := in.findLastParen(start, '(', ')'); ok {
			if trypos, found := in.findMatchParen(Pos{ourscope, col}, t.MaxParen); found {
				lnum = trypos.Lnum
			}
		}
		switch {
		case (t.JS != 0 || t.KeepCaseLabel != 0) && in.isCase(start[skipWhite(start, 0):], false):
			amount = in.indentOf(ourscope)
		case t.JS != 0:
			amount = in.indentOf(lnum)
		default:
			amount, _ = in.skipLabel(lnum)
		}
		startBrace = braceAtEnd
	}

	jsCurHasKey := t.JS != 0 && in.hasJSKey(theline)

	// a closing brace lines up with the block start
	if first == '}' {
		return amount + t.CloseExtra, false
	}

	// an "else" lines up with its "if", a "while" with its "do"
	lf := lookforInitial
	if in.isElse(theline) {
		lf = lookforIf
	} else if in.isWhileOfDo(theline, cur.Lnum) {
		lf = lookforDo
	}
	if lf != lookforInitial {
		if lnum, ok := in.findMatch(lf, ourscope, cur.Lnum); ok {
			return in.indentOf(lnum), true
		}
	}

	lookforNamespace := false
	switch {
	case startBrace == braceInCol0:
		amount = t.OpenLeftImag
		lookforNamespace = true
	case startBrace == braceAtEnd:
		amount += t.OpenImag
		// namespace and extern "C" are recognized on the line with the brace
		l := in.line(ourscope)
		l = l[skipWhite(l, 0):]
		if in.isCppNamespace(l) {
			amount += t.CppNamespace
		} else if in.isCppExternC(l) {
			amount += t.CppExternC
		}
	default:
		// OpenExtra is added back below
		amount -= t.OpenExtra
		if amount < 0 {
			amount = 0
		}
	}

	lookforBreak := false
	switch {
	case in.isCase(theline, false):
		lf = lookforCase
		amount += t.Case
	case in.isScopeDecl(theline):
		lf = lookforScopeDecl
		amount += t.ScopeDecl
	default:
		if t.CaseBreak != 0 && isBreak(theline) {
			lookforBreak = true
		}
		lf = lookforInitial
		amount += t.Level
	}

	s := &braceScan{
		in:               in,
		cur:              cur,
		theline:          theline,
		first:            first,
		ourscope:         ourscope,
		bracePos:         bracePos,
		startBrace:       startBrace,
		continuation:     continuation,
		amount:           amount,
		scopeAmount:      amount,
		lf:               lf,
		lookforBreak:     lookforBreak,
		lookforNamespace: lookforNamespace,
		jsCurHasKey:      jsCurHasKey,
		cache:            newBaseclassCache(),
	}
	s.run()
	return s.amount, false
}

// braceScan is the state of the backward search for something to line up
// with inside a block.
type braceScan struct {
	in               *Indenter
	cur              Pos
	theline          string
	first            byte
	ourscope         int
	bracePos         Pos
	startBrace       int
	continuation     int
	amount           int
	scopeAmount      int
	contAmount       int
	addedToAmount    int
	whilelevel       int
	lf               lookfor
	lookforBreak     bool
	lookforNamespace bool
	jsCurHasKey      bool
	cache            *baseclassCache
	pos              Pos
}

// addContinuation applies the continuation indent and is used wherever the
// search ends on an unterminated statement.
func (s *braceScan) addContinuation() {
	if s.contAmount > 0 {
		s.amount = s.contAmount
	} else {
		s.amount += s.continuation
	}
}

func (s *braceScan) run() {
	in := s.in
	t := &in.tune
	s.pos = s.cur

	for {
		s.pos = Pos{s.pos.Lnum - 1, 0}

		if s.pos.Lnum <= s.ourscope {
			if s.atScopeStart() {
				return
			}
			continue
		}

		// inside a comment: skip to its start
		if cpos, ok := in.findStartComment(s.pos); ok {
			s.pos = Pos{cpos.Lnum + 1, 0}
			continue
		}

		l := in.line(s.pos.Lnum)

		// a case label or scope declaration may be lined up with
		iscase := in.isCase(l, false)
		if iscase || in.isScopeDecl(l) {
			if s.labelLine(iscase) {
				return
			}
			continue
		}

		// looking for a case label or scope declaration: skip blocks
		if s.lf == lookforCase || s.lf == lookforScopeDecl {
			if _, ok := in.findLastParen(l, '{', '}'); ok {
				if trypos, found := in.findStartBrace(s.pos); found {
					s.pos = Pos{trypos.Lnum + 1, 0}
				}
			}
			continue
		}

		// a jump label with nothing after it
		if t.JS == 0 && in.isLabel(s.pos.Lnum) {
			if rest, ok := in.afterLabel(l); !ok || in.noCode(rest) {
				continue
			}
		}

		lnum := s.pos.Lnum
		if in.isPreprocCont(&l, &lnum, &s.amount) || in.noCode(l) {
			s.pos.Lnum = lnum
			continue
		}

		isBase := false
		if s.lf != lookforTerm && t.CppBaseclass > 0 {
			isBase = in.isCppBaseclass(s.cache, s.pos.Lnum)
		}
		if isBase {
			switch {
			case s.lf == lookforUnterm:
				s.addContinuation()
			case s.first == '{':
				// need the start of the declaration
				s.lf = lookforUnterm
				s.continuation = 0
				continue
			default:
				s.amount = in.baseclassAmount(s.cache, s.pos.Lnum)
			}
			return
		} else if s.lf == lookforCppBaseclass {
			// only look for a base class before the opening brace
			if in.isTerminated(l, true, false) != 0 {
				return
			}
			continue
		}

		terminated := in.isTerminated(l, false, true)

		if s.jsCurHasKey {
			s.jsCurHasKey = false
			if t.JS != 0 && terminated == ',' {
				s.lf = lookforJSKey
			}
		}
		if s.lf == lookforJSKey && in.hasJSKey(l) {
			s.amount = in.indentOf(s.pos.Lnum)
			return
		}
		if s.lf == lookforComma {
			if s.bracePos.Lnum >= s.pos.Lnum || terminated == ',' {
				return
			}
			s.amount = in.indentOf(s.pos.Lnum)
			if s.pos.Lnum-1 == s.ourscope {
				return
			}
		}

		var stop bool
		switch {
		case terminated == 0 || (s.lf != lookforUnterm && terminated == ','):
			stop = s.unterminatedLine(l, terminated)
		default:
			if whileLnum, ok := in.isWhileOfDoEnd(terminated, s.pos.Lnum); ok {
				s.pos.Lnum = whileLnum
				stop = s.whileOfDoEnd()
			} else {
				stop = s.terminatedLine()
			}
		}
		if stop {
			return
		}
	}
}

// atScopeStart handles reaching the line of the opening brace. It returns
// false when the search has to go on above the block.
func (s *braceScan) atScopeStart() bool {
	in := s.in
	t := &in.tune

	switch s.lf {
	case lookforEnumOrInit:
		if s.pos.Lnum <= 0 || s.pos.Lnum < s.ourscope-t.MaxParen {
			// nothing found: a variable initialization
			if s.contAmount > 0 {
				s.amount = s.contAmount
			} else if t.JS == 0 {
				s.amount += s.continuation
			}
			return true
		}
		if cpos, ok := in.findStartComment(s.pos); ok {
			s.pos = Pos{cpos.Lnum + 1, 0}
			return false
		}
		l := in.line(s.pos.Lnum)
		lnum := s.pos.Lnum
		if in.isPreprocCont(&l, &lnum, &s.amount) {
			s.pos.Lnum = lnum
			return false
		}
		if in.noCode(l) {
			return false
		}
		terminated := in.isTerminated(l, false, true)

		// At top level a function declaration means this was a variable
		// declaration.
		if s.startBrace != braceInCol0 || !in.isFuncDecl(&l, s.pos.Lnum, 0) {
			// another ',' continues the initialization
			if terminated == ',' {
				return true
			}
			if terminated != ';' && in.isInit(s.pos.Lnum) {
				return true
			}
			if terminated == 0 || terminated == '{' {
				return false
			}
		}
		if terminated != ';' {
			// skip parens and braces
			var trypos Pos
			found := false
			if col, ok := in.findLastParen(l, '(', ')'); ok {
				trypos, found = in.findMatchParen(Pos{s.pos.Lnum, col}, t.MaxParen)
			}
			if !found {
				if col, ok := in.findLastParen(l, '{', '}'); ok {
					trypos, found = in.findStartBrace(Pos{s.pos.Lnum, col})
				}
			}
			if found {
				s.pos = Pos{trypos.Lnum + 1, 0}
				return false
			}
		}
		s.addContinuation()
		return true

	case lookforUnterm:
		s.addContinuation()
		return true
	}

	if s.lf != lookforTerm && s.lf != lookforCppBaseclass && s.lf != lookforComma {
		s.amount = s.scopeAmount
		if s.first == '{' {
			s.amount += t.OpenExtra
			s.addedToAmount = t.OpenExtra
		}
	}

	if !s.lookforNamespace {
		return true
	}
	// a block in column 0 may belong to a namespace further up
	if s.pos.Lnum == s.ourscope {
		return false
	}
	if s.pos.Lnum <= 0 || s.pos.Lnum < s.ourscope-namespaceLookback {
		return true
	}
	if cpos, ok := in.findStartComment(s.pos); ok {
		s.pos = Pos{cpos.Lnum + 1, 0}
		return false
	}
	l := in.line(s.pos.Lnum)
	lnum := s.pos.Lnum
	if in.isPreprocCont(&l, &lnum, &s.amount) {
		s.pos.Lnum = lnum
		return false
	}
	if in.isCppNamespace(l) {
		s.amount += t.CppNamespace - s.addedToAmount
		return true
	}
	if in.isCppExternC(l) {
		s.amount += t.CppExternC - s.addedToAmount
		return true
	}
	return !in.noCode(l)
}

// labelLine handles a case label or scope declaration above the line.
func (s *braceScan) labelLine(iscase bool) bool {
	in := s.in
	t := &in.tune

	if s.lf == lookforCppBaseclass {
		return true
	}
	// not interested in labels while looking for a "do"
	if s.whilelevel > 0 {
		return false
	}
	if s.lf == lookforUnterm || s.lf == lookforEnumOrInit {
		s.addContinuation()
		return true
	}

	// line up with a case label of this switch
	if (iscase && s.lf == lookforCase) || (iscase && s.lookforBreak) || (!iscase && s.lf == lookforScopeDecl) {
		trypos, ok := in.findStartBrace(s.pos)
		if !ok || trypos.Lnum == s.ourscope {
			s.amount = in.indentOf(s.pos.Lnum)
			return true
		}
		return false
	}

	n := in.indentNoLabel(s.pos.Lnum)

	if s.lf == lookforTerm {
		if n != 0 {
			s.amount = n
		}
		if !s.lookforBreak {
			return true
		}
	}

	// code after the label: line up with it
	if n != 0 {
		s.amount = n
		if rest, ok := in.afterLabel(in.line(s.pos.Lnum)); ok && in.isCinword(rest) {
			if s.first == '{' {
				s.amount += t.OpenExtra
			} else {
				s.amount += t.Level + t.NoBrace
			}
		}
		return true
	}

	// Line up with a statement before the label if there is one,
	// otherwise relative to the label.
	code := t.ScopeDeclCode
	if iscase {
		code = t.CaseCode
	}
	s.scopeAmount = in.indentOf(s.pos.Lnum) + code
	if t.CaseBreak != 0 {
		s.lf = lookforNoBreak
	} else {
		s.lf = lookforAny
	}
	return false
}
