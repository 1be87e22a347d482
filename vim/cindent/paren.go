package cindent

// parenIndent indents a line inside an unclosed '(' at parenPos.
func (in *Indenter) parenIndent(cur Pos, theline string, parenPos Pos) int {
	t := &in.tune
	first := at(theline, 0)
	curAmount := maxCol
	amount := -1

	if first == ')' && t.ParenPrev != 0 {
		amount = in.indentOf(cur.Lnum - 1)
	} else {
		// use the indent of a previous line inside the same parens
		for lnum := cur.Lnum - 1; lnum > parenPos.Lnum; lnum-- {
			l := in.line(lnum)
			l = l[skipWhite(l, 0):]
			if in.noCode(l) {
				continue
			}
			if in.isPreprocCont(&l, &lnum, &amount) {
				continue
			}
			if cpos, ok := in.findStartComment(Pos{lnum, 0}); ok {
				lnum = cpos.Lnum + 1
				continue
			}
			trypos, ok := in.findMatchParen(Pos{lnum, 0}, in.corrMaxParen(cur, lnum))
			if ok && trypos == parenPos {
				amount = in.indentOf(lnum)
				if first == ')' {
					if parenPos.Lnum != lnum && curAmount > amount {
						curAmount = amount
					}
					amount = -1
				}
				break
			}
		}
	}
	if amount != -1 {
		return amount
	}

	ignoreParenCol := 0
	isIfForWhile := false
	if t.IfForWhile != 0 {
		// find the outermost '(' on the line and check whether it belongs
		// to an "if", "for" or "while"
		outermost := parenPos
		for {
			trypos, ok := in.findMatchParen(outermost, t.MaxParen)
			if !ok || trypos.Lnum != outermost.Lnum {
				break
			}
			outermost = trypos
		}
		col := outermost.Col
		isIfForWhile = isIfForWhileBeforeOffset(in.line(outermost.Lnum), &col)
	}

	amount, look := in.skipLabel(parenPos.Lnum)
	look = look[skipWhite(look, 0):]
	if at(look, 0) == '(' {
		// ignore a '(' in front of the line that is closed before ours
		line := in.line(parenPos.Lnum)
		lookCol := len(line) - len(look)
		if lookCol >= 0 && lookCol < len(line) {
			trypos, ok := in.findMatchLimit(Pos{parenPos.Lnum, lookCol + 1}, ')', 0, t.MaxParen)
			if ok && trypos.Lnum == parenPos.Lnum && trypos.Col < parenPos.Col {
				ignoreParenCol = trypos.Col + 1
			}
		}
	}

	lineUp := (t.Unclosed == 0 && !isIfForWhile) ||
		(t.UnclosedNoIgnore == 0 && at(look, 0) == '(' && ignoreParenCol == 0)

	ourParen := parenPos
	if first == ')' || lineUp {
		// A close paren lines up with its match, anything else with the
		// first non-white character after the '('.
		if first != ')' {
			curAmount = maxCol
			l := in.line(ourParen.Lnum)
			if t.UnclosedWrapped != 0 && in.endsIn(l, "(", "") {
				// one level for each additional unclosed paren
				n := 1
				for col := 0; col < ourParen.Col; col++ {
					switch l[col] {
					case '(', '{':
						n++
					case ')', '}':
						if n > 1 {
							n--
						}
					}
				}
				ourParen.Col = 0
				amount += n * t.UnclosedWrapped
			} else if t.UnclosedWhiteOK != 0 {
				ourParen.Col++
			} else {
				col := skipWhite(l, ourParen.Col+1)
				if col < len(l) {
					ourParen.Col = col
				} else {
					ourParen.Col++
				}
			}
		}
		if ourParen.Col > 0 {
			if col := in.vcol(ourParen); curAmount > col {
				curAmount = col
			}
		}
	}

	switch {
	case first == ')' && t.MatchingParen != 0:
		// line up with the start of the line holding the '('
	case lineUp:
		if curAmount != maxCol {
			amount = curAmount
		}
	default:
		// Add Unclosed2 for each '(' before ours, skipping a closed
		// "(void)" at the start of the line.
		l := in.line(ourParen.Lnum)
		col := ourParen.Col
		for ourParen.Col > ignoreParenCol {
			ourParen.Col--
			switch at(l, ourParen.Col) {
			case '(':
				amount += t.Unclosed2
				col = ourParen.Col
			case ')':
				amount -= t.Unclosed2
				col = maxCol
			}
		}

		// Unclosed is used once, when the first '(' is not inside braces
		switch {
		case col == maxCol:
			amount += t.Unclosed
		default:
			if _, ok := in.findMatchParenAfterBrace(Pos{ourParen.Lnum, col}, t.MaxParen); ok {
				amount += t.Unclosed2
			} else if isIfForWhile {
				amount += t.IfForWhile
			} else {
				amount += t.Unclosed
			}
		}
		// a line starting with ')' gets no more indent than the lines
		// before it
		if curAmount < amount {
			amount = curAmount
		}
	}
	return amount
}
