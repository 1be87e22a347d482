package cindent

import "strings"

// Default values for the buffer options the indent engine reads.
const (
	DefaultComments      = "s1:/*,mb:*,ex:*/,://,b:#,:%,:XCOMM,n:>,fb:-"
	DefaultCinwords      = "if,else,while,do,for,switch"
	DefaultCinscopedecls = "public,protected,private"
)

// Options are the buffer options that influence C indenting.
type Options struct {
	Tabstop       int
	Shiftwidth    int    // 0 means use Tabstop
	Cinoptions    string // the 'cinoptions' string
	Comments      string // the 'comments' string
	Cinwords      string
	Cinscopedecls string
	HashAtLeft    bool // cinkeys contains "0#": put preprocessor lines in column 0
}

// DefaultOptions returns the options of a fresh buffer.
func DefaultOptions() Options {
	return Options{
		Tabstop:       8,
		Shiftwidth:    8,
		Comments:      DefaultComments,
		Cinwords:      DefaultCinwords,
		Cinscopedecls: DefaultCinscopedecls,
		HashAtLeft:    true,
	}
}

// sw returns the effective shiftwidth.
func (o *Options) sw() int {
	if o.Shiftwidth > 0 {
		return o.Shiftwidth
	}
	if o.Tabstop > 0 {
		return o.Tabstop
	}
	return 8
}

// Tuning holds the parsed 'cinoptions' values. All amounts are in screen
// columns. The zero value is not useful; use ParseCino.
type Tuning struct {
	Level             int // >N  block indent
	OpenImag          int // eN  brace at end of line
	NoBrace           int // nN  statement not inside a brace block
	FirstOpen         int // fN  first brace of a function
	OpenExtra         int // {N  opening brace
	CloseExtra        int // }N  closing brace
	OpenLeftImag      int // ^N  brace in column 0
	JumpLabel         int // LN  jump labels; negative puts them in column 0
	Case              int // :N  case label
	CaseCode          int // =N  code after a case label
	CaseBreak         int // bN  align "break" with the case label
	ScopeDecl         int // gN  C++ scope declarations
	ScopeDeclCode     int // hN  code after a scope declaration
	Param             int // pN  K&R parameters
	FuncType          int // tN  function return type
	CppBaseclass      int // iN  base class / constructor initializer
	Continuation      int // +N  continuation line
	Unclosed          int // (N  unclosed parenthesis
	Unclosed2         int // uN  unclosed parenthesis one level deeper
	UnclosedNoIgnore  int // UN
	UnclosedWrapped   int // WN
	UnclosedWhiteOK   int // wN
	MatchingParen     int // mN
	ParenPrev         int // MN
	Comment           int // /N  extra indent for comment lines
	InComment         int // cN  text inside a comment
	InComment2        int // CN
	MaxParen          int // )N  lines to search for unclosed parens
	MaxComment        int // *N  lines to search for unclosed comments
	Java              int // jN
	JS                int // JN
	KeepCaseLabel     int // lN
	HashComment       int // #N
	CppNamespace      int // NN
	IfForWhile        int // kN
	CppExternC        int // EN
	Pragma            int // PN
}

// ParseCino parses a 'cinoptions' value. Unknown letters are ignored and
// malformed numbers read as zero, matching the forgiving option parser.
func ParseCino(cino string, sw int) Tuning {
	t := Tuning{
		Level:         sw,
		JumpLabel:     -1,
		Case:          sw,
		CaseCode:      sw,
		ScopeDecl:     sw,
		ScopeDeclCode: sw,
		Param:         sw,
		FuncType:      sw,
		CppBaseclass:  sw,
		Continuation:  sw,
		Unclosed2:     sw,
		InComment:     3,
		MaxParen:      20,
		MaxComment:    70,
	}

	p := 0
	for p < len(cino) {
		letter := cino[p]
		p++
		neg := false
		if at(cino, p) == '-' {
			neg = true
			p++
		}
		digits := p
		n := 0
		for isDigit(at(cino, p)) {
			n = n*10 + int(cino[p]-'0')
			p++
		}
		divider, fraction := 0, 0
		if at(cino, p) == '.' {
			p++
			for isDigit(at(cino, p)) {
				fraction = fraction*10 + int(cino[p]-'0')
				p++
				if divider != 0 {
					divider *= 10
				} else {
					divider = 10
				}
			}
		}
		if at(cino, p) == 's' {
			if p == digits {
				n = sw
			} else {
				n *= sw
				if divider != 0 {
					n += (sw*fraction + divider/2) / divider
				}
			}
			p++
		}
		if neg {
			n = -n
		}

		switch letter {
		case '>':
			t.Level = n
		case 'e':
			t.OpenImag = n
		case 'n':
			t.NoBrace = n
		case 'f':
			t.FirstOpen = n
		case '{':
			t.OpenExtra = n
		case '}':
			t.CloseExtra = n
		case '^':
			t.OpenLeftImag = n
		case 'L':
			t.JumpLabel = n
		case ':':
			t.Case = n
		case '=':
			t.CaseCode = n
		case 'b':
			t.CaseBreak = n
		case 'p':
			t.Param = n
		case 't':
			t.FuncType = n
		case '/':
			t.Comment = n
		case 'c':
			t.InComment = n
		case 'C':
			t.InComment2 = n
		case 'i':
			t.CppBaseclass = n
		case '+':
			t.Continuation = n
		case '(':
			t.Unclosed = n
		case 'u':
			t.Unclosed2 = n
		case 'U':
			t.UnclosedNoIgnore = n
		case 'W':
			t.UnclosedWrapped = n
		case 'w':
			t.UnclosedWhiteOK = n
		case 'm':
			t.MatchingParen = n
		case 'M':
			t.ParenPrev = n
		case ')':
			t.MaxParen = n
		case '*':
			t.MaxComment = n
		case 'g':
			t.ScopeDecl = n
		case 'h':
			t.ScopeDeclCode = n
		case 'j':
			t.Java = n
		case 'J':
			t.JS = n
		case 'l':
			t.KeepCaseLabel = n
		case '#':
			t.HashComment = n
		case 'N':
			t.CppNamespace = n
		case 'k':
			t.IfForWhile = n
		case 'E':
			t.CppExternC = n
		case 'P':
			t.Pragma = n
		}
		if at(cino, p) == ',' {
			p++
		}
	}
	return t
}

// splitList splits a comma separated option value, dropping empty parts.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
