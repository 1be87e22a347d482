package main

// chroma is being used for syntax highlighting

import (
	"io"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"golang.org/x/term"
)

// lexerFor picks the lexer from the file name, C when nothing matches.
func lexerFor(filename string) chroma.Lexer {
	l := lexers.Match(filename)
	if l == nil {
		l = lexers.Get("c")
	}
	return chroma.Coalesce(l)
}

// Highlight writes source to w with terminal colors.
func Highlight(w io.Writer, source string, lexer chroma.Lexer, style string) error {
	f := formatters.Get("terminal256")
	s := styles.Get(style)
	it, err := lexer.Tokenise(nil, source)
	if err != nil {
		return err
	}
	return f.Format(w, s, it)
}

// highlightLine colors one screen row. A row is tokenised on its own, so
// a comment that started on an earlier row is not recognized.
func highlightLine(row string, lexer chroma.Lexer, style string) string {
	var sb strings.Builder
	if err := Highlight(&sb, row, lexer, style); err != nil {
		return row
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
