package main

import (
	"fmt"
	"io"
	"runtime"

	"github.com/charmbracelet/glamour"
)

const version = "0.1.0"

const helpText = `# vimcore %s

The editing core of vim: C indenting, the viewport, marks, the jumplist
and the changelist.

## Usage

    vimcore [OPTIONS] COMMAND [ARGS]

## Commands

- **indent [-w] FILE...** re-indents C-like files like ` + "`gg=G`" + `. The
  result goes to stdout, highlighted on a terminal. With ` + "`-w`" + ` the
  files are written in place.
- **view FILE** shows the file in a pager driven by vim normal mode keys:
  ` + "`j k G gg CTRL-D CTRL-U CTRL-F CTRL-B zt zz zb m{a-z} '{a-z} CTRL-O CTRL-I`" + `,
  ` + "`o`" + ` to open an indented line and ` + "`:`" + ` for ex commands such as
  ` + "`:marks`" + `, ` + "`:jumps`" + `, ` + "`:changes`" + ` and ` + "`:delmarks`" + `. Marks, jumps and
  changes are saved in the history database on exit.
- **marks [FILE]**, **jumps [FILE]**, **changes FILE** print the saved
  history.

## Options

- ` + "`--help`, `-h`" + ` show this help.
- ` + "`--init`" + ` write a default config.json and create the history tables.
- ` + "`--go-sqlite`" + ` use the pure Go sqlite driver (the default).
- ` + "`--cgo-sqlite`" + ` use mattn/go-sqlite3, in cgo builds only.

## Configuration

config.json in the working directory holds the editor ` + "`options`" + `
(tabstop, shiftwidth, cinoptions, scrolloff, ...), the history ` + "`store`" + `
(sqlite file or postgres connection), the ` + "`chroma`" + ` style and the debug
` + "`log`" + ` file.

## Build

    Platform: %s/%s, %s
    Pure Go:   CGO_ENABLED=0 go build
    With cgo:  CGO_ENABLED=1 go build
`

// ShowHelp writes the help, rendered as markdown on a terminal.
func ShowHelp(w io.Writer) {
	text := fmt.Sprintf(helpText, version, runtime.GOOS, runtime.GOARCH, runtime.Version())
	if isTerminal(w) {
		r, err := glamour.NewTermRenderer(
			glamour.WithStylePath("dark"),
			glamour.WithWordWrap(80),
		)
		if err == nil {
			if out, err := r.Render(text); err == nil {
				io.WriteString(w, out)
				return
			}
		}
	}
	io.WriteString(w, text)
}

// CheckForHelp checks if --help or -h flag is present in arguments
// Returns true if help was requested
func CheckForHelp(args []string, w io.Writer) bool {
	for _, arg := range args {
		if arg == "--help" || arg == "-h" {
			ShowHelp(w)
			return true
		}
	}
	return false
}
