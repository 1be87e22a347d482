package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/slzatz/vimcore/vim/govim"
)

// runIndent re-indents each file like "gg=G". The result goes to out, or
// back to the file with -w.
func runIndent(cfg *Config, logger *log.Logger, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("indent", flag.ContinueOnError)
	write := fs.Bool("w", false, "write the result to the file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errors.New("indent: no files")
	}
	color := !*write && isTerminal(out)

	for _, name := range fs.Args() {
		lines, changed, err := indentFile(cfg, logger, name, *write)
		if err != nil {
			return fmt.Errorf("indent %s: %w", name, err)
		}
		logger.Printf("%s: %d lines re-indented", name, changed)
		if *write {
			continue
		}
		text := strings.Join(lines, "\n") + "\n"
		if color {
			err = Highlight(out, text, lexerFor(name), cfg.Chroma.Style)
		} else {
			_, err = io.WriteString(out, text)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func indentFile(cfg *Config, logger *log.Logger, name string, write bool) ([]string, int, error) {
	e := govim.NewEngine()
	e.SetLogger(logger)
	b, err := e.BufferOpen(name, 1)
	if err != nil {
		return nil, 0, err
	}
	if err := applyOptions(e, cfg.Options); err != nil {
		return nil, 0, err
	}
	changed, err := e.FixIndentRange(1, b.GetLineCount())
	if err != nil {
		return nil, 0, err
	}
	if write && changed > 0 {
		if err := b.Write(); err != nil {
			return nil, 0, err
		}
	}
	return b.Lines(), changed, nil
}
