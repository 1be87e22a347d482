package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/slzatz/vimcore/rawmode"
	"github.com/slzatz/vimcore/shada"
	"github.com/slzatz/vimcore/vim/govim"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))

// openStore opens the history database and makes sure its tables exist.
func openStore(ctx context.Context, cfg *Config, logger *log.Logger) (*shada.Store, error) {
	s, err := shada.Open(cfg.Store)
	if err != nil {
		return nil, err
	}
	s.SetLogger(logger)
	if err := s.Init(ctx); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// runHistory prints the saved marks, jumps or changes the way ":marks",
// ":jumps" and ":changes" do. With a file argument the local marks and
// the changelist of that file are shown.
func runHistory(ctx context.Context, cfg *Config, logger *log.Logger, what string, args []string, out io.Writer) error {
	s, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer s.Close()

	e := govim.NewEngine()
	e.SetLogger(logger)
	width := 80
	if ws, err := rawmode.GetWinsize(1); err == nil && ws.Col > 0 {
		width = int(ws.Col)
	}
	e.WindowGetCurrent().SetSize(24, width)
	if err := s.Restore(ctx, e); err != nil {
		return err
	}
	if len(args) > 0 {
		b, err := e.BufferOpen(args[0], 1)
		if err != nil {
			return err
		}
		if err := s.RestoreBuffer(ctx, e, b); err != nil {
			return err
		}
	} else if what == "changes" {
		return fmt.Errorf("changes: a file name is needed")
	}

	var sb strings.Builder
	switch what {
	case "marks":
		err = e.WriteMarks(&sb, "")
	case "jumps":
		e.WriteJumps(&sb)
	case "changes":
		e.WriteChanges(&sb)
	}
	if err != nil {
		return err
	}

	header, body, _ := strings.Cut(sb.String(), "\n")
	if isTerminal(out) {
		header = headerStyle.Render(header)
	}
	fmt.Fprintln(out, header)
	io.WriteString(out, body)

	if id, saved, err := s.LastSession(ctx); err == nil {
		fmt.Fprintf(out, "last saved %s by session %s\n", saved.Local().Format(time.DateTime), id)
	}
	return nil
}
