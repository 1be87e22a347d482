package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/slzatz/vimcore/shada"
)

// globalFlags are handled before the command and removed from its args.
var globalFlags = map[string]bool{
	"--go-sqlite":  true,
	"--cgo-sqlite": true,
	"--init":       true,
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "vimcore: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if CheckForHelp(args, os.Stdout) {
		return nil
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := FromFile(configPath)
	if err != nil {
		return err
	}
	cfg.Store.SQLiteDriver = shada.DetermineSQLiteDriver(args)
	logger, closeLog := newLogger(cfg.Log.File)
	defer closeLog()
	logger.Printf("sqlite driver: %s", cfg.Store.SQLiteDriver)

	if CheckForInit(args) {
		return runInit(ctx, configPath, os.Stdout, logger)
	}

	var rest []string
	for _, a := range args {
		if !globalFlags[a] {
			rest = append(rest, a)
		}
	}
	if len(rest) == 0 {
		ShowHelp(os.Stderr)
		return fmt.Errorf("no command")
	}

	switch cmd := rest[0]; cmd {
	case "indent":
		return runIndent(cfg, logger, rest[1:], os.Stdout)
	case "view":
		return runView(ctx, cfg, logger, rest[1:])
	case "marks", "jumps", "changes":
		return runHistory(ctx, cfg, logger, cmd, rest[1:], os.Stdout)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}
