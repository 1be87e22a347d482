package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
)

// CheckForInit checks if --init flag is present and runs initialization if so.
// Returns true if --init was handled (caller should exit).
func CheckForInit(args []string) bool {
	for _, arg := range args {
		if arg == "--init" {
			return true
		}
	}
	return false
}

// runInit writes the default config and creates the history tables. An
// existing config.json is left alone.
func runInit(ctx context.Context, path string, out io.Writer, logger *log.Logger) error {
	fmt.Fprintln(out, "vimcore first-time setup")

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists; remove or rename it to reinitialize", path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	cfg := defaultConfig()
	if err := writeConfig(path, cfg); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintf(out, "Created %s\n", path)

	s, err := openStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("create history database: %w", err)
	}
	defer s.Close()
	fmt.Fprintf(out, "Created history database %s\n", cfg.Store.SQLite)
	return nil
}
