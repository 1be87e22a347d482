package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"strconv"

	"github.com/slzatz/vimcore/shada"
	"github.com/slzatz/vimcore/vim/cindent"
	"github.com/slzatz/vimcore/vim/govim"
)

const configPath = "config.json"

// Options are the editor options set on every file that is opened.
type Options struct {
	Tabstop       int    `json:"tabstop"`
	Shiftwidth    int    `json:"shiftwidth"`
	Expandtab     bool   `json:"expandtab"`
	Scrolloff     int    `json:"scrolloff"`
	Sidescrolloff int    `json:"sidescrolloff"`
	Scrolljump    int    `json:"scrolljump"`
	Sidescroll    int    `json:"sidescroll"`
	Wrap          bool   `json:"wrap"`
	Number        bool   `json:"number"`
	Cinoptions    string `json:"cinoptions"`
	Cinkeys       string `json:"cinkeys"`
	Comments      string `json:"comments"`
	Cindent       bool   `json:"cindent"`
	Autoindent    bool   `json:"autoindent"`
}

type ChromaConfig struct {
	Style string `json:"style"`
}

type LogConfig struct {
	File string `json:"file"`
}

// Config is the contents of config.json.
type Config struct {
	Options Options      `json:"options"`
	Store   shada.Config `json:"store"`
	Chroma  ChromaConfig `json:"chroma"`
	Log     LogConfig    `json:"log"`
}

func defaultConfig() *Config {
	return &Config{
		Options: Options{
			Tabstop:    8,
			Shiftwidth: 8,
			Scrolljump: 1,
			Wrap:       true,
			Cinkeys:    "0{,0},0),0],:,0#,!^F,o,O,e",
			Comments:   cindent.DefaultComments,
			Cindent:    true,
		},
		Store:  shada.Config{Driver: "sqlite", SQLite: "vimcore.db"},
		Chroma: ChromaConfig{Style: "gruvbox"},
		Log:    LogConfig{File: "vimcore_debug.log"},
	}
}

// FromFile returns the config in path on top of the defaults. A missing
// file gives the defaults.
func FromFile(path string) (*Config, error) {
	cfg := defaultConfig()
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func writeConfig(path string, cfg *Config) error {
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0o644)
}

func boolArg(name string, on bool) string {
	if on {
		return name
	}
	return "no" + name
}

// setArgs returns the ":set" arguments for o.
func (o Options) setArgs() []string {
	return []string{
		"ts=" + strconv.Itoa(o.Tabstop),
		"sw=" + strconv.Itoa(o.Shiftwidth),
		boolArg("et", o.Expandtab),
		"so=" + strconv.Itoa(o.Scrolloff),
		"siso=" + strconv.Itoa(o.Sidescrolloff),
		"sj=" + strconv.Itoa(o.Scrolljump),
		"ss=" + strconv.Itoa(o.Sidescroll),
		boolArg("wrap", o.Wrap),
		boolArg("nu", o.Number),
		"cino=" + o.Cinoptions,
		"cink=" + o.Cinkeys,
		"com=" + o.Comments,
		boolArg("cin", o.Cindent),
		boolArg("ai", o.Autoindent),
	}
}

// applyOptions sets o for the current buffer and window of e.
func applyOptions(e *govim.GoEngine, o Options) error {
	for _, arg := range o.setArgs() {
		if err := e.SetOption(arg); err != nil {
			return fmt.Errorf("config option %s: %w", arg, err)
		}
	}
	return nil
}

// newLogger opens the debug log. When the file cannot be opened the
// logger discards everything.
func newLogger(path string) (*log.Logger, func()) {
	if path == "" {
		return log.New(io.Discard, "", 0), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "vimcore: can't open log file: %v\n", err)
		return log.New(io.Discard, "", 0), func() {}
	}
	return log.New(f, "vimcore: ", log.Ltime|log.Lshortfile), func() { f.Close() }
}
