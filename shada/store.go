// Package shada keeps file marks, the jumplist and the per-file marks and
// changelists between editing sessions in a SQL database.
package shada

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/retry.v1"

	"github.com/slzatz/vimcore/vim/govim"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS session (
	uuid TEXT NOT NULL,
	saved TEXT NOT NULL,
	PRIMARY KEY (uuid)
);`,
	`CREATE TABLE IF NOT EXISTS file_mark (
	name TEXT NOT NULL,
	file TEXT NOT NULL,
	lnum INTEGER NOT NULL,
	col INTEGER NOT NULL,
	session TEXT NOT NULL,
	PRIMARY KEY (name)
);`,
	`CREATE TABLE IF NOT EXISTS jump (
	seq INTEGER NOT NULL,
	file TEXT NOT NULL,
	lnum INTEGER NOT NULL,
	col INTEGER NOT NULL,
	PRIMARY KEY (seq)
);`,
	`CREATE TABLE IF NOT EXISTS local_mark (
	file TEXT NOT NULL,
	name TEXT NOT NULL,
	lnum INTEGER NOT NULL,
	col INTEGER NOT NULL,
	PRIMARY KEY (file, name)
);`,
	`CREATE TABLE IF NOT EXISTS change_pos (
	file TEXT NOT NULL,
	seq INTEGER NOT NULL,
	lnum INTEGER NOT NULL,
	col INTEGER NOT NULL,
	PRIMARY KEY (file, seq)
);`,
}

// timeLayout sorts as text.
const timeLayout = "2006-01-02 15:04:05.000000"

// Mark is a saved mark or jump.
type Mark struct {
	Name byte // 0 for a jump
	File string
	Pos  govim.Pos
}

// Store is an open history database. Each Store saves under its own
// session id.
type Store struct {
	db      *sql.DB
	session uuid.UUID
	logger  *log.Logger
}

// Open connects to the database named by cfg.
func Open(cfg Config) (*Store, error) {
	db, err := cfg.open()
	if err != nil {
		return nil, err
	}
	if cfg.Driver != "postgres" && strings.Contains(cfg.SQLite, ":memory:") {
		// every connection would get its own empty database
		db.SetMaxOpenConns(1)
	}
	if err := ping(db, cfg.Driver == "postgres"); err != nil {
		db.Close()
		return nil, fmt.Errorf("history database: %w", err)
	}
	return &Store{
		db:      db,
		session: uuid.New(),
		logger:  log.New(io.Discard, "", 0),
	}, nil
}

// pingStrategy is how long Open waits for a postgres server that is
// still starting.
var pingStrategy retry.Strategy = retry.LimitCount(5, retry.Exponential{
	Initial: 100 * time.Millisecond,
	Factor:  2,
})

func ping(db *sql.DB, wait bool) error {
	if !wait {
		return db.Ping()
	}
	var err error
	for a := retry.Start(pingStrategy, nil); a.Next(); {
		if err = db.Ping(); err == nil {
			return nil
		}
	}
	return err
}

// SetLogger sets the logger for store activity.
func (s *Store) SetLogger(logger *log.Logger) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	s.logger = logger
}

// Session returns the id this store saves under.
func (s *Store) Session() uuid.UUID { return s.session }

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// Init creates the tables that do not exist yet.
func (s *Store) Init(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create history schema: %w", err)
		}
	}
	return nil
}

// Save writes the file marks and the jumplist of e, and the local marks
// and changelist of every named buffer. File marks not set in e keep
// their saved value.
func (s *Store) Save(ctx context.Context, e *govim.GoEngine) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	defer tx.Rollback()

	id := s.session.String()
	saved := time.Now().UTC().Format(timeLayout)
	if _, err := tx.ExecContext(ctx, "INSERT INTO session (uuid, saved) VALUES ($1, $2) "+
		"ON CONFLICT (uuid) DO UPDATE SET saved=excluded.saved;", id, saved); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	fms := e.FileMarks()
	names := make([]byte, 0, len(fms))
	for c := range fms {
		names = append(names, c)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	for _, c := range names {
		fm := fms[c]
		if fm.FileName == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, "INSERT INTO file_mark (name, file, lnum, col, session) "+
			"VALUES ($1, $2, $3, $4, $5) ON CONFLICT (name) DO UPDATE SET "+
			"file=excluded.file, lnum=excluded.lnum, col=excluded.col, session=excluded.session;",
			string(c), fm.FileName, fm.Pos.Lnum, fm.Pos.Col, id); err != nil {
			return fmt.Errorf("save mark %c: %w", c, err)
		}
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM jump;"); err != nil {
		return fmt.Errorf("save jumplist: %w", err)
	}
	jumps := e.JumplistFiles()
	for i, j := range jumps {
		if _, err := tx.ExecContext(ctx, "INSERT INTO jump (seq, file, lnum, col) VALUES ($1, $2, $3, $4);",
			i, j.FileName, j.Pos.Lnum, j.Pos.Col); err != nil {
			return fmt.Errorf("save jumplist: %w", err)
		}
	}

	for _, b := range e.Buffers() {
		if b.GetName() == "" {
			continue
		}
		if err := saveBuffer(ctx, tx, b); err != nil {
			return fmt.Errorf("save %s: %w", b.GetName(), err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	s.logger.Printf("saved %d file marks and %d jumps in session %s", len(fms), len(jumps), id)
	return nil
}

func saveBuffer(ctx context.Context, tx *sql.Tx, b *govim.GoBuffer) error {
	name := b.GetName()
	if _, err := tx.ExecContext(ctx, "DELETE FROM local_mark WHERE file=$1;", name); err != nil {
		return err
	}
	for c, p := range b.LocalMarks() {
		if _, err := tx.ExecContext(ctx, "INSERT INTO local_mark (file, name, lnum, col) VALUES ($1, $2, $3, $4);",
			name, string(c), p.Lnum, p.Col); err != nil {
			return err
		}
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM change_pos WHERE file=$1;", name); err != nil {
		return err
	}
	for i, p := range b.BufferChangelist() {
		if _, err := tx.ExecContext(ctx, "INSERT INTO change_pos (file, seq, lnum, col) VALUES ($1, $2, $3, $4);",
			name, i, p.Lnum, p.Col); err != nil {
			return err
		}
	}
	return nil
}

// Restore gives e the saved file marks and jumplist. The files they name
// are not read until a mark is used.
func (s *Store) Restore(ctx context.Context, e *govim.GoEngine) error {
	marks, err := s.FileMarks(ctx)
	if err != nil {
		return err
	}
	for _, m := range marks {
		if err := e.SetFileMark(m.Name, m.Pos, m.File); err != nil {
			s.logger.Printf("skip saved mark %q: %v", m.Name, err)
		}
	}
	jumps, err := s.Jumps(ctx)
	if err != nil {
		return err
	}
	fms := make([]govim.FileMark, len(jumps))
	for i, j := range jumps {
		fms[i] = govim.FileMark{Pos: j.Pos, FileName: j.File}
	}
	e.RestoreJumplist(fms)
	s.logger.Printf("restored %d file marks and %d jumps", len(marks), len(jumps))
	return nil
}

// RestoreBuffer gives b its saved local marks and changelist.
func (s *Store) RestoreBuffer(ctx context.Context, e *govim.GoEngine, b *govim.GoBuffer) error {
	name := b.GetName()
	if name == "" {
		return nil
	}
	local, err := s.LocalMarks(ctx, name)
	if err != nil {
		return err
	}
	marks := make(map[byte]govim.Pos, len(local))
	for _, m := range local {
		marks[m.Name] = m.Pos
	}
	changes, err := s.Changes(ctx, name)
	if err != nil {
		return err
	}
	return e.RestoreBuffer(b, marks, changes)
}

// FileMarks returns the saved file marks ordered by name.
func (s *Store) FileMarks(ctx context.Context) ([]Mark, error) {
	return s.queryMarks(ctx, "SELECT name, file, lnum, col FROM file_mark ORDER BY name;")
}

// Jumps returns the saved jumplist, oldest first.
func (s *Store) Jumps(ctx context.Context) ([]Mark, error) {
	return s.queryMarks(ctx, "SELECT '', file, lnum, col FROM jump ORDER BY seq;")
}

// LocalMarks returns the saved marks of file ordered by name.
func (s *Store) LocalMarks(ctx context.Context, file string) ([]Mark, error) {
	return s.queryMarks(ctx, "SELECT name, file, lnum, col FROM local_mark WHERE file=$1 ORDER BY name;", file)
}

func (s *Store) queryMarks(ctx context.Context, query string, args ...any) ([]Mark, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	defer rows.Close()

	var marks []Mark
	for rows.Next() {
		var m Mark
		var name string
		if err := rows.Scan(&name, &m.File, &m.Pos.Lnum, &m.Pos.Col); err != nil {
			return nil, fmt.Errorf("read history: %w", err)
		}
		if name != "" {
			m.Name = name[0]
		}
		marks = append(marks, m)
	}
	return marks, rows.Err()
}

// Changes returns the saved changelist of file, oldest first.
func (s *Store) Changes(ctx context.Context, file string) ([]govim.Pos, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT lnum, col FROM change_pos WHERE file=$1 ORDER BY seq;", file)
	if err != nil {
		return nil, fmt.Errorf("read changelist: %w", err)
	}
	defer rows.Close()

	var changes []govim.Pos
	for rows.Next() {
		var p govim.Pos
		if err := rows.Scan(&p.Lnum, &p.Col); err != nil {
			return nil, fmt.Errorf("read changelist: %w", err)
		}
		changes = append(changes, p)
	}
	return changes, rows.Err()
}

// LastSession returns the id and time of the most recent save.
func (s *Store) LastSession(ctx context.Context) (uuid.UUID, time.Time, error) {
	var id, saved string
	err := s.db.QueryRowContext(ctx, "SELECT uuid, saved FROM session ORDER BY saved DESC LIMIT 1;").Scan(&id, &saved)
	if errors.Is(err, sql.ErrNoRows) {
		return uuid.Nil, time.Time{}, ErrNoSession
	}
	if err != nil {
		return uuid.Nil, time.Time{}, fmt.Errorf("read session: %w", err)
	}
	u, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, time.Time{}, fmt.Errorf("read session: %w", err)
	}
	t, err := time.Parse(timeLayout, saved)
	if err != nil {
		return uuid.Nil, time.Time{}, fmt.Errorf("read session: %w", err)
	}
	return u, t, nil
}
