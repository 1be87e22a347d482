package shada

import (
	"database/sql"
	"fmt"
	"runtime"

	// postgres driver (available on all platforms)
	_ "github.com/lib/pq"
	// pure Go sqlite driver (available on all platforms)
	_ "modernc.org/sqlite"
)

// SQLiteDriver selects the sqlite implementation.
type SQLiteDriver int

const (
	SQLiteDriverModernC SQLiteDriver = iota // Pure Go implementation (modernc.org/sqlite)
	SQLiteDriverMattn                       // CGO implementation (mattn/go-sqlite3)
)

// DriverName returns the name to pass to sql.Open.
func (d SQLiteDriver) DriverName() string {
	if d == SQLiteDriverMattn {
		return "sqlite3"
	}
	return "sqlite"
}

// String returns a human-readable name for the driver.
func (d SQLiteDriver) String() string {
	if d == SQLiteDriverMattn {
		return "mattn/go-sqlite3 (CGO)"
	}
	return "modernc.org/sqlite (Pure Go)"
}

// IsCGOSQLiteAvailable reports whether the binary carries the cgo sqlite
// driver.
func IsCGOSQLiteAvailable() bool {
	if runtime.GOOS == "windows" {
		return false
	}
	return cgoSQLiteAvailable()
}

// DetermineSQLiteDriver picks the sqlite driver from the command line:
// --go-sqlite forces the pure Go driver and --cgo-sqlite the cgo one when
// it was built in. The pure Go driver is the default.
func DetermineSQLiteDriver(args []string) SQLiteDriver {
	if runtime.GOOS == "windows" {
		return SQLiteDriverModernC
	}
	for _, arg := range args {
		if arg == "--go-sqlite" {
			return SQLiteDriverModernC
		}
		if arg == "--cgo-sqlite" && IsCGOSQLiteAvailable() {
			return SQLiteDriverMattn
		}
	}
	return SQLiteDriverModernC
}

// Postgres holds the connection settings of a postgres store.
type Postgres struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DB       string `json:"db"`
}

func (p Postgres) dsn() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		p.Host, p.Port, p.User, p.Password, p.DB)
}

// Config says where the history lives.
type Config struct {
	Driver   string   `json:"driver"` // "sqlite" or "postgres"
	SQLite   string   `json:"sqlite"` // database file
	Postgres Postgres `json:"postgres"`

	SQLiteDriver SQLiteDriver `json:"-"`
}

func (cfg Config) open() (*sql.DB, error) {
	switch cfg.Driver {
	case "postgres":
		return sql.Open("postgres", cfg.Postgres.dsn())
	case "", "sqlite":
		if cfg.SQLite == "" {
			return nil, ErrNoDatabase
		}
		return sql.Open(cfg.SQLiteDriver.DriverName(), cfg.SQLite)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
}
