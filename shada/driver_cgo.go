//go:build cgo && !windows

package shada

import (
	// cgo sqlite driver (only on non-Windows platforms with cgo)
	_ "github.com/mattn/go-sqlite3"
)

func cgoSQLiteAvailable() bool {
	return true
}
