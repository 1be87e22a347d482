//go:build !cgo || windows

package shada

func cgoSQLiteAvailable() bool {
	return false
}
