//go:build windows

package main

import (
	"os"
	"time"

	"github.com/slzatz/vimcore/rawmode"
)

// notifyResize sends on ch when the console is resized. Windows has no
// SIGWINCH, so the size is polled.
func notifyResize(ch chan<- struct{}) func() {
	done := make(chan struct{})
	go func() {
		fd := int(os.Stdout.Fd())
		ws, err := rawmode.GetWinsize(fd)
		if err != nil {
			return
		}
		prevRows, prevCols := ws.Row, ws.Col

		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				cur, err := rawmode.GetWinsize(fd)
				if err != nil {
					continue
				}
				if cur.Row != prevRows || cur.Col != prevCols {
					prevRows, prevCols = cur.Row, cur.Col
					select {
					case ch <- struct{}{}:
					default:
					}
				}
			case <-done:
				return
			}
		}
	}()
	return func() { close(done) }
}
