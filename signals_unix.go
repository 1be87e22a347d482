//go:build !windows

package main

import (
	"os"
	"os/signal"
	"syscall"
)

// notifyResize sends on ch when the terminal is resized. Signals that come
// while one is already waiting are dropped. The returned func stops it.
func notifyResize(ch chan<- struct{}) func() {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGWINCH)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-sig:
				select {
				case ch <- struct{}{}:
				default:
				}
			case <-done:
				return
			}
		}
	}()
	return func() {
		signal.Stop(sig)
		close(done)
	}
}
