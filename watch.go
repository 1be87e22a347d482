package main

import (
	"log"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/tomb.v2"
)

// fileStamp is what tells that a file was changed by someone else.
type fileStamp struct {
	mtime time.Time
	size  int64
}

func stampOf(path string) fileStamp {
	fi, err := os.Stat(path)
	if err != nil {
		return fileStamp{}
	}
	return fileStamp{mtime: fi.ModTime(), size: fi.Size()}
}

// watchFile sends on changed when path is written, renamed or removed.
// The watcher runs until t dies.
func watchFile(t *tomb.Tomb, path string, changed chan<- struct{}, logger *log.Logger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.Add(path); err != nil {
		w.Close()
		return err
	}
	t.Go(func() error {
		defer w.Close()
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return nil
				}
				if ev.Op&(fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
					continue
				}
				select {
				case changed <- struct{}{}:
				default:
				}
			case err, ok := <-w.Errors:
				if !ok {
					return nil
				}
				logger.Printf("watch %s: %v", path, err)
			case <-t.Dying():
				return nil
			}
		}
	})
	return nil
}
