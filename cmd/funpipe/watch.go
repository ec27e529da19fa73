package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDelay coalesces the burst of filesystem events an editor fires for
// a single save.
const debounceDelay = 100 * time.Millisecond

// watchAndCheck checks the file once, then again every time it changes,
// until interrupted.
func watchAndCheck(opts options, stdout, stderr io.Writer) int {
	target, err := filepath.Abs(opts.file)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return 2
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return 2
	}
	defer watcher.Close()

	// Watch the directory rather than the file itself: editors that save by
	// writing a temp file and renaming it over the target would otherwise
	// detach the watch on the first save.
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return 2
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	runOnce := func() {
		source, path, err := readInput(opts.file, nil)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %s\n", err)
			return
		}
		project, err := discoverProject(path)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %s\n", err)
			return
		}
		runCheck(source, path, project, opts, stdout, stderr)
	}

	runOnce()
	fmt.Fprintf(stderr, "Watching %s\n", opts.file)

	trigger := make(chan struct{}, 1)
	var debounce *time.Timer

	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return 0
			}
			if ev.Name != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(debounceDelay, func() {
				select {
				case trigger <- struct{}{}:
				default:
				}
			})

		case <-trigger:
			fmt.Fprintf(stderr, "\n-- %s --\n", time.Now().Format("15:04:05"))
			runOnce()

		case err, ok := <-watcher.Errors:
			if !ok {
				return 0
			}
			fmt.Fprintf(stderr, "Watch error: %s\n", err)

		case <-interrupt:
			return 0
		}
	}
}
