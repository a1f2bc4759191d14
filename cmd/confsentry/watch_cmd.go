package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/term"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/confsentry/confsentry/cli/tui"
	"github.com/confsentry/confsentry/core"
)

// isTerminal reports whether stdout is connected to a terminal. The plain
// watch loop only clears the screen between re-scans when this is true;
// piping watch's output to a file or another process would otherwise fill
// it with escape codes.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func runWatch(args []string) int {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	var (
		debounce  time.Duration
		dashboard bool
	)
	fs.DurationVar(&debounce, "debounce", 500*time.Millisecond, "debounce interval for file changes")
	fs.BoolVar(&dashboard, "dashboard", false, "render the terminal dashboard instead of a plain summary")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	target := "."
	if fs.NArg() > 0 {
		target = fs.Arg(0)
	}

	if dashboard {
		return runWatchDashboard(target, debounce)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: creating watcher: %v\n", err)
		return 2
	}
	defer watcher.Close()

	if err := addDirsRecursive(watcher, target); err != nil {
		fmt.Fprintf(os.Stderr, "error: watching directories: %v\n", err)
		return 2
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	fmt.Printf("watch: validating %s (debounce: %s)\n", target, debounce)
	printScanSummary(target)

	var mu sync.Mutex
	var timer *time.Timer

	resetTimer := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(debounce, func() {
			if isTerminal() {
				fmt.Print("\033[2J\033[H")
			}
			fmt.Printf("watch: re-validating %s\n", target)
			printScanSummary(target)
		})
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return 0
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) {
				if event.Has(fsnotify.Create) {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
						_ = addDirsRecursive(watcher, event.Name)
					}
				}
				resetTimer()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return 0
			}
			fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
		case <-sigCh:
			fmt.Println("\nwatch: stopped")
			return 0
		}
	}
}

func printScanSummary(target string) {
	result, err := core.RunScan(target)
	if err != nil {
		logger.Error("scan failed", "target", target, "error", err)
		fmt.Fprintf(os.Stderr, "error: scan failed: %v\n", err)
		return
	}

	failures := 0
	for _, fr := range result.Files {
		failures += fr.FailureCount()
	}
	fmt.Printf("[results] %d file(s), %d failing result(s)\n", len(result.Files), failures)
}

// runWatchDashboard drives the Bubble Tea dashboard from a background
// fsnotify watcher: every debounced change re-scans target and pushes the
// fresh results into the running program via tea.Program.Send.
func runWatchDashboard(target string, debounce time.Duration) int {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: creating watcher: %v\n", err)
		return 2
	}
	defer watcher.Close()

	if err := addDirsRecursive(watcher, target); err != nil {
		fmt.Fprintf(os.Stderr, "error: watching directories: %v\n", err)
		return 2
	}

	result, err := core.RunScan(target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: scan failed: %v\n", err)
		return 2
	}

	model := tui.New(result.Files)
	program := tea.NewProgram(model)

	var mu sync.Mutex
	var timer *time.Timer

	resetTimer := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(debounce, func() {
			fresh, err := core.RunScan(target)
			if err != nil {
				logger.Error("rescan failed", "target", target, "error", err)
				return
			}
			program.Send(tui.RescanMsg{Files: fresh.Files})
		})
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) {
					if event.Has(fsnotify.Create) {
						if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
							_ = addDirsRecursive(watcher, event.Name)
						}
					}
					resetTimer()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Error("watch error", "error", err)
			}
		}
	}()

	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: dashboard failed: %v\n", err)
		return 2
	}
	return 0
}

func addDirsRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		base := filepath.Base(path)
		if base == ".git" || base == "vendor" || base == ".confsentry" {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
