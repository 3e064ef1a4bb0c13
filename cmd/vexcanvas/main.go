// Package main is the entry point for the vexcanvas terminal preview.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/vexcanvas/vexcanvas/internal/app"
	"github.com/vexcanvas/vexcanvas/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

type options struct {
	LogLevel  string
	MacroPath string
	Debug     bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	application, err := newApplication(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.stop()

	if err := application.runMacro(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: macro failed: %v\n", err)
		return 1
	}

	term, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := application.setBackend(term); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to set backend: %v\n", err)
		return 1
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		application.stop()
	}()

	if err := application.run(); err != nil {
		if errors.Is(err, app.ErrQuit) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.MacroPath, "macro", "", "Lua macro to run before the interactive loop")
	flag.StringVar(&opts.MacroPath, "m", "", "Lua macro to run (shorthand)")
	flag.BoolVar(&opts.Debug, "debug", false, "Enable debug logging")
	flag.BoolVar(&opts.Debug, "d", false, "Enable debug logging (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "vexcanvas - terminal preview for the vector canvas core\n\n")
		fmt.Fprintf(os.Stderr, "Usage: vexcanvas [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys: q/Esc quit, u undo, y redo, d delete, h/v flip, s toggle snap\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("vexcanvas %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		os.Exit(0)
	}

	return opts
}
