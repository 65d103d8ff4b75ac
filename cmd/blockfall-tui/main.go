// Command blockfall-tui plays the engine in a terminal.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/engine"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file. Falls back to $"+config.EnvPath+".")
	logPath := flag.String("log", "", "Write engine debug logs to this file.")
	flag.Parse()

	logger := slog.New(slog.DiscardHandler)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	cfg, err := config.LoadOrDefault(config.Resolve(*configPath))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	supplier, err := cfg.NewSupplier()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	e, err := engine.New(cfg.EngineConfig(), supplier)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	e.SetLogger(logger)

	p := tea.NewProgram(initialModel(e), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("program exited", "err", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
