// Command blockfall runs the engine in an Ebiten window with a Dear ImGui
// inspector overlay. F1 toggles the overlay, P pauses and R restarts.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/debugui"
	debugui_ebiten "github.com/plus3/blockfall/debugui/ebiten"
	"github.com/plus3/blockfall/engine"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file. Falls back to $"+config.EnvPath+".")
	verbose := flag.Bool("v", false, "Log engine events at debug level.")
	showUI := flag.Bool("debug-ui", true, "Start with the inspector overlay visible.")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	path := config.Resolve(*configPath)
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		logger.Error("failed to load configuration", "path", path, "err", err)
		os.Exit(1)
	}
	if path != "" {
		logger.Info("configuration loaded", "path", path)
	}

	supplier, err := cfg.NewSupplier()
	if err != nil {
		logger.Error("failed to build supplier", "err", err)
		os.Exit(1)
	}

	e, err := engine.New(cfg.EngineConfig(), supplier)
	if err != nil {
		logger.Error("failed to start engine", "err", err)
		os.Exit(1)
	}
	e.SetLogger(logger)

	width, height := windowSize(e.Config())
	backend := debugui_ebiten.NewImguiBackend("Blockfall", width, height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	overlay := &debugui.Overlay{}
	debugui.Spawn(overlay, e)

	game := &Game{
		engine:  e,
		backend: backend,
		overlay: overlay,
		logger:  logger,
		showUI:  *showUI,
	}

	if err := ebiten.RunGame(game); err != nil {
		panic(err)
	}
}
