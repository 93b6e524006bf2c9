package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"mercury-maze/config"
	"mercury-maze/game"
	"mercury-maze/game/manager"
	"mercury-maze/host"
	"mercury-maze/sensor"
	"mercury-maze/ui"
	"mercury-maze/ui/terminal"
	"mercury-maze/ui/window"
)

type display interface {
	host.Display
	sensor.KeySource
	Close()
}

func main() {
	surfaceName := flag.String("surface", "", "Drawing surface: window or terminal (overrides MAZE_SURFACE)")
	sensorName := flag.String("sensor", "", "Tilt source: keyboard, websocket or script (overrides MAZE_SENSOR)")
	ticks := flag.Int("ticks", 0, "Stop after this many frames (0 = run until closed)")
	flag.Parse()

	appLogger := log.New(os.Stdout, "[MAZE] ", log.LstdFlags)

	cfg, err := config.Load(appLogger)
	if err != nil {
		appLogger.Fatalf("[FATAL] %v", err)
	}
	if *surfaceName != "" {
		cfg.Surface = *surfaceName
	}
	if *sensorName != "" {
		cfg.Sensor = *sensorName
	}
	if err := cfg.Validate(); err != nil {
		appLogger.Fatalf("[FATAL] %v", err)
	}

	// The terminal surface owns stdout while it runs.
	if cfg.Surface == config.SurfaceTerminal {
		logFile, err := openLogFile(cfg.DataDir)
		if err != nil {
			appLogger.Fatalf("[FATAL] %v", err)
		}
		defer logFile.Close()
		appLogger.SetOutput(logFile)
	}

	grid, err := host.BuildGrid(cfg, appLogger)
	if err != nil {
		appLogger.Fatalf("[FATAL] building maze: %v", err)
	}
	g, err := game.NewGame(grid, host.StartPosition(cfg, grid), cfg.Tuning(), cfg.Layout)
	if err != nil {
		appLogger.Fatalf("[FATAL] starting session: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	surface, err := openDisplay(cfg)
	if err != nil {
		appLogger.Fatalf("[FATAL] opening %s surface: %v", cfg.Surface, err)
	}

	tilt, err := host.OpenSensor(ctx, cfg, surface, appLogger)
	if err != nil {
		surface.Close()
		appLogger.Fatalf("[FATAL] %v", err)
	}

	loop := &host.Loop{
		Game:       g,
		Display:    surface,
		Sensor:     tilt,
		Renderer:   ui.NewRenderer(),
		FrameDelay: cfg.FrameDelay,
		MaxTicks:   *ticks,
		Logger:     appLogger,
	}
	loop.Run(ctx)
	surface.Close()

	saveSession(g, cfg.DataDir, appLogger)
}

func openDisplay(cfg config.Config) (display, error) {
	if cfg.Surface == config.SurfaceTerminal {
		s, err := terminal.Open(cfg.SurfaceSize())
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return window.Open(cfg.SurfaceSize(), cfg.Scale, "Mercury Maze"), nil
}

func openLogFile(dataDir string) (io.WriteCloser, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dataDir, "mercury-maze.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}

func saveSession(g *game.Game, dataDir string, logger *log.Logger) {
	path, err := g.SaveStats(dataDir)
	if err != nil {
		logger.Printf("[ERROR] saving session stats: %v", err)
	} else {
		logger.Printf("[INFO] session stats written to %s", path)
	}

	history, err := manager.NewHistoryManager(manager.HistoryFile(dataDir), manager.HistoryGroupSize)
	if err != nil {
		logger.Printf("[ERROR] loading history: %v", err)
		return
	}
	history.Add(g.Stats())
	if err := history.Save(); err != nil {
		logger.Printf("[ERROR] saving history: %v", err)
		return
	}
	logger.Printf("[INFO] %d sessions played, %.1fpx travelled on average",
		history.SessionsPlayed(), history.AverageDistance())
}
