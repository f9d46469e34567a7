package main

import (
	"fmt"
	stlog "log" // logger is not ready while flags and config load
	"os"
	"path/filepath"

	"github.com/bethropolis/scribble/internal/app"
	"github.com/bethropolis/scribble/internal/config"
	"github.com/bethropolis/scribble/internal/logger"
)

func main() {
	var flags config.Flags
	flags.ParseFlags()

	if *flags.Version {
		fmt.Printf("%s %s\n", config.AppName, config.Version)
		return
	}

	cfg, err := config.LoadConfig(*flags.ConfigFilePath, &flags)
	if err != nil {
		stlog.Printf("Warning: %v (using defaults)", err)
	}

	// stderr belongs to the terminal UI.
	logCfg := cfg.Logger
	if logCfg.LogFilePath == "" {
		logCfg.LogFilePath = filepath.Join(os.TempDir(), config.DefaultLogFileName)
	}
	closer, err := logger.Setup(logCfg)
	if err != nil {
		stlog.Fatalf("Failed to set up logging: %v", err)
	}
	defer closer.Close()

	logger.Infof("Starting %s %s...", config.AppName, config.Version)
	logger.Debugf("Canvas max size %dx%d, history %d (%s)",
		cfg.Canvas.MaxWidth, cfg.Canvas.MaxHeight, cfg.History.Limit, cfg.History.Codec)

	scribbleApp, err := app.NewApp(cfg)
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		closer.Close()
		os.Exit(1)
	}

	if err := scribbleApp.Run(); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		closer.Close()
		os.Exit(1)
	}
	logger.Infof("%s finished.", config.AppName)
}
