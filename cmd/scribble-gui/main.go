package main

import (
	"fmt"
	stlog "log"

	fyneapp "fyne.io/fyne/v2/app"

	"github.com/bethropolis/scribble/internal/config"
	"github.com/bethropolis/scribble/internal/gui"
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

	closer, err := logger.Setup(cfg.Logger)
	if err != nil {
		stlog.Fatalf("Failed to set up logging: %v", err)
	}
	defer closer.Close()

	logger.Infof("Starting %s %s (desktop)...", config.AppName, config.Version)

	a := fyneapp.NewWithID("io.github.bethropolis.scribble")
	w, err := gui.NewWindow(a, cfg)
	if err != nil {
		logger.Fatalf("Error initializing window: %v", err)
	}
	w.ShowAndRun()
	logger.Infof("%s finished.", config.AppName)
}
