package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Mshel/sshnake/internal/game"
	"github.com/Mshel/sshnake/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML settings file")
	demo := flag.Bool("demo", false, "let the autopilot play")
	flag.Parse()

	settings, err := game.LoadSettings(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error %v\n", err)
		os.Exit(1)
	}

	// The TUI owns the terminal, so logs go to a file
	logFile, err := os.OpenFile(settings.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	level, err := log.ParseLevel(settings.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	logger := log.NewWithOptions(logFile, log.Options{ReportTimestamp: true, Level: level})
	log.SetDefault(logger)

	highScores, err := game.NewHighScoreService(settings.DatabasePath)
	if err != nil {
		log.Error("High scores disabled", "error", err)
	} else {
		defer highScores.Close()
	}

	controller := ui.NewControllerModel(ui.ControllerDeps{
		Settings:    settings,
		HighScores:  highScores,
		Logger:      logger,
		NewStrategy: ui.AutopilotFactory(settings.AutopilotScript),
		DemoOnly:    *demo,
	}, 0, 0)

	p := tea.NewProgram(controller, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error %v", err)
		os.Exit(1)
	}
}
