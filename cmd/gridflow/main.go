// GridFlow: Self-Sizing Card Grid
//
// A cross-platform desktop application that lays out a catalog as a
// multi-column grid whose cards settle to their measured heights.
//
// Build:
//   go build -o gridflow ./cmd/gridflow
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o gridflow.exe ./cmd/gridflow
//   GOOS=darwin  GOARCH=amd64 go build -o gridflow-darwin ./cmd/gridflow
//
// Using fyne-cross (recommended for proper packaging):
//   go install github.com/fyne-io/fyne-cross@latest
//   fyne-cross windows -arch=amd64
//   fyne-cross darwin  -arch=amd64,arm64

package main

import (
	"log/slog"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/piwi3910/gridflow/internal/model"
	"github.com/piwi3910/gridflow/internal/project"
	"github.com/piwi3910/gridflow/internal/ui"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	configPath := project.DefaultConfigPath()
	config, err := project.LoadAppConfig(configPath)
	if err != nil {
		logger.Warn("Failed to load config, using defaults", "path", configPath, "error", err)
		config = model.DefaultAppConfig()
	}

	application := app.NewWithID("com.piwi3910.gridflow")
	window := application.NewWindow("GridFlow: Self-Sizing Card Grid")

	appUI := ui.NewApp(application, window, config, configPath, logger)
	appUI.SetupMenus()
	window.SetContent(appUI.Build())
	window.Resize(fyne.NewSize(float32(config.WindowWidth), float32(config.WindowHeight)))
	window.CenterOnScreen()
	window.ShowAndRun()
}
