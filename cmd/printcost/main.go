// PrintCost — Printing Job Quotation
//
// A cross-platform desktop application that fits finished units onto
// parent sheets and prices a print job into an itemized quotation.
//
// Build:
//   go build -o printcost ./cmd/printcost
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o printcost.exe ./cmd/printcost
//   GOOS=darwin  GOARCH=amd64 go build -o printcost-darwin ./cmd/printcost
//
// Using fyne-cross (recommended for proper packaging):
//   go install github.com/fyne-io/fyne-cross@latest
//   fyne-cross windows -arch=amd64
//   fyne-cross darwin  -arch=amd64,arm64

package main

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
	"go.uber.org/zap"

	"github.com/piwi3910/PrintCost/internal/logging"
	"github.com/piwi3910/PrintCost/internal/project"
	"github.com/piwi3910/PrintCost/internal/ui"
)

func main() {
	cfg, err := project.LoadConfig(project.DefaultConfigPath())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	inv, invPath, err := project.LoadOrCreateInventory()
	if err != nil {
		logger.Fatal("failed to load presets", zap.Error(err))
	}
	logger.Info("starting",
		zap.String("config", project.DefaultConfigPath()),
		zap.String("presets", invPath),
		zap.Int("papers", len(inv.Papers)),
		zap.Int("plates", len(inv.Plates)),
	)

	application := app.NewWithID("com.piwi3910.printcost")
	application.Settings().SetTheme(ui.ThemeForName(cfg.Theme))
	window := application.NewWindow("PrintCost — Printing Job Quotation")

	appUI := ui.NewApp(window, logger, cfg, inv, invPath)
	appUI.SetupMenus() // Setup the native menu bar
	window.SetContent(fynetooltip.AddWindowToolTipLayer(appUI.Build(), window.Canvas()))
	window.Resize(fyne.NewSize(1300, 800))
	window.CenterOnScreen()
	window.ShowAndRun()
}
