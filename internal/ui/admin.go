package ui

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/piwi3910/PrintCost/internal/model"
	"github.com/piwi3910/PrintCost/internal/project"
)

// showSettingsDialog displays the application preferences and the
// defaults used to seed a new job.
func (a *App) showSettingsDialog() {
	cfg := a.config

	floatEntry := func(val *float64) *widget.Entry {
		return boundEntry(val, func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) },
			func(s string) (float64, error) { return strconv.ParseFloat(s, 64) })
	}
	intEntry := func(val *int) *widget.Entry {
		return boundEntry(val, strconv.Itoa, strconv.Atoi)
	}
	moneyEntry := func(val *decimal.Decimal) *widget.Entry {
		return boundEntry(val, decimal.Decimal.String, decimal.NewFromString)
	}

	themeSelect := widget.NewSelect([]string{"system", "light", "dark"}, func(selected string) {
		cfg.Theme = selected
	})
	themeSelect.SetSelected(cfg.Theme)

	currencySelect := widget.NewSelect(model.Currencies, func(selected string) {
		cfg.Currency = selected
	})
	currencySelect.SetSelected(cfg.Currency)

	logSelect := widget.NewSelect([]string{"debug", "info", "warn", "error"}, func(selected string) {
		cfg.LogLevel = selected
	})
	logSelect.SetSelected(cfg.LogLevel)

	paperSelect := widget.NewSelect(namesOf(a.inventory.Papers, func(p model.PaperPreset) string { return p.Name }), func(selected string) {
		cfg.DefaultPaper = selected
	})
	paperSelect.SetSelected(cfg.DefaultPaper)

	plateSelect := widget.NewSelect(namesOf(a.inventory.Plates, func(p model.PlatePreset) string { return p.Name }), func(selected string) {
		cfg.DefaultPlate = selected
	})
	plateSelect.SetSelected(cfg.DefaultPlate)

	formItems := []*widget.FormItem{
		widget.NewFormItem("Theme", themeSelect),
		widget.NewFormItem("Currency", currencySelect),
		widget.NewFormItem("Log Level", logSelect),
		widget.NewFormItem("", widget.NewSeparator()),
		widget.NewFormItem("Default Paper Size", paperSelect),
		widget.NewFormItem("Default Plate Type", plateSelect),
		widget.NewFormItem("Default Sheet Width (in)", floatEntry(&cfg.DefaultSheetWidth)),
		widget.NewFormItem("Default Sheet Height (in)", floatEntry(&cfg.DefaultSheetHeight)),
		widget.NewFormItem("Default Total Units", intEntry(&cfg.DefaultTotalUnits)),
		widget.NewFormItem("Default Colors", intEntry(&cfg.DefaultNumColors)),
		widget.NewFormItem("Default Cutting Ops", intEntry(&cfg.DefaultCutOps)),
		widget.NewFormItem("Default Price per Sheet", moneyEntry(&cfg.DefaultPricePerSheet)),
		widget.NewFormItem("Default Print Rate", moneyEntry(&cfg.DefaultPrintRate)),
		widget.NewFormItem("Default Cut Rate", moneyEntry(&cfg.DefaultCutRate)),
		widget.NewFormItem("Default Die-Cut Cost", moneyEntry(&cfg.DefaultDieCutCost)),
		widget.NewFormItem("Default Binding Rate", moneyEntry(&cfg.DefaultBindingRate)),
		widget.NewFormItem("Default Packing Rate", moneyEntry(&cfg.DefaultPackingRate)),
		widget.NewFormItem("Default Overhead", moneyEntry(&cfg.DefaultOverhead)),
		widget.NewFormItem("Default Margin (%)", moneyEntry(&cfg.DefaultMarginPercent)),
	}

	d := dialog.NewForm("Preferences", "Save", "Cancel", formItems,
		func(ok bool) {
			if !ok {
				return
			}
			if err := cfg.NewJobSpec().Validate(); err != nil {
				dialog.ShowError(fmt.Errorf("invalid defaults: %w", err), a.window)
				return
			}
			a.config = cfg
			fyne.CurrentApp().Settings().SetTheme(ThemeForName(cfg.Theme))
			if err := a.saveConfig(); err != nil {
				dialog.ShowError(fmt.Errorf("failed to save settings: %w", err), a.window)
			} else {
				dialog.ShowInformation("Settings Saved", "Application settings have been saved.", a.window)
			}
		},
		a.window,
	)
	d.Resize(fyne.NewSize(500, 650))
	d.Show()
}

// boundEntry keeps *val in step with the entry text. Text that does not
// parse leaves the last good value in place.
func boundEntry[T any](val *T, format func(T) string, parse func(string) (T, error)) *widget.Entry {
	e := widget.NewEntry()
	e.SetText(format(*val))
	e.OnChanged = func(text string) {
		if v, err := parse(strings.TrimSpace(text)); err == nil {
			*val = v
		}
	}
	return e
}

func namesOf[T any](items []T, name func(T) string) []string {
	names := make([]string, len(items))
	for i, it := range items {
		names[i] = name(it)
	}
	return names
}

// showImportExportDialog displays the backup/restore dialog for the
// preferences and the preset tables.
func (a *App) showImportExportDialog() {
	exportBtn := widget.NewButton("Export All Data...", func() {
		d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil || writer == nil {
				return
			}
			defer writer.Close()
			path := writer.URI().Path()
			if err := project.ExportAllData(path, a.config, a.inventory); err != nil {
				dialog.ShowError(err, a.window)
			} else {
				a.logger.Info("backup exported", zap.String("path", path))
				dialog.ShowInformation("Export Complete",
					fmt.Sprintf("All application data exported to:\n%s", path), a.window)
			}
		}, a.window)
		d.SetFileName("printcost-backup.json")
		d.Show()
	})

	importBtn := widget.NewButton("Import All Data...", func() {
		dialog.ShowConfirm("Import Data",
			"Importing data will replace your current settings and presets.\n\nAre you sure you want to continue?",
			func(ok bool) {
				if !ok {
					return
				}
				d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
					if err != nil || reader == nil {
						return
					}
					defer reader.Close()
					path := reader.URI().Path()
					backup, err := project.ImportAllData(path)
					if err != nil {
						dialog.ShowError(err, a.window)
						return
					}
					a.config = backup.Config
					a.inventory = backup.Inventory
					if err := a.saveConfig(); err != nil {
						dialog.ShowError(fmt.Errorf("failed to save imported settings: %w", err), a.window)
						return
					}
					fyne.CurrentApp().Settings().SetTheme(ThemeForName(a.config.Theme))
					a.presetsChanged()
					a.logger.Info("backup imported", zap.String("path", path), zap.String("created_at", backup.CreatedAt))
					dialog.ShowInformation("Import Complete",
						fmt.Sprintf("Data imported successfully from backup created at %s.", backup.CreatedAt), a.window)
				}, a.window)
				d.Show()
			},
			a.window,
		)
	})

	content := container.NewVBox(
		widget.NewLabel("Export all application data (preferences, paper sizes, plate types)\nto a backup file, or import from a previously exported backup."),
		widget.NewSeparator(),
		exportBtn,
		widget.NewSeparator(),
		importBtn,
	)

	d := dialog.NewCustom("Import / Export Data", "Close", content, a.window)
	d.Resize(fyne.NewSize(450, 250))
	d.Show()
}

// saveConfig persists the current app config to disk.
func (a *App) saveConfig() error {
	return project.SaveAppConfig(project.DefaultConfigPath(), a.config)
}
