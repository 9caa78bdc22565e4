package ui

import (
	"errors"
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/piwi3910/PrintCost/internal/engine"
	"github.com/piwi3910/PrintCost/internal/export"
	"github.com/piwi3910/PrintCost/internal/importer"
	"github.com/piwi3910/PrintCost/internal/model"
	"github.com/piwi3910/PrintCost/internal/project"
	"github.com/piwi3910/PrintCost/internal/ui/widgets"
)

// InfeasibleMessage is shown instead of a quotation when not a single unit
// fits on the sheet.
const InfeasibleMessage = "Error: Unit size is larger than the sheet size."

// App holds all application state and UI references.
type App struct {
	window        fyne.Window
	logger        *zap.Logger
	config        model.AppConfig
	inventory     model.Inventory
	inventoryPath string

	job     model.JobSpec
	quote   *engine.Quotation // Last feasible quotation, nil otherwise
	history *History
	syncing bool // Set while the form is being filled from a.job

	tabs *container.AppTabs
	form *jobForm

	// UI references for dynamic updates
	statusLabel      *widget.Label
	totalLabel       *widget.Label
	perUnitLabel     *widget.Label
	reportContainer  *fyne.Container
	chart            *widgets.BreakdownChart
	sheetCanvas      *widgets.SheetCanvas
	compareContainer *fyne.Container
	undoItem         *fyne.MenuItem
	redoItem         *fyne.MenuItem
}

// NewApp creates the application around a loaded config and preset
// inventory. A nil logger is replaced by a no-op logger.
func NewApp(window fyne.Window, logger *zap.Logger, config model.AppConfig, inv model.Inventory, inventoryPath string) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{
		window:        window,
		logger:        logger,
		config:        config,
		inventory:     inv,
		inventoryPath: inventoryPath,
		job:           config.NewJobSpec(),
		history:       NewHistory(),
	}
}

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	// File Menu
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Job", func() {
			a.newJob()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Paper Sizes from CSV...", func() {
			a.importCSV()
		}),
		fyne.NewMenuItem("Import Paper Sizes from Excel...", func() {
			a.importExcel()
		}),
		fyne.NewMenuItem("Unit Size from DXF...", func() {
			a.importDXF()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Quote as CSV...", func() {
			a.exportQuote("csv", export.ExportCSV)
		}),
		fyne.NewMenuItem("Export Quote as Excel...", func() {
			a.exportQuote("xlsx", export.ExportXLSX)
		}),
		fyne.NewMenuItem("Export Quote as PDF...", func() {
			a.exportQuote("pdf", export.ExportPDF)
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			a.window.Close()
		}),
	)

	// Edit Menu
	a.undoItem = fyne.NewMenuItem("Undo", func() { a.undo() })
	a.undoItem.Shortcut = &desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault}
	a.redoItem = fyne.NewMenuItem("Redo", func() { a.redo() })
	a.redoItem.Shortcut = &desktop.CustomShortcut{KeyName: fyne.KeyY, Modifier: fyne.KeyModifierShortcutDefault}
	editMenu := fyne.NewMenu("Edit", a.undoItem, a.redoItem)

	// Presets Menu
	presetsMenu := fyne.NewMenu("Presets",
		fyne.NewMenuItem("Paper Sizes...", func() {
			a.showPaperInventoryDialog()
		}),
		fyne.NewMenuItem("Plate Types...", func() {
			a.showPlateInventoryDialog()
		}),
	)

	// Settings Menu
	settingsMenu := fyne.NewMenu("Settings",
		fyne.NewMenuItem("Preferences...", func() {
			a.showSettingsDialog()
		}),
		fyne.NewMenuItem("Save Current Job as Defaults", func() {
			a.saveJobAsDefaults()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import / Export Data...", func() {
			a.showImportExportDialog()
		}),
	)

	// Help Menu
	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", func() {
			a.showAboutDialog()
		}),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, presetsMenu, settingsMenu, helpMenu))

	a.window.Canvas().AddShortcut(a.undoItem.Shortcut, func(fyne.Shortcut) { a.undo() })
	a.window.Canvas().AddShortcut(a.redoItem.Shortcut, func(fyne.Shortcut) { a.redo() })
	a.updateEditMenu()
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About PrintCost",
		"PrintCost: Printing Job Quotation\n\n"+
			"Fits finished units onto parent sheets and prices\n"+
			"paper, plates, finishing and overheads into a quote.\n\n"+
			"Version 1.0.0",
		a.window,
	)
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	jobSplit := container.NewHSplit(a.buildJobForm(), a.buildResultsPanel())
	jobSplit.SetOffset(0.38)

	jobTab := container.NewTabItem("Job", jobSplit)
	compareTab := container.NewTabItem("Compare", a.buildComparePanel())

	a.tabs = container.NewAppTabs(jobTab, compareTab)
	a.tabs.SetTabLocation(container.TabLocationTop)
	a.tabs.OnSelected = func(item *container.TabItem) {
		if item == compareTab {
			a.refreshCompare()
		}
	}

	a.recompute()
	return a.tabs
}

// ─── Results Panel ─────────────────────────────────────────

func (a *App) buildResultsPanel() fyne.CanvasObject {
	a.statusLabel = widget.NewLabel("")
	a.statusLabel.Wrapping = fyne.TextWrapWord

	a.totalLabel = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	a.perUnitLabel = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	metrics := container.NewGridWithColumns(2,
		widget.NewCard("Total Job Cost", "", a.totalLabel),
		widget.NewCard("Cost Per Unit", "", a.perUnitLabel),
	)

	a.reportContainer = container.NewVBox()
	a.chart = widgets.NewBreakdownChart(520)
	a.sheetCanvas = widgets.NewSheetCanvas(model.FitResult{}, 520, 320)

	return container.NewVScroll(container.NewVBox(
		a.statusLabel,
		metrics,
		widget.NewCard("Quotation", "", a.reportContainer),
		widget.NewCard("Cost Breakdown", "", a.chart),
		widget.NewCard("Sheet Layout", "", a.sheetCanvas),
	))
}

// recompute validates and quotes the current job and refreshes the results.
// Invalid input and infeasible fits clear the results and show a message.
func (a *App) recompute() {
	a.updateEditMenu()
	if a.statusLabel == nil {
		return
	}

	if err := a.job.Validate(); err != nil {
		a.showInputError(err)
		return
	}

	q, err := engine.Quote(a.job, a.inventory)
	switch {
	case errors.Is(err, model.ErrInfeasibleFit):
		a.logger.Debug("infeasible fit", zap.Error(err))
		a.clearResults(InfeasibleMessage)
		a.statusLabel.Importance = widget.DangerImportance
		a.statusLabel.Refresh()
		return
	case err != nil:
		a.showInputError(err)
		return
	}

	a.quote = &q
	a.statusLabel.Importance = widget.SuccessImportance
	a.statusLabel.SetText("Result: " + engine.FitSummary(q.Fit))

	sym := q.Spec.Currency
	b := q.Breakdown
	a.totalLabel.SetText(model.FormatMoney(sym, b.FinalJobCost))
	if b.CostPerUnitDefined {
		a.perUnitLabel.SetText(model.FormatMoney(sym, b.CostPerUnit))
	} else {
		a.perUnitLabel.SetText("n/a")
	}

	a.refreshReport(q)
	a.chart.SetBreakdown(b, sym)
	a.sheetCanvas.SetFit(q.Fit)
}

// showInputError clears the results and shows err in the status line.
func (a *App) showInputError(err error) {
	a.logger.Debug("job input rejected", zap.Error(err))
	if a.statusLabel == nil {
		return
	}
	a.clearResults(strings.TrimPrefix(err.Error(), model.ErrInvalidInput.Error()+": "))
	a.statusLabel.Importance = widget.WarningImportance
	a.statusLabel.Refresh()
}

func (a *App) clearResults(status string) {
	a.quote = nil
	a.statusLabel.SetText(status)
	a.totalLabel.SetText("-")
	a.perUnitLabel.SetText("-")
	a.reportContainer.RemoveAll()
	a.chart.Clear()
	a.sheetCanvas.Clear()
}

func (a *App) refreshReport(q engine.Quotation) {
	a.reportContainer.RemoveAll()

	header := container.NewGridWithColumns(3,
		widget.NewLabelWithStyle("Cost Category", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Formula / Details", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Amount", fyne.TextAlignTrailing, fyne.TextStyle{Bold: true}),
	)
	a.reportContainer.Add(header)
	a.reportContainer.Add(widget.NewSeparator())

	for _, row := range engine.ReportRows(q) {
		bold := strings.ToUpper(row.Category) == row.Category
		a.reportContainer.Add(container.NewGridWithColumns(3,
			widget.NewLabelWithStyle(row.Category, fyne.TextAlignLeading, fyne.TextStyle{Bold: bold}),
			widget.NewLabel(row.Formula),
			widget.NewLabelWithStyle(model.FormatMoney(q.Spec.Currency, row.Amount), fyne.TextAlignTrailing, fyne.TextStyle{Bold: bold}),
		))
	}

	a.reportContainer.Add(widget.NewSeparator())
	a.reportContainer.Add(widget.NewLabel(fmt.Sprintf(
		"Sheet utilization %.1f%% | Standard fit %d, rotated fit %d | Overrun %d units",
		q.Fit.Utilization(), q.Fit.FitStandard, q.Fit.FitRotated, q.Fit.Overrun(),
	)))
	a.reportContainer.Refresh()
}

// ─── Compare Panel ─────────────────────────────────────────

func (a *App) buildComparePanel() fyne.CanvasObject {
	a.compareContainer = container.NewVBox()
	return container.NewVScroll(a.compareContainer)
}

// refreshCompare quotes what-if variants of the current job side by side.
func (a *App) refreshCompare() {
	a.compareContainer.RemoveAll()

	if err := a.job.Validate(); err != nil {
		a.compareContainer.Add(widget.NewLabel("Fix the job inputs to compare alternatives."))
		a.compareContainer.Refresh()
		return
	}

	header := container.NewGridWithColumns(6,
		widget.NewLabelWithStyle("Scenario", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Per Sheet", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Sheets", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Expenses", fyne.TextAlignTrailing, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Final Quote", fyne.TextAlignTrailing, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Per Unit", fyne.TextAlignTrailing, fyne.TextStyle{Bold: true}),
	)
	a.compareContainer.Add(header)
	a.compareContainer.Add(widget.NewSeparator())

	sym := a.job.Currency
	results := engine.CompareScenarios(engine.BuildDefaultScenarios(a.job, a.inventory), a.inventory)
	for _, r := range results {
		if !r.Feasible() {
			a.compareContainer.Add(container.NewGridWithColumns(6,
				widget.NewLabel(r.Scenario.Name),
				widget.NewLabel("does not fit"),
				widget.NewLabel("-"), widget.NewLabel("-"), widget.NewLabel("-"), widget.NewLabel("-"),
			))
			continue
		}
		b := r.Quotation.Breakdown
		perUnit := "n/a"
		if b.CostPerUnitDefined {
			perUnit = model.FormatMoney(sym, b.CostPerUnit)
		}
		a.compareContainer.Add(container.NewGridWithColumns(6,
			widget.NewLabel(r.Scenario.Name),
			widget.NewLabel(fmt.Sprintf("%d (%s)", r.Quotation.Fit.PiecesPerSheet, r.Quotation.Fit.Orientation)),
			widget.NewLabel(fmt.Sprintf("%d", b.SheetsRequired)),
			widget.NewLabelWithStyle(model.FormatMoney(sym, b.TotalExpenses), fyne.TextAlignTrailing, fyne.TextStyle{}),
			widget.NewLabelWithStyle(model.FormatMoney(sym, b.FinalJobCost), fyne.TextAlignTrailing, fyne.TextStyle{}),
			widget.NewLabelWithStyle(perUnit, fyne.TextAlignTrailing, fyne.TextStyle{}),
		))
	}
	a.compareContainer.Refresh()
}

// ─── Actions ───────────────────────────────────────────────

// applyEdit records the current job for undo, applies mutate and recomputes.
func (a *App) applyEdit(label string, mutate func(job *model.JobSpec)) {
	a.history.Push(MakeSnapshot(a.job, label))
	mutate(&a.job)
	a.syncForm()
	a.recompute()
}

func (a *App) newJob() {
	a.applyEdit("New Job", func(job *model.JobSpec) {
		*job = a.config.NewJobSpec()
	})
}

func (a *App) undo() {
	s, ok := a.history.Undo(MakeSnapshot(a.job, a.history.UndoLabel()))
	if !ok {
		return
	}
	a.job = s.Job
	a.syncForm()
	a.recompute()
}

func (a *App) redo() {
	s, ok := a.history.Redo(MakeSnapshot(a.job, a.history.RedoLabel()))
	if !ok {
		return
	}
	a.job = s.Job
	a.syncForm()
	a.recompute()
}

func (a *App) updateEditMenu() {
	if a.undoItem == nil {
		return
	}
	a.undoItem.Disabled = !a.history.CanUndo()
	a.undoItem.Label = strings.TrimSpace("Undo " + a.history.UndoLabel())
	a.redoItem.Disabled = !a.history.CanRedo()
	a.redoItem.Label = strings.TrimSpace("Redo " + a.history.RedoLabel())
	if menu := a.window.MainMenu(); menu != nil {
		menu.Refresh()
	}
}

func (a *App) saveJobAsDefaults() {
	if err := a.job.Validate(); err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.config = configFromJob(a.config, a.job)
	if err := a.saveConfig(); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save defaults: %w", err), a.window)
		return
	}
	dialog.ShowInformation("Defaults Saved", "New jobs will start from the current inputs.", a.window)
}

// configFromJob copies the job inputs into the new-job defaults of cfg.
// Custom paper and plate choices keep the previous preset defaults.
func configFromJob(cfg model.AppConfig, job model.JobSpec) model.AppConfig {
	if !job.Paper.IsCustom() {
		cfg.DefaultPaper = job.Paper.Preset
	}
	if !job.Plate.IsCustom() {
		cfg.DefaultPlate = job.Plate.Preset
	}
	cfg.Currency = currencyLabelFor(job.Currency, cfg.Currency)
	cfg.DefaultSheetWidth = job.Sheet.Width
	cfg.DefaultSheetHeight = job.Sheet.Height
	cfg.DefaultTotalUnits = job.TotalUnits
	cfg.DefaultNumColors = job.NumColors
	cfg.DefaultCutOps = job.CutOps
	cfg.DefaultPricePerSheet = job.PricePerSheet
	cfg.DefaultPrintRate = job.PrintRatePerColor
	cfg.DefaultCutRate = job.CutRate
	cfg.DefaultDieCutCost = job.DieCutCost
	cfg.DefaultBindingRate = job.BindingRatePerUnit
	cfg.DefaultPackingRate = job.PackingRatePerSheet
	cfg.DefaultOverhead = job.OverheadFixed
	cfg.DefaultMarginPercent = job.MarginPercent
	return cfg
}

// exportQuote saves the current quotation with write, suggesting the
// quote_<paper>_<units> file name.
func (a *App) exportQuote(ext string, write func(path string, q engine.Quotation) error) {
	if a.quote == nil {
		dialog.ShowInformation("Nothing to export", "Enter a job that fits on the sheet first.", a.window)
		return
	}
	q := *a.quote

	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		path := writer.URI().Path()
		if err := write(path, q); err != nil {
			a.logger.Error("export failed", zap.String("format", ext), zap.String("path", path), zap.Error(err))
			dialog.ShowError(err, a.window)
			return
		}
		a.logger.Info("quote exported", zap.String("format", ext), zap.String("path", path))
		dialog.ShowInformation("Export Complete", fmt.Sprintf("Quote saved to %s", path), a.window)
	}, a.window)
	d.SetFileName(export.QuoteFilename(q, ext))
	d.Show()
}

// ─── Import Functions ───────────────────────────────────────

func (a *App) importCSV() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		result := importer.ImportCSV(reader.URI().Path())
		a.handleImportResult(result)
	}, a.window)
}

func (a *App) importExcel() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		result := importer.ImportExcel(reader.URI().Path())
		a.handleImportResult(result)
	}, a.window)
}

func (a *App) handleImportResult(result importer.ImportResult) {
	// Show errors if any
	if len(result.Errors) > 0 {
		errorMsg := "Errors encountered during import:\n\n" + strings.Join(result.Errors, "\n")
		dialog.ShowError(fmt.Errorf("%s", errorMsg), a.window)
	}

	if len(result.Warnings) > 0 {
		a.logger.Warn("paper size import warnings", zap.Strings("warnings", result.Warnings))
	}

	if len(result.Papers) == 0 {
		return
	}

	added := a.inventory.MergePapers(result.Papers)
	a.saveInventory()
	a.form.setPresetOptions(&a.inventory)

	msg := fmt.Sprintf("Imported %d paper sizes.", added)
	if skipped := len(result.Papers) - added; skipped > 0 {
		msg += fmt.Sprintf("\n\n%d sizes were already present and were skipped.", skipped)
	}
	if len(result.Errors) > 0 {
		msg += fmt.Sprintf("\n\nHowever, %d rows had errors and were skipped.", len(result.Errors))
	}
	dialog.ShowInformation("Import Complete", msg, a.window)
}

// importDXF sets a custom unit size from the bounding box of a drawing.
func (a *App) importDXF() {
	unitsSelect := widget.NewSelect([]string{"Inches", "Millimetres"}, nil)
	unitsSelect.SetSelected("Inches")

	form := dialog.NewForm("Unit Size from DXF", "Choose File...", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Drawing Units", unitsSelect),
		},
		func(ok bool) {
			if !ok {
				return
			}
			scale := 1.0
			if unitsSelect.Selected == "Millimetres" {
				scale = 1 / importer.MillimetresPerInch
			}
			dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
				if err != nil || reader == nil {
					return
				}
				defer reader.Close()

				result := importer.ImportUnitDXF(reader.URI().Path(), scale)
				if !result.OK() {
					dialog.ShowError(fmt.Errorf("%s", strings.Join(result.Errors, "\n")), a.window)
					return
				}
				if len(result.Warnings) > 0 {
					a.logger.Warn("dxf import warnings", zap.Strings("warnings", result.Warnings))
				}
				a.applyEdit("Import Unit Size", func(job *model.JobSpec) {
					job.Paper = model.CustomPaper(result.Unit.Width, result.Unit.Height)
				})
			}, a.window)
		},
		a.window,
	)
	form.Resize(fyne.NewSize(350, 180))
	form.Show()
}
