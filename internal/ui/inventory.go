package ui

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/piwi3910/PrintCost/internal/model"
	"github.com/piwi3910/PrintCost/internal/project"
)

// ─── Paper Size Presets ────────────────────────────────────

func (a *App) showPaperInventoryDialog() {
	paperList := container.NewVBox()
	var refreshList func()

	refreshList = func() {
		paperList.RemoveAll()

		if len(a.inventory.Papers) == 0 {
			paperList.Add(widget.NewLabel("No paper sizes defined. Only Custom sizes are available."))
			return
		}

		header := container.NewGridWithColumns(5,
			widget.NewLabelWithStyle("Name", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("Width", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("Height", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
			widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
		)
		paperList.Add(header)
		paperList.Add(widget.NewSeparator())

		for i := range a.inventory.Papers {
			idx := i
			p := a.inventory.Papers[idx]
			row := container.NewGridWithColumns(5,
				widget.NewLabel(p.Name),
				widget.NewLabel(fmt.Sprintf("%g in", p.Width)),
				widget.NewLabel(fmt.Sprintf("%g in", p.Height)),
				newIconButtonWithTooltip(theme.DocumentCreateIcon(), "Edit paper size", func() {
					a.showPaperPresetDialog(idx, refreshList)
				}),
				newIconButtonWithTooltip(theme.DeleteIcon(), "Delete paper size", func() {
					a.inventory.Papers = append(a.inventory.Papers[:idx], a.inventory.Papers[idx+1:]...)
					a.presetsChanged()
					refreshList()
				}),
			)
			paperList.Add(row)
		}
	}

	refreshList()

	addBtn := widget.NewButtonWithIcon("Add Paper Size", theme.ContentAddIcon(), func() {
		a.showPaperPresetDialog(-1, refreshList)
	})

	d := dialog.NewCustom("Paper Sizes", "Close", a.presetDialogContent(addBtn, paperList, refreshList), a.window)
	d.Resize(fyne.NewSize(600, 450))
	d.Show()
}

// showPaperPresetDialog adds a paper size (idx < 0) or edits an existing one.
func (a *App) showPaperPresetDialog(idx int, onDone func()) {
	title, confirm := "Add Paper Size", "Add"
	p := model.PaperPreset{Name: "New Size", Width: 8, Height: 10}
	if idx >= 0 {
		title, confirm = "Edit Paper Size", "Save"
		p = a.inventory.Papers[idx]
	}

	nameEntry := widget.NewEntry()
	nameEntry.SetText(p.Name)
	widthEntry := widget.NewEntry()
	widthEntry.SetText(strconv.FormatFloat(p.Width, 'f', -1, 64))
	heightEntry := widget.NewEntry()
	heightEntry.SetText(strconv.FormatFloat(p.Height, 'f', -1, 64))

	form := dialog.NewForm(title, confirm, "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Width (in)", widthEntry),
			widget.NewFormItem("Height (in)", heightEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			name := strings.TrimSpace(nameEntry.Text)
			w, _ := strconv.ParseFloat(widthEntry.Text, 64)
			h, _ := strconv.ParseFloat(heightEntry.Text, 64)
			taken := a.inventory.FindPaperByName(name) != nil && !(idx >= 0 && strings.EqualFold(name, p.Name))
			if err := validatePresetName(name, taken); err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			if w <= 0 || h <= 0 {
				dialog.ShowError(fmt.Errorf("width and height must be > 0"), a.window)
				return
			}

			if idx >= 0 {
				a.inventory.Papers[idx].Name = name
				a.inventory.Papers[idx].Width = w
				a.inventory.Papers[idx].Height = h
			} else {
				a.inventory.Papers = append(a.inventory.Papers, model.NewPaperPreset(name, w, h))
			}
			a.presetsChanged()
			onDone()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(400, 250))
	form.Show()
}

// ─── Plate Type Presets ────────────────────────────────────

func (a *App) showPlateInventoryDialog() {
	plateList := container.NewVBox()
	var refreshList func()
	sym := a.config.CurrencySymbol()

	refreshList = func() {
		plateList.RemoveAll()

		if len(a.inventory.Plates) == 0 {
			plateList.Add(widget.NewLabel("No plate types defined. Only Custom plates are available."))
			return
		}

		header := container.NewGridWithColumns(4,
			widget.NewLabelWithStyle("Name", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("Cost per Color", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
			widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
		)
		plateList.Add(header)
		plateList.Add(widget.NewSeparator())

		for i := range a.inventory.Plates {
			idx := i
			p := a.inventory.Plates[idx]
			row := container.NewGridWithColumns(4,
				widget.NewLabel(p.Name),
				widget.NewLabel(model.FormatMoney(sym, p.BaseCost)),
				newIconButtonWithTooltip(theme.DocumentCreateIcon(), "Edit plate type", func() {
					a.showPlatePresetDialog(idx, refreshList)
				}),
				newIconButtonWithTooltip(theme.DeleteIcon(), "Delete plate type", func() {
					a.inventory.Plates = append(a.inventory.Plates[:idx], a.inventory.Plates[idx+1:]...)
					a.presetsChanged()
					refreshList()
				}),
			)
			plateList.Add(row)
		}
	}

	refreshList()

	addBtn := widget.NewButtonWithIcon("Add Plate Type", theme.ContentAddIcon(), func() {
		a.showPlatePresetDialog(-1, refreshList)
	})

	d := dialog.NewCustom("Plate Types", "Close", a.presetDialogContent(addBtn, plateList, refreshList), a.window)
	d.Resize(fyne.NewSize(600, 450))
	d.Show()
}

// showPlatePresetDialog adds a plate type (idx < 0) or edits an existing one.
func (a *App) showPlatePresetDialog(idx int, onDone func()) {
	title, confirm := "Add Plate Type", "Add"
	p := model.PlatePreset{Name: "New Plate", BaseCost: decimal.NewFromInt(100)}
	if idx >= 0 {
		title, confirm = "Edit Plate Type", "Save"
		p = a.inventory.Plates[idx]
	}

	nameEntry := widget.NewEntry()
	nameEntry.SetText(p.Name)
	costEntry := widget.NewEntry()
	costEntry.SetText(p.BaseCost.String())

	form := dialog.NewForm(title, confirm, "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Base Cost per Color", costEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			name := strings.TrimSpace(nameEntry.Text)
			taken := a.inventory.FindPlateByName(name) != nil && !(idx >= 0 && strings.EqualFold(name, p.Name))
			if err := validatePresetName(name, taken); err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			cost, err := decimal.NewFromString(strings.TrimSpace(costEntry.Text))
			if err != nil || cost.IsNegative() {
				dialog.ShowError(fmt.Errorf("base cost must be a non-negative amount"), a.window)
				return
			}

			if idx >= 0 {
				a.inventory.Plates[idx].Name = name
				a.inventory.Plates[idx].BaseCost = cost
			} else {
				a.inventory.Plates = append(a.inventory.Plates, model.NewPlatePreset(name, cost))
			}
			a.presetsChanged()
			onDone()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(400, 220))
	form.Show()
}

// validatePresetName rejects empty and reserved names, and names taken by
// another preset of the same table.
func validatePresetName(name string, taken bool) error {
	switch {
	case name == "":
		return fmt.Errorf("name is required")
	case strings.EqualFold(name, model.CustomPresetName):
		return fmt.Errorf("%q is reserved for user-entered values", model.CustomPresetName)
	case taken:
		return fmt.Errorf("a preset named %q already exists", name)
	}
	return nil
}

// presetDialogContent lays out a preset list with its toolbar.
func (a *App) presetDialogContent(addBtn *widget.Button, list *fyne.Container, refreshList func()) fyne.CanvasObject {
	importBtn := widget.NewButtonWithIcon("Import...", theme.FolderOpenIcon(), func() {
		a.importInventory(refreshList)
	})

	exportBtn := widget.NewButtonWithIcon("Export...", theme.DocumentSaveIcon(), func() {
		a.exportInventory()
	})

	toolbar := container.NewHBox(addBtn, layout.NewSpacer(), importBtn, exportBtn)

	return container.NewBorder(
		toolbar,
		nil, nil, nil,
		container.NewVScroll(list),
	)
}

func (a *App) importInventory(onDone func()) {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		inv, err := project.ImportInventory(reader.URI().Path(), a.inventory)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.inventory = inv
		a.presetsChanged()
		onDone()
		dialog.ShowInformation("Import Complete", "Presets imported successfully.", a.window)
	}, a.window)
}

func (a *App) exportInventory() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()

		if err := project.SaveInventory(writer.URI().Path(), a.inventory); err != nil {
			dialog.ShowError(err, a.window)
		} else {
			dialog.ShowInformation("Export Complete",
				fmt.Sprintf("Presets exported to %s", writer.URI().Path()),
				a.window)
		}
	}, a.window)
	d.SetFileName("presets.json")
	d.Show()
}

// ─── Inventory Integration Helpers ─────────────────────────

// presetsChanged saves the inventory and refreshes everything that lists
// presets. A job pointing at a removed preset is reported by recompute.
func (a *App) presetsChanged() {
	a.saveInventory()
	if a.form != nil {
		a.form.setPresetOptions(&a.inventory)
	}
	a.recompute()
}

// saveInventory persists the current inventory to disk.
func (a *App) saveInventory() {
	if a.inventoryPath == "" {
		return
	}
	if err := project.SaveInventory(a.inventoryPath, a.inventory); err != nil {
		a.logger.Error("failed to save presets", zap.String("path", a.inventoryPath), zap.Error(err))
		dialog.ShowError(fmt.Errorf("failed to save inventory: %w", err), a.window)
	}
}
