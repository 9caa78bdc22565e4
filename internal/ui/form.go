package ui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/shopspring/decimal"

	"github.com/piwi3910/PrintCost/internal/model"
)

// Defaults for the custom variants when first selected.
const (
	customPaperWidth  = "8"
	customPaperHeight = "10"
	customPlateCost   = "0"
)

// formValues is the raw text of every job input. It is kept free of
// widgets so that parsing can be exercised without a running app.
type formValues struct {
	Paper        string
	CustomWidth  string
	CustomHeight string
	TotalUnits   string
	SheetWidth   string
	SheetHeight  string
	Price        string
	Plate        string
	CustomPlate  string
	Colors       string
	PrintRate    string
	CutOps       string
	CutRate      string
	DieCut       string
	Binding      string
	Packing      string
	Overhead     string
	Margin       float64
	Currency     string // Label from model.Currencies
}

func parseFloatField(name, text string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a number", model.ErrInvalidInput, name, text)
	}
	return v, nil
}

func parseIntField(name, text string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a whole number", model.ErrInvalidInput, name, text)
	}
	return v, nil
}

func parseDecimalField(name, text string) (decimal.Decimal, error) {
	v, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s %q is not an amount", model.ErrInvalidInput, name, text)
	}
	return v, nil
}

// jobFromValues parses the form into a JobSpec. It only checks that each
// field parses; range checks are left to JobSpec.Validate.
func jobFromValues(v formValues) (model.JobSpec, error) {
	var (
		job model.JobSpec
		err error
	)

	if v.Paper == model.CustomPresetName {
		w, err := parseFloatField("unit width", v.CustomWidth)
		if err != nil {
			return job, err
		}
		h, err := parseFloatField("unit height", v.CustomHeight)
		if err != nil {
			return job, err
		}
		job.Paper = model.CustomPaper(w, h)
	} else {
		job.Paper = model.PresetPaper(v.Paper)
	}

	if v.Plate == model.CustomPresetName {
		c, err := parseDecimalField("plate cost", v.CustomPlate)
		if err != nil {
			return job, err
		}
		job.Plate = model.CustomPlate(c)
	} else {
		job.Plate = model.PresetPlate(v.Plate)
	}

	ints := []struct {
		name string
		text string
		dst  *int
	}{
		{"total units", v.TotalUnits, &job.TotalUnits},
		{"number of colors", v.Colors, &job.NumColors},
		{"cutting operations", v.CutOps, &job.CutOps},
	}
	for _, f := range ints {
		if *f.dst, err = parseIntField(f.name, f.text); err != nil {
			return job, err
		}
	}

	if job.Sheet.Width, err = parseFloatField("sheet width", v.SheetWidth); err != nil {
		return job, err
	}
	if job.Sheet.Height, err = parseFloatField("sheet height", v.SheetHeight); err != nil {
		return job, err
	}

	amounts := []struct {
		name string
		text string
		dst  *decimal.Decimal
	}{
		{"price per sheet", v.Price, &job.PricePerSheet},
		{"print rate", v.PrintRate, &job.PrintRatePerColor},
		{"cut rate", v.CutRate, &job.CutRate},
		{"die-cut cost", v.DieCut, &job.DieCutCost},
		{"binding rate", v.Binding, &job.BindingRatePerUnit},
		{"packing rate", v.Packing, &job.PackingRatePerSheet},
		{"overhead", v.Overhead, &job.OverheadFixed},
	}
	for _, f := range amounts {
		if *f.dst, err = parseDecimalField(f.name, f.text); err != nil {
			return job, err
		}
	}

	job.MarginPercent = decimal.NewFromInt(int64(math.Round(v.Margin)))
	job.Currency = model.CurrencySymbol(v.Currency)
	return job, nil
}

// valuesFromJob renders a JobSpec back into form text.
func valuesFromJob(job model.JobSpec, currencyLabel string) formValues {
	v := formValues{
		Paper:        job.Paper.Name(),
		CustomWidth:  customPaperWidth,
		CustomHeight: customPaperHeight,
		TotalUnits:   strconv.Itoa(job.TotalUnits),
		SheetWidth:   strconv.FormatFloat(job.Sheet.Width, 'f', -1, 64),
		SheetHeight:  strconv.FormatFloat(job.Sheet.Height, 'f', -1, 64),
		Price:        job.PricePerSheet.String(),
		Plate:        job.Plate.Name(),
		CustomPlate:  customPlateCost,
		Colors:       strconv.Itoa(job.NumColors),
		PrintRate:    job.PrintRatePerColor.String(),
		CutOps:       strconv.Itoa(job.CutOps),
		CutRate:      job.CutRate.String(),
		DieCut:       job.DieCutCost.String(),
		Binding:      job.BindingRatePerUnit.String(),
		Packing:      job.PackingRatePerSheet.String(),
		Overhead:     job.OverheadFixed.String(),
		Margin:       job.MarginPercent.InexactFloat64(),
		Currency:     currencyLabel,
	}
	if job.Paper.IsCustom() {
		v.CustomWidth = strconv.FormatFloat(job.Paper.Custom.Width, 'f', -1, 64)
		v.CustomHeight = strconv.FormatFloat(job.Paper.Custom.Height, 'f', -1, 64)
	}
	if job.Plate.IsCustom() {
		v.CustomPlate = job.Plate.Custom.String()
	}
	return v
}

// currencyLabelFor finds the currency label whose symbol is symbol.
func currencyLabelFor(symbol, fallback string) string {
	for _, c := range model.Currencies {
		if model.CurrencySymbol(c) == symbol {
			return c
		}
	}
	return fallback
}

// jobForm holds the input widgets of the Job tab.
type jobForm struct {
	paperSelect  *widget.Select
	customWidth  *widget.Entry
	customHeight *widget.Entry
	totalUnits   *widget.Entry
	sheetWidth   *widget.Entry
	sheetHeight  *widget.Entry
	price        *widget.Entry
	plateSelect  *widget.Select
	customPlate  *widget.Entry
	colors       *widget.Entry
	printRate    *widget.Entry
	cutOps       *widget.Entry
	cutRate      *widget.Entry
	dieCut       *widget.Entry
	binding      *widget.Entry
	packing      *widget.Entry
	overhead     *widget.Entry
	margin       *widget.Slider
	marginLabel  *widget.Label
	currency     *widget.Select
}

func (f *jobForm) values() formValues {
	return formValues{
		Paper:        f.paperSelect.Selected,
		CustomWidth:  f.customWidth.Text,
		CustomHeight: f.customHeight.Text,
		TotalUnits:   f.totalUnits.Text,
		SheetWidth:   f.sheetWidth.Text,
		SheetHeight:  f.sheetHeight.Text,
		Price:        f.price.Text,
		Plate:        f.plateSelect.Selected,
		CustomPlate:  f.customPlate.Text,
		Colors:       f.colors.Text,
		PrintRate:    f.printRate.Text,
		CutOps:       f.cutOps.Text,
		CutRate:      f.cutRate.Text,
		DieCut:       f.dieCut.Text,
		Binding:      f.binding.Text,
		Packing:      f.packing.Text,
		Overhead:     f.overhead.Text,
		Margin:       f.margin.Value,
		Currency:     f.currency.Selected,
	}
}

func (f *jobForm) setValues(v formValues) {
	f.paperSelect.SetSelected(v.Paper)
	f.customWidth.SetText(v.CustomWidth)
	f.customHeight.SetText(v.CustomHeight)
	f.totalUnits.SetText(v.TotalUnits)
	f.sheetWidth.SetText(v.SheetWidth)
	f.sheetHeight.SetText(v.SheetHeight)
	f.price.SetText(v.Price)
	f.plateSelect.SetSelected(v.Plate)
	f.customPlate.SetText(v.CustomPlate)
	f.colors.SetText(v.Colors)
	f.printRate.SetText(v.PrintRate)
	f.cutOps.SetText(v.CutOps)
	f.cutRate.SetText(v.CutRate)
	f.dieCut.SetText(v.DieCut)
	f.binding.SetText(v.Binding)
	f.packing.SetText(v.Packing)
	f.overhead.SetText(v.Overhead)
	f.margin.SetValue(v.Margin)
	f.marginLabel.SetText(fmt.Sprintf("%.0f%%", v.Margin))
	f.currency.SetSelected(v.Currency)
	f.updateCustomFields()
}

// updateCustomFields enables the custom inputs only for the Custom choices.
func (f *jobForm) updateCustomFields() {
	setEnabled := func(e *widget.Entry, on bool) {
		if on {
			e.Enable()
		} else {
			e.Disable()
		}
	}
	customPaper := f.paperSelect.Selected == model.CustomPresetName
	setEnabled(f.customWidth, customPaper)
	setEnabled(f.customHeight, customPaper)
	setEnabled(f.customPlate, f.plateSelect.Selected == model.CustomPresetName)
}

// setPresetOptions refreshes the dropdowns after the inventory changed.
func (f *jobForm) setPresetOptions(inv *model.Inventory) {
	f.paperSelect.Options = inv.PaperNames()
	f.paperSelect.Refresh()
	f.plateSelect.Options = inv.PlateNames()
	f.plateSelect.Refresh()
}

// buildJobForm creates the input panel. Every change is parsed into a new
// job snapshot and triggers a recompute through applyFormEdit.
func (a *App) buildJobForm() fyne.CanvasObject {
	f := &jobForm{}
	a.form = f

	entry := func(label string) *widget.Entry {
		e := widget.NewEntry()
		e.OnChanged = func(string) { a.applyFormEdit("Change " + label) }
		return e
	}

	f.paperSelect = widget.NewSelect(a.inventory.PaperNames(), func(string) {
		f.updateCustomFields()
		a.applyFormEdit("Change Paper Size")
	})
	f.customWidth = entry("Unit Width")
	f.customHeight = entry("Unit Height")
	f.totalUnits = entry("Total Units")
	f.sheetWidth = entry("Sheet Width")
	f.sheetHeight = entry("Sheet Height")
	f.price = entry("Price per Sheet")

	f.plateSelect = widget.NewSelect(a.inventory.PlateNames(), func(string) {
		f.updateCustomFields()
		a.applyFormEdit("Change Plate Type")
	})
	f.customPlate = entry("Plate Cost")
	f.colors = entry("Colors")
	f.printRate = entry("Print Rate")
	f.cutOps = entry("Cutting Ops")
	f.cutRate = entry("Cut Rate")
	f.dieCut = entry("Die-Cut Cost")
	f.binding = entry("Binding Rate")
	f.packing = entry("Packing Rate")
	f.overhead = entry("Overhead")

	f.marginLabel = widget.NewLabel("")
	f.margin = widget.NewSlider(0, 100)
	f.margin.Step = 1
	f.margin.OnChanged = func(v float64) {
		f.marginLabel.SetText(fmt.Sprintf("%.0f%%", v))
	}
	f.margin.OnChangeEnded = func(float64) { a.applyFormEdit("Change Margin") }

	f.currency = widget.NewSelect(model.Currencies, func(string) {
		a.applyFormEdit("Change Currency")
	})

	a.syncForm()

	sym := func(label string) string {
		return fmt.Sprintf("%s (%s)", label, model.CurrencySymbol(f.currency.Selected))
	}

	paperCard := widget.NewCard("1. Paper & Material", "", widget.NewForm(
		widget.NewFormItem("Paper Size", f.paperSelect),
		widget.NewFormItem("Unit Width (in)", f.customWidth),
		widget.NewFormItem("Unit Height (in)", f.customHeight),
		widget.NewFormItem("Total Units", f.totalUnits),
		widget.NewFormItem("Sheet Width (in)", f.sheetWidth),
		widget.NewFormItem("Sheet Height (in)", f.sheetHeight),
		widget.NewFormItem(sym("Price per Sheet"), f.price),
	))

	printCard := widget.NewCard("2. Printing & Plates", "", widget.NewForm(
		widget.NewFormItem("Plate Type", container.NewBorder(nil, nil, nil,
			newInfoButton("Plate cost is charged once per color"), f.plateSelect)),
		widget.NewFormItem("Custom Plate Cost", f.customPlate),
		widget.NewFormItem("Number of Colors", f.colors),
		widget.NewFormItem("Print Rate/Color/Sheet", f.printRate),
	))

	finishCard := widget.NewCard("3. Finishing", "", widget.NewForm(
		widget.NewFormItem("Cutting Ops", f.cutOps),
		widget.NewFormItem("Cost per Operation", f.cutRate),
		widget.NewFormItem("Die-Cutting Fixed Cost", f.dieCut),
		widget.NewFormItem("Binding per Unit", f.binding),
		widget.NewFormItem("Packing per Sheet", f.packing),
	))

	overheadCard := widget.NewCard("4. Overheads & Margin", "", widget.NewForm(
		widget.NewFormItem("Fixed Overhead", f.overhead),
		widget.NewFormItem("Profit Margin", container.NewBorder(nil, nil, nil, f.marginLabel, f.margin)),
		widget.NewFormItem("Currency", f.currency),
	))

	return container.NewVScroll(container.NewVBox(paperCard, printCard, finishCard, overheadCard))
}

// syncForm pushes a.job into the widgets without recording history.
func (a *App) syncForm() {
	if a.form == nil {
		return
	}
	a.syncing = true
	defer func() { a.syncing = false }()
	a.form.setValues(valuesFromJob(a.job, currencyLabelFor(a.job.Currency, a.config.Currency)))
}

// applyFormEdit records the current job for undo, replaces it with the
// parsed form and recomputes. Parse errors leave the job untouched.
func (a *App) applyFormEdit(label string) {
	if a.syncing || a.form == nil {
		return
	}
	job, err := jobFromValues(a.form.values())
	if err != nil {
		a.showInputError(err)
		return
	}
	a.history.Push(MakeSnapshot(a.job, label))
	a.job = job
	a.recompute()
}
