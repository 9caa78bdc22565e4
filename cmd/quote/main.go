// Command quote prices one printing job from the command line.
//
//	quote -paper A5 -units 5000 -colors 4 -plate Solna
//	quote -unit 8x10 -sheet 25x36 -units 1000 -out ./quotes
//
// Unset flags take the defaults from ~/.printcost/config.json and the
// PRINTCOST_* environment. The exit code is 2 when the unit does not fit
// on the sheet and 1 for any other error.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/piwi3910/PrintCost/internal/engine"
	"github.com/piwi3910/PrintCost/internal/export"
	"github.com/piwi3910/PrintCost/internal/logging"
	"github.com/piwi3910/PrintCost/internal/model"
	"github.com/piwi3910/PrintCost/internal/project"
)

const (
	exitOK         = 0
	exitError      = 1
	exitInfeasible = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// options holds everything parsed from the command line besides the job.
type options struct {
	configPath string
	presets    string
	csvPath    string
	xlsxPath   string
	pdfPath    string
	outDir     string
	asJSON     bool
	logLevel   string
}

// run parses args, quotes the job and writes the requested outputs.
func run(args []string, stdout, stderr io.Writer) int {
	// Config first, so that flag defaults reflect it
	configPath := project.DefaultConfigPath()
	for i, a := range args {
		if (a == "-config" || a == "--config") && i+1 < len(args) {
			configPath = args[i+1]
		} else if v, ok := strings.CutPrefix(a, "-config="); ok {
			configPath = v
		} else if v, ok := strings.CutPrefix(a, "--config="); ok {
			configPath = v
		}
	}
	cfg, err := project.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}

	job, opts, err := parseArgs(args, cfg, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintln(stderr, err)
		return exitError
	}

	level := cfg.LogLevel
	if opts.logLevel != "" {
		level = opts.logLevel
	}
	logger, err := logging.New(level)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}
	defer func() { _ = logger.Sync() }()

	inv, err := loadPresets(opts.presets)
	if err != nil {
		logger.Error("failed to load presets", zap.Error(err))
		return exitError
	}

	if err := job.Validate(); err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}
	q, err := engine.Quote(job, inv)
	if errors.Is(err, model.ErrInfeasibleFit) {
		fmt.Fprintln(stderr, "Error: Unit size is larger than the sheet size.")
		return exitInfeasible
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}

	if opts.asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(q); err != nil {
			fmt.Fprintln(stderr, err)
			return exitError
		}
	} else if err := printReport(stdout, q); err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}

	for _, out := range outputs(opts, q) {
		if err := out.write(out.path, q); err != nil {
			logger.Error("export failed", zap.String("path", out.path), zap.Error(err))
			return exitError
		}
		logger.Info("quote exported", zap.String("path", out.path))
	}
	return exitOK
}

// parseArgs builds the job from cfg defaults overridden by flags.
func parseArgs(args []string, cfg model.AppConfig, stderr io.Writer) (model.JobSpec, options, error) {
	job := cfg.NewJobSpec()
	var opts options

	fs := flag.NewFlagSet("quote", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.configPath, "config", project.DefaultConfigPath(), "path to config.json")
	fs.StringVar(&opts.presets, "presets", "", "path to a preset inventory JSON (default: user inventory)")
	fs.StringVar(&opts.csvPath, "csv", "", "write the report as CSV to this path")
	fs.StringVar(&opts.xlsxPath, "xlsx", "", "write the report as Excel to this path")
	fs.StringVar(&opts.pdfPath, "pdf", "", "write the quotation PDF to this path")
	fs.StringVar(&opts.outDir, "out", "", "write CSV, Excel and PDF into this directory as quote_<paper>_<units>.*")
	fs.BoolVar(&opts.asJSON, "json", false, "print the quotation as JSON instead of a table")
	fs.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	paper := fs.String("paper", cfg.DefaultPaper, "paper size preset")
	var customUnit model.Dimensions
	unit := &dimsFlag{dims: &customUnit}
	fs.Var(unit, "unit", "custom unit size WxH, overrides -paper")
	fs.Var(&dimsFlag{dims: &job.Sheet}, "sheet", "parent sheet size WxH")
	fs.IntVar(&job.TotalUnits, "units", job.TotalUnits, "total units to print")

	plate := fs.String("plate", cfg.DefaultPlate, "plate type preset")
	var customPlate decimal.Decimal
	plateCost := &decimalFlag{value: &customPlate}
	fs.Var(plateCost, "plate-cost", "custom plate base cost per color, overrides -plate")

	fs.Var(&decimalFlag{value: &job.PricePerSheet}, "price", "price per parent sheet")
	fs.IntVar(&job.NumColors, "colors", job.NumColors, "number of colors")
	fs.Var(&decimalFlag{value: &job.PrintRatePerColor}, "print-rate", "print rate per color per sheet")
	fs.IntVar(&job.CutOps, "cut-ops", job.CutOps, "number of cutting operations")
	fs.Var(&decimalFlag{value: &job.CutRate}, "cut-rate", "cost per cutting operation")
	fs.Var(&decimalFlag{value: &job.DieCutCost}, "die-cut", "die-cutting fixed cost")
	fs.Var(&decimalFlag{value: &job.BindingRatePerUnit}, "binding", "binding cost per unit")
	fs.Var(&decimalFlag{value: &job.PackingRatePerSheet}, "packing", "packing cost per sheet")
	fs.Var(&decimalFlag{value: &job.OverheadFixed}, "overhead", "fixed overhead")
	fs.Var(&decimalFlag{value: &job.MarginPercent}, "margin", "profit margin percent (0-100)")
	fs.StringVar(&job.Currency, "currency", job.Currency, "currency symbol for display")

	if err := fs.Parse(args); err != nil {
		return job, opts, err
	}
	if fs.NArg() > 0 {
		return job, opts, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	job.Paper = model.PresetPaper(*paper)
	if unit.set {
		job.Paper = model.CustomPaper(customUnit.Width, customUnit.Height)
	}
	job.Plate = model.PresetPlate(*plate)
	if plateCost.set {
		job.Plate = model.CustomPlate(customPlate)
	}
	return job, opts, nil
}

func loadPresets(path string) (model.Inventory, error) {
	if path != "" {
		return project.LoadInventory(path)
	}
	inv, _, err := project.LoadOrCreateInventory()
	return inv, err
}

type output struct {
	path  string
	write func(string, engine.Quotation) error
}

// outputs lists the export files requested by opts.
func outputs(opts options, q engine.Quotation) []output {
	var outs []output
	add := func(path string, write func(string, engine.Quotation) error) {
		if path != "" {
			outs = append(outs, output{path: path, write: write})
		}
	}
	add(opts.csvPath, export.ExportCSV)
	add(opts.xlsxPath, export.ExportXLSX)
	add(opts.pdfPath, export.ExportPDF)
	if opts.outDir != "" {
		add(filepath.Join(opts.outDir, export.QuoteFilename(q, "csv")), export.ExportCSV)
		add(filepath.Join(opts.outDir, export.QuoteFilename(q, "xlsx")), export.ExportXLSX)
		add(filepath.Join(opts.outDir, export.QuoteFilename(q, "pdf")), export.ExportPDF)
	}
	return outs
}

// printReport writes the fit summary, the component table and the totals.
func printReport(w io.Writer, q engine.Quotation) error {
	sym := q.Spec.Currency
	b := q.Breakdown

	fmt.Fprintf(w, "Result: %s\n\n", engine.FitSummary(q.Fit))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Cost Category\tFormula / Details\tAmount\t")
	for _, row := range engine.ReportRows(q) {
		fmt.Fprintf(tw, "%s\t%s\t%s\t\n", row.Category, row.Formula, model.FormatMoney(sym, row.Amount))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	perUnit := "n/a"
	if b.CostPerUnitDefined {
		perUnit = model.FormatMoney(sym, b.CostPerUnit)
	}
	_, err := fmt.Fprintf(w, "\nTotal Job Cost: %s\nCost Per Unit:  %s\n", model.FormatMoney(sym, b.FinalJobCost), perUnit)
	return err
}
