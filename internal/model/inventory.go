package model

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CustomPresetName is the display name of the user-entered variant.
const CustomPresetName = "Custom"

// PaperPreset is a named unit footprint (finished piece size).
type PaperPreset struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewPaperPreset creates a new PaperPreset with a generated ID.
func NewPaperPreset(name string, width, height float64) PaperPreset {
	return PaperPreset{
		ID:     uuid.New().String()[:8],
		Name:   name,
		Width:  width,
		Height: height,
	}
}

// Dimensions returns the preset footprint.
func (p PaperPreset) Dimensions() Dimensions {
	return Dimensions{Width: p.Width, Height: p.Height}
}

// PlatePreset is a named printing plate type with its per-color base cost.
type PlatePreset struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	BaseCost decimal.Decimal `json:"base_cost"`
}

// NewPlatePreset creates a new PlatePreset with a generated ID.
func NewPlatePreset(name string, baseCost decimal.Decimal) PlatePreset {
	return PlatePreset{
		ID:       uuid.New().String()[:8],
		Name:     name,
		BaseCost: baseCost,
	}
}

// Inventory holds the paper-size and plate-type preset tables.
type Inventory struct {
	Papers []PaperPreset `json:"papers"`
	Plates []PlatePreset `json:"plates"`
}

// DefaultInventory returns the built-in preset tables.
func DefaultInventory() Inventory {
	return Inventory{
		Papers: []PaperPreset{
			NewPaperPreset("A4", 8.27, 11.69),
			NewPaperPreset("A5", 5.83, 8.27),
			NewPaperPreset("Legal", 8.5, 14.0),
			NewPaperPreset("Envelope (DL)", 4.33, 8.66),
			NewPaperPreset("Executive", 7.25, 10.5),
		},
		Plates: []PlatePreset{
			NewPlatePreset("Rota", decimal.NewFromInt(250)),
			NewPlatePreset("Solna", decimal.NewFromInt(500)),
			NewPlatePreset("GTO", decimal.NewFromInt(100)),
		},
	}
}

// FindPaperByName returns a pointer to the first paper preset with the given
// name (case-insensitive), or nil.
func (inv *Inventory) FindPaperByName(name string) *PaperPreset {
	for i := range inv.Papers {
		if strings.EqualFold(inv.Papers[i].Name, name) {
			return &inv.Papers[i]
		}
	}
	return nil
}

// FindPlateByName returns a pointer to the first plate preset with the given
// name (case-insensitive), or nil.
func (inv *Inventory) FindPlateByName(name string) *PlatePreset {
	for i := range inv.Plates {
		if strings.EqualFold(inv.Plates[i].Name, name) {
			return &inv.Plates[i]
		}
	}
	return nil
}

// PaperNames returns preset names followed by the Custom entry, for dropdowns.
func (inv *Inventory) PaperNames() []string {
	names := make([]string, 0, len(inv.Papers)+1)
	for _, p := range inv.Papers {
		names = append(names, p.Name)
	}
	return append(names, CustomPresetName)
}

// PlateNames returns preset names followed by the Custom entry, for dropdowns.
func (inv *Inventory) PlateNames() []string {
	names := make([]string, 0, len(inv.Plates)+1)
	for _, p := range inv.Plates {
		names = append(names, p.Name)
	}
	return append(names, CustomPresetName)
}

// MergePapers appends papers whose names are not already present.
// It returns the number of presets added.
func (inv *Inventory) MergePapers(papers []PaperPreset) int {
	added := 0
	for _, p := range papers {
		if inv.FindPaperByName(p.Name) != nil {
			continue
		}
		inv.Papers = append(inv.Papers, p)
		added++
	}
	return added
}

// PaperChoice selects the unit footprint: either a named preset or an
// explicit custom size. Exactly one variant is populated.
type PaperChoice struct {
	Preset string      `json:"preset,omitempty"`
	Custom *Dimensions `json:"custom,omitempty"`
}

// PresetPaper selects a paper size from the inventory by name.
func PresetPaper(name string) PaperChoice {
	return PaperChoice{Preset: name}
}

// CustomPaper selects an explicit unit size.
func CustomPaper(width, height float64) PaperChoice {
	return PaperChoice{Custom: &Dimensions{Width: width, Height: height}}
}

// IsCustom reports whether this is the custom variant.
func (c PaperChoice) IsCustom() bool {
	return c.Custom != nil
}

// Name returns the preset name, or "Custom".
func (c PaperChoice) Name() string {
	if c.IsCustom() {
		return CustomPresetName
	}
	return c.Preset
}

// Resolve returns the unit footprint for this choice.
func (c PaperChoice) Resolve(inv Inventory) (Dimensions, error) {
	if c.IsCustom() {
		if !c.Custom.Positive() {
			return Dimensions{}, fmt.Errorf("%w: custom paper size %gx%g must be positive", ErrInvalidInput, c.Custom.Width, c.Custom.Height)
		}
		return *c.Custom, nil
	}
	p := inv.FindPaperByName(c.Preset)
	if p == nil {
		return Dimensions{}, fmt.Errorf("%w: paper %q", ErrUnknownPreset, c.Preset)
	}
	return p.Dimensions(), nil
}

// PlateChoice selects the plate base cost: either a named preset or an
// explicit custom cost.
type PlateChoice struct {
	Preset string           `json:"preset,omitempty"`
	Custom *decimal.Decimal `json:"custom,omitempty"`
}

// PresetPlate selects a plate type from the inventory by name.
func PresetPlate(name string) PlateChoice {
	return PlateChoice{Preset: name}
}

// CustomPlate selects an explicit plate base cost.
func CustomPlate(baseCost decimal.Decimal) PlateChoice {
	return PlateChoice{Custom: &baseCost}
}

// IsCustom reports whether this is the custom variant.
func (c PlateChoice) IsCustom() bool {
	return c.Custom != nil
}

// Name returns the preset name, or "Custom".
func (c PlateChoice) Name() string {
	if c.IsCustom() {
		return CustomPresetName
	}
	return c.Preset
}

// Resolve returns the plate base cost for this choice.
func (c PlateChoice) Resolve(inv Inventory) (decimal.Decimal, error) {
	if c.IsCustom() {
		if c.Custom.IsNegative() {
			return decimal.Zero, fmt.Errorf("%w: custom plate cost %s is negative", ErrInvalidInput, c.Custom)
		}
		return *c.Custom, nil
	}
	p := inv.FindPlateByName(c.Preset)
	if p == nil {
		return decimal.Zero, fmt.Errorf("%w: plate %q", ErrUnknownPreset, c.Preset)
	}
	return p.BaseCost, nil
}
