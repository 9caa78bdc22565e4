package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/piwi3910/PrintCost/internal/model"
)

func TestSaveAndLoadInventory(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "inventory.json")

	inv := model.DefaultInventory()
	inv.Papers = append(inv.Papers, model.NewPaperPreset("Postcard", 4, 6))

	if err := SaveInventory(path, inv); err != nil {
		t.Fatalf("SaveInventory failed: %v", err)
	}

	loaded, err := LoadInventory(path)
	if err != nil {
		t.Fatalf("LoadInventory failed: %v", err)
	}

	if len(loaded.Papers) != len(inv.Papers) {
		t.Errorf("expected %d papers, got %d", len(inv.Papers), len(loaded.Papers))
	}
	if len(loaded.Plates) != len(inv.Plates) {
		t.Errorf("expected %d plates, got %d", len(inv.Plates), len(loaded.Plates))
	}

	postcard := loaded.FindPaperByName("Postcard")
	if postcard == nil {
		t.Fatal("expected to find 'Postcard' after reload")
	}
	if postcard.Width != 4 || postcard.Height != 6 {
		t.Errorf("expected 4x6, got %gx%g", postcard.Width, postcard.Height)
	}

	solna := loaded.FindPlateByName("Solna")
	if solna == nil {
		t.Fatal("expected to find 'Solna' after reload")
	}
	if !solna.BaseCost.Equal(decimal.NewFromInt(500)) {
		t.Errorf("expected Solna base cost 500, got %s", solna.BaseCost)
	}
}

func TestLoadInventoryCreatesDefault(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nonexistent", "inventory.json")

	inv, err := LoadInventory(path)
	if err != nil {
		t.Fatalf("LoadInventory failed: %v", err)
	}

	// Should have created defaults
	if len(inv.Papers) == 0 {
		t.Error("expected default papers, got none")
	}
	if len(inv.Plates) == 0 {
		t.Error("expected default plates, got none")
	}

	// Should have written the file
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("expected default inventory file to be created")
	}
}

func TestImportInventory(t *testing.T) {
	tmpDir := t.TempDir()

	existing := model.Inventory{
		Papers: []model.PaperPreset{
			{ID: "paper-001", Name: "A4", Width: 8.27, Height: 11.69},
		},
		Plates: []model.PlatePreset{
			{ID: "plate-001", Name: "Rota", BaseCost: decimal.NewFromInt(250)},
		},
	}

	imported := model.Inventory{
		Papers: []model.PaperPreset{
			{ID: "paper-001", Name: "A4 duplicate", Width: 8.27, Height: 11.69}, // same ID, should be skipped
			{ID: "paper-002", Name: "Letter", Width: 8.5, Height: 11},           // new, should be added
		},
		Plates: []model.PlatePreset{
			{ID: "plate-002", Name: "Heidelberg", BaseCost: decimal.NewFromInt(750)}, // new
		},
	}

	// Write import file
	importPath := filepath.Join(tmpDir, "import.json")
	data, _ := json.MarshalIndent(imported, "", "  ")
	if err := os.WriteFile(importPath, data, 0644); err != nil {
		t.Fatalf("failed to write import file: %v", err)
	}

	merged, err := ImportInventory(importPath, existing)
	if err != nil {
		t.Fatalf("ImportInventory failed: %v", err)
	}

	if len(merged.Papers) != 2 {
		t.Errorf("expected 2 papers after merge, got %d", len(merged.Papers))
	}
	if merged.Papers[0].Name != "A4" {
		t.Errorf("expected first paper to be 'A4', got %q", merged.Papers[0].Name)
	}
	if merged.Papers[1].Name != "Letter" {
		t.Errorf("expected second paper to be 'Letter', got %q", merged.Papers[1].Name)
	}

	if len(merged.Plates) != 2 {
		t.Errorf("expected 2 plates after merge, got %d", len(merged.Plates))
	}
}

func TestImportInventoryMissingFile(t *testing.T) {
	existing := model.DefaultInventory()

	merged, err := ImportInventory(filepath.Join(t.TempDir(), "nope.json"), existing)
	if err == nil {
		t.Fatal("expected error for missing import file")
	}
	if len(merged.Papers) != len(existing.Papers) {
		t.Errorf("expected existing inventory returned unchanged on error")
	}
}
