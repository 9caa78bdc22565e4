package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/PrintCost/internal/model"
)

// DefaultInventoryPath returns ~/.printcost/inventory.json.
func DefaultInventoryPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".printcost", "inventory.json"), nil
}

// SaveInventory writes the preset tables to path.
func SaveInventory(path string, inv model.Inventory) error {
	return writeJSON(path, inv)
}

// LoadInventory reads the preset tables from path. A missing file is
// seeded with DefaultInventory, which is written out and returned.
func LoadInventory(path string) (model.Inventory, error) {
	var inv model.Inventory
	err := readJSON(path, &inv)
	if os.IsNotExist(err) {
		inv = model.DefaultInventory()
		return inv, SaveInventory(path, inv)
	}
	if err != nil {
		return model.Inventory{}, err
	}
	return inv, nil
}

// LoadOrCreateInventory loads the inventory at DefaultInventoryPath and
// also returns that path for later saves.
func LoadOrCreateInventory() (model.Inventory, string, error) {
	path, err := DefaultInventoryPath()
	if err != nil {
		return model.DefaultInventory(), "", err
	}
	inv, err := LoadInventory(path)
	return inv, path, err
}

// ImportInventory appends the presets of another inventory file to
// existing. Presets whose ID is already present are skipped.
func ImportInventory(path string, existing model.Inventory) (model.Inventory, error) {
	var imported model.Inventory
	if err := readJSON(path, &imported); err != nil {
		return existing, fmt.Errorf("failed to import presets: %w", err)
	}
	existing.Papers = appendNewIDs(existing.Papers, imported.Papers, func(p model.PaperPreset) string { return p.ID })
	existing.Plates = appendNewIDs(existing.Plates, imported.Plates, func(p model.PlatePreset) string { return p.ID })
	return existing, nil
}

func appendNewIDs[T any](dst, src []T, id func(T) string) []T {
	seen := make(map[string]bool, len(dst)+len(src))
	for _, item := range dst {
		seen[id(item)] = true
	}
	for _, item := range src {
		if k := id(item); !seen[k] {
			seen[k] = true
			dst = append(dst, item)
		}
	}
	return dst
}
