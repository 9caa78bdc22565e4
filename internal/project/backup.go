package project

import (
	"errors"
	"fmt"
	"time"

	"github.com/piwi3910/PrintCost/internal/model"
)

// BackupVersion is written into every backup; files without one are rejected.
const BackupVersion = "1.0.0"

// ErrNotBackup reports a JSON file that lacks the backup version marker.
var ErrNotBackup = errors.New("invalid backup file: missing version field")

// BackupData bundles the preferences and the preset tables in one file.
type BackupData struct {
	Version   string          `json:"version"`
	CreatedAt string          `json:"created_at"`
	Config    model.AppConfig `json:"config"`
	Inventory model.Inventory `json:"inventory"`
}

// ExportAllData writes config and inv to a timestamped backup file.
func ExportAllData(path string, config model.AppConfig, inv model.Inventory) error {
	backup := BackupData{
		Version:   BackupVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Config:    config,
		Inventory: inv,
	}
	if err := writeJSON(path, backup); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}
	return nil
}

// ImportAllData reads a backup written by ExportAllData. Preferences the
// file predates are filled from DefaultAppConfig. Nothing is applied; the
// caller decides what to replace.
func ImportAllData(path string) (BackupData, error) {
	backup := BackupData{Config: model.DefaultAppConfig()}
	if err := readJSON(path, &backup); err != nil {
		return BackupData{}, fmt.Errorf("failed to read backup: %w", err)
	}
	if backup.Version == "" {
		return BackupData{}, ErrNotBackup
	}
	return backup, nil
}
