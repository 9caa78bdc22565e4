package model

import "errors"

var (
	// ErrInfeasibleFit means the unit does not fit on the sheet in either orientation.
	ErrInfeasibleFit = errors.New("unit is larger than the sheet in both orientations")

	// ErrUnknownPreset is returned when a preset name is not in the inventory.
	ErrUnknownPreset = errors.New("unknown preset")

	// ErrInvalidInput is returned by JobSpec.Validate.
	ErrInvalidInput = errors.New("invalid input")
)
