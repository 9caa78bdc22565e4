package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/piwi3910/PrintCost/internal/model"
)

// parseDims parses "WxH" (also "W*H" or "W,H") into Dimensions.
func parseDims(s string) (model.Dimensions, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	var w, h string
	var ok bool
	for _, sep := range []string{"x", "*", ","} {
		if w, h, ok = strings.Cut(s, sep); ok {
			break
		}
	}
	if !ok {
		return model.Dimensions{}, fmt.Errorf("%w: %q is not WIDTHxHEIGHT", model.ErrInvalidInput, s)
	}
	width, err := strconv.ParseFloat(strings.TrimSpace(w), 64)
	if err != nil {
		return model.Dimensions{}, fmt.Errorf("%w: bad width in %q", model.ErrInvalidInput, s)
	}
	height, err := strconv.ParseFloat(strings.TrimSpace(h), 64)
	if err != nil {
		return model.Dimensions{}, fmt.Errorf("%w: bad height in %q", model.ErrInvalidInput, s)
	}
	d := model.Dim(width, height)
	if !d.Positive() {
		return model.Dimensions{}, fmt.Errorf("%w: %q must be positive", model.ErrInvalidInput, s)
	}
	return d, nil
}

// dimsFlag is a flag.Value for WxH sizes. set records whether the flag
// was given on the command line.
type dimsFlag struct {
	dims *model.Dimensions
	set  bool
}

func (f *dimsFlag) String() string {
	if f == nil || f.dims == nil {
		return ""
	}
	return fmt.Sprintf("%gx%g", f.dims.Width, f.dims.Height)
}

func (f *dimsFlag) Set(s string) error {
	d, err := parseDims(s)
	if err != nil {
		return err
	}
	*f.dims = d
	f.set = true
	return nil
}

// decimalFlag is a flag.Value for exact money amounts.
type decimalFlag struct {
	value *decimal.Decimal
	set   bool
}

func (f *decimalFlag) String() string {
	if f == nil || f.value == nil {
		return ""
	}
	return f.value.String()
}

func (f *decimalFlag) Set(s string) error {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("%w: %q is not an amount", model.ErrInvalidInput, s)
	}
	*f.value = d
	f.set = true
	return nil
}
