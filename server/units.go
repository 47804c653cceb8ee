package server

import (
	"fmt"
	"math"
)

// Unit preferences accepted from the form.
const (
	UnitsKilometers = "kilometers"
	UnitsMiles      = "miles"
)

const (
	metersPerMile = 1609.344
	feetPerMeter  = 3.28084
)

// FormatDistance renders meters as kilometers or miles with one decimal.
func FormatDistance(meters float64, units string) string {
	if units == UnitsMiles {
		return fmt.Sprintf("%.1f mi", meters/metersPerMile)
	}
	return fmt.Sprintf("%.1f km", meters/1000)
}

// FormatElevation renders meters as meters or feet, rounded to the nearest
// integer.
func FormatElevation(meters float64, units string) string {
	if units == UnitsMiles {
		return fmt.Sprintf("%d ft", int(math.Round(meters*feetPerMeter)))
	}
	return fmt.Sprintf("%d m", int(math.Round(meters)))
}

// FormatDuration renders seconds as "3h 25m", or "25m" under an hour.
func FormatDuration(seconds int64) string {
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

func normalizeUnits(units string) string {
	if units == UnitsMiles {
		return UnitsMiles
	}
	return UnitsKilometers
}
