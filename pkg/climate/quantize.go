package climate

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidCoordinate is returned for coordinate input that is not a finite
// number.
var ErrInvalidCoordinate = errors.New("climate: invalid coordinate")

// Quantize snaps x onto the quarter-degree lattice the grid is keyed by
// (k+0.25 or k+0.75) and formats it with two decimals. The fractional part
// is taken after flooring, so negative values carry the same way positive
// ones do.
func Quantize(x float64) string {
	return strconv.FormatFloat(quantize(x), 'f', 2, 64)
}

func quantize(x float64) float64 {
	whole := math.Floor(x)
	f := x - whole
	switch {
	case f < 0.375:
		return whole + 0.25
	case f < 0.875:
		return whole + 0.75
	default:
		return whole + 1.25
	}
}

// Key is the grid key for a coordinate pair.
func Key(lat, lon float64) string {
	return Quantize(lat) + " " + Quantize(lon)
}

// ParseCoordinate parses a decimal coordinate.
func ParseCoordinate(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCoordinate, raw)
	}
	return v, nil
}

// ParsePair parses "lat lon" or "lat,lon".
func ParsePair(raw string) (lat, lon float64, err error) {
	fields := strings.Fields(strings.ReplaceAll(raw, ",", " "))
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidCoordinate, raw)
	}
	if lat, err = ParseCoordinate(fields[0]); err != nil {
		return 0, 0, err
	}
	if lon, err = ParseCoordinate(fields[1]); err != nil {
		return 0, 0, err
	}
	return lat, lon, nil
}
