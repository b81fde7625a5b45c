// Package prefs stores the user's display preferences and the last location
// they looked up.
package prefs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"tableflip.dev/gardencal/pkg/logging"
	"tableflip.dev/gardencal/pkg/store"
)

const (
	Celsius    = "C"
	Fahrenheit = "F"

	Millimetres = "mm"
	Inches      = "in"

	DefaultLanguage = "en"
)

// LocationType tells how a location was given.
type LocationType string

const (
	LocationCoords LocationType = "coords"
	LocationQuery  LocationType = "query"
)

// Coordinate is a degree value that decodes from a JSON number or a numeric
// string.
type Coordinate float64

func (c *Coordinate) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*c = 0
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("prefs: coordinate %q: %w", s, err)
		}
		*c = Coordinate(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*c = Coordinate(v)
	return nil
}

// Location is the last place the user asked about.
type Location struct {
	Type  LocationType `json:"type"`
	Lat   Coordinate   `json:"lat,omitempty"`
	Lon   Coordinate   `json:"lon,omitempty"`
	Name  string       `json:"locationName,omitempty"`
	Query string       `json:"value,omitempty"`
}

// Coords builds a coordinate location.
func Coords(lat, lon float64, name string) Location {
	return Location{Type: LocationCoords, Lat: Coordinate(lat), Lon: Coordinate(lon), Name: name}
}

// Query builds a free-text location.
func Query(q string) Location {
	return Location{Type: LocationQuery, Query: strings.TrimSpace(q)}
}

// Preferences reads and writes preferences in the store. Invalid values are
// rejected on write; unreadable stored values fall back to the defaults.
type Preferences struct {
	store store.Store
	log   logging.Logger
}

func New(st store.Store, log logging.Logger) *Preferences {
	return &Preferences{store: st, log: logging.OrNoop(log)}
}

func (p *Preferences) raw(key string) string {
	v, _ := p.store.Get(key)
	return strings.TrimSpace(v)
}

// TemperatureUnit is C or F, C by default.
func (p *Preferences) TemperatureUnit() string {
	switch v := p.raw(store.KeyTempUnit); v {
	case Celsius, Fahrenheit:
		return v
	}
	return Celsius
}

func (p *Preferences) SetTemperatureUnit(unit string) error {
	if unit != Celsius && unit != Fahrenheit {
		return fmt.Errorf("prefs: temperature unit must be %s or %s, got %q", Celsius, Fahrenheit, unit)
	}
	return p.store.Set(store.KeyTempUnit, unit)
}

// PrecipitationUnit is mm or in, mm by default.
func (p *Preferences) PrecipitationUnit() string {
	switch v := p.raw(store.KeyPrecipUnit); v {
	case Millimetres, Inches:
		return v
	}
	return Millimetres
}

func (p *Preferences) SetPrecipitationUnit(unit string) error {
	if unit != Millimetres && unit != Inches {
		return fmt.Errorf("prefs: precipitation unit must be %s or %s, got %q", Millimetres, Inches, unit)
	}
	return p.store.Set(store.KeyPrecipUnit, unit)
}

// Language is the label language, en by default.
func (p *Preferences) Language() string {
	if v := p.raw(store.KeyLanguage); v != "" {
		return v
	}
	return DefaultLanguage
}

func (p *Preferences) SetLanguage(lang string) error {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		return fmt.Errorf("prefs: language must not be empty")
	}
	return p.store.Set(store.KeyLanguage, lang)
}

// LastLocation returns the stored location.
func (p *Preferences) LastLocation() (Location, bool) {
	var loc Location
	if !store.LoadJSON(p.store, store.KeyLastLocation, &loc) {
		if p.raw(store.KeyLastLocation) != "" {
			p.log.Warn("ignoring malformed last location", "key", store.KeyLastLocation)
		}
		return Location{}, false
	}
	switch loc.Type {
	case LocationCoords, LocationQuery:
		return loc, true
	}
	return Location{}, false
}

// SaveLocation replaces the stored location.
func (p *Preferences) SaveLocation(loc Location) error {
	switch loc.Type {
	case LocationCoords:
	case LocationQuery:
		if loc.Query == "" {
			return fmt.Errorf("prefs: empty location query")
		}
	default:
		return fmt.Errorf("prefs: unknown location type %q", loc.Type)
	}
	return store.SaveJSON(p.store, store.KeyLastLocation, loc)
}

// LastCoordinates returns the stored coordinates. Query locations and the
// exact 0,0 pair count as unknown. Points on the equator or the prime
// meridian are kept.
func (p *Preferences) LastCoordinates() (lat, lon float64, ok bool) {
	loc, ok := p.LastLocation()
	if !ok || loc.Type != LocationCoords || (loc.Lat == 0 && loc.Lon == 0) {
		return 0, 0, false
	}
	return float64(loc.Lat), float64(loc.Lon), true
}

// Snapshot is every preference at once.
type Snapshot struct {
	TemperatureUnit   string    `json:"temperatureUnit"`
	PrecipitationUnit string    `json:"precipitationUnit"`
	Language          string    `json:"language"`
	LastLocation      *Location `json:"lastLocation,omitempty"`
}

// Load returns all preferences.
func (p *Preferences) Load() Snapshot {
	s := Snapshot{
		TemperatureUnit:   p.TemperatureUnit(),
		PrecipitationUnit: p.PrecipitationUnit(),
		Language:          p.Language(),
	}
	if loc, ok := p.LastLocation(); ok {
		s.LastLocation = &loc
	}
	return s
}
