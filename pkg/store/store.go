// Package store provides the device-local key/value persistence used by every
// other gardencal component. Values are serialized text; callers own their
// encoding.
package store

import (
	"context"
	"encoding/json"
	"strings"
)

// Keys under the namespace. The namespace itself is applied by WithNamespace.
const (
	KeySelectedItems       = "selected_items"
	KeyCustomEntries       = "custom_entries"
	KeyClimateZoneOverride = "climate_zone_override"
	KeyLastLocation        = "last_location"
	KeyTempUnit            = "temp_unit"
	KeyPrecipUnit          = "precip_unit"
	KeyLanguage            = "language"
	KeyJournal             = "journal_data"
)

// Store is a flat key to serialized-value store.
type Store interface {
	// Get returns the value and whether it was present.
	Get(key string) (string, bool)
	Set(key, value string) error
	// Remove deletes key. Removing a missing key is not an error.
	Remove(key string) error
	Keys(ctx context.Context) []string
}

// LoadJSON decodes the value under key into v. It reports false when the key
// is missing, empty or does not decode; v may be partially written in the
// last case so callers should reset it to their default.
func LoadJSON(s Store, key string, v any) bool {
	raw, ok := s.Get(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return false
	}
	return json.Unmarshal([]byte(raw), v) == nil
}

// SaveJSON encodes v and stores it under key.
func SaveJSON(s Store, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Set(key, string(b))
}
