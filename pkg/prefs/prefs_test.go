package prefs

import (
	"testing"

	"tableflip.dev/gardencal/pkg/store"
)

func TestUnitsDefaultAndValidate(t *testing.T) {
	st := store.NewMemory()
	p := New(st, nil)
	if p.TemperatureUnit() != Celsius || p.PrecipitationUnit() != Millimetres || p.Language() != DefaultLanguage {
		t.Fatalf("defaults = %+v", p.Load())
	}

	if err := p.SetTemperatureUnit("K"); err == nil {
		t.Fatal("accepted kelvin")
	}
	if err := p.SetPrecipitationUnit("cm"); err == nil {
		t.Fatal("accepted cm")
	}
	if err := p.SetTemperatureUnit(Fahrenheit); err != nil {
		t.Fatal(err)
	}
	if err := p.SetPrecipitationUnit(Inches); err != nil {
		t.Fatal(err)
	}
	if err := p.SetLanguage(" ET "); err != nil {
		t.Fatal(err)
	}
	if p.TemperatureUnit() != Fahrenheit || p.PrecipitationUnit() != Inches || p.Language() != "et" {
		t.Fatalf("after set = %+v", p.Load())
	}
}

func TestGarbageFallsBack(t *testing.T) {
	st := store.NewMemory()
	for key, value := range map[string]string{
		store.KeyTempUnit:     "kelvin",
		store.KeyPrecipUnit:   `{"x":1}`,
		store.KeyLastLocation: "{broken",
	} {
		if err := st.Set(key, value); err != nil {
			t.Fatal(err)
		}
	}
	p := New(st, nil)
	if p.TemperatureUnit() != Celsius || p.PrecipitationUnit() != Millimetres {
		t.Fatalf("garbage not ignored: %+v", p.Load())
	}
	if _, ok := p.LastLocation(); ok {
		t.Fatal("malformed location returned")
	}
}

func TestLocationShapes(t *testing.T) {
	cases := []struct {
		name   string
		raw    string
		wantOK bool
		lat    float64
		lon    float64
	}{
		{name: "numbers", raw: `{"type":"coords","lat":59.43,"lon":24.75}`, wantOK: true, lat: 59.43, lon: 24.75},
		{name: "strings", raw: `{"type":"coords","lat":"59.43","lon":" 24.75","locationName":"Tallinn"}`, wantOK: true, lat: 59.43, lon: 24.75},
		{name: "query", raw: `{"type":"query","value":"Tartu"}`},
		{name: "null island", raw: `{"type":"coords","lat":0,"lon":0}`},
		{name: "equator", raw: `{"type":"coords","lat":0,"lon":24.75}`, wantOK: true, lon: 24.75},
		{name: "prime meridian", raw: `{"type":"coords","lat":51.48,"lon":0}`, wantOK: true, lat: 51.48},
		{name: "bad string", raw: `{"type":"coords","lat":"north","lon":1}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st := store.NewMemory()
			if err := st.Set(store.KeyLastLocation, tc.raw); err != nil {
				t.Fatal(err)
			}
			lat, lon, ok := New(st, nil).LastCoordinates()
			if ok != tc.wantOK || lat != tc.lat || lon != tc.lon {
				t.Fatalf("LastCoordinates = %v %v %v", lat, lon, ok)
			}
		})
	}
}

func TestSaveLocation(t *testing.T) {
	p := New(store.NewMemory(), nil)
	if err := p.SaveLocation(Query("  ")); err == nil {
		t.Fatal("accepted empty query")
	}
	if err := p.SaveLocation(Location{Type: "gps"}); err == nil {
		t.Fatal("accepted unknown type")
	}
	if err := p.SaveLocation(Coords(58.38, 26.72, "Tartu")); err != nil {
		t.Fatal(err)
	}
	loc, ok := p.LastLocation()
	if !ok || loc.Name != "Tartu" || float64(loc.Lat) != 58.38 {
		t.Fatalf("location = %+v %v", loc, ok)
	}
	if err := p.SaveLocation(Query("Tartu")); err != nil {
		t.Fatal(err)
	}
	if _, _, ok := p.LastCoordinates(); ok {
		t.Fatal("query location produced coordinates")
	}
}
