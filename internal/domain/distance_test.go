package domain

import (
	"strings"
	"testing"
)

func TestNewDistanceConvertsUnits(t *testing.T) {
	tests := []struct {
		value float64
		unit  DistanceUnit
		want  float64
	}{
		{12, UnitMeters, 12},
		{1.5, UnitKilometers, 1500},
		{10, UnitFeet, 3.048},
		{1, UnitMiles, 1609.344},
		{7, DistanceUnit("parsec"), 7},
	}

	for _, tc := range tests {
		if got := NewDistance(tc.value, tc.unit).Meters(); got != tc.want {
			t.Errorf("NewDistance(%v, %q).Meters() = %v, want %v", tc.value, tc.unit, got, tc.want)
		}
	}
}

func TestDistanceFormat(t *testing.T) {
	d := NewDistance(1, UnitMiles)

	tests := []struct {
		unit DistanceUnit
		want string
	}{
		{UnitMeters, "1609.34 m"},
		{UnitKilometers, "1.609 km"},
		{UnitFeet, "5280.0 ft"},
		{UnitMiles, "1.000 mi"},
		{DistanceUnit(""), "1609.34 m"},
	}

	for _, tc := range tests {
		if got := d.Format(tc.unit); got != tc.want {
			t.Errorf("Format(%q) = %q, want %q", tc.unit, got, tc.want)
		}
	}
}

func TestParseDistanceUnit(t *testing.T) {
	if got := ParseDistanceUnit("KM", UnitMeters); got != UnitKilometers {
		t.Fatalf("got %q, want km", got)
	}
	if got := ParseDistanceUnit("yards", UnitFeet); got != UnitFeet {
		t.Fatalf("got %q, want fallback ft", got)
	}
}

func TestDistanceHumanize(t *testing.T) {
	if got := Meters(12500).Humanize(); !strings.HasSuffix(got, " km") {
		t.Fatalf("Humanize() = %q, want a km value", got)
	}
	if got := Meters(850).Humanize(); !strings.HasSuffix(got, " m") {
		t.Fatalf("Humanize() = %q, want a m value", got)
	}
}
