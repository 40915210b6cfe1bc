package domain

import (
	"math"
	"testing"
)

func TestStringDEC(t *testing.T) {
	tests := []struct {
		c    Coordinates
		want string
	}{
		{NewCoordinates(50.11042, 8.68213), "N 50.110420° E 008.682130°"},
		{NewCoordinates(-50.11042, -8.68213), "S 50.110420° W 008.682130°"},
		{NewCoordinates(0, 0), "N 00.000000° E 000.000000°"},
		{NewCoordinates(math.Copysign(0, -1), math.Copysign(0, -1)), "N 00.000000° E 000.000000°"},
		{NewCoordinates(1, 190), "N 01.000000° W 170.000000°"},
	}

	for _, tc := range tests {
		if got := tc.c.StringDEC(); got != tc.want {
			t.Errorf("StringDEC() = %q, want %q", got, tc.want)
		}
	}
}

func TestStringDMM(t *testing.T) {
	tests := []struct {
		c    Coordinates
		want string
	}{
		{NewCoordinates(50.11042, 8.68213), "N 50° 06.625' E 008° 40.928'"},
		{NewCoordinates(50.185173666666664, 8.511368833333334), "N 50° 11.110' E 008° 30.682'"},
		{NewCoordinates(-50.11042, -8.68213), "S 50° 06.625' W 008° 40.928'"},
		// Milli-minute overflow is carried into the minutes only.
		{NewCoordinates(0.9999999, 0), "N 00° 60.000' E 000° 00.000'"},
	}

	for _, tc := range tests {
		if got := tc.c.StringDMM(); got != tc.want {
			t.Errorf("StringDMM() = %q, want %q", got, tc.want)
		}
	}
}

func TestStringDMS(t *testing.T) {
	c := NewCoordinates(50.184197338888886, 8.50102281388889)
	want := "N 50° 11' 03.11\" E 008° 30' 03.68\""
	if got := c.StringDMS(); got != want {
		t.Fatalf("StringDMS() = %q, want %q", got, want)
	}
}

func TestFormatDispatch(t *testing.T) {
	c := NewCoordinates(50.11042, 8.68213)

	if got := c.Format(FormatDEC); got != c.StringDEC() {
		t.Fatalf("Format(DEC) = %q, want %q", got, c.StringDEC())
	}
	if got := c.Format(FormatDMS); got != c.StringDMS() {
		t.Fatalf("Format(DMS) = %q, want %q", got, c.StringDMS())
	}
	if got := c.Format(Format("bogus")); got != c.StringDMM() {
		t.Fatalf("Format(bogus) = %q, want %q", got, c.StringDMM())
	}
	if got := c.String(); got != c.StringDMM() {
		t.Fatalf("String() = %q, want %q", got, c.StringDMM())
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"d", FormatDEC},
		{"DEC", FormatDEC},
		{"dm", FormatDMM},
		{"DMM", FormatDMM},
		{" dms ", FormatDMS},
		{"", FormatDMS},
		{"utm", FormatDMS},
	}

	for _, tc := range tests {
		if got := ParseFormat(tc.in, FormatDMS); got != tc.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatRoundTrip(t *testing.T) {
	c := NewCoordinates(50.11042, 8.68213)

	for _, f := range []Format{FormatDEC, FormatDMM, FormatDMS} {
		parsed, err := FromString(c.Format(f))
		if err != nil {
			t.Fatalf("FromString(%q): unexpected error: %v", c.Format(f), err)
		}
		if d := parsed.RawLat() - c.RawLat(); d > 1e-4 || d < -1e-4 {
			t.Fatalf("%s: latitude %v too far from %v", f, parsed.RawLat(), c.RawLat())
		}
		if d := parsed.RawLng() - c.RawLng(); d > 1e-4 || d < -1e-4 {
			t.Fatalf("%s: longitude %v too far from %v", f, parsed.RawLng(), c.RawLng())
		}
	}
}
