package domain

import "testing"

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"abcdefghijklmnopqrstuvwxyz", "E NE S W"},
		{"°'\"", ""},
		{"1.2 3,4", "1.2 3,4"},
		{"N50 12,234 E008 12,345", "N50 12.234 E008 12.345"},
		{"N50 12.234,E008 12.345", "N50 12.234 E008 12.345"},
		{"50.11042, 8.68213", "50.11042 8.68213"},
		{"1,5", "1 5"},
		{"1##2", "1 2"},
		{" \t 5 \n ", "5"},
		{"5°", "5"},
		{"N50 12.234 o008 12.345", "N50 12.234 E008 12.345"},
		{"N 50° 11.110' O 008° 30.682'", "N 50 11.110 E 008 30.682"},
		{"ｎ50", "50"},
	}

	for _, tc := range tests {
		if got := Sanitize(tc.in); got != tc.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSanitizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"N50 12,234 E008 12,345",
		"  50 11.11042 N    8 30.68213 E ",
		"1,2,3",
		"-50.11042, -8.68213",
		"Frankfurt am Main",
	}

	for _, in := range inputs {
		once := Sanitize(in)
		if twice := Sanitize(once); twice != once {
			t.Errorf("Sanitize(Sanitize(%q)) = %q, want %q", in, twice, once)
		}
	}
}
