package cli

import (
	"bytes"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParseCommand(t *testing.T) {
	out, err := run(t, "parse", "50.11042", "8.68213")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "N 50° 06.625' E 008° 40.928'\n"; out != want {
		t.Fatalf("got %q, want %q", out, want)
	}

	out, err = run(t, "parse", "--format", "dec", "S 33 W 70.5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "S 33.000000° W 070.500000°\n"; out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestParseCommandAll(t *testing.T) {
	out, err := run(t, "parse", "--all", "261180 536802 118040")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "notation: Reverse Wherigo") || !strings.Contains(out, "DMS:") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestParseCommandRejectsGarbage(t *testing.T) {
	if _, err := run(t, "parse", "hello"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestSanitizeCommand(t *testing.T) {
	out, err := run(t, "sanitize", "n50°", "12,5", "o8,25")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "N50 12.5 E8.25\n"; out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestWherigoCommand(t *testing.T) {
	out, err := run(t, "wherigo", "-f", "DEC", "261180", "536802", "118040")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "N 50.110420° E 008.682130°\n"; out != want {
		t.Fatalf("got %q, want %q", out, want)
	}

	if _, err := run(t, "wherigo", "1", "x", "3"); err == nil {
		t.Fatalf("expected error for non-numeric variable")
	}
}

func TestDistanceCommand(t *testing.T) {
	out, err := run(t, "distance", "--unit", "km", "0 0", "0 1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "111.319 km (bearing 90.00°)\n"; out != want {
		t.Fatalf("got %q, want %q", out, want)
	}

	if _, err := run(t, "distance", "0 0", "nowhere"); err == nil {
		t.Fatalf("expected error for unparseable point")
	}
}

func TestProjectCommand(t *testing.T) {
	out, err := run(t, "project", "-f", "dec", "0 0", "0", "0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "N 00.000000° E 000.000000°\n"; out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}
