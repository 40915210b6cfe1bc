package domain

import "strings"

// Sanitize normalizes free-form coordinate text into the token stream the
// pattern table expects: upper-case hemisphere letters, digits, '-', '.'
// and single spaces.
//
// A comma is ambiguous ("1,2" is either two fields or the value 1.2). It is
// read as a field separator when it is the only comma and there are no
// periods or at least two of them; otherwise, with no periods at all, every
// comma is a decimal point.
func Sanitize(input string) string {
	var b strings.Builder
	b.Grow(len(input))

	commas := 0
	periods := 0

	for _, r := range input {
		switch {
		case r == 'o' || r == 'O':
			// German "Ost".
			b.WriteRune('E')
		case isCoordinateRune(r):
			b.WriteRune(toUpperASCII(r))
		case r == '.':
			periods++
			b.WriteRune(r)
		case r == ',':
			commas++
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}

	sanitized := b.String()
	if commas == 1 && (periods == 0 || periods >= 2) {
		sanitized = strings.ReplaceAll(sanitized, ",", " ")
	} else if commas >= 1 && periods == 0 {
		sanitized = strings.ReplaceAll(sanitized, ",", ".")
	}

	// Every non-kept rune became a space above, so collapsing on spaces alone
	// covers all whitespace.
	return strings.Join(strings.Fields(sanitized), " ")
}

func isCoordinateRune(r rune) bool {
	switch r {
	case 'n', 's', 'w', 'e', 'N', 'S', 'W', 'E', '-':
		return true
	}
	return r >= '0' && r <= '9'
}

func toUpperASCII(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
