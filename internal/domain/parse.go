package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

var ErrUnparseable = errors.New("unparseable coordinates")

// Notation names the input pattern that produced a parse result.
type Notation string

const (
	NotationDMMPrefix      Notation = "DMM prefix hemisphere"
	NotationDMMSemiPostfix Notation = "DMM semi-postfix hemisphere"
	NotationDMMPostfix     Notation = "DMM postfix hemisphere"
	NotationDMMBare        Notation = "DMM without hemisphere"
	NotationDMSPrefix      Notation = "DMS prefix hemisphere"
	NotationDMSSemiPostfix Notation = "DMS semi-postfix hemisphere"
	NotationDMSPostfix     Notation = "DMS postfix hemisphere"
	NotationDMSBare        Notation = "DMS without hemisphere"
	NotationDECPrefix      Notation = "DEC prefix hemisphere"
	NotationDECPostfix     Notation = "DEC postfix hemisphere"
	NotationDECBare        Notation = "DEC without hemisphere"
	NotationReverseWherigo Notation = "Reverse Wherigo"
)

// Format returns the rendering family closest to the notation.
// Reverse Wherigo input is reported as DEC.
func (n Notation) Format() Format {
	switch n {
	case NotationDMMPrefix, NotationDMMSemiPostfix, NotationDMMPostfix, NotationDMMBare:
		return FormatDMM
	case NotationDMSPrefix, NotationDMSSemiPostfix, NotationDMSPostfix, NotationDMSBare:
		return FormatDMS
	default:
		return FormatDEC
	}
}

// slot is one entry of a group recipe: a 1-based capture index, or a literal
// default when index is 0.
type slot struct {
	index   int
	literal string
}

func group(i int) slot { return slot{index: i} }
func literal(s string) slot { return slot{literal: s} }

var absent = slot{}

type attemptStatus int

const (
	attemptNoMatch attemptStatus = iota
	attemptInvalid
	attemptOK
)

type attempt struct {
	status attemptStatus
	coords Coordinates
	err    error
}

type pattern struct {
	notation Notation
	re       *regexp.Regexp
	// hemisphere, degrees, minutes, seconds for both components
	groups  [8]slot
	factory func(m []string, groups [8]slot) attempt
}

// Patterns overlap (a bare "D M D M" is also a prefix of malformed DMS input),
// so the order is significant. Reverse Wherigo is the last resort.
var patterns = []pattern{
	{
		notation: NotationDMMPrefix,
		re:       regexp.MustCompile(`^([NEWS]) ?(\d+) (\d+\.?\d*) ?([NEWS]) ?(\d+) (\d+\.?\d*)$`),
		groups:   [8]slot{group(1), group(2), group(3), absent, group(4), group(5), group(6), absent},
		factory:  readDMSGroups,
	},
	{
		notation: NotationDMMSemiPostfix,
		re:       regexp.MustCompile(`^(\d+) ?([NEWS]) ?(\d+\.?\d*) (\d+) ?([NEWS]) ?(\d+\.?\d*)$`),
		groups:   [8]slot{group(2), group(1), group(3), absent, group(5), group(4), group(6), absent},
		factory:  readDMSGroups,
	},
	{
		notation: NotationDMMPostfix,
		re:       regexp.MustCompile(`^(\d+) (\d+\.?\d*) ?([NEWS]) ?(\d+) (\d+\.?\d*) ?([NEWS])$`),
		groups:   [8]slot{group(3), group(1), group(2), absent, group(6), group(4), group(5), absent},
		factory:  readDMSGroups,
	},
	{
		notation: NotationDMMBare,
		re:       regexp.MustCompile(`^(\d+) (\d+\.?\d*) (\d+) (\d+\.?\d*)$`),
		groups:   [8]slot{literal("N"), group(1), group(2), absent, literal("E"), group(3), group(4), absent},
		factory:  readDMSGroups,
	},
	{
		notation: NotationDMSPrefix,
		re:       regexp.MustCompile(`^([NEWS]) ?(\d+) (\d+) (\d+\.?\d*) ?([NEWS]) ?(\d+) (\d+) (\d+\.?\d*)$`),
		groups:   [8]slot{group(1), group(2), group(3), group(4), group(5), group(6), group(7), group(8)},
		factory:  readDMSGroups,
	},
	{
		notation: NotationDMSSemiPostfix,
		re:       regexp.MustCompile(`^(\d+) ?([NEWS]) ?(\d+) (\d+\.?\d*) (\d+) ?([NEWS]) ?(\d+) (\d+\.?\d*)$`),
		groups:   [8]slot{group(2), group(1), group(3), group(4), group(6), group(5), group(7), group(8)},
		factory:  readDMSGroups,
	},
	{
		notation: NotationDMSPostfix,
		re:       regexp.MustCompile(`^\s*(\d+)\s+(\d+)\s+(\d+\.?\d*)\s*([NEWS])\s*(\d+)\s+(\d+)\s+(\d+\.?\d*)\s*([NEWS])\s*$`),
		groups:   [8]slot{group(4), group(1), group(2), group(3), group(8), group(5), group(6), group(7)},
		factory:  readDMSGroups,
	},
	{
		notation: NotationDMSBare,
		re:       regexp.MustCompile(`^(\d+) (\d+) (\d+\.?\d*) (\d+) (\d+) (\d+\.?\d*)$`),
		groups:   [8]slot{literal("N"), group(1), group(2), group(3), literal("E"), group(4), group(5), group(6)},
		factory:  readDMSGroups,
	},
	{
		notation: NotationDECPrefix,
		re:       regexp.MustCompile(`^([NEWS]) ?(\d+\.?\d*) ?([NEWS]) ?(\d+\.?\d*)$`),
		groups:   [8]slot{group(1), group(2), absent, absent, group(3), group(4), absent, absent},
		factory:  readDMSGroups,
	},
	{
		notation: NotationDECPostfix,
		re:       regexp.MustCompile(`^(\d+\.?\d*) ?([NEWS]) ?(\d+\.?\d*) ?([NEWS])$`),
		groups:   [8]slot{group(2), group(1), absent, absent, group(4), group(3), absent, absent},
		factory:  readDMSGroups,
	},
	{
		notation: NotationDECBare,
		re:       regexp.MustCompile(`^(-?\d+\.?\d*) (-?\d+\.?\d*)$`),
		groups:   [8]slot{literal(signedHemisphere), group(1), absent, absent, literal(signedHemisphere), group(2), absent, absent},
		factory:  readDMSGroups,
	},
	{
		notation: NotationReverseWherigo,
		re:       regexp.MustCompile(`^(\d+) (\d+) (\d+)$`),
		factory:  readReverseWherigo,
	},
}

// FromString parses free-form coordinate text. The error wraps
// ErrUnparseable when no pattern yields valid coordinates.
func FromString(text string) (Coordinates, error) {
	c, _, err := Detect(text)
	return c, err
}

// Detect is FromString that also reports which notation matched.
func Detect(text string) (Coordinates, Notation, error) {
	s := Sanitize(text)

	var lastErr error
	for _, p := range patterns {
		a := p.try(s)
		switch a.status {
		case attemptOK:
			return a.coords, p.notation, nil
		case attemptInvalid:
			lastErr = a.err
		}
	}

	if lastErr != nil {
		return Coordinates{}, "", fmt.Errorf("%w: %q: %w", ErrUnparseable, text, lastErr)
	}
	return Coordinates{}, "", fmt.Errorf("%w: %q", ErrUnparseable, text)
}

func (p pattern) try(s string) attempt {
	m := p.re.FindStringSubmatch(s)
	if m == nil {
		return attempt{status: attemptNoMatch}
	}
	return p.factory(m, p.groups)
}

func readDMSGroups(m []string, groups [8]slot) attempt {
	var nums [8]float64
	for _, i := range []int{1, 2, 3, 5, 6, 7} {
		v, err := extractComponent(m, groups[i])
		if err != nil {
			return attempt{status: attemptInvalid, err: err}
		}
		nums[i] = v
	}

	c, err := FromComponents(
		extractHemisphere(m, groups[0]), nums[1], nums[2], nums[3],
		extractHemisphere(m, groups[4]), nums[5], nums[6], nums[7],
	)
	if err != nil {
		return attempt{status: attemptInvalid, err: err}
	}
	return attempt{status: attemptOK, coords: c}
}

// Only the six lowest digits of each variable are decoded, so longer groups
// are cut to their trailing wherigoMaxDigits digits to stay within an int.
const wherigoMaxDigits = 18

func readReverseWherigo(m []string, _ [8]slot) attempt {
	var vars [3]int
	for i := range vars {
		g := m[i+1]
		if len(g) > wherigoMaxDigits {
			g = g[len(g)-wherigoMaxDigits:]
		}
		v, err := strconv.Atoi(g)
		if err != nil {
			return attempt{status: attemptInvalid, err: fmt.Errorf("reverse wherigo variable %q: %w", m[i+1], err)}
		}
		vars[i] = v
	}
	return attempt{status: attemptOK, coords: FromReverseWherigo(vars[0], vars[1], vars[2])}
}

func extractHemisphere(m []string, s slot) string {
	if s.index > 0 {
		return m[s.index]
	}
	return s.literal
}

func extractComponent(m []string, s slot) (float64, error) {
	if s.index == 0 {
		return 0, nil
	}
	v, err := strconv.ParseFloat(m[s.index], 64)
	if err != nil {
		return 0, fmt.Errorf("component %q: %w", m[s.index], err)
	}
	return v, nil
}
