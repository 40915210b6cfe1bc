package domain

// FromReverseWherigo decodes the three-variable "Reverse Wherigo" cipher used
// to hide geocache coordinates.
//
// The digit positions and weights are a fixed external format. The sums are
// evaluated term by term, left to right, and must stay bit-exact. Any triplet
// decodes to some coordinates; a hundreds digit of a outside 1..4 leaves both
// signs positive.
func FromReverseWherigo(a, b, c int) Coordinates {
	latSign, lngSign := 1.0, 1.0
	switch digit(a, 3) {
	case 1:
		latSign, lngSign = 1, 1
	case 2:
		latSign, lngSign = -1, 1
	case 3:
		latSign, lngSign = 1, -1
	case 4:
		latSign, lngSign = -1, -1
	}

	A := func(k int) float64 { return float64(digit(a, k)) }
	B := func(k int) float64 { return float64(digit(b, k)) }
	C := func(k int) float64 { return float64(digit(c, k)) }

	var lat, lng float64
	if (digit(c, 5)+digit(c, 2))%2 == 0 {
		// A4 B2 B5 C3 A6 C2 A1
		lat = weightedSum(
			A(4), 10,
			B(2), 1,
			B(5), 0.1,
			C(3), 0.01,
			A(6), 0.001,
			C(2), 1.0e-4,
			A(1), 1.0e-5,
		)
		// A5 C6 C1 B3 B6 A2 C5 B1
		lng = weightedSum(
			A(5), 100,
			C(6), 10,
			C(1), 1,
			B(3), 0.1,
			B(6), 0.01,
			A(2), 0.001,
			C(5), 1.0e-4,
			B(1), 1.0e-5,
		)
	} else {
		// B6 A1 A4 C6 C3 C2 A6
		lat = weightedSum(
			B(6), 10,
			A(1), 1,
			A(4), 0.1,
			C(6), 0.01,
			C(3), 0.001,
			C(2), 1.0e-4,
			A(6), 1.0e-5,
		)
		// B2 C1 A2 A5 B3 B1 C5 B5
		lng = weightedSum(
			B(2), 100,
			C(1), 10,
			A(2), 1,
			A(5), 0.1,
			B(3), 0.01,
			B(1), 0.001,
			C(5), 1.0e-4,
			B(5), 1.0e-5,
		)
	}

	return NewCoordinates(latSign*lat, lngSign*lng)
}

// digit returns the k-th decimal digit of x counted from the right (k >= 1).
func digit(x, k int) int {
	p := pow10(k)
	q := p / 10
	return (x%p - x%q) / q
}

func pow10(k int) int {
	p := 1
	for ; k > 0; k-- {
		p *= 10
	}
	return p
}

// weightedSum takes (digit, weight) pairs. Products are rounded individually
// before being added so the compiler cannot fuse them.
func weightedSum(pairs ...float64) float64 {
	sum := 0.0
	for i := 0; i+1 < len(pairs); i += 2 {
		sum += float64(pairs[i] * pairs[i+1])
	}
	return sum
}
