package domain

import (
	"fmt"
	"math"
	"math/big"
	"math/bits"
)

// MaxSide bounds the magnitude of a side length accepted from user input.
// Every input surface rejects sides outside [-MaxSide, MaxSide].
const MaxSide = math.MaxInt32

// SideInRange reports whether n lies within [-MaxSide, MaxSide].
func SideInRange(n int) bool {
	return n >= -MaxSide && n <= MaxSide
}

// Triangle is an immutable set of three side lengths.
// Methods use value receivers and never mutate the receiver.
type Triangle struct {
	SideAB int `json:"side_ab"`
	SideBC int `json:"side_bc"`
	SideCA int `json:"side_ca"`
}

func NewTriangle(ab, bc, ca int) Triangle {
	return Triangle{SideAB: ab, SideBC: bc, SideCA: ca}
}

// Sides returns a copy of the three lengths in ab, bc, ca order.
func (t Triangle) Sides() [3]int {
	return [3]int{t.SideAB, t.SideBC, t.SideCA}
}

func (t Triangle) String() string {
	return fmt.Sprintf("Triangle{side_ab: %d, side_bc: %d, side_ca: %d}", t.SideAB, t.SideBC, t.SideCA)
}

// Validate reports whether the sides describe a non-degenerate triangle:
// every side positive and strictly shorter than the sum of the other two.
func (t Triangle) Validate() error {
	for i, s := range t.Sides() {
		if s <= 0 {
			return &OpError{
				Op:   "triangle.validate",
				Kind: KindInvalidTriangle,
				Err:  fmt.Errorf("%s must be positive, got %d: %w", sideNames[i], s, ErrInvalidTriangle),
			}
		}
	}

	ab, bc, ca := int64(t.SideAB), int64(t.SideBC), int64(t.SideCA)
	if ab+bc <= ca || bc+ca <= ab || ca+ab <= bc {
		return &OpError{
			Op:   "triangle.validate",
			Kind: KindInvalidTriangle,
			Err:  fmt.Errorf("sides %d, %d, %d violate the triangle inequality: %w", t.SideAB, t.SideBC, t.SideCA, ErrInvalidTriangle),
		}
	}
	return nil
}

var sideNames = [3]string{"side_ab", "side_bc", "side_ca"}

// Perimeter returns ab + bc + ca. It is defined for any input, including
// negative or non-geometric sides.
func Perimeter(t Triangle) int {
	return t.SideAB + t.SideBC + t.SideCA
}

// Area applies Heron's formula with a truncated semi-perimeter:
// s = (ab+bc+ca)/2 in integer division, the product s(s-ab)(s-bc)(s-ca) in
// integer arithmetic, and only the square root in floating point.
// For odd perimeters the fractional half of s is dropped, so the result is
// an approximation. A violated triangle inequality yields NaN.
//
// The product is kept in int64 while it fits and moves to math/big once it
// would overflow, so large sides never wrap around.
func Area(t Triangle) float64 {
	if !SideInRange(t.SideAB) || !SideInRange(t.SideBC) || !SideInRange(t.SideCA) {
		return areaBig(t)
	}

	ab, bc, ca := int64(t.SideAB), int64(t.SideBC), int64(t.SideCA)
	s := (ab + bc + ca) / 2
	product, ok := mulInt64(s, s-ab, s-bc, s-ca)
	if !ok {
		return areaBig(t)
	}
	return math.Sqrt(float64(product))
}

// mulInt64 multiplies the factors and reports false if the product leaves
// the int64 range at any step.
func mulInt64(factors ...int64) (int64, bool) {
	p := int64(1)
	for _, f := range factors {
		neg := (p < 0) != (f < 0)
		hi, lo := bits.Mul64(abs64(p), abs64(f))
		if hi != 0 || lo > math.MaxInt64 {
			return 0, false
		}
		p = int64(lo)
		if neg {
			p = -p
		}
	}
	return p, true
}

func abs64(n int64) uint64 {
	if n < 0 {
		return uint64(-(n + 1)) + 1
	}
	return uint64(n)
}

func areaBig(t Triangle) float64 {
	ab := big.NewInt(int64(t.SideAB))
	bc := big.NewInt(int64(t.SideBC))
	ca := big.NewInt(int64(t.SideCA))

	s := new(big.Int).Add(ab, bc)
	s.Add(s, ca)
	s.Quo(s, big.NewInt(2)) // truncates toward zero like int division

	product := new(big.Int).Set(s)
	for _, side := range [3]*big.Int{ab, bc, ca} {
		product.Mul(product, new(big.Int).Sub(s, side))
	}
	if product.Sign() < 0 {
		return math.NaN()
	}

	root, _ := new(big.Float).Sqrt(new(big.Float).SetInt(product)).Float64()
	return root
}

// AreaExact is Area with s computed as a real number.
func AreaExact(t Triangle) float64 {
	ab, bc, ca := float64(t.SideAB), float64(t.SideBC), float64(t.SideCA)
	s := (ab + bc + ca) / 2
	return math.Sqrt(s * (s - ab) * (s - bc) * (s - ca))
}
