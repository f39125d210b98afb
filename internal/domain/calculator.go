package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// SemiPerimeterMode selects how s is derived from the perimeter.
type SemiPerimeterMode string

const (
	// ModeTruncate divides the perimeter by two with integer division.
	ModeTruncate SemiPerimeterMode = "truncate"
	// ModeExact divides in floating point.
	ModeExact SemiPerimeterMode = "exact"
)

// ParseMode accepts "truncate" or "exact" (case-insensitive). Empty means truncate.
func ParseMode(s string) (SemiPerimeterMode, error) {
	switch SemiPerimeterMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeTruncate:
		return ModeTruncate, nil
	case ModeExact:
		return ModeExact, nil
	default:
		return "", fmt.Errorf("unsupported semi-perimeter mode %q (expected truncate|exact)", s)
	}
}

// Calculator computes perimeter and area. The zero value uses truncating
// semi-perimeter and never rejects a triangle.
type Calculator struct {
	Strict bool
	Mode   SemiPerimeterMode
}

// Compute returns the calculation for t. In strict mode an invalid triangle
// yields a Calculation with Error set plus a KindInvalidTriangle error;
// otherwise degenerate input surfaces as a NaN area.
func (c Calculator) Compute(name string, t Triangle) (Calculation, error) {
	mode := c.Mode
	if mode == "" {
		mode = ModeTruncate
	}

	calc := Calculation{
		Name:      name,
		Triangle:  t,
		Perimeter: Perimeter(t),
		Mode:      mode,
		Strict:    c.Strict,
	}

	if c.Strict {
		if err := t.Validate(); err != nil {
			calc.Area = math.NaN()
			calc.Error = err.Error()
			return calc, &OpError{
				Op:   "calculator.compute",
				Kind: KindInvalidTriangle,
				Err:  err,
			}
		}
	}

	switch mode {
	case ModeExact:
		calc.Area = AreaExact(t)
	default:
		calc.Area = Area(t)
	}
	calc.Valid = !math.IsNaN(calc.Area) && !math.IsInf(calc.Area, 0)
	return calc, nil
}

// Calculation is one computed result.
type Calculation struct {
	Name      string
	Triangle  Triangle
	Perimeter int
	Area      float64
	Valid     bool
	Mode      SemiPerimeterMode
	Strict    bool
	Error     string
}

type calculationJSON struct {
	Name      string            `json:"name,omitempty"`
	Triangle  Triangle          `json:"triangle"`
	Perimeter int               `json:"perimeter"`
	Area      *float64          `json:"area"`
	AreaNaN   bool              `json:"area_nan,omitempty"`
	Valid     bool              `json:"valid"`
	Mode      SemiPerimeterMode `json:"mode"`
	Strict    bool              `json:"strict,omitempty"`
	Error     string            `json:"error,omitempty"`
}

// MarshalJSON encodes a NaN area as null with area_nan set, since
// encoding/json rejects NaN.
func (c Calculation) MarshalJSON() ([]byte, error) {
	out := calculationJSON{
		Name:      c.Name,
		Triangle:  c.Triangle,
		Perimeter: c.Perimeter,
		Valid:     c.Valid,
		Mode:      c.Mode,
		Strict:    c.Strict,
		Error:     c.Error,
	}
	if math.IsNaN(c.Area) || math.IsInf(c.Area, 0) {
		out.AreaNaN = true
	} else {
		a := c.Area
		out.Area = &a
	}
	return json.Marshal(out)
}

func (c *Calculation) UnmarshalJSON(b []byte) error {
	var in calculationJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	*c = Calculation{
		Name:      in.Name,
		Triangle:  in.Triangle,
		Perimeter: in.Perimeter,
		Valid:     in.Valid,
		Mode:      in.Mode,
		Strict:    in.Strict,
		Error:     in.Error,
	}
	switch {
	case in.Area != nil:
		c.Area = *in.Area
	default:
		c.Area = math.NaN()
	}
	return nil
}
