package extract

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/aalvaropc/heron/internal/domain"
)

// Rules maps each side of a triangle to a JSONPath expression.
type Rules struct {
	SideAB string
	SideBC string
	SideCA string
}

// DefaultRules reads {"side_ab":..,"side_bc":..,"side_ca":..} at the document root.
func DefaultRules() Rules {
	return Rules{
		SideAB: "$.side_ab",
		SideBC: "$.side_bc",
		SideCA: "$.side_ca",
	}
}

// Result reports the outcome of one side extraction.
type Result struct {
	Side    string
	Expr    string
	Success bool
	Message string
}

// Apply extracts three integer side lengths from a JSON document.
//
// Policy:
// - If doc is not JSON -> every side fails.
// - A failing side is reported in Result; the other sides still run.
// - The returned error is non-nil (KindInvalidInput) if any side failed.
func Apply(doc []byte, rules Rules) (domain.Triangle, []Result, error) {
	type rule struct {
		side string
		expr string
	}
	ordered := []rule{
		{"side_ab", rules.SideAB},
		{"side_bc", rules.SideBC},
		{"side_ca", rules.SideCA},
	}

	parsed, err := parseJSON(doc)
	if err != nil {
		out := make([]Result, 0, len(ordered))
		for _, r := range ordered {
			out = append(out, Result{
				Side:    r.side,
				Expr:    strings.TrimSpace(r.expr),
				Success: false,
				Message: fmt.Sprintf("extract %s (%s): document is not valid JSON", r.side, strings.TrimSpace(r.expr)),
			})
		}
		return domain.Triangle{}, out, domain.InvalidInput("extract.apply", "document is not valid JSON")
	}

	var sides [3]int
	results := make([]Result, 0, len(ordered))
	var failed []string

	for i, r := range ordered {
		expr := strings.TrimSpace(r.expr)
		n, msg := extractSide(parsed, r.side, expr)
		if msg != "" {
			failed = append(failed, r.side)
			results = append(results, Result{Side: r.side, Expr: expr, Success: false, Message: msg})
			continue
		}
		sides[i] = n
		results = append(results, Result{
			Side:    r.side,
			Expr:    expr,
			Success: true,
			Message: fmt.Sprintf("extracted %s = %d", r.side, n),
		})
	}

	if len(failed) > 0 {
		return domain.Triangle{}, results, domain.InvalidInput("extract.apply", "could not extract %s", strings.Join(failed, ", "))
	}
	return domain.NewTriangle(sides[0], sides[1], sides[2]), results, nil
}

func extractSide(doc any, side, expr string) (int, string) {
	if expr == "" {
		return 0, fmt.Sprintf("extract %s: empty jsonpath expression", side)
	}

	val, err := jsonpath.Get(expr, doc)
	if err != nil {
		return 0, fmt.Sprintf("extract %s (%s): jsonpath error: %v", side, expr, err)
	}
	if val == nil {
		return 0, fmt.Sprintf("extract %s (%s): no value found", side, expr)
	}

	n, err := toInt(val)
	if err != nil {
		return 0, fmt.Sprintf("extract %s (%s): %v", side, expr, err)
	}
	return n, ""
}

func parseJSON(body []byte) (any, error) {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func toInt(v any) (int, error) {
	// jsonpath returns a slice for wildcard/filter expressions
	if arr, ok := v.([]any); ok {
		if len(arr) != 1 {
			return 0, fmt.Errorf("expected a single value, got %d", len(arr))
		}
		return toInt(arr[0])
	}

	switch t := v.(type) {
	case float64:
		if t != math.Trunc(t) || math.IsInf(t, 0) {
			return 0, fmt.Errorf("value %v is not an integer", t)
		}
		if t > domain.MaxSide || t < -domain.MaxSide {
			return 0, fmt.Errorf("value %v is out of range (max magnitude %d)", t, domain.MaxSide)
		}
		return int(t), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0, fmt.Errorf("value %q is not an integer", t)
		}
		if !domain.SideInRange(n) {
			return 0, fmt.Errorf("value %d is out of range (max magnitude %d)", n, domain.MaxSide)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("unsupported value type %T", v)
	}
}
