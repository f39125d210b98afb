package extract

import (
	"testing"

	"github.com/aalvaropc/heron/internal/domain"
)

func TestApply_DefaultRules(t *testing.T) {
	tri, res, err := Apply([]byte(`{"side_ab":3,"side_bc":4,"side_ca":5}`), DefaultRules())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tri != domain.NewTriangle(3, 4, 5) {
		t.Fatalf("expected 3-4-5, got %s", tri)
	}
	if len(res) != 3 {
		t.Fatalf("expected 3 results, got %d", len(res))
	}
	for _, r := range res {
		if !r.Success {
			t.Fatalf("expected all success, got fail: %+v", r)
		}
	}
}

func TestApply_NestedPathsAndStrings(t *testing.T) {
	doc := []byte(`{"shape":{"edges":[{"len":"7"},{"len":10},{"len":5}]}}`)
	rules := Rules{
		SideAB: "$.shape.edges[0].len",
		SideBC: "$.shape.edges[1].len",
		SideCA: "$.shape.edges[2].len",
	}

	tri, _, err := Apply(doc, rules)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tri != domain.NewTriangle(7, 10, 5) {
		t.Fatalf("expected 7-10-5, got %s", tri)
	}
}

func TestApply_NonJSON_FailsAll(t *testing.T) {
	_, res, err := Apply([]byte("hello"), DefaultRules())
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.KindInvalidInput) {
		t.Fatalf("expected KindInvalidInput, got %v", err)
	}
	if len(res) != 3 {
		t.Fatalf("expected 3 results, got %d", len(res))
	}
	for _, r := range res {
		if r.Success {
			t.Fatalf("expected failure for %s", r.Side)
		}
	}
}

func TestApply_PartialFailure(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"missing", `{"side_ab":3,"side_bc":4}`},
		{"fraction", `{"side_ab":3,"side_bc":4,"side_ca":5.5}`},
		{"text", `{"side_ab":3,"side_bc":4,"side_ca":"five"}`},
		{"object", `{"side_ab":3,"side_bc":4,"side_ca":{"v":5}}`},
	}
	for _, c := range cases {
		_, res, err := Apply([]byte(c.doc), DefaultRules())
		if err == nil {
			t.Errorf("%s: expected error", c.name)
			continue
		}
		if !res[0].Success || !res[1].Success {
			t.Errorf("%s: expected first two sides to succeed: %+v", c.name, res)
		}
		if res[2].Success {
			t.Errorf("%s: expected side_ca to fail", c.name)
		}
	}
}

func TestApply_EmptyExpression(t *testing.T) {
	rules := DefaultRules()
	rules.SideBC = "  "
	_, res, err := Apply([]byte(`{"side_ab":3,"side_bc":4,"side_ca":5}`), rules)
	if err == nil {
		t.Fatalf("expected error")
	}
	if res[1].Success {
		t.Fatalf("expected side_bc to fail")
	}
}

func TestToInt_SingleElementSlice(t *testing.T) {
	n, err := toInt([]any{float64(4)})
	if err != nil || n != 4 {
		t.Fatalf("expected 4, got %d (%v)", n, err)
	}
	if _, err := toInt([]any{float64(1), float64(2)}); err == nil {
		t.Fatalf("expected error for multi-value slice")
	}
}

func TestToInt_Range(t *testing.T) {
	cases := []struct {
		name string
		in   any
		ok   bool
	}{
		{"max float", float64(2147483647), true},
		{"min float", float64(-2147483647), true},
		{"float past max", float64(2147483648), false},
		{"float past min", float64(-2147483648), false},
		{"string past max", "4294967296", false},
		{"string at max", "2147483647", true},
	}
	for _, c := range cases {
		_, err := toInt(c.in)
		if (err == nil) != c.ok {
			t.Errorf("%s: toInt(%v) err=%v, want ok=%v", c.name, c.in, err, c.ok)
		}
	}
}
