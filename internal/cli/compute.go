package cli

import (
	"strconv"
	"strings"

	"github.com/aalvaropc/heron/internal/domain"
)

var sideArgNames = [3]string{"side_ab", "side_bc", "side_ca"}

// parseSides converts the three positional arguments into a Triangle.
func parseSides(args []string) (domain.Triangle, error) {
	if len(args) != 3 {
		return domain.Triangle{}, domain.InvalidInput("cli.parse_sides", "expected 3 side lengths, got %d", len(args))
	}

	var sides [3]int
	for i, a := range args {
		n, err := strconv.Atoi(strings.TrimSpace(a))
		if err != nil {
			return domain.Triangle{}, domain.InvalidInput("cli.parse_sides", "%s %q is not an integer", sideArgNames[i], a)
		}
		if !domain.SideInRange(n) {
			return domain.Triangle{}, domain.InvalidInput("cli.parse_sides", "%s %d is out of range (max magnitude %d)", sideArgNames[i], n, domain.MaxSide)
		}
		sides[i] = n
	}
	return domain.NewTriangle(sides[0], sides[1], sides[2]), nil
}
