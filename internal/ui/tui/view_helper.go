package tui

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/aalvaropc/heron/internal/domain"
)

func clampString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))

	n := 0
	for _, r := range s {
		if n >= maxLen {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String() + "…"
}

func renderPreview(th Theme, c domain.Calculation, err error, complete bool) string {
	var b strings.Builder

	if !complete {
		if err != nil {
			b.WriteString(th.Warn.Render("✗ " + userMessage(err)))
			b.WriteString("\n")
			return b.String()
		}
		b.WriteString("Perimeter: -\nArea:      -\n")
		return b.String()
	}

	b.WriteString("Perimeter: ")
	b.WriteString(th.areaStyle(c.Valid).Render(strconv.Itoa(c.Perimeter)))
	b.WriteString("\nArea:      ")
	b.WriteString(th.areaStyle(c.Valid).Render(formatArea(c)))
	b.WriteString("\n")

	if err != nil {
		b.WriteString("\n")
		b.WriteString(th.Warn.Render("✗ " + userMessage(err)))
		b.WriteString("\n")
	}

	if c.Mode == domain.ModeExact {
		b.WriteString("\n(exact semi-perimeter)\n")
	}
	return b.String()
}

func formatArea(c domain.Calculation) string {
	s := strconv.FormatFloat(c.Area, 'g', -1, 64)
	if !c.Valid {
		return s + " (not a triangle)"
	}
	return s
}
